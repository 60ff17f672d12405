package infrastructure

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"historian/internal/statistics/domain"
)

// userHZ is the kernel clock tick rate exposed to user space.
const userHZ = 100

// Field positions in /proc/<pid>/stat, counted from 1 as in proc(5).
const (
	statMinorFaults = 10
	statMajorFaults = 12
	statUserTime    = 14
	statSystemTime  = 15
	statThreads     = 20
	statVirtualSize = 23
	statResident    = 24
)

// ProcessReader implements domain.SystemReader from procfs
type ProcessReader struct {
	procRoot string
	pageSize int64
}

// NewProcessReader creates a reader for the current process
func NewProcessReader() *ProcessReader {
	return &ProcessReader{procRoot: "/proc", pageSize: int64(os.Getpagesize())}
}

// ReadSystem reads /proc/self/stat and /proc/meminfo
func (r *ProcessReader) ReadSystem(ctx context.Context) (domain.SystemFigures, error) {
	statPath := filepath.Join(r.procRoot, "self", "stat")
	stat, err := os.ReadFile(statPath)
	if err != nil {
		return domain.SystemFigures{}, fmt.Errorf("failed to read %s: %w", statPath, err)
	}

	figures, err := parseStat(stat, r.pageSize)
	if err != nil {
		return domain.SystemFigures{}, err
	}

	meminfoPath := filepath.Join(r.procRoot, "meminfo")
	meminfo, err := os.ReadFile(meminfoPath)
	if err != nil {
		return domain.SystemFigures{}, fmt.Errorf("failed to read %s: %w", meminfoPath, err)
	}

	total, err := parseMemTotal(meminfo)
	if err != nil {
		return domain.SystemFigures{}, err
	}
	if total > 0 {
		figures.ResidentSizePercent = float64(figures.ResidentSize) / float64(total)
	}

	return figures, nil
}

// parseStat extracts the figures from the content of /proc/<pid>/stat. The
// command name may contain spaces and parentheses, so fields are counted
// from the last closing parenthesis.
func parseStat(content []byte, pageSize int64) (domain.SystemFigures, error) {
	end := bytes.LastIndexByte(content, ')')
	if end < 0 {
		return domain.SystemFigures{}, fmt.Errorf("invalid format in stat: no command name")
	}

	// fields[0] is field 3 (state)
	fields := strings.Fields(string(content[end+1:]))
	if len(fields) < statResident-2 {
		return domain.SystemFigures{}, fmt.Errorf("invalid format in stat: %d fields", len(fields)+2)
	}

	field := func(n int) (int64, error) {
		v, err := strconv.ParseInt(fields[n-3], 10, 64)
		if err != nil {
			return 0, fmt.Errorf("failed to parse stat field %d: %w", n, err)
		}
		return v, nil
	}

	var values [statResident + 1]int64
	for _, n := range []int{statMinorFaults, statMajorFaults, statUserTime, statSystemTime, statThreads, statVirtualSize, statResident} {
		v, err := field(n)
		if err != nil {
			return domain.SystemFigures{}, err
		}
		values[n] = v
	}

	return domain.SystemFigures{
		MinorPageFaults: values[statMinorFaults],
		MajorPageFaults: values[statMajorFaults],
		UserTime:        float64(values[statUserTime]) / userHZ,
		SystemTime:      float64(values[statSystemTime]) / userHZ,
		ResidentSize:    values[statResident] * pageSize,
		VirtualSize:     values[statVirtualSize],
		NumberOfThreads: values[statThreads],
	}, nil
}

// parseMemTotal returns MemTotal from /proc/meminfo in bytes
func parseMemTotal(content []byte) (int64, error) {
	scanner := bufio.NewScanner(bytes.NewReader(content))
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "MemTotal:") {
			continue
		}

		fields := strings.Fields(strings.TrimPrefix(line, "MemTotal:"))
		if len(fields) == 0 {
			return 0, fmt.Errorf("invalid format in meminfo: empty MemTotal")
		}
		kb, err := strconv.ParseInt(fields[0], 10, 64)
		if err != nil {
			return 0, fmt.Errorf("failed to parse MemTotal: %w", err)
		}
		return kb * 1024, nil
	}

	if err := scanner.Err(); err != nil {
		return 0, err
	}
	return 0, fmt.Errorf("invalid format in meminfo: no MemTotal")
}
