package domain

import (
	"errors"
	"math"
	"testing"
)

func newComputer() RateComputer {
	return NewRateComputer(DefaultSamplingInterval, DefaultCutTables())
}

func rawAt(time, uptime float64) RawSample {
	return RawSample{Time: time, Server: ServerFigures{Uptime: uptime}}
}

func TestRateComputer_RequestsPerSecond(t *testing.T) {
	previous := rawAt(0, 0)
	current := rawAt(10, 10)
	current.HTTP.RequestsTotal = 50

	got, err := newComputer().Compute(current, previous)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.HTTP.RequestsTotalPerSecond != 5.0 {
		t.Errorf("expected 5 requests/s, got %v", got.HTTP.RequestsTotalPerSecond)
	}
	if got.Time != 10 {
		t.Errorf("expected time of the later sample, got %v", got.Time)
	}
}

func TestRateComputer_CounterRates(t *testing.T) {
	previous := rawAt(100, 50)
	previous.System = SystemFigures{MinorPageFaults: 10, MajorPageFaults: 2, UserTime: 1.5, SystemTime: 0.5}
	previous.HTTP = HTTPFigures{RequestsGet: 4, RequestsPost: 8, RequestsOther: 1}

	current := rawAt(108, 58)
	current.System = SystemFigures{
		MinorPageFaults:     50,
		MajorPageFaults:     6,
		UserTime:            3.5,
		SystemTime:          1.3,
		ResidentSize:        4096,
		ResidentSizePercent: 0.25,
		VirtualSize:         8192,
		NumberOfThreads:     12,
	}
	current.HTTP = HTTPFigures{RequestsGet: 20, RequestsPost: 8, RequestsOther: 9}
	current.Client.HTTPConnections = 3

	got, err := newComputer().Compute(current, previous)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	checks := []struct {
		name string
		got  float64
		want float64
	}{
		{"minorPageFaultsPerSecond", got.System.MinorPageFaultsPerSecond, 5},
		{"majorPageFaultsPerSecond", got.System.MajorPageFaultsPerSecond, 0.5},
		{"userTimePerSecond", got.System.UserTimePerSecond, 0.25},
		{"systemTimePerSecond", got.System.SystemTimePerSecond, 0.1},
		{"residentSize", got.System.ResidentSize, 4096},
		{"residentSizePercent", got.System.ResidentSizePercent, 0.25},
		{"virtualSize", got.System.VirtualSize, 8192},
		{"numberOfThreads", got.System.NumberOfThreads, 12},
		{"requestsGetPerSecond", got.HTTP.RequestsGetPerSecond, 2},
		{"requestsPostPerSecond", got.HTTP.RequestsPostPerSecond, 0},
		{"requestsOtherPerSecond", got.HTTP.RequestsOtherPerSecond, 1},
		{"httpConnections", got.Client.HTTPConnections, 3},
	}

	for _, c := range checks {
		if math.Abs(c.got-c.want) > 1e-9 {
			t.Errorf("%s: expected %v, got %v", c.name, c.want, c.got)
		}
	}
}

func TestRateComputer_Skips(t *testing.T) {
	tests := []struct {
		name     string
		previous RawSample
		current  RawSample
		want     error
	}{
		{
			name:     "uptime regression",
			previous: rawAt(0, 100),
			current:  rawAt(10, 0),
			want:     ErrServerRestarted,
		},
		{
			name:     "uptime regression wins over staleness",
			previous: rawAt(0, 100),
			current:  rawAt(1000, 5),
			want:     ErrServerRestarted,
		},
		{
			name:     "previous too old",
			previous: rawAt(0, 0),
			current:  rawAt(15.5, 15.5),
			want:     ErrStalePrevious,
		},
		{
			name:     "same time",
			previous: rawAt(10, 10),
			current:  rawAt(10, 10),
			want:     ErrNonPositiveElapsed,
		},
		{
			name:     "time went backwards",
			previous: rawAt(10, 10),
			current:  rawAt(5, 15),
			want:     ErrNonPositiveElapsed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newComputer().Compute(tt.current, tt.previous)
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
			if !IsSkip(err) {
				t.Errorf("expected %v to be a skip", err)
			}
		})
	}
}

func TestRateComputer_StaleBoundary(t *testing.T) {
	// exactly 1.5 intervals apart is still accepted
	_, err := newComputer().Compute(rawAt(15, 15), rawAt(0, 0))
	if err != nil {
		t.Errorf("expected boundary pair to be accepted, got %v", err)
	}
}

func TestRateComputer_AverageTimes(t *testing.T) {
	previous := rawAt(0, 0)
	previous.Client.TotalTime = Accumulator{Sum: 100, Count: 10}
	previous.Client.RequestTime = Accumulator{Sum: 50, Count: 10}
	previous.Client.QueueTime = Accumulator{Sum: 10, Count: 10}

	current := rawAt(10, 10)
	current.Client.TotalTime = Accumulator{Sum: 300, Count: 20}
	current.Client.RequestTime = Accumulator{Sum: 150, Count: 20}
	current.Client.QueueTime = Accumulator{Sum: 30, Count: 20}

	got, err := newComputer().Compute(current, previous)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.Client.AvgTotalTime != 20.0 {
		t.Errorf("expected avgTotalTime 20, got %v", got.Client.AvgTotalTime)
	}
	if got.Client.AvgRequestTime != 10.0 {
		t.Errorf("expected avgRequestTime 10, got %v", got.Client.AvgRequestTime)
	}
	if got.Client.AvgQueueTime != 2.0 {
		t.Errorf("expected avgQueueTime 2, got %v", got.Client.AvgQueueTime)
	}
	if got.Client.AvgIoTime != 8.0 {
		t.Errorf("expected avgIoTime 8, got %v", got.Client.AvgIoTime)
	}
}

func TestRateComputer_UnchangedCountGivesZeroAverage(t *testing.T) {
	previous := rawAt(0, 0)
	previous.Client.TotalTime = Accumulator{Sum: 100, Count: 10}
	current := rawAt(10, 10)
	current.Client.TotalTime = Accumulator{Sum: 100, Count: 10}

	got, err := newComputer().Compute(current, previous)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.Client.AvgTotalTime != 0 || math.IsNaN(got.Client.AvgTotalTime) {
		t.Errorf("expected avgTotalTime 0, got %v", got.Client.AvgTotalTime)
	}
	if got.Client.AvgIoTime != 0 {
		t.Errorf("expected avgIoTime 0, got %v", got.Client.AvgIoTime)
	}
	for i, v := range got.Client.TotalTimePercent.Values {
		if v != 0 {
			t.Errorf("expected zero distribution, values[%d] = %v", i, v)
		}
	}
}

func TestRateComputer_Distributions(t *testing.T) {
	cuts := DefaultCutTables()

	previous := rawAt(0, 0)
	previous.Client.BytesSent = Accumulator{Sum: 1000, Count: 2, Counts: []int64{1, 1, 0, 0, 0, 0}}

	current := rawAt(10, 10)
	current.Client.BytesSent = Accumulator{Sum: 21000, Count: 6, Counts: []int64{1, 2, 0, 0, 0, 3}}
	current.NodeID = "node-a"

	got, err := newComputer().Compute(current, previous)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.Client.BytesSentPerSecond != 2000 {
		t.Errorf("expected 2000 bytes/s, got %v", got.Client.BytesSentPerSecond)
	}

	want := []float64{0, 0.25, 0, 0, 0, 0.75}
	values := got.Client.BytesSentPercent.Values
	if len(values) != len(cuts.BytesSent)+1 {
		t.Fatalf("expected %d buckets, got %d", len(cuts.BytesSent)+1, len(values))
	}
	for i := range want {
		if values[i] != want[i] {
			t.Errorf("bytesSentPercent[%d]: expected %v, got %v", i, want[i], values[i])
		}
	}

	if len(got.Client.QueueTimePercent.Cuts) != len(cuts.RequestTime) {
		t.Errorf("expected queue time to use the request time cuts")
	}
	if got.NodeID != "node-a" {
		t.Errorf("expected node id to be propagated, got %q", got.NodeID)
	}
}
