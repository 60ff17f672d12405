package domain

import (
	"context"
	"fmt"
	"time"

	statsdomain "historian/internal/statistics/domain"
)

// StatisticsConfig is the optional YAML statistics file
type StatisticsConfig struct {
	SamplingInterval time.Duration         `yaml:"sampling_interval" json:"samplingInterval"`
	WindowInterval   time.Duration         `yaml:"window_interval" json:"windowInterval"`
	Cuts             statsdomain.CutTables `yaml:"cuts" json:"cuts"`
}

// DefaultStatisticsConfig returns the stock intervals and cut tables
func DefaultStatisticsConfig() StatisticsConfig {
	return StatisticsConfig{
		SamplingInterval: statsdomain.DefaultSamplingInterval,
		WindowInterval:   statsdomain.DefaultWindowInterval,
		Cuts:             statsdomain.DefaultCutTables(),
	}
}

func (c *StatisticsConfig) Valid(ctx context.Context) map[string]string {
	problems := make(map[string]string)

	if c.SamplingInterval <= 0 {
		problems["sampling_interval"] = "must be positive"
	}
	if c.WindowInterval <= 0 {
		problems["window_interval"] = "must be positive"
	} else if c.WindowInterval < c.SamplingInterval {
		problems["window_interval"] = fmt.Sprintf("must not be shorter than sampling_interval (%s)", c.SamplingInterval)
	}

	for name, cuts := range map[string][]float64{
		"cuts.bytes_sent":     c.Cuts.BytesSent,
		"cuts.bytes_received": c.Cuts.BytesReceived,
		"cuts.request_time":   c.Cuts.RequestTime,
	} {
		if problem := checkCuts(cuts); problem != "" {
			problems[name] = problem
		}
	}

	return problems
}

func checkCuts(cuts []float64) string {
	if len(cuts) == 0 {
		return "cannot be empty"
	}
	for i := 1; i < len(cuts); i++ {
		if cuts[i] <= cuts[i-1] {
			return fmt.Sprintf("must be strictly ascending (%v after %v)", cuts[i], cuts[i-1])
		}
	}
	return ""
}
