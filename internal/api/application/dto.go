package application

import (
	"time"

	configdomain "historian/internal/config/domain"
	statsdomain "historian/internal/statistics/domain"
)

const (
	DefaultListLimit = 100
	MaxListLimit     = 1000
)

// ListStatisticsRequest represents query parameters for listing statistics records
type ListStatisticsRequest struct {
	NodeID *string  `json:"node,omitempty"`
	From   *float64 `json:"from,omitempty"`
	To     *float64 `json:"to,omitempty"`
	Limit  int      `json:"limit,omitempty"`
	Offset int      `json:"offset,omitempty"`
}

// SettingsResponse describes how statistics are sampled
type SettingsResponse struct {
	SamplingInterval        string                `json:"samplingInterval"`
	SamplingIntervalSeconds float64               `json:"samplingIntervalSeconds"`
	WindowInterval          string                `json:"windowInterval"`
	WindowIntervalSeconds   float64               `json:"windowIntervalSeconds"`
	Cuts                    statsdomain.CutTables `json:"cuts"`
}

// HealthResponse is returned by the liveness probe
type HealthResponse struct {
	Status string    `json:"status"`
	Time   time.Time `json:"time"`
}

// ErrorResponse represents an error in API responses
type ErrorResponse struct {
	Error string `json:"error"`
}

// ToSettingsResponse converts the statistics config to an API response
func ToSettingsResponse(cfg configdomain.StatisticsConfig) SettingsResponse {
	return SettingsResponse{
		SamplingInterval:        cfg.SamplingInterval.String(),
		SamplingIntervalSeconds: cfg.SamplingInterval.Seconds(),
		WindowInterval:          cfg.WindowInterval.String(),
		WindowIntervalSeconds:   cfg.WindowInterval.Seconds(),
		Cuts:                    cfg.Cuts,
	}
}
