package domain

import "time"

// Status is the result of one historian tick.
type Status string

const (
	// StatusWritten means the derived record was persisted.
	StatusWritten Status = "written"
	// StatusSkipped means the inputs did not allow a derived record.
	StatusSkipped Status = "skipped"
	// StatusAbandoned means the store or the metrics source failed.
	StatusAbandoned Status = "abandoned"
)

// Outcome describes what a tick did. Ticks never return errors; failures are
// reported here and the next tick tries again.
type Outcome struct {
	Task     string
	Status   Status
	Time     float64
	Reason   string
	Err      error
	Duration time.Duration
}

// Written builds a successful outcome.
func Written(task string, at float64) Outcome {
	return Outcome{Task: task, Status: StatusWritten, Time: at}
}

// Skipped builds an outcome for a computation skip.
func Skipped(task string, at float64, reason error) Outcome {
	return Outcome{Task: task, Status: StatusSkipped, Time: at, Reason: reason.Error()}
}

// Abandoned builds an outcome for an environment failure.
func Abandoned(task string, at float64, step string, err error) Outcome {
	return Outcome{Task: task, Status: StatusAbandoned, Time: at, Reason: step, Err: err}
}
