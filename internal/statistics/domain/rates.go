package domain

import (
	"errors"
	"time"
)

const (
	// DefaultSamplingInterval is the cadence of raw samples.
	DefaultSamplingInterval = 10 * time.Second
	// DefaultWindowInterval is the width of a history window.
	DefaultWindowInterval = 15 * time.Minute

	staleFactor = 1.5
)

var (
	ErrServerRestarted    = errors.New("server restarted between samples")
	ErrStalePrevious      = errors.New("previous sample is too old")
	ErrNonPositiveElapsed = errors.New("no time elapsed between samples")
	ErrNoPreviousSample   = errors.New("no recent raw sample to compare with")
)

// RateComputer derives per-second samples from consecutive raw samples.
type RateComputer struct {
	SamplingInterval time.Duration
	Cuts             CutTables
}

// NewRateComputer returns a RateComputer with the given cadence and cut tables.
func NewRateComputer(interval time.Duration, cuts CutTables) RateComputer {
	return RateComputer{SamplingInterval: interval, Cuts: cuts}
}

// Compute returns the per-second sample between previous and current. It
// returns one of ErrServerRestarted, ErrStalePrevious or ErrNonPositiveElapsed
// when the pair must not produce a sample; these are skips, not failures.
func (c RateComputer) Compute(current, previous RawSample) (PerSecondSample, error) {
	if previous.Server.Uptime > current.Server.Uptime {
		return PerSecondSample{}, ErrServerRestarted
	}

	if previous.Time+staleFactor*c.SamplingInterval.Seconds() < current.Time {
		return PerSecondSample{}, ErrStalePrevious
	}

	dt := current.Time - previous.Time
	if dt <= 0 {
		return PerSecondSample{}, ErrNonPositiveElapsed
	}

	rate := func(cur, prev int64) float64 {
		return float64(cur-prev) / dt
	}

	cs, ps := current.System, previous.System
	system := SystemRates{
		MinorPageFaultsPerSecond: rate(cs.MinorPageFaults, ps.MinorPageFaults),
		MajorPageFaultsPerSecond: rate(cs.MajorPageFaults, ps.MajorPageFaults),
		UserTimePerSecond:        (cs.UserTime - ps.UserTime) / dt,
		SystemTimePerSecond:      (cs.SystemTime - ps.SystemTime) / dt,
		ResidentSize:             float64(cs.ResidentSize),
		ResidentSizePercent:      cs.ResidentSizePercent,
		VirtualSize:              float64(cs.VirtualSize),
		NumberOfThreads:          float64(cs.NumberOfThreads),
	}

	ch, ph := current.HTTP, previous.HTTP
	http := HTTPRates{
		RequestsTotalPerSecond:   rate(ch.RequestsTotal, ph.RequestsTotal),
		RequestsAsyncPerSecond:   rate(ch.RequestsAsync, ph.RequestsAsync),
		RequestsGetPerSecond:     rate(ch.RequestsGet, ph.RequestsGet),
		RequestsHeadPerSecond:    rate(ch.RequestsHead, ph.RequestsHead),
		RequestsPostPerSecond:    rate(ch.RequestsPost, ph.RequestsPost),
		RequestsPutPerSecond:     rate(ch.RequestsPut, ph.RequestsPut),
		RequestsPatchPerSecond:   rate(ch.RequestsPatch, ph.RequestsPatch),
		RequestsDeletePerSecond:  rate(ch.RequestsDelete, ph.RequestsDelete),
		RequestsOptionsPerSecond: rate(ch.RequestsOptions, ph.RequestsOptions),
		RequestsOtherPerSecond:   rate(ch.RequestsOther, ph.RequestsOther),
	}

	cc, pc := current.Client, previous.Client
	client := ClientPerSecond{
		ClientRates: ClientRates{
			HTTPConnections:        float64(cc.HTTPConnections),
			BytesSentPerSecond:     (cc.BytesSent.Sum - pc.BytesSent.Sum) / dt,
			BytesReceivedPerSecond: (cc.BytesReceived.Sum - pc.BytesReceived.Sum) / dt,
			AvgTotalTime:           average(cc.TotalTime, pc.TotalTime),
			AvgRequestTime:         average(cc.RequestTime, pc.RequestTime),
			AvgQueueTime:           average(cc.QueueTime, pc.QueueTime),
		},
		BytesSentPercent:     ComputeDistribution(cc.BytesSent, &pc.BytesSent, c.Cuts.BytesSent),
		BytesReceivedPercent: ComputeDistribution(cc.BytesReceived, &pc.BytesReceived, c.Cuts.BytesReceived),
		TotalTimePercent:     ComputeDistribution(cc.TotalTime, &pc.TotalTime, c.Cuts.RequestTime),
		RequestTimePercent:   ComputeDistribution(cc.RequestTime, &pc.RequestTime, c.Cuts.RequestTime),
		QueueTimePercent:     ComputeDistribution(cc.QueueTime, &pc.QueueTime, c.Cuts.RequestTime),
	}
	client.AvgIoTime = client.AvgTotalTime - client.AvgRequestTime - client.AvgQueueTime

	return PerSecondSample{
		Time:   current.Time,
		System: system,
		HTTP:   http,
		Client: client,
		NodeID: current.NodeID,
	}, nil
}

// average is the mean value per observation added between two snapshots.
// No new observations means an average of zero.
func average(current, previous Accumulator) float64 {
	count := current.Count - previous.Count
	if count == 0 {
		return 0
	}
	return (current.Sum - previous.Sum) / float64(count)
}

// IsSkip reports whether err is a computation skip rather than a failure.
func IsSkip(err error) bool {
	return errors.Is(err, ErrServerRestarted) ||
		errors.Is(err, ErrStalePrevious) ||
		errors.Is(err, ErrNonPositiveElapsed) ||
		errors.Is(err, ErrNoPreviousSample) ||
		errors.Is(err, ErrEmptyWindow)
}
