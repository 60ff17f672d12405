package domain

import "errors"

// ErrEmptyWindow means no per-second sample fell into the window.
var ErrEmptyWindow = errors.New("no samples in window")

// ComputeWindow averages the scalar fields of every sample with
// time >= since. The samples are expected in ascending time order; the
// window takes the time of the last one. The boolean is false when no sample
// was folded, in which case every field is zero and the window has no time.
func ComputeWindow(samples []PerSecondSample, since float64) (WindowSample, bool) {
	var w WindowSample
	count := 0

	for _, s := range samples {
		if s.Time < since {
			continue
		}

		w.Time = s.Time
		w.NodeID = s.NodeID

		w.System.MinorPageFaultsPerSecond += s.System.MinorPageFaultsPerSecond
		w.System.MajorPageFaultsPerSecond += s.System.MajorPageFaultsPerSecond
		w.System.UserTimePerSecond += s.System.UserTimePerSecond
		w.System.SystemTimePerSecond += s.System.SystemTimePerSecond
		w.System.ResidentSize += s.System.ResidentSize
		w.System.ResidentSizePercent += s.System.ResidentSizePercent
		w.System.VirtualSize += s.System.VirtualSize
		w.System.NumberOfThreads += s.System.NumberOfThreads

		w.HTTP.RequestsTotalPerSecond += s.HTTP.RequestsTotalPerSecond
		w.HTTP.RequestsAsyncPerSecond += s.HTTP.RequestsAsyncPerSecond
		w.HTTP.RequestsGetPerSecond += s.HTTP.RequestsGetPerSecond
		w.HTTP.RequestsHeadPerSecond += s.HTTP.RequestsHeadPerSecond
		w.HTTP.RequestsPostPerSecond += s.HTTP.RequestsPostPerSecond
		w.HTTP.RequestsPutPerSecond += s.HTTP.RequestsPutPerSecond
		w.HTTP.RequestsPatchPerSecond += s.HTTP.RequestsPatchPerSecond
		w.HTTP.RequestsDeletePerSecond += s.HTTP.RequestsDeletePerSecond
		w.HTTP.RequestsOptionsPerSecond += s.HTTP.RequestsOptionsPerSecond
		w.HTTP.RequestsOtherPerSecond += s.HTTP.RequestsOtherPerSecond

		w.Client.HTTPConnections += s.Client.HTTPConnections
		w.Client.BytesSentPerSecond += s.Client.BytesSentPerSecond
		w.Client.BytesReceivedPerSecond += s.Client.BytesReceivedPerSecond
		w.Client.AvgTotalTime += s.Client.AvgTotalTime
		w.Client.AvgRequestTime += s.Client.AvgRequestTime
		w.Client.AvgQueueTime += s.Client.AvgQueueTime
		w.Client.AvgIoTime += s.Client.AvgIoTime

		count++
	}

	if count == 0 {
		return w, false
	}

	n := float64(count)

	w.System.MinorPageFaultsPerSecond /= n
	w.System.MajorPageFaultsPerSecond /= n
	w.System.UserTimePerSecond /= n
	w.System.SystemTimePerSecond /= n
	w.System.ResidentSize /= n
	w.System.ResidentSizePercent /= n
	w.System.VirtualSize /= n
	w.System.NumberOfThreads /= n

	w.HTTP.RequestsTotalPerSecond /= n
	w.HTTP.RequestsAsyncPerSecond /= n
	w.HTTP.RequestsGetPerSecond /= n
	w.HTTP.RequestsHeadPerSecond /= n
	w.HTTP.RequestsPostPerSecond /= n
	w.HTTP.RequestsPutPerSecond /= n
	w.HTTP.RequestsPatchPerSecond /= n
	w.HTTP.RequestsDeletePerSecond /= n
	w.HTTP.RequestsOptionsPerSecond /= n
	w.HTTP.RequestsOtherPerSecond /= n

	w.Client.HTTPConnections /= n
	w.Client.BytesSentPerSecond /= n
	w.Client.BytesReceivedPerSecond /= n
	w.Client.AvgTotalTime /= n
	w.Client.AvgRequestTime /= n
	w.Client.AvgQueueTime /= n
	w.Client.AvgIoTime /= n

	return w, true
}
