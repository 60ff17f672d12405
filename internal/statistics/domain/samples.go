package domain

// SystemRates is the system block shared by per-second and window samples.
type SystemRates struct {
	MinorPageFaultsPerSecond float64 `json:"minorPageFaultsPerSecond"`
	MajorPageFaultsPerSecond float64 `json:"majorPageFaultsPerSecond"`
	UserTimePerSecond        float64 `json:"userTimePerSecond"`
	SystemTimePerSecond      float64 `json:"systemTimePerSecond"`
	ResidentSize             float64 `json:"residentSize"`
	ResidentSizePercent      float64 `json:"residentSizePercent"`
	VirtualSize              float64 `json:"virtualSize"`
	NumberOfThreads          float64 `json:"numberOfThreads"`
}

// HTTPRates is the http block shared by per-second and window samples.
type HTTPRates struct {
	RequestsTotalPerSecond   float64 `json:"requestsTotalPerSecond"`
	RequestsAsyncPerSecond   float64 `json:"requestsAsyncPerSecond"`
	RequestsGetPerSecond     float64 `json:"requestsGetPerSecond"`
	RequestsHeadPerSecond    float64 `json:"requestsHeadPerSecond"`
	RequestsPostPerSecond    float64 `json:"requestsPostPerSecond"`
	RequestsPutPerSecond     float64 `json:"requestsPutPerSecond"`
	RequestsPatchPerSecond   float64 `json:"requestsPatchPerSecond"`
	RequestsDeletePerSecond  float64 `json:"requestsDeletePerSecond"`
	RequestsOptionsPerSecond float64 `json:"requestsOptionsPerSecond"`
	RequestsOtherPerSecond   float64 `json:"requestsOtherPerSecond"`
}

// ClientRates holds the scalar client figures. The avg* fields are averages
// per request over the sampled interval, not rates.
type ClientRates struct {
	HTTPConnections        float64 `json:"httpConnections"`
	BytesSentPerSecond     float64 `json:"bytesSentPerSecond"`
	BytesReceivedPerSecond float64 `json:"bytesReceivedPerSecond"`
	AvgTotalTime           float64 `json:"avgTotalTime"`
	AvgRequestTime         float64 `json:"avgRequestTime"`
	AvgQueueTime           float64 `json:"avgQueueTime"`
	AvgIoTime              float64 `json:"avgIoTime"`
}

// ClientPerSecond adds the percentage distributions to the scalar client block.
type ClientPerSecond struct {
	ClientRates
	BytesSentPercent     Distribution `json:"bytesSentPercent"`
	BytesReceivedPercent Distribution `json:"bytesReceivedPercent"`
	TotalTimePercent     Distribution `json:"totalTimePercent"`
	RequestTimePercent   Distribution `json:"requestTimePercent"`
	QueueTimePercent     Distribution `json:"queueTimePercent"`
}

// PerSecondSample is derived from two consecutive raw samples. Time is the
// time of the later one.
type PerSecondSample struct {
	Time   float64         `json:"time"`
	System SystemRates     `json:"system"`
	HTTP   HTTPRates       `json:"http"`
	Client ClientPerSecond `json:"client"`
	NodeID string          `json:"nodeId,omitempty"`
}

// WindowSample averages the scalar fields of the per-second samples of one
// window. Time is the time of the last folded sample.
type WindowSample struct {
	Time   float64     `json:"time"`
	System SystemRates `json:"system"`
	HTTP   HTTPRates   `json:"http"`
	Client ClientRates `json:"client"`
	NodeID string      `json:"nodeId,omitempty"`
}
