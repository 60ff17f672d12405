package domain

// SystemFigures are the process resource counters read at one instant.
// Page faults and CPU times are cumulative since process start; the sizes,
// the resident percentage and the thread count are gauges.
type SystemFigures struct {
	MinorPageFaults     int64   `json:"minorPageFaults"`
	MajorPageFaults     int64   `json:"majorPageFaults"`
	UserTime            float64 `json:"userTime"`
	SystemTime          float64 `json:"systemTime"`
	ResidentSize        int64   `json:"residentSize"`
	ResidentSizePercent float64 `json:"residentSizePercent"`
	VirtualSize         int64   `json:"virtualSize"`
	NumberOfThreads     int64   `json:"numberOfThreads"`
}

// HTTPFigures are cumulative request counters, one per verb.
type HTTPFigures struct {
	RequestsTotal   int64 `json:"requestsTotal"`
	RequestsAsync   int64 `json:"requestsAsync"`
	RequestsGet     int64 `json:"requestsGet"`
	RequestsHead    int64 `json:"requestsHead"`
	RequestsPost    int64 `json:"requestsPost"`
	RequestsPut     int64 `json:"requestsPut"`
	RequestsPatch   int64 `json:"requestsPatch"`
	RequestsDelete  int64 `json:"requestsDelete"`
	RequestsOptions int64 `json:"requestsOptions"`
	RequestsOther   int64 `json:"requestsOther"`
}

// Accumulator is a cumulative histogram: the running sum and count of all
// observed values plus one counter per bucket of a fixed cut table.
type Accumulator struct {
	Sum    float64 `json:"sum"`
	Count  int64   `json:"count"`
	Counts []int64 `json:"counts"`
}

// ClientFigures hold the connection gauge and the request distributions.
type ClientFigures struct {
	HTTPConnections int64       `json:"httpConnections"`
	BytesSent       Accumulator `json:"bytesSent"`
	BytesReceived   Accumulator `json:"bytesReceived"`
	TotalTime       Accumulator `json:"totalTime"`
	RequestTime     Accumulator `json:"requestTime"`
	QueueTime       Accumulator `json:"queueTime"`
}

// ServerFigures only carry the uptime, used to detect restarts.
type ServerFigures struct {
	Uptime float64 `json:"uptime"`
}

// Figures is one instantaneous read of the runtime metrics source.
type Figures struct {
	System SystemFigures
	HTTP   HTTPFigures
	Client ClientFigures
	Server ServerFigures
}

// RawSample is a persisted snapshot of Figures.
type RawSample struct {
	Time   float64       `json:"time"`
	System SystemFigures `json:"system"`
	HTTP   HTTPFigures   `json:"http"`
	Client ClientFigures `json:"client"`
	Server ServerFigures `json:"server"`
	NodeID string        `json:"nodeId,omitempty"`
}

// NewRawSample tags figures with a sample time and the producing node.
func NewRawSample(now float64, figures Figures, nodeID string) RawSample {
	return RawSample{
		Time:   now,
		System: figures.System,
		HTTP:   figures.HTTP,
		Client: figures.Client,
		Server: figures.Server,
		NodeID: nodeID,
	}
}
