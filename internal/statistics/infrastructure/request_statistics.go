package infrastructure

import (
	"fmt"
	"math"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/rcrowley/go-metrics"

	"historian/internal/statistics/domain"
)

const histogramReservoir = 1028

// Accumulator is a cumulative histogram over a fixed cut table, kept in
// go-metrics values: <name>.count, <name>.sum and one <name>.bucket.<i>
// counter per bucket. Bucket i counts values <= cuts[i]; the last bucket
// counts the rest. The sum is stored in multiples of unit.
type Accumulator struct {
	cuts      []float64
	unit      float64
	count     metrics.Counter
	sum       metrics.Counter
	buckets   []metrics.Counter
	histogram metrics.Histogram
}

func newAccumulator(r metrics.Registry, name string, cuts []float64, unit float64) (*Accumulator, error) {
	a := &Accumulator{
		cuts:      cuts,
		unit:      unit,
		count:     metrics.NewCounter(),
		sum:       metrics.NewCounter(),
		buckets:   make([]metrics.Counter, len(cuts)+1),
		histogram: metrics.NewHistogram(metrics.NewUniformSample(histogramReservoir)),
	}

	if err := r.Register(name, a.histogram); err != nil {
		return nil, fmt.Errorf("failed to register %s: %w", name, err)
	}
	if err := r.Register(name+".count", a.count); err != nil {
		return nil, fmt.Errorf("failed to register %s.count: %w", name, err)
	}
	if err := r.Register(name+".sum", a.sum); err != nil {
		return nil, fmt.Errorf("failed to register %s.sum: %w", name, err)
	}
	for i := range a.buckets {
		a.buckets[i] = metrics.NewCounter()
		bucket := fmt.Sprintf("%s.bucket.%d", name, i)
		if err := r.Register(bucket, a.buckets[i]); err != nil {
			return nil, fmt.Errorf("failed to register %s: %w", bucket, err)
		}
	}

	return a, nil
}

// Observe adds one value
func (a *Accumulator) Observe(v float64) {
	scaled := int64(math.Round(v / a.unit))
	a.count.Inc(1)
	a.sum.Inc(scaled)
	a.buckets[domain.BucketIndex(a.cuts, v)].Inc(1)
	a.histogram.Update(scaled)
}

// Snapshot reads the running totals
func (a *Accumulator) Snapshot() domain.Accumulator {
	counts := make([]int64, len(a.buckets))
	for i, bucket := range a.buckets {
		counts[i] = bucket.Count()
	}
	return domain.Accumulator{
		Sum:    float64(a.sum.Count()) * a.unit,
		Count:  a.count.Count(),
		Counts: counts,
	}
}

// RequestStatistics collects the request counters, the connection gauge and
// the client distributions of the HTTP server in a go-metrics registry.
type RequestStatistics struct {
	total   metrics.Counter
	async   metrics.Counter
	methods map[string]metrics.Counter
	other   metrics.Counter

	open        atomic.Int64
	connections metrics.Gauge

	bytesSent     *Accumulator
	bytesReceived *Accumulator
	totalTime     *Accumulator
	requestTime   *Accumulator
	queueTime     *Accumulator
}

// NewRequestStatistics registers every metric under "statistics." in parent.
// Request times are in seconds, summed in microseconds; sizes in bytes.
func NewRequestStatistics(parent metrics.Registry, cuts domain.CutTables) (*RequestStatistics, error) {
	r := metrics.NewPrefixedChildRegistry(parent, "statistics.")

	s := &RequestStatistics{
		total:   metrics.NewRegisteredCounter("http.requests.total", r),
		async:   metrics.NewRegisteredCounter("http.requests.async", r),
		methods: map[string]metrics.Counter{
			http.MethodGet:     metrics.NewRegisteredCounter("http.requests.get", r),
			http.MethodHead:    metrics.NewRegisteredCounter("http.requests.head", r),
			http.MethodPost:    metrics.NewRegisteredCounter("http.requests.post", r),
			http.MethodPut:     metrics.NewRegisteredCounter("http.requests.put", r),
			http.MethodPatch:   metrics.NewRegisteredCounter("http.requests.patch", r),
			http.MethodDelete:  metrics.NewRegisteredCounter("http.requests.delete", r),
			http.MethodOptions: metrics.NewRegisteredCounter("http.requests.options", r),
		},
		other:       metrics.NewRegisteredCounter("http.requests.other", r),
		connections: metrics.NewRegisteredGauge("client.connections", r),
	}

	accumulators := []struct {
		target **Accumulator
		name   string
		cuts   []float64
		unit   float64
	}{
		{&s.bytesSent, "client.bytes_sent", cuts.BytesSent, 1},
		{&s.bytesReceived, "client.bytes_received", cuts.BytesReceived, 1},
		{&s.totalTime, "client.total_time", cuts.RequestTime, time.Microsecond.Seconds()},
		{&s.requestTime, "client.request_time", cuts.RequestTime, time.Microsecond.Seconds()},
		{&s.queueTime, "client.queue_time", cuts.RequestTime, time.Microsecond.Seconds()},
	}
	for _, acc := range accumulators {
		a, err := newAccumulator(r, acc.name, acc.cuts, acc.unit)
		if err != nil {
			return nil, err
		}
		*acc.target = a
	}

	return s, nil
}

// Connection marks a request as in flight
func (s *RequestStatistics) Connection() {
	s.connections.Update(s.open.Add(1))
}

// Disconnection marks a request as finished
func (s *RequestStatistics) Disconnection() {
	s.connections.Update(s.open.Add(-1))
}

// CountRequest counts one request by verb; async requests are also counted
// separately.
func (s *RequestStatistics) CountRequest(method string, async bool) {
	s.total.Inc(1)
	if async {
		s.async.Inc(1)
	}

	if counter, ok := s.methods[method]; ok {
		counter.Inc(1)
	} else {
		s.other.Inc(1)
	}
}

// ObserveTransfer records the body sizes of one request.
func (s *RequestStatistics) ObserveTransfer(sent, received int64) {
	s.bytesSent.Observe(float64(sent))
	s.bytesReceived.Observe(float64(received))
}

// ObserveTimes records the time spent queued, in the handler and overall.
func (s *RequestStatistics) ObserveTimes(queue, request, total time.Duration) {
	s.queueTime.Observe(queue.Seconds())
	s.requestTime.Observe(request.Seconds())
	s.totalTime.Observe(total.Seconds())
}

// Snapshot returns the cumulative counters and distributions
func (s *RequestStatistics) Snapshot() (domain.HTTPFigures, domain.ClientFigures) {
	httpFigures := domain.HTTPFigures{
		RequestsTotal:   s.total.Count(),
		RequestsAsync:   s.async.Count(),
		RequestsGet:     s.methods[http.MethodGet].Count(),
		RequestsHead:    s.methods[http.MethodHead].Count(),
		RequestsPost:    s.methods[http.MethodPost].Count(),
		RequestsPut:     s.methods[http.MethodPut].Count(),
		RequestsPatch:   s.methods[http.MethodPatch].Count(),
		RequestsDelete:  s.methods[http.MethodDelete].Count(),
		RequestsOptions: s.methods[http.MethodOptions].Count(),
		RequestsOther:   s.other.Count(),
	}

	clientFigures := domain.ClientFigures{
		HTTPConnections: s.connections.Value(),
		BytesSent:       s.bytesSent.Snapshot(),
		BytesReceived:   s.bytesReceived.Snapshot(),
		TotalTime:       s.totalTime.Snapshot(),
		RequestTime:     s.requestTime.Snapshot(),
		QueueTime:       s.queueTime.Snapshot(),
	}

	return httpFigures, clientFigures
}
