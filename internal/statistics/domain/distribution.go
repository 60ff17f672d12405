package domain

// Distribution is a normalized histogram: Values[i] is the fraction of the
// observations that fell into bucket i. The last bucket collects everything
// above the last cut, so len(Values) == len(Cuts)+1.
type Distribution struct {
	Values []float64 `json:"values"`
	Cuts   []float64 `json:"cuts"`
}

// CutTables are the bucket boundaries of the client distributions. The three
// time distributions share RequestTime.
type CutTables struct {
	BytesSent     []float64 `json:"bytesSent" yaml:"bytes_sent"`
	BytesReceived []float64 `json:"bytesReceived" yaml:"bytes_received"`
	RequestTime   []float64 `json:"requestTime" yaml:"request_time"`
}

// DefaultCutTables returns the stock cut tables: sizes in bytes, times in seconds.
func DefaultCutTables() CutTables {
	return CutTables{
		BytesSent:     []float64{250, 1000, 2000, 5000, 10000},
		BytesReceived: []float64{250, 1000, 2000, 5000, 10000},
		RequestTime:   []float64{0.01, 0.05, 0.1, 0.2, 0.5, 1.0},
	}
}

// ComputeDistribution turns a pair of accumulator snapshots into the share of
// observations per bucket. With no previous snapshot the shares cover
// everything since start; otherwise only the increments between the two.
// A zero count yields all-zero values.
func ComputeDistribution(current Accumulator, previous *Accumulator, cuts []float64) Distribution {
	n := len(cuts) + 1
	values := make([]float64, n)

	count := current.Count
	if previous != nil {
		count -= previous.Count
	}

	if count != 0 {
		for i := 0; i < n; i++ {
			delta := bucket(current.Counts, i)
			if previous != nil {
				delta -= bucket(previous.Counts, i)
			}
			values[i] = float64(delta) / float64(count)
		}
	}

	return Distribution{Values: values, Cuts: cuts}
}

func bucket(counts []int64, i int) int64 {
	if i < len(counts) {
		return counts[i]
	}
	return 0
}

// BucketIndex returns the bucket a value falls into: the first cut that is
// greater or equal to the value, or the overflow bucket.
func BucketIndex(cuts []float64, value float64) int {
	for i, cut := range cuts {
		if value <= cut {
			return i
		}
	}
	return len(cuts)
}
