package hashmap

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Stats summarizes how entries are spread over the buckets.
type Stats struct {
	Entries      int
	Buckets      int
	EmptyBuckets int
	LongestChain int
	LoadFactor   float64
	MeanChain    float64
	StdDevChain  float64
}

// Stats computes the current chain-length distribution.
func (m *Map[K, V]) Stats() Stats {
	lengths := make([]float64, len(m.buckets))
	empty := 0
	for i, bucket := range m.buckets {
		lengths[i] = float64(len(bucket))
		if len(bucket) == 0 {
			empty++
		}
	}

	var stddev float64
	if len(lengths) > 1 {
		stddev = stat.StdDev(lengths, nil)
	}

	return Stats{
		Entries:      m.count,
		Buckets:      len(m.buckets),
		EmptyBuckets: empty,
		LongestChain: int(floats.Max(lengths)),
		LoadFactor:   float64(m.count) / float64(len(m.buckets)),
		MeanChain:    stat.Mean(lengths, nil),
		StdDevChain:  stddev,
	}
}
