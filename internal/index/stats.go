package index

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Stats summarizes the catalog: entry counts, tree shape, and the size
// distribution in whole kilobytes.
type Stats struct {
	Count      int            `json:"count"`
	Keys       int            `json:"keys"`
	Height     int            `json:"height"`
	TotalKB    int            `json:"total_kb"`
	MeanKB     float64        `json:"mean_kb"`
	MedianKB   float64        `json:"median_kb"`
	StdDevKB   float64        `json:"stddev_kb"`
	MinKB      int            `json:"min_kb"`
	MaxKB      int            `json:"max_kb"`
	Extensions map[string]int `json:"extensions"`
}

// Stats computes the current summary. An empty catalog yields zeroes.
func (ix *Index) Stats() Stats {
	entries := ix.All()
	s := Stats{
		Count:      len(entries),
		Keys:       ix.Keys(),
		Height:     ix.Height(),
		Extensions: make(map[string]int),
	}
	if len(entries) == 0 {
		return s
	}

	sizes := make([]float64, len(entries))
	s.MinKB = entries[0].SizeKB
	for i, e := range entries {
		sizes[i] = float64(e.SizeKB)
		s.TotalKB += e.SizeKB
		if e.SizeKB < s.MinKB {
			s.MinKB = e.SizeKB
		}
		if e.SizeKB > s.MaxKB {
			s.MaxKB = e.SizeKB
		}
		ext := e.Extension
		if ext == "" {
			ext = "(none)"
		}
		s.Extensions[ext]++
	}

	s.MeanKB = stat.Mean(sizes, nil)
	if len(sizes) > 1 {
		s.StdDevKB = stat.StdDev(sizes, nil)
	}

	sort.Float64s(sizes)
	s.MedianKB = stat.Quantile(0.5, stat.Empirical, sizes, nil)
	return s
}
