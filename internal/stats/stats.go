// Package stats holds the small numeric kernels behind the charts:
// NaN-aware means, box-plot summaries, average ranks and Spearman correlation.
package stats

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// DropNaN returns the non-NaN values of xs in a new slice.
func DropNaN(xs []float64) []float64 {
	out := make([]float64, 0, len(xs))
	for _, x := range xs {
		if !math.IsNaN(x) {
			out = append(out, x)
		}
	}
	return out
}

// Mean skips NaN values. An empty input yields (0, 0).
func Mean(xs []float64) (float64, int) {
	vals := DropNaN(xs)
	if len(vals) == 0 {
		return 0, 0
	}
	return stat.Mean(vals, nil), len(vals)
}

// Quantile interpolates linearly between closest ranks at position (n-1)·p.
// sorted must be ascending and NaN free.
func Quantile(sorted []float64, p float64) float64 {
	n := len(sorted)
	switch {
	case n == 0:
		return math.NaN()
	case n == 1 || p <= 0:
		return sorted[0]
	case p >= 1:
		return sorted[n-1]
	}
	pos := float64(n-1) * p
	lo := int(math.Floor(pos))
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}
	frac := pos - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}

// Percentages scales counts so they sum to 100. All-zero input stays zero.
func Percentages(counts []float64) []float64 {
	out := make([]float64, len(counts))
	total := floats.Sum(counts)
	if total == 0 {
		return out
	}
	for i, c := range counts {
		out[i] = c / total * 100
	}
	return out
}

// Ranks assigns 1-based ranks, ties get the average of their positions.
func Ranks(xs []float64) []float64 {
	n := len(xs)
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return xs[idx[a]] < xs[idx[b]] })

	ranks := make([]float64, n)
	for i := 0; i < n; {
		j := i + 1
		for j < n && xs[idx[j]] == xs[idx[i]] {
			j++
		}
		// positions i..j-1 share the average rank
		avg := float64(i+j+1) / 2
		for k := i; k < j; k++ {
			ranks[idx[k]] = avg
		}
		i = j
	}
	return ranks
}
