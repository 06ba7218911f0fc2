package stats

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// CorrMatrix holds a symmetric correlation matrix across named columns.
type CorrMatrix struct {
	Columns []string
	Values  [][]float64 // row-major, Values[i][j]
}

// Spearman is the rank correlation of x and y over the rows where both are
// present. It is NaN when fewer than two rows remain or either side is constant.
func Spearman(x, y []float64) float64 {
	n := len(x)
	if len(y) < n {
		n = len(y)
	}
	xs := make([]float64, 0, n)
	ys := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		if math.IsNaN(x[i]) || math.IsNaN(y[i]) {
			continue
		}
		xs = append(xs, x[i])
		ys = append(ys, y[i])
	}
	return rankCorrelation(Ranks(xs), Ranks(ys))
}

func rankCorrelation(rx, ry []float64) float64 {
	if len(rx) < 2 || constant(rx) || constant(ry) {
		return math.NaN()
	}
	r := stat.Correlation(rx, ry, nil)
	// guard float drift past the unit interval
	return math.Max(-1, math.Min(1, r))
}

func constant(xs []float64) bool {
	for _, x := range xs[1:] {
		if x != xs[0] {
			return false
		}
	}
	return true
}

// SpearmanMatrix computes pairwise Spearman correlations. The diagonal is 1
// and Values[i][j] == Values[j][i] by construction.
func SpearmanMatrix(names []string, cols [][]float64) CorrMatrix {
	k := len(cols)
	m := CorrMatrix{Columns: append([]string(nil), names...), Values: make([][]float64, k)}
	for i := range m.Values {
		m.Values[i] = make([]float64, k)
		m.Values[i][i] = 1
	}

	// columns without gaps are ranked once and reused for every pair
	ranked := make([][]float64, k)
	for i, c := range cols {
		if !hasNaN(c) {
			ranked[i] = Ranks(c)
		}
	}

	for i := 0; i < k; i++ {
		for j := 0; j < i; j++ {
			var r float64
			if ranked[i] != nil && ranked[j] != nil && len(cols[i]) == len(cols[j]) {
				r = rankCorrelation(ranked[i], ranked[j])
			} else {
				r = Spearman(cols[i], cols[j])
			}
			m.Values[i][j] = r
			m.Values[j][i] = r
		}
	}
	return m
}

func hasNaN(xs []float64) bool {
	for _, x := range xs {
		if math.IsNaN(x) {
			return true
		}
	}
	return false
}
