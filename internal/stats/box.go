package stats

import (
	"math"
	"sort"

	"github.com/jmehdipour/credit-insights/internal/model"
)

// Box summarises xs for a box plot. NaN values are ignored; an empty
// input gives a zero box with Count 0 so the category axis stays intact.
func Box(label string, xs []float64) model.BoxStats {
	vals := DropNaN(xs)
	b := model.BoxStats{Label: label, Count: len(vals)}
	if len(vals) == 0 {
		return b
	}
	sort.Float64s(vals)

	b.Min = vals[0]
	b.Max = vals[len(vals)-1]
	b.Q1 = Quantile(vals, 0.25)
	b.Median = Quantile(vals, 0.5)
	b.Q3 = Quantile(vals, 0.75)
	b.Mean, _ = Mean(vals)

	iqr := b.Q3 - b.Q1
	lo, hi := b.Q1-1.5*iqr, b.Q3+1.5*iqr
	b.LowerFence, b.UpperFence = math.Inf(1), math.Inf(-1)
	for _, v := range vals {
		if v < lo || v > hi {
			b.Outliers++
			continue
		}
		if v < b.LowerFence {
			b.LowerFence = v
		}
		if v > b.UpperFence {
			b.UpperFence = v
		}
	}
	// keep fences finite for encoding
	if math.IsInf(b.LowerFence, 1) {
		b.LowerFence, b.UpperFence = b.Q1, b.Q3
	}
	return b
}
