package dataset

import (
	"sort"

	"github.com/go-gota/gota/series"
	"github.com/jmehdipour/credit-insights/internal/model"
	"github.com/jmehdipour/credit-insights/internal/stats"
)

// ColumnSummary mirrors a dataframe describe() row for one numeric column.
// Std is the sample standard deviation, 0 when Count < 2.
type ColumnSummary struct {
	Column string  `json:"column"`
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Std    float64 `json:"std"`
	Min    float64 `json:"min"`
	P25    float64 `json:"p25"`
	P50    float64 `json:"p50"`
	P75    float64 `json:"p75"`
	Max    float64 `json:"max"`
}

// Describe summarises every numeric column of t, ignoring missing cells.
func Describe(t *Table) []ColumnSummary {
	out := make([]ColumnSummary, 0, len(model.NumericFields))
	for _, f := range model.NumericFields {
		vals := stats.DropNaN(t.Column(f))
		cs := ColumnSummary{Column: f.String(), Count: len(vals)}
		if len(vals) == 0 {
			out = append(out, cs)
			continue
		}
		s := series.New(vals, series.Float, f.String())
		cs.Mean = s.Mean()
		cs.Min = s.Min()
		cs.Max = s.Max()
		if len(vals) > 1 {
			cs.Std = s.StdDev()
		}

		sort.Float64s(vals)
		cs.P25 = stats.Quantile(vals, 0.25)
		cs.P50 = stats.Quantile(vals, 0.5)
		cs.P75 = stats.Quantile(vals, 0.75)
		out = append(out, cs)
	}
	return out
}
