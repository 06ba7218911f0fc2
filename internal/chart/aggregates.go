package chart

import (
	"sort"
	"time"

	"github.com/jmehdipour/credit-insights/internal/dataset"
	"github.com/jmehdipour/credit-insights/internal/model"
	"github.com/jmehdipour/credit-insights/internal/stats"
)

// ScoreCounts counts rows per score label, indexed by model.ScoreOrder.
func ScoreCounts(t *dataset.Table) [3]int {
	var out [3]int
	t.Each(func(_ int, r model.CustomerRecord) {
		if i := r.CreditScore.Index(); i >= 0 {
			out[i]++
		}
	})
	return out
}

// ByScore splits a numeric field into one slice per score label.
func ByScore(t *dataset.Table, f model.NumericField) [3][]float64 {
	var out [3][]float64
	t.Each(func(_ int, r model.CustomerRecord) {
		if i := r.CreditScore.Index(); i >= 0 {
			out[i] = append(out[i], f.Value(&r))
		}
	})
	return out
}

// MonthShare is the percentage of each score label within one month.
type MonthShare struct {
	Month  time.Month
	Total  int
	Shares [3]float64
}

// SeasonalShares returns one entry per month present, in calendar order.
// Each entry's shares sum to 100.
func SeasonalShares(t *dataset.Table) []MonthShare {
	var counts [13][3]float64
	t.Each(func(_ int, r model.CustomerRecord) {
		i := r.CreditScore.Index()
		if i < 0 || r.Month < time.January || r.Month > time.December {
			return
		}
		counts[r.Month][i]++
	})

	var out []MonthShare
	for m := time.January; m <= time.December; m++ {
		c := counts[m]
		total := c[0] + c[1] + c[2]
		if total == 0 {
			continue
		}
		ms := MonthShare{Month: m, Total: int(total)}
		copy(ms.Shares[:], stats.Percentages(c[:]))
		out = append(out, ms)
	}
	return out
}

// CategoryCounts is a crosstab of one categorical column against score.
type CategoryCounts struct {
	Categories []string
	Counts     [][3]float64 // aligned with Categories
}

func crosstab(t *dataset.Table, key func(r *model.CustomerRecord) string) CategoryCounts {
	var ct CategoryCounts
	pos := map[string]int{}
	t.Each(func(_ int, r model.CustomerRecord) {
		i := r.CreditScore.Index()
		if i < 0 {
			return
		}
		k := key(&r)
		p, ok := pos[k]
		if !ok {
			p = len(ct.Categories)
			pos[k] = p
			ct.Categories = append(ct.Categories, k)
			ct.Counts = append(ct.Counts, [3]float64{})
		}
		ct.Counts[p][i]++
	})
	return ct
}

// BehaviourCounts counts rows per (payment behaviour, score); behaviours keep
// first-seen order.
func BehaviourCounts(t *dataset.Table) CategoryCounts {
	return crosstab(t, func(r *model.CustomerRecord) string { return r.PaymentBehaviour })
}

// OccupationShares is the row-normalised occupation × score crosstab in
// percent, occupations sorted alphabetically. Every row sums to 100.
func OccupationShares(t *dataset.Table) CategoryCounts {
	ct := crosstab(t, func(r *model.CustomerRecord) string { return r.Occupation })
	order := make([]int, len(ct.Categories))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool { return ct.Categories[order[a]] < ct.Categories[order[b]] })

	out := CategoryCounts{
		Categories: make([]string, len(order)),
		Counts:     make([][3]float64, len(order)),
	}
	for i, j := range order {
		out.Categories[i] = ct.Categories[j]
		copy(out.Counts[i][:], stats.Percentages(ct.Counts[j][:]))
	}
	return out
}

// Correlation is the Spearman matrix over model.CorrelationFields.
func Correlation(t *dataset.Table) stats.CorrMatrix {
	names := make([]string, len(model.CorrelationFields))
	cols := make([][]float64, len(model.CorrelationFields))
	for i, f := range model.CorrelationFields {
		names[i] = f.String()
		cols[i] = t.Column(f)
	}
	return stats.SpearmanMatrix(names, cols)
}
