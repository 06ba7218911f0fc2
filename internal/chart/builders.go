package chart

import (
	"math"

	"github.com/jmehdipour/credit-insights/internal/dataset"
	"github.com/jmehdipour/credit-insights/internal/model"
	"github.com/jmehdipour/credit-insights/internal/stats"
)

func scoreDistribution(t *dataset.Table) model.ChartSpec {
	counts := ScoreCounts(t)
	values := make([]float64, len(counts))
	for i, c := range counts {
		values[i] = float64(c)
	}
	return model.ChartSpec{
		Type:       model.ChartTypePie,
		Title:      "Credit Score Composition",
		Categories: model.ScoreLabels(),
		Series:     []model.Series{{Name: "Customers", Values: values}},
		Colors:     scoreColors,
		ShowLegend: true,
	}
}

func boxByScore(t *dataset.Table, f model.NumericField, title, yAxis string) model.ChartSpec {
	groups := ByScore(t, f)
	boxes := make([]model.BoxStats, len(model.ScoreOrder))
	for i, s := range model.ScoreOrder {
		boxes[i] = stats.Box(s.String(), groups[i])
	}
	return model.ChartSpec{
		Type:       model.ChartTypeBox,
		Title:      title,
		XAxis:      "Credit Score",
		YAxis:      yAxis,
		Categories: model.ScoreLabels(),
		Boxes:      boxes,
		Colors:     scoreColors,
	}
}

func incomeVsScore(t *dataset.Table) model.ChartSpec {
	return boxByScore(t, model.FieldAnnualIncome, "Annual Income by Credit Score", "Annual Income")
}

func cardsVsScore(t *dataset.Table) model.ChartSpec {
	return boxByScore(t, model.FieldNumCreditCard, "Number of Credit Cards by Credit Score", "Credit Cards")
}

func inquiriesVsScore(t *dataset.Table) model.ChartSpec {
	return boxByScore(t, model.FieldNumCreditInquiries, "Credit Inquiries by Credit Score", "Credit Inquiries")
}

func historyAgeVsScore(t *dataset.Table) model.ChartSpec {
	return boxByScore(t, model.FieldCreditHistoryAge, "Credit History Age (days) by Credit Score", "Credit History Age (days)")
}

func delayedPaymentsVsScore(t *dataset.Table) model.ChartSpec {
	groups := ByScore(t, model.FieldNumOfDelayedPayment)
	means := make([]float64, len(groups))
	for i, g := range groups {
		means[i], _ = stats.Mean(g)
	}
	return model.ChartSpec{
		Type:       model.ChartTypeBar,
		Title:      "Average Delayed Payments by Credit Score",
		XAxis:      "Credit Score",
		YAxis:      "Avg Delayed Payments",
		Categories: model.ScoreLabels(),
		Series:     []model.Series{{Name: "Avg Delayed Payments", Values: means}},
		Colors:     scoreColors,
	}
}

func seasonalTrends(t *dataset.Table) model.ChartSpec {
	months := SeasonalShares(t)
	cats := make([]string, len(months))
	series := make([]model.Series, len(model.ScoreOrder))
	for i, s := range model.ScoreOrder {
		series[i] = model.Series{Name: s.String(), Values: make([]float64, len(months))}
	}
	for j, m := range months {
		cats[j] = m.Month.String()
		for i := range series {
			series[i].Values[j] = m.Shares[i]
		}
	}
	return model.ChartSpec{
		Type:       model.ChartTypeLine,
		Title:      "Monthly Credit Score Distribution (%)",
		XAxis:      "Month",
		YAxis:      "Percentage of Customers",
		Categories: cats,
		Series:     series,
		Colors:     scoreColors,
		ShowLegend: true,
	}
}

func paymentBehaviorVsScore(t *dataset.Table) model.ChartSpec {
	ct := BehaviourCounts(t)
	series := make([]model.Series, len(model.ScoreOrder))
	for i, s := range model.ScoreOrder {
		vals := make([]float64, len(ct.Categories))
		for j := range ct.Categories {
			vals[j] = ct.Counts[j][i]
		}
		series[i] = model.Series{Name: s.String(), Values: vals}
	}
	return model.ChartSpec{
		Type:       model.ChartTypeBar,
		Title:      "Payment Behavior vs Credit Score",
		XAxis:      "Payment Behavior",
		YAxis:      "Count",
		Categories: ct.Categories,
		Series:     series,
		BarMode:    "stack",
		Colors:     scoreColors,
		ShowLegend: true,
	}
}

func occupationVsScore(t *dataset.Table) model.ChartSpec {
	ct := OccupationShares(t)
	cells := make([][]*float64, len(ct.Categories))
	for i := range ct.Categories {
		cells[i] = make([]*float64, len(model.ScoreOrder))
		for j := range model.ScoreOrder {
			v := ct.Counts[i][j]
			cells[i][j] = &v
		}
	}
	return model.ChartSpec{
		Type:  model.ChartTypeHeatmap,
		Title: "Occupation vs Credit Score (%)",
		XAxis: "Credit Score",
		YAxis: "Occupation",
		Heatmap: &model.Heatmap{
			Rows:       ct.Categories,
			Columns:    model.ScoreLabels(),
			Cells:      cells,
			ColorScale: "YlGnBu",
			Min:        0,
			Max:        100,
		},
	}
}

// correlationHeatmap keeps only the strict lower triangle; the diagonal,
// the upper triangle and undefined coefficients are nil.
func correlationHeatmap(t *dataset.Table) model.ChartSpec {
	m := Correlation(t)
	cells := make([][]*float64, len(m.Values))
	for i, row := range m.Values {
		cells[i] = make([]*float64, len(row))
		for j := 0; j < i; j++ {
			v := row[j]
			if math.IsNaN(v) {
				continue
			}
			v = math.Round(v*100) / 100
			cells[i][j] = &v
		}
	}
	return model.ChartSpec{
		Type:  model.ChartTypeHeatmap,
		Title: "Spearman Correlation Heatmap",
		Heatmap: &model.Heatmap{
			Rows:       m.Columns,
			Columns:    m.Columns,
			Cells:      cells,
			ColorScale: "RdBu_r",
			Min:        -1,
			Max:        1,
		},
	}
}
