// Package chart turns the prepared credit table into declarative chart specs.
package chart

import (
	"strconv"

	"github.com/jmehdipour/credit-insights/internal/dataset"
	"github.com/jmehdipour/credit-insights/internal/model"
)

// Palette used for the score axis, in model.ScoreOrder.
var scoreColors = []string{"#EF4444", "#F59E0B", "#10B981"}

type builder func(t *dataset.Table) model.ChartSpec

// Render computes the aggregate behind kind and returns its chart spec.
// It never modifies t and returns the same spec for the same inputs.
func Render(kind model.ChartKind, t *dataset.Table) (model.ChartSpec, error) {
	var b builder
	switch kind {
	case model.ChartScoreDistribution:
		b = scoreDistribution
	case model.ChartIncomeVsScore:
		b = incomeVsScore
	case model.ChartCardsVsScore:
		b = cardsVsScore
	case model.ChartDelayedPaymentsVsScore:
		b = delayedPaymentsVsScore
	case model.ChartSeasonalTrends:
		b = seasonalTrends
	case model.ChartPaymentBehaviorVsScore:
		b = paymentBehaviorVsScore
	case model.ChartOccupationVsScore:
		b = occupationVsScore
	case model.ChartInquiriesVsScore:
		b = inquiriesVsScore
	case model.ChartHistoryAgeVsScore:
		b = historyAgeVsScore
	case model.ChartCorrelationHeatmap:
		b = correlationHeatmap
	default:
		return model.ChartSpec{}, &UnknownChartError{Kind: strconv.Itoa(int(kind))}
	}

	spec := b(t)
	spec.Kind = kind
	spec.Insight = Insight(kind)
	return spec, nil
}

// RenderByName parses name (slug or title) and renders it.
func RenderByName(name string, t *dataset.Table) (model.ChartSpec, error) {
	kind, ok := model.ParseChartKind(name)
	if !ok {
		return model.ChartSpec{}, &UnknownChartError{Kind: name}
	}
	return Render(kind, t)
}
