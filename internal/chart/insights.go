package chart

import "github.com/jmehdipour/credit-insights/internal/model"

var insights = map[model.ChartKind]string{
	model.ChartScoreDistribution:      "Over half of customers fall into the Standard tier, showing upgrade potential.",
	model.ChartIncomeVsScore:          "Higher income levels are generally associated with better credit scores.",
	model.ChartCardsVsScore:           "Customers with too many credit cards often trend towards lower credit scores.",
	model.ChartDelayedPaymentsVsScore: "Delayed payments are the strongest negative driver of credit scores.",
	model.ChartSeasonalTrends:         "Seasonal shifts show when credit performance weakens or improves.",
	model.ChartPaymentBehaviorVsScore: "Payment behavior strongly differentiates Good vs Poor customers.",
	model.ChartOccupationVsScore:      "Certain occupations have stronger associations with good credit standing.",
	model.ChartInquiriesVsScore:       "Multiple credit inquiries usually signal higher risk.",
	model.ChartHistoryAgeVsScore:      "Longer credit history is positively linked with higher scores.",
	model.ChartCorrelationHeatmap:     "Delayed payments & multiple inquiries show strongest negative correlation with credit score.",
}

// Insight is the one-line business commentary shown next to a chart.
func Insight(kind model.ChartKind) string {
	return insights[kind]
}
