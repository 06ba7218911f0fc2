package model

import (
	"fmt"
	"strings"
)

// ChartKind is the closed set of charts the dashboard can draw.
type ChartKind int

const (
	ChartScoreDistribution ChartKind = iota + 1
	ChartIncomeVsScore
	ChartCardsVsScore
	ChartDelayedPaymentsVsScore
	ChartSeasonalTrends
	ChartPaymentBehaviorVsScore
	ChartOccupationVsScore
	ChartInquiriesVsScore
	ChartHistoryAgeVsScore
	ChartCorrelationHeatmap
)

var chartKindNames = map[ChartKind]struct{ slug, title string }{
	ChartScoreDistribution:      {"score-distribution", "Credit Score Distribution"},
	ChartIncomeVsScore:          {"income-vs-score", "Income vs Credit Score"},
	ChartCardsVsScore:           {"cards-vs-score", "Cards vs Credit Score"},
	ChartDelayedPaymentsVsScore: {"delayed-payments-vs-score", "Delayed Payments vs Credit Score"},
	ChartSeasonalTrends:         {"seasonal-trends", "Seasonal Credit Trends"},
	ChartPaymentBehaviorVsScore: {"payment-behavior-vs-score", "Payment Behavior by Score"},
	ChartOccupationVsScore:      {"occupation-vs-score", "Occupation vs Credit Score"},
	ChartInquiriesVsScore:       {"inquiries-vs-score", "Credit Inquiries by Score"},
	ChartHistoryAgeVsScore:      {"history-age-vs-score", "Credit History Age by Score"},
	ChartCorrelationHeatmap:     {"correlation-heatmap", "Correlation Heatmap"},
}

// AllChartKinds returns the menu in display order.
func AllChartKinds() []ChartKind {
	return []ChartKind{
		ChartScoreDistribution,
		ChartIncomeVsScore,
		ChartCardsVsScore,
		ChartDelayedPaymentsVsScore,
		ChartSeasonalTrends,
		ChartPaymentBehaviorVsScore,
		ChartOccupationVsScore,
		ChartInquiriesVsScore,
		ChartHistoryAgeVsScore,
		ChartCorrelationHeatmap,
	}
}

func (k ChartKind) Valid() bool {
	_, ok := chartKindNames[k]
	return ok
}

// Slug is the URL/CLI identifier, e.g. "income-vs-score".
func (k ChartKind) Slug() string {
	if n, ok := chartKindNames[k]; ok {
		return n.slug
	}
	return ""
}

// Title is the menu label.
func (k ChartKind) Title() string {
	if n, ok := chartKindNames[k]; ok {
		return n.title
	}
	return ""
}

func (k ChartKind) String() string {
	if s := k.Slug(); s != "" {
		return s
	}
	return "unknown"
}

// ParseChartKind accepts a slug or a menu title, case-insensitively.
func ParseChartKind(s string) (ChartKind, bool) {
	v := strings.ToLower(strings.TrimSpace(s))
	if v == "" {
		return 0, false
	}
	for k, n := range chartKindNames {
		if v == n.slug || v == strings.ToLower(n.title) {
			return k, true
		}
	}
	return 0, false
}

func (k ChartKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *ChartKind) UnmarshalText(b []byte) error {
	v, ok := ParseChartKind(string(b))
	if !ok {
		return fmt.Errorf("unknown chart kind %q", string(b))
	}
	*k = v
	return nil
}

type ChartType string

const (
	ChartTypePie     ChartType = "pie"
	ChartTypeBox     ChartType = "box"
	ChartTypeBar     ChartType = "bar"
	ChartTypeLine    ChartType = "line"
	ChartTypeHeatmap ChartType = "heatmap"
)

// ChartSpec is a declarative, render-ready chart.
// Series values are aligned with Categories.
type ChartSpec struct {
	Kind       ChartKind  `json:"kind"`
	Type       ChartType  `json:"type"`
	Title      string     `json:"title"`
	XAxis      string     `json:"xAxis,omitempty"`
	YAxis      string     `json:"yAxis,omitempty"`
	Categories []string   `json:"categories,omitempty"`
	Series     []Series   `json:"series,omitempty"`
	Boxes      []BoxStats `json:"boxes,omitempty"`
	Heatmap    *Heatmap   `json:"heatmap,omitempty"`
	BarMode    string     `json:"barMode,omitempty"` // stack | group
	Colors     []string   `json:"colors,omitempty"`
	ShowLegend bool       `json:"showLegend"`
	Insight    string     `json:"insight"`
}

type Series struct {
	Name   string    `json:"name"`
	Values []float64 `json:"values"`
}

// BoxStats summarises one box of a box plot.
// Whisker ends are the most extreme values inside 1.5·IQR of the box.
type BoxStats struct {
	Label      string  `json:"label"`
	Count      int     `json:"count"`
	Mean       float64 `json:"mean"`
	Min        float64 `json:"min"`
	Q1         float64 `json:"q1"`
	Median     float64 `json:"median"`
	Q3         float64 `json:"q3"`
	Max        float64 `json:"max"`
	LowerFence float64 `json:"lowerFence"`
	UpperFence float64 `json:"upperFence"`
	Outliers   int     `json:"outliers"`
}

// Heatmap is a row-major matrix; nil cells are masked or undefined.
type Heatmap struct {
	Rows       []string     `json:"rows"`
	Columns    []string     `json:"columns"`
	Cells      [][]*float64 `json:"cells"`
	ColorScale string       `json:"colorScale"`
	Min        float64      `json:"min"`
	Max        float64      `json:"max"`
}
