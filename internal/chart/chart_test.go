package chart

import (
	"errors"
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/jmehdipour/credit-insights/internal/dataset"
	"github.com/jmehdipour/credit-insights/internal/model"
)

func rec(id string, score model.ScoreLabel, month time.Month, occupation, behaviour string, income float64) model.CustomerRecord {
	return model.CustomerRecord{
		ID:                     id,
		Month:                  month,
		Age:                    30,
		Occupation:             occupation,
		AnnualIncome:           income,
		NumBankAccounts:        income / 10000,
		NumCreditCard:          3,
		NumOfLoan:              2,
		NumOfDelayedPayment:    income / 5000,
		NumCreditInquiries:     4,
		CreditUtilizationRatio: 30,
		AmountInvestedMonthly:  income / 100,
		CreditHistoryAge:       income / 10,
		PaymentOfMinAmount:     model.MinPaymentYes,
		PaymentBehaviour:       behaviour,
		CreditScore:            score,
	}
}

func sampleTable(t *testing.T) *dataset.Table {
	t.Helper()
	tbl, err := dataset.Prepare([]model.CustomerRecord{
		rec("1", model.ScorePoor, time.March, "Writer", "Low_spent_Small_value_payments", 15000),
		rec("2", model.ScoreStandard, time.January, "Doctor", "High_spent_Large_value_payments", 40000),
		rec("3", model.ScoreStandard, time.March, "Writer", "Low_spent_Small_value_payments", 35000),
		rec("4", model.ScoreGood, time.January, "Accountant", "High_spent_Medium_value_payments", 90000),
		rec("5", model.ScorePoor, time.January, "Doctor", "Low_spent_Small_value_payments", 20000),
	})
	if err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	return tbl
}

func TestScoreDistributionCounts(t *testing.T) {
	tbl, err := dataset.Prepare([]model.CustomerRecord{
		{Age: 20, PaymentOfMinAmount: "Yes", CreditScore: model.ScorePoor},
		{Age: 20, PaymentOfMinAmount: "Yes", CreditScore: model.ScoreStandard},
		{Age: 20, PaymentOfMinAmount: "Yes", CreditScore: model.ScoreStandard},
	})
	if err != nil {
		t.Fatal(err)
	}
	spec, err := Render(model.ChartScoreDistribution, tbl)
	if err != nil {
		t.Fatal(err)
	}
	if spec.Type != model.ChartTypePie {
		t.Fatalf("type = %s", spec.Type)
	}
	want := []float64{1, 2, 0}
	if !reflect.DeepEqual(spec.Series[0].Values, want) {
		t.Fatalf("values = %v, want %v", spec.Series[0].Values, want)
	}
	if !reflect.DeepEqual(spec.Categories, []string{"Poor", "Standard", "Good"}) {
		t.Fatalf("categories = %v", spec.Categories)
	}
}

func TestPieSumsToRecordCount(t *testing.T) {
	tbl := sampleTable(t)
	spec, _ := Render(model.ChartScoreDistribution, tbl)
	var sum float64
	for _, v := range spec.Series[0].Values {
		sum += v
	}
	if int(sum) != tbl.Len() {
		t.Fatalf("pie sum = %v, records = %d", sum, tbl.Len())
	}
}

func TestSeasonalSharesSumTo100(t *testing.T) {
	months := SeasonalShares(sampleTable(t))
	if len(months) != 2 || months[0].Month != time.January || months[1].Month != time.March {
		t.Fatalf("months = %+v", months)
	}
	for _, m := range months {
		s := m.Shares[0] + m.Shares[1] + m.Shares[2]
		if math.Abs(s-100) > 1e-9 {
			t.Errorf("%s sums to %v", m.Month, s)
		}
	}
	// January: Standard, Good, Poor
	if math.Abs(months[0].Shares[0]-100.0/3) > 1e-9 {
		t.Errorf("january poor share = %v", months[0].Shares[0])
	}
}

func TestOccupationSharesSumTo100(t *testing.T) {
	ct := OccupationShares(sampleTable(t))
	if !reflect.DeepEqual(ct.Categories, []string{"Accountant", "Doctor", "Writer"}) {
		t.Fatalf("categories = %v", ct.Categories)
	}
	for i, row := range ct.Counts {
		if s := row[0] + row[1] + row[2]; math.Abs(s-100) > 1e-9 {
			t.Errorf("%s sums to %v", ct.Categories[i], s)
		}
	}
}

func TestBehaviourKeepsFirstSeenOrder(t *testing.T) {
	spec, err := Render(model.ChartPaymentBehaviorVsScore, sampleTable(t))
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"Low_spent_Small_value_payments", "High_spent_Large_value_payments", "High_spent_Medium_value_payments"}
	if !reflect.DeepEqual(spec.Categories, want) {
		t.Fatalf("categories = %v", spec.Categories)
	}
	if spec.BarMode != "stack" || len(spec.Series) != 3 {
		t.Fatalf("spec = %+v", spec)
	}
	// Low_spent_Small: two Poor, one Standard
	if spec.Series[0].Values[0] != 2 || spec.Series[1].Values[0] != 1 {
		t.Fatalf("series = %+v", spec.Series)
	}
}

func TestCorrelationMatrix(t *testing.T) {
	m := Correlation(sampleTable(t))
	if len(m.Columns) != len(model.CorrelationFields) {
		t.Fatalf("columns = %d", len(m.Columns))
	}
	for i := range m.Values {
		if m.Values[i][i] != 1 {
			t.Errorf("diag %s = %v", m.Columns[i], m.Values[i][i])
		}
		for j := range m.Values {
			a, b := m.Values[i][j], m.Values[j][i]
			if !(a == b || (math.IsNaN(a) && math.IsNaN(b))) {
				t.Errorf("asymmetric at %d,%d: %v vs %v", i, j, a, b)
			}
		}
	}
}

func TestCorrelationHeatmapMask(t *testing.T) {
	spec, err := Render(model.ChartCorrelationHeatmap, sampleTable(t))
	if err != nil {
		t.Fatal(err)
	}
	cells := spec.Heatmap.Cells
	for i := range cells {
		for j := range cells[i] {
			if j >= i && cells[i][j] != nil {
				t.Errorf("cell %d,%d not masked", i, j)
			}
		}
	}
	// income vs bank accounts is perfectly monotone in the sample
	if c := cells[1][0]; c == nil || *c != 1 {
		t.Fatalf("income/accounts cell = %v", c)
	}
}

func TestBoxChart(t *testing.T) {
	spec, err := Render(model.ChartIncomeVsScore, sampleTable(t))
	if err != nil {
		t.Fatal(err)
	}
	if spec.Type != model.ChartTypeBox || len(spec.Boxes) != 3 {
		t.Fatalf("spec = %+v", spec)
	}
	if poor := spec.Boxes[0]; poor.Count != 2 || poor.Median != 17500 {
		t.Fatalf("poor box = %+v", poor)
	}
}

func TestRenderDeterministic(t *testing.T) {
	tbl := sampleTable(t)
	for _, k := range model.AllChartKinds() {
		a, err := Render(k, tbl)
		if err != nil {
			t.Fatalf("%s: %v", k, err)
		}
		b, _ := Render(k, tbl)
		if !reflect.DeepEqual(a, b) {
			t.Errorf("%s: two renders differ", k)
		}
		if a.Kind != k || a.Insight == "" || a.Title == "" {
			t.Errorf("%s: kind %v insight %q title %q", k, a.Kind, a.Insight, a.Title)
		}
	}
}

func TestRenderUnknown(t *testing.T) {
	tbl := sampleTable(t)
	var uerr *UnknownChartError
	if _, err := Render(model.ChartKind(42), tbl); !errors.As(err, &uerr) {
		t.Fatalf("err = %v", err)
	}
	if _, err := RenderByName("Sankey", tbl); !errors.As(err, &uerr) || uerr.Kind != "Sankey" {
		t.Fatalf("err = %v", err)
	}
}

func TestEmptyTableRenders(t *testing.T) {
	tbl, err := dataset.Prepare(nil)
	if err != nil {
		t.Fatal(err)
	}
	for _, k := range model.AllChartKinds() {
		if _, err := Render(k, tbl); err != nil {
			t.Errorf("%s on empty table: %v", k, err)
		}
	}
}

func TestDelayedPaymentsMeans(t *testing.T) {
	spec, err := Render(model.ChartDelayedPaymentsVsScore, sampleTable(t))
	if err != nil {
		t.Fatal(err)
	}
	if spec.Type != model.ChartTypeBar || len(spec.Series) != 1 {
		t.Fatalf("spec = %+v", spec)
	}
	// delayed payments are income/5000 in the sample
	want := []float64{3.5, 7.5, 18}
	if !reflect.DeepEqual(spec.Series[0].Values, want) {
		t.Fatalf("means = %v, want %v", spec.Series[0].Values, want)
	}
	if !reflect.DeepEqual(spec.Categories, []string{"Poor", "Standard", "Good"}) {
		t.Fatalf("categories = %v", spec.Categories)
	}
}

func TestEmptyScoreGroupIsZero(t *testing.T) {
	tbl, err := dataset.Prepare([]model.CustomerRecord{
		rec("1", model.ScorePoor, time.March, "Writer", "Low_spent_Small_value_payments", 15000),
		rec("2", model.ScoreStandard, time.January, "Doctor", "High_spent_Large_value_payments", 40000),
	})
	if err != nil {
		t.Fatal(err)
	}

	bar, err := Render(model.ChartDelayedPaymentsVsScore, tbl)
	if err != nil {
		t.Fatal(err)
	}
	if got := bar.Series[0].Values[2]; got != 0 {
		t.Errorf("Good mean = %v, want 0", got)
	}

	box, err := Render(model.ChartIncomeVsScore, tbl)
	if err != nil {
		t.Fatal(err)
	}
	want := model.BoxStats{Label: "Good"}
	if got := box.Boxes[2]; got != want {
		t.Errorf("Good box = %+v, want %+v", got, want)
	}
	if box.Boxes[0].Count != 1 || box.Boxes[0].Median != 15000 {
		t.Errorf("Poor box = %+v", box.Boxes[0])
	}
}
