package repository

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/jmehdipour/credit-insights/internal/model"
)

func TestListQueryKeepsTableOrder(t *testing.T) {
	q := listQuery("credit_records")
	if !strings.HasSuffix(q, "FROM credit_records ORDER BY row_no") {
		t.Fatalf("query = %q", q)
	}
}

func TestNewRecordsRepositoryTableName(t *testing.T) {
	for _, name := range []string{"credit_records", "creditdash.credit_records"} {
		if _, err := NewRecordsRepository(nil, name); err != nil {
			t.Errorf("%q rejected: %v", name, err)
		}
	}
	for _, name := range []string{"", "records; DROP TABLE x", "1records", "a.b.c"} {
		if _, err := NewRecordsRepository(nil, name); err == nil {
			t.Errorf("%q accepted", name)
		}
	}
}

func TestRecordRowMissingValuesAreNull(t *testing.T) {
	rec := model.CustomerRecord{
		RowNo:              41,
		ID:                 "0x1602",
		Month:              time.March,
		Age:                23,
		AnnualIncome:       math.NaN(),
		PaymentOfMinAmount: model.MinPaymentNo,
		CreditScore:        model.ScoreGood,
	}

	row := toRow(rec)
	if row.AnnualIncome.Valid {
		t.Fatal("NaN income stored as a value")
	}
	if !row.Age.Valid || row.Age.Float64 != 23 {
		t.Fatalf("age = %+v", row.Age)
	}
	if row.Month != 3 {
		t.Fatalf("month = %d", row.Month)
	}
	if row.RowNo != 41 {
		t.Fatalf("row_no = %d", row.RowNo)
	}
	args := row.args()
	if len(args) != strings.Count(recordColumns, ",")+1 || len(args) != strings.Count(recordPlaceholders, "?") {
		t.Fatalf("args = %d, columns and placeholders disagree", len(args))
	}
	if args[0] != int64(41) {
		t.Fatalf("first arg = %v, want row_no", args[0])
	}

	back := row.record()
	if !math.IsNaN(back.AnnualIncome) {
		t.Errorf("income = %v, want NaN", back.AnnualIncome)
	}
	if back.RowNo != 41 {
		t.Errorf("row_no = %d after round trip", back.RowNo)
	}
	if back.Month != time.March || back.CreditScore != model.ScoreGood || back.PaymentOfMinAmount != model.MinPaymentNo {
		t.Errorf("record = %+v", back)
	}
}
