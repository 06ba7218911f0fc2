package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jmehdipour/credit-insights/internal/config"
	"github.com/jmehdipour/credit-insights/internal/dataset"
	"github.com/jmehdipour/credit-insights/internal/model"
	"github.com/jmehdipour/credit-insights/internal/service/insights"
)

func newTestServer(t *testing.T, keys ...string) http.Handler {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	cfg.Auth.APIKeys = keys

	raw := []model.CustomerRecord{
		{ID: "a", Month: time.January, Age: 30, Occupation: "Lawyer", AnnualIncome: 50000, NumOfDelayedPayment: 3, PaymentOfMinAmount: "NM", PaymentBehaviour: "High_spent_Large_value_payments", CreditScore: model.ScorePoor},
		{ID: "b", Month: time.January, Age: 41, Occupation: "Doctor", AnnualIncome: 90000, NumOfDelayedPayment: 1, PaymentOfMinAmount: "No", PaymentBehaviour: "Low_spent_Small_value_payments", CreditScore: model.ScoreGood},
		{ID: "c", Month: time.February, Age: 17, Occupation: "Doctor", AnnualIncome: 10000, PaymentOfMinAmount: "Yes", CreditScore: model.ScoreStandard},
		{ID: "d", Month: time.February, Age: 25, Occupation: "Lawyer", AnnualIncome: 60000, NumOfDelayedPayment: 2, PaymentOfMinAmount: "Yes", PaymentBehaviour: "Low_spent_Small_value_payments", CreditScore: model.ScoreStandard},
	}
	tbl, err := dataset.Prepare(raw)
	if err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	return NewServer(cfg, insights.New(tbl), nil).Handler()
}

func get(h http.Handler, path string, header ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealthAndMetrics(t *testing.T) {
	h := newTestServer(t)
	if rec := get(h, "/healthz"); rec.Code != http.StatusOK || rec.Body.String() != "ok" {
		t.Fatalf("healthz = %d %q", rec.Code, rec.Body.String())
	}
	if rec := get(h, "/metrics"); rec.Code != http.StatusOK {
		t.Fatalf("metrics = %d", rec.Code)
	}
}

func TestRequestIDHeader(t *testing.T) {
	rec := get(newTestServer(t), "/healthz")
	if id := rec.Header().Get("X-Request-Id"); len(id) != 26 {
		t.Fatalf("request id = %q, want a ULID", id)
	}
}

func TestListCharts(t *testing.T) {
	rec := get(newTestServer(t), "/v1/charts")
	if rec.Code != http.StatusOK {
		t.Fatalf("code = %d", rec.Code)
	}
	var body struct {
		Charts []insights.ChartInfo `json:"charts"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if len(body.Charts) != 10 {
		t.Fatalf("charts = %d", len(body.Charts))
	}
}

func TestChartSpec(t *testing.T) {
	rec := get(newTestServer(t), "/v1/charts/score-distribution")
	if rec.Code != http.StatusOK {
		t.Fatalf("code = %d body %s", rec.Code, rec.Body.String())
	}
	var spec model.ChartSpec
	if err := json.Unmarshal(rec.Body.Bytes(), &spec); err != nil {
		t.Fatal(err)
	}
	if spec.Kind != model.ChartScoreDistribution || spec.Type != model.ChartTypePie {
		t.Fatalf("spec = %+v", spec)
	}
	// the 17 year old is dropped
	var total float64
	for _, v := range spec.Series[0].Values {
		total += v
	}
	if total != 3 {
		t.Fatalf("pie total = %v, want 3", total)
	}
}

func TestChartNotFound(t *testing.T) {
	h := newTestServer(t)
	for _, path := range []string{"/v1/charts/nope", "/v1/charts/nope/image.png"} {
		if rec := get(h, path); rec.Code != http.StatusNotFound {
			t.Errorf("%s: code = %d", path, rec.Code)
		}
	}
}

func TestChartImage(t *testing.T) {
	h := newTestServer(t)

	rec := get(h, "/v1/charts/delayed-payments-vs-score/image.png?width=400&height=300")
	if rec.Code != http.StatusOK {
		t.Fatalf("code = %d body %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/png" {
		t.Fatalf("content type = %q", ct)
	}
	if b := rec.Body.Bytes(); len(b) < 8 || string(b[1:4]) != "PNG" {
		t.Fatal("body is not a PNG")
	}

	if rec := get(h, "/v1/charts/delayed-payments-vs-score/image.png?width=10"); rec.Code != http.StatusBadRequest {
		t.Fatalf("tiny width: code = %d", rec.Code)
	}
}

func TestPreviewAndSummary(t *testing.T) {
	h := newTestServer(t)

	rec := get(h, "/v1/dataset/preview?limit=2")
	if rec.Code != http.StatusOK {
		t.Fatalf("preview code = %d", rec.Code)
	}
	var p insights.Preview
	if err := json.Unmarshal(rec.Body.Bytes(), &p); err != nil {
		t.Fatal(err)
	}
	if p.Total != 3 || len(p.Rows) != 2 {
		t.Fatalf("preview = total %d rows %d", p.Total, len(p.Rows))
	}

	if rec := get(h, "/v1/dataset/preview?limit=abc"); rec.Code != http.StatusBadRequest {
		t.Fatalf("bad limit: code = %d", rec.Code)
	}

	rec = get(h, "/v1/dataset/summary")
	if rec.Code != http.StatusOK {
		t.Fatalf("summary code = %d body %s", rec.Code, rec.Body.String())
	}
	var s struct {
		Records int `json:"records"`
		Columns []dataset.ColumnSummary
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &s); err != nil {
		t.Fatal(err)
	}
	if s.Records != 3 || len(s.Columns) != len(model.NumericFields) {
		t.Fatalf("summary = %+v", s)
	}
}

func TestAuthRequired(t *testing.T) {
	h := newTestServer(t, "s3cret")
	if rec := get(h, "/v1/charts"); rec.Code != http.StatusUnauthorized {
		t.Fatalf("no key: code = %d", rec.Code)
	}
	if rec := get(h, "/v1/charts", "X-API-Key", "s3cret"); rec.Code != http.StatusOK {
		t.Fatalf("with key: code = %d", rec.Code)
	}
	if rec := get(h, "/healthz"); rec.Code != http.StatusOK {
		t.Fatalf("healthz behind auth: code = %d", rec.Code)
	}
}
