package model

import (
	"encoding/json"
	"math"
	"testing"
	"time"
)

func TestParseScoreLabel(t *testing.T) {
	tests := []struct {
		raw  string
		want ScoreLabel
		ok   bool
		ord  int
	}{
		{"Poor", ScorePoor, true, 0},
		{" standard ", ScoreStandard, true, 1},
		{"GOOD", ScoreGood, true, 2},
		{"Excellent", ScoreLabel("Excellent"), false, -1},
		{"", ScoreLabel(""), false, -1},
	}
	for _, tt := range tests {
		got, ok := ParseScoreLabel(tt.raw)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseScoreLabel(%q) = %q, %v", tt.raw, got, ok)
		}
		if ord, _ := got.Ordinal(); ord != tt.ord {
			t.Errorf("%q ordinal = %d, want %d", tt.raw, ord, tt.ord)
		}
	}
}

func TestNormalizeMinPayment(t *testing.T) {
	tests := []struct {
		raw  string
		want MinPayment
		ok   bool
	}{
		{"Yes", MinPaymentYes, true},
		{"No", MinPaymentNo, true},
		{"NM", MinPaymentNo, true},
		{"nm", MinPaymentNo, true},
		{"Maybe", MinPayment("Maybe"), false},
	}
	for _, tt := range tests {
		got, ok := NormalizeMinPayment(tt.raw)
		if got != tt.want || ok != tt.ok {
			t.Errorf("NormalizeMinPayment(%q) = %q, %v", tt.raw, got, ok)
		}
	}
}

func TestParseMonth(t *testing.T) {
	tests := []struct {
		raw  string
		want time.Month
		ok   bool
	}{
		{"January", time.January, true},
		{"aug", time.August, true},
		{"12", time.December, true},
		{"0", 0, false},
		{"13", 0, false},
		{"ju", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseMonth(tt.raw)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseMonth(%q) = %v, %v", tt.raw, got, ok)
		}
	}
}

func TestParseChartKind(t *testing.T) {
	for _, k := range AllChartKinds() {
		if got, ok := ParseChartKind(k.Slug()); !ok || got != k {
			t.Errorf("slug %q -> %v, %v", k.Slug(), got, ok)
		}
		if got, ok := ParseChartKind(k.Title()); !ok || got != k {
			t.Errorf("title %q -> %v, %v", k.Title(), got, ok)
		}
	}
	if _, ok := ParseChartKind("radar"); ok {
		t.Error("unknown chart parsed")
	}
	if ChartKind(99).String() != "unknown" {
		t.Errorf("String() of invalid kind = %q", ChartKind(99).String())
	}
}

func TestChartKindJSON(t *testing.T) {
	b, err := json.Marshal(ChartSeasonalTrends)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != `"seasonal-trends"` {
		t.Fatalf("marshal = %s", b)
	}
	var k ChartKind
	if err := json.Unmarshal(b, &k); err != nil || k != ChartSeasonalTrends {
		t.Fatalf("unmarshal = %v, %v", k, err)
	}
}

func TestScoreOrdinalField(t *testing.T) {
	r := CustomerRecord{CreditScore: ScoreGood, ScoreOrdinal: 2}
	if v := FieldScoreOrdinal.Value(&r); v != 2 {
		t.Fatalf("ordinal = %v", v)
	}
	r.CreditScore = "Unknown"
	if v := FieldScoreOrdinal.Value(&r); !math.IsNaN(v) {
		t.Fatalf("ordinal of invalid label = %v, want NaN", v)
	}
}
