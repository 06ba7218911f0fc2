package model

import "strings"

type ScoreLabel string

const (
	ScorePoor     ScoreLabel = "Poor"
	ScoreStandard ScoreLabel = "Standard"
	ScoreGood     ScoreLabel = "Good"
)

// ScoreOrder is the fixed axis order used by every per-score chart.
var ScoreOrder = [...]ScoreLabel{ScorePoor, ScoreStandard, ScoreGood}

func (s ScoreLabel) String() string { return string(s) }

func (s ScoreLabel) Valid() bool {
	return s == ScorePoor || s == ScoreStandard || s == ScoreGood
}

// Ordinal maps Poor→0, Standard→1, Good→2. Returns (-1, false) for anything else.
func (s ScoreLabel) Ordinal() (int, bool) {
	switch s {
	case ScorePoor:
		return 0, true
	case ScoreStandard:
		return 1, true
	case ScoreGood:
		return 2, true
	default:
		return -1, false
	}
}

// Index is the position of the label in ScoreOrder, or -1.
func (s ScoreLabel) Index() int {
	i, _ := s.Ordinal()
	return i
}

// ParseScoreLabel is case-insensitive and trims whitespace.
// Returns (value, true) if valid; otherwise (raw value, false).
func ParseScoreLabel(raw string) (ScoreLabel, bool) {
	v := strings.TrimSpace(raw)
	switch strings.ToLower(v) {
	case "poor":
		return ScorePoor, true
	case "standard":
		return ScoreStandard, true
	case "good":
		return ScoreGood, true
	default:
		return ScoreLabel(v), false
	}
}

// ScoreLabels returns ScoreOrder as strings (chart categories).
func ScoreLabels() []string {
	out := make([]string, len(ScoreOrder))
	for i, s := range ScoreOrder {
		out[i] = s.String()
	}
	return out
}
