package model

import "strings"

type MinPayment string

const (
	MinPaymentYes MinPayment = "Yes"
	MinPaymentNo  MinPayment = "No"

	// legacy "not mentioned" label found in older exports
	minPaymentNotMentioned = "NM"
)

func (m MinPayment) String() string { return string(m) }

func (m MinPayment) Valid() bool {
	return m == MinPaymentYes || m == MinPaymentNo
}

// NormalizeMinPayment folds the legacy NM label into No.
// Returns (value, true) if the result is Yes or No; otherwise (raw value, false).
func NormalizeMinPayment(raw string) (MinPayment, bool) {
	v := strings.TrimSpace(raw)
	switch {
	case strings.EqualFold(v, "yes"):
		return MinPaymentYes, true
	case strings.EqualFold(v, "no"), strings.EqualFold(v, minPaymentNotMentioned):
		return MinPaymentNo, true
	default:
		return MinPayment(v), false
	}
}
