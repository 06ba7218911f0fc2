package model

import (
	"strings"
	"time"
)

// ParseMonth accepts English month names ("January", "jan") and 1-12.
func ParseMonth(raw string) (time.Month, bool) {
	v := strings.ToLower(strings.TrimSpace(raw))
	if v == "" {
		return 0, false
	}
	for m := time.January; m <= time.December; m++ {
		name := strings.ToLower(m.String())
		if v == name || (len(v) >= 3 && strings.HasPrefix(name, v)) {
			return m, true
		}
	}
	n := 0
	for _, r := range v {
		if r < '0' || r > '9' {
			return 0, false
		}
		n = n*10 + int(r-'0')
		if n > 12 {
			return 0, false
		}
	}
	if n < 1 {
		return 0, false
	}
	return time.Month(n), true
}
