package chart

import "fmt"

// UnknownChartError is returned for a chart kind outside the closed menu.
type UnknownChartError struct {
	Kind string
}

func (e *UnknownChartError) Error() string {
	return fmt.Sprintf("unknown chart %q", e.Kind)
}
