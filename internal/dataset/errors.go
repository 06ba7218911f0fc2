package dataset

import (
	"errors"
	"fmt"
)

var (
	ErrMissingColumn     = errors.New("missing column")
	ErrEmptyFile         = errors.New("empty file")
	ErrInvalidScore      = errors.New("invalid credit score label")
	ErrInvalidMinPayment = errors.New("invalid minimum payment flag")
)

// DataLoadError reports a dataset that is missing or cannot be parsed.
// Row is the 1-based data row, 0 when the failure is not tied to a row.
type DataLoadError struct {
	Source string
	Row    int
	Err    error
}

func (e *DataLoadError) Error() string {
	if e.Row > 0 {
		return fmt.Sprintf("load dataset %q: row %d: %v", e.Source, e.Row, e.Err)
	}
	return fmt.Sprintf("load dataset %q: %v", e.Source, e.Err)
}

func (e *DataLoadError) Unwrap() error { return e.Err }

func loadErr(source string, row int, err error) error {
	var dle *DataLoadError
	if errors.As(err, &dle) {
		if dle.Source == "" {
			dle.Source = source
		}
		return dle
	}
	return &DataLoadError{Source: source, Row: row, Err: err}
}
