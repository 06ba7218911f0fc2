package dataset

import (
	"context"
	"fmt"
	"time"

	"github.com/jmehdipour/credit-insights/internal/model"
)

// MinAge is the youngest customer kept in the table.
const MinAge = 18

// Load reads src and prepares it. Every failure is a *DataLoadError.
func Load(ctx context.Context, src Source) (*Table, error) {
	raw, err := src.Records(ctx)
	if err != nil {
		return nil, loadErr(src.Name(), 0, err)
	}
	t, err := prepare(src.Name(), raw)
	if err != nil {
		return nil, err
	}
	return t, nil
}

// Prepare normalises raw records into a Table:
//   - the legacy "NM" minimum payment flag becomes "No",
//   - customers younger than MinAge (or without an age) are dropped,
//   - the score ordinal is derived (Poor 0, Standard 1, Good 2).
//
// A score label outside Poor/Standard/Good fails the whole load.
func Prepare(raw []model.CustomerRecord) (*Table, error) {
	return prepare("memory", raw)
}

func prepare(source string, raw []model.CustomerRecord) (*Table, error) {
	out := make([]model.CustomerRecord, 0, len(raw))
	for i, r := range raw {
		row := i + 1

		// NaN compares false, so missing ages are dropped too
		if !(r.Age >= MinAge) {
			continue
		}

		mp, ok := model.NormalizeMinPayment(r.PaymentOfMinAmount.String())
		if !ok {
			return nil, loadErr(source, row, fmt.Errorf("%w: %q", ErrInvalidMinPayment, r.PaymentOfMinAmount))
		}
		r.PaymentOfMinAmount = mp

		label, ok := model.ParseScoreLabel(r.CreditScore.String())
		if !ok {
			return nil, loadErr(source, row, fmt.Errorf("%w: %q", ErrInvalidScore, r.CreditScore))
		}
		r.CreditScore = label
		r.ScoreOrdinal, _ = label.Ordinal()
		r.RowNo = len(out)

		out = append(out, r)
	}

	return &Table{
		records:     out,
		source:      source,
		fingerprint: fingerprint(out),
		loadedAt:    time.Now(),
	}, nil
}
