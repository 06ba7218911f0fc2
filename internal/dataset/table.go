package dataset

import (
	"encoding/binary"
	"math"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/jmehdipour/credit-insights/internal/model"
)

// Table is the prepared, read-only dataset. It is safe for concurrent use
// because nothing writes to it after Prepare returns.
type Table struct {
	records     []model.CustomerRecord
	source      string
	fingerprint uint64
	loadedAt    time.Time
}

func (t *Table) Len() int { return len(t.records) }

// At returns a copy of row i.
func (t *Table) At(i int) model.CustomerRecord { return t.records[i] }

// Each calls fn for every row in order. fn receives a copy.
func (t *Table) Each(fn func(i int, r model.CustomerRecord)) {
	for i := range t.records {
		fn(i, t.records[i])
	}
}

// Head returns a copy of the first n rows.
func (t *Table) Head(n int) []model.CustomerRecord {
	if n < 0 || n > len(t.records) {
		n = len(t.records)
	}
	out := make([]model.CustomerRecord, n)
	copy(out, t.records[:n])
	return out
}

// Column extracts a numeric column into a new slice.
func (t *Table) Column(f model.NumericField) []float64 {
	out := make([]float64, len(t.records))
	for i := range t.records {
		out[i] = f.Value(&t.records[i])
	}
	return out
}

func (t *Table) Source() string      { return t.source }
func (t *Table) Fingerprint() uint64 { return t.fingerprint }
func (t *Table) LoadedAt() time.Time { return t.loadedAt }

func fingerprint(recs []model.CustomerRecord) uint64 {
	d := xxhash.New()
	buf := make([]byte, 0, 256)
	for i := range recs {
		r := &recs[i]
		buf = buf[:0]
		for _, s := range []string{r.ID, r.CustomerID, r.Name, r.Occupation, r.TypeOfLoan,
			r.CreditMix, r.PaymentOfMinAmount.String(), r.PaymentBehaviour, r.CreditScore.String()} {
			buf = append(buf, s...)
			buf = append(buf, 0)
		}
		buf = append(buf, byte(r.Month))
		for _, f := range model.NumericFields {
			buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(f.Value(r)))
		}
		_, _ = d.Write(buf)
	}
	return d.Sum64()
}
