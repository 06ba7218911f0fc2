package dataset

import (
	"bufio"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/jmehdipour/credit-insights/internal/model"
	"github.com/klauspost/compress/gzip"
)

var historyAgeRe = regexp.MustCompile(`(?i)^\s*(\d+)\s*years?\s*and\s*(\d+)\s*months?\s*$`)

// ReadCSV parses the credit dataset from r. Gzip input is detected from the
// magic bytes, so both dataset.csv.gz and a plain CSV work.
func ReadCSV(ctx context.Context, r io.Reader) ([]model.CustomerRecord, error) {
	br := bufio.NewReaderSize(r, 1<<16)
	magic, _ := br.Peek(2)
	var in io.Reader = br
	if len(magic) == 2 && magic[0] == 0x1f && magic[1] == 0x8b {
		zr, err := gzip.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("gzip: %w", err)
		}
		defer zr.Close()
		in = zr
	}

	cr := csv.NewReader(in)
	cr.ReuseRecord = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyFile
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	idx, err := columnIndex(header)
	if err != nil {
		return nil, err
	}

	var out []model.CustomerRecord
	for row := 1; ; row++ {
		rec, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, &DataLoadError{Row: row, Err: err}
		}
		if row%10000 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		out = append(out, parseRecord(idx, rec))
	}
	return out, nil
}

type columns map[string]int

func columnIndex(header []string) (columns, error) {
	idx := make(columns, len(header))
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		idx[h] = i
	}
	var missing []string
	for _, c := range model.Columns {
		if _, ok := idx[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", "))
	}
	return idx, nil
}

func (c columns) str(rec []string, name string) string {
	i := c[name]
	if i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

func (c columns) num(rec []string, name string) float64 {
	return parseNumber(c.str(rec, name))
}

func parseRecord(c columns, rec []string) model.CustomerRecord {
	month, _ := model.ParseMonth(c.str(rec, model.ColMonth))
	score, _ := model.ParseScoreLabel(c.str(rec, model.ColCreditScore))
	return model.CustomerRecord{
		ID:                     c.str(rec, model.ColID),
		CustomerID:             c.str(rec, model.ColCustomerID),
		Month:                  month,
		Name:                   c.str(rec, model.ColName),
		Age:                    c.num(rec, model.ColAge),
		SSN:                    c.str(rec, model.ColSSN),
		Occupation:             c.str(rec, model.ColOccupation),
		AnnualIncome:           c.num(rec, model.ColAnnualIncome),
		MonthlyInhandSalary:    c.num(rec, model.ColMonthlyInhandSalary),
		NumBankAccounts:        c.num(rec, model.ColNumBankAccounts),
		NumCreditCard:          c.num(rec, model.ColNumCreditCard),
		InterestRate:           c.num(rec, model.ColInterestRate),
		NumOfLoan:              c.num(rec, model.ColNumOfLoan),
		TypeOfLoan:             c.str(rec, model.ColTypeOfLoan),
		DelayFromDueDate:       c.num(rec, model.ColDelayFromDueDate),
		NumOfDelayedPayment:    c.num(rec, model.ColNumOfDelayedPayment),
		ChangedCreditLimit:     c.num(rec, model.ColChangedCreditLimit),
		NumCreditInquiries:     c.num(rec, model.ColNumCreditInquiries),
		CreditMix:              c.str(rec, model.ColCreditMix),
		OutstandingDebt:        c.num(rec, model.ColOutstandingDebt),
		CreditUtilizationRatio: c.num(rec, model.ColCreditUtilizationRatio),
		CreditHistoryAge:       parseHistoryAge(c.str(rec, model.ColCreditHistoryAge)),
		PaymentOfMinAmount:     model.MinPayment(c.str(rec, model.ColPaymentOfMinAmount)),
		TotalEMIPerMonth:       c.num(rec, model.ColTotalEMIPerMonth),
		AmountInvestedMonthly:  c.num(rec, model.ColAmountInvestedMonthly),
		PaymentBehaviour:       c.str(rec, model.ColPaymentBehaviour),
		MonthlyBalance:         c.num(rec, model.ColMonthlyBalance),
		CreditScore:            score,
	}
}

// parseNumber returns NaN for empty, infinite or unparseable cells. Stray underscores
// left by some exports ("28_") are ignored.
func parseNumber(s string) float64 {
	s = strings.Trim(s, "_ ")
	switch strings.ToLower(s) {
	case "", "na", "nan", "null":
		return math.NaN()
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) {
		return math.NaN()
	}
	return f
}

// parseHistoryAge reads days, or the "22 Years and 1 Months" form.
func parseHistoryAge(s string) float64 {
	if m := historyAgeRe.FindStringSubmatch(s); m != nil {
		y, _ := strconv.Atoi(m[1])
		mo, _ := strconv.Atoi(m[2])
		return float64(y*365 + mo*30)
	}
	return parseNumber(s)
}
