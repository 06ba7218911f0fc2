package dataset

import (
	"math"
	"strconv"

	"github.com/jmehdipour/credit-insights/internal/model"
)

// PreviewColumns is the header of a preview: source columns plus the ordinal.
func PreviewColumns() []string {
	cols := make([]string, 0, len(model.Columns)+1)
	cols = append(cols, model.Columns...)
	return append(cols, model.ColCreditScoreOrd)
}

// PreviewRows formats records as strings in PreviewColumns order.
// Missing numbers are empty strings.
func PreviewRows(recs []model.CustomerRecord) [][]string {
	out := make([][]string, len(recs))
	for i := range recs {
		out[i] = formatRecord(&recs[i])
	}
	return out
}

func formatRecord(r *model.CustomerRecord) []string {
	month := ""
	if r.Month >= 1 && r.Month <= 12 {
		month = r.Month.String()
	}
	return []string{
		r.ID, r.CustomerID, month, r.Name, num(r.Age), r.SSN, r.Occupation,
		num(r.AnnualIncome), num(r.MonthlyInhandSalary), num(r.NumBankAccounts),
		num(r.NumCreditCard), num(r.InterestRate), num(r.NumOfLoan), r.TypeOfLoan,
		num(r.DelayFromDueDate), num(r.NumOfDelayedPayment), num(r.ChangedCreditLimit),
		num(r.NumCreditInquiries), r.CreditMix, num(r.OutstandingDebt),
		num(r.CreditUtilizationRatio), num(r.CreditHistoryAge), r.PaymentOfMinAmount.String(),
		num(r.TotalEMIPerMonth), num(r.AmountInvestedMonthly), r.PaymentBehaviour,
		num(r.MonthlyBalance), r.CreditScore.String(), strconv.Itoa(r.ScoreOrdinal),
	}
}

func num(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
