package model

import (
	"math"
	"time"
)

// Source column names, in file order.
const (
	ColID                     = "ID"
	ColCustomerID             = "Customer_ID"
	ColMonth                  = "Month"
	ColName                   = "Name"
	ColAge                    = "Age"
	ColSSN                    = "SSN"
	ColOccupation             = "Occupation"
	ColAnnualIncome           = "Annual_Income"
	ColMonthlyInhandSalary    = "Monthly_Inhand_Salary"
	ColNumBankAccounts        = "Num_Bank_Accounts"
	ColNumCreditCard          = "Num_Credit_Card"
	ColInterestRate           = "Interest_Rate"
	ColNumOfLoan              = "Num_of_Loan"
	ColTypeOfLoan             = "Type_of_Loan"
	ColDelayFromDueDate       = "Delay_from_due_date"
	ColNumOfDelayedPayment    = "Num_of_Delayed_Payment"
	ColChangedCreditLimit     = "Changed_Credit_Limit"
	ColNumCreditInquiries     = "Num_Credit_Inquiries"
	ColCreditMix              = "Credit_Mix"
	ColOutstandingDebt        = "Outstanding_Debt"
	ColCreditUtilizationRatio = "Credit_Utilization_Ratio"
	ColCreditHistoryAge       = "Credit_History_Age"
	ColPaymentOfMinAmount     = "Payment_of_Min_Amount"
	ColTotalEMIPerMonth       = "Total_EMI_per_month"
	ColAmountInvestedMonthly  = "Amount_invested_monthly"
	ColPaymentBehaviour       = "Payment_Behaviour"
	ColMonthlyBalance         = "Monthly_Balance"
	ColCreditScore            = "Credit_Score"
	ColCreditScoreOrd         = "Credit_Score_ord"
)

// Columns lists the 28 source columns in file order.
var Columns = []string{
	ColID, ColCustomerID, ColMonth, ColName, ColAge, ColSSN, ColOccupation,
	ColAnnualIncome, ColMonthlyInhandSalary, ColNumBankAccounts, ColNumCreditCard,
	ColInterestRate, ColNumOfLoan, ColTypeOfLoan, ColDelayFromDueDate,
	ColNumOfDelayedPayment, ColChangedCreditLimit, ColNumCreditInquiries,
	ColCreditMix, ColOutstandingDebt, ColCreditUtilizationRatio, ColCreditHistoryAge,
	ColPaymentOfMinAmount, ColTotalEMIPerMonth, ColAmountInvestedMonthly,
	ColPaymentBehaviour, ColMonthlyBalance, ColCreditScore,
}

// CustomerRecord is one row of the credit dataset.
// Missing numeric cells are NaN.
type CustomerRecord struct {
	ID                     string
	CustomerID             string
	Month                  time.Month
	Name                   string
	Age                    float64
	SSN                    string
	Occupation             string
	AnnualIncome           float64
	MonthlyInhandSalary    float64
	NumBankAccounts        float64
	NumCreditCard          float64
	InterestRate           float64
	NumOfLoan              float64
	TypeOfLoan             string
	DelayFromDueDate       float64
	NumOfDelayedPayment    float64
	ChangedCreditLimit     float64
	NumCreditInquiries     float64
	CreditMix              string
	OutstandingDebt        float64
	CreditUtilizationRatio float64
	CreditHistoryAge       float64 // days
	PaymentOfMinAmount     MinPayment
	TotalEMIPerMonth       float64
	AmountInvestedMonthly  float64
	PaymentBehaviour       string
	MonthlyBalance         float64
	CreditScore            ScoreLabel

	// ScoreOrdinal is derived from CreditScore during preparation.
	ScoreOrdinal int
	// RowNo is the 0-based position in the prepared table. The warehouse
	// stores it so reads come back in file order.
	RowNo int
}

// NumericField names a numeric column, including the derived score ordinal.
type NumericField string

const (
	FieldAge                    NumericField = ColAge
	FieldAnnualIncome           NumericField = ColAnnualIncome
	FieldMonthlyInhandSalary    NumericField = ColMonthlyInhandSalary
	FieldNumBankAccounts        NumericField = ColNumBankAccounts
	FieldNumCreditCard          NumericField = ColNumCreditCard
	FieldInterestRate           NumericField = ColInterestRate
	FieldNumOfLoan              NumericField = ColNumOfLoan
	FieldDelayFromDueDate       NumericField = ColDelayFromDueDate
	FieldNumOfDelayedPayment    NumericField = ColNumOfDelayedPayment
	FieldChangedCreditLimit     NumericField = ColChangedCreditLimit
	FieldNumCreditInquiries     NumericField = ColNumCreditInquiries
	FieldOutstandingDebt        NumericField = ColOutstandingDebt
	FieldCreditUtilizationRatio NumericField = ColCreditUtilizationRatio
	FieldCreditHistoryAge       NumericField = ColCreditHistoryAge
	FieldTotalEMIPerMonth       NumericField = ColTotalEMIPerMonth
	FieldAmountInvestedMonthly  NumericField = ColAmountInvestedMonthly
	FieldMonthlyBalance         NumericField = ColMonthlyBalance
	FieldScoreOrdinal           NumericField = ColCreditScoreOrd
)

// NumericFields lists every numeric column in file order, ordinal last.
var NumericFields = []NumericField{
	FieldAge, FieldAnnualIncome, FieldMonthlyInhandSalary, FieldNumBankAccounts,
	FieldNumCreditCard, FieldInterestRate, FieldNumOfLoan, FieldDelayFromDueDate,
	FieldNumOfDelayedPayment, FieldChangedCreditLimit, FieldNumCreditInquiries,
	FieldOutstandingDebt, FieldCreditUtilizationRatio, FieldCreditHistoryAge,
	FieldTotalEMIPerMonth, FieldAmountInvestedMonthly, FieldMonthlyBalance,
	FieldScoreOrdinal,
}

// CorrelationFields is the fixed column order of the correlation heatmap.
var CorrelationFields = []NumericField{
	FieldAnnualIncome, FieldNumBankAccounts, FieldNumCreditCard,
	FieldNumOfLoan, FieldNumOfDelayedPayment, FieldNumCreditInquiries,
	FieldCreditUtilizationRatio, FieldAmountInvestedMonthly,
	FieldCreditHistoryAge, FieldScoreOrdinal,
}

func (f NumericField) String() string { return string(f) }

// Value reads the field from r; unknown fields and missing cells are NaN.
func (f NumericField) Value(r *CustomerRecord) float64 {
	switch f {
	case FieldAge:
		return r.Age
	case FieldAnnualIncome:
		return r.AnnualIncome
	case FieldMonthlyInhandSalary:
		return r.MonthlyInhandSalary
	case FieldNumBankAccounts:
		return r.NumBankAccounts
	case FieldNumCreditCard:
		return r.NumCreditCard
	case FieldInterestRate:
		return r.InterestRate
	case FieldNumOfLoan:
		return r.NumOfLoan
	case FieldDelayFromDueDate:
		return r.DelayFromDueDate
	case FieldNumOfDelayedPayment:
		return r.NumOfDelayedPayment
	case FieldChangedCreditLimit:
		return r.ChangedCreditLimit
	case FieldNumCreditInquiries:
		return r.NumCreditInquiries
	case FieldOutstandingDebt:
		return r.OutstandingDebt
	case FieldCreditUtilizationRatio:
		return r.CreditUtilizationRatio
	case FieldCreditHistoryAge:
		return r.CreditHistoryAge
	case FieldTotalEMIPerMonth:
		return r.TotalEMIPerMonth
	case FieldAmountInvestedMonthly:
		return r.AmountInvestedMonthly
	case FieldMonthlyBalance:
		return r.MonthlyBalance
	case FieldScoreOrdinal:
		if _, ok := r.CreditScore.Ordinal(); !ok {
			return math.NaN()
		}
		return float64(r.ScoreOrdinal)
	default:
		return math.NaN()
	}
}
