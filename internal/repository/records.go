package repository

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"regexp"
	"time"

	"github.com/jmehdipour/credit-insights/internal/model"
	"github.com/jmoiron/sqlx"
)

// RecordsRepository persists prepared customer records in the warehouse.
type RecordsRepository interface {
	InsertBatch(ctx context.Context, recs []model.CustomerRecord) error
	Truncate(ctx context.Context) error
	ListAll(ctx context.Context) ([]model.CustomerRecord, error)
	Count(ctx context.Context) (int64, error)
}

type RecordsRepositoryImpl struct {
	db    *sqlx.DB
	table string
}

var tableName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

// ValidateTableName accepts "table" or "database.table" made of identifier
// characters. Table names are spliced into SQL text.
func ValidateTableName(table string) error {
	if !tableName.MatchString(table) {
		return fmt.Errorf("invalid table name %q", table)
	}
	return nil
}

func NewRecordsRepository(db *sqlx.DB, table string) (*RecordsRepositoryImpl, error) {
	if err := ValidateTableName(table); err != nil {
		return nil, err
	}
	return &RecordsRepositoryImpl{db: db, table: table}, nil
}

// recordRow mirrors the credit_records table. NULL numeric cells map to NaN.
type recordRow struct {
	RowNo                  int64           `db:"row_no"`
	ID                     string          `db:"id"`
	CustomerID             string          `db:"customer_id"`
	Month                  int             `db:"month"`
	Name                   string          `db:"name"`
	Age                    sql.NullFloat64 `db:"age"`
	SSN                    string          `db:"ssn"`
	Occupation             string          `db:"occupation"`
	AnnualIncome           sql.NullFloat64 `db:"annual_income"`
	MonthlyInhandSalary    sql.NullFloat64 `db:"monthly_inhand_salary"`
	NumBankAccounts        sql.NullFloat64 `db:"num_bank_accounts"`
	NumCreditCard          sql.NullFloat64 `db:"num_credit_card"`
	InterestRate           sql.NullFloat64 `db:"interest_rate"`
	NumOfLoan              sql.NullFloat64 `db:"num_of_loan"`
	TypeOfLoan             string          `db:"type_of_loan"`
	DelayFromDueDate       sql.NullFloat64 `db:"delay_from_due_date"`
	NumOfDelayedPayment    sql.NullFloat64 `db:"num_of_delayed_payment"`
	ChangedCreditLimit     sql.NullFloat64 `db:"changed_credit_limit"`
	NumCreditInquiries     sql.NullFloat64 `db:"num_credit_inquiries"`
	CreditMix              string          `db:"credit_mix"`
	OutstandingDebt        sql.NullFloat64 `db:"outstanding_debt"`
	CreditUtilizationRatio sql.NullFloat64 `db:"credit_utilization_ratio"`
	CreditHistoryAge       sql.NullFloat64 `db:"credit_history_age"`
	PaymentOfMinAmount     string          `db:"payment_of_min_amount"`
	TotalEMIPerMonth       sql.NullFloat64 `db:"total_emi_per_month"`
	AmountInvestedMonthly  sql.NullFloat64 `db:"amount_invested_monthly"`
	PaymentBehaviour       string          `db:"payment_behaviour"`
	MonthlyBalance         sql.NullFloat64 `db:"monthly_balance"`
	CreditScore            string          `db:"credit_score"`
}

const recordColumns = `row_no, id, customer_id, month, name, age, ssn, occupation,
	annual_income, monthly_inhand_salary, num_bank_accounts, num_credit_card,
	interest_rate, num_of_loan, type_of_loan, delay_from_due_date,
	num_of_delayed_payment, changed_credit_limit, num_credit_inquiries,
	credit_mix, outstanding_debt, credit_utilization_ratio, credit_history_age,
	payment_of_min_amount, total_emi_per_month, amount_invested_monthly,
	payment_behaviour, monthly_balance, credit_score`

const recordPlaceholders = `?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?`

func nullable(v float64) sql.NullFloat64 {
	if math.IsNaN(v) {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: v, Valid: true}
}

func value(n sql.NullFloat64) float64 {
	if !n.Valid {
		return math.NaN()
	}
	return n.Float64
}

func toRow(r model.CustomerRecord) recordRow {
	return recordRow{
		RowNo:                  int64(r.RowNo),
		ID:                     r.ID,
		CustomerID:             r.CustomerID,
		Month:                  int(r.Month),
		Name:                   r.Name,
		Age:                    nullable(r.Age),
		SSN:                    r.SSN,
		Occupation:             r.Occupation,
		AnnualIncome:           nullable(r.AnnualIncome),
		MonthlyInhandSalary:    nullable(r.MonthlyInhandSalary),
		NumBankAccounts:        nullable(r.NumBankAccounts),
		NumCreditCard:          nullable(r.NumCreditCard),
		InterestRate:           nullable(r.InterestRate),
		NumOfLoan:              nullable(r.NumOfLoan),
		TypeOfLoan:             r.TypeOfLoan,
		DelayFromDueDate:       nullable(r.DelayFromDueDate),
		NumOfDelayedPayment:    nullable(r.NumOfDelayedPayment),
		ChangedCreditLimit:     nullable(r.ChangedCreditLimit),
		NumCreditInquiries:     nullable(r.NumCreditInquiries),
		CreditMix:              r.CreditMix,
		OutstandingDebt:        nullable(r.OutstandingDebt),
		CreditUtilizationRatio: nullable(r.CreditUtilizationRatio),
		CreditHistoryAge:       nullable(r.CreditHistoryAge),
		PaymentOfMinAmount:     r.PaymentOfMinAmount.String(),
		TotalEMIPerMonth:       nullable(r.TotalEMIPerMonth),
		AmountInvestedMonthly:  nullable(r.AmountInvestedMonthly),
		PaymentBehaviour:       r.PaymentBehaviour,
		MonthlyBalance:         nullable(r.MonthlyBalance),
		CreditScore:            r.CreditScore.String(),
	}
}

func (row recordRow) record() model.CustomerRecord {
	return model.CustomerRecord{
		RowNo:                  int(row.RowNo),
		ID:                     row.ID,
		CustomerID:             row.CustomerID,
		Month:                  time.Month(row.Month),
		Name:                   row.Name,
		Age:                    value(row.Age),
		SSN:                    row.SSN,
		Occupation:             row.Occupation,
		AnnualIncome:           value(row.AnnualIncome),
		MonthlyInhandSalary:    value(row.MonthlyInhandSalary),
		NumBankAccounts:        value(row.NumBankAccounts),
		NumCreditCard:          value(row.NumCreditCard),
		InterestRate:           value(row.InterestRate),
		NumOfLoan:              value(row.NumOfLoan),
		TypeOfLoan:             row.TypeOfLoan,
		DelayFromDueDate:       value(row.DelayFromDueDate),
		NumOfDelayedPayment:    value(row.NumOfDelayedPayment),
		ChangedCreditLimit:     value(row.ChangedCreditLimit),
		NumCreditInquiries:     value(row.NumCreditInquiries),
		CreditMix:              row.CreditMix,
		OutstandingDebt:        value(row.OutstandingDebt),
		CreditUtilizationRatio: value(row.CreditUtilizationRatio),
		CreditHistoryAge:       value(row.CreditHistoryAge),
		PaymentOfMinAmount:     model.MinPayment(row.PaymentOfMinAmount),
		TotalEMIPerMonth:       value(row.TotalEMIPerMonth),
		AmountInvestedMonthly:  value(row.AmountInvestedMonthly),
		PaymentBehaviour:       row.PaymentBehaviour,
		MonthlyBalance:         value(row.MonthlyBalance),
		CreditScore:            model.ScoreLabel(row.CreditScore),
	}
}

func (row recordRow) args() []any {
	return []any{
		row.RowNo, row.ID, row.CustomerID, row.Month, row.Name, row.Age, row.SSN, row.Occupation,
		row.AnnualIncome, row.MonthlyInhandSalary, row.NumBankAccounts, row.NumCreditCard,
		row.InterestRate, row.NumOfLoan, row.TypeOfLoan, row.DelayFromDueDate,
		row.NumOfDelayedPayment, row.ChangedCreditLimit, row.NumCreditInquiries,
		row.CreditMix, row.OutstandingDebt, row.CreditUtilizationRatio, row.CreditHistoryAge,
		row.PaymentOfMinAmount, row.TotalEMIPerMonth, row.AmountInvestedMonthly,
		row.PaymentBehaviour, row.MonthlyBalance, row.CreditScore,
	}
}

// InsertBatch writes recs in one transaction. ClickHouse turns the prepared
// statement into a single block insert on commit.
func (r *RecordsRepositoryImpl) InsertBatch(ctx context.Context, recs []model.CustomerRecord) error {
	if len(recs) == 0 {
		return nil
	}
	q := fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s)`, r.table, recordColumns, recordPlaceholders)

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PreparexContext(ctx, q)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i := range recs {
		if _, err := stmt.ExecContext(ctx, toRow(recs[i]).args()...); err != nil {
			return fmt.Errorf("insert record %s: %w", recs[i].ID, err)
		}
	}
	return tx.Commit()
}

// Truncate removes every stored record so a fresh import does not mix with
// an earlier one.
func (r *RecordsRepositoryImpl) Truncate(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, fmt.Sprintf(`TRUNCATE TABLE %s`, r.table))
	return err
}

// ListAll returns every stored record in prepared table order.
func (r *RecordsRepositoryImpl) ListAll(ctx context.Context) ([]model.CustomerRecord, error) {
	rows, err := r.db.QueryxContext(ctx, listQuery(r.table))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.CustomerRecord
	for rows.Next() {
		var row recordRow
		if err := rows.StructScan(&row); err != nil {
			return nil, err
		}
		out = append(out, row.record())
	}
	return out, rows.Err()
}

func listQuery(table string) string {
	return fmt.Sprintf(`SELECT %s FROM %s ORDER BY row_no`, recordColumns, table)
}

func (r *RecordsRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.GetContext(ctx, &n, fmt.Sprintf(`SELECT count(*) FROM %s`, r.table)); err != nil {
		return 0, err
	}
	return n, nil
}
