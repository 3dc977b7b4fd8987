package core

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	Income    TransactionType = "INCOME"
	Expense   TransactionType = "EXPENSE"
	AmountOut TransactionType = "AMOUNT_OUT"
)

// SalariesCategory is the reserved category name that marks payroll
// payments. Payroll totals are derived from transactions in this
// category, independent of the staff roster.
const SalariesCategory = "Salaries"

type (
	TransactionType string

	// Date carries day-granular semantics: the time-of-day component is
	// normalized to UTC midnight so range comparisons ignore the
	// originating timezone and clock time.
	Date struct {
		time.Time
	}

	Transaction struct {
		ID        string
		Date      Date
		Details   string
		Category  string // category name, the canonical grouping key
		Type      TransactionType
		Amount    decimal.Decimal // non-negative; direction encoded by Type
		Balance   decimal.Decimal // running balance computed upstream, opaque to reports
		ProjectID string
		StaffID   string
	}

	CategoryKind string

	Category struct {
		ID   string
		Name string
		Kind CategoryKind
	}

	Project struct {
		ID         string
		Name       string
		ClientName string
		Budget     decimal.Decimal
		Status     string
	}

	StaffStatus string

	StaffMember struct {
		ID     string
		Name   string
		Salary decimal.Decimal // contractual monthly figure, not transaction-derived
		Status StaffStatus
	}

	// Snapshot is the immutable per-invocation view of the ledger. All
	// report functions computed for one render must share a single
	// Snapshot so their totals cannot diverge.
	Snapshot struct {
		Transactions []Transaction
		Categories   []Category
		Projects     []Project
		Staff        []StaffMember
	}
)

const (
	// Category kinds mirror the transaction type vocabulary.
	IncomeCategory    CategoryKind = "INCOME"
	ExpenseCategory   CategoryKind = "EXPENSE"
	AmountOutCategory CategoryKind = "AMOUNT_OUT"

	StaffActive   StaffStatus = "Active"
	StaffInactive StaffStatus = "Inactive"
)

var (
	ErrInvalidDate    = errors.New("invalid date")
	ErrInvalidType    = errors.New("invalid transaction type")
	ErrNegativeAmount = errors.New("amount must not be negative")
	ErrEmptyDetails   = errors.New("empty details")
	ErrEmptyCategory  = errors.New("empty category")
)

// Valid reports whether t is one of the known transaction types.
func (t TransactionType) Valid() bool {
	switch t {
	case Income, Expense, AmountOut:
		return true
	default:
		return false
	}
}

// NewDate creates a day-granular Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates an arbitrary timestamp to its calendar day.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return NewDate(y, int(m), d)
}

// ParseDate parses a YYYY-MM-DD string into a Date.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return DateOf(t), nil
}

// Truncate reduces the receiver to calendar-day granularity. Dates built
// through NewDate/DateOf/ParseDate are already truncated; Truncate makes
// comparisons safe for Dates constructed from raw timestamps too.
func (d Date) Truncate() Date {
	return DateOf(d.Time)
}

// BeforeDay reports whether d falls on an earlier calendar day than other.
func (d Date) BeforeDay(other Date) bool {
	return d.Truncate().Time.Before(other.Truncate().Time)
}

// AfterDay reports whether d falls on a later calendar day than other.
func (d Date) AfterDay(other Date) bool {
	return d.Truncate().Time.After(other.Truncate().Time)
}

// SameDay reports whether both dates fall on the same calendar day.
func (d Date) SameDay(other Date) bool {
	return d.Truncate().Time.Equal(other.Truncate().Time)
}

func (d Date) String() string {
	return d.Time.Format("2006-01-02")
}

// Signed returns the amount with the sign implied by the transaction
// type: positive for income, negative for expenses and owner payments.
func (t Transaction) Signed() decimal.Decimal {
	if t.Type == Income {
		return t.Amount
	}
	return t.Amount.Neg()
}

func (t Transaction) Validate() error {
	if t.Date.IsZero() {
		return ErrInvalidDate
	}
	if !t.Type.Valid() {
		return ErrInvalidType
	}
	if t.Amount.IsNegative() {
		return ErrNegativeAmount
	}
	if len(strings.TrimSpace(t.Details)) == 0 {
		return ErrEmptyDetails
	}
	if len(t.Details) > 200 {
		return errors.New("details too long (max 200 characters)")
	}
	if strings.TrimSpace(t.Category) == "" {
		return ErrEmptyCategory
	}
	return nil
}

func (p Project) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return errors.New("empty project name")
	}
	if p.Budget.IsNegative() {
		return errors.New("budget must not be negative")
	}
	return nil
}

func (s StaffMember) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return errors.New("empty staff name")
	}
	if s.Salary.IsNegative() {
		return errors.New("salary must not be negative")
	}
	switch s.Status {
	case StaffActive, StaffInactive:
	default:
		return errors.New("invalid staff status")
	}
	return nil
}
