package core

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the wire format of dates in forms, query strings and seed files.
const DateLayout = "2006-01-02"

type (
	Date struct {
		time.Time
	}

	// Expense is one recorded expense. Records are immutable once created.
	Expense struct {
		ID     string
		Title  string
		Amount decimal.Decimal
		Date   Date
	}

	// ExpenseData is the raw payload produced by the add form: the exact text
	// entered in each field, before an identifier is assigned.
	ExpenseData struct {
		Title  string
		Amount string
		Date   string
	}
)

var (
	ErrInvalidAmount = errors.New("invalid amount")
	ErrInvalidDate   = errors.New("invalid date")
	ErrEmptyID       = errors.New("empty expense id")
	ErrNotFound      = errors.New("expense not found")
)

// NewDate creates a new Date from year, month, day
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t}, nil
}

// Year returns the year
func (d Date) Year() int {
	return d.Time.Year()
}

// String formats the date as YYYY-MM-DD.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}

// WithID turns the form payload into a record carrying id. The widget
// constraints (minimum amount, date range) are not checked here; only text
// that cannot be read as a number or a date is rejected.
func (d ExpenseData) WithID(id string) (Expense, error) {
	if strings.TrimSpace(id) == "" {
		return Expense{}, ErrEmptyID
	}
	amount, err := ParseAmount(d.Amount)
	if err != nil {
		return Expense{}, err
	}
	date, err := ParseDate(d.Date)
	if err != nil {
		return Expense{}, err
	}
	return Expense{
		ID:     id,
		Title:  d.Title,
		Amount: amount,
		Date:   date,
	}, nil
}

// Data returns the form-shaped view of the record.
func (e Expense) Data() ExpenseData {
	return ExpenseData{
		Title:  e.Title,
		Amount: FormatAmount(e.Amount),
		Date:   e.Date.String(),
	}
}
