package ui

import (
	"fmt"
	"strconv"

	"expenses/internal/core"
)

// ExpenseDate is the month/day/year breakdown shown on an expense.
type ExpenseDate struct {
	Month string // long English month name
	Day   string // two digits
	Year  string
}

func NewExpenseDate(d core.Date) ExpenseDate {
	if d.IsZero() {
		return ExpenseDate{}
	}
	return ExpenseDate{
		Month: d.Month().String(),
		Day:   fmt.Sprintf("%02d", d.Day()),
		Year:  strconv.Itoa(d.Year()),
	}
}
