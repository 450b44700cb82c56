package ui

import (
	"github.com/shopspring/decimal"

	"expenses/internal/core"
)

// PlaceholderTitle replaces an item's displayed title on "Change Title".
const PlaceholderTitle = "Another title"

// ExpenseItem renders one record. It keeps its own copy of the title so the
// heading can change without touching the record it was built from.
type ExpenseItem struct {
	expense core.Expense
	title   string
}

// ExpenseItemView is the render model of an ExpenseItem.
type ExpenseItemView struct {
	ID      string
	Heading string
	Amount  string
	Date    ExpenseDate
}

func NewExpenseItem(e core.Expense) *ExpenseItem {
	return &ExpenseItem{expense: e, title: e.Title}
}

// Expense returns the record the item was built from.
func (i *ExpenseItem) Expense() core.Expense { return i.expense }

func (i *ExpenseItem) Title() string           { return i.expense.Title }
func (i *ExpenseItem) Amount() decimal.Decimal { return i.expense.Amount }
func (i *ExpenseItem) Date() core.Date         { return i.expense.Date }

// DisplayTitle is the heading currently shown.
func (i *ExpenseItem) DisplayTitle() string { return i.title }

// ChangeTitle swaps the displayed heading for PlaceholderTitle.
func (i *ExpenseItem) ChangeTitle() {
	i.title = PlaceholderTitle
}

func (i *ExpenseItem) View() ExpenseItemView {
	return ExpenseItemView{
		ID:      i.expense.ID,
		Heading: i.title,
		Amount:  core.FormatDollars(i.expense.Amount),
		Date:    NewExpenseDate(i.expense.Date),
	}
}
