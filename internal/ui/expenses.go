package ui

import "expenses/internal/core"

// DefaultFilterYear is the year selected before the user picks one.
const DefaultFilterYear = "2020"

// Expenses owns the selected year and shows the records of that year.
type Expenses struct {
	Items []core.Expense
	Years []string

	filteredYear string
}

type ExpensesView struct {
	Filter ExpensesFilterView
	List   ExpenseListView
}

// NewExpenses starts with initialYear selected, or DefaultFilterYear when
// initialYear is empty.
func NewExpenses(items []core.Expense, initialYear string) *Expenses {
	if initialYear == "" {
		initialYear = DefaultFilterYear
	}
	return &Expenses{Items: items, filteredYear: initialYear}
}

func (e *Expenses) SelectedYear() string { return e.filteredYear }

// FilterChange replaces the selected year.
func (e *Expenses) FilterChange(year string) {
	e.filteredYear = year
}

// Filtered is recomputed from Items on every call.
func (e *Expenses) Filtered() []core.Expense {
	return core.FilterByYear(e.Items, e.filteredYear)
}

func (e *Expenses) Filter() *ExpensesFilter {
	return &ExpensesFilter{
		Selected:       e.filteredYear,
		Years:          e.Years,
		OnChangeFilter: e.FilterChange,
	}
}

func (e *Expenses) List() ExpenseList {
	return ExpenseList{Items: e.Filtered()}
}

func (e *Expenses) View() ExpensesView {
	filter := e.Filter()
	return ExpensesView{
		Filter: filter.View(),
		List:   e.List().View(),
	}
}
