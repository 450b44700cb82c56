package ui

// DefaultYears are the options of the year selector, newest first.
var DefaultYears = []string{"2022", "2021", "2020", "2019"}

// ExpensesFilter is the year selector.
type ExpensesFilter struct {
	Selected       string
	Years          []string
	OnChangeFilter func(year string)
}

type FilterOption struct {
	Year     string
	Selected bool
}

type ExpensesFilterView struct {
	Selected string
	Options  []FilterOption
}

// Select reports year upward. The filter keeps no state of its own.
func (f *ExpensesFilter) Select(year string) {
	if f.OnChangeFilter != nil {
		f.OnChangeFilter(year)
	}
}

// View lists the options; a selected year outside Years is still offered.
func (f *ExpensesFilter) View() ExpensesFilterView {
	years := f.Years
	if len(years) == 0 {
		years = DefaultYears
	}
	v := ExpensesFilterView{Selected: f.Selected}
	found := false
	for _, y := range years {
		sel := y == f.Selected
		found = found || sel
		v.Options = append(v.Options, FilterOption{Year: y, Selected: sel})
	}
	if !found && f.Selected != "" {
		v.Options = append(v.Options, FilterOption{Year: f.Selected, Selected: true})
	}
	return v
}
