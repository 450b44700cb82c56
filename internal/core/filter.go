package core

import "strconv"

// YearOf returns the record's year as text, the representation the year
// filter compares against.
func YearOf(e Expense) string {
	return strconv.Itoa(e.Date.Year())
}

// FilterByYear keeps the records whose year, as text, equals year.
// Relative order is preserved and the input is not modified.
func FilterByYear(items []Expense, year string) []Expense {
	out := make([]Expense, 0, len(items))
	for _, e := range items {
		if YearOf(e) == year {
			out = append(out, e)
		}
	}
	return out
}
