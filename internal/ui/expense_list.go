package ui

import "expenses/internal/core"

// ExpenseList renders one ExpenseItem per record, in order.
type ExpenseList struct {
	Items []core.Expense
}

type ExpenseListView struct {
	Items []ExpenseItemView
}

// Empty reports whether the list has nothing to show.
func (v ExpenseListView) Empty() bool { return len(v.Items) == 0 }

func (l ExpenseList) Render() []*ExpenseItem {
	out := make([]*ExpenseItem, 0, len(l.Items))
	for _, e := range l.Items {
		out = append(out, NewExpenseItem(e))
	}
	return out
}

func (l ExpenseList) View() ExpenseListView {
	items := l.Render()
	v := ExpenseListView{Items: make([]ExpenseItemView, 0, len(items))}
	for _, it := range items {
		v.Items = append(v.Items, it.View())
	}
	return v
}
