package ui

import (
	"fmt"

	"expenses/internal/core"
)

// NewExpense toggles between an "Add New Expense" button (closed) and the
// add form (open). A saved form gets an identifier here, is forwarded to
// OnAddExpense and closes.
type NewExpense struct {
	OnAddExpense func(core.Expense) error
	// NewID defaults to core.UUIDGenerator.
	NewID core.IDGenerator

	editing bool
	form    *ExpenseForm
}

type NewExpenseView struct {
	Editing bool
	Form    ExpenseFormView
	Error   string
}

func (n *NewExpense) Editing() bool { return n.editing }

// Open shows the form. Opening an open form keeps its current values.
func (n *NewExpense) Open() {
	if n.editing {
		return
	}
	n.editing = true
	n.form = &ExpenseForm{
		OnSaveExpenseData: n.save,
		OnCancel:          n.Cancel,
	}
}

// Cancel closes the form without forwarding anything.
func (n *NewExpense) Cancel() {
	n.editing = false
	n.form = nil
}

// Form returns the open form, or nil while closed.
func (n *NewExpense) Form() *ExpenseForm {
	return n.form
}

func (n *NewExpense) save(data core.ExpenseData) error {
	newID := n.NewID
	if newID == nil {
		newID = core.UUIDGenerator
	}
	e, err := data.WithID(newID())
	if err != nil {
		return err
	}
	if n.OnAddExpense != nil {
		if err := n.OnAddExpense(e); err != nil {
			return fmt.Errorf("add expense: %w", err)
		}
	}
	n.Cancel()
	return nil
}

func (n *NewExpense) View() NewExpenseView {
	v := NewExpenseView{Editing: n.editing}
	if n.form != nil {
		v.Form = n.form.View()
	}
	return v
}
