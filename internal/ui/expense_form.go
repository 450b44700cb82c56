package ui

import "expenses/internal/core"

// Field identifies one input of the add form.
type Field string

const (
	FieldTitle  Field = "title"
	FieldAmount Field = "amount"
	FieldDate   Field = "date"
)

// Fields lists the form inputs in display order.
var Fields = []Field{FieldTitle, FieldAmount, FieldDate}

// Constraints are declared on the input widgets only. Nothing in the form
// logic checks them.
type Constraints struct {
	AmountMin  string
	AmountStep string
	DateMin    string
	DateMax    string
}

var FormConstraints = Constraints{
	AmountMin:  "0.01",
	AmountStep: "0.01",
	DateMin:    "2018-01-01",
	DateMax:    "2022-12-31",
}

// ExpenseForm is the controlled add form.
type ExpenseForm struct {
	// OnSaveExpenseData receives the entered values on submit.
	OnSaveExpenseData func(core.ExpenseData) error
	// OnCancel, when set, is invoked by Cancel and shows a cancel button.
	OnCancel func()

	title  string
	amount string
	date   string
}

type ExpenseFormView struct {
	Title       string
	Amount      string
	Date        string
	Constraints Constraints
	Cancelable  bool
}

// Change is the shared input handler; unknown fields are ignored.
func (f *ExpenseForm) Change(field Field, value string) {
	switch field {
	case FieldTitle:
		f.title = value
	case FieldAmount:
		f.amount = value
	case FieldDate:
		f.date = value
	}
}

// Values returns the current field values, unmodified.
func (f *ExpenseForm) Values() core.ExpenseData {
	return core.ExpenseData{
		Title:  f.title,
		Amount: f.amount,
		Date:   f.date,
	}
}

// Submit hands the current values to OnSaveExpenseData and clears the
// fields. When the callback fails the fields are kept and its error returned.
func (f *ExpenseForm) Submit() error {
	data := f.Values()
	if f.OnSaveExpenseData != nil {
		if err := f.OnSaveExpenseData(data); err != nil {
			return err
		}
	}
	f.title = ""
	f.amount = ""
	f.date = ""
	return nil
}

func (f *ExpenseForm) Cancel() {
	if f.OnCancel != nil {
		f.OnCancel()
	}
}

func (f *ExpenseForm) View() ExpenseFormView {
	return ExpenseFormView{
		Title:       f.title,
		Amount:      f.amount,
		Date:        f.date,
		Constraints: FormConstraints,
		Cancelable:  f.OnCancel != nil,
	}
}
