package http

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"

	"expenses/internal/core"
	applog "expenses/internal/log"
	"expenses/internal/ui"
)

// newExpense builds the add-expense component for one request. Saved records
// go to the store; added, when non-nil, receives the accepted record.
func (s *Server) newExpense(ctx context.Context, added *core.Expense) *ui.NewExpense {
	return &ui.NewExpense{
		NewID: s.newID,
		OnAddExpense: func(e core.Expense) error {
			if err := s.store.Add(ctx, e); err != nil {
				return err
			}
			if added != nil {
				*added = e
			}
			return nil
		},
	}
}

// expenses builds the list section over the full store contents with year
// selected through the filter.
func (s *Server) expenses(ctx context.Context, year string) (*ui.Expenses, error) {
	items, err := s.store.ListExpenses(ctx)
	if err != nil {
		return nil, err
	}
	ex := ui.NewExpenses(items, s.defaultYear)
	ex.Years = s.years
	ex.Filter().Select(year)
	return ex, nil
}

// handleNewExpensePartial renders the new-expense section, open with ?open=1
// and closed otherwise (the Cancel link).
func (s *Server) handleNewExpensePartial(w http.ResponseWriter, r *http.Request) {
	if resp := RequireGET(r); resp != nil {
		resp.Write(w)
		return
	}
	q := r.URL.Query()
	ne := s.newExpense(r.Context(), nil)
	if ParseFlag(q, "open") {
		ne.Open()
	}
	data := newExpenseData{NewExpenseView: ne.View(), Year: ParseYear(q, s.defaultYear)}
	s.render(w, r, NewHTMXResponse(), "new_expense", data)
}

// handleCreateExpense replays the posted fields into an open form and submits it.
func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	if resp := RequirePOST(r); resp != nil {
		resp.Write(w)
		return
	}
	if resp := ParseFormOrFail(r); resp != nil {
		resp.Write(w)
		return
	}

	ctx := r.Context()
	year := ParseYear(r.PostForm, s.defaultYear)

	var created core.Expense
	ne := s.newExpense(ctx, &created)
	ne.Open()
	form := ne.Form()
	ReplayExpenseForm(form, r.PostForm)

	if err := form.Submit(); err != nil {
		s.rejectExpense(w, r, ne, year, err)
		return
	}

	atomic.AddInt64(&s.appMetrics.expensesAdded, 1)
	applog.NewStructuredLogger(applog.FromContext(ctx)).
		LogExpenseAdded(ctx, created.ID, created.Title, core.FormatAmount(created.Amount), created.Date.String())

	if !isHTMX(r) {
		http.Redirect(w, r, indexURL(year), http.StatusSeeOther)
		return
	}

	resp := NewHTMXResponse().
		TriggerExpenseCreated(created.ID, core.YearOf(created)).
		TriggerFormReset().
		TriggerSuccessNotification("Expense added")
	s.render(w, r, resp, "new_expense", newExpenseData{NewExpenseView: ne.View(), Year: year})
}

// rejectExpense answers a failed submit with the form still open and the
// entered values kept.
func (s *Server) rejectExpense(w http.ResponseWriter, r *http.Request, ne *ui.NewExpense, year string, err error) {
	ctx := r.Context()
	status := http.StatusUnprocessableEntity
	var msg string
	switch {
	case errors.Is(err, core.ErrInvalidAmount):
		msg = "Please enter a valid amount"
	case errors.Is(err, core.ErrInvalidDate):
		msg = "Please enter a valid date (YYYY-MM-DD)"
	default:
		status = http.StatusInternalServerError
		msg = "Could not save the expense"
	}

	if status == http.StatusUnprocessableEntity {
		atomic.AddInt64(&s.appMetrics.rejectedSubmissions, 1)
		applog.FromContext(ctx).WithComponent(applog.ComponentExpense).WarnContext(ctx, "Expense rejected",
			applog.FieldError, err.Error(),
			"error_type", applog.ErrorTypeValidation)
	} else {
		s.logError(r, "Expense save failed", err, applog.ComponentExpense, applog.OpCreate)
	}

	view := ne.View()
	view.Error = msg
	data := newExpenseData{NewExpenseView: view, Year: year}
	if !isHTMX(r) {
		s.renderPage(w, r, status, year, data, nil)
		return
	}
	s.render(w, r, NewHTMXResponse().Status(status).TriggerErrorNotification(msg), "new_expense", data)
}

// handleExpensesPartial renders the expenses section for ?year=.
func (s *Server) handleExpensesPartial(w http.ResponseWriter, r *http.Request) {
	if resp := RequireGET(r); resp != nil {
		resp.Write(w)
		return
	}
	ctx := r.Context()
	year := ParseYear(r.URL.Query(), s.defaultYear)
	ex, err := s.expenses(ctx, year)
	if err != nil {
		s.logError(r, "List expenses failed", err, applog.ComponentStore, applog.OpList)
		InternalServerError("Could not load expenses").Write(w)
		return
	}
	atomic.AddInt64(&s.appMetrics.filterChanges, 1)

	view := ex.View()
	applog.FromContext(ctx).WithComponent(applog.ComponentExpense).DebugContext(ctx, "Expenses filtered",
		applog.FieldOperation, applog.OpFilter,
		applog.FieldYear, ex.SelectedYear(),
		applog.FieldCount, len(view.List.Items))
	s.render(w, r, NewHTMXResponse(), "expenses", view)
}

// handleChangeTitle swaps the displayed title of one item for the
// placeholder. The stored record keeps its title.
func (s *Server) handleChangeTitle(w http.ResponseWriter, r *http.Request) {
	if resp := RequirePOST(r); resp != nil {
		resp.Write(w)
		return
	}
	ctx := r.Context()
	id := sanitizeInput(r.PathValue("id"))

	e, err := s.store.GetExpense(ctx, id)
	if errors.Is(err, core.ErrNotFound) || errors.Is(err, core.ErrEmptyID) {
		NotFoundError("Expense not found").Write(w)
		return
	}
	if err != nil {
		s.logError(r, "Get expense failed", err, applog.ComponentStore, applog.OpChangeTitle)
		InternalServerError("Could not load the expense").Write(w)
		return
	}

	item := ui.NewExpenseItem(e)
	item.ChangeTitle()
	atomic.AddInt64(&s.appMetrics.titleChanges, 1)
	applog.FromContext(ctx).WithComponent(applog.ComponentExpense).DebugContext(ctx, "Title changed",
		applog.FieldOperation, applog.OpChangeTitle,
		applog.FieldExpenseID, e.ID,
		applog.FieldTitle, item.DisplayTitle())

	if isHTMX(r) {
		s.render(w, r, NewHTMXResponse(), "expense_item", item.View())
		return
	}

	// Without htmx, show the whole page for the record's year with this
	// one item changed.
	changed := item.View()
	s.renderPage(w, r, http.StatusOK, core.YearOf(e), newExpenseData{Year: core.YearOf(e)}, func(v *ui.ExpensesView) {
		for i := range v.List.Items {
			if v.List.Items[i].ID == changed.ID {
				v.List.Items[i] = changed
			}
		}
	})
}
