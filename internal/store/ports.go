package store

import (
	"context"

	"expenses/internal/core"
)

// Ports for the application-level expense list.
type (
	// ExpenseAdder appends a new record. Records are never updated or removed.
	ExpenseAdder interface {
		Add(ctx context.Context, e core.Expense) error
	}

	// ExpenseLister returns the full list in insertion order.
	ExpenseLister interface {
		ListExpenses(ctx context.Context) ([]core.Expense, error)
	}

	// ExpenseGetter looks a single record up by identifier.
	ExpenseGetter interface {
		// GetExpense returns core.ErrNotFound when no record has the id.
		GetExpense(ctx context.Context, id string) (core.Expense, error)
	}

	Store interface {
		ExpenseAdder
		ExpenseLister
		ExpenseGetter
	}
)
