package memory

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"expenses/internal/core"
)

// Store keeps every expense in process memory. Nothing survives a restart.
type Store struct {
	mu    sync.Mutex
	items []core.Expense
	index map[string]int
}

// seedRow is one entry of the seed file. Amounts are strings so that
// decimals survive YAML float parsing untouched.
type seedRow struct {
	ID     string `yaml:"id"`
	Title  string `yaml:"title"`
	Amount string `yaml:"amount"`
	Date   string `yaml:"date"`
}

func New(items ...core.Expense) *Store {
	s := &Store{index: make(map[string]int, len(items))}
	for _, e := range items {
		s.items = append(s.items, e)
		s.index[e.ID] = len(s.items) - 1
	}
	return s
}

// NewFromFile seeds the store from a YAML list of expenses. A missing file
// yields an empty store; a malformed one is an error.
func NewFromFile(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return New(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	items, err := ParseSeed(data)
	if err != nil {
		return nil, fmt.Errorf("parse seed file %s: %w", path, err)
	}
	return New(items...), nil
}

// ParseSeed decodes the YAML seed format.
func ParseSeed(data []byte) ([]core.Expense, error) {
	var rows []seedRow
	if err := yaml.Unmarshal(data, &rows); err != nil {
		return nil, err
	}
	out := make([]core.Expense, 0, len(rows))
	seen := make(map[string]struct{}, len(rows))
	for i, r := range rows {
		id := strings.TrimSpace(r.ID)
		if id == "" {
			return nil, fmt.Errorf("row %d: %w", i+1, core.ErrEmptyID)
		}
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("row %d: duplicate id %q", i+1, id)
		}
		seen[id] = struct{}{}
		amt, err := decimal.NewFromString(strings.TrimSpace(r.Amount))
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, core.ErrInvalidAmount)
		}
		date, err := core.ParseDate(r.Date)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		out = append(out, core.Expense{ID: id, Title: r.Title, Amount: amt, Date: date})
	}
	return out, nil
}

// Add appends the record.
func (s *Store) Add(_ context.Context, e core.Expense) error {
	if strings.TrimSpace(e.ID) == "" {
		return core.ErrEmptyID
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, dup := s.index[e.ID]; dup {
		return fmt.Errorf("duplicate expense id %q", e.ID)
	}
	s.items = append(s.items, e)
	s.index[e.ID] = len(s.items) - 1
	return nil
}

// ListExpenses returns a copy of all records in insertion order.
func (s *Store) ListExpenses(_ context.Context) ([]core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Expense(nil), s.items...), nil
}

func (s *Store) GetExpense(_ context.Context, id string) (core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.index[id]
	if !ok {
		return core.Expense{}, core.ErrNotFound
	}
	return s.items[i], nil
}

// Len returns the number of stored records.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}
