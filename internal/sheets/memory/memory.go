// Package memory is an in-process RecordAppender for tests and local
// runs without Google credentials.
package memory

import (
	"context"
	"fmt"
	"sync"

	"aruvadai/internal/core"
)

type Store struct {
	mu       sync.Mutex
	harvests []core.HarvestEntry
	expenses []core.ExpenseEntry
}

func New() *Store {
	return &Store{}
}

// AppendHarvest stores the entry and returns a synthetic row reference.
func (s *Store) AppendHarvest(_ context.Context, e core.HarvestEntry) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.harvests = append(s.harvests, e)
	return fmt.Sprintf("mem:harvests:%d", len(s.harvests)), nil
}

// AppendExpense stores the entry and returns a synthetic row reference.
func (s *Store) AppendExpense(_ context.Context, e core.ExpenseEntry) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expenses = append(s.expenses, e)
	return fmt.Sprintf("mem:expenses:%d", len(s.expenses)), nil
}

// Harvests returns the appended harvest rows in append order.
func (s *Store) Harvests() []core.HarvestEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.HarvestEntry(nil), s.harvests...)
}

// Expenses returns the appended expense rows in append order.
func (s *Store) Expenses() []core.ExpenseEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.ExpenseEntry(nil), s.expenses...)
}
