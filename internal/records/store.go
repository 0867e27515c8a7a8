// Package records owns the two record collections, harvest sales and
// production expenses, and the editor flow that mutates them. All
// persistence goes through the kv port: collections are loaded once at
// startup and written back in full after every mutation.
package records

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"aruvadai/internal/core"
	"aruvadai/internal/kv"
)

const (
	harvestKey  = "harvestHistory"
	expensesKey = "expensesHistory"
)

// Store is the exclusive owner of both collections. Display order is
// insertion order, most recent first.
type Store struct {
	mu       sync.Mutex
	kv       kv.Store
	harvests []core.HarvestEntry
	expenses []core.ExpenseEntry
}

// Open loads both collections from the persistence port. Absent or
// malformed values become empty collections; loading never fails the
// process. Legacy-shaped harvest records are rewritten once here, so the
// invariants hold for everything in memory.
func Open(ctx context.Context, store kv.Store) *Store {
	s := &Store{kv: store}
	s.harvests = loadCollection[core.HarvestEntry](ctx, store, harvestKey)
	s.expenses = loadCollection[core.ExpenseEntry](ctx, store, expensesKey)

	if n := migrateLegacyHarvests(s.harvests); n > 0 {
		slog.InfoContext(ctx, "Migrated legacy harvest records", "count", n)
		if err := s.persistHarvests(ctx); err != nil {
			slog.WarnContext(ctx, "Failed to persist migrated records", "error", err)
		}
	}

	slog.InfoContext(ctx, "Record store loaded",
		"harvest_entries", len(s.harvests),
		"expense_entries", len(s.expenses))
	return s
}

func loadCollection[T any](ctx context.Context, store kv.Store, key string) []T {
	raw, ok, err := store.Get(ctx, key)
	if err != nil {
		slog.WarnContext(ctx, "Failed to read history, starting empty", "key", key, "error", err)
		return nil
	}
	if !ok || raw == "" {
		return nil
	}
	var out []T
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		slog.WarnContext(ctx, "Discarding malformed history", "key", key, "error", err)
		return nil
	}
	return out
}

// Harvests returns a snapshot copy in display order.
func (s *Store) Harvests() []core.HarvestEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.HarvestEntry(nil), s.harvests...)
}

// Expenses returns a snapshot copy in display order.
func (s *Store) Expenses() []core.ExpenseEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.ExpenseEntry(nil), s.expenses...)
}

func (s *Store) FindHarvest(id core.EntryID) (core.HarvestEntry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.harvests {
		if e.ID == id {
			return e, true
		}
	}
	return core.HarvestEntry{}, false
}

// AddHarvest prepends the entry and persists the collection.
func (s *Store) AddHarvest(ctx context.Context, e core.HarvestEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.harvests = append([]core.HarvestEntry{e}, s.harvests...)
	return s.persistHarvests(ctx)
}

// UpdateHarvest replaces the entry with the same ID in place. The caller
// is responsible for having preserved ID and ProductID.
func (s *Store) UpdateHarvest(ctx context.Context, e core.HarvestEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.harvests {
		if s.harvests[i].ID == e.ID {
			s.harvests[i] = e
			return s.persistHarvests(ctx)
		}
	}
	return core.ErrUnknownEntry
}

// DeleteHarvest removes the entry by id. Deleting an unknown id is a
// no-op and reports false.
func (s *Store) DeleteHarvest(ctx context.Context, id core.EntryID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.harvests {
		if s.harvests[i].ID == id {
			s.harvests = append(s.harvests[:i], s.harvests[i+1:]...)
			return true, s.persistHarvests(ctx)
		}
	}
	return false, nil
}

// AddExpense prepends the entry and persists the collection.
func (s *Store) AddExpense(ctx context.Context, e core.ExpenseEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expenses = append([]core.ExpenseEntry{e}, s.expenses...)
	return s.persistExpenses(ctx)
}

// DeleteExpense removes the entry by id. Deleting an unknown id is a
// no-op and reports false.
func (s *Store) DeleteExpense(ctx context.Context, id core.EntryID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.expenses {
		if s.expenses[i].ID == id {
			s.expenses = append(s.expenses[:i], s.expenses[i+1:]...)
			return true, s.persistExpenses(ctx)
		}
	}
	return false, nil
}

// persistHarvests writes the full collection; callers hold the lock.
// There is no transactional guarantee across the two keys; both
// collections are independently valid.
func (s *Store) persistHarvests(ctx context.Context) error {
	entries := s.harvests
	if entries == nil {
		entries = []core.HarvestEntry{}
	}
	raw, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("marshal harvest history: %w", err)
	}
	if err := s.kv.Put(ctx, harvestKey, string(raw)); err != nil {
		return fmt.Errorf("persist harvest history: %w", err)
	}
	return nil
}

func (s *Store) persistExpenses(ctx context.Context) error {
	entries := s.expenses
	if entries == nil {
		entries = []core.ExpenseEntry{}
	}
	raw, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("marshal expense history: %w", err)
	}
	if err := s.kv.Put(ctx, expensesKey, string(raw)); err != nil {
		return fmt.Errorf("persist expense history: %w", err)
	}
	return nil
}
