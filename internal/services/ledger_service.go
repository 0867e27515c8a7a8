package services

import (
	"context"
	"fmt"
	"log/slog"

	"aruvadai/internal/amqp"
	"aruvadai/internal/core"
	"aruvadai/internal/records"
)

// EventPublisher sends record events to the mirror queue. *amqp.Client
// satisfies it.
type EventPublisher interface {
	PublishRecordEvent(ctx context.Context, event *amqp.RecordEvent) error
	Close() error
}

// LedgerService orchestrates ledger mutations: the local record store is
// the source of truth, and every change is published for the sheets
// mirror afterwards. Publish failures never fail the request.
type LedgerService struct {
	store     *records.Store
	publisher EventPublisher
}

// NewLedgerService wraps the store. publisher may be nil, in which case
// changes stay local.
func NewLedgerService(store *records.Store, publisher EventPublisher) *LedgerService {
	return &LedgerService{
		store:     store,
		publisher: publisher,
	}
}

func (s *LedgerService) Harvests() []core.HarvestEntry { return s.store.Harvests() }
func (s *LedgerService) Expenses() []core.ExpenseEntry { return s.store.Expenses() }

func (s *LedgerService) FindHarvest(id core.EntryID) (core.HarvestEntry, bool) {
	return s.store.FindHarvest(id)
}

// AddHarvest saves the entry locally and publishes a created event.
func (s *LedgerService) AddHarvest(ctx context.Context, e core.HarvestEntry) error {
	if err := s.store.AddHarvest(ctx, e); err != nil {
		return fmt.Errorf("save harvest: %w", err)
	}
	s.publish(ctx, amqp.NewHarvestEvent(amqp.OpCreated, e))
	return nil
}

// UpdateHarvest replaces the entry locally and publishes an updated event.
func (s *LedgerService) UpdateHarvest(ctx context.Context, e core.HarvestEntry) error {
	if err := s.store.UpdateHarvest(ctx, e); err != nil {
		return err
	}
	s.publish(ctx, amqp.NewHarvestEvent(amqp.OpUpdated, e))
	return nil
}

// DeleteHarvest removes the entry locally and publishes a deleted event.
func (s *LedgerService) DeleteHarvest(ctx context.Context, id core.EntryID) (bool, error) {
	entry, found := s.store.FindHarvest(id)
	deleted, err := s.store.DeleteHarvest(ctx, id)
	if err != nil || !deleted {
		return deleted, err
	}
	if found {
		s.publish(ctx, amqp.NewHarvestEvent(amqp.OpDeleted, entry))
	}
	return true, nil
}

// AddExpense saves the entry locally and publishes a created event.
func (s *LedgerService) AddExpense(ctx context.Context, e core.ExpenseEntry) error {
	if err := s.store.AddExpense(ctx, e); err != nil {
		return fmt.Errorf("save expense: %w", err)
	}
	s.publish(ctx, amqp.NewExpenseEvent(amqp.OpCreated, e))
	return nil
}

// DeleteExpense removes the entry locally and publishes a deleted event.
func (s *LedgerService) DeleteExpense(ctx context.Context, id core.EntryID) (bool, error) {
	var entry core.ExpenseEntry
	found := false
	for _, e := range s.store.Expenses() {
		if e.ID == id {
			entry, found = e, true
			break
		}
	}
	deleted, err := s.store.DeleteExpense(ctx, id)
	if err != nil || !deleted {
		return deleted, err
	}
	if found {
		s.publish(ctx, amqp.NewExpenseEvent(amqp.OpDeleted, entry))
	}
	return true, nil
}

func (s *LedgerService) publish(ctx context.Context, event *amqp.RecordEvent) {
	if s.publisher == nil {
		slog.WarnContext(ctx, "AMQP client not available, skipping record event",
			"kind", event.Kind, "op", event.Op)
		return
	}
	if err := s.publisher.PublishRecordEvent(ctx, event); err != nil {
		slog.ErrorContext(ctx, "Failed to publish record event",
			"kind", event.Kind,
			"op", event.Op,
			"entry_id", event.EntryID(),
			"error", err)
		// The entry is saved locally; the mirror catches up later.
	}
}

// Close releases the publisher connection.
func (s *LedgerService) Close() error {
	if s.publisher != nil {
		if err := s.publisher.Close(); err != nil {
			return fmt.Errorf("close ledger service: %w", err)
		}
	}
	return nil
}
