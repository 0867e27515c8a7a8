package services

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"aruvadai/internal/amqp"
	"aruvadai/internal/core"
	"aruvadai/internal/kv"
	"aruvadai/internal/records"
)

type fakePublisher struct {
	events []*amqp.RecordEvent
	err    error
	closed bool
}

func (p *fakePublisher) PublishRecordEvent(_ context.Context, e *amqp.RecordEvent) error {
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, e)
	return nil
}

func (p *fakePublisher) Close() error {
	p.closed = true
	return nil
}

func newTestService(t *testing.T) (*LedgerService, *fakePublisher) {
	t.Helper()
	store := records.Open(context.Background(), kv.NewMemory())
	pub := &fakePublisher{}
	return NewLedgerService(store, pub), pub
}

func testHarvest() core.HarvestEntry {
	return core.NewHarvestEntry(1,
		decimal.NewFromInt(10), decimal.NewFromInt(50), decimal.NewFromInt(20), core.Today())
}

func testExpense() core.ExpenseEntry {
	return core.NewExpenseEntry(2,
		decimal.NewFromInt(100), decimal.NewFromInt(50), decimal.Zero, core.Today())
}

func TestLedgerServicePublishesEvents(t *testing.T) {
	ctx := context.Background()
	svc, pub := newTestService(t)

	h := testHarvest()
	if err := svc.AddHarvest(ctx, h); err != nil {
		t.Fatalf("add harvest: %v", err)
	}
	updated := h.WithAmounts(decimal.NewFromInt(12), decimal.NewFromInt(50), decimal.Zero, core.Today())
	if err := svc.UpdateHarvest(ctx, updated); err != nil {
		t.Fatalf("update harvest: %v", err)
	}
	if deleted, err := svc.DeleteHarvest(ctx, h.ID); err != nil || !deleted {
		t.Fatalf("delete harvest: deleted=%v err=%v", deleted, err)
	}

	e := testExpense()
	if err := svc.AddExpense(ctx, e); err != nil {
		t.Fatalf("add expense: %v", err)
	}
	if deleted, err := svc.DeleteExpense(ctx, e.ID); err != nil || !deleted {
		t.Fatalf("delete expense: deleted=%v err=%v", deleted, err)
	}

	want := []struct{ kind, op string }{
		{amqp.KindHarvest, amqp.OpCreated},
		{amqp.KindHarvest, amqp.OpUpdated},
		{amqp.KindHarvest, amqp.OpDeleted},
		{amqp.KindExpense, amqp.OpCreated},
		{amqp.KindExpense, amqp.OpDeleted},
	}
	if len(pub.events) != len(want) {
		t.Fatalf("published %d events, want %d", len(pub.events), len(want))
	}
	for i, w := range want {
		if pub.events[i].Kind != w.kind || pub.events[i].Op != w.op {
			t.Errorf("event %d = %s/%s, want %s/%s",
				i, pub.events[i].Kind, pub.events[i].Op, w.kind, w.op)
		}
	}
	if !pub.events[2].Harvest.NetTotal.Equal(updated.NetTotal) {
		t.Error("delete event should carry the last saved entry")
	}
}

func TestLedgerServiceSavesDespitePublishFailure(t *testing.T) {
	ctx := context.Background()
	store := records.Open(ctx, kv.NewMemory())
	svc := NewLedgerService(store, &fakePublisher{err: errors.New("broker down")})

	h := testHarvest()
	if err := svc.AddHarvest(ctx, h); err != nil {
		t.Fatalf("publish failure must not fail the save: %v", err)
	}
	if _, ok := store.FindHarvest(h.ID); !ok {
		t.Fatal("entry not saved locally")
	}
}

func TestLedgerServiceWithoutPublisher(t *testing.T) {
	ctx := context.Background()
	store := records.Open(ctx, kv.NewMemory())
	svc := NewLedgerService(store, nil)

	if err := svc.AddHarvest(ctx, testHarvest()); err != nil {
		t.Fatalf("add without publisher: %v", err)
	}
	if len(svc.Harvests()) != 1 {
		t.Fatal("entry not saved")
	}
	if err := svc.Close(); err != nil {
		t.Fatalf("close without publisher: %v", err)
	}
}

func TestLedgerServiceSkipsEventsForNoOps(t *testing.T) {
	ctx := context.Background()
	svc, pub := newTestService(t)

	if deleted, err := svc.DeleteHarvest(ctx, "missing"); err != nil || deleted {
		t.Fatalf("unknown delete: deleted=%v err=%v", deleted, err)
	}
	if deleted, err := svc.DeleteExpense(ctx, "missing"); err != nil || deleted {
		t.Fatalf("unknown delete: deleted=%v err=%v", deleted, err)
	}
	if err := svc.UpdateHarvest(ctx, testHarvest()); err != core.ErrUnknownEntry {
		t.Fatalf("unknown update: %v", err)
	}
	if len(pub.events) != 0 {
		t.Fatalf("no-ops published %d events", len(pub.events))
	}
}

func TestLedgerServiceClose(t *testing.T) {
	svc, pub := newTestService(t)
	if err := svc.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if !pub.closed {
		t.Error("close did not reach the publisher")
	}
}
