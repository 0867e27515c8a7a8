package memory

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"aruvadai/internal/core"
)

func TestAppendAndList(t *testing.T) {
	ctx := context.Background()
	s := New()

	h := core.NewHarvestEntry(1,
		decimal.NewFromInt(10), decimal.NewFromInt(50), decimal.NewFromInt(20), core.Today())
	ref, err := s.AppendHarvest(ctx, h)
	if err != nil {
		t.Fatalf("append harvest: %v", err)
	}
	if ref != "mem:harvests:1" {
		t.Errorf("row ref = %q", ref)
	}

	e := core.NewExpenseEntry(2,
		decimal.NewFromInt(100), decimal.Zero, decimal.Zero, core.Today())
	if _, err := s.AppendExpense(ctx, e); err != nil {
		t.Fatalf("append expense: %v", err)
	}

	if got := s.Harvests(); len(got) != 1 || got[0].ID != h.ID {
		t.Fatalf("harvests = %v", got)
	}
	if got := s.Expenses(); len(got) != 1 || got[0].ID != e.ID {
		t.Fatalf("expenses = %v", got)
	}
}

func TestListReturnsCopies(t *testing.T) {
	ctx := context.Background()
	s := New()
	h := core.NewHarvestEntry(1, decimal.NewFromInt(1), decimal.NewFromInt(1), decimal.Zero, core.Today())
	if _, err := s.AppendHarvest(ctx, h); err != nil {
		t.Fatal(err)
	}

	rows := s.Harvests()
	rows[0].ProductID = 99
	if got := s.Harvests(); got[0].ProductID == 99 {
		t.Fatal("snapshot mutation leaked into the store")
	}
}
