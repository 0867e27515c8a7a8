package backend

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"

	"aruvadai/internal/config"
	"aruvadai/internal/core"
)

func TestTypeIsValid(t *testing.T) {
	tests := []struct {
		value Type
		valid bool
	}{
		{SQLiteBackend, true},
		{MemoryBackend, true},
		{"sheets", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := tt.value.IsValid(); got != tt.valid {
			t.Errorf("IsValid(%q) = %v, want %v", tt.value, got, tt.valid)
		}
	}
}

func TestFromAppConfig(t *testing.T) {
	cfg, err := FromAppConfig(&config.Config{
		DataBackend:  "sqlite",
		SQLiteDBPath: "/tmp/test.db",
		AMQPURL:      "amqp://localhost:5672/",
		AMQPExchange: "ex",
		AMQPQueue:    "q",
	})
	if err != nil {
		t.Fatalf("FromAppConfig: %v", err)
	}
	if cfg.Type != SQLiteBackend || cfg.SQLiteDBPath != "/tmp/test.db" || cfg.AMQPQueue != "q" {
		t.Errorf("FromAppConfig = %+v", cfg)
	}

	if _, err := FromAppConfig(nil); err == nil {
		t.Error("nil app config should fail")
	}
	if _, err := FromAppConfig(&config.Config{DataBackend: "bogus"}); err == nil {
		t.Error("unknown backend should fail")
	}
}

func TestConfigValidate(t *testing.T) {
	if err := (Config{Type: SQLiteBackend}).Validate(); err == nil {
		t.Error("sqlite backend without db path should fail")
	}
	if err := (Config{Type: MemoryBackend}).Validate(); err != nil {
		t.Errorf("memory backend: %v", err)
	}
}

func TestCreateBackend(t *testing.T) {
	ctx := context.Background()
	factory := NewFactory(nil)

	tests := []struct {
		name   string
		config Config
	}{
		{"memory", Config{Type: MemoryBackend}},
		{"sqlite", Config{Type: SQLiteBackend, SQLiteDBPath: filepath.Join(t.TempDir(), "test.db")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := factory.CreateBackend(ctx, tt.config)
			if err != nil {
				t.Fatalf("CreateBackend: %v", err)
			}
			defer result.Cleanup()

			e := core.NewHarvestEntry(1,
				decimal.NewFromInt(10), decimal.NewFromInt(50), decimal.Zero, core.Today())
			if err := result.Ledger.AddHarvest(ctx, e); err != nil {
				t.Fatalf("add via created backend: %v", err)
			}
			if _, ok := result.Ledger.FindHarvest(e.ID); !ok {
				t.Fatal("entry not found after add")
			}
		})
	}
}

func TestCreateBackendRejectsInvalidConfig(t *testing.T) {
	factory := NewFactory(nil)
	if _, err := factory.CreateBackend(context.Background(), Config{Type: "bogus"}); err == nil {
		t.Error("invalid backend type should fail")
	}
}
