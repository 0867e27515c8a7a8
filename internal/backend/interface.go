package backend

import (
	"context"

	"aruvadai/internal/services"
)

// CleanupFunc releases the resources a backend holds.
type CleanupFunc func() error

// Result is the composed ledger service plus its cleanup function.
type Result struct {
	Ledger  *services.LedgerService
	Cleanup CleanupFunc
}

// Factory creates the ledger backend based on configuration.
type Factory interface {
	CreateBackend(ctx context.Context, config Config) (*Result, error)
}

// Config holds configuration for backend creation.
type Config struct {
	Type Type

	// SQLite specific
	SQLiteDBPath string

	// AMQP mirror (optional for both backends)
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string
}

// Type selects the persistence backing the record store.
type Type string

const (
	SQLiteBackend Type = "sqlite"
	MemoryBackend Type = "memory"
)

func (t Type) String() string {
	return string(t)
}

// IsValid returns true if the backend type is valid.
func (t Type) IsValid() bool {
	switch t {
	case SQLiteBackend, MemoryBackend:
		return true
	default:
		return false
	}
}
