package backend

import (
	"context"
	"fmt"
	"log/slog"

	"aruvadai/internal/amqp"
	"aruvadai/internal/kv"
	"aruvadai/internal/records"
	"aruvadai/internal/services"
)

// DefaultFactory implements the Factory interface.
type DefaultFactory struct {
	logger *slog.Logger
}

func NewFactory(logger *slog.Logger) Factory {
	if logger == nil {
		logger = slog.Default()
	}
	return &DefaultFactory{logger: logger}
}

// CreateBackend opens the configured kv store, loads the record
// collections and wraps them in a ledger service with an optional AMQP
// publisher.
func (f *DefaultFactory) CreateBackend(ctx context.Context, config Config) (*Result, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	var (
		store   kv.Store
		closeKV func() error
	)
	switch config.Type {
	case SQLiteBackend:
		sq, err := kv.OpenSQLite(config.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite store: %w", err)
		}
		store = sq
		closeKV = sq.Close
		f.logger.Info("Initialized SQLite backend", "db_path", config.SQLiteDBPath)
	case MemoryBackend:
		store = kv.NewMemory()
		f.logger.Info("Initialized memory backend")
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}

	recordStore := records.Open(ctx, store)

	// AMQP is optional: without a broker the ledger still works, only
	// the sheets mirror goes dark.
	var publisher services.EventPublisher
	if config.AMQPURL != "" {
		client, err := amqp.NewClient(config.AMQPURL, config.AMQPExchange, config.AMQPQueue)
		if err != nil {
			f.logger.Warn("Failed to initialize AMQP client, continuing without mirror", "error", err)
		} else {
			publisher = client
			f.logger.Info("Initialized AMQP client",
				"exchange", config.AMQPExchange,
				"queue", config.AMQPQueue)
		}
	}

	ledger := services.NewLedgerService(recordStore, publisher)

	cleanup := func() error {
		err := ledger.Close()
		if closeKV != nil {
			if kerr := closeKV(); kerr != nil && err == nil {
				err = kerr
			}
		}
		return err
	}

	return &Result{
		Ledger:  ledger,
		Cleanup: cleanup,
	}, nil
}
