// Package worker mirrors ledger record events into a spreadsheet. The
// mirror is an append-only audit trail: created and updated events each
// append a row, deleted events are logged and skipped. Retries are
// handled by the AMQP consumer requeueing failed deliveries.
package worker

import (
	"context"
	"fmt"
	"log/slog"

	"aruvadai/internal/amqp"
	"aruvadai/internal/sheets"
)

type MirrorWorker struct {
	appender sheets.RecordAppender
}

func NewMirrorWorker(appender sheets.RecordAppender) *MirrorWorker {
	return &MirrorWorker{appender: appender}
}

// HandleRecordEvent processes a single record event from AMQP.
func (w *MirrorWorker) HandleRecordEvent(ctx context.Context, event *amqp.RecordEvent) error {
	if event.Op == amqp.OpDeleted {
		slog.InfoContext(ctx, "Skipping delete, mirror is append-only",
			"kind", event.Kind,
			"entry_id", event.EntryID())
		return nil
	}

	var (
		ref string
		err error
	)
	switch {
	case event.Kind == amqp.KindHarvest && event.Harvest != nil:
		ref, err = w.appender.AppendHarvest(ctx, *event.Harvest)
	case event.Kind == amqp.KindExpense && event.Expense != nil:
		ref, err = w.appender.AppendExpense(ctx, *event.Expense)
	default:
		return fmt.Errorf("event %s/%s carries no entry", event.Kind, event.Op)
	}
	if err != nil {
		return fmt.Errorf("mirror %s %s: %w", event.Kind, event.Op, err)
	}

	slog.InfoContext(ctx, "Mirrored record event",
		"kind", event.Kind,
		"op", event.Op,
		"entry_id", event.EntryID(),
		"sheets_ref", ref)
	return nil
}
