package sheets

import (
	"context"

	"aruvadai/internal/core"
)

// RecordAppender is the outbound port for the spreadsheet mirror. The
// mirror is append-only: updates append a fresh row and deletes are not
// propagated.
type RecordAppender interface {
	AppendHarvest(ctx context.Context, e core.HarvestEntry) (rowRef string, err error)
	AppendExpense(ctx context.Context, e core.ExpenseEntry) (rowRef string, err error)
}
