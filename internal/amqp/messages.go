package amqp

import (
	"encoding/json"
	"fmt"
	"time"

	"aruvadai/internal/core"
)

const (
	KindHarvest = "harvest"
	KindExpense = "expense"

	OpCreated = "created"
	OpUpdated = "updated"
	OpDeleted = "deleted"
)

// RecordEvent is one ledger change, published after the local store has
// been updated. It carries the full entry so the worker can mirror it
// without reading the database.
type RecordEvent struct {
	Kind      string             `json:"kind"`
	Op        string             `json:"op"`
	Harvest   *core.HarvestEntry `json:"harvest,omitempty"`
	Expense   *core.ExpenseEntry `json:"expense,omitempty"`
	Timestamp time.Time          `json:"timestamp"`
}

func NewHarvestEvent(op string, e core.HarvestEntry) *RecordEvent {
	return &RecordEvent{Kind: KindHarvest, Op: op, Harvest: &e, Timestamp: time.Now()}
}

func NewExpenseEvent(op string, e core.ExpenseEntry) *RecordEvent {
	return &RecordEvent{Kind: KindExpense, Op: op, Expense: &e, Timestamp: time.Now()}
}

// EntryID returns the id of the entry the event is about.
func (m *RecordEvent) EntryID() core.EntryID {
	switch {
	case m.Harvest != nil:
		return m.Harvest.ID
	case m.Expense != nil:
		return m.Expense.ID
	}
	return ""
}

func (m *RecordEvent) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func RecordEventFromJSON(data []byte) (*RecordEvent, error) {
	var msg RecordEvent
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	if msg.Kind != KindHarvest && msg.Kind != KindExpense {
		return nil, fmt.Errorf("unknown event kind %q", msg.Kind)
	}
	return &msg, nil
}
