package records

import (
	"context"
	"sync"

	"aruvadai/internal/core"
)

// Ledger is what the editor mutates. *Store satisfies it directly; the
// ledger service wraps it to publish change events as well.
type Ledger interface {
	AddHarvest(ctx context.Context, e core.HarvestEntry) error
	UpdateHarvest(ctx context.Context, e core.HarvestEntry) error
	DeleteHarvest(ctx context.Context, id core.EntryID) (bool, error)
	AddExpense(ctx context.Context, e core.ExpenseEntry) error
	DeleteExpense(ctx context.Context, id core.EntryID) (bool, error)
	FindHarvest(id core.EntryID) (core.HarvestEntry, bool)
}

// Mode is the editor's tagged state: creating a fresh harvest entry, or
// replacing the fields of one existing entry.
type Mode interface{ isMode() }

type Creating struct{}

type EditingExisting struct {
	ID core.EntryID
}

func (Creating) isMode()        {}
func (EditingExisting) isMode() {}

// View names the active screen of the form UI.
type View string

const (
	ViewHarvest View = "harvest"
	ViewExpense View = "expense"
	ViewHistory View = "history"
	ViewReport  View = "report"
	ViewMonthly View = "monthly"
)

// HarvestForm carries raw form input for a harvest entry. Fields stay
// strings until validation so a rejected submit can be re-offered as
// typed.
type HarvestForm struct {
	ProductID  int
	QuantityKg string
	RatePerKg  string
	Commission string
	Date       string
}

// ExpenseForm carries raw form input for an expense entry.
type ExpenseForm struct {
	ProductID  int
	Fertilizer string
	Labor      string
	Other      string
	Date       string
}

// Editor is the application state behind the entry forms: the active
// view, the create-or-edit mode, and the prefilled harvest form while an
// edit is in progress. Validation failures never reach the ledger.
type Editor struct {
	ledger  Ledger
	catalog core.Catalog

	mu          sync.Mutex
	mode        Mode
	view        View
	harvestForm HarvestForm
}

func NewEditor(ledger Ledger, catalog core.Catalog) *Editor {
	return &Editor{
		ledger:  ledger,
		catalog: catalog,
		mode:    Creating{},
		view:    ViewHarvest,
	}
}

func (ed *Editor) Mode() Mode {
	ed.mu.Lock()
	defer ed.mu.Unlock()
	return ed.mode
}

func (ed *Editor) View() View {
	ed.mu.Lock()
	defer ed.mu.Unlock()
	return ed.view
}

func (ed *Editor) SetView(v View) {
	ed.mu.Lock()
	defer ed.mu.Unlock()
	ed.view = v
}

// HarvestForm returns the current prefill: the target entry's values
// while editing, defaults otherwise.
func (ed *Editor) HarvestForm() HarvestForm {
	ed.mu.Lock()
	defer ed.mu.Unlock()
	return ed.harvestForm
}

// BeginEdit prefills the harvest form from the target entry and switches
// to the harvest view.
func (ed *Editor) BeginEdit(id core.EntryID) error {
	e, ok := ed.ledger.FindHarvest(id)
	if !ok {
		return core.ErrUnknownEntry
	}

	ed.mu.Lock()
	defer ed.mu.Unlock()
	commission := ""
	if !e.Commission.IsZero() {
		commission = e.Commission.String()
	}
	ed.harvestForm = HarvestForm{
		ProductID:  e.ProductID,
		QuantityKg: e.QuantityKg.String(),
		RatePerKg:  e.RatePerKg.String(),
		Commission: commission,
		Date:       e.Date.String(),
	}
	ed.mode = EditingExisting{ID: id}
	ed.view = ViewHarvest
	return nil
}

// CancelEdit discards in-progress input and returns to create mode
// without touching the store.
func (ed *Editor) CancelEdit() {
	ed.mu.Lock()
	defer ed.mu.Unlock()
	ed.mode = Creating{}
	ed.harvestForm = HarvestForm{}
}

// SubmitHarvest validates the form and either creates a new entry or,
// when an edit is in progress, replaces the target entry's fields while
// preserving its ID and ProductID. On success the editor returns to
// create mode.
func (ed *Editor) SubmitHarvest(ctx context.Context, form HarvestForm) (core.HarvestEntry, error) {
	quantity, err := core.ParseAmount(form.QuantityKg)
	if err != nil {
		return core.HarvestEntry{}, core.ErrInvalidQuantity
	}
	rate, err := core.ParseAmount(form.RatePerKg)
	if err != nil {
		return core.HarvestEntry{}, core.ErrInvalidRate
	}
	commission, err := core.ParseOptionalAmount(form.Commission)
	if err != nil {
		return core.HarvestEntry{}, err
	}
	date, err := formDate(form.Date)
	if err != nil {
		return core.HarvestEntry{}, err
	}

	ed.mu.Lock()
	defer ed.mu.Unlock()

	if m, editing := ed.mode.(EditingExisting); editing {
		existing, ok := ed.ledger.FindHarvest(m.ID)
		if !ok {
			return core.HarvestEntry{}, core.ErrUnknownEntry
		}
		updated := existing.WithAmounts(quantity, rate, commission, date)
		if err := ed.ledger.UpdateHarvest(ctx, updated); err != nil {
			return core.HarvestEntry{}, err
		}
		ed.mode = Creating{}
		ed.harvestForm = HarvestForm{}
		return updated, nil
	}

	if _, ok := ed.catalog.ByID(form.ProductID); !ok {
		return core.HarvestEntry{}, core.ErrNoProduct
	}
	entry := core.NewHarvestEntry(form.ProductID, quantity, rate, commission, date)
	if err := ed.ledger.AddHarvest(ctx, entry); err != nil {
		return core.HarvestEntry{}, err
	}
	ed.harvestForm = HarvestForm{}
	return entry, nil
}

// SubmitExpense validates the form and creates an expense entry. At
// least one of the three amounts must be filled in; blanks become zero.
func (ed *Editor) SubmitExpense(ctx context.Context, form ExpenseForm) (core.ExpenseEntry, error) {
	if _, ok := ed.catalog.ByID(form.ProductID); !ok {
		return core.ExpenseEntry{}, core.ErrNoProduct
	}
	if isBlank(form.Fertilizer) && isBlank(form.Labor) && isBlank(form.Other) {
		return core.ExpenseEntry{}, core.ErrNoExpenseAmounts
	}
	fertilizer, err := core.ParseOptionalAmount(form.Fertilizer)
	if err != nil {
		return core.ExpenseEntry{}, err
	}
	labor, err := core.ParseOptionalAmount(form.Labor)
	if err != nil {
		return core.ExpenseEntry{}, err
	}
	other, err := core.ParseOptionalAmount(form.Other)
	if err != nil {
		return core.ExpenseEntry{}, err
	}
	date, err := formDate(form.Date)
	if err != nil {
		return core.ExpenseEntry{}, err
	}

	entry := core.NewExpenseEntry(form.ProductID, fertilizer, labor, other, date)
	if err := ed.ledger.AddExpense(ctx, entry); err != nil {
		return core.ExpenseEntry{}, err
	}
	return entry, nil
}

// DeleteHarvest removes an entry after explicit confirmation. Without
// confirmation nothing changes. Deleting the entry currently being
// edited also cancels the edit.
func (ed *Editor) DeleteHarvest(ctx context.Context, id core.EntryID, confirmed bool) (bool, error) {
	if !confirmed {
		return false, nil
	}
	deleted, err := ed.ledger.DeleteHarvest(ctx, id)
	if err != nil {
		return false, err
	}
	if deleted {
		ed.mu.Lock()
		if m, editing := ed.mode.(EditingExisting); editing && m.ID == id {
			ed.mode = Creating{}
			ed.harvestForm = HarvestForm{}
		}
		ed.mu.Unlock()
	}
	return deleted, nil
}

// DeleteExpense removes an entry after explicit confirmation.
func (ed *Editor) DeleteExpense(ctx context.Context, id core.EntryID, confirmed bool) (bool, error) {
	if !confirmed {
		return false, nil
	}
	return ed.ledger.DeleteExpense(ctx, id)
}

func formDate(s string) (core.Date, error) {
	if isBlank(s) {
		return core.Today(), nil
	}
	return core.ParseDate(s)
}

func isBlank(s string) bool {
	for _, r := range s {
		if r != ' ' && r != '\t' {
			return false
		}
	}
	return true
}
