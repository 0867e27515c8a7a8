package core

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrNoProduct        = errors.New("no product selected")
	ErrInvalidQuantity  = errors.New("invalid quantity")
	ErrInvalidRate      = errors.New("invalid rate")
	ErrInvalidDate      = errors.New("invalid date")
	ErrNoExpenseAmounts = errors.New("at least one expense amount is required")
	ErrUnknownEntry     = errors.New("unknown entry")
)

const (
	dateLayout  = "2006-01-02"
	monthLayout = "2006-01"
)

// EntryID identifies a ledger entry. New entries get UUIDs; records written
// by earlier versions carried numeric timestamp ids, so the JSON form
// accepts both.
type EntryID string

func NewEntryID() EntryID {
	return EntryID(uuid.NewString())
}

func (id *EntryID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*id = EntryID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = EntryID(n.String())
	return nil
}

// Date is a calendar date. The wire form is ISO yyyy-mm-dd.
type Date struct {
	time.Time
}

func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{t}, nil
}

// Today returns the current calendar date, the default for new entries.
func Today() Date {
	y, m, d := time.Now().Date()
	return Date{time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

func (d Date) String() string {
	return d.Format(dateLayout)
}

func (d Date) Month() Month {
	return Month(d.Format(monthLayout))
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Month is a calendar month in yyyy-mm form. The zero value means
// "no month filter".
type Month string

func ParseMonth(s string) (Month, error) {
	s = strings.TrimSpace(s)
	if _, err := time.Parse(monthLayout, s); err != nil {
		return "", ErrInvalidDate
	}
	return Month(s), nil
}

func CurrentMonth() Month {
	return Month(time.Now().Format(monthLayout))
}

// Contains reports whether the date falls within the month. Dates are ISO
// formatted, so a year-month prefix match is exact. The zero Month
// contains every date.
func (m Month) Contains(d Date) bool {
	return m == "" || strings.HasPrefix(d.String(), string(m))
}

// Label returns a display name such as "August 2025".
func (m Month) Label() string {
	t, err := time.Parse(monthLayout, string(m))
	if err != nil {
		return string(m)
	}
	return t.Format("January 2006")
}

// HarvestEntry records one sale of a crop quantity at a price, minus the
// buyer's commission. GrossTotal and NetTotal are always derived from the
// other fields; NewHarvestEntry and WithAmounts are the only writers.
type HarvestEntry struct {
	ID         EntryID         `json:"id"`
	ProductID  int             `json:"productId"`
	QuantityKg decimal.Decimal `json:"kg"`
	RatePerKg  decimal.Decimal `json:"rate"`
	Commission decimal.Decimal `json:"commission"`
	GrossTotal decimal.Decimal `json:"grossTotal"`
	NetTotal   decimal.Decimal `json:"total"`
	Date       Date            `json:"date"`
}

func NewHarvestEntry(productID int, quantityKg, ratePerKg, commission decimal.Decimal, date Date) HarvestEntry {
	e := HarvestEntry{ID: NewEntryID(), ProductID: productID}
	return e.WithAmounts(quantityKg, ratePerKg, commission, date)
}

// WithAmounts returns a copy with the mutable fields replaced and the
// totals recomputed. ID and ProductID are preserved.
func (e HarvestEntry) WithAmounts(quantityKg, ratePerKg, commission decimal.Decimal, date Date) HarvestEntry {
	e.QuantityKg = quantityKg
	e.RatePerKg = ratePerKg
	e.Commission = commission
	e.GrossTotal = quantityKg.Mul(ratePerKg)
	e.NetTotal = e.GrossTotal.Sub(commission)
	e.Date = date
	return e
}

// ExpenseEntry records one production cost event for a crop. Total is
// always the sum of the three components.
type ExpenseEntry struct {
	ID         EntryID         `json:"id"`
	ProductID  int             `json:"productId"`
	Fertilizer decimal.Decimal `json:"fertilizer"`
	Labor      decimal.Decimal `json:"labor"`
	Other      decimal.Decimal `json:"other"`
	Total      decimal.Decimal `json:"total"`
	Date       Date            `json:"date"`
}

func NewExpenseEntry(productID int, fertilizer, labor, other decimal.Decimal, date Date) ExpenseEntry {
	return ExpenseEntry{
		ID:         NewEntryID(),
		ProductID:  productID,
		Fertilizer: fertilizer,
		Labor:      labor,
		Other:      other,
		Total:      fertilizer.Add(labor).Add(other),
		Date:       date,
	}
}
