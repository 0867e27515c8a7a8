package core

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
)

func amt(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := ParseAmount(s)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return d
}

func TestParseDate(t *testing.T) {
	cases := []struct {
		in string
		ok bool
	}{
		{"2025-08-29", true},
		{" 2025-01-01 ", true},
		{"2025-13-01", false},
		{"29/08/2025", false},
		{"", false},
	}
	for _, tc := range cases {
		_, err := ParseDate(tc.in)
		if tc.ok && err != nil {
			t.Fatalf("%q expected ok, got %v", tc.in, err)
		}
		if !tc.ok && err == nil {
			t.Fatalf("%q expected error", tc.in)
		}
	}
}

func TestMonthContains(t *testing.T) {
	d, _ := ParseDate("2025-08-29")
	if !Month("2025-08").Contains(d) {
		t.Fatalf("2025-08 should contain 2025-08-29")
	}
	if Month("2025-07").Contains(d) {
		t.Fatalf("2025-07 should not contain 2025-08-29")
	}
	if !Month("").Contains(d) {
		t.Fatalf("zero month contains everything")
	}
}

func TestMonthLabel(t *testing.T) {
	if got := Month("2025-08").Label(); got != "August 2025" {
		t.Fatalf("expected August 2025, got %q", got)
	}
}

func TestNewHarvestEntryTotals(t *testing.T) {
	date, _ := ParseDate("2025-08-29")
	e := NewHarvestEntry(1, amt(t, "10"), amt(t, "50"), amt(t, "20"), date)

	if e.ID == "" {
		t.Fatalf("entry should get an id")
	}
	if e.GrossTotal.String() != "500" {
		t.Fatalf("gross expected 500, got %s", e.GrossTotal)
	}
	if e.NetTotal.String() != "480" {
		t.Fatalf("net expected 480, got %s", e.NetTotal)
	}
}

func TestWithAmountsPreservesIdentity(t *testing.T) {
	date, _ := ParseDate("2025-08-29")
	e := NewHarvestEntry(2, amt(t, "10"), amt(t, "50"), amt(t, "20"), date)

	newDate, _ := ParseDate("2025-09-01")
	u := e.WithAmounts(amt(t, "3"), amt(t, "40"), amt(t, "0"), newDate)

	if u.ID != e.ID || u.ProductID != e.ProductID {
		t.Fatalf("update must preserve id and product")
	}
	if u.GrossTotal.String() != "120" || u.NetTotal.String() != "120" {
		t.Fatalf("totals not recomputed: gross=%s net=%s", u.GrossTotal, u.NetTotal)
	}
	if u.Date.String() != "2025-09-01" {
		t.Fatalf("date not replaced: %s", u.Date)
	}
}

func TestNewExpenseEntryTotal(t *testing.T) {
	date, _ := ParseDate("2025-08-29")
	e := NewExpenseEntry(1, amt(t, "100"), amt(t, "50"), amt(t, "0"), date)
	if e.Total.String() != "150" {
		t.Fatalf("total expected 150, got %s", e.Total)
	}
}

func TestEntryIDAcceptsLegacyNumericIDs(t *testing.T) {
	// Records written by the old app used Date.now() as id.
	var e HarvestEntry
	raw := `{"id":1719325761000,"productId":1,"kg":10,"rate":50,"commission":20,"grossTotal":500,"total":480,"date":"2024-06-25"}`
	if err := json.Unmarshal([]byte(raw), &e); err != nil {
		t.Fatalf("unmarshal legacy entry: %v", err)
	}
	if e.ID != "1719325761000" {
		t.Fatalf("expected numeric id as string, got %q", e.ID)
	}
	if e.NetTotal.String() != "480" {
		t.Fatalf("net expected 480, got %s", e.NetTotal)
	}
}

func TestDateJSONRoundTrip(t *testing.T) {
	d, _ := ParseDate("2025-08-29")
	raw, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(raw) != `"2025-08-29"` {
		t.Fatalf("unexpected wire form %s", raw)
	}
	var back Date
	if err := json.Unmarshal(raw, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.String() != d.String() {
		t.Fatalf("round trip changed date: %s", back)
	}
}
