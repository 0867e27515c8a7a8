package core

import (
	"testing"

	"github.com/shopspring/decimal"
)

func testCatalog() Catalog {
	return Catalog{
		{ID: 1, Name: "Ivy gourd"},
		{ID: 2, Name: "Snake gourd"},
		{ID: 3, Name: "Groundnut"},
	}
}

func mustDate(t *testing.T, s string) Date {
	t.Helper()
	d, err := ParseDate(s)
	if err != nil {
		t.Fatalf("parse date %q: %v", s, err)
	}
	return d
}

func TestBuildReportPerProduct(t *testing.T) {
	date := mustDate(t, "2025-08-10")
	harvests := []HarvestEntry{
		NewHarvestEntry(1, amt(t, "10"), amt(t, "50"), amt(t, "20"), date),
	}
	expenses := []ExpenseEntry{
		NewExpenseEntry(1, amt(t, "100"), amt(t, "50"), amt(t, "0"), date),
	}

	r := BuildReport(harvests, expenses, testCatalog(), "")

	if len(r.Products) != 1 {
		t.Fatalf("expected one product row, got %d", len(r.Products))
	}
	p := r.Products[0]
	if p.ProductName != "Ivy gourd" {
		t.Fatalf("unexpected product %q", p.ProductName)
	}
	if p.GrossRevenue.String() != "500" || p.Commission.String() != "20" || p.Expenses.String() != "150" {
		t.Fatalf("unexpected figures: revenue=%s commission=%s expenses=%s", p.GrossRevenue, p.Commission, p.Expenses)
	}
	if p.ProfitLoss.String() != "330" {
		t.Fatalf("profit expected 330, got %s", p.ProfitLoss)
	}
}

func TestBuildReportGrandTotalMatchesProductSum(t *testing.T) {
	d1 := mustDate(t, "2025-08-10")
	d2 := mustDate(t, "2025-09-02")
	harvests := []HarvestEntry{
		NewHarvestEntry(1, amt(t, "10"), amt(t, "50"), amt(t, "20"), d1),
		NewHarvestEntry(2, amt(t, "7.5"), amt(t, "32"), amt(t, "0"), d2),
	}
	expenses := []ExpenseEntry{
		NewExpenseEntry(1, amt(t, "100"), amt(t, "50"), amt(t, "0"), d1),
		NewExpenseEntry(3, amt(t, "0"), amt(t, "0"), amt(t, "900"), d2),
	}

	r := BuildReport(harvests, expenses, testCatalog(), "")

	sum := decimal.Zero
	for _, p := range r.Products {
		sum = sum.Add(p.ProfitLoss)
	}
	if !sum.Equal(r.Totals.ProfitLoss) {
		t.Fatalf("grand total %s != per-product sum %s", r.Totals.ProfitLoss, sum)
	}
}

func TestBuildReportOmitsIdleProducts(t *testing.T) {
	date := mustDate(t, "2025-08-10")
	harvests := []HarvestEntry{
		NewHarvestEntry(2, amt(t, "1"), amt(t, "10"), amt(t, "0"), date),
	}

	r := BuildReport(harvests, nil, testCatalog(), "")

	if len(r.Products) != 1 || r.Products[0].ProductID != 2 {
		t.Fatalf("only product 2 should appear, got %+v", r.Products)
	}
}

func TestBuildReportToleratesDanglingProduct(t *testing.T) {
	date := mustDate(t, "2025-08-10")
	harvests := []HarvestEntry{
		NewHarvestEntry(42, amt(t, "2"), amt(t, "100"), amt(t, "0"), date),
	}

	r := BuildReport(harvests, nil, testCatalog(), "")

	if r.Totals.GrossRevenue.String() != "200" {
		t.Fatalf("dangling entries must still count: %s", r.Totals.GrossRevenue)
	}
	if len(r.Products) != 1 || r.Products[0].ProductName != "" {
		t.Fatalf("dangling product shows with empty name, got %+v", r.Products)
	}
}

func TestBuildReportMonthScope(t *testing.T) {
	aug := mustDate(t, "2025-08-10")
	sep := mustDate(t, "2025-09-02")
	harvests := []HarvestEntry{
		NewHarvestEntry(1, amt(t, "10"), amt(t, "50"), amt(t, "0"), aug),
		NewHarvestEntry(1, amt(t, "4"), amt(t, "50"), amt(t, "0"), sep),
	}

	r := BuildReport(harvests, nil, testCatalog(), "2025-08")

	if r.Totals.GrossRevenue.String() != "500" {
		t.Fatalf("september entry leaked into august: %s", r.Totals.GrossRevenue)
	}
}

func TestFilterByMonthIdempotent(t *testing.T) {
	entries := []HarvestEntry{
		NewHarvestEntry(1, amt(t, "1"), amt(t, "1"), amt(t, "0"), mustDate(t, "2025-08-10")),
		NewHarvestEntry(1, amt(t, "1"), amt(t, "1"), amt(t, "0"), mustDate(t, "2025-09-10")),
	}
	once := FilterHarvestsByMonth(entries, "2025-08")
	twice := FilterHarvestsByMonth(once, "2025-08")
	if len(once) != 1 || len(twice) != len(once) {
		t.Fatalf("filter not idempotent: %d then %d", len(once), len(twice))
	}
	if twice[0].ID != once[0].ID {
		t.Fatalf("second filter changed the collection")
	}
}

func TestBuildReportAggregationUsesUnroundedSums(t *testing.T) {
	date := mustDate(t, "2025-08-10")
	// Three entries of 0.333 kg at 1/kg: displayed each as 0.33 but the
	// aggregate must be 0.999, not 0.99.
	var harvests []HarvestEntry
	for i := 0; i < 3; i++ {
		harvests = append(harvests, NewHarvestEntry(1, amt(t, "0.333"), amt(t, "1"), amt(t, "0"), date))
	}

	r := BuildReport(harvests, nil, testCatalog(), "")

	if r.Totals.GrossRevenue.String() != "0.999" {
		t.Fatalf("sums must stay unrounded, got %s", r.Totals.GrossRevenue)
	}
	if FormatAmount(r.Totals.GrossRevenue) != "1.00" {
		t.Fatalf("display rounding expected 1.00, got %s", FormatAmount(r.Totals.GrossRevenue))
	}
}
