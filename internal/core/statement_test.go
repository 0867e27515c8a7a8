package core

import (
	"strings"
	"testing"
)

func TestRenderStatementWholeHistory(t *testing.T) {
	date := mustDate(t, "2025-08-10")
	harvests := []HarvestEntry{
		NewHarvestEntry(1, amt(t, "10"), amt(t, "50"), amt(t, "20"), date),
	}
	expenses := []ExpenseEntry{
		NewExpenseEntry(1, amt(t, "100"), amt(t, "50"), amt(t, "0"), date),
	}
	r := BuildReport(harvests, expenses, testCatalog(), "")

	text := RenderStatement(r)

	for _, want := range []string{
		"AGRICULTURE HARVEST REPORT",
		"Total Revenue:    ₹500.00",
		"Total Commission: ₹20.00",
		"Total Expenses:   ₹150.00",
		"Ivy gourd:",
		"Harvested:  10.00 kg",
		"TOTAL PROFIT: ₹330.00",
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("statement missing %q in:\n%s", want, text)
		}
	}
	if strings.Contains(text, "Period:") {
		t.Fatalf("whole-history report must not carry a period header")
	}
}

func TestRenderStatementMonthly(t *testing.T) {
	date := mustDate(t, "2025-08-10")
	harvests := []HarvestEntry{
		NewHarvestEntry(1, amt(t, "10"), amt(t, "50"), amt(t, "0"), date),
	}
	r := BuildReport(harvests, nil, testCatalog(), "2025-08")

	text := RenderStatement(r)

	if !strings.Contains(text, "MONTHLY PROFIT/LOSS STATEMENT") {
		t.Fatalf("missing monthly header:\n%s", text)
	}
	if !strings.Contains(text, "📅 Period: August 2025") {
		t.Fatalf("missing period label:\n%s", text)
	}
}

func TestRenderStatementLossLabel(t *testing.T) {
	date := mustDate(t, "2025-08-10")
	expenses := []ExpenseEntry{
		NewExpenseEntry(1, amt(t, "300"), amt(t, "0"), amt(t, "0"), date),
	}
	r := BuildReport(nil, expenses, testCatalog(), "")

	text := RenderStatement(r)

	if !strings.Contains(text, "Net Loss:") {
		t.Fatalf("expected loss label:\n%s", text)
	}
	if !strings.Contains(text, "TOTAL LOSS: ₹300.00") {
		t.Fatalf("loss must be shown as absolute value:\n%s", text)
	}
	if strings.Contains(text, "-₹") || strings.Contains(text, "₹-") {
		t.Fatalf("no negative amounts in rendered text:\n%s", text)
	}
}

func TestRenderStatementDeterministic(t *testing.T) {
	date := mustDate(t, "2025-08-10")
	harvests := []HarvestEntry{
		NewHarvestEntry(2, amt(t, "5"), amt(t, "12"), amt(t, "1"), date),
		NewHarvestEntry(1, amt(t, "1"), amt(t, "9"), amt(t, "0"), date),
	}
	r := BuildReport(harvests, nil, testCatalog(), "")
	if RenderStatement(r) != RenderStatement(r) {
		t.Fatalf("render must be deterministic")
	}
	// Product order follows the catalog, not entry order.
	text := RenderStatement(r)
	if strings.Index(text, "Ivy gourd:") > strings.Index(text, "Snake gourd:") {
		t.Fatalf("breakdown must follow catalog order:\n%s", text)
	}
}
