package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

const statementWidth = 50

// RenderStatement renders a report as a deterministic plain-text block for
// on-screen display and clipboard export. The same layout serves the
// whole-history report and the month-scoped statement; only the header
// depends on the month filter. Amounts are rounded to two places here and
// nowhere earlier.
func RenderStatement(r Report) string {
	rule := strings.Repeat("=", statementWidth)
	thin := strings.Repeat("-", statementWidth)

	var b strings.Builder
	if r.Month == "" {
		b.WriteString("🌾 AGRICULTURE HARVEST REPORT 🌾\n")
	} else {
		b.WriteString("🌾 MONTHLY PROFIT/LOSS STATEMENT\n")
		b.WriteString("📅 Period: " + r.Month.Label() + "\n")
	}
	b.WriteString(rule + "\n\n")

	netLabel, netAbs := profitLabel(r.Totals.ProfitLoss)
	b.WriteString("💰 SUMMARY\n")
	b.WriteString(thin + "\n")
	b.WriteString("Total Revenue:    ₹" + FormatAmount(r.Totals.GrossRevenue) + "\n")
	b.WriteString("Total Commission: ₹" + FormatAmount(r.Totals.Commission) + "\n")
	b.WriteString("Total Expenses:   ₹" + FormatAmount(r.Totals.Expenses) + "\n")
	b.WriteString("Net " + netLabel + ":       ₹" + FormatAmount(netAbs) + "\n\n")

	b.WriteString("📦 PRODUCT-WISE BREAKDOWN\n")
	b.WriteString(thin + "\n")
	for _, p := range r.Products {
		label, abs := profitLabel(p.ProfitLoss)
		b.WriteString("\n" + p.ProductName + ":\n")
		b.WriteString("  Harvested:  " + FormatAmount(p.QuantityKg) + " kg\n")
		b.WriteString("  Revenue:    ₹" + FormatAmount(p.GrossRevenue) + "\n")
		b.WriteString("  Commission: ₹" + FormatAmount(p.Commission) + "\n")
		b.WriteString("  Expenses:   ₹" + FormatAmount(p.Expenses) + "\n")
		b.WriteString("  " + label + ":     " + "₹" + FormatAmount(abs) + "\n")
	}

	b.WriteString("\n" + rule + "\n")
	b.WriteString("💰 TOTAL " + strings.ToUpper(netLabel) + ": ₹" + FormatAmount(netAbs) + "\n")
	b.WriteString(rule)
	return b.String()
}

// profitLabel chooses the display label by sign: zero counts as profit,
// and losses are shown as absolute values.
func profitLabel(d decimal.Decimal) (string, decimal.Decimal) {
	if d.IsNegative() {
		return "Loss", d.Abs()
	}
	return "Profit", d
}
