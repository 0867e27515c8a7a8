package core

import "github.com/shopspring/decimal"

// Summary holds aggregate figures for one product or for the whole
// dataset. ProfitLoss = GrossRevenue − Commission − Expenses; a negative
// value is a loss.
type Summary struct {
	QuantityKg   decimal.Decimal
	GrossRevenue decimal.Decimal
	Commission   decimal.Decimal
	Expenses     decimal.Decimal
	ProfitLoss   decimal.Decimal
}

// ProductSummary is a Summary attributed to one catalog product.
// ProductName is empty for dangling product references.
type ProductSummary struct {
	ProductID   int
	ProductName string
	Summary
}

// Report is the aggregated profit/loss view for the whole history or,
// when Month is set, for one calendar month.
type Report struct {
	Month    Month
	Totals   Summary
	Products []ProductSummary
}

// FilterHarvestsByMonth keeps entries dated within the month. Filtering is
// idempotent; the zero Month keeps everything.
func FilterHarvestsByMonth(entries []HarvestEntry, m Month) []HarvestEntry {
	if m == "" {
		return entries
	}
	out := make([]HarvestEntry, 0, len(entries))
	for _, e := range entries {
		if m.Contains(e.Date) {
			out = append(out, e)
		}
	}
	return out
}

// FilterExpensesByMonth keeps entries dated within the month.
func FilterExpensesByMonth(entries []ExpenseEntry, m Month) []ExpenseEntry {
	if m == "" {
		return entries
	}
	out := make([]ExpenseEntry, 0, len(entries))
	for _, e := range entries {
		if m.Contains(e.Date) {
			out = append(out, e)
		}
	}
	return out
}

// BuildReport aggregates harvests and expenses into per-product summaries
// plus a grand total, optionally scoped to one month. Sums are exact;
// nothing is rounded here. Products without any entry are omitted from the
// breakdown but still contribute zero to the totals, and entries whose
// product is missing from the catalog are counted in the grand total
// without a breakdown row of a known name.
func BuildReport(harvests []HarvestEntry, expenses []ExpenseEntry, catalog Catalog, month Month) Report {
	harvests = FilterHarvestsByMonth(harvests, month)
	expenses = FilterExpensesByMonth(expenses, month)

	byProduct := map[int]*ProductSummary{}
	order := make([]int, 0, len(catalog))
	lookup := func(id int) *ProductSummary {
		if s, ok := byProduct[id]; ok {
			return s
		}
		name, _ := catalog.ByID(id)
		s := &ProductSummary{ProductID: id, ProductName: name.Name}
		byProduct[id] = s
		order = append(order, id)
		return s
	}

	r := Report{Month: month}
	for _, h := range harvests {
		s := lookup(h.ProductID)
		s.QuantityKg = s.QuantityKg.Add(h.QuantityKg)
		s.GrossRevenue = s.GrossRevenue.Add(h.GrossTotal)
		s.Commission = s.Commission.Add(h.Commission)
		r.Totals.QuantityKg = r.Totals.QuantityKg.Add(h.QuantityKg)
		r.Totals.GrossRevenue = r.Totals.GrossRevenue.Add(h.GrossTotal)
		r.Totals.Commission = r.Totals.Commission.Add(h.Commission)
	}
	for _, e := range expenses {
		s := lookup(e.ProductID)
		s.Expenses = s.Expenses.Add(e.Total)
		r.Totals.Expenses = r.Totals.Expenses.Add(e.Total)
	}

	// Catalog order first, then dangling product ids in first-seen order.
	r.Products = make([]ProductSummary, 0, len(order))
	for _, p := range catalog {
		if s, ok := byProduct[p.ID]; ok {
			s.ProfitLoss = s.GrossRevenue.Sub(s.Commission).Sub(s.Expenses)
			r.Products = append(r.Products, *s)
			delete(byProduct, p.ID)
		}
	}
	for _, id := range order {
		if s, ok := byProduct[id]; ok {
			s.ProfitLoss = s.GrossRevenue.Sub(s.Commission).Sub(s.Expenses)
			r.Products = append(r.Products, *s)
		}
	}

	r.Totals.ProfitLoss = r.Totals.GrossRevenue.Sub(r.Totals.Commission).Sub(r.Totals.Expenses)
	return r
}
