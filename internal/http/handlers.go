package http

import (
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"sort"
	"strconv"

	"aruvadai/internal/core"
	"aruvadai/internal/records"
)

type productView struct {
	ID       int
	Name     string
	ImageURL string
	Fallback string
}

type harvestFormView struct {
	Editing  bool
	EditID   string
	Form     records.HarvestForm
	Products []productView
	Today    string
}

type indexData struct {
	Products    []productView
	HarvestForm harvestFormView
	Today       string
}

type harvestRow struct {
	ID          string
	Date        string
	ProductName string
	QuantityKg  string
	RatePerKg   string
	Commission  string
	GrossTotal  string
	NetTotal    string
}

type expenseRow struct {
	ID          string
	Date        string
	ProductName string
	Fertilizer  string
	Labor       string
	Other       string
	Total       string
}

type historyData struct {
	Harvests []harvestRow
	Expenses []expenseRow
}

type reportRow struct {
	ProductName  string
	QuantityKg   string
	GrossRevenue string
	Commission   string
	Expenses     string
	ProfitLoss   string
	Loss         bool
}

type reportData struct {
	HasEntries bool
	Rows       []reportRow
	Totals     reportRow
}

type monthOption struct {
	Value    string
	Label    string
	Selected bool
}

type statementData struct {
	Month   string
	Label   string
	Months  []monthOption
	Text    string
	HasData bool
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	s.render(w, "index.html", s.indexData())
}

func (s *Server) indexData() indexData {
	return indexData{
		Products:    s.productViews(),
		HarvestForm: s.harvestFormView(),
		Today:       core.Today().String(),
	}
}

func (s *Server) productViews() []productView {
	products := make([]productView, 0, len(s.catalog))
	for _, p := range s.catalog {
		products = append(products, productView{
			ID:       p.ID,
			Name:     p.Name,
			ImageURL: p.ImageURL,
			Fallback: p.FallbackImageURL(),
		})
	}
	return products
}

func (s *Server) harvestFormView() harvestFormView {
	v := harvestFormView{
		Form:     s.editor.HarvestForm(),
		Products: s.productViews(),
		Today:    core.Today().String(),
	}
	if m, ok := s.editor.Mode().(records.EditingExisting); ok {
		v.Editing = true
		v.EditID = string(m.ID)
	}
	return v
}

// handleHarvestForm returns the harvest form partial. ?edit=<id> prefills
// it from an existing entry, ?cancel=1 discards an in-progress edit.
func (s *Server) handleHarvestForm(w http.ResponseWriter, r *http.Request) {
	if id := r.URL.Query().Get("edit"); id != "" {
		if err := s.editor.BeginEdit(core.EntryID(id)); err != nil {
			s.renderError(w, http.StatusNotFound, "Entry not found")
			return
		}
	}
	if r.URL.Query().Get("cancel") != "" {
		s.editor.CancelEdit()
	}
	s.render(w, "harvest_form.html", s.harvestFormView())
}

func (s *Server) handleCreateHarvest(w http.ResponseWriter, r *http.Request) {
	s.submitHarvest(w, r, false)
}

func (s *Server) handleUpdateHarvest(w http.ResponseWriter, r *http.Request) {
	s.submitHarvest(w, r, true)
}

func (s *Server) submitHarvest(w http.ResponseWriter, r *http.Request, update bool) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		s.renderError(w, http.StatusBadRequest, "Invalid form data")
		return
	}

	if update {
		// A stateless client may post an update without having opened
		// the edit form first.
		if _, editing := s.editor.Mode().(records.EditingExisting); !editing {
			if err := s.editor.BeginEdit(core.EntryID(r.FormValue("id"))); err != nil {
				s.renderError(w, http.StatusNotFound, "Entry not found")
				return
			}
		}
	}

	productID, _ := strconv.Atoi(r.FormValue("product_id"))
	form := records.HarvestForm{
		ProductID:  productID,
		QuantityKg: r.FormValue("quantity_kg"),
		RatePerKg:  r.FormValue("rate_per_kg"),
		Commission: r.FormValue("commission"),
		Date:       r.FormValue("date"),
	}

	entry, err := s.editor.SubmitHarvest(r.Context(), form)
	if err != nil {
		slog.WarnContext(r.Context(), "Harvest submit rejected", "error", err)
		s.renderError(w, http.StatusUnprocessableEntity, submitErrorMessage(err))
		return
	}

	s.statementCache.Purge()
	verb := "recorded"
	if update {
		verb = "updated"
	}
	s.renderSuccess(w, fmt.Sprintf("Harvest %s: %s kg at ₹%s/kg",
		verb, core.FormatAmount(entry.QuantityKg), core.FormatAmount(entry.RatePerKg)))
}

func (s *Server) handleDeleteHarvest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		s.renderError(w, http.StatusBadRequest, "Invalid form data")
		return
	}

	deleted, err := s.editor.DeleteHarvest(r.Context(),
		core.EntryID(r.FormValue("id")), r.FormValue("confirmed") == "true")
	if err != nil {
		s.renderError(w, http.StatusInternalServerError, "Delete failed")
		return
	}
	if !deleted {
		s.renderError(w, http.StatusUnprocessableEntity, "Delete not confirmed")
		return
	}
	s.statementCache.Purge()
	s.renderSuccess(w, "Harvest entry deleted")
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		s.renderError(w, http.StatusBadRequest, "Invalid form data")
		return
	}

	productID, _ := strconv.Atoi(r.FormValue("product_id"))
	form := records.ExpenseForm{
		ProductID:  productID,
		Fertilizer: r.FormValue("fertilizer"),
		Labor:      r.FormValue("labor"),
		Other:      r.FormValue("other"),
		Date:       r.FormValue("date"),
	}

	entry, err := s.editor.SubmitExpense(r.Context(), form)
	if err != nil {
		slog.WarnContext(r.Context(), "Expense submit rejected", "error", err)
		s.renderError(w, http.StatusUnprocessableEntity, submitErrorMessage(err))
		return
	}

	s.statementCache.Purge()
	s.renderSuccess(w, fmt.Sprintf("Expense recorded: ₹%s", core.FormatAmount(entry.Total)))
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		s.renderError(w, http.StatusBadRequest, "Invalid form data")
		return
	}

	deleted, err := s.editor.DeleteExpense(r.Context(),
		core.EntryID(r.FormValue("id")), r.FormValue("confirmed") == "true")
	if err != nil {
		s.renderError(w, http.StatusInternalServerError, "Delete failed")
		return
	}
	if !deleted {
		s.renderError(w, http.StatusUnprocessableEntity, "Delete not confirmed")
		return
	}
	s.statementCache.Purge()
	s.renderSuccess(w, "Expense entry deleted")
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	data := historyData{}
	for _, h := range s.ledger.Harvests() {
		p, _ := s.catalog.ByID(h.ProductID)
		data.Harvests = append(data.Harvests, harvestRow{
			ID:          string(h.ID),
			Date:        h.Date.String(),
			ProductName: p.Name,
			QuantityKg:  core.FormatAmount(h.QuantityKg),
			RatePerKg:   core.FormatAmount(h.RatePerKg),
			Commission:  core.FormatAmount(h.Commission),
			GrossTotal:  core.FormatAmount(h.GrossTotal),
			NetTotal:    core.FormatAmount(h.NetTotal),
		})
	}
	for _, e := range s.ledger.Expenses() {
		p, _ := s.catalog.ByID(e.ProductID)
		data.Expenses = append(data.Expenses, expenseRow{
			ID:          string(e.ID),
			Date:        e.Date.String(),
			ProductName: p.Name,
			Fertilizer:  core.FormatAmount(e.Fertilizer),
			Labor:       core.FormatAmount(e.Labor),
			Other:       core.FormatAmount(e.Other),
			Total:       core.FormatAmount(e.Total),
		})
	}
	s.render(w, "history.html", data)
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	report := core.BuildReport(s.ledger.Harvests(), s.ledger.Expenses(), s.catalog, "")
	data := reportData{HasEntries: len(report.Products) > 0}
	for _, p := range report.Products {
		data.Rows = append(data.Rows, summaryRow(p.ProductName, p.Summary))
	}
	data.Totals = summaryRow("Total", report.Totals)
	s.render(w, "report.html", data)
}

func summaryRow(name string, sum core.Summary) reportRow {
	return reportRow{
		ProductName:  name,
		QuantityKg:   core.FormatAmount(sum.QuantityKg),
		GrossRevenue: core.FormatAmount(sum.GrossRevenue),
		Commission:   core.FormatAmount(sum.Commission),
		Expenses:     core.FormatAmount(sum.Expenses),
		ProfitLoss:   core.FormatAmount(sum.ProfitLoss),
		Loss:         sum.ProfitLoss.IsNegative(),
	}
}

func (s *Server) handleStatement(w http.ResponseWriter, r *http.Request) {
	month, err := monthParam(r)
	if err != nil {
		s.renderError(w, http.StatusBadRequest, "Invalid month, expected yyyy-mm")
		return
	}

	text, hasData := s.statementText(month)
	data := statementData{
		Month:   string(month),
		Text:    text,
		HasData: hasData,
		Months:  s.monthOptions(month),
	}
	if month != "" {
		data.Label = month.Label()
	}
	s.render(w, "statement.html", data)
}

// monthOptions lists every month that has at least one entry, newest
// first.
func (s *Server) monthOptions(selected core.Month) []monthOption {
	seen := map[core.Month]bool{}
	for _, h := range s.ledger.Harvests() {
		seen[h.Date.Month()] = true
	}
	for _, e := range s.ledger.Expenses() {
		seen[e.Date.Month()] = true
	}
	months := make([]core.Month, 0, len(seen))
	for m := range seen {
		months = append(months, m)
	}
	sort.Slice(months, func(i, j int) bool { return months[i] > months[j] })

	opts := make([]monthOption, 0, len(months))
	for _, m := range months {
		opts = append(opts, monthOption{
			Value:    string(m),
			Label:    m.Label(),
			Selected: m == selected,
		})
	}
	return opts
}

func (s *Server) handleReportText(w http.ResponseWriter, r *http.Request) {
	text, _ := s.statementText("")
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(text))
}

func (s *Server) handleStatementText(w http.ResponseWriter, r *http.Request) {
	month, err := monthParam(r)
	if err != nil {
		http.Error(w, "Invalid month, expected yyyy-mm", http.StatusBadRequest)
		return
	}
	text, _ := s.statementText(month)
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(text))
}

func monthParam(r *http.Request) (core.Month, error) {
	raw := r.URL.Query().Get("month")
	if raw == "" {
		return "", nil
	}
	return core.ParseMonth(raw)
}

// statementText returns the rendered statement for the month ("" = whole
// history), serving from the cache when the records have not changed.
func (s *Server) statementText(month core.Month) (string, bool) {
	key := string(month)
	if text, ok := s.statementCache.Get(key); ok {
		return text, true
	}
	report := core.BuildReport(s.ledger.Harvests(), s.ledger.Expenses(), s.catalog, month)
	text := core.RenderStatement(report)
	s.statementCache.Set(key, text)
	return text, len(report.Products) > 0
}

func submitErrorMessage(err error) string {
	switch err {
	case core.ErrNoProduct:
		return "Select a product first"
	case core.ErrInvalidQuantity:
		return "Enter a valid quantity in kg"
	case core.ErrInvalidRate:
		return "Enter a valid rate per kg"
	case core.ErrInvalidDate:
		return "Enter a valid date (yyyy-mm-dd)"
	case core.ErrNoExpenseAmounts:
		return "Fill in at least one expense amount"
	case core.ErrUnknownEntry:
		return "Entry not found"
	case core.ErrInvalidAmount:
		return "Enter a valid amount"
	default:
		return "Could not save the entry"
	}
}

func (s *Server) render(w http.ResponseWriter, name string, data any) {
	if s.templates == nil {
		http.Error(w, "Templates unavailable", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, name, data); err != nil {
		slog.Error("Template execution failed", "template", name, "error", err)
	}
}

func (s *Server) renderSuccess(w http.ResponseWriter, message string) {
	w.Header().Set("HX-Trigger", "records:changed")
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, `<div class="alert alert-success">%s</div>`, template.HTMLEscapeString(message))
}

func (s *Server) renderError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	fmt.Fprintf(w, `<div class="alert alert-error">%s</div>`, template.HTMLEscapeString(message))
}
