package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"aruvadai/internal/core"
	ports "aruvadai/internal/sheets"
)

// Client mirrors ledger records into a Google spreadsheet. One tab per
// record kind, year-prefixed so a new tab starts each season.
type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
	harvestSheet  string
	expenseSheet  string
	catalog       core.Catalog
}

var _ ports.RecordAppender = (*Client)(nil)

// NewFromEnv creates a Sheets client using environment variables.
// Required: GOOGLE_SPREADSHEET_ID
// Auth: GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or
// GOOGLE_APPLICATION_CREDENTIALS.
// Optional tab names: SHEETS_HARVEST_SHEET_NAME (default "Harvests"),
// SHEETS_EXPENSE_SHEET_NAME (default "Expenses").
func NewFromEnv(ctx context.Context, catalog core.Catalog) (*Client, error) {
	spreadsheetID := strings.TrimSpace(os.Getenv("GOOGLE_SPREADSHEET_ID"))
	if spreadsheetID == "" {
		return nil, errors.New("missing GOOGLE_SPREADSHEET_ID")
	}

	harvestBase := strings.TrimSpace(os.Getenv("SHEETS_HARVEST_SHEET_NAME"))
	if harvestBase == "" {
		harvestBase = "Harvests"
	}
	expenseBase := strings.TrimSpace(os.Getenv("SHEETS_EXPENSE_SHEET_NAME"))
	if expenseBase == "" {
		expenseBase = "Expenses"
	}

	svc, err := newSheetsService(ctx)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}

	currentYear := time.Now().Year()
	return &Client{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		harvestSheet:  yearPrefixedName(harvestBase, currentYear),
		expenseSheet:  yearPrefixedName(expenseBase, currentYear),
		catalog:       catalog,
	}, nil
}

// newSheetsService initializes a Sheets Service using Service Account
// credentials from GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE,
// or GOOGLE_APPLICATION_CREDENTIALS.
func newSheetsService(ctx context.Context) (*gsheet.Service, error) {
	serviceAccountJSON := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"))
	serviceAccountFile := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE"))
	if serviceAccountJSON == "" && serviceAccountFile == "" {
		serviceAccountFile = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	var credentialsJSON []byte
	var err error

	switch {
	case serviceAccountJSON != "":
		credentialsJSON = []byte(serviceAccountJSON)
	case serviceAccountFile != "":
		credentialsJSON, err = os.ReadFile(serviceAccountFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}

	service, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	slog.InfoContext(ctx, "Google Sheets service created")
	return service, nil
}

// AppendHarvest appends one harvest row:
// Date, Product, Kg, Rate/kg, Commission, Gross, Net.
func (c *Client) AppendHarvest(ctx context.Context, e core.HarvestEntry) (string, error) {
	return c.appendRow(ctx, c.harvestSheet, []any{
		e.Date.String(),
		c.productName(e.ProductID),
		e.QuantityKg.String(),
		e.RatePerKg.String(),
		e.Commission.String(),
		e.GrossTotal.String(),
		e.NetTotal.String(),
	})
}

// AppendExpense appends one expense row:
// Date, Product, Fertilizer, Labor, Other, Total.
func (c *Client) AppendExpense(ctx context.Context, e core.ExpenseEntry) (string, error) {
	return c.appendRow(ctx, c.expenseSheet, []any{
		e.Date.String(),
		c.productName(e.ProductID),
		e.Fertilizer.String(),
		e.Labor.String(),
		e.Other.String(),
		e.Total.String(),
	})
}

func (c *Client) appendRow(ctx context.Context, sheetName string, row []any) (string, error) {
	if c.svc == nil {
		return "", errors.New("sheets service not initialized")
	}

	rng := fmt.Sprintf("%s!A:A", sheetName)
	vr := &gsheet.ValueRange{Values: [][]any{row}}
	resp, err := c.svc.Spreadsheets.Values.Append(c.spreadsheetID, rng, vr).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("append to sheet %s: %w", sheetName, err)
	}
	if resp.Updates != nil && resp.Updates.UpdatedRange != "" {
		return resp.Updates.UpdatedRange, nil
	}
	return sheetName, nil
}

func (c *Client) productName(id int) string {
	p, ok := c.catalog.ByID(id)
	if !ok {
		return fmt.Sprintf("product %d", id)
	}
	return p.Name
}

// yearPrefixedName returns "<year> <base>" unless base already starts
// with a 4-digit year.
func yearPrefixedName(base string, year int) string {
	base = strings.TrimSpace(base)
	if base == "" {
		return base
	}
	if len(base) >= 5 {
		if y, err := strconv.Atoi(base[0:4]); err == nil && base[4] == ' ' && y > 1900 && y < 3000 {
			return base
		}
	}
	return fmt.Sprintf("%d %s", year, base)
}
