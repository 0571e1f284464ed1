package sheets

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/jolucode/fin-guard/internal/dashboard"
	"github.com/jolucode/fin-guard/internal/model"
)

const (
	transactionsSheet = "Transacciones"
	summarySheet      = "Resumen"
)

// Writer writes the sales report to a Google Sheets spreadsheet.
type Writer struct {
	service *sheets.Service
	config  Config
}

// NewWriter creates a sheets writer from the given configuration.
func NewWriter(ctx context.Context, cfg Config) (*Writer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	service, err := createSheetsService(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &Writer{service: service, config: cfg}, nil
}

// Write replaces the spreadsheet contents with the given log and the derived
// period aggregates.
func (w *Writer) Write(ctx context.Context, logs []model.NotificationLog, agg dashboard.Aggregates, periodLabel string) error {
	spreadsheetID, err := w.getOrCreateSpreadsheet(ctx)
	if err != nil {
		return fmt.Errorf("failed to get spreadsheet: %w", err)
	}

	data := []*sheets.ValueRange{
		{
			Range:  transactionsSheet + "!A1",
			Values: transactionRows(logs),
		},
		{
			Range:  summarySheet + "!A1",
			Values: summaryRows(agg, periodLabel),
		},
	}

	_, err = w.service.Spreadsheets.Values.BatchUpdate(spreadsheetID, &sheets.BatchUpdateValuesRequest{
		ValueInputOption: "USER_ENTERED",
		Data:             data,
	}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	slog.Info("sales report written",
		"spreadsheet_id", spreadsheetID,
		"transactions", len(logs))
	return nil
}

func transactionRows(logs []model.NotificationLog) [][]any {
	rows := [][]any{{"Fecha", "Fuente", "Remitente", "Monto"}}
	for i := range logs {
		when := logs[i].CreatedAt
		if ts, ok := logs[i].LocalTime(); ok {
			when = ts.Format("02/01/2006 15:04")
		}

		amount := any("")
		if logs[i].HasAmount() {
			amount = logs[i].Amount()
		}

		rows = append(rows, []any{when, logs[i].PackageName, logs[i].Sender(), amount})
	}
	return rows
}

func summaryRows(agg dashboard.Aggregates, periodLabel string) [][]any {
	d := agg.Distribution
	return [][]any{
		{"Período", periodLabel},
		{"Transacciones", agg.TotalTransactions},
		{"Total vendido", agg.TotalAmount},
		{},
		{"Fuente", "Monto", "Porcentaje"},
		{"Yape", d.YapeAmount, d.YapePercentage()},
		{"Plin", d.PlinAmount, d.PlinPercentage()},
		{"Otros", d.OtherAmount, d.OtherPercentage()},
	}
}

// getOrCreateSpreadsheet resolves the configured spreadsheet id, creating a
// new spreadsheet with the two report tabs when none is configured.
func (w *Writer) getOrCreateSpreadsheet(ctx context.Context) (string, error) {
	if w.config.SpreadsheetID != "" {
		return w.config.SpreadsheetID, nil
	}

	spreadsheet, err := w.service.Spreadsheets.Create(&sheets.Spreadsheet{
		Properties: &sheets.SpreadsheetProperties{Title: w.config.SpreadsheetName},
		Sheets: []*sheets.Sheet{
			{Properties: &sheets.SheetProperties{Title: transactionsSheet}},
			{Properties: &sheets.SheetProperties{Title: summarySheet}},
		},
	}).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to create spreadsheet: %w", err)
	}

	slog.Info("created spreadsheet", "spreadsheet_id", spreadsheet.SpreadsheetId)
	return spreadsheet.SpreadsheetId, nil
}

// createSheetsService builds the API client from either a service account
// key file or OAuth2 refresh-token credentials.
func createSheetsService(ctx context.Context, cfg Config) (*sheets.Service, error) {
	if cfg.ServiceAccountPath != "" {
		jsonKey, err := os.ReadFile(cfg.ServiceAccountPath)
		if err != nil {
			return nil, fmt.Errorf("unable to read service account key file: %w", err)
		}
		jwtConfig, err := google.JWTConfigFromJSON(jsonKey, sheets.SpreadsheetsScope)
		if err != nil {
			return nil, fmt.Errorf("unable to parse service account key: %w", err)
		}
		return sheets.NewService(ctx, option.WithTokenSource(jwtConfig.TokenSource(ctx)))
	}

	oauthConfig := &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Endpoint:     google.Endpoint,
		Scopes:       []string{sheets.SpreadsheetsScope},
	}
	token := &oauth2.Token{RefreshToken: cfg.RefreshToken}
	return sheets.NewService(ctx, option.WithTokenSource(oauthConfig.TokenSource(ctx, token)))
}
