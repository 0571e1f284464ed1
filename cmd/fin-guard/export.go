package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/jolucode/fin-guard/internal/config"
	"github.com/jolucode/fin-guard/internal/dashboard"
	"github.com/jolucode/fin-guard/internal/device"
	"github.com/jolucode/fin-guard/internal/model"
	"github.com/jolucode/fin-guard/internal/repository"
	"github.com/jolucode/fin-guard/internal/sheets"
	"github.com/jolucode/fin-guard/internal/tui"
)

func exportCmd() *cobra.Command {
	var (
		output   string
		toSheets bool
		mode     string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export transactions to CSV or Google Sheets",
		Long: `Exports this device's transactions for the current period. By default
writes a CSV file; with --sheets, uploads transactions and a summary to
a Google Sheets spreadsheet (see the sheets.* config keys).`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			store := openSettingsStore(cfg.DatabasePath)
			defer store.Close()

			deviceID, err := device.New(store, cfg.DeviceSalt).DeviceID(ctx)
			if err != nil {
				return fmt.Errorf("failed to resolve device id: %w", err)
			}

			repo := repository.NewHTTPRepository(cfg.NotificationsEndpoint(), cfg.Timeout)
			logs, err := repo.GetNotificationLogs(ctx, deviceID)
			if err != nil {
				return fmt.Errorf("failed to fetch notification logs: %w", err)
			}

			now := time.Now()
			state := dashboard.NewFilterState(now)
			if mode == "month" {
				state = dashboard.Reduce(state, dashboard.SetFilterMode{Mode: dashboard.FilterMonth}, now)
			} else if mode != "week" {
				return fmt.Errorf("invalid mode %q (expected week or month)", mode)
			}

			agg := dashboard.Compute(logs, state, now)

			if toSheets {
				sheetsCfg, err := sheets.LoadConfig()
				if err != nil {
					return err
				}
				writer, err := sheets.NewWriter(ctx, sheetsCfg)
				if err != nil {
					return fmt.Errorf("failed to create sheets writer: %w", err)
				}
				if err := writer.Write(ctx, agg.Filtered, agg, state.PeriodLabel()); err != nil {
					return fmt.Errorf("failed to export to sheets: %w", err)
				}
				fmt.Println(tui.SuccessStyle.Render("✓ Exportado a Google Sheets"))
				return nil
			}

			if err := writeCSV(output, agg.Filtered); err != nil {
				return err
			}
			fmt.Println(tui.SuccessStyle.Render(fmt.Sprintf("✓ %d transacciones exportadas a %s", len(agg.Filtered), output)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "fin-guard-export.csv", "CSV output path")
	cmd.Flags().BoolVar(&toSheets, "sheets", false, "export to Google Sheets instead of CSV")
	cmd.Flags().StringVar(&mode, "mode", "week", "period to export (week, month)")

	return cmd
}

func writeCSV(path string, logs []model.NotificationLog) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"Fecha", "Fuente", "Remitente", "Monto"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	bar := progressbar.Default(int64(len(logs)), "Exportando")
	for i := range logs {
		if err := w.Write(csvRow(&logs[i])); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
		_ = bar.Add(1)
	}

	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}
	return nil
}

func csvRow(log *model.NotificationLog) []string {
	when := log.CreatedAt
	if t, ok := log.LocalTime(); ok {
		when = t.Format("02/01/2006 15:04")
	}

	source := ""
	if log.Parsed != nil {
		source = log.Parsed.PackageName
	}

	amount := ""
	if log.HasAmount() {
		amount = strconv.FormatFloat(log.Amount(), 'f', 2, 64)
	}

	return []string{when, source, log.Sender(), amount}
}
