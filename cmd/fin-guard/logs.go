package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jolucode/fin-guard/internal/config"
	"github.com/jolucode/fin-guard/internal/device"
	"github.com/jolucode/fin-guard/internal/model"
	"github.com/jolucode/fin-guard/internal/repository"
	"github.com/jolucode/fin-guard/internal/tui"
)

func logsCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "List this device's captured notifications",
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

			if len(logs) == 0 {
				fmt.Println(tui.SubtleStyle.Render("Sin notificaciones registradas"))
				return nil
			}

			if limit > 0 && len(logs) > limit {
				logs = logs[:limit]
			}

			for i := range logs {
				fmt.Println(logLine(&logs[i]))
			}

			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum entries to show (0 for all)")

	return cmd
}

func logLine(log *model.NotificationLog) string {
	when := log.CreatedAt
	if t, ok := log.LocalTime(); ok {
		when = t.Format("02/01/2006 15:04")
	}

	source := tui.OtherStyle.Render("otro")
	if log.Parsed != nil {
		pkg := strings.ToLower(log.Parsed.PackageName)
		switch {
		case strings.Contains(pkg, "yape"):
			source = tui.YapeStyle.Render("yape")
		case strings.Contains(pkg, "plin"):
			source = tui.PlinStyle.Render("plin")
		}
	}

	amount := tui.SubtleStyle.Render("      -")
	if log.HasAmount() {
		amount = fmt.Sprintf("S/ %7.2f", log.Amount())
	}

	sender := log.Sender()
	if sender == "" {
		sender = tui.SubtleStyle.Render("desconocido")
	}

	return fmt.Sprintf("%s  %s  %s  %s", when, source, amount, sender)
}
