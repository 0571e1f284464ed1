package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jolucode/fin-guard/internal/common"
	"github.com/jolucode/fin-guard/internal/config"
	"github.com/jolucode/fin-guard/internal/dashboard"
	"github.com/jolucode/fin-guard/internal/device"
	"github.com/jolucode/fin-guard/internal/gate"
	"github.com/jolucode/fin-guard/internal/repository"
	"github.com/jolucode/fin-guard/internal/tui"
)

func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show capture state and today's sales at a glance",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			store := openSettingsStore(cfg.DatabasePath)
			defer store.Close()

			captureGate := gate.New(store)
			// A read failure falls back to the in-memory default, already logged.
			_ = captureGate.Initialize(ctx)

			deviceID, err := device.New(store, cfg.DeviceSalt).DeviceID(ctx)
			if err != nil {
				return fmt.Errorf("failed to resolve device id: %w", err)
			}

			fmt.Println(tui.TitleStyle.Render("FinGuard"))
			fmt.Printf("Dispositivo: %s\n", tui.SubtleStyle.Render(deviceID))
			fmt.Printf("Backend:     %s\n", tui.SubtleStyle.Render(cfg.BaseURL))
			fmt.Println(captureStateLine(captureGate.IsEnabled()))
			fmt.Println()

			repo := repository.NewHTTPRepository(cfg.NotificationsEndpoint(), cfg.Timeout)
			logs, err := repo.GetNotificationLogs(ctx, deviceID)
			if err != nil {
				common.LogError(err, "Failed to fetch notification logs", common.Fields{"device_id": deviceID})
				fmt.Println(tui.ErrorStyle.Render("No se pudo conectar al servidor"))
				return nil
			}

			today := dashboard.ComputeToday(logs, time.Now())
			fmt.Println(tui.SubtitleStyle.Render("Hoy"))
			fmt.Printf("Transacciones: %d\n", today.Count)
			fmt.Printf("Total:         S/ %.2f\n", today.Amount)
			if today.Last != nil {
				sender := today.Last.Sender()
				if sender == "" {
					sender = "desconocido"
				}
				fmt.Printf("Última venta:  S/ %.2f de %s\n", today.Last.Amount(), sender)
			}

			return nil
		},
	}
}
