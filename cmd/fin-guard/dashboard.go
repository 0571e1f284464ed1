package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jolucode/fin-guard/internal/config"
	"github.com/jolucode/fin-guard/internal/device"
	"github.com/jolucode/fin-guard/internal/refresh"
	"github.com/jolucode/fin-guard/internal/repository"
	"github.com/jolucode/fin-guard/internal/tui"
)

func dashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "dashboard",
		Aliases: []string{"dash"},
		Short:   "Open the interactive sales dashboard",
		Long: `Fetches this device's notification history from the backend and renders
weekly/monthly sales analytics: totals, Yape/Plin distribution, a
day-of-week histogram and a searchable transaction list.`,
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

			return tui.Run(ctx, tui.Config{
				Repository: repo,
				Bus:        refresh.NewBus(),
				DeviceID:   deviceID,
				Now:        time.Now,
			})
		},
	}
}
