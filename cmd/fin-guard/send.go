package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jolucode/fin-guard/internal/config"
	"github.com/jolucode/fin-guard/internal/device"
	"github.com/jolucode/fin-guard/internal/repository"
	"github.com/jolucode/fin-guard/internal/tui"
)

func sendCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "send <message>",
		Short: "Send a raw message to the backend",
		Long: `Sends an arbitrary message to the backend under this device's id.
Useful for smoke-testing connectivity and for backfilling a notification
the listener missed.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
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

			message := strings.Join(args, " ")
			repo := repository.NewHTTPRepository(cfg.NotificationsEndpoint(), cfg.Timeout)

			id, err := repo.SendNotification(ctx, message, deviceID)
			if err != nil {
				return fmt.Errorf("failed to send message: %w", err)
			}

			fmt.Println(tui.SuccessStyle.Render(fmt.Sprintf("✓ Enviado (id %s)", id)))
			return nil
		},
	}
}
