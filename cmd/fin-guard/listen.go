package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jolucode/fin-guard/internal/common"
	"github.com/jolucode/fin-guard/internal/config"
	"github.com/jolucode/fin-guard/internal/device"
	"github.com/jolucode/fin-guard/internal/gate"
	"github.com/jolucode/fin-guard/internal/listener"
	"github.com/jolucode/fin-guard/internal/transport"
)

func listenCmd() *cobra.Command {
	var inputPath string

	cmd := &cobra.Command{
		Use:   "listen",
		Short: "Capture payment notifications and forward them to the backend",
		Long: `Reads notification events as JSON lines (one object per line, with
"package", "title" and "text" fields) from stdin or a file, filters them
down to payment-relevant ones and forwards each to the backend.`,
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

			client := transport.NewClient(cfg.NotificationsEndpoint(), cfg.Timeout)
			l := listener.New(captureGate, client, deviceID, cfg.LogAll)

			input := os.Stdin
			if inputPath != "" {
				f, err := os.Open(inputPath)
				if err != nil {
					return fmt.Errorf("failed to open input file: %w", err)
				}
				defer f.Close()
				input = f
			}

			common.LogInfo("Listening for notifications", common.Fields{
				"endpoint":  cfg.NotificationsEndpoint(),
				"device_id": deviceID,
				"enabled":   captureGate.IsEnabled(),
			})

			l.Connect()
			defer l.Disconnect()

			return listener.NewStreamSource(input).Run(ctx, l.OnNotificationPosted)
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "read events from a file instead of stdin")

	return cmd
}
