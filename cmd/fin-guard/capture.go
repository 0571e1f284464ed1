package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jolucode/fin-guard/internal/config"
	"github.com/jolucode/fin-guard/internal/gate"
	"github.com/jolucode/fin-guard/internal/tui"
)

func captureCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "capture",
		Short: "Manage the notification capture switch",
		Long: `The capture switch controls whether the listener forwards anything at
all. It persists across runs, so a seller can pause forwarding without
stopping the listener process.`,
	}

	cmd.AddCommand(
		captureSetCmd("on", "Enable notification capture", true),
		captureSetCmd("off", "Disable notification capture", false),
		captureToggleCmd(),
		captureStatusCmd(),
	)

	return cmd
}

// withGate opens the settings store, initializes the gate and hands it to fn.
func withGate(cmd *cobra.Command, fn func(g *gate.CaptureGate) error) error {
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

	return fn(captureGate)
}

func captureSetCmd(use, short string, enabled bool) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withGate(cmd, func(g *gate.CaptureGate) error {
				if err := g.SetEnabled(cmd.Context(), enabled); err != nil {
					fmt.Println(tui.WarningStyle.Render("El estado no se pudo guardar; aplica solo a esta sesión"))
				}
				fmt.Println(captureStateLine(enabled))
				return nil
			})
		},
	}
}

func captureToggleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "toggle",
		Short: "Flip the capture switch",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withGate(cmd, func(g *gate.CaptureGate) error {
				enabled, err := g.Toggle(cmd.Context())
				if err != nil {
					fmt.Println(tui.WarningStyle.Render("El estado no se pudo guardar; aplica solo a esta sesión"))
				}
				fmt.Println(captureStateLine(enabled))
				return nil
			})
		},
	}
}

func captureStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show whether capture is enabled",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withGate(cmd, func(g *gate.CaptureGate) error {
				fmt.Println(captureStateLine(g.IsEnabled()))
				return nil
			})
		},
	}
}

func captureStateLine(enabled bool) string {
	if enabled {
		return tui.SuccessStyle.Render("✓ Captura activada")
	}
	return tui.WarningStyle.Render("✗ Captura desactivada")
}
