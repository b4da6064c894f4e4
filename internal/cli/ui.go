package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/yildizm/SentiView/internal/controller"
	"github.com/yildizm/SentiView/internal/monitor"
	"github.com/yildizm/SentiView/internal/ui"
)

func newUICommand() *cobra.Command {
	return &cobra.Command{
		Use:   "ui",
		Short: "Open the interactive sentiment panel",
		Long: `Open a full-screen panel with a text input and an analyze trigger.

Press enter to analyze (ctrl+s when ui.multiline is set), ctrl+l to clear the
result and esc or ctrl+c to quit. This is also what runs when sentiview is
started without a subcommand.`,
		Args: cobra.NoArgs,
		RunE: runUI,
	}
}

func runUI(cmd *cobra.Command, args []string) error {
	cfg := GetGlobalConfig()

	if !ui.SetThemeByName(cfg.UI.Theme) {
		return fmt.Errorf("unknown theme: %s", cfg.UI.Theme)
	}

	// Anything written to the terminal would tear the alternate screen.
	log := newLogger("ui", io.Discard)

	client, err := newClient(log)
	if err != nil {
		return err
	}

	tracker := monitor.NewTracker(client)
	return ui.Run(tracker, ui.Options{
		Labels:    controller.Labels{Idle: cfg.UI.IdleLabel, Busy: cfg.UI.BusyLabel},
		Multiline: cfg.UI.Multiline,
		Endpoint:  client.AnalyzeURL(),
		Logger:    log,
		Stats:     tracker,
	})
}
