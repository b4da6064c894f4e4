package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/yildizm/SentiView/internal/analysis"
	"github.com/yildizm/SentiView/internal/emoji"
)

func newHealthCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the Analysis Service is up",
		Long: `Query the health endpoint of the configured Analysis Service.

Exits with a non-zero status when the service cannot be reached, reports a
status other than healthy, or has no model loaded.`,
		Args: cobra.NoArgs,
		RunE: runHealth,
	}
}

func runHealth(cmd *cobra.Command, args []string) error {
	log := newLogger("health", cmd.ErrOrStderr())
	client, err := newClient(log)
	if err != nil {
		return err
	}

	ctx, stop := signalContext(cmd)
	defer stop()

	status, err := client.Health(ctx)
	if err != nil {
		return healthError(client.HealthURL(), err)
	}

	if err := writeHealth(cmd.OutOrStdout(), client.HealthURL(), status, getOutputFormat()); err != nil {
		return err
	}

	if status.Status != "healthy" || !status.ModelLoaded {
		return fmt.Errorf("service is not ready")
	}
	return nil
}

// healthError says whether the service was unreachable or answered with a failure
func healthError(url string, err error) error {
	switch {
	case analysis.IsTransportError(err):
		return fmt.Errorf("cannot reach %s: %s", url, analysis.UserMessage(err))
	case analysis.IsServiceError(err):
		var ae *analysis.Error
		errors.As(err, &ae)
		return fmt.Errorf("%s answered %d: %s", url, ae.StatusCode, analysis.UserMessage(err))
	default:
		return fmt.Errorf("health check against %s failed: %s", url, analysis.UserMessage(err))
	}
}

func writeHealth(w io.Writer, url string, status *analysis.HealthStatus, format string) error {
	if format == "json" {
		data, err := json.MarshalIndent(status, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal health status: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	}

	symbol := emoji.GetEmoji("health")
	if status.Status != "healthy" {
		symbol = emoji.GetEmoji("warning")
	}
	model := "model loaded"
	if !status.ModelLoaded {
		model = "model not loaded"
	}
	_, err := fmt.Fprintf(w, "%s %s: %s (%s)\n", symbol, url, status.Status, model)
	return err
}
