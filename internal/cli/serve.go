package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yildizm/SentiView/internal/emoji"
	"github.com/yildizm/SentiView/internal/server"
)

var serveAddr string

func newServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run a local development Analysis Service",
		Long: `Run a small Analysis Service that scores text with VADER.

It answers POST /analyze and GET /health with the same contract the client
expects, which makes it handy for trying the ui, analyze and watch commands
without a model server. Press Ctrl+C to stop.

Examples:
  sentiview serve
  sentiview serve --addr 127.0.0.1:9000`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}

	cmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from server.addr)")

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := GetGlobalConfig().Server
	if serveAddr != "" {
		cfg.Addr = serveAddr
	}

	log := newLogger("serve", cmd.ErrOrStderr())
	scorer := server.NewScorer(cfg.PositiveThreshold, cfg.NegativeThreshold)
	srv := server.New(&cfg, scorer, log)

	ctx, stop := signalContext(cmd)
	defer stop()

	fmt.Fprintf(cmd.ErrOrStderr(), "%s Analysis Service listening on %s (Ctrl+C to stop)\n", emoji.GetEmoji("rocket"), srv.Addr())
	if err := srv.ListenAndServe(ctx); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}
