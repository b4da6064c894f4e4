package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/yildizm/SentiView/internal/controller"
	"github.com/yildizm/SentiView/internal/formatter"
	"github.com/yildizm/SentiView/internal/logger"
)

const maxInputBytes = 1 << 20

var (
	analyzeFile       string
	analyzeOutputFile string
)

func newAnalyzeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [text...]",
		Short: "Analyze text once and print the verdict",
		Long: `Send text to the Analysis Service and print the outcome.

Text is taken from the arguments, from --file, or from stdin when neither is
given. The command exits with a non-zero status when the analysis ends in an
error, so it can be used in scripts.

Examples:
  sentiview analyze "what a lovely day"
  sentiview analyze --file review.txt -o json
  echo "terrible service" | sentiview analyze -o markdown`,
		RunE: runAnalyze,
	}

	cmd.Flags().StringVarP(&analyzeFile, "file", "f", "", "read the text from a file")
	cmd.Flags().StringVar(&analyzeOutputFile, "output-file", "", "save output to file instead of stdout")

	return cmd
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	text, err := readAnalyzeInput(cmd.InOrStdin(), args, analyzeFile)
	if err != nil {
		return err
	}

	log := newLogger("analyze", cmd.ErrOrStderr())
	client, err := newClient(log)
	if err != nil {
		return err
	}

	ctx, stop := signalContext(cmd)
	defer stop()

	state, err := analyzeOnce(ctx, client, text, log)
	if err != nil {
		return err
	}

	f, err := formatter.New(getOutputFormat(), useColor(cmd.OutOrStdout()) && analyzeOutputFile == "")
	if err != nil {
		return err
	}
	output, err := f.Format(state)
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}

	if err := handleOutputDestination(cmd.OutOrStdout(), output); err != nil {
		return err
	}

	if state.Kind == controller.KindError {
		return fmt.Errorf("analysis failed: %s", state.Message)
	}
	return nil
}

// analyzeOnce runs a single controller cycle against a fresh panel
func analyzeOnce(ctx context.Context, analyzer controller.Analyzer, text string, log *logger.Logger) (controller.ViewState, error) {
	cfg := GetGlobalConfig()
	panel := controller.NewPanel(cfg.UI.IdleLabel)
	panel.InputText = text

	ctrl := controller.New(analyzer, panel,
		controller.WithLabels(controller.Labels{Idle: cfg.UI.IdleLabel, Busy: cfg.UI.BusyLabel}),
		controller.WithLogger(log))
	return ctrl.Run(ctx)
}

// readAnalyzeInput picks the text source: --file, then arguments, then stdin
func readAnalyzeInput(stdin io.Reader, args []string, file string) (string, error) {
	if file != "" && len(args) > 0 {
		return "", fmt.Errorf("use either text arguments or --file, not both")
	}

	if file != "" {
		if err := validateFilePath(file); err != nil {
			return "", fmt.Errorf("invalid file path: %w", err)
		}
		data, err := readFileLimited(filepath.Clean(file))
		if err != nil {
			return "", err
		}
		return string(data), nil
	}

	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}

	if isVerbose() {
		fmt.Fprintf(os.Stderr, "Reading from stdin...\n")
	}
	data, err := readAllLimited(stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return string(data), nil
}

// readAllLimited reads r fully and fails rather than truncate past maxInputBytes
func readAllLimited(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxInputBytes+1))
	if err != nil {
		return nil, err
	}
	if len(data) > maxInputBytes {
		return nil, fmt.Errorf("input exceeds %d bytes", maxInputBytes)
	}
	return data, nil
}

func readFileLimited(path string) ([]byte, error) {
	// #nosec G304 - path is validated by caller
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %w", path, err)
	}
	defer func() {
		if err := file.Close(); err != nil && isVerbose() {
			fmt.Fprintf(os.Stderr, "Warning: failed to close file: %v\n", err)
		}
	}()

	data, err := readAllLimited(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}
	return data, nil
}

// signalContext derives a context cancelled by SIGINT or SIGTERM
func signalContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
}

// handleOutputDestination writes output to file or stdout
func handleOutputDestination(stdout io.Writer, output []byte) error {
	if analyzeOutputFile == "" {
		if len(output) == 0 {
			return nil
		}
		_, err := fmt.Fprintln(stdout, strings.TrimRight(string(output), "\n"))
		return err
	}

	if err := validateOutputFilePath(analyzeOutputFile); err != nil {
		return fmt.Errorf("invalid output file path: %w", err)
	}
	if err := writeOutputBytesToFile(output, analyzeOutputFile); err != nil {
		return fmt.Errorf("failed to write output to file: %w", err)
	}
	if isVerbose() {
		fmt.Fprintf(os.Stderr, "Output saved to: %s\n", analyzeOutputFile)
	}
	return nil
}

func validateFilePath(path string) error {
	if path == "" {
		return fmt.Errorf("empty file path")
	}

	cleanPath := filepath.Clean(path)

	info, err := os.Stat(cleanPath)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("file does not exist: %s", cleanPath)
		}
		return fmt.Errorf("cannot access file: %w", err)
	}

	if info.IsDir() {
		return fmt.Errorf("path is a directory, not a file: %s", cleanPath)
	}

	return nil
}

func validateOutputFilePath(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("empty file path")
	}
	if info, err := os.Stat(filepath.Clean(path)); err == nil && info.IsDir() {
		return fmt.Errorf("path is a directory, not a file: %s", path)
	}
	return nil
}

// writeOutputBytesToFile writes output to a file with proper error handling
func writeOutputBytesToFile(output []byte, filePath string) error {
	cleanPath := filepath.Clean(filePath)

	file, err := os.Create(cleanPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && isVerbose() {
			fmt.Fprintf(os.Stderr, "Warning: failed to close output file: %v\n", closeErr)
		}
	}()

	if _, err := file.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if err := file.Sync(); err != nil {
		return fmt.Errorf("failed to sync output file: %w", err)
	}

	return nil
}
