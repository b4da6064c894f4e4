package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/yildizm/SentiView/internal/controller"
	"github.com/yildizm/SentiView/internal/emoji"
	"github.com/yildizm/SentiView/internal/formatter"
	"github.com/yildizm/SentiView/internal/logger"
	"github.com/yildizm/SentiView/internal/monitor"
)

func newWatchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [file]",
		Short: "Re-analyze a file every time it is saved",
		Long: `Watch a text file and analyze its whole content each time it changes.

The file is analyzed once at start, then again on every write. Saves that
leave the content unchanged are skipped. Press Ctrl+C to stop watching.

Examples:
  sentiview watch draft.txt
  sentiview watch -o json notes.md`,
		Args: cobra.ExactArgs(1),
		RunE: runWatch,
	}

	return cmd
}

// watchSession owns one controller bound to a panel fed from the watched file
type watchSession struct {
	path      string
	panel     *controller.Panel
	ctrl      *controller.Controller
	formatter formatter.Formatter
	out       io.Writer
	log       *logger.Logger
	lastText  string
	analyzed  bool
}

func newWatchSession(path string, analyzer controller.Analyzer, f formatter.Formatter, out io.Writer, log *logger.Logger) *watchSession {
	cfg := GetGlobalConfig()
	panel := controller.NewPanel(cfg.UI.IdleLabel)
	return &watchSession{
		path:  path,
		panel: panel,
		ctrl: controller.New(analyzer, panel,
			controller.WithLabels(controller.Labels{Idle: cfg.UI.IdleLabel, Busy: cfg.UI.BusyLabel}),
			controller.WithLogger(log)),
		formatter: f,
		out:       out,
		log:       log,
	}
}

func runWatch(cmd *cobra.Command, args []string) error {
	filename := filepath.Clean(args[0])
	if err := validateWatchFilePath(filename); err != nil {
		return err
	}

	log := newLogger("watch", cmd.ErrOrStderr())
	client, err := newClient(log)
	if err != nil {
		return err
	}

	f, err := formatter.New(getOutputFormat(), useColor(cmd.OutOrStdout()))
	if err != nil {
		return err
	}

	watcher, err := createWatcher(filename)
	if err != nil {
		return err
	}
	defer cleanupWatcher(watcher)

	ctx, stop := signalContext(cmd)
	defer stop()

	tracker := monitor.NewTracker(client)
	session := newWatchSession(filename, tracker, f, cmd.OutOrStdout(), log)
	fmt.Fprintf(cmd.ErrOrStderr(), "%s Watching %s (Ctrl+C to stop)\n", emoji.GetEmoji("watch"), filename)

	defer func() {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s %s\n", emoji.GetEmoji("statistics"), tracker.Snapshot().Summary())
	}()

	if _, err := session.analyze(ctx); err != nil {
		return err
	}

	return runWatchLoop(ctx, watcher, session)
}

// analyze reads the file and runs the controller when the content changed.
// It reports whether a run happened.
func (s *watchSession) analyze(ctx context.Context) (bool, error) {
	data, err := readFileLimited(s.path)
	if err != nil {
		return false, err
	}

	text := string(data)
	if s.analyzed && text == s.lastText {
		s.log.Debug("content unchanged, skipping")
		return false, nil
	}
	s.lastText = text
	s.analyzed = true

	s.panel.InputText = text
	state, err := s.ctrl.Run(ctx)
	if err != nil {
		return false, err
	}

	output, err := s.formatter.Format(state)
	if err != nil {
		return false, fmt.Errorf("failed to format output: %w", err)
	}

	fmt.Fprintf(s.out, "[%s] %s\n", time.Now().Format("15:04:05"), filepath.Base(s.path))
	fmt.Fprintln(s.out, strings.TrimRight(string(output), "\n"))
	fmt.Fprintln(s.out)
	return true, nil
}

// handleEvent reacts to one file system event
func (s *watchSession) handleEvent(ctx context.Context, watcher *fsnotify.Watcher, event fsnotify.Event) error {
	switch {
	case event.Has(fsnotify.Write), event.Has(fsnotify.Create):
		_, err := s.analyze(ctx)
		return err
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		// Editors that save by replacing the file drop the watch; pick it up again.
		if watcher != nil && fileExists(s.path) {
			if err := watcher.Add(s.path); err != nil {
				return fmt.Errorf("failed to re-watch file: %w", err)
			}
			_, err := s.analyze(ctx)
			return err
		}
	}
	return nil
}

// cleanupWatcher safely closes watcher with error logging
func cleanupWatcher(watcher *fsnotify.Watcher) {
	if err := watcher.Close(); err != nil && isVerbose() {
		fmt.Fprintf(os.Stderr, "Warning: failed to close watcher: %v\n", err)
	}
}

// createWatcher creates and configures a new file system watcher
func createWatcher(filename string) (*fsnotify.Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	if err := watcher.Add(filename); err != nil {
		cleanupWatcher(watcher)
		return nil, fmt.Errorf("failed to watch file: %w", err)
	}

	return watcher, nil
}

// runWatchLoop runs the main watch loop until ctx is cancelled
func runWatchLoop(ctx context.Context, watcher *fsnotify.Watcher, session *watchSession) error {
	for {
		select {
		case <-ctx.Done():
			if isVerbose() {
				fmt.Fprintf(os.Stderr, "\nReceived interrupt signal, stopping...\n")
			}
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if err := session.handleEvent(ctx, watcher, event); err != nil {
				session.log.Warn("error handling event: %v", err)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			session.log.Warn("watcher error: %v", err)
		}
	}
}

// validateWatchFilePath validates that a file path is safe to watch
func validateWatchFilePath(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("empty file path")
	}

	cleanPath := filepath.Clean(path)

	if slices.Contains(strings.Split(filepath.ToSlash(cleanPath), "/"), "..") {
		return fmt.Errorf("path traversal not allowed")
	}

	info, err := os.Stat(cleanPath)
	if err != nil {
		return fmt.Errorf("cannot access file: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("cannot watch directory, must be a file")
	}

	return nil
}
