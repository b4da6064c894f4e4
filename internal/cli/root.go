package cli

import (
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/yildizm/SentiView/internal/analysis"
	"github.com/yildizm/SentiView/internal/config"
	"github.com/yildizm/SentiView/internal/emoji"
	"github.com/yildizm/SentiView/internal/logger"
)

var (
	cfgFile   string
	verbose   bool
	noColor   bool
	noEmoji   bool
	outputFmt string

	globalConfig *config.Config
)

// NewRootCommand creates the root command
func NewRootCommand(version, commit, date string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "sentiview",
		Short: "Terminal client for a sentiment Analysis Service",
		Long: `SentiView sends text to a sentiment Analysis Service and shows the verdict.

Run without a subcommand to open the interactive panel, or use analyze and
watch for scripted use. The serve command starts a local development service
that speaks the same HTTP contract.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			setupEmoji(cmd)
			_, err := loadGlobalConfig(cmd)
			return err
		},
		RunE: runUI,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().BoolVar(&noEmoji, "no-emoji", false, "disable emoji output (useful for Windows terminals)")
	rootCmd.PersistentFlags().StringVarP(&outputFmt, "output", "o", "text", "output format (text, json, markdown)")

	// Add subcommands
	rootCmd.AddCommand(newUICommand())
	rootCmd.AddCommand(newAnalyzeCommand())
	rootCmd.AddCommand(newWatchCommand())
	rootCmd.AddCommand(newHealthCommand())
	rootCmd.AddCommand(newServeCommand())
	rootCmd.AddCommand(newConfigCommand())
	rootCmd.AddCommand(newVersionCommand(version, commit, date))

	return rootCmd
}

func newVersionCommand(version, commit, date string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  "Display version number, build commit, date, and runtime information",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupEmoji(cmd)
		},
		Run: func(cmd *cobra.Command, args []string) {
			displayVersion := version
			displayCommit := commit
			displayDate := date

			if version == "dev" || version == "" {
				displayVersion = "development"
			}
			if commit == "none" || commit == "" {
				displayCommit = "local-build"
			}
			if date == "unknown" || date == "" {
				displayDate = "local-build"
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "SentiView %s (%s) built on %s\n", displayVersion, displayCommit, displayDate)
			fmt.Fprintf(out, "Go version: %s\n", runtime.Version())
			fmt.Fprintf(out, "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
}

func setupEmoji(cmd *cobra.Command) {
	// Auto-disable emojis on Windows if not explicitly set
	if runtime.GOOS == "windows" {
		if flag := cmd.Flag("no-emoji"); flag == nil || !flag.Changed {
			noEmoji = true
		}
	}
	emoji.SetEmojiDisabled(noEmoji)
}

// loadGlobalConfig loads the configuration once and applies flag overrides
func loadGlobalConfig(cmd *cobra.Command) (*config.Config, error) {
	if globalConfig != nil {
		return globalConfig, nil
	}

	cfg, err := config.NewLoader().LoadConfig(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if verbose {
		cfg.Output.Verbose = true
	}
	if noColor {
		cfg.Output.ColorMode = "never"
	}
	if flag := cmd.Flag("output"); flag != nil && flag.Changed {
		cfg.Output.DefaultFormat = outputFmt
	}

	globalConfig = cfg
	return cfg, nil
}

// GetGlobalConfig returns the loaded configuration, or the defaults before loading
func GetGlobalConfig() *config.Config {
	if globalConfig == nil {
		return config.DefaultConfig()
	}
	return globalConfig
}

// Global helpers
func isVerbose() bool {
	return verbose || GetGlobalConfig().Output.Verbose
}

func getOutputFormat() string {
	return GetGlobalConfig().Output.DefaultFormat
}

// useColor resolves the color mode against the output stream
func useColor(out io.Writer) bool {
	switch GetGlobalConfig().Output.ColorMode {
	case "never":
		return false
	case "always":
		return true
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := out.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}

// newLogger creates a component logger writing to w
func newLogger(component string, w io.Writer) *logger.Logger {
	return logger.NewWithOptions(component, logger.VerboseFunc(isVerbose), logger.Options{
		Writer:  w,
		NoColor: !useColor(w),
	})
}

// newClient builds the Analysis Service client from the loaded configuration
func newClient(log *logger.Logger) (*analysis.Client, error) {
	cfg := GetGlobalConfig()
	return analysis.NewClient(&cfg.Service, analysis.WithLogger(log))
}
