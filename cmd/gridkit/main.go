// Command gridkit enforces the design system: spacing grid, touch targets,
// line length, contrast, layering and motion.
package main

import (
	"fmt"
	"os"
	"time"

	"gridkit/internal/config"
	"gridkit/internal/logging"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Global flags
	verbose    bool
	configPath string
	workspace  string
	timeout    time.Duration
	noColor    bool

	// Logger
	logger *zap.Logger

	// Loaded in PersistentPreRunE
	cfg *config.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "gridkit",
	Short: "gridkit - design-system enforcement for spacing, accessibility and motion",
	Long: `gridkit validates observed style values against an 8px spacing grid and
accessibility rules (touch targets, line length, contrast), plus z-index
layering and animation duration, and suggests grid-aligned fixes.

Components come from YAML manifests, static HTML, or live pages audited
through Chrome.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zc := zap.NewProductionConfig()
		if verbose {
			zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zc.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		if workspace == "" {
			if workspace, err = os.Getwd(); err != nil {
				return fmt.Errorf("failed to resolve workspace: %w", err)
			}
		}

		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config %s: %w", configPath, err)
		}

		if err := logging.Initialize(workspace, cfg.Logging.LoggerConfig()); err != nil {
			logger.Warn("file logging disabled", zap.Error(err))
		}
		logging.Boot("gridkit %s: profile=%s grid=%s", cmd.Name(), cfg.Profile, fmt.Sprint(cfg.Grid.Unit))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logging.CloseAll()
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultFileName, "Config file")
	rootCmd.PersistentFlags().StringVarP(&workspace, "workspace", "w", "", "Workspace directory (default: current)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 2*time.Minute, "Operation timeout for page audits")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(htmlCmd)
	rootCmd.AddCommand(auditCmd)
	rootCmd.AddCommand(suggestCmd)
	rootCmd.AddCommand(scaleCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(inspectCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
