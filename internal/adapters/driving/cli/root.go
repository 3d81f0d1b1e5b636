// Package cli implements the inkpanel command line.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/inkpanel/internal/adapters/driven/config/file"
	"github.com/custodia-labs/inkpanel/internal/app"
	"github.com/custodia-labs/inkpanel/internal/logger"
)

// version is set by SetVersion from build flags.
var version = "dev"

var (
	configPath string
	verbose    bool

	// appOptions locate data and wallpapers. Tests point them at temp dirs.
	appOptions app.Options
)

var rootCmd = &cobra.Command{
	Use:   "inkpanel",
	Short: "E-paper signage refresh daemon",
	Long: `inkpanel drives a single e-paper display. It picks what to show each
cycle (dashboard, quote, poetry, wallpaper, holiday greeting or year-end
summary), fetches the data with caching and fallbacks, and pages through
news stories in a corner of the panel between full refreshes.

Configuration is read from ~/.inkpanel/config.toml and reloaded on change.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default ~/.inkpanel/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// loadConfig reads the configuration file. A missing file yields defaults.
func loadConfig() (*file.Loader, *file.Config, error) {
	loader, err := file.NewLoader(configPath, logger.Default())
	if err != nil {
		return nil, nil, err
	}
	cfg, err := loader.Load()
	if err != nil {
		return nil, nil, err
	}
	return loader, cfg, nil
}

// setupLogging applies the [log] table. --verbose still wins.
func setupLogging(cfg *file.Config) error {
	if _, err := logger.Setup(logger.Options{Level: cfg.Log.Level, Format: cfg.Log.Format}); err != nil {
		return fmt.Errorf("configuring logging: %w", err)
	}
	logger.SetVerbose(verbose)
	return nil
}
