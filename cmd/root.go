package cmd

import (
	"fmt"
	"os"

	"loot-manager/core/config"
	"loot-manager/core/logger"
	"loot-manager/feature/loot"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var configDir string

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "loot-manager",
	Short: "Gun pack catalog and loot datapack generator",
	Long: `Loot Manager scans a TaCZ gun pack into a flat catalog, synthesizes
weighted chest loot tables from it and writes them as a Minecraft datapack.
Datapacks can be published to S3 compatible storage and the catalog can be
synced to a SQL database or served over HTTP.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Use the application's standard logger for error reporting
		// "debug" selects the development config for ISO8601 timestamps
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			// Absolute fallback if logger creation fails (rare)
			fmt.Println(err)
		}
		os.Exit(1)
	}
}

func init() {
	RootCmd.PersistentFlags().StringVar(&configDir, "config-dir", ".", "Folder holding the .env file")
}

// setup loads configuration, letting the command's flags named in bindings
// override it, and builds the logger.
func setup(cmd *cobra.Command, bindings map[string]string) (*config.Config, *zap.Logger, error) {
	cfg, err := config.LoadConfigWithFlags(configDir, cmd.Flags(), bindings)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return cfg, logg, nil
}

// newSynthesizer builds a synthesizer from the loot config and its optional profile file.
func newSynthesizer(cfg *config.Config, logg *zap.Logger) (*loot.Synthesizer, error) {
	profile, err := loot.LoadProfile(cfg.Loot.ProfileFile)
	if err != nil {
		return nil, err
	}
	return loot.NewSynthesizer(cfg.Loot, profile, logg)
}

// requireRoot fails early when no pack root is configured.
func requireRoot(cfg *config.Config) error {
	if cfg.Scan.Root == "" {
		return fmt.Errorf("pack root is required (--root or SCAN_ROOT)")
	}
	return nil
}
