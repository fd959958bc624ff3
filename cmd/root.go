package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/llehouerou/wavestream/internal/config"
)

var (
	configPath string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   config.AppName,
	Short: "wavestream plays audio streams and playlists from the terminal.",
	Long: `wavestream streams audio from URLs and local files, follows a playlist
file, and exposes transport controls through a desktop notification,
MPRIS and an optional terminal UI.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default: $XDG_CONFIG_HOME/wavestream/config.toml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override log.level (debug, info, warn, error)")
}

// loadConfig reads the configuration and applies flag overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	return cfg, nil
}

// Execute executes the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
