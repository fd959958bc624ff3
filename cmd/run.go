package cmd

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/llehouerou/wavestream/internal/config"
	"github.com/llehouerou/wavestream/internal/daemon"
	"github.com/llehouerou/wavestream/internal/errmsg"
	"github.com/llehouerou/wavestream/internal/logging"
	"github.com/llehouerou/wavestream/internal/stderr"
)

var (
	runTUI      bool
	runNoMPRIS  bool
	runNoNotify bool
)

var runCmd = &cobra.Command{
	Use:   "run [playlist | url...]",
	Short: "Start playback",
	Long: `Start playback of a playlist file (.toml, .m3u, .m3u8), of the given
URLs and paths, or of the configured playlist when no argument is given.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return errors.New(errmsg.Format(errmsg.OpConfigLoad, err))
		}
		return run(cmd.Context(), cfg, args)
	},
}

func init() {
	runCmd.Flags().BoolVarP(&runTUI, "tui", "t", false, "show the terminal UI")
	runCmd.Flags().BoolVar(&runNoMPRIS, "no-mpris", false, "do not register on the session bus")
	runCmd.Flags().BoolVar(&runNoNotify, "no-notify", false, "do not show the desktop notification")
	rootCmd.AddCommand(runCmd)
}

func run(ctx context.Context, cfg *config.Config, args []string) error {
	// The terminal belongs to the UI, so nothing may log to it.
	var console io.Writer
	if !runTUI {
		console = stderr.Original()
	}

	log, closeLog, err := logging.New(cfg.GetLogConfig(), console)
	if err != nil {
		return errors.New(errmsg.Format(errmsg.OpLogOpen, err))
	}
	defer closeLog() //nolint:errcheck

	if runTUI {
		// Audio libraries write to stderr, which would corrupt the screen.
		if err := stderr.Start(); err != nil {
			log.Warn("stderr capture unavailable", zap.Error(err))
		} else {
			stderr.SetLogger(log.Named("stderr"))
			defer stderr.Stop()
		}
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	d, err := daemon.New(cfg, log, daemon.Options{
		Locations: args,
		TUI:       runTUI,
		NoMPRIS:   runNoMPRIS,
		NoNotify:  runNoNotify,
	})
	if err != nil {
		return errors.New(errmsg.Format(errmsg.OpInitialize, err))
	}

	log.Info("starting", zap.Strings("args", args), zap.Bool("tui", runTUI))
	runErr := d.Run(ctx)
	if err := d.Close(); err != nil {
		log.Warn("shutdown", zap.Error(err))
	}
	log.Info("stopped")
	return runErr
}
