package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/llehouerou/wavestream/internal/config"
	"github.com/llehouerou/wavestream/internal/errmsg"
	"github.com/llehouerou/wavestream/internal/mpris"
	"github.com/llehouerou/wavestream/internal/transport"
	"github.com/llehouerou/wavestream/internal/ui/render"
)

const busTimeout = 5 * time.Second

var (
	ctlName string
	ctlStep time.Duration
)

var ctlCmd = &cobra.Command{
	Use:   "ctl <action>",
	Short: "Send a transport action to a running instance",
	Long: `Send a transport action to a running instance over MPRIS.
Run "wavestream actions" for the list of actions.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		action, err := transport.Parse(args[0])
		if err != nil {
			return err
		}
		name, step := busName(), ctlStep
		if step <= 0 {
			if cfg, err := loadConfig(); err == nil {
				step = cfg.GetPlayerConfig().SeekStep
			}
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), busTimeout)
		defer cancel()
		if err := mpris.Send(ctx, name, action, step); err != nil {
			return errors.New(errmsg.FormatWith(errmsg.OpControlSend, action.String(), err))
		}
		return nil
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show what a running instance is playing",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), busTimeout)
		defer cancel()

		info, err := mpris.Query(ctx, busName())
		if err != nil {
			return errors.New(errmsg.Format(errmsg.OpControlQuery, err))
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, info.Status)
		if info.Title != "" {
			if info.Artist != "" {
				fmt.Fprintf(out, "%s - %s\n", info.Artist, info.Title)
			} else {
				fmt.Fprintln(out, info.Title)
			}
		}
		if info.Length > 0 {
			fmt.Fprintf(out, "%s / %s\n", render.Duration(info.Position), render.Duration(info.Length))
		} else if info.Title != "" {
			fmt.Fprintf(out, "%s / live\n", render.Duration(info.Position))
		}
		return nil
	},
}

var actionsCmd = &cobra.Command{
	Use:   "actions",
	Short: "List transport actions",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		for _, a := range transport.All() {
			fmt.Fprintln(cmd.OutOrStdout(), a)
		}
	},
}

func init() {
	for _, c := range []*cobra.Command{ctlCmd, statusCmd} {
		c.Flags().StringVar(&ctlName, "name", "", "MPRIS bus name suffix (default: mpris.name from config)")
	}
	ctlCmd.Flags().DurationVar(&ctlStep, "step", 0, "rewind/fast-forward step (default: player.seek_step)")
	rootCmd.AddCommand(ctlCmd, statusCmd, actionsCmd)
}

// busName resolves the MPRIS name of the instance to talk to.
func busName() string {
	if ctlName != "" {
		return ctlName
	}
	cfg, err := loadConfig()
	if err != nil {
		return config.AppName
	}
	return cfg.GetMPRISConfig().Name
}
