package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/neighborstan/hippodrome/internal/infra/logger"
	"github.com/neighborstan/hippodrome/internal/ui/tui"
	"github.com/neighborstan/hippodrome/internal/usecase"
)

type watchFlags struct {
	raceFlags
	tick time.Duration
}

func watchCmd() *cobra.Command {
	var flags watchFlags

	c := &cobra.Command{
		Use:   "watch",
		Short: "Watch a race live in the terminal",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return watchRace(cmd, flags)
		},
	}

	flags.bind(c)
	c.Flags().DurationVar(&flags.tick, "tick", 0, "Delay between steps (overrides race.tick)")
	return c
}

func watchRace(cmd *cobra.Command, flags watchFlags) error {
	ws, err := loadWorkspace(flags.workspace)
	if err != nil {
		return err
	}

	rosterPath, err := resolveRosterPath(ws, flags.roster)
	if err != nil {
		return err
	}

	opts, err := flags.options(cmd, ws.cfg)
	if err != nil {
		return err
	}

	tick := ws.cfg.Race.Tick
	if cmd.Flags().Changed("tick") && flags.tick > 0 {
		tick = flags.tick
	}

	log := logger.L()
	out, err := tui.Run(tui.Deps{
		Race:       usecase.NewRunRace(ws.rosters, flags.storeFor(ws), usecase.WithLogger(log)),
		RosterPath: rosterPath,
		Options:    opts,
		Tick:       tick,
		Logger:     log,
	})
	if err != nil {
		return err
	}

	// The live view clears on exit; leave the result on the terminal.
	if out.Finished {
		printPrettyRace(cmd.OutOrStdout(), out.Race, out.ID)
	}
	return nil
}
