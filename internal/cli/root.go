package cli

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/neighborstan/hippodrome/internal/infra/logger"
	"github.com/neighborstan/hippodrome/internal/infra/workspacefinder"
)

type rootState struct {
	debug   bool
	verbose bool
	cleanup func() error
}

func (s *rootState) close() {
	if s.cleanup != nil {
		_ = s.cleanup()
		s.cleanup = nil
	}
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	st := &rootState{}
	cmd := newRootCmd(st)
	err := cmd.ExecuteContext(ctx)
	st.close()
	if err != nil {
		os.Exit(1)
	}
}

func newRootCmd(st *rootState) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "hippodrome",
		Short:        "Hippodrome: horse race simulator",
		Long:         "Hippodrome races a roster of horses. Each step every horse covers speed × a random factor in [0.2, 0.9); the horse with the greatest distance wins.",
		SilenceUsage: true,
		PersistentPreRunE: func(c *cobra.Command, _ []string) error {
			if c.Name() == "version" {
				return nil
			}
			st.setupLogger(c)
			return nil
		},
		RunE: func(c *cobra.Command, _ []string) error {
			return watchRace(c, watchFlags{})
		},
	}

	cmd.PersistentFlags().BoolVar(&st.debug, "debug", false, "enable verbose logging to .hippodrome/logs/hippodrome.log")
	cmd.PersistentFlags().BoolVar(&st.verbose, "verbose", false, "also write log records to stderr")

	cmd.AddCommand(
		runCmd(),
		validateCmd(),
		watchCmd(),
		initCmd(),
		rostersCmd(),
		racesCmd(),
		versionCmd(),
	)
	return cmd
}

// setupLogger logs into the workspace the command targets, or the working
// directory when there is none yet.
func (s *rootState) setupLogger(c *cobra.Command) {
	s.close()

	logRoot := ""
	for _, name := range []string{"workspace", "path"} {
		if f := c.Flags().Lookup(name); f != nil && strings.TrimSpace(f.Value.String()) != "" {
			logRoot = f.Value.String()
			break
		}
	}
	if logRoot == "" {
		wd, err := os.Getwd()
		if err != nil {
			wd = "."
		}
		logRoot = wd
		if root, ferr := workspacefinder.NewFinder().FindRoot(wd); ferr == nil && root != "" {
			logRoot = root
		}
	}
	logRoot, _ = filepath.Abs(logRoot)

	cfg := logger.Config{Root: logRoot, Debug: s.debug}
	if s.verbose {
		cfg.Mirror = os.Stderr
	}

	cleanup, err := logger.Setup(cfg)
	if err != nil {
		return
	}
	s.cleanup = cleanup
	logger.L().Debug("cli.command", "cmd", c.CommandPath())
}
