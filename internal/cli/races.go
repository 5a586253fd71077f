package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/spf13/cobra"

	"github.com/neighborstan/hippodrome/internal/domain"
)

func racesCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "races",
		Short: "Browse saved races",
	}

	c.AddCommand(racesListCmd(), racesShowCmd())
	return c
}

func racesListCmd() *cobra.Command {
	var workspace string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved races (oldest first)",
		RunE: func(c *cobra.Command, _ []string) error {
			ws, err := loadWorkspace(workspace)
			if err != nil {
				return err
			}

			refs, err := ws.races.ListRaces()
			if err != nil {
				return err
			}

			out := c.OutOrStdout()
			if len(refs) == 0 {
				fmt.Fprintln(out, "(no races saved)")
				return nil
			}
			for _, r := range refs {
				fmt.Fprintf(out, "- %s  %s  winner=%s  roster=%s\n",
					r.ID, r.StartedAt.Format(time.RFC3339), r.Winner, r.Roster)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&workspace, "workspace", "w", "", "Workspace root (optional; autodetected if omitted)")
	return cmd
}

func racesShowCmd() *cobra.Command {
	var workspace string
	var format string
	var query string

	cmd := &cobra.Command{
		Use:   "show <race-id>",
		Short: "Show a saved race",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			ws, err := loadWorkspace(workspace)
			if err != nil {
				return err
			}

			race, err := ws.races.LoadRace(args[0])
			if err != nil {
				return err
			}

			if strings.TrimSpace(query) != "" {
				return printQuery(c.OutOrStdout(), race, query)
			}
			return printRace(c.OutOrStdout(), race, race.ID, format)
		},
	}

	cmd.Flags().StringVarP(&workspace, "workspace", "w", "", "Workspace root (optional; autodetected if omitted)")
	cmd.Flags().StringVar(&format, "format", "pretty", "Output format: pretty|json")
	cmd.Flags().StringVarP(&query, "query", "q", "", "JSONPath over the saved race, e.g. $.winner.name or $.standings[*].name")
	return cmd
}

// printQuery evaluates a JSONPath against the race as it is stored on disk.
func printQuery(w io.Writer, race domain.RaceResult, query string) error {
	b, err := json.Marshal(race)
	if err != nil {
		return err
	}
	var doc any
	if err := json.Unmarshal(b, &doc); err != nil {
		return err
	}

	v, err := jsonpath.Get(query, doc)
	if err != nil {
		return &domain.OpError{Op: "cli.races.query", Kind: domain.KindInvalidArgument, Err: err}
	}

	if s, ok := v.(string); ok {
		_, err := fmt.Fprintln(w, s)
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
