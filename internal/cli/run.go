package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/neighborstan/hippodrome/internal/domain"
	"github.com/neighborstan/hippodrome/internal/infra/logger"
	"github.com/neighborstan/hippodrome/internal/usecase"
)

var winnerStyle = lipgloss.NewStyle().Bold(true)

func runCmd() *cobra.Command {
	var flags raceFlags
	var format string

	c := &cobra.Command{
		Use:   "run",
		Short: "Run a race for a roster and print the track and the winner",
		RunE: func(cmd *cobra.Command, _ []string) error {
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

			uc := usecase.NewRunRace(ws.rosters, flags.storeFor(ws), usecase.WithLogger(logger.L()))

			race, raceID, err := uc.Execute(cmd.Context(), rosterPath, opts)
			if err != nil {
				// A cancelled or unsaved race still has standings worth showing.
				if len(race.Standings) > 0 {
					_ = printRace(cmd.OutOrStdout(), race, raceID, format)
				}
				return err
			}

			return printRace(cmd.OutOrStdout(), race, raceID, format)
		},
	}

	flags.bind(c)
	c.Flags().StringVar(&format, "format", "pretty", "Output format: pretty|json")
	return c
}

func printRace(w io.Writer, race domain.RaceResult, raceID string, format string) error {
	switch format {
	case "json":
		if !race.Finite() {
			return fmt.Errorf("race %q cannot be printed as JSON: %w", race.RosterName, domain.ErrNonFiniteRace)
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		payload := map[string]any{
			"race_id": raceID,
			"race":    race,
		}
		return enc.Encode(payload)
	case "pretty", "":
		printPrettyRace(w, race, raceID)
		return nil
	default:
		return fmt.Errorf("unsupported format %q (expected pretty|json)", format)
	}
}

func printPrettyRace(w io.Writer, race domain.RaceResult, raceID string) {
	total := race.EndedAt.Sub(race.StartedAt)
	if race.StartedAt.IsZero() || race.EndedAt.IsZero() {
		total = 0
	}

	fmt.Fprintf(w, "Roster:   %s\n", race.RosterName)
	fmt.Fprintf(w, "Steps:    %d\n", race.Steps)
	if race.Finish > 0 {
		fmt.Fprintf(w, "Finish:   %g\n", race.Finish)
	}
	fmt.Fprintf(w, "Seed:     %d\n", race.Seed)
	fmt.Fprintf(w, "Started:  %s\n", race.StartedAt.Format(time.RFC3339))
	fmt.Fprintf(w, "Duration: %s\n", total)
	if raceID != "" {
		fmt.Fprintf(w, "Race ID:  %s\n", raceID)
	}
	fmt.Fprintln(w)

	printTrack(w, race.Standings)
	fmt.Fprintln(w)

	if race.Winner.Name != "" {
		fmt.Fprintln(w, winnerStyle.Render(fmt.Sprintf("Winner is %s!", race.Winner.Name)))
	}
}

// trackWidth caps the dots a track line may hold.
const trackWidth = 120

// printTrack draws one line per horse: a dot per whole unit of distance, then
// the name. When the leader is past trackWidth the lines are scaled to it, and
// an infinite distance fills the track.
func printTrack(w io.Writer, standings []domain.Standing) {
	leader := 0.0
	for _, s := range standings {
		if s.Distance > leader && !math.IsInf(s.Distance, 1) {
			leader = s.Distance
		}
	}

	for _, s := range standings {
		fmt.Fprintf(w, "%s%s\n", strings.Repeat(".", trackDots(s.Distance, leader)), s.Name)
	}
}

func trackDots(distance, leader float64) int {
	switch {
	case math.IsInf(distance, 1):
		return trackWidth
	case math.IsNaN(distance) || distance <= 0:
		return 0
	case leader <= trackWidth:
		return int(distance)
	}
	return int(distance / leader * trackWidth)
}
