package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/neighborstan/hippodrome/internal/infra/logger"
	"github.com/neighborstan/hippodrome/internal/usecase"
)

func validateCmd() *cobra.Command {
	var workspace string
	var roster string

	c := &cobra.Command{
		Use:   "validate",
		Short: "Validate a roster (builds every horse, no race)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, err := loadWorkspace(workspace)
			if err != nil {
				return err
			}

			rosterPath, err := resolveRosterPath(ws, roster)
			if err != nil {
				return err
			}

			uc := usecase.NewValidateRoster(ws.rosters, logger.L())
			r, err := uc.Execute(cmd.Context(), rosterPath)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "OK: %s (%d horses)\n", r.Name, len(r.Horses))
			return nil
		},
	}

	c.Flags().StringVarP(&workspace, "workspace", "w", "", "Workspace root (optional; autodetected if omitted)")
	c.Flags().StringVarP(&roster, "roster", "r", "", "Roster name or path (optional; defaults to the workspace default roster)")
	return c
}
