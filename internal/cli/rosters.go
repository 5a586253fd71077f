package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

func rostersCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "rosters",
		Short: "Manage rosters in a workspace",
	}

	c.AddCommand(rostersListCmd())
	return c
}

func rostersListCmd() *cobra.Command {
	var workspace string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List rosters",
		RunE: func(c *cobra.Command, _ []string) error {
			ws, err := loadWorkspace(workspace)
			if err != nil {
				return err
			}

			refs, err := ws.rosters.ListRosters(ws.root)
			if err != nil {
				return err
			}

			out := c.OutOrStdout()
			if len(refs) == 0 {
				fmt.Fprintln(out, "(no rosters found)")
				return nil
			}

			fmt.Fprintf(out, "Workspace: %s\n", ws.root)
			fmt.Fprintf(out, "Default:   %s\n\n", ws.cfg.Defaults.Roster)
			for _, r := range refs {
				rel, _ := filepath.Rel(ws.root, r.Path)
				mark := " "
				stem := strings.TrimSuffix(filepath.Base(r.Path), filepath.Ext(r.Path))
				if strings.EqualFold(stem, ws.cfg.Defaults.Roster) || strings.EqualFold(r.Name, ws.cfg.Defaults.Roster) {
					mark = "*"
				}
				fmt.Fprintf(out, "%s %s  (%s)\n", mark, r.Name, rel)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&workspace, "workspace", "w", "", "Workspace root (optional; autodetected if omitted)")
	return cmd
}
