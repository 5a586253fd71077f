package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/neighborstan/hippodrome/internal/domain"
	"github.com/neighborstan/hippodrome/internal/infra/racestore"
	"github.com/neighborstan/hippodrome/internal/infra/randsrc"
	"github.com/neighborstan/hippodrome/internal/infra/workspacefinder"
	"github.com/neighborstan/hippodrome/internal/infra/yamlroster"
	"github.com/neighborstan/hippodrome/internal/ports"
	"github.com/neighborstan/hippodrome/internal/usecase"
)

type workspaceCtx struct {
	root string
	cfg  domain.Config

	rosters ports.RosterLoader
	store   ports.RaceStore
	races   ports.RaceCatalog
}

func loadWorkspace(workspaceFlag string) (*workspaceCtx, error) {
	root, err := resolveWorkspaceRoot(workspaceFlag)
	if err != nil {
		return nil, err
	}

	cfg, err := workspacefinder.LoadConfig(root)
	if err != nil {
		return nil, err
	}

	store := racestore.NewJSONStore(root, cfg, racestore.WithIndex(true))

	return &workspaceCtx{
		root:    root,
		cfg:     cfg,
		rosters: yamlroster.NewLoader(yamlroster.WithRostersDir(cfg.Paths.RostersDir)),
		store:   store,
		races:   store,
	}, nil
}

func resolveWorkspaceRoot(workspaceFlag string) (string, error) {
	w := strings.TrimSpace(workspaceFlag)
	if w != "" {
		abs, err := filepath.Abs(w)
		if err != nil {
			return "", fmt.Errorf("invalid workspace path: %w", err)
		}
		return abs, nil
	}

	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}

	var locator ports.WorkspaceLocator = workspacefinder.NewFinder()
	root, err := locator.FindRoot(wd)
	if err != nil {
		return "", fmt.Errorf("workspace not found from %q (tip: run `hippodrome init`): %w", wd, err)
	}
	return root, nil
}

// resolveRosterPath accepts a path, a file name under the rosters dir, a bare
// file stem or a roster's name field. Empty means the workspace default.
func resolveRosterPath(ws *workspaceCtx, arg string) (string, error) {
	in := strings.TrimSpace(arg)
	if in == "" {
		in = ws.cfg.Defaults.Roster
	}
	if in == "" {
		return "", fmt.Errorf("roster is required (use --roster or -r)")
	}

	if looksLikePath(in) {
		p := in
		if !filepath.IsAbs(p) {
			p = filepath.Join(ws.root, p)
		}
		return filepath.Clean(p), nil
	}

	rostersDir := filepath.Join(ws.root, ws.cfg.Paths.RostersDir)

	if hasYAMLExt(in) {
		p := filepath.Join(rostersDir, in)
		if fileExists(p) {
			return p, nil
		}
	}

	for _, ext := range []string{".yaml", ".yml"} {
		p := filepath.Join(rostersDir, in+ext)
		if fileExists(p) {
			return p, nil
		}
	}

	refs, err := ws.rosters.ListRosters(ws.root)
	if err == nil {
		for _, r := range refs {
			if strings.EqualFold(r.Name, in) {
				return r.Path, nil
			}
		}
	}

	return "", fmt.Errorf("roster %q not found in %q", in, rostersDir)
}

func looksLikePath(s string) bool {
	return strings.Contains(s, "/") || strings.Contains(s, string(filepath.Separator))
}

func hasYAMLExt(s string) bool {
	ext := strings.ToLower(filepath.Ext(s))
	return ext == ".yaml" || ext == ".yml"
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// raceFlags are shared by run and watch. Unset flags fall back to hippodrome.yaml.
type raceFlags struct {
	workspace string
	roster    string
	steps     int
	finish    float64
	seed      uint64
	noSave    bool
}

func (f *raceFlags) bind(c *cobra.Command) {
	c.Flags().StringVarP(&f.workspace, "workspace", "w", "", "Workspace root (optional; autodetected if omitted)")
	c.Flags().StringVarP(&f.roster, "roster", "r", "", "Roster name or path (optional; defaults to the workspace default roster)")
	c.Flags().IntVar(&f.steps, "steps", 0, "Number of moves (overrides race.steps)")
	c.Flags().Float64Var(&f.finish, "finish", 0, "Stop when the leader reaches this distance (overrides race.finish)")
	c.Flags().Uint64Var(&f.seed, "seed", 0, "Random seed for a replayable race (overrides race.seed; 0 = random)")
	c.Flags().BoolVar(&f.noSave, "no-save", false, "Do not save the race under races/")
}

func (f raceFlags) options(c *cobra.Command, cfg domain.Config) (usecase.RaceOptions, error) {
	steps := cfg.Race.Steps
	if c.Flags().Changed("steps") {
		steps = f.steps
	}
	if steps <= 0 {
		return usecase.RaceOptions{}, fmt.Errorf("--steps must be > 0, got %d", steps)
	}

	finish := cfg.Race.Finish
	if c.Flags().Changed("finish") {
		finish = f.finish
	}
	if finish < 0 {
		return usecase.RaceOptions{}, fmt.Errorf("--finish cannot be negative, got %v", finish)
	}

	seed := cfg.Race.Seed
	if c.Flags().Changed("seed") {
		seed = f.seed
	}
	src := randsrc.New(seed)

	return usecase.RaceOptions{
		Steps:  steps,
		Finish: finish,
		Random: src,
		Seed:   src.Seed(),
	}, nil
}

func (f raceFlags) storeFor(ws *workspaceCtx) ports.RaceStore {
	if f.noSave {
		return nil
	}
	return ws.store
}
