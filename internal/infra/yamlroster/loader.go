package yamlroster

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/neighborstan/hippodrome/internal/domain"
	"github.com/neighborstan/hippodrome/internal/ports"
	"gopkg.in/yaml.v3"
)

type Loader struct {
	rostersDir string
}

func NewLoader(opts ...Option) *Loader {
	l := &Loader{rostersDir: "rosters"}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

type Option func(*Loader)

func WithRostersDir(dir string) Option {
	return func(l *Loader) { l.rostersDir = dir }
}

var _ ports.RosterLoader = (*Loader)(nil)

func (l *Loader) LoadRoster(path string) (domain.Roster, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return domain.Roster{}, &domain.OpError{
			Op:   "yamlroster.load",
			Kind: domain.KindNotFound,
			Path: path,
			Err:  err,
		}
	}

	var yr yamlRoster
	if err := yaml.Unmarshal(b, &yr); err != nil {
		return domain.Roster{}, &domain.OpError{
			Op:   "yamlroster.load",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}

	return mapAndValidate(path, yr)
}

func (l *Loader) ListRosters(root string) ([]domain.RosterRef, error) {
	dir := filepath.Join(root, l.rostersDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &domain.OpError{
			Op:   "yamlroster.list",
			Kind: domain.KindNotFound,
			Path: dir,
			Err:  err,
		}
	}

	var refs []domain.RosterRef
	for _, e := range entries {
		if e.IsDir() || !hasYAMLExt(e.Name()) {
			continue
		}

		p := filepath.Join(dir, e.Name())
		n, _ := readRosterName(p)
		if strings.TrimSpace(n) == "" {
			n = baseName(p)
		}

		refs = append(refs, domain.RosterRef{Name: n, Path: p})
	}

	sort.Slice(refs, func(i, j int) bool { return refs[i].Name < refs[j].Name })
	return refs, nil
}

func readRosterName(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	var v struct {
		Name string `yaml:"name"`
	}
	if err := yaml.Unmarshal(b, &v); err != nil {
		return "", err
	}
	return v.Name, nil
}

func hasYAMLExt(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".yaml" || ext == ".yml"
}

func baseName(path string) string {
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}
