package racestore

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/neighborstan/hippodrome/internal/domain"
	"github.com/neighborstan/hippodrome/internal/ports"
)

const (
	defaultRacesDir = "races"
	indexFile       = "index.jsonl"
)

type JSONStore struct {
	rootDir      string
	racesDirName string
	writeIndex   bool
	now          func() time.Time
	newID        func() string
}

type Option func(*JSONStore)

// WithIndex enables a simple JSONL index: races/index.jsonl
func WithIndex(enabled bool) Option {
	return func(s *JSONStore) { s.writeIndex = enabled }
}

// WithNow is useful for tests.
func WithNow(now func() time.Time) Option {
	return func(s *JSONStore) { s.now = now }
}

// WithIDs replaces the random suffix generator. Useful for tests.
func WithIDs(newID func() string) Option {
	return func(s *JSONStore) { s.newID = newID }
}

func NewJSONStore(root string, cfg domain.Config, opts ...Option) *JSONStore {
	racesDir := cfg.Paths.RacesDir
	if strings.TrimSpace(racesDir) == "" {
		racesDir = defaultRacesDir
	}

	s := &JSONStore{
		rootDir:      root,
		racesDirName: racesDir,
		now:          time.Now,
		newID:        func() string { return uuid.NewString()[:8] },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var (
	_ ports.RaceStore   = (*JSONStore)(nil)
	_ ports.RaceCatalog = (*JSONStore)(nil)
)

func (s *JSONStore) dir() string {
	return filepath.Join(s.rootDir, s.racesDirName)
}

// SaveRace writes races/<UTC start>_<roster slug>_<suffix>.json and returns its id
// (the file name without extension).
func (s *JSONStore) SaveRace(race domain.RaceResult) (string, error) {
	if !race.Finite() {
		return "", &domain.OpError{
			Op:   "racestore.save",
			Kind: domain.KindInvalidArgument,
			Err:  domain.ErrNonFiniteRace,
		}
	}

	dir := s.dir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", &domain.OpError{
			Op:   "racestore.mkdir",
			Kind: domain.KindExecution,
			Path: dir,
			Err:  err,
		}
	}

	ts := race.StartedAt
	if ts.IsZero() {
		ts = s.now()
	}
	ts = ts.UTC()

	rosterPart := race.RosterName
	if strings.TrimSpace(rosterPart) == "" {
		rosterPart = strings.TrimSuffix(filepath.Base(race.RosterPath), filepath.Ext(race.RosterPath))
	}
	slug := slugify(rosterPart)
	if slug == "" {
		slug = "race"
	}

	id := fmt.Sprintf("%s_%s_%s", ts.Format("20060102T150405Z"), slug, s.newID())
	filename := id + ".json"
	path := filepath.Join(dir, filename)

	toSave := race
	toSave.ID = id
	if toSave.StartedAt.IsZero() {
		toSave.StartedAt = ts
	}

	b, err := json.MarshalIndent(toSave, "", "  ")
	if err != nil {
		return "", &domain.OpError{
			Op:   "racestore.marshal",
			Kind: domain.KindExecution,
			Path: path,
			Err:  err,
		}
	}

	// Atomic-ish write: tmp then rename.
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return "", &domain.OpError{
			Op:   "racestore.write",
			Kind: domain.KindExecution,
			Path: tmp,
			Err:  err,
		}
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return "", &domain.OpError{
			Op:   "racestore.rename",
			Kind: domain.KindExecution,
			Path: path,
			Err:  err,
		}
	}

	if s.writeIndex {
		_ = s.appendIndex(dir, filename, toSave)
	}

	return id, nil
}

func (s *JSONStore) appendIndex(dir, filename string, race domain.RaceResult) error {
	line, err := json.Marshal(domain.RaceRef{
		ID:        race.ID,
		File:      filename,
		Roster:    race.RosterName,
		Winner:    race.Winner.Name,
		StartedAt: race.StartedAt,
	})
	if err != nil {
		return err
	}

	f, err := os.OpenFile(filepath.Join(dir, indexFile), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.Write(append(line, '\n'))
	return err
}

// ListRaces reads the index in insertion order. A workspace without races
// yields an empty list. Malformed lines are skipped.
func (s *JSONStore) ListRaces() ([]domain.RaceRef, error) {
	path := filepath.Join(s.dir(), indexFile)
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []domain.RaceRef{}, nil
		}
		return nil, &domain.OpError{
			Op:   "racestore.list",
			Kind: domain.KindExecution,
			Path: path,
			Err:  err,
		}
	}
	defer f.Close()

	refs := []domain.RaceRef{}
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		var ref domain.RaceRef
		if err := json.Unmarshal([]byte(line), &ref); err != nil {
			continue
		}
		refs = append(refs, ref)
	}
	if err := sc.Err(); err != nil {
		return nil, &domain.OpError{
			Op:   "racestore.list",
			Kind: domain.KindExecution,
			Path: path,
			Err:  err,
		}
	}
	return refs, nil
}

func (s *JSONStore) LoadRace(id string) (domain.RaceResult, error) {
	id = strings.TrimSuffix(strings.TrimSpace(id), ".json")
	if id == "" || strings.ContainsAny(id, `/\`) || id == "." || id == ".." {
		return domain.RaceResult{}, &domain.OpError{
			Op:   "racestore.load",
			Kind: domain.KindInvalidArgument,
			Err:  fmt.Errorf("invalid race id %q: %w", id, domain.ErrInvalidArgument),
		}
	}

	path := filepath.Join(s.dir(), id+".json")
	b, err := os.ReadFile(path)
	if err != nil {
		kind := domain.KindExecution
		if errors.Is(err, os.ErrNotExist) {
			kind = domain.KindNotFound
		}
		return domain.RaceResult{}, &domain.OpError{
			Op:   "racestore.load",
			Kind: kind,
			Path: path,
			Err:  err,
		}
	}

	var race domain.RaceResult
	if err := json.Unmarshal(b, &race); err != nil {
		return domain.RaceResult{}, &domain.OpError{
			Op:   "racestore.load",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}
	return race, nil
}

// slugify produces a safe filename component.
func slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(s))

	lastDash := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}

	return strings.Trim(b.String(), "-")
}
