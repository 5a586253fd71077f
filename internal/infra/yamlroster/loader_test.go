package yamlroster

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/neighborstan/hippodrome/internal/domain"
)

func writeRoster(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return p
}

func TestLoadRoster_Valid(t *testing.T) {
	p := writeRoster(t, t.TempDir(), "derby.yaml", `
name: Derby
horses:
  - name: Bucephalus
    speed: 2.4
  - name: Cherry
    speed: 3
    distance: 1.5
`)

	r, err := NewLoader().LoadRoster(p)
	if err != nil {
		t.Fatalf("LoadRoster error: %v", err)
	}

	if r.Name != "Derby" {
		t.Fatalf("expected name=Derby, got=%s", r.Name)
	}
	if len(r.Horses) != 2 {
		t.Fatalf("expected 2 horses, got=%d", len(r.Horses))
	}
	if *r.Horses[0].Name != "Bucephalus" || r.Horses[0].Speed != 2.4 || r.Horses[0].Distance != nil {
		t.Fatalf("unexpected first horse: %+v", r.Horses[0])
	}
	if r.Horses[1].Distance == nil || *r.Horses[1].Distance != 1.5 {
		t.Fatalf("expected distance 1.5 on second horse")
	}
}

func TestLoadRoster_NameFallsBackToFile(t *testing.T) {
	p := writeRoster(t, t.TempDir(), "sprint.yml", "horses:\n  - name: A\n    speed: 1\n")

	r, err := NewLoader().LoadRoster(p)
	if err != nil {
		t.Fatalf("LoadRoster error: %v", err)
	}
	if r.Name != "sprint" {
		t.Fatalf("expected name=sprint, got=%s", r.Name)
	}
}

func TestLoadRoster_HorsesNilVsEmpty(t *testing.T) {
	dir := t.TempDir()

	missing, err := NewLoader().LoadRoster(writeRoster(t, dir, "missing.yaml", "name: Missing\n"))
	if err != nil {
		t.Fatalf("LoadRoster error: %v", err)
	}
	if missing.Horses != nil {
		t.Fatalf("expected nil horses when key is absent")
	}

	empty, err := NewLoader().LoadRoster(writeRoster(t, dir, "empty.yaml", "name: Empty\nhorses: []\n"))
	if err != nil {
		t.Fatalf("LoadRoster error: %v", err)
	}
	if empty.Horses == nil || len(empty.Horses) != 0 {
		t.Fatalf("expected empty non-nil horses, got %#v", empty.Horses)
	}
}

func TestLoadRoster_InvalidHorses(t *testing.T) {
	cases := []struct {
		name    string
		content string
		field   string
		msg     string
	}{
		{"null name", "horses:\n  - speed: 1\n", "horses[0]", domain.MsgNameNull},
		{"blank name", "horses:\n  - name: A\n    speed: 1\n  - name: \"  \"\n    speed: 1\n", "horses[1]", domain.MsgNameBlank},
		{"negative speed", "horses:\n  - name: A\n    speed: -1\n", "horses[0]", domain.MsgSpeedNegative},
		{"negative distance", "horses:\n  - name: A\n    speed: 1\n    distance: -2\n", "horses[0]", domain.MsgDistanceNegative},
	}

	for _, c := range cases {
		p := writeRoster(t, t.TempDir(), "bad.yaml", c.content)
		_, err := NewLoader().LoadRoster(p)
		if err == nil {
			t.Fatalf("%s: expected error", c.name)
		}
		if !errors.Is(err, domain.ErrInvalidArgument) {
			t.Fatalf("%s: expected ErrInvalidArgument, got %v", c.name, err)
		}
		if !domain.IsKind(err, domain.KindInvalidConfig) {
			t.Fatalf("%s: expected KindInvalidConfig, got %v", c.name, err)
		}
		for _, want := range []string{c.field, c.msg, p} {
			if !strings.Contains(err.Error(), want) {
				t.Fatalf("%s: expected %q in error, got %v", c.name, want, err)
			}
		}
	}
}

func TestLoadRoster_MissingSpeed(t *testing.T) {
	p := writeRoster(t, t.TempDir(), "bad.yaml", "horses:\n  - name: A\n")
	_, err := NewLoader().LoadRoster(p)
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(err.Error(), "horses[0].speed") {
		t.Fatalf("expected field in error, got %v", err)
	}
	if !errors.Is(err, domain.ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestLoadRoster_NotFound(t *testing.T) {
	_, err := NewLoader().LoadRoster(filepath.Join(t.TempDir(), "nope.yaml"))
	if !domain.IsKind(err, domain.KindNotFound) {
		t.Fatalf("expected KindNotFound, got %v", err)
	}
}

func TestLoadRoster_BadYAML(t *testing.T) {
	p := writeRoster(t, t.TempDir(), "bad.yaml", "horses: [\n")
	_, err := NewLoader().LoadRoster(p)
	if !domain.IsKind(err, domain.KindInvalidConfig) {
		t.Fatalf("expected KindInvalidConfig, got %v", err)
	}
}

func TestListRosters_SortedAndFiltered(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "entrants")
	if err := os.MkdirAll(filepath.Join(dir, "sub"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	writeRoster(t, dir, "b.yaml", "name: Zulu\nhorses: []\n")
	writeRoster(t, dir, "a.yml", "horses: []\n")
	writeRoster(t, dir, "notes.txt", "ignored")

	refs, err := NewLoader(WithRostersDir("entrants")).ListRosters(root)
	if err != nil {
		t.Fatalf("ListRosters error: %v", err)
	}
	if len(refs) != 2 {
		t.Fatalf("expected 2 rosters, got %d", len(refs))
	}
	if refs[0].Name != "Zulu" || refs[1].Name != "a" {
		t.Fatalf("unexpected order: %+v", refs)
	}
	if refs[0].Path != filepath.Join(dir, "b.yaml") {
		t.Fatalf("unexpected path: %s", refs[0].Path)
	}
}

func TestListRosters_MissingDir(t *testing.T) {
	_, err := NewLoader().ListRosters(t.TempDir())
	if !domain.IsKind(err, domain.KindNotFound) {
		t.Fatalf("expected KindNotFound, got %v", err)
	}
}

func TestLoadRoster_NonFiniteNumbers(t *testing.T) {
	cases := []struct {
		content string
		field   string
	}{
		{"horses:\n  - name: A\n    speed: .inf\n", "horses[0].speed"},
		{"horses:\n  - name: A\n    speed: 1\n  - name: B\n    speed: .nan\n", "horses[1].speed"},
		{"horses:\n  - name: A\n    speed: 1\n    distance: .inf\n", "horses[0].distance"},
	}
	for _, c := range cases {
		p := writeRoster(t, t.TempDir(), "bad.yaml", c.content)
		_, err := NewLoader().LoadRoster(p)
		if !errors.Is(err, domain.ErrInvalidConfig) {
			t.Fatalf("%q: expected ErrInvalidConfig, got %v", c.content, err)
		}
		if !strings.Contains(err.Error(), c.field) {
			t.Fatalf("%q: expected %s in error, got %v", c.content, c.field, err)
		}
	}
}
