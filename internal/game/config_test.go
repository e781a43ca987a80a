package game

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadSettings_MissingFileUsesDefaults(t *testing.T) {
	s := LoadSettings(filepath.Join(t.TempDir(), "nope.yaml"))
	if s != DefaultSettings() {
		t.Fatalf("missing file should yield defaults, got %+v", s)
	}
}

func TestLoadSettings_MalformedFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("{not yaml"), 0o644); err != nil {
		t.Fatal(err)
	}
	if s := LoadSettings(path); s != DefaultSettings() {
		t.Fatalf("malformed file should yield defaults, got %+v", s)
	}
}

func TestLoadSettings_PartialOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("difficulty: hard\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	s := LoadSettings(path)
	if s.Difficulty != "hard" {
		t.Fatalf("want hard, got %q", s.Difficulty)
	}
	if s.Volume != DefaultSettings().Volume {
		t.Fatal("unset fields should keep their defaults")
	}
}

func TestDifficultyScalar(t *testing.T) {
	cases := map[string]float64{
		"easy":   0.8,
		"normal": 1.0,
		"hard":   1.3,
		"bogus":  1.0,
	}
	for name, want := range cases {
		s := Settings{Difficulty: name}
		if got := s.DifficultyScalar(); got != want {
			t.Fatalf("%s: want %v, got %v", name, want, got)
		}
	}
}
