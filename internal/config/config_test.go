package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultSimConfigParsesEmbedded(t *testing.T) {
	cfg := DefaultSimConfig()

	if cfg.Physics.Inertia != 1.1 {
		t.Errorf("Inertia = %v, expected 1.1", cfg.Physics.Inertia)
	}
	if len(cfg.Activities) != 35 {
		t.Errorf("Activities = %d entries, expected 35", len(cfg.Activities))
	}
	if cfg.Activities[1].Script != "talkpurple" {
		t.Errorf("activity 1 script = %q", cfg.Activities[1].Script)
	}
	if len(cfg.Gravitron.Patterns) != 12 {
		t.Errorf("Patterns = %d, expected 12", len(cfg.Gravitron.Patterns))
	}
	if cfg.Gravitron.Classic.Speed != 7 {
		t.Errorf("classic speed = %d, expected 7", cfg.Gravitron.Classic.Speed)
	}
}

func TestEveryTierPatternExists(t *testing.T) {
	cfg := DefaultSimConfig()
	for tier, ids := range cfg.Gravitron.Tiers {
		for _, id := range ids {
			p, ok := cfg.Gravitron.Pattern(id)
			if !ok {
				t.Errorf("tier %s lists unknown pattern %d", tier, id)
				continue
			}
			if p.Tier != tier {
				t.Errorf("pattern %d tier = %s, listed under %s", id, p.Tier, tier)
			}
		}
	}
}

func TestPatternSpawnData(t *testing.T) {
	cfg := DefaultSimConfig()
	p, ok := cfg.Gravitron.Pattern(100)
	if !ok {
		t.Fatal("pattern 100 missing")
	}
	if p.Name != "^v^" || p.Delay != 90 || len(p.Spawns) != 21 {
		t.Errorf("pattern 100 = %q delay %d spawns %d", p.Name, p.Delay, len(p.Spawns))
	}
	first := p.Spawns[0]
	if first.Row != 5 || first.Dir != 0 || first.XOff != 15 || first.Speed != 7 || first.ID != 1 {
		t.Errorf("first spawn = %+v", first)
	}
	if first.Alt == nil || first.Alt.Dir != 1 || first.Alt.XOff != 0 {
		t.Errorf("first spawn alt = %+v", first.Alt)
	}

	cavern, _ := cfg.Gravitron.Pattern(101)
	if cavern.Warmup != 90 || cavern.Scatter == nil || len(cavern.Warnings) != 12 {
		t.Errorf("cavern = warmup %d scatter %v warnings %d", cavern.Warmup, cavern.Scatter, len(cavern.Warnings))
	}
}

func TestEventMatches(t *testing.T) {
	zero := 0
	tests := []struct {
		name string
		e    EventConfig
		c    int
		want bool
	}{
		{"at hit", EventConfig{At: &zero}, 0, true},
		{"at miss", EventConfig{At: &zero}, 1, false},
		{"every hit", EventConfig{Every: 30, Until: 119}, 60, true},
		{"every offset", EventConfig{Every: 30, Offset: 15, Until: 119}, 45, true},
		{"every offset miss", EventConfig{Every: 30, Offset: 15, Until: 119}, 30, false},
		{"past until", EventConfig{Every: 30, Until: 119}, 120, false},
		{"before from", EventConfig{Every: 1, From: 85, Until: 90}, 84, false},
		{"no schedule", EventConfig{}, 0, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.e.Matches(tc.c); got != tc.want {
				t.Errorf("Matches(%d) = %v, expected %v", tc.c, got, tc.want)
			}
		})
	}
}

func TestLoadSimCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sim.yaml")
	data := []byte("physics:\n  inertia: 2.5\n  friction_y: 0.5\n  gravity: 3\n  max_vx: 6\n  max_vy: 10\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}

	cfg, err := LoadSim(path)
	if err != nil {
		t.Fatalf("LoadSim() failed: %v", err)
	}
	if cfg.Physics.Inertia != 2.5 {
		t.Errorf("Inertia = %v, expected 2.5", cfg.Physics.Inertia)
	}
	if len(cfg.Gravitron.Patterns) == 0 {
		t.Error("missing sections should fall back to defaults")
	}
}

func TestLoadSimMissingCustomPath(t *testing.T) {
	if _, err := LoadSim(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("LoadSim() with a missing explicit path should fail")
	}
}
