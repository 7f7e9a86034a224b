package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	for _, mode := range []Mode{ModeStages, ModeSwarm} {
		t.Run(string(mode), func(t *testing.T) {
			got, err := Parse(GetDefaultYAML(mode), mode)
			if err != nil {
				t.Fatalf("Parse(embedded %s) error: %v", mode, err)
			}
			want := Default(mode)
			want.Normalize()
			if !reflect.DeepEqual(got, want) {
				t.Errorf("embedded %s config diverges from hardcoded default\n got: %+v\nwant: %+v", mode, got, want)
			}
		})
	}
}

func TestStagesDefaults(t *testing.T) {
	cfg := DefaultStagesConfig()
	if len(cfg.Stages) != 3 {
		t.Fatalf("expected 3 stages, got %d", len(cfg.Stages))
	}
	if cfg.FinalStage() != 2 {
		t.Errorf("FinalStage() = %d, expected 2", cfg.FinalStage())
	}
	// Later stages are harder on every axis
	for i := 1; i < len(cfg.Stages); i++ {
		prev, cur := cfg.Stages[i-1], cfg.Stages[i]
		if cur.MovementGain <= prev.MovementGain || cur.NoiseBarrier >= prev.NoiseBarrier ||
			cur.SpawnChance <= prev.SpawnChance || cur.ThreatSpeed <= prev.ThreatSpeed {
			t.Errorf("stage %d is not harder than stage %d: %+v vs %+v", i, i-1, cur, prev)
		}
	}
	if got := cfg.Stage(99).Name; got != "THE CABIN DOORSTEP" {
		t.Errorf("Stage(99) should clamp to the last stage, got %q", got)
	}
}

func TestParseLayersOverModeDefaults(t *testing.T) {
	doc := []byte("mode: swarm\nritual:\n  required: 5\n")
	cfg, err := Parse(doc, ModeStages)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if cfg.Mode != ModeSwarm {
		t.Errorf("Mode = %q, expected swarm from document", cfg.Mode)
	}
	if cfg.Ritual.Required != 5 {
		t.Errorf("Ritual.Required = %f, expected override 5", cfg.Ritual.Required)
	}
	if cfg.Ritual.Threshold != 5 || cfg.Noise.RunningRate != 40 {
		t.Error("unset keys should keep the swarm defaults")
	}
}

func TestLoadSoundlessCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	if err := os.WriteFile(path, []byte("noise:\n  decay_rate: 3\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadSoundless(path, ModeStages)
	if err != nil {
		t.Fatalf("LoadSoundless error: %v", err)
	}
	if cfg.Noise.DecayRate != 3 {
		t.Errorf("DecayRate = %f, expected 3", cfg.Noise.DecayRate)
	}
	if len(cfg.Stages) != 3 {
		t.Errorf("expected default stages to survive, got %d", len(cfg.Stages))
	}

	if _, err := LoadSoundless(filepath.Join(dir, "missing.yaml"), ModeStages); err == nil {
		t.Error("expected an error for a missing custom config")
	}
}

func TestNormalizeClamps(t *testing.T) {
	cfg := DefaultSwarmConfig()
	cfg.Mode = "bogus"
	cfg.World.Width = -5
	cfg.Player.WalkSpeed = -1
	cfg.Stages = nil
	cfg.Swarm.SpawnChance = 4
	cfg.Checkpoints.Count = 3
	cfg.Checkpoints.Target = 10
	cfg.Audio.WhisperLow, cfg.Audio.WhisperHigh = 30, 10
	cfg.Timing.ReferenceRate = 0
	cfg.Difficulty.Progression.Type = "score"

	cfg.Normalize()

	tests := []struct {
		name string
		ok   bool
	}{
		{"unknown mode falls back to stages", cfg.Mode == ModeStages},
		{"world width restored", cfg.World.Width == 1000},
		{"negative speed floored", cfg.Player.WalkSpeed == 0},
		{"empty stages restored", len(cfg.Stages) == 3},
		{"probability capped", cfg.Swarm.SpawnChance == 1},
		{"target capped at count", cfg.Checkpoints.Target == 3},
		{"whisper band ordered", cfg.Audio.WhisperLow == 10 && cfg.Audio.WhisperHigh == 30},
		{"reference rate restored", cfg.Timing.ReferenceRate == 60},
		{"unknown progression disabled", cfg.Difficulty.Progression.Type == "none"},
	}
	for _, tc := range tests {
		if !tc.ok {
			t.Errorf("Normalize: %s", tc.name)
		}
	}
}

func TestApplyPreset(t *testing.T) {
	tests := []struct {
		preset  DifficultyPreset
		enabled bool
		level   float64
	}{
		{DifficultyEasy, true, 0.0},
		{DifficultyNormal, true, 0.3},
		{DifficultyHard, true, 0.7},
		{DifficultyFixed, false, 0.0},
	}

	for _, tc := range tests {
		t.Run(string(tc.preset), func(t *testing.T) {
			cfg := DefaultStagesConfig()
			ApplyPreset(&cfg, tc.preset)
			if cfg.Difficulty.Enabled != tc.enabled {
				t.Errorf("Enabled = %v, expected %v", cfg.Difficulty.Enabled, tc.enabled)
			}
			if tc.enabled && cfg.Difficulty.InitialLevel != tc.level {
				t.Errorf("InitialLevel = %f, expected %f", cfg.Difficulty.InitialLevel, tc.level)
			}
		})
	}

	if ParsePreset("nightmare") != "" {
		t.Error("unknown preset should parse to empty")
	}
}

func TestDifficultyManager(t *testing.T) {
	base := DefaultStagesConfig().Difficulty
	dm := NewDifficultyManager(base)

	if dm.IsEnabled() {
		t.Error("progression type none should not report as progressing")
	}
	if got := dm.ThreatSpeed(5.5, 2, 1000); got != 5.5 {
		t.Errorf("level 0 speed = %f, expected base 5.5", got)
	}
	if got := dm.Barrier(70, 0, 0); got != 70 {
		t.Errorf("level 0 barrier = %f, expected 70", got)
	}

	staged := base
	staged.Progression = ProgressionConfig{Type: "stage", MaxAt: 2}
	dm = NewDifficultyManager(staged)
	if got := dm.Level(1, 0); got != 0.5 {
		t.Errorf("Level(stage 1 of 2) = %f, expected 0.5", got)
	}
	if got := dm.Level(5, 0); got != 1 {
		t.Errorf("Level should cap at 1, got %f", got)
	}
	if got := dm.ThreatSpeed(4, 2, 0); got != 6 {
		t.Errorf("max level speed = %f, expected 6", got)
	}
	if got := dm.SpawnChance(0.8, 2, 0); got != 1 {
		t.Errorf("SpawnChance should cap at 1, got %f", got)
	}
	if got := dm.Barrier(10, 2, 0); got != 0 {
		t.Errorf("Barrier should floor at 0, got %f", got)
	}

	dm.SetEnabled(false)
	if got := dm.Level(2, 0); got != 0 {
		t.Errorf("disabled manager level = %f, expected 0", got)
	}
}

func TestSchemaUsesYAMLKeys(t *testing.T) {
	data, err := SchemaJSON()
	if err != nil {
		t.Fatalf("SchemaJSON error: %v", err)
	}
	for _, key := range []string{`"walk_speed"`, `"noise_barrier"`, `"transition_delay"`, `"checkpoints"`} {
		if !strings.Contains(string(data), key) {
			t.Errorf("schema is missing key %s", key)
		}
	}
	for _, name := range []string{`"WalkSpeed"`, `"NoiseBarrier"`, `"TransitionDelay"`} {
		if strings.Contains(string(data), name) {
			t.Errorf("schema uses Go field name %s instead of the yaml key", name)
		}
	}
}
