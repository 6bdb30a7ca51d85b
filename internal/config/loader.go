package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadSim loads the simulation tables.
// Search order: customPath -> ~/.flipsim/configs/sim.yaml -> ./configs/sim.yaml -> embedded default
func LoadSim(customPath string) (SimConfig, error) {
	var cfg SimConfig

	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return withDefaults(cfg), nil
	}

	if userCfgPath := userConfigPath("sim.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err == nil {
				return withDefaults(cfg), nil
			}
		}
	}

	if data, err := os.ReadFile("configs/sim.yaml"); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return withDefaults(cfg), nil
		}
	}

	return DefaultSimConfig(), nil
}

// withDefaults fills sections a partial user file left empty.
func withDefaults(cfg SimConfig) SimConfig {
	def := DefaultSimConfig()
	if cfg.Physics == (PhysicsConfig{}) {
		cfg.Physics = def.Physics
	}
	if cfg.Activities == nil {
		cfg.Activities = def.Activities
	}
	if cfg.EnemyRooms == nil {
		cfg.EnemyRooms = def.EnemyRooms
	}
	if len(cfg.Gravitron.Classic.Schedule) == 0 {
		cfg.Gravitron.Classic = def.Gravitron.Classic
	}
	if cfg.Gravitron.Weights == (RarityWeights{}) {
		cfg.Gravitron.Weights = def.Gravitron.Weights
	}
	if cfg.Gravitron.Tiers == nil {
		cfg.Gravitron.Tiers = def.Gravitron.Tiers
	}
	if cfg.Gravitron.Patterns == nil {
		cfg.Gravitron.Patterns = def.Gravitron.Patterns
	}
	return cfg
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".flipsim", "configs", filename)
}
