package config

import (
	_ "embed"

	"gopkg.in/yaml.v3"
)

//go:embed defaults/sim.yaml
var defaultSimYAML []byte

// DefaultSimConfig returns the embedded simulation tables, or the built-in
// subset when the embedded file cannot be parsed.
func DefaultSimConfig() SimConfig {
	var cfg SimConfig
	if err := yaml.Unmarshal(defaultSimYAML, &cfg); err != nil {
		return builtinSimConfig()
	}
	return cfg
}

// builtinSimConfig carries physics and the classic gravitron schedule.
// Super-gravitron patterns and activity zones only come from YAML.
func builtinSimConfig() SimConfig {
	return SimConfig{
		Physics: PhysicsConfig{
			Inertia:   1.1,
			FrictionY: 0.25,
			Gravity:   3,
			MaxVX:     6,
			MaxVY:     10,
		},
		Activities: map[int]ActivityConfig{},
		Gravitron: GravitronConfig{
			Classic: ClassicConfig{
				Speed: 7,
				Schedule: []ScheduleStep{
					{Until: 150, State: 9, Delay: 8},
					{Until: 300, State: 6, Delay: 12},
					{Until: 600, State: 5, Delay: 15, Alternate: true},
					{Until: 900, State: 4, Delay: 20},
					{Until: 1200, State: 3, Delay: 20},
					{Until: 1500, State: 2, Delay: 10},
					{Until: 1800, State: 1, Delay: 25},
				},
				Fallback: ScheduleStep{State: 1, Delay: 5},
				DeathBumps: []DeathBump{
					{Over: 7, Add: 2},
					{Over: 15, Add: 2},
					{Over: 25, Add: 4},
				},
			},
			Weights: RarityWeights{Common: 1},
			Tiers:   map[string][]int{},
		},
	}
}
