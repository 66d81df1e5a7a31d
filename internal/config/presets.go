package config

import (
	"math"
	"sort"
)

// ringStarts spaces n start points evenly on a radius-r circle around the
// origin.
func ringStarts(r float64, n int) []StartConfig {
	starts := make([]StartConfig, n)
	for i := range starts {
		phi := 2 * math.Pi * float64(i) / float64(n)
		starts[i] = StartConfig{X: r * math.Cos(phi), Y: r * math.Sin(phi)}
	}
	return starts
}

// Presets are ready-made scenes for common textbook source arrangements,
// keyed by name. Each returns a complete config; callers may still edit the
// canvas or line sections afterwards.
var Presets = map[string]func() *Config{
	"charge": func() *Config {
		cfg := DefaultConfig()
		cfg.Sources = []SourceConfig{{Type: "monopole", Q: 1}}
		cfg.Starts = ringStarts(0.1, 16)
		cfg.Line.Directions = "forward"
		return cfg
	},
	"two-charges": func() *Config {
		cfg := DefaultConfig()
		cfg.Sources = []SourceConfig{
			{Type: "monopole", X: -1, Q: 1},
			{Type: "monopole", X: 1, Q: -1},
		}
		for _, s := range ringStarts(0.1, 16) {
			cfg.Starts = append(cfg.Starts, StartConfig{X: s.X - 1, Y: s.Y})
		}
		cfg.Line.Directions = "forward"
		return cfg
	},
	"dipole": func() *Config {
		cfg := DefaultConfig()
		cfg.Sources = []SourceConfig{{Type: "dipole", Px: 1}}
		cfg.Starts = ringStarts(0.05, 12)
		cfg.Line.PassPoles = 1
		return cfg
	},
	"wire-pair": func() *Config {
		cfg := DefaultConfig()
		cfg.Sources = []SourceConfig{
			{Type: "wire", X: -1, I: 1},
			{Type: "wire", X: 1, I: -1},
		}
		for i := 1; i <= 6; i++ {
			r := 0.12 * float64(i)
			cfg.Starts = append(cfg.Starts,
				StartConfig{X: -1 + r},
				StartConfig{X: 1 - r},
			)
		}
		cfg.Line.Directions = "forward"
		return cfg
	},
	"ringcurrent": func() *Config {
		cfg := DefaultConfig()
		cfg.Sources = []SourceConfig{{Type: "ringcurrent", R: 1, I: 1}}
		for i := 1; i <= 5; i++ {
			cfg.Starts = append(cfg.Starts, StartConfig{X: 0.15 * float64(i)})
		}
		return cfg
	},
}

// GetPreset builds the named preset scene, nil if unknown.
func GetPreset(name string) *Config {
	build, ok := Presets[name]
	if !ok {
		return nil
	}
	return build()
}

// ListPresets returns the available preset names.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
