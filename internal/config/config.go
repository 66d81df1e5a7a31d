// Package config loads and saves trace scenes: a canvas, a list of field
// sources, line-tracing options and start points.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/anzel/fieldtrace/internal/field"
	"github.com/anzel/fieldtrace/internal/geom"
	"github.com/anzel/fieldtrace/internal/trace"
)

const (
	DefaultWidth     = 800
	DefaultHeight    = 600
	DefaultHalfSpanX = 4.0
	DefaultHalfSpanY = 3.0
	DefaultMaxDev    = 1e-2
)

type Config struct {
	Canvas  CanvasConfig   `yaml:"canvas"`
	Sources []SourceConfig `yaml:"sources"`
	Line    LineConfig     `yaml:"line"`
	Starts  []StartConfig  `yaml:"starts"`
}

type CanvasConfig struct {
	X0     float64 `yaml:"x0"`
	Y0     float64 `yaml:"y0"`
	X1     float64 `yaml:"x1"`
	Y1     float64 `yaml:"y1"`
	Width  int     `yaml:"width"`
	Height int     `yaml:"height"`
}

// SourceConfig is one field source; Type selects the kind and decides which
// of the parameter fields apply.
type SourceConfig struct {
	Type string  `yaml:"type"`
	X    float64 `yaml:"x"`
	Y    float64 `yaml:"y"`
	Q    float64 `yaml:"q"`
	Px   float64 `yaml:"px"`
	Py   float64 `yaml:"py"`
	I    float64 `yaml:"i"`
	Phi  float64 `yaml:"phi"`
	R    float64 `yaml:"r"`
	Ex   float64 `yaml:"ex"`
	Ey   float64 `yaml:"ey"`
	Qxx  float64 `yaml:"qxx"`
	Qxy  float64 `yaml:"qxy"`
	Qyy  float64 `yaml:"qyy"`
}

type LineConfig struct {
	Digits     float64 `yaml:"digits"`
	MaxSteps   int     `yaml:"max_steps"`
	MaxLength  float64 `yaml:"max_length"`
	MaxStep    float64 `yaml:"max_step"`
	PassPoles  int     `yaml:"pass_poles"`
	CloseTol   float64 `yaml:"close_tol"`
	Directions string  `yaml:"directions"`
	MaxDev     float64 `yaml:"max_deviation"`
}

type StartConfig struct {
	X  float64 `yaml:"x"`
	Y  float64 `yaml:"y"`
	VX float64 `yaml:"vx"`
	VY float64 `yaml:"vy"`
}

func DefaultConfig() *Config {
	return &Config{
		Canvas: CanvasConfig{
			X0:     -DefaultHalfSpanX,
			Y0:     -DefaultHalfSpanY,
			X1:     DefaultHalfSpanX,
			Y1:     DefaultHalfSpanY,
			Width:  DefaultWidth,
			Height: DefaultHeight,
		},
		Line: LineConfig{
			Digits:     trace.DefaultDigits,
			MaxSteps:   trace.DefaultMaxSteps,
			MaxLength:  trace.DefaultMaxLength,
			MaxStep:    trace.DefaultMaxStep,
			CloseTol:   trace.DefaultCloseTol,
			Directions: "both",
			MaxDev:     DefaultMaxDev,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// BuildField assembles the configured sources into a Field.
func (c *Config) BuildField() (*field.Field, error) {
	f := field.New()
	for i, s := range c.Sources {
		switch s.Type {
		case "homogeneous":
			f.Add(field.Homogeneous{Ex: s.Ex, Ey: s.Ey})
		case "monopole":
			f.Add(field.Monopole{X: s.X, Y: s.Y, Q: s.Q})
		case "dipole":
			f.Add(field.Dipole{X: s.X, Y: s.Y, Px: s.Px, Py: s.Py})
		case "dipole2d":
			f.Add(field.Dipole2D{X: s.X, Y: s.Y, Px: s.Px, Py: s.Py})
		case "quadrupole":
			f.Add(field.Quadrupole{X: s.X, Y: s.Y, Qxx: s.Qxx, Qxy: s.Qxy, Qyy: s.Qyy})
		case "wire":
			f.Add(field.Wire{X: s.X, Y: s.Y, I: s.I})
		case "charged_wire":
			f.Add(field.ChargedWire{X: s.X, Y: s.Y, Q: s.Q})
		case "ringcurrent":
			f.Add(field.RingCurrent{X: s.X, Y: s.Y, Phi: s.Phi, R: s.R, I: s.I})
		default:
			return nil, fmt.Errorf("source %d: unknown type %q", i, s.Type)
		}
	}
	return f, nil
}

// TraceOptions maps the line section to trace options. The canvas rectangle
// becomes the bounds predicate.
func (c *Config) TraceOptions() (trace.Options, error) {
	var dir trace.Direction
	switch c.Line.Directions {
	case "", "both":
		dir = trace.Both
	case "forward":
		dir = trace.Forward
	case "backward":
		dir = trace.Backward
	default:
		return trace.Options{}, fmt.Errorf("unknown directions %q", c.Line.Directions)
	}
	return trace.Options{
		Digits:     c.Line.Digits,
		MaxSteps:   c.Line.MaxSteps,
		MaxLength:  c.Line.MaxLength,
		MaxStep:    c.Line.MaxStep,
		PassPoles:  c.Line.PassPoles,
		CloseTol:   c.Line.CloseTol,
		Directions: dir,
		Bounds:     trace.RectBounds(c.Canvas.X0, c.Canvas.Y0, c.Canvas.X1, c.Canvas.Y1),
	}, nil
}

// StartPoints returns the configured start positions.
func (c *Config) StartPoints() []geom.Point {
	pts := make([]geom.Point, len(c.Starts))
	for i, s := range c.Starts {
		pts[i] = geom.Pt(s.X, s.Y)
	}
	return pts
}
