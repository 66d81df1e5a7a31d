package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/anzel/fieldtrace/internal/geom"
	"github.com/anzel/fieldtrace/internal/trace"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.Equal(t, DefaultWidth, cfg.Canvas.Width)
	require.Equal(t, DefaultHeight, cfg.Canvas.Height)
	require.Equal(t, -DefaultHalfSpanX, cfg.Canvas.X0)
	require.Equal(t, trace.DefaultDigits, cfg.Line.Digits)
	require.Equal(t, "both", cfg.Line.Directions)
	require.Empty(t, cfg.Sources)
	require.Empty(t, cfg.Starts)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Sources = []SourceConfig{
		{Type: "monopole", X: -1, Q: 1},
		{Type: "monopole", X: 1, Q: -1},
	}
	cfg.Starts = []StartConfig{{X: -0.9, Y: 0.1}}
	cfg.Line.MaxLength = 20

	path := filepath.Join(t.TempDir(), "scene.yaml")
	require.NoError(t, Save(path, cfg))

	got, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, cfg, got)
}

func TestLoadAppliesDefaults(t *testing.T) {
	// a minimal file only overrides what it names
	path := filepath.Join(t.TempDir(), "scene.yaml")
	data := "sources:\n  - type: wire\n    i: 2\nline:\n  max_length: 7\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 7.0, cfg.Line.MaxLength)
	require.Equal(t, trace.DefaultMaxSteps, cfg.Line.MaxSteps)
	require.Equal(t, DefaultWidth, cfg.Canvas.Width)
	require.Len(t, cfg.Sources, 1)
	require.Equal(t, 2.0, cfg.Sources[0].I)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestBuildField(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Sources = []SourceConfig{
		{Type: "monopole", X: 0, Y: 0, Q: 1},
		{Type: "homogeneous", Ex: 0, Ey: 1},
	}
	f, err := cfg.BuildField()
	require.NoError(t, err)
	require.Len(t, f.Sources(), 2)

	v := f.F(geom.Pt(1, 0))
	require.Greater(t, v.X, 0.0)
	require.InDelta(t, 1.0, v.Y, 1e-12)
}

func TestBuildFieldUnknownType(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Sources = []SourceConfig{{Type: "tachyon"}}
	_, err := cfg.BuildField()
	require.ErrorContains(t, err, "unknown type")
}

func TestTraceOptions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Line.Directions = "forward"
	cfg.Line.MaxLength = 12

	opts, err := cfg.TraceOptions()
	require.NoError(t, err)
	require.Equal(t, trace.Forward, opts.Directions)
	require.Equal(t, 12.0, opts.MaxLength)
	require.NotNil(t, opts.Bounds)
	require.Negative(t, opts.Bounds(geom.Pt(0, 0)))
	require.Positive(t, opts.Bounds(geom.Pt(DefaultHalfSpanX+1, 0)))
}

func TestTraceOptionsBadDirections(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Line.Directions = "sideways"
	_, err := cfg.TraceOptions()
	require.ErrorContains(t, err, "unknown directions")
}

func TestPresets(t *testing.T) {
	require.NotEmpty(t, ListPresets())
	for _, name := range ListPresets() {
		cfg := GetPreset(name)
		require.NotNil(t, cfg, name)
		require.NotEmpty(t, cfg.Sources, name)
		require.NotEmpty(t, cfg.Starts, name)

		// every preset must build and trace cleanly
		_, err := cfg.BuildField()
		require.NoError(t, err, name)
		_, err = cfg.TraceOptions()
		require.NoError(t, err, name)
	}
	require.Nil(t, GetPreset("no-such-scene"))
}

func TestStartPoints(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Starts = []StartConfig{{X: 1, Y: 2}, {X: -3, Y: 0.5}}
	require.Equal(t, []geom.Point{geom.Pt(1, 2), geom.Pt(-3, 0.5)}, cfg.StartPoints())
}
