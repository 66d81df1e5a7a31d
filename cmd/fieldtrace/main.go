package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/anzel/fieldtrace/internal/config"
	"github.com/anzel/fieldtrace/internal/export"
	"github.com/anzel/fieldtrace/internal/geom"
	"github.com/anzel/fieldtrace/internal/trace"
)

var (
	configFile string
	outFile    string
	startX     float64
	startY     float64
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "fieldtrace",
		Short: "trace field lines of 2D vector fields",
	}
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "scene.yaml", "scene file (yaml)")

	traceCmd := &cobra.Command{
		Use:   "trace",
		Short: "trace all start points and write SVG",
		RunE:  runTrace,
	}
	traceCmd.Flags().StringVarP(&outFile, "out", "o", "out.svg", "output file")

	inspectCmd := &cobra.Command{
		Use:   "inspect",
		Short: "trace one line and plot its step-size profile",
		RunE:  runInspect,
	}
	inspectCmd.Flags().Float64Var(&startX, "x", 0, "start x")
	inspectCmd.Flags().Float64Var(&startY, "y", 0, "start y")

	initCmd := &cobra.Command{
		Use:   "init [preset]",
		Short: "write a scene file from a preset",
		Long: "Write a ready-made scene to the config file. Available presets: " +
			strings.Join(config.ListPresets(), ", ") + ". Defaults to two-charges.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := "two-charges"
			if len(args) == 1 {
				name = args[0]
			}
			cfg := config.GetPreset(name)
			if cfg == nil {
				return fmt.Errorf("unknown preset %q, have: %s",
					name, strings.Join(config.ListPresets(), ", "))
			}
			return config.Save(configFile, cfg)
		},
	}

	rootCmd.AddCommand(traceCmd, inspectCmd, initCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func runTrace(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}
	f, err := cfg.BuildField()
	if err != nil {
		return err
	}
	opts, err := cfg.TraceOptions()
	if err != nil {
		return err
	}

	lines, err := traceAll(f, cfg, opts)
	if err != nil {
		return err
	}

	maxDev := cfg.Line.MaxDev
	polylines := make([]trace.Polyline, 0, len(lines))
	for i, l := range lines {
		pl := l.Polyline(maxDev)
		polylines = append(polylines, pl)
		fmt.Printf("line %d: %d vertices, forward %s, backward %s\n",
			i, len(pl.Vertices), l.StopForward(), l.StopBackward())
	}

	canvas := export.Canvas{
		X0: cfg.Canvas.X0, Y0: cfg.Canvas.Y0,
		X1: cfg.Canvas.X1, Y1: cfg.Canvas.Y1,
		Width: cfg.Canvas.Width, Height: cfg.Canvas.Height,
	}
	doc := export.SVG(canvas, polylines, int(cfg.Line.Digits)+1)
	if err := os.WriteFile(outFile, []byte(doc), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s (%d lines)\n", outFile, len(polylines))
	return nil
}

// traceAll fans start points out in a batch; starts with an explicit
// velocity need their own options and go one by one.
func traceAll(ev trace.Evaluator, cfg *config.Config, opts trace.Options) ([]*trace.FieldLine, error) {
	var plain []geom.Point
	lines := make([]*trace.FieldLine, 0, len(cfg.Starts))
	for _, s := range cfg.Starts {
		if s.VX == 0 && s.VY == 0 {
			plain = append(plain, geom.Pt(s.X, s.Y))
			continue
		}
		o := opts
		o.StartV = geom.V(s.VX, s.VY)
		l, err := trace.Trace(ev, geom.Pt(s.X, s.Y), o)
		if err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	batch, err := trace.TraceBatch(ev, plain, opts)
	if err != nil {
		return nil, err
	}
	return append(lines, batch...), nil
}

func runInspect(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}
	f, err := cfg.BuildField()
	if err != nil {
		return err
	}
	opts, err := cfg.TraceOptions()
	if err != nil {
		return err
	}

	line, err := trace.Trace(f, geom.Pt(startX, startY), opts)
	if err != nil {
		return err
	}
	c := line.Curve()

	steps := make([]float64, 0, c.Len())
	mags := make([]float64, 0, c.Len())
	for i := 0; i < c.Len(); i++ {
		s := c.At(i)
		steps = append(steps, s.H)
		mags = append(mags, f.F(s.P).Hypot())
	}

	fmt.Printf("start %s, %d samples, length %.4f\n", line.Start(), c.Len(), c.Length())
	fmt.Printf("forward: %s, backward: %s, poles passed: %d\n",
		line.StopForward(), line.StopBackward(), line.PassedPoles())

	fmt.Println("\nstep size along line:")
	fmt.Println(asciigraph.Plot(steps, asciigraph.Height(10), asciigraph.Width(72)))
	fmt.Println("\nfield magnitude along line:")
	fmt.Println(asciigraph.Plot(mags, asciigraph.Height(10), asciigraph.Width(72)))
	return nil
}
