// orient is a CLI for composing, decomposing and replaying model
// orientations.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	gomath "math"
	"os"
	"strconv"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/orbitcube/internal/api"
	"github.com/Faultbox/orbitcube/internal/config"
	"github.com/Faultbox/orbitcube/internal/logger"
	"github.com/Faultbox/orbitcube/internal/script"
	"github.com/Faultbox/orbitcube/internal/viewer"
	"github.com/Faultbox/orbitcube/pkg/geometry"
	"github.com/Faultbox/orbitcube/pkg/math"
)

func main() {
	config.ParseFlags()
	args := config.Args()
	if len(args) < 1 {
		printUsage(os.Stdout)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Sugar.Debugf("Config: %+v", cfg)

	if err := run(cfg, args[0], args[1:], os.Stdout); err != nil {
		logger.Error("command failed", zap.String("command", args[0]), zap.Error(err))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, command string, args []string, out io.Writer) error {
	switch command {
	case "compose", "c":
		return cmdCompose(cfg, args, out)
	case "extract", "x":
		return cmdExtract(args, out)
	case "fit":
		return cmdFit(cfg, args, out)
	case "sliders":
		return cmdSliders(args, out)
	case "presets":
		return cmdPresets(out)
	case "geometry", "geo":
		return cmdGeometry(cfg, args, out)
	case "replay":
		return cmdReplay(cfg, args, out)
	case "serve":
		return api.NewServer(cfg.Viewer.SphereResolution).ListenAndServe(cfg.Server.Addr)
	case "init":
		return cmdInit(cfg, args, out)
	case "help", "-h", "--help":
		printUsage(out)
		return nil
	default:
		printUsage(out)
		return fmt.Errorf("unknown command: %s", command)
	}
}

func printUsage(out io.Writer) {
	fmt.Fprintln(out, `orient - model orientation utility

Usage:
  orient [global options] <command> [options]

Global options:
  -config <file>   Config file (default: ./orbitcube.yaml or user config dir)
  -debug           Enable debug logging
  -width, -height  Viewport size
  -scale           Initial view scale
  -addr            HTTP API listen address
  -log <file>      Also log to a rotating file

Commands:
  compose -ax -ay -az [-scale]          Compose Rz*Ry*Rx and fit it to the viewport
  extract <m0> ... <m15>                Recover Euler angles from a column-major matrix
  fit [width height]                    Print the aspect-fit projection
  sliders -s -x -y -z -horizontal -vertical
                                        Compose the slider transform
  presets                               List preset orientations
  geometry [name]                       List meshes or dump one as JSON
  replay <script.yaml>                  Replay recorded input and print each frame
  serve                                 Serve the HTTP API
  init [path]                           Write the current config to a file

Examples:
  orient compose -ax 0.5 -az 1.2
  orient extract 1 0 0 0 0 1 0 0 0 0 1 0 0 0 0 1
  orient -width 1024 -height 768 fit
  orient -debug replay session.yaml`)
}

func cmdCompose(cfg *config.Config, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("compose", flag.ContinueOnError)
	fs.SetOutput(out)
	ax := fs.Float64("ax", 0, "Rotation about X in radians")
	ay := fs.Float64("ay", 0, "Rotation about Y in radians")
	az := fs.Float64("az", 0, "Rotation about Z in radians")
	scale := fs.Float64("scale", 1, "Uniform scale")
	if err := fs.Parse(args); err != nil {
		return err
	}

	m := math.UniformScale(*scale).Mul(math.EulerAngles{X: *ax, Y: *ay, Z: *az}.Matrix())

	fmt.Fprintln(out, "Model:")
	printMatrix(out, m)
	fmt.Fprintf(out, "Determinant: %.6f\n", m.Determinant3())
	fmt.Fprintf(out, "Projection (%dx%d):\n", cfg.Viewport.Width, cfg.Viewport.Height)
	printMatrix(out, math.ProjectionFit(m, float64(cfg.Viewport.Width), float64(cfg.Viewport.Height)))
	return nil
}

func cmdExtract(args []string, out io.Writer) error {
	if len(args) != 16 {
		return fmt.Errorf("extract needs 16 matrix elements in column-major order, got %d", len(args))
	}

	var m math.Mat4
	for i, arg := range args {
		v, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return fmt.Errorf("element %d: %w", i, err)
		}
		m[i] = v
	}

	d := math.Decompose(m)
	a := d.Angles
	fmt.Fprintf(out, "X: %10.6f rad %10.4f deg\n", a.X, degrees(a.X))
	fmt.Fprintf(out, "Y: %10.6f rad %10.4f deg\n", a.Y, degrees(a.Y))
	fmt.Fprintf(out, "Z: %10.6f rad %10.4f deg\n", a.Z, degrees(a.Z))
	if d.GimbalLock {
		fmt.Fprintln(out, "Gimbal lock: X and Z are coupled, split evenly")
	}
	fmt.Fprintf(out, "Determinant: %.6f\n", m.Determinant3())
	return nil
}

func cmdFit(cfg *config.Config, args []string, out io.Writer) error {
	width, height := float64(cfg.Viewport.Width), float64(cfg.Viewport.Height)
	if len(args) == 2 {
		var err error
		if width, err = strconv.ParseFloat(args[0], 64); err != nil {
			return fmt.Errorf("width: %w", err)
		}
		if height, err = strconv.ParseFloat(args[1], 64); err != nil {
			return fmt.Errorf("height: %w", err)
		}
	} else if len(args) != 0 {
		return fmt.Errorf("usage: orient fit [width height]")
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("viewport must be positive, got %vx%v", width, height)
	}

	printMatrix(out, math.ProjectionFit(math.Identity(), width, height))
	return nil
}

func cmdSliders(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("sliders", flag.ContinueOnError)
	fs.SetOutput(out)
	var sl viewer.Sliders
	fs.Float64Var(&sl.Scale, "s", 1, "Uniform scale")
	fs.Float64Var(&sl.X, "x", 0, "Rotation about X in radians")
	fs.Float64Var(&sl.Y, "y", 0, "Rotation about Y in radians")
	fs.Float64Var(&sl.Z, "z", 0, "Rotation about Z in radians")
	fs.Float64Var(&sl.Horizontal, "horizontal", 0, "Horizontal offset")
	fs.Float64Var(&sl.Vertical, "vertical", 0, "Vertical offset")
	if err := fs.Parse(args); err != nil {
		return err
	}

	m := sl.Matrix()
	printMatrix(out, m)
	fmt.Fprintf(out, "Determinant: %.6f\n", m.Determinant3())
	return nil
}

func cmdPresets(out io.Writer) error {
	for _, p := range viewer.Presets() {
		a, _ := viewer.PresetAngles(p)
		fmt.Fprintf(out, "  %-3s X=%8.4f Y=%8.4f Z=%8.4f\n", p, a.X, a.Y, a.Z)
	}
	return nil
}

func cmdGeometry(cfg *config.Config, args []string, out io.Writer) error {
	if len(args) == 0 {
		for _, name := range geometry.Names() {
			m, _ := geometry.ByName(name)
			fmt.Fprintf(out, "  %-10s %-10s %d vertices\n", name, m.Primitive, m.VertexCount())
		}
		return nil
	}

	m, err := geometry.ByName(args[0])
	if err != nil {
		return err
	}
	if args[0] == "sphere" {
		m.Positions = geometry.Sphere(cfg.Viewer.SphereResolution)
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(m)
}

func cmdReplay(cfg *config.Config, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("replay", flag.ContinueOnError)
	fs.SetOutput(out)
	changedOnly := fs.Bool("changed", false, "Only print frames whose view changed")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("usage: orient replay [-changed] <script.yaml>")
	}

	sc, err := script.Load(fs.Arg(0))
	if err != nil {
		return err
	}

	st := viewer.New(viewer.OptionsFromConfig(cfg.Viewer))
	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	defer enc.Close()

	return script.Replay(st, sc, func(f script.Frame) error {
		if *changedOnly && !f.Changed {
			return nil
		}
		return enc.Encode(f)
	})
}

func cmdInit(cfg *config.Config, args []string, out io.Writer) error {
	if len(args) > 0 {
		if err := cfg.SaveTo(args[0]); err != nil {
			return err
		}
		fmt.Fprintf(out, "Wrote %s\n", args[0])
		return nil
	}
	if err := cfg.Save(); err != nil {
		return err
	}
	fmt.Fprintf(out, "Wrote config to %s\n", config.ConfigDir())
	return nil
}

// printMatrix writes m row by row; storage is column-major.
func printMatrix(out io.Writer, m math.Mat4) {
	for r := 0; r < 4; r++ {
		fmt.Fprintf(out, "  [%10.6f %10.6f %10.6f %10.6f]\n", m[r], m[4+r], m[8+r], m[12+r])
	}
}

func degrees(rad float64) float64 {
	return rad * 180 / gomath.Pi
}
