package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/orbitcube/internal/config"
	"github.com/Faultbox/orbitcube/internal/script"
	"github.com/Faultbox/orbitcube/pkg/geometry"
)

func runCommand(t *testing.T, command string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := run(config.Default(), command, args, &out)
	return out.String(), err
}

func TestCompose(t *testing.T) {
	out, err := runCommand(t, "compose", "-scale", "2")
	if err != nil {
		t.Fatalf("compose: %v", err)
	}
	if !strings.Contains(out, "Determinant: 8.000000") {
		t.Errorf("missing determinant in:\n%s", out)
	}
	if !strings.Contains(out, "Projection (800x600):") {
		t.Errorf("missing projection header in:\n%s", out)
	}
	// 2 * 600/800 in the first projection row.
	if !strings.Contains(out, "1.500000") {
		t.Errorf("projection not fitted:\n%s", out)
	}
}

func TestExtract(t *testing.T) {
	identity := strings.Fields("1 0 0 0 0 1 0 0 0 0 1 0 0 0 0 1")
	out, err := runCommand(t, "extract", identity...)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if strings.Contains(out, "Gimbal") {
		t.Errorf("identity reported gimbal lock:\n%s", out)
	}
	if !strings.Contains(out, "Determinant: 1.000000") {
		t.Errorf("missing determinant:\n%s", out)
	}

	// Rotation of +90 degrees about Y.
	locked := strings.Fields("0 0 -1 0 0 1 0 0 1 0 0 0 0 0 0 1")
	out, err = runCommand(t, "extract", locked...)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if !strings.Contains(out, "Gimbal lock") {
		t.Errorf("expected gimbal lock note:\n%s", out)
	}
}

func TestExtractErrors(t *testing.T) {
	if _, err := runCommand(t, "extract", "1", "2"); err == nil {
		t.Error("expected error for short matrix")
	}
	args := strings.Fields("1 0 0 0 0 1 0 0 0 0 1 0 0 0 0 oops")
	if _, err := runCommand(t, "extract", args...); err == nil || !strings.Contains(err.Error(), "element 15") {
		t.Errorf("err = %v, want element 15 error", err)
	}
}

func TestFit(t *testing.T) {
	out, err := runCommand(t, "fit", "600", "800")
	if err != nil {
		t.Fatalf("fit: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d rows, want 4", len(lines))
	}
	if !strings.Contains(lines[1], "0.750000") {
		t.Errorf("portrait fit should shrink Y, row 1 = %q", lines[1])
	}

	if _, err := runCommand(t, "fit", "0", "10"); err == nil {
		t.Error("expected error for zero width")
	}
	if _, err := runCommand(t, "fit", "10"); err == nil {
		t.Error("expected usage error for one argument")
	}
}

func TestSliders(t *testing.T) {
	out, err := runCommand(t, "sliders", "-s", "0.5", "-horizontal", "0.25")
	if err != nil {
		t.Fatalf("sliders: %v", err)
	}
	if !strings.Contains(out, "Determinant: 0.125000") {
		t.Errorf("missing determinant:\n%s", out)
	}
	if !strings.Contains(out, "0.250000]") {
		t.Errorf("missing translation column:\n%s", out)
	}
}

func TestPresetsCommand(t *testing.T) {
	out, err := runCommand(t, "presets")
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"x+", "x-", "y+", "y-", "z+", "z-"} {
		if !strings.Contains(out, name) {
			t.Errorf("preset %s missing from:\n%s", name, out)
		}
	}
}

func TestGeometry(t *testing.T) {
	out, err := runCommand(t, "geometry")
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range geometry.Names() {
		if !strings.Contains(out, name) {
			t.Errorf("mesh %s missing from list", name)
		}
	}

	out, err = runCommand(t, "geometry", "wirecube")
	if err != nil {
		t.Fatal(err)
	}
	var m geometry.Mesh
	if err := json.Unmarshal([]byte(out), &m); err != nil {
		t.Fatalf("decoding mesh: %v", err)
	}
	if m.Name != "wirecube" || m.VertexCount() != 24 {
		t.Errorf("wirecube = %s with %d vertices", m.Name, m.VertexCount())
	}

	if _, err := runCommand(t, "geometry", "teapot"); err == nil {
		t.Error("expected error for unknown mesh")
	}
}

func TestReplay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.yaml")
	data := `
viewport: {width: 800, height: 600}
events:
  - {type: down, x: 10, y: 10}
  - {type: move, x: 30, y: 10}
  - {type: up}
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	out, err := runCommand(t, "replay", "-changed", path)
	if err != nil {
		t.Fatalf("replay: %v", err)
	}

	dec := yaml.NewDecoder(strings.NewReader(out))
	var frames []script.Frame
	for {
		var f script.Frame
		if err := dec.Decode(&f); err != nil {
			break
		}
		frames = append(frames, f)
	}
	if len(frames) != 1 {
		t.Fatalf("got %d changed frames, want 1:\n%s", len(frames), out)
	}
	if frames[0].Index != 1 || frames[0].Event.Type != script.EventMove {
		t.Errorf("frame = %d %s, want the move event", frames[0].Index, frames[0].Event.Type)
	}

	if _, err := runCommand(t, "replay"); err == nil {
		t.Error("expected usage error without a script")
	}
}

func TestInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", config.FileName)
	if _, err := runCommand(t, "init", path); err != nil {
		t.Fatalf("init: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("config not written: %v", err)
	}
	var cfg config.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		t.Fatalf("decoding config: %v", err)
	}
	if cfg != *config.Default() {
		t.Errorf("written config = %+v, want defaults", cfg)
	}
}

func TestUnknownCommand(t *testing.T) {
	out, err := runCommand(t, "frobnicate")
	if err == nil {
		t.Error("expected error for unknown command")
	}
	if !strings.Contains(out, "Commands:") {
		t.Error("usage not printed")
	}
}
