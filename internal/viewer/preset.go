package viewer

import (
	"fmt"
	gomath "math"
	"sort"

	"go.uber.org/zap"

	"github.com/Faultbox/orbitcube/pkg/math"
)

// Preset names a target orientation for auto rotation.
type Preset string

const (
	PresetXPos Preset = "x+"
	PresetXNeg Preset = "x-"
	PresetYPos Preset = "y+"
	PresetYNeg Preset = "y-"
	PresetZPos Preset = "z+"
	PresetZNeg Preset = "z-"
)

// presets brings the named cube face toward the viewer.
var presets = map[Preset]math.EulerAngles{
	PresetXPos: {X: 0, Y: gomath.Pi / 2, Z: 0},
	PresetXNeg: {X: 0, Y: -gomath.Pi / 2, Z: 0},
	PresetYPos: {X: -gomath.Pi / 2, Y: 0, Z: 0},
	PresetYNeg: {X: gomath.Pi / 2, Y: 0, Z: 0},
	PresetZPos: {X: gomath.Pi, Y: 0, Z: 0},
	PresetZNeg: {X: 0, Y: 0, Z: 0},
}

// PresetAngles returns the destination angles of p.
func PresetAngles(p Preset) (math.EulerAngles, bool) {
	a, ok := presets[p]
	return a, ok
}

// Presets returns all preset names in sorted order.
func Presets() []Preset {
	out := make([]Preset, 0, len(presets))
	for p := range presets {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// autoRotation interpolates angles linearly toward a preset.
type autoRotation struct {
	preset    Preset
	remaining int
	delta     math.EulerAngles
	dst       math.EulerAngles
}

// StartAutoRotation begins moving toward preset p over
// Options.AutoRotationFrames steps, replacing any rotation in progress.
// With zero frames the destination is applied immediately.
func (s *State) StartAutoRotation(p Preset) error {
	dst, ok := presets[p]
	if !ok {
		return fmt.Errorf("unknown preset %q", p)
	}

	frames := s.opts.AutoRotationFrames
	if frames <= 0 {
		s.Angles = dst
		s.auto = nil
		return nil
	}

	s.auto = &autoRotation{
		preset:    p,
		remaining: frames,
		delta:     dst.Sub(s.Angles).Scale(1 / float64(frames)),
		dst:       dst,
	}
	s.log.Debug("auto rotation started",
		zap.String("preset", string(p)),
		zap.Int("frames", frames))
	return nil
}

// Step advances auto rotation by one frame. The frame after the last
// increment snaps exactly onto the destination and ends the rotation.
// Reports whether the angles changed.
func (s *State) Step() bool {
	if s.auto == nil {
		return false
	}

	if s.auto.remaining == 0 {
		s.Angles = s.auto.dst
		s.log.Debug("auto rotation finished", zap.String("preset", string(s.auto.preset)))
		s.auto = nil
		return true
	}

	s.Angles = s.Angles.Add(s.auto.delta)
	s.auto.remaining--
	return true
}

// Animating reports whether an auto rotation is in progress.
func (s *State) Animating() bool {
	return s.auto != nil
}
