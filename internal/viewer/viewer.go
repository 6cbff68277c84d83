// Package viewer holds the interaction state of a rotatable model view:
// trackball dragging, arrow-key nudges, zoom at the cursor and animated
// rotation toward preset orientations. It produces the transform a
// graphics binding uploads each frame; it never draws anything itself.
//
// A State is not safe for concurrent use.
package viewer

import (
	gomath "math"

	"go.uber.org/zap"

	"github.com/Faultbox/orbitcube/internal/config"
	"github.com/Faultbox/orbitcube/internal/logger"
	"github.com/Faultbox/orbitcube/pkg/math"
)

// maxZoomIn bounds a single wheel event to doubling the scale.
const maxZoomIn = -0.5

// Options tunes a State.
type Options struct {
	Scale              float64
	AutoRotationFrames int
	KeyStep            float64
	WheelDivisor       float64
}

// DefaultOptions matches config.Default().
func DefaultOptions() Options {
	return OptionsFromConfig(config.Default().Viewer)
}

// OptionsFromConfig converts the viewer section of a config.
func OptionsFromConfig(cfg config.ViewerConfig) Options {
	return Options{
		Scale:              cfg.Scale,
		AutoRotationFrames: cfg.AutoRotationFrames,
		KeyStep:            cfg.KeyStep,
		WheelDivisor:       cfg.WheelDivisor,
	}
}

// State is the orientation, scale and offset of one view.
type State struct {
	Angles math.EulerAngles
	Scale  float64
	Offset math.Vec3

	opts Options
	log  *zap.Logger

	dragging       bool
	mouseX, mouseY float64

	auto *autoRotation
}

// New returns a State at the identity orientation.
func New(opts Options) *State {
	return &State{
		Scale: opts.Scale,
		opts:  opts,
		log:   logger.Named("viewer"),
	}
}

// Rotation returns Rz * Ry * Rx for the current angles.
func (s *State) Rotation() math.Mat4 {
	return s.Angles.Matrix()
}

// Transform returns Scale * Translate(Offset) * Rotation.
func (s *State) Transform() math.Mat4 {
	return math.UniformScale(s.Scale).
		Mul(math.TranslateVec3(s.Offset)).
		Mul(s.Rotation())
}

// Projection returns Transform fitted to a width x height viewport.
func (s *State) Projection(width, height float64) math.Mat4 {
	return math.ProjectionFit(s.Transform(), width, height)
}

// Rotate turns the model as if its screen projection were dragged by
// (dx, dy) pixels, y pointing up. Half a degree per pixel, about the
// screen axis perpendicular to the drag. Reports false for a zero drag.
func (s *State) Rotate(dx, dy float64) bool {
	if dx == 0 && dy == 0 {
		return false
	}

	d := gomath.Hypot(dx, dy)
	axis := math.Vec3{X: dy / d, Y: -dx / d}
	angle := d * gomath.Pi / 360

	m := math.RotateAxis(axis, angle).Mul(s.Rotation())
	s.Angles = math.ExtractAngles(m)
	return true
}

// BeginDrag records the pointer position at button press.
func (s *State) BeginDrag(x, y float64) {
	s.mouseX, s.mouseY = x, y
	s.dragging = true
}

// DragTo rotates by the pointer movement since the last accepted
// position. x and y are screen coordinates with y pointing down.
// Reports whether the view changed.
func (s *State) DragTo(x, y float64) bool {
	if !s.dragging {
		return false
	}
	if !s.Rotate(x-s.mouseX, s.mouseY-y) {
		return false
	}
	s.mouseX, s.mouseY = x, y
	return true
}

// EndDrag stops pointer rotation.
func (s *State) EndDrag() {
	s.dragging = false
}

// Dragging reports whether a drag is in progress.
func (s *State) Dragging() bool {
	return s.dragging
}

// Key applies an arrow key as a KeyStep-pixel drag. Codes follow the
// DOM KeyboardEvent.code names; anything else is ignored.
func (s *State) Key(code string) bool {
	step := s.opts.KeyStep
	switch code {
	case "ArrowUp":
		return s.Rotate(0, step)
	case "ArrowDown":
		return s.Rotate(0, -step)
	case "ArrowLeft":
		return s.Rotate(-step, 0)
	case "ArrowRight":
		return s.Rotate(step, 0)
	default:
		return false
	}
}

// Zoom scales the view by a wheel event at (clientX, clientY) in a
// width x height viewport, keeping the model point under the cursor in
// place. Positive deltaY zooms out. Reports false when nothing changed.
func (s *State) Zoom(clientX, clientY, deltaY, width, height float64) bool {
	scroll := deltaY / s.opts.WheelDivisor
	if scroll == 0 {
		return false
	}
	if scroll < maxZoomIn {
		s.log.Debug("wheel delta clamped", zap.Float64("scroll", scroll))
		scroll = maxZoomIn
	} else if scroll > 1 {
		s.log.Debug("wheel delta clamped", zap.Float64("scroll", scroll))
		scroll = 1
	}

	smaller := gomath.Min(width, height)
	cursor := math.Vec3{
		X: (clientX*2 - width) / smaller,
		Y: (height - clientY*2) / smaller,
	}

	prev := s.Scale
	s.Scale *= 1 / (1 + scroll)
	coef := 1/s.Scale - 1/prev
	s.Offset = s.Offset.Add(cursor.Scale(coef))
	return true
}

// Readout is the per-frame diagnostic summary of a view.
type Readout struct {
	Determinant         float64          `json:"determinant" yaml:"determinant"`
	RotationDeterminant float64          `json:"rotation_determinant" yaml:"rotation_determinant"`
	Angles              math.EulerAngles `json:"angles" yaml:"angles"`
	Offset              math.Vec3        `json:"offset" yaml:"offset"`
	Scale               float64          `json:"scale" yaml:"scale"`
	Preset              Preset           `json:"preset,omitempty" yaml:"preset,omitempty"`
}

// Readout summarizes the current state. Determinant covers the full
// transform (scale cubed for a clean rotation); RotationDeterminant
// should stay at 1.
func (s *State) Readout() Readout {
	r := Readout{
		Determinant:         s.Transform().Determinant3(),
		RotationDeterminant: s.Rotation().Determinant3(),
		Angles:              s.Angles,
		Offset:              s.Offset,
		Scale:               s.Scale,
	}
	if s.auto != nil {
		r.Preset = s.auto.preset
	}
	return r
}
