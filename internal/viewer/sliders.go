package viewer

import "github.com/Faultbox/orbitcube/pkg/math"

// Sliders are the direct transform controls of the simpler scenes:
// a uniform scale, three rotation angles in radians and a screen-plane
// offset.
type Sliders struct {
	Scale      float64 `json:"scale" yaml:"scale"`
	X          float64 `json:"x" yaml:"x"`
	Y          float64 `json:"y" yaml:"y"`
	Z          float64 `json:"z" yaml:"z"`
	Horizontal float64 `json:"h" yaml:"h"`
	Vertical   float64 `json:"v" yaml:"v"`
}

// Matrix returns Translate(h, v, 0) * Rz * Ry * Rx * Scale(s): scale
// first, then rotate, then move.
func (sl Sliders) Matrix() math.Mat4 {
	return math.Translate(sl.Horizontal, sl.Vertical, 0).
		Mul(math.EulerAngles{X: sl.X, Y: sl.Y, Z: sl.Z}.Matrix()).
		Mul(math.UniformScale(sl.Scale))
}
