package math

import "math"

// GimbalEpsilon is the |cos(ay)| below which ExtractAngles treats the
// rotation as gimbal locked.
const GimbalEpsilon = 1e-9

// EulerAngles holds rotations in radians about X, Y and Z, applied in
// that order (the composed matrix is Rz * Ry * Rx).
type EulerAngles struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
	Z float64 `json:"z" yaml:"z"`
}

// Matrix composes the rotation Rz * Ry * Rx.
func (e EulerAngles) Matrix() Mat4 {
	return RotateZ(e.Z).Mul(RotateY(e.Y)).Mul(RotateX(e.X))
}

// Add returns e + other component-wise.
func (e EulerAngles) Add(other EulerAngles) EulerAngles {
	return EulerAngles{e.X + other.X, e.Y + other.Y, e.Z + other.Z}
}

// Sub returns e - other component-wise.
func (e EulerAngles) Sub(other EulerAngles) EulerAngles {
	return EulerAngles{e.X - other.X, e.Y - other.Y, e.Z - other.Z}
}

// Scale returns e with every component multiplied by s.
func (e EulerAngles) Scale(s float64) EulerAngles {
	return EulerAngles{e.X * s, e.Y * s, e.Z * s}
}

// Decomposition is the result of splitting a rotation matrix into
// Euler angles.
type Decomposition struct {
	Angles EulerAngles
	// GimbalLock is set when ay is +-90 degrees. X and Z are then
	// coupled and Angles is one of infinitely many valid answers.
	GimbalLock bool
}

// Decompose recovers angles (ax, ay, az) such that
// EulerAngles{ax, ay, az}.Matrix() reproduces the rotation block of m.
//
// ay comes from asin(-m[2]), clamped into [-1, 1] to absorb
// floating-point overshoot. Away from gimbal lock the signs of ax and az
// come from m[6] and m[1] and their magnitudes from acos of m[10] and
// m[0] over cos(ay).
//
// At gimbal lock only ax-az (ay = +90) or ax+az (ay = -90) is
// determined. That coupled angle is read from m[4] and m[5] and split
// evenly between the two axes. The split is a convention; any other
// split reproduces the same matrix.
//
// Non-rotation input yields NaN or meaningless angles, never an error.
func Decompose(m Mat4) Decomposition {
	ay := math.Asin(clamp(-m[2], 1))
	cosy := math.Abs(math.Cos(ay))

	if cosy < GimbalEpsilon {
		s := sign(ay)
		coupled := math.Atan2(s*m[4], m[5])
		return Decomposition{
			Angles: EulerAngles{
				X: coupled / 2,
				Y: ay,
				Z: -s * coupled / 2,
			},
			GimbalLock: true,
		}
	}

	ax := sign(m[6]/cosy) * math.Acos(clamp(m[10]/cosy, 1))
	az := sign(m[1]/cosy) * math.Acos(clamp(m[0]/cosy, 1))
	return Decomposition{Angles: EulerAngles{X: ax, Y: ay, Z: az}}
}

// ExtractAngles returns the Euler angles of the rotation m.
// See Decompose for the gimbal lock convention.
func ExtractAngles(m Mat4) EulerAngles {
	return Decompose(m).Angles
}

// Orthonormalize rebuilds a rotation matrix from its own Euler angles,
// dropping the drift that accumulates after many incremental rotations.
// Translation and scale are not preserved.
func Orthonormalize(m Mat4) Mat4 {
	return ExtractAngles(m).Matrix()
}

// clamp limits v to [-limit, limit].
func clamp(v, limit float64) float64 {
	if v < -limit {
		return -limit
	}
	if v > limit {
		return limit
	}
	return v
}

// sign returns -1 for negative values and 1 otherwise, including zero.
func sign(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}
