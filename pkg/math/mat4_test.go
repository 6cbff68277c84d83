package math

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

// sample is an arbitrary non-symmetric matrix with a translation column.
var sample = Mat4{
	0.5, 1.5, -2, 0,
	3, -0.25, 4, 0,
	-1, 2, 0.75, 0,
	7, -8, 9, 1,
}

func abs(v float64) float64 {
	return math.Abs(v)
}

func TestIdentity(t *testing.T) {
	m := Identity()
	// Diagonal should be 1
	if m[0] != 1 || m[5] != 1 || m[10] != 1 || m[15] != 1 {
		t.Error("Identity diagonal should be 1")
	}
	// Off-diagonal should be 0
	if m[1] != 0 || m[4] != 0 || m[12] != 0 {
		t.Error("Identity off-diagonal should be 0")
	}
}

func TestMultiplyIdentity(t *testing.T) {
	id := Identity()

	if got := Multiply(id, sample); got != sample {
		t.Errorf("I * M = %v, want %v", got, sample)
	}
	if got := Multiply(sample, id); got != sample {
		t.Errorf("M * I = %v, want %v", got, sample)
	}
}

func TestMultiplyMatchesMathgl(t *testing.T) {
	a := RotateX(0.3).Mul(Translate(1, 2, 3))
	b := sample

	got := Multiply(a, b)
	want := mgl64.Mat4(a).Mul4(mgl64.Mat4(b))

	if !got.ApproxEqual(Mat4(want), 1e-12) {
		t.Errorf("Multiply() = %v, want %v", got, want)
	}
}

func TestMultiplyDoesNotMutate(t *testing.T) {
	a := sample
	b := RotateZ(1)
	_ = Multiply(a, b)
	if a != sample {
		t.Error("Multiply modified its left operand")
	}
}

func TestTranslate(t *testing.T) {
	m := Translate(5, 10, 15)

	// Translation should be in column 4 (indices 12, 13, 14)
	if m[12] != 5 || m[13] != 10 || m[14] != 15 {
		t.Errorf("Translate: got (%f, %f, %f), want (5, 10, 15)", m[12], m[13], m[14])
	}
}

func TestScale(t *testing.T) {
	m := Scale(2, 3, 4)

	if m[0] != 2 || m[5] != 3 || m[10] != 4 {
		t.Errorf("Scale diagonal: got (%f, %f, %f), want (2, 3, 4)", m[0], m[5], m[10])
	}
	if u := UniformScale(0.5); u != Scale(0.5, 0.5, 0.5) {
		t.Errorf("UniformScale(0.5) = %v", u)
	}
}

func TestRotationsMatchMathgl(t *testing.T) {
	angles := []float64{0, 0.1, -0.7, math.Pi / 2, math.Pi, 2.5}

	for _, a := range angles {
		if got, want := RotateX(a), mgl64.HomogRotate3DX(a); !got.ApproxEqual(Mat4(want), 1e-12) {
			t.Errorf("RotateX(%v) = %v, want %v", a, got, want)
		}
		if got, want := RotateY(a), mgl64.HomogRotate3DY(a); !got.ApproxEqual(Mat4(want), 1e-12) {
			t.Errorf("RotateY(%v) = %v, want %v", a, got, want)
		}
		if got, want := RotateZ(a), mgl64.HomogRotate3DZ(a); !got.ApproxEqual(Mat4(want), 1e-12) {
			t.Errorf("RotateZ(%v) = %v, want %v", a, got, want)
		}
	}
}

func TestRotateAxis(t *testing.T) {
	axis := Vec3{1, 2, -2}.Normalize()
	angle := 0.8

	got := RotateAxis(axis, angle)
	want := mgl64.HomogRotate3D(angle, mgl64.Vec3{axis.X, axis.Y, axis.Z})
	if !got.ApproxEqual(Mat4(want), 1e-12) {
		t.Errorf("RotateAxis() = %v, want %v", got, want)
	}

	// Unit X axis must reproduce RotateX exactly.
	if !RotateAxis(Vec3{1, 0, 0}, angle).ApproxEqual(RotateX(angle), 1e-15) {
		t.Error("RotateAxis around X differs from RotateX")
	}
}

func TestRotateY90(t *testing.T) {
	m := RotateY(math.Pi / 2)
	result := m.TransformPoint(Vec3{1, 0, 0})

	// After 90 degree Y rotation, (1,0,0) should become approximately (0,0,-1)
	if abs(result.X) > 1e-9 || abs(result.Y) > 1e-9 || abs(result.Z+1) > 1e-9 {
		t.Errorf("RotateY 90: got %v, want (0, 0, -1)", result)
	}
}

func TestDeterminant3(t *testing.T) {
	tests := []struct {
		name string
		m    Mat4
		want float64
	}{
		{"identity", Identity(), 1},
		{"scale", Scale(2, 3, 4), 24},
		{"uniform half", UniformScale(0.5), 0.125},
		{"translation ignored", Translate(4, 5, 6), 1},
		{"mirror", Scale(-1, 1, 1), -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.m.Determinant3(); abs(got-tt.want) > 1e-12 {
				t.Errorf("Determinant3() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDeterminant3MatchesMathgl(t *testing.T) {
	want := mgl64.Mat4(sample).Mat3().Det()
	if got := sample.Determinant3(); abs(got-want) > 1e-9 {
		t.Errorf("Determinant3() = %v, want %v", got, want)
	}
}

func TestDeterminant3Rotation(t *testing.T) {
	for _, e := range []EulerAngles{
		{0.3, -1.1, 2.4},
		{-3, 0.2, 0.9},
		{1, math.Pi / 2, -0.5},
	} {
		m := RotateZ(e.Z).Mul(RotateY(e.Y)).Mul(RotateX(e.X))
		if d := m.Determinant3(); abs(d-1) > 1e-12 {
			t.Errorf("Determinant3 of rotation %v = %v, want 1", e, d)
		}
	}
}

func TestProjectionFitLandscape(t *testing.T) {
	m := ProjectionFit(Identity(), 800, 600)

	if abs(m[0]-600.0/800.0) > 1e-15 {
		t.Errorf("m[0] = %v, want %v", m[0], 600.0/800.0)
	}
	if m[5] != 1 || m[10] != 1 || m[15] != 1 {
		t.Errorf("remaining diagonal = (%v, %v, %v), want 1", m[5], m[10], m[15])
	}
	if m[1] != 0 || m[4] != 0 {
		t.Error("ProjectionFit introduced off-diagonal terms")
	}
}

func TestProjectionFitPortrait(t *testing.T) {
	m := ProjectionFit(Identity(), 300, 600)

	if m[0] != 1 || abs(m[5]-0.5) > 1e-15 {
		t.Errorf("diagonal = (%v, %v), want (1, 0.5)", m[0], m[5])
	}
}

func TestProjectionFitScalesFirstRow(t *testing.T) {
	m := ProjectionFit(sample, 800, 600)
	k := 600.0 / 800.0

	for col := 0; col < 4; col++ {
		if abs(m[col*4]-sample[col*4]*k) > 1e-12 {
			t.Errorf("row 0 col %d = %v, want %v", col, m[col*4], sample[col*4]*k)
		}
		if m[col*4+1] != sample[col*4+1] {
			t.Errorf("row 1 col %d changed: %v", col, m[col*4+1])
		}
	}
}

func TestProjectionFitZeroViewport(t *testing.T) {
	m := ProjectionFit(Identity(), 0, 600)

	if !math.IsNaN(m[0]) {
		t.Errorf("m[0] = %v, want NaN for zero width", m[0])
	}
}

func TestTransformPoint(t *testing.T) {
	m := Translate(10, 20, 30)
	result := m.TransformPoint(Vec3{1, 2, 3})

	expected := Vec3{11, 22, 33}
	if result != expected {
		t.Errorf("TransformPoint: got %v, want %v", result, expected)
	}
}

func TestTransformDirectionIgnoresTranslation(t *testing.T) {
	m := Translate(10, 20, 30).Mul(Scale(2, 2, 2))
	result := m.TransformDirection(Vec3{1, 2, 3})

	expected := Vec3{2, 4, 6}
	if result != expected {
		t.Errorf("TransformDirection: got %v, want %v", result, expected)
	}
}

func TestRotationBlock(t *testing.T) {
	r := sample.Rotation()
	if r[12] != 0 || r[13] != 0 || r[14] != 0 || r[15] != 1 {
		t.Errorf("Rotation() kept translation: %v", r)
	}
	if r[0] != sample[0] || r[6] != sample[6] || r[10] != sample[10] {
		t.Errorf("Rotation() changed the 3x3 block: %v", r)
	}
}

func TestFloat32(t *testing.T) {
	f := Translate(1.5, -2, 3).Float32()
	if f[12] != 1.5 || f[13] != -2 || f[14] != 3 || f[15] != 1 {
		t.Errorf("Float32() = %v", f)
	}
}
