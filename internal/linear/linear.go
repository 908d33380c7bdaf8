// Package linear implements the small set of vector, matrix and quaternion
// math the renderer needs: the matrix stack's 4x4 accumulation, camera
// look-at/perspective/ortho construction, and skeletal-animation blending.
//
// It is deliberately minimal — the system spec treats "the math library" as
// an external collaborator — grounded on the column-major M4/V3/V4 layout
// used by github.com/gviegas/scene/linear.
package linear

import "math"

// V3 is a 3-component vector of float32.
type V3 [3]float32

func (v V3) Add(w V3) V3 { return V3{v[0] + w[0], v[1] + w[1], v[2] + w[2]} }
func (v V3) Sub(w V3) V3 { return V3{v[0] - w[0], v[1] - w[1], v[2] - w[2]} }
func (v V3) Scale(s float32) V3 {
	return V3{v[0] * s, v[1] * s, v[2] * s}
}

func (v V3) Dot(w V3) float32 { return v[0]*w[0] + v[1]*w[1] + v[2]*w[2] }

func (v V3) Cross(w V3) V3 {
	return V3{
		v[1]*w[2] - v[2]*w[1],
		v[2]*w[0] - v[0]*w[2],
		v[0]*w[1] - v[1]*w[0],
	}
}

func (v V3) Len() float32 { return float32(math.Sqrt(float64(v.Dot(v)))) }

func (v V3) Normalize() V3 {
	l := v.Len()
	if l == 0 {
		return v
	}
	return v.Scale(1 / l)
}

// V4 is a 4-component vector of float32, used both as a homogeneous point
// and as a normalized-color pivot (see package pixel).
type V4 [4]float32

// M4 is a column-major 4x4 matrix of float32: M4[col][row].
type M4 [4]V4

// Identity4 returns the 4x4 identity matrix.
func Identity4() M4 {
	return M4{{1, 0, 0, 0}, {0, 1, 0, 0}, {0, 0, 1, 0}, {0, 0, 0, 1}}
}

// Mul4 returns l * r (l applied after r, column-major convention).
func Mul4(l, r M4) M4 {
	var m M4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			var s float32
			for k := 0; k < 4; k++ {
				s += l[k][j] * r[i][k]
			}
			m[i][j] = s
		}
	}
	return m
}

// Translate4 returns a translation matrix.
func Translate4(x, y, z float32) M4 {
	m := Identity4()
	m[3] = V4{x, y, z, 1}
	return m
}

// Scale4 returns a scaling matrix.
func Scale4(x, y, z float32) M4 {
	m := Identity4()
	m[0][0], m[1][1], m[2][2] = x, y, z
	return m
}

// Rotate4 returns a rotation matrix around an arbitrary axis (radians),
// using Rodrigues' formula — mirrors rlRotatef's construction.
func Rotate4(angle float32, axis V3) M4 {
	axis = axis.Normalize()
	s, c := float32(math.Sin(float64(angle))), float32(math.Cos(float64(angle)))
	t := 1 - c
	x, y, z := axis[0], axis[1], axis[2]

	m := Identity4()
	m[0][0] = t*x*x + c
	m[0][1] = t*x*y + s*z
	m[0][2] = t*x*z - s*y
	m[1][0] = t*x*y - s*z
	m[1][1] = t*y*y + c
	m[1][2] = t*y*z + s*x
	m[2][0] = t*x*z + s*y
	m[2][1] = t*y*z - s*x
	m[2][2] = t*z*z + c
	return m
}

// Frustum builds a perspective-projection matrix from six clip planes.
func Frustum(left, right, bottom, top, near, far float32) M4 {
	var m M4
	rl, tb, fn := right-left, top-bottom, far-near
	m[0][0] = (2 * near) / rl
	m[1][1] = (2 * near) / tb
	m[2][0] = (right + left) / rl
	m[2][1] = (top + bottom) / tb
	m[2][2] = -(far + near) / fn
	m[2][3] = -1
	m[3][2] = -(2 * far * near) / fn
	return m
}

// Perspective builds a perspective-projection matrix from a vertical FOV
// (radians) and an aspect ratio.
func Perspective(fovy, aspect, near, far float32) M4 {
	top := near * float32(math.Tan(float64(fovy)/2))
	right := top * aspect
	return Frustum(-right, right, -top, top, near, far)
}

// Ortho builds an orthographic-projection matrix from six clip planes.
func Ortho(left, right, bottom, top, near, far float32) M4 {
	m := Identity4()
	rl, tb, fn := right-left, top-bottom, far-near
	m[0][0] = 2 / rl
	m[1][1] = 2 / tb
	m[2][2] = -2 / fn
	m[3][0] = -(right + left) / rl
	m[3][1] = -(top + bottom) / tb
	m[3][2] = -(far + near) / fn
	return m
}

// LookAt builds a view matrix from an eye position, a target and an up
// vector.
func LookAt(eye, target, up V3) M4 {
	f := target.Sub(eye).Normalize()
	s := f.Cross(up).Normalize()
	u := s.Cross(f)

	m := Identity4()
	m[0] = V4{s[0], u[0], -f[0], 0}
	m[1] = V4{s[1], u[1], -f[1], 0}
	m[2] = V4{s[2], u[2], -f[2], 0}
	m[3] = V4{-s.Dot(eye), -u.Dot(eye), f.Dot(eye), 1}
	return m
}

// Flatten returns m in the column-major 16-float layout GL uniform upload
// expects (column c, row r at index c*4+r).
func (m M4) Flatten() [16]float32 {
	var out [16]float32
	for c := 0; c < 4; c++ {
		for r := 0; r < 4; r++ {
			out[c*4+r] = m[c][r]
		}
	}
	return out
}

// Invert returns the inverse of an affine (rotation/scale/translation) 4x4
// matrix, computed via Gauss-Jordan elimination. Used by the mesh drawer to turn
// a bind-pose transform into the inverse bind matrix for skinning.
func (m M4) Invert() M4 {
	a := m
	var out M4

	// Generic 4x4 inverse via Gauss-Jordan elimination on an augmented
	// [M | I] matrix — simple and adequate at the matrix counts this
	// renderer deals with (per-bone inverse bind, once at load time).
	var aug [4][8]float64
	for c := 0; c < 4; c++ {
		for r := 0; r < 4; r++ {
			aug[r][c] = float64(a[c][r])
		}
		aug[c][4+c] = 1
	}
	for col := 0; col < 4; col++ {
		pivot := col
		for r := col + 1; r < 4; r++ {
			if math.Abs(aug[r][col]) > math.Abs(aug[pivot][col]) {
				pivot = r
			}
		}
		aug[col], aug[pivot] = aug[pivot], aug[col]
		pv := aug[col][col]
		if pv == 0 {
			return Identity4()
		}
		for k := 0; k < 8; k++ {
			aug[col][k] /= pv
		}
		for r := 0; r < 4; r++ {
			if r == col {
				continue
			}
			f := aug[r][col]
			for k := 0; k < 8; k++ {
				aug[r][k] -= f * aug[col][k]
			}
		}
	}
	for c := 0; c < 4; c++ {
		for r := 0; r < 4; r++ {
			out[c][r] = float32(aug[r][4+c])
		}
	}
	return out
}

// MulPoint4 transforms a homogeneous point by m.
func MulPoint4(m M4, p V3) V3 {
	x := m[0][0]*p[0] + m[1][0]*p[1] + m[2][0]*p[2] + m[3][0]
	y := m[0][1]*p[0] + m[1][1]*p[1] + m[2][1]*p[2] + m[3][1]
	z := m[0][2]*p[0] + m[1][2]*p[1] + m[2][2]*p[2] + m[3][2]
	return V3{x, y, z}
}

// Q is a quaternion (x, y, z, w), used for skeletal-animation blending.
type Q struct{ X, Y, Z, W float32 }

// QIdentity returns the identity quaternion.
func QIdentity() Q { return Q{0, 0, 0, 1} }

// Mul returns q*r (apply r, then q).
func (q Q) Mul(r Q) Q {
	return Q{
		X: q.W*r.X + q.X*r.W + q.Y*r.Z - q.Z*r.Y,
		Y: q.W*r.Y - q.X*r.Z + q.Y*r.W + q.Z*r.X,
		Z: q.W*r.Z + q.X*r.Y - q.Y*r.X + q.Z*r.W,
		W: q.W*r.W - q.X*r.X - q.Y*r.Y - q.Z*r.Z,
	}
}

// Conjugate returns the conjugate of q (equals the inverse for unit
// quaternions, which bone rotations always are).
func (q Q) Conjugate() Q { return Q{-q.X, -q.Y, -q.Z, q.W} }

// RotateVector rotates v by the unit quaternion q: v' = q * v * q^-1.
func (q Q) RotateVector(v V3) V3 {
	u := V3{q.X, q.Y, q.Z}
	uvCross := u.Cross(v)
	t := uvCross.Scale(2)
	return v.Add(t.Scale(q.W)).Add(u.Cross(t))
}

// Lerp performs linear interpolation between a and b, clamped to [0,1].
func Lerp(a, b, t float32) float32 {
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return a + (b-a)*t
}

// LerpV3 performs component-wise linear interpolation.
func LerpV3(a, b V3, t float32) V3 {
	return V3{Lerp(a[0], b[0], t), Lerp(a[1], b[1], t), Lerp(a[2], b[2], t)}
}
