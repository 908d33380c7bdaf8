// Package batch implements the core rendering loop: the matrix stack and
// the immediate-mode vertex batch. Context bootstrap and the scoped-draw
// helpers (2D/3D cameras, render targets, scissor, shader and blend
// overrides) built on them live in the root rf package.
package batch

import "github.com/rfcore/rf/internal/linear"

// MatrixMode selects which of the two root matrices subsequent stack
// operations act on.
type MatrixMode int

const (
	ModeProjection MatrixMode = iota
	ModeModelview
)

// stackCapacity bounds the matrix stack depth; overflow is fatal.
const stackCapacity = 32

// MatrixStack holds the projection/modelview roots and the push/pop
// stack, plus the scratch transform matrix used while a modelview push
// is active.
type MatrixStack struct {
	projection linear.M4
	modelview  linear.M4
	transform  linear.M4

	mode MatrixMode

	stack        [stackCapacity]linear.M4
	stackCounter int

	useTransformMatrix bool
}

// NewMatrixStack returns a stack with both roots set to identity.
func NewMatrixStack() *MatrixStack {
	return &MatrixStack{
		projection: linear.Identity4(),
		modelview:  linear.Identity4(),
		transform:  linear.Identity4(),
		mode:       ModeModelview,
	}
}

// SetMode selects the current root. Unknown modes are silently ignored.
func (s *MatrixStack) SetMode(mode MatrixMode) {
	if mode != ModeProjection && mode != ModeModelview {
		return
	}
	s.mode = mode
}

// UseTransformMatrix reports whether vertex emission should be
// pre-multiplied by the scratch transform (set while a modelview push is
// active).
func (s *MatrixStack) UseTransformMatrix() bool { return s.useTransformMatrix }

// Transform returns the scratch transform matrix.
func (s *MatrixStack) Transform() linear.M4 { return s.transform }

// Projection returns the projection root.
func (s *MatrixStack) Projection() linear.M4 { return s.projection }

// Modelview returns the modelview root.
func (s *MatrixStack) Modelview() linear.M4 { return s.modelview }

// SetProjection overwrites the projection root directly — used by the
// scoped-draw helpers (Begin3D/End3D, render-to-texture) that install
// and restore a whole matrix rather than accumulate onto it.
func (s *MatrixStack) SetProjection(m linear.M4) { s.projection = m }

// SetModelview overwrites the modelview root directly, for the same
// reason as SetProjection.
func (s *MatrixStack) SetModelview(m linear.M4) { s.modelview = m }

// current returns a pointer to whichever matrix subsequent ops apply to.
func (s *MatrixStack) current() *linear.M4 {
	if s.mode == ModeModelview && s.useTransformMatrix {
		return &s.transform
	}
	if s.mode == ModeProjection {
		return &s.projection
	}
	return &s.modelview
}

// Push captures the current root onto the stack. If the current root is
// modelview, subsequent edits redirect to the scratch transform matrix
// until the matching Pop.
func (s *MatrixStack) Push() {
	if s.stackCounter >= stackCapacity {
		panic("batch: matrix stack overflow")
	}
	s.stack[s.stackCounter] = *s.current()
	s.stackCounter++
	if s.mode == ModeModelview {
		s.transform = linear.Identity4()
		s.useTransformMatrix = true
	}
}

// Pop restores the top of the stack into the current matrix — the same
// redirect target Push captured from, so a nested modelview push restores
// the scratch transform and only the outermost pop writes the modelview
// root back (clearing the redirect first, since that outermost entry was
// captured before the redirect began).
func (s *MatrixStack) Pop() {
	if s.stackCounter == 0 {
		return
	}
	s.stackCounter--
	if s.stackCounter == 0 && s.mode == ModeModelview {
		s.useTransformMatrix = false
	}
	*s.current() = s.stack[s.stackCounter]
}

// LoadIdentity resets the current matrix to identity.
func (s *MatrixStack) LoadIdentity() { *s.current() = linear.Identity4() }

// Translate left-multiplies the current matrix by a translation.
func (s *MatrixStack) Translate(x, y, z float32) {
	cur := s.current()
	*cur = linear.Mul4(linear.Translate4(x, y, z), *cur)
}

// Rotate left-multiplies the current matrix by a rotation around axis
// (radians).
func (s *MatrixStack) Rotate(angle float32, axisX, axisY, axisZ float32) {
	cur := s.current()
	*cur = linear.Mul4(linear.Rotate4(angle, linear.V3{axisX, axisY, axisZ}), *cur)
}

// Scale left-multiplies the current matrix by a non-uniform scale.
func (s *MatrixStack) Scale(x, y, z float32) {
	cur := s.current()
	*cur = linear.Mul4(linear.Scale4(x, y, z), *cur)
}

// Multiply left-multiplies the current matrix by an arbitrary matrix:
// M <- m * M.
func (s *MatrixStack) Multiply(m linear.M4) {
	cur := s.current()
	*cur = linear.Mul4(m, *cur)
}

// Frustum replaces the current matrix with a perspective frustum.
func (s *MatrixStack) Frustum(left, right, bottom, top, near, far float32) {
	*s.current() = linear.Frustum(left, right, bottom, top, near, far)
}

// Ortho replaces the current matrix with an orthographic projection.
func (s *MatrixStack) Ortho(left, right, bottom, top, near, far float32) {
	*s.current() = linear.Ortho(left, right, bottom, top, near, far)
}
