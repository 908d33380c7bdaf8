package mesh

import "github.com/rfcore/rf/internal/linear"

// Vec3 is the collision/model API's point-and-direction type — a named
// struct (X, Y, Z) matching how callers address components, as opposed to
// package linear's array-indexed V3 used internally by the matrix stack.
type Vec3 struct{ X, Y, Z float32 }

func (v Vec3) toLinear() linear.V3 { return linear.V3{v.X, v.Y, v.Z} }

func fromLinear(v linear.V3) Vec3 { return Vec3{v[0], v[1], v[2]} }

func (v Vec3) Add(w Vec3) Vec3 { return fromLinear(v.toLinear().Add(w.toLinear())) }
func (v Vec3) Sub(w Vec3) Vec3 { return fromLinear(v.toLinear().Sub(w.toLinear())) }
func (v Vec3) Scale(s float32) Vec3 { return fromLinear(v.toLinear().Scale(s)) }
func (v Vec3) Dot(w Vec3) float32   { return v.toLinear().Dot(w.toLinear()) }
func (v Vec3) Cross(w Vec3) Vec3    { return fromLinear(v.toLinear().Cross(w.toLinear())) }
func (v Vec3) Len() float32         { return v.toLinear().Len() }
func (v Vec3) Normalize() Vec3      { return fromLinear(v.toLinear().Normalize()) }
