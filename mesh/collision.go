package mesh

import (
	"math"

	"github.com/rfcore/rf/internal/linear"
)

// BoundingBox is an axis-aligned box in the space its Min/Max were
// computed in.
type BoundingBox struct{ Min, Max Vec3 }

// Ray is a parametric ray: points are Position + t*Direction for t >= 0.
type Ray struct {
	Position  Vec3
	Direction Vec3
}

// RayHit is the hit record every collision primitive returns: whether the
// ray hit, the distance along it, the world-space hit point and the
// surface normal there.
type RayHit struct {
	Hit      bool
	Distance float32
	Position Vec3
	Normal   Vec3
}

// RayBox intersects r against b using the slab method.
func RayBox(r Ray, b BoundingBox) RayHit {
	inv := Vec3{safeInv(r.Direction.X), safeInv(r.Direction.Y), safeInv(r.Direction.Z)}

	t1 := (b.Min.X - r.Position.X) * inv.X
	t2 := (b.Max.X - r.Position.X) * inv.X
	tmin, tmax := minmax(t1, t2)

	t1, t2 = (b.Min.Y-r.Position.Y)*inv.Y, (b.Max.Y-r.Position.Y)*inv.Y
	ty1, ty2 := minmax(t1, t2)
	tmin, tmax = maxf(tmin, ty1), minf(tmax, ty2)

	t1, t2 = (b.Min.Z-r.Position.Z)*inv.Z, (b.Max.Z-r.Position.Z)*inv.Z
	tz1, tz2 := minmax(t1, t2)
	tmin, tmax = maxf(tmin, tz1), minf(tmax, tz2)

	if tmax < 0 || tmin > tmax {
		return RayHit{}
	}
	t := tmin
	if t < 0 {
		t = tmax
	}
	if t < 0 {
		return RayHit{}
	}

	pos := r.Position.Add(r.Direction.Scale(t))
	return RayHit{Hit: true, Distance: t, Position: pos, Normal: boxNormal(pos, b)}
}

func boxNormal(p Vec3, b BoundingBox) Vec3 {
	const eps = 1e-4
	switch {
	case absf(p.X-b.Min.X) < eps:
		return Vec3{-1, 0, 0}
	case absf(p.X-b.Max.X) < eps:
		return Vec3{1, 0, 0}
	case absf(p.Y-b.Min.Y) < eps:
		return Vec3{0, -1, 0}
	case absf(p.Y-b.Max.Y) < eps:
		return Vec3{0, 1, 0}
	case absf(p.Z-b.Min.Z) < eps:
		return Vec3{0, 0, -1}
	default:
		return Vec3{0, 0, 1}
	}
}

// RaySphere intersects r against a sphere of the given center and radius.
func RaySphere(r Ray, center Vec3, radius float32) RayHit {
	oc := r.Position.Sub(center)
	a := r.Direction.Dot(r.Direction)
	b := 2 * oc.Dot(r.Direction)
	c := oc.Dot(oc) - radius*radius
	disc := b*b - 4*a*c
	if disc < 0 {
		return RayHit{}
	}
	sq := float32(math.Sqrt(float64(disc)))
	t := (-b - sq) / (2 * a)
	if t < 0 {
		t = (-b + sq) / (2 * a)
	}
	if t < 0 {
		return RayHit{}
	}
	pos := r.Position.Add(r.Direction.Scale(t))
	normal := pos.Sub(center).Normalize()
	return RayHit{Hit: true, Distance: t, Position: pos, Normal: normal}
}

// RayTriangle intersects r against the triangle (p0, p1, p2) using the
// Möller-Trumbore algorithm.
func RayTriangle(r Ray, p0, p1, p2 Vec3) RayHit {
	const epsilon = 1e-7
	edge1 := p1.Sub(p0)
	edge2 := p2.Sub(p0)
	h := r.Direction.Cross(edge2)
	a := edge1.Dot(h)
	if absf(a) < epsilon {
		return RayHit{}
	}
	f := 1 / a
	s := r.Position.Sub(p0)
	u := f * s.Dot(h)
	if u < 0 || u > 1 {
		return RayHit{}
	}
	q := s.Cross(edge1)
	v := f * r.Direction.Dot(q)
	if v < 0 || u+v > 1 {
		return RayHit{}
	}
	t := f * edge2.Dot(q)
	if t < epsilon {
		return RayHit{}
	}
	pos := r.Position.Add(r.Direction.Scale(t))
	normal := edge1.Cross(edge2).Normalize()
	if normal.Dot(r.Direction) > 0 {
		normal = normal.Scale(-1)
	}
	return RayHit{Hit: true, Distance: t, Position: pos, Normal: normal}
}

// RayGroundPlane intersects r against the plane y = height.
func RayGroundPlane(r Ray, height float32) RayHit {
	if absf(r.Direction.Y) < 1e-7 {
		return RayHit{}
	}
	t := (height - r.Position.Y) / r.Direction.Y
	if t < 0 {
		return RayHit{}
	}
	pos := r.Position.Add(r.Direction.Scale(t))
	normal := Vec3{0, 1, 0}
	if r.Direction.Y > 0 {
		normal = Vec3{0, -1, 0}
	}
	return RayHit{Hit: true, Distance: t, Position: pos, Normal: normal}
}

// RayModel iterates every triangle of m in world space (after applying
// transform) and returns the closest hit. No acceleration structure is
// used: this is O(triangle count) per call.
func RayModel(r Ray, m *Mesh, transform linear.M4) RayHit {
	var best RayHit
	tri := func(a, b, c Vec3) {
		a = fromLinear(linear.MulPoint4(transform, a.toLinear()))
		b = fromLinear(linear.MulPoint4(transform, b.toLinear()))
		c = fromLinear(linear.MulPoint4(transform, c.toLinear()))
		hit := RayTriangle(r, a, b, c)
		if hit.Hit && (!best.Hit || hit.Distance < best.Distance) {
			best = hit
		}
	}

	vertexAt := func(i int) Vec3 {
		return Vec3{m.Positions[i*3], m.Positions[i*3+1], m.Positions[i*3+2]}
	}

	if len(m.Indices) > 0 {
		for i := 0; i+2 < len(m.Indices); i += 3 {
			tri(vertexAt(int(m.Indices[i])), vertexAt(int(m.Indices[i+1])), vertexAt(int(m.Indices[i+2])))
		}
	} else {
		for i := 0; i+2 < m.VertexCount; i += 3 {
			tri(vertexAt(i), vertexAt(i+1), vertexAt(i+2))
		}
	}
	return best
}

func safeInv(v float32) float32 {
	if v == 0 {
		return float32(math.Inf(1))
	}
	return 1 / v
}

func minmax(a, b float32) (float32, float32) {
	if a > b {
		return b, a
	}
	return a, b
}

func minf(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

func absf(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
