package mesh

import (
	"math"
	"testing"

	"github.com/rfcore/rf/internal/linear"
)

func almostEqual(a, b float32) bool { return absf(a-b) < 1e-4 }

func TestRayBoxHitsNearFace(t *testing.T) {
	r := Ray{Position: Vec3{X: -5}, Direction: Vec3{X: 1}}
	box := BoundingBox{Min: Vec3{X: -1, Y: -1, Z: -1}, Max: Vec3{X: 1, Y: 1, Z: 1}}

	hit := RayBox(r, box)
	if !hit.Hit || !almostEqual(hit.Distance, 4) {
		t.Fatalf("hit = %+v", hit)
	}
	if hit.Normal != (Vec3{X: -1}) {
		t.Fatalf("normal = %+v", hit.Normal)
	}
}

func TestRayBoxMisses(t *testing.T) {
	r := Ray{Position: Vec3{X: -5, Y: 5}, Direction: Vec3{X: 1}}
	box := BoundingBox{Min: Vec3{X: -1, Y: -1, Z: -1}, Max: Vec3{X: 1, Y: 1, Z: 1}}
	if RayBox(r, box).Hit {
		t.Fatal("expected a miss")
	}
}

func TestRaySphereHitsNearPoint(t *testing.T) {
	r := Ray{Position: Vec3{X: -5}, Direction: Vec3{X: 1}}
	hit := RaySphere(r, Vec3{}, 1)
	if !hit.Hit || !almostEqual(hit.Distance, 4) {
		t.Fatalf("hit = %+v", hit)
	}
}

func TestRayTriangleHitsInterior(t *testing.T) {
	r := Ray{Position: Vec3{X: 0.25, Y: 0.25, Z: -1}, Direction: Vec3{Z: 1}}
	p0 := Vec3{X: 0, Y: 0}
	p1 := Vec3{X: 1, Y: 0}
	p2 := Vec3{X: 0, Y: 1}

	hit := RayTriangle(r, p0, p1, p2)
	if !hit.Hit || !almostEqual(hit.Distance, 1) {
		t.Fatalf("hit = %+v", hit)
	}
}

// TestRayTriangleNormalOpposesRay pins the hit record's contract that the
// returned normal faces back along the ray, regardless of winding.
func TestRayTriangleNormalOpposesRay(t *testing.T) {
	r := Ray{Position: Vec3{Z: -1}, Direction: Vec3{Z: 1}}
	p0 := Vec3{X: -1, Y: -1}
	p1 := Vec3{X: 1, Y: -1}
	p2 := Vec3{X: 0, Y: 1}

	hit := RayTriangle(r, p0, p1, p2)
	if !hit.Hit || !almostEqual(hit.Distance, 1) {
		t.Fatalf("hit = %+v", hit)
	}
	if !almostEqual(hit.Position.X, 0) || !almostEqual(hit.Position.Y, 0) || !almostEqual(hit.Position.Z, 0) {
		t.Fatalf("position = %+v, want origin", hit.Position)
	}
	if !almostEqual(hit.Normal.Z, -1) {
		t.Fatalf("normal = %+v, want (0,0,-1)", hit.Normal)
	}
	// Same triangle, opposite winding: the normal must still oppose the ray.
	flipped := RayTriangle(r, p0, p2, p1)
	if !flipped.Hit || !almostEqual(flipped.Normal.Z, -1) {
		t.Fatalf("flipped winding normal = %+v, want (0,0,-1)", flipped.Normal)
	}
}

func TestRayTriangleMissesOutsideEdges(t *testing.T) {
	r := Ray{Position: Vec3{X: 2, Y: 2, Z: -1}, Direction: Vec3{Z: 1}}
	p0 := Vec3{X: 0, Y: 0}
	p1 := Vec3{X: 1, Y: 0}
	p2 := Vec3{X: 0, Y: 1}
	if RayTriangle(r, p0, p1, p2).Hit {
		t.Fatal("expected a miss")
	}
}

func TestRayGroundPlane(t *testing.T) {
	r := Ray{Position: Vec3{Y: 5}, Direction: Vec3{Y: -1}}
	hit := RayGroundPlane(r, 0)
	if !hit.Hit || !almostEqual(hit.Distance, 5) {
		t.Fatalf("hit = %+v", hit)
	}
}

func TestRayModelFindsClosestTriangle(t *testing.T) {
	m := &Mesh{
		VertexCount: 4,
		Positions:   []float32{-1, -1, 0, 1, -1, 0, 1, 1, 0, -1, 1, 0},
		Indices:     []uint32{0, 1, 2, 0, 2, 3},
	}
	r := Ray{Position: Vec3{X: 0.3, Y: -0.3, Z: -10}, Direction: Vec3{Z: 1}}
	hit := RayModel(r, m, linear.Identity4())
	if !hit.Hit || !almostEqual(hit.Distance, 10) {
		t.Fatalf("hit = %+v", hit)
	}
}

func TestRayModelMissesOffMesh(t *testing.T) {
	m := &Mesh{
		VertexCount: 4,
		Positions:   []float32{-1, -1, 0, 1, -1, 0, 1, 1, 0, -1, 1, 0},
		Indices:     []uint32{0, 1, 2, 0, 2, 3},
	}
	r := Ray{Position: Vec3{X: 50, Z: -10}, Direction: Vec3{Z: 1}}
	if RayModel(r, m, linear.Identity4()).Hit {
		t.Fatal("expected a miss")
	}
}

func TestSafeInvHandlesZero(t *testing.T) {
	if !math.IsInf(float64(safeInv(0)), 1) {
		t.Fatal("expected +Inf for zero direction component")
	}
}
