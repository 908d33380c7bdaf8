package rf

import "github.com/rfcore/rf/internal/linear"

// Rectangle is an axis-aligned rectangle in the unit the caller is working
// in (screen pixels for 2D draws, world units for 3D).
type Rectangle struct {
	X, Y, Width, Height float32
}

// CameraType selects how Camera3D.Fovy is interpreted.
type CameraType int

const (
	// CameraPerspective treats Fovy as a vertical field of view in degrees.
	CameraPerspective CameraType = iota
	// CameraOrthographic treats Fovy as the orthographic projection width.
	CameraOrthographic
)

// Camera3D describes a 3D viewpoint.
type Camera3D struct {
	Position linear.V3
	Target   linear.V3
	Up       linear.V3
	Fovy     float32
	Type     CameraType
}

// Camera2D describes a 2D viewpoint. A unit Zoom with zero Rotation
// and Offset/Target produces the identity transform.
type Camera2D struct {
	Offset   linear.V3 // screen-space pixel offset applied after zoom/rotation
	Target   linear.V3 // world-space point mapped to Offset
	Rotation float32   // degrees
	Zoom     float32
}

// matrix builds the 2D camera transform Begin2D installs:
// translate-to-target, rotate, scale-by-zoom, translate-by-offset.
func (c Camera2D) matrix() linear.M4 {
	zoom := c.Zoom
	if zoom == 0 {
		zoom = 1
	}
	m := linear.Translate4(-c.Target[0], -c.Target[1], -c.Target[2])
	m = linear.Mul4(linear.Rotate4(degToRad(c.Rotation), linear.V3{0, 0, 1}), m)
	m = linear.Mul4(linear.Scale4(zoom, zoom, 1), m)
	m = linear.Mul4(linear.Translate4(c.Offset[0], c.Offset[1], c.Offset[2]), m)
	return m
}

func degToRad(d float32) float32 { return d * (3.14159265358979323846 / 180) }
