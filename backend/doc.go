// Package backend provides the function-pointer-table abstraction over
// the GPU that the rest of the renderer drives through exclusively.
//
// Two profiles are supported — OpenGL 3.3 core and OpenGL ES 2/3 — and
// they diverge in small but real ways (ClearDepth vs ClearDepthf,
// GetTexImage only on desktop, no GL_QUADS on ES). Rather than scatter
// build tags through the batch renderer, texture manager and shader
// manager, every one of those divergences is pushed behind the Device
// interface and resolved once, at backend-selection time.
//
// # Selection
//
// Concrete backends register themselves via init() functions:
//
//	import _ "github.com/rfcore/rf/backend/gl33"
//
//	dev, err := backend.Open("gl33")
//
// Open picks the best registered backend when name is empty.
package backend
