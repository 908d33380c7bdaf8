// Package rf implements a portable 2D/3D immediate-mode batch renderer: an
// application streams draw intent (shapes, sprites, text, meshes) through a
// Context, and the Context accumulates it into a bounded sequence of GPU
// draw calls via the packages below.
//
// # Overview
//
//	dev, _ := backend.Open("") // picks the highest-priority registered backend
//	ctx := rf.NewContext(dev, 800, 450)
//	defer ctx.Shutdown()
//
//	ctx.Begin2D(rf.Camera2D{Zoom: 1})
//	ctx.DrawRectangle(100, 100, 200, 80, pixel.Red)
//	ctx.End2D()
//
// # Architecture
//
// The renderer is layered leaves-first:
//
//   - backend: the GPU function-pointer table (Device interface), with a
//     real GL 3.3 implementation (backend/gl33) and an in-memory one for
//     tests (backend/mock).
//   - shader: GPU program compilation and the fixed predefined uniform/
//     attribute location table.
//   - texture: 2D/cubemap/render-target upload and parameter management.
//   - pixel: the CPU-side image/pixel-format engine (conversion, resize,
//     dithering, compositing, generators) that feeds texture uploads.
//   - font: TTF atlas packing, glyph metrics and word-wrapped text layout.
//   - batch: the matrix stack and the immediate-mode vertex batch that
//     flushes accumulated draw calls.
//   - mesh: vertex-buffer upload, material-driven drawing, skeletal
//     animation and collision primitives — bypasses the batch renderer.
//
// Context (this package) wires all of the above together: it owns the
// bootstrap sequence, the framebuffer/viewport policy
//, and the scoped-draw helpers (2D/3D cameras, render targets,
// scissor, shader and blend overrides).
//
// # Concurrency
//
// The renderer is single-threaded cooperative with respect to the GPU
// context: every Context method must be called from the goroutine that
// owns the GPU context the backend.Device was created against. No internal
// goroutines are spawned and no operation blocks on I/O.
package rf
