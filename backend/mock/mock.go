// Package mock provides an in-memory backend.Device so the batch renderer,
// texture manager and mesh drawer can be exercised by go test without a
// real GPU context.
package mock

import "github.com/rfcore/rf/backend"

func init() {
	backend.Register("mock", func() (backend.Device, error) { return New(), nil })
}

// Call records one invocation against the mock Device, for assertions in
// tests that care about call order (e.g. "flush issued exactly N draws").
type Call struct {
	Name string
	Args []any
}

// Device is a bookkeeping-only backend.Device: it allocates monotonically
// increasing handles and records every call, but never touches a real GPU.
type Device struct {
	Calls []Call

	nextHandle backend.Handle
	programs   map[backend.Handle]bool
	drawCalls  []DrawCall

	viewport [4]int
	clearCol [4]float32

	// buffers holds the last full contents written to each buffer handle
	// via BufferData/BufferSubData, keyed by handle — tests that need to
	// assert on actual vertex/color/texcoord bytes (not just call counts)
	// read it back through Buffer.
	buffers map[backend.Handle][]byte
}

// DrawCall is a recorded DrawArrays/DrawElements invocation.
type DrawCall struct {
	Mode    backend.DrawMode
	First   int
	Count   int
	Indexed bool
}

// New creates a ready-to-use mock Device.
func New() *Device {
	return &Device{programs: make(map[backend.Handle]bool), buffers: make(map[backend.Handle][]byte)}
}

// Buffer returns the last full contents written to handle h via
// BufferData/BufferSubData, or nil if nothing was ever written.
func (d *Device) Buffer(h backend.Handle) []byte { return d.buffers[h] }

func (d *Device) record(name string, args ...any) {
	d.Calls = append(d.Calls, Call{Name: name, Args: args})
}

func (d *Device) alloc() backend.Handle {
	d.nextHandle++
	return d.nextHandle
}

func (d *Device) Profile() backend.Profile { return backend.ProfileGL33 }
func (d *Device) Extensions() backend.Extensions {
	return backend.Extensions{VAO: true, TexNPOT: true, TexFloat: true, TexDepth: true}
}

func (d *Device) GenBuffer() backend.Handle { d.record("GenBuffer"); return d.alloc() }
func (d *Device) DeleteBuffer(h backend.Handle) { d.record("DeleteBuffer", h) }
func (d *Device) BindArrayBuffer(h backend.Handle) { d.record("BindArrayBuffer", h) }
func (d *Device) BindElementBuffer(h backend.Handle) { d.record("BindElementBuffer", h) }
func (d *Device) BufferData(h backend.Handle, data []byte, dynamic bool) {
	d.record("BufferData", h, len(data), dynamic)
	buf := make([]byte, len(data))
	copy(buf, data)
	d.buffers[h] = buf
}
func (d *Device) BufferSubData(h backend.Handle, offset int, data []byte) {
	d.record("BufferSubData", h, offset, len(data))
	buf := d.buffers[h]
	if end := offset + len(data); end > len(buf) {
		grown := make([]byte, end)
		copy(grown, buf)
		buf = grown
	}
	copy(buf[offset:], data)
	d.buffers[h] = buf
}

func (d *Device) GenVertexArray() backend.Handle { d.record("GenVertexArray"); return d.alloc() }
func (d *Device) DeleteVertexArray(h backend.Handle) { d.record("DeleteVertexArray", h) }
func (d *Device) BindVertexArray(h backend.Handle) { d.record("BindVertexArray", h) }
func (d *Device) VertexAttribPointer(index uint32, size int, typ backend.AttribType, stride, offset int, normalized bool) {
	d.record("VertexAttribPointer", index, size, typ, stride, offset, normalized)
}
func (d *Device) EnableVertexAttrib(index uint32) { d.record("EnableVertexAttrib", index) }
func (d *Device) DisableVertexAttrib(index uint32) { d.record("DisableVertexAttrib", index) }

func (d *Device) GenTexture() backend.Handle { d.record("GenTexture"); return d.alloc() }
func (d *Device) DeleteTexture(h backend.Handle) { d.record("DeleteTexture", h) }
func (d *Device) BindTexture2D(unit int, h backend.Handle) { d.record("BindTexture2D", unit, h) }
func (d *Device) BindTextureCube(unit int, h backend.Handle) { d.record("BindTextureCube", unit, h) }
func (d *Device) TexImage2D(level int, p backend.TextureParams, data []byte) {
	d.record("TexImage2D", level, p.Width, p.Height, len(data))
}
func (d *Device) CompressedTexImage2D(level int, p backend.TextureParams, data []byte) {
	d.record("CompressedTexImage2D", level, p.Width, p.Height, len(data))
}
func (d *Device) TexParameterWrap(repeatS, repeatT, mirror bool) {
	d.record("TexParameterWrap", repeatS, repeatT, mirror)
}
func (d *Device) TexParameterFilter(minLinear, magLinear, mipmap bool) {
	d.record("TexParameterFilter", minLinear, magLinear, mipmap)
}
func (d *Device) TexParameterAnisotropy(level float32) { d.record("TexParameterAnisotropy", level) }
func (d *Device) GenerateMipmap()                      { d.record("GenerateMipmap") }
func (d *Device) ReadTexturePixels(h backend.Handle, w, hh int) []byte {
	d.record("ReadTexturePixels", h, w, hh)
	return make([]byte, w*hh*4)
}

func (d *Device) GenFramebuffer() backend.Handle { d.record("GenFramebuffer"); return d.alloc() }
func (d *Device) DeleteFramebuffer(h backend.Handle) { d.record("DeleteFramebuffer", h) }
func (d *Device) BindFramebuffer(h backend.Handle) { d.record("BindFramebuffer", h) }
func (d *Device) FramebufferTexture2D(attachment uint32, tex backend.Handle) {
	d.record("FramebufferTexture2D", attachment, tex)
}
func (d *Device) GenRenderbuffer() backend.Handle { d.record("GenRenderbuffer"); return d.alloc() }
func (d *Device) DeleteRenderbuffer(h backend.Handle) { d.record("DeleteRenderbuffer", h) }
func (d *Device) RenderbufferStorageDepth(w, h, depthBits int) backend.Handle {
	d.record("RenderbufferStorageDepth", w, h, depthBits)
	return d.alloc()
}
func (d *Device) FramebufferRenderbuffer(attachment uint32, rb backend.Handle) {
	d.record("FramebufferRenderbuffer", attachment, rb)
}
func (d *Device) CheckFramebufferComplete() (bool, string) {
	d.record("CheckFramebufferComplete")
	return true, ""
}

func (d *Device) CompileShader(stage backend.ShaderStage, source string) (backend.Handle, error) {
	d.record("CompileShader", stage, len(source))
	return d.alloc(), nil
}
func (d *Device) LinkProgram(vs, fs backend.Handle) (backend.Handle, error) {
	d.record("LinkProgram", vs, fs)
	h := d.alloc()
	d.programs[h] = true
	return h, nil
}
func (d *Device) DeleteShader(h backend.Handle)  { d.record("DeleteShader", h) }
func (d *Device) DeleteProgram(h backend.Handle) { d.record("DeleteProgram", h); delete(d.programs, h) }
func (d *Device) UseProgram(h backend.Handle)    { d.record("UseProgram", h) }
func (d *Device) UniformLocation(prog backend.Handle, name string) int32 {
	d.record("UniformLocation", prog, name)
	return int32(len(name) % 32)
}
func (d *Device) AttribLocation(prog backend.Handle, name string) int32 {
	d.record("AttribLocation", prog, name)
	return int32(len(name) % 16)
}
func (d *Device) SetUniformMat4(loc int32, m [16]float32) { d.record("SetUniformMat4", loc) }
func (d *Device) SetUniformVec4(loc int32, v [4]float32)  { d.record("SetUniformVec4", loc, v) }
func (d *Device) SetUniformInt(loc int32, v int32)        { d.record("SetUniformInt", loc, v) }

func (d *Device) SetViewport(x, y, w, h int) { d.viewport = [4]int{x, y, w, h}; d.record("SetViewport", x, y, w, h) }
func (d *Device) SetScissor(enabled bool, x, y, w, h int) { d.record("SetScissor", enabled, x, y, w, h) }
func (d *Device) SetDepthTest(enabled bool)               { d.record("SetDepthTest", enabled) }
func (d *Device) SetBlend(enabled bool, mode backend.BlendMode) { d.record("SetBlend", enabled, mode) }
func (d *Device) SetCullFace(enabled, ccw bool)                 { d.record("SetCullFace", enabled, ccw) }
func (d *Device) ClearColor(r, g, b, a float32)                 { d.clearCol = [4]float32{r, g, b, a} }
func (d *Device) Clear(color, depth bool)                       { d.record("Clear", color, depth) }

func (d *Device) DrawArrays(mode backend.DrawMode, first, count int) {
	d.record("DrawArrays", mode, first, count)
	d.drawCalls = append(d.drawCalls, DrawCall{Mode: mode, First: first, Count: count})
}
func (d *Device) DrawElements(mode backend.DrawMode, count int, indexType backend.IndexType, offset int) {
	d.record("DrawElements", mode, count, indexType, offset)
	d.drawCalls = append(d.drawCalls, DrawCall{Mode: mode, First: offset, Count: count, Indexed: true})
}

// DrawCalls returns every DrawArrays/DrawElements call recorded so far, in
// order — used by batch tests to verify flush behavior.
func (d *Device) DrawCalls() []DrawCall { return d.drawCalls }

func (d *Device) Close() { d.record("Close") }

var _ backend.Device = (*Device)(nil)
