// Package gl33 implements backend.Device against a live OpenGL 3.3 core
// context via go-gl/gl, grounded on the binding style used by
// github.com/soypat/glgl (gl.GoStr, explicit GetShaderiv/GetProgramiv error
// paths, runtime.Pinner around pointers handed to cgo).
//
// An OpenGL 3.3 core context must already be current on the calling
// goroutine before New is invoked, and every Device method must be called
// from that same goroutine thereafter (single-threaded cooperative
// w.r.t. the GPU context).
package gl33

import (
	"fmt"
	"runtime"
	"strings"
	"unsafe"

	gl "github.com/go-gl/gl/v3.3-core/gl"

	"github.com/rfcore/rf/backend"
)

func init() {
	backend.Register("gl33", func() (backend.Device, error) { return New() })
}

// Device is the GL 3.3 core implementation of backend.Device.
type Device struct {
	ext backend.Extensions
}

// New binds to the OpenGL 3.3 core context current on this goroutine and
// probes its extension set.
func New() (*Device, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("gl33: %w", err)
	}
	d := &Device{ext: probeExtensions()}
	return d, nil
}

// probeExtensions prefers the indexed GetStringi enumeration path (core
// profiles require it) and falls back to the legacy single-string form,
// both funneled through the shared classifier so they never disagree.
func probeExtensions() backend.Extensions {
	var n int32
	gl.GetIntegerv(gl.NUM_EXTENSIONS, &n)
	if n > 0 {
		tokens := make([]string, 0, n)
		for i := int32(0); i < n; i++ {
			tokens = append(tokens, gl.GoStr(gl.GetStringi(gl.EXTENSIONS, uint32(i))))
		}
		e := backend.ClassifyExtensions(tokens)
		probeAnisotropy(&e)
		return e
	}
	legacy := gl.GoStr(gl.GetString(gl.EXTENSIONS))
	e := backend.ClassifyExtensions(backend.SplitLegacyExtensionString(legacy))
	probeAnisotropy(&e)
	return e
}

func probeAnisotropy(e *backend.Extensions) {
	if !e.TexAnisotropicFilter {
		return
	}
	var v float32
	gl.GetFloatv(0x84FF /* GL_MAX_TEXTURE_MAX_ANISOTROPY_EXT */, &v)
	e.MaxAnisotropicLevel = v
}

func (d *Device) Profile() backend.Profile         { return backend.ProfileGL33 }
func (d *Device) Extensions() backend.Extensions   { return d.ext }

func (d *Device) GenBuffer() backend.Handle {
	var h uint32
	gl.GenBuffers(1, &h)
	return backend.Handle(h)
}

func (d *Device) DeleteBuffer(h backend.Handle) {
	name := uint32(h)
	gl.DeleteBuffers(1, &name)
}

func (d *Device) BindArrayBuffer(h backend.Handle)   { gl.BindBuffer(gl.ARRAY_BUFFER, uint32(h)) }
func (d *Device) BindElementBuffer(h backend.Handle) { gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, uint32(h)) }

func (d *Device) BufferData(h backend.Handle, data []byte, dynamic bool) {
	d.BindArrayBuffer(h)
	usage := uint32(gl.STATIC_DRAW)
	if dynamic {
		usage = gl.DYNAMIC_DRAW
	}
	gl.BufferData(gl.ARRAY_BUFFER, len(data), gl.Ptr(data), usage)
}

func (d *Device) BufferSubData(h backend.Handle, offset int, data []byte) {
	d.BindArrayBuffer(h)
	gl.BufferSubData(gl.ARRAY_BUFFER, offset, len(data), gl.Ptr(data))
}

func (d *Device) GenVertexArray() backend.Handle {
	if !d.ext.VAO {
		return 0
	}
	var h uint32
	gl.GenVertexArrays(1, &h)
	return backend.Handle(h)
}

func (d *Device) DeleteVertexArray(h backend.Handle) {
	if h == 0 {
		return
	}
	name := uint32(h)
	gl.DeleteVertexArrays(1, &name)
}

func (d *Device) BindVertexArray(h backend.Handle) { gl.BindVertexArray(uint32(h)) }

func (d *Device) VertexAttribPointer(index uint32, size int, typ backend.AttribType, stride, offset int, normalized bool) {
	glType := uint32(gl.FLOAT)
	if typ == backend.AttribUnsignedByte {
		glType = gl.UNSIGNED_BYTE
	}
	gl.VertexAttribPointerWithOffset(index, int32(size), glType, normalized, int32(stride), uintptr(offset))
}

func (d *Device) EnableVertexAttrib(index uint32)  { gl.EnableVertexAttribArray(index) }
func (d *Device) DisableVertexAttrib(index uint32) { gl.DisableVertexAttribArray(index) }

func (d *Device) GenTexture() backend.Handle {
	var h uint32
	gl.GenTextures(1, &h)
	return backend.Handle(h)
}

func (d *Device) DeleteTexture(h backend.Handle) {
	name := uint32(h)
	gl.DeleteTextures(1, &name)
}

func (d *Device) BindTexture2D(unit int, h backend.Handle) {
	gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
	gl.BindTexture(gl.TEXTURE_2D, uint32(h))
}

func (d *Device) BindTextureCube(unit int, h backend.Handle) {
	gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, uint32(h))
}

func (d *Device) TexImage2D(level int, p backend.TextureParams, data []byte) {
	var ptr unsafe.Pointer
	if len(data) > 0 {
		ptr = gl.Ptr(data)
	}
	gl.TexImage2D(gl.TEXTURE_2D, int32(level), p.GLInternalFormat, int32(p.Width), int32(p.Height), 0, p.GLFormat, p.GLType, ptr)
}

func (d *Device) CompressedTexImage2D(level int, p backend.TextureParams, data []byte) {
	gl.CompressedTexImage2D(gl.TEXTURE_2D, int32(level), uint32(p.GLInternalFormat), int32(p.Width), int32(p.Height), 0, int32(len(data)), gl.Ptr(data))
}

func (d *Device) TexParameterWrap(repeatS, repeatT, mirror bool) {
	wrap := func(repeat bool) int32 {
		switch {
		case mirror && d.ext.TexMirrorClamp:
			return 0x8743 // GL_MIRROR_CLAMP_TO_EDGE_EXT
		case repeat:
			return gl.REPEAT
		default:
			return gl.CLAMP_TO_EDGE
		}
	}
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, wrap(repeatS))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, wrap(repeatT))
}

func (d *Device) TexParameterFilter(minLinear, magLinear, mipmap bool) {
	min := int32(gl.NEAREST)
	switch {
	case minLinear && mipmap:
		min = gl.LINEAR_MIPMAP_LINEAR
	case minLinear:
		min = gl.LINEAR
	case mipmap:
		min = gl.NEAREST_MIPMAP_NEAREST
	}
	mag := int32(gl.NEAREST)
	if magLinear {
		mag = gl.LINEAR
	}
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, min)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, mag)
}

func (d *Device) TexParameterAnisotropy(level float32) {
	if !d.ext.TexAnisotropicFilter {
		return
	}
	if level > d.ext.MaxAnisotropicLevel {
		level = d.ext.MaxAnisotropicLevel
	}
	gl.TexParameterf(gl.TEXTURE_2D, 0x84FE /* GL_TEXTURE_MAX_ANISOTROPY_EXT */, level)
}

func (d *Device) GenerateMipmap() { gl.GenerateMipmap(gl.TEXTURE_2D) }

func (d *Device) ReadTexturePixels(h backend.Handle, width, height int) []byte {
	gl.BindTexture(gl.TEXTURE_2D, uint32(h))
	buf := make([]byte, width*height*4)
	var pin runtime.Pinner
	pin.Pin(&buf[0])
	defer pin.Unpin()
	gl.GetTexImage(gl.TEXTURE_2D, 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(buf))
	return buf
}

func (d *Device) GenFramebuffer() backend.Handle {
	var h uint32
	gl.GenFramebuffers(1, &h)
	return backend.Handle(h)
}

func (d *Device) DeleteFramebuffer(h backend.Handle) {
	name := uint32(h)
	gl.DeleteFramebuffers(1, &name)
}

func (d *Device) BindFramebuffer(h backend.Handle) { gl.BindFramebuffer(gl.FRAMEBUFFER, uint32(h)) }

func (d *Device) FramebufferTexture2D(attachment uint32, tex backend.Handle) {
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, attachment, gl.TEXTURE_2D, uint32(tex), 0)
}

func (d *Device) GenRenderbuffer() backend.Handle {
	var h uint32
	gl.GenRenderbuffers(1, &h)
	return backend.Handle(h)
}

func (d *Device) DeleteRenderbuffer(h backend.Handle) {
	name := uint32(h)
	gl.DeleteRenderbuffers(1, &name)
}

func (d *Device) RenderbufferStorageDepth(width, height, depthBits int) backend.Handle {
	h := d.GenRenderbuffer()
	gl.BindRenderbuffer(gl.RENDERBUFFER, uint32(h))
	format := uint32(gl.DEPTH_COMPONENT16)
	switch depthBits {
	case 24:
		format = gl.DEPTH_COMPONENT24
	case 32:
		format = gl.DEPTH_COMPONENT32F
	}
	gl.RenderbufferStorage(gl.RENDERBUFFER, format, int32(width), int32(height))
	return h
}

func (d *Device) FramebufferRenderbuffer(attachment uint32, rb backend.Handle) {
	gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, attachment, gl.RENDERBUFFER, uint32(rb))
}

func (d *Device) CheckFramebufferComplete() (bool, string) {
	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	if status == gl.FRAMEBUFFER_COMPLETE {
		return true, ""
	}
	return false, framebufferStatusString(status)
}

func framebufferStatusString(status uint32) string {
	switch status {
	case gl.FRAMEBUFFER_INCOMPLETE_ATTACHMENT:
		return "incomplete attachment"
	case gl.FRAMEBUFFER_INCOMPLETE_MISSING_ATTACHMENT:
		return "missing attachment"
	case gl.FRAMEBUFFER_UNSUPPORTED:
		return "unsupported combination"
	default:
		return fmt.Sprintf("status 0x%x", status)
	}
}

func (d *Device) CompileShader(stage backend.ShaderStage, source string) (backend.Handle, error) {
	kind := uint32(gl.VERTEX_SHADER)
	if stage == backend.StageFragment {
		kind = gl.FRAGMENT_SHADER
	}
	h := gl.CreateShader(kind)
	csource, free := gl.Strs(source + "\x00")
	gl.ShaderSource(h, 1, csource, nil)
	free()
	gl.CompileShader(h)

	var status int32
	gl.GetShaderiv(h, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(h, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetShaderInfoLog(h, logLen, nil, gl.Str(log))
		gl.DeleteShader(h)
		return 0, fmt.Errorf("gl33: shader compile failed: %s", log)
	}
	return backend.Handle(h), nil
}

func (d *Device) LinkProgram(vs, fs backend.Handle) (backend.Handle, error) {
	prog := gl.CreateProgram()
	gl.AttachShader(prog, uint32(vs))
	gl.AttachShader(prog, uint32(fs))
	gl.LinkProgram(prog)

	var status int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(prog, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetProgramInfoLog(prog, logLen, nil, gl.Str(log))
		gl.DeleteProgram(prog)
		return 0, fmt.Errorf("gl33: program link failed: %s", log)
	}
	return backend.Handle(prog), nil
}

func (d *Device) DeleteShader(h backend.Handle)  { gl.DeleteShader(uint32(h)) }
func (d *Device) DeleteProgram(h backend.Handle) { gl.DeleteProgram(uint32(h)) }
func (d *Device) UseProgram(h backend.Handle)    { gl.UseProgram(uint32(h)) }

func (d *Device) UniformLocation(prog backend.Handle, name string) int32 {
	return gl.GetUniformLocation(uint32(prog), gl.Str(name+"\x00"))
}

func (d *Device) AttribLocation(prog backend.Handle, name string) int32 {
	return gl.GetAttribLocation(uint32(prog), gl.Str(name+"\x00"))
}

func (d *Device) SetUniformMat4(loc int32, m [16]float32) { gl.UniformMatrix4fv(loc, 1, false, &m[0]) }
func (d *Device) SetUniformVec4(loc int32, v [4]float32)  { gl.Uniform4f(loc, v[0], v[1], v[2], v[3]) }
func (d *Device) SetUniformInt(loc int32, v int32)        { gl.Uniform1i(loc, v) }

func (d *Device) SetViewport(x, y, w, h int) { gl.Viewport(int32(x), int32(y), int32(w), int32(h)) }

func (d *Device) SetScissor(enabled bool, x, y, w, h int) {
	if !enabled {
		gl.Disable(gl.SCISSOR_TEST)
		return
	}
	gl.Enable(gl.SCISSOR_TEST)
	gl.Scissor(int32(x), int32(y), int32(w), int32(h))
}

func (d *Device) SetDepthTest(enabled bool) {
	if enabled {
		gl.Enable(gl.DEPTH_TEST)
	} else {
		gl.Disable(gl.DEPTH_TEST)
	}
}

func (d *Device) SetBlend(enabled bool, mode backend.BlendMode) {
	if !enabled {
		gl.Disable(gl.BLEND)
		return
	}
	gl.Enable(gl.BLEND)
	switch mode {
	case backend.BlendAdditive:
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE)
	case backend.BlendMultiplied:
		gl.BlendFunc(gl.DST_COLOR, gl.ZERO)
	case backend.BlendAddColors:
		gl.BlendFunc(gl.ONE, gl.ONE)
	case backend.BlendSubtractColors:
		gl.BlendFuncSeparate(gl.ONE, gl.ONE, gl.ZERO, gl.ZERO)
		gl.BlendEquation(gl.FUNC_REVERSE_SUBTRACT)
	case backend.BlendAlphaPremultiply:
		gl.BlendFunc(gl.ONE, gl.ONE_MINUS_SRC_ALPHA)
	default: // BlendAlpha
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	}
}

func (d *Device) SetCullFace(enabled, ccw bool) {
	if !enabled {
		gl.Disable(gl.CULL_FACE)
		return
	}
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	if ccw {
		gl.FrontFace(gl.CCW)
	} else {
		gl.FrontFace(gl.CW)
	}
}

func (d *Device) ClearColor(r, g, b, a float32) { gl.ClearColor(r, g, b, a) }

func (d *Device) Clear(color, depth bool) {
	var mask uint32
	if color {
		mask |= gl.COLOR_BUFFER_BIT
	}
	if depth {
		mask |= gl.DEPTH_BUFFER_BIT
	}
	if mask != 0 {
		gl.Clear(mask)
	}
}

func glMode(mode backend.DrawMode) uint32 {
	switch mode {
	case backend.Lines:
		return gl.LINES
	default: // Triangles, Quads (Quads is always submitted as indexed triangles)
		return gl.TRIANGLES
	}
}

func (d *Device) DrawArrays(mode backend.DrawMode, first, count int) {
	gl.DrawArrays(glMode(mode), int32(first), int32(count))
}

func (d *Device) DrawElements(mode backend.DrawMode, count int, indexType backend.IndexType, offset int) {
	glType := uint32(gl.UNSIGNED_SHORT)
	if indexType == backend.IndexUint32 {
		glType = gl.UNSIGNED_INT
	}
	gl.DrawElementsWithOffset(gl.TRIANGLES, int32(count), glType, uintptr(offset))
}

func (d *Device) Close() {}

var _ backend.Device = (*Device)(nil)
