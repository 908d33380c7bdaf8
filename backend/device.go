package backend

import "errors"

// Common backend errors.
var (
	// ErrBackendNotAvailable is returned when a requested backend name has
	// no registered factory.
	ErrBackendNotAvailable = errors.New("backend: not available")

	// ErrNotInitialized is returned when an operation is attempted before
	// Init has completed successfully.
	ErrNotInitialized = errors.New("backend: not initialized")

	// ErrUnsupported is returned by an operation the active profile cannot
	// perform (e.g. GetTexImage on an ES device).
	ErrUnsupported = errors.New("backend: unsupported on this profile")
)

// Profile identifies which divergent GL entry points a Device exposes.
type Profile int

const (
	ProfileGL33 Profile = iota
	ProfileGLES2
	ProfileGLES3
)

func (p Profile) String() string {
	switch p {
	case ProfileGL33:
		return "gl33"
	case ProfileGLES2:
		return "gles2"
	case ProfileGLES3:
		return "gles3"
	default:
		return "unknown"
	}
}

// DrawMode mirrors the three primitive kinds the batch renderer emits.
// Quads has no native GL equivalent and is always realized as indexed
// triangles by the Device.
type DrawMode int

const (
	Lines DrawMode = iota
	Triangles
	Quads
)

// BlendMode selects a fixed src/dst blend-factor pair.
type BlendMode int

const (
	BlendAlpha BlendMode = iota
	BlendAdditive
	BlendMultiplied
	BlendAddColors
	BlendSubtractColors
	BlendAlphaPremultiply
)

// IndexType selects the element width of an index buffer.
type IndexType int

const (
	IndexUint16 IndexType = iota
	IndexUint32
)

// AttribType selects the component type of a vertex attribute stream:
// float32 positions/texcoords, or the byte-packed normalized color stream.
type AttribType int

const (
	AttribFloat AttribType = iota
	AttribUnsignedByte
)

// Handle is an opaque GPU resource name. Zero is always the sentinel
// "no resource" value, mirroring GL's own convention.
type Handle uint32

// Extensions records the capability flags probed at init, however
// the concrete Device chooses to enumerate them (GetStringi indices or a
// legacy space-separated string).
type Extensions struct {
	VAO                 bool
	TexNPOT             bool
	TexFloat            bool
	TexDepth            bool
	TexCompressionDXT   bool
	TexCompressionETC1  bool
	TexCompressionETC2  bool
	TexCompressionPVRT  bool
	TexCompressionASTC  bool
	TexMirrorClamp      bool
	TexAnisotropicFilter bool
	MaxAnisotropicLevel float32
	DebugMarker         bool
}

// ShaderStage distinguishes vertex and fragment compilation units.
type ShaderStage int

const (
	StageVertex ShaderStage = iota
	StageFragment
)

// TextureParams describes a single mip level's worth of upload data in the
// layout the pixel-format engine already produced; the Device never
// re-interprets pixel bytes, it only routes them to TexImage2D or
// CompressedTexImage2D.
type TextureParams struct {
	Width, Height int
	Compressed    bool
	// GLInternalFormat/GLFormat/GLType are resolved by the texture manager
	// from pixel.Format before reaching the Device — the Device just issues
	// the call.
	GLInternalFormat int32
	GLFormat         uint32
	GLType           uint32
}

// Device is the curated GL 3.3 core / GL ES 2-3 function table. The
// renderer accesses the GPU only through this interface — see package doc.
//
// Every method must be safe to invoke only from the thread that owns the
// GPU context; Device makes no threading guarantees beyond that.
type Device interface {
	Profile() Profile
	Extensions() Extensions

	// Buffers
	GenBuffer() Handle
	DeleteBuffer(Handle)
	BindArrayBuffer(Handle)
	BindElementBuffer(Handle)
	BufferData(h Handle, data []byte, dynamic bool)
	BufferSubData(h Handle, offset int, data []byte)

	// Vertex array objects (no-op on profiles lacking VAO support)
	GenVertexArray() Handle
	DeleteVertexArray(Handle)
	BindVertexArray(Handle)
	VertexAttribPointer(index uint32, size int, typ AttribType, stride int, offset int, normalized bool)
	EnableVertexAttrib(index uint32)
	DisableVertexAttrib(index uint32)

	// Textures
	GenTexture() Handle
	DeleteTexture(Handle)
	BindTexture2D(unit int, h Handle)
	BindTextureCube(unit int, h Handle)
	TexImage2D(level int, params TextureParams, data []byte)
	CompressedTexImage2D(level int, params TextureParams, data []byte)
	TexParameterWrap(repeatS, repeatT bool, mirror bool)
	TexParameterFilter(minLinear, magLinear, mipmap bool)
	TexParameterAnisotropy(level float32)
	GenerateMipmap()
	ReadTexturePixels(h Handle, width, height int) []byte // desktop-only (GetTexImage has no ES equivalent)

	// Framebuffers / renderbuffers
	GenFramebuffer() Handle
	DeleteFramebuffer(Handle)
	BindFramebuffer(Handle)
	FramebufferTexture2D(attachment uint32, tex Handle)
	GenRenderbuffer() Handle
	DeleteRenderbuffer(Handle)
	RenderbufferStorageDepth(width, height, depthBits int) Handle
	FramebufferRenderbuffer(attachment uint32, rb Handle)
	CheckFramebufferComplete() (ok bool, reason string)

	// Shaders
	CompileShader(stage ShaderStage, source string) (Handle, error)
	LinkProgram(vs, fs Handle) (Handle, error)
	DeleteShader(Handle)
	DeleteProgram(Handle)
	UseProgram(Handle)
	UniformLocation(prog Handle, name string) int32
	AttribLocation(prog Handle, name string) int32
	SetUniformMat4(loc int32, m [16]float32)
	SetUniformVec4(loc int32, v [4]float32)
	SetUniformInt(loc int32, v int32)

	// Draw state
	SetViewport(x, y, w, h int)
	SetScissor(enabled bool, x, y, w, h int)
	SetDepthTest(enabled bool)
	SetBlend(enabled bool, mode BlendMode)
	SetCullFace(enabled bool, ccw bool)
	ClearColor(r, g, b, a float32)
	Clear(color, depth bool)

	// Draw submission
	DrawArrays(mode DrawMode, first, count int)
	DrawElements(mode DrawMode, count int, indexType IndexType, offset int)

	// Lifecycle
	Close()
}
