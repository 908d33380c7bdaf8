// Package texture implements the Texture Manager: GPU-side
// resource creation for 2D textures, cubemaps and render targets, backed
// by a backend.Device and fed pixel buffers from package pixel.
package texture

import (
	"errors"
	"log/slog"

	gl "github.com/go-gl/gl/v3.3-core/gl"
	"github.com/gogpu/gputypes"

	"github.com/rfcore/rf/backend"
	"github.com/rfcore/rf/pixel"
)

// Errors returned by Load and friends. "Capability missing" is a
// warn-and-sentinel condition, not a hard error — these are returned so
// callers that want to distinguish can, but Load always also logs and
// returns a zero Texture.
var (
	ErrUnsupportedFormat   = errors.New("texture: format unsupported by this backend")
	ErrUnsupportedCubemap  = errors.New("texture: cubemap layout not recognized")
	ErrIncompleteFramebuffer = errors.New("texture: render target framebuffer incomplete")
)

// Filter selects a sampling mode.
type Filter int

const (
	FilterPoint Filter = iota
	FilterBilinear
	FilterTrilinear
	FilterAnisotropic4x
	FilterAnisotropic8x
	FilterAnisotropic16x
)

// Wrap selects a texture-coordinate wrap mode.
type Wrap int

const (
	WrapRepeat Wrap = iota
	WrapClamp
	WrapMirrorRepeat
	WrapMirrorClamp
)

// CubemapLayout enumerates the five recognized face arrangements.
// Panorama is recognized by autodetection but LoadCubemapFromImage
// returns an empty cubemap for it; panorama-to-cube conversion is
// reserved, unimplemented.
type CubemapLayout int

const (
	LayoutAutoDetect CubemapLayout = iota
	LayoutVerticalStrip
	LayoutHorizontalStrip
	LayoutCrossThreeFour
	LayoutCrossFourThree
	LayoutPanorama
)

// Texture is the GPU-side counterpart of pixel.Image: a handle plus the
// dimensions/format/mipmap metadata needed to reason about it without
// reading back from the GPU.
type Texture struct {
	Handle  backend.Handle
	Width   int
	Height  int
	Mipmaps int
	Format  pixel.Format
	Cubemap bool
}

// Valid reports whether t names a live GPU resource.
func (t Texture) Valid() bool { return t.Handle != 0 }

// RenderTarget is a Texture plus the framebuffer and depth attachment
// needed to render into it.
type RenderTarget struct {
	Texture   Texture
	Framebuffer backend.Handle

	DepthHandle   backend.Handle
	DepthIsTexture bool
}

// Manager owns the texture-related Device calls and the capability flags
// probed from the Device. It does not hold the default texture; the rf
// Context creates and owns that.
type Manager struct {
	dev  backend.Device
	caps Capabilities
}

// New wraps dev, probing its reported capability flags once up front.
func New(dev backend.Device) *Manager {
	return &Manager{dev: dev, caps: CapabilitiesFromDevice(dev)}
}

// Capabilities records the subset of backend.Extensions the texture
// manager consults — the "capacity probing" half of the domain stack
// wiring.
type Capabilities struct {
	backend.Extensions
}

// CapabilitiesFromDevice reads the extension flags a live Device reports.
func CapabilitiesFromDevice(dev backend.Device) Capabilities {
	return Capabilities{Extensions: dev.Extensions()}
}

// Supports reports whether f can be uploaded given these capabilities —
// compressed formats need their corresponding extension; uncompressed
// formats are always supported.
func (c Capabilities) Supports(f pixel.Format) bool {
	switch f {
	case pixel.FormatDXT1RGB, pixel.FormatDXT1RGBA, pixel.FormatDXT3RGBA, pixel.FormatDXT5RGBA:
		return c.TexCompressionDXT
	case pixel.FormatETC1RGB:
		return c.TexCompressionETC1
	case pixel.FormatETC2RGB, pixel.FormatETC2EACRGBA:
		return c.TexCompressionETC2
	case pixel.FormatPVRTRGB, pixel.FormatPVRTRGBA:
		return c.TexCompressionPVRT
	case pixel.FormatASTC4x4RGBA, pixel.FormatASTC8x8RGBA:
		return c.TexCompressionASTC
	default:
		return true
	}
}

// GPUTypesFormat maps a pixel.Format onto a gputypes.TextureFormat — kept
// here so the mapping lives in one place instead of being re-derived by
// every backend. No backend in this module consumes it. Only FormatR8 has
// its own entry; every other format maps to RGBA8Unorm.
func GPUTypesFormat(f pixel.Format) gputypes.TextureFormat {
	switch f {
	case pixel.FormatR8:
		return gputypes.TextureFormatR8Unorm
	case pixel.FormatR8G8B8A8:
		return gputypes.TextureFormatRGBA8Unorm
	default:
		return gputypes.TextureFormatRGBA8Unorm
	}
}

// glFormat resolves the GL internal format/format/type triple for an
// uncompressed pixel.Format — the one place this renderer hardcodes GL
// enum values outside of backend/gl33 itself, because the texture manager
// owns the job of translating pixel.Format into backend.TextureParams.
func glFormat(f pixel.Format) (internal int32, format uint32, typ uint32, ok bool) {
	switch f {
	case pixel.FormatR8:
		return gl.R8, gl.RED, gl.UNSIGNED_BYTE, true
	case pixel.FormatR8A8:
		return gl.RG8, gl.RG, gl.UNSIGNED_BYTE, true
	case pixel.FormatR8G8B8:
		return gl.RGB8, gl.RGB, gl.UNSIGNED_BYTE, true
	case pixel.FormatR8G8B8A8:
		return gl.RGBA8, gl.RGBA, gl.UNSIGNED_BYTE, true
	case pixel.FormatR5G6B5:
		return 0x8D62 /* GL_RGB565 (ARB_ES2_compatibility) */, gl.RGB, gl.UNSIGNED_SHORT_5_6_5, true
	case pixel.FormatR5G5B5A1:
		return gl.RGB5_A1, gl.RGBA, gl.UNSIGNED_SHORT_5_5_5_1, true
	case pixel.FormatR4G4B4A4:
		return gl.RGBA4, gl.RGBA, gl.UNSIGNED_SHORT_4_4_4_4, true
	case pixel.FormatR32:
		return gl.R32F, gl.RED, gl.FLOAT, true
	case pixel.FormatR32G32B32:
		return gl.RGB32F, gl.RGB, gl.FLOAT, true
	case pixel.FormatR32G32B32A32:
		return gl.RGBA32F, gl.RGBA, gl.FLOAT, true
	default:
		return 0, 0, 0, false
	}
}

func glCompressedFormat(f pixel.Format) (internal int32, ok bool) {
	switch f {
	case pixel.FormatDXT1RGB:
		return 0x83F0 /* COMPRESSED_RGB_S3TC_DXT1_EXT */, true
	case pixel.FormatDXT1RGBA:
		return 0x83F1 /* COMPRESSED_RGBA_S3TC_DXT1_EXT */, true
	case pixel.FormatDXT3RGBA:
		return 0x83F2 /* COMPRESSED_RGBA_S3TC_DXT3_EXT */, true
	case pixel.FormatDXT5RGBA:
		return 0x83F3 /* COMPRESSED_RGBA_S3TC_DXT5_EXT */, true
	case pixel.FormatETC1RGB:
		return 0x8D64 /* ETC1_RGB8_OES */, true
	case pixel.FormatETC2RGB:
		return 0x9274 /* COMPRESSED_RGB8_ETC2 */, true
	case pixel.FormatETC2EACRGBA:
		return 0x9278 /* COMPRESSED_RGBA8_ETC2_EAC */, true
	case pixel.FormatPVRTRGB:
		return 0x8C00 /* COMPRESSED_RGB_PVRTC_4BPPV1_IMG */, true
	case pixel.FormatPVRTRGBA:
		return 0x8C02 /* COMPRESSED_RGBA_PVRTC_4BPPV1_IMG */, true
	case pixel.FormatASTC4x4RGBA:
		return 0x93B0 /* COMPRESSED_RGBA_ASTC_4x4_KHR */, true
	case pixel.FormatASTC8x8RGBA:
		return 0x93B7 /* COMPRESSED_RGBA_ASTC_8x8_KHR */, true
	default:
		return 0, false
	}
}

// Load uploads img, one mip level at a time, halving dimensions (clamped
// to >=1) per level. A
// compressed format lacking its capability flag is rejected: logged and a
// zero Texture returned.
func (m *Manager) Load(img *pixel.Image) (Texture, error) {
	if !img.Valid() {
		return Texture{}, nil
	}
	if !m.caps.Supports(img.Format) {
		slog.Warn("texture: format unsupported by backend, skipping upload", "format", img.Format)
		return Texture{}, ErrUnsupportedFormat
	}

	h := m.dev.GenTexture()
	m.dev.BindTexture2D(0, h)

	mipmaps := img.Mipmaps
	if mipmaps < 1 {
		mipmaps = 1
	}
	w, hgt := img.Width, img.Height
	offset := 0
	for level := 0; level < mipmaps; level++ {
		size := pixel.SizeForFormat(w, hgt, img.Format)
		end := offset + size
		if end > len(img.Data) {
			end = len(img.Data)
		}
		data := img.Data[offset:end]
		if img.Format.Compressed() {
			internal, _ := glCompressedFormat(img.Format)
			m.dev.CompressedTexImage2D(level, backend.TextureParams{Width: w, Height: hgt, Compressed: true, GLInternalFormat: internal}, data)
		} else {
			internal, format, typ, _ := glFormat(img.Format)
			m.dev.TexImage2D(level, backend.TextureParams{Width: w, Height: hgt, GLInternalFormat: internal, GLFormat: format, GLType: typ}, data)
		}
		offset = end
		if w > 1 {
			w >>= 1
		}
		if hgt > 1 {
			hgt >>= 1
		}
	}

	repeat := true
	if !m.caps.TexNPOT && (!isPOT(img.Width) || !isPOT(img.Height)) {
		repeat = false
	}
	m.dev.TexParameterWrap(repeat, repeat, false)
	m.dev.TexParameterFilter(mipmaps > 1, mipmaps > 1, mipmaps > 1)

	return Texture{Handle: h, Width: img.Width, Height: img.Height, Mipmaps: mipmaps, Format: img.Format}, nil
}

func isPOT(v int) bool { return v > 0 && v&(v-1) == 0 }

// Update replaces t's base mip level in place with img's pixels (same
// dimensions and format as the texture was created with).
func (m *Manager) Update(t Texture, img *pixel.Image) {
	if !t.Valid() || !img.Valid() {
		return
	}
	m.dev.BindTexture2D(0, t.Handle)
	if img.Format.Compressed() {
		internal, _ := glCompressedFormat(img.Format)
		m.dev.CompressedTexImage2D(0, backend.TextureParams{Width: img.Width, Height: img.Height, Compressed: true, GLInternalFormat: internal}, img.Data)
		return
	}
	internal, format, typ, _ := glFormat(img.Format)
	m.dev.TexImage2D(0, backend.TextureParams{Width: img.Width, Height: img.Height, GLInternalFormat: internal, GLFormat: format, GLType: typ}, img.Data)
}

// GenMipmaps asks the backend to generate a full mip chain for t.
func (m *Manager) GenMipmaps(t Texture) Texture {
	m.dev.BindTexture2D(0, t.Handle)
	m.dev.GenerateMipmap()
	m.dev.TexParameterFilter(true, true, true)
	t.Mipmaps = mipLevelsFor(t.Width, t.Height)
	return t
}

func mipLevelsFor(w, h int) int {
	n := 1
	for w > 1 || h > 1 {
		if w > 1 {
			w >>= 1
		}
		if h > 1 {
			h >>= 1
		}
		n++
	}
	return n
}

// SetFilter changes the sampling mode, clamping anisotropic levels to the
// backend-reported maximum.
func (m *Manager) SetFilter(t Texture, f Filter) {
	m.dev.BindTexture2D(0, t.Handle)
	mipmap := t.Mipmaps > 1
	switch f {
	case FilterPoint:
		m.dev.TexParameterFilter(false, false, mipmap)
	case FilterBilinear:
		m.dev.TexParameterFilter(true, true, false)
	case FilterTrilinear:
		m.dev.TexParameterFilter(true, true, mipmap)
	case FilterAnisotropic4x:
		m.dev.TexParameterFilter(true, true, mipmap)
		m.dev.TexParameterAnisotropy(4)
	case FilterAnisotropic8x:
		m.dev.TexParameterFilter(true, true, mipmap)
		m.dev.TexParameterAnisotropy(8)
	case FilterAnisotropic16x:
		m.dev.TexParameterFilter(true, true, mipmap)
		m.dev.TexParameterAnisotropy(16)
	}
}

// SetWrap changes the texture-coordinate wrap mode, falling back to
// clamp-to-edge when mirror-clamp is requested without the extension
//.
func (m *Manager) SetWrap(t Texture, w Wrap) {
	m.dev.BindTexture2D(0, t.Handle)
	switch w {
	case WrapRepeat:
		m.dev.TexParameterWrap(true, true, false)
	case WrapClamp:
		m.dev.TexParameterWrap(false, false, false)
	case WrapMirrorRepeat:
		m.dev.TexParameterWrap(true, true, false)
	case WrapMirrorClamp:
		if m.caps.TexMirrorClamp {
			m.dev.TexParameterWrap(false, false, true)
		} else {
			m.dev.TexParameterWrap(false, false, false)
		}
	}
}

// Delete releases t's GPU handle.
func (m *Manager) Delete(t Texture) {
	if t.Handle != 0 {
		m.dev.DeleteTexture(t.Handle)
	}
}

// cubeFace indexes the six GL_TEXTURE_CUBE_MAP_POSITIVE_X.. targets, in
// the canonical +X -X +Y -Y +Z -Z order.
type cubeFace int

const (
	faceRight cubeFace = iota
	faceLeft
	faceTop
	faceBottom
	faceFront
	faceBack
)

// LoadCubemapFromImage extracts six faces from img according to layout
// (auto-detected from aspect ratio when layout is LayoutAutoDetect) and
// uploads them as a GL_TEXTURE_CUBE_MAP.
func (m *Manager) LoadCubemapFromImage(img *pixel.Image, layout CubemapLayout) (Texture, error) {
	if !img.Valid() {
		return Texture{}, nil
	}
	if layout == LayoutAutoDetect {
		layout = autodetectLayout(img.Width, img.Height)
	}
	if layout == LayoutPanorama {
		slog.Warn("texture: panorama cubemap layout recognized but not converted; returning empty cubemap")
		return Texture{}, ErrUnsupportedCubemap
	}

	faceSize, rects := cubemapFaceRects(img.Width, img.Height, layout)
	if faceSize <= 0 {
		slog.Warn("texture: cubemap layout does not fit image dimensions", "layout", layout)
		return Texture{}, ErrUnsupportedCubemap
	}

	h := m.dev.GenTexture()
	m.dev.BindTextureCube(0, h)
	internal, format, typ, _ := glFormat(img.Format)
	if !img.Format.Compressed() {
		for face := faceRight; face <= faceBack; face++ {
			r := rects[face]
			sub := pixel.Crop(img, r)
			m.dev.TexImage2D(int(face), backend.TextureParams{Width: sub.Width, Height: sub.Height, GLInternalFormat: internal, GLFormat: format, GLType: typ}, sub.Data)
		}
	}
	m.dev.TexParameterFilter(true, true, false)
	m.dev.TexParameterWrap(false, false, false)

	return Texture{Handle: h, Width: faceSize, Height: faceSize, Mipmaps: 1, Format: img.Format, Cubemap: true}, nil
}

// autodetectLayout inspects img's aspect ratio to guess the cubemap face
// arrangement: 4:3 and 3:4
// crosses, 1:6/6:1 strips.
func autodetectLayout(width, height int) CubemapLayout {
	switch {
	case width == height*6:
		return LayoutHorizontalStrip
	case height == width*6:
		return LayoutVerticalStrip
	case width*3 == height*4:
		return LayoutCrossFourThree
	case height*3 == width*4:
		return LayoutCrossThreeFour
	case width == height*2:
		return LayoutPanorama
	default:
		return LayoutHorizontalStrip
	}
}

// cubemapFaceRects returns the square face size and the six source
// rectangles (in canonical +X -X +Y -Y +Z -Z order) for layout against an
// image of the given dimensions.
func cubemapFaceRects(width, height int, layout CubemapLayout) (int, [6]pixel.Rect) {
	var rects [6]pixel.Rect
	switch layout {
	case LayoutHorizontalStrip:
		size := height
		if width != size*6 {
			return 0, rects
		}
		for i := 0; i < 6; i++ {
			rects[i] = pixel.Rect{X: i * size, Y: 0, W: size, H: size}
		}
	case LayoutVerticalStrip:
		size := width
		if height != size*6 {
			return 0, rects
		}
		for i := 0; i < 6; i++ {
			rects[i] = pixel.Rect{X: 0, Y: i * size, W: size, H: size}
		}
	case LayoutCrossFourThree:
		// 4 columns x 3 rows of cells; classic "unfolded box" layout.
		size := width / 4
		if size == 0 || height != size*3 {
			return 0, rects
		}
		rects[faceRight] = pixel.Rect{X: 2 * size, Y: size, W: size, H: size}
		rects[faceLeft] = pixel.Rect{X: 0, Y: size, W: size, H: size}
		rects[faceTop] = pixel.Rect{X: size, Y: 0, W: size, H: size}
		rects[faceBottom] = pixel.Rect{X: size, Y: 2 * size, W: size, H: size}
		rects[faceFront] = pixel.Rect{X: size, Y: size, W: size, H: size}
		rects[faceBack] = pixel.Rect{X: 3 * size, Y: size, W: size, H: size}
	case LayoutCrossThreeFour:
		// 3 columns x 4 rows.
		size := width / 3
		if size == 0 || height != size*4 {
			return 0, rects
		}
		rects[faceRight] = pixel.Rect{X: 2 * size, Y: size, W: size, H: size}
		rects[faceLeft] = pixel.Rect{X: 0, Y: size, W: size, H: size}
		rects[faceTop] = pixel.Rect{X: size, Y: 0, W: size, H: size}
		rects[faceBottom] = pixel.Rect{X: size, Y: 2 * size, W: size, H: size}
		rects[faceFront] = pixel.Rect{X: size, Y: size, W: size, H: size}
		rects[faceBack] = pixel.Rect{X: size, Y: 3 * size, W: size, H: size}
	default:
		return 0, rects
	}
	return rects[0].W, rects
}

// LoadRenderTexture creates a color target plus a depth attachment, wires
// them to a framebuffer and validates completeness. Incompleteness is
// logged but the RenderTarget is still returned — the caller decides what
// to do.
func (m *Manager) LoadRenderTexture(width, height int, format pixel.Format, depthBits int, useDepthTexture bool) (RenderTarget, error) {
	color, err := m.Load(pixel.NewImage(width, height, format))
	if err != nil {
		return RenderTarget{}, err
	}

	fb := m.dev.GenFramebuffer()
	m.dev.BindFramebuffer(fb)
	const colorAttachment0 = 0x8CE0 // GL_COLOR_ATTACHMENT0
	const depthAttachment = 0x8D00  // GL_DEPTH_ATTACHMENT
	m.dev.FramebufferTexture2D(colorAttachment0, color.Handle)

	rt := RenderTarget{Texture: color, Framebuffer: fb}
	if useDepthTexture && m.caps.TexDepth {
		depthImg := pixel.NewImage(width, height, pixel.FormatR32)
		depth, _ := m.Load(depthImg)
		m.dev.FramebufferTexture2D(depthAttachment, depth.Handle)
		rt.DepthHandle = depth.Handle
		rt.DepthIsTexture = true
	} else {
		rb := m.dev.RenderbufferStorageDepth(width, height, depthBits)
		m.dev.FramebufferRenderbuffer(depthAttachment, rb)
		rt.DepthHandle = rb
		rt.DepthIsTexture = false
	}

	ok, reason := m.dev.CheckFramebufferComplete()
	m.dev.BindFramebuffer(0)
	if !ok {
		slog.Warn("texture: render target framebuffer incomplete", "reason", reason)
		return rt, ErrIncompleteFramebuffer
	}
	return rt, nil
}

// DeleteRenderTarget releases a render target's framebuffer, depth attachment and
// color texture.
func (m *Manager) DeleteRenderTarget(rt RenderTarget) {
	if rt.DepthHandle != 0 {
		if rt.DepthIsTexture {
			m.dev.DeleteTexture(rt.DepthHandle)
		} else {
			m.dev.DeleteRenderbuffer(rt.DepthHandle)
		}
	}
	m.Delete(rt.Texture)
	if rt.Framebuffer != 0 {
		m.dev.DeleteFramebuffer(rt.Framebuffer)
	}
}
