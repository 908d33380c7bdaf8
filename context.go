package rf

import (
	"log/slog"

	"github.com/rfcore/rf/backend"
	"github.com/rfcore/rf/batch"
	"github.com/rfcore/rf/font"
	"github.com/rfcore/rf/internal/linear"
	"github.com/rfcore/rf/pixel"
	"github.com/rfcore/rf/shader"
	"github.com/rfcore/rf/texture"
)

// nearPlane and farPlane are the 3D clip distances Begin3D installs for a
// perspective projection.
const (
	nearPlane = 0.01
	farPlane  = 1000.0
)

// Context is the process-wide render-context singleton:
// it borrows a backend.Device for its whole lifetime, owns the default
// shader/texture/font bootstrapped at creation, and exposes the
// immediate-mode batch renderer plus the scoped-draw helpers built on top
// of it.
//
// The renderer's vertex/draw-call storage lives in the batch.Batch's
// internal buffers, owned by the Context itself rather than pre-allocated
// by the caller; the garbage collector makes a borrowed stable-address
// memory block unnecessary.
type Context struct {
	dev     backend.Device
	matrix  *batch.MatrixStack
	batchr  *batch.Batch
	texMgr  *texture.Manager
	caps    texture.Capabilities

	defaultShader  *shader.Shader
	defaultTexture texture.Texture
	defaultFont    *font.Font

	sizes        sizes
	policy       fbPolicy
	save3D       struct{ projection, modelview linear.M4 }
	inRenderTex  bool
}

// NewContext bootstraps a Context against dev, an already-initialized
// backend.Device, targeting a logical screenWidth x screenHeight
// resolution. The physical display size is assumed equal to the
// screen size until Resize says otherwise; callers driving a host window
// should call Resize once the real framebuffer size is known.
//
// GPU-side failures during bootstrap (shader compile/link) are logged and
// leave DefaultShader().Valid() == false; the caller must check
// before relying on textured draws, exactly like any other "GPU-side
// failure" sentinel in this design.
func NewContext(dev backend.Device, screenWidth, screenHeight int, opts ...Option) *Context {
	o := defaultContextOptions()
	for _, opt := range opts {
		opt(&o)
	}

	c := &Context{
		dev:    dev,
		matrix: batch.NewMatrixStack(),
		texMgr: texture.New(dev),
		caps:   texture.CapabilitiesFromDevice(dev),
	}
	c.sizes.screen = Size{screenWidth, screenHeight}
	c.sizes.display = c.sizes.screen

	// 1x1 opaque-white default texture.
	white := pixel.NewImage(1, 1, pixel.FormatR8G8B8A8)
	white.Data[0], white.Data[1], white.Data[2], white.Data[3] = 255, 255, 255, 255
	tex, err := c.texMgr.Load(white)
	if err != nil {
		slog.Warn("rf: default texture upload failed", "err", err)
	}
	c.defaultTexture = tex

	// Default shader, one GLSL variant per backend profile.
	vs, fs := shader.DefaultSources(dev.Profile())
	c.defaultShader = shader.Compile(dev, vs, fs)
	if !c.defaultShader.Valid() {
		slog.Warn("rf: default shader failed to compile/link")
	}

	// Vertex buffers + sentinel draw call, done inside batch.New.
	capacity := o.vertexCapacity
	if capacity <= 0 {
		capacity = batch.DefaultVertexCapacity
	}
	c.batchr = batch.NewWithCapacity(dev, c.matrix, c.defaultShader, c.defaultTexture.Handle, capacity)

	// Initial GPU state.
	dev.SetDepthTest(false)
	dev.SetBlend(true, backend.BlendAlpha)
	dev.SetCullFace(true, true)
	cc := o.clearColor.Normalize()
	dev.ClearColor(cc.R, cc.G, cc.B, cc.A)

	// Framebuffer policy + viewport.
	c.policy = computeFramebufferPolicy(c.sizes.screen, c.sizes.display)
	c.sizes.render = c.policy.render
	c.sizes.current = c.sizes.render
	c.applyViewport()

	if !o.skipDefaultFont {
		if f, err := font.DefaultFont(); err != nil {
			slog.Warn("rf: default font load failed", "err", err)
		} else if err := f.Upload(c.texMgr); err != nil {
			slog.Warn("rf: default font atlas upload failed", "err", err)
		} else {
			c.defaultFont = f
		}
	} else {
		c.defaultFont = o.defaultFont
	}

	SetGlobalContext(c)
	return c
}

// Shutdown releases the default shader, default texture, default font
// atlas and every batch buffer/VAO handle. It does not
// close dev — the caller owns the backend.Device and decides its lifetime.
func (c *Context) Shutdown() {
	c.batchr.Shutdown()
	c.defaultShader.Delete(c.dev)
	c.texMgr.Delete(c.defaultTexture)
	if c.defaultFont != nil && c.defaultFont.Texture.Valid() {
		c.texMgr.Delete(c.defaultFont.Texture)
	}
}

// Width and Height report the logical screen resolution.
func (c *Context) Width() int  { return c.sizes.screen.Width }
func (c *Context) Height() int { return c.sizes.screen.Height }

// RenderSize reports the actual backbuffer size the renderer targets,
// which may differ from the screen size under the scaling policy.
func (c *Context) RenderSize() Size { return c.sizes.render }

// Device exposes the backend.Device the Context was built with, for
// callers that need to issue calls the Context doesn't wrap directly
// (e.g. a host-specific swap-buffers call).
func (c *Context) Device() backend.Device { return c.dev }

// Batch exposes the immediate-mode vertex batch directly, for callers
// emitting raw vertex/texcoord/color streams instead of
// using the Context's shape helpers.
func (c *Context) Batch() *batch.Batch { return c.batchr }

// Matrix exposes the matrix stack directly, for callers that need push/
// pop/translate/rotate/scale outside of a scoped-draw helper.
func (c *Context) Matrix() *batch.MatrixStack { return c.matrix }

// Textures exposes the texture manager for callers loading their own
// textures against this Context's backend.Device and capability set.
func (c *Context) Textures() *texture.Manager { return c.texMgr }

// DefaultTexture returns the 1x1 opaque-white texture every untextured
// draw call binds.
func (c *Context) DefaultTexture() texture.Texture { return c.defaultTexture }

// DefaultShader returns the bootstrap-compiled default shader.
func (c *Context) DefaultShader() *shader.Shader { return c.defaultShader }

// DefaultFont returns the built-in bitmap font loaded at bootstrap, or nil
// if the Context was created with WithNoDefaultFont/WithDefaultFont(nil).
func (c *Context) DefaultFont() *font.Font { return c.defaultFont }

// Resize recomputes the framebuffer-fit policy and re-applies the
// viewport/projection for a new screen/display size pair. Callers
// driving a resizable host window call this whenever either changes.
func (c *Context) Resize(screenWidth, screenHeight, displayWidth, displayHeight int) {
	c.batchr.Draw()
	c.sizes.screen = Size{screenWidth, screenHeight}
	c.sizes.display = Size{displayWidth, displayHeight}
	c.policy = computeFramebufferPolicy(c.sizes.screen, c.sizes.display)
	c.sizes.render = c.policy.render
	c.sizes.current = c.sizes.render
	c.applyViewport()
}

// BeginFrame starts a new frame: the modelview resets to the
// screen-scaling matrix the framebuffer-fit policy computed, so drawing in
// logical screen coordinates lands correctly on the physical render size
// (identity when screen and display match).
func (c *Context) BeginFrame() {
	c.matrix.SetMode(batch.ModeModelview)
	c.matrix.SetModelview(c.policy.scaling)
}

// EndFrame flushes everything batched since BeginFrame. The host then
// swaps buffers; the Context doesn't own the swapchain.
func (c *Context) EndFrame() {
	c.batchr.Draw()
}

// ClearBackground clears the current target to col.
func (c *Context) ClearBackground(col pixel.Color) {
	v := col.Normalize()
	c.dev.ClearColor(v.R, v.G, v.B, v.A)
	c.dev.Clear(true, true)
}

// Begin2D flushes any in-flight batch and installs cam's transform into
// the modelview matrix: translate-to-target, rotate,
// scale-by-zoom, translate-by-offset.
func (c *Context) Begin2D(cam Camera2D) {
	c.batchr.Draw()
	c.matrix.SetMode(batch.ModeModelview)
	c.matrix.SetModelview(linear.Mul4(cam.matrix(), c.policy.scaling))
}

// End2D flushes and restores the frame's base modelview (the screen-
// scaling matrix).
func (c *Context) End2D() {
	c.batchr.Draw()
	c.matrix.SetMode(batch.ModeModelview)
	c.matrix.SetModelview(c.policy.scaling)
}

// Begin3D flushes, saves the current projection/modelview, installs a
// perspective or orthographic projection from cam and a look-at modelview,
// and enables depth testing.
func (c *Context) Begin3D(cam Camera3D) {
	c.batchr.Draw()
	c.save3D.projection = c.matrix.Projection()
	c.save3D.modelview = c.matrix.Modelview()

	w, h := c.sizes.render.Width, c.sizes.render.Height
	aspect := float32(1)
	if h != 0 {
		aspect = float32(w) / float32(h)
	}

	var proj linear.M4
	if cam.Type == CameraOrthographic {
		halfW := cam.Fovy / 2
		halfH := halfW
		if aspect != 0 {
			halfH = halfW / aspect
		}
		proj = linear.Ortho(-halfW, halfW, -halfH, halfH, nearPlane, farPlane)
	} else {
		proj = linear.Perspective(degToRad(cam.Fovy), aspect, nearPlane, farPlane)
	}

	c.matrix.SetMode(batch.ModeProjection)
	c.matrix.SetProjection(proj)
	c.matrix.SetMode(batch.ModeModelview)
	c.matrix.SetModelview(linear.LookAt(cam.Position, cam.Target, cam.Up))

	c.dev.SetDepthTest(true)
}

// End3D flushes, restores the pre-Begin3D projection/modelview and
// disables depth testing.
func (c *Context) End3D() {
	c.batchr.Draw()
	c.matrix.SetMode(batch.ModeProjection)
	c.matrix.SetProjection(c.save3D.projection)
	c.matrix.SetMode(batch.ModeModelview)
	c.matrix.SetModelview(c.save3D.modelview)
	c.dev.SetDepthTest(false)
}

// BeginTextureMode flushes, binds target's framebuffer and installs a
// viewport/orthographic-projection pair sized to the target.
func (c *Context) BeginTextureMode(target texture.RenderTarget) {
	c.batchr.Draw()
	c.dev.BindFramebuffer(target.Framebuffer)
	c.sizes.current = Size{target.Texture.Width, target.Texture.Height}
	c.inRenderTex = true

	c.dev.SetViewport(0, 0, target.Texture.Width, target.Texture.Height)
	c.matrix.SetMode(batch.ModeProjection)
	c.matrix.SetProjection(linear.Ortho(0, float32(target.Texture.Width), float32(target.Texture.Height), 0, -1, 1))
	c.matrix.SetMode(batch.ModeModelview)
	c.matrix.LoadIdentity()
}

// EndTextureMode flushes, unbinds the framebuffer (back to the default,
// handle 0) and restores the main viewport/projection.
func (c *Context) EndTextureMode() {
	c.batchr.Draw()
	c.dev.BindFramebuffer(0)
	c.sizes.current = c.sizes.render
	c.inRenderTex = false
	c.applyViewport()
}

// BeginScissorMode flushes and restricts subsequent draws to the pixel
// rectangle (x, y, w, h).
func (c *Context) BeginScissorMode(x, y, w, h int) {
	c.batchr.Draw()
	c.dev.SetScissor(true, x, y, w, h)
}

// EndScissorMode flushes and disables scissoring.
func (c *Context) EndScissorMode() {
	c.batchr.Draw()
	c.dev.SetScissor(false, 0, 0, 0, 0)
}

// BeginShaderMode flushes and installs s as the shader subsequent flushes
// bind instead of the default.
func (c *Context) BeginShaderMode(s *shader.Shader) {
	c.batchr.Draw()
	c.batchr.SetShader(s)
}

// EndShaderMode flushes and restores the default shader.
func (c *Context) EndShaderMode() {
	c.batchr.Draw()
	c.batchr.SetShader(nil)
}

// BeginBlendMode flushes and changes the GPU blend function.
func (c *Context) BeginBlendMode(mode backend.BlendMode) {
	c.batchr.Draw()
	c.batchr.SetBlendMode(mode)
	c.dev.SetBlend(true, mode)
}

// EndBlendMode flushes and restores alpha blending.
func (c *Context) EndBlendMode() {
	c.batchr.Draw()
	c.batchr.SetBlendMode(backend.BlendAlpha)
	c.dev.SetBlend(true, backend.BlendAlpha)
}
