package rf

import (
	"github.com/rfcore/rf/backend"
	"github.com/rfcore/rf/pixel"
	"github.com/rfcore/rf/texture"
)

// DrawRectangle emits an axis-aligned solid quad at (x, y) sized (w, h),
// untextured (bound to the default white texture) and tinted col. Vertex
// order is top-left, top-right, bottom-right, bottom-left — the order the
// draw path relies on for quad indexing.
func (c *Context) DrawRectangle(x, y, w, h float32, col pixel.Color) {
	c.batchr.EnableTexture(c.defaultTexture.Handle)
	c.batchr.Begin(backend.Quads)
	c.batchr.ColorPixel(col)
	c.batchr.TexCoord2f(0, 0)
	c.batchr.Vertex2f(x, y)
	c.batchr.TexCoord2f(1, 0)
	c.batchr.Vertex2f(x+w, y)
	c.batchr.TexCoord2f(1, 1)
	c.batchr.Vertex2f(x+w, y+h)
	c.batchr.TexCoord2f(0, 1)
	c.batchr.Vertex2f(x, y+h)
	c.batchr.End()
}

// DrawRectangleRec is DrawRectangle taking a Rectangle instead of four
// scalars.
func (c *Context) DrawRectangleRec(r Rectangle, col pixel.Color) {
	c.DrawRectangle(r.X, r.Y, r.Width, r.Height, col)
}

// DrawRectangleLines outlines a rectangle with four line segments instead
// of a filled quad.
func (c *Context) DrawRectangleLines(x, y, w, h float32, col pixel.Color) {
	c.DrawLine(x, y, x+w, y, col)
	c.DrawLine(x+w, y, x+w, y+h, col)
	c.DrawLine(x+w, y+h, x, y+h, col)
	c.DrawLine(x, y+h, x, y, col)
}

// DrawLine emits a single line segment from (x1, y1) to (x2, y2).
func (c *Context) DrawLine(x1, y1, x2, y2 float32, col pixel.Color) {
	c.batchr.EnableTexture(c.defaultTexture.Handle)
	c.batchr.Begin(backend.Lines)
	c.batchr.ColorPixel(col)
	c.batchr.Vertex2f(x1, y1)
	c.batchr.ColorPixel(col)
	c.batchr.Vertex2f(x2, y2)
	c.batchr.End()
}

// DrawTriangle emits a single filled triangle, vertices in the order
// given.
func (c *Context) DrawTriangle(x1, y1, x2, y2, x3, y3 float32, col pixel.Color) {
	c.batchr.EnableTexture(c.defaultTexture.Handle)
	c.batchr.Begin(backend.Triangles)
	c.batchr.ColorPixel(col)
	c.batchr.Vertex2f(x1, y1)
	c.batchr.ColorPixel(col)
	c.batchr.Vertex2f(x2, y2)
	c.batchr.ColorPixel(col)
	c.batchr.Vertex2f(x3, y3)
	c.batchr.End()
}

// DrawTexture draws tex at (x, y) at its native size, tinted tint (White
// for no tint). Consecutive draws of the same texture merge into one draw
// call without an intervening flush.
func (c *Context) DrawTexture(tex texture.Texture, x, y float32, tint pixel.Color) {
	c.DrawTextureRec(tex, Rectangle{0, 0, float32(tex.Width), float32(tex.Height)}, x, y, tint)
}

// DrawTextureRec draws the src sub-rectangle of tex (in texture pixel
// space) at screen position (x, y), at src's size, tinted tint.
func (c *Context) DrawTextureRec(tex texture.Texture, src Rectangle, x, y float32, tint pixel.Color) {
	c.batchr.EnableTexture(tex.Handle)
	c.batchr.Begin(backend.Quads)

	var u0, v0, u1, v1 float32
	if tex.Width > 0 && tex.Height > 0 {
		u0 = src.X / float32(tex.Width)
		v0 = src.Y / float32(tex.Height)
		u1 = (src.X + src.Width) / float32(tex.Width)
		v1 = (src.Y + src.Height) / float32(tex.Height)
	}

	c.batchr.ColorPixel(tint)
	c.batchr.TexCoord2f(u0, v0)
	c.batchr.Vertex2f(x, y)
	c.batchr.TexCoord2f(u1, v0)
	c.batchr.Vertex2f(x+src.Width, y)
	c.batchr.TexCoord2f(u1, v1)
	c.batchr.Vertex2f(x+src.Width, y+src.Height)
	c.batchr.TexCoord2f(u0, v1)
	c.batchr.Vertex2f(x, y+src.Height)
	c.batchr.End()
}

// --- package-level helpers against the global context ---

// DrawRectangle draws against CurrentContext, the package-level
// convenience alongside the context-scoped API.
func DrawRectangle(x, y, w, h float32, col pixel.Color) {
	if ctx := CurrentContext(); ctx != nil {
		ctx.DrawRectangle(x, y, w, h, col)
	}
}

// DrawLine draws against CurrentContext.
func DrawLine(x1, y1, x2, y2 float32, col pixel.Color) {
	if ctx := CurrentContext(); ctx != nil {
		ctx.DrawLine(x1, y1, x2, y2, col)
	}
}

// DrawTriangle draws against CurrentContext.
func DrawTriangle(x1, y1, x2, y2, x3, y3 float32, col pixel.Color) {
	if ctx := CurrentContext(); ctx != nil {
		ctx.DrawTriangle(x1, y1, x2, y2, x3, y3, col)
	}
}

// ClearBackground clears CurrentContext's target.
func ClearBackground(col pixel.Color) {
	if ctx := CurrentContext(); ctx != nil {
		ctx.ClearBackground(col)
	}
}
