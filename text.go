package rf

import (
	"github.com/rfcore/rf/font"
	"github.com/rfcore/rf/pixel"
)

// DrawText draws text at (x, y) with the default font. Lines break only on
// '\n'. A Context created with WithNoDefaultFont draws nothing.
func (c *Context) DrawText(text string, x, y, size, spacing float32, tint pixel.Color) {
	c.DrawTextFont(c.defaultFont, text, x, y, size, spacing, tint)
}

// DrawTextFont is DrawText with an explicit font.
func (c *Context) DrawTextFont(f *font.Font, text string, x, y, size, spacing float32, tint pixel.Color) {
	if f == nil {
		return
	}
	font.DrawTextWrap(c.batchr, f, text, x, y, 0, 0, size, spacing, false, tint)
}

// DrawTextWrap lays text out inside the rect, word-wrapping at its width
// and clipping whole lines at its height, using the default font.
func (c *Context) DrawTextWrap(text string, rect Rectangle, size, spacing float32, wordWrap bool, tint pixel.Color) {
	if c.defaultFont == nil {
		return
	}
	font.DrawTextWrap(c.batchr, c.defaultFont, text, rect.X, rect.Y, rect.Width, rect.Height, size, spacing, wordWrap, tint)
}

// MeasureText reports the bounding box of text set in the default font.
func (c *Context) MeasureText(text string, size, spacing float32) (width, height float32) {
	return font.MeasureText(c.defaultFont, text, size, spacing)
}
