package rf

import (
	"github.com/rfcore/rf/font"
	"github.com/rfcore/rf/pixel"
)

// Option configures a Context during NewContext.
type Option func(*contextOptions)

type contextOptions struct {
	vertexCapacity int
	clearColor     pixel.Color
	defaultFont    *font.Font
	skipDefaultFont bool
}

func defaultContextOptions() contextOptions {
	return contextOptions{
		vertexCapacity: 0, // 0 means "use batch.DefaultVertexCapacity"
		clearColor:     pixel.Black,
	}
}

// WithVertexCapacity overrides the per-multi-buffer-slot vertex capacity
// (default batch.DefaultVertexCapacity).
func WithVertexCapacity(n int) Option {
	return func(o *contextOptions) { o.vertexCapacity = n }
}

// WithClearColor overrides the color the backend clears to during
// bootstrap (default black).
func WithClearColor(c pixel.Color) Option {
	return func(o *contextOptions) { o.clearColor = c }
}

// WithDefaultFont injects an already-loaded font instead of rasterizing
// the built-in bitmap face — useful for tests that want to skip glyph
// rasterization, and for dependency injection of a custom default font.
func WithDefaultFont(f *font.Font) Option {
	return func(o *contextOptions) {
		o.defaultFont = f
		o.skipDefaultFont = true
	}
}

// WithNoDefaultFont skips loading any default font at all (DefaultFont()
// on the resulting Context then returns nil). Tests that don't exercise
// text use this to avoid rasterizing the built-in bitmap face into an atlas.
func WithNoDefaultFont() Option {
	return func(o *contextOptions) { o.skipDefaultFont = true }
}
