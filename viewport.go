package rf

import (
	"github.com/rfcore/rf/batch"
	"github.com/rfcore/rf/internal/linear"
)

// fbPolicy is the resolved framebuffer-fit policy recomputed whenever
// screen or display sizes change: the render-target size, the uniform or
// non-uniform screen-scaling matrix, and the border-bar offset subtracted
// from the viewport on each axis.
type fbPolicy struct {
	render  Size
	scaling linear.M4
	offset  Size
}

// computeFramebufferPolicy fits screen inside display:
//
//   - screen bigger than display on either axis: downscale — render at
//     display size, scale uniformly by min(display/screen), and place the
//     content with border bars on the excess axis.
//   - screen smaller than display on both axes: upscale — render at screen
//     size, identity scaling, zero offsets.
//   - equal: identity scaling, zero offsets.
func computeFramebufferPolicy(screen, display Size) fbPolicy {
	if screen == display {
		return fbPolicy{render: display, scaling: linear.Identity4()}
	}

	if screen.Width > display.Width || screen.Height > display.Height {
		sx := float32(display.Width) / float32(screen.Width)
		sy := float32(display.Height) / float32(screen.Height)
		scale := sx
		if sy < scale {
			scale = sy
		}
		offX := int(float32(display.Width) - float32(screen.Width)*scale)
		offY := int(float32(display.Height) - float32(screen.Height)*scale)
		return fbPolicy{
			render:  display,
			scaling: linear.Scale4(scale, scale, 1),
			offset:  Size{Width: offX, Height: offY},
		}
	}

	// screen < display on both axes: render at screen size; no offset is
	// needed since render == screen.
	return fbPolicy{render: screen, scaling: linear.Identity4()}
}

// applyViewport issues the viewport GL call and resets the projection/
// modelview matrices: viewport is (offset/2, offset/2, render -
// offset); projection becomes an orthographic projection with (0,0) at the
// top-left and (width,height) at the bottom-right; modelview resets to
// identity.
func (c *Context) applyViewport() {
	w, h := c.sizes.render.Width, c.sizes.render.Height
	ox, oy := c.policy.offset.Width, c.policy.offset.Height

	c.dev.SetViewport(ox/2, oy/2, w-ox, h-oy)

	c.matrix.SetMode(batch.ModeProjection)
	c.matrix.LoadIdentity()
	c.matrix.Ortho(0, float32(w), float32(h), 0, -1, 1)
	c.matrix.SetMode(batch.ModeModelview)
	c.matrix.LoadIdentity()
}
