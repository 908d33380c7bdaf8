package pixel

// Draw composites src onto dst at (dstX, dstY) using the standard
// over-operator, tinted by tint, reading src through srcRect (its own
// bounds if srcRect is the zero Rect). Both images are decoded through
// the RGBA pivot and dst is re-encoded at its original format afterward,
// matching the rest of the engine's "always round-trip through Color"
// discipline.
func Draw(dst *Image, src *Image, srcRect Rect, dstX, dstY int, tint Color) *Image {
	if !dst.Valid() || !src.Valid() {
		return dst
	}
	if srcRect.W == 0 && srcRect.H == 0 {
		srcRect = Rect{X: 0, Y: 0, W: src.Width, H: src.Height}
	}
	dstPx := dst.ToRGBA()
	srcPx := src.ToRGBA()
	if dstPx == nil || srcPx == nil {
		return dst
	}

	for sy := 0; sy < srcRect.H; sy++ {
		py := srcRect.Y + sy
		if py < 0 || py >= src.Height {
			continue
		}
		ty := dstY + sy
		if ty < 0 || ty >= dst.Height {
			continue
		}
		for sx := 0; sx < srcRect.W; sx++ {
			px := srcRect.X + sx
			if px < 0 || px >= src.Width {
				continue
			}
			tx := dstX + sx
			if tx < 0 || tx >= dst.Width {
				continue
			}
			sc := tintColor(srcPx[py*src.Width+px], tint)
			di := ty*dst.Width + tx
			dstPx[di] = over(sc, dstPx[di])
		}
	}
	return FromRGBA(dstPx, dst.Width, dst.Height, dst.Format)
}

// tintColor multiplies c by tint component-wise in normalized space.
func tintColor(c, tint Color) Color {
	if tint == (Color{R: 255, G: 255, B: 255, A: 255}) {
		return c
	}
	return Color{
		R: mulChannel(c.R, tint.R),
		G: mulChannel(c.G, tint.G),
		B: mulChannel(c.B, tint.B),
		A: mulChannel(c.A, tint.A),
	}
}

func mulChannel(a, b uint8) uint8 {
	return uint8(uint32(a) * uint32(b) / 255)
}

// over implements the Porter-Duff source-over operator with src already
// including its own alpha; dst is treated as opaque background when its
// alpha is being accumulated, matching the canvas blit semantics used by
// the batch renderer's render-to-texture path.
func over(src, dst Color) Color {
	if src.A == 255 {
		return src
	}
	if src.A == 0 {
		return dst
	}
	sa := float32(src.A) / 255
	da := 1 - sa
	return Color{
		R: uint8(float32(src.R)*sa + float32(dst.R)*da),
		G: uint8(float32(src.G)*sa + float32(dst.G)*da),
		B: uint8(float32(src.B)*sa + float32(dst.B)*da),
		A: uint8(float32(src.A) + float32(dst.A)*da),
	}
}
