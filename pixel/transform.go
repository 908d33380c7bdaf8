package pixel

// Tint multiplies every pixel by color component-wise in normalized space.
func Tint(img *Image, color Color) *Image {
	px := img.ToRGBA()
	for i, c := range px {
		px[i] = tintColor(c, color)
	}
	return FromRGBA(px, img.Width, img.Height, img.Format)
}

// Invert flips RGB channels (255-v), leaving alpha untouched.
func Invert(img *Image) *Image {
	px := img.ToRGBA()
	for i, c := range px {
		px[i] = Color{R: 255 - c.R, G: 255 - c.G, B: 255 - c.B, A: c.A}
	}
	return FromRGBA(px, img.Width, img.Height, img.Format)
}

// Grayscale replaces RGB with the luminance-weighted average.
func Grayscale(img *Image) *Image {
	px := img.ToRGBA()
	for i, c := range px {
		v := uint8((uint32(c.R)*299 + uint32(c.G)*587 + uint32(c.B)*114) / 1000)
		px[i] = Color{R: v, G: v, B: v, A: c.A}
	}
	return FromRGBA(px, img.Width, img.Height, img.Format)
}

// Contrast adjusts contrast by factor in [-1, 1]: -1 flattens to mid-gray,
// 0 is a no-op, 1 pushes toward pure black/white.
func Contrast(img *Image, factor float32) *Image {
	factor = clampF32(factor, -1, 1)
	slope := (1 + factor) / (1 - factor + 1e-6)
	apply := func(v uint8) uint8 {
		f := (float32(v)/255 - 0.5) * slope + 0.5
		return uint8(clamp01(f) * 255)
	}
	px := img.ToRGBA()
	for i, c := range px {
		px[i] = Color{R: apply(c.R), G: apply(c.G), B: apply(c.B), A: c.A}
	}
	return FromRGBA(px, img.Width, img.Height, img.Format)
}

// Brightness shifts every channel by factor in [-1, 1] (-1 black, 1 white).
func Brightness(img *Image, factor float32) *Image {
	factor = clampF32(factor, -1, 1)
	delta := factor * 255
	apply := func(v uint8) uint8 {
		return uint8(clamp01((float32(v) + delta) / 255) * 255)
	}
	px := img.ToRGBA()
	for i, c := range px {
		px[i] = Color{R: apply(c.R), G: apply(c.G), B: apply(c.B), A: c.A}
	}
	return FromRGBA(px, img.Width, img.Height, img.Format)
}

// ReplaceColor swaps every pixel equal to from with to.
func ReplaceColor(img *Image, from, to Color) *Image {
	px := img.ToRGBA()
	for i, c := range px {
		if c == from {
			px[i] = to
		}
	}
	return FromRGBA(px, img.Width, img.Height, img.Format)
}

// FlipHorizontal mirrors img left-to-right. Applying it twice is the
// identity.
func FlipHorizontal(img *Image) *Image {
	px := img.ToRGBA()
	w, h := img.Width, img.Height
	out := make([]Color, len(px))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			out[y*w+x] = px[y*w+(w-1-x)]
		}
	}
	return FromRGBA(out, w, h, img.Format)
}

// FlipVertical mirrors img top-to-bottom.
func FlipVertical(img *Image) *Image {
	px := img.ToRGBA()
	w, h := img.Width, img.Height
	out := make([]Color, len(px))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			out[y*w+x] = px[(h-1-y)*w+x]
		}
	}
	return FromRGBA(out, w, h, img.Format)
}

// RotateCW rotates img 90 degrees clockwise, swapping dimensions.
// RotateCW followed by RotateCCW is the identity.
func RotateCW(img *Image) *Image {
	px := img.ToRGBA()
	w, h := img.Width, img.Height
	out := make([]Color, len(px))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			// (x,y) in source -> (h-1-y, x) in a w-tall, h-wide result.
			out[x*h+(h-1-y)] = px[y*w+x]
		}
	}
	return FromRGBA(out, h, w, img.Format)
}

// RotateCCW rotates img 90 degrees counter-clockwise, swapping dimensions.
func RotateCCW(img *Image) *Image {
	px := img.ToRGBA()
	w, h := img.Width, img.Height
	out := make([]Color, len(px))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			// (x,y) in source -> (y, w-1-x) in a w-tall, h-wide result.
			out[(w-1-x)*h+y] = px[y*w+x]
		}
	}
	return FromRGBA(out, h, w, img.Format)
}

func clampF32(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
