package pixel

// Dither applies Floyd-Steinberg error diffusion while quantizing img's
// RGBA pivot down to rBits/gBits/bBits/aBits per channel, then re-encodes
// at format. The requested bit depths must sum to 16 or fewer.
func Dither(img *Image, format Format, rBits, gBits, bBits, aBits int) *Image {
	if format.Compressed() || rBits+gBits+bBits+aBits > 16 {
		return img
	}
	px := img.ToRGBA()
	if px == nil {
		return img
	}
	w, h := img.Width, img.Height

	errR := make([]float32, w*h)
	errG := make([]float32, w*h)
	errB := make([]float32, w*h)
	errA := make([]float32, w*h)

	out := make([]Color, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*w + x
			c := px[i]
			r := clamp01f(float32(c.R) + errR[i])
			g := clamp01f(float32(c.G) + errG[i])
			b := clamp01f(float32(c.B) + errB[i])
			a := clamp01f(float32(c.A) + errA[i])

			qr := quantizeBits(r, rBits)
			qg := quantizeBits(g, gBits)
			qb := quantizeBits(b, bBits)
			qa := quantizeBits(a, aBits)
			out[i] = Color{R: qr, G: qg, B: qb, A: qa}

			dr, dg, db, da := r-float32(qr), g-float32(qg), b-float32(qb), a-float32(qa)
			diffuse(errR, w, h, x, y, dr)
			diffuse(errG, w, h, x, y, dg)
			diffuse(errB, w, h, x, y, db)
			diffuse(errA, w, h, x, y, da)
		}
	}
	return FromRGBA(out, w, h, format)
}

// diffuse spreads a quantization error to the four Floyd-Steinberg
// neighbors using the canonical 7/16, 3/16, 5/16, 1/16 coefficients.
func diffuse(buf []float32, w, h, x, y int, e float32) {
	add := func(nx, ny int, weight float32) {
		if nx < 0 || nx >= w || ny < 0 || ny >= h {
			return
		}
		buf[ny*w+nx] += e * weight
	}
	add(x+1, y, 7.0/16)
	add(x-1, y+1, 3.0/16)
	add(x, y+1, 5.0/16)
	add(x+1, y+1, 1.0/16)
}

func quantizeBits(v float32, bits int) uint8 {
	if bits <= 0 {
		return 0
	}
	levels := uint32(1)<<uint(bits) - 1
	step := 255.0 / float32(levels)
	q := clamp01f(v)
	n := uint32(q/step + 0.5)
	if n > levels {
		n = levels
	}
	return uint8(float32(n) * step)
}

func clamp01f(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}
