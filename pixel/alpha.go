package pixel

import "log/slog"

// AlphaMask sets img's alpha channel from mask's grayscale channel. img
// and mask must share dimensions; if img was a grayscale format it is
// promoted to gray-alpha.
func AlphaMask(img *Image, mask *Image) *Image {
	if img.Width != mask.Width || img.Height != mask.Height {
		slog.Warn("pixel: AlphaMask requires equal dimensions")
		return img
	}
	src := img.ToRGBA()
	maskPixels := mask.ToRGBA()
	for i := range src {
		src[i].A = luminance(maskPixels[i])
	}
	format := img.Format
	if format == FormatR8 {
		format = FormatR8A8
	}
	return FromRGBA(src, img.Width, img.Height, format)
}

// AlphaClear replaces every pixel whose alpha is <= threshold with color.
func AlphaClear(img *Image, color Color, threshold uint8) *Image {
	px := img.ToRGBA()
	for i, c := range px {
		if c.A <= threshold {
			px[i] = color
		}
	}
	return FromRGBA(px, img.Width, img.Height, img.Format)
}

// AlphaPremultiply multiplies RGB by A/255 in place (conceptually —
// returns a new Image, the caller replaces the old one).
func AlphaPremultiply(img *Image) *Image {
	px := img.ToRGBA()
	for i, c := range px {
		a := float32(c.A) / 255
		px[i] = Color{
			R: uint8(float32(c.R) * a),
			G: uint8(float32(c.G) * a),
			B: uint8(float32(c.B) * a),
			A: c.A,
		}
	}
	return FromRGBA(px, img.Width, img.Height, img.Format)
}

// AlphaCrop crops img to the bounding rectangle of pixels whose alpha
// exceeds threshold.
func AlphaCrop(img *Image, threshold uint8) *Image {
	px := img.ToRGBA()
	minX, minY, maxX, maxY := img.Width, img.Height, -1, -1
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			if px[y*img.Width+x].A > threshold {
				if x < minX {
					minX = x
				}
				if y < minY {
					minY = y
				}
				if x > maxX {
					maxX = x
				}
				if y > maxY {
					maxY = y
				}
			}
		}
	}
	if maxX < minX || maxY < minY {
		slog.Warn("pixel: AlphaCrop found no pixels above threshold")
		return img
	}
	return Crop(img, Rect{X: minX, Y: minY, W: maxX - minX + 1, H: maxY - minY + 1})
}

// Rect is an integer pixel rectangle used by Crop and Draw.
type Rect struct{ X, Y, W, H int }

// Crop returns img restricted to rect, clamped to image bounds. An empty
// intersection no-ops with a warning rather than returning a zero image.
func Crop(img *Image, rect Rect) *Image {
	x0, y0 := clampInt(rect.X, 0, img.Width), clampInt(rect.Y, 0, img.Height)
	x1, y1 := clampInt(rect.X+rect.W, 0, img.Width), clampInt(rect.Y+rect.H, 0, img.Height)
	if x1 <= x0 || y1 <= y0 {
		slog.Warn("pixel: Crop rect does not intersect image bounds")
		return img
	}
	if x0 == 0 && y0 == 0 && x1 == img.Width && y1 == img.Height {
		return img.Copy()
	}
	src := img.ToRGBA()
	w, h := x1-x0, y1-y0
	dst := make([]Color, w*h)
	for y := 0; y < h; y++ {
		copy(dst[y*w:(y+1)*w], src[(y0+y)*img.Width+x0:(y0+y)*img.Width+x1])
	}
	return FromRGBA(dst, w, h, img.Format)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
