package pixel

import "golang.org/x/image/draw"

// Resize scales img to (width, height) using bicubic resampling
// (Catmull-Rom), operating on the RGBA pivot.
func Resize(img *Image, width, height int) *Image {
	return resizeWith(img, width, height, draw.CatmullRom)
}

// ResizeNN scales img to (width, height) using nearest-neighbor sampling.
func ResizeNN(img *Image, width, height int) *Image {
	return resizeWith(img, width, height, draw.NearestNeighbor)
}

func resizeWith(img *Image, width, height int, scaler draw.Scaler) *Image {
	if img.Format.Compressed() || width <= 0 || height <= 0 {
		return img
	}
	if width == img.Width && height == img.Height {
		return img.Copy()
	}
	src := img.AsGoImage()
	dst := newPivotDrawImage(width, height)
	scaler.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return FromRGBA(dst.pixels, width, height, img.Format)
}

// ResizeCanvas enlarges or shrinks the canvas to (width, height), placing
// the original content at (offsetX, offsetY) and filling any newly
// exposed area with fill.
func ResizeCanvas(img *Image, width, height, offsetX, offsetY int, fill Color) *Image {
	if width <= 0 || height <= 0 {
		return img
	}
	src := img.ToRGBA()
	dst := make([]Color, width*height)
	for i := range dst {
		dst[i] = fill
	}
	for y := 0; y < img.Height; y++ {
		dy := y + offsetY
		if dy < 0 || dy >= height {
			continue
		}
		for x := 0; x < img.Width; x++ {
			dx := x + offsetX
			if dx < 0 || dx >= width {
				continue
			}
			dst[dy*width+dx] = src[y*img.Width+x]
		}
	}
	return FromRGBA(dst, width, height, img.Format)
}

// ToPOT pads img to the next power-of-two dimensions, filling new pixels
// with fill.
func ToPOT(img *Image, fill Color) *Image {
	w, h := nextPOT(img.Width), nextPOT(img.Height)
	if w == img.Width && h == img.Height {
		return img.Copy()
	}
	return ResizeCanvas(img, w, h, 0, 0, fill)
}

func nextPOT(v int) int {
	if v <= 1 {
		return 1
	}
	p := 1
	for p < v {
		p <<= 1
	}
	return p
}
