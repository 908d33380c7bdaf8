package pixel

import "golang.org/x/image/draw"

// Mipmaps appends mip levels to img's existing buffer, halving dimensions
// (clamped to >= 1) until reaching 1x1. Each level is produced by the
// bicubic resizer applied to a copy of the base level.
func Mipmaps(img *Image) *Image {
	if img.Format.Compressed() || !img.Valid() {
		return img
	}
	levels := [][]byte{img.Data}
	w, h := img.Width, img.Height
	base := img.Copy()
	base.Mipmaps = 1
	for w > 1 || h > 1 {
		if w > 1 {
			w >>= 1
		}
		if h > 1 {
			h >>= 1
		}
		level := resizeWith(base, w, h, draw.CatmullRom)
		levels = append(levels, level.Data)
	}

	out := &Image{Width: img.Width, Height: img.Height, Format: img.Format, Mipmaps: len(levels)}
	for _, lvl := range levels {
		out.Data = append(out.Data, lvl...)
	}
	return out
}
