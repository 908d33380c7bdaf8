package pixel

import (
	stdimage "image"
	stdcolor "image/color"
)

// Image is a CPU-side raster: a byte buffer,
// its dimensions, mipmap count and format tag.
//
// Invariant: Data is non-nil iff Width > 0 && Height > 0; len(Data) equals
// MipCoverage(Width, Height, Format, Mipmaps).
type Image struct {
	Data    []byte
	Width   int
	Height  int
	Mipmaps int
	Format  Format
}

// NewImage allocates a zeroed, single-mip Image of the given format.
func NewImage(width, height int, format Format) *Image {
	if width <= 0 || height <= 0 {
		return &Image{}
	}
	return &Image{
		Data:    make([]byte, SizeForFormat(width, height, format)),
		Width:   width,
		Height:  height,
		Mipmaps: 1,
		Format:  format,
	}
}

// Copy returns a byte-identical deep copy.
func (img *Image) Copy() *Image {
	out := &Image{Width: img.Width, Height: img.Height, Mipmaps: img.Mipmaps, Format: img.Format}
	if img.Data != nil {
		out.Data = append([]byte(nil), img.Data...)
	}
	return out
}

// Valid reports whether the image carries backing pixel data.
func (img *Image) Valid() bool { return img.Data != nil && img.Width > 0 && img.Height > 0 }

// bytesPerPixelUncompressed is only meaningful for uncompressed formats — callers must
// check Format.Compressed() first.
func bytesPerPixelUncompressed(f Format) int {
	return int(f.BitsPerPixel()) / 8
}

// ToRGBA decodes the base mip level of an uncompressed image into the byte
// Color pivot. Compressed formats cannot be decoded by this engine
// and return nil — callers must check Format.Compressed() first.
func (img *Image) ToRGBA() []Color {
	if img.Format.Compressed() || !img.Valid() {
		return nil
	}
	n := img.Width * img.Height
	out := make([]Color, n)
	bpp := bytesPerPixelUncompressed(img.Format)
	for i := 0; i < n; i++ {
		off := i * bpp
		if off+bpp > len(img.Data) {
			break
		}
		out[i] = decodePixel(img.Data[off:off+bpp], img.Format)
	}
	return out
}

// FromRGBA encodes a Color pivot buffer back into an Image of the target
// format at the given dimensions (base mip level only).
func FromRGBA(pixels []Color, width, height int, format Format) *Image {
	img := NewImage(width, height, format)
	bpp := bytesPerPixelUncompressed(format)
	for i, c := range pixels {
		off := i * bpp
		if off+bpp > len(img.Data) {
			break
		}
		encodePixel(img.Data[off:off+bpp], c, format)
	}
	return img
}

// --- image.Image / draw.Image adapter, so golang.org/x/image/draw can
// resample an Image directly without an intermediate copy loop living in
// two places. ---

// AsGoImage exposes img as a standard library image.Image over its RGBA
// pivot, for use with golang.org/x/image/draw scalers. Only valid for
// uncompressed formats.
func (img *Image) AsGoImage() stdimage.Image {
	return &pivotImage{img: img, pixels: img.ToRGBA()}
}

type pivotImage struct {
	img    *Image
	pixels []Color
}

func (p *pivotImage) ColorModel() stdcolor.Model { return stdcolor.NRGBAModel }
func (p *pivotImage) Bounds() stdimage.Rectangle {
	return stdimage.Rect(0, 0, p.img.Width, p.img.Height)
}
func (p *pivotImage) At(x, y int) stdcolor.Color {
	if x < 0 || y < 0 || x >= p.img.Width || y >= p.img.Height {
		return stdcolor.NRGBA{}
	}
	c := p.pixels[y*p.img.Width+x]
	return stdcolor.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// pivotDrawImage is a mutable draw.Image target backed by a Color pivot
// buffer, later re-encoded into an Image at the source's original
// format — the destination of a Resize/Mipmaps scale.
type pivotDrawImage struct {
	pixels        []Color
	width, height int
}

func newPivotDrawImage(width, height int) *pivotDrawImage {
	return &pivotDrawImage{pixels: make([]Color, width*height), width: width, height: height}
}

func (p *pivotDrawImage) ColorModel() stdcolor.Model { return stdcolor.NRGBAModel }
func (p *pivotDrawImage) Bounds() stdimage.Rectangle {
	return stdimage.Rect(0, 0, p.width, p.height)
}
func (p *pivotDrawImage) At(x, y int) stdcolor.Color {
	if x < 0 || y < 0 || x >= p.width || y >= p.height {
		return stdcolor.NRGBA{}
	}
	c := p.pixels[y*p.width+x]
	return stdcolor.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}
func (p *pivotDrawImage) Set(x, y int, col stdcolor.Color) {
	if x < 0 || y < 0 || x >= p.width || y >= p.height {
		return
	}
	r, g, b, a := col.RGBA()
	p.pixels[y*p.width+x] = Color{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: uint8(a >> 8)}
}
