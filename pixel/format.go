// Package pixel implements the Pixel-Format Engine: the CPU-side raster
// manipulation that feeds texture uploads — format conversion, mipmap
// generation, dithering, compositing and the procedural image generators.
//
// Every conversion that touches an uncompressed format routes through one
// of two pivot representations: a byte [Color] buffer or a normalized
// [Vec4] buffer. Compressed formats can be stored and measured but
// never decoded; conversions touching one are rejected with a warning.
package pixel

import "math"

// Format tags every uncompressed and compressed layout the renderer
// understands. Treat the numeric ordering as an implementation detail —
// use Format.Compressed, never `f >= someThreshold`.
type Format int

const (
	FormatR8 Format = iota
	FormatR8A8
	FormatR5G6B5
	FormatR8G8B8
	FormatR5G5B5A1
	FormatR4G4B4A4
	FormatR8G8B8A8
	FormatR32
	FormatR32G32B32
	FormatR32G32B32A32

	FormatDXT1RGB
	FormatDXT1RGBA
	FormatDXT3RGBA
	FormatDXT5RGBA
	FormatETC1RGB
	FormatETC2RGB
	FormatETC2EACRGBA
	FormatPVRTRGB
	FormatPVRTRGBA
	FormatASTC4x4RGBA
	FormatASTC8x8RGBA
)

// bitsPerPixel is indexed by Format; compressed formats store bits per
// pixel as a fraction expressed over a 4x4 (or 8x8 for ASTC 8x8) block,
// as an average over the compression block.
var bitsPerPixel = map[Format]float64{
	FormatR8:            8,
	FormatR8A8:          16,
	FormatR5G6B5:        16,
	FormatR8G8B8:        24,
	FormatR5G5B5A1:      16,
	FormatR4G4B4A4:      16,
	FormatR8G8B8A8:      32,
	FormatR32:           32,
	FormatR32G32B32:     96,
	FormatR32G32B32A32:  128,
	FormatDXT1RGB:       4,
	FormatDXT1RGBA:      4,
	FormatDXT3RGBA:      8,
	FormatDXT5RGBA:      8,
	FormatETC1RGB:       4,
	FormatETC2RGB:       4,
	FormatETC2EACRGBA:   8,
	FormatPVRTRGB:       4,
	FormatPVRTRGBA:      4,
	FormatASTC4x4RGBA:   8,
	FormatASTC8x8RGBA:   2,
}

// Compressed reports whether f is a block-compressed layout. Per the
// design notes, this is the only thing callers should test — never the
// enum's numeric value.
func (f Format) Compressed() bool {
	return f >= FormatDXT1RGB
}

// BitsPerPixel returns the average bits-per-pixel for f.
func (f Format) BitsPerPixel() float64 { return bitsPerPixel[f] }

// SizeForFormat returns ⌈width*height*bpp/8⌉, the byte size of a single
// mip level at the given dimensions.
func SizeForFormat(width, height int, f Format) int {
	bits := float64(width) * float64(height) * f.BitsPerPixel()
	return int(math.Ceil(bits / 8))
}

// MipCoverage returns Σ_{i=0..mipmaps-1} size_for_format(max(w>>i,1), max(h>>i,1), f)
// — the total byte count backing an image with the given mipmap count,
// for a full mip chain.
func MipCoverage(width, height int, f Format, mipmaps int) int {
	if mipmaps < 1 {
		mipmaps = 1
	}
	total := 0
	w, h := width, height
	for i := 0; i < mipmaps; i++ {
		total += SizeForFormat(w, h, f)
		if w > 1 {
			w >>= 1
		}
		if h > 1 {
			h >>= 1
		}
	}
	return total
}
