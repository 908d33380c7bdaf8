package pixel

import (
	"log/slog"
	"math"
)

// decodePixel reads one pixel's raw bytes (in format f) into the Color
// pivot.
func decodePixel(b []byte, f Format) Color {
	switch f {
	case FormatR8:
		return Color{R: b[0], G: b[0], B: b[0], A: 255}
	case FormatR8A8:
		return Color{R: b[0], G: b[0], B: b[0], A: b[1]}
	case FormatR5G6B5:
		v := uint16(b[0]) | uint16(b[1])<<8
		r := uint8((v >> 11) & 0x1F)
		g := uint8((v >> 5) & 0x3F)
		bl := uint8(v & 0x1F)
		return Color{R: expand(r, 5), G: expand(g, 6), B: expand(bl, 5), A: 255}
	case FormatR8G8B8:
		return Color{R: b[0], G: b[1], B: b[2], A: 255}
	case FormatR5G5B5A1:
		v := uint16(b[0]) | uint16(b[1])<<8
		r := uint8((v >> 11) & 0x1F)
		g := uint8((v >> 6) & 0x1F)
		bl := uint8((v >> 1) & 0x1F)
		a := uint8(v & 0x1)
		alpha := uint8(0)
		if a != 0 {
			alpha = 255
		}
		return Color{R: expand(r, 5), G: expand(g, 5), B: expand(bl, 5), A: alpha}
	case FormatR4G4B4A4:
		v := uint16(b[0]) | uint16(b[1])<<8
		r := uint8((v >> 12) & 0xF)
		g := uint8((v >> 8) & 0xF)
		bl := uint8((v >> 4) & 0xF)
		a := uint8(v & 0xF)
		return Color{R: expand(r, 4), G: expand(g, 4), B: expand(bl, 4), A: expand(a, 4)}
	case FormatR8G8B8A8:
		return Color{R: b[0], G: b[1], B: b[2], A: b[3]}
	case FormatR32:
		v := math.Float32frombits(uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24)
		g := uint8(clamp01(v) * 255)
		return Color{R: g, G: g, B: g, A: 255}
	case FormatR32G32B32:
		r := readF32(b[0:4])
		g := readF32(b[4:8])
		bl := readF32(b[8:12])
		return Color{R: uint8(clamp01(r) * 255), G: uint8(clamp01(g) * 255), B: uint8(clamp01(bl) * 255), A: 255}
	case FormatR32G32B32A32:
		r := readF32(b[0:4])
		g := readF32(b[4:8])
		bl := readF32(b[8:12])
		a := readF32(b[12:16])
		return Color{
			R: uint8(clamp01(r) * 255), G: uint8(clamp01(g) * 255),
			B: uint8(clamp01(bl) * 255), A: uint8(clamp01(a) * 255),
		}
	default:
		return Color{}
	}
}

// encodePixel writes c into b using format f.
func encodePixel(b []byte, c Color, f Format) {
	switch f {
	case FormatR8:
		b[0] = luminance(c)
	case FormatR8A8:
		b[0], b[1] = luminance(c), c.A
	case FormatR5G6B5:
		v := uint16(quantize(c.R, 5))<<11 | uint16(quantize(c.G, 6))<<5 | uint16(quantize(c.B, 5))
		b[0], b[1] = byte(v), byte(v>>8)
	case FormatR8G8B8:
		b[0], b[1], b[2] = c.R, c.G, c.B
	case FormatR5G5B5A1:
		a := uint16(0)
		if c.A >= 128 {
			a = 1
		}
		v := uint16(quantize(c.R, 5))<<11 | uint16(quantize(c.G, 5))<<6 | uint16(quantize(c.B, 5))<<1 | a
		b[0], b[1] = byte(v), byte(v>>8)
	case FormatR4G4B4A4:
		v := uint16(quantize(c.R, 4))<<12 | uint16(quantize(c.G, 4))<<8 | uint16(quantize(c.B, 4))<<4 | uint16(quantize(c.A, 4))
		b[0], b[1] = byte(v), byte(v>>8)
	case FormatR8G8B8A8:
		b[0], b[1], b[2], b[3] = c.R, c.G, c.B, c.A
	case FormatR32:
		writeF32(b[0:4], float32(luminance(c))/255)
	case FormatR32G32B32:
		writeF32(b[0:4], float32(c.R)/255)
		writeF32(b[4:8], float32(c.G)/255)
		writeF32(b[8:12], float32(c.B)/255)
	case FormatR32G32B32A32:
		writeF32(b[0:4], float32(c.R)/255)
		writeF32(b[4:8], float32(c.G)/255)
		writeF32(b[8:12], float32(c.B)/255)
		writeF32(b[12:16], float32(c.A)/255)
	}
}

func expand(v uint8, bits int) uint8 {
	max := uint32(1)<<uint(bits) - 1
	return uint8(uint32(v) * 255 / max)
}

func quantize(v uint8, bits int) uint8 {
	max := uint32(1)<<uint(bits) - 1
	return uint8(uint32(v) * max / 255)
}

func luminance(c Color) uint8 {
	return uint8((uint32(c.R) + uint32(c.G) + uint32(c.B)) / 3)
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func readF32(b []byte) float32 {
	return math.Float32frombits(uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24)
}

func writeF32(b []byte, v float32) {
	bits := math.Float32bits(v)
	b[0], b[1], b[2], b[3] = byte(bits), byte(bits>>8), byte(bits>>16), byte(bits>>24)
}

// ImageFormat converts img to newFormat via the RGBA pivot. A
// compressed source or target is rejected: the operation is a no-op with
// a warning, never a silent truncation. Mipmaps present before the call
// are discarded — the caller must call Mipmaps again if it wants them.
func ImageFormat(img *Image, newFormat Format) *Image {
	if img.Format.Compressed() || newFormat.Compressed() {
		slog.Warn("pixel: ImageFormat rejects compressed formats", "from", img.Format, "to", newFormat)
		return img
	}
	if img.Format == newFormat {
		return img
	}
	pixels := img.ToRGBA()
	return FromRGBA(pixels, img.Width, img.Height, newFormat)
}
