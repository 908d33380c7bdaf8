package pixel

// Color is the byte-RGBA pivot representation: one of the two
// canonical forms every uncompressed conversion passes through.
type Color struct{ R, G, B, A uint8 }

// Vec4 is the normalized-float pivot representation, each component in
// [0,1].
type Vec4 struct{ R, G, B, A float32 }

// Normalize converts a byte Color to its normalized Vec4.
func (c Color) Normalize() Vec4 {
	return Vec4{
		R: float32(c.R) / 255,
		G: float32(c.G) / 255,
		B: float32(c.B) / 255,
		A: float32(c.A) / 255,
	}
}

// Denormalize converts a Vec4 back to a byte Color, clamping to [0,1]
// before rounding, so Normalize followed by Denormalize is the identity
// within ±1/255.
func (v Vec4) Denormalize() Color {
	clamp := func(f float32) uint8 {
		if f <= 0 {
			return 0
		}
		if f >= 1 {
			return 255
		}
		return uint8(f*255 + 0.5)
	}
	return Color{R: clamp(v.R), G: clamp(v.G), B: clamp(v.B), A: clamp(v.A)}
}

// Predefined palette, literal values kept for content authored against
// the classic names.
var (
	LightGray = Color{200, 200, 200, 255}
	Gray      = Color{130, 130, 130, 255}
	DarkGray  = Color{80, 80, 80, 255}
	Yellow    = Color{253, 249, 0, 255}
	Gold      = Color{255, 203, 0, 255}
	Orange    = Color{255, 161, 0, 255}
	Pink      = Color{255, 109, 194, 255}
	Red       = Color{230, 41, 55, 255}
	Maroon    = Color{190, 33, 55, 255}
	Green     = Color{0, 228, 48, 255}
	Lime      = Color{0, 158, 47, 255}
	DarkGreen = Color{0, 117, 44, 255}
	SkyBlue   = Color{102, 191, 255, 255}
	Blue      = Color{0, 121, 241, 255}
	DarkBlue  = Color{0, 82, 172, 255}
	Purple    = Color{200, 122, 255, 255}
	Violet    = Color{135, 60, 190, 255}
	DarkPurple = Color{112, 31, 126, 255}
	Beige     = Color{211, 176, 131, 255}
	Brown     = Color{127, 106, 79, 255}
	DarkBrown = Color{76, 63, 47, 255}
	White     = Color{255, 255, 255, 255}
	Black     = Color{0, 0, 0, 255}
	Blank     = Color{0, 0, 0, 0}
	Magenta   = Color{255, 0, 255, 255}
	RayWhite  = Color{245, 245, 245, 255}
)
