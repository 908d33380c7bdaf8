package pixel

import "math/rand"

// GenSolid returns a single-color image of the given dimensions.
func GenSolid(width, height int, color Color) *Image {
	px := make([]Color, width*height)
	for i := range px {
		px[i] = color
	}
	return FromRGBA(px, width, height, FormatR8G8B8A8)
}

// GradientDirection selects the axis GenGradientLinear interpolates along.
type GradientDirection int

const (
	GradientVertical GradientDirection = iota
	GradientHorizontal
)

// GenGradientLinear interpolates between top/left and bottom/right.
func GenGradientLinear(width, height int, dir GradientDirection, start, end Color) *Image {
	px := make([]Color, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var t float32
			if dir == GradientHorizontal {
				t = float32(x) / float32(maxInt(width-1, 1))
			} else {
				t = float32(y) / float32(maxInt(height-1, 1))
			}
			px[y*width+x] = lerpColor(start, end, t)
		}
	}
	return FromRGBA(px, width, height, FormatR8G8B8A8)
}

// GenGradientRadial interpolates from center (inner) to edge (outer),
// density controlling how quickly the falloff saturates.
func GenGradientRadial(width, height int, density float32, inner, outer Color) *Image {
	px := make([]Color, width*height)
	cx, cy := float32(width)/2, float32(height)/2
	radius := maxF32(cx, cy)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			dx, dy := float32(x)-cx, float32(y)-cy
			dist := sqrtF32(dx*dx+dy*dy) / radius
			t := clamp01(dist - density)
			px[y*width+x] = lerpColor(inner, outer, t)
		}
	}
	return FromRGBA(px, width, height, FormatR8G8B8A8)
}

// GenChecked tiles checksX by checksY squares across the image alternating
// between col1 and col2.
func GenChecked(width, height, checksX, checksY int, col1, col2 Color) *Image {
	px := make([]Color, width*height)
	checksX, checksY = maxInt(checksX, 1), maxInt(checksY, 1)
	cw, ch := maxInt(width/checksX, 1), maxInt(height/checksY, 1)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if ((x/cw)+(y/ch))%2 == 0 {
				px[y*width+x] = col1
			} else {
				px[y*width+x] = col2
			}
		}
	}
	return FromRGBA(px, width, height, FormatR8G8B8A8)
}

// GenWhiteNoise fills the image with independent random gray values,
// factor scaling the probability a pixel is lit.
func GenWhiteNoise(width, height int, factor float32, seed int64) *Image {
	r := rand.New(rand.NewSource(seed))
	px := make([]Color, width*height)
	for i := range px {
		if r.Float32() < factor {
			v := uint8(r.Intn(256))
			px[i] = Color{R: v, G: v, B: v, A: 255}
		} else {
			px[i] = Color{A: 255}
		}
	}
	return FromRGBA(px, width, height, FormatR8G8B8A8)
}

// GenPerlinNoise generates fractal Brownian-motion noise sampled from a
// simple value-noise lattice, offset by (offsetX, offsetY) and scaled by
// scale.
func GenPerlinNoise(width, height int, offsetX, offsetY int, scale float32, seed int64) *Image {
	r := rand.New(rand.NewSource(seed))
	lattice := make([][]float32, 256)
	for i := range lattice {
		lattice[i] = make([]float32, 256)
		for j := range lattice[i] {
			lattice[i][j] = r.Float32()
		}
	}
	sample := func(x, y float32) float32 {
		x0, y0 := int(x)&255, int(y)&255
		x1, y1 := (x0+1)&255, (y0+1)&255
		fx, fy := x-float32(int(x)), y-float32(int(y))
		a := lerpF32(lattice[y0][x0], lattice[y0][x1], fx)
		b := lerpF32(lattice[y1][x0], lattice[y1][x1], fx)
		return lerpF32(a, b, fy)
	}
	px := make([]Color, width*height)
	const octaves = 6
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			fx := (float32(x+offsetX) + 0.5) * scale / 32
			fy := (float32(y+offsetY) + 0.5) * scale / 32
			var sum, amp, freq, norm float32 = 0, 1, 1, 0
			for o := 0; o < octaves; o++ {
				sum += sample(fx*freq, fy*freq) * amp
				norm += amp
				amp *= 0.5
				freq *= 2
			}
			v := uint8(clamp01(sum/norm) * 255)
			px[y*width+x] = Color{R: v, G: v, B: v, A: 255}
		}
	}
	return FromRGBA(px, width, height, FormatR8G8B8A8)
}

// GenCellular produces Worley/cellular noise: each tile holds one random
// feature point and every pixel is shaded by distance to the nearest one
// across the 3x3 neighborhood of tiles.
func GenCellular(width, height, tileSize int, seed int64) *Image {
	r := rand.New(rand.NewSource(seed))
	tileSize = maxInt(tileSize, 1)
	cols := width/tileSize + 2
	rows := height/tileSize + 2
	points := make([][2]float32, cols*rows)
	for i := range points {
		points[i] = [2]float32{r.Float32(), r.Float32()}
	}
	pointAt := func(tx, ty int) (float32, float32) {
		if tx < 0 || ty < 0 || tx >= cols || ty >= rows {
			return float32(tx) + 0.5, float32(ty) + 0.5
		}
		p := points[ty*cols+tx]
		return float32(tx) + p[0], float32(ty) + p[1]
	}
	px := make([]Color, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			fx := float32(x) / float32(tileSize)
			fy := float32(y) / float32(tileSize)
			tx, ty := int(fx), int(fy)
			minDist := float32(1e9)
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					px0, py0 := pointAt(tx+dx, ty+dy)
					ddx, ddy := fx-px0, fy-py0
					d := ddx*ddx + ddy*ddy
					if d < minDist {
						minDist = d
					}
				}
			}
			v := uint8(clamp01(sqrtF32(minDist)) * 255)
			px[y*width+x] = Color{R: v, G: v, B: v, A: 255}
		}
	}
	return FromRGBA(px, width, height, FormatR8G8B8A8)
}

func lerpColor(a, b Color, t float32) Color {
	t = clamp01(t)
	return Color{
		R: lerpU8(a.R, b.R, t), G: lerpU8(a.G, b.G, t),
		B: lerpU8(a.B, b.B, t), A: lerpU8(a.A, b.A, t),
	}
}

func lerpU8(a, b uint8, t float32) uint8 {
	return uint8(float32(a) + (float32(b)-float32(a))*t)
}

func lerpF32(a, b, t float32) float32 { return a + (b-a)*t }

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func maxF32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

func sqrtF32(v float32) float32 {
	if v <= 0 {
		return 0
	}
	x := v
	for i := 0; i < 8; i++ {
		x = 0.5 * (x + v/x)
	}
	return x
}
