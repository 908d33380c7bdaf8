package font

import (
	"fmt"
	"image"
	"image/draw"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/rfcore/rf/pixel"
	"github.com/rfcore/rf/texture"
)

// atlasPadding separates neighboring glyph rectangles so bilinear sampling
// at a cell's edge never bleeds into its neighbor.
const atlasPadding = 1

// sdfPadding is the extra border SDF glyphs carry around their coverage
// shape, giving the distance field room to fall off before it is clamped.
const sdfPadding = 4

// sdfOnEdge and sdfDistanceScale fix the SDF encoding: 128 sits exactly
// on the glyph's outline, and a signed distance of sdfPadding pixels moves
// the value by sdfDistanceScale (16 levels per pixel), so the field spans
// 64..192.
const (
	sdfOnEdge        = 128
	sdfDistanceScale = 64.0
)

// bitmapThreshold is the coverage cutoff BITMAP fonts threshold at.
const bitmapThreshold = 80

// rasterItem is one codepoint's rasterized coverage mask before packing.
type rasterItem struct {
	r       rune
	mask    *image.Alpha
	bounds  image.Rectangle
	advance fixed.Int26_6
	isSpace bool
}

// LoadTTF rasterizes each codepoint in codepoints from ttf at size pixels,
// packs the results into a square atlas and converts it to the requested
// FontType's encoding. This is the CPU half of the
// load; call (*Font).Upload afterward to create the GPU texture.
func LoadTTF(ttf []byte, size int, codepoints []rune, fontType FontType) (*Font, error) {
	parsed, err := opentype.Parse(ttf)
	if err != nil {
		return nil, fmt.Errorf("font: parse ttf: %w", err)
	}
	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    float64(size),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("font: build face: %w", err)
	}
	defer face.Close()

	f, err := loadFace(face, size, codepoints, fontType)
	if err != nil {
		return nil, err
	}
	f.Source = ttf
	return f, nil
}

// DefaultFont builds the renderer's built-in bitmap font by rasterizing
// the printable ASCII range from x/image's bundled 7x13 face.
func DefaultFont() (*Font, error) {
	codepoints := make([]rune, 0, 95)
	for r := rune(0x20); r <= 0x7E; r++ {
		codepoints = append(codepoints, r)
	}
	return loadFace(basicfont.Face7x13, 13, codepoints, FontTypeBitmap)
}

func loadFace(face font.Face, size int, codepoints []rune, fontType FontType) (*Font, error) {
	items := make([]rasterItem, 0, len(codepoints))
	for _, r := range codepoints {
		if r == ' ' {
			// Character 0x20 is special-cased to carry no glyph image; it
			// keeps the face's advance so it still separates words.
			adv, _ := face.GlyphAdvance(r)
			items = append(items, rasterItem{r: r, advance: adv, isSpace: true})
			continue
		}
		mask, bounds, advance, ok := rasterizeGlyph(face, r)
		if !ok {
			continue
		}
		items = append(items, rasterItem{r: r, mask: mask, bounds: bounds, advance: advance})
	}
	if len(items) == 0 {
		return nil, ErrEmptyFont
	}

	padding := atlasPadding
	if fontType == FontTypeSDF {
		padding = sdfPadding
	}
	atlas, glyphs, err := packAtlas(items, padding, fontType)
	if err != nil {
		return nil, err
	}

	return &Font{
		BaseSize: size,
		Type:     fontType,
		Atlas:    atlas,
		Glyphs:   glyphs,
		index:    buildIndex(glyphs),
	}, nil
}

// rasterizeGlyph renders r's outline to an alpha coverage mask via
// GlyphBounds plus a font.Drawer anchored at the glyph origin.
func rasterizeGlyph(face font.Face, r rune) (mask *image.Alpha, bounds image.Rectangle, advance fixed.Int26_6, ok bool) {
	b, adv, ok := face.GlyphBounds(r)
	if !ok {
		return nil, image.Rectangle{}, 0, false
	}
	minX := int(b.Min.X) >> 6
	minY := int(b.Min.Y) >> 6
	maxX := int(b.Max.X+63) >> 6
	maxY := int(b.Max.Y+63) >> 6
	rect := image.Rect(minX, minY, maxX, maxY)
	if rect.Empty() {
		return nil, rect, adv, true
	}

	m := image.NewAlpha(rect)
	drawer := &font.Drawer{
		Dst:  m,
		Src:  image.White,
		Face: face,
		Dot:  fixed.Point26_6{X: -b.Min.X, Y: -b.Min.Y},
	}
	drawer.DrawString(string(r))
	return m, rect, adv, true
}

// packAtlas places every rasterized glyph into a square POT image,
// growing the atlas and retrying if it doesn't fit on the first pass.
func packAtlas(items []rasterItem, padding int, fontType FontType) (*pixel.Image, []GlyphInfo, error) {
	area, maxDim := 0, 8
	for _, it := range items {
		if it.mask == nil {
			continue
		}
		w, h := it.bounds.Dx()+padding, it.bounds.Dy()+padding
		area += w * h
		if w > maxDim {
			maxDim = w
		}
		if h > maxDim {
			maxDim = h
		}
	}
	size := nextPOT(maxDim)
	for size*size < area*2 {
		size *= 2
	}

	for attempt := 0; attempt < 6; attempt++ {
		atlas, glyphs, ok := tryPack(items, size, padding)
		if ok {
			return grayAlphaImage(atlas, size, size, fontType), glyphs, nil
		}
		size *= 2
	}
	return nil, nil, ErrAtlasTooSmall
}

// packerFor picks the packing method: the linear greedy scan when every
// glyph shares one height (its rows then waste nothing and it never
// backtracks), the shelf packer otherwise.
func packerFor(items []rasterItem, size, padding int) rectPacker {
	uniform, height := true, -1
	for _, it := range items {
		if it.mask == nil {
			continue
		}
		h := it.bounds.Dy()
		if height == -1 {
			height = h
		} else if h != height {
			uniform = false
			break
		}
	}
	if uniform {
		return newLinearPacker(size, size, padding)
	}
	return newShelfPacker(size, size, padding)
}

func tryPack(items []rasterItem, size, padding int) (*image.Alpha, []GlyphInfo, bool) {
	alloc := packerFor(items, size, padding)
	atlas := image.NewAlpha(image.Rect(0, 0, size, size))
	glyphs := make([]GlyphInfo, 0, len(items))

	for _, it := range items {
		if it.isSpace || it.mask == nil {
			glyphs = append(glyphs, GlyphInfo{Codepoint: it.r, AdvanceX: fixedToFloat32(it.advance)})
			continue
		}
		w, h := it.bounds.Dx(), it.bounds.Dy()
		x, y, ok := alloc.insert(w, h)
		if !ok {
			return nil, nil, false
		}
		dst := image.Rect(x, y, x+w, y+h)
		draw.Draw(atlas, dst, it.mask, it.bounds.Min, draw.Src)
		glyphs = append(glyphs, GlyphInfo{
			Codepoint: it.r,
			Rect:      Rect{X: x, Y: y, W: w, H: h},
			AdvanceX:  fixedToFloat32(it.advance),
			OffsetX:   float32(it.bounds.Min.X),
			OffsetY:   float32(it.bounds.Min.Y),
		})
	}
	return atlas, glyphs, true
}

// grayAlphaImage converts a coverage-only alpha mask into the R8A8 pivot
// (R=255, A=coverage) the batch renderer samples and modulates by the tint
// color, applying the font-type-specific coverage transform.
func grayAlphaImage(src *image.Alpha, w, h int, fontType FontType) *pixel.Image {
	px := make([]pixel.Color, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			a := src.AlphaAt(x, y).A
			px[y*w+x] = pixel.Color{R: 255, G: 255, B: 255, A: a}
		}
	}

	switch fontType {
	case FontTypeBitmap:
		for i, c := range px {
			if c.A >= bitmapThreshold {
				px[i].A = 255
			} else {
				px[i].A = 0
			}
		}
	case FontTypeSDF:
		px = distanceField(px, w, h)
	}

	return pixel.FromRGBA(px, w, h, pixel.FormatR8A8)
}

// distanceField turns a binary coverage mask into a signed distance field
// by brute-force search within sdfPadding pixels of every texel — cheap at
// the glyph sizes a font atlas deals with, and exact within that radius.
func distanceField(px []pixel.Color, w, h int) []pixel.Color {
	inside := func(x, y int) bool {
		if x < 0 || x >= w || y < 0 || y >= h {
			return false
		}
		return px[y*w+x].A >= 128
	}

	out := make([]pixel.Color, len(px))
	copy(out, px)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			in := inside(x, y)
			best := math.MaxFloat64
			for dy := -sdfPadding; dy <= sdfPadding; dy++ {
				for dx := -sdfPadding; dx <= sdfPadding; dx++ {
					if dx == 0 && dy == 0 {
						continue
					}
					if inside(x+dx, y+dy) == in {
						continue
					}
					d := math.Sqrt(float64(dx*dx + dy*dy))
					if d < best {
						best = d
					}
				}
			}
			if best > sdfPadding {
				best = sdfPadding
			}
			signed := best
			if !in {
				signed = -best
			}
			v := sdfOnEdge + signed*sdfDistanceScale/sdfPadding
			out[y*w+x].A = clampByte(v)
		}
	}
	return out
}

func clampByte(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

func nextPOT(v int) int {
	p := 1
	for p < v {
		p <<= 1
	}
	return p
}

func fixedToFloat32(x fixed.Int26_6) float32 { return float32(x) / 64 }

// Upload creates f's atlas texture through mgr — the GPU half of the
// font-loading CPU/GPU split.
func (f *Font) Upload(mgr *texture.Manager) error {
	tex, err := mgr.Load(f.Atlas)
	if err != nil {
		return err
	}
	f.Texture = tex
	return nil
}
