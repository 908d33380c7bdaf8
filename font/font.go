// Package font implements the Font Engine: TTF rasterization into
// an atlas texture, glyph metrics, and word-wrapped text layout on top of
// the batch renderer.
package font

import (
	"errors"

	"github.com/rfcore/rf/pixel"
	"github.com/rfcore/rf/texture"
)

// FontType selects how a rasterized glyph's coverage is encoded into the
// atlas.
type FontType int

const (
	// FontTypeDefault keeps antialiased coverage as-is.
	FontTypeDefault FontType = iota
	// FontTypeBitmap thresholds coverage to {0, 255} at 80/255.
	FontTypeBitmap
	// FontTypeSDF stores a signed distance field instead of raw coverage.
	FontTypeSDF
)

// Errors returned by the font loaders.
var (
	ErrEmptyFont     = errors.New("font: no codepoints produced a usable glyph")
	ErrAtlasTooSmall = errors.New("font: atlas packing failed to converge")
)

// Rect is an atlas sub-rectangle, in atlas pixel coordinates.
type Rect struct{ X, Y, W, H int }

// GlyphInfo is one font's per-codepoint record: its atlas sub-rectangle,
// advance and draw offset. A glyph with zero Rect (space, or a
// codepoint the TTF has no outline for) draws nothing but still advances.
type GlyphInfo struct {
	Codepoint rune
	Rect      Rect
	AdvanceX  float32
	OffsetX   float32
	OffsetY   float32
}

// Font is a base glyph size, a single atlas image/texture, and the
// per-glyph metadata needed to lay out and draw text.
type Font struct {
	BaseSize int
	Type     FontType

	Atlas   *pixel.Image
	Texture texture.Texture

	Glyphs []GlyphInfo
	index  map[rune]int

	// Source holds the raw TTF/OTF bytes the font was loaded from, or nil
	// for fonts built from an already-parsed face (DefaultFont). A Shaper
	// that needs a full OpenType table (GoTextShaper) reparses this on
	// first use; the atlas itself never needs it again after loadFace.
	Source []byte
}

// Glyph looks up r's metrics. Codepoints absent from the font (outside the
// requested set, or unmapped by the TTF) report ok=false; callers fall
// back to a synthetic advance so the draw path never stalls.
func (f *Font) Glyph(r rune) (GlyphInfo, bool) {
	if f == nil || f.index == nil {
		return GlyphInfo{}, false
	}
	i, ok := f.index[r]
	if !ok {
		return GlyphInfo{}, false
	}
	return f.Glyphs[i], true
}

func buildIndex(glyphs []GlyphInfo) map[rune]int {
	idx := make(map[rune]int, len(glyphs))
	for i, g := range glyphs {
		idx[g.Codepoint] = i
	}
	return idx
}
