package font

import (
	"unicode/utf8"

	"github.com/rfcore/rf/backend"
	"github.com/rfcore/rf/batch"
	"github.com/rfcore/rf/pixel"
)

// DecodeUTF8 decodes the rune starting at s[0], accepting the 1-4 byte
// sequences RFC 3629 allows. A thin wrapper over the standard library's
// decoder: on an ill-formed sequence it substitutes U+003F ('?') and still
// reports a size of at least 1, so a caller looping over a string always
// makes progress. An empty s reports size 0, the loop-termination
// signal.
func DecodeUTF8(s string) (r rune, size int) {
	if s == "" {
		return 0, 0
	}
	r, size = utf8.DecodeRuneInString(s)
	if r == utf8.RuneError && size <= 1 {
		return '?', 1
	}
	return r, size
}

// lineHeightFor returns the vertical advance between baselines at size.
func lineHeightFor(size float32) float32 { return size * 1.5 }

// MeasureText returns the bounding box of text set in f at size pixels
// with spacing extra pixels between glyphs. Height
// scales as size*1.5^(line_count-1), matching multi-line text's
// compounding line spacing.
func MeasureText(f *Font, text string, size, spacing float32) (width, height float32) {
	if f == nil || f.BaseSize == 0 {
		return 0, 0
	}
	lines := 1
	var lineWidth, maxWidth float32
	var prev rune
	for i := 0; i < len(text); {
		r, n := DecodeUTF8(text[i:])
		if n == 0 {
			break
		}
		i += n
		if r == '\n' {
			lines++
			if lineWidth > maxWidth {
				maxWidth = lineWidth
			}
			lineWidth, prev = 0, 0
			continue
		}
		// spacing goes between glyphs, not after the last one.
		if prev != 0 {
			lineWidth += spacing
		}
		lineWidth += GetShaper().Advance(f, prev, r, size)
		prev = r
	}
	if lineWidth > maxWidth {
		maxWidth = lineWidth
	}

	height = size
	for i := 1; i < lines; i++ {
		height *= 1.5
	}
	return maxWidth, height
}

func glyphAdvance(f *Font, r rune, scale float32) float32 {
	if g, ok := f.Glyph(r); ok {
		return g.AdvanceX * scale
	}
	return float32(f.BaseSize) / 2 * scale
}

// lineSpan is one resolved line: the byte range of text it covers and its
// measured width.
type lineSpan struct {
	start, end int
	width      float32
}

// wrapLines is the MEASURE half of the word-wrap state machine:
// it walks text accumulating glyph widths until a word boundary
// (space/tab/newline) is found or the line would exceed containerWidth,
// then resolves a line and rewinds to the last word boundary. The DRAW
// half (emitting glyphs for each resolved span) is done by the caller
// over the returned spans, which is behaviorally the "rewind to
// line start, draw to line end, re-enter MEASURE" loop.
func wrapLines(f *Font, text string, size, spacing, containerWidth float32, wordWrap bool) []lineSpan {
	var lines []lineSpan

	lineStart := 0
	lineWidth := float32(0)
	breakAt := -1
	breakWidth := float32(0)
	var prev rune

	flush := func(end int, width float32) {
		lines = append(lines, lineSpan{start: lineStart, end: end, width: width})
	}

	i := 0
	for i < len(text) {
		r, n := DecodeUTF8(text[i:])
		if n == 0 {
			break
		}
		next := i + n

		if r == '\n' {
			flush(i, lineWidth)
			lineStart, lineWidth, breakAt, prev = next, 0, -1, 0
			i = next
			continue
		}

		if !wordWrap {
			if i > lineStart {
				lineWidth += spacing
			}
			lineWidth += GetShaper().Advance(f, prev, r, size)
			prev = r
			i = next
			continue
		}

		adv := GetShaper().Advance(f, prev, r, size)
		if i > lineStart {
			adv += spacing
		}

		if containerWidth > 0 && lineWidth+adv > containerWidth && i > lineStart {
			if breakAt > lineStart {
				flush(breakAt, breakWidth)
				lineStart = breakAt
				i = breakAt
			} else {
				flush(i, lineWidth)
				lineStart = i
			}
			lineWidth, breakAt, prev = 0, -1, 0
			continue // re-measure from the new line start
		}

		if r == ' ' || r == '\t' {
			breakAt = next
			breakWidth = lineWidth + adv
		}
		lineWidth += adv
		prev = r
		i = next
	}
	flush(len(text), lineWidth)
	return lines
}

// WrapMetrics is the multi-line bounding box MeasureTextWrap computes.
type WrapMetrics struct {
	Width  float32
	Height float32
	Lines  int
}

// MeasureTextWrap simulates DrawTextWrap's line-breaking without
// drawing, returning the resulting bounding box.
func MeasureTextWrap(f *Font, text string, size, spacing, containerWidth float32, wordWrap bool) WrapMetrics {
	if f == nil || f.BaseSize == 0 {
		return WrapMetrics{}
	}
	spans := wrapLines(f, text, size, spacing, containerWidth, wordWrap)
	var width float32
	for _, s := range spans {
		if s.width > width {
			width = s.width
		}
	}
	height := size
	for i := 1; i < len(spans); i++ {
		height *= 1.5
	}
	return WrapMetrics{Width: width, Height: height, Lines: len(spans)}
}

// DrawTextWrap lays out text inside a containerW x containerH rectangle at
// (x, y) and emits each glyph as a textured quad through b, tinted by
// tint. Lines stop being drawn once the accumulated y would exceed the
// container height. When wordWrap is
// false, lines only break on an explicit '\n'.
func DrawTextWrap(b *batch.Batch, f *Font, text string, x, y, containerW, containerH, size, spacing float32, wordWrap bool, tint pixel.Color) {
	if f == nil || f.BaseSize == 0 {
		return
	}
	scale := size / float32(f.BaseSize)
	lineHeight := lineHeightFor(size)

	cy := y
	for _, ln := range wrapLines(f, text, size, spacing, containerW, wordWrap) {
		if containerH > 0 && cy+lineHeight > y+containerH {
			break
		}
		cx := x
		var prev rune
		for i := ln.start; i < ln.end; {
			r, n := DecodeUTF8(text[i:])
			if n == 0 {
				break
			}
			i += n
			if r == '\n' {
				continue
			}
			g, ok := f.Glyph(r)
			if ok && g.Rect.W > 0 {
				drawGlyphQuad(b, f, g, cx, cy, scale, tint)
			}
			cx += GetShaper().Advance(f, prev, r, size) + spacing
			prev = r
		}
		cy += lineHeight
	}
}

func drawGlyphQuad(b *batch.Batch, f *Font, g GlyphInfo, x, y, scale float32, tint pixel.Color) {
	if !f.Texture.Valid() || f.Atlas == nil {
		return
	}
	atlasW, atlasH := float32(f.Atlas.Width), float32(f.Atlas.Height)
	x0 := x + g.OffsetX*scale
	y0 := y + g.OffsetY*scale
	x1 := x0 + float32(g.Rect.W)*scale
	y1 := y0 + float32(g.Rect.H)*scale
	u0 := float32(g.Rect.X) / atlasW
	v0 := float32(g.Rect.Y) / atlasH
	u1 := float32(g.Rect.X+g.Rect.W) / atlasW
	v1 := float32(g.Rect.Y+g.Rect.H) / atlasH

	b.EnableTexture(f.Texture.Handle)
	b.Begin(backend.Quads)
	b.ColorPixel(tint)
	b.TexCoord2f(u0, v0)
	b.Vertex2f(x0, y0)
	b.TexCoord2f(u0, v1)
	b.Vertex2f(x0, y1)
	b.TexCoord2f(u1, v1)
	b.Vertex2f(x1, y1)
	b.TexCoord2f(u1, v0)
	b.Vertex2f(x1, y0)
	b.End()
}
