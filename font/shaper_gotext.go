package font

import (
	"bytes"
	"sync"

	gotextfont "github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"
)

// GoTextShaper is an opt-in Shaper backed by go-text/typesetting's HarfBuzz
// port. Where BuiltinShaper only ever consults the atlas's own per-glyph
// AdvanceX, GoTextShaper re-shapes the (prev, r) pair through HarfBuzz so
// kerning pairs the atlas doesn't encode (AV, To, ...) still affect layout.
// Install it with:
//
//	font.SetShaper(font.NewGoTextShaper())
//	defer font.SetShaper(nil)
//
// A Font with no Source (DefaultFont, built straight from an already-parsed
// face) falls back to BuiltinShaper's behavior automatically.
type GoTextShaper struct {
	shaperPool sync.Pool

	mu    sync.RWMutex
	cache map[*Font]*gotextfont.Font
}

// NewGoTextShaper creates a ready-to-use GoTextShaper.
func NewGoTextShaper() *GoTextShaper {
	return &GoTextShaper{
		shaperPool: sync.Pool{New: func() any { return &shaping.HarfbuzzShaper{} }},
		cache:      make(map[*Font]*gotextfont.Font),
	}
}

// Advance implements Shaper. It shapes the two-rune run {prev, r} (or just
// {r} when prev is 0, i.e. line start) and returns the advance HarfBuzz
// assigned to r's glyph, which already folds in any kerning pair adjustment
// against prev.
func (s *GoTextShaper) Advance(f *Font, prev, r rune, size float32) float32 {
	if f == nil || f.Source == nil {
		return BuiltinShaper{}.Advance(f, prev, r, size)
	}
	parsed, err := s.getOrParse(f)
	if err != nil {
		return BuiltinShaper{}.Advance(f, prev, r, size)
	}

	runes := []rune{r}
	if prev != 0 {
		runes = []rune{prev, r}
	}

	input := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: di.DirectionLTR,
		Face:      gotextfont.NewFace(parsed),
		Size:      floatToFixed26_6(size),
		Script:    language.LookupScript(r),
		Language:  language.NewLanguage("en"),
	}

	shaper := s.shaperPool.Get().(*shaping.HarfbuzzShaper)
	output := shaper.Shape(input)
	s.shaperPool.Put(shaper)

	if len(output.Glyphs) == 0 {
		return BuiltinShaper{}.Advance(f, prev, r, size)
	}
	return fixed26_6ToFloat(output.Glyphs[len(output.Glyphs)-1].Advance)
}

// getOrParse returns the cached go-text Font parsed from f.Source, parsing
// and caching it on first use. go-text's Font is read-only and safe for
// concurrent use; only Face (built fresh per Advance call above) is not.
func (s *GoTextShaper) getOrParse(f *Font) (*gotextfont.Font, error) {
	s.mu.RLock()
	if gt, ok := s.cache[f]; ok {
		s.mu.RUnlock()
		return gt, nil
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	if gt, ok := s.cache[f]; ok {
		return gt, nil
	}
	face, err := gotextfont.ParseTTF(bytes.NewReader(f.Source))
	if err != nil {
		return nil, err
	}
	s.cache[f] = face.Font
	return face.Font, nil
}

func floatToFixed26_6(v float32) fixed.Int26_6 { return fixed.Int26_6(v * 64) }
func fixed26_6ToFloat(v fixed.Int26_6) float32 { return float32(v) / 64 }
