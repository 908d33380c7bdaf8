package font

import "testing"

func TestDefaultShaperIsBuiltin(t *testing.T) {
	if _, ok := GetShaper().(BuiltinShaper); !ok {
		t.Fatalf("default shaper = %T, want BuiltinShaper", GetShaper())
	}
}

func TestSetShaperNilResetsToBuiltin(t *testing.T) {
	SetShaper(nil)
	if _, ok := GetShaper().(BuiltinShaper); !ok {
		t.Fatalf("shaper after SetShaper(nil) = %T, want BuiltinShaper", GetShaper())
	}
}

type constAdvanceShaper struct{ adv float32 }

func (s constAdvanceShaper) Advance(f *Font, prev, r rune, size float32) float32 { return s.adv }

func TestMeasureTextUsesInstalledShaper(t *testing.T) {
	f := testFont(t)
	defer SetShaper(nil)

	SetShaper(constAdvanceShaper{adv: 100})
	w, _ := MeasureText(f, "ab", 20, 0)
	if w != 200 {
		t.Fatalf("MeasureText with a 100-wide constant shaper over 2 runes = %f, want 200", w)
	}
}

func TestBuiltinShaperMatchesGlyphAdvance(t *testing.T) {
	f := testFont(t)
	scale := float32(20) / float32(f.BaseSize)
	want := glyphAdvance(f, 'A', scale)
	got := BuiltinShaper{}.Advance(f, 0, 'A', 20)
	if got != want {
		t.Fatalf("BuiltinShaper.Advance = %f, want %f (glyphAdvance)", got, want)
	}
}

func TestGoTextShaperFallsBackWithoutSource(t *testing.T) {
	f := testFont(t) // DefaultFont has no Source (built from basicfont, not TTF bytes)
	s := NewGoTextShaper()
	got := s.Advance(f, 0, 'A', 20)
	want := BuiltinShaper{}.Advance(f, 0, 'A', 20)
	if got != want {
		t.Fatalf("GoTextShaper without Source = %f, want builtin fallback %f", got, want)
	}
}
