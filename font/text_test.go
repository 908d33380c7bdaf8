package font

import "testing"

func TestDecodeUTF8ASCII(t *testing.T) {
	r, n := DecodeUTF8("hello")
	if r != 'h' || n != 1 {
		t.Fatalf("got (%q, %d), want ('h', 1)", r, n)
	}
}

func TestDecodeUTF8Multibyte(t *testing.T) {
	r, n := DecodeUTF8("é")
	if r != 'é' || n != 2 {
		t.Fatalf("got (%q, %d), want ('é', 2)", r, n)
	}
}

func TestDecodeUTF8IllFormedSubstitutesAndAdvances(t *testing.T) {
	s := "\xff\x41" // invalid lead byte, then 'A'
	r, n := DecodeUTF8(s)
	if r != '?' || n != 1 {
		t.Fatalf("got (%q, %d), want ('?', 1)", r, n)
	}
	r2, n2 := DecodeUTF8(s[n:])
	if r2 != 'A' || n2 != 1 {
		t.Fatalf("continuation got (%q, %d), want ('A', 1)", r2, n2)
	}
}

func TestDecodeUTF8MixedWidths(t *testing.T) {
	s := "A\xC3\xA9\xE2\x98\x83\xF0\x9F\x98\x80X"
	want := []struct {
		r rune
		n int
	}{
		{0x41, 1}, {0xE9, 2}, {0x2603, 3}, {0x1F600, 4}, {0x58, 1},
	}
	for i, w := range want {
		r, n := DecodeUTF8(s)
		if r != w.r || n != w.n {
			t.Fatalf("step %d: got (%#x, %d), want (%#x, %d)", i, r, n, w.r, w.n)
		}
		s = s[n:]
	}
	if s != "" {
		t.Fatalf("undecoded tail %q", s)
	}
}

func TestDecodeUTF8Empty(t *testing.T) {
	r, n := DecodeUTF8("")
	if n != 0 || r != 0 {
		t.Fatalf("got (%q, %d), want (0, 0)", r, n)
	}
}

func testFont(t *testing.T) *Font {
	t.Helper()
	f, err := DefaultFont()
	if err != nil {
		t.Fatalf("DefaultFont: %v", err)
	}
	return f
}

func TestDefaultFontHasGlyphs(t *testing.T) {
	f := testFont(t)
	if len(f.Glyphs) == 0 {
		t.Fatal("DefaultFont produced no glyphs")
	}
	if _, ok := f.Glyph('A'); !ok {
		t.Error("expected 'A' to be present")
	}
	g, ok := f.Glyph(' ')
	if !ok {
		t.Fatal("expected space to be present as an advance-only glyph")
	}
	if g.Rect.W != 0 {
		t.Error("space should carry no glyph image")
	}
}

func TestMeasureTextMultilineHeightCompounds(t *testing.T) {
	f := testFont(t)
	_, h1 := MeasureText(f, "a", 20, 0)
	_, h2 := MeasureText(f, "a\nb", 20, 0)
	if h2 <= h1 {
		t.Errorf("two-line height %f should exceed one-line height %f", h2, h1)
	}
	if h2 != 20*1.5 {
		t.Errorf("two-line height = %f, want %f", h2, 20*1.5)
	}
}

func TestMeasureTextSpacingBetweenGlyphsOnly(t *testing.T) {
	f := testFont(t)
	size, spacing := float32(10), float32(1)
	scale := size / float32(f.BaseSize)
	want := glyphAdvance(f, 'H', scale) + spacing + glyphAdvance(f, 'i', scale)
	w, h := MeasureText(f, "Hi", size, spacing)
	if w != want {
		t.Errorf("width = %f, want advance('H') + spacing + advance('i') = %f", w, want)
	}
	if h != size {
		t.Errorf("height = %f, want %f", h, size)
	}
}

func TestWrapLinesBreaksAtWordBoundary(t *testing.T) {
	f := testFont(t)
	spans := wrapLines(f, "one two three", 13, 1, 40, true)
	if len(spans) < 2 {
		t.Fatalf("expected wrapping to produce multiple lines, got %d", len(spans))
	}
	for _, s := range spans {
		if s.width > 40+1e-3 {
			t.Errorf("line width %f exceeds container 40", s.width)
		}
	}
}

func TestWrapLinesNoWrapOnlyBreaksOnNewline(t *testing.T) {
	f := testFont(t)
	spans := wrapLines(f, "one two three", 13, 1, 10, false)
	if len(spans) != 1 {
		t.Fatalf("wordWrap=false should produce a single span, got %d", len(spans))
	}
}

func TestMeasureTextWrapMatchesLineCount(t *testing.T) {
	f := testFont(t)
	m := MeasureTextWrap(f, "one two three", 13, 1, 40, true)
	spans := wrapLines(f, "one two three", 13, 1, 40, true)
	if m.Lines != len(spans) {
		t.Errorf("Lines = %d, want %d", m.Lines, len(spans))
	}
}
