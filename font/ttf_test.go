package font

import (
	"testing"

	"golang.org/x/image/font/basicfont"

	"github.com/rfcore/rf/backend/mock"
	"github.com/rfcore/rf/texture"
)

func TestDefaultFontUploadsTexture(t *testing.T) {
	f := testFont(t)
	mgr := texture.New(mock.New())
	if err := f.Upload(mgr); err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if !f.Texture.Valid() {
		t.Fatal("Upload left an invalid texture")
	}
}

func TestNextPOT(t *testing.T) {
	cases := map[int]int{1: 1, 2: 2, 3: 4, 5: 8, 16: 16, 17: 32}
	for in, want := range cases {
		if got := nextPOT(in); got != want {
			t.Errorf("nextPOT(%d) = %d, want %d", in, got, want)
		}
	}
}

func TestGrayAlphaBitmapThresholds(t *testing.T) {
	f, err := loadFace(basicfont.Face7x13, 13, []rune{'A', 'B', 'C'}, FontTypeBitmap)
	if err != nil {
		t.Fatalf("loadFace: %v", err)
	}
	for _, p := range f.Atlas.ToRGBA() {
		if p.A != 0 && p.A != 255 {
			t.Fatalf("bitmap atlas has an intermediate alpha %d", p.A)
		}
	}
}

func TestSDFFontProducesMidRangeAlpha(t *testing.T) {
	f, err := loadFace(basicfont.Face7x13, 13, []rune{'A', 'B', 'C'}, FontTypeSDF)
	if err != nil {
		t.Fatalf("loadFace: %v", err)
	}
	sawMid := false
	for _, p := range f.Atlas.ToRGBA() {
		if p.A > 0 && p.A < 255 {
			sawMid = true
			break
		}
	}
	if !sawMid {
		t.Error("expected the distance field to produce falloff alpha values, saw only 0/255")
	}
}

func TestLoadTTFRejectsGarbageBytes(t *testing.T) {
	if _, err := LoadTTF([]byte("not a font"), 16, []rune{'A'}, FontTypeDefault); err == nil {
		t.Fatal("expected an error for non-TTF bytes")
	}
}
