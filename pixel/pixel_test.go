package pixel

import "testing"

func TestColorNormalizeRoundTrip(t *testing.T) {
	c := Color{R: 10, G: 200, B: 33, A: 255}
	if got := c.Normalize().Denormalize(); got != c {
		t.Fatalf("round trip mismatch: got %+v want %+v", got, c)
	}
}

func TestImageCopyIsByteIdentical(t *testing.T) {
	img := GenSolid(4, 4, Red)
	cp := img.Copy()
	if string(cp.Data) != string(img.Data) {
		t.Fatalf("copy not byte-identical")
	}
	cp.Data[0] = 0
	if img.Data[0] == 0 {
		t.Fatalf("copy shares backing array with original")
	}
}

func TestFormatConversionRoundTrip(t *testing.T) {
	img := GenSolid(2, 2, Color{R: 128, G: 64, B: 32, A: 255})
	converted := ImageFormat(img, FormatR5G6B5)
	back := ImageFormat(converted, FormatR8G8B8A8)
	if !back.Valid() {
		t.Fatalf("expected valid image after round trip")
	}
}

func TestImageFormatRejectsCompressed(t *testing.T) {
	img := &Image{Width: 4, Height: 4, Format: FormatDXT1RGB, Data: make([]byte, 8)}
	out := ImageFormat(img, FormatR8G8B8A8)
	if out != img {
		t.Fatalf("compressed source must be rejected as a no-op")
	}
}

func TestCropIdentityReturnsByteIdenticalImage(t *testing.T) {
	img := GenChecked(8, 8, 2, 2, Black, White)
	out := Crop(img, Rect{X: 0, Y: 0, W: 8, H: 8})
	if string(out.Data) != string(img.Data) {
		t.Fatalf("identity crop must be byte-identical")
	}
}

func TestResizeSameDimensionsIsCopy(t *testing.T) {
	img := GenSolid(4, 4, Blue)
	out := Resize(img, 4, 4)
	if string(out.Data) != string(img.Data) {
		t.Fatalf("resize to same dimensions should copy unchanged")
	}
}

func TestMipmapsCoverage(t *testing.T) {
	img := GenSolid(8, 8, White)
	out := Mipmaps(img)
	if out.Mipmaps != 4 {
		t.Fatalf("expected 4 mip levels for 8x8, got %d", out.Mipmaps)
	}
	want := MipCoverage(8, 8, FormatR8G8B8A8, out.Mipmaps)
	if len(out.Data) != want {
		t.Fatalf("mip buffer size mismatch: got %d want %d", len(out.Data), want)
	}
}

func TestExtractPaletteDeduplicates(t *testing.T) {
	img := GenChecked(4, 4, 2, 2, Red, Blue)
	palette := ExtractPalette(img, 16)
	if len(palette) != 2 {
		t.Fatalf("expected 2 distinct colors, got %d", len(palette))
	}
}

func TestDitherRespectsBitDepthLimit(t *testing.T) {
	img := GenGradientLinear(16, 16, GradientHorizontal, Black, White)
	out := Dither(img, FormatR5G6B5, 8, 8, 8, 8)
	if out != img {
		t.Fatalf("dither must reject a requested bit-depth sum above 16")
	}
	out = Dither(img, FormatR5G6B5, 5, 6, 5, 0)
	if out == img || out.Format != FormatR5G6B5 {
		t.Fatalf("dither rejected a 16-bit request it should accept")
	}
}

func TestFlipTwiceIsIdentity(t *testing.T) {
	img := GenChecked(6, 4, 3, 2, Red, Blue)
	if got := FlipHorizontal(FlipHorizontal(img)); string(got.Data) != string(img.Data) {
		t.Error("horizontal flip applied twice is not the identity")
	}
	if got := FlipVertical(FlipVertical(img)); string(got.Data) != string(img.Data) {
		t.Error("vertical flip applied twice is not the identity")
	}
}

func TestRotateCWThenCCWIsIdentity(t *testing.T) {
	img := GenChecked(6, 4, 3, 2, Red, Blue)
	got := RotateCCW(RotateCW(img))
	if got.Width != img.Width || got.Height != img.Height {
		t.Fatalf("dimensions changed: %dx%d -> %dx%d", img.Width, img.Height, got.Width, got.Height)
	}
	if string(got.Data) != string(img.Data) {
		t.Error("rotate cw then ccw is not the identity")
	}
}

func TestGrayscaleFlattensChannels(t *testing.T) {
	img := GenSolid(2, 2, Color{R: 10, G: 200, B: 30, A: 255})
	out := Grayscale(img)
	px := out.ToRGBA()
	if px[0].R != px[0].G || px[0].G != px[0].B {
		t.Fatalf("grayscale pixel channels must match: %+v", px[0])
	}
}
