package texture

import (
	"testing"

	"github.com/rfcore/rf/backend/mock"
	"github.com/rfcore/rf/pixel"
)

func TestLoadUncompressed(t *testing.T) {
	dev := mock.New()
	m := New(dev)

	img := pixel.NewImage(4, 4, pixel.FormatR8G8B8A8)
	tex, err := m.Load(img)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !tex.Valid() {
		t.Fatal("Load returned an invalid texture")
	}
	if tex.Width != 4 || tex.Height != 4 {
		t.Errorf("dimensions = %dx%d, want 4x4", tex.Width, tex.Height)
	}
}

func TestLoadRejectsUnsupportedCompressed(t *testing.T) {
	dev := mock.New() // mock reports no compression extensions
	m := New(dev)

	img := pixel.NewImage(8, 8, pixel.FormatDXT1RGB)
	tex, err := m.Load(img)
	if err != ErrUnsupportedFormat {
		t.Fatalf("err = %v, want ErrUnsupportedFormat", err)
	}
	if tex.Valid() {
		t.Error("expected a sentinel (invalid) texture on capability rejection")
	}
}

func TestLoadMipmapsUploadsOneCallPerLevel(t *testing.T) {
	dev := mock.New()
	m := New(dev)

	img := pixel.NewImage(8, 8, pixel.FormatR8G8B8A8)
	img.Mipmaps = 4 // 8x8, 4x4, 2x2, 1x1
	if _, err := m.Load(img); err != nil {
		t.Fatalf("Load: %v", err)
	}

	var texImageCalls int
	for _, c := range dev.Calls {
		if c.Name == "TexImage2D" {
			texImageCalls++
		}
	}
	if texImageCalls != 4 {
		t.Errorf("TexImage2D calls = %d, want 4 (one per mip level)", texImageCalls)
	}
}

func TestAutodetectCubemapLayout(t *testing.T) {
	cases := []struct {
		w, h int
		want CubemapLayout
	}{
		{600, 100, LayoutHorizontalStrip},
		{100, 600, LayoutVerticalStrip},
		{400, 300, LayoutCrossFourThree},
		{300, 400, LayoutCrossThreeFour},
	}
	for _, c := range cases {
		got := autodetectLayout(c.w, c.h)
		if got != c.want {
			t.Errorf("autodetectLayout(%d,%d) = %v, want %v", c.w, c.h, got, c.want)
		}
	}
}

func TestLoadCubemapPanoramaReturnsEmpty(t *testing.T) {
	dev := mock.New()
	m := New(dev)

	img := pixel.NewImage(200, 100, pixel.FormatR8G8B8A8)
	tex, err := m.LoadCubemapFromImage(img, LayoutPanorama)
	if err != ErrUnsupportedCubemap {
		t.Fatalf("err = %v, want ErrUnsupportedCubemap", err)
	}
	if tex.Valid() {
		t.Error("panorama layout must yield an empty cubemap")
	}
}

func TestLoadRenderTextureCompletes(t *testing.T) {
	dev := mock.New()
	m := New(dev)

	rt, err := m.LoadRenderTexture(64, 64, pixel.FormatR8G8B8A8, 24, false)
	if err != nil {
		t.Fatalf("LoadRenderTexture: %v", err)
	}
	if !rt.Texture.Valid() || rt.Framebuffer == 0 {
		t.Error("expected a valid color texture and framebuffer handle")
	}
	if rt.DepthIsTexture {
		t.Error("useDepthTexture=false should produce a renderbuffer depth attachment")
	}
}

func TestGenMipmapsUpdatesCount(t *testing.T) {
	dev := mock.New()
	m := New(dev)

	tex, _ := m.Load(pixel.NewImage(8, 8, pixel.FormatR8G8B8A8))
	tex = m.GenMipmaps(tex)
	if tex.Mipmaps != 4 {
		t.Errorf("Mipmaps = %d, want 4 for an 8x8 base", tex.Mipmaps)
	}
}
