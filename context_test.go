package rf

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/rfcore/rf/backend"
	"github.com/rfcore/rf/backend/mock"
	"github.com/rfcore/rf/internal/linear"
	"github.com/rfcore/rf/pixel"
)

func newTestContext(t *testing.T) (*Context, *mock.Device) {
	t.Helper()
	dev := mock.New()
	c := NewContext(dev, 800, 450, WithNoDefaultFont())
	if !c.defaultShader.Valid() {
		t.Fatal("default shader did not compile against mock device")
	}
	return c, dev
}

func decodeF32(b []byte) []float32 {
	out := make([]float32, len(b)/4)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*4 : i*4+4]))
	}
	return out
}

// TestNewContextBootstrap exercises the bootstrap: a default white texture, a valid
// default shader, and a viewport matching the requested screen size.
func TestNewContextBootstrap(t *testing.T) {
	c, _ := newTestContext(t)
	if c.Width() != 800 || c.Height() != 450 {
		t.Fatalf("Width/Height = %d/%d, want 800/450", c.Width(), c.Height())
	}
	if !c.defaultTexture.Valid() {
		t.Fatal("default texture was not allocated")
	}
	if c.RenderSize() != (Size{800, 450}) {
		t.Fatalf("RenderSize = %v, want 800x450 (screen == display)", c.RenderSize())
	}
}

// TestDrawRectangleSolidQuad is adapted from the "solid quad" scenario: a
// single untextured DrawRectangle must emit exactly one QUADS draw call,
// submitted as one indexed draw of 6 indices. The vertex positions are
// checked by TestBatchBuffersCarrySolidQuadVertices.
func TestDrawRectangleSolidQuad(t *testing.T) {
	c, dev := newTestContext(t)

	c.DrawRectangle(-0.5, -0.5, 1, 1, pixel.Red)
	c.batchr.Draw()

	calls := dev.DrawCalls()
	if len(calls) != 1 {
		t.Fatalf("draw calls = %d, want 1", len(calls))
	}
	if calls[0].Count != 6 || !calls[0].Indexed {
		t.Fatalf("draw call = %+v, want one indexed QUADS call (6 indices)", calls[0])
	}
}

// TestBatchBuffersCarrySolidQuadVertices inspects the raw position stream
// the mock Device received, confirming the exact XY corner order the
// scenario pins down.
func TestBatchBuffersCarrySolidQuadVertices(t *testing.T) {
	c, dev := newTestContext(t)

	c.DrawRectangle(-0.5, -0.5, 1, 1, pixel.Red)
	c.batchr.Draw()

	// The flush uploads each stream with one BufferSubData per buffer; the
	// position stream is the one whose upload is exactly 12 floats long
	// (4 vertices x 3 floats). Recover its handle from the recorded calls
	// rather than guessing at handle allocation order.
	var posBuf []byte
	for _, call := range dev.Calls {
		if call.Name != "BufferSubData" || len(call.Args) != 3 {
			continue
		}
		if n, ok := call.Args[2].(int); ok && n == 48 {
			posBuf = dev.Buffer(call.Args[0].(backend.Handle))[:48]
			break
		}
	}
	if posBuf == nil {
		t.Fatal("could not locate the 4-vertex position buffer written by DrawRectangle")
	}
	pos := decodeF32(posBuf)
	want := []float32{
		-0.5, -0.5, pos[2], // depth varies call to call, only check XY
		0.5, -0.5, pos[5],
		0.5, 0.5, pos[8],
		-0.5, 0.5, pos[11],
	}
	for i := 0; i < 4; i++ {
		gx, gy := pos[i*3], pos[i*3+1]
		wx, wy := want[i*3], want[i*3+1]
		if gx != wx || gy != wy {
			t.Fatalf("vertex %d = (%v,%v), want (%v,%v)", i, gx, gy, wx, wy)
		}
	}
}

// TestDrawTextEmitsGlyphQuads drives the default-font draw path end to
// end: two visible glyphs become two textured quads in the batch.
func TestDrawTextEmitsGlyphQuads(t *testing.T) {
	dev := mock.New()
	c := NewContext(dev, 800, 450)
	if c.DefaultFont() == nil {
		t.Fatal("default font failed to load")
	}

	c.DrawText("Hi", 10, 10, 13, 1, pixel.Black)

	total := 0
	for _, d := range c.batchr.PendingDrawCalls() {
		total += d.VertexCount
	}
	if total != 8 {
		t.Fatalf("batched vertices = %d, want 8 (one quad per glyph)", total)
	}
}

func TestBeginEnd3DRestoresMatrices(t *testing.T) {
	c, _ := newTestContext(t)
	beforeProj := c.matrix.Projection()
	beforeView := c.matrix.Modelview()

	c.Begin3D(Camera3D{Position: linear.V3{0, 0, 1}, Target: linear.V3{}, Up: linear.V3{0, 1, 0}, Fovy: 45})
	c.End3D()

	if c.matrix.Projection() != beforeProj {
		t.Fatal("End3D did not restore the projection matrix")
	}
	if c.matrix.Modelview() != beforeView {
		t.Fatal("End3D did not restore the modelview matrix")
	}
}

func TestBeginEndTextureModeRestoresViewport(t *testing.T) {
	c, _ := newTestContext(t)
	rt, err := c.texMgr.LoadRenderTexture(64, 64, pixel.FormatR8G8B8A8, 24, false)
	if err != nil {
		t.Fatalf("LoadRenderTexture: %v", err)
	}

	c.BeginTextureMode(rt)
	if c.sizes.current != (Size{64, 64}) {
		t.Fatalf("current size during render-to-texture = %v, want 64x64", c.sizes.current)
	}
	c.EndTextureMode()
	if c.sizes.current != c.sizes.render {
		t.Fatal("EndTextureMode did not restore the main render size")
	}
}

func TestBeginFrameInstallsScreenScaling(t *testing.T) {
	c, _ := newTestContext(t)
	// Logical 1600x900 on a physical 800x450 display downscales uniformly
	// by 0.5.
	c.Resize(1600, 900, 800, 450)
	c.BeginFrame()
	mv := c.matrix.Modelview()
	if mv[0][0] != 0.5 || mv[1][1] != 0.5 {
		t.Fatalf("modelview scale = (%v, %v), want (0.5, 0.5)", mv[0][0], mv[1][1])
	}
	c.EndFrame()
}

func TestResizeRecomputesPolicy(t *testing.T) {
	c, _ := newTestContext(t)
	c.Resize(400, 225, 800, 450)
	if c.sizes.screen != (Size{400, 225}) {
		t.Fatalf("screen size = %v, want 400x225", c.sizes.screen)
	}
	// 400x225 upscaled to fit an 800x450 display with identical aspect
	// ratio renders 1:1 at screen size under the framebuffer-fit policy.
	if c.sizes.render != (Size{400, 225}) {
		t.Fatalf("render size = %v, want 400x225 (no border bars needed)", c.sizes.render)
	}
}
