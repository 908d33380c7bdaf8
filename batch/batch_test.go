package batch

import (
	"testing"

	"github.com/rfcore/rf/backend"
	"github.com/rfcore/rf/backend/mock"
	"github.com/rfcore/rf/internal/linear"
	"github.com/rfcore/rf/pixel"
	"github.com/rfcore/rf/shader"
)

func newTestBatch(t *testing.T) (*Batch, *mock.Device) {
	t.Helper()
	dev := mock.New()
	m := NewMatrixStack()
	vs, fs := shader.DefaultSources(backend.ProfileGL33)
	sh := shader.Compile(dev, vs, fs)
	if !sh.Valid() {
		t.Fatal("default shader failed to compile against mock device")
	}
	tex := dev.GenTexture()
	b := NewWithCapacity(dev, m, sh, tex, 64)
	return b, dev
}

func drawQuad(b *Batch, tex backend.Handle, col pixel.Color) {
	b.EnableTexture(tex)
	b.Begin(backend.Quads)
	b.ColorPixel(col)
	b.TexCoord2f(0, 0)
	b.Vertex2f(0, 0)
	b.TexCoord2f(1, 0)
	b.Vertex2f(1, 0)
	b.TexCoord2f(1, 1)
	b.Vertex2f(1, 1)
	b.TexCoord2f(0, 1)
	b.Vertex2f(0, 1)
	b.End()
}

// TestBatchMerging exercises draw-call merging: two
// consecutive quads against the same texture merge into one draw call,
// and a third quad against a different texture opens a new one.
func TestBatchMerging(t *testing.T) {
	b, _ := newTestBatch(t)

	texA := backend.Handle(1)
	texB := backend.Handle(2)

	drawQuad(b, texA, pixel.Red)
	drawQuad(b, texA, pixel.Red)
	drawQuad(b, texB, pixel.Blue)

	// draws[0] is the zero-vertex sentinel entry resetDraws seeds every
	// Batch with; Draw() skips it and real assertions start from the
	// first entry that actually carries vertices.
	nonEmpty := nonEmptyDraws(b)
	if got := len(nonEmpty); got != 2 {
		t.Fatalf("non-empty draws = %d, want 2: %+v", got, nonEmpty)
	}
	if nonEmpty[0].Texture != texA || nonEmpty[0].VertexCount != 8 {
		t.Fatalf("draws[0] = %+v, want texture=%d vertex_count=8", nonEmpty[0], texA)
	}
	if nonEmpty[1].Texture != texB || nonEmpty[1].VertexCount != 4 {
		t.Fatalf("draws[1] = %+v, want texture=%d vertex_count=4", nonEmpty[1], texB)
	}
	// QUADS are already 4-aligned, so no padding should have been introduced
	// on the first call when the texture changed.
	if nonEmpty[0].VertexAlign != 0 {
		t.Fatalf("draws[0].VertexAlign = %d, want 0", nonEmpty[0].VertexAlign)
	}
}

func nonEmptyDraws(b *Batch) []DrawCall {
	var out []DrawCall
	for _, d := range b.draws {
		if d.VertexCount > 0 {
			out = append(out, d)
		}
	}
	return out
}

// TestDrawFlushesAndRotatesBuffer checks that Draw issues one GPU draw call
// per recorded DrawCall and advances to the next multi-buffer slot.
func TestDrawFlushesAndRotatesBuffer(t *testing.T) {
	b, dev := newTestBatch(t)
	drawQuad(b, 1, pixel.White)
	startSlot := b.current
	b.Draw()

	calls := dev.DrawCalls()
	if len(calls) != 1 {
		t.Fatalf("recorded draw calls = %d, want 1", len(calls))
	}
	if calls[0].Count != 6 || !calls[0].Indexed {
		t.Fatalf("draw call = %+v, want indexed count=6", calls[0])
	}
	if b.current == startSlot {
		t.Fatal("Draw did not rotate to the next buffer slot")
	}
}

// TestLineAlignmentPadding verifies that a draw call opened in Lines or
// Triangles mode has VertexCount+VertexAlign padded to a multiple of 4
// once closed.
func TestLineAlignmentPadding(t *testing.T) {
	b, _ := newTestBatch(t)
	b.Begin(backend.Lines)
	b.ColorPixel(pixel.White)
	b.Vertex2f(0, 0)
	b.ColorPixel(pixel.White)
	b.Vertex2f(1, 1)
	b.End()
	// switching mode forces closeCurrent on the 2-vertex line call
	b.Begin(backend.Quads)

	first := b.draws[0]
	if (first.VertexCount+first.VertexAlign)%4 != 0 {
		t.Fatalf("line call not 4-aligned: count=%d align=%d", first.VertexCount, first.VertexAlign)
	}
	if first.VertexCount != 2 || first.VertexAlign != 2 {
		t.Fatalf("line call = count=%d align=%d, want count=2 align=2", first.VertexCount, first.VertexAlign)
	}
}

// TestEndNormalizesParallelCounters checks that after every End the
// vertex, color and texcoord counters agree.
func TestEndNormalizesParallelCounters(t *testing.T) {
	b, _ := newTestBatch(t)
	b.Begin(backend.Triangles)
	b.Vertex2f(0, 0) // no color/texcoord emitted — End must backfill
	b.Vertex2f(1, 0)
	b.Vertex2f(0, 1)
	b.End()

	vb := b.buf()
	if vb.vCounter != vb.cCounter || vb.cCounter != vb.tcCounter {
		t.Fatalf("counters diverged: v=%d c=%d tc=%d", vb.vCounter, vb.cCounter, vb.tcCounter)
	}
}

func TestMatrixStackPushPopRoundTrip(t *testing.T) {
	s := NewMatrixStack()
	s.SetMode(ModeModelview)
	before := s.Modelview()
	s.Push()
	s.Translate(5, 6, 7)
	s.Rotate(1.2, 0, 1, 0)
	s.Pop()
	after := s.Modelview()
	if before != after {
		t.Fatalf("push/pop did not round-trip: before=%v after=%v", before, after)
	}
}

// TestMatrixStackNestedPushPop nests a second modelview push inside the
// first: the inner pop must restore the scratch transform (the matrix the
// inner push captured), not clobber the modelview root, and the outer pop
// must still restore the root exactly.
func TestMatrixStackNestedPushPop(t *testing.T) {
	s := NewMatrixStack()
	s.SetMode(ModeModelview)
	root := s.Modelview()

	s.Push()
	s.Translate(1, 2, 3)
	outer := s.Transform()

	s.Push()
	s.Scale(2, 2, 2)
	s.Pop()

	if s.Modelview() != root {
		t.Fatal("inner pop overwrote the modelview root")
	}
	if s.Transform() != outer {
		t.Fatalf("inner pop did not restore the scratch transform: got %v want %v", s.Transform(), outer)
	}
	if !s.UseTransformMatrix() {
		t.Fatal("transform redirect must stay active until the outer pop")
	}

	s.Pop()
	if s.Modelview() != root {
		t.Fatal("outer pop did not restore the modelview root")
	}
	if s.UseTransformMatrix() {
		t.Fatal("outer pop must clear the transform redirect")
	}
}

func TestMatrixStackOverflowPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on matrix stack overflow")
		}
	}()
	s := NewMatrixStack()
	for i := 0; i < stackCapacity+1; i++ {
		s.Push()
	}
}

func TestOrthoReplacesCurrentMatrix(t *testing.T) {
	s := NewMatrixStack()
	s.SetMode(ModeProjection)
	s.Ortho(0, 800, 450, 0, -1, 1)
	want := linear.Ortho(0, 800, 450, 0, -1, 1)
	if s.Projection() != want {
		t.Fatalf("Ortho() = %v, want %v", s.Projection(), want)
	}
}
