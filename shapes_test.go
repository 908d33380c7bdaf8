package rf

import (
	"testing"

	"github.com/rfcore/rf/internal/linear"
	"github.com/rfcore/rf/pixel"
)

// TestDrawRectangleMergesAcrossCalls is the batch-merging scenario: two
// consecutive rectangles against the same (default) texture land in one
// draw call with vertex_count=8; a third against a different texture
// opens a second call with vertex_count=4.
func TestDrawRectangleMergesAcrossCalls(t *testing.T) {
	c, _ := newTestContext(t)

	otherTex, err := c.texMgr.Load(pixel.NewImage(2, 2, pixel.FormatR8G8B8A8))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	c.DrawRectangle(0, 0, 10, 10, pixel.Red)
	c.DrawRectangle(20, 0, 10, 10, pixel.Green)
	c.DrawTexture(otherTex, 0, 0, pixel.White)

	draws := c.batchr.PendingDrawCalls()
	if len(draws) != 2 {
		t.Fatalf("pending draw calls = %d, want 2", len(draws))
	}
	if draws[0].Texture != c.defaultTexture.Handle || draws[0].VertexCount != 8 {
		t.Fatalf("draws[0] = %+v, want default texture, vertex_count=8", draws[0])
	}
	if draws[1].Texture != otherTex.Handle || draws[1].VertexCount != 4 {
		t.Fatalf("draws[1] = %+v, want other texture, vertex_count=4", draws[1])
	}

	c.batchr.Draw()
}

func TestClearBackgroundAndGlobalContext(t *testing.T) {
	c, dev := newTestContext(t)
	SetGlobalContext(c)
	if CurrentContext() != c {
		t.Fatal("CurrentContext did not return the installed context")
	}

	ClearBackground(pixel.SkyBlue)
	found := false
	for _, call := range dev.Calls {
		if call.Name == "Clear" {
			found = true
		}
	}
	if !found {
		t.Fatal("ClearBackground did not issue a Clear call")
	}
}

func TestCamera2DIdentityAtDefaults(t *testing.T) {
	cam := Camera2D{Zoom: 1}
	m := cam.matrix()
	if m != linear.Identity4() {
		t.Fatalf("Camera2D{} matrix = %v, want identity", m)
	}
}
