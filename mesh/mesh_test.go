package mesh

import (
	"testing"

	"github.com/rfcore/rf/backend/mock"
)

func cubeMesh() *Mesh {
	return &Mesh{
		VertexCount: 4,
		Positions:   []float32{0, 0, 0, 1, 0, 0, 1, 1, 0, 0, 1, 0},
		TexCoords:   []float32{0, 0, 1, 0, 1, 1, 0, 1},
		Normals:     []float32{0, 0, 1, 0, 0, 1, 0, 0, 1, 0, 0, 1},
		Indices:     []uint32{0, 1, 2, 0, 2, 3},
	}
}

func TestLoadMeshCreatesVAOAndBuffers(t *testing.T) {
	dev := mock.New()
	m := cubeMesh()
	LoadMesh(dev, m)

	if m.gpu.vao == 0 {
		t.Fatal("expected VAO handle")
	}
	if m.gpu.posBuf == 0 || m.gpu.texBuf == 0 || m.gpu.normBuf == 0 {
		t.Fatal("expected position/texcoord/normal buffers")
	}
	if m.gpu.colorBuf != 0 || m.gpu.tangentBuf != 0 || m.gpu.tex2Buf != 0 {
		t.Fatal("expected absent streams to stay unallocated")
	}
	if m.TriangleCount != 2 {
		t.Fatalf("TriangleCount = %d, want 2", m.TriangleCount)
	}
}

func TestLoadMeshUnindexedTriangleCount(t *testing.T) {
	dev := mock.New()
	m := &Mesh{
		VertexCount: 6,
		Positions:   make([]float32, 18),
	}
	LoadMesh(dev, m)
	if m.TriangleCount != 2 {
		t.Fatalf("TriangleCount = %d, want 2", m.TriangleCount)
	}
}

func TestUpdateMeshAtSkipsOutOfRange(t *testing.T) {
	dev := mock.New()
	m := cubeMesh()
	LoadMesh(dev, m)
	before := len(dev.Calls)

	m.UpdateMeshAt(StreamPosition, 10, 0)
	if len(dev.Calls) != before {
		t.Fatal("expected out-of-range update to be a no-op")
	}
}

func TestUpdateMeshAtPartialUsesBufferSubData(t *testing.T) {
	dev := mock.New()
	m := cubeMesh()
	LoadMesh(dev, m)

	m.UpdateMeshAt(StreamPosition, 1, 0)
	last := dev.Calls[len(dev.Calls)-1]
	if last.Name != "BufferSubData" {
		t.Fatalf("last call = %s, want BufferSubData", last.Name)
	}
}

func TestUpdateMeshAtFullCoverageUsesBufferData(t *testing.T) {
	dev := mock.New()
	m := cubeMesh()
	LoadMesh(dev, m)

	m.UpdateMeshAt(StreamPosition, 4, 0)
	last := dev.Calls[len(dev.Calls)-1]
	if last.Name != "BufferData" {
		t.Fatalf("last call = %s, want BufferData", last.Name)
	}
}

func TestUpdateMeshAtColorPartialUsesBufferSubData(t *testing.T) {
	dev := mock.New()
	m := cubeMesh()
	m.Colors = []byte{
		255, 0, 0, 255,
		0, 255, 0, 255,
		0, 0, 255, 255,
		255, 255, 255, 255,
	}
	LoadMesh(dev, m)

	m.Colors[4], m.Colors[5] = 10, 20
	m.UpdateMeshAt(StreamColor, 1, 1)

	last := dev.Calls[len(dev.Calls)-1]
	if last.Name != "BufferSubData" {
		t.Fatalf("last call = %s, want BufferSubData", last.Name)
	}
	buf := dev.Buffer(m.gpu.colorBuf)
	if buf[4] != 10 || buf[5] != 20 {
		t.Fatalf("color bytes not patched: %v", buf[4:8])
	}
}

func TestUpdateMeshAtColorFullCoverageUsesBufferData(t *testing.T) {
	dev := mock.New()
	m := cubeMesh()
	m.Colors = make([]byte, 16)
	LoadMesh(dev, m)

	m.UpdateMeshAt(StreamColor, 4, 0)
	last := dev.Calls[len(dev.Calls)-1]
	if last.Name != "BufferData" {
		t.Fatalf("last call = %s, want BufferData", last.Name)
	}
}

func TestUpdateMeshAtColorSkipsOutOfRange(t *testing.T) {
	dev := mock.New()
	m := cubeMesh()
	m.Colors = make([]byte, 16)
	LoadMesh(dev, m)
	before := len(dev.Calls)

	m.UpdateMeshAt(StreamColor, 5, 0)
	if len(dev.Calls) != before {
		t.Fatal("expected out-of-range color update to be a no-op")
	}
}

func TestMeshBoundsPrefersAnimPositions(t *testing.T) {
	m := cubeMesh()
	b := m.Bounds()
	if b.Max.X != 1 || b.Max.Y != 1 {
		t.Fatalf("static bounds = %+v", b)
	}

	m.AnimPositions = []float32{0, 0, 0, 2, 0, 0, 2, 2, 0, 0, 2, 0}
	b = m.Bounds()
	if b.Max.X != 2 || b.Max.Y != 2 {
		t.Fatalf("anim bounds = %+v", b)
	}
}

func TestMeshDeleteReleasesBuffers(t *testing.T) {
	dev := mock.New()
	m := cubeMesh()
	LoadMesh(dev, m)
	m.Delete()

	found := 0
	for _, c := range dev.Calls {
		if c.Name == "DeleteBuffer" || c.Name == "DeleteVertexArray" {
			found++
		}
	}
	if found == 0 {
		t.Fatal("expected Delete to release GPU resources")
	}
}
