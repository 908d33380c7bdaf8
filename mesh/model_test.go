package mesh

import (
	"testing"

	"github.com/rfcore/rf/backend/mock"
	"github.com/rfcore/rf/batch"
	"github.com/rfcore/rf/internal/linear"
	"github.com/rfcore/rf/pixel"
	"github.com/rfcore/rf/shader"
)

func testShader(dev *mock.Device) *shader.Shader {
	return shader.Compile(dev, "vertex", "fragment")
}

func TestDrawMeshSkipsInvalidMaterial(t *testing.T) {
	dev := mock.New()
	m := cubeMesh()
	LoadMesh(dev, m)
	matrix := batch.NewMatrixStack()

	before := len(dev.Calls)
	DrawMesh(dev, matrix, m, nil, linear.Identity4())
	if len(dev.Calls) != before {
		t.Fatal("expected nil material to be a no-op")
	}

	invalid := NewMaterial(&shader.Shader{})
	DrawMesh(dev, matrix, m, invalid, linear.Identity4())
	if len(dev.Calls) != before {
		t.Fatal("expected unlinked shader to be a no-op")
	}
}

func TestDrawMeshIssuesIndexedDraw(t *testing.T) {
	dev := mock.New()
	m := cubeMesh()
	LoadMesh(dev, m)
	matrix := batch.NewMatrixStack()
	mat := NewMaterial(testShader(dev))

	DrawMesh(dev, matrix, m, mat, linear.Identity4())

	calls := dev.DrawCalls()
	if len(calls) != 1 || !calls[0].Indexed || calls[0].Count != len(m.Indices) {
		t.Fatalf("draw calls = %+v", calls)
	}
}

func TestDrawMeshUploadsDiffuseTint(t *testing.T) {
	dev := mock.New()
	m := cubeMesh()
	LoadMesh(dev, m)
	matrix := batch.NewMatrixStack()
	mat := NewMaterial(testShader(dev))
	mat.Maps[MapAlbedo].Color = pixel.Color{R: 255, G: 0, B: 0, A: 255}

	DrawMesh(dev, matrix, m, mat, linear.Identity4())

	found := false
	for _, c := range dev.Calls {
		if c.Name == "SetUniformVec4" {
			found = true
			v := c.Args[1].([4]float32)
			if v[0] != 1 || v[1] != 0 {
				t.Fatalf("diffuse uniform = %v", v)
			}
		}
	}
	if !found {
		t.Fatal("expected a SetUniformVec4 call for colDiffuse")
	}
}

func TestDrawModelRestoresMapTintAfterDraw(t *testing.T) {
	dev := mock.New()
	m := cubeMesh()
	LoadMesh(dev, m)
	matrix := batch.NewMatrixStack()
	mat := NewMaterial(testShader(dev))

	model := &Model{
		Transform:    linear.Identity4(),
		Meshes:       []*Mesh{m},
		Materials:    []*Material{mat},
		MeshMaterial: []int{0},
	}

	DrawModel(dev, matrix, model, Vec3{}, Vec3{Y: 1}, 0, Vec3{X: 1, Y: 1, Z: 1}, pixel.Color{R: 10, G: 20, B: 30, A: 255})

	if mat.Maps[MapAlbedo].Color != pixel.White {
		t.Fatalf("expected tint restored to white, got %+v", mat.Maps[MapAlbedo].Color)
	}
}
