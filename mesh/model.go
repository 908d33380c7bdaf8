package mesh

import (
	"github.com/rfcore/rf/backend"
	"github.com/rfcore/rf/batch"
	"github.com/rfcore/rf/internal/linear"
	"github.com/rfcore/rf/pixel"
	"github.com/rfcore/rf/shader"
)

// BoneInfo names one joint and its parent index (-1 for a root).
type BoneInfo struct {
	Name   string
	Parent int
}

// Skeleton is a bone hierarchy plus each bone's bind-pose transform.
type Skeleton struct {
	Bones    []BoneInfo
	BindPose []linear.M4
}

// Model is a world transform, a mesh/material set, a per-mesh material
// assignment, and an optional skeleton.
type Model struct {
	Transform    linear.M4
	Meshes       []*Mesh
	Materials    []*Material
	MeshMaterial []int
	Skeleton     *Skeleton
}

// DrawMesh uses material's shader directly: it uploads model/view/
// projection/MVP uniforms (model = transform, view = current modelview,
// projection = current projection, MVP = model * view * projection),
// binds every material map with a non-zero texture (binding unit = map
// index; MapCubemap samples TEXTURE_CUBE_MAP, the rest TEXTURE_2D), and
// issues an indexed or unindexed draw. Projection and modelview are left
// untouched by this call; nothing
// here pushes onto matrix, so there's nothing to restore.
func DrawMesh(dev backend.Device, matrix *batch.MatrixStack, m *Mesh, mat *Material, transform linear.M4) {
	if mat == nil || mat.Shader == nil || !mat.Shader.Valid() {
		return
	}
	view := matrix.Modelview()
	proj := matrix.Projection()
	mv := linear.Mul4(view, transform)
	mvp := linear.Mul4(proj, mv)

	dev.UseProgram(mat.Shader.Program)
	setMat4(dev, mat.Shader, shader.SlotMatrixModel, transform)
	setMat4(dev, mat.Shader, shader.SlotMatrixView, view)
	setMat4(dev, mat.Shader, shader.SlotMatrixProjection, proj)
	setMat4(dev, mat.Shader, shader.SlotMatrixMVP, mvp)

	if loc := mat.Shader.Locs[shader.SlotColorDiffuse]; loc >= 0 {
		c := mat.Maps[MapAlbedo].Color.Normalize()
		dev.SetUniformVec4(loc, [4]float32{c.R, c.G, c.B, c.A})
	}

	for i := range mat.Maps {
		mp := &mat.Maps[i]
		if !mp.Texture.Valid() {
			continue
		}
		if MapIndex(i) == MapCubemap {
			dev.BindTextureCube(i, mp.Texture.Handle)
		} else {
			dev.BindTexture2D(i, mp.Texture.Handle)
		}
	}

	if m.gpu.vao != 0 {
		dev.BindVertexArray(m.gpu.vao)
	}
	if len(m.Indices) > 0 {
		dev.DrawElements(backend.Triangles, len(m.Indices), backend.IndexUint32, 0)
	} else {
		dev.DrawArrays(backend.Triangles, 0, m.VertexCount)
	}
}

func setMat4(dev backend.Device, s *shader.Shader, slot shader.Slot, m linear.M4) {
	loc := s.Locs[slot]
	if loc < 0 {
		return
	}
	dev.SetUniformMat4(loc, m.Flatten())
}

// DrawModel composes scale * rotate * translate into a local transform,
// multiplies it into model's stored Transform without mutating the
// caller-visible struct, then draws each mesh with its assigned material,
// modulating the albedo map's tint by tint.
func DrawModel(dev backend.Device, matrix *batch.MatrixStack, model *Model, position, axis Vec3, angleRad float32, scale Vec3, tint pixel.Color) {
	local := linear.Mul4(linear.Rotate4(angleRad, axis.toLinear()), linear.Scale4(scale.X, scale.Y, scale.Z))
	local = linear.Mul4(linear.Translate4(position.X, position.Y, position.Z), local)
	world := linear.Mul4(model.Transform, local)

	for i, m := range model.Meshes {
		matIdx := 0
		if i < len(model.MeshMaterial) {
			matIdx = model.MeshMaterial[i]
		}
		if matIdx < 0 || matIdx >= len(model.Materials) {
			continue
		}
		mat := model.Materials[matIdx]
		prevTint := mat.Maps[MapAlbedo].Color
		mat.Maps[MapAlbedo].Color = pixel.Color{
			R: uint8(uint16(prevTint.R) * uint16(tint.R) / 255),
			G: uint8(uint16(prevTint.G) * uint16(tint.G) / 255),
			B: uint8(uint16(prevTint.B) * uint16(tint.B) / 255),
			A: uint8(uint16(prevTint.A) * uint16(tint.A) / 255),
		}
		DrawMesh(dev, matrix, m, mat, world)
		mat.Maps[MapAlbedo].Color = prevTint
	}
}
