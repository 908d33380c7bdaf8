// Package mesh implements the Mesh/Model Drawer: GPU vertex-buffer
// upload, material/shader-driven drawing, skeletal animation and the
// collision primitives built on top of them.
package mesh

import (
	"github.com/rfcore/rf/pixel"
	"github.com/rfcore/rf/shader"
	"github.com/rfcore/rf/texture"
)

// MapIndex indexes a Material's map slots. Binding unit equals the map
// index directly, and the first eleven mirror the
// predefined sampler slots in package shader so the two stay in lockstep;
// the twelfth is reserved for a future map without a predefined sampler.
type MapIndex int

const (
	MapAlbedo MapIndex = iota
	MapMetalness
	MapNormal
	MapRoughness
	MapOcclusion
	MapEmission
	MapHeight
	MapCubemap
	MapIrradiance
	MapPrefilter
	MapBRDF
	mapReserved
	mapCount
)

// MaterialMap is one texture slot: a texture, a tint color and a scalar
// value (e.g. roughness factor, normal scale) depending on the slot.
type MaterialMap struct {
	Texture texture.Texture
	Color   pixel.Color
	Value   float32
}

// Material is a shader plus its bound maps and optional free-form shader
// parameters.
type Material struct {
	Shader *shader.Shader
	Maps   [mapCount]MaterialMap
	Params []float32
}

// NewMaterial returns a Material with every map's tint defaulted to white,
// matching an unmodulated sample.
func NewMaterial(sh *shader.Shader) *Material {
	m := &Material{Shader: sh}
	for i := range m.Maps {
		m.Maps[i].Color = pixel.White
	}
	return m
}
