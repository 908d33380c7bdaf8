// Package shader implements the Shader Manager: GPU program compilation
// plus the fixed-size uniform/attribute location table the batch renderer
// and mesh drawer both index into by predefined slot.
package shader

import (
	"log/slog"

	"github.com/rfcore/rf/backend"
)

// NumLocations is the fixed size of a Shader's location table.
const NumLocations = 32

// Slot identifies one predefined uniform or attribute location. A slot not
// present in a given shader resolves to -1 (absent).
type Slot int

const (
	SlotVertexPosition Slot = iota
	SlotVertexTexCoord
	SlotVertexTexCoord2
	SlotVertexNormal
	SlotVertexTangent
	SlotVertexColor

	SlotMatrixMVP
	SlotMatrixModel
	SlotMatrixView
	SlotMatrixProjection
	SlotVectorView

	SlotColorDiffuse
	SlotColorSpecular
	SlotColorAmbient

	SlotMapAlbedo
	SlotMapMetalness
	SlotMapNormal
	SlotMapRoughness
	SlotMapOcclusion
	SlotMapEmission
	SlotMapHeight
	SlotMapCubemap
	SlotMapIrradiance
	SlotMapPrefilter
	SlotMapBRDF
)

// Shader is a linked GPU program plus its resolved predefined locations.
type Shader struct {
	Program backend.Handle
	Locs    [NumLocations]int32
}

// sentinel is the "not bound" location value.
const sentinel int32 = -1

// newShader returns a Shader with every location defaulted to absent.
func newShader(prog backend.Handle) *Shader {
	s := &Shader{Program: prog}
	for i := range s.Locs {
		s.Locs[i] = sentinel
	}
	return s
}

// Compile compiles and links vertex/fragment GLSL sources through dev, then
// resolves the default attribute/uniform names into Locs. A compile or
// link failure is logged and a sentinel zero-handle Shader is returned —
// GPU-side failures never panic, the caller must check
// Shader.Program == 0.
func Compile(dev backend.Device, vertexSrc, fragmentSrc string) *Shader {
	vs, err := dev.CompileShader(backend.StageVertex, vertexSrc)
	if err != nil {
		slog.Warn("shader: vertex compile failed", "err", err)
		return newShader(0)
	}
	fs, err := dev.CompileShader(backend.StageFragment, fragmentSrc)
	if err != nil {
		slog.Warn("shader: fragment compile failed", "err", err)
		dev.DeleteShader(vs)
		return newShader(0)
	}
	prog, err := dev.LinkProgram(vs, fs)
	dev.DeleteShader(vs)
	dev.DeleteShader(fs)
	if err != nil {
		slog.Warn("shader: link failed", "err", err)
		return newShader(0)
	}

	s := newShader(prog)
	bindDefaultLocations(dev, s)
	return s
}

// bindDefaultLocations resolves the conventional shader names. A name
// absent from the program leaves that slot at -1, matching real GLSL
// linkers (optimized-out unused uniforms/attributes resolve to -1 too).
func bindDefaultLocations(dev backend.Device, s *Shader) {
	attrib := func(name string) int32 { return dev.AttribLocation(s.Program, name) }
	uniform := func(name string) int32 { return dev.UniformLocation(s.Program, name) }

	s.Locs[SlotVertexPosition] = attrib("vertexPosition")
	s.Locs[SlotVertexTexCoord] = attrib("vertexTexCoord")
	s.Locs[SlotVertexTexCoord2] = attrib("vertexTexCoord2")
	s.Locs[SlotVertexNormal] = attrib("vertexNormal")
	s.Locs[SlotVertexTangent] = attrib("vertexTangent")
	s.Locs[SlotVertexColor] = attrib("vertexColor")

	s.Locs[SlotMatrixMVP] = uniform("mvp")
	s.Locs[SlotMatrixModel] = uniform("matModel")
	s.Locs[SlotMatrixView] = uniform("matView")
	s.Locs[SlotMatrixProjection] = uniform("matProjection")
	s.Locs[SlotVectorView] = uniform("viewPos")

	s.Locs[SlotColorDiffuse] = uniform("colDiffuse")
	s.Locs[SlotColorSpecular] = uniform("colSpecular")
	s.Locs[SlotColorAmbient] = uniform("colAmbient")

	s.Locs[SlotMapAlbedo] = uniform("texture0")
	s.Locs[SlotMapMetalness] = uniform("texture1")
	s.Locs[SlotMapNormal] = uniform("texture2")
	s.Locs[SlotMapRoughness] = uniform("texture3")
	s.Locs[SlotMapOcclusion] = uniform("texture4")
	s.Locs[SlotMapEmission] = uniform("texture5")
	s.Locs[SlotMapHeight] = uniform("texture6")
	s.Locs[SlotMapCubemap] = uniform("texture7")
	s.Locs[SlotMapIrradiance] = uniform("texture8")
	s.Locs[SlotMapPrefilter] = uniform("texture9")
	s.Locs[SlotMapBRDF] = uniform("texture10")
}

// Valid reports whether the shader linked successfully.
func (s *Shader) Valid() bool { return s.Program != 0 }

// Delete releases the GPU program.
func (s *Shader) Delete(dev backend.Device) {
	if s.Program != 0 {
		dev.DeleteProgram(s.Program)
		s.Program = 0
	}
}

// DefaultSources returns the embedded default-shader GLSL for the given
// backend profile — one variant per profile.
func DefaultSources(p backend.Profile) (vertex, fragment string) {
	switch p {
	case backend.ProfileGLES2, backend.ProfileGLES3:
		return defaultVertexES, defaultFragmentES
	default:
		return defaultVertexGL33, defaultFragmentGL33
	}
}

const defaultVertexGL33 = `#version 330
in vec3 vertexPosition;
in vec2 vertexTexCoord;
in vec4 vertexColor;
out vec2 fragTexCoord;
out vec4 fragColor;
uniform mat4 mvp;
void main() {
    fragTexCoord = vertexTexCoord;
    fragColor = vertexColor;
    gl_Position = mvp * vec4(vertexPosition, 1.0);
}
`

const defaultFragmentGL33 = `#version 330
in vec2 fragTexCoord;
in vec4 fragColor;
out vec4 finalColor;
uniform sampler2D texture0;
uniform vec4 colDiffuse;
void main() {
    finalColor = texture(texture0, fragTexCoord) * colDiffuse * fragColor;
}
`

const defaultVertexES = `#version 100
attribute vec3 vertexPosition;
attribute vec2 vertexTexCoord;
attribute vec4 vertexColor;
varying vec2 fragTexCoord;
varying vec4 fragColor;
uniform mat4 mvp;
void main() {
    fragTexCoord = vertexTexCoord;
    fragColor = vertexColor;
    gl_Position = mvp * vec4(vertexPosition, 1.0);
}
`

const defaultFragmentES = `#version 100
precision mediump float;
varying vec2 fragTexCoord;
varying vec4 fragColor;
uniform sampler2D texture0;
uniform vec4 colDiffuse;
void main() {
    gl_FragColor = texture2D(texture0, fragTexCoord) * colDiffuse * fragColor;
}
`
