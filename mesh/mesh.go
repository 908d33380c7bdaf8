package mesh

import (
	"math"

	"github.com/rfcore/rf/backend"
)

// Fixed vertex attribute locations LoadMesh binds to. Shaders meant
// to draw a Mesh declare their attributes at these locations (core-profile
// `layout(location = ...)`, or the ES equivalent bind-before-link), so the
// drawer never has to look an attribute name up per mesh.
const (
	AttribPosition = 0
	AttribTexCoord = 1
	AttribNormal   = 2
	AttribColor    = 3
	AttribTangent  = 4
	AttribTexCoord2 = 5
)

// Stream identifies one of a Mesh's parallel vertex arrays, the unit
// UpdateMeshAt operates on.
type Stream int

const (
	StreamPosition Stream = iota
	StreamTexCoord
	StreamNormal
	StreamColor
	StreamTangent
	StreamTexCoord2
	StreamIndices
)

// buffers is the GPU-side handle set a Mesh owns: one VAO plus up to seven
// buffers.
type buffers struct {
	vao                                                    backend.Handle
	posBuf, texBuf, tex2Buf, normBuf, tangentBuf, colorBuf backend.Handle
	idxBuf                                                 backend.Handle
}

// Mesh is the CPU-side vertex data plus the GPU buffers it has been
// uploaded into. Either Indices is nil (unindexed,
// TriangleCount = VertexCount/3) or non-nil (indexed, TriangleCount =
// len(Indices)/3).
type Mesh struct {
	VertexCount   int
	TriangleCount int

	Positions  []float32 // 3/vertex
	TexCoords  []float32 // 2/vertex
	TexCoords2 []float32 // 2/vertex
	Normals    []float32 // 3/vertex
	Tangents   []float32 // 4/vertex (w carries handedness)
	Colors     []byte    // 4/vertex
	Indices    []uint32

	// AnimPositions/AnimNormals are the buffers update_model_animation
	// overwrites; the renderer always samples these in preference to the
	// static Positions/Normals once a Mesh has been bound to a skeleton.
	AnimPositions []float32
	AnimNormals   []float32
	BoneIndices   []uint16 // 4/vertex
	BoneWeights   []float32 // 4/vertex

	gpu buffers
	dev backend.Device
}

// Bounds computes the mesh's axis-aligned bounding box in local space, by
// scanning Positions (or AnimPositions if update_model_animation has run).
func (m *Mesh) Bounds() BoundingBox {
	pos := m.Positions
	if len(m.AnimPositions) == len(m.Positions) && len(m.AnimPositions) > 0 {
		pos = m.AnimPositions
	}
	return boundsOf(pos)
}

func boundsOf(pos []float32) BoundingBox {
	if len(pos) < 3 {
		return BoundingBox{}
	}
	min := Vec3{pos[0], pos[1], pos[2]}
	max := min
	for i := 3; i+2 < len(pos); i += 3 {
		v := Vec3{pos[i], pos[i+1], pos[i+2]}
		if v.X < min.X {
			min.X = v.X
		}
		if v.Y < min.Y {
			min.Y = v.Y
		}
		if v.Z < min.Z {
			min.Z = v.Z
		}
		if v.X > max.X {
			max.X = v.X
		}
		if v.Y > max.Y {
			max.Y = v.Y
		}
		if v.Z > max.Z {
			max.Z = v.Z
		}
	}
	return BoundingBox{Min: min, Max: max}
}

// LoadMesh uploads every present vertex array in m to a dedicated GPU
// buffer, creates a VAO when the backend supports one, and binds
// attribute pointers to the fixed locations. Missing attributes are
// disabled with constant defaults: white color, zero
// tangent, zero texcoord2 (read by shaders that declare but don't need
// them, via the attribute's disabled constant value).
func LoadMesh(dev backend.Device, m *Mesh) {
	m.dev = dev
	if dev.Extensions().VAO {
		m.gpu.vao = dev.GenVertexArray()
		dev.BindVertexArray(m.gpu.vao)
	}

	m.gpu.posBuf = uploadStream(dev, m.Positions, AttribPosition, 3)
	m.gpu.texBuf = uploadStream(dev, m.TexCoords, AttribTexCoord, 2)
	m.gpu.normBuf = uploadStream(dev, m.Normals, AttribNormal, 3)
	m.gpu.tangentBuf = uploadStream(dev, m.Tangents, AttribTangent, 4)
	m.gpu.tex2Buf = uploadStream(dev, m.TexCoords2, AttribTexCoord2, 2)

	if len(m.Colors) > 0 {
		m.gpu.colorBuf = dev.GenBuffer()
		dev.BindArrayBuffer(m.gpu.colorBuf)
		dev.BufferData(m.gpu.colorBuf, m.Colors, false)
		dev.VertexAttribPointer(AttribColor, 4, backend.AttribUnsignedByte, 4, 0, true)
		dev.EnableVertexAttrib(AttribColor)
	} else {
		dev.DisableVertexAttrib(AttribColor)
	}
	if len(m.Tangents) == 0 {
		dev.DisableVertexAttrib(AttribTangent)
	}
	if len(m.TexCoords2) == 0 {
		dev.DisableVertexAttrib(AttribTexCoord2)
	}

	if len(m.Indices) > 0 {
		m.gpu.idxBuf = dev.GenBuffer()
		dev.BindElementBuffer(m.gpu.idxBuf)
		dev.BufferData(m.gpu.idxBuf, indicesToBytes(m.Indices), false)
		m.TriangleCount = len(m.Indices) / 3
	} else {
		m.TriangleCount = m.VertexCount / 3
	}
}

// uploadStream uploads a float32 stream (if non-empty) to a new buffer and
// binds it at attrib with the given component count; it returns the zero
// handle and disables the attribute when data is empty.
func uploadStream(dev backend.Device, data []float32, attrib uint32, components int) backend.Handle {
	if len(data) == 0 {
		dev.DisableVertexAttrib(attrib)
		return 0
	}
	h := dev.GenBuffer()
	dev.BindArrayBuffer(h)
	dev.BufferData(h, floatsToBytes(data), false)
	dev.VertexAttribPointer(attrib, components, backend.AttribFloat, components*4, 0, false)
	dev.EnableVertexAttrib(attrib)
	return h
}

// UpdateMeshAt updates stream's GPU buffer with count elements starting at
// offsetIndex. When the update would exceed the
// stream's element count, it is skipped entirely — no partial update. A
// count covering the whole stream replaces storage with BufferData;
// otherwise BufferSubData patches the range in place.
func (m *Mesh) UpdateMeshAt(stream Stream, count, offsetIndex int) {
	switch stream {
	case StreamIndices:
		m.updateIndices(count, offsetIndex)
		return
	case StreamColor:
		m.updateColors(count, offsetIndex)
		return
	}

	data, components, h := m.streamData(stream)
	if h == 0 {
		return
	}
	elemCount := len(data) / components
	if offsetIndex < 0 || offsetIndex+count > elemCount {
		return
	}

	byteOff := offsetIndex * components * 4
	byteLen := count * components * 4
	bytes := floatsToBytes(data)[byteOff : byteOff+byteLen]

	m.dev.BindArrayBuffer(h)
	if count == elemCount {
		m.dev.BufferData(h, floatsToBytes(data), false)
	} else {
		m.dev.BufferSubData(h, byteOff, bytes)
	}
}

// updateColors is UpdateMeshAt for the byte-packed color stream, whose
// elements are 4 bytes rather than 4 float32s.
func (m *Mesh) updateColors(count, offsetIndex int) {
	if m.gpu.colorBuf == 0 {
		return
	}
	elemCount := len(m.Colors) / 4
	if offsetIndex < 0 || offsetIndex+count > elemCount {
		return
	}
	m.dev.BindArrayBuffer(m.gpu.colorBuf)
	if count == elemCount {
		m.dev.BufferData(m.gpu.colorBuf, m.Colors, false)
		return
	}
	byteOff := offsetIndex * 4
	m.dev.BufferSubData(m.gpu.colorBuf, byteOff, m.Colors[byteOff:byteOff+count*4])
}

func (m *Mesh) updateIndices(count, offsetIndex int) {
	if offsetIndex < 0 || offsetIndex+count > len(m.Indices) {
		return
	}
	full := indicesToBytes(m.Indices)
	m.dev.BindElementBuffer(m.gpu.idxBuf)
	if count == len(m.Indices) {
		m.dev.BufferData(m.gpu.idxBuf, full, false)
		return
	}
	byteOff := offsetIndex * 4
	m.dev.BufferSubData(m.gpu.idxBuf, byteOff, full[byteOff:byteOff+count*4])
}

func (m *Mesh) streamData(s Stream) (data []float32, components int, h backend.Handle) {
	switch s {
	case StreamPosition:
		return m.Positions, 3, m.gpu.posBuf
	case StreamTexCoord:
		return m.TexCoords, 2, m.gpu.texBuf
	case StreamTexCoord2:
		return m.TexCoords2, 2, m.gpu.tex2Buf
	case StreamNormal:
		return m.Normals, 3, m.gpu.normBuf
	case StreamTangent:
		return m.Tangents, 4, m.gpu.tangentBuf
	default:
		return nil, 1, 0
	}
}

// Delete releases every GPU resource m owns.
func (m *Mesh) Delete() {
	if m.dev == nil {
		return
	}
	for _, h := range []backend.Handle{m.gpu.posBuf, m.gpu.texBuf, m.gpu.tex2Buf, m.gpu.normBuf, m.gpu.tangentBuf, m.gpu.colorBuf, m.gpu.idxBuf} {
		if h != 0 {
			m.dev.DeleteBuffer(h)
		}
	}
	if m.gpu.vao != 0 {
		m.dev.DeleteVertexArray(m.gpu.vao)
	}
}

func floatsToBytes(f []float32) []byte {
	out := make([]byte, len(f)*4)
	for i, v := range f {
		bits := math.Float32bits(v)
		out[i*4+0] = byte(bits)
		out[i*4+1] = byte(bits >> 8)
		out[i*4+2] = byte(bits >> 16)
		out[i*4+3] = byte(bits >> 24)
	}
	return out
}

func indicesToBytes(idx []uint32) []byte {
	out := make([]byte, len(idx)*4)
	for i, v := range idx {
		out[i*4+0] = byte(v)
		out[i*4+1] = byte(v >> 8)
		out[i*4+2] = byte(v >> 16)
		out[i*4+3] = byte(v >> 24)
	}
	return out
}
