package batch

import (
	"math"

	"github.com/rfcore/rf/backend"
	"github.com/rfcore/rf/internal/linear"
	"github.com/rfcore/rf/pixel"
	"github.com/rfcore/rf/shader"
)

// bufferCount is the number of multi-buffered vertex-stream slots the
// renderer rotates through on flush, matching the "multi-buffered vertex
// batching" requirement.
const bufferCount = 2

// DefaultVertexCapacity is the number of vertices each buffer slot holds
// before a flush is forced.
const DefaultVertexCapacity = 8192

// maxDrawCalls bounds the per-buffer draw-call array; exceeding it forces
// a flush.
const maxDrawCalls = 256

// depthEpsilon is subtracted from current_depth after every end() to give
// successive begin/end pairs a stable draw order under orthographic
// projection.
const depthEpsilon = 1.0 / 20000

// DrawCall is one entry in the per-buffer draw-call array.
type DrawCall struct {
	Mode          backend.DrawMode
	VertexCount   int
	VertexAlign   int
	Texture       backend.Handle
	VertexOffset  int
}

// vertexBuffer is one multi-buffer slot: CPU-side streams plus the GPU
// buffer/VAO handles they're uploaded into.
type vertexBuffer struct {
	positions []float32 // 3 floats/vertex
	texcoords []float32 // 2 floats/vertex
	colors    []byte    // 4 bytes/vertex
	indices   []uint32  // 6 indices per quad, canonical 0,1,2,0,2,3 pattern

	vCounter, tcCounter, cCounter int

	vao, posBuf, texBuf, colBuf, idxBuf backend.Handle
}

func newVertexBuffer(capacity int) *vertexBuffer {
	quads := capacity / 4
	vb := &vertexBuffer{
		positions: make([]float32, capacity*3),
		texcoords: make([]float32, capacity*2),
		colors:    make([]byte, capacity*4),
		indices:   make([]uint32, quads*6),
	}
	for q := 0; q < quads; q++ {
		base := uint32(q * 4)
		i := q * 6
		vb.indices[i+0] = base + 0
		vb.indices[i+1] = base + 1
		vb.indices[i+2] = base + 2
		vb.indices[i+3] = base + 0
		vb.indices[i+4] = base + 2
		vb.indices[i+5] = base + 3
	}
	return vb
}

// Batch is the immediate-mode batch renderer: the caller streams vertices
// between Begin/End pairs, and Draw flushes accumulated draw calls to the
// GPU through the backend.Device table.
type Batch struct {
	dev     backend.Device
	matrix  *MatrixStack
	shader  *shader.Shader
	userShader *shader.Shader

	defaultTexture backend.Handle

	capacity int
	buffers  [bufferCount]*vertexBuffer
	current  int

	draws        []DrawCall
	drawing      bool
	currentMode  backend.DrawMode
	currentDepth float32

	color    [4]byte
	texcoord [2]float32

	blendMode backend.BlendMode
}

// New allocates a Batch with the default vertex capacity.
func New(dev backend.Device, matrix *MatrixStack, defaultShader *shader.Shader, defaultTexture backend.Handle) *Batch {
	return NewWithCapacity(dev, matrix, defaultShader, defaultTexture, DefaultVertexCapacity)
}

// NewWithCapacity allocates a Batch whose per-slot vertex capacity is
// capacity, rounded down to a multiple of 4 (quad alignment).
func NewWithCapacity(dev backend.Device, matrix *MatrixStack, defaultShader *shader.Shader, defaultTexture backend.Handle, capacity int) *Batch {
	capacity -= capacity % 4
	if capacity <= 0 {
		capacity = 4
	}
	b := &Batch{
		dev:            dev,
		matrix:         matrix,
		shader:         defaultShader,
		defaultTexture: defaultTexture,
		capacity:       capacity,
		currentDepth:   -1.0,
		color:          [4]byte{255, 255, 255, 255},
		blendMode:      backend.BlendAlpha,
	}
	for i := range b.buffers {
		b.buffers[i] = newVertexBuffer(capacity)
		b.uploadBuffer(b.buffers[i])
	}
	b.resetDraws()
	return b
}

// uploadBuffer creates GPU handles for vb and wires VAO attribute
// bindings against the default shader's attribute locations.
func (b *Batch) uploadBuffer(vb *vertexBuffer) {
	vb.vao = b.dev.GenVertexArray()
	b.dev.BindVertexArray(vb.vao)

	vb.posBuf = b.dev.GenBuffer()
	b.dev.BindArrayBuffer(vb.posBuf)
	b.dev.BufferData(vb.posBuf, f32Bytes(vb.positions), true)
	if loc := b.shader.Locs[shader.SlotVertexPosition]; loc >= 0 {
		b.dev.VertexAttribPointer(uint32(loc), 3, backend.AttribFloat, 3*4, 0, false)
		b.dev.EnableVertexAttrib(uint32(loc))
	}

	vb.texBuf = b.dev.GenBuffer()
	b.dev.BindArrayBuffer(vb.texBuf)
	b.dev.BufferData(vb.texBuf, f32Bytes(vb.texcoords), true)
	if loc := b.shader.Locs[shader.SlotVertexTexCoord]; loc >= 0 {
		b.dev.VertexAttribPointer(uint32(loc), 2, backend.AttribFloat, 2*4, 0, false)
		b.dev.EnableVertexAttrib(uint32(loc))
	}

	vb.colBuf = b.dev.GenBuffer()
	b.dev.BindArrayBuffer(vb.colBuf)
	b.dev.BufferData(vb.colBuf, vb.colors, true)
	if loc := b.shader.Locs[shader.SlotVertexColor]; loc >= 0 {
		b.dev.VertexAttribPointer(uint32(loc), 4, backend.AttribUnsignedByte, 4, 0, true)
		b.dev.EnableVertexAttrib(uint32(loc))
	}

	vb.idxBuf = b.dev.GenBuffer()
	b.dev.BindElementBuffer(vb.idxBuf)
	b.dev.BufferData(vb.idxBuf, u32Bytes(vb.indices), false)
}

func (b *Batch) resetDraws() {
	b.draws = b.draws[:0]
	b.draws = append(b.draws, DrawCall{Mode: backend.Triangles, Texture: b.defaultTexture})
}

func (b *Batch) buf() *vertexBuffer { return b.buffers[b.current] }

// Begin opens a draw call for mode. If the current call already carries
// vertices and matches mode (and, since EnableTexture closes on texture
// change independently, therefore also matches texture), the new
// primitive merges into it instead of opening a new entry; consecutive
// calls merge only when mode and texture match. If mode differs, the
// current call is closed with alignment padding first and a new entry is
// opened.
func (b *Batch) Begin(mode backend.DrawMode) {
	cur := &b.draws[len(b.draws)-1]
	if b.drawing && cur.Mode != mode {
		b.closeCurrent()
	}
	if len(b.draws) >= maxDrawCalls {
		b.Draw()
	}
	cur = &b.draws[len(b.draws)-1]
	if cur.Mode != mode {
		if cur.VertexCount == 0 && cur.VertexAlign == 0 {
			// A pristine entry (the sentinel, or one EnableTexture just
			// opened) is retagged in place. An entry carrying vertices or
			// stranded alignment padding must stay, so its buffer slots keep
			// their offset accounting.
			cur.Mode = mode
		} else {
			b.draws = append(b.draws, DrawCall{Mode: mode, Texture: cur.Texture, VertexOffset: cur.VertexOffset + cur.VertexCount + cur.VertexAlign})
		}
	}
	b.currentMode = mode
	b.drawing = true
}

// closeCurrent pads the in-flight call's vertex count to the quad
// alignment rule, advancing the parallel counters in lock-step.
func (b *Batch) closeCurrent() {
	vb := b.buf()
	cur := &b.draws[len(b.draws)-1]
	var padded int
	switch cur.Mode {
	case backend.Lines, backend.Triangles:
		if cur.VertexCount >= 4 {
			padded = roundUp4(cur.VertexCount)
		} else {
			padded = 4
		}
	case backend.Quads:
		padded = cur.VertexCount
	}
	align := padded - cur.VertexCount
	cur.VertexAlign = align
	vb.vCounter += align
	vb.tcCounter += align
	vb.cCounter += align
	b.drawing = false
}

func roundUp4(n int) int {
	if n%4 == 0 {
		return n
	}
	return n + (4 - n%4)
}

// Vertex3f appends a vertex to the positions stream, applying the
// transform matrix if one is active.
func (b *Batch) Vertex3f(x, y, z float32) {
	vb := b.buf()
	if vb.vCounter >= b.capacity {
		b.forceFlush()
		vb = b.buf()
	}
	if b.matrix.UseTransformMatrix() {
		p := linear.MulPoint4(b.matrix.Transform(), linear.V3{x, y, z})
		x, y, z = p[0], p[1], p[2]
	}
	i := vb.vCounter * 3
	vb.positions[i], vb.positions[i+1], vb.positions[i+2] = x, y, z
	vb.vCounter++
	b.draws[len(b.draws)-1].VertexCount++
}

// Vertex2f is a thin wrapper over Vertex3f at the current monotonic depth.
func (b *Batch) Vertex2f(x, y float32) { b.Vertex3f(x, y, b.currentDepth) }

// Vertex2i is the integer-coordinate variant of Vertex2f.
func (b *Batch) Vertex2i(x, y int) { b.Vertex2f(float32(x), float32(y)) }

// TexCoord2f appends a texture coordinate to the texcoords stream.
func (b *Batch) TexCoord2f(u, v float32) {
	vb := b.buf()
	if vb.tcCounter >= b.capacity {
		return
	}
	i := vb.tcCounter * 2
	vb.texcoords[i], vb.texcoords[i+1] = u, v
	vb.tcCounter++
	b.texcoord = [2]float32{u, v}
}

// Color4ub appends a color to the colors stream.
func (b *Batch) Color4ub(r, g, bl, a uint8) {
	vb := b.buf()
	if vb.cCounter >= b.capacity {
		return
	}
	i := vb.cCounter * 4
	vb.colors[i], vb.colors[i+1], vb.colors[i+2], vb.colors[i+3] = r, g, bl, a
	vb.cCounter++
	b.color = [4]byte{r, g, bl, a}
}

// Color4f is the normalized-float variant of Color4ub.
func (b *Batch) Color4f(r, g, bl, a float32) {
	b.Color4ub(to255(r), to255(g), to255(bl), to255(a))
}

// ColorPixel appends a pixel.Color.
func (b *Batch) ColorPixel(c pixel.Color) { b.Color4ub(c.R, c.G, c.B, c.A) }

func to255(v float32) uint8 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 255
	}
	return uint8(v * 255)
}

// Normal3f is accepted for forward compatibility and currently ignored
//.
func (b *Batch) Normal3f(x, y, z float32) {}

// End normalizes the color/texcoord streams to match the vertex count and
// steps the monotonic depth counter.
func (b *Batch) End() {
	vb := b.buf()
	for vb.cCounter < vb.vCounter {
		i := vb.cCounter * 4
		var prev [4]byte
		if vb.cCounter > 0 {
			p := (vb.cCounter - 1) * 4
			prev = [4]byte{vb.colors[p], vb.colors[p+1], vb.colors[p+2], vb.colors[p+3]}
		} else {
			prev = [4]byte{255, 255, 255, 255}
		}
		vb.colors[i], vb.colors[i+1], vb.colors[i+2], vb.colors[i+3] = prev[0], prev[1], prev[2], prev[3]
		vb.cCounter++
	}
	for vb.tcCounter < vb.vCounter {
		i := vb.tcCounter * 2
		vb.texcoords[i], vb.texcoords[i+1] = 0, 0
		vb.tcCounter++
	}
	b.currentDepth -= depthEpsilon
}

// EnableTexture switches the current draw call's texture, closing the
// in-flight call (with alignment) first. Forces a flush instead when the
// buffer is near exhaustion. The new entry inherits the closed entry's
// mode — EnableTexture never decides a mode itself, Begin does — so that a
// Begin call immediately following (the only way this codebase calls it)
// sees a consistent mode and can merge into this entry when the mode turns
// out to match. Unlike Begin, EnableTexture does
// not mark the batch as mid-draw: until Begin runs, no primitive is open.
func (b *Batch) EnableTexture(id backend.Handle) {
	cur := &b.draws[len(b.draws)-1]
	if cur.Texture == id {
		return
	}
	if b.buf().vCounter >= b.capacity-4 {
		b.Draw()
		cur = &b.draws[len(b.draws)-1]
		cur.Texture = id
		return
	}
	if b.drawing {
		b.closeCurrent()
	}
	cur = &b.draws[len(b.draws)-1]
	b.draws = append(b.draws, DrawCall{Mode: cur.Mode, Texture: id, VertexOffset: cur.VertexOffset + cur.VertexCount + cur.VertexAlign})
}

func (b *Batch) forceFlush() {
	wasDrawing := b.drawing
	if wasDrawing {
		b.closeCurrent()
	}
	b.Draw()
	if wasDrawing {
		b.Begin(b.currentMode)
	}
}

// Draw flushes the current buffer's accumulated draw calls to the GPU and
// rotates to the next multi-buffer slot.
func (b *Batch) Draw() {
	vb := b.buf()
	b.dev.BindVertexArray(vb.vao)
	b.dev.BindArrayBuffer(vb.posBuf)
	b.dev.BufferSubData(vb.posBuf, 0, f32Bytes(vb.positions[:vb.vCounter*3]))
	b.dev.BindArrayBuffer(vb.texBuf)
	b.dev.BufferSubData(vb.texBuf, 0, f32Bytes(vb.texcoords[:vb.tcCounter*2]))
	b.dev.BindArrayBuffer(vb.colBuf)
	b.dev.BufferSubData(vb.colBuf, 0, vb.colors[:vb.cCounter*4])

	active := b.shader
	if b.userShader != nil {
		active = b.userShader
	}
	b.dev.UseProgram(active.Program)
	mvp := linear.Mul4(b.matrix.Projection(), b.matrix.Modelview())
	if loc := active.Locs[shader.SlotMatrixMVP]; loc >= 0 {
		b.dev.SetUniformMat4(loc, mvp.Flatten())
	}
	if loc := active.Locs[shader.SlotColorDiffuse]; loc >= 0 {
		b.dev.SetUniformVec4(loc, [4]float32{1, 1, 1, 1})
	}
	if loc := active.Locs[shader.SlotMapAlbedo]; loc >= 0 {
		b.dev.SetUniformInt(loc, 0)
	}

	vertexOffset := 0
	for _, call := range b.draws {
		// An empty call can still carry alignment padding (a zero-vertex
		// primitive closed in LINES/TRIANGLES mode), so the offset must
		// advance even when nothing is drawn.
		if call.VertexCount > 0 {
			b.dev.BindTexture2D(0, call.Texture)
			switch call.Mode {
			case backend.Lines, backend.Triangles:
				b.dev.DrawArrays(call.Mode, vertexOffset, call.VertexCount)
			case backend.Quads:
				indexOffset := (vertexOffset / 4) * 6 * 4
				b.dev.DrawElements(backend.Quads, (call.VertexCount/4)*6, backend.IndexUint32, indexOffset)
			}
		}
		vertexOffset += call.VertexCount + call.VertexAlign
	}

	vb.vCounter, vb.tcCounter, vb.cCounter = 0, 0, 0
	b.currentDepth = -1.0
	b.drawing = false
	b.resetDraws()
	b.current = (b.current + 1) % bufferCount
}

func f32Bytes(v []float32) []byte {
	out := make([]byte, len(v)*4)
	for i, f := range v {
		bits := float32bits(f)
		out[i*4], out[i*4+1], out[i*4+2], out[i*4+3] = byte(bits), byte(bits>>8), byte(bits>>16), byte(bits>>24)
	}
	return out
}

func u32Bytes(v []uint32) []byte {
	out := make([]byte, len(v)*4)
	for i, n := range v {
		out[i*4], out[i*4+1], out[i*4+2], out[i*4+3] = byte(n), byte(n>>8), byte(n>>16), byte(n>>24)
	}
	return out
}

func float32bits(f float32) uint32 {
	return math.Float32bits(f)
}

// SetShader installs a user shader that Draw uses instead of the default,
// until SetShader(nil) restores the default.
func (b *Batch) SetShader(s *shader.Shader) { b.userShader = s }

// ActiveShader returns the shader Draw would currently use: the user
// shader if one is installed via SetShader, otherwise the default.
func (b *Batch) ActiveShader() *shader.Shader {
	if b.userShader != nil {
		return b.userShader
	}
	return b.shader
}

// SetBlendMode records the blend mode BeginBlendMode installs; Batch
// itself doesn't apply GPU blend state (that's the Device's job via
// backend.Device.SetBlend) but callers that need to restore the previous
// mode afterward can read it back via BlendMode.
func (b *Batch) SetBlendMode(m backend.BlendMode) { b.blendMode = m }

// BlendMode returns the blend mode last recorded via SetBlendMode.
func (b *Batch) BlendMode() backend.BlendMode { return b.blendMode }

// PendingDrawCalls returns a copy of the draw-call array accumulated since
// the last Draw, for tests and diagnostics that need to inspect batching
// decisions (merge vs. new call) without forcing a flush.
func (b *Batch) PendingDrawCalls() []DrawCall {
	out := make([]DrawCall, len(b.draws))
	copy(out, b.draws)
	return out
}

// Shutdown releases every buffer/VAO handle. The default
// shader and texture are released by the caller that owns the context.
func (b *Batch) Shutdown() {
	for _, vb := range b.buffers {
		b.dev.DeleteBuffer(vb.posBuf)
		b.dev.DeleteBuffer(vb.texBuf)
		b.dev.DeleteBuffer(vb.colBuf)
		b.dev.DeleteBuffer(vb.idxBuf)
		b.dev.DeleteVertexArray(vb.vao)
	}
}
