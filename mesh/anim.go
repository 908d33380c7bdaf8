package mesh

import (
	"math"

	"github.com/rfcore/rf/backend"
	"github.com/rfcore/rf/internal/linear"
)

// BonePose is one bone's local pose within an animation frame: a rotation,
// a translation and a uniform-per-axis scale, matching the transforms a
// rigged model's bones carry.
type BonePose struct {
	Rotation    linear.Q
	Translation linear.V3
	Scale       linear.V3
}

// AnimationFrame is one sampled pose for every bone in a Skeleton, indexed
// the same way as Skeleton.Bones.
type AnimationFrame struct {
	Poses []BonePose
}

// Animation is a named sequence of frames sampled at FrameRate frames per
// second.
type Animation struct {
	Name      string
	FrameRate float32
	Frames    []AnimationFrame
}

// UpdateModelAnimation resamples every mesh bound to model's skeleton at
// anim's given frame, overwriting AnimPositions/AnimNormals and re-uploading
// the whole position/normal GPU buffers with BufferData. Vertices with no bone weights
// (BoneWeights all zero) are left at their bind-pose position.
//
// Per vertex the skinning transform is the classic dual form:
//
//	R = q_out * q_bind^-1
//	v' = R * (v*S - T_bind) + T_out
//
// accumulated across up to four influencing bones and weighted by
// BoneWeights, matching the bind/output pose split a rigged-model loader
// produces.
func UpdateModelAnimation(model *Model, anim *Animation, frame int) {
	if model.Skeleton == nil || anim == nil || len(anim.Frames) == 0 {
		return
	}
	frame = frame % len(anim.Frames)
	pose := anim.Frames[frame]

	for _, m := range model.Meshes {
		if len(m.BoneIndices) == 0 || len(m.BoneWeights) == 0 {
			continue
		}
		animateMesh(m, model.Skeleton, pose)
	}
}

func animateMesh(m *Mesh, skel *Skeleton, pose AnimationFrame) {
	n := m.VertexCount
	if len(m.AnimPositions) != n*3 {
		m.AnimPositions = make([]float32, n*3)
	}
	if len(m.Normals) > 0 && len(m.AnimNormals) != n*3 {
		m.AnimNormals = make([]float32, n*3)
	}

	for v := 0; v < n; v++ {
		bind := linear.V3{m.Positions[v*3], m.Positions[v*3+1], m.Positions[v*3+2]}
		var normal linear.V3
		hasNormal := len(m.Normals) >= (v+1)*3
		if hasNormal {
			normal = linear.V3{m.Normals[v*3], m.Normals[v*3+1], m.Normals[v*3+2]}
		}

		var outPos, outNorm linear.V3
		var weightSum float32

		for j := 0; j < 4; j++ {
			idx := int(m.BoneIndices[v*4+j])
			w := m.BoneWeights[v*4+j]
			if w == 0 || idx < 0 || idx >= len(skel.Bones) || idx >= len(pose.Poses) {
				continue
			}
			bindPose := skel.BindPose[idx]
			bindQ, bindT, bindS := decomposeTRS(bindPose)

			out := pose.Poses[idx]
			rot := out.Rotation.Mul(bindQ.Conjugate())

			scaled := linear.V3{
				bind[0] * bindS[0],
				bind[1] * bindS[1],
				bind[2] * bindS[2],
			}
			local := scaled.Sub(bindT)
			skinned := rot.RotateVector(local).Add(out.Translation)

			outPos = outPos.Add(skinned.Scale(w))
			if hasNormal {
				outNorm = outNorm.Add(rot.RotateVector(normal).Scale(w))
			}
			weightSum += w
		}

		if weightSum == 0 {
			outPos = bind
			outNorm = normal
		}

		m.AnimPositions[v*3+0] = outPos[0]
		m.AnimPositions[v*3+1] = outPos[1]
		m.AnimPositions[v*3+2] = outPos[2]
		if hasNormal {
			m.AnimNormals[v*3+0] = outNorm[0]
			m.AnimNormals[v*3+1] = outNorm[1]
			m.AnimNormals[v*3+2] = outNorm[2]
		}
	}

	if m.gpu.posBuf != 0 {
		uploadAnim(m, m.gpu.posBuf, m.AnimPositions)
	}
	if hasNorm := len(m.AnimNormals) > 0; hasNorm && m.gpu.normBuf != 0 {
		uploadAnim(m, m.gpu.normBuf, m.AnimNormals)
	}
}

func uploadAnim(m *Mesh, h backend.Handle, data []float32) {
	m.dev.BindArrayBuffer(h)
	m.dev.BufferData(h, floatsToBytes(data), true)
}

// decomposeTRS extracts a bind-pose quaternion, translation and per-axis
// scale from a bone's bind matrix. Bind matrices produced by load_model are
// always pure TRS composites, so scale is simply each column's length and
// the rotation is whatever remains once columns are unscaled.
func decomposeTRS(m linear.M4) (linear.Q, linear.V3, linear.V3) {
	col := func(c int) linear.V3 { return linear.V3{m[c][0], m[c][1], m[c][2]} }
	sx, sy, sz := col(0).Len(), col(1).Len(), col(2).Len()
	scale := linear.V3{sx, sy, sz}
	t := linear.V3{m[3][0], m[3][1], m[3][2]}

	rm := m
	if sx != 0 {
		rm[0] = [4]float32{m[0][0] / sx, m[0][1] / sx, m[0][2] / sx, 0}
	}
	if sy != 0 {
		rm[1] = [4]float32{m[1][0] / sy, m[1][1] / sy, m[1][2] / sy, 0}
	}
	if sz != 0 {
		rm[2] = [4]float32{m[2][0] / sz, m[2][1] / sz, m[2][2] / sz, 0}
	}
	return quatFromMat(rm), t, scale
}

func sqrt32(v float32) float32 { return float32(math.Sqrt(float64(v))) }

// quatFromMat converts a pure-rotation M4 to a quaternion.
func quatFromMat(m linear.M4) linear.Q {
	tr := m[0][0] + m[1][1] + m[2][2]
	if tr > 0 {
		s := sqrt32(tr+1) * 2
		return linear.Q{
			W: s / 4,
			X: (m[1][2] - m[2][1]) / s,
			Y: (m[2][0] - m[0][2]) / s,
			Z: (m[0][1] - m[1][0]) / s,
		}
	}
	if m[0][0] > m[1][1] && m[0][0] > m[2][2] {
		s := sqrt32(1+m[0][0]-m[1][1]-m[2][2]) * 2
		return linear.Q{
			W: (m[1][2] - m[2][1]) / s,
			X: s / 4,
			Y: (m[1][0] + m[0][1]) / s,
			Z: (m[2][0] + m[0][2]) / s,
		}
	}
	if m[1][1] > m[2][2] {
		s := sqrt32(1+m[1][1]-m[0][0]-m[2][2]) * 2
		return linear.Q{
			W: (m[2][0] - m[0][2]) / s,
			X: (m[1][0] + m[0][1]) / s,
			Y: s / 4,
			Z: (m[2][1] + m[1][2]) / s,
		}
	}
	s := sqrt32(1+m[2][2]-m[0][0]-m[1][1]) * 2
	return linear.Q{
		W: (m[0][1] - m[1][0]) / s,
		X: (m[2][0] + m[0][2]) / s,
		Y: (m[2][1] + m[1][2]) / s,
		Z: s / 4,
	}
}
