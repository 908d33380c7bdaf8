package mesh

import (
	"testing"

	"github.com/rfcore/rf/backend/mock"
	"github.com/rfcore/rf/internal/linear"
)

func rigMeshAndSkeleton() (*Mesh, *Skeleton) {
	m := &Mesh{
		VertexCount: 1,
		Positions:   []float32{0, 1, 0},
		Normals:     []float32{0, 1, 0},
		BoneIndices: []uint16{0, 0, 0, 0},
		BoneWeights: []float32{1, 0, 0, 0},
	}
	skel := &Skeleton{
		Bones:    []BoneInfo{{Name: "root", Parent: -1}},
		BindPose: []linear.M4{linear.Identity4()},
	}
	return m, skel
}

func TestUpdateModelAnimationIdentityPoseKeepsBindPosition(t *testing.T) {
	dev := mock.New()
	m, skel := rigMeshAndSkeleton()
	LoadMesh(dev, m)

	model := &Model{Skeleton: skel, Meshes: []*Mesh{m}}
	anim := &Animation{
		FrameRate: 30,
		Frames: []AnimationFrame{
			{Poses: []BonePose{{Rotation: linear.QIdentity(), Translation: linear.V3{}, Scale: linear.V3{1, 1, 1}}}},
		},
	}

	UpdateModelAnimation(model, anim, 0)

	if len(m.AnimPositions) != 3 {
		t.Fatalf("AnimPositions len = %d", len(m.AnimPositions))
	}
	if !almostEqual(m.AnimPositions[1], 1) {
		t.Fatalf("AnimPositions = %v, want y=1 unchanged under identity pose", m.AnimPositions)
	}
}

func TestUpdateModelAnimationAppliesTranslation(t *testing.T) {
	dev := mock.New()
	m, skel := rigMeshAndSkeleton()
	LoadMesh(dev, m)

	model := &Model{Skeleton: skel, Meshes: []*Mesh{m}}
	anim := &Animation{
		Frames: []AnimationFrame{
			{Poses: []BonePose{{Rotation: linear.QIdentity(), Translation: linear.V3{2, 0, 0}, Scale: linear.V3{1, 1, 1}}}},
		},
	}

	UpdateModelAnimation(model, anim, 0)

	if !almostEqual(m.AnimPositions[0], 2) {
		t.Fatalf("AnimPositions.x = %v, want 2", m.AnimPositions[0])
	}
}

func TestUpdateModelAnimationNoOpWithoutSkeleton(t *testing.T) {
	m, _ := rigMeshAndSkeleton()
	model := &Model{Meshes: []*Mesh{m}}
	UpdateModelAnimation(model, &Animation{Frames: []AnimationFrame{{}}}, 0)
	if m.AnimPositions != nil {
		t.Fatal("expected no animation without a skeleton")
	}
}

func TestUpdateModelAnimationWrapsFrameIndex(t *testing.T) {
	dev := mock.New()
	m, skel := rigMeshAndSkeleton()
	LoadMesh(dev, m)
	model := &Model{Skeleton: skel, Meshes: []*Mesh{m}}
	anim := &Animation{
		Frames: []AnimationFrame{
			{Poses: []BonePose{{Rotation: linear.QIdentity(), Scale: linear.V3{1, 1, 1}}}},
		},
	}
	UpdateModelAnimation(model, anim, 5)
	if len(m.AnimPositions) != 3 {
		t.Fatal("expected frame index to wrap instead of panicking")
	}
}

func TestQuatFromIdentityMatrixIsIdentity(t *testing.T) {
	q := quatFromMat(linear.Identity4())
	if !almostEqual(q.W, 1) || !almostEqual(q.X, 0) || !almostEqual(q.Y, 0) || !almostEqual(q.Z, 0) {
		t.Fatalf("q = %+v", q)
	}
}

func TestSqrt32(t *testing.T) {
	if got := sqrt32(4); !almostEqual(got, 2) {
		t.Fatalf("sqrt32(4) = %v", got)
	}
}
