package ember

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Transform is a local affine pose plus its derived world pose. The world
// matrix is recomputed lazily: reads always reflect the last local change and
// the parent chain's current state.
//
// Transforms are composed by parenting: a child's world matrix is
// parent.World() * child.Local(). Cycles are not detected; don't create them.
type Transform struct {
	local mgl32.Mat4
	world mgl32.Mat4

	parent *Transform

	// version is bumped every time world changes, so children know to
	// recompute even when their own local matrix didn't move.
	version       uint32
	parentVersion uint32
	dirty         bool
}

// NewTransform returns an identity transform with no parent.
func NewTransform() *Transform {
	return &Transform{
		local: mgl32.Ident4(),
		world: mgl32.Ident4(),
	}
}

// Local returns the local matrix.
func (t *Transform) Local() mgl32.Mat4 {
	return t.local
}

// SetLocal replaces the local matrix and marks the transform dirty.
func (t *Transform) SetLocal(m mgl32.Mat4) {
	t.local = m
	t.dirty = true
}

// SetLocalPosition sets the local matrix to a pure translation.
func (t *Transform) SetLocalPosition(p Vec3) {
	t.SetLocal(mgl32.Translate3D(p[0], p[1], p[2]))
}

// SetParent attaches t under parent (nil detaches). The world matrix is
// recomputed on the next read.
func (t *Transform) SetParent(parent *Transform) {
	t.parent = parent
	t.dirty = true
}

// Parent returns the parent transform, or nil.
func (t *Transform) Parent() *Transform {
	return t.parent
}

// World returns the world matrix, recomputing it first if the local matrix
// or any ancestor changed since the last read.
func (t *Transform) World() mgl32.Mat4 {
	t.refresh()
	return t.world
}

// refresh brings world up to date with local and the parent chain.
func (t *Transform) refresh() {
	if t.parent == nil {
		if t.dirty {
			t.world = t.local
			t.dirty = false
			t.version++
		}
		return
	}
	t.parent.refresh()
	if t.dirty || t.parentVersion != t.parent.version {
		t.world = t.parent.world.Mul4(t.local)
		t.parentVersion = t.parent.version
		t.dirty = false
		t.version++
	}
}

// worldVersion returns a counter that changes whenever the world matrix
// does. Zones cache it to avoid re-deriving world-space state every call.
func (t *Transform) worldVersion() uint32 {
	t.refresh()
	return t.version
}

// TransformPoint applies the world matrix to a point (translation included).
func (t *Transform) TransformPoint(p Vec3) Vec3 {
	return mgl32.TransformCoordinate(p, t.World())
}

// TransformDir applies the world matrix to a direction, ignoring translation.
func (t *Transform) TransformDir(d Vec3) Vec3 {
	return mgl32.TransformNormal(d, t.World())
}
