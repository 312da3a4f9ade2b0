// Package render draws ember particle systems to an Ebitengine screen as
// camera-facing billboards. The simulation core is renderer-agnostic; this
// package is one concrete boundary over it.
package render

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/phanxgames/ember"
)

func tan32(x float32) float32 {
	return float32(math.Tan(float64(x)))
}

// Camera is a perspective camera. Mutate the fields directly and call
// Refresh before drawing a frame; Project then maps world positions into
// screen space.
type Camera struct {
	Position ember.Vec3
	Target   ember.Vec3
	Up       ember.Vec3

	// FOV is the vertical field of view in degrees.
	FOV  float32
	Near float32
	Far  float32

	viewProj mgl32.Mat4
	width    float32
	height   float32
	focal    float32
}

// NewCamera creates a camera at position looking at target, with a 60
// degree field of view.
func NewCamera(position, target ember.Vec3) *Camera {
	return &Camera{
		Position: position,
		Target:   target,
		Up:       ember.Vec3{0, 1, 0},
		FOV:      60,
		Near:     0.1,
		Far:      1000,
	}
}

// Refresh recomputes the view-projection matrix for a screen of the given
// pixel size. Call once per frame, after moving the camera.
func (c *Camera) Refresh(width, height int) {
	c.width = float32(width)
	c.height = float32(height)
	aspect := c.width / c.height

	view := mgl32.LookAtV(c.Position, c.Target, c.Up)
	proj := mgl32.Perspective(mgl32.DegToRad(c.FOV), aspect, c.Near, c.Far)
	c.viewProj = proj.Mul4(view)

	// Pixels per world unit at depth 1, for billboard sizing.
	c.focal = (c.height / 2) / tan32(mgl32.DegToRad(c.FOV)/2)
}

// Project maps a world position to screen pixels. depth is the distance
// along the view direction; ok is false for points behind the camera or
// outside the near/far range.
func (c *Camera) Project(p ember.Vec3) (x, y, depth float32, ok bool) {
	clip := c.viewProj.Mul4x1(p.Vec4(1))
	depth = clip.W()
	if depth < c.Near || depth > c.Far {
		return 0, 0, depth, false
	}
	ndcX := clip.X() / depth
	ndcY := clip.Y() / depth
	x = (ndcX + 1) / 2 * c.width
	y = (1 - ndcY) / 2 * c.height
	return x, y, depth, true
}

// Scale returns the on-screen pixel size of one world unit at the given
// depth.
func (c *Camera) Scale(depth float32) float32 {
	if depth <= 0 {
		return 0
	}
	return c.focal / depth
}
