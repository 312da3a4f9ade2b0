package ember

import (
	"math"
	"math/rand/v2"
)

// Box is an oriented box zone. Dimension holds the half-extent along each
// local axis; the local frame is derived from a front (local Z) and up
// (local Y) direction.
type Box struct {
	baseZone
	dimension Vec3
	axis      [3]Vec3 // local orthonormal frame: X, Y (up), Z (front)
	tAxis     [3]Vec3 // world-space counterparts
}

// NewBox creates a box zone with the given half-extents and the default
// frame front=(0,0,1), up=(0,1,0). Negative dimensions are corrected to
// their absolute values with a warning.
func NewBox(position, dimension Vec3) *Box {
	b := &Box{}
	b.SetPosition(position)
	b.SetDimension(dimension)
	b.SetAxes(Vec3{0, 0, 1}, Vec3{0, 1, 0})
	return b
}

// Dimension returns the box half-extents along its local axes.
func (z *Box) Dimension() Vec3 { return z.dimension }

// SetDimension sets the half-extents, correcting negative components.
func (z *Box) SetDimension(d Vec3) {
	if d[0] < 0 || d[1] < 0 || d[2] < 0 {
		warnf(CodeNegativeDimension, "Box dimension %v has negative components; using absolute values", d)
		d = vecAbs(d)
	}
	z.dimension = d
}

// Front returns the box's local front axis (local Z).
func (z *Box) Front() Vec3 { return z.axis[2] }

// Up returns the box's local up axis (local Y).
func (z *Box) Up() Vec3 { return z.axis[1] }

// SetAxes orients the box from a front and an up direction. The pair is
// orthonormalized; colinear or zero inputs fall back to the default frame
// with a warning.
func (z *Box) SetAxes(front, up Vec3) {
	if front.Dot(front) < epsilonSq || up.Dot(up) < epsilonSq ||
		front.Cross(up).Dot(front.Cross(up)) < epsilonSq {
		warnf(CodeDegenerateAxis, "Box axes are degenerate; using front=(0,0,1) up=(0,1,0)")
		front = Vec3{0, 0, 1}
		up = Vec3{0, 1, 0}
	}
	z.axis[2] = safeNormalize(front)
	z.axis[1] = safeNormalize(up)
	z.axis[0] = z.axis[2].Cross(z.axis[1])
	z.axis[1] = z.axis[0].Cross(z.axis[2])
	for i := range z.axis {
		z.axis[i] = safeNormalize(z.axis[i])
	}
	z.refreshAxes()
}

func (z *Box) refreshAxes() {
	for i := range z.axis {
		z.tAxis[i] = z.transformDir(z.axis[i])
	}
}

func (z *Box) ensure() {
	if z.refreshBase() {
		z.refreshAxes()
	}
}

func (z *Box) GeneratePosition(full bool, radius float32) Vec3 {
	z.ensure()
	rel := vecMax(z.dimension.Sub(Vec3{radius, radius, radius}), Vec3{})
	local := randomVec3(rel.Mul(-1), rel)
	if !full {
		// Pin one coordinate to a face so the sample lies on the boundary.
		n := rand.IntN(6)
		axis := n >> 1
		dir := float32((n&1)<<1 - 1)
		local[axis] = dir * rel[axis]
	}
	v := z.tPos
	for i := range z.tAxis {
		v = v.Add(z.tAxis[i].Mul(local[i]))
	}
	return v
}

func (z *Box) Contains(p Vec3, radius float32) bool {
	z.ensure()
	d := p.Sub(z.tPos)
	for i := range z.tAxis {
		if abs32(z.tAxis[i].Dot(d))+radius > z.dimension[i] {
			return false
		}
	}
	return true
}

// Intersects approximates the crossing point as the earliest slab boundary
// reached along the segment; grazing trajectories near edges may report the
// neighboring face's normal.
func (z *Box) Intersects(v0, v1 Vec3, radius float32) (bool, Vec3) {
	z.ensure()
	d0 := v0.Sub(z.tPos)
	d1 := v1.Sub(z.tPos)

	minRatio := float32(math.MaxFloat32)
	var normal Vec3
	hit := false

	for i := range z.tAxis {
		dist0 := z.tAxis[i].Dot(d0)
		dist1 := z.tAxis[i].Dot(d1)
		dist0, dist1 = shiftByRadius(dist0, dist1, radius)

		if crossesSlab(dist0, dist1, z.dimension[i], z.tAxis[i], &minRatio, &normal) {
			hit = true
		}
		if crossesSlab(dist0, dist1, -z.dimension[i], z.tAxis[i].Mul(-1), &minRatio, &normal) {
			hit = true
		}
	}
	return hit, normal
}

func (z *Box) ComputeNormal(p Vec3) Vec3 {
	z.ensure()
	d := p.Sub(z.tPos)

	// Nearest face wins: largest normalized signed distance ratio.
	ratio := Vec3{math.MaxFloat32, math.MaxFloat32, math.MaxFloat32}
	for i := range z.tAxis {
		if z.dimension[i] > 0 {
			ratio[i] = z.tAxis[i].Dot(d) / z.dimension[i]
		}
	}
	if ratio[0] == math.MaxFloat32 && ratio[1] == math.MaxFloat32 && ratio[2] == math.MaxFloat32 {
		return normalizeOrRandomize(d)
	}

	absRatio := vecAbs(ratio)
	axisIndex := 0
	if absRatio[1] > absRatio[0] {
		axisIndex = 1
	}
	if absRatio[2] > absRatio[axisIndex] {
		axisIndex = 2
	}

	if ratio[axisIndex] > 0 {
		return z.tAxis[axisIndex]
	}
	return z.tAxis[axisIndex].Mul(-1)
}
