package ember

import (
	"math"
	"math/rand/v2"
)

// Cylinder is a solid capped cylinder zone defined by a center position, an
// axis direction, a radius, and a length along the axis.
type Cylinder struct {
	baseZone
	direction Vec3 // local, unit
	radius    float32
	length    float32

	// world-space frame: axis plus two perpendicular basis vectors
	tDir  Vec3
	tPerp [2]Vec3
}

// NewCylinder creates a cylinder zone. Negative radius or length are
// corrected to absolute values, a degenerate direction falls back to
// (0,1,0), both with a warning.
func NewCylinder(position, direction Vec3, radius, length float32) *Cylinder {
	c := &Cylinder{}
	c.SetPosition(position)
	c.SetDirection(direction)
	c.SetRadius(radius)
	c.SetLength(length)
	return c
}

// Direction returns the cylinder's local axis direction.
func (z *Cylinder) Direction() Vec3 { return z.direction }

// Radius returns the cylinder's radius.
func (z *Cylinder) Radius() float32 { return z.radius }

// Length returns the cylinder's length along its axis.
func (z *Cylinder) Length() float32 { return z.length }

// SetDirection sets the cylinder axis; zero input falls back to (0,1,0).
func (z *Cylinder) SetDirection(d Vec3) {
	if d.Dot(d) < epsilonSq {
		warnf(CodeDegenerateAxis, "Cylinder direction is zero; using (0,1,0)")
		d = Vec3{0, 1, 0}
	}
	z.direction = safeNormalize(d)
	z.refreshFrame()
}

// SetRadius sets the cylinder radius, correcting negative values.
func (z *Cylinder) SetRadius(r float32) {
	if r < 0 {
		warnf(CodeNegativeDimension, "Cylinder radius %g is negative; using %g", r, -r)
		r = -r
	}
	z.radius = r
}

// SetLength sets the cylinder length, correcting negative values.
func (z *Cylinder) SetLength(l float32) {
	if l < 0 {
		warnf(CodeNegativeDimension, "Cylinder length %g is negative; using %g", l, -l)
		l = -l
	}
	z.length = l
}

func (z *Cylinder) refreshFrame() {
	z.tDir = z.transformDir(z.direction)
	// Any stable perpendicular pair will do.
	ref := Vec3{1, 0, 0}
	if abs32(z.tDir[0]) > 0.9 {
		ref = Vec3{0, 1, 0}
	}
	z.tPerp[0] = safeNormalize(z.tDir.Cross(ref))
	z.tPerp[1] = z.tDir.Cross(z.tPerp[0])
}

func (z *Cylinder) ensure() {
	if z.refreshBase() {
		z.refreshFrame()
	}
}

func (z *Cylinder) GeneratePosition(full bool, radius float32) Vec3 {
	z.ensure()
	r := max(z.radius-radius, 0)
	halfLen := max(z.length/2-radius, 0)

	axial := randomRange(-halfLen, halfLen)
	radial := r
	if full {
		// Square-root scaling keeps disc samples uniform.
		radial = r * float32(math.Sqrt(float64(randomRange(0, 1))))
	} else {
		// Surface only: pick cap vs side proportionally to area. The cap
		// branch covers both end discs, so it weighs in at twice the disc
		// area.
		capArea := 2 * float32(math.Pi) * r * r
		sideArea := 2 * float32(math.Pi) * r * 2 * halfLen
		if randomRange(0, capArea+sideArea) < capArea {
			axial = halfLen
			if rand.IntN(2) == 0 {
				axial = -halfLen
			}
			radial = r * float32(math.Sqrt(float64(randomRange(0, 1))))
		}
	}
	theta := randomRange(0, 2*math.Pi)
	sin, cos := math.Sincos(float64(theta))
	return z.tPos.
		Add(z.tDir.Mul(axial)).
		Add(z.tPerp[0].Mul(radial * float32(cos))).
		Add(z.tPerp[1].Mul(radial * float32(sin)))
}

func (z *Cylinder) Contains(p Vec3, radius float32) bool {
	z.ensure()
	d := p.Sub(z.tPos)
	axial := z.tDir.Dot(d)
	if abs32(axial)+radius > z.length/2 {
		return false
	}
	radialSq := d.Dot(d) - axial*axial
	reach := z.radius - radius
	return reach >= 0 && radialSq <= reach*reach
}

func (z *Cylinder) Intersects(v0, v1 Vec3, radius float32) (bool, Vec3) {
	z.ensure()
	d0 := v0.Sub(z.tPos)
	d1 := v1.Sub(z.tPos)

	minRatio := float32(math.MaxFloat32)
	var normal Vec3
	hit := false

	// Cap slabs, accepted only when the crossing lies within the radius.
	a0 := z.tDir.Dot(d0)
	a1 := z.tDir.Dot(d1)
	sa0, sa1 := shiftByRadius(a0, a1, radius)
	halfLen := z.length / 2
	for _, face := range [2]struct {
		slab float32
		n    Vec3
	}{{halfLen, z.tDir}, {-halfLen, z.tDir.Mul(-1)}} {
		prevRatio, prevNormal := minRatio, normal
		if crossesSlab(sa0, sa1, face.slab, face.n, &minRatio, &normal) {
			at := d0.Add(d1.Sub(d0).Mul(minRatio))
			axial := z.tDir.Dot(at)
			if radialSq := at.Dot(at) - axial*axial; radialSq <= z.radius*z.radius {
				hit = true
			} else {
				minRatio, normal = prevRatio, prevNormal
			}
		}
	}

	// Side: solve |radial(t)| = radius (possibly shifted by the swept
	// radius) as a quadratic in t.
	r0 := d0.Sub(z.tDir.Mul(a0))
	r1 := d1.Sub(z.tDir.Mul(a1))
	rd := r1.Sub(r0)
	reach := z.radius
	if r0.Dot(r0) > reach*reach {
		reach += radius // entering from outside
	} else {
		reach = max(reach-radius, 0) // leaving from inside
	}
	a := rd.Dot(rd)
	b := 2 * r0.Dot(rd)
	c := r0.Dot(r0) - reach*reach
	if a > 0 {
		if disc := b*b - 4*a*c; disc >= 0 {
			sqrtDisc := float32(math.Sqrt(float64(disc)))
			for _, t := range [2]float32{(-b - sqrtDisc) / (2 * a), (-b + sqrtDisc) / (2 * a)} {
				if t < 0 || t > 1 || t >= minRatio {
					continue
				}
				axial := a0 + (a1-a0)*t
				if abs32(axial) > halfLen {
					continue
				}
				minRatio = t
				normal = normalizeOrRandomize(r0.Add(rd.Mul(t)))
				hit = true
			}
		}
	}
	return hit, normal
}

func (z *Cylinder) ComputeNormal(p Vec3) Vec3 {
	z.ensure()
	d := p.Sub(z.tPos)
	axial := z.tDir.Dot(d)
	radial := d.Sub(z.tDir.Mul(axial))

	// Nearest boundary wins: cap plane vs side wall.
	capRatio := float32(math.MaxFloat32)
	if z.length > 0 {
		capRatio = abs32(axial) / (z.length / 2)
	}
	sideRatio := float32(math.MaxFloat32)
	if z.radius > 0 {
		sideRatio = float32(math.Sqrt(float64(radial.Dot(radial)))) / z.radius
	}
	if capRatio == math.MaxFloat32 && sideRatio == math.MaxFloat32 {
		return normalizeOrRandomize(d)
	}
	if capRatio >= sideRatio {
		if axial >= 0 {
			return z.tDir
		}
		return z.tDir.Mul(-1)
	}
	return normalizeOrRandomize(radial)
}
