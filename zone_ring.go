package ember

import (
	"math"
	"math/rand/v2"
)

// Ring is a flat annulus zone: the region of a plane between an inner and an
// outer radius around the zone position.
type Ring struct {
	baseZone
	normal    Vec3 // local, unit
	minRadius float32
	maxRadius float32

	tNormal Vec3
	tPerp   [2]Vec3
}

// NewRing creates a ring zone. Negative radii are corrected to absolute
// values and an inverted pair is swapped, both with a warning; a degenerate
// normal falls back to (0,1,0).
func NewRing(position, normal Vec3, minRadius, maxRadius float32) *Ring {
	r := &Ring{}
	r.SetPosition(position)
	r.SetNormal(normal)
	r.SetRadii(minRadius, maxRadius)
	return r
}

// Normal returns the ring's local-space unit normal.
func (z *Ring) Normal() Vec3 { return z.normal }

// MinRadius returns the inner radius.
func (z *Ring) MinRadius() float32 { return z.minRadius }

// MaxRadius returns the outer radius.
func (z *Ring) MaxRadius() float32 { return z.maxRadius }

// SetNormal sets the ring's plane normal; zero input falls back to (0,1,0).
func (z *Ring) SetNormal(n Vec3) {
	if n.Dot(n) < epsilonSq {
		warnf(CodeDegenerateAxis, "Ring normal is zero; using (0,1,0)")
		n = Vec3{0, 1, 0}
	}
	z.normal = safeNormalize(n)
	z.refreshFrame()
}

// SetRadii sets the inner and outer radii.
func (z *Ring) SetRadii(minRadius, maxRadius float32) {
	if minRadius < 0 || maxRadius < 0 {
		warnf(CodeNegativeDimension, "Ring radii (%g, %g) have negative values; using absolute values", minRadius, maxRadius)
		minRadius = abs32(minRadius)
		maxRadius = abs32(maxRadius)
	}
	if minRadius > maxRadius {
		warnf(CodeInvertedRange, "Ring min radius %g is higher than max %g; swapping", minRadius, maxRadius)
		minRadius, maxRadius = maxRadius, minRadius
	}
	z.minRadius = minRadius
	z.maxRadius = maxRadius
}

func (z *Ring) refreshFrame() {
	z.tNormal = z.transformDir(z.normal)
	ref := Vec3{1, 0, 0}
	if abs32(z.tNormal[0]) > 0.9 {
		ref = Vec3{0, 1, 0}
	}
	z.tPerp[0] = safeNormalize(z.tNormal.Cross(ref))
	z.tPerp[1] = z.tNormal.Cross(z.tPerp[0])
}

func (z *Ring) ensure() {
	if z.refreshBase() {
		z.refreshFrame()
	}
}

func (z *Ring) GeneratePosition(full bool, radius float32) Vec3 {
	z.ensure()
	inner := min(z.minRadius+radius, z.maxRadius)
	outer := max(z.maxRadius-radius, inner)

	r := outer
	if full {
		// Area-uniform sampling over the annulus.
		u := randomRange(0, 1)
		r = float32(math.Sqrt(float64(inner*inner + u*(outer*outer-inner*inner))))
	} else if rand.IntN(2) == 0 {
		r = inner
	}
	theta := randomRange(0, 2*math.Pi)
	sin, cos := math.Sincos(float64(theta))
	return z.tPos.
		Add(z.tPerp[0].Mul(r * float32(cos))).
		Add(z.tPerp[1].Mul(r * float32(sin)))
}

// Contains is always false: a ring has no thickness to enclose a sphere.
func (z *Ring) Contains(p Vec3, radius float32) bool {
	return false
}

func (z *Ring) Intersects(v0, v1 Vec3, radius float32) (bool, Vec3) {
	z.ensure()
	dist0 := z.tNormal.Dot(v0.Sub(z.tPos))
	dist1 := z.tNormal.Dot(v1.Sub(z.tPos))
	dist0, dist1 = shiftByRadius(dist0, dist1, radius)
	if (dist0 > 0) == (dist1 > 0) {
		return false, Vec3{}
	}
	ratio := dist0 / (dist0 - dist1)
	at := v0.Add(v1.Sub(v0).Mul(ratio)).Sub(z.tPos)
	axial := z.tNormal.Dot(at)
	radialSq := at.Dot(at) - axial*axial
	if radialSq+radius*radius < z.minRadius*z.minRadius ||
		radialSq-radius*radius > z.maxRadius*z.maxRadius {
		return false, Vec3{}
	}
	if dist0 > 0 {
		return true, z.tNormal
	}
	return true, z.tNormal.Mul(-1)
}

func (z *Ring) ComputeNormal(p Vec3) Vec3 {
	z.ensure()
	if z.tNormal.Dot(p.Sub(z.tPos)) >= 0 {
		return z.tNormal
	}
	return z.tNormal.Mul(-1)
}
