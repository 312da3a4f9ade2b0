package ember

import "math"

// Sphere is a solid ball zone.
type Sphere struct {
	baseZone
	radius float32
}

// NewSphere creates a sphere zone. A negative radius is corrected to its
// absolute value with a warning.
func NewSphere(position Vec3, radius float32) *Sphere {
	s := &Sphere{}
	s.SetPosition(position)
	s.SetRadius(radius)
	return s
}

// Radius returns the sphere's radius.
func (z *Sphere) Radius() float32 { return z.radius }

// SetRadius sets the sphere's radius, correcting negative values.
func (z *Sphere) SetRadius(r float32) {
	if r < 0 {
		warnf(CodeNegativeDimension, "Sphere radius %g is negative; using %g", r, -r)
		r = -r
	}
	z.radius = r
}

func (z *Sphere) GeneratePosition(full bool, radius float32) Vec3 {
	z.refreshBase()
	r := max(z.radius-radius, 0)
	dir := randomUnitVector()
	if full {
		// Cube-root scaling keeps volume samples uniform.
		r *= float32(math.Cbrt(float64(randomRange(0, 1))))
	}
	return z.tPos.Add(dir.Mul(r))
}

func (z *Sphere) Contains(p Vec3, radius float32) bool {
	z.refreshBase()
	reach := z.radius - radius
	if reach < 0 {
		return false
	}
	d := p.Sub(z.tPos)
	return d.Dot(d) <= reach*reach
}

func (z *Sphere) Intersects(v0, v1 Vec3, radius float32) (bool, Vec3) {
	z.refreshBase()
	dist0 := p2cDist(v0, z.tPos) - z.radius
	dist1 := p2cDist(v1, z.tPos) - z.radius
	dist0, dist1 = shiftByRadius(dist0, dist1, radius)
	if (dist0 > 0) == (dist1 > 0) {
		return false, Vec3{}
	}
	ratio := dist0 / (dist0 - dist1)
	crossing := v0.Add(v1.Sub(v0).Mul(ratio))
	return true, normalizeOrRandomize(crossing.Sub(z.tPos))
}

func (z *Sphere) ComputeNormal(p Vec3) Vec3 {
	z.refreshBase()
	return normalizeOrRandomize(p.Sub(z.tPos))
}

// p2cDist is the distance from point p to center c.
func p2cDist(p, c Vec3) float32 {
	d := p.Sub(c)
	return float32(math.Sqrt(float64(d.Dot(d))))
}
