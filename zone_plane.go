package ember

// Plane is a half-space zone: the region behind the plane, on the side the
// normal points away from.
type Plane struct {
	baseZone
	normal  Vec3 // local, unit
	tNormal Vec3 // world, unit
}

// NewPlane creates a plane zone through position with the given normal. A
// degenerate normal is corrected to (0,1,0) with a warning.
func NewPlane(position, normal Vec3) *Plane {
	p := &Plane{}
	p.SetPosition(position)
	p.SetNormal(normal)
	return p
}

// Normal returns the plane's local-space unit normal.
func (z *Plane) Normal() Vec3 { return z.normal }

// SetNormal sets the plane's normal. The vector is normalized; a
// zero-length normal is replaced by (0,1,0) with a warning.
func (z *Plane) SetNormal(n Vec3) {
	if n.Dot(n) < epsilonSq {
		warnf(CodeDegenerateAxis, "Plane normal is zero; using (0,1,0)")
		n = Vec3{0, 1, 0}
	}
	z.normal = safeNormalize(n)
	z.tNormal = z.transformDir(z.normal)
}

func (z *Plane) ensure() {
	if z.refreshBase() {
		z.tNormal = z.transformDir(z.normal)
	}
}

// GeneratePosition returns the plane's position: an infinite plane has no
// bounded region to sample from. full and radius are ignored.
func (z *Plane) GeneratePosition(full bool, radius float32) Vec3 {
	z.ensure()
	return z.tPos
}

func (z *Plane) Contains(p Vec3, radius float32) bool {
	z.ensure()
	return z.tNormal.Dot(p.Sub(z.tPos)) <= -radius
}

func (z *Plane) Intersects(v0, v1 Vec3, radius float32) (bool, Vec3) {
	z.ensure()
	dist0 := z.tNormal.Dot(v0.Sub(z.tPos))
	dist1 := z.tNormal.Dot(v1.Sub(z.tPos))
	dist0, dist1 = shiftByRadius(dist0, dist1, radius)
	if (dist0 > 0) == (dist1 > 0) {
		return false, Vec3{}
	}
	if dist0 > 0 {
		return true, z.tNormal
	}
	return true, z.tNormal.Mul(-1)
}

func (z *Plane) ComputeNormal(p Vec3) Vec3 {
	z.ensure()
	if z.tNormal.Dot(p.Sub(z.tPos)) >= 0 {
		return z.tNormal
	}
	return z.tNormal.Mul(-1)
}
