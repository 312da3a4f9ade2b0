package ember

// Point is the degenerate zone: all sampling collapses to its position. It
// is the default zone of emitters built without one.
type Point struct {
	baseZone
}

// NewPoint creates a point zone at the given position.
func NewPoint(position Vec3) *Point {
	p := &Point{}
	p.SetPosition(position)
	return p
}

// GeneratePosition returns the point's position. full and radius are
// ignored.
func (z *Point) GeneratePosition(full bool, radius float32) Vec3 {
	z.refreshBase()
	return z.tPos
}

// Contains is always false: a point has no volume to enclose a sphere.
func (z *Point) Contains(p Vec3, radius float32) bool {
	return false
}

// Intersects is always false: a point has no boundary to cross.
func (z *Point) Intersects(v0, v1 Vec3, radius float32) (bool, Vec3) {
	return false, Vec3{}
}

// ComputeNormal returns the direction from the point to p, randomized when
// p coincides with the point.
func (z *Point) ComputeNormal(p Vec3) Vec3 {
	z.refreshBase()
	return normalizeOrRandomize(p.Sub(z.tPos))
}
