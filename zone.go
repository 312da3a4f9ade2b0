package ember

// Zone is a geometric region used by emitters to place new particles and by
// zoned modifiers to test them. All queries operate in world space: a zone
// with an attached Transform answers relative to its transformed pose.
//
// The concrete variants are Point, Sphere, Plane, Box, Cylinder, and Ring.
type Zone interface {
	// GeneratePosition samples a position from the zone. With full set, the
	// sample is drawn from the zone's entire volume, shrunk inward by radius
	// so a sphere of that radius fits inside; otherwise it is drawn from the
	// boundary only, shrunk by radius. Degenerate zones (Point, Plane)
	// ignore full and radius and return the zone position.
	GeneratePosition(full bool, radius float32) Vec3

	// Contains reports whether a sphere of the given radius centered at p
	// lies entirely within the zone.
	Contains(p Vec3, radius float32) bool

	// Intersects reports whether a sphere of the given radius swept from v0
	// to v1 crosses the zone boundary. On true, the second result is the
	// outward normal at the first boundary reached along the segment.
	Intersects(v0, v1 Vec3, radius float32) (bool, Vec3)

	// ComputeNormal returns the outward unit normal of the zone boundary
	// nearest p. Degenerate cases fall back to a normalized (or random,
	// when p coincides with the center) center-to-point direction.
	ComputeNormal(p Vec3) Vec3

	// Position and SetPosition access the zone's local-space position.
	Position() Vec3
	SetPosition(Vec3)

	// TransformedPosition returns the zone's world-space position.
	TransformedPosition() Vec3

	// Transform returns the zone's transform, or nil when the zone sits
	// directly in world space. SetTransform attaches one.
	Transform() *Transform
	SetTransform(*Transform)

	// IsShared marks the zone as referenced by several emitters or
	// modifiers. The flag is advisory; nothing in this package reads it.
	// Hosts that re-parent or move zones on behalf of their owner should
	// skip shared ones.
	IsShared() bool
	SetShared(bool)
}

// baseZone carries the state common to every zone variant: a local position,
// its cached world-space counterpart, and the sharing flag.
type baseZone struct {
	pos     Vec3
	tPos    Vec3
	tf      *Transform
	tfSeen  uint32
	tfDirty bool
	shared  bool
}

func (z *baseZone) Position() Vec3 { return z.pos }

func (z *baseZone) SetPosition(p Vec3) {
	z.pos = p
	z.recomputePos()
}

func (z *baseZone) TransformedPosition() Vec3 {
	z.refreshBase()
	return z.tPos
}

func (z *baseZone) Transform() *Transform { return z.tf }

func (z *baseZone) SetTransform(tf *Transform) {
	z.tf = tf
	// Variants cache world-space axes keyed on tfSeen; the new transform may
	// already be posed, so force the next refreshBase to fire regardless of
	// its version.
	z.tfDirty = true
	z.recomputePos()
}

func (z *baseZone) IsShared() bool        { return z.shared }
func (z *baseZone) SetShared(shared bool) { z.shared = shared }

// refreshBase re-derives the world position when the attached transform has
// changed since the last query, or when a transform was attached or detached
// since. Reports whether anything was recomputed, so variants with extra
// world-space state (Box axes) know to refresh theirs.
func (z *baseZone) refreshBase() bool {
	if z.tf == nil {
		if !z.tfDirty {
			return false
		}
		z.tfDirty = false
		z.tPos = z.pos
		return true
	}
	v := z.tf.worldVersion()
	if !z.tfDirty && v == z.tfSeen {
		return false
	}
	z.tfDirty = false
	z.tfSeen = v
	z.tPos = z.tf.TransformPoint(z.pos)
	return true
}

func (z *baseZone) recomputePos() {
	if z.tf == nil {
		z.tPos = z.pos
		return
	}
	z.tfSeen = z.tf.worldVersion()
	z.tPos = z.tf.TransformPoint(z.pos)
}

// transformDir maps a local direction to world space through the zone's
// transform, renormalized. Identity when no transform is attached.
func (z *baseZone) transformDir(d Vec3) Vec3 {
	if z.tf == nil {
		return d
	}
	return normalizeOrRandomize(z.tf.TransformDir(d))
}

// crossesSlab tests a 1D boundary crossing used by the slab-based
// intersection tests. dist0 and dist1 are signed distances of the segment
// ends along some axis, slab the boundary coordinate on that axis. When the
// segment crosses the boundary earlier than *minRatio, the ratio and normal
// are recorded.
func crossesSlab(dist0, dist1, slab float32, axisNormal Vec3, minRatio *float32, normal *Vec3) bool {
	d0 := slab - dist0
	d1 := slab - dist1
	if (d0 > 0) == (d1 > 0) {
		return false
	}
	ratio := d0 / (d0 - d1)
	if ratio < *minRatio {
		*minRatio = ratio
		*normal = axisNormal
		return true
	}
	return false
}

// shiftByRadius offsets a pair of signed distances by the swept radius, in
// the direction of travel, so boundary tests account for the particle's
// extent.
func shiftByRadius(dist0, dist1, radius float32) (float32, float32) {
	if dist1-dist0 > 0 {
		return dist0 + radius, dist1 + radius
	}
	return dist0 - radius, dist1 - radius
}
