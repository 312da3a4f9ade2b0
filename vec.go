package ember

import (
	"math"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl32"
)

// Vec3 is the 3D vector type used throughout ember. It is an alias for
// [mgl32.Vec3], so mathgl values can be passed in directly.
type Vec3 = mgl32.Vec3

// epsilonSq is the squared length below which a vector counts as degenerate.
const epsilonSq = 1e-12

// randomRange returns a uniform random float32 in [min, max].
func randomRange(min, max float32) float32 {
	if min == max {
		return min
	}
	return min + rand.Float32()*(max-min)
}

// randomVec3 returns a vector with each component drawn uniformly from the
// corresponding components of min and max.
func randomVec3(min, max Vec3) Vec3 {
	return Vec3{
		randomRange(min[0], max[0]),
		randomRange(min[1], max[1]),
		randomRange(min[2], max[2]),
	}
}

// randomUnitVector returns a direction drawn uniformly from the unit sphere.
func randomUnitVector() Vec3 {
	z := randomRange(-1, 1)
	theta := randomRange(0, 2*math.Pi)
	r := float32(math.Sqrt(float64(1 - z*z)))
	sin, cos := math.Sincos(float64(theta))
	return Vec3{r * float32(cos), r * float32(sin), z}
}

// normalizeOrRandomize returns v scaled to unit length. When v is degenerate
// (length ~0) it returns a uniformly random unit vector instead, so callers
// always get a defined direction and NaN never propagates into the pool.
func normalizeOrRandomize(v Vec3) Vec3 {
	lenSq := v.Dot(v)
	if lenSq < epsilonSq {
		return randomUnitVector()
	}
	return v.Mul(1 / float32(math.Sqrt(float64(lenSq))))
}

// safeNormalize returns v scaled to unit length, or the zero vector when v
// is degenerate.
func safeNormalize(v Vec3) Vec3 {
	lenSq := v.Dot(v)
	if lenSq < epsilonSq {
		return Vec3{}
	}
	return v.Mul(1 / float32(math.Sqrt(float64(lenSq))))
}

// reflect mirrors v against the plane defined by the unit normal n.
func reflect(v, n Vec3) Vec3 {
	return v.Sub(n.Mul(2 * v.Dot(n)))
}

// vecAbs returns the componentwise absolute value of v.
func vecAbs(v Vec3) Vec3 {
	return Vec3{abs32(v[0]), abs32(v[1]), abs32(v[2])}
}

// vecMin returns the componentwise minimum of a and b.
func vecMin(a, b Vec3) Vec3 {
	return Vec3{min(a[0], b[0]), min(a[1], b[1]), min(a[2], b[2])}
}

// vecMax returns the componentwise maximum of a and b.
func vecMax(a, b Vec3) Vec3 {
	return Vec3{max(a[0], b[0]), max(a[1], b[1]), max(a[2], b[2])}
}

func abs32(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
