package ember

import (
	"math"
	"testing"
)

const epsilon = 1e-4

func assertNear(t *testing.T, name string, got, want float32) {
	t.Helper()
	if math.Abs(float64(got-want)) > epsilon {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func assertVec(t *testing.T, name string, got, want Vec3) {
	t.Helper()
	for i := range got {
		if math.Abs(float64(got[i]-want[i])) > epsilon {
			t.Errorf("%s[%d] = %v, want %v (full: %v vs %v)", name, i, got[i], want[i], got, want)
		}
	}
}

func TestNormalizeOrRandomizeZeroVector(t *testing.T) {
	// A degenerate input must yield a unit vector every call, never NaN or
	// zero.
	for i := 0; i < 1000; i++ {
		v := normalizeOrRandomize(Vec3{})
		l := v.Len()
		if math.IsNaN(float64(l)) {
			t.Fatal("normalizeOrRandomize produced NaN")
		}
		assertNear(t, "|normalizeOrRandomize(0)|", l, 1)
	}
}

func TestNormalizeOrRandomizeRegularVector(t *testing.T) {
	v := normalizeOrRandomize(Vec3{3, 0, 4})
	assertVec(t, "normalized", v, Vec3{0.6, 0, 0.8})
}

func TestRandomUnitVectorLength(t *testing.T) {
	for i := 0; i < 100; i++ {
		assertNear(t, "|randomUnitVector|", randomUnitVector().Len(), 1)
	}
}

func TestRandomRange(t *testing.T) {
	for i := 0; i < 100; i++ {
		v := randomRange(10, 20)
		if v < 10 || v > 20 {
			t.Fatalf("randomRange(10, 20) = %f, outside [10, 20]", v)
		}
	}
	for i := 0; i < 10; i++ {
		if randomRange(5, 5) != 5 {
			t.Fatal("randomRange with min==max should return min")
		}
	}
}

func TestReflect(t *testing.T) {
	// 45° into a floor plane.
	v := reflect(Vec3{1, -1, 0}, Vec3{0, 1, 0})
	assertVec(t, "reflect", v, Vec3{1, 1, 0})
}

func TestVecMinMaxAbs(t *testing.T) {
	a := Vec3{1, -2, 3}
	b := Vec3{-1, 2, 3}
	assertVec(t, "vecMin", vecMin(a, b), Vec3{-1, -2, 3})
	assertVec(t, "vecMax", vecMax(a, b), Vec3{1, 2, 3})
	assertVec(t, "vecAbs", vecAbs(a), Vec3{1, 2, 3})
}
