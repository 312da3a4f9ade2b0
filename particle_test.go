package ember

import "testing"

func TestParamString(t *testing.T) {
	cases := []struct {
		p    Param
		want string
	}{
		{ParamSize, "size"},
		{ParamMass, "mass"},
		{ParamAngle, "angle"},
		{ParamTextureIndex, "texture"},
		{ParamRotationSpeed, "rotation"},
		{Param(-1), "invalid"},
		{NbParams, "invalid"},
	}
	for _, tc := range cases {
		if got := tc.p.String(); got != tc.want {
			t.Errorf("Param(%d).String() = %q, want %q", tc.p, got, tc.want)
		}
	}
}

func TestParticleAccessors(t *testing.T) {
	g, _ := NewGroup(4)
	g.AddParticles(2, nil)

	p := g.Particle(1)
	if p.Index() != 1 || p.Group() != g {
		t.Error("particle view does not point at its slot")
	}
	p.SetPosition(Vec3{1, 2, 3})
	p.SetVelocity(Vec3{4, 5, 6})
	p.SetParam(ParamAngle, 0.5)
	assertVec(t, "position", p.Position(), Vec3{1, 2, 3})
	assertVec(t, "velocity", p.Velocity(), Vec3{4, 5, 6})
	assertNear(t, "angle", p.Param(ParamAngle), 0.5)
	assertNear(t, "age", p.Age(), 0)
	if p.LifeLeft() <= 0 {
		t.Error("fresh particle should have life left")
	}
}

func TestDebugModePanicsOnStaleView(t *testing.T) {
	SetDebug(true)
	defer SetDebug(false)

	g, _ := NewGroup(4)
	g.AddParticles(1, nil)
	p := g.Particle(0)
	p.Kill()
	g.update(0)

	defer func() {
		if recover() == nil {
			t.Error("expected a panic from a reclaimed particle view in debug mode")
		}
	}()
	p.Position()
}

func TestReleaseModeSkipsChecks(t *testing.T) {
	SetDebug(false)
	g, _ := NewGroup(4)
	g.AddParticles(1, nil)
	p := g.Particle(0)
	p.Kill()
	g.update(0)

	// Stale reads are undefined but must not panic in release mode.
	_ = p.Position()
}
