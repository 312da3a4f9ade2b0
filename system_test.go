package ember

import "testing"

func TestStepConfigValidate(t *testing.T) {
	s := NewSystem()
	if err := s.SetStepConfig(StepConfig{Mode: StepConstant}); err == nil {
		t.Error("constant mode with zero step should be rejected")
	}
	if err := s.SetStepConfig(StepConfig{Mode: StepAdaptive, Min: 0, Max: 0.1}); err == nil {
		t.Error("adaptive mode with zero min should be rejected")
	}
	if err := s.SetStepConfig(StepConfig{Mode: StepReal, Clamp: true}); err == nil {
		t.Error("clamping with zero clamp value should be rejected")
	}
	if err := s.SetStepConfig(StepConfig{Mode: StepMode(99)}); err == nil {
		t.Error("unknown mode should be rejected")
	}
}

func TestStepConfigAdaptiveBoundsSwapped(t *testing.T) {
	var got []Diagnostic
	SetDiagnosticHandler(func(d Diagnostic) { got = append(got, d) })
	defer SetDiagnosticHandler(nil)

	s := NewSystem()
	if err := s.SetStepConfig(StepConfig{Mode: StepAdaptive, Min: 0.1, Max: 0.01}); err != nil {
		t.Fatal(err)
	}
	cfg := s.StepConfig()
	if cfg.Min != 0.01 || cfg.Max != 0.1 {
		t.Errorf("bounds = (%g, %g), want (0.01, 0.1)", cfg.Min, cfg.Max)
	}
	if len(got) != 1 || got[0].Code != CodeInvertedRange {
		t.Errorf("expected one inverted_range diagnostic, got %v", got)
	}
}

func TestStepDecomposition(t *testing.T) {
	cases := []struct {
		name      string
		cfg       StepConfig
		delta     float32
		wantCount int
		wantSize  float32
	}{
		{"real", StepConfig{Mode: StepReal}, 0.033, 1, 0.033},
		{"real clamped", StepConfig{Mode: StepReal, Clamp: true, ClampValue: 0.1}, 0.5, 1, 0.1},
		{"constant exact", StepConfig{Mode: StepConstant, Constant: 0.01}, 0.05, 5, 0.01},
		{"constant remainder dropped", StepConfig{Mode: StepConstant, Constant: 0.016}, 0.05, 3, 0.016},
		{"constant below step", StepConfig{Mode: StepConstant, Constant: 0.1}, 0.05, 0, 0.1},
		{"adaptive in range", StepConfig{Mode: StepAdaptive, Min: 0.001, Max: 0.1}, 0.02, 1, 0.02},
		{"adaptive below min", StepConfig{Mode: StepAdaptive, Min: 0.01, Max: 0.1}, 0.005, 0, 0.01},
		{"adaptive above max", StepConfig{Mode: StepAdaptive, Min: 0.001, Max: 0.01}, 0.05, 5, 0.01},
		{"adaptive clamped", StepConfig{Mode: StepAdaptive, Min: 0.001, Max: 0.01, Clamp: true, ClampValue: 0.02}, 1, 2, 0.01},
	}
	for _, tc := range cases {
		count, size := tc.cfg.steps(tc.delta)
		if count != tc.wantCount {
			t.Errorf("%s: count = %d, want %d", tc.name, count, tc.wantCount)
		}
		assertNear(t, tc.name+" size", size, tc.wantSize)
	}
}

func TestSystemConstantSteppingAdvancesBySubSteps(t *testing.T) {
	s := NewSystem()
	if err := s.SetStepConfig(StepConfig{Mode: StepConstant, Constant: 0.1}); err != nil {
		t.Fatal(err)
	}
	g, _ := s.CreateGroup(8)
	g.SetImmortal(true)
	g.AddParticles(1, nil)
	p := g.Particle(0)
	p.SetVelocity(Vec3{1, 0, 0})

	// 0.35s decomposes into 3 sub-steps of 0.1; the 0.05 remainder is
	// dropped.
	s.Update(0.35)
	assertNear(t, "position x", p.Position()[0], 0.3)
	assertNear(t, "age", p.Age(), 0.3)
}

func TestSystemNegativeDeltaCorrected(t *testing.T) {
	var got []Diagnostic
	SetDiagnosticHandler(func(d Diagnostic) { got = append(got, d) })
	defer SetDiagnosticHandler(nil)

	s := NewSystem()
	g, _ := s.CreateGroup(8)
	g.SetImmortal(true)
	g.AddParticles(1, nil)
	p := g.Particle(0)
	p.SetVelocity(Vec3{1, 0, 0})

	s.Update(-0.5)
	assertVec(t, "position", p.Position(), Vec3{})
	if len(got) != 1 || got[0].Code != CodeNegativeDelta {
		t.Errorf("expected one negative_delta diagnostic, got %v", got)
	}
}

func TestSystemActiveFlag(t *testing.T) {
	s := NewSystem()
	g, _ := s.CreateGroup(8)
	g.SetLifetime(0.2, 0.2)
	e, _ := NewStaticEmitter(nil, 1000, 5)
	g.AddEmitter(e)

	if !s.Update(0.01) {
		t.Fatal("system with live particles should be active")
	}
	// Let the tank run dry and the particles expire.
	for i := 0; i < 10; i++ {
		s.Update(0.1)
	}
	if s.Update(0.1) {
		t.Error("drained system should report inactive")
	}

	// Refilling the tank makes it active again even with no particles.
	if err := e.SetTank(3); err != nil {
		t.Fatal(err)
	}
	if !s.Update(0) {
		t.Error("system with a refilled emitter should be active")
	}
}

func TestSystemNbParticles(t *testing.T) {
	s := NewSystem()
	g1, _ := s.CreateGroup(8)
	g2, _ := s.CreateGroup(8)
	g1.AddParticles(3, nil)
	g2.AddParticles(2, nil)
	if s.NbParticles() != 5 {
		t.Errorf("NbParticles = %d, want 5", s.NbParticles())
	}
	if s.NbGroups() != 2 {
		t.Errorf("NbGroups = %d, want 2", s.NbGroups())
	}
}

func TestSystemDestroyGroup(t *testing.T) {
	s := NewSystem()
	g1, _ := s.CreateGroup(8)
	g2, _ := s.CreateGroup(8)
	s.DestroyGroup(g1)
	if s.NbGroups() != 1 || s.Group(0) != g2 {
		t.Error("destroyed group still present")
	}
	s.DestroyGroup(g1) // unknown: ignored
	if s.NbGroups() != 1 {
		t.Error("destroying an unknown group changed the system")
	}
}

func TestSystemAABB(t *testing.T) {
	s := NewSystem()
	s.EnableAABBComputation(true)
	g, _ := s.CreateGroup(8)
	g.SetImmortal(true)
	g.AddParticles(2, nil)
	g.Particle(0).SetPosition(Vec3{-1, 2, 0})
	g.Particle(1).SetPosition(Vec3{3, -4, 5})

	s.Update(0)
	min, max := s.AABB()
	assertVec(t, "min", min, Vec3{-1, -4, 0})
	assertVec(t, "max", max, Vec3{3, 2, 5})
}

func TestSystemAABBZeroWhenEmpty(t *testing.T) {
	s := NewSystem()
	s.EnableAABBComputation(true)
	s.CreateGroup(8)

	s.Update(0.1)
	min, max := s.AABB()
	assertVec(t, "min", min, Vec3{})
	assertVec(t, "max", max, Vec3{})
}

func TestSystemDistanceSort(t *testing.T) {
	s := NewSystem()
	s.SetCameraPosition(Vec3{0, 0, 10})
	g, _ := s.CreateGroup(8)
	g.SetImmortal(true)
	g.EnableDistanceSort(true)
	g.AddParticles(3, nil)
	g.Particle(0).SetPosition(Vec3{0, 0, 9})  // nearest
	g.Particle(1).SetPosition(Vec3{0, 0, -5}) // farthest
	g.Particle(2).SetPosition(Vec3{0, 0, 4})

	s.Update(0)

	// Back-to-front for painter's order.
	wantZ := []float32{-5, 4, 9}
	for i, z := range wantZ {
		assertNear(t, "sorted position z", g.Particle(i).Position()[2], z)
	}
}

func TestSystemUpdateOrderIsCreationOrder(t *testing.T) {
	s := NewSystem()
	var log []string
	g1, _ := s.CreateGroup(8)
	g2, _ := s.CreateGroup(8)
	g1.SetImmortal(true)
	g2.SetImmortal(true)
	g1.AddModifier(&orderProbe{"first", PriorityForce, &log})
	g2.AddModifier(&orderProbe{"second", PriorityForce, &log})

	s.Update(0.1)
	if len(log) != 2 || log[0] != "first" || log[1] != "second" {
		t.Errorf("groups updated in order %v, want [first second]", log)
	}
}
