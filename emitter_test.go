package ember

import (
	"math"
	"testing"
)

func TestEmitterFlowRate(t *testing.T) {
	g, _ := NewGroup(500)
	g.SetImmortal(true)
	e, err := NewStaticEmitter(NewPoint(Vec3{}), 100, -1)
	if err != nil {
		t.Fatal(err)
	}
	g.AddEmitter(e)

	// 1 second in 64 uneven sub-steps; the fractional carry keeps the
	// long-run rate exact to within one particle.
	for i := 0; i < 64; i++ {
		g.update(1.0 / 64)
	}
	if got := g.Alive(); got < 99 || got > 101 {
		t.Errorf("spawned %d particles over 1s at flow 100, want 100 +/- 1", got)
	}
}

func TestEmitterFractionCarry(t *testing.T) {
	e, _ := NewStaticEmitter(nil, 10, -1)
	// flow*dt = 0.5: spawns alternate 0, 1, 0, 1 as the carry accumulates.
	total := 0
	for i := 0; i < 10; i++ {
		total += e.spawnCount(0.05)
	}
	if total != 5 {
		t.Errorf("10 sub-steps at raw 0.5 spawned %d, want 5", total)
	}
}

func TestEmitterTankExhaustion(t *testing.T) {
	g, _ := NewGroup(500)
	g.SetImmortal(true)
	e, _ := NewStaticEmitter(NewPoint(Vec3{}), 1000, 25)
	g.AddEmitter(e)

	for i := 0; i < 10; i++ {
		g.update(0.1)
	}
	if got := g.Alive(); got != 25 {
		t.Errorf("tank of 25 spawned %d particles", got)
	}
	if e.Tank() != 0 {
		t.Errorf("tank = %d after exhaustion, want 0", e.Tank())
	}
	if e.Active() {
		t.Error("emitter with an empty tank should be inactive")
	}
}

func TestEmitterNegativeFlowDumpsTank(t *testing.T) {
	e, err := NewStaticEmitter(nil, -1, 50)
	if err != nil {
		t.Fatal(err)
	}
	if got := e.spawnCount(0.001); got != 50 {
		t.Errorf("first sub-step spawned %d, want the whole tank of 50", got)
	}
	if got := e.spawnCount(0.001); got != 0 {
		t.Errorf("second sub-step spawned %d, want 0", got)
	}
}

func TestEmitterFlowTankBothNegative(t *testing.T) {
	if _, err := NewStaticEmitter(nil, -1, -1); err == nil {
		t.Error("expected an error for negative flow with unlimited tank")
	}
	e, _ := NewStaticEmitter(nil, 10, -1)
	if err := e.SetFlow(-1); err == nil {
		t.Error("SetFlow should reject negative flow while the tank is unlimited")
	}
	e2, _ := NewStaticEmitter(nil, -1, 10)
	if err := e2.SetTank(-1); err == nil {
		t.Error("SetTank should reject an unlimited tank while flow is negative")
	}
}

func TestEmitterSetTankReactivates(t *testing.T) {
	e, _ := NewStaticEmitter(nil, 1000, 5)
	e.spawnCount(1)
	if e.Active() {
		t.Fatal("emitter should be dry")
	}
	if err := e.SetTank(3); err != nil {
		t.Fatal(err)
	}
	if !e.Active() {
		t.Error("refilled emitter should be active again")
	}
	if got := e.spawnCount(1); got != 3 {
		t.Errorf("refilled emitter spawned %d, want 3", got)
	}
}

func TestEmitterForceRangeSwapped(t *testing.T) {
	var got []Diagnostic
	SetDiagnosticHandler(func(d Diagnostic) { got = append(got, d) })
	defer SetDiagnosticHandler(nil)

	e, _ := NewSphericEmitter(nil, 10, -1, 5, 2)
	min, max := e.Force()
	if min != 2 || max != 5 {
		t.Errorf("force range = (%f, %f), want (2, 5)", min, max)
	}
	if len(got) != 1 || got[0].Code != CodeInvertedRange {
		t.Errorf("expected one inverted_range diagnostic, got %v", got)
	}
}

func TestStaticEmitterSpawnsAtRest(t *testing.T) {
	g, _ := NewGroup(8)
	e, _ := NewStaticEmitter(NewPoint(Vec3{1, 2, 3}), 0, -1)
	g.AddParticles(1, e)

	p := g.Particle(0)
	assertVec(t, "position", p.Position(), Vec3{1, 2, 3})
	assertVec(t, "velocity", p.Velocity(), Vec3{})
}

func TestStraightEmitterSpeedOverMass(t *testing.T) {
	g, _ := NewGroup(8)
	g.SetParam(ParamMass, 2)
	e, _ := NewStraightEmitter(nil, Vec3{1, 0, 0}, 0, -1, 10, 10)
	g.AddParticles(1, e)

	assertVec(t, "velocity", g.Particle(0).Velocity(), Vec3{5, 0, 0})
}

func TestStraightEmitterZeroDirection(t *testing.T) {
	var got []Diagnostic
	SetDiagnosticHandler(func(d Diagnostic) { got = append(got, d) })
	defer SetDiagnosticHandler(nil)

	e, _ := NewStraightEmitter(nil, Vec3{}, 0, -1, 1, 1)
	assertVec(t, "fallback direction", e.Direction(), Vec3{0, 1, 0})
	if len(got) != 1 || got[0].Code != CodeDegenerateAxis {
		t.Errorf("expected one degenerate_axis diagnostic, got %v", got)
	}
}

func TestSphericEmitterSpeedInRange(t *testing.T) {
	g, _ := NewGroup(256)
	e, _ := NewSphericEmitter(nil, 0, -1, 2, 4)
	g.AddParticles(256, e)

	for i := 0; i < g.Alive(); i++ {
		speed := g.Particle(i).Velocity().Len()
		if speed < 2-epsilon || speed > 4+epsilon {
			t.Fatalf("particle %d speed %f outside [2, 4]", i, speed)
		}
	}
}

func TestRandomEmitterNonZeroVelocity(t *testing.T) {
	g, _ := NewGroup(64)
	e, _ := NewRandomEmitter(nil, 0, -1, 1, 1)
	g.AddParticles(64, e)

	for i := 0; i < g.Alive(); i++ {
		assertNear(t, "speed", g.Particle(i).Velocity().Len(), 1)
	}
}

func TestNormalEmitterPointsOutward(t *testing.T) {
	zone := NewSphere(Vec3{}, 2)
	g, _ := NewGroup(128)
	e, _ := NewNormalEmitter(zone, 0, -1, 3, 3, false)
	g.AddParticles(128, e)

	for i := 0; i < g.Alive(); i++ {
		p := g.Particle(i)
		if p.Position().Dot(p.Velocity()) <= 0 {
			t.Fatalf("particle %d velocity %v is not outward from %v",
				i, p.Velocity(), p.Position())
		}
		assertNear(t, "speed", p.Velocity().Len(), 3)
	}
}

func TestNormalEmitterInverted(t *testing.T) {
	zone := NewSphere(Vec3{}, 2)
	g, _ := NewGroup(32)
	e, _ := NewNormalEmitter(zone, 0, -1, 1, 1, true)
	g.AddParticles(32, e)

	for i := 0; i < g.Alive(); i++ {
		p := g.Particle(i)
		if p.Position().Dot(p.Velocity()) >= 0 {
			t.Fatalf("particle %d velocity %v is not inward from %v",
				i, p.Velocity(), p.Position())
		}
	}
}

func TestAddParticlesBypassesFlowNotTank(t *testing.T) {
	g, _ := NewGroup(64)
	e, _ := NewStaticEmitter(nil, 0, 10)
	if got := g.AddParticles(25, e); got != 10 {
		t.Errorf("spawned %d, want the tank's 10", got)
	}
	if e.Tank() != 0 {
		t.Errorf("tank = %d, want 0", e.Tank())
	}
}

func TestAddParticlesCapacityCap(t *testing.T) {
	g, _ := NewGroup(4)
	e, _ := NewStaticEmitter(nil, 0, -1)
	if got := g.AddParticles(10, e); got != 4 {
		t.Errorf("spawned %d, want the capacity's 4", got)
	}
	if g.Alive() != 4 {
		t.Errorf("alive = %d, want 4", g.Alive())
	}
}

func TestEmitterSetActive(t *testing.T) {
	e, _ := NewStaticEmitter(nil, 100, -1)
	e.SetActive(false)
	if e.spawnCount(1) != 0 {
		t.Error("paused emitter should not spawn")
	}
	e.SetActive(true)
	if e.spawnCount(1) != 100 {
		t.Error("resumed emitter should spawn at its flow again")
	}
}

func TestEmitterNilZoneDefaultsToOrigin(t *testing.T) {
	e, _ := NewStaticEmitter(nil, 0, -1)
	if _, ok := e.Zone().(*Point); !ok {
		t.Fatalf("zone = %T, want *Point", e.Zone())
	}
	if math.Abs(float64(e.Zone().Position().Len())) > float64(epsilon) {
		t.Errorf("default zone position = %v, want origin", e.Zone().Position())
	}
}
