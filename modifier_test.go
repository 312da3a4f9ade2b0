package ember

import "testing"

// seedParticle spawns one particle and places it by hand.
func seedParticle(t *testing.T, g *Group, oldPos, pos, vel Vec3) Particle {
	t.Helper()
	if g.AddParticles(1, nil) != 1 {
		t.Fatal("could not spawn a particle")
	}
	i := g.Alive() - 1
	g.positions[i] = pos
	g.oldPositions[i] = oldPos
	g.velocities[i] = vel
	return g.Particle(i)
}

func TestObstacleReversesVelocity(t *testing.T) {
	// Thick slab whose top face is the plane y=0.
	floor := NewBox(Vec3{0, -1, 0}, Vec3{10, 1, 10})
	g, _ := NewGroup(8)
	g.SetImmortal(true)
	g.AddModifier(NewObstacle(floor, 1, 1))

	p := seedParticle(t, g, Vec3{}, Vec3{0, 0.05, 0}, Vec3{0, -1, 0})
	g.update(0.1)

	// The move into the slab is cancelled and the normal velocity
	// reflected (plus a small separation bias).
	assertVec(t, "position", p.Position(), Vec3{0, 0.05, 0})
	v := p.Velocity()
	if v[1] < 0.99 || v[1] > 1.01 {
		t.Errorf("velocity y = %f, want ~1 (reflected)", v[1])
	}
	assertNear(t, "velocity x", v[0], 0)
	assertNear(t, "velocity z", v[2], 0)
}

func TestObstacleBouncingRatioZeroStops(t *testing.T) {
	floor := NewBox(Vec3{0, -1, 0}, Vec3{10, 1, 10})
	g, _ := NewGroup(8)
	g.SetImmortal(true)
	g.AddModifier(NewObstacle(floor, 0, 1))

	p := seedParticle(t, g, Vec3{}, Vec3{0, 0.05, 0}, Vec3{0, -1, 0})
	g.update(0.1)

	if v := p.Velocity()[1]; v < 0 || v > 0.01 {
		t.Errorf("velocity y = %f, want a dead stop along the normal", v)
	}
}

func TestObstacleFrictionScalesTangential(t *testing.T) {
	floor := NewBox(Vec3{0, -1, 0}, Vec3{10, 1, 10})
	g, _ := NewGroup(8)
	g.SetImmortal(true)
	g.AddModifier(NewObstacle(floor, 1, 0.5))

	p := seedParticle(t, g, Vec3{}, Vec3{0, 0.05, 0}, Vec3{2, -1, 0})
	g.update(0.1)

	v := p.Velocity()
	if v[0] < 0.99 || v[0] > 1.01 {
		t.Errorf("tangential velocity = %f, want ~1 (halved)", v[0])
	}
	if v[1] < 0.99 || v[1] > 1.02 {
		t.Errorf("normal velocity = %f, want ~1 (reflected)", v[1])
	}
}

func TestObstacleIgnoresNonCrossingParticles(t *testing.T) {
	floor := NewBox(Vec3{0, -1, 0}, Vec3{10, 1, 10})
	g, _ := NewGroup(8)
	g.SetImmortal(true)
	g.AddModifier(NewObstacle(floor, 1, 1))

	p := seedParticle(t, g, Vec3{}, Vec3{0, 5, 0}, Vec3{1, 0, 0})
	g.update(0.1)

	assertVec(t, "velocity", p.Velocity(), Vec3{1, 0, 0})
	assertVec(t, "position", p.Position(), Vec3{0.1, 5, 0})
}

func TestGravityAcceleratesVelocity(t *testing.T) {
	g, _ := NewGroup(8)
	g.SetImmortal(true)
	g.AddModifier(NewGravity(Vec3{0, -10, 0}))
	g.AddParticles(1, nil)

	g.update(0.5)
	assertVec(t, "velocity", g.Particle(0).Velocity(), Vec3{0, -5, 0})
}

func TestDragDampsVelocity(t *testing.T) {
	g, _ := NewGroup(8)
	g.SetImmortal(true)
	g.AddModifier(NewDrag(1))
	g.AddParticles(1, nil)
	p := g.Particle(0)
	p.SetVelocity(Vec3{4, 0, 0})

	g.update(0.25)
	// mass 1: factor = 1 - 1*0.25 = 0.75
	assertVec(t, "velocity", p.Velocity(), Vec3{3, 0, 0})
}

func TestDragRespectsMass(t *testing.T) {
	g, _ := NewGroup(8)
	g.SetImmortal(true)
	g.SetParam(ParamMass, 2)
	g.AddModifier(NewDrag(1))
	g.AddParticles(1, nil)
	p := g.Particle(0)
	p.SetVelocity(Vec3{4, 0, 0})

	g.update(0.25)
	// mass 2: factor = 1 - 0.25/2 = 0.875
	assertVec(t, "velocity", p.Velocity(), Vec3{3.5, 0, 0})
}

func TestDragNeverReversesVelocity(t *testing.T) {
	g, _ := NewGroup(8)
	g.SetImmortal(true)
	g.AddModifier(NewDrag(100))
	g.AddParticles(1, nil)
	p := g.Particle(0)
	p.SetVelocity(Vec3{4, 0, 0})

	g.update(1)
	assertVec(t, "velocity", p.Velocity(), Vec3{})
}

// orderProbe records its own runs to verify pipeline order.
type orderProbe struct {
	name     string
	priority int
	log      *[]string
}

func (m *orderProbe) Modify(g *Group, dt float32) { *m.log = append(*m.log, m.name) }

func (m *orderProbe) Priority() int { return m.priority }

func TestModifierPipelineOrder(t *testing.T) {
	g, _ := NewGroup(8)
	g.SetImmortal(true)

	var log []string
	g.AddModifier(&orderProbe{"collision", PriorityCollision, &log})
	g.AddModifier(&orderProbe{"force", PriorityForce, &log})
	g.AddModifier(&orderProbe{"friction", PriorityFriction, &log})
	g.AddModifier(&orderProbe{"force2", PriorityForce, &log})

	g.update(0.1)

	want := []string{"force", "force2", "friction", "collision"}
	if len(log) != len(want) {
		t.Fatalf("pipeline ran %d modifiers, want %d", len(log), len(want))
	}
	for i := range want {
		if log[i] != want[i] {
			t.Errorf("pipeline[%d] = %q, want %q (full order %v)", i, log[i], want[i], log)
		}
	}
}

func TestZoneTestMasks(t *testing.T) {
	zone := NewSphere(Vec3{}, 1)
	m := &zonedModifier{zone: zone}
	g, _ := NewGroup(8)
	g.SetImmortal(true)

	inside := seedParticle(t, g, Vec3{0.5, 0, 0}, Vec3{0.5, 0, 0}, Vec3{})
	outside := seedParticle(t, g, Vec3{5, 0, 0}, Vec3{5, 0, 0}, Vec3{})
	entering := seedParticle(t, g, Vec3{2, 0, 0}, Vec3{0, 0, 0}, Vec3{})
	leaving := seedParticle(t, g, Vec3{0, 0, 0}, Vec3{2, 0, 0}, Vec3{})

	cases := []struct {
		name string
		test ZoneTest
		want map[Particle]bool
	}{
		{"inside", TestInside, map[Particle]bool{inside: true, entering: true}},
		{"outside", TestOutside, map[Particle]bool{outside: true, leaving: true}},
		{"intersect", TestIntersect, map[Particle]bool{entering: true, leaving: true}},
		{"enter", TestEnter, map[Particle]bool{entering: true}},
		{"leave", TestLeave, map[Particle]bool{leaving: true}},
	}
	particles := map[string]Particle{
		"inside": inside, "outside": outside,
		"entering": entering, "leaving": leaving,
	}
	for _, tc := range cases {
		m.SetZoneTest(tc.test)
		for name, p := range particles {
			if got := m.checkZone(p); got != tc.want[p] {
				t.Errorf("mask %s on %s particle = %v, want %v",
					tc.name, name, got, tc.want[p])
			}
		}
	}
}
