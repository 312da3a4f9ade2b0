package ember

// Modifier pipeline priorities. Lower runs first; collisions go last so
// they see the frame's final velocities.
const (
	PriorityForce     = 100 // accelerations (Gravity)
	PriorityFriction  = 200 // damping (Drag)
	PriorityCollision = 300 // collision response (Obstacle)
)

// Modifier transforms a group's live particles once per sub-step. Modifiers
// attached to a group run in ascending Priority order; within one modifier
// the per-particle work is independent.
type Modifier interface {
	// Modify applies the effect to every matching live particle of g for a
	// sub-step of duration dt.
	Modify(g *Group, dt float32)
	// Priority orders the pipeline. Fixed per modifier.
	Priority() int
}

// ZoneTest selects which particle/zone transitions trigger a zoned
// modifier. Values combine as a bitmask.
type ZoneTest uint8

const (
	// TestInside matches particles currently inside the zone.
	TestInside ZoneTest = 1 << iota
	// TestOutside matches particles currently outside the zone.
	TestOutside
	// TestIntersect matches particles whose move this sub-step crossed the
	// zone boundary.
	TestIntersect
	// TestEnter matches particles that were outside and are now inside or
	// crossing.
	TestEnter
	// TestLeave matches particles that were inside and are now outside or
	// crossing.
	TestLeave
)

// zonedModifier is the shared base of modifiers that filter particles
// against a zone.
type zonedModifier struct {
	zone     Zone
	test     ZoneTest
	priority int
}

// Zone returns the test zone.
func (m *zonedModifier) Zone() Zone { return m.zone }

// SetZone replaces the test zone. A nil zone resets to a point at the
// origin (which matches nothing).
func (m *zonedModifier) SetZone(zone Zone) {
	if zone == nil {
		zone = NewPoint(Vec3{})
	}
	m.zone = zone
}

// ZoneTest returns the transition mask.
func (m *zonedModifier) ZoneTest() ZoneTest { return m.test }

// SetZoneTest replaces the transition mask.
func (m *zonedModifier) SetZoneTest(test ZoneTest) { m.test = test }

func (m *zonedModifier) Priority() int { return m.priority }

// checkZone reports whether the particle's previous-to-current move matches
// the transition mask.
func (m *zonedModifier) checkZone(p Particle) bool {
	inside := m.zone.Contains(p.Position(), 0)
	if m.test&TestInside != 0 && inside {
		return true
	}
	if m.test&TestOutside != 0 && !inside {
		return true
	}
	if m.test&(TestIntersect|TestEnter|TestLeave) == 0 {
		return false
	}

	wasInside := m.zone.Contains(p.OldPosition(), 0)
	crosses := false
	if wasInside != inside {
		crosses = true
	} else if hit, _ := m.zone.Intersects(p.OldPosition(), p.Position(), 0); hit {
		// Same side at both ends but the segment grazed the boundary.
		crosses = true
	}

	if m.test&TestIntersect != 0 && crosses {
		return true
	}
	if m.test&TestEnter != 0 && !wasInside && (inside || crosses) {
		return true
	}
	if m.test&TestLeave != 0 && wasInside && (!inside || crosses) {
		return true
	}
	return false
}
