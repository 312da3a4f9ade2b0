package ember

// Gravity applies a constant acceleration to every live particle.
type Gravity struct {
	value Vec3
}

// NewGravity creates a gravity modifier with the given acceleration.
func NewGravity(value Vec3) *Gravity {
	return &Gravity{value: value}
}

// Value returns the acceleration.
func (m *Gravity) Value() Vec3 { return m.value }

// SetValue replaces the acceleration.
func (m *Gravity) SetValue(value Vec3) { m.value = value }

func (m *Gravity) Priority() int { return PriorityForce }

func (m *Gravity) Modify(g *Group, dt float32) {
	dv := m.value.Mul(dt)
	for i := 0; i < g.nb; i++ {
		g.velocities[i] = g.velocities[i].Add(dv)
	}
}
