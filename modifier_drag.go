package ember

// Drag damps particle velocity, as a crude air-friction model. Heavier
// particles (higher ParamMass) are damped less.
type Drag struct {
	value float32
}

// NewDrag creates a drag modifier. value is the damping force; a negative
// value is corrected to its absolute value with a warning.
func NewDrag(value float32) *Drag {
	d := &Drag{}
	d.SetValue(value)
	return d
}

// Value returns the damping force.
func (m *Drag) Value() float32 { return m.value }

// SetValue sets the damping force, correcting negative values.
func (m *Drag) SetValue(value float32) {
	if value < 0 {
		warnf(CodeNegativeDimension, "Drag value %g is negative; using %g", value, -value)
		value = -value
	}
	m.value = value
}

func (m *Drag) Priority() int { return PriorityFriction }

func (m *Drag) Modify(g *Group, dt float32) {
	masses := g.params[ParamMass]
	for i := 0; i < g.nb; i++ {
		mass := masses[i]
		if mass <= 0 {
			mass = 1
		}
		factor := 1 - m.value*dt/mass
		if factor < 0 {
			factor = 0
		}
		g.velocities[i] = g.velocities[i].Mul(factor)
	}
}
