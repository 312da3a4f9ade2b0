package ember

// Param indexes the per-particle float parameters every pool carries.
type Param int

const (
	// ParamSize scales the rendered billboard.
	ParamSize Param = iota
	// ParamMass divides emission force into initial speed and scales drag.
	ParamMass
	// ParamAngle is the billboard rotation in radians.
	ParamAngle
	// ParamTextureIndex selects the sprite frame.
	ParamTextureIndex
	// ParamRotationSpeed spins ParamAngle, in radians per second.
	ParamRotationSpeed

	// NbParams is the number of parameters; not a parameter itself.
	NbParams
)

// paramNames is indexed by Param, used in diagnostics and descriptors.
var paramNames = [NbParams]string{"size", "mass", "angle", "texture", "rotation"}

// String returns the parameter's descriptor name.
func (p Param) String() string {
	if p < 0 || p >= NbParams {
		return "invalid"
	}
	return paramNames[p]
}

// paramDefaults hold the birth value of each parameter when the group
// configures nothing else. Mass and size default to 1 so emission force and
// rendering behave without setup.
var paramDefaults = [NbParams]float32{1, 1, 0, 0, 0}

// Particle is a view over one slot of a group's pool. It has no identity
// beyond its slot index: once the slot is reclaimed (or the group compacts),
// the view is invalid and must not be retained across update calls.
type Particle struct {
	group *Group
	index int
}

func (p Particle) valid() bool {
	return p.group != nil && p.index >= 0 && p.index < p.group.nb
}

// Index returns the particle's slot index. Stable only within a frame,
// before compaction.
func (p Particle) Index() int { return p.index }

// Group returns the owning group.
func (p Particle) Group() *Group { return p.group }

// Position returns the particle's current position.
func (p Particle) Position() Vec3 {
	debugCheck(p.valid(), "Position on reclaimed particle slot %d", p.index)
	return p.group.positions[p.index]
}

// SetPosition moves the particle.
func (p Particle) SetPosition(v Vec3) {
	debugCheck(p.valid(), "SetPosition on reclaimed particle slot %d", p.index)
	p.group.positions[p.index] = v
}

// OldPosition returns the particle's position at the previous sub-step.
// Obstacles revert to it when a move crosses a zone boundary.
func (p Particle) OldPosition() Vec3 {
	debugCheck(p.valid(), "OldPosition on reclaimed particle slot %d", p.index)
	return p.group.oldPositions[p.index]
}

// Velocity returns the particle's velocity.
func (p Particle) Velocity() Vec3 {
	debugCheck(p.valid(), "Velocity on reclaimed particle slot %d", p.index)
	return p.group.velocities[p.index]
}

// SetVelocity replaces the particle's velocity.
func (p Particle) SetVelocity(v Vec3) {
	debugCheck(p.valid(), "SetVelocity on reclaimed particle slot %d", p.index)
	p.group.velocities[p.index] = v
}

// Age returns the time in seconds since the particle was born.
func (p Particle) Age() float32 {
	debugCheck(p.valid(), "Age on reclaimed particle slot %d", p.index)
	return p.group.ages[p.index]
}

// LifeLeft returns the remaining lifetime in seconds.
func (p Particle) LifeLeft() float32 {
	debugCheck(p.valid(), "LifeLeft on reclaimed particle slot %d", p.index)
	return p.group.lifeLeft[p.index]
}

// Param returns one of the particle's float parameters.
func (p Particle) Param(param Param) float32 {
	debugCheck(p.valid(), "Param on reclaimed particle slot %d", p.index)
	return p.group.params[param][p.index]
}

// SetParam overwrites one of the particle's float parameters.
func (p Particle) SetParam(param Param, v float32) {
	debugCheck(p.valid(), "SetParam on reclaimed particle slot %d", p.index)
	p.group.params[param][p.index] = v
}

// Kill marks the particle dead. The slot is reclaimed during the compaction
// phase at the end of the current sub-step (or immediately when called
// between updates).
func (p Particle) Kill() {
	debugCheck(p.valid(), "Kill on reclaimed particle slot %d", p.index)
	p.group.lifeLeft[p.index] = 0
}
