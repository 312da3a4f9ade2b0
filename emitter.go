package ember

import "fmt"

// EmitterShape selects how an emitter generates initial velocity
// directions. Construct emitters with the typed constructors
// ([NewStaticEmitter], [NewStraightEmitter], [NewSphericEmitter],
// [NewRandomEmitter], [NewNormalEmitter]) rather than setting a shape
// directly.
type EmitterShape uint8

const (
	// EmitStatic spawns particles at rest.
	EmitStatic EmitterShape = iota
	// EmitStraight launches along a fixed direction.
	EmitStraight
	// EmitSpheric launches in a uniformly random direction.
	EmitSpheric
	// EmitRandom launches in a random direction biased toward the cube
	// diagonals (cheaper than spheric, fine for dust and debris).
	EmitRandom
	// EmitNormal launches along the zone's normal at the spawn point.
	EmitNormal
)

// Emitter converts a continuous flow rate plus an optional finite tank
// budget into discrete spawns each sub-step, and initializes every new
// particle from its zone and force range.
//
// Flow is in particles per second; a negative flow means the entire
// remaining tank is emitted in one burst. A negative tank means unlimited.
// Flow and tank can never both be negative.
type Emitter struct {
	shape  EmitterShape
	zone   Zone
	full   bool
	active bool

	flow     float32
	tank     int
	fraction float32

	forceMin float32
	forceMax float32

	direction Vec3 // EmitStraight, unit
	inverted  bool // EmitNormal
}

func newEmitter(shape EmitterShape, zone Zone, full bool, flow float32, tank int, forceMin, forceMax float32) (*Emitter, error) {
	if flow < 0 && tank < 0 {
		return nil, fmt.Errorf("emitter flow and tank cannot both be negative (flow %g, tank %d)", flow, tank)
	}
	if zone == nil {
		zone = NewPoint(Vec3{})
	}
	e := &Emitter{
		shape:  shape,
		zone:   zone,
		full:   full,
		active: true,
		flow:   flow,
		tank:   tank,
	}
	e.SetForce(forceMin, forceMax)
	return e, nil
}

// NewStaticEmitter creates an emitter that spawns particles at rest. The
// force range is ignored.
func NewStaticEmitter(zone Zone, flow float32, tank int) (*Emitter, error) {
	return newEmitter(EmitStatic, zone, true, flow, tank, 0, 0)
}

// NewStraightEmitter creates an emitter launching along direction. A
// degenerate direction falls back to (0,1,0) with a warning.
func NewStraightEmitter(zone Zone, direction Vec3, flow float32, tank int, forceMin, forceMax float32) (*Emitter, error) {
	e, err := newEmitter(EmitStraight, zone, true, flow, tank, forceMin, forceMax)
	if err != nil {
		return nil, err
	}
	e.SetDirection(direction)
	return e, nil
}

// NewSphericEmitter creates an emitter launching in uniformly random
// directions.
func NewSphericEmitter(zone Zone, flow float32, tank int, forceMin, forceMax float32) (*Emitter, error) {
	return newEmitter(EmitSpheric, zone, true, flow, tank, forceMin, forceMax)
}

// NewRandomEmitter creates an emitter launching in cube-sampled random
// directions.
func NewRandomEmitter(zone Zone, flow float32, tank int, forceMin, forceMax float32) (*Emitter, error) {
	return newEmitter(EmitRandom, zone, true, flow, tank, forceMin, forceMax)
}

// NewNormalEmitter creates an emitter launching along the zone's outward
// normal at each spawn point (inward when inverted).
func NewNormalEmitter(zone Zone, flow float32, tank int, forceMin, forceMax float32, inverted bool) (*Emitter, error) {
	e, err := newEmitter(EmitNormal, zone, false, flow, tank, forceMin, forceMax)
	if err != nil {
		return nil, err
	}
	e.inverted = inverted
	return e, nil
}

// Shape returns the emitter's velocity variant.
func (e *Emitter) Shape() EmitterShape { return e.shape }

// Zone returns the emitter's spawn zone.
func (e *Emitter) Zone() Zone { return e.zone }

// Full reports whether positions are sampled from the zone's volume (true)
// or its boundary (false).
func (e *Emitter) Full() bool { return e.full }

// SetZone replaces the spawn zone. full selects volume (true) or boundary
// (false) sampling. A nil zone resets to a point at the origin.
func (e *Emitter) SetZone(zone Zone, full bool) {
	if zone == nil {
		zone = NewPoint(Vec3{})
	}
	e.zone = zone
	e.full = full
}

// Flow returns the spawn rate in particles per second (negative: dump the
// tank).
func (e *Emitter) Flow() float32 { return e.flow }

// SetFlow changes the spawn rate. Fails when it would leave both flow and
// tank negative.
func (e *Emitter) SetFlow(flow float32) error {
	if flow < 0 && e.tank < 0 {
		return fmt.Errorf("emitter flow and tank cannot both be negative (flow %g, tank %d)", flow, e.tank)
	}
	e.flow = flow
	return nil
}

// Tank returns the remaining particle budget (negative: unlimited).
func (e *Emitter) Tank() int { return e.tank }

// SetTank resets the particle budget, reactivating an emitter that ran its
// tank dry. Fails when it would leave both flow and tank negative.
func (e *Emitter) SetTank(tank int) error {
	if e.flow < 0 && tank < 0 {
		return fmt.Errorf("emitter flow and tank cannot both be negative (flow %g, tank %d)", e.flow, tank)
	}
	e.tank = tank
	return nil
}

// Force returns the force magnitude range.
func (e *Emitter) Force() (min, max float32) { return e.forceMin, e.forceMax }

// SetForce sets the force magnitude range drawn for each emitted particle.
// The speed a particle receives is the drawn force divided by its mass
// parameter. An inverted range is swapped with a warning.
func (e *Emitter) SetForce(min, max float32) {
	if min > max {
		warnf(CodeInvertedRange, "Emitter force min %g is higher than max %g; swapping", min, max)
		min, max = max, min
	}
	e.forceMin, e.forceMax = min, max
}

// Direction returns the launch direction of a straight emitter.
func (e *Emitter) Direction() Vec3 { return e.direction }

// SetDirection sets the launch direction of a straight emitter. A zero
// direction falls back to (0,1,0) with a warning.
func (e *Emitter) SetDirection(d Vec3) {
	if d.Dot(d) < epsilonSq {
		warnf(CodeDegenerateAxis, "Emitter direction is zero; using (0,1,0)")
		d = Vec3{0, 1, 0}
	}
	e.direction = safeNormalize(d)
}

// Inverted reports whether a normal emitter launches inward.
func (e *Emitter) Inverted() bool { return e.inverted }

// Active reports whether the emitter can still spawn. An emitter goes
// inactive when its tank reaches zero, or via SetActive.
func (e *Emitter) Active() bool { return e.active && e.tank != 0 }

// SetActive pauses or resumes the emitter without touching its budget.
func (e *Emitter) SetActive(active bool) { e.active = active }

// spawnCount converts one sub-step of duration dt into a discrete number of
// particles. The fractional remainder carries over to the next sub-step, so
// the long-run rate matches flow exactly.
func (e *Emitter) spawnCount(dt float32) int {
	if !e.active || e.tank == 0 {
		return 0
	}
	if e.flow < 0 {
		// No rate: the whole remaining tank goes out at once.
		count := e.tank
		e.tank = 0
		return count
	}
	raw := e.flow*dt + e.fraction
	count := int(raw)
	e.fraction = raw - float32(count)
	return e.drainTank(count)
}

// drainTank clamps count to the remaining tank and decrements it.
func (e *Emitter) drainTank(count int) int {
	if e.tank >= 0 {
		if count > e.tank {
			count = e.tank
		}
		e.tank -= count
	}
	return count
}

// emit initializes one particle: position from the zone, velocity from the
// emitter's shape scaled by a random force over the particle's mass.
func (e *Emitter) emit(p Particle) {
	p.SetPosition(e.zone.GeneratePosition(e.full, 0))

	if e.shape == EmitStatic {
		return
	}
	mass := p.Param(ParamMass)
	if mass <= 0 {
		mass = 1
	}
	speed := randomRange(e.forceMin, e.forceMax) / mass

	switch e.shape {
	case EmitStraight:
		p.SetVelocity(e.direction.Mul(speed))
	case EmitSpheric:
		p.SetVelocity(randomUnitVector().Mul(speed))
	case EmitRandom:
		d := normalizeOrRandomize(randomVec3(Vec3{-1, -1, -1}, Vec3{1, 1, 1}))
		p.SetVelocity(d.Mul(speed))
	case EmitNormal:
		n := e.zone.ComputeNormal(p.Position())
		if e.inverted {
			n = n.Mul(-1)
		}
		p.SetVelocity(n.Mul(speed))
	}
}
