package ember

import (
	"fmt"
	"sort"

	"github.com/tanema/gween/ease"
)

// ParamMode selects how a group initializes and evolves one particle
// parameter.
type ParamMode uint8

const (
	// ParamConstant gives every new particle the same value.
	ParamConstant ParamMode = iota
	// ParamRandom draws each birth value uniformly from a range.
	ParamRandom
	// ParamInterpolated moves each particle between a birth and a death
	// value over its lifetime.
	ParamInterpolated
)

type paramSpec struct {
	mode ParamMode
	// birth range (constant uses a only)
	a, b float32
	// death range and curve, interpolated mode only
	endA, endB float32
	ease       ease.TweenFunc
}

// Group is a fixed-capacity pool of particles plus the emitters and
// modifiers attached to it. Slots [0, Alive()) are always alive and densely
// packed; the rest are free. Capacity is a hard cap: spawns that don't fit
// are silently dropped.
//
// The pool is laid out as parallel arrays so the render and persistence
// boundaries can iterate single attributes without touching the rest.
type Group struct {
	capacity int
	nb       int

	positions    []Vec3
	oldPositions []Vec3
	velocities   []Vec3
	ages         []float32
	lifeLeft     []float32
	params       [NbParams][]float32

	// birth/death values, allocated only for interpolated params
	paramStart [NbParams][]float32
	paramEnd   [NbParams][]float32

	paramSpecs [NbParams]paramSpec

	lifetimeMin float32
	lifetimeMax float32
	immortal    bool

	emitters  []*Emitter
	modifiers []Modifier

	sortEnabled bool
	distSq      []float32
	sorter      groupSorter

	aabbMin, aabbMax Vec3
}

// NewGroup creates a standalone group with the given pool capacity. Groups
// that belong to a System are created with [System.CreateGroup] instead.
func NewGroup(capacity int) (*Group, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("group capacity must be positive, got %d", capacity)
	}
	g := &Group{
		capacity:     capacity,
		positions:    make([]Vec3, capacity),
		oldPositions: make([]Vec3, capacity),
		velocities:   make([]Vec3, capacity),
		ages:         make([]float32, capacity),
		lifeLeft:     make([]float32, capacity),
		lifetimeMin:  1,
		lifetimeMax:  1,
	}
	for p := range g.params {
		g.params[p] = make([]float32, capacity)
	}
	for p, def := range paramDefaults {
		g.paramSpecs[p] = paramSpec{mode: ParamConstant, a: def}
	}
	g.sorter.g = g
	return g, nil
}

// Capacity returns the pool size.
func (g *Group) Capacity() int { return g.capacity }

// Alive returns the number of live particles.
func (g *Group) Alive() int { return g.nb }

// Particle returns a view over slot i. i must be in [0, Alive()).
func (g *Group) Particle(i int) Particle {
	debugCheck(i >= 0 && i < g.nb, "Particle index %d out of alive range %d", i, g.nb)
	return Particle{group: g, index: i}
}

// SetLifetime sets the lifetime range, in seconds, drawn for each new
// particle. An inverted range is swapped and negative values are corrected,
// both with a warning.
func (g *Group) SetLifetime(min, max float32) {
	if min < 0 || max < 0 {
		warnf(CodeNegativeDimension, "Group lifetime (%g, %g) has negative values; using absolute values", min, max)
		min, max = abs32(min), abs32(max)
	}
	if min > max {
		warnf(CodeInvertedRange, "Group lifetime min %g is higher than max %g; swapping", min, max)
		min, max = max, min
	}
	g.lifetimeMin, g.lifetimeMax = min, max
}

// Lifetime returns the configured lifetime range.
func (g *Group) Lifetime() (min, max float32) {
	return g.lifetimeMin, g.lifetimeMax
}

// SetImmortal stops aging from killing particles. Explicit Kill still
// reclaims slots.
func (g *Group) SetImmortal(immortal bool) { g.immortal = immortal }

// Immortal reports whether aging is disabled.
func (g *Group) Immortal() bool { return g.immortal }

// SetParam gives every new particle the same constant value for param.
func (g *Group) SetParam(param Param, v float32) {
	g.paramSpecs[param] = paramSpec{mode: ParamConstant, a: v}
}

// SetParamRange draws each new particle's value for param uniformly from
// [min, max]. An inverted range is swapped with a warning.
func (g *Group) SetParamRange(param Param, min, max float32) {
	if min > max {
		warnf(CodeInvertedRange, "Group param %s min %g is higher than max %g; swapping", param, min, max)
		min, max = max, min
	}
	g.paramSpecs[param] = paramSpec{mode: ParamRandom, a: min, b: max}
}

// SetParamInterpolated draws a birth value from [startMin, startMax] and a
// death value from [endMin, endMax] for each new particle, then moves param
// between them over the particle's lifetime along fn (use [ease.Linear] and
// friends). A nil fn means linear.
func (g *Group) SetParamInterpolated(param Param, startMin, startMax, endMin, endMax float32, fn ease.TweenFunc) {
	if startMin > startMax {
		warnf(CodeInvertedRange, "Group param %s start range (%g, %g) is inverted; swapping", param, startMin, startMax)
		startMin, startMax = startMax, startMin
	}
	if endMin > endMax {
		warnf(CodeInvertedRange, "Group param %s end range (%g, %g) is inverted; swapping", param, endMin, endMax)
		endMin, endMax = endMax, endMin
	}
	if fn == nil {
		fn = ease.Linear
	}
	g.paramSpecs[param] = paramSpec{
		mode: ParamInterpolated,
		a:    startMin, b: startMax,
		endA: endMin, endB: endMax,
		ease: fn,
	}
	if g.paramStart[param] == nil {
		g.paramStart[param] = make([]float32, g.capacity)
		g.paramEnd[param] = make([]float32, g.capacity)
	}
}

// ParamConfig is the initialization rule a group applies to one particle
// parameter, as set by SetParam, SetParamRange, or SetParamInterpolated.
type ParamConfig struct {
	Mode  ParamMode
	Start [2]float32 // birth range; ParamConstant uses Start[0] only
	End   [2]float32 // death range, ParamInterpolated only
	Ease  ease.TweenFunc
}

// ParamConfig returns the current rule for param.
func (g *Group) ParamConfig(param Param) ParamConfig {
	spec := &g.paramSpecs[param]
	return ParamConfig{
		Mode:  spec.mode,
		Start: [2]float32{spec.a, spec.b},
		End:   [2]float32{spec.endA, spec.endB},
		Ease:  spec.ease,
	}
}

// AddEmitter attaches an emitter. The same emitter may be attached to
// several groups; each group draws from the same flow and tank budget.
func (g *Group) AddEmitter(e *Emitter) {
	if e == nil {
		return
	}
	g.emitters = append(g.emitters, e)
}

// RemoveEmitter detaches an emitter. Unknown emitters are ignored.
func (g *Group) RemoveEmitter(e *Emitter) {
	for i, have := range g.emitters {
		if have == e {
			g.emitters = append(g.emitters[:i], g.emitters[i+1:]...)
			return
		}
	}
}

// Emitters returns the attached emitters. The slice is owned by the group.
func (g *Group) Emitters() []*Emitter { return g.emitters }

// AddModifier attaches a modifier, keeping the pipeline sorted by ascending
// priority. Attach order breaks ties.
func (g *Group) AddModifier(m Modifier) {
	if m == nil {
		return
	}
	i := len(g.modifiers)
	for i > 0 && g.modifiers[i-1].Priority() > m.Priority() {
		i--
	}
	g.modifiers = append(g.modifiers, nil)
	copy(g.modifiers[i+1:], g.modifiers[i:])
	g.modifiers[i] = m
}

// RemoveModifier detaches a modifier. Unknown modifiers are ignored.
func (g *Group) RemoveModifier(m Modifier) {
	for i, have := range g.modifiers {
		if have == m {
			g.modifiers = append(g.modifiers[:i], g.modifiers[i+1:]...)
			return
		}
	}
}

// Modifiers returns the attached modifiers in pipeline order. The slice is
// owned by the group.
func (g *Group) Modifiers() []Modifier { return g.modifiers }

// EnableDistanceSort sorts live particles back-to-front against the
// system's camera position after every update, for renderers that need
// painter's order.
func (g *Group) EnableDistanceSort(enabled bool) { g.sortEnabled = enabled }

// DistanceSortEnabled reports whether back-to-front sorting is on.
func (g *Group) DistanceSortEnabled() bool { return g.sortEnabled }

// AddParticles spawns up to count particles from the emitter immediately,
// bypassing its flow but not its tank. Returns the number actually spawned
// (free capacity is a hard cap).
func (g *Group) AddParticles(count int, e *Emitter) int {
	if e != nil {
		count = e.drainTank(count)
	}
	spawned := 0
	for ; spawned < count && g.nb < g.capacity; spawned++ {
		g.spawnFrom(e)
	}
	return spawned
}

// update advances the group by one sub-step. The phase order is fixed:
// aging and motion, then emission, then the modifier pipeline, then
// compaction. New particles skip aging on their birth sub-step but are seen
// by the same sub-step's modifiers.
func (g *Group) update(dt float32) {
	// (a) age and move
	for i := 0; i < g.nb; i++ {
		g.ages[i] += dt
		if !g.immortal {
			g.lifeLeft[i] -= dt
		}
		g.oldPositions[i] = g.positions[i]
		g.positions[i] = g.positions[i].Add(g.velocities[i].Mul(dt))
	}
	if g.paramSpecs[ParamAngle].mode != ParamInterpolated {
		angles := g.params[ParamAngle]
		speeds := g.params[ParamRotationSpeed]
		for i := 0; i < g.nb; i++ {
			angles[i] += speeds[i] * dt
		}
	}
	g.interpolateParams()

	// (b) emit
	for _, e := range g.emitters {
		count := e.spawnCount(dt)
		for ; count > 0 && g.nb < g.capacity; count-- {
			g.spawnFrom(e)
		}
		// remaining count is dropped: capacity is a hard cap
	}

	// (c) modify, in priority order
	for _, m := range g.modifiers {
		m.Modify(g, dt)
	}

	// (d) compact
	for i := 0; i < g.nb; {
		if g.lifeLeft[i] <= 0 {
			g.swapRemove(i)
			continue
		}
		i++
	}
}

func (g *Group) interpolateParams() {
	for p := Param(0); p < NbParams; p++ {
		spec := &g.paramSpecs[p]
		if spec.mode != ParamInterpolated {
			continue
		}
		values := g.params[p]
		starts := g.paramStart[p]
		ends := g.paramEnd[p]
		for i := 0; i < g.nb; i++ {
			life := g.ages[i] + g.lifeLeft[i]
			t := float32(1)
			if life > 0 {
				t = min(g.ages[i]/life, 1)
			}
			values[i] = spec.ease(t, starts[i], ends[i]-starts[i], 1)
		}
	}
}

// spawnFrom initializes the slot at g.nb and grows the alive prefix. The
// caller has checked capacity. A nil emitter leaves the particle at the
// origin with zero velocity.
func (g *Group) spawnFrom(e *Emitter) {
	i := g.nb
	g.nb++

	g.ages[i] = 0
	g.lifeLeft[i] = randomRange(g.lifetimeMin, g.lifetimeMax)
	g.velocities[i] = Vec3{}
	g.positions[i] = Vec3{}

	for p := Param(0); p < NbParams; p++ {
		spec := &g.paramSpecs[p]
		switch spec.mode {
		case ParamConstant:
			g.params[p][i] = spec.a
		case ParamRandom:
			g.params[p][i] = randomRange(spec.a, spec.b)
		case ParamInterpolated:
			start := randomRange(spec.a, spec.b)
			g.paramStart[p][i] = start
			g.paramEnd[p][i] = randomRange(spec.endA, spec.endB)
			g.params[p][i] = start
		}
	}

	if e != nil {
		e.emit(Particle{group: g, index: i})
	}
	g.oldPositions[i] = g.positions[i]
}

// swapRemove reclaims slot i by copying the last live slot over it.
func (g *Group) swapRemove(i int) {
	last := g.nb - 1
	if i != last {
		g.positions[i] = g.positions[last]
		g.oldPositions[i] = g.oldPositions[last]
		g.velocities[i] = g.velocities[last]
		g.ages[i] = g.ages[last]
		g.lifeLeft[i] = g.lifeLeft[last]
		for p := range g.params {
			g.params[p][i] = g.params[p][last]
			if g.paramStart[p] != nil {
				g.paramStart[p][i] = g.paramStart[p][last]
				g.paramEnd[p][i] = g.paramEnd[p][last]
			}
		}
	}
	g.nb = last
}

// hasActiveEmitters reports whether any attached emitter can still spawn.
func (g *Group) hasActiveEmitters() bool {
	for _, e := range g.emitters {
		if e.Active() {
			return true
		}
	}
	return false
}

// computeAABB folds the group's live positions into the running bounds.
func (g *Group) computeAABB(min, max *Vec3) {
	for i := 0; i < g.nb; i++ {
		*min = vecMin(*min, g.positions[i])
		*max = vecMax(*max, g.positions[i])
	}
}

// sortByDistance orders live particles back-to-front from the camera.
func (g *Group) sortByDistance(camera Vec3) {
	if g.distSq == nil {
		g.distSq = make([]float32, g.capacity)
	}
	for i := 0; i < g.nb; i++ {
		d := g.positions[i].Sub(camera)
		g.distSq[i] = d.Dot(d)
	}
	sort.Sort(&g.sorter)
}

// groupSorter sorts the alive prefix of all parallel arrays by descending
// camera distance.
type groupSorter struct {
	g *Group
}

func (s *groupSorter) Len() int { return s.g.nb }

func (s *groupSorter) Less(i, j int) bool { return s.g.distSq[i] > s.g.distSq[j] }

func (s *groupSorter) Swap(i, j int) {
	g := s.g
	g.distSq[i], g.distSq[j] = g.distSq[j], g.distSq[i]
	g.positions[i], g.positions[j] = g.positions[j], g.positions[i]
	g.oldPositions[i], g.oldPositions[j] = g.oldPositions[j], g.oldPositions[i]
	g.velocities[i], g.velocities[j] = g.velocities[j], g.velocities[i]
	g.ages[i], g.ages[j] = g.ages[j], g.ages[i]
	g.lifeLeft[i], g.lifeLeft[j] = g.lifeLeft[j], g.lifeLeft[i]
	for p := range g.params {
		g.params[p][i], g.params[p][j] = g.params[p][j], g.params[p][i]
		if g.paramStart[p] != nil {
			g.paramStart[p][i], g.paramStart[p][j] = g.paramStart[p][j], g.paramStart[p][i]
			g.paramEnd[p][i], g.paramEnd[p][j] = g.paramEnd[p][j], g.paramEnd[p][i]
		}
	}
}
