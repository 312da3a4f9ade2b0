package ember

// System owns an ordered sequence of particle groups and the stepping
// policy that drives them. One Update call advances every group, sub-step
// by sub-step, in group creation order.
//
// A System is single-threaded: nothing may mutate its groups during an
// Update call. Zones and modifiers may be shared across groups because
// updates never overlap.
type System struct {
	groups []*Group

	step           StepConfig
	cameraPosition Vec3

	aabbEnabled bool
	aabbMin     Vec3
	aabbMax     Vec3
}

// NewSystem creates an empty system with real stepping and no clamping.
func NewSystem() *System {
	return &System{}
}

// CreateGroup creates a group with the given pool capacity and appends it
// to the system's update order.
func (s *System) CreateGroup(capacity int) (*Group, error) {
	g, err := NewGroup(capacity)
	if err != nil {
		return nil, err
	}
	s.groups = append(s.groups, g)
	return g, nil
}

// DestroyGroup removes a group from the system. Unknown groups are ignored.
func (s *System) DestroyGroup(g *Group) {
	for i, have := range s.groups {
		if have == g {
			s.groups = append(s.groups[:i], s.groups[i+1:]...)
			return
		}
	}
}

// Group returns the group at index, in creation order.
func (s *System) Group(index int) *Group {
	debugCheck(index >= 0 && index < len(s.groups), "Group index %d out of range %d", index, len(s.groups))
	return s.groups[index]
}

// NbGroups returns the number of groups.
func (s *System) NbGroups() int { return len(s.groups) }

// NbParticles returns the total number of live particles across all groups.
func (s *System) NbParticles() int {
	total := 0
	for _, g := range s.groups {
		total += g.nb
	}
	return total
}

// StepConfig returns the current stepping policy.
func (s *System) StepConfig() StepConfig { return s.step }

// SetStepConfig replaces the stepping policy. Impossible configurations
// (non-positive step sizes) are rejected; inverted adaptive bounds are
// swapped with a warning.
func (s *System) SetStepConfig(cfg StepConfig) error {
	if err := cfg.validate(); err != nil {
		return err
	}
	s.step = cfg
	return nil
}

// SetCameraPosition sets the reference point used by groups with distance
// sorting enabled. Set it before Update when the camera moves.
func (s *System) SetCameraPosition(p Vec3) { s.cameraPosition = p }

// CameraPosition returns the current camera reference point.
func (s *System) CameraPosition() Vec3 { return s.cameraPosition }

// EnableAABBComputation toggles recomputation of the system's axis-aligned
// bounding box on every Update.
func (s *System) EnableAABBComputation(enabled bool) { s.aabbEnabled = enabled }

// AABBComputationEnabled reports whether bounds are recomputed on Update.
func (s *System) AABBComputationEnabled() bool { return s.aabbEnabled }

// AABB returns the bounds computed during the last Update. Both are zero
// when computation is disabled or no particles are alive.
func (s *System) AABB() (min, max Vec3) { return s.aabbMin, s.aabbMax }

// Update advances the simulation by deltaTime seconds, decomposed into
// sub-steps per the stepping policy. It reports whether the system is still
// active: at least one live particle or one emitter that can still spawn.
//
// A negative deltaTime is corrected to zero with a warning.
func (s *System) Update(deltaTime float32) bool {
	if deltaTime < 0 {
		warnf(CodeNegativeDelta, "negative delta time %g; using 0", deltaTime)
		deltaTime = 0
	}

	count, size := s.step.steps(deltaTime)
	for range count {
		for _, g := range s.groups {
			g.update(size)
		}
	}

	for _, g := range s.groups {
		if g.sortEnabled {
			g.sortByDistance(s.cameraPosition)
		}
	}

	s.aabbMin, s.aabbMax = Vec3{}, Vec3{}
	if s.aabbEnabled && s.NbParticles() > 0 {
		const huge = float32(3.4e38)
		s.aabbMin = Vec3{huge, huge, huge}
		s.aabbMax = Vec3{-huge, -huge, -huge}
		for _, g := range s.groups {
			g.computeAABB(&s.aabbMin, &s.aabbMax)
		}
	}

	for _, g := range s.groups {
		if g.nb > 0 || g.hasActiveEmitters() {
			return true
		}
	}
	return false
}
