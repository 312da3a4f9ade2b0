package descriptor

import (
	"fmt"

	"github.com/phanxgames/ember"
)

// Snapshot exports a live system as a descriptor, suitable for Save. Only
// configuration is captured, not live particles; building the snapshot
// yields a fresh system with the same behavior.
//
// Modifiers and zones outside ember's built-in set cannot be described and
// cause an error.
func Snapshot(s *ember.System) (*SystemDesc, error) {
	desc := &SystemDesc{
		Step: snapshotStep(s.StepConfig()),
		AABB: s.AABBComputationEnabled(),
	}
	if cam := s.CameraPosition(); cam != (ember.Vec3{}) {
		c := [3]float32(cam)
		desc.Camera = &c
	}

	for i := 0; i < s.NbGroups(); i++ {
		gd, err := snapshotGroup(s.Group(i))
		if err != nil {
			return nil, fmt.Errorf("group %d: %w", i, err)
		}
		desc.Groups = append(desc.Groups, *gd)
	}
	return desc, nil
}

func snapshotStep(cfg ember.StepConfig) *StepDesc {
	d := &StepDesc{
		Constant: cfg.Constant,
		Min:      cfg.Min,
		Max:      cfg.Max,
	}
	switch cfg.Mode {
	case ember.StepConstant:
		d.Mode = "constant"
	case ember.StepAdaptive:
		d.Mode = "adaptive"
	default:
		d.Mode = "real"
	}
	if cfg.Clamp {
		d.Clamp = cfg.ClampValue
	}
	return d
}

func snapshotGroup(g *ember.Group) (*GroupDesc, error) {
	min, max := g.Lifetime()
	d := &GroupDesc{
		Capacity: g.Capacity(),
		Lifetime: &RangeDesc{Min: min, Max: max},
		Immortal: g.Immortal(),
		Sort:     g.DistanceSortEnabled(),
		Params:   make(map[string]ParamDesc, ember.NbParams),
	}
	for p := ember.Param(0); p < ember.NbParams; p++ {
		d.Params[p.String()] = snapshotParam(g.ParamConfig(p))
	}
	for _, e := range g.Emitters() {
		ed, err := snapshotEmitter(e)
		if err != nil {
			return nil, err
		}
		d.Emitters = append(d.Emitters, *ed)
	}
	for _, m := range g.Modifiers() {
		md, err := snapshotModifier(m)
		if err != nil {
			return nil, err
		}
		d.Modifiers = append(d.Modifiers, *md)
	}
	return d, nil
}

func snapshotParam(cfg ember.ParamConfig) ParamDesc {
	switch cfg.Mode {
	case ember.ParamRandom:
		min, max := cfg.Start[0], cfg.Start[1]
		return ParamDesc{Min: &min, Max: &max}
	case ember.ParamInterpolated:
		return ParamDesc{
			Start: &RangeDesc{Min: cfg.Start[0], Max: cfg.Start[1]},
			End:   &RangeDesc{Min: cfg.End[0], Max: cfg.End[1]},
			Ease:  easeName(cfg.Ease),
		}
	default:
		v := cfg.Start[0]
		return ParamDesc{Value: &v}
	}
}

func snapshotZone(zone ember.Zone) (*ZoneDesc, error) {
	d := &ZoneDesc{Position: [3]float32(zone.Position())}
	switch z := zone.(type) {
	case *ember.Point:
		d.Type = "point"
	case *ember.Sphere:
		d.Type = "sphere"
		d.Radius = z.Radius()
	case *ember.Plane:
		d.Type = "plane"
		n := [3]float32(z.Normal())
		d.Normal = &n
	case *ember.Box:
		d.Type = "box"
		dim := [3]float32(z.Dimension())
		front := [3]float32(z.Front())
		up := [3]float32(z.Up())
		d.Dimension = &dim
		d.Front = &front
		d.Up = &up
	case *ember.Cylinder:
		d.Type = "cylinder"
		dir := [3]float32(z.Direction())
		d.Direction = &dir
		d.Radius = z.Radius()
		d.Length = z.Length()
	case *ember.Ring:
		d.Type = "ring"
		n := [3]float32(z.Normal())
		d.Normal = &n
		d.MinRadius = z.MinRadius()
		d.MaxRadius = z.MaxRadius()
	default:
		return nil, fmt.Errorf("zone type %T has no descriptor form", zone)
	}
	return d, nil
}

func snapshotEmitter(e *ember.Emitter) (*EmitterDesc, error) {
	zone, err := snapshotZone(e.Zone())
	if err != nil {
		return nil, err
	}
	tank := e.Tank()
	forceMin, forceMax := e.Force()
	d := &EmitterDesc{
		Zone: zone,
		Flow: e.Flow(),
		Tank: &tank,
	}
	if forceMin != 0 || forceMax != 0 {
		d.Force = &RangeDesc{Min: forceMin, Max: forceMax}
	}

	switch e.Shape() {
	case ember.EmitStatic:
		d.Type = "static"
	case ember.EmitStraight:
		d.Type = "straight"
		dir := [3]float32(e.Direction())
		d.Direction = &dir
	case ember.EmitSpheric:
		d.Type = "spheric"
	case ember.EmitRandom:
		d.Type = "random"
	case ember.EmitNormal:
		d.Type = "normal"
		d.Inverted = e.Inverted()
	default:
		return nil, fmt.Errorf("emitter shape %d has no descriptor form", e.Shape())
	}
	if !e.Full() && e.Shape() != ember.EmitNormal {
		d.Surface = true
	}
	return d, nil
}

func snapshotModifier(m ember.Modifier) (*ModifierDesc, error) {
	switch mod := m.(type) {
	case *ember.Gravity:
		acc := [3]float32(mod.Value())
		return &ModifierDesc{Type: "gravity", Acceleration: &acc}, nil
	case *ember.Drag:
		return &ModifierDesc{Type: "drag", Value: mod.Value()}, nil
	case *ember.Obstacle:
		zone, err := snapshotZone(mod.Zone())
		if err != nil {
			return nil, err
		}
		return &ModifierDesc{
			Type:     "obstacle",
			Zone:     zone,
			Bouncing: mod.BouncingRatio(),
			Friction: mod.Friction(),
			Test:     zoneTestNames(mod.ZoneTest()),
		}, nil
	default:
		return nil, fmt.Errorf("modifier type %T has no descriptor form", m)
	}
}

// zoneTestNames expands a mask into descriptor names, in a fixed order.
func zoneTestNames(mask ember.ZoneTest) []string {
	var names []string
	for _, entry := range []struct {
		bit  ember.ZoneTest
		name string
	}{
		{ember.TestInside, "inside"},
		{ember.TestOutside, "outside"},
		{ember.TestIntersect, "intersect"},
		{ember.TestEnter, "enter"},
		{ember.TestLeave, "leave"},
	} {
		if mask&entry.bit != 0 {
			names = append(names, entry.name)
		}
	}
	return names
}
