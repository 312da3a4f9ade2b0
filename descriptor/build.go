package descriptor

import (
	"fmt"

	"github.com/phanxgames/ember"
)

// paramsByName maps descriptor keys to particle parameters.
var paramsByName = func() map[string]ember.Param {
	m := make(map[string]ember.Param, ember.NbParams)
	for p := ember.Param(0); p < ember.NbParams; p++ {
		m[p.String()] = p
	}
	return m
}()

var zoneTestsByName = map[string]ember.ZoneTest{
	"inside":    ember.TestInside,
	"outside":   ember.TestOutside,
	"intersect": ember.TestIntersect,
	"enter":     ember.TestEnter,
	"leave":     ember.TestLeave,
}

// Build instantiates the described system: groups in order, each with its
// parameter rules, emitters and modifiers.
func Build(desc *SystemDesc) (*ember.System, error) {
	s := ember.NewSystem()

	if desc.Step != nil {
		cfg, err := buildStep(desc.Step)
		if err != nil {
			return nil, err
		}
		if err := s.SetStepConfig(cfg); err != nil {
			return nil, err
		}
	}
	if desc.Camera != nil {
		s.SetCameraPosition(ember.Vec3(*desc.Camera))
	}
	s.EnableAABBComputation(desc.AABB)

	for gi, gd := range desc.Groups {
		if err := buildGroup(s, &gd); err != nil {
			return nil, fmt.Errorf("group %d: %w", gi, err)
		}
	}
	return s, nil
}

func buildStep(d *StepDesc) (ember.StepConfig, error) {
	cfg := ember.StepConfig{
		Constant: d.Constant,
		Min:      d.Min,
		Max:      d.Max,
	}
	switch d.Mode {
	case "", "real":
		cfg.Mode = ember.StepReal
	case "constant":
		cfg.Mode = ember.StepConstant
	case "adaptive":
		cfg.Mode = ember.StepAdaptive
	default:
		return cfg, fmt.Errorf("unknown step mode %q", d.Mode)
	}
	if d.Clamp > 0 {
		cfg.Clamp = true
		cfg.ClampValue = d.Clamp
	}
	return cfg, nil
}

func buildGroup(s *ember.System, d *GroupDesc) error {
	g, err := s.CreateGroup(d.Capacity)
	if err != nil {
		return err
	}
	if d.Lifetime != nil {
		g.SetLifetime(d.Lifetime.Min, d.Lifetime.Max)
	}
	g.SetImmortal(d.Immortal)
	g.EnableDistanceSort(d.Sort)

	for name, pd := range d.Params {
		param, ok := paramsByName[name]
		if !ok {
			return fmt.Errorf("unknown param %q", name)
		}
		if err := applyParam(g, param, &pd); err != nil {
			return fmt.Errorf("param %s: %w", name, err)
		}
	}
	for i, ed := range d.Emitters {
		e, err := buildEmitter(&ed)
		if err != nil {
			return fmt.Errorf("emitter %d: %w", i, err)
		}
		g.AddEmitter(e)
	}
	for i, md := range d.Modifiers {
		m, err := buildModifier(&md)
		if err != nil {
			return fmt.Errorf("modifier %d: %w", i, err)
		}
		g.AddModifier(m)
	}
	return nil
}

func applyParam(g *ember.Group, param ember.Param, d *ParamDesc) error {
	switch {
	case d.Start != nil || d.End != nil:
		if d.Start == nil || d.End == nil {
			return fmt.Errorf("interpolation needs both start and end")
		}
		fn, err := easeByName(d.Ease)
		if err != nil {
			return err
		}
		g.SetParamInterpolated(param, d.Start.Min, d.Start.Max, d.End.Min, d.End.Max, fn)
	case d.Min != nil || d.Max != nil:
		if d.Min == nil || d.Max == nil {
			return fmt.Errorf("random range needs both min and max")
		}
		g.SetParamRange(param, *d.Min, *d.Max)
	case d.Value != nil:
		g.SetParam(param, *d.Value)
	default:
		return fmt.Errorf("one of value, min/max or start/end is required")
	}
	return nil
}

func buildZone(d *ZoneDesc) (ember.Zone, error) {
	if d == nil {
		return nil, nil
	}
	pos := ember.Vec3(d.Position)
	switch d.Type {
	case "point":
		return ember.NewPoint(pos), nil
	case "sphere":
		return ember.NewSphere(pos, d.Radius), nil
	case "plane":
		normal := ember.Vec3{0, 1, 0}
		if d.Normal != nil {
			normal = ember.Vec3(*d.Normal)
		}
		return ember.NewPlane(pos, normal), nil
	case "box":
		dim := ember.Vec3{1, 1, 1}
		if d.Dimension != nil {
			dim = ember.Vec3(*d.Dimension)
		}
		box := ember.NewBox(pos, dim)
		if d.Front != nil || d.Up != nil {
			front := ember.Vec3{0, 0, 1}
			up := ember.Vec3{0, 1, 0}
			if d.Front != nil {
				front = ember.Vec3(*d.Front)
			}
			if d.Up != nil {
				up = ember.Vec3(*d.Up)
			}
			box.SetAxes(front, up)
		}
		return box, nil
	case "cylinder":
		dir := ember.Vec3{0, 1, 0}
		if d.Direction != nil {
			dir = ember.Vec3(*d.Direction)
		}
		return ember.NewCylinder(pos, dir, d.Radius, d.Length), nil
	case "ring":
		normal := ember.Vec3{0, 1, 0}
		if d.Normal != nil {
			normal = ember.Vec3(*d.Normal)
		}
		return ember.NewRing(pos, normal, d.MinRadius, d.MaxRadius), nil
	default:
		return nil, fmt.Errorf("unknown zone type %q", d.Type)
	}
}

func buildEmitter(d *EmitterDesc) (*ember.Emitter, error) {
	zone, err := buildZone(d.Zone)
	if err != nil {
		return nil, err
	}
	tank := -1
	if d.Tank != nil {
		tank = *d.Tank
	}
	var forceMin, forceMax float32
	if d.Force != nil {
		forceMin, forceMax = d.Force.Min, d.Force.Max
	}

	var e *ember.Emitter
	switch d.Type {
	case "static":
		e, err = ember.NewStaticEmitter(zone, d.Flow, tank)
	case "straight":
		dir := ember.Vec3{0, 1, 0}
		if d.Direction != nil {
			dir = ember.Vec3(*d.Direction)
		}
		e, err = ember.NewStraightEmitter(zone, dir, d.Flow, tank, forceMin, forceMax)
	case "spheric":
		e, err = ember.NewSphericEmitter(zone, d.Flow, tank, forceMin, forceMax)
	case "random":
		e, err = ember.NewRandomEmitter(zone, d.Flow, tank, forceMin, forceMax)
	case "normal":
		e, err = ember.NewNormalEmitter(zone, d.Flow, tank, forceMin, forceMax, d.Inverted)
	default:
		return nil, fmt.Errorf("unknown emitter type %q", d.Type)
	}
	if err != nil {
		return nil, err
	}
	if d.Surface && d.Type != "normal" {
		e.SetZone(e.Zone(), false)
	}
	return e, nil
}

func buildModifier(d *ModifierDesc) (ember.Modifier, error) {
	switch d.Type {
	case "gravity":
		var acc ember.Vec3
		if d.Acceleration != nil {
			acc = ember.Vec3(*d.Acceleration)
		}
		return ember.NewGravity(acc), nil
	case "drag":
		return ember.NewDrag(d.Value), nil
	case "obstacle":
		zone, err := buildZone(d.Zone)
		if err != nil {
			return nil, err
		}
		o := ember.NewObstacle(zone, d.Bouncing, d.Friction)
		if len(d.Test) > 0 {
			var mask ember.ZoneTest
			for _, name := range d.Test {
				bit, ok := zoneTestsByName[name]
				if !ok {
					return nil, fmt.Errorf("unknown zone test %q", name)
				}
				mask |= bit
			}
			o.SetZoneTest(mask)
		}
		return o, nil
	default:
		return nil, fmt.Errorf("unknown modifier type %q", d.Type)
	}
}
