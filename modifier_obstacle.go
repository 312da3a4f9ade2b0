package ember

// contactBias is the tiny separation speed an obstacle leaves along the
// normal so a resting particle doesn't re-trigger the collision next step.
const contactBias = 0.001

// Obstacle blocks particles at a zone boundary. On a matching transition it
// cancels the illegal move by reverting to the previous position, then
// splits the velocity against the zone normal: the tangential part is
// scaled by Friction, the normal part by BouncingRatio (flipped when the
// particle was moving into the surface).
type Obstacle struct {
	zonedModifier
	bouncingRatio float32
	friction      float32
}

// NewObstacle creates an obstacle over the given zone. bouncingRatio scales
// the reflected normal velocity (1 = perfect bounce, 0 = dead stop along
// the normal); friction scales the tangential velocity (1 = no friction).
// The default transition mask is TestIntersect.
func NewObstacle(zone Zone, bouncingRatio, friction float32) *Obstacle {
	o := &Obstacle{
		bouncingRatio: bouncingRatio,
		friction:      friction,
	}
	o.zonedModifier = zonedModifier{test: TestIntersect, priority: PriorityCollision}
	o.SetZone(zone)
	return o
}

// BouncingRatio returns the normal-velocity scale.
func (o *Obstacle) BouncingRatio() float32 { return o.bouncingRatio }

// SetBouncingRatio sets the normal-velocity scale, correcting negative
// values.
func (o *Obstacle) SetBouncingRatio(r float32) {
	if r < 0 {
		warnf(CodeNegativeDimension, "Obstacle bouncing ratio %g is negative; using %g", r, -r)
		r = -r
	}
	o.bouncingRatio = r
}

// Friction returns the tangential-velocity scale.
func (o *Obstacle) Friction() float32 { return o.friction }

// SetFriction sets the tangential-velocity scale.
func (o *Obstacle) SetFriction(f float32) { o.friction = f }

func (o *Obstacle) Modify(g *Group, dt float32) {
	for i := 0; i < g.Alive(); i++ {
		p := g.Particle(i)
		if !o.checkZone(p) {
			continue
		}

		// Cancel the illegal move.
		p.SetPosition(p.OldPosition())

		velocity := p.Velocity()
		normal := o.zone.ComputeNormal(p.Position())

		dist := velocity.Dot(normal)

		// Split into tangential and normal components, keeping a small
		// separation speed along the normal.
		normalPart := normal.Mul(dist - contactBias)
		tangential := velocity.Sub(normalPart).Mul(o.friction)
		normalPart = normalPart.Mul(o.bouncingRatio)
		if dist > 0 {
			normalPart = normalPart.Mul(-1)
		}
		p.SetVelocity(tangential.Sub(normalPart))
	}
}
