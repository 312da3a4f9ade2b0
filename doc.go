// Package ember is a real-time CPU particle simulation engine.
//
// Ember simulates fixed-capacity pools of particles advanced each frame by
// emitters (sources of new particles), modifiers (forces and constraints
// such as gravity, drag, and obstacles), and zones (geometric regions used
// for spawning, containment tests, and collision normals).
//
// # Quick start
//
// A [System] owns an ordered list of [Group] pools. Each group carries its
// own emitters and modifiers:
//
//	sys := ember.NewSystem()
//	group, _ := sys.CreateGroup(1000)
//	group.SetLifetime(1, 2)
//
//	em, _ := ember.NewSphericEmitter(ember.NewSphere(ember.Vec3{}, 0.5), 200, -1, 1, 2)
//	group.AddEmitter(em)
//	group.AddModifier(ember.NewGravity(ember.Vec3{0, -9.81, 0}))
//
//	// once per frame:
//	active := sys.Update(dt)
//
// Update decomposes the caller's delta time into zero or more sub-steps
// according to the system's [StepConfig] (real, constant, or adaptive
// stepping, with optional clamping). Each sub-step ages and moves live
// particles, spawns new ones, runs the modifier pipeline in priority
// order, and compacts dead slots.
//
// # Zones
//
// Zones implement a small set of geometric predicates (position sampling,
// containment, swept-sphere segment intersection, and surface normals)
// behind the [Zone] interface. The concrete variants are [Point], [Sphere],
// [Plane], [Box], [Cylinder], and [Ring]. A zone marked shared is used by
// several emitters or modifiers at once and never follows an owner's
// transform.
//
// # Particles
//
// A [Particle] is a lightweight view over a slot in its group's pool. Slots
// [0, Alive()) are always densely packed; killing a particle swaps it with
// the last live slot, so iteration order is not stable across removals.
// Besides position and velocity, every particle carries a small fixed set of
// float parameters ([ParamSize], [ParamMass], [ParamAngle],
// [ParamTextureIndex], [ParamRotationSpeed]) that can be constant, randomized
// at birth, or interpolated over the particle's lifetime with a [gween]
// easing curve.
//
// # Boundaries
//
// The core is headless and single-threaded. Rendering lives in the
// render subpackage (an [Ebitengine] billboard renderer that reads the
// pool between updates), and declarative YAML persistence lives in the
// descriptor subpackage. Recoverable input problems (negative dimensions,
// inverted ranges, degenerate axes) are corrected and reported through
// [SetDiagnosticHandler]; they never stop the simulation.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
package ember
