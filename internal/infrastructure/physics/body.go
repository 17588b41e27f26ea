package physics

import (
	"github.com/jakecoffman/cp"

	"github.com/younwookim/mover/internal/domain/entity"
)

// Body wraps a Chipmunk body with per-body gravity scale and linear drag.
type Body struct {
	ID entity.EntityID

	body     *cp.Body
	shape    *cp.Shape
	contacts *Contacts

	drag         float64
	gravityScale float64
}

var _ entity.PhysicsBody = (*Body)(nil)

func newBody(id entity.EntityID, body *cp.Body, shape *cp.Shape) *Body {
	b := &Body{ID: id, body: body, shape: shape, gravityScale: 1}
	body.SetVelocityUpdateFunc(b.updateVelocity)
	return b
}

// updateVelocity integrates scaled gravity, then applies drag as
// v *= 1 / (1 + dt*drag).
func (b *Body) updateVelocity(body *cp.Body, gravity cp.Vector, damping, dt float64) {
	cp.BodyUpdateVelocity(body, gravity.Mult(b.gravityScale), damping, dt)
	if b.drag > 0 {
		body.SetVelocityVector(body.Velocity().Mult(1 / (1 + dt*b.drag)))
	}
}

func (b *Body) Position() cp.Vector {
	return b.body.Position()
}

func (b *Body) Velocity() cp.Vector {
	return b.body.Velocity()
}

func (b *Body) SetVelocity(v cp.Vector) {
	b.body.SetVelocityVector(v)
}

// ApplyForce adds f to the force accumulator at the centre of mass.
// Chipmunk clears the accumulator after each step.
func (b *Body) ApplyForce(f cp.Vector) {
	b.body.ApplyForceAtWorldPoint(f, b.body.Position())
}

// ApplyImpulse changes velocity by j / mass right away.
func (b *Body) ApplyImpulse(j cp.Vector) {
	b.body.ApplyImpulseAtWorldPoint(j, b.body.Position())
}

func (b *Body) Mass() float64 {
	return b.body.Mass()
}

func (b *Body) Drag() float64 {
	return b.drag
}

func (b *Body) SetDrag(d float64) {
	b.drag = d
}

func (b *Body) GravityScale() float64 {
	return b.gravityScale
}

func (b *Body) SetGravityScale(s float64) {
	b.gravityScale = s
}

// SetPosition teleports the body and clears its velocity
func (b *Body) SetPosition(p cp.Vector) {
	b.body.SetPosition(p)
	b.body.SetVelocityVector(cp.Vector{})
}

// BB returns the shape's bounding box as of the last step
func (b *Body) BB() cp.BB {
	return b.shape.BB()
}

// Contacts returns the body's contact sensor, nil for static bodies
func (b *Body) Contacts() *Contacts {
	return b.contacts
}
