package system

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/mover/internal/domain/entity"
)

const testGravity = 9.81

// fakeBody is a point mass with explicit Euler integration, enough to watch
// what the controller pushes into a body.
type fakeBody struct {
	pos, vel, force cp.Vector
	mass            float64
	drag            float64
	gravityScale    float64
	impulses        []cp.Vector
}

func newFakeBody() *fakeBody {
	return &fakeBody{mass: 1, gravityScale: 1}
}

func (b *fakeBody) Position() cp.Vector       { return b.pos }
func (b *fakeBody) Velocity() cp.Vector       { return b.vel }
func (b *fakeBody) SetVelocity(v cp.Vector)   { b.vel = v }
func (b *fakeBody) ApplyForce(f cp.Vector)    { b.force = b.force.Add(f) }
func (b *fakeBody) Mass() float64             { return b.mass }
func (b *fakeBody) Drag() float64             { return b.drag }
func (b *fakeBody) SetDrag(d float64)         { b.drag = d }
func (b *fakeBody) GravityScale() float64     { return b.gravityScale }
func (b *fakeBody) SetGravityScale(s float64) { b.gravityScale = s }

func (b *fakeBody) ApplyImpulse(j cp.Vector) {
	b.impulses = append(b.impulses, j)
	b.vel = b.vel.Add(j.Mult(1 / b.mass))
}

// step integrates dt seconds the way the physics backend does.
func (b *fakeBody) step(dt float64) {
	acc := b.force.Mult(1 / b.mass).Add(cp.Vector{Y: -testGravity * b.gravityScale})
	b.vel = b.vel.Add(acc.Mult(dt)).Mult(1 / (1 + dt*b.drag))
	b.pos = b.pos.Add(b.vel.Mult(dt))
	b.force = cp.Vector{}
}

type fakeContacts struct {
	grounded   bool
	wall       entity.WallSide
	suppressed []float64
}

func (c *fakeContacts) IsGrounded() bool      { return c.grounded }
func (c *fakeContacts) Wall() entity.WallSide { return c.wall }

func (c *fakeContacts) SuppressWallContact(d float64) {
	c.suppressed = append(c.suppressed, d)
}

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

func newTestController(t *testing.T, cfg entity.MovementConfig) (*Controller, *fakeBody, *fakeContacts) {
	t.Helper()
	body := newFakeBody()
	contacts := &fakeContacts{}
	c, err := NewController(1, cfg, body, contacts, testGravity, quietLogger())
	require.NoError(t, err)
	return c, body, contacts
}
