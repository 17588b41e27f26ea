package physics

import (
	"github.com/jakecoffman/cp"

	"github.com/younwookim/mover/internal/domain/entity"
)

// Contacts classifies a body's touching surfaces after each space step.
type Contacts struct {
	body         *cp.Body
	groundNormal float64
	wallNormal   float64

	grounded bool
	wall     entity.WallSide
	suppress float64 // seconds of wall blindness left
}

var _ entity.ContactSensor = (*Contacts)(nil)

func newContacts(body *cp.Body, groundNormal, wallNormal float64) *Contacts {
	return &Contacts{body: body, groundNormal: groundNormal, wallNormal: wallNormal}
}

// Refresh re-reads the body's arbiters. dt counts down wall suppression.
func (c *Contacts) Refresh(dt float64) {
	if c.suppress > 0 {
		c.suppress = max(c.suppress-dt, 0)
	}

	c.grounded = false
	c.wall = entity.WallNone
	c.body.EachArbiter(func(arb *cp.Arbiter) {
		a, b := arb.Shapes()
		if a.Sensor() || b.Sensor() {
			return
		}
		// From the other surface toward this body
		n := arb.Normal().Neg()
		if n.Y > c.groundNormal {
			c.grounded = true
		}
		if n.X > c.wallNormal {
			c.wall = entity.WallLeft
		} else if n.X < -c.wallNormal {
			c.wall = entity.WallRight
		}
	})

	if c.suppress > 0 {
		c.wall = entity.WallNone
	}
}

func (c *Contacts) IsGrounded() bool {
	return c.grounded
}

func (c *Contacts) Wall() entity.WallSide {
	return c.wall
}

func (c *Contacts) SuppressWallContact(d float64) {
	c.suppress = d
	c.wall = entity.WallNone
}

// Suppressed reports whether wall sensing is currently blinded
func (c *Contacts) Suppressed() bool {
	return c.suppress > 0
}
