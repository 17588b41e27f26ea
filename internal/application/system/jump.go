package system

import (
	"math"

	"github.com/jakecoffman/cp"
)

// JumpSpeed is the launch speed that reaches height under gravity g scaled
// by gravityScale: v = sqrt(2 * g * scale * h).
func JumpSpeed(g, gravityScale, height float64) float64 {
	return math.Sqrt(2 * g * gravityScale * height)
}

// canJump needs a buffered press and either coyote time or, with more than
// one jump configured, budget left in this airborne period.
func (c *Controller) canJump() bool {
	if !c.state.JumpBuffer.Ready() {
		return false
	}
	if c.cfg.ExtraJumpCount > 1 {
		return c.state.Coyote.Ready() || c.state.JumpsCounted < c.cfg.ExtraJumpCount
	}
	return c.state.Coyote.Ready()
}

// jump launches the body so it rises height units along dir. Callers gate it
// with canJump.
func (c *Controller) jump(height float64, dir cp.Vector) JumpIntent {
	// Walked off a ledge and missed coyote time: this jump is the last one of
	// the airborne period instead of being refused.
	if c.state.Coyote.Expired() && c.state.JumpsCounted < 1 {
		c.state.JumpsCounted = c.cfg.ExtraJumpCount - 1
	}

	c.state.LastJumpPosition = c.body.Position()
	c.state.Coyote.Consume()
	c.state.JumpBuffer.Consume()
	c.state.JumpsCounted++

	c.applyAirDrag()
	c.setGravityScale(c.cfg.FullFallMultiplier)

	v := c.body.Velocity()
	c.body.SetVelocity(cp.Vector{X: v.X, Y: 0})

	if c.contacts != nil {
		c.contacts.SuppressWallContact(c.cfg.WallSuppressDuration)
	}

	speed := JumpSpeed(c.gravity, c.state.GravityScale, height)
	c.body.ApplyImpulse(dir.Mult(speed * c.body.Mass()))

	c.logger.Debug("jump", "id", c.id, "speed", speed, "jumps", c.state.JumpsCounted)

	return JumpIntent{EntityID: c.id, Direction: dir, Speed: speed}
}
