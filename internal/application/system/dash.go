package system

import (
	"github.com/jakecoffman/cp"
	"github.com/younwookim/mover/internal/domain/entity"
)

// canDash needs a buffered press and no dash already running. The dash
// buffer is not consumed on use; the dashing latch alone blocks re-entry
// until the next grounded frame.
func (c *Controller) canDash() bool {
	return c.state.DashBuffer.Ready() && !c.state.IsDashing
}

// dashDirection resolves the unnormalised dash direction. In direction mode
// v is the direction itself; otherwise v is a target point.
func (c *Controller) dashDirection(v cp.Vector, directionBased bool) cp.Vector {
	var dir cp.Vector
	if directionBased {
		if v.X != 0 || v.Y != 0 {
			dir = v
		} else {
			dir = c.state.FacingDirection()
		}
	} else {
		dir = v.Sub(c.body.Position())
	}

	// Target on top of the body: dash the way we face.
	if dir.X == 0 && dir.Y == 0 {
		dir = c.state.FacingDirection()
	}
	return dir
}

// dash stops the body dead and fires it along the resolved direction.
// Callers gate it with canDash.
func (c *Controller) dash(v cp.Vector, directionBased bool) DashIntent {
	c.state.IsDashing = true

	c.body.SetVelocity(cp.Vector{})
	c.setGravityScale(0)
	c.setDrag(0)

	dir := c.dashDirection(v, directionBased).Normalize()
	c.body.ApplyImpulse(dir.Mult(c.cfg.DashForce))

	c.logger.Debug("start dash", "id", c.id, "dir", dir)

	return DashIntent{EntityID: c.id, Direction: dir, Force: c.cfg.DashForce}
}

// dashArgs maps the configured dash mode onto dash's arguments.
func (c *Controller) dashArgs() (cp.Vector, bool) {
	if c.cfg.DashMode == entity.DashAlongInput {
		return c.state.Move, true
	}
	return c.state.Aim, false
}
