package system

import (
	"math"

	"github.com/younwookim/mover/internal/domain/entity"
)

// idleInputThreshold is the stick deflection below which the ground brakes.
const idleInputThreshold = 0.4

// changingDirection reports whether input pushes against current motion.
func changingDirection(vx, input float64) bool {
	return (vx > 0 && input < 0) || (vx < 0 && input > 0)
}

// GroundDrag returns the drag for a grounded body: full friction when the
// input is (nearly) idle or steering against the motion, none otherwise.
func GroundDrag(cfg entity.MovementConfig, vx, input float64) float64 {
	if math.Abs(input) < idleInputThreshold || changingDirection(vx, input) {
		return cfg.GroundDrag
	}
	return 0
}

// FallGravityScale picks the airborne gravity tier. Falling or rising past
// the intended apex uses the full multiplier, rising with jump released uses
// the half multiplier, and a held jump rises at neutral gravity.
func FallGravityScale(cfg entity.MovementConfig, vy, riseSinceJump float64, jumpHeld bool) float64 {
	if vy < 0 || riseSinceJump > cfg.JumpHeight {
		return cfg.FullFallMultiplier
	}
	if vy > 0 && !jumpHeld {
		return cfg.HalfFallMultiplier
	}
	return 1
}

func (c *Controller) setDrag(d float64) {
	c.state.Drag = d
	c.body.SetDrag(d)
}

func (c *Controller) setGravityScale(s float64) {
	c.state.GravityScale = s
	c.body.SetGravityScale(s)
}

func (c *Controller) applyGroundDrag() {
	c.setDrag(GroundDrag(c.cfg, c.body.Velocity().X, c.state.HorizontalInput()))
}

func (c *Controller) applyAirDrag() {
	c.setDrag(c.cfg.AirDrag)
}

func (c *Controller) applyFallGravity() {
	rise := c.body.Position().Y - c.state.LastJumpPosition.Y
	c.setGravityScale(FallGravityScale(c.cfg, c.body.Velocity().Y, rise, c.state.JumpHeld))
}
