package system

import (
	"errors"
	"fmt"
	"math"

	"github.com/charmbracelet/log"
	"github.com/jakecoffman/cp"
	"github.com/younwookim/mover/internal/domain/entity"
)

// jumpDirection is the launch direction used by the step orchestrator
var jumpDirection = cp.Vector{X: 0, Y: 1}

// Controller turns move/jump/dash input into forces on one character's body.
//
// Update runs once per rendered frame with a variable dt: it updates facing,
// classifies drag and gravity from the grounded state and ages the input
// triggers. FixedUpdate runs once per physics step: a ready dash preempts
// everything else for that step, otherwise movement and jump may both fire.
//
// A Controller is owned by a single simulation goroutine and is not safe for
// concurrent use.
type Controller struct {
	id       entity.EntityID
	cfg      entity.MovementConfig
	state    entity.MovementState
	body     entity.PhysicsBody
	contacts entity.ContactSensor
	gravity  float64 // world gravity magnitude
	logger   *log.Logger
}

// NewController creates a controller for body. gravity is the magnitude of
// the world's gravitational acceleration. A nil logger uses log.Default().
func NewController(id entity.EntityID, cfg entity.MovementConfig, body entity.PhysicsBody, contacts entity.ContactSensor, gravity float64, logger *log.Logger) (*Controller, error) {
	if body == nil {
		return nil, errors.New("controller: nil body")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("controller: %w", err)
	}
	if logger == nil {
		logger = log.Default()
	}

	c := &Controller{
		id:       id,
		cfg:      cfg,
		state:    entity.NewMovementState(cfg),
		body:     body,
		contacts: contacts,
		gravity:  gravity,
		logger:   logger,
	}
	c.state.Aim = body.Position()
	c.setGravityScale(c.state.GravityScale)
	return c, nil
}

// ID returns the entity this controller drives
func (c *Controller) ID() entity.EntityID {
	return c.id
}

// Config returns the controller's tuning
func (c *Controller) Config() entity.MovementConfig {
	return c.cfg
}

// State returns a snapshot of the movement state
func (c *Controller) State() entity.MovementState {
	return c.state
}

// Body returns the driven body
func (c *Controller) Body() entity.PhysicsBody {
	return c.body
}

// OnMove sets the current move axis.
func (c *Controller) OnMove(v cp.Vector) {
	c.state.Move = v
}

// OnJumpPressed buffers a jump and latches the held flag.
func (c *Controller) OnJumpPressed() {
	c.state.JumpBuffer.Arm()
	c.state.JumpHeld = true
}

// OnJumpReleased clears the held flag.
func (c *Controller) OnJumpReleased() {
	c.state.JumpHeld = false
}

// OnDashRequested buffers a dash.
func (c *Controller) OnDashRequested() {
	c.state.DashBuffer.Arm()
}

// OnAim sets the world-space aim point.
func (c *Controller) OnAim(p cp.Vector) {
	c.state.Aim = p
}

// Update runs the per-frame work for dt seconds of elapsed time.
func (c *Controller) Update(dt float64) {
	c.updateFacing()

	c.state.IsGrounded = c.contacts != nil && c.contacts.IsGrounded()
	if c.state.IsGrounded {
		c.applyGroundDrag()
		c.state.JumpsCounted = 0
		c.state.Coyote.Arm()
		c.state.IsDashing = false
	} else {
		c.applyAirDrag()
		c.applyFallGravity()
	}

	c.state.Coyote.Tick(dt)
	c.state.JumpBuffer.Tick(dt)
	c.state.DashBuffer.Tick(dt)
}

// FixedUpdate runs one physics step of action arbitration and returns the
// actions it executed, in order.
func (c *Controller) FixedUpdate() []Intent {
	if c.canDash() {
		v, directionBased := c.dashArgs()
		return []Intent{c.dash(v, directionBased)}
	}
	if c.state.IsDashing {
		return nil
	}

	var intents []Intent
	if c.canMove() {
		intents = append(intents, c.move())
	}
	if c.canJump() {
		intents = append(intents, c.jump(c.cfg.JumpHeight, jumpDirection))
	}
	return intents
}

func (c *Controller) updateFacing() {
	pos := c.body.Position()
	if c.state.Aim.X < pos.X {
		c.state.FacingRight = false
	} else if c.state.Aim.X > pos.X {
		c.state.FacingRight = true
	}
}

func (c *Controller) canMove() bool {
	return c.state.HorizontalInput() != 0
}

// move pushes horizontally and caps the horizontal speed.
func (c *Controller) move() MoveIntent {
	force := cp.Vector{X: c.state.HorizontalInput(), Y: 0}.Mult(c.cfg.Acceleration)
	c.body.ApplyForce(force)

	intent := MoveIntent{EntityID: c.id, Force: force}
	v := c.body.Velocity()
	if math.Abs(v.X) > c.cfg.MaxSpeed {
		c.body.SetVelocity(cp.Vector{X: math.Copysign(c.cfg.MaxSpeed, v.X), Y: v.Y})
		intent.Clamped = true
	}
	return intent
}
