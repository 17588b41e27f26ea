package entity

import "github.com/jakecoffman/cp"

// MovementState is the mutable side of one character's movement. Velocity
// lives on the PhysicsBody; Drag and GravityScale mirror what was last pushed
// to it.
type MovementState struct {
	GravityScale float64
	Drag         float64

	IsGrounded  bool
	IsDashing   bool
	FacingRight bool
	JumpHeld    bool

	// JumpsCounted is how many jumps were spent this airborne period,
	// 0..ExtraJumpCount. Reset to 0 on every grounded frame.
	JumpsCounted int

	// LastJumpPosition is where the last jump took off; only used to measure
	// how far the body has risen since.
	LastJumpPosition cp.Vector

	Move cp.Vector // latest move axis
	Aim  cp.Vector // latest aim point in world space

	JumpBuffer BufferedTrigger
	Coyote     BufferedTrigger
	DashBuffer BufferedTrigger
}

// NewMovementState creates the initial state for a character using cfg's
// windows. The character starts facing right with neutral gravity.
func NewMovementState(cfg MovementConfig) MovementState {
	return MovementState{
		GravityScale: 1,
		FacingRight:  true,
		JumpBuffer:   NewBufferedTrigger(cfg.JumpBufferWindow),
		Coyote:       NewBufferedTrigger(cfg.CoyoteWindow),
		DashBuffer:   NewBufferedTrigger(cfg.DashBufferWindow),
	}
}

// HorizontalInput returns the move axis x component
func (s *MovementState) HorizontalInput() float64 {
	return s.Move.X
}

// FacingDirection returns (1,0) or (-1,0).
func (s *MovementState) FacingDirection() cp.Vector {
	if s.FacingRight {
		return cp.Vector{X: 1}
	}
	return cp.Vector{X: -1}
}
