package entity

import "github.com/jakecoffman/cp"

// PhysicsBody is the narrow slice of a rigid body the movement controller
// drives. The physics backend integrates it; the controller only pushes.
type PhysicsBody interface {
	Position() cp.Vector
	Velocity() cp.Vector
	SetVelocity(v cp.Vector)

	// ApplyForce accumulates a force for the next integration step.
	ApplyForce(f cp.Vector)
	// ApplyImpulse changes momentum immediately (dv = j / mass).
	ApplyImpulse(j cp.Vector)
	Mass() float64

	Drag() float64
	SetDrag(d float64)
	GravityScale() float64
	SetGravityScale(s float64)
}

// WallSide tells which side a wall touches the body on.
type WallSide int

const (
	WallNone WallSide = iota
	WallLeft
	WallRight
)

// String returns a short name for the side
func (w WallSide) String() string {
	switch w {
	case WallLeft:
		return "left"
	case WallRight:
		return "right"
	default:
		return "none"
	}
}

// ContactSensor reports ground and wall contact for one body.
type ContactSensor interface {
	IsGrounded() bool
	Wall() WallSide
	// SuppressWallContact blinds wall sensing for d seconds.
	SuppressWallContact(d float64)
}
