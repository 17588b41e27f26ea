package entity

import (
	"errors"
	"fmt"
)

// ErrInvalidMovement is returned (wrapped) when a MovementConfig breaks one
// of its invariants.
var ErrInvalidMovement = errors.New("invalid movement config")

// DashMode selects how a dash picks its direction.
type DashMode int

const (
	// DashTowardTarget dashes from the body toward the aim point.
	DashTowardTarget DashMode = iota
	// DashAlongInput dashes along the move input, falling back to facing.
	DashAlongInput
)

// String returns the config name of the dash mode
func (m DashMode) String() string {
	switch m {
	case DashTowardTarget:
		return "position"
	case DashAlongInput:
		return "direction"
	default:
		return "unknown"
	}
}

// ParseDashMode maps a config name to a DashMode. Empty means the default.
func ParseDashMode(s string) (DashMode, error) {
	switch s {
	case "", "position":
		return DashTowardTarget, nil
	case "direction":
		return DashAlongInput, nil
	default:
		return DashTowardTarget, fmt.Errorf("unknown dash mode %q", s)
	}
}

// MovementConfig is the author-time tuning of one character. It is never
// changed after the controller is built.
type MovementConfig struct {
	Acceleration float64 // horizontal force per unit of input
	MaxSpeed     float64 // horizontal speed clamp
	GroundDrag   float64 // friction when idle or turning on the ground
	AirDrag      float64 // air resistance

	JumpHeight         float64 // intended apex above the take-off point
	FullFallMultiplier float64 // gravity scale while falling or past apex
	HalfFallMultiplier float64 // gravity scale while rising with jump released
	ExtraJumpCount     int     // jumps per airborne period, at least 1

	DashForce float64
	DashMode  DashMode

	JumpBufferWindow float64
	CoyoteWindow     float64
	DashBufferWindow float64

	WallSuppressDuration float64 // how long a jump blinds wall sensing
}

// DefaultMovementConfig returns the tuning the controller was authored with.
func DefaultMovementConfig() MovementConfig {
	return MovementConfig{
		Acceleration:         70,
		MaxSpeed:             12,
		GroundDrag:           20,
		AirDrag:              2.5,
		JumpHeight:           4,
		FullFallMultiplier:   8,
		HalfFallMultiplier:   5,
		ExtraJumpCount:       1,
		DashForce:            15,
		DashMode:             DashTowardTarget,
		JumpBufferWindow:     0.1,
		CoyoteWindow:         0.1,
		DashBufferWindow:     0.1,
		WallSuppressDuration: 0.1,
	}
}

// Validate checks the config invariants and reports every violation.
func (c MovementConfig) Validate() error {
	var errs []error
	nonNegative := func(name string, v float64) {
		if v < 0 {
			errs = append(errs, fmt.Errorf("%w: %s must be >= 0, got %g", ErrInvalidMovement, name, v))
		}
	}

	nonNegative("acceleration", c.Acceleration)
	nonNegative("maxSpeed", c.MaxSpeed)
	nonNegative("groundDrag", c.GroundDrag)
	nonNegative("airDrag", c.AirDrag)
	nonNegative("jumpHeight", c.JumpHeight)
	nonNegative("fullFallMultiplier", c.FullFallMultiplier)
	nonNegative("halfFallMultiplier", c.HalfFallMultiplier)
	nonNegative("dashForce", c.DashForce)
	nonNegative("jumpBufferWindow", c.JumpBufferWindow)
	nonNegative("coyoteWindow", c.CoyoteWindow)
	nonNegative("dashBufferWindow", c.DashBufferWindow)
	nonNegative("wallSuppressDuration", c.WallSuppressDuration)

	if c.ExtraJumpCount < 1 {
		errs = append(errs, fmt.Errorf("%w: extraJumpCount must be >= 1, got %d", ErrInvalidMovement, c.ExtraJumpCount))
	}

	return errors.Join(errs...)
}
