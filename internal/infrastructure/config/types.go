package config

import (
	"errors"
	"fmt"

	"github.com/younwookim/mover/internal/domain/entity"
)

// ErrInvalid marks a configuration that failed validation.
var ErrInvalid = errors.New("invalid config")

// PhysicsConfig is the root config for physics.json / physics.yaml
type PhysicsConfig struct {
	Display  DisplayConfig  `json:"display" yaml:"display"`
	World    WorldConfig    `json:"world" yaml:"world"`
	Movement MovementConfig `json:"movement" yaml:"movement"`
	Jump     JumpConfig     `json:"jump" yaml:"jump"`
	Dash     DashConfig     `json:"dash" yaml:"dash"`
	Contact  ContactConfig  `json:"contact" yaml:"contact"`
}

type DisplayConfig struct {
	ScreenWidth   int     `json:"screenWidth" yaml:"screenWidth"`
	ScreenHeight  int     `json:"screenHeight" yaml:"screenHeight"`
	Scale         int     `json:"scale" yaml:"scale"`
	Framerate     int     `json:"framerate" yaml:"framerate"`
	PixelsPerUnit float64 `json:"pixelsPerUnit" yaml:"pixelsPerUnit"`
}

// WorldConfig configures the physics space and the fixed step loop
type WorldConfig struct {
	Gravity     float64 `json:"gravity" yaml:"gravity"`         // magnitude, pulls toward -Y
	FixedStep   float64 `json:"fixedStep" yaml:"fixedStep"`     // seconds per physics step
	MaxSubsteps int     `json:"maxSubsteps" yaml:"maxSubsteps"` // physics steps per frame cap
	Iterations  int     `json:"iterations" yaml:"iterations"`   // solver iterations
}

type MovementConfig struct {
	Acceleration float64 `json:"acceleration" yaml:"acceleration"`
	MaxSpeed     float64 `json:"maxSpeed" yaml:"maxSpeed"`
	GroundDrag   float64 `json:"groundDrag" yaml:"groundDrag"`
}

type JumpConfig struct {
	Height             float64 `json:"height" yaml:"height"`
	AirDrag            float64 `json:"airDrag" yaml:"airDrag"`
	FullFallMultiplier float64 `json:"fullFallMultiplier" yaml:"fullFallMultiplier"`
	HalfFallMultiplier float64 `json:"halfFallMultiplier" yaml:"halfFallMultiplier"`
	ExtraJumps         int     `json:"extraJumps" yaml:"extraJumps"`
	BufferWindow       float64 `json:"bufferWindow" yaml:"bufferWindow"`
	CoyoteWindow       float64 `json:"coyoteWindow" yaml:"coyoteWindow"`
}

type DashConfig struct {
	Force        float64 `json:"force" yaml:"force"`
	BufferWindow float64 `json:"bufferWindow" yaml:"bufferWindow"`
	Mode         string  `json:"mode" yaml:"mode"` // "position" or "direction"
}

// ContactConfig configures ground and wall sensing
type ContactConfig struct {
	GroundNormal      float64 `json:"groundNormal" yaml:"groundNormal"` // min normal Y to count as ground
	WallNormal        float64 `json:"wallNormal" yaml:"wallNormal"`     // min |normal X| to count as wall
	WallSuppressAfter float64 `json:"wallSuppressAfterJump" yaml:"wallSuppressAfterJump"`
}

// DefaultPhysicsConfig returns the authored defaults
func DefaultPhysicsConfig() *PhysicsConfig {
	m := entity.DefaultMovementConfig()
	return &PhysicsConfig{
		Display: DisplayConfig{
			ScreenWidth:   640,
			ScreenHeight:  360,
			Scale:         2,
			Framerate:     60,
			PixelsPerUnit: 20,
		},
		World: WorldConfig{
			Gravity:     9.81,
			FixedStep:   0.02,
			MaxSubsteps: 5,
			Iterations:  10,
		},
		Movement: MovementConfig{
			Acceleration: m.Acceleration,
			MaxSpeed:     m.MaxSpeed,
			GroundDrag:   m.GroundDrag,
		},
		Jump: JumpConfig{
			Height:             m.JumpHeight,
			AirDrag:            m.AirDrag,
			FullFallMultiplier: m.FullFallMultiplier,
			HalfFallMultiplier: m.HalfFallMultiplier,
			ExtraJumps:         m.ExtraJumpCount,
			BufferWindow:       m.JumpBufferWindow,
			CoyoteWindow:       m.CoyoteWindow,
		},
		Dash: DashConfig{
			Force:        m.DashForce,
			BufferWindow: m.DashBufferWindow,
			Mode:         m.DashMode.String(),
		},
		Contact: ContactConfig{
			GroundNormal:      0.5,
			WallNormal:        0.5,
			WallSuppressAfter: m.WallSuppressDuration,
		},
	}
}

// MovementTuning converts the tuning sections into a character MovementConfig.
func (c *PhysicsConfig) MovementTuning() (entity.MovementConfig, error) {
	mode, err := entity.ParseDashMode(c.Dash.Mode)
	if err != nil {
		return entity.MovementConfig{}, fmt.Errorf("%w: dash: %w", ErrInvalid, err)
	}

	m := entity.MovementConfig{
		Acceleration:         c.Movement.Acceleration,
		MaxSpeed:             c.Movement.MaxSpeed,
		GroundDrag:           c.Movement.GroundDrag,
		AirDrag:              c.Jump.AirDrag,
		JumpHeight:           c.Jump.Height,
		FullFallMultiplier:   c.Jump.FullFallMultiplier,
		HalfFallMultiplier:   c.Jump.HalfFallMultiplier,
		ExtraJumpCount:       c.Jump.ExtraJumps,
		DashForce:            c.Dash.Force,
		DashMode:             mode,
		JumpBufferWindow:     c.Jump.BufferWindow,
		CoyoteWindow:         c.Jump.CoyoteWindow,
		DashBufferWindow:     c.Dash.BufferWindow,
		WallSuppressDuration: c.Contact.WallSuppressAfter,
	}
	if err := m.Validate(); err != nil {
		return entity.MovementConfig{}, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return m, nil
}

// Validate checks every section and reports all problems at once.
func (c *PhysicsConfig) Validate() error {
	var errs []error
	if c.World.Gravity < 0 {
		errs = append(errs, fmt.Errorf("%w: world.gravity must be >= 0", ErrInvalid))
	}
	if c.World.FixedStep <= 0 {
		errs = append(errs, fmt.Errorf("%w: world.fixedStep must be > 0", ErrInvalid))
	}
	if c.World.MaxSubsteps < 1 {
		errs = append(errs, fmt.Errorf("%w: world.maxSubsteps must be >= 1", ErrInvalid))
	}
	if c.Display.Framerate <= 0 {
		errs = append(errs, fmt.Errorf("%w: display.framerate must be > 0", ErrInvalid))
	}
	if _, err := c.MovementTuning(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
