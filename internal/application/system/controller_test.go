package system

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/mover/internal/domain/entity"
)

const frame = 0.02

func TestNewController(t *testing.T) {
	t.Run("rejects nil body", func(t *testing.T) {
		_, err := NewController(1, entity.DefaultMovementConfig(), nil, nil, testGravity, nil)
		assert.Error(t, err)
	})

	t.Run("rejects invalid tuning", func(t *testing.T) {
		cfg := entity.DefaultMovementConfig()
		cfg.ExtraJumpCount = 0
		_, err := NewController(1, cfg, newFakeBody(), nil, testGravity, nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, entity.ErrInvalidMovement)
	})

	t.Run("starts facing right at neutral gravity", func(t *testing.T) {
		body := newFakeBody()
		body.pos = cp.Vector{X: 3, Y: 2}
		body.gravityScale = 7

		c, err := NewController(9, entity.DefaultMovementConfig(), body, nil, testGravity, nil)
		require.NoError(t, err)

		assert.Equal(t, entity.EntityID(9), c.ID())
		assert.Equal(t, 1.0, body.gravityScale)
		assert.True(t, c.State().FacingRight)
		assert.Equal(t, body.pos, c.State().Aim)
	})
}

func TestController_Facing(t *testing.T) {
	c, body, _ := newTestController(t, entity.DefaultMovementConfig())
	body.pos = cp.Vector{X: 5, Y: 0}

	c.OnAim(cp.Vector{X: 2, Y: 0})
	c.Update(frame)
	assert.False(t, c.State().FacingRight)

	// Aiming straight above keeps the last facing
	c.OnAim(cp.Vector{X: 5, Y: 10})
	c.Update(frame)
	assert.False(t, c.State().FacingRight)

	c.OnAim(cp.Vector{X: 8, Y: 0})
	c.Update(frame)
	assert.True(t, c.State().FacingRight)
}

func TestController_GroundedFrameResetsAirborneState(t *testing.T) {
	cfg := entity.DefaultMovementConfig()
	cfg.ExtraJumpCount = 2
	c, _, contacts := newTestController(t, cfg)

	c.state.JumpsCounted = 2
	c.state.IsDashing = true
	contacts.grounded = true
	c.Update(frame)

	s := c.State()
	assert.True(t, s.IsGrounded)
	assert.Equal(t, 0, s.JumpsCounted)
	assert.False(t, s.IsDashing)
	assert.True(t, s.Coyote.Ready())
	assert.InDelta(t, frame, s.Coyote.Age(), 1e-12)
}

func TestController_JumpCountStaysWithinBudget(t *testing.T) {
	for _, extra := range []int{1, 2, 3} {
		cfg := entity.DefaultMovementConfig()
		cfg.ExtraJumpCount = extra
		c, body, contacts := newTestController(t, cfg)

		for i := 0; i < 400; i++ {
			contacts.grounded = (i/40)%2 == 0
			if i%5 == 0 {
				c.OnJumpPressed()
			}
			if i%5 == 2 {
				c.OnJumpReleased()
			}

			c.Update(frame)
			if contacts.grounded {
				require.Equal(t, 0, c.State().JumpsCounted, "grounded frame %d", i)
			}
			c.FixedUpdate()
			require.GreaterOrEqual(t, c.State().JumpsCounted, 0)
			require.LessOrEqual(t, c.State().JumpsCounted, extra, "frame %d", i)
			body.step(frame)
		}
	}
}

func TestController_DoubleJump(t *testing.T) {
	cfg := entity.DefaultMovementConfig()
	cfg.ExtraJumpCount = 2
	c, body, contacts := newTestController(t, cfg)

	contacts.grounded = true
	c.OnJumpPressed()
	c.Update(frame)
	intents := c.FixedUpdate()
	require.Len(t, intents, 1)
	assert.IsType(t, JumpIntent{}, intents[0])
	assert.Equal(t, 1, c.State().JumpsCounted)

	contacts.grounded = false
	for i := 0; i < 10; i++ {
		body.step(frame)
		c.Update(frame)
		c.FixedUpdate()
	}

	c.OnJumpPressed()
	c.Update(frame)
	require.Len(t, c.FixedUpdate(), 1)
	assert.Equal(t, 2, c.State().JumpsCounted)

	c.OnJumpPressed()
	c.Update(frame)
	assert.Empty(t, c.FixedUpdate(), "budget spent")
	assert.Equal(t, 2, c.State().JumpsCounted)
}

func TestController_LedgeJumpAfterCoyoteTime(t *testing.T) {
	cfg := entity.DefaultMovementConfig()
	cfg.ExtraJumpCount = 2
	c, _, contacts := newTestController(t, cfg)

	contacts.grounded = true
	c.Update(frame)

	// Walk off the ledge and stay airborne well past the coyote window
	contacts.grounded = false
	for i := 0; i < 15; i++ {
		c.Update(frame)
	}
	require.True(t, c.State().Coyote.Expired())
	require.Equal(t, 0, c.State().JumpsCounted)

	c.OnJumpPressed()
	c.Update(frame)
	intents := c.FixedUpdate()
	require.Len(t, intents, 1)
	assert.Equal(t, cfg.ExtraJumpCount, c.State().JumpsCounted)

	c.OnJumpPressed()
	c.Update(frame)
	assert.Empty(t, c.FixedUpdate(), "only one jump is granted after the ledge")
}

func TestController_LedgeGrantWithSingleJump(t *testing.T) {
	c, _, contacts := newTestController(t, entity.DefaultMovementConfig())

	contacts.grounded = true
	c.Update(frame)
	contacts.grounded = false
	for i := 0; i < 15; i++ {
		c.Update(frame)
	}

	c.OnJumpPressed()
	c.Update(frame)
	assert.False(t, c.canJump(), "single jump needs coyote time")

	// A direct launch still succeeds and spends the whole budget
	c.jump(c.cfg.JumpHeight, jumpDirection)
	assert.Equal(t, 1, c.State().JumpsCounted)
}

func TestController_JumpBufferWindowBoundary(t *testing.T) {
	tests := []struct {
		name    string
		elapsed float64
		jumps   bool
	}{
		{"fresh press", 0, true},
		{"just inside window", 0.1 - 1e-9, true},
		{"exactly on window", 0.1, false},
		{"past window", 0.15, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := entity.DefaultMovementConfig()
			cfg.ExtraJumpCount = 2
			c, _, contacts := newTestController(t, cfg)
			contacts.grounded = true

			c.OnJumpPressed()
			c.Update(tt.elapsed)
			intents := c.FixedUpdate()

			if tt.jumps {
				require.Len(t, intents, 1)
				assert.IsType(t, JumpIntent{}, intents[0])
			} else {
				assert.Empty(t, intents)
			}
		})
	}
}

func TestController_GroundDragThreshold(t *testing.T) {
	tests := []struct {
		name  string
		vx    float64
		input float64
		want  float64
	}{
		{"idle", 0, 0, 20},
		{"below threshold", 0, 0.39, 20},
		{"below threshold left", 0, -0.39, 20},
		{"at threshold", 0, 0.4, 0},
		{"full input with motion", 5, 1, 0},
		{"turning around", 5, -1, 20},
		{"turning around left", -5, 0.5, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, body, contacts := newTestController(t, entity.DefaultMovementConfig())
			contacts.grounded = true
			body.vel = cp.Vector{X: tt.vx}

			c.OnMove(cp.Vector{X: tt.input})
			c.Update(frame)

			assert.Equal(t, tt.want, c.State().Drag)
			assert.Equal(t, tt.want, body.drag)
		})
	}
}

func TestController_RunRampsToMaxSpeed(t *testing.T) {
	c, body, contacts := newTestController(t, entity.DefaultMovementConfig())
	contacts.grounded = true
	c.OnMove(cp.Vector{X: 1})

	var samples []float64
	for i := 0; i < 100; i++ {
		c.Update(frame)
		before := body.vel.Y
		c.FixedUpdate()
		assert.Equal(t, before, body.vel.Y, "clamp leaves vertical velocity alone")

		samples = append(samples, body.vel.X)
		require.LessOrEqual(t, math.Abs(body.vel.X), 12.0)
		body.step(frame)
	}

	for i := 1; i < len(samples); i++ {
		assert.GreaterOrEqual(t, samples[i], samples[i-1])
	}
	for _, v := range samples[len(samples)-50:] {
		assert.Equal(t, 12.0, v)
	}
}

func TestController_MoveClamp(t *testing.T) {
	c, body, _ := newTestController(t, entity.DefaultMovementConfig())

	t.Run("caps both directions keeping sign", func(t *testing.T) {
		body.vel = cp.Vector{X: -30, Y: 4}
		c.OnMove(cp.Vector{X: -1})
		intent := c.move()

		assert.True(t, intent.Clamped)
		assert.Equal(t, cp.Vector{X: -12, Y: 4}, body.vel)
		assert.Equal(t, cp.Vector{X: -70}, intent.Force)
	})

	t.Run("clamping twice changes nothing", func(t *testing.T) {
		body.vel = cp.Vector{X: 30, Y: -2}
		c.OnMove(cp.Vector{X: 1})
		c.move()
		first := body.vel
		c.move()
		assert.Equal(t, first, body.vel)
	})

	t.Run("under the cap is untouched", func(t *testing.T) {
		body.vel = cp.Vector{X: 3, Y: 1}
		intent := c.move()
		assert.False(t, intent.Clamped)
		assert.Equal(t, cp.Vector{X: 3, Y: 1}, body.vel)
	})
}

func TestController_NoInputNoMoveIntent(t *testing.T) {
	c, body, contacts := newTestController(t, entity.DefaultMovementConfig())
	contacts.grounded = true
	c.OnMove(cp.Vector{Y: 1})
	c.Update(frame)

	assert.Empty(t, c.FixedUpdate())
	assert.Equal(t, cp.Vector{}, body.force)
}

func TestController_JumpLaunchSpeed(t *testing.T) {
	for _, mass := range []float64{1, 2.5} {
		c, body, contacts := newTestController(t, entity.DefaultMovementConfig())
		body.mass = mass
		body.vel = cp.Vector{X: 3, Y: -6}
		contacts.grounded = true

		c.OnJumpPressed()
		c.Update(frame)
		intents := c.FixedUpdate()
		require.Len(t, intents, 1)

		want := math.Sqrt(2 * testGravity * 8 * 4)
		jump := intents[0].(JumpIntent)
		assert.InDelta(t, want, jump.Speed, 1e-9)
		assert.InDelta(t, want, body.vel.Y, 1e-9, "falling speed is cancelled first")
		assert.Equal(t, 3.0, body.vel.X)
	}
}

func TestController_JumpSideEffects(t *testing.T) {
	c, body, contacts := newTestController(t, entity.DefaultMovementConfig())
	body.pos = cp.Vector{X: 1, Y: 2}
	contacts.grounded = true

	c.OnJumpPressed()
	c.Update(frame)
	c.FixedUpdate()

	s := c.State()
	assert.Equal(t, cp.Vector{X: 1, Y: 2}, s.LastJumpPosition)
	assert.False(t, s.JumpBuffer.Ready())
	assert.False(t, s.Coyote.Ready())
	assert.Equal(t, 2.5, body.drag)
	assert.Equal(t, 8.0, body.gravityScale)
	assert.Equal(t, []float64{0.1}, contacts.suppressed)
}

func TestController_FallGravityTiers(t *testing.T) {
	c, body, _ := newTestController(t, entity.DefaultMovementConfig())
	body.vel = cp.Vector{Y: 6}

	rising := true
	for i := 0; i < 100; i++ {
		c.Update(frame)
		switch {
		case body.vel.Y > 0:
			require.True(t, rising, "no second rise")
			assert.Equal(t, 5.0, body.gravityScale, "released jump rises on half gravity")
		case body.vel.Y < 0:
			rising = false
			assert.Equal(t, 8.0, body.gravityScale)
		}
		body.step(frame)
	}
	assert.False(t, rising)
}

func TestController_HeldJumpRisesOnNeutralGravity(t *testing.T) {
	c, body, _ := newTestController(t, entity.DefaultMovementConfig())
	c.state.JumpHeld = true
	body.vel = cp.Vector{Y: 6}

	c.Update(frame)
	assert.Equal(t, 1.0, body.gravityScale)

	// Past the intended apex the full multiplier wins
	body.pos = cp.Vector{Y: 4.5}
	c.Update(frame)
	assert.Equal(t, 8.0, body.gravityScale)
}

func TestController_DashPreemptsJump(t *testing.T) {
	c, body, contacts := newTestController(t, entity.DefaultMovementConfig())
	contacts.grounded = true

	c.OnMove(cp.Vector{X: 1})
	c.OnAim(cp.Vector{X: 3, Y: 4})
	c.OnJumpPressed()
	c.OnDashRequested()
	c.Update(frame)

	intents := c.FixedUpdate()
	require.Len(t, intents, 1)
	dash, ok := intents[0].(DashIntent)
	require.True(t, ok)
	assert.InDelta(t, 0.6, dash.Direction.X, 1e-12)
	assert.InDelta(t, 0.8, dash.Direction.Y, 1e-12)
	assert.InDelta(t, 9.0, body.vel.X, 1e-12)
	assert.InDelta(t, 12.0, body.vel.Y, 1e-12)
	assert.Equal(t, 0.0, body.gravityScale)
	assert.Equal(t, 0.0, body.drag)
	assert.Equal(t, 0, c.State().JumpsCounted)

	// Dashing blocks every other action until the ground clears it
	assert.Empty(t, c.FixedUpdate())
	assert.True(t, c.State().JumpBuffer.Ready())
}

func TestController_DashBufferSurvivesDash(t *testing.T) {
	c, _, _ := newTestController(t, entity.DefaultMovementConfig())

	c.OnDashRequested()
	c.Update(frame)
	require.Len(t, c.FixedUpdate(), 1)
	assert.True(t, c.State().DashBuffer.Ready())
	assert.True(t, c.State().IsDashing)
	assert.Empty(t, c.FixedUpdate())
}

func TestController_AirborneFrameAfterDashRestoresShaping(t *testing.T) {
	c, body, _ := newTestController(t, entity.DefaultMovementConfig())

	c.OnDashRequested()
	c.Update(frame)
	c.FixedUpdate()
	body.step(frame)

	c.Update(frame)
	assert.Equal(t, 2.5, body.drag)
	assert.NotEqual(t, 0.0, body.gravityScale)
}

func TestController_DashDirection(t *testing.T) {
	tests := []struct {
		name  string
		mode  entity.DashMode
		move  cp.Vector
		aim   cp.Vector
		right bool
		want  cp.Vector
	}{
		{"along input", entity.DashAlongInput, cp.Vector{X: -1, Y: 1}, cp.Vector{}, true, cp.Vector{X: -math.Sqrt2 / 2, Y: math.Sqrt2 / 2}},
		{"no input dashes facing right", entity.DashAlongInput, cp.Vector{}, cp.Vector{}, true, cp.Vector{X: 1}},
		{"no input dashes facing left", entity.DashAlongInput, cp.Vector{}, cp.Vector{}, false, cp.Vector{X: -1}},
		{"toward target", entity.DashTowardTarget, cp.Vector{}, cp.Vector{X: 0, Y: -5}, true, cp.Vector{Y: -1}},
		{"target on body", entity.DashTowardTarget, cp.Vector{X: 1}, cp.Vector{}, false, cp.Vector{X: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := entity.DefaultMovementConfig()
			cfg.DashMode = tt.mode
			c, body, _ := newTestController(t, cfg)

			c.state.FacingRight = tt.right
			c.state.Move = tt.move
			c.state.Aim = tt.aim
			c.state.DashBuffer.Arm()

			intents := c.FixedUpdate()
			require.Len(t, intents, 1)
			dash := intents[0].(DashIntent)
			assert.InDelta(t, tt.want.X, dash.Direction.X, 1e-12)
			assert.InDelta(t, tt.want.Y, dash.Direction.Y, 1e-12)
			assert.InDelta(t, 1.0, dash.Direction.Length(), 1e-12)
			assert.InDelta(t, tt.want.X*15, body.vel.X, 1e-9)
			assert.InDelta(t, tt.want.Y*15, body.vel.Y, 1e-9)
		})
	}
}

func TestController_NilContactsIsAirborne(t *testing.T) {
	c, err := NewController(1, entity.DefaultMovementConfig(), newFakeBody(), nil, testGravity, quietLogger())
	require.NoError(t, err)

	c.OnJumpPressed()
	c.Update(frame)
	assert.False(t, c.State().IsGrounded)
	assert.Empty(t, c.FixedUpdate())
}
