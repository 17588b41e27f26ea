package system

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/younwookim/mover/internal/domain/entity"
)

func TestFallGravityScale(t *testing.T) {
	cfg := entity.DefaultMovementConfig()

	tests := []struct {
		name string
		vy   float64
		rise float64
		held bool
		want float64
	}{
		{"falling", -1, 0, true, 8},
		{"rising held", 2, 1, true, 1},
		{"rising released", 2, 1, false, 5},
		{"past apex while held", 2, 4.1, true, 8},
		{"at apex height", 2, 4, true, 1},
		{"at rest", 0, 0, false, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FallGravityScale(cfg, tt.vy, tt.rise, tt.held))
		})
	}
}

func TestGroundDrag_ZeroInputOnStillBody(t *testing.T) {
	cfg := entity.DefaultMovementConfig()
	assert.Equal(t, cfg.GroundDrag, GroundDrag(cfg, 0, 0))
	assert.Equal(t, 0.0, GroundDrag(cfg, 0, -1))
}

func TestJumpSpeed(t *testing.T) {
	tests := []struct {
		name        string
		g, scale, h float64
		want        float64
	}{
		{"default tuning", 9.81, 8, 4, math.Sqrt(627.84)},
		{"unit", 1, 1, 0.5, 1},
		{"zero height", 9.81, 8, 0, 0},
		{"zero gravity", 0, 8, 4, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, JumpSpeed(tt.g, tt.scale, tt.h), 1e-9)
		})
	}
}
