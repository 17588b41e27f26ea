package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBufferedTrigger_StartsUnready(t *testing.T) {
	tr := NewBufferedTrigger(0.1)

	assert.False(t, tr.Ready())
	assert.True(t, tr.Expired())
	assert.Equal(t, NeverAge, tr.Age())
	assert.Equal(t, 0.1, tr.Window())
}

func TestBufferedTrigger_ArmAndAge(t *testing.T) {
	tr := NewBufferedTrigger(0.1)
	tr.Arm()
	assert.True(t, tr.Ready())

	tr.Tick(0.05)
	assert.True(t, tr.Ready())
	assert.InDelta(t, 0.05, tr.Age(), 1e-12)

	tr.Tick(0.05)
	assert.False(t, tr.Ready(), "age == window is outside the window")
}

func TestBufferedTrigger_Boundary(t *testing.T) {
	tests := []struct {
		name      string
		age       float64
		wantReady bool
	}{
		{"just inside", 0.1 - 1e-9, true},
		{"exactly on window", 0.1, false},
		{"past window", 0.2, false},
		{"fresh", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := NewBufferedTrigger(0.1)
			tr.Arm()
			tr.Tick(tt.age)
			assert.Equal(t, tt.wantReady, tr.Ready())
		})
	}
}

func TestBufferedTrigger_Consume(t *testing.T) {
	tr := NewBufferedTrigger(0.1)
	tr.Arm()
	tr.Consume()

	assert.False(t, tr.Ready())
	assert.False(t, tr.Expired(), "consumed trigger sits on the boundary")
	assert.Equal(t, 0.1, tr.Age())

	tr.Tick(0.001)
	assert.True(t, tr.Expired())

	tr.Arm()
	assert.True(t, tr.Ready(), "re-armable after a new event")
}

func TestBufferedTrigger_ZeroWindowNeverReady(t *testing.T) {
	tr := NewBufferedTrigger(0)
	tr.Arm()
	assert.False(t, tr.Ready())
}
