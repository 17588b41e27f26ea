package system

import "github.com/jakecoffman/cp"

// InputState holds one frame of device input, already mapped to actions.
type InputState struct {
	Left         bool
	Right        bool
	Up           bool
	Down         bool
	Jump         bool
	JumpPressed  bool
	JumpReleased bool
	Dash         bool
	AimX         float64 // world space
	AimY         float64
}

// MoveAxis converts the direction keys into a move vector.
func (in InputState) MoveAxis() cp.Vector {
	var v cp.Vector
	if in.Left {
		v.X--
	}
	if in.Right {
		v.X++
	}
	if in.Up {
		v.Y++
	}
	if in.Down {
		v.Y--
	}
	return v
}

// ApplyInput forwards one frame of input to the controller's input events.
func ApplyInput(c *Controller, in InputState) {
	c.OnMove(in.MoveAxis())
	c.OnAim(cp.Vector{X: in.AimX, Y: in.AimY})

	if in.JumpPressed {
		c.OnJumpPressed()
	}
	if in.JumpReleased {
		c.OnJumpReleased()
	}
	if in.Dash {
		c.OnDashRequested()
	}
}
