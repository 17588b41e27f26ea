// Package replay records per-frame input to JSON and plays it back, so a
// session can be rerun against new tuning.
package replay

import (
	"fmt"

	"github.com/younwookim/mover/internal/application/system"
)

// Version is written into every recording
const Version = "2.0"

// FrameInput is one frame of input. Field names are short to keep long
// recordings small.
type FrameInput struct {
	F   int     `json:"f"`
	DT  float64 `json:"dt"`
	L   bool    `json:"l,omitempty"`
	R   bool    `json:"r,omitempty"`
	U   bool    `json:"u,omitempty"`
	D   bool    `json:"d,omitempty"`
	J   bool    `json:"j,omitempty"`
	JP  bool    `json:"jp,omitempty"`
	JR  bool    `json:"jr,omitempty"`
	Dsh bool    `json:"dsh,omitempty"`
	AX  float64 `json:"ax"` // world units
	AY  float64 `json:"ay"`
}

func frameOf(n int, in system.InputState, dt float64) FrameInput {
	return FrameInput{
		F:   n,
		DT:  dt,
		L:   in.Left,
		R:   in.Right,
		U:   in.Up,
		D:   in.Down,
		J:   in.Jump,
		JP:  in.JumpPressed,
		JR:  in.JumpReleased,
		Dsh: in.Dash,
		AX:  in.AimX,
		AY:  in.AimY,
	}
}

// Input converts the frame back to controller input.
func (f FrameInput) Input() system.InputState {
	return system.InputState{
		Left:         f.L,
		Right:        f.R,
		Up:           f.U,
		Down:         f.D,
		Jump:         f.J,
		JumpPressed:  f.JP,
		JumpReleased: f.JR,
		Dash:         f.Dsh,
		AimX:         f.AX,
		AimY:         f.AY,
	}
}

// ReplayData is a whole recorded session.
type ReplayData struct {
	Version   string       `json:"version"`
	Stage     string       `json:"stage"` // stage ID
	StartTime string       `json:"startTime"`
	Frames    []FrameInput `json:"frames"`
}

// Duration is the sum of all frame times in seconds.
func (d ReplayData) Duration() float64 {
	var total float64
	for _, f := range d.Frames {
		total += f.DT
	}
	return total
}

func (d ReplayData) validate() error {
	for i, f := range d.Frames {
		if f.DT < 0 {
			return fmt.Errorf("frame %d: negative dt %v", i, f.DT)
		}
	}
	return nil
}
