package system

import (
	"github.com/jakecoffman/cp"

	"github.com/younwookim/mover/internal/domain/entity"
)

// Intent reports something the controller did to its body during one fixed
// step. Intents are for observers such as the headless simulator.
type Intent interface {
	Entity() entity.EntityID
}

// MoveIntent is the horizontal force applied this step. Clamped is set when
// the velocity was capped at max speed.
type MoveIntent struct {
	EntityID entity.EntityID
	Force    cp.Vector
	Clamped  bool
}

// JumpIntent is a jump launch at Speed along Direction.
type JumpIntent struct {
	EntityID  entity.EntityID
	Direction cp.Vector
	Speed     float64
}

// DashIntent is a dash burst; Direction has unit length.
type DashIntent struct {
	EntityID  entity.EntityID
	Direction cp.Vector
	Force     float64
}

func (i MoveIntent) Entity() entity.EntityID { return i.EntityID }
func (i JumpIntent) Entity() entity.EntityID { return i.EntityID }
func (i DashIntent) Entity() entity.EntityID { return i.EntityID }
