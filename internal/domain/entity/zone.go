package entity

import "github.com/jakecoffman/cp"

// ZoneSpawn is an entity a zone brings into the world while it is active.
type ZoneSpawn struct {
	Kind     string
	Position cp.Vector
}

// Zone is an area that switches a fixed set of entities on while a player
// stands inside it.
type Zone struct {
	ID     string
	Bounds cp.BB
	Spawns []ZoneSpawn

	active bool
}

// Active returns true while a player overlaps the zone
func (z *Zone) Active() bool {
	return z.active
}

// SetActive latches the new activity and reports whether it changed.
func (z *Zone) SetActive(active bool) bool {
	if z.active == active {
		return false
	}
	z.active = active
	return true
}
