package system

import (
	"github.com/charmbracelet/log"
	"github.com/jakecoffman/cp"

	"github.com/younwookim/mover/internal/domain/entity"
)

// PlayerLocator counts the players whose shapes overlap a box.
type PlayerLocator interface {
	PlayersIn(bb cp.BB) int
}

// ZoneSystem activates zones while a player stands in them and tells
// listeners about every change.
type ZoneSystem struct {
	zones        []*entity.Zone
	onActivate   func(*entity.Zone)
	onDeactivate func(*entity.Zone)
	logger       *log.Logger
}

// NewZoneSystem creates a zone system. A nil logger uses log.Default().
func NewZoneSystem(zones []*entity.Zone, logger *log.Logger) *ZoneSystem {
	if logger == nil {
		logger = log.Default()
	}
	return &ZoneSystem{zones: zones, logger: logger}
}

// OnActivate sets the listener for zones a player entered
func (s *ZoneSystem) OnActivate(fn func(*entity.Zone)) {
	s.onActivate = fn
}

// OnDeactivate sets the listener for zones every player left
func (s *ZoneSystem) OnDeactivate(fn func(*entity.Zone)) {
	s.onDeactivate = fn
}

// Zones returns the managed zones
func (s *ZoneSystem) Zones() []*entity.Zone {
	return s.zones
}

// Update re-evaluates every zone. Listeners only run on a change.
func (s *ZoneSystem) Update(players PlayerLocator) {
	for _, z := range s.zones {
		active := players.PlayersIn(z.Bounds) > 0
		if !z.SetActive(active) {
			continue
		}

		if active {
			s.logger.Debug("zone activated", "zone", z.ID, "spawns", len(z.Spawns))
			if s.onActivate != nil {
				s.onActivate(z)
			}
		} else {
			s.logger.Debug("zone deactivated", "zone", z.ID)
			if s.onDeactivate != nil {
				s.onDeactivate(z)
			}
		}
	}
}

// Reset deactivates every zone, notifying listeners for the active ones.
func (s *ZoneSystem) Reset() {
	for _, z := range s.zones {
		if z.SetActive(false) && s.onDeactivate != nil {
			s.onDeactivate(z)
		}
	}
}
