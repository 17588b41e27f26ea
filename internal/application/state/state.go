// Package state holds the playground's run state machine.
package state

type GameState int

const (
	StatePlaying GameState = iota
	StatePaused
	StateDead
)

var names = [...]string{
	StatePlaying: "Playing",
	StatePaused:  "Paused",
	StateDead:    "Dead",
}

// next lists every allowed move. Pause only from play; death only ends in a
// restart.
var next = map[GameState][]GameState{
	StatePlaying: {StatePaused, StateDead},
	StatePaused:  {StatePlaying},
	StateDead:    {StatePlaying},
}

func (s GameState) String() string {
	if s < 0 || int(s) >= len(names) {
		return "Unknown"
	}
	return names[s]
}

// Simulating reports whether the world advances in this state.
func (s GameState) Simulating() bool {
	return s == StatePlaying
}

func (s GameState) CanTransition(to GameState) bool {
	for _, n := range next[s] {
		if n == to {
			return true
		}
	}
	return false
}
