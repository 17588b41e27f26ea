// Package scene defines the Scene interface for screens driven by game.Game.
package scene

import "github.com/hajimehoshi/ebiten/v2"

// Scene is one screen of the application, such as the movement playground.
//
// game.Game forwards ebiten's Update and Draw to the current scene and swaps
// scenes when Update returns a non-nil next scene.
type Scene interface {
	// Update advances the scene by dt seconds (one tick, 1/TPS).
	// Returns the next scene to switch to, or nil to stay.
	// A non-nil error stops the game.
	Update(dt float64) (next Scene, err error)

	// Draw renders the scene to the screen.
	Draw(screen *ebiten.Image)

	// OnEnter is called each time the scene becomes current.
	OnEnter()

	// OnExit is called when the scene is replaced or the game stops,
	// e.g. to flush a recording.
	OnExit()
}
