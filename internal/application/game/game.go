// Package game adapts a Scene to ebiten.Game.
package game

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/younwookim/mover/internal/application/scene"
)

const defaultTPS = 60

// Game runs one scene at a time and forwards ebiten's callbacks to it.
// Each Update hands the scene a fixed frame time of 1/TPS seconds.
type Game struct {
	current  scene.Scene
	width    int
	height   int
	frameDT  float64
	logger   *log.Logger
	ticks    uint64
	finished bool
}

// New wraps first and enters it immediately.
func New(first scene.Scene, width, height int) *Game {
	g := &Game{
		current: first,
		width:   width,
		height:  height,
		frameDT: 1.0 / defaultTPS,
		logger:  log.Default(),
	}
	first.OnEnter()
	return g
}

// Update advances the current scene by one frame. ebiten.Termination from
// the scene exits the current scene before it is passed on.
func (g *Game) Update() error {
	if g.finished {
		return ebiten.Termination
	}

	next, err := g.current.Update(g.frameDT)
	g.ticks++
	if errors.Is(err, ebiten.Termination) {
		g.Close()
		return err
	}
	if err != nil {
		return fmt.Errorf("tick %d: %w", g.ticks, err)
	}

	if next != nil {
		g.switchTo(next)
	}
	return nil
}

func (g *Game) switchTo(next scene.Scene) {
	g.logger.Debug("switching scene", "from", fmt.Sprintf("%T", g.current), "to", fmt.Sprintf("%T", next), "tick", g.ticks)
	g.current.OnExit()
	g.current = next
	next.OnEnter()
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.current.Draw(screen)
}

// Layout keeps the logical screen fixed; ebiten scales it to the window.
func (g *Game) Layout(_, _ int) (int, int) {
	return g.width, g.height
}

// Close exits the current scene once. Later calls do nothing.
func (g *Game) Close() {
	if g.finished {
		return
	}
	g.finished = true
	g.current.OnExit()
}

// SetDT overrides the frame time handed to the scene.
func (g *Game) SetDT(dt float64) {
	g.frameDT = dt
}

// SetFramerate sets the frame time to 1/fps. Non-positive rates are ignored.
func (g *Game) SetFramerate(fps int) {
	if fps > 0 {
		g.frameDT = 1.0 / float64(fps)
	}
}

func (g *Game) SetLogger(logger *log.Logger) {
	if logger != nil {
		g.logger = logger
	}
}

func (g *Game) Current() scene.Scene { return g.current }

// Ticks counts completed Update calls.
func (g *Game) Ticks() uint64 { return g.ticks }
