package game

import (
	"errors"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/mover/internal/application/scene"
)

// fakeScene appends every callback it receives to a shared journal so tests
// can check ordering across scenes.
type fakeScene struct {
	name    string
	journal *[]string
	dts     []float64
	next    scene.Scene
	err     error
}

func (f *fakeScene) Update(dt float64) (scene.Scene, error) {
	f.dts = append(f.dts, dt)
	*f.journal = append(*f.journal, f.name+".update")
	next := f.next
	f.next = nil
	return next, f.err
}

func (f *fakeScene) Draw(*ebiten.Image) { *f.journal = append(*f.journal, f.name+".draw") }
func (f *fakeScene) OnEnter() { *f.journal = append(*f.journal, f.name+".enter") }
func (f *fakeScene) OnExit() { *f.journal = append(*f.journal, f.name+".exit") }

func newFakes(names ...string) ([]*fakeScene, *[]string) {
	journal := &[]string{}
	out := make([]*fakeScene, len(names))
	for i, n := range names {
		out[i] = &fakeScene{name: n, journal: journal}
	}
	return out, journal
}

func newTestGame(first scene.Scene) *Game {
	g := New(first, 320, 240)
	g.SetLogger(log.New(io.Discard))
	return g
}

func TestNew_EntersFirstScene(t *testing.T) {
	s, journal := newFakes("play")
	g := newTestGame(s[0])

	assert.Equal(t, []string{"play.enter"}, *journal)
	assert.Same(t, s[0], g.Current())
	assert.Zero(t, g.Ticks())
}

func TestGame_SwitchOrder(t *testing.T) {
	s, journal := newFakes("play", "menu")
	s[0].next = s[1]
	g := newTestGame(s[0])

	require.NoError(t, g.Update())
	require.NoError(t, g.Update())
	g.Draw(ebiten.NewImage(8, 8))

	assert.Equal(t, []string{
		"play.enter",
		"play.update", "play.exit", "menu.enter",
		"menu.update",
		"menu.draw",
	}, *journal)
	assert.Same(t, s[1], g.Current())
	assert.Equal(t, uint64(2), g.Ticks())
}

func TestGame_FrameTime(t *testing.T) {
	tests := []struct {
		name  string
		setup func(g *Game)
		want  float64
	}{
		{"default 60 tps", func(*Game) {}, 1.0 / 60.0},
		{"50 tps matches fixed step", func(g *Game) { g.SetFramerate(50) }, 0.02},
		{"zero framerate ignored", func(g *Game) { g.SetFramerate(0) }, 1.0 / 60.0},
		{"explicit dt", func(g *Game) { g.SetDT(0.5) }, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newFakes("play")
			g := newTestGame(s[0])
			tt.setup(g)

			require.NoError(t, g.Update())
			assert.InDelta(t, tt.want, s[0].dts[0], 1e-12)
		})
	}
}

func TestGame_UpdateErrorCarriesTick(t *testing.T) {
	s, journal := newFakes("play")
	g := newTestGame(s[0])

	require.NoError(t, g.Update())
	s[0].err = assert.AnError

	err := g.Update()
	require.ErrorIs(t, err, assert.AnError)
	assert.Contains(t, err.Error(), "tick 2")
	assert.NotContains(t, *journal, "play.exit", "a failing scene is not exited")
}

func TestGame_Termination(t *testing.T) {
	s, journal := newFakes("play")
	g := newTestGame(s[0])
	s[0].err = ebiten.Termination

	err := g.Update()
	assert.True(t, errors.Is(err, ebiten.Termination))
	assert.Equal(t, []string{"play.enter", "play.update", "play.exit"}, *journal)

	// Further ticks and Close do not reach the scene again.
	assert.ErrorIs(t, g.Update(), ebiten.Termination)
	g.Close()
	assert.Len(t, s[0].dts, 1)
	assert.Equal(t, 1, countOf(*journal, "play.exit"))
}

func TestGame_CloseOnce(t *testing.T) {
	s, journal := newFakes("play")
	g := newTestGame(s[0])

	g.Close()
	g.Close()
	assert.Equal(t, 1, countOf(*journal, "play.exit"))
}

func TestGame_Layout(t *testing.T) {
	s, _ := newFakes("play")
	g := newTestGame(s[0])

	w, h := g.Layout(1280, 960)
	assert.Equal(t, 320, w)
	assert.Equal(t, 240, h)
}

func TestGame_SetLoggerNil(t *testing.T) {
	s, _ := newFakes("play", "menu")
	g := newTestGame(s[0])
	g.SetLogger(nil)

	s[0].next = s[1]
	assert.NotPanics(t, func() { _ = g.Update() })
}

func countOf(xs []string, want string) int {
	n := 0
	for _, x := range xs {
		if x == want {
			n++
		}
	}
	return n
}
