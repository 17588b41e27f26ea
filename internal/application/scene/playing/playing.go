// Package playing provides the movement playground scene.
package playing

import (
	"fmt"
	"image/color"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"

	"github.com/younwookim/mover/internal/application/replay"
	"github.com/younwookim/mover/internal/application/scene"
	"github.com/younwookim/mover/internal/application/state"
	"github.com/younwookim/mover/internal/application/system"
	"github.com/younwookim/mover/internal/domain/entity"
	"github.com/younwookim/mover/internal/ecs"
	"github.com/younwookim/mover/internal/infrastructure/config"
)

// Colors for rendering
var (
	colorWall      = color.RGBA{80, 80, 100, 255}
	colorSpike     = color.RGBA{200, 50, 50, 255}
	colorPlayer    = color.RGBA{100, 200, 100, 255}
	colorDead      = color.RGBA{220, 40, 40, 255}
	colorDashing   = color.RGBA{120, 220, 255, 255}
	colorSpawned   = color.RGBA{200, 100, 100, 255}
	colorStatic    = color.RGBA{160, 120, 60, 255}
	colorZone      = color.RGBA{100, 100, 200, 128}
	colorZoneOn    = color.RGBA{200, 200, 100, 200}
	colorAim       = color.RGBA{255, 255, 255, 80}
	colorBG        = color.RGBA{26, 26, 46, 255}
	colorHealthBG  = color.RGBA{60, 60, 60, 255}
	colorHealthFG  = color.RGBA{100, 200, 100, 255}
	colorOverlay   = color.RGBA{0, 0, 0, 150}
	colorDeadShade = color.RGBA{80, 0, 0, 150}
)

// InputFunc reads one frame of input. cam is the world position of the
// bottom-left corner of the view, used to map the cursor into the world.
type InputFunc func(p *Playing, cam cp.Vector) system.InputState

// Playing is the movement playground: one player on one stage
type Playing struct {
	config   *config.GameConfig
	stageCfg *config.StageConfig
	world    *ecs.World
	playerID entity.EntityID
	state    state.GameState
	screenW  int
	screenH  int
	ppu      float64 // pixels per world unit
	dt       float64
	logger   *log.Logger

	input   InputFunc
	reloads chan *config.PhysicsConfig

	// Input recording
	recorder       *replay.Recorder
	recordFilename string
}

// New creates a new Playing scene on stageCfg.
// If recordPath is not empty, gameplay will be recorded.
func New(cfg *config.GameConfig, stageCfg *config.StageConfig, recordPath string, logger *log.Logger) (*Playing, error) {
	if logger == nil {
		logger = log.Default()
	}

	world, err := ecs.NewWorld(cfg.Physics, cfg.Entities, logger)
	if err != nil {
		return nil, err
	}
	stage := system.LoadStage(stageCfg)
	world.LoadStage(stage)

	playerID, err := world.CreatePlayer(stage.Spawn, cfg.Entities.Player)
	if err != nil {
		return nil, err
	}

	display := cfg.Physics.Display
	p := &Playing{
		config:         cfg,
		stageCfg:       stageCfg,
		world:          world,
		playerID:       playerID,
		state:          state.StatePlaying,
		screenW:        display.ScreenWidth,
		screenH:        display.ScreenHeight,
		ppu:            display.PixelsPerUnit,
		dt:             1.0 / float64(max(display.Framerate, 1)),
		logger:         logger,
		input:          pollInput,
		reloads:        make(chan *config.PhysicsConfig, 1),
		recordFilename: recordPath,
	}
	if p.ppu <= 0 {
		p.ppu = 1
	}

	world.Health[playerID].OnDeath(func() {
		p.setState(state.StateDead)
	})

	if recordPath != "" {
		p.recorder = replay.NewRecorder(stageCfg.ID)
		logger.Info("recording enabled", "path", recordPath)
	}

	return p, nil
}

// World returns the simulated world
func (p *Playing) World() *ecs.World {
	return p.world
}

// PlayerID returns the controlled player
func (p *Playing) PlayerID() entity.EntityID {
	return p.playerID
}

// State returns the playground state
func (p *Playing) State() state.GameState {
	return p.state
}

// SetInput replaces the input source.
func (p *Playing) SetInput(fn InputFunc) {
	p.input = fn
}

// QueueReload hands a new physics config to the scene. It is safe to call
// from another goroutine; the config is applied on the next Update and only
// the newest pending config is kept.
func (p *Playing) QueueReload(cfg *config.PhysicsConfig) {
	for {
		select {
		case p.reloads <- cfg:
			return
		default:
		}
		select {
		case <-p.reloads:
		default:
		}
	}
}

// Reload applies new movement tuning and respawns the player with a fresh
// controller. Display and world settings only apply on the next start.
func (p *Playing) Reload(cfg *config.PhysicsConfig) error {
	tuning, err := cfg.MovementTuning()
	if err != nil {
		return err
	}
	if err := p.world.ResetPlayer(p.playerID, p.world.Stage().Spawn, tuning); err != nil {
		return err
	}
	p.config.Physics = cfg
	if p.state != state.StatePlaying {
		p.setState(state.StatePlaying)
	}
	p.logger.Info("physics reloaded",
		"maxSpeed", tuning.MaxSpeed,
		"jumpHeight", tuning.JumpHeight,
		"extraJumps", tuning.ExtraJumpCount,
		"dash", tuning.DashMode)
	return nil
}

// Update proceeds the playground (implements scene.Scene)
func (p *Playing) Update(dt float64) (scene.Scene, error) {
	if dt <= 0 {
		dt = p.dt
	}
	p.applyPendingReload()

	switch p.state {
	case state.StatePlaying:
		if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
			p.setState(state.StatePaused)
			return nil, nil
		}
		// F5: Save recording manually
		if inpututil.IsKeyJustPressed(ebiten.KeyF5) {
			p.saveRecording()
		}
		p.step(p.input(p, p.camera()), dt)
	case state.StatePaused:
		if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
			p.setState(state.StatePlaying)
		}
	case state.StateDead:
		if inpututil.IsKeyJustPressed(ebiten.KeyZ) || inpututil.IsKeyJustPressed(ebiten.KeyR) {
			p.restart()
		}
	}

	return nil, nil // nil = stay on this scene
}

// step runs one frame of simulation with in.
func (p *Playing) step(in system.InputState, dt float64) {
	if !p.state.Simulating() {
		return
	}
	if p.recorder != nil {
		p.recorder.RecordFrame(in, dt)
	}
	system.ApplyInput(p.world.Controller[p.playerID], in)
	p.world.Step(dt)

	// Auto-save recording on death
	if p.state == state.StateDead {
		p.saveRecording()
	}
}

func (p *Playing) applyPendingReload() {
	select {
	case cfg := <-p.reloads:
		if err := p.Reload(cfg); err != nil {
			p.logger.Error("failed to reload physics", "err", err)
		}
	default:
	}
}

func (p *Playing) setState(next state.GameState) {
	if !p.state.CanTransition(next) {
		p.logger.Debug("state change ignored", "from", p.state, "to", next)
		return
	}
	p.logger.Debug("state change", "from", p.state, "to", next)
	p.state = next
}

func (p *Playing) restart() {
	if err := p.world.ResetPlayer(p.playerID, p.world.Stage().Spawn, p.world.Tuning()); err != nil {
		p.logger.Error("failed to restart", "err", err)
		return
	}
	p.setState(state.StatePlaying)

	// Reset recorder if recording
	if p.recordFilename != "" {
		p.recorder = replay.NewRecorder(p.stageCfg.ID)
		p.logger.Info("recording restarted")
	}
}

// saveRecording saves the current recording to file
func (p *Playing) saveRecording() {
	if p.recorder == nil {
		return
	}

	filename := p.recordFilename
	if filename == "" {
		filename = replay.GenerateFilename()
	}

	if err := p.recorder.Save(filename); err != nil {
		p.logger.Error("failed to save recording", "err", err)
		return
	}
	p.logger.Info("recording saved", "path", filename, "frames", p.recorder.FrameCount())
}

// pollInput reads keyboard and mouse through ebiten.
func pollInput(p *Playing, cam cp.Vector) system.InputState {
	mx, my := ebiten.CursorPosition()
	aim := p.toWorld(mx, my, cam)

	return system.InputState{
		Left:         ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft),
		Right:        ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight),
		Up:           ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp),
		Down:         ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown),
		Jump:         ebiten.IsKeyPressed(ebiten.KeySpace),
		JumpPressed:  inpututil.IsKeyJustPressed(ebiten.KeySpace),
		JumpReleased: inpututil.IsKeyJustReleased(ebiten.KeySpace),
		Dash: inpututil.IsKeyJustPressed(ebiten.KeyShiftLeft) ||
			inpututil.IsKeyJustPressed(ebiten.KeyK) ||
			inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight),
		AimX: aim.X,
		AimY: aim.Y,
	}
}

// camera returns the world position of the view's bottom-left corner,
// centred on the player and clamped to the stage.
func (p *Playing) camera() cp.Vector {
	viewW := float64(p.screenW) / p.ppu
	viewH := float64(p.screenH) / p.ppu
	pos := p.world.Body[p.playerID].Position()
	bounds := p.world.Stage().Bounds()

	cam := cp.Vector{X: pos.X - viewW/2, Y: pos.Y - viewH/2}
	cam.X = max(min(cam.X, bounds.R-viewW), bounds.L)
	cam.Y = max(min(cam.Y, bounds.T-viewH), bounds.B)
	return cam
}

// toScreen maps a world point to pixels. Screen Y grows downward.
func (p *Playing) toScreen(v, cam cp.Vector) (float64, float64) {
	return (v.X - cam.X) * p.ppu, float64(p.screenH) - (v.Y-cam.Y)*p.ppu
}

func (p *Playing) toWorld(x, y int, cam cp.Vector) cp.Vector {
	return cp.Vector{
		X: float64(x)/p.ppu + cam.X,
		Y: float64(p.screenH-y)/p.ppu + cam.Y,
	}
}

// rectOnScreen returns the pixel rect (x, y, w, h) of a world box.
func (p *Playing) rectOnScreen(bb cp.BB, cam cp.Vector) (float64, float64, float64, float64) {
	x, y := p.toScreen(cp.Vector{X: bb.L, Y: bb.T}, cam)
	return x, y, (bb.R - bb.L) * p.ppu, (bb.T - bb.B) * p.ppu
}

// Draw renders the playground
func (p *Playing) Draw(screen *ebiten.Image) {
	screen.Fill(colorBG)

	cam := p.camera()
	p.drawTiles(screen, cam)
	p.drawZones(screen, cam)
	p.drawSpawned(screen, cam)
	p.drawPlayer(screen, cam)
	p.drawUI(screen)

	switch p.state {
	case state.StatePaused:
		p.drawPauseOverlay(screen)
	case state.StateDead:
		p.drawDeadOverlay(screen)
	}
}

func (p *Playing) drawTiles(screen *ebiten.Image, cam cp.Vector) {
	stage := p.world.Stage()
	for ty := 0; ty < stage.Height; ty++ {
		for tx := 0; tx < stage.Width; tx++ {
			tile := stage.GetTile(tx, ty)
			var c color.Color
			switch tile.Type {
			case entity.TileWall:
				c = colorWall
			case entity.TileSpike:
				c = colorSpike
			default:
				continue
			}

			x, y, w, h := p.rectOnScreen(stage.TileBB(tx, ty), cam)
			if x+w < 0 || y+h < 0 || x > float64(p.screenW) || y > float64(p.screenH) {
				continue
			}
			ebitenutil.DrawRect(screen, x, y, w, h, c)
		}
	}
}

func (p *Playing) drawZones(screen *ebiten.Image, cam cp.Vector) {
	for _, z := range p.world.Stage().Zones {
		c := colorZone
		if z.Active() {
			c = colorZoneOn
		}
		x, y, w, h := p.rectOnScreen(z.Bounds, cam)
		vector.StrokeRect(screen, float32(x), float32(y), float32(w), float32(h), 1, c, false)
		ebitenutil.DebugPrintAt(screen, z.ID, int(x)+2, int(y)+2)
	}
}

func (p *Playing) drawSpawned(screen *ebiten.Image, cam cp.Vector) {
	for id := range p.world.IsSpawned {
		c := colorStatic
		if p.world.Damage[id] > 0 {
			c = colorSpawned
		}
		x, y, w, h := p.rectOnScreen(p.world.Body[id].BB(), cam)
		ebitenutil.DrawRect(screen, x, y, w, h, c)
	}
}

func (p *Playing) drawPlayer(screen *ebiten.Image, cam cp.Vector) {
	body := p.world.Body[p.playerID]
	st := p.world.Controller[p.playerID].State()

	c := colorPlayer
	switch {
	case p.world.Health[p.playerID].IsDead():
		c = colorDead
	case st.IsDashing:
		c = colorDashing
	}
	x, y, w, h := p.rectOnScreen(body.BB(), cam)
	ebitenutil.DrawRect(screen, x, y, w, h, c)

	// Facing marker
	fx := x + w - 2
	if !st.FacingRight {
		fx = x
	}
	ebitenutil.DrawRect(screen, fx, y+h/4, 2, h/4, colorBG)

	// Aim line
	px, py := p.toScreen(body.Position(), cam)
	ax, ay := p.toScreen(st.Aim, cam)
	vector.StrokeLine(screen, float32(px), float32(py), float32(ax), float32(ay), 1, colorAim, false)
}

func (p *Playing) drawUI(screen *ebiten.Image) {
	health := p.world.Health[p.playerID]
	barX, barY, barW, barH := 10.0, float64(p.screenH-20), 100.0, 8.0
	ebitenutil.DrawRect(screen, barX, barY, barW, barH, colorHealthBG)
	ratio := 0.0
	if health.Max > 0 {
		ratio = float64(max(health.Current, 0)) / float64(health.Max)
	}
	ebitenutil.DrawRect(screen, barX, barY, barW*ratio, barH, colorHealthFG)

	st := p.world.Controller[p.playerID].State()
	vel := p.world.Body[p.playerID].Velocity()
	debugText := fmt.Sprintf(
		"FPS: %.1f\nVel: (%.2f, %.2f)\nGrounded: %v  Jumps: %d/%d\nDashing: %v\nGravity: %.1f  Drag: %.1f\nZones: %d  Spawned: %d",
		ebiten.ActualFPS(),
		vel.X, vel.Y,
		st.IsGrounded, st.JumpsCounted, p.world.Tuning().ExtraJumpCount,
		st.IsDashing,
		st.GravityScale, st.Drag,
		len(p.world.Stage().Zones), p.world.CountSpawned(),
	)
	if p.recorder != nil {
		debugText += fmt.Sprintf("\nREC %d", p.recorder.FrameCount())
	}
	ebitenutil.DebugPrint(screen, debugText)
}

func (p *Playing) drawPauseOverlay(screen *ebiten.Image) {
	ebitenutil.DrawRect(screen, 0, 0, float64(p.screenW), float64(p.screenH), colorOverlay)
	ebitenutil.DebugPrintAt(screen, "PAUSED\nESC to resume", p.screenW/2-50, p.screenH/2-20)
}

func (p *Playing) drawDeadOverlay(screen *ebiten.Image) {
	ebitenutil.DrawRect(screen, 0, 0, float64(p.screenW), float64(p.screenH), colorDeadShade)
	ebitenutil.DebugPrintAt(screen, "YOU DIED\nZ or R to restart", p.screenW/2-60, p.screenH/2-30)
}

// OnEnter is called when entering this scene
func (p *Playing) OnEnter() {
	p.logger.Debug("entering playground", "stage", p.stageCfg.Name, "player", p.playerID)
}

// OnExit is called when leaving this scene
func (p *Playing) OnExit() {
	p.saveRecording()
}

// Layout returns the game's screen dimensions (used by game.Game)
func (p *Playing) Layout(outsideWidth, outsideHeight int) (int, int) {
	return p.screenW, p.screenH
}
