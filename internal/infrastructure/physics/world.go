package physics

import (
	"math"

	"github.com/charmbracelet/log"
	"github.com/jakecoffman/cp"

	"github.com/younwookim/mover/internal/domain/entity"
)

const (
	collisionTypeSolid cp.CollisionType = iota + 1
	collisionTypeHazard
	collisionTypeCharacter
)

// HazardFunc is called when a body starts touching a hazard tile.
type HazardFunc func(b *Body, damage int)

// Settings configures a World.
type Settings struct {
	Gravity      float64 // magnitude, pulls toward -Y
	Iterations   int
	GroundNormal float64 // min normal Y for a ground contact
	WallNormal   float64 // min |normal X| for a wall contact
}

// DefaultSettings returns earth gravity and the usual contact thresholds
func DefaultSettings() Settings {
	return Settings{Gravity: 9.81, Iterations: 10, GroundNormal: 0.5, WallNormal: 0.5}
}

// World owns the Chipmunk space, the static stage shapes and every body
// created through it.
type World struct {
	space    *cp.Space
	settings Settings
	logger   *log.Logger

	bodies   map[*cp.Shape]*Body
	hazards  map[*cp.Shape]int
	onHazard HazardFunc
}

// NewWorld creates an empty world. A nil logger uses log.Default().
func NewWorld(s Settings, logger *log.Logger) *World {
	if logger == nil {
		logger = log.Default()
	}
	if s.Iterations <= 0 {
		s.Iterations = 10
	}

	space := cp.NewSpace()
	space.Iterations = uint(s.Iterations)
	space.SetGravity(cp.Vector{X: 0, Y: -s.Gravity})

	w := &World{
		space:    space,
		settings: s,
		logger:   logger,
		bodies:   make(map[*cp.Shape]*Body),
		hazards:  make(map[*cp.Shape]int),
	}
	w.setupHandlers()
	return w
}

// Space returns the underlying Chipmunk space
func (w *World) Space() *cp.Space {
	return w.space
}

// Gravity returns the gravity magnitude
func (w *World) Gravity() float64 {
	return w.settings.Gravity
}

// OnHazard sets the hazard callback. Only one callback is kept.
func (w *World) OnHazard(fn HazardFunc) {
	w.onHazard = fn
}

// AddStage builds static shapes for the stage. Runs of solid tiles on a row
// become one box; spike tiles become hazard sensors. The stage outline is
// closed with segments so nothing falls out.
func (w *World) AddStage(stage *entity.Stage) {
	for ty := 0; ty < stage.Height; ty++ {
		for tx := 0; tx < stage.Width; {
			tile := stage.GetTile(tx, ty)

			if tile.Hazard() {
				shape := cp.NewBox2(w.space.StaticBody, stage.TileBB(tx, ty), 0)
				shape.SetSensor(true)
				shape.SetCollisionType(collisionTypeHazard)
				w.space.AddShape(shape)
				w.hazards[shape] = tile.Damage
				tx++
				continue
			}
			if !tile.Blocks() {
				tx++
				continue
			}

			run := 1
			for tx+run < stage.Width && stage.GetTile(tx+run, ty).Blocks() {
				run++
			}
			bb := stage.TileBB(tx, ty)
			bb.R = stage.TileBB(tx+run-1, ty).R
			w.addSolid(cp.NewBox2(w.space.StaticBody, bb, 0))
			tx += run
		}
	}

	b := stage.Bounds()
	outline := [][2]cp.Vector{
		{{X: b.L, Y: b.B}, {X: b.R, Y: b.B}},
		{{X: b.L, Y: b.T}, {X: b.R, Y: b.T}},
		{{X: b.L, Y: b.B}, {X: b.L, Y: b.T}},
		{{X: b.R, Y: b.B}, {X: b.R, Y: b.T}},
	}
	for _, seg := range outline {
		w.addSolid(cp.NewSegment(w.space.StaticBody, seg[0], seg[1], 0))
	}

	w.logger.Debug("stage built", "width", stage.Width, "height", stage.Height, "hazards", len(w.hazards))
}

func (w *World) addSolid(shape *cp.Shape) {
	shape.SetFriction(0)
	shape.SetElasticity(0)
	shape.SetCollisionType(collisionTypeSolid)
	w.space.AddShape(shape)
}

// AddCharacter creates a non-rotating box body of w x h centred on pos.
// The box is frictionless; the movement controller handles braking.
func (w *World) AddCharacter(id entity.EntityID, pos cp.Vector, width, height, mass float64) *Body {
	if mass <= 0 {
		mass = 1
	}
	cpBody := w.space.AddBody(cp.NewBody(mass, math.Inf(1)))
	cpBody.SetPosition(pos)

	shape := w.space.AddShape(cp.NewBox(cpBody, width, height, 0))
	shape.SetFriction(0)
	shape.SetElasticity(0)
	shape.SetCollisionType(collisionTypeCharacter)

	b := newBody(id, cpBody, shape)
	b.contacts = newContacts(cpBody, w.settings.GroundNormal, w.settings.WallNormal)
	w.bodies[shape] = b
	return b
}

// AddStatic creates an immovable solid box centred on pos.
func (w *World) AddStatic(id entity.EntityID, pos cp.Vector, width, height float64) *Body {
	cpBody := w.space.AddBody(cp.NewStaticBody())
	cpBody.SetPosition(pos)

	shape := cp.NewBox(cpBody, width, height, 0)
	w.addSolid(shape)

	b := newBody(id, cpBody, shape)
	w.bodies[shape] = b
	return b
}

// Remove takes a body and its shape out of the space
func (w *World) Remove(b *Body) {
	if b == nil {
		return
	}
	if _, ok := w.bodies[b.shape]; !ok {
		return
	}
	delete(w.bodies, b.shape)
	w.space.RemoveShape(b.shape)
	w.space.RemoveBody(b.body)
}

// Bodies returns the number of bodies created through the world
func (w *World) Bodies() int {
	return len(w.bodies)
}

// Step advances the simulation by dt and refreshes every contact sensor.
func (w *World) Step(dt float64) {
	w.space.Step(dt)
	for _, b := range w.bodies {
		if b.contacts != nil {
			b.contacts.Refresh(dt)
		}
	}
}

// QueryBB returns the bodies whose shapes overlap bb.
func (w *World) QueryBB(bb cp.BB) []*Body {
	var found []*Body
	w.space.BBQuery(bb, cp.SHAPE_FILTER_ALL, func(shape *cp.Shape, data interface{}) {
		if b, ok := w.bodies[shape]; ok {
			found = append(found, b)
		}
	}, nil)
	return found
}

func (w *World) setupHandlers() {
	hazardHandler := w.space.NewCollisionHandler(collisionTypeCharacter, collisionTypeHazard)
	hazardHandler.UserData = w
	hazardHandler.BeginFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		world, ok := userData.(*World)
		if !ok || world.onHazard == nil {
			return true
		}
		shapeA, shapeB := arb.Shapes()
		b, okA := world.bodies[shapeA]
		damage, okB := world.hazards[shapeB]
		if !okA || !okB {
			return true
		}
		world.onHazard(b, damage)
		return true
	}
}
