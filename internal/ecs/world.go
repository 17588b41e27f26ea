package ecs

import (
	"fmt"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/jakecoffman/cp"

	"github.com/younwookim/mover/internal/application/system"
	"github.com/younwookim/mover/internal/domain/entity"
	"github.com/younwookim/mover/internal/infrastructure/config"
	"github.com/younwookim/mover/internal/infrastructure/physics"
)

// World owns every simulated entity, the physics space they live in and the
// zones of the loaded stage. Nothing is global: callers keep the IDs that
// CreatePlayer and Spawn hand out.
type World struct {
	nextID entity.EntityID

	// Components
	Body       map[entity.EntityID]*physics.Body
	Controller map[entity.EntityID]*system.Controller
	Health     map[entity.EntityID]*entity.Health
	Kind       map[entity.EntityID]string
	Damage     map[entity.EntityID]int // contact damage dealt to players

	// Tags
	IsPlayer  map[entity.EntityID]struct{}
	IsSpawned map[entity.EntityID]struct{}

	physics *physics.World
	stage   *entity.Stage
	zones   *system.ZoneSystem

	// characters is the stable update order for controllers
	characters []entity.EntityID
	zoneSpawns map[string][]entity.EntityID
	touching   map[[2]entity.EntityID]struct{}
	intents    []system.Intent

	tuning      entity.MovementConfig
	spawnables  map[string]config.SpawnableConfig
	fixedStep   float64
	maxSubsteps int
	accumulator float64

	logger *log.Logger
}

// NewWorld creates an empty world from the physics and entity configs.
// A nil logger uses log.Default().
func NewWorld(cfg *config.PhysicsConfig, entities *config.EntitiesConfig, logger *log.Logger) (*World, error) {
	if logger == nil {
		logger = log.Default()
	}
	tuning, err := cfg.MovementTuning()
	if err != nil {
		return nil, fmt.Errorf("failed to build movement tuning: %w", err)
	}

	settings := physics.Settings{
		Gravity:      cfg.World.Gravity,
		Iterations:   cfg.World.Iterations,
		GroundNormal: cfg.Contact.GroundNormal,
		WallNormal:   cfg.Contact.WallNormal,
	}

	w := &World{
		nextID:      1, // 0 is "nil"
		Body:        make(map[entity.EntityID]*physics.Body),
		Controller:  make(map[entity.EntityID]*system.Controller),
		Health:      make(map[entity.EntityID]*entity.Health),
		Kind:        make(map[entity.EntityID]string),
		Damage:      make(map[entity.EntityID]int),
		IsPlayer:    make(map[entity.EntityID]struct{}),
		IsSpawned:   make(map[entity.EntityID]struct{}),
		physics:     physics.NewWorld(settings, logger),
		zones:       system.NewZoneSystem(nil, logger),
		zoneSpawns:  make(map[string][]entity.EntityID),
		touching:    make(map[[2]entity.EntityID]struct{}),
		tuning:      tuning,
		fixedStep:   cfg.World.FixedStep,
		maxSubsteps: cfg.World.MaxSubsteps,
		logger:      logger,
	}
	if entities != nil {
		w.spawnables = entities.Spawnables
	}
	w.physics.OnHazard(w.onHazard)
	return w, nil
}

// NewEntity returns a new unique entity ID
func (w *World) NewEntity() entity.EntityID {
	id := w.nextID
	w.nextID++
	return id
}

// Exists checks if an entity has a body
func (w *World) Exists(id entity.EntityID) bool {
	_, ok := w.Body[id]
	return ok
}

// Physics returns the physics backend
func (w *World) Physics() *physics.World {
	return w.physics
}

// Stage returns the loaded stage, nil before LoadStage
func (w *World) Stage() *entity.Stage {
	return w.stage
}

// Zones returns the zone system of the loaded stage
func (w *World) Zones() *system.ZoneSystem {
	return w.zones
}

// Tuning returns the movement tuning new players get
func (w *World) Tuning() entity.MovementConfig {
	return w.tuning
}

// Intents returns the actions executed during the last Step
func (w *World) Intents() []system.Intent {
	return w.intents
}

// LoadStage builds the stage geometry and takes over its zones. A world
// holds one stage.
func (w *World) LoadStage(stage *entity.Stage) {
	w.stage = stage
	w.physics.AddStage(stage)
	w.zones = system.NewZoneSystem(stage.Zones, w.logger)
	w.zones.OnActivate(w.spawnZone)
	w.zones.OnDeactivate(w.clearZone)
}

// CreatePlayer creates a controllable character centred on pos.
func (w *World) CreatePlayer(pos cp.Vector, cfg config.PlayerConfig) (entity.EntityID, error) {
	id := w.NewEntity()
	body := w.physics.AddCharacter(id, pos, cfg.Size.Width, cfg.Size.Height, cfg.Mass)

	ctrl, err := system.NewController(id, w.tuning, body, body.Contacts(), w.physics.Gravity(), w.logger)
	if err != nil {
		w.physics.Remove(body)
		return 0, fmt.Errorf("failed to create player controller: %w", err)
	}

	health := entity.NewHealth(cfg.MaxHealth)
	health.OnDeath(func() {
		w.logger.Warn("player died", "id", id, "pos", body.Position())
	})

	w.Body[id] = body
	w.Controller[id] = ctrl
	w.Health[id] = health
	w.Kind[id] = cfg.ID
	w.IsPlayer[id] = struct{}{}
	w.characters = append(w.characters, id)
	return id, nil
}

// ResetPlayer moves a player back to pos with full health and a fresh
// controller built from tuning.
func (w *World) ResetPlayer(id entity.EntityID, pos cp.Vector, tuning entity.MovementConfig) error {
	body, ok := w.Body[id]
	if !ok {
		return fmt.Errorf("player %d not found", id)
	}
	if _, ok := w.IsPlayer[id]; !ok {
		return fmt.Errorf("entity %d is not a player", id)
	}

	ctrl, err := system.NewController(id, tuning, body, body.Contacts(), w.physics.Gravity(), w.logger)
	if err != nil {
		return fmt.Errorf("failed to reset player controller: %w", err)
	}
	w.tuning = tuning
	w.Controller[id] = ctrl

	body.SetPosition(pos)
	if h := w.Health[id]; h != nil {
		h.Revive()
	}
	for pair := range w.touching {
		if pair[0] == id {
			delete(w.touching, pair)
		}
	}
	return nil
}

// Spawn creates an entity of a configured spawnable kind centred on pos.
func (w *World) Spawn(kind string, pos cp.Vector) (entity.EntityID, error) {
	sc, ok := w.spawnables[kind]
	if !ok {
		return 0, fmt.Errorf("unknown spawnable %q", kind)
	}

	id := w.NewEntity()
	var body *physics.Body
	if sc.Static {
		body = w.physics.AddStatic(id, pos, sc.Size.Width, sc.Size.Height)
	} else {
		body = w.physics.AddCharacter(id, pos, sc.Size.Width, sc.Size.Height, sc.Mass)
	}

	w.Body[id] = body
	w.Kind[id] = kind
	w.IsSpawned[id] = struct{}{}
	if sc.ContactDamage > 0 {
		w.Damage[id] = sc.ContactDamage
	}
	return id, nil
}

// DestroyEntity removes all components for an entity
func (w *World) DestroyEntity(id entity.EntityID) {
	if body, ok := w.Body[id]; ok {
		w.physics.Remove(body)
	}
	delete(w.Body, id)
	delete(w.Controller, id)
	delete(w.Health, id)
	delete(w.Kind, id)
	delete(w.Damage, id)
	delete(w.IsPlayer, id)
	delete(w.IsSpawned, id)

	w.characters = slices.DeleteFunc(w.characters, func(c entity.EntityID) bool {
		return c == id
	})
	for pair := range w.touching {
		if pair[0] == id || pair[1] == id {
			delete(w.touching, pair)
		}
	}
}

// PlayersIn counts the players overlapping bb
func (w *World) PlayersIn(bb cp.BB) int {
	n := 0
	for _, b := range w.physics.QueryBB(bb) {
		if _, ok := w.IsPlayer[b.ID]; ok {
			n++
		}
	}
	return n
}

// CountSpawned returns the number of zone-spawned entities alive
func (w *World) CountSpawned() int {
	return len(w.IsSpawned)
}

func (w *World) spawnZone(z *entity.Zone) {
	ids := make([]entity.EntityID, 0, len(z.Spawns))
	for _, sp := range z.Spawns {
		id, err := w.Spawn(sp.Kind, sp.Position)
		if err != nil {
			w.logger.Error("zone spawn failed", "zone", z.ID, "err", err)
			continue
		}
		ids = append(ids, id)
	}
	w.zoneSpawns[z.ID] = ids
}

func (w *World) clearZone(z *entity.Zone) {
	for _, id := range w.zoneSpawns[z.ID] {
		w.DestroyEntity(id)
	}
	delete(w.zoneSpawns, z.ID)
}

func (w *World) onHazard(b *physics.Body, damage int) {
	if h := w.Health[b.ID]; h != nil {
		h.Damage(damage)
	}
}
