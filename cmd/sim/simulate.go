package main

import (
	"math"

	"github.com/charmbracelet/log"
	"github.com/jakecoffman/cp"

	"github.com/younwookim/mover/internal/application/replay"
	"github.com/younwookim/mover/internal/application/system"
	"github.com/younwookim/mover/internal/ecs"
	"github.com/younwookim/mover/internal/infrastructure/config"
)

// Sample is the player state after one replayed frame
type Sample struct {
	Frame    int       `yaml:"frame"`
	Position cp.Vector `yaml:"pos,flow"`
	Velocity cp.Vector `yaml:"vel,flow"`
	Grounded bool      `yaml:"grounded"`
	Dashing  bool      `yaml:"dashing,omitempty"`
	Jumps    int       `yaml:"jumps"`
}

// SimulationResult holds what a headless replay produced
type SimulationResult struct {
	Samples      []Sample `yaml:"samples"`
	PhysicsSteps int      `yaml:"physicsSteps"`
	Jumps        int      `yaml:"jumps"`
	Dashes       int      `yaml:"dashes"`
	Died         bool     `yaml:"died"`
	DeathFrame   int      `yaml:"deathFrame,omitempty"`
}

// Final returns the last sample, or a zero sample for an empty replay.
func (r SimulationResult) Final() Sample {
	if len(r.Samples) == 0 {
		return Sample{}
	}
	return r.Samples[len(r.Samples)-1]
}

// simulate replays every frame of replayer on a fresh world built from cfg and
// stageCfg. Every traceEvery frames the player state is logged at info
// level; 0 disables the trace.
func simulate(replayer *replay.Replayer, cfg *config.GameConfig, stageCfg *config.StageConfig, traceEvery int, logger *log.Logger) (SimulationResult, error) {
	world, err := ecs.NewWorld(cfg.Physics, cfg.Entities, logger)
	if err != nil {
		return SimulationResult{}, err
	}
	stage := system.LoadStage(stageCfg)
	world.LoadStage(stage)

	id, err := world.CreatePlayer(stage.Spawn, cfg.Entities.Player)
	if err != nil {
		return SimulationResult{}, err
	}

	result := SimulationResult{
		Samples: make([]Sample, 0, replayer.TotalFrames()),
	}
	world.Health[id].OnDeath(func() {
		result.Died = true
		result.DeathFrame = replayer.CurrentFrame() - 1
	})

	for {
		input, dt, ok := replayer.GetInput()
		if !ok {
			break
		}

		ctrl := world.Controller[id]
		system.ApplyInput(ctrl, input)
		result.PhysicsSteps += world.Step(dt)

		for _, intent := range world.Intents() {
			if intent.Entity() != id {
				continue
			}
			switch intent.(type) {
			case system.JumpIntent:
				result.Jumps++
			case system.DashIntent:
				result.Dashes++
			}
		}

		st := ctrl.State()
		body := world.Body[id]
		s := Sample{
			Frame:    replayer.CurrentFrame() - 1,
			Position: body.Position(),
			Velocity: body.Velocity(),
			Grounded: st.IsGrounded,
			Dashing:  st.IsDashing,
			Jumps:    st.JumpsCounted,
		}
		result.Samples = append(result.Samples, s)

		if traceEvery > 0 && s.Frame%traceEvery == 0 {
			logger.Info("frame",
				"f", s.Frame,
				"x", round3(s.Position.X), "y", round3(s.Position.Y),
				"vx", round3(s.Velocity.X), "vy", round3(s.Velocity.Y),
				"grounded", s.Grounded,
				"jumps", s.Jumps,
				"dashing", s.Dashing)
		}
	}

	return result, nil
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
