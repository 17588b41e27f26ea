// Command sim replays a recorded input file without a window and logs the
// player's trajectory, so tuning changes can be compared run against run.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"github.com/younwookim/mover/configs"
	"github.com/younwookim/mover/internal/application/replay"
	"github.com/younwookim/mover/internal/infrastructure/config"
)

func main() {
	replayFlag := flag.String("replay", "", "Replay file recorded with game -record (required)")
	configDir := flag.String("config", "", "Load configs from this directory instead of the embedded defaults")
	stageFlag := flag.String("stage", "", "Override the stage named in the replay")
	traceFlag := flag.Int("trace", 10, "Log the player state every N frames (0 = off)")
	outFlag := flag.String("out", "", "Write every sample to this YAML file")
	levelFlag := flag.String("log-level", "info", "Log level: debug, info, warn, error")
	flag.Parse()

	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "sim"})
	level, err := log.ParseLevel(*levelFlag)
	if err != nil {
		logger.Fatal("invalid log level", "level", *levelFlag, "err", err)
	}
	logger.SetLevel(level)

	if *replayFlag == "" {
		flag.Usage()
		os.Exit(2)
	}

	if err := run(*replayFlag, *configDir, *stageFlag, *outFlag, *traceFlag, logger); err != nil {
		logger.Fatal("simulation failed", "err", err)
	}
}

func run(replayPath, configDir, stageName, outPath string, traceEvery int, logger *log.Logger) error {
	data, err := replay.LoadReplay(replayPath)
	if err != nil {
		return err
	}
	if data.Version != replay.Version {
		logger.Warn("replay version differs", "file", data.Version, "want", replay.Version)
	}

	loader := config.NewFSLoader(configs.FS, "configs")
	if configDir != "" {
		loader = config.NewLoader(configDir)
	}
	cfg, err := loader.LoadAll()
	if err != nil {
		return err
	}

	if stageName == "" {
		stageName = data.Stage
	}
	stageCfg, err := loader.LoadStage(stageName)
	if err != nil {
		return err
	}

	logger.Info("replaying", "file", replayPath, "stage", stageName, "frames", len(data.Frames), "seconds", data.Duration())
	result, err := simulate(replay.NewReplayer(*data), cfg, stageCfg, traceEvery, logger)
	if err != nil {
		return err
	}

	final := result.Final()
	logger.Info("replay finished",
		"frames", len(result.Samples),
		"physicsSteps", result.PhysicsSteps,
		"jumps", result.Jumps,
		"dashes", result.Dashes,
		"x", round3(final.Position.X),
		"y", round3(final.Position.Y))
	if result.Died {
		logger.Warn("player died", "frame", result.DeathFrame)
	}

	if outPath == "" {
		return nil
	}
	return writeResult(outPath, result)
}

func writeResult(path string, result SimulationResult) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	if err := enc.Encode(result); err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	return enc.Close()
}
