package main

import (
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/younwookim/mover/configs"
	"github.com/younwookim/mover/internal/application/game"
	"github.com/younwookim/mover/internal/application/scene/playing"
	"github.com/younwookim/mover/internal/infrastructure/config"
)

func main() {
	// Parse command line flags
	recordFlag := flag.String("record", "", "Record input to file (e.g., -record replay.json)")
	configDir := flag.String("config", "", "Load configs from this directory instead of the embedded defaults")
	watchFlag := flag.Bool("watch", false, "Reload physics config when it changes on disk (needs -config)")
	stageFlag := flag.String("stage", "demo", "Stage to load from stages/")
	levelFlag := flag.String("log-level", "info", "Log level: debug, info, warn, error")
	flag.Parse()

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "mover",
	})
	level, err := log.ParseLevel(*levelFlag)
	if err != nil {
		logger.Fatal("invalid log level", "level", *levelFlag, "err", err)
	}
	logger.SetLevel(level)

	loader, err := newLoader(*configDir)
	if err != nil {
		logger.Fatal("failed to open configs", "err", err)
	}
	cfg, err := loader.LoadAll()
	if err != nil {
		logger.Fatal("failed to load config", "err", err)
	}
	stageCfg, err := loader.LoadStage(*stageFlag)
	if err != nil {
		logger.Fatal("failed to load stage", "err", err)
	}

	scene, err := playing.New(cfg, stageCfg, *recordFlag, logger)
	if err != nil {
		logger.Fatal("failed to create playground", "err", err)
	}

	if *watchFlag {
		if *configDir == "" {
			logger.Fatal("-watch needs -config")
		}
		stop, err := watchPhysics(loader, scene, logger)
		if err != nil {
			logger.Fatal("failed to watch configs", "err", err)
		}
		defer stop()
	}

	display := cfg.Physics.Display
	g := game.New(scene, display.ScreenWidth, display.ScreenHeight)
	g.SetFramerate(display.Framerate)
	g.SetLogger(logger)

	// Set up ebiten
	ebiten.SetWindowSize(display.ScreenWidth*display.Scale, display.ScreenHeight*display.Scale)
	ebiten.SetWindowTitle(fmt.Sprintf("mover - %s", stageCfg.Name))
	ebiten.SetTPS(display.Framerate)

	logger.Info("starting", "stage", stageCfg.ID, "tps", display.Framerate)
	err = ebiten.RunGame(g)
	g.Close()
	if err != nil {
		logger.Fatal("game stopped", "err", err)
	}
}

// newLoader reads configs from dir, or from the embedded defaults when dir
// is empty.
func newLoader(dir string) (*config.Loader, error) {
	if dir == "" {
		return config.NewFSLoader(configs.FS, "configs"), nil
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s: %w", dir, fs.ErrInvalid)
	}
	return config.NewLoader(dir), nil
}

// watchPhysics reloads physics config into the scene whenever a physics file
// under the loader's directory changes. The returned func stops watching.
func watchPhysics(loader *config.Loader, scene *playing.Playing, logger *log.Logger) (func(), error) {
	watcher, err := config.NewWatcher(loader.BasePath())
	if err != nil {
		return nil, err
	}

	go func() {
		for {
			select {
			case name, ok := <-watcher.Events:
				if !ok {
					return
				}
				base := filepath.Base(name)
				if !strings.HasPrefix(base, "physics.") {
					logger.Debug("config changed, restart to apply", "file", base)
					continue
				}
				cfg, err := loader.LoadPhysics()
				if err != nil {
					logger.Error("failed to reload physics", "file", base, "err", err)
					continue
				}
				scene.QueueReload(cfg)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Error("config watcher", "err", err)
			}
		}
	}()

	logger.Info("watching configs", "dir", loader.BasePath())
	return func() { _ = watcher.Close() }, nil
}
