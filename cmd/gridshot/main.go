package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ayusman/gridshot/internal/app"
	"github.com/ayusman/gridshot/internal/assets"
	"github.com/ayusman/gridshot/internal/audio"
	"github.com/ayusman/gridshot/internal/config"
	"github.com/ayusman/gridshot/internal/render"
	"github.com/ayusman/gridshot/internal/server"
	"github.com/ayusman/gridshot/internal/store"
	"github.com/ayusman/gridshot/internal/terminal"
	"github.com/ayusman/gridshot/internal/tray"
)

func main() {
	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	if err := run(cfg); err != nil {
		log.Fatalf("gridshot: %v", err)
	}
}

// loadConfig reads the config file and applies the flags that were set.
func loadConfig() (config.Config, error) {
	configPath := flag.String("config", "", "path to a YAML config file")
	ui := flag.String("ui", config.UIWindow, "front-end: window, tui or headless")
	addr := flag.String("addr", config.DefaultAddr, "control API address, empty to disable")
	camera := flag.Int("camera", 0, "camera device id")
	dbPath := flag.String("db", config.DefaultDBFile, "round history database, empty to disable")
	seed := flag.Int64("seed", 0, "simulation seed, 0 for time-based")
	sound := flag.Bool("sound", true, "play sound effects")
	gesture := flag.Bool("gesture", false, "start with gesture control enabled")
	assetDir := flag.String("assets", config.DefaultAssetDir, "sprite directory")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return config.Config{}, err
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "ui":
			cfg.UI.Mode = *ui
		case "addr":
			cfg.Server.Addr = *addr
			cfg.Server.Enabled = *addr != ""
		case "camera":
			cfg.Camera.DeviceID = *camera
		case "db":
			cfg.Store.Path = *dbPath
		case "seed":
			cfg.Seed = *seed
		case "sound":
			cfg.Audio.Enabled = *sound
		case "gesture":
			cfg.UI.Gesture = *gesture
		case "assets":
			cfg.UI.AssetDir = *assetDir
		}
	})

	return cfg, cfg.Validate()
}

func run(cfg config.Config) error {
	var st *store.Store
	if cfg.Store.Path != "" {
		path, err := databasePath(cfg.Store.Path)
		if err != nil {
			return err
		}
		st, err = store.New(path)
		if err != nil {
			return fmt.Errorf("open round history: %w", err)
		}
		defer st.Close()
		log.Printf("Recording rounds in %s", path)
	}

	var sound app.SoundPlayer
	if cfg.Audio.Enabled {
		player := audio.NewPlayer(cfg.Audio)
		if err := player.Init(); err != nil {
			log.Printf("Sound disabled: %v", err)
		} else {
			defer player.Close()
			sound = player
		}
	}

	sprites := assets.Load(cfg.UI.AssetDir, cfg.Game.TileSize)

	application := app.New(app.Config{
		Game:     cfg.Game,
		Gesture:  cfg.Gesture,
		Camera:   cfg.Camera,
		Detector: cfg.Detector,
		Store:    st,
		Seed:     cfg.Seed,
		Sprites:  len(sprites.Monsters),
		Sound:    sound,
	})
	defer application.Close()
	log.Printf("Seed %d", application.Seed())

	if cfg.UI.Gesture && !application.EnableGesture() {
		log.Println("Continuing without gesture control")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	if cfg.Server.Enabled {
		srv := &http.Server{
			Addr: cfg.Server.Addr,
			Handler: server.New(server.Config{
				StaticDir: cfg.Server.StaticDir,
				Store:     st,
				Game:      application,
			}),
		}
		g.Go(func() error {
			log.Printf("Starting server on %s", cfg.Server.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("server: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})
	}

	// The window ticks the simulation itself at the configured rate.
	if cfg.UI.Mode != config.UIWindow {
		g.Go(func() error { return application.Run(ctx) })
	}

	// Window and tray toolkits need the main goroutine.
	var uiErr error
	switch cfg.UI.Mode {
	case config.UIWindow:
		uiErr = render.Run(application, render.Config{
			Title:        cfg.UI.Title,
			Sprites:      sprites,
			HitMarkerTTL: cfg.Game.HitMarkerTTL,
			Done:         ctx.Done(),
		}, cfg.Game.TickRate)
	case config.UITerminal:
		// The terminal owns stdout while it runs.
		log.SetOutput(logFile())
		uiErr = terminal.Run(ctx, application)
	case config.UIHeadless:
		runTray(ctx, application, stop)
	}
	stop()

	if err := g.Wait(); err != nil {
		return err
	}
	return uiErr
}

// runTray shows the tray menu until the user quits or ctx is cancelled.
func runTray(ctx context.Context, application *app.App, stop context.CancelFunc) {
	t := tray.New()
	t.SetGesture(application.GestureActive())
	t.OnToggle(application.ToggleGesture)
	t.OnRespawn(func() { application.Respawn() })
	t.OnQuit(stop)

	go func() {
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				t.Quit()
				return
			case <-ticker.C:
				t.SetStatus(application.Status())
				t.SetGesture(application.GestureActive())
			}
		}
	}()

	t.Run()
}

// databasePath places a bare file name in ~/.gridshot.
func databasePath(path string) (string, error) {
	if filepath.Dir(path) != "." || filepath.IsAbs(path) {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}

	dir := filepath.Join(homeDir, ".gridshot")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create data directory: %w", err)
	}
	return filepath.Join(dir, path), nil
}

// logFile redirects logging away from the terminal UI.
func logFile() *os.File {
	path, err := databasePath("gridshot.log")
	if err != nil {
		return os.Stderr
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return os.Stderr
	}
	return f
}
