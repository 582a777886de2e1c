package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/sanctuary/camera"
	"github.com/pthm-cable/sanctuary/clock"
	"github.com/pthm-cable/sanctuary/config"
	"github.com/pthm-cable/sanctuary/game"
	"github.com/pthm-cable/sanctuary/renderer"
	"github.com/pthm-cable/sanctuary/server"
	"github.com/pthm-cable/sanctuary/ui"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	statsWindow := flag.Float64("stats-window", 0, "Stats window size in seconds (0 = use config)")
	snapshotDir := flag.String("snapshot-dir", "", "Directory for state dumps on bookmarks")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	serve := flag.String("serve", "", "Address for the spectator feed, e.g. :8080 (empty = disabled)")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	opts := game.Options{
		Seed:           rngSeed,
		LogStats:       *logStats,
		StatsWindowSec: *statsWindow,
		SnapshotDir:    *snapshotDir,
		OutputDir:      *outputDir,
	}

	// Headless runs advance a manual clock by the fixed step each tick.
	var manual *clock.Manual
	if *headless {
		manual = clock.NewManual(time.Unix(0, 0))
		opts.Clock = manual
	}

	g, err := game.NewGame(cfg, opts)
	if err != nil {
		slog.Error("failed to create game", "error", err)
		os.Exit(1)
	}
	defer g.Unload()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var hub *server.Hub
	if *serve != "" {
		hub = server.NewHub(cfg.Server.BroadcastHz)
		go func() {
			if err := server.ListenAndServe(ctx, *serve, hub); err != nil {
				slog.Error("spectator feed stopped", "error", err)
			}
		}()
		slog.Info("spectator feed listening", "addr", *serve)
	}

	publish := func() {
		if hub != nil {
			hub.Publish(g.Snapshot())
		}
	}

	if *headless {
		// Headless mode - fixed steps, no raylib needed
		slog.Info("starting headless simulation",
			"seed", rngSeed,
			"dt", cfg.World.DT,
			"max_ticks", *maxTicks,
		)

		step := time.Duration(cfg.World.DT * float64(time.Second))
		for ctx.Err() == nil {
			manual.Advance(step)
			g.Update()
			publish()

			if *maxTicks > 0 && int(g.Tick()) >= *maxTicks {
				slog.Info("max ticks reached", "tick", g.Tick(), "score", g.Economy().Score)
				return
			}
		}
		return
	}

	// Graphical mode
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Sanctuary")
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	rig := camera.New()
	scene := renderer.NewScene(cfg.World.HalfExtent)
	hud := ui.NewHUD()

	for !rl.WindowShouldClose() && ctx.Err() == nil {
		screenW, screenH := int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight())

		input := ui.ReadInput(ui.PauseButton(screenW))
		for _, cmd := range input.Commands() {
			g.Submit(cmd)
		}
		input.ApplyRig(rig)
		if rl.IsKeyPressed(rl.KeyF3) {
			hud.ShowPerf = !hud.ShowPerf
		}

		g.Update()
		publish()

		snap := g.Snapshot()
		player := g.Player()
		view := rig.View(g.CameraMode(), player.Pose())

		rl.BeginDrawing()
		rl.ClearBackground(rl.Color{R: 135, G: 190, B: 235, A: 255})
		scene.Draw(snap, view)
		for _, cmd := range hud.Draw(snap, screenW, screenH) {
			g.Apply(cmd)
		}
		hud.DrawPerf(g.PerfStats(), screenW-260, 50)
		rl.EndDrawing()

		if *maxTicks > 0 && int(g.Tick()) >= *maxTicks {
			break
		}
	}
}
