package game

import (
	"log/slog"

	"github.com/pthm-cable/sanctuary/components"
	"github.com/pthm-cable/sanctuary/telemetry"
)

// flushTelemetry closes the stats window when it is due (or when forced)
// and handles bookmarks.
func (g *Game) flushTelemetry(force bool) {
	if !force && !g.collector.ShouldFlush(g.now) {
		return
	}

	stats := g.collector.Flush(g.now, g.census())
	perfStats := g.perfCollector.Stats()

	if g.statsCallback != nil {
		g.statsCallback(stats)
	}

	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if err := g.outputManager.WriteTelemetry(stats); err != nil {
		slog.Error("failed to write telemetry", "error", err)
	}
	if err := g.outputManager.WritePerf(perfStats, stats.WindowEnd); err != nil {
		slog.Error("failed to write perf", "error", err)
	}

	for _, bm := range g.bookmarkDetector.Check(stats) {
		if g.logStats {
			bm.LogBookmark()
		}
		if err := g.outputManager.WriteBookmark(bm); err != nil {
			slog.Error("failed to write bookmark", "error", err)
		}
		if g.snapshotDir != "" {
			g.saveStateDump(&bm)
		}
	}
}

// census samples the world for the stats window.
func (g *Game) census() telemetry.Census {
	c := telemetry.Census{
		Session:   g.session.Number(),
		GameTime:  g.economy.GameTime,
		Currency:  g.economy.Currency,
		Score:     g.economy.Score,
		FoodTotal: g.habitats.TotalFood(),
	}

	for _, e := range g.animals {
		_, a := g.animalMap.Get(e)
		switch a.State {
		case components.AnimalDead:
			c.Dead++
		case components.AnimalCaptured:
			c.Captured++
		default:
			c.Alive++
			c.Happiness = append(c.Happiness, a.Happiness)
			c.Health = append(c.Health, a.Health)
		}
	}
	for _, e := range g.poachers {
		_, p := g.poacherMap.Get(e)
		if p.State.Active() {
			c.PoachersActive++
		}
	}
	c.DartsActive = len(g.darts)
	return c
}

// saveStateDump writes the current snapshot to the dump directory.
func (g *Game) saveStateDump(bookmark *telemetry.Bookmark) {
	dump, err := telemetry.NewStateDump(g.seed, g.tick, bookmark, g.Snapshot())
	if err != nil {
		slog.Error("failed to build state dump", "error", err)
		return
	}

	path, err := telemetry.SaveStateDump(dump, g.snapshotDir)
	if err != nil {
		slog.Error("failed to save state dump", "error", err)
		return
	}

	slog.Info("state dump saved", "path", path, "tick", g.tick)
}
