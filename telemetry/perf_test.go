package telemetry

import (
	"testing"
	"time"
)

func TestPerfCollectorEmpty(t *testing.T) {
	p := NewPerfCollector(0)
	stats := p.Stats()
	if stats.AvgTick != 0 || stats.TicksPerSecond != 0 || len(stats.Phases) != 0 {
		t.Errorf("expected zero stats without samples, got %+v", stats)
	}

	rows := stats.Rows(5)
	if len(rows) != 1 || rows[0].Phase != "tick" || rows[0].SharePct != 0 {
		t.Errorf("empty window should produce a bare tick row, got %+v", rows)
	}
}

func TestPerfCollectorPhases(t *testing.T) {
	p := NewPerfCollector(4)

	for i := 0; i < 6; i++ {
		p.StartTick()
		p.StartPhase(PhaseAnimals)
		time.Sleep(time.Millisecond)
		p.StartPhase(PhaseDarts)
		p.EndTick()
	}

	stats := p.Stats()
	if stats.Samples != 4 {
		t.Errorf("samples = %d, want the window size 4", stats.Samples)
	}
	if stats.AvgTick < time.Millisecond {
		t.Errorf("avg tick %v should include the sleep", stats.AvgTick)
	}
	if stats.MinTick > stats.MaxTick {
		t.Errorf("min %v exceeds max %v", stats.MinTick, stats.MaxTick)
	}

	if len(stats.Phases) != 2 || stats.Phases[0].Phase != PhaseAnimals || stats.Phases[1].Phase != PhaseDarts {
		t.Fatalf("phases = %+v, want animals then darts", stats.Phases)
	}
	if _, ok := stats.Phase(PhaseSpawn); ok {
		t.Error("spawn phase was never started")
	}
	animals, _ := stats.Phase(PhaseAnimals)
	if animals.Share <= 50 {
		t.Errorf("animals phase share = %.1f%%, expected it to dominate", animals.Share)
	}
	if animals.Min < time.Millisecond || animals.Min > animals.Max {
		t.Errorf("animals min/max = %v/%v", animals.Min, animals.Max)
	}

	rows := stats.Rows(12.5)
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want tick plus two phases", len(rows))
	}
	want := []string{"tick", "animals", "darts"}
	for i, row := range rows {
		if row.WindowEnd != 12.5 || row.Phase != want[i] {
			t.Errorf("row %d = %+v, want phase %s at 12.5", i, row, want[i])
		}
	}
	if rows[1].SharePct != animals.Share {
		t.Error("animals share not carried into CSV row")
	}
}

func TestPerfCollectorSkippedPhases(t *testing.T) {
	p := NewPerfCollector(10)

	// One full step, one paused step that only applies commands.
	p.StartTick()
	p.StartPhase(PhaseCommands)
	p.StartPhase(PhaseEconomy)
	p.EndTick()
	p.StartTick()
	p.StartPhase(PhaseCommands)
	p.EndTick()

	stats := p.Stats()
	if _, ok := stats.Phase(PhaseEconomy); !ok {
		t.Error("economy ran once and should be reported")
	}
	if _, ok := stats.Phase(PhaseAnimals); ok {
		t.Error("animals never ran")
	}
}

func TestPhaseString(t *testing.T) {
	for i, ph := range Phases {
		if ph != Phase(i) {
			t.Errorf("Phases[%d] = %v out of order", i, ph)
		}
	}
	if PhaseTelemetry.String() != "telemetry" || Phase(200).String() != "unknown" {
		t.Errorf("unexpected names: %s %s", PhaseTelemetry, Phase(200))
	}
}
