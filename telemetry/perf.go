package telemetry

import (
	"log/slog"
	"time"
)

// Phase is one stage of a simulation step.
type Phase uint8

// Phases of a step, in execution order.
const (
	PhaseCommands Phase = iota
	PhaseAnimals
	PhasePoachers
	PhaseDarts
	PhaseSpawn
	PhaseEconomy
	PhaseSession
	PhaseTelemetry
	phaseCount
)

var phaseNames = [phaseCount]string{
	"commands", "animals", "poachers", "darts",
	"spawn", "economy", "session", "telemetry",
}

func (p Phase) String() string {
	if p < phaseCount {
		return phaseNames[p]
	}
	return "unknown"
}

// Phases lists every phase in execution order.
var Phases = []Phase{
	PhaseCommands, PhaseAnimals, PhasePoachers, PhaseDarts,
	PhaseSpawn, PhaseEconomy, PhaseSession, PhaseTelemetry,
}

// tickSample is the timing of one step. ran marks phases that started,
// since a paused or game-over step skips most of them.
type tickSample struct {
	total  time.Duration
	phases [phaseCount]time.Duration
	ran    [phaseCount]bool
}

// PerfCollector times steps and their phases over a ring of recent ticks.
type PerfCollector struct {
	ring   []tickSample
	next   int
	filled int

	current    tickSample
	tickStart  time.Time
	phaseStart time.Time
	running    Phase
	inPhase    bool

	// Frame timing (graphics mode)
	lastFrame time.Time
	frame     time.Duration
}

// NewPerfCollector keeps the last window ticks; non-positive means 60.
func NewPerfCollector(window int) *PerfCollector {
	if window < 1 {
		window = 60
	}
	return &PerfCollector{ring: make([]tickSample, window)}
}

// StartTick begins timing a step.
func (p *PerfCollector) StartTick() {
	p.tickStart = time.Now()
	p.current = tickSample{}
	p.inPhase = false
}

// StartPhase closes the running phase, if any, and starts timing phase.
func (p *PerfCollector) StartPhase(phase Phase) {
	now := time.Now()
	p.closePhase(now)
	p.phaseStart = now
	p.running = phase
	p.inPhase = true
	p.current.ran[phase] = true
}

// EndTick closes the step and stores it in the ring.
func (p *PerfCollector) EndTick() {
	now := time.Now()
	p.closePhase(now)
	p.current.total = now.Sub(p.tickStart)

	p.ring[p.next] = p.current
	p.next = (p.next + 1) % len(p.ring)
	if p.filled < len(p.ring) {
		p.filled++
	}
}

func (p *PerfCollector) closePhase(now time.Time) {
	if p.inPhase {
		p.current.phases[p.running] += now.Sub(p.phaseStart)
		p.inPhase = false
	}
}

// RecordFrame marks a rendered frame.
func (p *PerfCollector) RecordFrame() {
	now := time.Now()
	if !p.lastFrame.IsZero() {
		p.frame = now.Sub(p.lastFrame)
	}
	p.lastFrame = now
}

// PhaseTiming summarises one phase over the window. Avg is taken over every
// tick in the window so the phase averages add up to the tick average.
type PhaseTiming struct {
	Phase Phase
	Avg   time.Duration
	Min   time.Duration // Over ticks where the phase ran
	Max   time.Duration
	Share float64 // Percent of the average tick
}

// PerfStats holds window timings.
type PerfStats struct {
	Samples        int
	AvgTick        time.Duration
	MinTick        time.Duration
	MaxTick        time.Duration
	TicksPerSecond float64

	// Phases that ran at least once in the window, in execution order.
	Phases []PhaseTiming

	FrameDuration time.Duration
	FPS           float64
}

// Stats aggregates the ring.
func (p *PerfCollector) Stats() PerfStats {
	stats := PerfStats{Samples: p.filled, FrameDuration: p.frame}
	if p.frame > 0 {
		stats.FPS = float64(time.Second) / float64(p.frame)
	}
	if p.filled == 0 {
		return stats
	}

	var total time.Duration
	var timings [phaseCount]PhaseTiming
	var seen [phaseCount]bool
	for i, s := range p.ring[:p.filled] {
		total += s.total
		if i == 0 || s.total < stats.MinTick {
			stats.MinTick = s.total
		}
		stats.MaxTick = max(stats.MaxTick, s.total)

		for _, ph := range Phases {
			if !s.ran[ph] {
				continue
			}
			d := s.phases[ph]
			t := &timings[ph]
			t.Avg += d // Sum for now
			if !seen[ph] || d < t.Min {
				t.Min = d
			}
			t.Max = max(t.Max, d)
			seen[ph] = true
		}
	}

	n := time.Duration(p.filled)
	stats.AvgTick = total / n
	if stats.AvgTick > 0 {
		stats.TicksPerSecond = float64(time.Second) / float64(stats.AvgTick)
	}
	for _, ph := range Phases {
		if !seen[ph] {
			continue
		}
		t := timings[ph]
		t.Phase = ph
		t.Avg /= n
		if stats.AvgTick > 0 {
			t.Share = float64(t.Avg) / float64(stats.AvgTick) * 100
		}
		stats.Phases = append(stats.Phases, t)
	}
	return stats
}

// Phase returns the timing of ph, if it ran in the window.
func (s PerfStats) Phase(ph Phase) (PhaseTiming, bool) {
	for _, t := range s.Phases {
		if t.Phase == ph {
			return t, true
		}
	}
	return PhaseTiming{}, false
}

// LogStats logs the window timings.
func (s PerfStats) LogStats() {
	attrs := []any{
		"avg_tick_us", s.AvgTick.Microseconds(),
		"max_tick_us", s.MaxTick.Microseconds(),
		"ticks_per_sec", int(s.TicksPerSecond),
	}
	if s.FPS > 0 {
		attrs = append(attrs, "fps", int(s.FPS))
	}
	for _, t := range s.Phases {
		if t.Share > 0.1 {
			attrs = append(attrs, t.Phase.String()+"_pct", float64(int(t.Share*10))/10)
		}
	}
	slog.Info("perf", attrs...)
}

// PerfRow is one perf.csv line. Each window writes a "tick" row for the
// whole step followed by one row per phase that ran.
type PerfRow struct {
	WindowEnd float64 `csv:"window_end"`
	Phase     string  `csv:"phase"`
	AvgUS     int64   `csv:"avg_us"`
	MinUS     int64   `csv:"min_us"`
	MaxUS     int64   `csv:"max_us"`
	SharePct  float64 `csv:"share_pct"`
}

// Rows flattens the stats into perf.csv lines.
func (s PerfStats) Rows(windowEnd float64) []PerfRow {
	rows := make([]PerfRow, 0, len(s.Phases)+1)
	tick := PerfRow{
		WindowEnd: windowEnd,
		Phase:     "tick",
		AvgUS:     s.AvgTick.Microseconds(),
		MinUS:     s.MinTick.Microseconds(),
		MaxUS:     s.MaxTick.Microseconds(),
	}
	if s.Samples > 0 {
		tick.SharePct = 100
	}
	rows = append(rows, tick)
	for _, t := range s.Phases {
		rows = append(rows, PerfRow{
			WindowEnd: windowEnd,
			Phase:     t.Phase.String(),
			AvgUS:     t.Avg.Microseconds(),
			MinUS:     t.Min.Microseconds(),
			MaxUS:     t.Max.Microseconds(),
			SharePct:  t.Share,
		})
	}
	return rows
}
