package telemetry

// PhaseInfo describes one tick phase for display.
type PhaseInfo struct {
	Phase       Phase
	Name        string // Display name
	Description string
}

// PhaseRegistry holds display metadata for the step phases.
type PhaseRegistry struct {
	byPhase map[Phase]PhaseInfo
}

// NewPhaseRegistry creates a registry with every phase a tick runs.
func NewPhaseRegistry() *PhaseRegistry {
	r := &PhaseRegistry{byPhase: make(map[Phase]PhaseInfo, len(Phases))}
	r.Register(PhaseInfo{Phase: PhaseCommands, Name: "Commands", Description: "Applies queued player input"})
	r.Register(PhaseInfo{Phase: PhaseAnimals, Name: "Animals", Description: "Vitals, movement and state machine"})
	r.Register(PhaseInfo{Phase: PhasePoachers, Name: "Poachers", Description: "Tracking, steering and capture"})
	r.Register(PhaseInfo{Phase: PhaseDarts, Name: "Darts", Description: "Flight, expiry and hits"})
	r.Register(PhaseInfo{Phase: PhaseSpawn, Name: "Spawn", Description: "Poacher spawn schedule"})
	r.Register(PhaseInfo{Phase: PhaseEconomy, Name: "Economy", Description: "Game clock and passive income"})
	r.Register(PhaseInfo{Phase: PhaseSession, Name: "Session", Description: "Game over and restart"})
	r.Register(PhaseInfo{Phase: PhaseTelemetry, Name: "Telemetry", Description: "Window stats and output"})
	return r
}

// Register adds or replaces the metadata for info.Phase.
func (r *PhaseRegistry) Register(info PhaseInfo) {
	r.byPhase[info.Phase] = info
}

// Get returns phase info.
func (r *PhaseRegistry) Get(ph Phase) (PhaseInfo, bool) {
	info, ok := r.byPhase[ph]
	return info, ok
}

// Name returns the display name for ph, or its log name.
func (r *PhaseRegistry) Name(ph Phase) string {
	if info, ok := r.byPhase[ph]; ok {
		return info.Name
	}
	return ph.String()
}
