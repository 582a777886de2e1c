package game

// Phase is the session-level state. Pause is tracked separately.
type Phase uint8

const (
	PhasePlaying Phase = iota
	PhaseGameOver
	PhaseRestarting
)

// Session state names as exposed in snapshots.
const (
	StatePlaying    = "PLAYING"
	StatePaused     = "PAUSED"
	StateGameOver   = "GAME_OVER"
	StateRestarting = "RESTARTING"
)

// Session is the whole-game state machine.
//
//	PLAYING --all animals terminal--> GAME_OVER --delay--> RESTARTING --reset--> PLAYING
//
// Paused freezes everything, including the restart countdown, because the
// deadline is measured in unpaused simulation time.
type Session struct {
	phase     Phase
	paused    bool
	restartAt float64
	count     int // Sessions started, minus one
}

// Phase returns the current phase.
func (s *Session) Phase() Phase { return s.phase }

// Paused reports whether the pause flag is set.
func (s *Session) Paused() bool { return s.paused }

// Number returns the zero-based session counter.
func (s *Session) Number() int { return s.count }

// TogglePause flips the pause flag.
func (s *Session) TogglePause() {
	s.paused = !s.paused
}

// State returns the session state name. PAUSED wins over the phase.
func (s *Session) State() string {
	if s.paused {
		return StatePaused
	}
	switch s.phase {
	case PhaseGameOver:
		return StateGameOver
	case PhaseRestarting:
		return StateRestarting
	default:
		return StatePlaying
	}
}

// EndGame moves PLAYING to GAME_OVER with the restart deadline at now+delay.
func (s *Session) EndGame(now, delay float64) bool {
	if s.phase != PhasePlaying {
		return false
	}
	s.phase = PhaseGameOver
	s.restartAt = now + delay
	return true
}

// RestartDue reports whether the game-over delay has run out.
func (s *Session) RestartDue(now float64) bool {
	return s.phase == PhaseGameOver && now >= s.restartAt
}

// BeginRestart enters RESTARTING.
func (s *Session) BeginRestart() {
	s.phase = PhaseRestarting
}

// FinishRestart returns to PLAYING with a new session number.
func (s *Session) FinishRestart() {
	s.phase = PhasePlaying
	s.restartAt = 0
	s.count++
}

// Countdown returns the seconds left before the restart, or 0 when not in GAME_OVER.
func (s *Session) Countdown(now float64) float64 {
	if s.phase != PhaseGameOver {
		return 0
	}
	if left := s.restartAt - now; left > 0 {
		return left
	}
	return 0
}
