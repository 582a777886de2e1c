package game

import "testing"

func TestSessionTransitions(t *testing.T) {
	var s Session

	if s.State() != StatePlaying {
		t.Fatalf("zero session state = %s, want PLAYING", s.State())
	}
	if s.RestartDue(100) {
		t.Error("restart cannot be due while playing")
	}

	if !s.EndGame(10, 5) {
		t.Fatal("EndGame from PLAYING should succeed")
	}
	if s.EndGame(11, 5) {
		t.Error("EndGame should not re-arm the deadline")
	}

	tests := []struct {
		now       float64
		due       bool
		countdown float64
	}{
		{10, false, 5},
		{12.5, false, 2.5},
		{15, true, 0},
		{20, true, 0},
	}
	for _, tt := range tests {
		if got := s.RestartDue(tt.now); got != tt.due {
			t.Errorf("RestartDue(%v) = %v, want %v", tt.now, got, tt.due)
		}
		if got := s.Countdown(tt.now); got != tt.countdown {
			t.Errorf("Countdown(%v) = %v, want %v", tt.now, got, tt.countdown)
		}
	}

	s.BeginRestart()
	if s.State() != StateRestarting {
		t.Errorf("state = %s, want RESTARTING", s.State())
	}
	s.FinishRestart()
	if s.State() != StatePlaying || s.Number() != 1 {
		t.Errorf("state %s session %d, want PLAYING and 1", s.State(), s.Number())
	}
}

func TestSessionPauseOverridesPhase(t *testing.T) {
	var s Session
	s.EndGame(0, 5)
	s.TogglePause()
	if s.State() != StatePaused {
		t.Errorf("state = %s, want PAUSED", s.State())
	}
	s.TogglePause()
	if s.State() != StateGameOver {
		t.Errorf("state = %s, want GAME_OVER after resume", s.State())
	}
}
