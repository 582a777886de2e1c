package ui

import (
	"fmt"
	"sort"
	"time"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/sanctuary/game"
	"github.com/pthm-cable/sanctuary/renderer"
	"github.com/pthm-cable/sanctuary/telemetry"
)

// Controls is the key legend drawn along the bottom edge.
const Controls = "W/S: Move | A/D: Turn | F: Feed | LMB: Dart | RMB: Select | P: Pause | C: Camera | Arrows: Orbit/Zoom"

// HUD renders the main heads-up display.
type HUD struct {
	renderer  *Renderer
	inspector PanelDescriptor
	phases    *telemetry.PhaseRegistry
	ShowPerf  bool
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{
		renderer:  NewRenderer(),
		inspector: AnimalPanel(),
		phases:    telemetry.NewPhaseRegistry(),
	}
}

// PauseButton is the screen rectangle of the pause button.
func PauseButton(screenW int32) rl.Rectangle {
	return rl.Rectangle{X: float32(screenW - 130), Y: 10, Width: 120, Height: 30}
}

// Draw renders the HUD for s and returns any commands issued through it.
func (h *HUD) Draw(s game.Snapshot, screenW, screenH int32) []game.Command {
	var cmds []game.Command
	r := h.renderer

	rl.DrawText("Sanctuary", 10, 10, 20, rl.White)
	rl.DrawText(
		fmt.Sprintf("Score: %d | Currency: %d | Time: %s", s.Score, s.Currency, clockText(s.GameTime)),
		10, 35, 16, rl.LightGray,
	)
	rl.DrawText(
		fmt.Sprintf("Animals: %d alive, %d dead, %d captured | Poachers: %d", s.Alive, s.Dead, s.Captured, len(s.Poachers)),
		10, 55, 16, rl.LightGray,
	)
	rl.DrawText(fmt.Sprintf("View: %s", s.CameraMode), 10, 75, 16, rl.Gray)

	y := int32(100)
	for _, hab := range s.Habitats {
		color := renderer.HabitatColor(hab.Color)
		rl.DrawRectangle(10, y+2, 12, 12, color)
		rl.DrawText(fmt.Sprintf("%s food: %d", hab.Name, hab.Food), 28, y, 14, rl.LightGray)
		y += r.Theme.LineHeight
	}

	if !s.Player.CanShoot {
		rl.DrawText("Reloading...", 10, y+4, 14, rl.Orange)
	}

	label := "Pause"
	if s.State == game.StatePaused {
		label = "Resume"
	}
	if gui.Button(PauseButton(screenW), label) {
		cmds = append(cmds, game.TogglePause{})
	}

	if s.Selected >= 0 && s.Selected < len(s.Animals) {
		h.renderer.DrawPanelDescriptor(h.inspector, s.Animals[s.Selected], screenW, screenH)
	}

	if s.HungerWarning {
		h.drawBanner("Animals are hungry! Press F near a feeding station.", screenW, screenH/2-120, 20, r.Theme.WarningColor)
	}

	switch s.State {
	case game.StatePaused:
		h.drawBanner("PAUSED", screenW, screenH/2-20, r.Theme.BannerSize, rl.Yellow)
	case game.StateGameOver:
		h.drawBanner("GAME OVER", screenW, screenH/2-40, r.Theme.BannerSize, r.Theme.WarningColor)
		h.drawBanner(fmt.Sprintf("Final score %d. Restarting in %.0f...", s.Score, s.RestartIn), screenW, screenH/2+10, 20, rl.White)
	case game.StateRestarting:
		h.drawBanner("Restarting...", screenW, screenH/2-20, 20, rl.White)
	}

	rl.DrawText(Controls, 10, screenH-25, 14, rl.Gray)
	return cmds
}

func (h *HUD) drawBanner(text string, screenW, y, size int32, color rl.Color) {
	w := rl.MeasureText(text, size)
	rl.DrawText(text, (screenW-w)/2, y, size, color)
}

// DrawPerf renders tick timing per phase, slowest first.
func (h *HUD) DrawPerf(stats telemetry.PerfStats, x, y int32) {
	if !h.ShowPerf {
		return
	}
	rl.DrawText("Tick Performance", x, y, 16, rl.White)
	y += 20
	rl.DrawText(fmt.Sprintf("Avg: %s | FPS: %.0f", stats.AvgTick.Round(time.Microsecond), stats.FPS), x, y, 14, rl.Yellow)
	y += 16

	for _, t := range phasesBySlowest(stats) {
		color := rl.LightGray
		if t.Share > 40 {
			color = rl.Red
		} else if t.Share > 20 {
			color = rl.Orange
		}
		rl.DrawText(
			fmt.Sprintf("%-10s %6s %5.1f%%", h.phases.Name(t.Phase), t.Avg.Round(time.Microsecond), t.Share),
			x, y, 12, color,
		)
		y += 14
	}
}

// phasesBySlowest orders a copy of the phase timings, ties in step order.
func phasesBySlowest(stats telemetry.PerfStats) []telemetry.PhaseTiming {
	out := append([]telemetry.PhaseTiming(nil), stats.Phases...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Avg > out[j].Avg
	})
	return out
}

// clockText formats seconds as m:ss.
func clockText(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	total := int(seconds)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}
