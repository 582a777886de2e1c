package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/sanctuary/camera"
	"github.com/pthm-cable/sanctuary/game"
)

// InputState is one frame of player input, decoupled from raylib so the
// mapping to commands can be exercised without a window.
type InputState struct {
	Forward, Back       bool // Pressed or auto-repeated
	TurnLeft, TurnRight bool // Pressed or auto-repeated
	Feed                bool
	Shoot               bool
	Select              bool
	Pause               bool
	Camera              bool
	OrbitLeft           bool // Held
	OrbitRight          bool // Held
	ZoomIn, ZoomOut     bool // Held
}

// Keyboard is the subset of key polling ReadKeys needs.
type Keyboard interface {
	Down(key int32) bool
	Pressed(key int32) bool
	Repeated(key int32) bool
}

type raylibKeyboard struct{}

func (raylibKeyboard) Down(key int32) bool     { return rl.IsKeyDown(key) }
func (raylibKeyboard) Pressed(key int32) bool  { return rl.IsKeyPressed(key) }
func (raylibKeyboard) Repeated(key int32) bool { return rl.IsKeyPressedRepeat(key) }

// ReadInput polls raylib. Mouse clicks inside blocked are left to the GUI.
func ReadInput(blocked rl.Rectangle) InputState {
	s := ReadKeys(raylibKeyboard{})
	overGUI := rl.CheckCollisionPointRec(rl.GetMousePosition(), blocked)
	s.Shoot = !overGUI && rl.IsMouseButtonPressed(rl.MouseButtonLeft)
	s.Select = !overGUI && rl.IsMouseButtonPressed(rl.MouseButtonRight)
	return s
}

// ReadKeys maps keyboard state to input. Movement and turning advance one
// step per press and per OS key repeat, never once per frame.
func ReadKeys(kb Keyboard) InputState {
	stepped := func(key int32) bool {
		return kb.Pressed(key) || kb.Repeated(key)
	}
	return InputState{
		Forward:    stepped(rl.KeyW),
		Back:       stepped(rl.KeyS),
		TurnLeft:   stepped(rl.KeyA),
		TurnRight:  stepped(rl.KeyD),
		Feed:       kb.Pressed(rl.KeyF),
		Pause:      kb.Pressed(rl.KeyP),
		Camera:     kb.Pressed(rl.KeyC),
		OrbitLeft:  kb.Down(rl.KeyLeft),
		OrbitRight: kb.Down(rl.KeyRight),
		ZoomIn:     kb.Down(rl.KeyUp),
		ZoomOut:    kb.Down(rl.KeyDown),
	}
}

// Commands converts the frame's input into game commands. Pause and camera
// toggles come first so they apply before movement in the same frame.
func (s InputState) Commands() []game.Command {
	var cmds []game.Command
	if s.Pause {
		cmds = append(cmds, game.TogglePause{})
	}
	if s.Camera {
		cmds = append(cmds, game.ToggleCamera{})
	}
	if steps := axis(s.Forward, s.Back); steps != 0 {
		cmds = append(cmds, game.Move{Steps: steps})
	}
	// A turns counter-clockwise, which is a positive angle.
	if steps := axis(s.TurnLeft, s.TurnRight); steps != 0 {
		cmds = append(cmds, game.Rotate{Steps: steps})
	}
	if s.Feed {
		cmds = append(cmds, game.Feed{HabitatID: game.AnyHabitat})
	}
	if s.Shoot {
		cmds = append(cmds, game.ShootFromPlayer{})
	}
	if s.Select {
		cmds = append(cmds, game.SelectNearPlayer{})
	}
	return cmds
}

// ApplyRig orbits and zooms the overview camera.
func (s InputState) ApplyRig(rig *camera.Rig) {
	if steps := axis(s.OrbitLeft, s.OrbitRight); steps != 0 {
		rig.Orbit(steps)
	}
	if steps := axis(s.ZoomOut, s.ZoomIn); steps != 0 {
		rig.Zoom(steps)
	}
}

func axis(pos, neg bool) int {
	switch {
	case pos && !neg:
		return 1
	case neg && !pos:
		return -1
	}
	return 0
}
