package renderer

import (
	"math"
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/pthm-cable/sanctuary/camera"
	"github.com/pthm-cable/sanctuary/game"
)

func TestToRL(t *testing.T) {
	tests := []struct {
		in   mgl64.Vec3
		want rl.Vector3
	}{
		{mgl64.Vec3{0, 0, 1}, rl.NewVector3(0, 1, 0)},
		{mgl64.Vec3{1, 0, 0}, rl.NewVector3(1, 0, 0)},
		{mgl64.Vec3{0, 1, 0}, rl.NewVector3(0, 0, -1)},
		{mgl64.Vec3{-400, 400, 20}, rl.NewVector3(-400, 20, -400)},
	}
	for _, tt := range tests {
		if got := ToRL(tt.in); got != tt.want {
			t.Errorf("ToRL(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestCameraFromView(t *testing.T) {
	rig := camera.New()
	view := rig.View(camera.ThirdPerson, camera.Pose{})
	cam := Camera(view)

	if cam.Up != rl.NewVector3(0, 1, 0) {
		t.Errorf("up = %v, want raylib +y", cam.Up)
	}
	if math.Abs(float64(cam.Position.Y)-350) > 1e-3 || math.Abs(float64(cam.Position.Z)+500) > 1e-3 {
		t.Errorf("overview eye = %v, want (0, 350, -500)", cam.Position)
	}
	if cam.Fovy != 90 || cam.Projection != rl.CameraPerspective {
		t.Errorf("unexpected projection: fovy=%v proj=%v", cam.Fovy, cam.Projection)
	}
}

func TestHabitatColor(t *testing.T) {
	c := HabitatColor([3]float32{0.2, 0.5, 1.5})
	if c.R != 51 || c.G != 128 || c.B != 255 || c.A != 255 {
		t.Errorf("HabitatColor = %+v", c)
	}
	if c := HabitatColor([3]float32{-1, 0, 0}); c.R != 0 {
		t.Errorf("negative channel should clamp to 0, got %d", c.R)
	}
}

func TestAnimalColor(t *testing.T) {
	happy := AnimalColor(game.AnimalView{State: "WANDER", Happiness: 100})
	sad := AnimalColor(game.AnimalView{State: "WANDER", Happiness: 0})
	if happy.G <= sad.G || happy.R >= sad.R {
		t.Errorf("happiness should shift toward green: happy=%+v sad=%+v", happy, sad)
	}
	if AnimalColor(game.AnimalView{State: "DEAD", Happiness: 100}) != rl.DarkGray {
		t.Error("dead animals should be gray regardless of happiness")
	}
	if AnimalColor(game.AnimalView{State: "CAPTURED"}) != rl.Red {
		t.Error("captured animals should be red")
	}
}
