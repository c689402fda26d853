package systems

import (
	"math"
	"testing"

	"github.com/decker502/orrery/pkg/components"
	"github.com/decker502/orrery/pkg/config"
	"github.com/decker502/orrery/pkg/ecs"
	"github.com/decker502/orrery/pkg/game"
	"github.com/decker502/orrery/pkg/utils"
)

func newTestCameraSystem(t *testing.T, mode string) (*CameraSystem, *game.PerspectiveCamera) {
	t.Helper()
	cfg := config.DefaultCameraConfig()
	cfg.StartMode = mode
	cam := game.NewPerspectiveCamera(utils.Origin, cfg.FovDeg)
	return NewCameraSystem(ecs.NewEntityManager(), cam, cfg), cam
}

func framePressing(keys ...utils.KeyCode) utils.FrameInput {
	held := make(map[utils.KeyCode]bool, len(keys))
	for _, k := range keys {
		held[k] = true
	}
	return utils.FrameInput{Held: held, Pressed: keys}
}

func frameHolding(keys ...utils.KeyCode) utils.FrameInput {
	f := framePressing(keys...)
	f.Pressed = nil
	return f
}

func TestCameraSystem_InitialState(t *testing.T) {
	cs, cam := newTestCameraSystem(t, config.CameraModeAutomatic)

	if cs.Mode() != components.CameraModeAutomatic {
		t.Errorf("Expected automatic mode, got %v", cs.Mode())
	}
	if cam.Position() != cs.Config().InitialPosition {
		t.Errorf("Expected initial position %+v, got %+v", cs.Config().InitialPosition, cam.Position())
	}
	if cs.IsFrozen() {
		t.Error("camera should not start frozen")
	}
}

func TestCameraSystem_AutoToManualOnFirstMovement(t *testing.T) {
	cs, cam := newTestCameraSystem(t, config.CameraModeAutomatic)
	cs.Update(1.0/60, utils.FrameInput{})

	changes := 0
	cs.OnModeChange(func(components.CameraMode) { changes++ })

	before := cam.Position()
	cs.Update(1.0/60, framePressing(utils.KeyArrowUp))

	if cs.Mode() != components.CameraModeManual {
		t.Fatalf("Expected manual mode after ArrowUp, got %v", cs.Mode())
	}
	// 切换帧内的输入没有丢失：已经向上移动了一步
	wantY := before.Y + cs.Config().MoveStep
	if math.Abs(cam.Position().Y-wantY) > 1e-9 {
		t.Errorf("Expected Y %v after switching frame, got %v", wantY, cam.Position().Y)
	}

	cs.Update(1.0/60, frameHolding(utils.KeyArrowUp))
	cs.Update(1.0/60, framePressing(utils.KeyArrowLeft))

	if changes != 1 {
		t.Errorf("Expected exactly one mode change, got %d", changes)
	}
}

func TestCameraSystem_ToggleKey(t *testing.T) {
	cs, _ := newTestCameraSystem(t, config.CameraModeAutomatic)

	cs.Update(0.016, framePressing(utils.KeyToggleMode))
	if cs.Mode() != components.CameraModeManual {
		t.Fatalf("Expected manual after toggle, got %v", cs.Mode())
	}

	t.Run("手动模式下方向键不会切回自动", func(t *testing.T) {
		cs.Update(0.016, framePressing(utils.KeyArrowDown))
		if cs.Mode() != components.CameraModeManual {
			t.Errorf("Expected manual, got %v", cs.Mode())
		}
	})

	t.Run("只有切换键能回到自动", func(t *testing.T) {
		cs.Update(0.016, framePressing(utils.KeyToggleMode))
		if cs.Mode() != components.CameraModeAutomatic {
			t.Errorf("Expected automatic, got %v", cs.Mode())
		}
	})
}

func TestCameraSystem_PointerIgnoredInAutomatic(t *testing.T) {
	cs, cam := newTestCameraSystem(t, config.CameraModeAutomatic)

	cs.Update(0.5, utils.FrameInput{DragDX: 40, Wheel: 3})
	if cs.Mode() != components.CameraModeAutomatic {
		t.Errorf("pointer input should not switch mode, got %v", cs.Mode())
	}
	want := AutoCameraPosition(cs.Config(), 0.5)
	if cam.Position().DistanceTo(want) > 1e-9 {
		t.Errorf("Expected auto position %+v, got %+v", want, cam.Position())
	}
}

func TestCameraSystem_AutomaticElevationBounds(t *testing.T) {
	cfg := config.DefaultCameraConfig()
	minH := math.Sin(utils.DegToRad(cfg.VerticalMinDeg)) * cfg.AutoRadius
	maxH := math.Sin(utils.DegToRad(cfg.VerticalMaxDeg)) * cfg.AutoRadius

	// 一个完整的方位角周期
	period := 2 * math.Pi / cfg.AngularSpeed
	sawMin, sawMax := math.Inf(1), math.Inf(-1)
	for autoTime := 0.0; autoTime <= period; autoTime += 0.05 {
		p := AutoCameraPosition(cfg, autoTime)
		if p.Y < minH-1e-9 || p.Y > maxH+1e-9 {
			t.Fatalf("height %v outside [%v, %v] at t=%v", p.Y, minH, maxH, autoTime)
		}
		horizontal := math.Hypot(p.X, p.Z)
		if math.Abs(horizontal-cfg.AutoRadius) > 1e-9 {
			t.Fatalf("horizontal radius %v, want %v", horizontal, cfg.AutoRadius)
		}
		sawMin = math.Min(sawMin, p.Y)
		sawMax = math.Max(sawMax, p.Y)
	}

	// 竖直摆动频率更高，一个周期内应接近两端
	if sawMin > minH+1 || sawMax < maxH-1 {
		t.Errorf("elevation range [%v, %v] should reach near [%v, %v]", sawMin, sawMax, minH, maxH)
	}
}

func TestCameraSystem_FrozenPositionInvariant(t *testing.T) {
	modes := []string{config.CameraModeAutomatic, config.CameraModeManual}
	for _, mode := range modes {
		t.Run(mode, func(t *testing.T) {
			cs, cam := newTestCameraSystem(t, mode)
			cs.Update(0.016, utils.FrameInput{})

			at := utils.NewVec3(3, 1, 2)
			cs.Freeze(at)

			inputs := []utils.FrameInput{
				{},
				frameHolding(utils.KeyArrowUp, utils.KeyZoomIn),
				{DragDX: 50, DragDY: -20, PanDX: 10, Wheel: 2},
			}
			for i := 0; i < 30; i++ {
				cs.Update(0.1, inputs[i%len(inputs)])
				if cam.Position() != at {
					t.Fatalf("frame %d: frozen camera moved to %+v", i, cam.Position())
				}
			}

			next := utils.NewVec3(0, 10, 20)
			cs.SetFrozenPosition(next)
			cs.Update(0.1, frameHolding(utils.KeyArrowDown))
			if cam.Position() != next {
				t.Errorf("Expected %+v after SetFrozenPosition, got %+v", next, cam.Position())
			}
			if cam.Target() != utils.Origin {
				t.Errorf("frozen camera should look at the origin, got %+v", cam.Target())
			}
		})
	}
}

func TestCameraSystem_SetFrozenPositionIgnoredWhenNotFrozen(t *testing.T) {
	cs, cam := newTestCameraSystem(t, config.CameraModeManual)
	before := cam.Position()

	cs.SetFrozenPosition(utils.NewVec3(100, 100, 100))
	if cam.Position() != before {
		t.Errorf("SetFrozenPosition should be ignored when not frozen")
	}
}

func TestCameraSystem_UnfreezeResumesManual(t *testing.T) {
	cs, cam := newTestCameraSystem(t, config.CameraModeManual)
	cs.Freeze(utils.NewVec3(0, 5, 8))
	cs.SetFrozenPosition(utils.NewVec3(0, 45, 60))
	cs.Unfreeze()

	if cs.IsFrozen() {
		t.Fatal("camera should be unfrozen")
	}
	cs.Update(0.016, frameHolding(utils.KeyArrowUp))
	if math.Abs(cam.Position().Y-(45+cs.Config().MoveStep)) > 1e-9 {
		t.Errorf("manual control should continue from the frozen position, got %+v", cam.Position())
	}
}

func TestCameraSystem_ManualZoomClamp(t *testing.T) {
	cs, cam := newTestCameraSystem(t, config.CameraModeManual)
	cam.SetPosition(utils.NewVec3(0, 0, 1))

	for i := 0; i < 10; i++ {
		cs.Update(0.016, frameHolding(utils.KeyZoomIn))
	}
	if d := cam.Position().Length(); d < cs.Config().MinDistance-1e-9 {
		t.Errorf("zoom should stop at min distance %v, got %v", cs.Config().MinDistance, d)
	}

	cam.SetPosition(utils.NewVec3(0, 0, cs.Config().MaxDistance-1))
	for i := 0; i < 10; i++ {
		cs.Update(0.016, frameHolding(utils.KeyZoomOut))
	}
	if d := cam.Position().Length(); d > cs.Config().MaxDistance+1e-9 {
		t.Errorf("zoom should stop at max distance %v, got %v", cs.Config().MaxDistance, d)
	}
}

func TestCameraSystem_ManualLeftRight(t *testing.T) {
	cs, cam := newTestCameraSystem(t, config.CameraModeManual)
	cam.SetPosition(utils.NewVec3(0, 0, 50))
	cs.Update(0.016, utils.FrameInput{})

	right := cam.RightVector()
	cs.Update(0.016, frameHolding(utils.KeyArrowRight))
	moved := cam.Position().Sub(utils.NewVec3(0, 0, 50))

	if moved.Dot(right) <= 0 {
		t.Errorf("ArrowRight should move along the right vector, moved %+v, right %+v", moved, right)
	}
}
