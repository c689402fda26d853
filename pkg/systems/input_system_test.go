package systems

import (
	"testing"

	"github.com/decker502/orrery/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
)

func TestKeyCodeFor(t *testing.T) {
	tests := []struct {
		key  ebiten.Key
		want utils.KeyCode
	}{
		{ebiten.KeyArrowUp, utils.KeyArrowUp},
		{ebiten.KeyArrowDown, utils.KeyArrowDown},
		{ebiten.KeyArrowLeft, utils.KeyArrowLeft},
		{ebiten.KeyArrowRight, utils.KeyArrowRight},
		{ebiten.KeyZ, utils.KeyZoomIn},
		{ebiten.KeyX, utils.KeyZoomOut},
		{ebiten.KeySpace, utils.KeyToggleMode},
		{ebiten.KeyQ, utils.KeyUnknown},
		{ebiten.KeyP, utils.KeyUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.key.String(), func(t *testing.T) {
			if got := KeyCodeFor(tt.key); got != tt.want {
				t.Errorf("KeyCodeFor(%v) = %v, want %v", tt.key, got, tt.want)
			}
		})
	}
}

func TestKeyCodeFor_UnknownIsNoOp(t *testing.T) {
	state := utils.NewInputState()
	state.OnKeyDown(KeyCodeFor(ebiten.KeyQ))

	frame := state.ConsumeFrame()
	if len(frame.Pressed) != 0 || len(frame.Held) != 0 {
		t.Errorf("unmapped key should not reach the input state, got %+v", frame)
	}
}

func TestTouchTracker(t *testing.T) {
	var tr touchTracker

	t.Run("第一帧只记录质心", func(t *testing.T) {
		if _, _, _, moved := tr.track([]float64{100}, []float64{100}); moved {
			t.Error("first touch frame should not move")
		}
	})

	t.Run("单指拖动", func(t *testing.T) {
		dx, dy, pan, moved := tr.track([]float64{110}, []float64{95})
		if !moved || pan {
			t.Fatalf("Expected drag, got moved=%v pan=%v", moved, pan)
		}
		if dx != 10 || dy != -5 {
			t.Errorf("Expected (10,-5), got (%v,%v)", dx, dy)
		}
	})

	t.Run("触点数量变化时不跳动", func(t *testing.T) {
		if _, _, _, moved := tr.track([]float64{110, 300}, []float64{95, 95}); moved {
			t.Error("finger count change should not produce a delta")
		}
	})

	t.Run("双指平移", func(t *testing.T) {
		dx, _, pan, moved := tr.track([]float64{120, 310}, []float64{95, 95})
		if !moved || !pan {
			t.Fatalf("Expected pan, got moved=%v pan=%v", moved, pan)
		}
		if dx != 10 {
			t.Errorf("Expected centroid dx 10, got %v", dx)
		}
	})

	t.Run("全部抬起后重置", func(t *testing.T) {
		tr.track(nil, nil)
		if tr.count != 0 {
			t.Errorf("Expected count reset, got %d", tr.count)
		}
	})
}
