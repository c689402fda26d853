package main

import (
	"testing"
	"time"

	"github.com/decker502/orrery/pkg/utils"
	"github.com/gdamore/tcell/v2"
)

func TestKeyCodeFor(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want utils.KeyCode
	}{
		{"上方向键", tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), utils.KeyArrowUp},
		{"右方向键", tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone), utils.KeyArrowRight},
		{"小写 z", tcell.NewEventKey(tcell.KeyRune, 'z', tcell.ModNone), utils.KeyZoomIn},
		{"大写 X", tcell.NewEventKey(tcell.KeyRune, 'X', tcell.ModNone), utils.KeyZoomOut},
		{"空格", tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), utils.KeyToggleMode},
		{"未映射字符", tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), utils.KeyUnknown},
		{"未映射特殊键", tcell.NewEventKey(tcell.KeyF5, 0, tcell.ModNone), utils.KeyUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := keyCodeFor(tt.ev); got != tt.want {
				t.Errorf("keyCodeFor() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestKeyHold_MovementKey(t *testing.T) {
	state := utils.NewInputState()
	hold := newKeyHold(state, 100*time.Millisecond)
	start := time.Now()

	hold.press(utils.KeyArrowUp, start)
	hold.press(utils.KeyArrowUp, start.Add(50*time.Millisecond))

	frame := state.ConsumeFrame()
	if len(frame.Pressed) != 1 {
		t.Errorf("repeats should produce a single press edge, got %v", frame.Pressed)
	}

	hold.expire(start.Add(120 * time.Millisecond))
	if !state.IsHeld(utils.KeyArrowUp) {
		t.Error("key should still be held within the window after the last repeat")
	}

	hold.expire(start.Add(200 * time.Millisecond))
	if state.IsHeld(utils.KeyArrowUp) {
		t.Error("key should be released after the hold window")
	}
}

func TestKeyHold_ToggleIsTap(t *testing.T) {
	state := utils.NewInputState()
	hold := newKeyHold(state, time.Second)

	hold.press(utils.KeyToggleMode, time.Now())
	if state.IsHeld(utils.KeyToggleMode) {
		t.Error("toggle key should be released immediately")
	}
	frame := state.ConsumeFrame()
	if len(frame.Pressed) != 1 || frame.Pressed[0] != utils.KeyToggleMode {
		t.Errorf("toggle press edge should still reach the frame, got %v", frame.Pressed)
	}
}

func TestKeyHold_ReleaseAll(t *testing.T) {
	state := utils.NewInputState()
	hold := newKeyHold(state, time.Second)
	hold.press(utils.KeyArrowLeft, time.Now())
	hold.press(utils.KeyZoomIn, time.Now())

	hold.releaseAll()
	if state.IsHeld(utils.KeyArrowLeft) || state.IsHeld(utils.KeyZoomIn) {
		t.Error("releaseAll should clear every held key")
	}
	hold.press(utils.KeyArrowLeft, time.Now())
	if !state.IsHeld(utils.KeyArrowLeft) {
		t.Error("key should be pressable again after releaseAll")
	}
}
