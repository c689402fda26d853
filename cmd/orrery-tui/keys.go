package main

import (
	"time"

	"github.com/decker502/orrery/pkg/utils"
	"github.com/gdamore/tcell/v2"
)

// holdWindow 终端没有按键释放事件：超过该时间没有收到重复按键就视为松开
// 需要比终端自动重复的首次延迟长，否则按住时会断断续续
const holdWindow = 550 * time.Millisecond

// tcellKeys 特殊键映射
var tcellKeys = map[tcell.Key]utils.KeyCode{
	tcell.KeyUp:    utils.KeyArrowUp,
	tcell.KeyDown:  utils.KeyArrowDown,
	tcell.KeyLeft:  utils.KeyArrowLeft,
	tcell.KeyRight: utils.KeyArrowRight,
}

// runeKeys 字符键映射
var runeKeys = map[rune]utils.KeyCode{
	'z': utils.KeyZoomIn,
	'Z': utils.KeyZoomIn,
	'x': utils.KeyZoomOut,
	'X': utils.KeyZoomOut,
	' ': utils.KeyToggleMode,
}

// keyCodeFor 返回终端按键对应的镜头按键（未映射时为 KeyUnknown）
func keyCodeFor(ev *tcell.EventKey) utils.KeyCode {
	if ev.Key() == tcell.KeyRune {
		if code, ok := runeKeys[ev.Rune()]; ok {
			return code
		}
		return utils.KeyUnknown
	}
	if code, ok := tcellKeys[ev.Key()]; ok {
		return code
	}
	return utils.KeyUnknown
}

// keyHold 用自动重复模拟按住状态
//
// 方向键和缩放键：第一次按下时 OnKeyDown，之后的重复只刷新时间，
// 超过 window 没有重复就 OnKeyUp。
// 模式切换键是单击：按下后立即释放，Pressed 边沿仍会被下一帧读到。
type keyHold struct {
	state    *utils.InputState
	window   time.Duration
	lastSeen map[utils.KeyCode]time.Time
}

func newKeyHold(state *utils.InputState, window time.Duration) *keyHold {
	return &keyHold{
		state:    state,
		window:   window,
		lastSeen: make(map[utils.KeyCode]time.Time),
	}
}

// press 记录一次按键事件
func (k *keyHold) press(code utils.KeyCode, now time.Time) {
	if code == utils.KeyUnknown {
		return
	}
	if !code.IsMovementKey() {
		k.state.OnKeyDown(code)
		k.state.OnKeyUp(code)
		return
	}
	if _, held := k.lastSeen[code]; !held {
		k.state.OnKeyDown(code)
	}
	k.lastSeen[code] = now
}

// expire 释放超时的按键（每帧调用一次）
func (k *keyHold) expire(now time.Time) {
	for code, seen := range k.lastSeen {
		if now.Sub(seen) > k.window {
			k.state.OnKeyUp(code)
			delete(k.lastSeen, code)
		}
	}
}

// releaseAll 释放全部按键（终端失去焦点时）
func (k *keyHold) releaseAll() {
	for code := range k.lastSeen {
		delete(k.lastSeen, code)
	}
	k.state.Blur()
}
