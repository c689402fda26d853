package systems

import (
	"github.com/decker502/orrery/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// hostKeys ebiten 按键到镜头按键的映射
var hostKeys = map[ebiten.Key]utils.KeyCode{
	ebiten.KeyArrowUp:    utils.KeyArrowUp,
	ebiten.KeyArrowDown:  utils.KeyArrowDown,
	ebiten.KeyArrowLeft:  utils.KeyArrowLeft,
	ebiten.KeyArrowRight: utils.KeyArrowRight,
	ebiten.KeyZ:          utils.KeyZoomIn,
	ebiten.KeyX:          utils.KeyZoomOut,
	ebiten.KeySpace:      utils.KeyToggleMode,
}

// KeyCodeFor 返回 ebiten 按键对应的镜头按键（未映射时为 KeyUnknown）
func KeyCodeFor(key ebiten.Key) utils.KeyCode {
	if code, ok := hostKeys[key]; ok {
		return code
	}
	return utils.KeyUnknown
}

// InputSystem 把 ebiten 的键盘/鼠标状态转换为 InputState 事件
//
// - 按键：inpututil 的按下/释放边沿 → OnKeyDown / OnKeyUp
// - 左键拖拽 → OnPointerDrag（旋转），右键拖拽 → OnPointerPan（平移）
// - 滚轮 → OnWheel（正值拉近）
// - 触屏：单指拖动等同左键，双指拖动等同右键
// - 窗口失去焦点 → Blur，避免按键卡住
type InputSystem struct {
	state *utils.InputState

	lastX, lastY int
	dragging     bool
	panning      bool
	focused      bool

	justPressed  []ebiten.Key
	justReleased []ebiten.Key

	touchIDs []ebiten.TouchID
	touch    touchTracker
}

// touchTracker 记录上一帧触点的质心和数量
// 触点数量变化的那一帧只更新质心，不产生位移，避免抬起一根手指时镜头跳动
type touchTracker struct {
	count  int
	cx, cy float64
}

// track 输入本帧触点坐标，返回质心位移以及是否为平移手势
func (t *touchTracker) track(xs, ys []float64) (dx, dy float64, pan, moved bool) {
	n := len(xs)
	if n == 0 {
		t.count = 0
		return 0, 0, false, false
	}
	var cx, cy float64
	for i := range xs {
		cx += xs[i]
		cy += ys[i]
	}
	cx /= float64(n)
	cy /= float64(n)

	if n == t.count {
		dx, dy, moved = cx-t.cx, cy-t.cy, true
	}
	t.count, t.cx, t.cy = n, cx, cy
	return dx, dy, n >= 2, moved
}

// NewInputSystem 创建输入适配系统
func NewInputSystem(state *utils.InputState) *InputSystem {
	return &InputSystem{
		state:   state,
		focused: true,
	}
}

// Update 每帧轮询一次（在 Director.Update 之前调用）
func (s *InputSystem) Update() {
	if !ebiten.IsFocused() {
		if s.focused {
			s.state.Blur()
			s.dragging, s.panning = false, false
		}
		s.focused = false
		return
	}
	s.focused = true

	s.justPressed = inpututil.AppendJustPressedKeys(s.justPressed[:0])
	for _, k := range s.justPressed {
		s.state.OnKeyDown(KeyCodeFor(k))
	}
	s.justReleased = inpututil.AppendJustReleasedKeys(s.justReleased[:0])
	for _, k := range s.justReleased {
		s.state.OnKeyUp(KeyCodeFor(k))
	}

	x, y := ebiten.CursorPosition()
	dx, dy := float64(x-s.lastX), float64(y-s.lastY)

	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		if s.dragging {
			s.state.OnPointerDrag(dx, dy)
		}
		s.dragging = true
	} else {
		s.dragging = false
	}

	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight) {
		if s.panning {
			s.state.OnPointerPan(dx, dy)
		}
		s.panning = true
	} else {
		s.panning = false
	}

	if _, wy := ebiten.Wheel(); wy != 0 {
		s.state.OnWheel(wy)
	}

	s.lastX, s.lastY = x, y
	s.updateTouches()
}

// updateTouches 触屏手势转换为拖拽/平移
func (s *InputSystem) updateTouches() {
	s.touchIDs = ebiten.AppendTouchIDs(s.touchIDs[:0])
	xs := make([]float64, 0, len(s.touchIDs))
	ys := make([]float64, 0, len(s.touchIDs))
	for _, id := range s.touchIDs {
		x, y := ebiten.TouchPosition(id)
		xs = append(xs, float64(x))
		ys = append(ys, float64(y))
	}

	dx, dy, pan, moved := s.touch.track(xs, ys)
	if len(xs) > 0 {
		s.lastX, s.lastY = int(xs[0]), int(ys[0])
	}
	if !moved || (dx == 0 && dy == 0) {
		return
	}
	if pan {
		s.state.OnPointerPan(dx, dy)
	} else {
		s.state.OnPointerDrag(dx, dy)
	}
}

// Cursor 当前光标位置（悬停拾取使用）
func (s *InputSystem) Cursor() (float64, float64) {
	return float64(s.lastX), float64(s.lastY)
}
