// Package utils 提供通用工具函数
package utils

// KeyCode 与宿主无关的按键编码
// 宿主（ebiten / tcell）负责把自己的按键映射到这里
type KeyCode int

const (
	KeyUnknown KeyCode = iota
	KeyArrowUp
	KeyArrowDown
	KeyArrowLeft
	KeyArrowRight
	KeyZoomIn  // Z
	KeyZoomOut // X
	KeyToggleMode
)

var keyNames = map[KeyCode]string{
	KeyArrowUp:    "ArrowUp",
	KeyArrowDown:  "ArrowDown",
	KeyArrowLeft:  "ArrowLeft",
	KeyArrowRight: "ArrowRight",
	KeyZoomIn:     "Z",
	KeyZoomOut:    "X",
	KeyToggleMode: "Space",
}

// String 返回按键名称
func (k KeyCode) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	return "Unknown"
}

// IsMovementKey 是否为方向/缩放键（在自动模式下按下会切换到手动模式）
func (k KeyCode) IsMovementKey() bool {
	switch k {
	case KeyArrowUp, KeyArrowDown, KeyArrowLeft, KeyArrowRight, KeyZoomIn, KeyZoomOut:
		return true
	}
	return false
}

// isRecognized 是否为已知按键
func (k KeyCode) isRecognized() bool {
	_, ok := keyNames[k]
	return ok
}

// FrameInput 一帧的输入快照（由 InputState.ConsumeFrame 返回）
type FrameInput struct {
	// Held 本帧仍按住的键
	Held map[KeyCode]bool
	// Pressed 自上一帧以来新按下的键（按发生顺序，用于模式切换）
	Pressed []KeyCode
	// DragDX, DragDY 主键拖拽累计位移（像素）
	DragDX, DragDY float64
	// PanDX, PanDY 副键拖拽累计位移（像素）
	PanDX, PanDY float64
	// Wheel 滚轮累计值（正值表示拉近）
	Wheel float64
}

// IsHeld 本帧是否按住某键
func (f FrameInput) IsHeld(k KeyCode) bool {
	return f.Held[k]
}

// IsActive 本帧是否应响应某键：仍按住，或自上一帧以来按下过（两帧之间按下又松开的短按也算）
func (f FrameInput) IsActive(k KeyCode) bool {
	if f.Held[k] {
		return true
	}
	for _, p := range f.Pressed {
		if p == k {
			return true
		}
	}
	return false
}

// HasPointerInput 是否有任何指针输入
func (f FrameInput) HasPointerInput() bool {
	return f.DragDX != 0 || f.DragDY != 0 || f.PanDX != 0 || f.PanDY != 0 || f.Wheel != 0
}

// InputState 跟踪按住的键和指针位移
//
// 生命周期：启动时创建一次，随视图存在。
// 事件回调（OnKeyDown 等）随时写入，每帧开始时由 ConsumeFrame 取走。
type InputState struct {
	heldKeys map[KeyCode]bool
	pressed  []KeyCode

	dragDX, dragDY float64
	panDX, panDY   float64
	wheel          float64
}

// NewInputState 创建输入状态
func NewInputState() *InputState {
	return &InputState{
		heldKeys: make(map[KeyCode]bool),
		pressed:  make([]KeyCode, 0, 4),
	}
}

// OnKeyDown 按键按下
// 未识别的按键直接忽略；重复的按下事件（系统自动重复）不会重复记录 Pressed
func (s *InputState) OnKeyDown(code KeyCode) {
	if !code.isRecognized() {
		return
	}
	if s.heldKeys[code] {
		return
	}
	s.heldKeys[code] = true
	s.pressed = append(s.pressed, code)
}

// OnKeyUp 按键释放
func (s *InputState) OnKeyUp(code KeyCode) {
	if !code.isRecognized() {
		return
	}
	delete(s.heldKeys, code)
}

// OnPointerDrag 主键拖拽（旋转）
func (s *InputState) OnPointerDrag(dx, dy float64) {
	s.dragDX += dx
	s.dragDY += dy
}

// OnPointerPan 副键拖拽（平移）
func (s *InputState) OnPointerPan(dx, dy float64) {
	s.panDX += dx
	s.panDY += dy
}

// OnWheel 滚轮（正值拉近）
func (s *InputState) OnWheel(delta float64) {
	s.wheel += delta
}

// Blur 窗口失去焦点：清空所有按住的键
// 否则切走窗口时松开的键永远收不到 key-up
func (s *InputState) Blur() {
	for k := range s.heldKeys {
		delete(s.heldKeys, k)
	}
}

// IsHeld 当前是否按住某键
func (s *InputState) IsHeld(code KeyCode) bool {
	return s.heldKeys[code]
}

// ConsumeFrame 返回本帧输入快照，并重置位移与按下事件
// 按住状态保留到收到 key-up 或 Blur
func (s *InputState) ConsumeFrame() FrameInput {
	held := make(map[KeyCode]bool, len(s.heldKeys))
	for k, v := range s.heldKeys {
		held[k] = v
	}

	frame := FrameInput{
		Held:    held,
		Pressed: append([]KeyCode(nil), s.pressed...),
		DragDX:  s.dragDX,
		DragDY:  s.dragDY,
		PanDX:   s.panDX,
		PanDY:   s.panDY,
		Wheel:   s.wheel,
	}

	s.pressed = s.pressed[:0]
	s.dragDX, s.dragDY = 0, 0
	s.panDX, s.panDY = 0, 0
	s.wheel = 0

	return frame
}
