package components

import "github.com/decker502/orrery/pkg/utils"

// CameraMode 镜头模式，两种模式互斥
type CameraMode int

const (
	// CameraModeAutomatic 自动巡航：绕原点圆周运动并上下摆动
	CameraModeAutomatic CameraMode = iota
	// CameraModeManual 手动控制：方向键/缩放键/鼠标
	CameraModeManual
)

// String 返回模式名称（用于日志和 HUD）
func (m CameraMode) String() string {
	switch m {
	case CameraModeAutomatic:
		return "automatic"
	case CameraModeManual:
		return "manual"
	default:
		return "unknown"
	}
}

// CameraComponent 镜头控制状态
//
// 镜头的实际位置保存在 game.Camera 中，这里只保存控制器状态。
// Frozen 为 true 时，任何模式都不会修改位置；
// 过场系统通过 SetFrozenPosition 驱动冻结位置（回程插值）。
type CameraComponent struct {
	// Mode 当前模式
	Mode CameraMode

	// Target 手动模式下的注视点（自动模式始终注视原点）
	Target utils.Vec3

	// Frozen 是否冻结
	Frozen bool

	// FrozenPosition 冻结期间渲染使用的位置（注视原点）
	FrozenPosition utils.Vec3

	// AutoTime 自动模式累计时间（秒，只在自动且未冻结时增长）
	AutoTime float64

	// AutoSpeedMultiplier 自动模式速度倍率（用户可调，默认 1）
	AutoSpeedMultiplier float64
}
