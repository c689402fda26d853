package components

import (
	"github.com/decker502/orrery/pkg/ecs"
	"github.com/decker502/orrery/pkg/utils"
)

// CinematicPhase 过场阶段
//
// Idle → Delaying → Playing → FadingOut → Returning → Cooldown → Idle
type CinematicPhase int

const (
	CinematicIdle      CinematicPhase = iota // 空闲，可被触发
	CinematicDelaying                        // 镜头已冻结，等待预延迟
	CinematicPlaying                         // 播放内容（图像/台词）
	CinematicFadingOut                       // 内容淡出，字幕隐藏
	CinematicReturning                       // 镜头飞回
	CinematicCooldown                        // 已解冻，冷却中
)

var cinematicPhaseNames = [...]string{"idle", "delaying", "playing", "fading_out", "returning", "cooldown"}

// String 返回阶段名称
func (p CinematicPhase) String() string {
	if p < 0 || int(p) >= len(cinematicPhaseNames) {
		return "unknown"
	}
	return cinematicPhaseNames[p]
}

// 回程子阶段
const (
	ReturnStageLeadIn      = iota // 在起点停留
	ReturnStageInterpolate        // 线性插值
	ReturnStageHold               // 到达终点后保持
)

// CinematicPhaseComponent 过场状态机组件
//
// 阶段计时器按帧累加，与模拟时钟无关（暂停模拟不会卡住过场）。
// Trigger 实体是触发本过场的距离触发器，冷却时间写回到该触发器。
type CinematicPhaseComponent struct {
	Kind       string         // 过场类型
	Phase      CinematicPhase // 当前阶段
	PhaseTimer float64        // 当前阶段已持续时间（秒）
	Trigger    ecs.EntityID   // 触发本次过场的触发器实体

	// Playing 阶段
	ContentAlpha   float64 // 内容透明度 [0, 1]
	CaptionVisible bool    // 字幕是否可见
	ContentLoaded  bool    // 收到加载完成通知
	ContentEnded   bool    // 收到播放结束通知
	ContentFailed  bool    // 收到加载失败通知
	FailedAt       float64 // 失败时的 PhaseTimer

	// Returning 阶段
	ReturnStage   int        // 回程子阶段
	ReturnStart   utils.Vec3 // 插值起点
	ReturnTimer   float64    // 子阶段计时器
	Interpolating bool       // 是否正在插值（HUD 显示用）

	CooldownUntil float64 // 冷却结束时间（墙钟秒）

	// Payload 本次过场展示的内容（如台词 ID），由订阅者在触发时设置
	Payload string

	CompletedCount int // 已完成次数
}

// IsActive 是否正在播放（冷却与空闲不算）
func (c *CinematicPhaseComponent) IsActive() bool {
	switch c.Phase {
	case CinematicDelaying, CinematicPlaying, CinematicFadingOut, CinematicReturning:
		return true
	default:
		return false
	}
}
