package systems

import (
	"fmt"
	"log"

	"github.com/decker502/orrery/pkg/components"
	"github.com/decker502/orrery/pkg/config"
	"github.com/decker502/orrery/pkg/ecs"
	"github.com/decker502/orrery/pkg/entities"
	"github.com/decker502/orrery/pkg/utils"
)

// CompleteFunc 过场结束回调（镜头解冻时调用，每次过场恰好一次）
type CompleteFunc func(kind string)

// CinematicSystem 单个过场的阶段状态机
//
// 阶段：Idle → Delaying → Playing → FadingOut → Returning → Cooldown → Idle
//
// 过场播放期间拥有镜头冻结：Delaying 冻结镜头，Returning 通过
// SetFrozenPosition 驱动回程插值，结束时解冻并写入触发器冷却时间。
// 所有计时按帧时间累加，与模拟时钟倍率无关。
type CinematicSystem struct {
	entityManager *ecs.EntityManager
	cameraSystem  *CameraSystem
	config        *config.CinematicConfig
	entity        ecs.EntityID
	onComplete    CompleteFunc
}

// NewCinematicSystem 创建过场系统和对应的过场实体
// 参数:
//   - em: EntityManager 实例
//   - cs: 镜头控制系统
//   - kind: 过场类型（sun / milky_way）
//   - cfg: 阶段时长配置
//   - onComplete: 结束回调（可为 nil）
func NewCinematicSystem(em *ecs.EntityManager, cs *CameraSystem, kind string, cfg *config.CinematicConfig, onComplete CompleteFunc) (*CinematicSystem, error) {
	if cs == nil {
		return nil, fmt.Errorf("camera system cannot be nil")
	}
	if cfg == nil {
		return nil, fmt.Errorf("cinematic %s: config cannot be nil", kind)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("cinematic %s: %w", kind, err)
	}

	id, err := entities.NewCinematicEntity(em, kind)
	if err != nil {
		return nil, err
	}

	return &CinematicSystem{
		entityManager: em,
		cameraSystem:  cs,
		config:        cfg,
		entity:        id,
		onComplete:    onComplete,
	}, nil
}

func (s *CinematicSystem) component() *components.CinematicPhaseComponent {
	comp, _ := ecs.GetComponent[*components.CinematicPhaseComponent](s.entityManager, s.entity)
	return comp
}

// Kind 过场类型
func (s *CinematicSystem) Kind() string {
	return s.component().Kind
}

// Config 阶段配置
func (s *CinematicSystem) Config() *config.CinematicConfig {
	return s.config
}

// State 返回状态组件（只读使用，供渲染层读取透明度和字幕可见性）
func (s *CinematicSystem) State() *components.CinematicPhaseComponent {
	return s.component()
}

// Phase 当前阶段
func (s *CinematicSystem) Phase() components.CinematicPhase {
	return s.component().Phase
}

// IsActive 是否正在播放（Delaying 到 Returning）
func (s *CinematicSystem) IsActive() bool {
	return s.component().IsActive()
}

// IsInterpolating 回程是否正在插值
func (s *CinematicSystem) IsInterpolating() bool {
	return s.component().Interpolating
}

// SetPayload 设置本次展示的内容（如台词 ID）
func (s *CinematicSystem) SetPayload(payload string) {
	s.component().Payload = payload
}

// Start 开始过场（只有 Idle 阶段可以开始）
// 参数:
//   - trigger: 触发本次过场的触发器实体，结束时写入其冷却时间
//
// 返回:
//   - bool: 是否成功开始
func (s *CinematicSystem) Start(trigger ecs.EntityID) bool {
	comp := s.component()
	if comp.Phase != components.CinematicIdle {
		log.Printf("[CinematicSystem] %s ignored start request in phase %s", comp.Kind, comp.Phase)
		return false
	}

	if !s.cameraSystem.IsFrozen() {
		s.cameraSystem.Freeze(s.cameraSystem.Position())
	}

	*comp = components.CinematicPhaseComponent{
		Kind:           comp.Kind,
		Phase:          components.CinematicDelaying,
		Trigger:        trigger,
		CompletedCount: comp.CompletedCount,
	}
	log.Printf("[CinematicSystem] %s started", comp.Kind)
	return true
}

// Update 推进阶段
// 参数:
//   - dt: 帧时间（秒）
//   - now: 墙钟时间（秒），用于冷却
func (s *CinematicSystem) Update(dt, now float64) {
	comp := s.component()
	if comp == nil {
		return
	}
	if dt < 0 {
		dt = 0
	}

	switch comp.Phase {
	case components.CinematicIdle:
		return

	case components.CinematicDelaying:
		comp.PhaseTimer += dt
		if comp.PhaseTimer >= s.config.PreRollDelay {
			s.enterPhase(comp, components.CinematicPlaying)
		}

	case components.CinematicPlaying:
		comp.PhaseTimer += dt
		s.updatePlaying(comp)

	case components.CinematicFadingOut:
		comp.PhaseTimer += dt
		comp.ContentAlpha = 1 - utils.Progress(comp.PhaseTimer, s.config.FadeDuration)
		if comp.PhaseTimer >= s.config.FadeDuration {
			comp.ContentAlpha = 0
			s.enterReturning(comp)
		}

	case components.CinematicReturning:
		comp.ReturnTimer += dt
		s.updateReturning(comp, now)

	case components.CinematicCooldown:
		if now >= comp.CooldownUntil {
			s.enterPhase(comp, components.CinematicIdle)
		}
	}
}

func (s *CinematicSystem) enterPhase(comp *components.CinematicPhaseComponent, phase components.CinematicPhase) {
	log.Printf("[CinematicSystem] %s: %s -> %s", comp.Kind, comp.Phase, phase)
	comp.Phase = phase
	comp.PhaseTimer = 0
}

// updatePlaying 播放阶段：淡入、字幕、结束条件
//
// 结束条件（任一满足）：
// - 达到 ContentDuration（硬上限，保证推进）
// - EndOnContentEnd 且收到内容结束通知
// - 内容加载失败后超过 FailureGrace
func (s *CinematicSystem) updatePlaying(comp *components.CinematicPhaseComponent) {
	if s.config.FadeInDuration > 0 {
		comp.ContentAlpha = utils.Progress(comp.PhaseTimer, s.config.FadeInDuration)
	} else {
		comp.ContentAlpha = 1
	}
	comp.CaptionVisible = comp.PhaseTimer >= s.config.CaptionDelay

	done := comp.PhaseTimer >= s.config.ContentDuration
	if s.config.EndOnContentEnd && comp.ContentEnded {
		done = true
	}
	if comp.ContentFailed && comp.PhaseTimer-comp.FailedAt >= s.config.FailureGrace {
		done = true
	}

	if done {
		comp.CaptionVisible = false
		s.enterPhase(comp, components.CinematicFadingOut)
	}
}

// enterReturning 进入回程：可选地跳到回程起点
func (s *CinematicSystem) enterReturning(comp *components.CinematicPhaseComponent) {
	s.enterPhase(comp, components.CinematicReturning)
	if s.config.ReturnFrom != nil {
		s.cameraSystem.SetFrozenPosition(*s.config.ReturnFrom)
	}
	comp.ReturnStart = s.cameraSystem.FrozenPosition()
	comp.ReturnStage = components.ReturnStageLeadIn
	comp.ReturnTimer = 0
}

// updateReturning 回程：停留 → 线性插值 → 保持 → 解冻
func (s *CinematicSystem) updateReturning(comp *components.CinematicPhaseComponent, now float64) {
	switch comp.ReturnStage {
	case components.ReturnStageLeadIn:
		if comp.ReturnTimer >= s.config.ReturnLeadIn {
			comp.ReturnStage = components.ReturnStageInterpolate
			comp.ReturnTimer = 0
			comp.Interpolating = true
		}

	case components.ReturnStageInterpolate:
		progress := utils.Progress(comp.ReturnTimer, s.config.ReturnDuration)
		s.cameraSystem.SetFrozenPosition(utils.LerpVec3(comp.ReturnStart, s.config.ReturnTo, progress))
		if progress >= 1 {
			comp.ReturnStage = components.ReturnStageHold
			comp.ReturnTimer = 0
			comp.Interpolating = false
		}

	case components.ReturnStageHold:
		if comp.ReturnTimer >= s.config.ReturnHold {
			s.finish(comp, now)
		}
	}
}

// finish 解冻、写入冷却、通知结束
func (s *CinematicSystem) finish(comp *components.CinematicPhaseComponent, now float64) {
	s.cameraSystem.Unfreeze()

	comp.CooldownUntil = now + s.config.CooldownDuration
	if trigger, ok := ecs.GetComponent[*components.ProximityTriggerComponent](s.entityManager, comp.Trigger); ok {
		trigger.CooldownUntil = comp.CooldownUntil
	}
	comp.CompletedCount++
	s.enterPhase(comp, components.CinematicCooldown)

	if s.onComplete != nil {
		s.onComplete(comp.Kind)
	}
}

// NotifyContentLoaded 内容加载完成
func (s *CinematicSystem) NotifyContentLoaded() {
	comp := s.component()
	if comp.Phase == components.CinematicIdle || comp.Phase == components.CinematicCooldown {
		return
	}
	comp.ContentLoaded = true
}

// NotifyContentEnded 内容播放结束（EndOnContentEnd 时提前结束播放阶段）
func (s *CinematicSystem) NotifyContentEnded() {
	comp := s.component()
	if !comp.IsActive() {
		return
	}
	comp.ContentEnded = true
}

// NotifyContentFailed 内容加载失败，FailureGrace 后结束播放阶段
// 重复的失败通知只记录第一次
func (s *CinematicSystem) NotifyContentFailed() {
	comp := s.component()
	if !comp.IsActive() || comp.ContentFailed {
		return
	}
	comp.ContentFailed = true
	comp.FailedAt = comp.PhaseTimer
	if comp.Phase != components.CinematicPlaying {
		comp.FailedAt = 0
	}
	log.Printf("[CinematicSystem] %s content failed, ending after %.1fs grace", comp.Kind, s.config.FailureGrace)
}

// Reset 回到 Idle，不调用任何回调（场景销毁时使用）
// 如果过场持有冻结则解冻
func (s *CinematicSystem) Reset() {
	comp := s.component()
	if comp == nil {
		return
	}
	if comp.IsActive() {
		s.cameraSystem.Unfreeze()
	}
	*comp = components.CinematicPhaseComponent{
		Kind:           comp.Kind,
		Phase:          components.CinematicIdle,
		CompletedCount: comp.CompletedCount,
	}
}
