package systems

import (
	"log"

	"github.com/decker502/orrery/pkg/components"
	"github.com/decker502/orrery/pkg/ecs"
)

// TriggerFunc 触发回调：kind 为过场类型，trigger 为触发器实体
type TriggerFunc func(kind string, trigger ecs.EntityID)

// ProximityTriggerSystem 距离触发检测
//
// 每帧读取本帧镜头位置，计算到原点的距离并与各触发器阈值比较。
// 同一时刻最多只有一个触发器处于待确认或冷却状态：
// 任何触发器冷却中、有待确认的延迟、或有过场正在播放时，所有触发器都不检测。
type ProximityTriggerSystem struct {
	entityManager *ecs.EntityManager
	cameraSystem  *CameraSystem
	onFire        TriggerFunc
}

// NewProximityTriggerSystem 创建距离触发系统
// 参数:
//   - em: EntityManager 实例
//   - cs: 镜头控制系统（读取位置、冻结镜头）
//   - onFire: 触发回调
func NewProximityTriggerSystem(em *ecs.EntityManager, cs *CameraSystem, onFire TriggerFunc) *ProximityTriggerSystem {
	return &ProximityTriggerSystem{
		entityManager: em,
		cameraSystem:  cs,
		onFire:        onFire,
	}
}

// Update 每帧检测
// 参数:
//   - now: 墙钟时间（秒）
//   - cinematicBusy: 是否有过场不在 Idle（播放中或冷却中）
func (s *ProximityTriggerSystem) Update(now float64, cinematicBusy bool) {
	if cinematicBusy {
		return
	}

	triggers := ecs.GetEntitiesWith1[*components.ProximityTriggerComponent](s.entityManager)

	// 待确认的延迟优先处理；未到期时阻塞其他触发器
	for _, id := range triggers {
		trigger, _ := ecs.GetComponent[*components.ProximityTriggerComponent](s.entityManager, id)
		if trigger.Pending {
			s.resolvePending(id, trigger, now)
			return
		}
	}

	for _, id := range triggers {
		trigger, _ := ecs.GetComponent[*components.ProximityTriggerComponent](s.entityManager, id)
		if trigger.IsCooling(now) {
			return
		}
	}

	distance := s.cameraSystem.Position().Length()
	mode := s.cameraSystem.Mode()

	for _, id := range triggers {
		trigger, _ := ecs.GetComponent[*components.ProximityTriggerComponent](s.entityManager, id)

		if trigger.ManualOnly && mode != components.CameraModeManual {
			continue
		}
		if !trigger.Comparison.Matches(distance, trigger.Threshold) {
			continue
		}

		if trigger.ConfirmDelay > 0 {
			// 镜头已被其他流程冻结时不开始新的确认
			if s.cameraSystem.IsFrozen() {
				continue
			}
			s.cameraSystem.Freeze(s.cameraSystem.Position())
			trigger.Pending = true
			trigger.PendingFireAt = now + trigger.ConfirmDelay
			trigger.FrozeCamera = true
			log.Printf("[ProximityTriggerSystem] %s threshold reached at distance %.2f, confirming in %.1fs",
				trigger.Kind, distance, trigger.ConfirmDelay)
			return
		}

		s.fire(id, trigger, distance)
		return
	}
}

// resolvePending 确认延迟到期后，用冻结位置重新判断距离
func (s *ProximityTriggerSystem) resolvePending(id ecs.EntityID, trigger *components.ProximityTriggerComponent, now float64) {
	if now < trigger.PendingFireAt {
		return
	}
	trigger.Pending = false

	distance := s.cameraSystem.FrozenPosition().Length()
	if trigger.Comparison.Matches(distance, trigger.Threshold) {
		s.fire(id, trigger, distance)
		return
	}

	log.Printf("[ProximityTriggerSystem] %s cancelled after confirm delay (distance %.2f)", trigger.Kind, distance)
	if trigger.FrozeCamera {
		trigger.FrozeCamera = false
		s.cameraSystem.Unfreeze()
	}
}

// fire 触发；镜头冻结的所有权交给过场
func (s *ProximityTriggerSystem) fire(id ecs.EntityID, trigger *components.ProximityTriggerComponent, distance float64) {
	trigger.FrozeCamera = false
	trigger.FireCount++
	log.Printf("[ProximityTriggerSystem] %s fired at distance %.2f (count %d)", trigger.Kind, distance, trigger.FireCount)
	if s.onFire != nil {
		s.onFire(trigger.Kind, id)
	}
}

// HasPending 是否有待确认的延迟
func (s *ProximityTriggerSystem) HasPending() bool {
	for _, id := range ecs.GetEntitiesWith1[*components.ProximityTriggerComponent](s.entityManager) {
		trigger, _ := ecs.GetComponent[*components.ProximityTriggerComponent](s.entityManager, id)
		if trigger.Pending {
			return true
		}
	}
	return false
}

// IsCooling 是否有触发器在冷却
func (s *ProximityTriggerSystem) IsCooling(now float64) bool {
	for _, id := range ecs.GetEntitiesWith1[*components.ProximityTriggerComponent](s.entityManager) {
		trigger, _ := ecs.GetComponent[*components.ProximityTriggerComponent](s.entityManager, id)
		if trigger.IsCooling(now) {
			return true
		}
	}
	return false
}

// Cancel 丢弃所有待确认的延迟，并解除由此造成的冻结（场景销毁时调用）
func (s *ProximityTriggerSystem) Cancel() {
	for _, id := range ecs.GetEntitiesWith1[*components.ProximityTriggerComponent](s.entityManager) {
		trigger, _ := ecs.GetComponent[*components.ProximityTriggerComponent](s.entityManager, id)
		if !trigger.Pending {
			continue
		}
		trigger.Pending = false
		if trigger.FrozeCamera {
			trigger.FrozeCamera = false
			s.cameraSystem.Unfreeze()
		}
		log.Printf("[ProximityTriggerSystem] Pending %s trigger cancelled", trigger.Kind)
	}
}
