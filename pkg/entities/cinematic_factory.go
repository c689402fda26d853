package entities

import (
	"fmt"

	"github.com/decker502/orrery/pkg/components"
	"github.com/decker502/orrery/pkg/config"
	"github.com/decker502/orrery/pkg/ecs"
)

// NewNearSunTriggerEntity 创建"靠近太阳"触发器
//
// 镜头距原点 <= NearThreshold 时命中，两种模式都检测；
// 命中后先冻结镜头，ConfirmDelay 秒后确认。
func NewNearSunTriggerEntity(em *ecs.EntityManager, cfg *config.CameraConfig) (ecs.EntityID, error) {
	if em == nil {
		return 0, fmt.Errorf("entity manager cannot be nil")
	}
	if cfg == nil {
		return 0, fmt.Errorf("camera config cannot be nil")
	}

	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.ProximityTriggerComponent{
		Kind:         config.CinematicSun,
		Threshold:    cfg.NearThreshold,
		Comparison:   components.TriggerWithin,
		ConfirmDelay: cfg.ConfirmDelay,
	})
	return id, nil
}

// NewFarBoundaryTriggerEntity 创建"飞出边界"触发器（只在手动模式下检测，立即触发）
func NewFarBoundaryTriggerEntity(em *ecs.EntityManager, cfg *config.CameraConfig) (ecs.EntityID, error) {
	if em == nil {
		return 0, fmt.Errorf("entity manager cannot be nil")
	}
	if cfg == nil {
		return 0, fmt.Errorf("camera config cannot be nil")
	}

	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.ProximityTriggerComponent{
		Kind:       config.CinematicMilkyWay,
		Threshold:  cfg.FarThreshold,
		Comparison: components.TriggerBeyond,
		ManualOnly: true,
	})
	return id, nil
}

// NewCinematicEntity 创建处于空闲阶段的过场实体
func NewCinematicEntity(em *ecs.EntityManager, kind string) (ecs.EntityID, error) {
	if em == nil {
		return 0, fmt.Errorf("entity manager cannot be nil")
	}
	if kind == "" {
		return 0, fmt.Errorf("cinematic kind cannot be empty")
	}

	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.CinematicPhaseComponent{
		Kind:  kind,
		Phase: components.CinematicIdle,
	})
	return id, nil
}
