package systems

import (
	"github.com/decker502/orrery/pkg/components"
	"github.com/decker502/orrery/pkg/ecs"
	"github.com/decker502/orrery/pkg/utils"
)

// OrbitSystem 根据模拟时间更新所有天体的世界坐标
//
// 顺序：行星 → 卫星（依赖母星本帧位置）→ 小行星带/柯伊伯带粒子。
// 所有位置都由模拟时间直接算出，不累积误差。
type OrbitSystem struct {
	entityManager *ecs.EntityManager
}

// NewOrbitSystem 创建轨道系统
func NewOrbitSystem(em *ecs.EntityManager) *OrbitSystem {
	return &OrbitSystem{entityManager: em}
}

// Update 按模拟时间 elapsed（模拟日）重新计算位置
func (s *OrbitSystem) Update(elapsed float64) {
	planets := ecs.GetEntitiesWith2[*components.OrbitComponent, *components.TransformComponent](s.entityManager)
	for _, id := range planets {
		orbit, _ := ecs.GetComponent[*components.OrbitComponent](s.entityManager, id)
		transform, _ := ecs.GetComponent[*components.TransformComponent](s.entityManager, id)

		pose := utils.PositionAt(orbit.Elements, elapsed, orbit.VerticalScale)
		transform.Position = pose.Position
		transform.Rotation = pose.Rotation
	}

	moons := ecs.GetEntitiesWith2[*components.MoonOrbitComponent, *components.TransformComponent](s.entityManager)
	for _, id := range moons {
		moon, _ := ecs.GetComponent[*components.MoonOrbitComponent](s.entityManager, id)
		transform, _ := ecs.GetComponent[*components.TransformComponent](s.entityManager, id)

		parent, ok := ecs.GetComponent[*components.TransformComponent](s.entityManager, moon.Parent)
		if !ok {
			continue
		}
		offset := utils.MoonOffsetAt(moon.DistanceFromParent, moon.PeriodDays, moon.ParentRadius, elapsed)
		transform.Position = parent.Position.Add(offset)
		transform.Rotation.Y = elapsed * utils.BodySpinRate
	}

	particles := ecs.GetEntitiesWith2[*components.BeltParticleComponent, *components.TransformComponent](s.entityManager)
	for _, id := range particles {
		p, _ := ecs.GetComponent[*components.BeltParticleComponent](s.entityManager, id)
		transform, _ := ecs.GetComponent[*components.TransformComponent](s.entityManager, id)

		transform.Position = utils.BeltPositionAt(p.Radius, p.StartAngle, p.Height, p.Speed, elapsed)
		transform.Rotation.X = elapsed * p.SpinSpeed
		transform.Rotation.Y = elapsed * p.SpinSpeed
	}
}
