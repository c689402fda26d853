package entities

import (
	"fmt"

	"github.com/decker502/orrery/pkg/components"
	"github.com/decker502/orrery/pkg/config"
	"github.com/decker502/orrery/pkg/ecs"
	"github.com/decker502/orrery/pkg/utils"
)

// SolarSystem 场景中全部天体实体的索引
type SolarSystem struct {
	Sun       ecs.EntityID
	Planets   map[string]ecs.EntityID
	Moons     []ecs.EntityID
	Asteroids []ecs.EntityID
	Kuiper    []ecs.EntityID
	Stars     []ecs.EntityID
}

// NewSunEntity 创建位于原点的太阳实体
func NewSunEntity(em *ecs.EntityManager, sun config.SunConfig) (ecs.EntityID, error) {
	if em == nil {
		return 0, fmt.Errorf("entity manager cannot be nil")
	}
	col, err := config.ParseHexColor(sun.Color)
	if err != nil {
		return 0, fmt.Errorf("sun: %w", err)
	}

	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.TransformComponent{})
	ecs.AddComponent(em, id, &components.BodyInfoComponent{
		Name:        sun.Name,
		Description: sun.Description,
		Kind:        components.BodySun,
		Radius:      sun.Radius,
		Color:       col,
	})
	return id, nil
}

// NewPlanetEntity 创建行星实体（不含卫星）
//
// 初始位置按模拟时间 0 计算，之后由 OrbitSystem 更新。
func NewPlanetEntity(em *ecs.EntityManager, planet config.PlanetConfig, verticalScale float64) (ecs.EntityID, error) {
	if em == nil {
		return 0, fmt.Errorf("entity manager cannot be nil")
	}
	elements := planet.Elements()
	if !elements.Valid() {
		return 0, fmt.Errorf("planet %s: invalid orbital elements (period %v, eccentricity %v)",
			planet.Name, planet.PeriodDays, planet.Eccentricity)
	}
	col, err := config.ParseHexColor(planet.Color)
	if err != nil {
		return 0, fmt.Errorf("planet %s: %w", planet.Name, err)
	}

	pose := utils.PositionAt(elements, 0, verticalScale)

	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.OrbitComponent{
		Elements:      elements,
		VerticalScale: verticalScale,
	})
	ecs.AddComponent(em, id, &components.TransformComponent{
		Position: pose.Position,
		Rotation: pose.Rotation,
	})
	ecs.AddComponent(em, id, &components.BodyInfoComponent{
		Name:        planet.Name,
		Description: planet.Description,
		Kind:        components.BodyPlanet,
		Radius:      planet.Radius,
		Color:       col,
		HasRings:    planet.HasRings,
	})
	return id, nil
}

// NewMoonEntity 创建卫星实体，位置相对母星
func NewMoonEntity(em *ecs.EntityManager, parentID ecs.EntityID, parent config.PlanetConfig, moon config.MoonConfig) (ecs.EntityID, error) {
	if em == nil {
		return 0, fmt.Errorf("entity manager cannot be nil")
	}
	if !em.Exists(parentID) {
		return 0, fmt.Errorf("moon %s: parent entity %d does not exist", moon.Name, parentID)
	}
	if moon.PeriodDays <= 0 {
		return 0, fmt.Errorf("moon %s: periodDays must be positive, got %v", moon.Name, moon.PeriodDays)
	}
	col, err := config.ParseHexColor(moon.Color)
	if err != nil {
		return 0, fmt.Errorf("moon %s: %w", moon.Name, err)
	}

	parentPos := utils.Origin
	if t, ok := ecs.GetComponent[*components.TransformComponent](em, parentID); ok {
		parentPos = t.Position
	}
	offset := utils.MoonOffsetAt(moon.DistanceFromParent, moon.PeriodDays, parent.Radius, 0)

	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.MoonOrbitComponent{
		Parent:             parentID,
		ParentRadius:       parent.Radius,
		DistanceFromParent: moon.DistanceFromParent,
		PeriodDays:         moon.PeriodDays,
	})
	ecs.AddComponent(em, id, &components.TransformComponent{
		Position: parentPos.Add(offset),
	})
	ecs.AddComponent(em, id, &components.BodyInfoComponent{
		Name:        moon.Name,
		Description: moon.Description,
		Kind:        components.BodyMoon,
		Radius:      moon.Radius,
		Color:       col,
		ParentName:  parent.Name,
	})
	return id, nil
}

// BuildSolarSystem 根据天体数据创建全部实体
func BuildSolarSystem(em *ecs.EntityManager, cfg *config.BodiesConfig) (*SolarSystem, error) {
	if cfg == nil {
		return nil, fmt.Errorf("bodies config cannot be nil")
	}

	sys := &SolarSystem{Planets: make(map[string]ecs.EntityID, len(cfg.Planets))}

	sunID, err := NewSunEntity(em, cfg.Sun)
	if err != nil {
		return nil, err
	}
	sys.Sun = sunID

	for _, planet := range cfg.Planets {
		pid, err := NewPlanetEntity(em, planet, cfg.VerticalScale)
		if err != nil {
			return nil, err
		}
		sys.Planets[planet.Name] = pid

		for _, moon := range planet.Moons {
			mid, err := NewMoonEntity(em, pid, planet, moon)
			if err != nil {
				return nil, err
			}
			sys.Moons = append(sys.Moons, mid)
		}
	}

	if sys.Asteroids, err = NewBeltEntities(em, cfg.AsteroidBelt, components.BodyAsteroid); err != nil {
		return nil, err
	}
	if sys.Kuiper, err = NewBeltEntities(em, cfg.KuiperBelt, components.BodyKuiperObject); err != nil {
		return nil, err
	}
	if sys.Stars, err = NewStarfield(em, cfg.Stars); err != nil {
		return nil, err
	}
	return sys, nil
}
