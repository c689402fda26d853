package systems

import (
	"math"

	"github.com/decker502/orrery/pkg/components"
	"github.com/decker502/orrery/pkg/ecs"
	"github.com/decker502/orrery/pkg/game"
)

// DefaultPickRadius 悬停拾取半径（像素）
const DefaultPickRadius = 8.0

// LayerForBody 天体类型对应的显示层
func LayerForBody(kind components.BodyKind) game.Layer {
	switch kind {
	case components.BodySun:
		return game.LayerSun
	case components.BodyPlanet:
		return game.LayerPlanets
	case components.BodyMoon:
		return game.LayerMoons
	case components.BodyAsteroid:
		return game.LayerAsteroidBelt
	case components.BodyKuiperObject:
		return game.LayerKuiperBelt
	default:
		return game.LayerStars
	}
}

// HoverSystem 鼠标悬停拾取
//
// 把可见天体投影到屏幕，选出离光标最近且在拾取半径内的一个，发布到 HoverBus。
// 过场播放期间不拾取（发布 nil）。背景星没有名字，不参与拾取。
type HoverSystem struct {
	entityManager *ecs.EntityManager
	camera        *game.PerspectiveCamera
	bus           *game.HoverBus
	pickRadius    float64
}

// NewHoverSystem 创建悬停系统
func NewHoverSystem(em *ecs.EntityManager, cam *game.PerspectiveCamera, bus *game.HoverBus) *HoverSystem {
	return &HoverSystem{
		entityManager: em,
		camera:        cam,
		bus:           bus,
		pickRadius:    DefaultPickRadius,
	}
}

// Update 按光标位置拾取
// 参数:
//   - cursorX, cursorY: 光标屏幕坐标
//   - width, height: 屏幕尺寸
//   - layers: 显示层开关（隐藏层不参与拾取）
//   - suppressed: 是否禁止拾取（过场播放中）
func (s *HoverSystem) Update(cursorX, cursorY, width, height float64, layers *game.SceneLayerToggles, suppressed bool) {
	if suppressed {
		s.bus.Publish(nil)
		return
	}
	s.bus.Publish(s.Pick(cursorX, cursorY, width, height, layers))
}

// Pick 返回光标下的天体信息（没有时返回 nil）
func (s *HoverSystem) Pick(cursorX, cursorY, width, height float64, layers *game.SceneLayerToggles) *game.HoverInfo {
	var best *components.BodyInfoComponent
	bestDist := math.Inf(1)
	bestDepth := math.Inf(1)

	ids := ecs.GetEntitiesWith2[*components.BodyInfoComponent, *components.TransformComponent](s.entityManager)
	for _, id := range ids {
		info, _ := ecs.GetComponent[*components.BodyInfoComponent](s.entityManager, id)
		if info.Kind == components.BodyStar || info.Name == "" {
			continue
		}
		if layers != nil && !layers.IsVisible(LayerForBody(info.Kind)) {
			continue
		}
		transform, _ := ecs.GetComponent[*components.TransformComponent](s.entityManager, id)

		sx, sy, depth, ok := s.camera.Project(transform.Position, width, height)
		if !ok {
			continue
		}
		radius := math.Max(s.pickRadius, s.camera.ProjectedRadius(info.Radius, depth, height))
		dist := math.Hypot(sx-cursorX, sy-cursorY)
		if dist > radius {
			continue
		}
		if dist < bestDist || (dist == bestDist && depth < bestDepth) {
			best, bestDist, bestDepth = info, dist, depth
		}
	}

	if best == nil {
		return nil
	}
	return &game.HoverInfo{
		Name:        best.Name,
		Description: best.Description,
		Category:    best.Kind.String(),
	}
}
