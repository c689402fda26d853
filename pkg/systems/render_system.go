package systems

import (
	"image/color"
	"math"
	"sort"

	"github.com/decker502/orrery/pkg/components"
	"github.com/decker502/orrery/pkg/ecs"
	"github.com/decker502/orrery/pkg/game"
	"github.com/decker502/orrery/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	// orbitSegments 轨道环折线段数
	orbitSegments = 128
	// ringSegments 行星环折线段数
	ringSegments = 48
	// minBodyPixels 天体最小绘制半径（太远时仍然可见）
	minBodyPixels = 1.5
)

var (
	orbitColor     = color.RGBA{R: 0x55, G: 0x66, B: 0x88, A: 0x70}
	ringColor      = color.RGBA{R: 0xc8, G: 0xb4, B: 0x8c, A: 0xb0}
	sunGlowColor   = color.RGBA{R: 0xff, G: 0xcc, B: 0x33, A: 0x40}
	milkyWayColor  = color.RGBA{R: 0x2a, G: 0x24, B: 0x48, A: 0xff}
	backgroundFill = color.RGBA{R: 0x02, G: 0x02, B: 0x08, A: 0xff}
)

// drawItem 一帧中待绘制的天体（按深度从远到近排序）
type drawItem struct {
	sx, sy, depth float64
	radius        float64
	info          *components.BodyInfoComponent
	position      utils.Vec3
}

// RenderSystem 太阳系场景渲染
//
// 渲染顺序（从底到顶）：背景/银河 → 背景星 → 轨道环 → 小行星带/柯伊伯带 → 天体（按深度）。
// 显示层开关只影响这里的绘制，不影响轨道计算。
type RenderSystem struct {
	entityManager *ecs.EntityManager
	camera        *game.PerspectiveCamera
	orbitPaths    map[ecs.EntityID][]utils.Vec3
	items         []drawItem // 复用，避免每帧分配
}

// NewRenderSystem 创建渲染系统
func NewRenderSystem(em *ecs.EntityManager, cam *game.PerspectiveCamera) *RenderSystem {
	return &RenderSystem{
		entityManager: em,
		camera:        cam,
		orbitPaths:    make(map[ecs.EntityID][]utils.Vec3),
		items:         make([]drawItem, 0, 64),
	}
}

// Draw 绘制整个场景
func (s *RenderSystem) Draw(screen *ebiten.Image, layers *game.SceneLayerToggles) {
	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	width, height := float64(w), float64(h)

	s.drawBackground(screen, layers.MilkyWay)

	if layers.Stars {
		s.drawPoints(screen, width, height, components.BodyStar)
	}
	if layers.Orbits {
		s.drawOrbits(screen, width, height)
	}
	if layers.AsteroidBelt {
		s.drawPoints(screen, width, height, components.BodyAsteroid)
	}
	if layers.KuiperBelt {
		s.drawPoints(screen, width, height, components.BodyKuiperObject)
	}
	s.drawBodies(screen, width, height, layers)
}

// drawBackground 背景色按银河亮度与银河色混合
func (s *RenderSystem) drawBackground(screen *ebiten.Image, brightness float64) {
	b := utils.Clamp01(brightness)
	mix := func(a, c uint8) uint8 {
		return uint8(utils.Lerp(float64(a), float64(c), b))
	}
	screen.Fill(color.RGBA{
		R: mix(backgroundFill.R, milkyWayColor.R),
		G: mix(backgroundFill.G, milkyWayColor.G),
		B: mix(backgroundFill.B, milkyWayColor.B),
		A: 0xff,
	})
}

// drawPoints 绘制背景星或带状粒子（不排序）
func (s *RenderSystem) drawPoints(screen *ebiten.Image, width, height float64, kind components.BodyKind) {
	ids := ecs.GetEntitiesWith2[*components.BodyInfoComponent, *components.TransformComponent](s.entityManager)
	for _, id := range ids {
		info, _ := ecs.GetComponent[*components.BodyInfoComponent](s.entityManager, id)
		if info.Kind != kind {
			continue
		}
		transform, _ := ecs.GetComponent[*components.TransformComponent](s.entityManager, id)
		sx, sy, depth, ok := s.camera.Project(transform.Position, width, height)
		if !ok || sx < 0 || sy < 0 || sx > width || sy > height {
			continue
		}

		r := s.camera.ProjectedRadius(info.Radius, depth, height)
		if kind == components.BodyStar {
			// 背景星固定像素大小
			r = info.Radius
		}
		r = math.Max(r, 0.6)
		vector.DrawFilledCircle(screen, float32(sx), float32(sy), float32(r), info.Color, false)
	}
}

// drawOrbits 绘制行星轨道环（路径按需缓存）
func (s *RenderSystem) drawOrbits(screen *ebiten.Image, width, height float64) {
	ids := ecs.GetEntitiesWith1[*components.OrbitComponent](s.entityManager)
	for _, id := range ids {
		path, ok := s.orbitPaths[id]
		if !ok {
			orbit, _ := ecs.GetComponent[*components.OrbitComponent](s.entityManager, id)
			path = utils.OrbitPath(orbit.Elements, orbitSegments, orbit.VerticalScale)
			s.orbitPaths[id] = path
		}
		s.drawPolyline(screen, path, width, height, orbitColor, 1)
	}
}

// drawPolyline 投影并绘制折线，镜头背后的线段跳过
func (s *RenderSystem) drawPolyline(screen *ebiten.Image, points []utils.Vec3, width, height float64, clr color.Color, strokeWidth float32) {
	var prevX, prevY float64
	prevOK := false
	for _, p := range points {
		sx, sy, _, ok := s.camera.Project(p, width, height)
		if ok && prevOK {
			vector.StrokeLine(screen, float32(prevX), float32(prevY), float32(sx), float32(sy), strokeWidth, clr, true)
		}
		prevX, prevY, prevOK = sx, sy, ok
	}
}

// drawBodies 按深度从远到近绘制太阳、行星、卫星
func (s *RenderSystem) drawBodies(screen *ebiten.Image, width, height float64, layers *game.SceneLayerToggles) {
	s.items = s.items[:0]

	ids := ecs.GetEntitiesWith2[*components.BodyInfoComponent, *components.TransformComponent](s.entityManager)
	for _, id := range ids {
		info, _ := ecs.GetComponent[*components.BodyInfoComponent](s.entityManager, id)
		switch info.Kind {
		case components.BodySun, components.BodyPlanet, components.BodyMoon:
		default:
			continue
		}
		if !layers.IsVisible(LayerForBody(info.Kind)) {
			continue
		}

		transform, _ := ecs.GetComponent[*components.TransformComponent](s.entityManager, id)
		sx, sy, depth, ok := s.camera.Project(transform.Position, width, height)
		if !ok {
			continue
		}
		s.items = append(s.items, drawItem{
			sx:       sx,
			sy:       sy,
			depth:    depth,
			radius:   math.Max(s.camera.ProjectedRadius(info.Radius, depth, height), minBodyPixels),
			info:     info,
			position: transform.Position,
		})
	}

	sort.Slice(s.items, func(i, j int) bool { return s.items[i].depth > s.items[j].depth })

	for _, item := range s.items {
		if item.info.Kind == components.BodySun {
			vector.DrawFilledCircle(screen, float32(item.sx), float32(item.sy), float32(item.radius*1.4), sunGlowColor, true)
		}
		vector.DrawFilledCircle(screen, float32(item.sx), float32(item.sy), float32(item.radius), item.info.Color, true)
		if item.info.HasRings {
			s.drawRings(screen, item, width, height)
		}
	}
}

// drawRings 在行星赤道面（XZ 平面）画两道环
func (s *RenderSystem) drawRings(screen *ebiten.Image, item drawItem, width, height float64) {
	for _, scale := range []float64{1.6, 2.2} {
		r := item.info.Radius * scale
		points := make([]utils.Vec3, 0, ringSegments+1)
		for i := 0; i <= ringSegments; i++ {
			a := 2 * math.Pi * float64(i) / ringSegments
			points = append(points, item.position.Add(utils.NewVec3(math.Cos(a)*r, 0, math.Sin(a)*r)))
		}
		s.drawPolyline(screen, points, width, height, ringColor, 1.5)
	}
}
