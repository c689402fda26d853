package game

// Layer 显示层
type Layer int

const (
	LayerSun Layer = iota
	LayerPlanets
	LayerOrbits
	LayerMoons
	LayerAsteroidBelt
	LayerKuiperBelt
	LayerStars
	layerCount
)

var layerNames = [...]string{"sun", "planets", "orbits", "moons", "asteroid_belt", "kuiper_belt", "stars"}

// String 返回显示层名称
func (l Layer) String() string {
	if l < 0 || l >= layerCount {
		return "unknown"
	}
	return layerNames[l]
}

// AllLayers 按快捷键顺序（1-7）返回全部显示层
func AllLayers() []Layer {
	layers := make([]Layer, 0, layerCount)
	for l := Layer(0); l < layerCount; l++ {
		layers = append(layers, l)
	}
	return layers
}

// DefaultMilkyWayBrightness 银河背景默认亮度
const DefaultMilkyWayBrightness = 0.1

// SceneLayerToggles 显示层开关
//
// 只影响渲染，不会改动模拟时钟或轨道计算。
type SceneLayerToggles struct {
	Sun          bool    `yaml:"sun"`
	Planets      bool    `yaml:"planets"`
	Orbits       bool    `yaml:"orbits"`
	Moons        bool    `yaml:"moons"`
	AsteroidBelt bool    `yaml:"asteroidBelt"`
	KuiperBelt   bool    `yaml:"kuiperBelt"`
	Stars        bool    `yaml:"stars"`
	MilkyWay     float64 `yaml:"milkyWayBrightness"` // [0, 1]
}

// DefaultLayerToggles 全部可见，银河亮度 10%
func DefaultLayerToggles() SceneLayerToggles {
	return SceneLayerToggles{
		Sun:          true,
		Planets:      true,
		Orbits:       true,
		Moons:        true,
		AsteroidBelt: true,
		KuiperBelt:   true,
		Stars:        true,
		MilkyWay:     DefaultMilkyWayBrightness,
	}
}

// field 返回显示层对应字段的指针
func (t *SceneLayerToggles) field(l Layer) *bool {
	switch l {
	case LayerSun:
		return &t.Sun
	case LayerPlanets:
		return &t.Planets
	case LayerOrbits:
		return &t.Orbits
	case LayerMoons:
		return &t.Moons
	case LayerAsteroidBelt:
		return &t.AsteroidBelt
	case LayerKuiperBelt:
		return &t.KuiperBelt
	case LayerStars:
		return &t.Stars
	default:
		return nil
	}
}

// IsVisible 显示层是否可见，未知层返回 false
func (t *SceneLayerToggles) IsVisible(l Layer) bool {
	if f := t.field(l); f != nil {
		return *f
	}
	return false
}

// Set 设置显示层可见性
func (t *SceneLayerToggles) Set(l Layer, visible bool) {
	if f := t.field(l); f != nil {
		*f = visible
	}
}

// Toggle 切换显示层，返回切换后的状态
func (t *SceneLayerToggles) Toggle(l Layer) bool {
	f := t.field(l)
	if f == nil {
		return false
	}
	*f = !*f
	return *f
}

// SetMilkyWayBrightness 设置银河亮度，限制在 [0, 1]
func (t *SceneLayerToggles) SetMilkyWayBrightness(v float64) {
	switch {
	case v < 0:
		v = 0
	case v > 1:
		v = 1
	}
	t.MilkyWay = v
}
