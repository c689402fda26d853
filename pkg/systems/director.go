package systems

import (
	"fmt"
	"log"

	"github.com/decker502/orrery/pkg/components"
	"github.com/decker502/orrery/pkg/config"
	"github.com/decker502/orrery/pkg/ecs"
	"github.com/decker502/orrery/pkg/entities"
	"github.com/decker502/orrery/pkg/game"
	"github.com/decker502/orrery/pkg/utils"
)

// cinematicKinds 过场检测与推进的固定顺序
var cinematicKinds = []string{config.CinematicSun, config.CinematicMilkyWay}

// DirectorConfig 创建 Director 所需的配置
type DirectorConfig struct {
	Camera     *config.CameraConfig     // nil 时使用默认值
	Cinematics *config.CinematicsConfig // nil 时使用默认值
	Bodies     *config.BodiesConfig     // nil 时不创建天体（终端前端和测试使用）
	TimeRate   float64                  // 模拟日/秒，<= 0 时使用默认值
}

// Director 每帧的调度者
//
// 帧顺序（固定）：
//  1. 模拟时钟前进
//  2. 取走本帧输入（ConsumeFrame）
//  3. 镜头更新（冻结时不动）
//  4. 按模拟时间重算轨道位置
//  5. 距离触发检测（读取本帧镜头位置）
//  6. 推进过场
//
// 过场计时使用墙钟时间 now（帧时间累加），与模拟倍率无关，暂停模拟不会卡住过场。
type Director struct {
	entityManager *ecs.EntityManager
	camera        game.Camera
	clock         *game.SimClock
	input         *utils.InputState
	hover         *game.HoverBus
	layers        game.SceneLayerToggles

	cameraSystem  *CameraSystem
	orbitSystem   *OrbitSystem
	triggerSystem *ProximityTriggerSystem
	cinematics    map[string]*CinematicSystem
	solarSystem   *entities.SolarSystem

	now      float64
	tornDown bool

	triggerSubscribers  []func(kind string)
	completeSubscribers []func(kind string)
}

// NewDirector 创建调度者以及全部系统和实体
// 参数:
//   - em: EntityManager 实例
//   - cam: 镜头（ebiten 场景和终端前端各自提供）
//   - cfg: 配置
//
// 返回:
//   - *Director: 调度者
//   - error: 配置无效或实体创建失败
func NewDirector(em *ecs.EntityManager, cam game.Camera, cfg DirectorConfig) (*Director, error) {
	if em == nil {
		return nil, fmt.Errorf("entity manager cannot be nil")
	}
	if cam == nil {
		return nil, fmt.Errorf("camera cannot be nil")
	}
	if cfg.Camera == nil {
		cfg.Camera = config.DefaultCameraConfig()
	}
	if cfg.Cinematics == nil {
		cfg.Cinematics = config.DefaultCinematicsConfig()
	}
	if cfg.TimeRate <= 0 {
		cfg.TimeRate = game.DefaultTimeRate
	}

	d := &Director{
		entityManager: em,
		camera:        cam,
		clock:         game.NewSimClock(cfg.TimeRate),
		input:         utils.NewInputState(),
		hover:         game.NewHoverBus(),
		layers:        game.DefaultLayerToggles(),
		cinematics:    make(map[string]*CinematicSystem, len(cinematicKinds)),
	}

	d.cameraSystem = NewCameraSystem(em, cam, cfg.Camera)
	d.orbitSystem = NewOrbitSystem(em)

	if cfg.Bodies != nil {
		sys, err := entities.BuildSolarSystem(em, cfg.Bodies)
		if err != nil {
			return nil, fmt.Errorf("failed to build solar system: %w", err)
		}
		d.solarSystem = sys
	}

	if _, err := entities.NewNearSunTriggerEntity(em, cfg.Camera); err != nil {
		return nil, err
	}
	if _, err := entities.NewFarBoundaryTriggerEntity(em, cfg.Camera); err != nil {
		return nil, err
	}
	d.triggerSystem = NewProximityTriggerSystem(em, d.cameraSystem, d.handleTrigger)

	for _, kind := range cinematicKinds {
		cs, err := NewCinematicSystem(em, d.cameraSystem, kind, cfg.Cinematics.Get(kind), d.handleComplete)
		if err != nil {
			return nil, err
		}
		d.cinematics[kind] = cs
	}

	d.orbitSystem.Update(d.clock.Elapsed())
	log.Printf("[Director] Initialized (mode %s, rate %.1f days/s)", d.cameraSystem.Mode(), d.clock.Rate())
	return d, nil
}

// Update 推进一帧
// 参数:
//   - dt: 帧时间（秒），负值视为 0
func (d *Director) Update(dt float64) {
	if d.tornDown {
		return
	}
	if dt < 0 {
		dt = 0
	}
	d.now += dt

	d.clock.Tick(dt)
	frame := d.input.ConsumeFrame()
	d.cameraSystem.Update(dt, frame)
	d.orbitSystem.Update(d.clock.Elapsed())
	d.triggerSystem.Update(d.now, d.cinematicsBusy())
	for _, kind := range cinematicKinds {
		d.cinematics[kind].Update(dt, d.now)
	}
}

// handleTrigger 触发器回调：启动对应过场，再通知订阅者
func (d *Director) handleTrigger(kind string, trigger ecs.EntityID) {
	cs, ok := d.cinematics[kind]
	if !ok {
		log.Printf("[Director] Warning: no cinematic registered for %s", kind)
		return
	}
	if !cs.Start(trigger) {
		return
	}
	d.hover.Publish(nil)
	for _, fn := range d.triggerSubscribers {
		fn(kind)
	}
}

func (d *Director) handleComplete(kind string) {
	for _, fn := range d.completeSubscribers {
		fn(kind)
	}
}

// OnTrigger 订阅过场开始事件
func (d *Director) OnTrigger(fn func(kind string)) {
	d.triggerSubscribers = append(d.triggerSubscribers, fn)
}

// OnComplete 订阅过场结束事件（镜头解冻时）
func (d *Director) OnComplete(fn func(kind string)) {
	d.completeSubscribers = append(d.completeSubscribers, fn)
}

// Teardown 场景销毁：取消待确认的延迟，重置过场，丢弃订阅者
// 之后的 Update 调用都不再生效
func (d *Director) Teardown() {
	if d.tornDown {
		return
	}
	d.triggerSystem.Cancel()
	for _, kind := range cinematicKinds {
		d.cinematics[kind].Reset()
	}
	d.triggerSubscribers = nil
	d.completeSubscribers = nil
	d.hover.Clear()
	d.tornDown = true
	log.Printf("[Director] Torn down")
}

// IsTornDown 是否已销毁
func (d *Director) IsTornDown() bool {
	return d.tornDown
}

// ActiveCinematic 正在播放的过场类型（没有时返回空字符串）
func (d *Director) ActiveCinematic() string {
	for _, kind := range cinematicKinds {
		if d.cinematics[kind].IsActive() {
			return kind
		}
	}
	return ""
}

// Cinematic 按类型获取过场系统
func (d *Director) Cinematic(kind string) (*CinematicSystem, bool) {
	cs, ok := d.cinematics[kind]
	return cs, ok
}

// Mode 当前镜头模式
func (d *Director) Mode() components.CameraMode {
	return d.cameraSystem.Mode()
}

// IsFrozen 镜头是否冻结
func (d *Director) IsFrozen() bool {
	return d.cameraSystem.IsFrozen()
}

// cinematicsBusy 是否有过场不在 Idle（包括冷却中）
// 冷却到期的那一帧过场要到推进阶段才回到 Idle，此前触发器保持解除
func (d *Director) cinematicsBusy() bool {
	for _, kind := range cinematicKinds {
		if d.cinematics[kind].Phase() != components.CinematicIdle {
			return true
		}
	}
	return false
}

// IsInterpolating 是否有过场正在做回程插值
func (d *Director) IsInterpolating() bool {
	for _, kind := range cinematicKinds {
		if d.cinematics[kind].IsInterpolating() {
			return true
		}
	}
	return false
}

// Now 墙钟时间（秒）
func (d *Director) Now() float64 {
	return d.now
}

// Clock 模拟时钟
func (d *Director) Clock() *game.SimClock {
	return d.clock
}

// Input 输入状态（宿主适配层写入）
func (d *Director) Input() *utils.InputState {
	return d.input
}

// Camera 镜头
func (d *Director) Camera() game.Camera {
	return d.camera
}

// CameraSystem 镜头控制系统
func (d *Director) CameraSystem() *CameraSystem {
	return d.cameraSystem
}

// Hover 悬停信息总线
func (d *Director) Hover() *game.HoverBus {
	return d.hover
}

// Layers 显示层开关（可直接修改，不影响模拟时钟）
func (d *Director) Layers() *game.SceneLayerToggles {
	return &d.layers
}

// SetLayers 替换显示层开关（加载用户设置时使用）
func (d *Director) SetLayers(l game.SceneLayerToggles) {
	d.layers = l
}

// SolarSystem 天体实体索引（未配置天体时为 nil）
func (d *Director) SolarSystem() *entities.SolarSystem {
	return d.solarSystem
}

// EntityManager 实体管理器
func (d *Director) EntityManager() *ecs.EntityManager {
	return d.entityManager
}
