package systems

import (
	"log"
	"math"

	"github.com/decker502/orrery/pkg/components"
	"github.com/decker502/orrery/pkg/config"
	"github.com/decker502/orrery/pkg/ecs"
	"github.com/decker502/orrery/pkg/game"
	"github.com/decker502/orrery/pkg/utils"
)

// 拖拽旋转时极角的限制，避免越过正上方/正下方导致画面翻转
const (
	minPolarAngle = 0.01
	maxPolarAngle = math.Pi - 0.01
)

// CameraSystem 镜头控制器
//
// 职责：
// - 自动模式：绕原点圆周巡航，竖直方向以更快的频率正弦摆动
// - 手动模式：方向键/缩放键按帧步进，拖拽旋转，副键平移，滚轮推拉
// - 模式切换（自动 → 手动在同一帧内处理触发切换的输入）
// - 冻结：冻结期间两种模式都不修改位置，只有 SetFrozenPosition 可以
type CameraSystem struct {
	entityManager *ecs.EntityManager
	camera        game.Camera
	config        *config.CameraConfig
	cameraEntity  ecs.EntityID

	onModeChange func(components.CameraMode)
}

// NewCameraSystem 创建镜头控制系统，并创建镜头实体
// 参数:
//   - em: EntityManager 实例
//   - cam: 被控制的镜头
//   - cfg: 镜头配置（nil 时使用默认配置）
func NewCameraSystem(em *ecs.EntityManager, cam game.Camera, cfg *config.CameraConfig) *CameraSystem {
	if cfg == nil {
		cfg = config.DefaultCameraConfig()
	}

	mode := components.CameraModeAutomatic
	if cfg.StartMode == config.CameraModeManual {
		mode = components.CameraModeManual
	}

	cs := &CameraSystem{
		entityManager: em,
		camera:        cam,
		config:        cfg,
	}

	cs.cameraEntity = em.CreateEntity()
	ecs.AddComponent(em, cs.cameraEntity, &components.CameraComponent{
		Mode:                mode,
		Target:              utils.Origin,
		AutoSpeedMultiplier: 1,
	})

	cam.SetPosition(cfg.InitialPosition)
	cam.LookAt(utils.Origin)

	return cs
}

func (cs *CameraSystem) component() *components.CameraComponent {
	comp, _ := ecs.GetComponent[*components.CameraComponent](cs.entityManager, cs.cameraEntity)
	return comp
}

// OnModeChange 注册模式变化回调（HUD、指标使用）
func (cs *CameraSystem) OnModeChange(fn func(components.CameraMode)) {
	cs.onModeChange = fn
}

// Camera 返回被控制的镜头
func (cs *CameraSystem) Camera() game.Camera {
	return cs.camera
}

// Config 返回镜头配置
func (cs *CameraSystem) Config() *config.CameraConfig {
	return cs.config
}

// Position 当前镜头位置
func (cs *CameraSystem) Position() utils.Vec3 {
	return cs.camera.Position()
}

// Update 每帧更新镜头
// 参数:
//   - dt: 帧时间（秒）
//   - input: 本帧输入快照
func (cs *CameraSystem) Update(dt float64, input utils.FrameInput) {
	comp := cs.component()
	if comp == nil {
		return
	}
	if dt < 0 {
		dt = 0
	}

	cs.applyModeSwitches(comp, input)

	if comp.Frozen {
		cs.camera.SetPosition(comp.FrozenPosition)
		cs.camera.LookAt(utils.Origin)
		return
	}

	switch comp.Mode {
	case components.CameraModeAutomatic:
		cs.updateAutomatic(comp, dt)
	case components.CameraModeManual:
		cs.updateManual(comp, input)
	}
}

// applyModeSwitches 按发生顺序处理本帧的按下事件
// 切换键翻转模式；自动模式下任何方向/缩放键切到手动，同一帧内继续处理这次输入
func (cs *CameraSystem) applyModeSwitches(comp *components.CameraComponent, input utils.FrameInput) {
	for _, key := range input.Pressed {
		switch {
		case key == utils.KeyToggleMode:
			cs.ToggleMode()
		case key.IsMovementKey() && comp.Mode == components.CameraModeAutomatic:
			cs.SetMode(components.CameraModeManual)
		}
	}
}

// updateAutomatic 自动巡航
//
// 方位角 t = autoTime * angularSpeed；
// 高度在 [sin(vMin)*R, sin(vMax)*R] 之间以 sin(factor*t) 摆动。
func (cs *CameraSystem) updateAutomatic(comp *components.CameraComponent, dt float64) {
	comp.AutoTime += dt * comp.AutoSpeedMultiplier
	cs.camera.SetPosition(AutoCameraPosition(cs.config, comp.AutoTime))
	cs.camera.LookAt(utils.Origin)
}

// AutoCameraPosition 计算自动模式在 autoTime 时刻的镜头位置
func AutoCameraPosition(cfg *config.CameraConfig, autoTime float64) utils.Vec3 {
	t := autoTime * cfg.AngularSpeed
	radius := cfg.AutoRadius

	minH := math.Sin(utils.DegToRad(cfg.VerticalMinDeg)) * radius
	maxH := math.Sin(utils.DegToRad(cfg.VerticalMaxDeg)) * radius
	center := (minH + maxH) / 2
	halfRange := (maxH - minH) / 2

	return utils.Vec3{
		X: math.Cos(t) * radius,
		Y: center + math.Sin(cfg.VerticalSpeedFactor*t)*halfRange,
		Z: math.Sin(t) * radius,
	}
}

// updateManual 手动控制
//
// 方向键和缩放键每帧移动固定步长 MoveStep，移动速度随帧率变化。
// 两帧之间按下又松开的短按仍移动一步。
func (cs *CameraSystem) updateManual(comp *components.CameraComponent, input utils.FrameInput) {
	pos := cs.camera.Position()
	step := cs.config.MoveStep

	if input.IsActive(utils.KeyArrowUp) {
		pos = pos.AddScaled(utils.WorldUp, step)
	}
	if input.IsActive(utils.KeyArrowDown) {
		pos = pos.AddScaled(utils.WorldUp, -step)
	}
	if input.IsActive(utils.KeyArrowLeft) || input.IsActive(utils.KeyArrowRight) {
		right := cs.camera.RightVector()
		if input.IsActive(utils.KeyArrowLeft) {
			pos = pos.AddScaled(right, -step)
		}
		if input.IsActive(utils.KeyArrowRight) {
			pos = pos.AddScaled(right, step)
		}
	}
	if input.IsActive(utils.KeyZoomIn) {
		pos = moveRadially(pos, -step, cs.config.MinDistance)
	}
	if input.IsActive(utils.KeyZoomOut) {
		pos = moveRadially(pos, step, cs.config.MinDistance)
	}

	if input.DragDX != 0 || input.DragDY != 0 {
		pos = cs.orbitAroundTarget(pos, comp.Target, input.DragDX, input.DragDY)
	}
	if input.PanDX != 0 || input.PanDY != 0 {
		offset := cs.panOffset(pos, comp.Target, input.PanDX, input.PanDY)
		pos = pos.Add(offset)
		comp.Target = comp.Target.Add(offset)
	}
	if input.Wheel != 0 {
		pos = cs.dolly(pos, comp.Target, input.Wheel)
	}

	pos = utils.ClampLength(pos, 0, cs.config.MaxDistance)
	if pos.DistanceTo(comp.Target) < cs.config.MinDistance {
		dir := pos.Sub(comp.Target).Normalize()
		if dir.IsZero() {
			dir = utils.WorldUp
		}
		pos = comp.Target.AddScaled(dir, cs.config.MinDistance)
	}

	cs.camera.SetPosition(pos)
	cs.camera.LookAt(comp.Target)
}

// moveRadially 沿原点方向移动；delta < 0 靠近原点，但不会越过 minDistance
func moveRadially(pos utils.Vec3, delta, minDistance float64) utils.Vec3 {
	dist := pos.Length()
	if dist == 0 {
		return pos
	}
	newDist := dist + delta
	if newDist < minDistance {
		newDist = minDistance
	}
	return pos.Scale(newDist / dist)
}

// orbitAroundTarget 拖拽旋转：在以 target 为中心的球面上移动
func (cs *CameraSystem) orbitAroundTarget(pos, target utils.Vec3, dx, dy float64) utils.Vec3 {
	offset := pos.Sub(target)
	radius := offset.Length()
	if radius == 0 {
		return pos
	}

	theta := math.Atan2(offset.Z, offset.X) + dx*cs.config.RotateSpeed
	phi := math.Acos(math.Max(-1, math.Min(1, offset.Y/radius))) - dy*cs.config.RotateSpeed
	phi = math.Max(minPolarAngle, math.Min(maxPolarAngle, phi))

	return target.Add(utils.Vec3{
		X: radius * math.Sin(phi) * math.Cos(theta),
		Y: radius * math.Cos(phi),
		Z: radius * math.Sin(phi) * math.Sin(theta),
	})
}

// panOffset 副键拖拽平移量（与离目标的距离成正比）
func (cs *CameraSystem) panOffset(pos, target utils.Vec3, dx, dy float64) utils.Vec3 {
	scale := cs.config.PanSpeed * pos.DistanceTo(target)
	right := cs.camera.RightVector()
	return right.Scale(-dx * scale).Add(utils.WorldUp.Scale(dy * scale))
}

// dolly 滚轮推拉：正值靠近目标
func (cs *CameraSystem) dolly(pos, target utils.Vec3, wheel float64) utils.Vec3 {
	offset := pos.Sub(target)
	factor := 1 - wheel*cs.config.DollyStep
	if factor < 0.1 {
		factor = 0.1
	}
	return target.Add(offset.Scale(factor))
}

// Freeze 冻结镜头在 at
// 已冻结时只更新冻结位置
func (cs *CameraSystem) Freeze(at utils.Vec3) {
	comp := cs.component()
	if comp == nil {
		return
	}
	if !comp.Frozen {
		log.Printf("[CameraSystem] Frozen at (%.1f, %.1f, %.1f)", at.X, at.Y, at.Z)
	}
	comp.Frozen = true
	comp.FrozenPosition = at
	cs.camera.SetPosition(at)
	cs.camera.LookAt(utils.Origin)
}

// SetFrozenPosition 冻结期间移动镜头（过场回程插值使用）
// 未冻结时忽略
func (cs *CameraSystem) SetFrozenPosition(p utils.Vec3) {
	comp := cs.component()
	if comp == nil || !comp.Frozen {
		return
	}
	comp.FrozenPosition = p
	cs.camera.SetPosition(p)
	cs.camera.LookAt(utils.Origin)
}

// FrozenPosition 冻结位置（未冻结时返回当前位置）
func (cs *CameraSystem) FrozenPosition() utils.Vec3 {
	comp := cs.component()
	if comp == nil || !comp.Frozen {
		return cs.camera.Position()
	}
	return comp.FrozenPosition
}

// Unfreeze 解除冻结
// 手动模式的注视点重置为原点，从冻结结束的位置继续控制
func (cs *CameraSystem) Unfreeze() {
	comp := cs.component()
	if comp == nil || !comp.Frozen {
		return
	}
	comp.Frozen = false
	comp.Target = utils.Origin
	log.Printf("[CameraSystem] Unfrozen at (%.1f, %.1f, %.1f)", comp.FrozenPosition.X, comp.FrozenPosition.Y, comp.FrozenPosition.Z)
}

// IsFrozen 是否冻结
func (cs *CameraSystem) IsFrozen() bool {
	comp := cs.component()
	return comp != nil && comp.Frozen
}

// Mode 当前模式
func (cs *CameraSystem) Mode() components.CameraMode {
	comp := cs.component()
	if comp == nil {
		return components.CameraModeAutomatic
	}
	return comp.Mode
}

// SetMode 设置模式
func (cs *CameraSystem) SetMode(mode components.CameraMode) {
	comp := cs.component()
	if comp == nil || comp.Mode == mode {
		return
	}
	comp.Mode = mode
	if mode == components.CameraModeManual {
		// 自动模式始终注视原点，从这里接手
		comp.Target = utils.Origin
	}
	log.Printf("[CameraSystem] Mode changed to %s", mode)
	if cs.onModeChange != nil {
		cs.onModeChange(mode)
	}
}

// ToggleMode 在自动/手动之间切换
func (cs *CameraSystem) ToggleMode() {
	if cs.Mode() == components.CameraModeAutomatic {
		cs.SetMode(components.CameraModeManual)
	} else {
		cs.SetMode(components.CameraModeAutomatic)
	}
}

// SetAutoSpeedMultiplier 设置自动巡航速度倍率（<0 视为 0）
func (cs *CameraSystem) SetAutoSpeedMultiplier(m float64) {
	comp := cs.component()
	if comp == nil {
		return
	}
	if m < 0 {
		m = 0
	}
	comp.AutoSpeedMultiplier = m
}

// AutoSpeedMultiplier 自动巡航速度倍率
func (cs *CameraSystem) AutoSpeedMultiplier() float64 {
	comp := cs.component()
	if comp == nil {
		return 1
	}
	return comp.AutoSpeedMultiplier
}

// SetVerticalRange 设置自动巡航仰角范围（度）
func (cs *CameraSystem) SetVerticalRange(minDeg, maxDeg float64) {
	cs.config.SetVerticalRange(minDeg, maxDeg)
}
