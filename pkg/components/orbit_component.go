package components

import (
	"github.com/decker502/orrery/pkg/ecs"
	"github.com/decker502/orrery/pkg/utils"
)

// OrbitComponent 绕太阳公转的天体
type OrbitComponent struct {
	Elements      utils.OrbitalElements
	VerticalScale float64
}

// MoonOrbitComponent 绕母星公转的卫星，位置相对母星计算
type MoonOrbitComponent struct {
	Parent             ecs.EntityID
	ParentRadius       float64
	DistanceFromParent float64 // 以母星半径计
	PeriodDays         float64
}

// BeltParticleComponent 小行星带 / 柯伊伯带粒子
type BeltParticleComponent struct {
	Radius     float64 // 轨道半径
	StartAngle float64 // 初始角度（弧度）
	Height     float64 // 竖直偏移
	Speed      float64 // 角速度（弧度/模拟日）
	SpinSpeed  float64 // 自转速度（弧度/模拟日）
	Size       float64 // 渲染尺寸
}

// TransformComponent 世界空间位置与姿态
type TransformComponent struct {
	Position utils.Vec3
	Rotation utils.Vec3 // 欧拉角（弧度）
}
