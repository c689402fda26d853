package utils

import "math"

const (
	// BodySpinRate 天体自转速度（弧度/模拟日）
	BodySpinRate = 0.01

	// MoonSpeedMultiplier 卫星公转加速倍数（真实周期太短看不清，太长又看不出动）
	MoonSpeedMultiplier = 10.0

	// MoonDistanceFactor 卫星轨道距离系数：母星半径 + distanceFromParent * 母星半径 * 系数
	MoonDistanceFactor = 0.1
)

// OrbitalElements 简化轨道参数
//
// 这是一个视觉模型，不是开普勒轨道：
//   - 偏心率只做一阶半径调制
//   - 倾角只做竖直方向偏移，不旋转轨道平面
type OrbitalElements struct {
	SemiMajorAxis  float64 // 半长轴（场景单位）
	PeriodDays     float64 // 公转周期（模拟日），必须 > 0
	Eccentricity   float64 // 偏心率 [0, 1)
	InclinationDeg float64 // 轨道倾角（度）
	PhaseOffsetRad float64 // 初始相位（弧度）
	AxialTiltRad   float64 // 自转轴倾角（弧度）
}

// Valid 检查轨道参数是否可用于计算
func (e OrbitalElements) Valid() bool {
	return e.PeriodDays > 0 && e.Eccentricity >= 0 && e.Eccentricity < 1
}

// OrbitPose 某一时刻天体的位置与姿态
type OrbitPose struct {
	Position Vec3
	// Rotation 欧拉角（弧度）：Y 为自转角，Z 为轴倾角
	Rotation Vec3
}

// MeanAngle 计算平近点角
func MeanAngle(body OrbitalElements, elapsed float64) float64 {
	return body.PhaseOffsetRad + 2*math.Pi*(elapsed/body.PeriodDays)
}

// PositionAt 计算天体在模拟时间 elapsed 时的位置与姿态
//
// 纯函数：相同输入总是得到相同输出，没有隐藏状态。
// verticalScale 控制倾角造成的竖直偏移幅度（1 表示 sin(倾角)*r）。
// 周期非法时返回零姿态。
func PositionAt(body OrbitalElements, elapsed float64, verticalScale float64) OrbitPose {
	if !body.Valid() {
		return OrbitPose{}
	}

	angle := MeanAngle(body, elapsed)
	cosA, sinA := math.Cos(angle), math.Sin(angle)

	r := body.SemiMajorAxis * (1 - body.Eccentricity*cosA)
	inclination := math.Sin(DegToRad(body.InclinationDeg)) * r * verticalScale

	return OrbitPose{
		Position: Vec3{
			X: cosA * r,
			Y: sinA * inclination,
			Z: sinA * r,
		},
		Rotation: Vec3{
			X: 0,
			Y: elapsed * BodySpinRate,
			Z: body.AxialTiltRad,
		},
	}
}

// MoonOffsetAt 计算卫星相对母星的偏移
//
// 卫星轨道在母星赤道面内，距离按母星半径缩放，速度乘以 MoonSpeedMultiplier。
func MoonOffsetAt(distanceFromParent, periodDays, parentRadius, elapsed float64) Vec3 {
	if periodDays <= 0 {
		return Vec3{}
	}
	orbitDistance := parentRadius + distanceFromParent*parentRadius*MoonDistanceFactor
	angle := (elapsed * MoonSpeedMultiplier / periodDays) * 2 * math.Pi
	return Vec3{
		X: math.Cos(angle) * orbitDistance,
		Y: 0,
		Z: math.Sin(angle) * orbitDistance,
	}
}

// BeltPositionAt 计算小行星带/柯伊伯带粒子的位置
// 粒子逆向旋转（角度随时间减小）
func BeltPositionAt(radius, startAngle, height, speed, elapsed float64) Vec3 {
	angle := startAngle - elapsed*speed
	return Vec3{
		X: math.Cos(angle) * radius,
		Y: height,
		Z: math.Sin(angle) * radius,
	}
}

// OrbitPath 生成轨道环的折线点（闭合，首尾相同）
func OrbitPath(body OrbitalElements, segments int, verticalScale float64) []Vec3 {
	if segments < 3 || !body.Valid() {
		return nil
	}
	points := make([]Vec3, 0, segments+1)
	for i := 0; i <= segments; i++ {
		// 用周期的分数作为时间，复用 PositionAt 保证轨道线与天体重合
		elapsed := body.PeriodDays * float64(i) / float64(segments)
		points = append(points, PositionAt(body, elapsed, verticalScale).Position)
	}
	return points
}
