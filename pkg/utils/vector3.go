package utils

import "math"

// Vec3 三维向量（世界坐标，右手系，Y 轴朝上）
type Vec3 struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

// WorldUp 世界坐标的上方向
var WorldUp = Vec3{X: 0, Y: 1, Z: 0}

// Origin 原点（太阳所在位置）
var Origin = Vec3{}

// NewVec3 创建向量
func NewVec3(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// Add 返回 v + o
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Sub 返回 v - o
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Scale 返回 v * s
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// AddScaled 返回 v + o*s
func (v Vec3) AddScaled(o Vec3, s float64) Vec3 {
	return Vec3{v.X + o.X*s, v.Y + o.Y*s, v.Z + o.Z*s}
}

// Dot 点积
func (v Vec3) Dot(o Vec3) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

// Cross 叉积 v × o
func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		X: v.Y*o.Z - v.Z*o.Y,
		Y: v.Z*o.X - v.X*o.Z,
		Z: v.X*o.Y - v.Y*o.X,
	}
}

// Length 向量长度
func (v Vec3) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// DistanceTo 到另一点的距离
func (v Vec3) DistanceTo(o Vec3) float64 {
	return v.Sub(o).Length()
}

// Normalize 返回单位向量
// 零向量返回零向量（不产生 NaN）
func (v Vec3) Normalize() Vec3 {
	l := v.Length()
	if l < 1e-12 {
		return Vec3{}
	}
	return v.Scale(1 / l)
}

// IsZero 是否为零向量
func (v Vec3) IsZero() bool {
	return v.X == 0 && v.Y == 0 && v.Z == 0
}

// LerpVec3 在 a 和 b 之间线性插值，t 会被限制在 [0,1]
func LerpVec3(a, b Vec3, t float64) Vec3 {
	t = Clamp01(t)
	return Vec3{
		X: Lerp(a.X, b.X, t),
		Y: Lerp(a.Y, b.Y, t),
		Z: Lerp(a.Z, b.Z, t),
	}
}

// ClampLength 将向量长度限制在 [min, max]，方向不变
// 零向量保持不变
func ClampLength(v Vec3, min, max float64) Vec3 {
	l := v.Length()
	if l < 1e-12 {
		return v
	}
	if l < min {
		return v.Scale(min / l)
	}
	if max > 0 && l > max {
		return v.Scale(max / l)
	}
	return v
}

// DegToRad 角度转弧度
func DegToRad(deg float64) float64 {
	return deg * math.Pi / 180
}
