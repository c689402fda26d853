package game

import (
	"math"

	"github.com/decker502/orrery/pkg/utils"
)

// Camera 镜头抽象
//
// CameraSystem 只通过这个接口移动镜头，渲染端（ebiten / 终端）各自实现投影。
type Camera interface {
	Position() utils.Vec3
	SetPosition(p utils.Vec3)
	LookAt(target utils.Vec3)
	// RightVector 镜头右方向（世界坐标，单位向量）
	RightVector() utils.Vec3
}

// nearPlane 近裁剪面距离，比它更近（或在镜头背后）的点不投影
const nearPlane = 0.05

// PerspectiveCamera 透视镜头，Y 轴朝上
type PerspectiveCamera struct {
	position utils.Vec3
	target   utils.Vec3
	fovDeg   float64
}

// NewPerspectiveCamera 创建透视镜头，初始注视原点
func NewPerspectiveCamera(position utils.Vec3, fovDeg float64) *PerspectiveCamera {
	if fovDeg <= 0 || fovDeg >= 180 {
		fovDeg = 60
	}
	return &PerspectiveCamera{
		position: position,
		target:   utils.Origin,
		fovDeg:   fovDeg,
	}
}

// Position 当前位置
func (c *PerspectiveCamera) Position() utils.Vec3 {
	return c.position
}

// SetPosition 设置位置（注视点不变）
func (c *PerspectiveCamera) SetPosition(p utils.Vec3) {
	c.position = p
}

// LookAt 设置注视点
func (c *PerspectiveCamera) LookAt(target utils.Vec3) {
	c.target = target
}

// Target 当前注视点
func (c *PerspectiveCamera) Target() utils.Vec3 {
	return c.target
}

// FovDeg 垂直视角（度）
func (c *PerspectiveCamera) FovDeg() float64 {
	return c.fovDeg
}

// Forward 朝向（单位向量）
// 位置与注视点重合时退化为 -Z
func (c *PerspectiveCamera) Forward() utils.Vec3 {
	f := c.target.Sub(c.position).Normalize()
	if f.IsZero() {
		return utils.NewVec3(0, 0, -1)
	}
	return f
}

// RightVector 右方向 = forward × worldUp
// 垂直向上/向下看时 forward 与 worldUp 平行，退化为 +X
func (c *PerspectiveCamera) RightVector() utils.Vec3 {
	r := c.Forward().Cross(utils.WorldUp).Normalize()
	if r.IsZero() {
		return utils.NewVec3(1, 0, 0)
	}
	return r
}

// UpVector 镜头上方向
func (c *PerspectiveCamera) UpVector() utils.Vec3 {
	return c.RightVector().Cross(c.Forward()).Normalize()
}

// Project 把世界坐标投影到 width×height 的屏幕
//
// 返回屏幕坐标、深度（沿朝向的距离）以及该点是否在镜头前方。
func (c *PerspectiveCamera) Project(world utils.Vec3, width, height float64) (sx, sy, depth float64, ok bool) {
	rel := world.Sub(c.position)
	forward := c.Forward()
	depth = rel.Dot(forward)
	if depth < nearPlane {
		return 0, 0, depth, false
	}

	right := c.RightVector()
	up := right.Cross(forward)

	f := c.focalLength(height)
	sx = width/2 + rel.Dot(right)/depth*f
	sy = height/2 - rel.Dot(up)/depth*f
	return sx, sy, depth, true
}

// ProjectedRadius 半径为 r 的球在深度 depth 处的屏幕半径（像素）
func (c *PerspectiveCamera) ProjectedRadius(r, depth, height float64) float64 {
	if depth < nearPlane {
		return 0
	}
	return r / depth * c.focalLength(height)
}

// focalLength 以像素计的焦距
func (c *PerspectiveCamera) focalLength(height float64) float64 {
	return (height / 2) / math.Tan(utils.DegToRad(c.fovDeg)/2)
}
