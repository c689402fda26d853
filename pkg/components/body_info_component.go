package components

import "image/color"

// BodyKind 天体类别，决定所属的显示层
type BodyKind int

const (
	BodySun BodyKind = iota
	BodyPlanet
	BodyMoon
	BodyAsteroid
	BodyKuiperObject
	BodyStar
)

// String 返回类别名称
func (k BodyKind) String() string {
	switch k {
	case BodySun:
		return "sun"
	case BodyPlanet:
		return "planet"
	case BodyMoon:
		return "moon"
	case BodyAsteroid:
		return "asteroid"
	case BodyKuiperObject:
		return "kuiper"
	case BodyStar:
		return "star"
	default:
		return "unknown"
	}
}

// BodyInfoComponent 天体的展示信息（名称、描述、颜色）
type BodyInfoComponent struct {
	Name        string
	Description string
	Kind        BodyKind
	Radius      float64
	Color       color.RGBA
	HasRings    bool
	ParentName  string // 卫星的母星名称
}
