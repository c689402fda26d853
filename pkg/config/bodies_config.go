package config

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/decker502/orrery/pkg/embedded"
	"github.com/decker502/orrery/pkg/utils"
	"gopkg.in/yaml.v3"
)

// BodiesConfigPath 天体数据文件路径
const BodiesConfigPath = "data/bodies.yaml"

// SunConfig 太阳（位于原点）
type SunConfig struct {
	Name        string  `yaml:"name"`
	Radius      float64 `yaml:"radius"`
	Color       string  `yaml:"color"`
	Description string  `yaml:"description"`
}

// MoonConfig 卫星
type MoonConfig struct {
	Name               string  `yaml:"name"`
	Radius             float64 `yaml:"radius"`
	DistanceFromParent float64 `yaml:"distanceFromParent"` // 以母星半径计
	PeriodDays         float64 `yaml:"periodDays"`
	Color              string  `yaml:"color"`
	Description        string  `yaml:"description"`
}

// PlanetConfig 行星及其卫星
type PlanetConfig struct {
	Name           string       `yaml:"name"`
	Radius         float64      `yaml:"radius"`
	Distance       float64      `yaml:"distance"` // 半长轴（场景单位）
	PeriodDays     float64      `yaml:"periodDays"`
	Eccentricity   float64      `yaml:"eccentricity"`
	InclinationDeg float64      `yaml:"inclinationDeg"`
	AxialTiltDeg   float64      `yaml:"axialTiltDeg"`
	PhaseOffsetRad float64      `yaml:"phaseOffsetRad"`
	Color          string       `yaml:"color"`
	HasRings       bool         `yaml:"hasRings"`
	Description    string       `yaml:"description"`
	Moons          []MoonConfig `yaml:"moons"`
}

// Elements 转换为轨道计算参数
func (p *PlanetConfig) Elements() utils.OrbitalElements {
	return utils.OrbitalElements{
		SemiMajorAxis:  p.Distance,
		PeriodDays:     p.PeriodDays,
		Eccentricity:   p.Eccentricity,
		InclinationDeg: p.InclinationDeg,
		PhaseOffsetRad: p.PhaseOffsetRad,
		AxialTiltRad:   utils.DegToRad(p.AxialTiltDeg),
	}
}

// BeltConfig 小行星带 / 柯伊伯带粒子参数
//
// 粒子角速度 = BaseSpeed / sqrt(radius / ReferenceRadius)（弧度/模拟日），越远越慢。
type BeltConfig struct {
	Name            string  `yaml:"name"`
	Count           int     `yaml:"count"`
	InnerRadius     float64 `yaml:"innerRadius"`
	OuterRadius     float64 `yaml:"outerRadius"`
	HalfHeight      float64 `yaml:"halfHeight"` // 竖直方向 ±HalfHeight 内均匀分布
	BaseSpeed       float64 `yaml:"baseSpeed"`
	ReferenceRadius float64 `yaml:"referenceRadius"`
	MinSize         float64 `yaml:"minSize"`
	MaxSize         float64 `yaml:"maxSize"`
	Seed            int64   `yaml:"seed"`
	Color           string  `yaml:"color"`
	Description     string  `yaml:"description"`
}

// StarfieldConfig 背景星空（球壳内随机分布，不随时间移动）
type StarfieldConfig struct {
	Count       int     `yaml:"count"`
	InnerRadius float64 `yaml:"innerRadius"`
	OuterRadius float64 `yaml:"outerRadius"`
	Seed        int64   `yaml:"seed"`
}

// BodiesConfig 天体数据文件结构
type BodiesConfig struct {
	VerticalScale float64         `yaml:"verticalScale"` // 轨道倾角造成的竖直偏移缩放
	Sun           SunConfig       `yaml:"sun"`
	Planets       []PlanetConfig  `yaml:"planets"`
	AsteroidBelt  BeltConfig      `yaml:"asteroidBelt"`
	KuiperBelt    BeltConfig      `yaml:"kuiperBelt"`
	Stars         StarfieldConfig `yaml:"stars"`
}

// ParseBodiesConfig 解析天体数据 YAML
func ParseBodiesConfig(data []byte) (*BodiesConfig, error) {
	cfg := &BodiesConfig{VerticalScale: 1}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse bodies config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid bodies config: %w", err)
	}
	return cfg, nil
}

// LoadBodiesConfig 从嵌入资源加载天体数据
func LoadBodiesConfig(path string) (*BodiesConfig, error) {
	data, err := embedded.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read bodies config %s: %w", path, err)
	}
	cfg, err := ParseBodiesConfig(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate 检查天体数据
// 周期必须为正：轨道计算在加载时就拒绝非法周期，运行时不会出现 NaN
func (c *BodiesConfig) Validate() error {
	if c.Sun.Radius <= 0 {
		return fmt.Errorf("sun radius must be positive, got %v", c.Sun.Radius)
	}
	if _, err := ParseHexColor(c.Sun.Color); err != nil {
		return fmt.Errorf("sun: %w", err)
	}
	if len(c.Planets) == 0 {
		return fmt.Errorf("at least one planet is required")
	}

	names := make(map[string]bool)
	for i := range c.Planets {
		p := &c.Planets[i]
		if p.Name == "" {
			return fmt.Errorf("planet #%d: name is required", i)
		}
		if names[p.Name] {
			return fmt.Errorf("planet %s: duplicate name", p.Name)
		}
		names[p.Name] = true

		if p.PeriodDays <= 0 {
			return fmt.Errorf("planet %s: periodDays must be positive, got %v", p.Name, p.PeriodDays)
		}
		if p.Radius <= 0 || p.Distance <= 0 {
			return fmt.Errorf("planet %s: radius and distance must be positive", p.Name)
		}
		if p.Eccentricity < 0 || p.Eccentricity >= 1 {
			return fmt.Errorf("planet %s: eccentricity must be in [0, 1), got %v", p.Name, p.Eccentricity)
		}
		if _, err := ParseHexColor(p.Color); err != nil {
			return fmt.Errorf("planet %s: %w", p.Name, err)
		}
		for _, m := range p.Moons {
			if m.PeriodDays <= 0 {
				return fmt.Errorf("moon %s of %s: periodDays must be positive, got %v", m.Name, p.Name, m.PeriodDays)
			}
			if m.Radius <= 0 || m.DistanceFromParent < 0 {
				return fmt.Errorf("moon %s of %s: invalid radius or distance", m.Name, p.Name)
			}
			if _, err := ParseHexColor(m.Color); err != nil {
				return fmt.Errorf("moon %s of %s: %w", m.Name, p.Name, err)
			}
		}
	}

	for _, b := range []*BeltConfig{&c.AsteroidBelt, &c.KuiperBelt} {
		if err := b.validate(); err != nil {
			return err
		}
	}
	if c.Stars.Count < 0 || (c.Stars.Count > 0 && c.Stars.OuterRadius < c.Stars.InnerRadius) {
		return fmt.Errorf("stars: invalid count or radius range")
	}
	if c.VerticalScale < 0 {
		return fmt.Errorf("verticalScale cannot be negative, got %v", c.VerticalScale)
	}
	return nil
}

func (b *BeltConfig) validate() error {
	if b.Count < 0 {
		return fmt.Errorf("belt %s: count cannot be negative", b.Name)
	}
	if b.Count == 0 {
		return nil
	}
	if b.InnerRadius <= 0 || b.OuterRadius < b.InnerRadius {
		return fmt.Errorf("belt %s: invalid radius range [%v, %v]", b.Name, b.InnerRadius, b.OuterRadius)
	}
	if b.ReferenceRadius <= 0 {
		return fmt.Errorf("belt %s: referenceRadius must be positive", b.Name)
	}
	if b.MaxSize < b.MinSize {
		return fmt.Errorf("belt %s: maxSize smaller than minSize", b.Name)
	}
	if _, err := ParseHexColor(b.Color); err != nil {
		return fmt.Errorf("belt %s: %w", b.Name, err)
	}
	return nil
}

// FindPlanet 按名称查找行星
func (c *BodiesConfig) FindPlanet(name string) (*PlanetConfig, bool) {
	for i := range c.Planets {
		if c.Planets[i].Name == name {
			return &c.Planets[i], true
		}
	}
	return nil, false
}

// ParseHexColor 解析 "#RRGGBB" 颜色
func ParseHexColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("invalid color %q: expected #RRGGBB", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}

// DefaultBodiesConfig 数据文件不可用时的内置天体表（无描述文字）
func DefaultBodiesConfig() *BodiesConfig {
	planet := func(name string, radius, distance, period, ecc, incl, tilt, phase float64, col string) PlanetConfig {
		return PlanetConfig{
			Name: name, Radius: radius, Distance: distance, PeriodDays: period,
			Eccentricity: ecc, InclinationDeg: incl, AxialTiltDeg: tilt,
			PhaseOffsetRad: phase, Color: col,
		}
	}

	planets := []PlanetConfig{
		planet("Mercury", 0.8, 15, 87.969, 0.02, 7.0, 0.034, 0, "#808080"),
		planet("Venus", 1.2, 22, 224.701, 0.007, 3.39, 177.4, 1.2, "#BBAA8E"),
		planet("Earth", 1.3, 30, 365.256, 0.017, 0, 23.44, 3.1, "#6B93D6"),
		planet("Mars", 1.0, 40, 686.98, 0.05, 1.85, 25.19, 5.8, "#C1440E"),
		planet("Jupiter", 3.0, 75, 4332.589, 0.02, 1.3, 3.13, 0.9, "#D8CA9D"),
		planet("Saturn", 2.5, 92, 10759.22, 0.03, 2.49, 26.73, 4.2, "#FAD5A5"),
		planet("Uranus", 1.8, 100, 30687.15, 0.02, 0.77, 97.77, 2.7, "#4FD0E3"),
		planet("Neptune", 1.7, 120, 60190.03, 0.01, 1.77, 28.32, 1.8, "#4B70DD"),
	}
	planets[2].Moons = []MoonConfig{
		{Name: "Moon", Radius: 0.15, DistanceFromParent: 60, PeriodDays: 27.321, Color: "#C9C9C9"},
	}
	planets[5].HasRings = true

	return &BodiesConfig{
		VerticalScale: 1,
		Sun:           SunConfig{Name: "Sun", Radius: 4, Color: "#FDB813"},
		Planets:       planets,
		AsteroidBelt: BeltConfig{
			Name: "Asteroid Belt", Count: 1000, InnerRadius: 50, OuterRadius: 70, HalfHeight: 1.5,
			BaseSpeed: 0.0034, ReferenceRadius: 50, MinSize: 0.1, MaxSize: 0.25, Seed: 1801, Color: "#8B7D6B",
		},
		KuiperBelt: BeltConfig{
			Name: "Kuiper Belt", Count: 200, InnerRadius: 140, OuterRadius: 200, HalfHeight: 4,
			BaseSpeed: 0.00086, ReferenceRadius: 140, MinSize: 0.05, MaxSize: 0.15, Seed: 1992, Color: "#A8C8E8",
		},
		Stars: StarfieldConfig{Count: 4000, InnerRadius: 800, OuterRadius: 1200, Seed: 42},
	}
}
