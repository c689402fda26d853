package config

import (
	"fmt"

	"github.com/decker502/orrery/pkg/embedded"
	"github.com/decker502/orrery/pkg/utils"
	"gopkg.in/yaml.v3"
)

// CinematicsConfigPath 过场配置文件路径
const CinematicsConfigPath = "data/cinematics.yaml"

// 过场类型
const (
	CinematicSun      = "sun"       // 靠近太阳：剪影 + 台词
	CinematicMilkyWay = "milky_way" // 飞出边界：银河影像
)

// CinematicConfig 单个过场的阶段时长与镜头路径（秒 / 场景单位）
//
// 阶段顺序：预延迟 → 播放内容 → 淡出 → 回程 → 冷却
type CinematicConfig struct {
	PreRollDelay float64 `yaml:"preRollDelay"` // 冻结后到开始播放的延迟

	// 播放阶段
	FadeInDuration  float64 `yaml:"fadeInDuration"`  // 内容透明度 0→1
	CaptionDelay    float64 `yaml:"captionDelay"`    // 播放开始后多久显示字幕
	ContentDuration float64 `yaml:"contentDuration"` // 播放时长上限（无论内容是否结束都会推进）
	EndOnContentEnd bool    `yaml:"endOnContentEnd"` // 内容结束通知是否提前结束播放
	FailureGrace    float64 `yaml:"failureGrace"`    // 内容加载失败后多久结束播放

	// 淡出阶段
	FadeDuration float64 `yaml:"fadeDuration"` // 内容透明度 1→0，字幕立即隐藏

	// 回程阶段
	ReturnFrom     *utils.Vec3 `yaml:"returnFrom,omitempty"` // 回程起点（为空则从当前冻结位置出发）
	ReturnLeadIn   float64     `yaml:"returnLeadIn"`         // 在起点停留的时间
	ReturnTo       utils.Vec3  `yaml:"returnTo"`             // 回程终点
	ReturnDuration float64     `yaml:"returnDuration"`       // 线性插值时长
	ReturnHold     float64     `yaml:"returnHold"`           // 到达终点后保持冻结的时间

	CooldownDuration float64 `yaml:"cooldownDuration"` // 解冻后触发器冷却时间

	MediaKey string `yaml:"mediaKey,omitempty"` // 内容图像资源（空表示由调用方决定）
}

// CinematicsConfig 过场配置文件结构
type CinematicsConfig struct {
	Cinematics map[string]*CinematicConfig `yaml:"cinematics"`
}

// DefaultSunCinematic 靠近太阳过场的默认参数
func DefaultSunCinematic() *CinematicConfig {
	from := utils.NewVec3(0, 5, 8)
	return &CinematicConfig{
		PreRollDelay:     1.5,
		FadeInDuration:   0.5,
		CaptionDelay:     0,
		ContentDuration:  7,
		EndOnContentEnd:  false,
		FailureGrace:     1,
		FadeDuration:     2.1,
		ReturnFrom:       &from,
		ReturnLeadIn:     0.5,
		ReturnTo:         utils.NewVec3(0, 45, 60),
		ReturnDuration:   1,
		ReturnHold:       2,
		CooldownDuration: 5,
	}
}

// DefaultMilkyWayCinematic 飞出边界过场的默认参数
func DefaultMilkyWayCinematic() *CinematicConfig {
	from := utils.NewVec3(0, 200, 300)
	return &CinematicConfig{
		PreRollDelay:     0,
		FadeInDuration:   0.1,
		CaptionDelay:     0,
		ContentDuration:  12,
		EndOnContentEnd:  true,
		FailureGrace:     1,
		FadeDuration:     0.95,
		ReturnFrom:       &from,
		ReturnLeadIn:     0,
		ReturnTo:         utils.NewVec3(0, 25, 35),
		ReturnDuration:   2,
		ReturnHold:       1,
		CooldownDuration: 5,
		MediaKey:         "data/media/milky_way.png",
	}
}

// DefaultCinematicsConfig 返回两个过场的默认配置
func DefaultCinematicsConfig() *CinematicsConfig {
	return &CinematicsConfig{
		Cinematics: map[string]*CinematicConfig{
			CinematicSun:      DefaultSunCinematic(),
			CinematicMilkyWay: DefaultMilkyWayCinematic(),
		},
	}
}

// ParseCinematicsConfig 解析过场配置 YAML
// 文件中缺失的过场类型使用默认值
func ParseCinematicsConfig(data []byte) (*CinematicsConfig, error) {
	var cfg CinematicsConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse cinematics config: %w", err)
	}

	defaults := DefaultCinematicsConfig()
	if cfg.Cinematics == nil {
		cfg.Cinematics = make(map[string]*CinematicConfig)
	}
	for kind, def := range defaults.Cinematics {
		if _, ok := cfg.Cinematics[kind]; !ok {
			cfg.Cinematics[kind] = def
		}
	}

	for kind, c := range cfg.Cinematics {
		if c == nil {
			return nil, fmt.Errorf("cinematic %s: empty entry", kind)
		}
		if err := c.Validate(); err != nil {
			return nil, fmt.Errorf("cinematic %s: %w", kind, err)
		}
	}
	return &cfg, nil
}

// LoadCinematicsConfig 从嵌入资源加载过场配置
func LoadCinematicsConfig(path string) (*CinematicsConfig, error) {
	data, err := embedded.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read cinematics config %s: %w", path, err)
	}
	cfg, err := ParseCinematicsConfig(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Get 获取指定类型的过场配置，不存在时返回 nil
func (c *CinematicsConfig) Get(kind string) *CinematicConfig {
	if c == nil {
		return nil
	}
	return c.Cinematics[kind]
}

// Validate 检查各时长非负且播放时长上限为正
func (c *CinematicConfig) Validate() error {
	durations := []struct {
		name  string
		value float64
	}{
		{"preRollDelay", c.PreRollDelay},
		{"fadeInDuration", c.FadeInDuration},
		{"captionDelay", c.CaptionDelay},
		{"failureGrace", c.FailureGrace},
		{"fadeDuration", c.FadeDuration},
		{"returnLeadIn", c.ReturnLeadIn},
		{"returnDuration", c.ReturnDuration},
		{"returnHold", c.ReturnHold},
		{"cooldownDuration", c.CooldownDuration},
	}
	for _, d := range durations {
		if d.value < 0 {
			return fmt.Errorf("%s cannot be negative, got %v", d.name, d.value)
		}
	}
	if c.ContentDuration <= 0 {
		return fmt.Errorf("contentDuration must be positive, got %v", c.ContentDuration)
	}
	if c.CaptionDelay > c.ContentDuration {
		return fmt.Errorf("captionDelay (%v) exceeds contentDuration (%v)", c.CaptionDelay, c.ContentDuration)
	}
	return nil
}

// TotalDuration 从触发到解冻的最长时长（不含冷却）
func (c *CinematicConfig) TotalDuration() float64 {
	return c.PreRollDelay + c.ContentDuration + c.FadeDuration +
		c.ReturnLeadIn + c.ReturnDuration + c.ReturnHold
}
