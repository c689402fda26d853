package config

import (
	"fmt"

	"github.com/decker502/orrery/pkg/embedded"
	"github.com/decker502/orrery/pkg/utils"
	"gopkg.in/yaml.v3"
)

// CameraConfigPath 镜头配置文件路径
const CameraConfigPath = "data/camera.yaml"

// 镜头模式名称（配置文件中使用）
const (
	CameraModeAutomatic = "automatic"
	CameraModeManual    = "manual"
)

// CameraConfig 镜头与触发阈值配置
type CameraConfig struct {
	// 初始状态
	InitialPosition utils.Vec3 `yaml:"initialPosition"` // 初始位置
	StartMode       string     `yaml:"startMode"`       // automatic / manual
	FovDeg          float64    `yaml:"fovDeg"`          // 垂直视角（度）

	// 自动模式：绕原点圆周运动 + 更快的竖直正弦摆动
	AutoRadius          float64 `yaml:"autoRadius"`          // 圆周半径
	AngularSpeed        float64 `yaml:"angularSpeed"`        // 方位角速度（弧度/秒）
	VerticalSpeedFactor float64 `yaml:"verticalSpeedFactor"` // 竖直摆动相对方位角的倍数
	VerticalMinDeg      float64 `yaml:"verticalMinDeg"`      // 最低仰角（度）
	VerticalMaxDeg      float64 `yaml:"verticalMaxDeg"`      // 最高仰角（度）

	// 手动模式（步长按帧计算）
	MoveStep    float64 `yaml:"moveStep"`    // 方向键/缩放键每帧移动距离
	RotateSpeed float64 `yaml:"rotateSpeed"` // 拖拽旋转（弧度/像素）
	PanSpeed    float64 `yaml:"panSpeed"`    // 平移（单位/像素，按距离缩放前）
	DollyStep   float64 `yaml:"dollyStep"`   // 滚轮一格的推拉比例
	MinDistance float64 `yaml:"minDistance"` // 离目标最近距离
	MaxDistance float64 `yaml:"maxDistance"` // 离原点最远距离

	// 触发阈值
	NearThreshold float64 `yaml:"nearThreshold"` // 靠近太阳的触发距离
	FarThreshold  float64 `yaml:"farThreshold"`  // 远离边界的触发距离
	ConfirmDelay  float64 `yaml:"confirmDelay"`  // 靠近太阳后的确认延迟（秒）
}

// DefaultCameraConfig 返回默认镜头配置
func DefaultCameraConfig() *CameraConfig {
	return &CameraConfig{
		InitialPosition: utils.NewVec3(0, 25, 35),
		StartMode:       CameraModeAutomatic,
		FovDeg:          60,

		AutoRadius:          120,
		AngularSpeed:        0.03,
		VerticalSpeedFactor: 3,
		VerticalMinDeg:      -5,
		VerticalMaxDeg:      60,

		MoveStep:    2,
		RotateSpeed: 0.005,
		PanSpeed:    0.002,
		DollyStep:   0.1,
		MinDistance: 0.5,
		MaxDistance: 4000,

		NearThreshold: 5,
		FarThreshold:  3800,
		ConfirmDelay:  1,
	}
}

// ParseCameraConfig 解析镜头配置 YAML
// 未出现的字段沿用默认值
func ParseCameraConfig(data []byte) (*CameraConfig, error) {
	cfg := DefaultCameraConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse camera config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid camera config: %w", err)
	}
	return cfg, nil
}

// LoadCameraConfig 从嵌入资源加载镜头配置
func LoadCameraConfig(path string) (*CameraConfig, error) {
	data, err := embedded.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read camera config %s: %w", path, err)
	}
	cfg, err := ParseCameraConfig(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate 检查配置合法性
func (c *CameraConfig) Validate() error {
	if c.StartMode != CameraModeAutomatic && c.StartMode != CameraModeManual {
		return fmt.Errorf("startMode must be %q or %q, got %q", CameraModeAutomatic, CameraModeManual, c.StartMode)
	}
	if c.AutoRadius <= 0 {
		return fmt.Errorf("autoRadius must be positive, got %v", c.AutoRadius)
	}
	if c.AngularSpeed < 0 {
		return fmt.Errorf("angularSpeed cannot be negative, got %v", c.AngularSpeed)
	}
	if c.VerticalMinDeg < -90 || c.VerticalMaxDeg > 90 || c.VerticalMinDeg > c.VerticalMaxDeg {
		return fmt.Errorf("vertical range must satisfy -90 <= min <= max <= 90, got [%v, %v]", c.VerticalMinDeg, c.VerticalMaxDeg)
	}
	if c.MoveStep <= 0 {
		return fmt.Errorf("moveStep must be positive, got %v", c.MoveStep)
	}
	if c.MinDistance <= 0 || c.MaxDistance <= c.MinDistance {
		return fmt.Errorf("distance limits must satisfy 0 < min < max, got [%v, %v]", c.MinDistance, c.MaxDistance)
	}
	if c.NearThreshold <= c.MinDistance {
		return fmt.Errorf("nearThreshold (%v) must be greater than minDistance (%v)", c.NearThreshold, c.MinDistance)
	}
	if c.FarThreshold <= c.NearThreshold {
		return fmt.Errorf("farThreshold (%v) must be greater than nearThreshold (%v)", c.FarThreshold, c.NearThreshold)
	}
	// 手动移动被限制在 maxDistance 以内，超过它的远阈值永远无法到达
	if c.FarThreshold > c.MaxDistance {
		return fmt.Errorf("farThreshold (%v) cannot exceed maxDistance (%v)", c.FarThreshold, c.MaxDistance)
	}
	if c.ConfirmDelay < 0 {
		return fmt.Errorf("confirmDelay cannot be negative, got %v", c.ConfirmDelay)
	}
	return nil
}

// SetVerticalRange 设置自动模式竖直范围（度），自动修正 min > max 并限制在 [-90, 90]
func (c *CameraConfig) SetVerticalRange(minDeg, maxDeg float64) {
	if minDeg > maxDeg {
		minDeg, maxDeg = maxDeg, minDeg
	}
	c.VerticalMinDeg = clamp(minDeg, -90, 90)
	c.VerticalMaxDeg = clamp(maxDeg, -90, 90)
}

// SetAngularSpeed 设置自动模式速度，负值视为 0
func (c *CameraConfig) SetAngularSpeed(speed float64) {
	if speed < 0 {
		speed = 0
	}
	c.AngularSpeed = speed
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
