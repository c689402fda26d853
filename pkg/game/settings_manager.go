package game

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// UserSettings 用户设置（全局，不区分用户）
type UserSettings struct {
	// 显示层
	Layers SceneLayerToggles `yaml:"layers"`

	// 模拟速率（模拟日/秒）
	TimeRate float64 `yaml:"timeRate"`

	// 自动镜头
	AutoCameraSpeed float64 `yaml:"autoCameraSpeed"` // 速度倍率
	VerticalMinDeg  float64 `yaml:"verticalMinDeg"`  // 最低仰角
	VerticalMaxDeg  float64 `yaml:"verticalMaxDeg"`  // 最高仰角

	// 音效
	SoundEnabled bool    `yaml:"soundEnabled"`
	SoundVolume  float64 `yaml:"soundVolume"` // 0.0 ~ 1.0

	// IntroHidden 启动时不再显示介绍页
	IntroHidden bool `yaml:"introHidden"`
}

// DefaultSettings 返回默认设置
func DefaultSettings() *UserSettings {
	return &UserSettings{
		Layers:          DefaultLayerToggles(),
		TimeRate:        DefaultTimeRate,
		AutoCameraSpeed: 1,
		VerticalMinDeg:  -5,
		VerticalMaxDeg:  60,
		SoundEnabled:    true,
		SoundVolume:     0.6,
		IntroHidden:     false,
	}
}

// SettingsManager 设置管理器
// 负责用户设置的加载、保存和内存管理
type SettingsManager struct {
	gdataManager *gdata.Manager // gdata 跨平台存储管理器，可为 nil（降级模式）
	settings     *UserSettings  // 当前设置
}

// 存储路径常量
const (
	settingsObject   = "settings"
	settingsProperty = "global"
)

// NewSettingsManager 创建新的设置管理器实例
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式，仅内存设置）
//
// 加载失败不是致命错误，记录日志后使用默认设置。
func NewSettingsManager(gdataManager *gdata.Manager) *SettingsManager {
	sm := &SettingsManager{
		gdataManager: gdataManager,
		settings:     DefaultSettings(),
	}

	if err := sm.Load(); err != nil {
		log.Printf("[SettingsManager] Warning: Failed to load settings: %v (using defaults)", err)
	}

	return sm
}

// Load 从 gdata 加载设置
//
// 如果 gdataManager 为 nil 或文件不存在，使用默认设置。
// 文件中缺失的字段保留默认值，越界的值被修正。
func (sm *SettingsManager) Load() error {
	if sm.gdataManager == nil {
		sm.settings = DefaultSettings()
		return nil
	}

	if !sm.gdataManager.ObjectPropExists(settingsObject, settingsProperty) {
		sm.settings = DefaultSettings()
		return nil
	}

	data, err := sm.gdataManager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to load settings: %w", err)
	}

	loaded := DefaultSettings()
	if err := yaml.Unmarshal(data, loaded); err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	loaded.sanitize()

	sm.settings = loaded
	log.Printf("[SettingsManager] Settings loaded successfully")
	return nil
}

// Save 保存设置到 gdata
//
// 如果 gdataManager 为 nil，返回 nil（降级模式，不报错）
func (sm *SettingsManager) Save() error {
	if sm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(sm.settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := sm.gdataManager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	log.Printf("[SettingsManager] Settings saved successfully")
	return nil
}

// GetSettings 获取当前设置
func (sm *SettingsManager) GetSettings() *UserSettings {
	return sm.settings
}

// Layers 返回显示层开关（可直接修改，需调用 Save() 持久化）
func (sm *SettingsManager) Layers() *SceneLayerToggles {
	return &sm.settings.Layers
}

// SetTimeRate 设置模拟速率
// 注意：仅修改内存中的设置，需调用 Save() 方法持久化
func (sm *SettingsManager) SetTimeRate(rate float64) {
	sm.settings.TimeRate = clampRange(rate, 0, MaxTimeRate)
}

// SetAutoCameraSpeed 设置自动镜头速度倍率（0 ~ 10）
func (sm *SettingsManager) SetAutoCameraSpeed(multiplier float64) {
	sm.settings.AutoCameraSpeed = clampRange(multiplier, 0, 10)
}

// SetVerticalRange 设置自动镜头仰角范围（度），min > max 时自动交换
func (sm *SettingsManager) SetVerticalRange(minDeg, maxDeg float64) {
	if minDeg > maxDeg {
		minDeg, maxDeg = maxDeg, minDeg
	}
	sm.settings.VerticalMinDeg = clampRange(minDeg, -90, 90)
	sm.settings.VerticalMaxDeg = clampRange(maxDeg, -90, 90)
}

// SetSoundEnabled 设置音效开关
func (sm *SettingsManager) SetSoundEnabled(enabled bool) {
	sm.settings.SoundEnabled = enabled
}

// SetSoundVolume 设置音效音量
func (sm *SettingsManager) SetSoundVolume(volume float64) {
	sm.settings.SoundVolume = clampRange(volume, 0, 1)
}

// SetIntroHidden 设置是否隐藏介绍页
func (sm *SettingsManager) SetIntroHidden(hidden bool) {
	sm.settings.IntroHidden = hidden
}

// sanitize 修正越界的值
func (s *UserSettings) sanitize() {
	s.TimeRate = clampRange(s.TimeRate, 0, MaxTimeRate)
	s.AutoCameraSpeed = clampRange(s.AutoCameraSpeed, 0, 10)
	if s.VerticalMinDeg > s.VerticalMaxDeg {
		s.VerticalMinDeg, s.VerticalMaxDeg = s.VerticalMaxDeg, s.VerticalMinDeg
	}
	s.VerticalMinDeg = clampRange(s.VerticalMinDeg, -90, 90)
	s.VerticalMaxDeg = clampRange(s.VerticalMaxDeg, -90, 90)
	s.SoundVolume = clampRange(s.SoundVolume, 0, 1)
	s.Layers.SetMilkyWayBrightness(s.Layers.MilkyWay)
}

// clampRange 将值限制在 [lo, hi]
func clampRange(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
