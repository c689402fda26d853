package game

import (
	"testing"
)

// TestDefaultSettings 测试 DefaultSettings() 返回正确的默认值
func TestDefaultSettings(t *testing.T) {
	settings := DefaultSettings()

	if settings == nil {
		t.Fatal("DefaultSettings() returned nil")
	}
	if settings.TimeRate != DefaultTimeRate {
		t.Errorf("TimeRate: got %v, want %v", settings.TimeRate, DefaultTimeRate)
	}
	if settings.VerticalMinDeg != -5 || settings.VerticalMaxDeg != 60 {
		t.Errorf("Vertical range: got [%v, %v], want [-5, 60]", settings.VerticalMinDeg, settings.VerticalMaxDeg)
	}
	if !settings.Layers.Orbits || !settings.Layers.Stars {
		t.Error("all layers should be visible by default")
	}
	if settings.IntroHidden {
		t.Error("IntroHidden: got true, want false")
	}
}

// TestNewSettingsManagerNilGdata 测试 gdataManager 为 nil 时的降级场景
func TestNewSettingsManagerNilGdata(t *testing.T) {
	sm := NewSettingsManager(nil)
	if sm == nil {
		t.Fatal("NewSettingsManager(nil) returned nil")
	}
	if sm.GetSettings().TimeRate != DefaultTimeRate {
		t.Errorf("Degraded mode TimeRate: got %v", sm.GetSettings().TimeRate)
	}
	// 降级模式 Save 不报错
	if err := sm.Save(); err != nil {
		t.Errorf("Save() in degraded mode: %v", err)
	}
}

// TestSettingsLoadSave 测试设置持久化
func TestSettingsLoadSave(t *testing.T) {
	m := openTestGdata(t, "test_settings_load_save")

	sm1 := NewSettingsManager(m)
	sm1.SetTimeRate(120)
	sm1.SetAutoCameraSpeed(2)
	sm1.SetVerticalRange(40, -10)
	sm1.SetIntroHidden(true)
	sm1.Layers().Toggle(LayerKuiperBelt)
	sm1.Layers().SetMilkyWayBrightness(0.5)
	if err := sm1.Save(); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	sm2 := NewSettingsManager(m)
	s := sm2.GetSettings()
	if s.TimeRate != 120 {
		t.Errorf("TimeRate: got %v, want 120", s.TimeRate)
	}
	if s.AutoCameraSpeed != 2 {
		t.Errorf("AutoCameraSpeed: got %v, want 2", s.AutoCameraSpeed)
	}
	if s.VerticalMinDeg != -10 || s.VerticalMaxDeg != 40 {
		t.Errorf("Vertical range: got [%v, %v], want [-10, 40]", s.VerticalMinDeg, s.VerticalMaxDeg)
	}
	if !s.IntroHidden {
		t.Error("IntroHidden not persisted")
	}
	if s.Layers.KuiperBelt {
		t.Error("KuiperBelt toggle not persisted")
	}
	if s.Layers.MilkyWay != 0.5 {
		t.Errorf("MilkyWay: got %v, want 0.5", s.Layers.MilkyWay)
	}
}

// TestSettingsLoadSanitizes 存储中的越界值在加载时被修正
func TestSettingsLoadSanitizes(t *testing.T) {
	m := openTestGdata(t, "test_settings_sanitize")
	raw := []byte("timeRate: -5\nsoundVolume: 4\nverticalMinDeg: 80\nverticalMaxDeg: -20\n")
	if err := m.SaveObjectProp(settingsObject, settingsProperty, raw); err != nil {
		t.Fatalf("SaveObjectProp: %v", err)
	}

	s := NewSettingsManager(m).GetSettings()
	if s.TimeRate != 0 {
		t.Errorf("TimeRate: got %v, want 0", s.TimeRate)
	}
	if s.SoundVolume != 1 {
		t.Errorf("SoundVolume: got %v, want 1", s.SoundVolume)
	}
	if s.VerticalMinDeg != -20 || s.VerticalMaxDeg != 80 {
		t.Errorf("Vertical range: got [%v, %v]", s.VerticalMinDeg, s.VerticalMaxDeg)
	}
	// 未出现的字段保持默认
	if !s.Layers.Sun {
		t.Error("missing layers should default to visible")
	}
}

// TestSettingsLoadCorrupted 损坏的数据回退到默认设置
func TestSettingsLoadCorrupted(t *testing.T) {
	m := openTestGdata(t, "test_settings_corrupted")
	if err := m.SaveObjectProp(settingsObject, settingsProperty, []byte("layers: [")); err != nil {
		t.Fatalf("SaveObjectProp: %v", err)
	}

	sm := NewSettingsManager(m)
	if sm.GetSettings().TimeRate != DefaultTimeRate {
		t.Errorf("corrupted data should fall back to defaults, got %+v", sm.GetSettings())
	}
	if err := sm.Load(); err == nil {
		t.Error("Load() should report the unmarshal error")
	}
}
