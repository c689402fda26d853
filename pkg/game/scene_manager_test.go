package game

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

// MockScene is a mock implementation of the Scene interface for testing.
type MockScene struct {
	updateCalled   bool
	drawCalled     bool
	deltaTime      float64
	teardownCalled bool
}

// Update records that Update was called and stores the deltaTime.
func (m *MockScene) Update(deltaTime float64) {
	m.updateCalled = true
	m.deltaTime = deltaTime
}

// Draw records that Draw was called.
func (m *MockScene) Draw(screen *ebiten.Image) {
	m.drawCalled = true
}

// Teardown records that the scene was torn down.
func (m *MockScene) Teardown() {
	m.teardownCalled = true
}

// TestNewSceneManager verifies that NewSceneManager creates a valid instance.
func TestNewSceneManager(t *testing.T) {
	sm := NewSceneManager()
	if sm == nil {
		t.Fatal("NewSceneManager() returned nil")
	}
	if sm.GetCurrentScene() != nil {
		t.Error("Expected currentScene to be nil initially")
	}
}

// TestSceneManagerUpdate verifies that Update calls the current scene's Update method.
func TestSceneManagerUpdate(t *testing.T) {
	sm := NewSceneManager()
	sm.Update(0.016) // 无场景时不崩溃

	mockScene := &MockScene{}
	sm.SwitchTo(mockScene)
	sm.Update(0.016)

	if !mockScene.updateCalled {
		t.Error("Scene's Update method was not called")
	}
	if mockScene.deltaTime != 0.016 {
		t.Errorf("Expected deltaTime 0.016, got %v", mockScene.deltaTime)
	}
}

// TestSceneManagerSwitchTearsDownPrevious 切换场景时旧场景被清理
func TestSceneManagerSwitchTearsDownPrevious(t *testing.T) {
	sm := NewSceneManager()
	first := &MockScene{}
	second := &MockScene{}

	sm.SwitchTo(first)
	sm.SwitchTo(first)
	if first.teardownCalled {
		t.Error("switching to the same scene must not tear it down")
	}

	sm.SwitchTo(second)
	if !first.teardownCalled {
		t.Error("previous scene was not torn down")
	}
	if sm.GetCurrentScene() != second {
		t.Error("current scene not updated")
	}
}

// TestSceneManagerSwitchToNamed 通过工厂切换场景
func TestSceneManagerSwitchToNamed(t *testing.T) {
	sm := NewSceneManager()
	if sm.SwitchToNamed(SceneIntro) {
		t.Error("SwitchToNamed without a factory should fail")
	}

	created := map[string]*MockScene{}
	sm.SetSceneFactory(func(name string) Scene {
		if name != SceneIntro && name != SceneSolarSystem {
			return nil
		}
		s := &MockScene{}
		created[name] = s
		return s
	})

	if !sm.SwitchToNamed(SceneIntro) || sm.CurrentName() != SceneIntro {
		t.Fatal("failed to switch to intro")
	}
	if sm.SwitchToNamed("credits") {
		t.Error("unknown scene should fail")
	}
	if sm.CurrentName() != SceneIntro {
		t.Error("failed switch must keep the current scene")
	}
	if !sm.SwitchToNamed(SceneSolarSystem) {
		t.Fatal("failed to switch to solar system")
	}
	if !created[SceneIntro].teardownCalled {
		t.Error("intro scene should be torn down")
	}
}
