package game

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

// 场景名称
const (
	SceneIntro       = "intro"
	SceneSolarSystem = "solar_system"
)

// SceneFactory 场景工厂函数类型
// 按名称创建场景，避免 game 包依赖 scenes 包
type SceneFactory func(name string) Scene

// SceneManager manages which scene is active.
// It ensures only one scene's Update and Draw methods are called at any given time.
type SceneManager struct {
	currentScene Scene
	currentName  string
	sceneFactory SceneFactory
}

// NewSceneManager creates and returns a new SceneManager instance.
// The manager starts with no active scene; use SwitchTo to set the initial scene.
func NewSceneManager() *SceneManager {
	return &SceneManager{}
}

// SetSceneFactory 设置场景工厂函数
func (sm *SceneManager) SetSceneFactory(factory SceneFactory) {
	sm.sceneFactory = factory
}

// SwitchTo changes the active scene to the provided scene.
// The previous scene is torn down if it implements Teardown.
func (sm *SceneManager) SwitchTo(scene Scene) {
	if sm.currentScene != nil && sm.currentScene != scene {
		if td, ok := sm.currentScene.(Teardown); ok {
			td.Teardown()
		}
	}
	sm.currentScene = scene
}

// SwitchToNamed 通过工厂创建并切换到指定名称的场景
func (sm *SceneManager) SwitchToNamed(name string) bool {
	if sm.sceneFactory == nil {
		log.Printf("[SceneManager] Error: SceneFactory not set")
		return false
	}

	scene := sm.sceneFactory(name)
	if scene == nil {
		log.Printf("[SceneManager] Error: cannot create scene %q", name)
		return false
	}
	sm.SwitchTo(scene)
	sm.currentName = name
	log.Printf("[SceneManager] Switched to scene: %s", name)
	return true
}

// GetCurrentScene 返回当前活动的场景，没有活动场景时返回 nil
func (sm *SceneManager) GetCurrentScene() Scene {
	return sm.currentScene
}

// CurrentName 返回通过 SwitchToNamed 切换的场景名称
func (sm *SceneManager) CurrentName() string {
	return sm.currentName
}

// Update updates the currently active scene.
func (sm *SceneManager) Update(deltaTime float64) {
	if sm.currentScene != nil {
		sm.currentScene.Update(deltaTime)
	}
}

// Draw renders the currently active scene to the provided screen.
func (sm *SceneManager) Draw(screen *ebiten.Image) {
	if sm.currentScene != nil {
		sm.currentScene.Draw(screen)
	}
}
