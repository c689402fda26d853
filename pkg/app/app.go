// Package app 提供应用的核心包装器
//
// 该包把初始化逻辑从 main 包提取出来：加载配置、创建共享服务、
// 注册场景工厂并决定启动场景。
package app

import (
	"context"
	"fmt"
	"image"
	_ "image/png"
	"image/color"
	"io"
	"log"

	cueaudio "github.com/decker502/orrery/internal/audio"
	"github.com/decker502/orrery/pkg/config"
	"github.com/decker502/orrery/pkg/embedded"
	"github.com/decker502/orrery/pkg/game"
	"github.com/decker502/orrery/pkg/scenes"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/quasilyte/gdata/v2"
)

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// SkipIntro 跳过介绍页，直接进入太阳系场景
	SkipIntro bool
	// Storage gdata 存储，可为 nil（设置和台词记录只保存在内存中）
	Storage *gdata.Manager
}

// App 是应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager             *game.SceneManager
	settings                 *game.SettingsManager
	cancelPreload            context.CancelFunc
	verbose                  bool
	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	res, refs, err := loadResources(cfg.Storage)
	if err != nil {
		return nil, err
	}

	// 音效：采样率与合成器一致
	audioContext := audio.NewContext(int(cueaudio.SampleRate))
	res.Audio = game.NewAudioManager(audioContext, res.Settings)
	log.Printf("[App] AudioManager initialized")

	// 后台预加载过场图像，失败的资源使用占位图形
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		if err := res.Media.Init(ctx, res.MediaKeys(refs)); err != nil {
			log.Printf("[App] Media preload stopped: %v", err)
		}
	}()

	sceneManager := game.NewSceneManager()
	sceneManager.SetSceneFactory(newSceneFactory(sceneManager, res))

	start := game.SceneIntro
	if cfg.SkipIntro || res.Settings.GetSettings().IntroHidden {
		log.Printf("[App] Skipping intro")
		start = game.SceneSolarSystem
	}
	if !sceneManager.SwitchToNamed(start) {
		cancel()
		return nil, fmt.Errorf("failed to create start scene %s", start)
	}

	return &App{
		sceneManager:  sceneManager,
		settings:      res.Settings,
		cancelPreload: cancel,
		verbose:       cfg.Verbose,
	}, nil
}

// loadResources 加载嵌入的配置文件并创建场景共享服务（不含音频）
func loadResources(storage *gdata.Manager) (*scenes.Resources, *config.MovieReferencesConfig, error) {
	cameraCfg, err := config.LoadCameraConfig(config.CameraConfigPath)
	if err != nil {
		return nil, nil, fmt.Errorf("镜头配置加载失败: %w", err)
	}
	cinematicsCfg, err := config.LoadCinematicsConfig(config.CinematicsConfigPath)
	if err != nil {
		return nil, nil, fmt.Errorf("过场配置加载失败: %w", err)
	}
	bodiesCfg, err := config.LoadBodiesConfig(config.BodiesConfigPath)
	if err != nil {
		return nil, nil, fmt.Errorf("天体配置加载失败: %w", err)
	}
	refs, err := config.LoadMovieReferences(config.MovieReferencesPath)
	if err != nil {
		return nil, nil, fmt.Errorf("台词数据加载失败: %w", err)
	}
	log.Printf("[Config] Loaded %d planets, %d quotes", len(bodiesCfg.Planets), len(refs.References))

	settings := game.NewSettingsManager(storage)
	res := &scenes.Resources{
		Settings:   settings,
		Quotes:     game.NewQuoteManager(storage, refs, nil),
		Media:      game.NewMediaCache[image.Image](loadEmbeddedImage, nil),
		Camera:     cameraCfg,
		Cinematics: cinematicsCfg,
		Bodies:     bodiesCfg,
	}
	return res, refs, nil
}

// loadEmbeddedImage 从嵌入资源解码图像
func loadEmbeddedImage(path string) (image.Image, error) {
	f, err := embedded.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return img, nil
}

// newSceneFactory 按名称创建场景
func newSceneFactory(sm *game.SceneManager, res *scenes.Resources) game.SceneFactory {
	return func(name string) game.Scene {
		switch name {
		case game.SceneIntro:
			return scenes.NewIntroScene(sm, res.Settings)
		case game.SceneSolarSystem:
			scene, err := scenes.NewSolarSystemScene(res)
			if err != nil {
				log.Printf("[App] Error: %v", err)
				return nil
			}
			return scene
		default:
			return nil
		}
	}
}

// Update 更新逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		if ebiten.IsFullscreen() {
			ebiten.SetFullscreen(false)
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
			log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
		} else {
			ebiten.SetFullscreen(true)
		}
	}

	deltaTime := 1.0 / float64(ebiten.TPS())
	a.sceneManager.Update(deltaTime)
	return nil
}

// Draw 绘制画面
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回逻辑屏幕尺寸
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.GameWindowWidth, config.GameWindowHeight
}

// GetSceneManager 返回场景管理器
func (a *App) GetSceneManager() *game.SceneManager {
	return a.sceneManager
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}

// Close 窗口关闭时调用：停止预加载并保存当前场景的状态
func (a *App) Close() {
	if a.cancelPreload != nil {
		a.cancelPreload()
	}
	if saver, ok := a.sceneManager.GetCurrentScene().(game.Saveable); ok {
		if !saver.SaveOnExit() {
			log.Printf("[App] Warning: scene failed to save on exit")
		}
		return
	}
	if err := a.settings.Save(); err != nil {
		log.Printf("[App] Warning: Failed to save settings: %v", err)
	}
}
