package scenes

import (
	"context"
	"errors"
	"image"
	"math/rand"
	"testing"

	"github.com/decker502/orrery/pkg/components"
	"github.com/decker502/orrery/pkg/config"
	"github.com/decker502/orrery/pkg/game"
	"github.com/decker502/orrery/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
)

const sceneFrame = 0.1

// newTestResources 内存设置 + 固定随机源，不创建天体
func newTestResources(camCfg *config.CameraConfig, media *game.MediaCache[image.Image]) *Resources {
	settings := game.NewSettingsManager(nil)
	return &Resources{
		Settings: settings,
		Audio:    game.NewAudioManager(nil, settings),
		Quotes:   game.NewQuoteManager(nil, nil, rand.New(rand.NewSource(1))),
		Media:    media,
		Camera:   camCfg,
	}
}

func manualCameraAt(pos utils.Vec3) *config.CameraConfig {
	cfg := config.DefaultCameraConfig()
	cfg.StartMode = config.CameraModeManual
	cfg.InitialPosition = pos
	return cfg
}

func newTestScene(t *testing.T, res *Resources) *SolarSystemScene {
	t.Helper()
	s, err := NewSolarSystemScene(res)
	if err != nil {
		t.Fatalf("NewSolarSystemScene failed: %v", err)
	}
	return s
}

// stepUntil 推进直到条件满足或超过 maxFrames 帧
func stepUntil(s *SolarSystemScene, maxFrames int, done func() bool) bool {
	for i := 0; i < maxFrames; i++ {
		if done() {
			return true
		}
		s.step(sceneFrame)
	}
	return done()
}

func TestNewSolarSystemScene_Validation(t *testing.T) {
	if _, err := NewSolarSystemScene(nil); err == nil {
		t.Error("Expected error for nil resources")
	}
	res := newTestResources(nil, nil)
	res.Quotes = nil
	if _, err := NewSolarSystemScene(res); err == nil {
		t.Error("Expected error for nil quote manager")
	}
}

func TestSolarSystemScene_AppliesSettings(t *testing.T) {
	res := newTestResources(nil, nil)
	res.Settings.SetTimeRate(40)
	res.Settings.SetAutoCameraSpeed(2)
	res.Settings.Layers().Set(game.LayerOrbits, false)

	s := newTestScene(t, res)
	d := s.Director()
	if d.Clock().Rate() != 40 {
		t.Errorf("Expected rate 40, got %v", d.Clock().Rate())
	}
	if d.CameraSystem().AutoSpeedMultiplier() != 2 {
		t.Errorf("Expected auto speed 2, got %v", d.CameraSystem().AutoSpeedMultiplier())
	}
	if d.Layers().IsVisible(game.LayerOrbits) {
		t.Error("orbits layer should start hidden")
	}
}

func TestSolarSystemScene_HandleKey(t *testing.T) {
	res := newTestResources(nil, nil)
	s := newTestScene(t, res)
	d := s.Director()

	t.Run("数字键切换显示层并写入设置", func(t *testing.T) {
		if !s.HandleKey(ebiten.Key1) {
			t.Fatal("Key1 should be handled")
		}
		if d.Layers().IsVisible(game.LayerSun) {
			t.Error("sun layer should be hidden")
		}
		if res.Settings.GetSettings().Layers.Sun {
			t.Error("layer change should be copied into settings")
		}
	})

	t.Run("方括号调整模拟速率", func(t *testing.T) {
		before := d.Clock().Rate()
		s.HandleKey(ebiten.KeyBracketRight)
		if d.Clock().Rate() != before*rateStep {
			t.Errorf("Expected rate %v, got %v", before*rateStep, d.Clock().Rate())
		}
		if res.Settings.GetSettings().TimeRate != d.Clock().Rate() {
			t.Error("time rate should be saved to settings")
		}
		s.HandleKey(ebiten.KeyBracketLeft)
		if d.Clock().Rate() != before {
			t.Errorf("Expected rate back to %v, got %v", before, d.Clock().Rate())
		}
	})

	t.Run("P 暂停后时钟不走", func(t *testing.T) {
		s.HandleKey(ebiten.KeyP)
		elapsed := d.Clock().Elapsed()
		s.step(sceneFrame)
		if d.Clock().Elapsed() != elapsed {
			t.Error("paused clock should not advance")
		}
		s.HandleKey(ebiten.KeyP)
		if d.Clock().IsPaused() {
			t.Error("second P should resume")
		}
	})

	t.Run("减号降低自动镜头速度", func(t *testing.T) {
		before := d.CameraSystem().AutoSpeedMultiplier()
		s.HandleKey(ebiten.KeyMinus)
		if got := d.CameraSystem().AutoSpeedMultiplier(); got != before-autoSpeedStep {
			t.Errorf("Expected %v, got %v", before-autoSpeedStep, got)
		}
	})

	t.Run("M 循环银河亮度", func(t *testing.T) {
		d.Layers().SetMilkyWayBrightness(game.DefaultMilkyWayBrightness)
		s.HandleKey(ebiten.KeyM)
		if d.Layers().MilkyWay != 0.4 {
			t.Errorf("Expected brightness 0.4, got %v", d.Layers().MilkyWay)
		}
		s.HandleKey(ebiten.KeyM)
		s.HandleKey(ebiten.KeyM)
		if d.Layers().MilkyWay != 0 {
			t.Errorf("Expected brightness to wrap to 0, got %v", d.Layers().MilkyWay)
		}
	})

	t.Run("未绑定的键不处理", func(t *testing.T) {
		if s.HandleKey(ebiten.KeyQ) {
			t.Error("KeyQ should not be handled")
		}
	})
}

func TestSolarSystemScene_SunCinematicPicksQuote(t *testing.T) {
	res := newTestResources(manualCameraAt(utils.NewVec3(0, 0, 2)), nil)
	s := newTestScene(t, res)
	d := s.Director()

	if !stepUntil(s, 100, func() bool { return d.ActiveCinematic() == config.CinematicSun }) {
		t.Fatal("sun cinematic never started")
	}

	quote := s.CurrentQuote()
	if quote.ID == "" {
		t.Fatal("a quote should be picked when the sun cinematic starts")
	}
	cs, _ := d.Cinematic(config.CinematicSun)
	if cs.State().Payload != quote.ID {
		t.Errorf("Expected payload %q, got %q", quote.ID, cs.State().Payload)
	}
	if !cs.State().ContentLoaded {
		t.Error("sun content should be reported as loaded")
	}
	if len(res.Quotes.Shown()) != 1 {
		t.Errorf("Expected one quote marked shown, got %v", res.Quotes.Shown())
	}

	t.Run("过场中不显示悬停提示", func(t *testing.T) {
		s.step(sceneFrame)
		if s.Tooltip() != nil {
			t.Error("tooltip should be suppressed during a cinematic")
		}
	})

	t.Run("绘制覆盖层", func(t *testing.T) {
		stepUntil(s, 50, func() bool { return cs.State().CaptionVisible })
		screen := ebiten.NewImage(config.GameWindowWidth, config.GameWindowHeight)
		s.Draw(screen)
	})
}

func TestSolarSystemScene_MilkyWayFailedPanorama(t *testing.T) {
	media := game.NewMediaCache[image.Image](func(string) (image.Image, error) {
		return nil, errors.New("missing")
	}, nil)
	key := config.DefaultMilkyWayCinematic().MediaKey
	if err := media.Init(context.Background(), []string{key}); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	camCfg := manualCameraAt(utils.NewVec3(0, 0, 300))
	camCfg.FarThreshold = 280
	s := newTestScene(t, newTestResources(camCfg, media))
	d := s.Director()

	s.step(sceneFrame)
	if d.ActiveCinematic() != config.CinematicMilkyWay {
		t.Fatalf("Expected milky_way cinematic, got %q", d.ActiveCinematic())
	}
	cs, _ := d.Cinematic(config.CinematicMilkyWay)
	if !cs.State().ContentFailed {
		t.Error("missing panorama should be reported as a content failure")
	}

	completed := false
	d.OnComplete(func(string) { completed = true })
	if !stepUntil(s, 200, func() bool { return completed }) {
		t.Error("cinematic should still complete after a content failure")
	}

	screen := ebiten.NewImage(config.GameWindowWidth, config.GameWindowHeight)
	s.Draw(screen)
}

func TestSolarSystemScene_MilkyWayPanEndsContent(t *testing.T) {
	media := game.NewMediaCache[image.Image](func(string) (image.Image, error) {
		return image.NewRGBA(image.Rect(0, 0, 64, 32)), nil
	}, nil)
	key := config.DefaultMilkyWayCinematic().MediaKey
	if err := media.Init(context.Background(), []string{key}); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	camCfg := manualCameraAt(utils.NewVec3(0, 0, 300))
	camCfg.FarThreshold = 280
	s := newTestScene(t, newTestResources(camCfg, media))
	d := s.Director()

	s.step(sceneFrame)
	cs, _ := d.Cinematic(config.CinematicMilkyWay)
	if !cs.State().ContentLoaded {
		t.Fatal("ready panorama should be reported as loaded")
	}

	t.Run("绘制全景图", func(t *testing.T) {
		s.step(sceneFrame)
		screen := ebiten.NewImage(config.GameWindowWidth, config.GameWindowHeight)
		s.Draw(screen)
	})

	frames := int(config.MilkyWayPanSeconds/sceneFrame) + 5
	for i := 0; i < frames; i++ {
		s.step(sceneFrame)
	}
	if !cs.State().ContentEnded {
		t.Error("panorama pan should report the content as ended")
	}
	if cs.Phase() == components.CinematicPlaying {
		t.Error("playback should end once the pan finishes")
	}
}

func TestSolarSystemScene_TooltipDraw(t *testing.T) {
	s := newTestScene(t, newTestResources(nil, nil))
	s.tooltip = &game.HoverInfo{Name: "Mars", Description: "The red planet, home of the tallest volcano in the solar system.", Category: "planet"}
	screen := ebiten.NewImage(config.GameWindowWidth, config.GameWindowHeight)
	s.Draw(screen)
}

func TestSolarSystemScene_Teardown(t *testing.T) {
	res := newTestResources(manualCameraAt(utils.NewVec3(0, 0, 2)), nil)
	s := newTestScene(t, res)
	s.step(sceneFrame)

	s.Teardown()
	if !s.Director().IsTornDown() {
		t.Error("Teardown should tear down the director")
	}
	if s.Director().IsFrozen() {
		t.Error("Teardown should release a pending freeze")
	}
	if !s.SaveOnExit() {
		t.Error("SaveOnExit should report success")
	}
}

func TestResources_MediaKeys(t *testing.T) {
	res := &Resources{Cinematics: config.DefaultCinematicsConfig()}
	keys := res.MediaKeys(config.DefaultMovieReferences())

	want := config.DefaultMilkyWayCinematic().MediaKey
	found := false
	for _, k := range keys {
		if k == want {
			found = true
		}
		if k == "" {
			t.Error("empty keys should be skipped")
		}
	}
	if !found {
		t.Errorf("Expected %s among media keys %v", want, keys)
	}
}
