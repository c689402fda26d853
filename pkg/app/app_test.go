package app

import (
	"testing"
	"testing/fstest"

	"github.com/decker502/orrery/pkg/config"
	"github.com/decker502/orrery/pkg/embedded"
	"github.com/decker502/orrery/pkg/game"
	"github.com/decker502/orrery/pkg/scenes"
)

// initTestData 用最小的数据文件初始化嵌入资源
func initTestData(t *testing.T) {
	t.Helper()
	embedded.Init(fstest.MapFS{
		config.CameraConfigPath:     {Data: []byte("startMode: manual\n")},
		config.CinematicsConfigPath: {Data: []byte("cinematics: {}\n")},
		config.BodiesConfigPath: {Data: []byte(`sun:
  name: Sun
  radius: 5
  color: "#ffcc33"
planets:
  - name: Mercury
    radius: 0.4
    color: "#aaaaaa"
    distance: 10
    eccentricity: 0.2
    periodDays: 88
`)},
		config.MovieReferencesPath: {Data: []byte(`references:
  - id: a
    quote: "Q"
`)},
	})
	t.Cleanup(func() { embedded.Init(nil) })
}

func TestLoadResources(t *testing.T) {
	initTestData(t)

	res, refs, err := loadResources(nil)
	if err != nil {
		t.Fatalf("loadResources failed: %v", err)
	}
	if res.Camera.StartMode != config.CameraModeManual {
		t.Errorf("Expected camera config from data file, got start mode %q", res.Camera.StartMode)
	}
	if len(res.Bodies.Planets) != 1 {
		t.Errorf("Expected 1 planet, got %d", len(res.Bodies.Planets))
	}
	if len(refs.References) != 1 {
		t.Errorf("Expected 1 quote, got %d", len(refs.References))
	}
	if res.Cinematics.Get(config.CinematicSun) == nil {
		t.Error("missing cinematic kinds should fall back to defaults")
	}
}

func TestLoadResources_MissingData(t *testing.T) {
	embedded.Init(fstest.MapFS{})
	t.Cleanup(func() { embedded.Init(nil) })

	if _, _, err := loadResources(nil); err == nil {
		t.Error("Expected error when data files are missing")
	}
}

func TestLoadEmbeddedImage_Missing(t *testing.T) {
	initTestData(t)
	if _, err := loadEmbeddedImage("data/media/none.png"); err == nil {
		t.Error("Expected error for a missing image")
	}
	if _, err := loadEmbeddedImage(config.CameraConfigPath); err == nil {
		t.Error("Expected decode error for a non-image file")
	}
}

func TestSceneFactory(t *testing.T) {
	initTestData(t)
	res, _, err := loadResources(nil)
	if err != nil {
		t.Fatalf("loadResources failed: %v", err)
	}

	sm := game.NewSceneManager()
	factory := newSceneFactory(sm, res)

	if _, ok := factory(game.SceneIntro).(*scenes.IntroScene); !ok {
		t.Error("intro name should create an IntroScene")
	}
	if _, ok := factory(game.SceneSolarSystem).(*scenes.SolarSystemScene); !ok {
		t.Error("solar_system name should create a SolarSystemScene")
	}
	if factory("unknown") != nil {
		t.Error("unknown scene name should return nil")
	}
}

func TestOpenStorage(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_DATA_HOME", home)

	storage := OpenStorage("orrery_app_test")
	if storage == nil {
		t.Fatal("Expected storage to open in a writable home directory")
	}
	if err := storage.SaveObjectProp("probe", "value", []byte("ok")); err != nil {
		t.Errorf("SaveObjectProp failed: %v", err)
	}
}
