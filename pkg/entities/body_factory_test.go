package entities

import (
	"math"
	"testing"

	"github.com/decker502/orrery/pkg/components"
	"github.com/decker502/orrery/pkg/config"
	"github.com/decker502/orrery/pkg/ecs"
)

func TestNewSunEntity(t *testing.T) {
	em := ecs.NewEntityManager()
	cfg := config.DefaultBodiesConfig()

	id, err := NewSunEntity(em, cfg.Sun)
	if err != nil {
		t.Fatalf("NewSunEntity failed: %v", err)
	}

	info, ok := ecs.GetComponent[*components.BodyInfoComponent](em, id)
	if !ok {
		t.Fatal("sun should have BodyInfoComponent")
	}
	if info.Kind != components.BodySun {
		t.Errorf("Expected kind sun, got %v", info.Kind)
	}
	if ecs.HasComponent[*components.OrbitComponent](em, id) {
		t.Error("sun should not orbit")
	}
	tr, _ := ecs.GetComponent[*components.TransformComponent](em, id)
	if !tr.Position.IsZero() {
		t.Errorf("sun should sit at the origin, got %+v", tr.Position)
	}
}

func TestNewSunEntity_NilManager(t *testing.T) {
	if _, err := NewSunEntity(nil, config.DefaultBodiesConfig().Sun); err == nil {
		t.Error("Expected error for nil entity manager")
	}
}

func TestNewPlanetEntity(t *testing.T) {
	em := ecs.NewEntityManager()
	earth, _ := config.DefaultBodiesConfig().FindPlanet("Earth")

	id, err := NewPlanetEntity(em, *earth, 1)
	if err != nil {
		t.Fatalf("NewPlanetEntity failed: %v", err)
	}

	orbit, ok := ecs.GetComponent[*components.OrbitComponent](em, id)
	if !ok {
		t.Fatal("planet should have OrbitComponent")
	}
	if orbit.Elements.SemiMajorAxis != earth.Distance {
		t.Errorf("Expected semi-major axis %v, got %v", earth.Distance, orbit.Elements.SemiMajorAxis)
	}

	tr, _ := ecs.GetComponent[*components.TransformComponent](em, id)
	dist := tr.Position.Length()
	min := earth.Distance * (1 - earth.Eccentricity)
	max := earth.Distance * (1 + earth.Eccentricity)
	if dist < min-0.5 || dist > max+0.5 {
		t.Errorf("initial distance %v outside [%v, %v]", dist, min, max)
	}
}

func TestNewPlanetEntity_InvalidPeriod(t *testing.T) {
	em := ecs.NewEntityManager()
	planet := config.PlanetConfig{Name: "Broken", Distance: 10, PeriodDays: 0, Color: "#ffffff"}

	if _, err := NewPlanetEntity(em, planet, 1); err == nil {
		t.Error("Expected error for zero period")
	}
	if em.Count() != 0 {
		t.Errorf("no entity should be created on error, got %d", em.Count())
	}
}

func TestNewMoonEntity(t *testing.T) {
	em := ecs.NewEntityManager()
	earth, _ := config.DefaultBodiesConfig().FindPlanet("Earth")
	pid, _ := NewPlanetEntity(em, *earth, 1)

	t.Run("相对母星定位", func(t *testing.T) {
		mid, err := NewMoonEntity(em, pid, *earth, earth.Moons[0])
		if err != nil {
			t.Fatalf("NewMoonEntity failed: %v", err)
		}
		parent, _ := ecs.GetComponent[*components.TransformComponent](em, pid)
		moon, _ := ecs.GetComponent[*components.TransformComponent](em, mid)

		want := earth.Radius + earth.Moons[0].DistanceFromParent*earth.Radius*0.1
		got := moon.Position.DistanceTo(parent.Position)
		if math.Abs(got-want) > 1e-6 {
			t.Errorf("Expected distance from parent %v, got %v", want, got)
		}

		info, _ := ecs.GetComponent[*components.BodyInfoComponent](em, mid)
		if info.ParentName != "Earth" {
			t.Errorf("Expected parent Earth, got %q", info.ParentName)
		}
	})

	t.Run("母星不存在", func(t *testing.T) {
		if _, err := NewMoonEntity(em, ecs.EntityID(9999), *earth, earth.Moons[0]); err == nil {
			t.Error("Expected error for missing parent")
		}
	})
}

func TestBuildSolarSystem(t *testing.T) {
	em := ecs.NewEntityManager()
	cfg := config.DefaultBodiesConfig()

	sys, err := BuildSolarSystem(em, cfg)
	if err != nil {
		t.Fatalf("BuildSolarSystem failed: %v", err)
	}

	if len(sys.Planets) != len(cfg.Planets) {
		t.Errorf("Expected %d planets, got %d", len(cfg.Planets), len(sys.Planets))
	}
	moons := 0
	for _, p := range cfg.Planets {
		moons += len(p.Moons)
	}
	if len(sys.Moons) != moons {
		t.Errorf("Expected %d moons, got %d", moons, len(sys.Moons))
	}
	if len(sys.Asteroids) != cfg.AsteroidBelt.Count {
		t.Errorf("Expected %d asteroids, got %d", cfg.AsteroidBelt.Count, len(sys.Asteroids))
	}
	if len(sys.Kuiper) != cfg.KuiperBelt.Count {
		t.Errorf("Expected %d Kuiper objects, got %d", cfg.KuiperBelt.Count, len(sys.Kuiper))
	}
	if len(sys.Stars) != cfg.Stars.Count {
		t.Errorf("Expected %d stars, got %d", cfg.Stars.Count, len(sys.Stars))
	}

	if _, err := BuildSolarSystem(em, nil); err == nil {
		t.Error("Expected error for nil config")
	}
}
