package config

import (
	"image/color"
	"math"
	"testing"

	"github.com/decker502/orrery/pkg/utils"
)

func TestDefaultBodiesConfigIsValid(t *testing.T) {
	cfg := DefaultBodiesConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default bodies invalid: %v", err)
	}

	earth, ok := cfg.FindPlanet("Earth")
	if !ok {
		t.Fatal("Earth not found")
	}
	if len(earth.Moons) != 1 {
		t.Errorf("Earth moons: expected 1, got %d", len(earth.Moons))
	}

	el := earth.Elements()
	if el.SemiMajorAxis != 30 || el.PeriodDays != 365.256 {
		t.Errorf("Earth elements: got %+v", el)
	}
	if math.Abs(el.AxialTiltRad-utils.DegToRad(23.44)) > 1e-12 {
		t.Errorf("Earth tilt: got %v", el.AxialTiltRad)
	}

	if _, ok := cfg.FindPlanet("Pluto"); ok {
		t.Error("Pluto should not be in the default table")
	}
}

func TestParseBodiesConfigRejectsBadPeriods(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{
			name: "行星周期为零",
			yaml: `
sun: {name: Sun, radius: 4, color: "#FFFFFF"}
planets:
  - {name: X, radius: 1, distance: 10, periodDays: 0, color: "#FFFFFF"}
`,
		},
		{
			name: "卫星周期为负",
			yaml: `
sun: {name: Sun, radius: 4, color: "#FFFFFF"}
planets:
  - name: X
    radius: 1
    distance: 10
    periodDays: 100
    color: "#FFFFFF"
    moons:
      - {name: m, radius: 0.1, distanceFromParent: 2, periodDays: -1, color: "#FFFFFF"}
`,
		},
		{
			name: "重复行星名",
			yaml: `
sun: {name: Sun, radius: 4, color: "#FFFFFF"}
planets:
  - {name: X, radius: 1, distance: 10, periodDays: 10, color: "#FFFFFF"}
  - {name: X, radius: 1, distance: 20, periodDays: 20, color: "#FFFFFF"}
`,
		},
		{
			name: "偏心率越界",
			yaml: `
sun: {name: Sun, radius: 4, color: "#FFFFFF"}
planets:
  - {name: X, radius: 1, distance: 10, periodDays: 10, eccentricity: 1, color: "#FFFFFF"}
`,
		},
		{
			name: "非法颜色",
			yaml: `
sun: {name: Sun, radius: 4, color: "yellow"}
planets:
  - {name: X, radius: 1, distance: 10, periodDays: 10, color: "#FFFFFF"}
`,
		},
		{
			name: "小行星带半径范围反转",
			yaml: `
sun: {name: Sun, radius: 4, color: "#FFFFFF"}
planets:
  - {name: X, radius: 1, distance: 10, periodDays: 10, color: "#FFFFFF"}
asteroidBelt: {name: A, count: 10, innerRadius: 70, outerRadius: 50, referenceRadius: 50, color: "#FFFFFF"}
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseBodiesConfig([]byte(tt.yaml)); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestParseBodiesConfigMinimal(t *testing.T) {
	cfg, err := ParseBodiesConfig([]byte(`
sun: {name: Sun, radius: 4, color: "#FDB813"}
planets:
  - {name: Earth, radius: 1.3, distance: 30, periodDays: 365.256, color: "#6B93D6"}
`))
	if err != nil {
		t.Fatalf("ParseBodiesConfig failed: %v", err)
	}
	if cfg.VerticalScale != 1 {
		t.Errorf("VerticalScale default: expected 1, got %v", cfg.VerticalScale)
	}
	if cfg.AsteroidBelt.Count != 0 {
		t.Errorf("belt omitted: expected count 0, got %d", cfg.AsteroidBelt.Count)
	}
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.RGBA
		wantErr bool
	}{
		{"#6B93D6", color.RGBA{R: 0x6B, G: 0x93, B: 0xD6, A: 0xff}, false},
		{"FDB813", color.RGBA{R: 0xFD, G: 0xB8, B: 0x13, A: 0xff}, false},
		{"#FFF", color.RGBA{}, true},
		{"#GGGGGG", color.RGBA{}, true},
		{"", color.RGBA{}, true},
	}
	for _, tt := range tests {
		got, err := ParseHexColor(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseHexColor(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseHexColor(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
