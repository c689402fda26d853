package components

import "testing"

func TestTriggerComparison_Matches(t *testing.T) {
	tests := []struct {
		name       string
		comparison TriggerComparison
		distance   float64
		threshold  float64
		want       bool
	}{
		{"靠近-小于阈值", TriggerWithin, 3, 5, true},
		{"靠近-等于阈值", TriggerWithin, 5, 5, true},
		{"靠近-大于阈值", TriggerWithin, 5.01, 5, false},
		{"远离-大于阈值", TriggerBeyond, 300, 280, true},
		{"远离-等于阈值", TriggerBeyond, 280, 280, true},
		{"远离-小于阈值", TriggerBeyond, 279.9, 280, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.comparison.Matches(tt.distance, tt.threshold); got != tt.want {
				t.Errorf("Matches(%v, %v) = %v, want %v", tt.distance, tt.threshold, got, tt.want)
			}
		})
	}
}

func TestProximityTriggerComponent_IsCooling(t *testing.T) {
	trigger := &ProximityTriggerComponent{CooldownUntil: 10}
	if !trigger.IsCooling(9.99) {
		t.Error("Expected cooling before CooldownUntil")
	}
	if trigger.IsCooling(10) {
		t.Error("Expected not cooling at CooldownUntil")
	}

	fresh := &ProximityTriggerComponent{}
	if fresh.IsCooling(0) {
		t.Error("Expected fresh trigger to be armed at t=0")
	}
}

func TestCinematicPhaseComponent_IsActive(t *testing.T) {
	active := map[CinematicPhase]bool{
		CinematicIdle:      false,
		CinematicDelaying:  true,
		CinematicPlaying:   true,
		CinematicFadingOut: true,
		CinematicReturning: true,
		CinematicCooldown:  false,
	}
	for phase, want := range active {
		comp := &CinematicPhaseComponent{Phase: phase}
		if got := comp.IsActive(); got != want {
			t.Errorf("phase %s: IsActive() = %v, want %v", phase, got, want)
		}
	}

	if CinematicPhase(99).String() != "unknown" {
		t.Error("Expected out-of-range phase to be unknown")
	}
	if CameraModeManual.String() != "manual" || CameraModeAutomatic.String() != "automatic" {
		t.Error("Unexpected camera mode names")
	}
}
