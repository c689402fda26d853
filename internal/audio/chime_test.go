package audio

import (
	"testing"
	"time"

	"github.com/gopxl/beep"
)

func TestSineStaysInRange(t *testing.T) {
	s := NewSine(440, 50*time.Millisecond, SampleRate)
	samples := make([][2]float64, 128)
	total := 0
	for {
		n, ok := s.Stream(samples)
		for i := 0; i < n; i++ {
			if samples[i][0] < -1 || samples[i][0] > 1 {
				t.Fatalf("sample %d out of range: %f", total+i, samples[i][0])
			}
		}
		total += n
		if !ok {
			break
		}
	}
	if want := SampleRate.N(50 * time.Millisecond); total != want {
		t.Errorf("expected %d samples, got %d", want, total)
	}
}

func TestEnvelopeStartsSilent(t *testing.T) {
	env := NewEnvelope(NewSine(440, 100*time.Millisecond, SampleRate), 100*time.Millisecond, 20*time.Millisecond, 20*time.Millisecond, SampleRate)
	samples := make([][2]float64, 1)
	if _, ok := env.Stream(samples); !ok {
		t.Fatal("expected stream to produce samples")
	}
	if samples[0][0] != 0 {
		t.Errorf("first sample should be silent under attack, got %f", samples[0][0])
	}
}

func TestNewCue(t *testing.T) {
	for _, c := range []Cue{CueSunTrigger, CueMilkyWayTrigger, CueComplete} {
		if NewCue(c, 0.5) == nil {
			t.Errorf("cue %s: expected a streamer", c)
		}
	}
	if NewCue(Cue(99), 1) != nil {
		t.Error("unknown cue should return nil")
	}
}

func TestRenderPCM16(t *testing.T) {
	pcm := RenderPCM16(NewCue(CueComplete, 1))
	// 120ms + 240ms stereo 16-bit
	want := (SampleRate.N(120*time.Millisecond) + SampleRate.N(240*time.Millisecond)) * 4
	if len(pcm) != want {
		t.Errorf("expected %d bytes, got %d", want, len(pcm))
	}

	silent := RenderPCM16(NewCue(CueSunTrigger, 0))
	for i, b := range silent {
		if b != 0 {
			t.Fatalf("muted cue produced non-zero byte at %d", i)
		}
	}

	if RenderPCM16(nil) != nil {
		t.Error("nil streamer should render nothing")
	}
}

func TestRenderPCM16StopsOnEmptyStream(t *testing.T) {
	if got := RenderPCM16(beep.Silence(0)); len(got) != 0 {
		t.Errorf("empty stream should render 0 bytes, got %d", len(got))
	}
}
