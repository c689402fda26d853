package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// SampleRate is the rate every cue is synthesized at.
const SampleRate = beep.SampleRate(44100)

// Cue identifies a short synthesized sound played on cinematic events.
type Cue int

const (
	CueSunTrigger Cue = iota
	CueMilkyWayTrigger
	CueComplete
)

// String returns the cue name used in logs.
func (c Cue) String() string {
	switch c {
	case CueSunTrigger:
		return "sun_trigger"
	case CueMilkyWayTrigger:
		return "milky_way_trigger"
	case CueComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// sine is a fixed-length sine oscillator.
type sine struct {
	freq     float64
	phase    float64
	position int
	length   int
	rate     beep.SampleRate
}

// NewSine returns a sine tone streamer of the given duration.
func NewSine(freq float64, duration time.Duration, rate beep.SampleRate) beep.Streamer {
	return &sine{freq: freq, length: rate.N(duration), rate: rate}
}

func (s *sine) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if s.position >= s.length {
			return i, i > 0
		}
		v := math.Sin(2 * math.Pi * s.phase)
		samples[i][0] = v
		samples[i][1] = v
		s.phase += s.freq / float64(s.rate)
		s.phase -= math.Floor(s.phase)
		s.position++
	}
	return len(samples), true
}

func (s *sine) Err() error { return nil }

// envelope applies a linear attack and release to a stream.
type envelope struct {
	streamer beep.Streamer
	position int
	attack   int
	release  int
	total    int
}

// NewEnvelope wraps s with attack/release shaping over duration.
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer: s,
		attack:   rate.N(attack),
		release:  rate.N(release),
		total:    rate.N(duration),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		if e.position >= e.total {
			return i, i > 0
		}
		vol := 1.0
		if e.attack > 0 && e.position < e.attack {
			vol = float64(e.position) / float64(e.attack)
		}
		if releaseStart := e.total - e.release; e.release > 0 && e.position >= releaseStart {
			vol = float64(e.total-e.position) / float64(e.release)
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// withVolume scales a stream linearly; 0 or less is silent.
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// note builds one enveloped sine note.
func note(freq float64, d time.Duration) beep.Streamer {
	return NewEnvelope(NewSine(freq, d, SampleRate), d, 10*time.Millisecond, d/2, SampleRate)
}

// NewCue synthesizes the streamer for a cue at the given volume (0..1).
func NewCue(c Cue, volume float64) beep.Streamer {
	var s beep.Streamer
	switch c {
	case CueSunTrigger:
		// rising fifth, A4 then E5
		s = beep.Seq(note(440, 180*time.Millisecond), note(659.25, 320*time.Millisecond))
	case CueMilkyWayTrigger:
		// low shimmer: two detuned notes together
		s = beep.Mix(
			withVolume(note(220, 700*time.Millisecond), 0.5),
			withVolume(note(221.5, 700*time.Millisecond), 0.5),
		)
	case CueComplete:
		// falling fourth, D5 then A4
		s = beep.Seq(note(587.33, 120*time.Millisecond), note(440, 240*time.Millisecond))
	default:
		return nil
	}
	return withVolume(s, volume)
}
