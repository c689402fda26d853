package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// SpeakerPlayer plays cues on the system speaker through a shared mixer.
// Used by the terminal front-end; the ebiten front-end renders PCM instead.
type SpeakerPlayer struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	initialized bool
}

// NewSpeakerPlayer creates a player; call Initialize before Play.
func NewSpeakerPlayer(volume float64) *SpeakerPlayer {
	return &SpeakerPlayer{mixer: &beep.Mixer{}, volume: volume}
}

// Initialize opens the speaker with a 100ms buffer.
func (p *SpeakerPlayer) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.initialized {
		return nil
	}
	if err := speaker.Init(SampleRate, SampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Play queues a cue. It is a no-op before Initialize.
func (p *SpeakerPlayer) Play(c Cue) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.initialized {
		return
	}
	s := NewCue(c, p.volume)
	if s == nil {
		return
	}
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}

// Close silences the mixer and releases the speaker.
func (p *SpeakerPlayer) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	p.initialized = false
}
