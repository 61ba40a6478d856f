// Package audio plays game cues through the system speaker.
package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/example/spotdiff/internal/game"
)

const sampleRate = beep.SampleRate(44100)

// speaker seams for tests
var (
	speakerInit = speaker.Init
	speakerPlay = func(s ...beep.Streamer) { speaker.Play(s...) }
)

// Player implements game.CuePlayer. Playback is fire-and-forget: cues are
// added to a mixer that the speaker drains on its own goroutine. A player
// whose speaker could not be opened stays silent.
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	enabled     bool
	initialized bool
}

// New returns a player with volume in [0, 1]. Disabled players never touch
// the audio device.
func New(enabled bool, volume float64) *Player {
	if volume < 0 {
		volume = 0
	}
	if volume > 1 {
		volume = 1
	}
	return &Player{mixer: &beep.Mixer{}, volume: volume, enabled: enabled}
}

// Init opens the speaker. Calling it again is a no-op.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.enabled || p.initialized {
		return nil
	}
	if err := speakerInit(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		p.enabled = false
		audioLog.Warn().Err(err).Msg("speaker unavailable, audio disabled")
		return err
	}
	speakerPlay(p.mixer)
	p.initialized = true
	return nil
}

// Play queues the cue and returns immediately.
func (p *Player) Play(c game.Cue) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Add(withVolume(CueStreamer(c, sampleRate), p.volume))
	speaker.Unlock()
	audioLog.Debug().Stringer("cue", c).Msg("cue queued")
}

// Close silences anything still playing.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	p.initialized = false
}

// Active reports whether the player has an open speaker.
func (p *Player) Active() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.initialized
}
