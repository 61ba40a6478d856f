package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// Wave selects an oscillator shape.
type Wave int

const (
	WaveSine Wave = iota
	WaveSaw
	WaveSquare
)

// Sweep selects how the frequency moves from its start to its end value.
type Sweep int

const (
	SweepLinear Sweep = iota
	SweepExponential
)

// tone is a finite oscillator whose frequency glides from `from` to `to`.
type tone struct {
	wave     Wave
	sweep    Sweep
	from, to float64
	rate     beep.SampleRate
	total    int
	pos      int
	phase    float64
}

func newTone(wave Wave, from, to float64, sweep Sweep, d time.Duration, rate beep.SampleRate) *tone {
	return &tone{wave: wave, sweep: sweep, from: from, to: to, rate: rate, total: rate.N(d)}
}

func (t *tone) freqAt(pos int) float64 {
	if t.total <= 1 || t.from == t.to {
		return t.from
	}
	p := float64(pos) / float64(t.total-1)
	if t.sweep == SweepExponential && t.from > 0 && t.to > 0 {
		return t.from * math.Pow(t.to/t.from, p)
	}
	return t.from + (t.to-t.from)*p
}

func (t *tone) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if t.pos >= t.total {
			return i, i > 0
		}
		var val float64
		switch t.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * t.phase)
		case WaveSaw:
			val = 2.0 * (t.phase - 0.5)
		case WaveSquare:
			if t.phase < 0.5 {
				val = 1
			} else {
				val = -1
			}
		}
		samples[i][0] = val
		samples[i][1] = val
		t.phase += t.freqAt(t.pos) / float64(t.rate)
		t.phase -= math.Floor(t.phase)
		t.pos++
	}
	return len(samples), true
}

func (t *tone) Err() error { return nil }

// envelope scales a stream by a linear attack to peak followed by an
// exponential decay to floor over the remaining samples.
type envelope struct {
	streamer beep.Streamer
	peak     float64
	floor    float64
	attack   int
	total    int
	pos      int
}

func newEnvelope(s beep.Streamer, peak, floor float64, attack, d time.Duration, rate beep.SampleRate) *envelope {
	if floor <= 0 {
		floor = 0.01
	}
	return &envelope{streamer: s, peak: peak, floor: floor, attack: rate.N(attack), total: rate.N(d)}
}

func (e *envelope) gain(pos int) float64 {
	if pos < e.attack && e.attack > 0 {
		return e.peak * float64(pos) / float64(e.attack)
	}
	decay := e.total - e.attack
	if decay <= 0 || e.peak <= e.floor {
		return e.peak
	}
	p := float64(pos-e.attack) / float64(decay)
	return e.peak * math.Pow(e.floor/e.peak, p)
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		if e.pos >= e.total {
			return i, i > 0
		}
		g := e.gain(e.pos)
		samples[i][0] *= g
		samples[i][1] *= g
		e.pos++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// note is a shaped tone.
func note(wave Wave, from, to float64, sweep Sweep, d time.Duration, peak float64, attack time.Duration, rate beep.SampleRate) beep.Streamer {
	return newEnvelope(newTone(wave, from, to, sweep, d, rate), peak, 0.01, attack, d, rate)
}

// delayed prefixes s with silence.
func delayed(d time.Duration, s beep.Streamer, rate beep.SampleRate) beep.Streamer {
	return beep.Seq(beep.Silence(rate.N(d)), s)
}

// withVolume applies a linear volume in [0, 1]; zero mutes the stream.
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}
