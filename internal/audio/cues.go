package audio

import (
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"

	"github.com/example/spotdiff/internal/game"
)

const ms = time.Millisecond

// failedMelody is A3 G3 F3 E3 D3 in a 3:1:3:1:4 rhythm.
var failedMelody = []struct {
	freq float64
	dur  time.Duration
}{
	{220, 450 * ms},
	{196, 150 * ms},
	{174, 450 * ms},
	{164, 150 * ms},
	{146, 600 * ms},
}

// completeArpeggio is C5 E5 G5 C6.
var completeArpeggio = []float64{523.25, 659.25, 783.99, 1046.5}

// CueStreamer builds the sound for a cue. Each call returns a fresh,
// finite streamer.
func CueStreamer(c game.Cue, rate beep.SampleRate) beep.Streamer {
	switch c {
	case game.CueFound:
		return beep.Mix(
			note(WaveSine, 660, 660, SweepLinear, 400*ms, 0.1, 0, rate),
			delayed(200*ms, note(WaveSine, 880, 880, SweepLinear, 400*ms, 0.1, 0, rate), rate),
		)
	case game.CueMistake:
		return note(WaveSaw, 100, 50, SweepLinear, 300*ms, 0.3, 0, rate)
	case game.CueEasterEgg:
		return note(WaveSine, 800, 500, SweepExponential, 150*ms, 0.3, 20*ms, rate)
	case game.CueFailed:
		parts := make([]beep.Streamer, 0, len(failedMelody))
		for _, n := range failedMelody {
			parts = append(parts, note(WaveSaw, n.freq, n.freq, SweepLinear, n.dur, 0.15, 50*ms, rate))
		}
		return beep.Seq(parts...)
	case game.CueComplete:
		parts := make([]beep.Streamer, 0, len(completeArpeggio))
		for _, f := range completeArpeggio {
			sine, err := generators.SineTone(rate, f)
			if err != nil {
				audioLog.Debug().Err(err).Float64("freq", f).Msg("skip arpeggio note")
				continue
			}
			d := 180 * ms
			parts = append(parts, newEnvelope(beep.Take(rate.N(d), sine), 0.15, 0.01, 10*ms, d, rate))
		}
		return beep.Seq(parts...)
	case game.CuePrank:
		return note(WaveSquare, 70, 55, SweepLinear, 600*ms, 0.2, 30*ms, rate)
	default:
		return beep.Silence(0)
	}
}
