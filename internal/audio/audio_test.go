package audio

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"

	"github.com/example/spotdiff/internal/game"
)

func drain(s beep.Streamer) (samples int, peak float64) {
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			if a := math.Abs(buf[i][0]); a > peak {
				peak = a
			}
		}
		samples += n
		if !ok {
			return samples, peak
		}
	}
}

func TestCueDurations(t *testing.T) {
	melody := 0
	for _, n := range failedMelody {
		melody += sampleRate.N(n.dur)
	}
	cases := []struct {
		cue  game.Cue
		want int
	}{
		{game.CueFound, sampleRate.N(600 * time.Millisecond)},
		{game.CueMistake, sampleRate.N(300 * time.Millisecond)},
		{game.CueEasterEgg, sampleRate.N(150 * time.Millisecond)},
		{game.CueFailed, melody},
		{game.CueComplete, len(completeArpeggio) * sampleRate.N(180*time.Millisecond)},
		{game.CuePrank, sampleRate.N(600 * time.Millisecond)},
	}
	for _, tc := range cases {
		t.Run(tc.cue.String(), func(t *testing.T) {
			got, peak := drain(CueStreamer(tc.cue, sampleRate))
			if diff := got - tc.want; diff > 2 || diff < -2 {
				t.Fatalf("%d samples, want %d", got, tc.want)
			}
			if peak == 0 || peak > 1 {
				t.Fatalf("peak amplitude %v", peak)
			}
		})
	}
}

func TestToneSweepsDown(t *testing.T) {
	tn := newTone(WaveSaw, 100, 50, SweepLinear, 300*time.Millisecond, sampleRate)
	if f := tn.freqAt(0); f != 100 {
		t.Fatalf("start freq %v", f)
	}
	if f := tn.freqAt(tn.total - 1); math.Abs(f-50) > 1e-9 {
		t.Fatalf("end freq %v", f)
	}
	ex := newTone(WaveSine, 800, 500, SweepExponential, 150*time.Millisecond, sampleRate)
	mid := ex.freqAt((ex.total - 1) / 2)
	if mid >= 650 || mid <= 500 {
		t.Fatalf("exponential midpoint %v should sit below the linear one", mid)
	}
}

func TestPlayerWithoutSpeakerIsSilent(t *testing.T) {
	p := New(false, 1)
	if err := p.Init(); err != nil {
		t.Fatalf("disabled Init: %v", err)
	}
	p.Play(game.CueFound)
	p.Close()
	if p.Active() {
		t.Fatalf("disabled player became active")
	}
}

func TestPlayerInitFailureDisables(t *testing.T) {
	origInit := speakerInit
	t.Cleanup(func() { speakerInit = origInit })
	speakerInit = func(beep.SampleRate, int) error { return errors.New("no device") }

	p := New(true, 0.5)
	if err := p.Init(); err == nil {
		t.Fatalf("expected init error")
	}
	p.Play(game.CueMistake)
	if p.Active() {
		t.Fatalf("player active after failed init")
	}
}

func TestPlayerQueuesCues(t *testing.T) {
	origInit, origPlay := speakerInit, speakerPlay
	t.Cleanup(func() { speakerInit, speakerPlay = origInit, origPlay })
	var played []beep.Streamer
	speakerInit = func(beep.SampleRate, int) error { return nil }
	speakerPlay = func(s ...beep.Streamer) { played = append(played, s...) }

	p := New(true, 0.8)
	if err := p.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if err := p.Init(); err != nil {
		t.Fatalf("second Init: %v", err)
	}
	if len(played) != 1 {
		t.Fatalf("mixer handed to speaker %d times", len(played))
	}
	p.Play(game.CueFound)
	p.Play(game.CueEasterEgg)
	if got := p.mixer.Len(); got != 2 {
		t.Fatalf("mixer has %d streamers, want 2", got)
	}
	p.Close()
	if p.mixer.Len() != 0 || p.Active() {
		t.Fatalf("Close left the player active")
	}
}
