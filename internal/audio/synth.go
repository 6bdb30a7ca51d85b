package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/vovakirdan/flipsim/internal/sim"
)

// WaveType defines oscillator wave shapes.
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator generates a raw wave, optionally sliding in pitch.
// Noise comes from a fixed-seed generator so renders are reproducible.
type oscillator struct {
	freq     float64
	slide    float64 // Hz added per second
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
	noise    uint32
}

func newOscillator(freq, slide float64, d time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		slide:    slide,
		duration: rate.N(d),
		wave:     wave,
		rate:     rate,
		noise:    0x9E3779B9,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveNoise:
			o.noise ^= o.noise << 13
			o.noise ^= o.noise >> 17
			o.noise ^= o.noise << 5
			val = float64(o.noise)/float64(math.MaxUint32)*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		f := o.freq + o.slide*float64(o.position)/float64(o.rate)
		o.phase += f / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies a linear attack and release.
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	totalSamples   int
}

func newEnvelope(s beep.Streamer, d, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer:       s,
		attackSamples:  rate.N(attack),
		releaseSamples: rate.N(release),
		totalSamples:   rate.N(d),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		vol := 1.0
		if e.position < e.attackSamples {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		if rem := e.totalSamples - e.position; rem < e.releaseSamples {
			vol = math.Max(0, float64(rem)/float64(e.releaseSamples))
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}

	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume scales a stream linearly; 0 is silent.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// tone is one note of an effect.
type tone struct {
	freq    float64
	slide   float64
	dur     time.Duration
	wave    WaveType
	attack  time.Duration
	release time.Duration
}

// voices are played one after another.
var voices = map[sim.Sound][]tone{
	sim.SoundFlip:          {{freq: 440, slide: 2400, dur: 80 * time.Millisecond, wave: WaveSquare, attack: 2 * time.Millisecond, release: 30 * time.Millisecond}},
	sim.SoundHurt:          {{freq: 220, slide: -900, dur: 250 * time.Millisecond, wave: WaveSaw, attack: 2 * time.Millisecond, release: 120 * time.Millisecond}},
	sim.SoundCoin:          {{freq: 988, dur: 60 * time.Millisecond, wave: WaveSquare, release: 20 * time.Millisecond}, {freq: 1319, dur: 120 * time.Millisecond, wave: WaveSquare, release: 80 * time.Millisecond}},
	sim.SoundTrinket:       {{freq: 523, dur: 90 * time.Millisecond, wave: WaveSine}, {freq: 659, dur: 90 * time.Millisecond, wave: WaveSine}, {freq: 784, dur: 200 * time.Millisecond, wave: WaveSine, release: 120 * time.Millisecond}},
	sim.SoundNewRecord:     {{freq: 784, dur: 100 * time.Millisecond, wave: WaveSquare}, {freq: 1047, dur: 200 * time.Millisecond, wave: WaveSquare, release: 100 * time.Millisecond}},
	sim.SoundCheckpoint:    {{freq: 660, slide: 600, dur: 150 * time.Millisecond, wave: WaveSine, release: 60 * time.Millisecond}},
	sim.SoundGravityLine:   {{freq: 1200, slide: -1500, dur: 60 * time.Millisecond, wave: WaveSine, release: 20 * time.Millisecond}},
	sim.SoundTeleport:      {{freq: 200, slide: 3000, dur: 400 * time.Millisecond, wave: WaveSaw, attack: 50 * time.Millisecond, release: 150 * time.Millisecond}},
	sim.SoundTerminalTouch: {{freq: 880, dur: 40 * time.Millisecond, wave: WaveSquare}, {freq: 1760, dur: 40 * time.Millisecond, wave: WaveSquare}},
	sim.SoundRescue:        {{freq: 392, dur: 120 * time.Millisecond, wave: WaveSine}, {freq: 523, dur: 240 * time.Millisecond, wave: WaveSine, release: 120 * time.Millisecond}},
	sim.SoundGameSaved:     {{freq: 523, dur: 80 * time.Millisecond, wave: WaveSine}, {freq: 523, dur: 80 * time.Millisecond, wave: WaveSine}},
	sim.SoundDisappear:     {{dur: 150 * time.Millisecond, wave: WaveNoise, attack: 10 * time.Millisecond, release: 100 * time.Millisecond}},
	sim.SoundCrumble:       {{dur: 100 * time.Millisecond, wave: WaveNoise, release: 60 * time.Millisecond}},
}

// Effect builds the streamer for one sound, or nil for unknown sounds.
func Effect(s sim.Sound, rate beep.SampleRate, volume float64) beep.Streamer {
	tones, ok := voices[s]
	if !ok {
		return nil
	}
	parts := make([]beep.Streamer, 0, len(tones))
	for _, t := range tones {
		osc := newOscillator(t.freq, t.slide, t.dur, t.wave, rate)
		parts = append(parts, newEnvelope(osc, t.dur, t.attack, t.release, rate))
	}
	return newVolume(beep.Seq(parts...), volume)
}

// EffectLength returns the sample count of one sound's streamer.
func EffectLength(s sim.Sound, rate beep.SampleRate) int {
	n := 0
	for _, t := range voices[s] {
		n += rate.N(t.dur)
	}
	return n
}
