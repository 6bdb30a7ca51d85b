package audio

import (
	"fmt"
	"io"
	"os"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"
)

// DefaultSampleRate is used when Renderer.SampleRate is zero.
const DefaultSampleRate beep.SampleRate = 22050

// Renderer turns a recorded timeline into audio.
type Renderer struct {
	SampleRate beep.SampleRate
	TickRate   int     // simulation frames per second
	Volume     float64 // linear, 1 is unchanged
}

func (r Renderer) withDefaults() Renderer {
	if r.SampleRate <= 0 {
		r.SampleRate = DefaultSampleRate
	}
	if r.TickRate <= 0 {
		r.TickRate = 30
	}
	if r.Volume <= 0 {
		r.Volume = 0.5
	}
	return r
}

// frameOffset is the first sample of a frame.
func (r Renderer) frameOffset(frame uint64) int {
	return int(frame) * int(r.SampleRate) / r.TickRate
}

// Length returns the sample count of a timeline of the given frames.
func (r Renderer) Length(frames uint64) int {
	return r.withDefaults().frameOffset(frames)
}

// Streamer mixes every event at its frame offset. The result lasts exactly
// frames worth of samples; effects still ringing at the end are cut.
func (r Renderer) Streamer(events []Event, frames uint64) beep.Streamer {
	r = r.withDefaults()
	total := r.frameOffset(frames)

	tracks := []beep.Streamer{beep.Silence(total)}
	for _, ev := range events {
		fx := Effect(ev.Sound, r.SampleRate, r.Volume)
		if fx == nil {
			continue
		}
		tracks = append(tracks, beep.Seq(beep.Silence(r.frameOffset(ev.Frame)), fx))
	}
	return beep.Take(total, beep.Mix(tracks...))
}

// Format is the WAV format the renderer writes.
func (r Renderer) Format() beep.Format {
	return beep.Format{
		SampleRate:  r.withDefaults().SampleRate,
		NumChannels: 2,
		Precision:   2,
	}
}

// Encode writes the timeline as a 16-bit stereo WAV.
func (r Renderer) Encode(w io.WriteSeeker, events []Event, frames uint64) error {
	if err := wav.Encode(w, r.Streamer(events, frames), r.Format()); err != nil {
		return fmt.Errorf("audio: cannot encode wav: %w", err)
	}
	return nil
}

// WriteFile renders the recorder's timeline to a WAV file.
func (r Renderer) WriteFile(path string, rec *Recorder) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("audio: cannot create %s: %w", path, err)
	}
	if err := r.Encode(f, rec.Events(), rec.Frames()); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("audio: cannot close %s: %w", path, err)
	}
	return nil
}
