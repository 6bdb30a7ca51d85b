package audio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gopxl/beep"

	"github.com/vovakirdan/flipsim/internal/sim"
)

func drain(s beep.Streamer) (n int, loud bool) {
	buf := make([][2]float64, 512)
	for {
		k, ok := s.Stream(buf)
		for _, smp := range buf[:k] {
			if smp[0] != 0 || smp[1] != 0 {
				loud = true
			}
		}
		n += k
		if !ok {
			return n, loud
		}
	}
}

func TestRecorderTimeline(t *testing.T) {
	r := NewRecorder()
	r.PlayEffect(sim.SoundFlip)
	r.Advance()
	r.Advance()
	r.PlayEffect(sim.SoundCoin)
	r.PlayEffect(sim.SoundFlip)

	events := r.Events()
	expected := []Event{{0, sim.SoundFlip}, {2, sim.SoundCoin}, {2, sim.SoundFlip}}
	if len(events) != len(expected) {
		t.Fatalf("Events() = %v, expected %v", events, expected)
	}
	for i := range expected {
		if events[i] != expected[i] {
			t.Errorf("event %d = %v, expected %v", i, events[i], expected[i])
		}
	}

	if got := r.Counts()[sim.SoundFlip]; got != 2 {
		t.Errorf("flip count = %d, expected 2", got)
	}
	if got := len(r.Since(1)); got != 2 {
		t.Errorf("Since(1) has %d events, expected 2", got)
	}
	if r.Frames() != 2 {
		t.Errorf("Frames() = %d, expected 2", r.Frames())
	}

	r.Reset()
	if r.Frames() != 0 || len(r.Events()) != 0 {
		t.Error("Reset() kept state")
	}
}

func TestEffectLengths(t *testing.T) {
	rate := DefaultSampleRate
	for s := range voices {
		fx := Effect(s, rate, 1)
		n, loud := drain(fx)
		if n != EffectLength(s, rate) {
			t.Errorf("%v: streamed %d samples, expected %d", s, n, EffectLength(s, rate))
		}
		if !loud {
			t.Errorf("%v: effect is silent", s)
		}
	}

	if Effect(sim.Sound(99), rate, 1) != nil {
		t.Error("unknown sound produced an effect")
	}
}

func TestRendererStreamer(t *testing.T) {
	tests := []struct {
		name   string
		events []Event
		frames uint64
		loud   bool
	}{
		{"silent second", nil, 30, false},
		{"flip at start", []Event{{0, sim.SoundFlip}}, 30, true},
		{"cut at the end", []Event{{29, sim.SoundTeleport}}, 30, true},
		{"event past the end", []Event{{40, sim.SoundHurt}}, 30, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Renderer{}
			n, loud := drain(r.Streamer(tt.events, tt.frames))
			if n != r.Length(tt.frames) {
				t.Errorf("streamed %d samples, expected %d", n, r.Length(tt.frames))
			}
			if loud != tt.loud {
				t.Errorf("loud = %v, expected %v", loud, tt.loud)
			}
		})
	}
}

func TestWriteFile(t *testing.T) {
	rec := NewRecorder()
	rec.PlayEffect(sim.SoundCheckpoint)
	for i := 0; i < 3; i++ {
		rec.Advance()
	}

	path := filepath.Join(t.TempDir(), "out.wav")
	r := Renderer{}
	if err := r.WriteFile(path, rec); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	// 44-byte header plus 16-bit stereo frames.
	expected := int64(44 + r.Length(3)*4)
	if info.Size() != expected {
		t.Errorf("file size = %d, expected %d", info.Size(), expected)
	}
}
