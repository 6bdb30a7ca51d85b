// Package audio records the simulation's sound effects on a frame timeline
// and renders that timeline to a WAV file with synthesized effects.
package audio

import (
	"sync"

	"github.com/vovakirdan/flipsim/internal/sim"
)

// Event is one sound played during a frame.
type Event struct {
	Frame uint64
	Sound sim.Sound
}

// Recorder is a sim.AudioSink that remembers what was played and when.
// The driver calls Advance once per simulation step.
type Recorder struct {
	mu     sync.Mutex
	frame  uint64
	events []Event
}

var _ sim.AudioSink = (*Recorder)(nil)

// NewRecorder creates an empty recorder at frame 0.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// PlayEffect stamps the sound with the current frame.
func (r *Recorder) PlayEffect(s sim.Sound) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, Event{Frame: r.frame, Sound: s})
}

// Advance moves the recorder to the next frame.
func (r *Recorder) Advance() {
	r.mu.Lock()
	r.frame++
	r.mu.Unlock()
}

// Frames returns the number of frames recorded so far.
func (r *Recorder) Frames() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frame
}

// Events returns a copy of the timeline.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// Since returns the events played at or after frame.
func (r *Recorder) Since(frame uint64) []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Event
	for _, e := range r.events {
		if e.Frame >= frame {
			out = append(out, e)
		}
	}
	return out
}

// Counts tallies the timeline by sound.
func (r *Recorder) Counts() map[sim.Sound]int {
	r.mu.Lock()
	defer r.mu.Unlock()
	counts := make(map[sim.Sound]int)
	for _, e := range r.events {
		counts[e.Sound]++
	}
	return counts
}

// Reset clears the timeline and rewinds to frame 0.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frame = 0
	r.events = nil
}
