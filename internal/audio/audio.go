// Package audio synthesises short game sounds with beep. There are no
// sample assets; every sound is an enveloped oscillator tone.
package audio

import (
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(48000)

// WaveType defines oscillator wave shapes.
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// Manager owns the speaker and mixes one-shot tones into it.
// All methods are safe to call before Init; they just do nothing,
// which is the silent-mode degradation path.
type Manager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	initialized bool
}

// NewManager creates an uninitialised manager.
func NewManager(volume float64) *Manager {
	return &Manager{mixer: &beep.Mixer{}, volume: volume}
}

// Init opens the audio device. Returning an error leaves the manager in
// silent mode; callers may log and continue.
func (m *Manager) Init() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*100)); err != nil {
		return err
	}
	speaker.Play(m.mixer)
	m.initialized = true
	return nil
}

// Close silences everything.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.initialized {
		return
	}
	m.mixer.Clear()
	m.initialized = false
}

// PlayTone mixes in a single enveloped tone.
func (m *Manager) PlayTone(freq float64, duration time.Duration, wave WaveType) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.initialized || m.volume <= 0 {
		return
	}

	osc := newOscillator(freq, duration, wave)
	env := newEnvelope(osc, duration, duration/8, duration/3)
	gain := &effects.Gain{Streamer: env, Gain: m.volume - 1}

	speaker.Lock()
	m.mixer.Add(gain)
	speaker.Unlock()
}

// oscillator generates a raw audio wave for a fixed duration.
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
}

func newOscillator(freq float64, duration time.Duration, wave WaveType) beep.Streamer {
	return &oscillator{freq: freq, duration: sampleRate.N(duration), wave: wave}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, false
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
			val = rand.Float64()*2 - 1 // #nosec G404 -- audio noise
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(sampleRate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies linear attack/release shaping so tones don't click.
type envelope struct {
	streamer beep.Streamer
	position int
	attack   int
	release  int
	total    int
}

func newEnvelope(s beep.Streamer, duration, attack, release time.Duration) beep.Streamer {
	return &envelope{
		streamer: s,
		attack:   sampleRate.N(attack),
		release:  sampleRate.N(release),
		total:    sampleRate.N(duration),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		pos := e.position + i
		gain := 1.0
		if pos < e.attack && e.attack > 0 {
			gain = float64(pos) / float64(e.attack)
		} else if rem := e.total - pos; rem < e.release && e.release > 0 {
			gain = float64(rem) / float64(e.release)
		}
		samples[i][0] *= gain
		samples[i][1] *= gain
	}
	e.position += n
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }
