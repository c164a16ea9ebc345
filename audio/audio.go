// Package audio synthesizes short collision sound effects and plays them
// through the system speaker. Everything is generated procedurally; there
// are no sample assets.
package audio

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
)

// SoundType selects an effect
type SoundType int

const (
	// SoundMerge is a soft two-tone chime for low-energy coalescence
	SoundMerge SoundType = iota
	// SoundCrater is a low thud for an impactor burying into a heavy body
	SoundCrater
	// SoundFragment is a noise burst for mutual destruction
	SoundFragment
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveNoise
)

// oscillator generates raw audio waves
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewOscillator creates a bounded-duration wave source
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
	}
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
		case WaveNoise:
			val = rand.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies linear attack/release shaping to a stream
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	totalSamples   int
}

// NewEnvelope shapes a streamer with linear attack and release ramps
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer:       s,
		attackSamples:  rate.N(attack),
		releaseSamples: rate.N(release),
		totalSamples:   rate.N(duration),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, false
		}

		vol := 1.0
		if e.position < e.attackSamples && e.attackSamples > 0 {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		if rem := e.totalSamples - e.position; rem < e.releaseSamples && e.releaseSamples > 0 {
			vol = math.Min(vol, float64(rem)/float64(e.releaseSamples))
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume wraps a streamer with a gain stage; log2(0) is -Inf, so zero
// volume switches to silent instead
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// Player owns the speaker. A Player that failed to initialize is usable and
// silent, so audio problems never take down the frontend.
type Player struct {
	rate   beep.SampleRate
	ok     bool
	volume float64
}

// NewPlayer initializes the speaker. The error is informational; the
// returned player always works (silently on failure).
func NewPlayer(volume float64) (*Player, error) {
	p := &Player{rate: beep.SampleRate(44100), volume: volume}
	if err := speaker.Init(p.rate, p.rate.N(time.Second/20)); err != nil {
		return p, fmt.Errorf("speaker init: %w", err)
	}
	p.ok = true
	return p, nil
}

// Play starts the effect asynchronously; no-op when muted or uninitialized
func (p *Player) Play(kind SoundType) {
	if !p.ok || p.volume <= 0 {
		return
	}
	speaker.Play(p.effect(kind))
}

// Close releases the speaker
func (p *Player) Close() {
	if p.ok {
		speaker.Close()
		p.ok = false
	}
}

func (p *Player) effect(kind SoundType) beep.Streamer {
	switch kind {
	case SoundMerge:
		return p.mergeChime()
	case SoundCrater:
		return p.craterThud()
	case SoundFragment:
		return p.fragmentBurst()
	default:
		return beep.Silence(0)
	}
}

// mergeChime is a soft fifth (A4 + E5), sine
func (p *Player) mergeChime() beep.Streamer {
	const dur = 180 * time.Millisecond
	low := NewEnvelope(NewOscillator(440, dur, WaveSine, p.rate), dur, 5*time.Millisecond, 120*time.Millisecond, p.rate)
	high := NewEnvelope(NewOscillator(659.25, dur, WaveSine, p.rate), dur, 5*time.Millisecond, 150*time.Millisecond, p.rate)
	return newVolume(beep.Mix(newVolume(low, 0.6), newVolume(high, 0.4)), p.volume)
}

// craterThud is a short low square hit
func (p *Player) craterThud() beep.Streamer {
	const dur = 140 * time.Millisecond
	osc := NewOscillator(70, dur, WaveSquare, p.rate)
	return newVolume(NewEnvelope(osc, dur, 2*time.Millisecond, 110*time.Millisecond, p.rate), p.volume)
}

// fragmentBurst is a white-noise crack
func (p *Player) fragmentBurst() beep.Streamer {
	const dur = 200 * time.Millisecond
	noise := NewOscillator(0, dur, WaveNoise, p.rate)
	return newVolume(NewEnvelope(noise, dur, 1*time.Millisecond, 170*time.Millisecond, p.rate), p.volume)
}
