// Package audio synthesizes the short sound effects played during a round.
package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// Effect identifies a sound effect.
type Effect int

const (
	EffectShot Effect = iota
	EffectHit
	EffectKill
	EffectLevelComplete
)

func (e Effect) String() string {
	switch e {
	case EffectShot:
		return "shot"
	case EffectHit:
		return "hit"
	case EffectKill:
		return "kill"
	case EffectLevelComplete:
		return "level_complete"
	default:
		return "unknown"
	}
}

// Wave is an oscillator shape.
type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     Wave
	rate     beep.SampleRate
	rng      *rand.Rand
}

// NewOscillator creates a streamer producing duration worth of the wave at freq.
func NewOscillator(freq float64, duration time.Duration, wave Wave, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
		rng:      rand.New(rand.NewSource(1)),
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
				val = 1
			} else {
				val = -1
			}
		case WaveSaw:
			val = 2 * (o.phase - 0.5)
		case WaveNoise:
			val = o.rng.Float64()*2 - 1
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

// sweep is a sine whose frequency slides linearly from one value to another.
type sweep struct {
	from, to float64
	phase    float64
	duration int
	position int
	rate     beep.SampleRate
}

// NewSweep creates a sine sliding from one frequency to another over duration.
func NewSweep(from, to float64, duration time.Duration, rate beep.SampleRate) beep.Streamer {
	return &sweep{from: from, to: to, duration: rate.N(duration), rate: rate}
}

func (s *sweep) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if s.position >= s.duration {
			return i, i > 0
		}
		progress := float64(s.position) / float64(s.duration)
		freq := s.from + (s.to-s.from)*progress

		val := math.Sin(2 * math.Pi * s.phase)
		samples[i][0] = val
		samples[i][1] = val

		s.phase += freq / float64(s.rate)
		s.phase -= math.Floor(s.phase)
		s.position++
	}
	return len(samples), true
}

func (s *sweep) Err() error { return nil }

// envelope applies a linear attack and release.
type envelope struct {
	streamer beep.Streamer
	position int
	attack   int
	release  int
	total    int
}

// NewEnvelope shapes s with a linear fade in over attack and fade out over release.
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer: s,
		attack:   rate.N(attack),
		release:  rate.N(release),
		total:    rate.N(duration),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if e.position >= e.total {
			return i, i > 0
		}

		vol := 1.0
		if e.attack > 0 && e.position < e.attack {
			vol = float64(e.position) / float64(e.attack)
		}
		if releaseStart := e.total - e.release; e.release > 0 && e.position >= releaseStart {
			vol = math.Max(0, float64(e.total-e.position)/float64(e.release))
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

func volume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// Build returns a fresh streamer for effect at the given sample rate,
// scaled by vol in [0,1]. Unknown effects return nil.
func Build(effect Effect, rate beep.SampleRate, vol float64) beep.Streamer {
	var s beep.Streamer

	switch effect {
	case EffectShot:
		d := 90 * time.Millisecond
		s = NewEnvelope(NewSweep(900, 300, d, rate), d, 5*time.Millisecond, 60*time.Millisecond, rate)
	case EffectHit:
		d := 80 * time.Millisecond
		s = NewEnvelope(NewOscillator(0, d, WaveNoise, rate), d, 2*time.Millisecond, 60*time.Millisecond, rate)
	case EffectKill:
		d := 180 * time.Millisecond
		s = NewEnvelope(NewOscillator(110, d, WaveSaw, rate), d, 5*time.Millisecond, 150*time.Millisecond, rate)
	case EffectLevelComplete:
		n1 := 120 * time.Millisecond
		n2 := 120 * time.Millisecond
		n3 := 300 * time.Millisecond
		s = beep.Seq(
			NewEnvelope(NewOscillator(523.25, n1, WaveSquare, rate), n1, 5*time.Millisecond, 40*time.Millisecond, rate),
			NewEnvelope(NewOscillator(659.25, n2, WaveSquare, rate), n2, 5*time.Millisecond, 40*time.Millisecond, rate),
			NewEnvelope(NewOscillator(783.99, n3, WaveSquare, rate), n3, 5*time.Millisecond, 250*time.Millisecond, rate),
		)
	default:
		return nil
	}

	return volume(s, vol)
}
