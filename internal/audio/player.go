package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// DefaultSampleRate is the output sample rate.
const DefaultSampleRate = beep.SampleRate(44100)

// Config controls sound output.
type Config struct {
	Enabled bool    `yaml:"enabled"`
	Volume  float64 `yaml:"volume"`
}

// DefaultConfig returns sound enabled at 40% volume.
func DefaultConfig() Config {
	return Config{Enabled: true, Volume: 0.4}
}

// Player mixes effects onto the speaker. The zero value and a Player whose
// device failed to open are silent.
type Player struct {
	mu          sync.Mutex
	config      Config
	rate        beep.SampleRate
	mixer       *beep.Mixer
	initialized bool
	played      map[Effect]int
}

// NewPlayer creates a Player. Call Init to open the audio device.
func NewPlayer(config Config) *Player {
	return &Player{
		config: config,
		rate:   DefaultSampleRate,
		mixer:  &beep.Mixer{},
		played: make(map[Effect]int),
	}
}

// Init opens the speaker. It is a no-op when sound is disabled.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.config.Enabled || p.initialized {
		return nil
	}

	if err := speaker.Init(p.rate, p.rate.N(50*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Play queues effect on the mixer.
func (p *Player) Play(effect Effect) {
	if p == nil {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.played[effect]++
	if !p.initialized {
		return
	}

	s := Build(effect, p.rate, p.config.Volume)
	if s == nil {
		return
	}
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}

// Played returns how many times effect was requested.
func (p *Player) Played(effect Effect) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.played[effect]
}

// Close stops all sounds and releases the device.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	p.initialized = false
}
