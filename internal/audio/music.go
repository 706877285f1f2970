// Package audio plays the looping background track. A missing or broken
// track leaves the player silent; the game itself never waits on audio.
package audio

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/mp3"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/dagyiman/internal/config"
)

// VolumeStep is the change applied by one volume up/down press, in percent.
const VolumeStep = 10

// Music owns the background track and its volume control.
type Music struct {
	mu      sync.Mutex
	path    string
	percent int // 0..100
	muted   bool
	logger  *log.Logger

	stream  beep.StreamSeekCloser
	ctrl    *beep.Ctrl
	volume  *effects.Volume
	playing bool
}

// NewMusic creates a player for the configured track. Nothing is opened
// until Start is called.
func NewMusic(cfg config.AudioConfig, logger *log.Logger) *Music {
	if logger == nil {
		logger = log.Default()
	}
	return &Music{
		path:    cfg.Music,
		percent: toPercent(cfg.Volume),
		muted:   cfg.Muted,
		logger:  logger,
	}
}

// Start decodes the track and begins looping it.
// A missing file is not an error: the game simply runs without music.
func (m *Music) Start() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.playing {
		return nil
	}
	if m.path == "" {
		m.logger.Debug("no music configured")
		return nil
	}

	f, err := os.Open(m.path)
	if errors.Is(err, fs.ErrNotExist) {
		m.logger.Warn("music not found, playing silently", "path", m.path)
		return nil
	}
	if err != nil {
		return fmt.Errorf("audio: cannot open %s: %w", m.path, err)
	}

	stream, format, err := mp3.Decode(f)
	if err != nil {
		f.Close()
		return fmt.Errorf("audio: cannot decode %s: %w", m.path, err)
	}

	if err := speaker.Init(format.SampleRate, format.SampleRate.N(time.Second/10)); err != nil {
		stream.Close()
		return fmt.Errorf("audio: cannot init speaker: %w", err)
	}

	m.stream = stream
	m.ctrl = &beep.Ctrl{Streamer: beep.Loop(-1, stream)}
	m.volume = &effects.Volume{Streamer: m.ctrl, Base: 2}
	m.applyLocked()
	speaker.Play(m.volume)
	m.playing = true

	m.logger.Info("music started", "path", m.path, "volume", m.percent)
	return nil
}

// Close stops playback and releases the decoder.
func (m *Music) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.playing {
		return
	}
	speaker.Clear()
	m.stream.Close()
	m.playing = false
	m.ctrl = nil
	m.volume = nil
}

// Playing reports whether a track is actually being streamed.
func (m *Music) Playing() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.playing
}

// Volume returns the current volume in percent.
func (m *Music) Volume() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.percent
}

// Muted reports whether output is muted.
func (m *Music) Muted() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.muted
}

// SetVolume sets the volume in percent, clamped to 0..100.
func (m *Music) SetVolume(percent int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.percent = clampPercent(percent)
	m.applyLocked()
}

// VolumeUp raises the volume by one step.
func (m *Music) VolumeUp() {
	m.SetVolume(m.Volume() + VolumeStep)
}

// VolumeDown lowers the volume by one step.
func (m *Music) VolumeDown() {
	m.SetVolume(m.Volume() - VolumeStep)
}

// ToggleMute flips the mute flag and returns the new state.
func (m *Music) ToggleMute() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.muted = !m.muted
	m.applyLocked()
	return m.muted
}

// applyLocked pushes the current level into the effects chain.
// Caller must hold m.mu.
func (m *Music) applyLocked() {
	if m.volume == nil {
		return
	}
	exp, silent := gain(m.percent, m.muted)
	speaker.Lock()
	m.volume.Volume = exp
	m.volume.Silent = silent
	speaker.Unlock()
}

// gain converts a linear percentage into the base-2 exponent used by
// effects.Volume. 100% is unity gain.
func gain(percent int, muted bool) (exp float64, silent bool) {
	if muted || percent <= 0 {
		return 0, true
	}
	return math.Log2(float64(percent) / 100), false
}

func toPercent(v float64) int {
	return clampPercent(int(math.Round(v * 100)))
}

func clampPercent(p int) int {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
