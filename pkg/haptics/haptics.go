// Package haptics provides the tactile (or audible) feedback played when a
// surface is clicked.
package haptics

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

// Feedback plays a short confirmation on click.
type Feedback interface {
	LightImpact()
}

// Silent is a Feedback that does nothing.
type Silent struct{}

// LightImpact does nothing.
func (Silent) LightImpact() {}

const (
	// SampleRate is the audio rate used by Beep.
	SampleRate = beep.SampleRate(44100)
	// ClickFrequency is the pitch of the click tone in Hz.
	ClickFrequency = 880.0
	// ClickDuration is the length of the click tone.
	ClickDuration = 30 * time.Millisecond
	// ClickVolume is the click attenuation, in powers of two.
	ClickVolume = -2.0
)

// Click returns a finite streamer holding one click tone.
func Click(rate beep.SampleRate) (beep.Streamer, error) {
	sine, err := generators.SineTone(rate, ClickFrequency)
	if err != nil {
		return nil, err
	}
	return &effects.Volume{
		Streamer: beep.Take(rate.N(ClickDuration), sine),
		Base:     2,
		Volume:   ClickVolume,
	}, nil
}

// Beep plays a click tone through the system speaker. Until Init succeeds
// LightImpact is a no-op, so a machine without audio still works.
type Beep struct {
	mu          sync.Mutex
	initialized bool
}

// NewBeep creates an uninitialized speaker feedback.
func NewBeep() *Beep {
	return &Beep{}
}

// Init opens the speaker.
func (b *Beep) Init() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.initialized {
		return nil
	}
	if err := speaker.Init(SampleRate, SampleRate.N(time.Second/10)); err != nil {
		return err
	}
	b.initialized = true
	return nil
}

// LightImpact plays the click tone.
func (b *Beep) LightImpact() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.initialized {
		return
	}
	click, err := Click(SampleRate)
	if err != nil {
		return
	}
	speaker.Play(click)
}

// Close releases the speaker.
func (b *Beep) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.initialized {
		return
	}
	speaker.Close()
	b.initialized = false
}
