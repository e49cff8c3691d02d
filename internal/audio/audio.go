// Package audio plays the game's short sound effects. Sounds are synthesized
// on the fly with beep, so the binary carries no asset files.
package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// Sound names one effect.
type Sound string

const (
	SoundExplode Sound = "explode"
	SoundLose    Sound = "lose"
	SoundMove    Sound = "move"
	SoundPew     Sound = "pew"
	SoundStartup Sound = "startup"
	SoundWin     Sound = "win"
)

// Sounds lists every effect the game plays.
var Sounds = []Sound{SoundExplode, SoundLose, SoundMove, SoundPew, SoundStartup, SoundWin}

const sampleRate = beep.SampleRate(44100)

// Player plays sounds without blocking the caller.
type Player interface {
	Play(name Sound)
	// Wait blocks until every sound queued so far has finished.
	Wait()
}

// Nop discards every sound.
type Nop struct{}

func (Nop) Play(Sound) {}
func (Nop) Wait()      {}

// Speaker plays sounds through the system audio device.
type Speaker struct {
	rate    beep.SampleRate
	pending sync.WaitGroup
	logger  *log.Logger
}

// Ensure implementations satisfy Player.
var (
	_ Player = Nop{}
	_ Player = (*Speaker)(nil)
)

// NewSpeaker opens the audio device. Only one Speaker may exist per process.
func NewSpeaker(logger *log.Logger) (*Speaker, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/20)); err != nil {
		return nil, fmt.Errorf("init speaker: %w", err)
	}
	return &Speaker{rate: sampleRate, logger: logger}, nil
}

// Play queues a sound on the mixer and returns immediately.
func (s *Speaker) Play(name Sound) {
	st := Synthesize(name, s.rate)
	if st == nil {
		s.logger.Warn("unknown sound", "name", name)
		return
	}
	s.pending.Add(1)
	speaker.Play(beep.Seq(st, beep.Callback(s.pending.Done)))
}

// Wait blocks until all queued sounds finished playing.
func (s *Speaker) Wait() {
	s.pending.Wait()
}

// Close releases the audio device.
func (s *Speaker) Close() {
	speaker.Close()
}
