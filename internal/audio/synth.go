package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
)

// Wave is an oscillator shape.
type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
	WaveNoise
)

// sweep is an oscillator whose frequency slides linearly from one value to
// another over a fixed number of samples, with a short fade at both ends.
type sweep struct {
	wave     Wave
	from, to float64
	rate     beep.SampleRate
	total    int
	pos      int
	phase    float64
	fade     int
	noise    *rand.Rand
}

// NewSweep creates a finite tone sliding from one frequency to another.
func NewSweep(wave Wave, from, to float64, d time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(d)
	return &sweep{
		wave:  wave,
		from:  from,
		to:    to,
		rate:  rate,
		total: total,
		fade:  min(rate.N(5*time.Millisecond), total/4),
		noise: rand.New(rand.NewSource(int64(total))),
	}
}

func (s *sweep) Stream(samples [][2]float64) (n int, ok bool) {
	if s.pos >= s.total {
		return 0, false
	}
	for i := range samples {
		if s.pos >= s.total {
			return i, true
		}
		progress := float64(s.pos) / float64(s.total)
		freq := s.from + (s.to-s.from)*progress

		var val float64
		switch s.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * s.phase)
		case WaveSquare:
			val = 1
			if s.phase >= 0.5 {
				val = -1
			}
		case WaveNoise:
			// Decaying burst; the sweep frequencies are unused.
			val = (s.noise.Float64()*2 - 1) * math.Exp(-progress*5)
		}

		val *= s.envelope()
		samples[i][0] = val
		samples[i][1] = val

		s.phase += freq / float64(s.rate)
		s.phase -= math.Floor(s.phase)
		s.pos++
	}
	return len(samples), true
}

func (s *sweep) Err() error { return nil }

// envelope ramps the first and last few milliseconds to avoid clicks.
func (s *sweep) envelope() float64 {
	if s.fade <= 0 {
		return 1
	}
	if s.pos < s.fade {
		return float64(s.pos) / float64(s.fade)
	}
	if left := s.total - s.pos; left < s.fade {
		return float64(left) / float64(s.fade)
	}
	return 1
}

// notes plays equal-length pure tones back to back. Frequencies the sample
// rate cannot carry are skipped.
func notes(rate beep.SampleRate, each time.Duration, freqs ...float64) beep.Streamer {
	parts := make([]beep.Streamer, 0, len(freqs))
	for _, f := range freqs {
		tone, err := generators.SineTone(rate, f)
		if err != nil {
			continue
		}
		parts = append(parts, beep.Take(rate.N(each), tone))
	}
	return beep.Seq(parts...)
}

// withVolume scales s; vol is linear gain in (0, 1].
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// Synthesize builds the streamer for a named sound, or nil if the name is
// unknown. Every streamer is finite.
func Synthesize(name Sound, rate beep.SampleRate) beep.Streamer {
	switch name {
	case SoundPew:
		return withVolume(NewSweep(WaveSquare, 1400, 300, 120*time.Millisecond, rate), 0.15)
	case SoundExplode:
		return withVolume(NewSweep(WaveNoise, 0, 0, 350*time.Millisecond, rate), 0.35)
	case SoundMove:
		return withVolume(NewSweep(WaveSquare, 110, 90, 70*time.Millisecond, rate), 0.12)
	case SoundLose:
		return withVolume(NewSweep(WaveSine, 440, 110, 800*time.Millisecond, rate), 0.3)
	case SoundWin:
		return withVolume(notes(rate, 120*time.Millisecond, 523.25, 659.25, 783.99, 1046.5), 0.3)
	case SoundStartup:
		return withVolume(notes(rate, 100*time.Millisecond, 261.63, 329.63, 392.0), 0.25)
	default:
		return nil
	}
}
