// Package audio plays the short chimes that acknowledge billboard hover and
// click, and reports how loud the last chime still is so the menu can
// flash in time with it.
package audio

import (
	"math"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"
	"github.com/pkg/errors"

	"github.com/iburimskiy/portfolio-landing/internal/config"
)

const (
	ringSize     = 4096
	levelWindow  = 1024
	hoverFreq    = 660.0
	clickFreq    = 880.0
	chimeGain    = 0.25
	decayPerSec  = 30.0
	hoverSeconds = 0.06
)

// Chime is the speaker-backed chime player. The zero value and a nil
// *Chime are muted: every method is a no-op.
type Chime struct {
	sr    beep.SampleRate
	mixer *beep.Mixer
	tap   *levelTap
}

// NewChime opens the speaker and starts an always-running mixer.
func NewChime() (*Chime, error) {
	sr := beep.SampleRate(config.ChimeSampleRate)
	if err := speaker.Init(sr, sr.N(time.Second/20)); err != nil {
		return nil, errors.Wrap(err, "init speaker")
	}
	c := &Chime{sr: sr, mixer: &beep.Mixer{}}
	c.tap = newLevelTap(c.mixer, ringSize)
	speaker.Play(c.tap)
	return c, nil
}

// Hover plays the short hover tick.
func (c *Chime) Hover() {
	c.play(hoverFreq, hoverSeconds)
}

// Click plays the click chime.
func (c *Chime) Click() {
	c.play(clickFreq, config.ChimeDurationSeconds)
}

func (c *Chime) play(freq, seconds float64) {
	if c == nil || c.mixer == nil {
		return
	}
	tone := Tone(c.sr, freq, seconds)
	speaker.Lock()
	c.mixer.Add(tone)
	speaker.Unlock()
}

// Level is the loudness of the most recently played audio in [0, 1].
func (c *Chime) Level() float64 {
	if c == nil || c.tap == nil {
		return 0
	}
	return c.tap.level(levelWindow)
}

// Tone is an exponentially decaying sine of the given length.
func Tone(sr beep.SampleRate, freq, seconds float64) beep.Streamer {
	total := sr.N(time.Duration(seconds * float64(time.Second)))
	pos := 0
	step := 2 * math.Pi * freq / float64(sr)
	return beep.StreamerFunc(func(samples [][2]float64) (n int, ok bool) {
		if pos >= total {
			return 0, false
		}
		for i := range samples {
			if pos >= total {
				break
			}
			t := float64(pos) / float64(sr)
			v := chimeGain * math.Exp(-decayPerSec*t) * math.Sin(step*float64(pos))
			samples[i][0], samples[i][1] = v, v
			pos++
			n++
		}
		return n, true
	})
}
