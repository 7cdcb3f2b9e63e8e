package audio

import (
	"fmt"
	"io"
	"math"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/wav"
)

// Cue names a sound that can be exported.
type Cue string

const (
	CueChime Cue = "chime"
	CueTick  Cue = "tick"
)

const (
	tickFrequency = 800.0
	sampleRate    = beep.SampleRate(44100)
)

// chimeFrequencies is an A major triad.
var chimeFrequencies = []float64{440, 554.37, 659.25}

// Format is the PCM format of rendered cues.
var Format = beep.Format{SampleRate: sampleRate, NumChannels: 2, Precision: 2}

// ParseCue validates a cue name.
func ParseCue(s string) (Cue, error) {
	switch Cue(s) {
	case CueChime, CueTick:
		return Cue(s), nil
	}
	return "", fmt.Errorf("unknown sound %q: must be chime or tick", s)
}

// Streamer returns a finite stream for cue at the given volume, where 0 is
// unchanged and each step of -1 halves the amplitude.
func Streamer(cue Cue, volume float64) beep.Streamer {
	var voices []voice
	var length time.Duration
	switch cue {
	case CueTick:
		voices = []voice{tickVoice()}
		length = 100 * time.Millisecond
	default:
		for i, f := range chimeFrequencies {
			voices = append(voices, chimeVoice(f, time.Duration(i)*100*time.Millisecond))
		}
		length = 2200 * time.Millisecond
	}

	stream := beep.Take(sampleRate.N(length), mix(voices))
	return &effects.Volume{
		Streamer: stream,
		Base:     2,
		Volume:   volume,
		Silent:   false,
	}
}

// Render encodes cue as a WAV file.
func Render(w io.WriteSeeker, cue Cue) error {
	if err := wav.Encode(w, Streamer(cue, 0), Format); err != nil {
		return fmt.Errorf("failed to encode %s: %w", cue, err)
	}
	return nil
}

// Length returns the number of samples in a rendered cue.
func Length(cue Cue) int {
	if cue == CueTick {
		return sampleRate.N(100 * time.Millisecond)
	}
	return sampleRate.N(2200 * time.Millisecond)
}

// voice is one sine oscillator with its own frequency and gain envelopes,
// both functions of seconds since the voice started.
type voice struct {
	offset float64
	end    float64
	freq   func(t float64) float64
	gain   func(t float64) float64
	phase  float64
}

// tickVoice is a 100ms sine whose pitch and level fall exponentially.
func tickVoice() voice {
	return voice{
		end:  0.1,
		freq: func(t float64) float64 { return expRamp(tickFrequency, 0.01, t/0.1) },
		gain: func(t float64) float64 { return expRamp(0.05, 0.01, t/0.1) },
	}
}

// chimeVoice fades in over 100ms and decays to 1% by 1.5s.
func chimeVoice(freq float64, start time.Duration) voice {
	return voice{
		offset: start.Seconds(),
		end:    start.Seconds() + 2,
		freq:   func(float64) float64 { return freq },
		gain: func(t float64) float64 {
			if t < 0.1 {
				return 0.1 * t / 0.1
			}
			return expRamp(0.1, 0.01, (t-0.1)/1.4)
		},
	}
}

// expRamp interpolates exponentially from a to b as x goes from 0 to 1.
func expRamp(a, b, x float64) float64 {
	if x >= 1 {
		return b
	}
	return a * math.Pow(b/a, x)
}

// mix sums the voices sample by sample.
func mix(voices []voice) beep.Streamer {
	n := 0
	dt := 1 / float64(sampleRate)
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		for i := range samples {
			t := float64(n) * dt
			var v float64
			for j := range voices {
				vc := &voices[j]
				if t < vc.offset || t >= vc.end {
					continue
				}
				local := t - vc.offset
				vc.phase += 2 * math.Pi * vc.freq(local) * dt
				v += math.Sin(vc.phase) * vc.gain(local)
			}
			samples[i][0] = v
			samples[i][1] = v
			n++
		}
		return len(samples), true
	})
}
