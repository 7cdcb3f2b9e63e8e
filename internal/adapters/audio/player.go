// Package audio plays and renders the timer's sound cues.
package audio

import (
	"sync"

	"github.com/charmbracelet/log"
	"github.com/gen2brain/beeep"
	"github.com/xvierd/striktflow/internal/ports"
)

// Player implements ports.AudioCue with the system beeper. Sounds play in
// the background; a failure is logged and never reaches the caller.
type Player struct {
	logger *log.Logger
	beep   func(freq float64, durationMs int) error

	// mu keeps one cue from interleaving with another.
	mu sync.Mutex
}

var _ ports.AudioCue = (*Player)(nil)

// NewPlayer creates a player that logs failures to logger.
func NewPlayer(logger *log.Logger) *Player {
	return &Player{logger: logger, beep: func(freq float64, durationMs int) error {
		return beeep.Beep(freq, durationMs)
	}}
}

// PlayTick plays the short start click.
func (p *Player) PlayTick() {
	go p.play([]note{{freq: tickFrequency, ms: 40}})
}

// PlayChime plays the rising A major arpeggio.
func (p *Player) PlayChime() {
	notes := make([]note, len(chimeFrequencies))
	for i, f := range chimeFrequencies {
		notes[i] = note{freq: f, ms: 150}
	}
	go p.play(notes)
}

type note struct {
	freq float64
	ms   int
}

func (p *Player) play(notes []note) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, n := range notes {
		if err := p.beep(n.freq, n.ms); err != nil {
			if p.logger != nil {
				p.logger.Debug("beep failed", "freq", n.freq, "err", err)
			}
			return
		}
	}
}

// Silent is an AudioCue that plays nothing.
type Silent struct{}

// PlayTick implements ports.AudioCue.
func (Silent) PlayTick() {}

// PlayChime implements ports.AudioCue.
func (Silent) PlayChime() {}
