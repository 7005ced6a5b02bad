package memory

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/telemock/callsim/internal/core/port"
)

// ErrReleased is returned when a released player is used again.
var ErrReleased = errors.New("tone player already released")

// Player simulates the looping in-call tone. No device I/O happens; the
// player only tracks playback state and poisons itself once released so
// reuse-after-release is caught instead of silently succeeding.
type Player struct {
	mu       sync.Mutex
	id       string
	playing  bool
	released bool
}

func NewPlayer() *Player {
	return &Player{id: uuid.NewString()}
}

// Factory is a port.PlayerFactory allocating in-memory players.
func Factory() port.TonePlayer {
	return NewPlayer()
}

func (p *Player) InstanceID() string {
	return p.id
}

func (p *Player) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.released {
		return fmt.Errorf("start player %s: %w", p.id, ErrReleased)
	}
	if !p.playing {
		p.playing = true
		log.Debug().Str("player_id", p.id).Msg("tone loop started")
	}
	return nil
}

func (p *Player) Stop() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.released {
		return fmt.Errorf("stop player %s: %w", p.id, ErrReleased)
	}
	if p.playing {
		p.playing = false
		log.Debug().Str("player_id", p.id).Msg("tone loop stopped")
	}
	return nil
}

// Release frees the simulated resource. Any later use fails with
// ErrReleased.
func (p *Player) Release() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.released {
		return fmt.Errorf("release player %s: %w", p.id, ErrReleased)
	}
	p.playing = false
	p.released = true
	return nil
}

func (p *Player) IsPlaying() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.playing
}
