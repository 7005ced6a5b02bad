package service

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/telemock/callsim/internal/core/port"
)

// AudioCue owns the single looping tone resource heard while any call is
// live. Exactly one underlying player exists at a time; a stopped player
// is released and replaced with a fresh instance, never reused.
type AudioCue struct {
	factory port.PlayerFactory
	player  port.TonePlayer
}

func NewAudioCue(factory port.PlayerFactory) *AudioCue {
	return &AudioCue{factory: factory, player: factory()}
}

// Start begins looping playback. No-op if already playing.
func (c *AudioCue) Start() error {
	if c.player.IsPlaying() {
		return nil
	}
	if err := c.player.Start(); err != nil {
		return fmt.Errorf("start tone player: %w", err)
	}
	return nil
}

// StopAndRecreate stops playback, releases the underlying resource and
// allocates a fresh instance ready for a future Start. No-op when not
// playing, so the current instance is left as-is.
func (c *AudioCue) StopAndRecreate() error {
	if !c.player.IsPlaying() {
		return nil
	}
	stopErr := c.player.Stop()
	if err := c.player.Release(); err != nil {
		log.Error().Err(err).Str("player_id", c.player.InstanceID()).Msg("failed to release tone player")
	}
	c.player = c.factory()
	if stopErr != nil {
		return fmt.Errorf("stop tone player: %w", stopErr)
	}
	return nil
}

func (c *AudioCue) Playing() bool {
	return c.player.IsPlaying()
}

// InstanceID identifies the current underlying player instance.
func (c *AudioCue) InstanceID() string {
	return c.player.InstanceID()
}
