package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/telemock/callsim/internal/core/service"
)

func TestAudioCueStartIsIdempotent(t *testing.T) {
	players := &playerLog{}
	cue := service.NewAudioCue(players.factory)

	require.NoError(t, cue.Start())
	require.NoError(t, cue.Start())

	assert.True(t, cue.Playing())
	assert.Equal(t, 1, players.count())
	assert.Equal(t, 1, players.at(0).starts, "second start must be a no-op")
}

func TestAudioCueStopAndRecreateReplacesInstance(t *testing.T) {
	players := &playerLog{}
	cue := service.NewAudioCue(players.factory)
	require.NoError(t, cue.Start())
	firstID := cue.InstanceID()

	require.NoError(t, cue.StopAndRecreate())

	assert.False(t, cue.Playing())
	assert.NotEqual(t, firstID, cue.InstanceID())
	require.Equal(t, 2, players.count())
	playing, released := players.at(0).snapshot()
	assert.False(t, playing)
	assert.True(t, released)

	// The replacement is immediately startable.
	require.NoError(t, cue.Start())
	assert.True(t, cue.Playing())
}

func TestAudioCueStopWhenIdleIsNoOp(t *testing.T) {
	players := &playerLog{}
	cue := service.NewAudioCue(players.factory)
	id := cue.InstanceID()

	require.NoError(t, cue.StopAndRecreate())

	assert.Equal(t, id, cue.InstanceID(), "idle cue keeps its instance")
	assert.Equal(t, 1, players.count())
}
