package room

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPitBoss_survivesUnknownDisconnect(t *testing.T) {
	p := NewPitBoss()
	p.StartShift()

	// a disconnect for a game nobody is dealing must not stop dispatch
	orphan := NewClient(nil, 99, &Game{UUID: "no-such-game"})
	p.ClientDisconnected(orphan)

	repo := NewGameRepository()
	game, err := repo.Create("Late Shift")
	require.NoError(t, err)
	playerID, err := game.Seat()
	require.NoError(t, err)

	c := NewClient(nil, playerID, game)
	p.ClientConnected(c)

	resp := waitForResponse(t, c, "clientState")
	players, ok := resp.Data.([]*clientStatePlayer)
	require.True(t, ok)
	assert.Equal(t, playerID, players[0].PlayerID)
	assert.True(t, players[0].IsConnected)

	p.ClientDisconnected(c)
}
