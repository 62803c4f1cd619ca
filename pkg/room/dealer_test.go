package room

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"setandseize-server/pkg/deck"
	"setandseize-server/pkg/playable"
	"setandseize-server/pkg/playable/setseize"
)

func TestDealer_AddClient(t *testing.T) {
	game := &Game{UUID: "test"}
	d := NewDealer(&PitBoss{}, game)
	c := NewClient(nil, 1, game)
	c2 := NewClient(nil, 2, game)

	d.AddClient(c)
	d.AddClient(c2)

	assert.False(t, d.RemoveClient(c))
	assert.True(t, d.RemoveClient(c2))
}

// waitForResponse drains a client's send channel until a response with the
// given key shows up
func waitForResponse(t *testing.T, c *Client, key string) *playable.Response {
	t.Helper()

	timeout := time.After(5 * time.Second)
	for {
		select {
		case msg := <-c.SendChan():
			resp, ok := msg.(*playable.Response)
			require.True(t, ok)
			if resp.Key == key {
				return resp
			}
		case <-timeout:
			t.Fatalf("timed out waiting for %q response", key)
			return nil
		}
	}
}

func TestDealer_runsMatch(t *testing.T) {
	repo := NewGameRepository()
	game, err := repo.Create("Midnight Haul")
	require.NoError(t, err)

	p1, err := game.Seat()
	require.NoError(t, err)
	p2, err := game.Seat()
	require.NoError(t, err)

	d := NewDealer(&PitBoss{}, game)
	d.StartShift()
	defer d.EndShift()

	c1 := NewClient(nil, p1, game)
	c2 := NewClient(nil, p2, game)
	d.AddClient(c1)
	d.AddClient(c2)

	c1.ReceivedMessage(&playable.PayloadIn{Action: "createGame", Context: "ctx-1"})

	// both clients get a state push, then the creator gets the OK
	gs1 := waitForResponse(t, c1, "game")
	gs2 := waitForResponse(t, c2, "game")

	ok := waitForResponse(t, c1, "status")
	assert.Equal(t, "OK", ok.Value)
	assert.Equal(t, "ctx-1", ok.Context)

	data1, ok1 := gs1.Data.(*setseize.Response)
	require.True(t, ok1)
	data2, ok2 := gs2.Data.(*setseize.Response)
	require.True(t, ok2)

	assert.Equal(t, 4, len(data1.Hand))
	assert.Equal(t, 4, len(data2.Hand))
	assert.Equal(t, "playing", data1.GameState.Phase)

	// the first seat acts first; play their first card
	var current *Client
	var hand deck.Hand
	if data1.GameState.CurrentTurn == p1 {
		current, hand = c1, data1.Hand
	} else {
		current, hand = c2, data2.Hand
	}

	current.ReceivedMessage(&playable.PayloadIn{
		Action:  "drop",
		Cards:   []*deck.Card{hand.FirstCard()},
		Context: "ctx-2",
	})

	ok = waitForResponse(t, current, "status")
	assert.Equal(t, "ctx-2", ok.Context)

	gs1 = waitForResponse(t, c1, "game")
	seats := gs1.Data.(*setseize.Response).GameState.Seats
	assert.Equal(t, 7, seats[0].CardsInHand+seats[1].CardsInHand)
}

func TestDealer_rejectsActionWithoutMatch(t *testing.T) {
	game := &Game{UUID: "idle"}
	d := NewDealer(&PitBoss{}, game)
	d.StartShift()
	defer d.EndShift()

	c := NewClient(nil, 1, game)
	d.AddClient(c)

	c.ReceivedMessage(&playable.PayloadIn{Action: "drop", Context: "ctx"})
	resp := waitForResponse(t, c, "error")
	assert.Equal(t, "no game in progress", resp.Value)
	assert.Equal(t, "ctx", resp.Context)
}

func TestDealer_createMatchRequiresTwoPlayers(t *testing.T) {
	repo := NewGameRepository()
	game, err := repo.Create("Short Stakes")
	require.NoError(t, err)
	_, err = game.Seat()
	require.NoError(t, err)

	d := NewDealer(&PitBoss{}, game)
	d.StartShift()
	defer d.EndShift()

	c := NewClient(nil, game.PlayerIDs()[0], game)
	d.AddClient(c)

	c.ReceivedMessage(&playable.PayloadIn{Action: "createGame"})
	resp := waitForResponse(t, c, "error")
	assert.Equal(t, "waiting for a second player", resp.Value)
}
