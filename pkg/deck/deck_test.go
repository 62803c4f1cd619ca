package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewDeck(t *testing.T) {
	deck := New()

	assert.Equal(t, 52, deck.CardsLeft())
	assert.Equal(t, Card{Rank: 2, Suit: Clubs}, *deck.Cards[0])
	assert.Equal(t, Card{Rank: 14, Suit: Spades}, *deck.Cards[51])

	deck.SetSeed(1)
	deck.Shuffle()
	hash := deck.HashCode()

	deck2 := New()
	deck2.SetSeed(1)
	deck2.Shuffle()

	// same seed, same order
	assert.Equal(t, hash, deck2.HashCode())
	assert.Equal(t, int64(1), deck2.Seed())

	deck3 := New()
	deck3.Shuffle()
	assert.GreaterOrEqual(t, deck3.Seed(), int64(0))
}

func TestDeck_Draw(t *testing.T) {
	deck := New()

	assert.True(t, deck.CanDraw(52))
	assert.False(t, deck.CanDraw(53))

	for i := 0; i < 52; i++ {
		card, err := deck.Draw()
		assert.NotNil(t, card)
		assert.NoError(t, err)
	}

	assert.Equal(t, 0, deck.CardsLeft())

	card, err := deck.Draw()
	assert.Nil(t, card)
	assert.Equal(t, ErrEndOfDeck, err)
}
