package setseize

import (
	"testing"

	"github.com/stretchr/testify/require"

	"setandseize-server/pkg/deck"
)

// tableFixture builds a playing table with the given hands and loose middle
// cards; every other card goes to the deck so conservation holds
func tableFixture(t *testing.T, hand1, hand2, middle string) *TableState {
	t.Helper()

	zones := map[string]int{}
	for _, c := range deck.CardsFromString(hand1) {
		zones[c.ID()] = 1
	}
	for _, c := range deck.CardsFromString(hand2) {
		require.NotContains(t, zones, c.ID())
		zones[c.ID()] = 2
	}
	for _, c := range deck.CardsFromString(middle) {
		require.NotContains(t, zones, c.ID())
		zones[c.ID()] = 3
	}

	ts := &TableState{
		Phase: PhasePlaying,
		Seats: []*Seat{
			{PlayerID: 1},
			{PlayerID: 2},
		},
		CurrentTurn: 1,
	}

	for _, card := range deck.New().Cards {
		switch zones[card.ID()] {
		case 1:
			ts.Seats[0].Hand.AddCard(card)
		case 2:
			ts.Seats[1].Hand.AddCard(card)
		case 3:
			ts.Loose = append(ts.Loose, card)
		default:
			ts.Deck = append(ts.Deck, card)
		}
	}

	require.NoError(t, ts.checkInvariants())
	return ts
}

// addBuild moves the named cards out of the deck into a new middle build
func addBuild(t *testing.T, ts *TableState, ownerID int64, value int, hard bool, cards string) *Build {
	t.Helper()

	build := &Build{
		ID:      "build-" + cards,
		Value:   value,
		OwnerID: ownerID,
		IsHard:  hard,
	}

	if hard {
		build.HardGroupID = "group-" + cards
	}

	for _, want := range deck.CardsFromString(cards) {
		found := false
		for i, c := range ts.Deck {
			if c.Equal(want) {
				build.Cards = append(build.Cards, c)
				ts.Deck = append(ts.Deck[:i], ts.Deck[i+1:]...)
				found = true
				break
			}
		}

		require.True(t, found, "card %s is not in the deck", want)
	}

	ts.Builds = append(ts.Builds, build)
	require.NoError(t, ts.checkInvariants())
	return build
}

func ids(cards []*deck.Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.ID()
	}

	return out
}
