package setseize

import (
	"setandseize-server/pkg/deck"
)

// ResolveValue returns the numeric value a card counts as when played.
// Aces must be declared as 1 or 14; the declaration is fixed for the whole action.
// Declaring a value for a non-ace is rejected.
func ResolveValue(card *deck.Card, aceValue int) (int, error) {
	if card.IsAce() {
		if aceValue != deck.AceLow && aceValue != deck.Ace {
			return 0, ErrInvalidAceChoice
		}

		return aceValue, nil
	}

	if aceValue != 0 {
		return 0, ErrInvalidAceChoice
	}

	return card.Rank, nil
}

// candidateValues returns the values a card may count as when it sits in the middle
func candidateValues(card *deck.Card) []int {
	if card.IsAce() {
		return []int{deck.AceLow, deck.Ace}
	}

	return []int{card.Rank}
}

// valuedCard pairs a card with the values it may still resolve to.
// A played card is pinned to its single resolved value; middle aces stay flexible.
type valuedCard struct {
	card   *deck.Card
	values []int
}

func flexible(cards []*deck.Card) []valuedCard {
	vcs := make([]valuedCard, len(cards))
	for i, c := range cards {
		vcs[i] = valuedCard{card: c, values: candidateValues(c)}
	}

	return vcs
}

func pinned(card *deck.Card, value int) valuedCard {
	return valuedCard{card: card, values: []int{value}}
}

// valuesCanSum reports whether some choice of candidate values makes the cards sum exactly to want
func valuesCanSum(cards []valuedCard, want int) bool {
	var walk func(idx, sum int) bool
	walk = func(idx, sum int) bool {
		if idx == len(cards) {
			return sum == want
		}

		if sum > want {
			return false
		}

		for _, v := range cards[idx].values {
			if walk(idx+1, sum+v) {
				return true
			}
		}

		return false
	}

	return walk(0, 0)
}
