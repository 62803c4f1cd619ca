package setseize

import (
	"sort"
	"strings"

	"setandseize-server/pkg/deck"
)

// EnumerateSubsets returns every subset of pool whose resolved values sum
// exactly to target. Aces may count as 1 or 14; all other ranks count at face
// value. Each card appears at most once per subset, the empty subset is never
// returned, and subsets matching through different ace declarations are
// reported once. The result order is stable for a given pool order.
func EnumerateSubsets(pool []*deck.Card, target int) [][]*deck.Card {
	return enumerate(flexible(pool), target)
}

func enumerate(pool []valuedCard, target int) [][]*deck.Card {
	if target <= 0 {
		return nil
	}

	var results [][]*deck.Card
	seen := make(map[string]bool)
	current := make([]*deck.Card, 0, len(pool))

	var walk func(idx, sum int)
	walk = func(idx, sum int) {
		if sum == target {
			if len(current) > 0 {
				key := subsetKey(current)
				if !seen[key] {
					seen[key] = true
					subset := make([]*deck.Card, len(current))
					copy(subset, current)
					results = append(results, subset)
				}
			}

			// values are all positive, so a longer subset can only overshoot
			return
		}

		if idx >= len(pool) {
			return
		}

		for _, v := range pool[idx].values {
			if sum+v <= target {
				current = append(current, pool[idx].card)
				walk(idx+1, sum+v)
				current = current[:len(current)-1]
			}
		}

		walk(idx+1, sum)
	}

	walk(0, 0)
	return results
}

func subsetKey(cards []*deck.Card) string {
	ids := make([]string, len(cards))
	for i, c := range cards {
		ids[i] = c.ID()
	}

	sort.Strings(ids)
	return strings.Join(ids, ",")
}
