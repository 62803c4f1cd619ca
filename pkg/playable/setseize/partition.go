package setseize

import (
	"setandseize-server/pkg/deck"
)

// CanPartitionAll reports whether every card in pool can be assigned to a
// group, with every group's resolved values summing exactly to target.
// No card may be left over and no card may be used twice. An empty pool
// partitions trivially.
func CanPartitionAll(pool []*deck.Card, target int) bool {
	return partition(flexible(pool), target, 0) != nil
}

// FindDisjointGroups partitions pool into at least minGroups disjoint groups,
// each summing exactly to target, consuming every card. It returns the
// concrete partition, or nil when no such partition exists.
func FindDisjointGroups(pool []*deck.Card, target, minGroups int) [][]*deck.Card {
	return partition(flexible(pool), target, minGroups)
}

// partition returns a full partition of pool into target-summing groups,
// or nil when none exists. The returned slice is non-nil (but possibly empty)
// on success so an empty pool is distinguishable from failure.
func partition(pool []valuedCard, target, minGroups int) [][]*deck.Card {
	if target <= 0 {
		return nil
	}

	used := make([]bool, len(pool))
	var groups [][]*deck.Card

	var solve func() bool
	solve = func() bool {
		first := -1
		for i, u := range used {
			if !u {
				first = i
				break
			}
		}

		if first == -1 {
			return len(groups) >= minGroups
		}

		// the first unassigned card must anchor some group; try every
		// combination of later unassigned cards that completes it
		for _, combo := range groupsAnchoredAt(pool, used, first, target) {
			cards := make([]*deck.Card, len(combo))
			for i, idx := range combo {
				used[idx] = true
				cards[i] = pool[idx].card
			}

			groups = append(groups, cards)
			if solve() {
				return true
			}

			groups = groups[:len(groups)-1]
			for _, idx := range combo {
				used[idx] = false
			}
		}

		return false
	}

	if !solve() {
		return nil
	}

	result := make([][]*deck.Card, len(groups))
	copy(result, groups)
	return result
}

// groupsAnchoredAt returns every index combination that includes anchor, draws
// only from unused indices at or after anchor, and sums to target
func groupsAnchoredAt(pool []valuedCard, used []bool, anchor, target int) [][]int {
	var combos [][]int
	current := []int{anchor}

	var walk func(idx, sum int)
	walk = func(idx, sum int) {
		if sum == target {
			combo := make([]int, len(current))
			copy(combo, current)
			combos = append(combos, combo)
			return
		}

		if idx >= len(pool) {
			return
		}

		if !used[idx] {
			for _, v := range pool[idx].values {
				if sum+v <= target {
					current = append(current, idx)
					walk(idx+1, sum+v)
					current = current[:len(current)-1]
				}
			}
		}

		walk(idx+1, sum)
	}

	for _, v := range pool[anchor].values {
		if v == target {
			combos = append(combos, []int{anchor})
		} else if v < target {
			walk(anchor+1, v)
		}
	}

	return combos
}
