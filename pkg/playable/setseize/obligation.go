package setseize

import (
	"setandseize-server/pkg/deck"
)

// Obligation is the single global must-capture slot. The most recent builder
// is obligated; the referenced build always sits in the middle and belongs to
// that player.
type Obligation struct {
	PlayerID int64  `json:"playerId"`
	BuildID  string `json:"buildId"`
	Value    int    `json:"value"`
}

// setObligation overwrites the obligation slot; every accepted build action
// moves the slot to the new build and its owner
func (ts *TableState) setObligation(playerID int64, buildID string, value int) {
	ts.Obligation = &Obligation{
		PlayerID: playerID,
		BuildID:  buildID,
		Value:    value,
	}
}

// clearObligationForBuild frees the slot if it references the given build
func (ts *TableState) clearObligationForBuild(buildID string) {
	if ts.Obligation != nil && ts.Obligation.BuildID == buildID {
		ts.Obligation = nil
	}
}

// gateObligation enforces the must-capture rule for the acting player.
// The gate only binds if the player has at least one legal capture on the
// table; with no capture possible anywhere, any otherwise-legal action is
// allowed so the game can never wedge.
func (ts *TableState) gateObligation(action PlayerAction) error {
	o := ts.Obligation
	if o == nil || o.PlayerID != action.PlayerID {
		return nil
	}

	if !ts.hasLegalCapture(ts.seat(action.PlayerID).Hand) {
		return nil
	}

	switch action.Type {
	case ActionDrop:
		return ErrObligationViolation
	case ActionBuild:
		// the sole non-capturing exception: another build of the same value
		if action.BuildTarget != o.Value {
			return ErrObligationViolation
		}

		return nil
	case ActionCapture:
		return nil
	}

	return nil
}

// middleUnit is an atomically-selectable chunk of the middle: a loose card,
// a soft build, or an entire hard-build group
type middleUnit struct {
	cards []*deck.Card
}

func (ts *TableState) middleUnits() []middleUnit {
	units := make([]middleUnit, 0, len(ts.Loose)+len(ts.Builds))
	for _, c := range ts.Loose {
		units = append(units, middleUnit{cards: []*deck.Card{c}})
	}

	seenGroup := make(map[string]bool)
	for _, b := range ts.Builds {
		if b.HardGroupID != "" {
			if seenGroup[b.HardGroupID] {
				continue
			}

			seenGroup[b.HardGroupID] = true
			var cards []*deck.Card
			for _, gb := range ts.buildsInHardGroup(b.HardGroupID) {
				cards = append(cards, gb.Cards...)
			}

			units = append(units, middleUnit{cards: cards})
			continue
		}

		units = append(units, middleUnit{cards: b.Cards})
	}

	return units
}

// hasLegalCapture reports whether any card in hand can legally capture
// something on the current table. A capture is legal when some non-empty
// selection of middle units flattens to a pool fully partitionable into
// groups summing to the played card's resolved value.
func (ts *TableState) hasLegalCapture(hand deck.Hand) bool {
	values := make(map[int]bool)
	for _, c := range hand {
		for _, v := range candidateValues(c) {
			values[v] = true
		}
	}

	units := ts.middleUnits()
	for v := range values {
		if captureExists(units, v) {
			return true
		}
	}

	return false
}

func captureExists(units []middleUnit, target int) bool {
	var pick func(idx int, pool []*deck.Card) bool
	pick = func(idx int, pool []*deck.Card) bool {
		if idx == len(units) {
			return len(pool) > 0 && CanPartitionAll(pool, target)
		}

		withUnit := make([]*deck.Card, 0, len(pool)+len(units[idx].cards))
		withUnit = append(withUnit, pool...)
		withUnit = append(withUnit, units[idx].cards...)

		return pick(idx+1, withUnit) || pick(idx+1, pool)
	}

	return pick(0, nil)
}
