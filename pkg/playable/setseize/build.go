package setseize

import (
	"sort"

	"setandseize-server/pkg/deck"
)

// Build is a declared pile in the middle. A build is immutable once created;
// stacking and combining destroy the old build(s) and create a new one.
type Build struct {
	ID      string       `json:"id"`
	Cards   []*deck.Card `json:"cards"`
	Value   int          `json:"value"`
	OwnerID int64        `json:"ownerId"`
	IsHard  bool         `json:"isHard"`

	// HardGroupID ties together hard builds created as one declaration;
	// the whole group must be captured at once
	HardGroupID string `json:"hardGroupId,omitempty"`
}

func (b *Build) clone() *Build {
	cards := make([]*deck.Card, len(b.Cards))
	copy(cards, b.Cards)

	b2 := *b
	b2.Cards = cards
	return &b2
}

// applySoftBuild creates one soft build from the played card and the selected
// loose middle cards. The resolved values must sum to the declared target.
func (ts *TableState) applySoftBuild(seat *Seat, played *deck.Card, playedValue int, action PlayerAction) error {
	if len(action.SelectedIDs) == 0 {
		return ErrInvalidBuildSum
	}

	selected, err := ts.selectLoose(action.SelectedIDs)
	if err != nil {
		return err
	}

	pool := append([]valuedCard{pinned(played, playedValue)}, flexible(selected)...)
	if !valuesCanSum(pool, action.BuildTarget) {
		return ErrInvalidBuildSum
	}

	cards := append([]*deck.Card{played}, selected...)
	build := &Build{
		ID:      ts.nextBuildID(),
		Cards:   cards,
		Value:   action.BuildTarget,
		OwnerID: seat.PlayerID,
		IsHard:  false,
	}

	for _, c := range selected {
		ts.removeLoose(c)
	}

	seat.Hand.Discard(played)
	ts.Builds = append(ts.Builds, build)
	ts.setObligation(seat.PlayerID, build.ID, build.Value)

	ts.combineOwnedBuilds(seat.PlayerID)
	return nil
}

// applyHardBuildPair creates a hard-build group by pairing the played card
// with a second target-valued card from the middle or from the player's hand
func (ts *TableState) applyHardBuildPair(seat *Seat, played *deck.Card, playedValue int, action PlayerAction) error {
	if len(action.SelectedIDs) != 0 {
		return ErrInvalidBuildSum
	}

	if playedValue != action.BuildTarget {
		return ErrInvalidBuildSum
	}

	if action.PairCardID == action.CardID {
		return ErrInvalidBuildSum
	}

	var pair *deck.Card
	fromHand := false
	if pair = ts.looseByID(action.PairCardID); pair == nil {
		if pair = seat.Hand.CardByID(action.PairCardID); pair == nil {
			return ErrUnknownCard
		}

		fromHand = true
	}

	if !valuesCanSum([]valuedCard{{card: pair, values: candidateValues(pair)}}, action.BuildTarget) {
		return ErrInvalidBuildSum
	}

	groupID := ts.nextHardGroupID()
	playedBuild := &Build{
		ID:          ts.nextBuildID(),
		Cards:       []*deck.Card{played},
		Value:       action.BuildTarget,
		OwnerID:     seat.PlayerID,
		IsHard:      true,
		HardGroupID: groupID,
	}
	pairBuild := &Build{
		ID:          ts.nextBuildID(),
		Cards:       []*deck.Card{pair},
		Value:       action.BuildTarget,
		OwnerID:     seat.PlayerID,
		IsHard:      true,
		HardGroupID: groupID,
	}

	if fromHand {
		seat.Hand.Discard(pair)
	} else {
		ts.removeLoose(pair)
	}

	seat.Hand.Discard(played)
	ts.Builds = append(ts.Builds, playedBuild, pairBuild)
	ts.setObligation(seat.PlayerID, playedBuild.ID, playedBuild.Value)

	return nil
}

// applyHardBuildGroups creates a hard-build group by partitioning the played
// card plus the selected loose cards into two or more target-summing groups.
// When the client proposes explicit groups they are verified as-is; otherwise
// a partition is searched for.
func (ts *TableState) applyHardBuildGroups(seat *Seat, played *deck.Card, playedValue int, action PlayerAction) error {
	selected, err := ts.selectLoose(action.SelectedIDs)
	if err != nil {
		return err
	}

	pool := append([]*deck.Card{played}, selected...)

	var groups [][]*deck.Card
	if len(action.ExtraGroups) > 0 {
		groups, err = ts.verifyProposedGroups(pool, played, playedValue, action)
		if err != nil {
			return err
		}
	} else {
		groups = partition(pinnedPool(played, playedValue, selected), action.BuildTarget, 2)
		if groups == nil {
			return ErrInvalidBuildSum
		}
	}

	if len(groups) < 2 {
		return ErrInvalidBuildSum
	}

	groupID := ts.nextHardGroupID()
	obligationBuildID := ""
	for _, cards := range groups {
		build := &Build{
			ID:          ts.nextBuildID(),
			Cards:       cards,
			Value:       action.BuildTarget,
			OwnerID:     seat.PlayerID,
			IsHard:      true,
			HardGroupID: groupID,
		}

		for _, c := range cards {
			if c == played {
				obligationBuildID = build.ID
			}
		}

		ts.Builds = append(ts.Builds, build)
	}

	for _, c := range selected {
		ts.removeLoose(c)
	}

	seat.Hand.Discard(played)
	ts.setObligation(seat.PlayerID, obligationBuildID, action.BuildTarget)

	return nil
}

// verifyProposedGroups checks an explicit client-proposed partition: the
// groups must be disjoint, cover the played card and selection exactly, and
// each must be able to sum to the target
func (ts *TableState) verifyProposedGroups(pool []*deck.Card, played *deck.Card, playedValue int, action PlayerAction) ([][]*deck.Card, error) {
	byID := make(map[string]*deck.Card, len(pool))
	for _, c := range pool {
		byID[c.ID()] = c
	}

	assigned := make(map[string]bool)
	groups := make([][]*deck.Card, 0, len(action.ExtraGroups))
	for _, ids := range action.ExtraGroups {
		group := make([]valuedCard, 0, len(ids))
		cards := make([]*deck.Card, 0, len(ids))
		for _, id := range ids {
			card, found := byID[id]
			if !found {
				return nil, ErrUnknownCard
			}

			if assigned[id] {
				return nil, ErrInvalidBuildSum
			}

			assigned[id] = true
			cards = append(cards, card)
			if card == played {
				group = append(group, pinned(played, playedValue))
			} else {
				group = append(group, valuedCard{card: card, values: candidateValues(card)})
			}
		}

		if !valuesCanSum(group, action.BuildTarget) {
			return nil, ErrInvalidBuildSum
		}

		groups = append(groups, cards)
	}

	if len(assigned) != len(pool) {
		return nil, ErrInvalidBuildSum
	}

	return groups, nil
}

// applyStack raises an opponent's soft build to a new declared target.
// The old build is destroyed and a new one, owned by the stacker, replaces it.
func (ts *TableState) applyStack(seat *Seat, played *deck.Card, playedValue int, action PlayerAction) error {
	target := ts.buildByID(action.StackOnBuildID)
	if target == nil {
		return ErrUnknownCard
	}

	if target.IsHard {
		return ErrIllegalStack
	}

	if target.OwnerID == seat.PlayerID {
		return ErrIllegalStack
	}

	selected, err := ts.selectLoose(action.SelectedIDs)
	if err != nil {
		return err
	}

	// the old total and the played value are already resolved; only middle
	// aces in the selection stay flexible
	rest := action.BuildTarget - target.Value - playedValue
	if rest < 0 || !valuesCanSum(flexible(selected), rest) {
		return ErrInvalidBuildSum
	}

	// the stacker must hold a card matching the new target
	holdsTarget := false
	for _, c := range seat.Hand {
		if c == played {
			continue
		}

		for _, v := range candidateValues(c) {
			if v == action.BuildTarget {
				holdsTarget = true
			}
		}
	}

	if !holdsTarget {
		return ErrIllegalStack
	}

	cards := make([]*deck.Card, 0, len(target.Cards)+len(selected)+1)
	cards = append(cards, target.Cards...)
	cards = append(cards, selected...)
	cards = append(cards, played)

	build := &Build{
		ID:      ts.nextBuildID(),
		Cards:   cards,
		Value:   action.BuildTarget,
		OwnerID: seat.PlayerID,
		IsHard:  false,
	}

	ts.clearObligationForBuild(target.ID)
	ts.removeBuild(target)
	for _, c := range selected {
		ts.removeLoose(c)
	}

	seat.Hand.Discard(played)
	ts.Builds = append(ts.Builds, build)
	ts.setObligation(seat.PlayerID, build.ID, build.Value)

	ts.combineOwnedBuilds(seat.PlayerID)
	return nil
}

// combineOwnedBuilds merges a player's soft builds of identical value into a
// single hard build. This fires after every accepted build action, so owning
// two matching builds is enough; no explicit hard declaration is needed.
func (ts *TableState) combineOwnedBuilds(playerID int64) {
	byValue := make(map[int][]*Build)
	for _, b := range ts.buildsOwnedBy(playerID) {
		if !b.IsHard {
			byValue[b.Value] = append(byValue[b.Value], b)
		}
	}

	values := make([]int, 0, len(byValue))
	for value := range byValue {
		values = append(values, value)
	}
	sort.Ints(values)

	for _, value := range values {
		builds := byValue[value]
		if len(builds) < 2 {
			continue
		}

		var cards []*deck.Card
		obligated := false
		for _, b := range builds {
			cards = append(cards, b.Cards...)
			if ts.Obligation != nil && ts.Obligation.BuildID == b.ID {
				obligated = true
			}

			ts.removeBuild(b)
		}

		merged := &Build{
			ID:          ts.nextBuildID(),
			Cards:       cards,
			Value:       value,
			OwnerID:     playerID,
			IsHard:      true,
			HardGroupID: ts.nextHardGroupID(),
		}

		ts.Builds = append(ts.Builds, merged)
		if obligated {
			ts.setObligation(playerID, merged.ID, merged.Value)
		}
	}
}

// selectLoose maps selection ids to loose middle cards, rejecting unknowns
// and duplicates
func (ts *TableState) selectLoose(ids []string) ([]*deck.Card, error) {
	seen := make(map[string]bool)
	cards := make([]*deck.Card, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			return nil, ErrUnknownCard
		}

		seen[id] = true
		card := ts.looseByID(id)
		if card == nil {
			return nil, ErrUnknownCard
		}

		cards = append(cards, card)
	}

	return cards, nil
}

func pinnedPool(played *deck.Card, playedValue int, rest []*deck.Card) []valuedCard {
	return append([]valuedCard{pinned(played, playedValue)}, flexible(rest)...)
}
