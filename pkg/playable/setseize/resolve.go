package setseize

import (
	"setandseize-server/pkg/deck"
)

const cardsPerDeal = 4

// NewTable deals the opening table from the deck: four cards to each seat and
// four to the middle. The deck must already be shuffled.
func NewTable(playerIDs []int64, d *deck.Deck) (*TableState, error) {
	seats := make([]*Seat, len(playerIDs))
	for i, id := range playerIDs {
		seats[i] = &Seat{PlayerID: id}
	}

	ts := &TableState{
		Phase:       PhaseDealing,
		Seats:       seats,
		CurrentTurn: playerIDs[0],
	}

	for i := 0; i < cardsPerDeal; i++ {
		for _, seat := range ts.Seats {
			card, err := d.Draw()
			if err != nil {
				return nil, err
			}

			seat.Hand.AddCard(card)
		}
	}

	for i := 0; i < cardsPerDeal; i++ {
		card, err := d.Draw()
		if err != nil {
			return nil, err
		}

		ts.Loose = append(ts.Loose, card)
	}

	ts.Deck = d.Cards
	ts.Phase = PhasePlaying

	if err := ts.checkInvariants(); err != nil {
		return nil, ErrStateCorrupt
	}

	return ts, nil
}

// NeedsDeal returns true when both hands are empty and the table is still playing
func (ts *TableState) NeedsDeal() bool {
	if ts.Phase != PhasePlaying {
		return false
	}

	for _, seat := range ts.Seats {
		if len(seat.Hand) > 0 {
			return false
		}
	}

	return true
}

// DealHands deals four fresh cards to each seat from the remaining deck.
// With too few cards left, the table moves to scoring instead.
func DealHands(ts *TableState) (*TableState, error) {
	next := ts.Clone()
	if len(next.Deck) < cardsPerDeal*len(next.Seats) {
		next.Phase = PhaseScoring
		return next, nil
	}

	for i := 0; i < cardsPerDeal; i++ {
		for _, seat := range next.Seats {
			seat.Hand.AddCard(next.Deck[0])
			next.Deck = next.Deck[1:]
		}
	}

	if err := next.checkInvariants(); err != nil {
		return nil, ErrStateCorrupt
	}

	return next, nil
}

// Resolve applies one player action to the table. The input state is never
// modified: an accepted action returns a fresh state, a rejected action
// returns a nil state and the rejection. Identical input state and action
// always produce identical output.
func Resolve(ts *TableState, action PlayerAction) (*TableState, error) {
	if ts.Phase != PhasePlaying {
		return nil, ErrWrongPhase
	}

	if ts.CurrentTurn != action.PlayerID {
		return nil, ErrIsNotPlayersTurn
	}

	next := ts.Clone()
	seat := next.seat(action.PlayerID)
	if seat == nil {
		return nil, ErrIsNotPlayersTurn
	}

	played := seat.Hand.CardByID(action.CardID)
	if played == nil {
		return nil, ErrCardNotInHand
	}

	playedValue := 0
	if action.Type != ActionDrop {
		var err error
		if playedValue, err = ResolveValue(played, action.AceValue); err != nil {
			return nil, err
		}
	} else if action.AceValue != 0 && !played.IsAce() {
		return nil, ErrInvalidAceChoice
	}

	if action.Type == ActionBuild && action.BuildTarget <= 0 {
		return nil, ErrMissingBuildTargetValue
	}

	if err := next.gateObligation(action); err != nil {
		return nil, err
	}

	switch action.Type {
	case ActionDrop:
		seat.Hand.Discard(played)
		next.Loose = append(next.Loose, played)
	case ActionCapture:
		if err := next.applyCapture(seat, played, playedValue, action); err != nil {
			return nil, err
		}
	case ActionBuild:
		var err error
		switch {
		case action.StackOnBuildID != "":
			err = next.applyStack(seat, played, playedValue, action)
		case action.HardBuild && action.PairCardID != "":
			err = next.applyHardBuildPair(seat, played, playedValue, action)
		case action.HardBuild:
			err = next.applyHardBuildGroups(seat, played, playedValue, action)
		default:
			err = next.applySoftBuild(seat, played, playedValue, action)
		}

		if err != nil {
			return nil, err
		}
	default:
		return nil, ErrWrongPhase
	}

	next.CurrentTurn = next.opponentID(action.PlayerID)

	if err := next.checkInvariants(); err != nil {
		return nil, ErrStateCorrupt
	}

	return next, nil
}

// applyCapture removes the selected middle cards and builds and moves them,
// along with the played card, to the player's captured pile. The selection,
// flattened, must partition exactly into groups summing to the played value.
func (ts *TableState) applyCapture(seat *Seat, played *deck.Card, playedValue int, action PlayerAction) error {
	if len(action.SelectedIDs) == 0 {
		return ErrNoValidCaptureCombination
	}

	seen := make(map[string]bool)
	var looseCards []*deck.Card
	var builds []*Build
	selectedBuildIDs := make(map[string]bool)

	for _, id := range action.SelectedIDs {
		if seen[id] {
			return ErrUnknownCard
		}

		seen[id] = true
		if card := ts.looseByID(id); card != nil {
			looseCards = append(looseCards, card)
			continue
		}

		build := ts.buildByID(id)
		if build == nil {
			return ErrUnknownCard
		}

		builds = append(builds, build)
		selectedBuildIDs[build.ID] = true
	}

	// a hard build can only leave the middle with its whole group
	for _, build := range builds {
		if build.HardGroupID == "" {
			continue
		}

		for _, gb := range ts.buildsInHardGroup(build.HardGroupID) {
			if !selectedBuildIDs[gb.ID] {
				return ErrPartialHardBuildCapture
			}
		}
	}

	flattened := make([]*deck.Card, 0, len(looseCards))
	flattened = append(flattened, looseCards...)
	for _, build := range builds {
		flattened = append(flattened, build.Cards...)
	}

	if !CanPartitionAll(flattened, playedValue) {
		return ErrNoValidCaptureCombination
	}

	for _, card := range looseCards {
		ts.removeLoose(card)
	}

	for _, build := range builds {
		ts.clearObligationForBuild(build.ID)
		ts.removeBuild(build)
	}

	seat.Hand.Discard(played)
	seat.Captured = append(seat.Captured, played)
	seat.Captured = append(seat.Captured, flattened...)
	ts.LastCaptureBy = seat.PlayerID

	return nil
}
