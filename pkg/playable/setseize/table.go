package setseize

import (
	"fmt"

	"setandseize-server/pkg/deck"
)

// Phase is the lifecycle phase of a table
type Phase int

// table phases
const (
	PhaseDealing Phase = iota
	PhasePlaying
	PhaseScoring
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseDealing:
		return "dealing"
	case PhasePlaying:
		return "playing"
	case PhaseScoring:
		return "scoring"
	case PhaseGameOver:
		return "gameOver"
	}

	panic(fmt.Sprintf("unknown phase: %d", int(p)))
}

// Seat is one player's side of the table
type Seat struct {
	PlayerID int64        `json:"playerId"`
	Hand     deck.Hand    `json:"hand"`
	Captured []*deck.Card `json:"captured"`
}

func (s *Seat) clone() *Seat {
	captured := make([]*deck.Card, len(s.Captured))
	copy(captured, s.Captured)

	return &Seat{
		PlayerID: s.PlayerID,
		Hand:     s.Hand.Clone(),
		Captured: captured,
	}
}

// TableState is the complete state of one game. Accepted actions always
// produce a fresh state; the input state is never modified, so a caller can
// retry or replay deterministically.
type TableState struct {
	Phase         Phase        `json:"phase"`
	Deck          []*deck.Card `json:"deck"`
	Loose         []*deck.Card `json:"loose"`
	Builds        []*Build     `json:"builds"`
	Seats         []*Seat      `json:"seats"`
	CurrentTurn   int64        `json:"currentTurn"`
	LastCaptureBy int64        `json:"lastCaptureBy"`
	Obligation    *Obligation  `json:"obligation"`

	// BuildSeq numbers the build and hard-group ids handed out so far, so
	// identical input states always mint identical ids
	BuildSeq int `json:"buildSeq"`
}

// Clone returns a deep copy of the table state.
// Card pointers are shared; cards themselves are immutable.
func (ts *TableState) Clone() *TableState {
	deckCards := make([]*deck.Card, len(ts.Deck))
	copy(deckCards, ts.Deck)

	loose := make([]*deck.Card, len(ts.Loose))
	copy(loose, ts.Loose)

	builds := make([]*Build, len(ts.Builds))
	for i, b := range ts.Builds {
		builds[i] = b.clone()
	}

	seats := make([]*Seat, len(ts.Seats))
	for i, s := range ts.Seats {
		seats[i] = s.clone()
	}

	var obligation *Obligation
	if ts.Obligation != nil {
		o := *ts.Obligation
		obligation = &o
	}

	return &TableState{
		Phase:         ts.Phase,
		Deck:          deckCards,
		Loose:         loose,
		Builds:        builds,
		Seats:         seats,
		CurrentTurn:   ts.CurrentTurn,
		LastCaptureBy: ts.LastCaptureBy,
		Obligation:    obligation,
		BuildSeq:      ts.BuildSeq,
	}
}

func (ts *TableState) nextBuildID() string {
	ts.BuildSeq++
	return fmt.Sprintf("build-%d", ts.BuildSeq)
}

func (ts *TableState) nextHardGroupID() string {
	ts.BuildSeq++
	return fmt.Sprintf("group-%d", ts.BuildSeq)
}

func (ts *TableState) seat(playerID int64) *Seat {
	for _, s := range ts.Seats {
		if s.PlayerID == playerID {
			return s
		}
	}

	return nil
}

func (ts *TableState) opponentID(playerID int64) int64 {
	for _, s := range ts.Seats {
		if s.PlayerID != playerID {
			return s.PlayerID
		}
	}

	panic("no opponent seat")
}

func (ts *TableState) buildByID(id string) *Build {
	for _, b := range ts.Builds {
		if b.ID == id {
			return b
		}
	}

	return nil
}

func (ts *TableState) looseByID(id string) *deck.Card {
	for _, c := range ts.Loose {
		if c.ID() == id {
			return c
		}
	}

	return nil
}

func (ts *TableState) removeLoose(card *deck.Card) {
	for i, c := range ts.Loose {
		if c == card {
			ts.Loose = append(ts.Loose[:i], ts.Loose[i+1:]...)
			return
		}
	}

	panic(fmt.Sprintf("card %s is not loose in the middle", card.ID()))
}

func (ts *TableState) removeBuild(build *Build) {
	for i, b := range ts.Builds {
		if b.ID == build.ID {
			ts.Builds = append(ts.Builds[:i], ts.Builds[i+1:]...)
			return
		}
	}

	panic(fmt.Sprintf("build %s is not in the middle", build.ID))
}

func (ts *TableState) buildsOwnedBy(playerID int64) []*Build {
	var owned []*Build
	for _, b := range ts.Builds {
		if b.OwnerID == playerID {
			owned = append(owned, b)
		}
	}

	return owned
}

func (ts *TableState) buildsInHardGroup(groupID string) []*Build {
	var group []*Build
	for _, b := range ts.Builds {
		if b.HardGroupID != "" && b.HardGroupID == groupID {
			group = append(group, b)
		}
	}

	return group
}

// checkInvariants verifies card conservation, zone disjointness, and
// obligation consistency. A non-nil error means the engine itself is broken.
func (ts *TableState) checkInvariants() error {
	seen := make(map[string]string)
	count := 0

	record := func(card *deck.Card, zone string) error {
		id := card.ID()
		if other, found := seen[id]; found {
			return fmt.Errorf("card %s in both %s and %s", id, other, zone)
		}

		seen[id] = zone
		count++
		return nil
	}

	for _, c := range ts.Deck {
		if err := record(c, "deck"); err != nil {
			return err
		}
	}

	for _, c := range ts.Loose {
		if err := record(c, "middle"); err != nil {
			return err
		}
	}

	for _, b := range ts.Builds {
		for _, c := range b.Cards {
			if err := record(c, "build "+b.ID); err != nil {
				return err
			}
		}
	}

	for _, s := range ts.Seats {
		for _, c := range s.Hand {
			if err := record(c, fmt.Sprintf("hand %d", s.PlayerID)); err != nil {
				return err
			}
		}

		for _, c := range s.Captured {
			if err := record(c, fmt.Sprintf("pile %d", s.PlayerID)); err != nil {
				return err
			}
		}
	}

	if count != 52 {
		return fmt.Errorf("expected 52 cards, found %d", count)
	}

	if o := ts.Obligation; o != nil {
		b := ts.buildByID(o.BuildID)
		if b == nil {
			return fmt.Errorf("obligation references missing build %s", o.BuildID)
		}

		if b.OwnerID != o.PlayerID {
			return fmt.Errorf("obligation owner %d does not own build %s", o.PlayerID, o.BuildID)
		}
	}

	return nil
}
