package setseize

import (
	"setandseize-server/pkg/deck"
)

const (
	pointsPerAce      = 1
	pointsTwoOfSpades = 1
	pointsTenDiamonds = 2
	pointsMostSpades  = 1
	pointsMostCards   = 3
	evenSplit         = 26
)

// SeatScore is one player's final tally
type SeatScore struct {
	PlayerID      int64 `json:"playerId"`
	Cards         int   `json:"cards"`
	Spades        int   `json:"spades"`
	Aces          int   `json:"aces"`
	TwoOfSpades   bool  `json:"twoOfSpades"`
	TenOfDiamonds bool  `json:"tenOfDiamonds"`
	MostSpades    bool  `json:"mostSpades"`
	MostCards     bool  `json:"mostCards"`
	Points        int   `json:"points"`
}

// Result is the outcome of a finished game
type Result struct {
	Scores []*SeatScore `json:"scores"`

	// WinnerID is 0 on a draw
	WinnerID int64 `json:"winnerId"`

	// Unclaimed counts middle cards left on the table because no capture
	// ever happened
	Unclaimed int `json:"unclaimed"`
}

// Score finishes the game: the remaining middle cards (builds included) go to
// the last player who captured, the piles are tallied, and the table moves to
// GameOver. If nobody ever captured, the middle stays unclaimed.
func Score(ts *TableState) (*TableState, *Result, error) {
	next := ts.Clone()

	if next.LastCaptureBy != 0 {
		seat := next.seat(next.LastCaptureBy)
		seat.Captured = append(seat.Captured, next.Loose...)
		next.Loose = nil

		for _, b := range next.Builds {
			seat.Captured = append(seat.Captured, b.Cards...)
		}
		next.Builds = nil
	}

	next.Obligation = nil
	next.Phase = PhaseGameOver

	if err := next.checkInvariants(); err != nil {
		return nil, nil, ErrStateCorrupt
	}

	result := tally(next)
	return next, result, nil
}

func tally(ts *TableState) *Result {
	result := &Result{
		Unclaimed: len(ts.Loose),
	}
	for _, b := range ts.Builds {
		result.Unclaimed += len(b.Cards)
	}

	scores := make([]*SeatScore, len(ts.Seats))
	for i, seat := range ts.Seats {
		score := &SeatScore{
			PlayerID: seat.PlayerID,
			Cards:    len(seat.Captured),
		}

		for _, card := range seat.Captured {
			if card.Suit == deck.Spades {
				score.Spades++
			}

			if card.IsAce() {
				score.Aces++
				score.Points += pointsPerAce
			}

			if card.Rank == 2 && card.Suit == deck.Spades {
				score.TwoOfSpades = true
				score.Points += pointsTwoOfSpades
			}

			if card.Rank == 10 && card.Suit == deck.Diamonds {
				score.TenOfDiamonds = true
				score.Points += pointsTenDiamonds
			}
		}

		scores[i] = score
	}

	// strictly more spades takes the spade bonus; a tie awards nobody
	if best := strictLeader(scores, func(s *SeatScore) int { return s.Spades }); best != nil {
		best.MostSpades = true
		best.Points += pointsMostSpades
	}

	// strictly more cards takes the card bonus, withheld entirely on a
	// 26-26 split
	if !allCapturedExactly(scores, evenSplit) {
		if best := strictLeader(scores, func(s *SeatScore) int { return s.Cards }); best != nil {
			best.MostCards = true
			best.Points += pointsMostCards
		}
	}

	result.Scores = scores

	top, runnerUp := scores[0], scores[1]
	if runnerUp.Points > top.Points {
		top, runnerUp = runnerUp, top
	}

	if top.Points > runnerUp.Points {
		result.WinnerID = top.PlayerID
	}

	return result
}

func strictLeader(scores []*SeatScore, metric func(*SeatScore) int) *SeatScore {
	var best *SeatScore
	tied := false
	for _, s := range scores {
		if best == nil || metric(s) > metric(best) {
			best = s
			tied = false
		} else if metric(s) == metric(best) {
			tied = true
		}
	}

	if tied {
		return nil
	}

	return best
}

func allCapturedExactly(scores []*SeatScore, n int) bool {
	for _, s := range scores {
		if s.Cards != n {
			return false
		}
	}

	return true
}
