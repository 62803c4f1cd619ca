package setseize

import (
	"setandseize-server/pkg/deck"
	"setandseize-server/pkg/playable"
)

// GameState is the overall game state
// This is safe for all players to see
type GameState struct {
	Seed          int64        `json:"seed"`
	Phase         string       `json:"phase"`
	Seats         []*StateSeat `json:"seats"`
	Loose         []*deck.Card `json:"loose"`
	Builds        []*Build     `json:"builds"`
	CardsInDeck   int          `json:"cardsInDeck"`
	CurrentTurn   int64        `json:"currentTurn"`
	LastCaptureBy int64        `json:"lastCaptureBy"`
	Obligation    *Obligation  `json:"obligation"`
	Result        *Result      `json:"result"`
}

// StateSeat is the public view of one seat
type StateSeat struct {
	PlayerID      int64 `json:"playerId"`
	CardsInHand   int   `json:"cardsInHand"`
	CardsCaptured int   `json:"cardsCaptured"`
}

// Response is the response format for this game
type Response struct {
	GameState *GameState `json:"gameState"`
	// Data below is player specific, and must only be shown to the intended player
	Hand deck.Hand `json:"hand"`
}

func (g *Game) getGameState() *GameState {
	ts := g.table
	seats := make([]*StateSeat, len(ts.Seats))
	for i, seat := range ts.Seats {
		seats[i] = &StateSeat{
			PlayerID:      seat.PlayerID,
			CardsInHand:   len(seat.Hand),
			CardsCaptured: len(seat.Captured),
		}
	}

	var currentTurn int64
	if ts.Phase == PhasePlaying {
		currentTurn = ts.CurrentTurn
	}

	return &GameState{
		Seed:          g.seed,
		Phase:         ts.Phase.String(),
		Seats:         seats,
		Loose:         ts.Loose,
		Builds:        ts.Builds,
		CardsInDeck:   len(ts.Deck),
		CurrentTurn:   currentTurn,
		LastCaptureBy: ts.LastCaptureBy,
		Obligation:    ts.Obligation,
		Result:        g.result,
	}
}

// GetPlayerState returns the state for the given player
func (g *Game) GetPlayerState(playerID int64) (*playable.Response, error) {
	var hand deck.Hand
	if seat := g.table.seat(playerID); seat != nil {
		hand = seat.Hand
	}

	return &playable.Response{
		Key:   "game",
		Value: g.Name(),
		Data: &Response{
			GameState: g.getGameState(),
			Hand:      hand,
		},
	}, nil
}
