package setseize

import (
	"errors"
	"fmt"
	"time"
)

// Options configures a new game
type Options struct {
	// Seed fixes the shuffle; 0 picks a random seed
	Seed int64

	// StartGameDelay is how many seconds the dealer waits before dealing
	// fresh hands or clearing a finished game; 0 means one second
	StartGameDelay int
}

func (o Options) dealerDelay() time.Duration {
	if o.StartGameDelay > 0 {
		return time.Duration(o.StartGameDelay) * time.Second
	}

	return time.Second
}

// ErrGameInvalid is returned once a game has been marked corrupt and discarded
var ErrGameInvalid = errors.New("this game is no longer valid")

// PlayerCountError is an error on the number of players in the game
type PlayerCountError int

func (p PlayerCountError) Error() string {
	return fmt.Sprintf("expected 2 players, got %d", int(p))
}
