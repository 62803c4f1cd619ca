package setseize

import "errors"

// ErrWrongPhase is an error when an action arrives outside the playing phase
var ErrWrongPhase = errors.New("the game is not accepting actions")

// ErrIsNotPlayersTurn is returned when it's not the player's turn
var ErrIsNotPlayersTurn = errors.New("not player's turn")

// ErrCardNotInHand happens when the player tries to play a card they don't have
var ErrCardNotInHand = errors.New("card is not in player's hand")

// ErrUnknownCard happens when a selection references a card or build not in the middle
var ErrUnknownCard = errors.New("selected card or build is not in the middle")

// ErrInvalidAceChoice is an error when an ace value is declared for a non-ace,
// or an ace is declared as something other than 1 or 14
var ErrInvalidAceChoice = errors.New("ace must be declared as 1 or 14")

// ErrObligationViolation happens when a player who must capture attempts a disallowed action
var ErrObligationViolation = errors.New("player must capture or build the same value")

// ErrNoValidCaptureCombination happens when the selected middle cards cannot be
// grouped into sets matching the played card's value
var ErrNoValidCaptureCombination = errors.New("selection cannot be captured with that card")

// ErrInvalidBuildSum happens when the played and selected cards do not sum to the declared target
var ErrInvalidBuildSum = errors.New("cards do not sum to the declared build value")

// ErrIllegalStack happens when stacking on a hard build, on one's own build,
// or without holding a card matching the new target
var ErrIllegalStack = errors.New("cannot stack on that build")

// ErrPartialHardBuildCapture happens when only part of a hard build group is selected
var ErrPartialHardBuildCapture = errors.New("a hard build must be captured in full")

// ErrMissingBuildTargetValue happens when a build action omits the declared target
var ErrMissingBuildTargetValue = errors.New("build actions require a target value")

// ErrStateCorrupt indicates the engine produced a state violating card conservation.
// This is a bug, not a player error; the game instance must be discarded.
var ErrStateCorrupt = errors.New("table state failed invariant check")
