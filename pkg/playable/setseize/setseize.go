package setseize

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"setandseize-server/pkg/deck"
	"setandseize-server/pkg/playable"
)

type dealerAction int

const (
	dealerActionDealHands dealerAction = iota
	dealerActionClearGame
)

type pendingDealerAction struct {
	Action       dealerAction
	ExecuteAfter time.Time
}

// Game is a game of Set & Seize. It owns the authoritative table state; every
// accepted action swaps in the fresh state returned by the resolver.
type Game struct {
	opts  Options
	seed  int64
	table *TableState

	// result is only populated once scoring has run
	result *Result

	logger  logrus.FieldLogger
	logChan chan []*playable.LogMessage

	pendingDealerAction *pendingDealerAction

	// corrupt is set if the engine ever breaks card conservation; the game
	// is dead at that point and rejects everything
	corrupt bool

	done bool
}

// NewGame returns a new Set & Seize game for exactly two players.
// Players should be in the correct order; the first listed player acts first.
func NewGame(logger logrus.FieldLogger, playerIDs []int64, opts Options) (*Game, error) {
	if len(playerIDs) != 2 {
		return nil, PlayerCountError(len(playerIDs))
	}

	d := deck.New()
	if opts.Seed > 0 {
		d.SetSeed(opts.Seed)
	}

	d.Shuffle()

	table, err := NewTable(playerIDs, d)
	if err != nil {
		return nil, err
	}

	g := &Game{
		opts:    opts,
		seed:    d.Seed(),
		table:   table,
		logger:  logger,
		logChan: make(chan []*playable.LogMessage, 256),
	}

	g.sendLogMessages(
		newLogMessage(0, nil, "New game of Set & Seize started"),
		newLogMessage(0, nil, "Four cards dealt to each player and the middle"),
	)

	return g, nil
}

// Name returns "set-and-seize"
func (g *Game) Name() string {
	return "set-and-seize"
}

// LogChan returns a channel for sending log messages
func (g *Game) LogChan() <-chan []*playable.LogMessage {
	return g.logChan
}

// Interval determines how often Tick() should be called
func (g *Game) Interval() time.Duration {
	return time.Second
}

// Action performs an action
func (g *Game) Action(playerID int64, message *playable.PayloadIn) (playerResponse *playable.Response, updateState bool, err error) {
	if g.corrupt {
		return nil, false, ErrGameInvalid
	}

	action, err := actionFromPayload(playerID, message)
	if err != nil {
		return nil, false, err
	}

	log := g.logger.WithField("playerID", playerID).WithField("action", action.Type)

	next, err := Resolve(g.table, action)
	if err != nil {
		if errors.Is(err, ErrStateCorrupt) {
			// engine bug, not player error; kill the game instance
			log.WithError(err).Error("table state corrupt, discarding game")
			g.corrupt = true
			return nil, false, err
		}

		log.WithError(err).Debug("action rejected")
		return nil, false, err
	}

	g.table = next
	log.Debug("action accepted")
	g.sendActionLog(playerID, action)

	return playable.OK(), true, nil
}

func (g *Game) sendActionLog(playerID int64, action PlayerAction) {
	card := deck.CardFromString(action.CardID)

	switch action.Type {
	case ActionDrop:
		g.sendLogMessages(newLogMessage(playerID, card, "{} dropped a card"))
	case ActionCapture:
		g.sendLogMessages(newLogMessage(playerID, card, "{} captured %d cards", len(action.SelectedIDs)+1))
	case ActionBuild:
		if action.StackOnBuildID != "" {
			g.sendLogMessages(newLogMessage(playerID, card, "{} stacked a build up to %d", action.BuildTarget))
		} else if action.HardBuild {
			g.sendLogMessages(newLogMessage(playerID, card, "{} made a hard build of %d", action.BuildTarget))
		} else {
			g.sendLogMessages(newLogMessage(playerID, card, "{} built %d", action.BuildTarget))
		}
	}
}

// Tick will check the state of the game and possibly move the state along
func (g *Game) Tick() (bool, error) {
	if g.done || g.corrupt {
		return false, nil
	}

	if g.pendingDealerAction != nil {
		if !time.Now().After(g.pendingDealerAction.ExecuteAfter) {
			return false, nil
		}

		action := g.pendingDealerAction.Action
		g.pendingDealerAction = nil

		switch action {
		case dealerActionDealHands:
			return true, g.progressRound()
		case dealerActionClearGame:
			g.done = true
			return true, nil
		default:
			panic(fmt.Sprintf("unknown dealer action: %d", action))
		}
	}

	if g.table.NeedsDeal() {
		g.pendingDealerAction = &pendingDealerAction{
			Action:       dealerActionDealHands,
			ExecuteAfter: time.Now().Add(g.opts.dealerDelay()),
		}
	}

	return false, nil
}

// progressRound deals fresh hands, or scores the game when the deck is spent
func (g *Game) progressRound() error {
	next, err := DealHands(g.table)
	if err != nil {
		g.corrupt = true
		return err
	}

	if next.Phase != PhaseScoring {
		g.table = next
		g.sendLogMessages(newLogMessage(0, nil, "Fresh hands dealt"))
		return nil
	}

	scored, result, err := Score(next)
	if err != nil {
		g.corrupt = true
		return err
	}

	g.table = scored
	g.result = result

	messages := make([]*playable.LogMessage, 0, 3)
	for _, score := range result.Scores {
		messages = append(messages, newLogMessage(score.PlayerID, nil, "{} scored %d points", score.Points))
	}

	if result.WinnerID != 0 {
		messages = append(messages, newLogMessage(result.WinnerID, nil, "{} won the game"))
	} else {
		messages = append(messages, newLogMessage(0, nil, "The game is a draw"))
	}

	g.sendLogMessages(messages...)

	g.pendingDealerAction = &pendingDealerAction{
		Action:       dealerActionClearGame,
		ExecuteAfter: time.Now().Add(g.opts.dealerDelay()),
	}

	return nil
}

// GetEndOfGameDetails returns details at the end of the game
func (g *Game) GetEndOfGameDetails() (gameOverDetails *playable.GameOverDetails, isGameOver bool) {
	if !g.done || g.result == nil {
		return nil, false
	}

	adjustments := make(map[int64]int)
	for _, score := range g.result.Scores {
		adjustments[score.PlayerID] = score.Points
	}

	return &playable.GameOverDetails{
		BalanceAdjustments: adjustments,
		Log:                g.result,
	}, true
}

func (g *Game) sendLogMessages(msg ...*playable.LogMessage) {
	if g.logChan != nil {
		g.logChan <- msg
	}
}

func newLogMessage(playerID int64, card *deck.Card, format string, a ...interface{}) *playable.LogMessage {
	var cards []*deck.Card
	if card != nil {
		cards = append(cards, card)
	}

	var playerIDs []int64
	if playerID > 0 {
		playerIDs = []int64{playerID}
	}

	return &playable.LogMessage{
		UUID:      uuid.New().String(),
		PlayerIDs: playerIDs,
		Cards:     cards,
		Message:   fmt.Sprintf(format, a...),
		Time:      time.Now(),
	}
}
