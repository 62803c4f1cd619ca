package room

import (
	"errors"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"setandseize-server/internal/config"
	"setandseize-server/pkg/playable"
	"setandseize-server/pkg/playable/setseize"
)

type state int

const (
	stateClientEvent state = iota
	stateGameEvent
	stateGameEnded
)

const tickInterval = time.Second

// Dealer is responsible for controlling the game at one table
type Dealer struct {
	pitBoss *PitBoss
	game    *Game
	clients map[*Client]bool
	lock    sync.RWMutex

	// match is the running game, nil while the room is idle
	match       playable.Playable
	logMessages []*playable.LogMessage

	execInRunLoop chan func()
	stateChanged  chan state
	close         chan bool
}

// NewDealer creates a new dealer object
// This is called from a blocking state, so it needs to return quickly
func NewDealer(pitBoss *PitBoss, game *Game) *Dealer {
	return &Dealer{
		pitBoss:       pitBoss,
		game:          game,
		clients:       make(map[*Client]bool),
		execInRunLoop: make(chan func(), 256),
		stateChanged:  make(chan state, 256),
		close:         make(chan bool),
	}
}

// Clients will return a slice of connected (at the time) clients
func (d *Dealer) Clients() []*Client {
	d.lock.RLock()
	defer d.lock.RUnlock()

	clients := make([]*Client, 0, len(d.clients))
	for client := range d.clients {
		clients = append(clients, client)
	}

	return clients
}

// StartShift starts the run loop
func (d *Dealer) StartShift() {
	go d.runLoop()
}

func (d *Dealer) runLoop() {
	log := logrus.WithFields(logrus.Fields{
		"uuid": d.game.UUID,
		"name": d.game.Name,
	})

	log.Debug("creating dealer run loop")

	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	for {
		select {
		case s := <-d.stateChanged:
			switch s {
			case stateClientEvent:
				d.sendClientState()
			case stateGameEvent:
				d.sendGameData()
			case stateGameEnded:
				d.sendGameEnded()
				d.sendClientState()
			}
		case fn := <-d.execInRunLoop:
			fn()
		case <-ticker.C:
			d.tickMatch()
		case <-d.close:
			log.Debug("terminating dealer run loop")
			return
		}
	}
}

// AddClient adds a client
// This method must return quickly
func (d *Dealer) AddClient(client *Client) {
	d.lock.Lock()
	client.dealer = d
	d.clients[client] = true
	d.lock.Unlock()

	d.stateChanged <- stateClientEvent
	d.execInRunLoop <- func() {
		if len(d.logMessages) > 0 {
			client.Send(&playable.Response{
				Key:  "logs",
				Data: d.logMessages,
			})
		}

		if d.match == nil {
			return
		}

		gs, err := d.match.GetPlayerState(client.playerID)
		if err != nil {
			logrus.WithError(err).Error("could not get player state")
			return
		}

		client.Send(gs)
	}
}

// RemoveClient removes a client
// This method must return quickly
func (d *Dealer) RemoveClient(client *Client) (lastClient bool) {
	d.lock.Lock()
	delete(d.clients, client)
	nClients := len(d.clients)
	d.lock.Unlock()

	if nClients > 0 {
		d.stateChanged <- stateClientEvent
		return false
	}

	return true
}

// EndShift is called when the dealer is no longer needed
func (d *Dealer) EndShift() {
	close(d.close)
}

// ReceivedMessage is called when a client sends a message to the server
func (d *Dealer) ReceivedMessage(c *Client, msg *playable.PayloadIn) {
	switch msg.Action {
	case "createGame":
		d.execInRunLoop <- func() {
			if err := d.createMatch(msg.AdditionalData); err != nil {
				c.Send(newErrorResponse(msg.Context, err))
				return
			}

			c.Send(playable.OK(msg.Context))
		}
	default:
		d.execInRunLoop <- func() {
			d.playerAction(c, msg)
		}
	}
}

// NOTE: must only be called from the run loop
func (d *Dealer) playerAction(c *Client, msg *playable.PayloadIn) {
	match := d.match
	if match == nil {
		c.Send(newErrorResponse(msg.Context, errors.New("no game in progress")))
		return
	}

	action, updateState, err := match.Action(c.playerID, msg)
	if err != nil {
		logrus.WithError(err).WithField("client", c.String()).Debug("could not perform action")
		c.Send(newErrorResponse(msg.Context, err))
		return
	}

	if action != nil {
		action.Context = msg.Context
		c.Send(action)
	}

	if updateState {
		d.sendGameData()
	}

	d.drainMatchLogs()

	if _, isOver := match.GetEndOfGameDetails(); isOver {
		d.endMatch()
	}
}

// NOTE: must only be called from the run loop
func (d *Dealer) createMatch(additionalData playable.AdditionalData) error {
	if d.match != nil {
		return errors.New("a game is already in progress")
	}

	playerIDs := d.game.PlayerIDs()
	if len(playerIDs) < 2 {
		return errors.New("waiting for a second player")
	}

	opts := setseize.Options{
		StartGameDelay: config.Instance().StartGameDelay,
	}
	if seed, ok := additionalData["seed"].(float64); ok {
		opts.Seed = int64(seed)
	}

	match, err := setseize.NewGame(logrus.WithField("game", d.game.UUID), playerIDs, opts)
	if err != nil {
		return err
	}

	d.match = match
	d.drainMatchLogs()
	d.sendGameData()

	return nil
}

// NOTE: must only be called from the run loop
func (d *Dealer) tickMatch() {
	match, ok := d.match.(playable.Tickable)
	if !ok {
		return
	}

	update, err := match.Tick()
	if err != nil {
		logrus.WithError(err).WithField("uuid", d.game.UUID).Error("tick failed")
		d.endMatch()
		return
	}

	d.drainMatchLogs()

	if update {
		d.sendGameData()
	}

	if _, isOver := d.match.GetEndOfGameDetails(); isOver {
		d.endMatch()
	}
}

// NOTE: must only be called from the run loop
func (d *Dealer) endMatch() {
	if d.match == nil {
		return
	}

	if details, isOver := d.match.GetEndOfGameDetails(); isOver {
		logrus.WithFields(logrus.Fields{
			"uuid":   d.game.UUID,
			"points": details.BalanceAdjustments,
		}).Info("game over")
	}

	d.match = nil
	d.sendGameEnded()
	d.sendClientState()
}

// NOTE: must only be called from the run loop
func (d *Dealer) drainMatchLogs() {
	if d.match == nil {
		return
	}

	for {
		select {
		case messages := <-d.match.LogChan():
			d.addLogMessages(messages)
		default:
			return
		}
	}
}

// NOTE: must only be called from the run loop
func (d *Dealer) sendGameEnded() {
	for _, client := range d.Clients() {
		client.Send(&playable.Response{
			Key: "gameEnded",
		})
	}
}

// NOTE: must only be called from the run loop
func (d *Dealer) sendGameData() {
	if d.match == nil {
		return
	}

	for _, client := range d.Clients() {
		data, err := d.match.GetPlayerState(client.playerID)
		if err != nil {
			logrus.WithError(err).Error("could not get player state")
			continue
		}

		client.Send(data)
	}
}

// NOTE: must only be called from the run loop
func (d *Dealer) sendClientState() {
	connected := make(map[int64]bool)
	for _, client := range d.Clients() {
		connected[client.playerID] = true
	}

	players := make([]*clientStatePlayer, 0, 2)
	for _, playerID := range d.game.PlayerIDs() {
		players = append(players, &clientStatePlayer{
			PlayerID:    playerID,
			IsConnected: connected[playerID],
			IsSeated:    true,
		})
		delete(connected, playerID)
	}

	for playerID := range connected {
		players = append(players, &clientStatePlayer{
			PlayerID:    playerID,
			IsConnected: true,
			IsSeated:    false,
		})
	}

	for _, client := range d.Clients() {
		client.Send(&playable.Response{
			Key:  "clientState",
			Data: players,
		})
	}
}
