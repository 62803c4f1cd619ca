package mux

import (
	"net/http"

	"setandseize-server/internal/jwt"
	"setandseize-server/internal/util"
	"setandseize-server/pkg/room"
)

type createGamePayload struct {
	Name string `json:"name"`
}

type seatResponse struct {
	UUID     string `json:"uuid"`
	Name     string `json:"name"`
	PlayerID int64  `json:"playerId"`
	JWT      string `json:"jwt"`
}

type gameResponse struct {
	UUID      string  `json:"uuid"`
	Name      string  `json:"name"`
	PlayerIDs []int64 `json:"playerIds"`
}

// postGame creates a game and seats the creator
func (m *Mux) postGame() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createGamePayload
		if r.ContentLength > 0 {
			if !decodeRequest(w, r, &payload) {
				return
			}
		}

		if payload.Name == "" {
			payload.Name = util.GetRandomName()
		}

		game, err := m.repo.Create(payload.Name)
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		m.seatPlayer(w, game)
	}
}

// postGameUUIDSeat seats the second player
func (m *Mux) postGameUUIDSeat() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		game := r.Context().Value(ctxGameKey).(*room.Game)
		m.seatPlayer(w, game)
	}
}

func (m *Mux) seatPlayer(w http.ResponseWriter, game *room.Game) {
	playerID, err := game.Seat()
	if err != nil {
		writeJSONError(w, http.StatusConflict, err)
		return
	}

	signed, err := jwt.Sign(playerID)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, http.StatusCreated, seatResponse{
		UUID:     game.UUID,
		Name:     game.Name,
		PlayerID: playerID,
		JWT:      signed,
	})
}

func (m *Mux) getGameUUID() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		game := r.Context().Value(ctxGameKey).(*room.Game)

		writeJSON(w, http.StatusOK, gameResponse{
			UUID:      game.UUID,
			Name:      game.Name,
			PlayerIDs: game.PlayerIDs(),
		})
	}
}
