package room

import (
	"setandseize-server/pkg/playable"
)

type clientStatePlayer struct {
	PlayerID    int64 `json:"playerId"`
	IsConnected bool  `json:"isConnected"`
	IsSeated    bool  `json:"isSeated"`
}

func newErrorResponse(ctx string, err error) *playable.Response {
	return &playable.Response{
		Key:     "error",
		Value:   err.Error(),
		Context: ctx,
	}
}
