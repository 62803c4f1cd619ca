package setseize

import (
	"fmt"

	"setandseize-server/pkg/playable"
)

// ActionType is the kind of play a player makes
type ActionType string

// action types
const (
	ActionDrop    ActionType = "drop"
	ActionCapture ActionType = "capture"
	ActionBuild   ActionType = "build"
)

// PlayerAction is one discrete play: drop, capture, or build
type PlayerAction struct {
	Type     ActionType
	PlayerID int64

	// CardID is the hand card being played
	CardID string

	// AceValue declares a played ace as 1 or 14; it must be 0 otherwise
	AceValue int

	// SelectedIDs are middle card ids (and, for captures, build ids)
	SelectedIDs []string

	// BuildTarget is the declared value for build actions
	BuildTarget int

	// HardBuild requests a protected build
	HardBuild bool

	// PairCardID names the second target-valued card for a hard-build pair
	PairCardID string

	// StackOnBuildID names an opponent's soft build to raise
	StackOnBuildID string

	// ExtraGroups optionally spells out the hard-build partition
	ExtraGroups [][]string
}

// actionFromPayload translates a client payload into a PlayerAction
func actionFromPayload(playerID int64, message *playable.PayloadIn) (PlayerAction, error) {
	action := PlayerAction{
		Type:     ActionType(message.Action),
		PlayerID: playerID,
	}

	switch action.Type {
	case ActionDrop, ActionCapture, ActionBuild:
	default:
		return action, fmt.Errorf("unknown action: %s", message.Action)
	}

	if len(message.Cards) != 1 {
		return action, fmt.Errorf("expected to get 1 card, got %d", len(message.Cards))
	}

	action.CardID = message.Cards[0].ID()

	data := message.AdditionalData
	if v, ok := data.GetInt("aceValue"); ok {
		action.AceValue = v
	}

	if ids, ok := data.GetStringSlice("middleCardIds"); ok {
		action.SelectedIDs = ids
	}

	if v, ok := data.GetInt("buildTargetValue"); ok {
		action.BuildTarget = v
	}

	if v, ok := data.GetBool("hardBuild"); ok {
		action.HardBuild = v
	}

	if s, ok := data.GetString("pairCardId"); ok {
		action.PairCardID = s
	}

	if s, ok := data.GetString("stackOnBuildId"); ok {
		action.StackOnBuildID = s
	}

	if groups, ok := data.GetStringSliceSlice("extraGroups"); ok {
		action.ExtraGroups = groups
	}

	return action, nil
}
