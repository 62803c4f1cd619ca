package setseize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"setandseize-server/pkg/deck"
)

func TestNewTable(t *testing.T) {
	d := deck.New()
	d.SetSeed(42)
	d.Shuffle()

	ts, err := NewTable([]int64{1, 2}, d)
	require.NoError(t, err)

	assert.Equal(t, PhasePlaying, ts.Phase)
	assert.Equal(t, 4, len(ts.Seats[0].Hand))
	assert.Equal(t, 4, len(ts.Seats[1].Hand))
	assert.Equal(t, 4, len(ts.Loose))
	assert.Equal(t, 40, len(ts.Deck))
	assert.Equal(t, int64(1), ts.CurrentTurn)
	assert.NoError(t, ts.checkInvariants())
}

func TestResolve_protocolErrors(t *testing.T) {
	ts := tableFixture(t, "8c,2d", "9h,4s", "2c,3h")

	_, err := Resolve(ts, PlayerAction{Type: ActionDrop, PlayerID: 2, CardID: "9h"})
	assert.Equal(t, ErrIsNotPlayersTurn, err)

	_, err = Resolve(ts, PlayerAction{Type: ActionDrop, PlayerID: 1, CardID: "9h"})
	assert.Equal(t, ErrCardNotInHand, err)

	over := ts.Clone()
	over.Phase = PhaseGameOver
	_, err = Resolve(over, PlayerAction{Type: ActionDrop, PlayerID: 1, CardID: "8c"})
	assert.Equal(t, ErrWrongPhase, err)
}

func TestResolve_drop(t *testing.T) {
	ts := tableFixture(t, "8c,2d", "9h,4s", "2c")

	next, err := Resolve(ts, PlayerAction{Type: ActionDrop, PlayerID: 1, CardID: "8c"})
	require.NoError(t, err)

	assert.Equal(t, 1, len(next.seat(1).Hand))
	assert.Equal(t, 2, len(next.Loose))
	assert.Equal(t, int64(2), next.CurrentTurn)

	// the input state is untouched
	assert.Equal(t, 2, len(ts.seat(1).Hand))
	assert.Equal(t, 1, len(ts.Loose))
	assert.Equal(t, int64(1), ts.CurrentTurn)
}

func TestResolve_captureWholeMiddle(t *testing.T) {
	// middle {2,3,5,6}; playing an 8 takes all four as {2,6} and {3,5}
	ts := tableFixture(t, "8c,9d", "10h,4s", "2c,3h,5d,6s")

	next, err := Resolve(ts, PlayerAction{
		Type:        ActionCapture,
		PlayerID:    1,
		CardID:      "8c",
		SelectedIDs: []string{"2c", "3h", "5d", "6s"},
	})
	require.NoError(t, err)

	assert.Equal(t, 5, len(next.seat(1).Captured))
	assert.Empty(t, next.Loose)
	assert.Equal(t, int64(1), next.LastCaptureBy)
	assert.Equal(t, int64(2), next.CurrentTurn)
}

func TestResolve_captureRejections(t *testing.T) {
	ts := tableFixture(t, "8c,9d", "10h,4s", "2c,3h,5d,4d")

	// 4 left over
	_, err := Resolve(ts, PlayerAction{
		Type:        ActionCapture,
		PlayerID:    1,
		CardID:      "8c",
		SelectedIDs: []string{"2c", "3h", "5d", "4d"},
	})
	assert.Equal(t, ErrNoValidCaptureCombination, err)

	// empty selection
	_, err = Resolve(ts, PlayerAction{Type: ActionCapture, PlayerID: 1, CardID: "8c"})
	assert.Equal(t, ErrNoValidCaptureCombination, err)

	// unknown middle card
	_, err = Resolve(ts, PlayerAction{
		Type:        ActionCapture,
		PlayerID:    1,
		CardID:      "8c",
		SelectedIDs: []string{"11c"},
	})
	assert.Equal(t, ErrUnknownCard, err)
}

func TestResolve_captureBuildAndLoose(t *testing.T) {
	// a capture may flatten a selected build and regroup it with loose cards
	ts := tableFixture(t, "8c,9d", "10h,4s", "2d,3s")
	build := addBuild(t, ts, 2, 6, false, "2h,4c")
	ts.setObligation(2, build.ID, 6)

	next, err := Resolve(ts, PlayerAction{
		Type:        ActionCapture,
		PlayerID:    1,
		CardID:      "8c",
		SelectedIDs: []string{build.ID, "2d"},
	})
	require.NoError(t, err)

	// flattened {2h,4c,2d} regroups as a single 8
	assert.Equal(t, 4, len(next.seat(1).Captured))
	assert.Empty(t, next.Builds)
	assert.Equal(t, []string{"3s"}, ids(next.Loose))

	// capturing the build cleared the opponent's obligation
	assert.Nil(t, next.Obligation)
}

func TestResolve_capturePartialHardBuild(t *testing.T) {
	ts := tableFixture(t, "8c,9d", "10h,4s", "")
	b1 := addBuild(t, ts, 2, 8, true, "8d")
	b2 := addBuild(t, ts, 2, 8, true, "3c,5h")
	b1.HardGroupID = "shared"
	b2.HardGroupID = "shared"

	// selecting only one build of the group is rejected regardless of sum
	_, err := Resolve(ts, PlayerAction{
		Type:        ActionCapture,
		PlayerID:    1,
		CardID:      "8c",
		SelectedIDs: []string{b1.ID},
	})
	assert.Equal(t, ErrPartialHardBuildCapture, err)

	// the full group is capturable
	next, err := Resolve(ts, PlayerAction{
		Type:        ActionCapture,
		PlayerID:    1,
		CardID:      "8c",
		SelectedIDs: []string{b1.ID, b2.ID},
	})
	require.NoError(t, err)
	assert.Equal(t, 4, len(next.seat(1).Captured))
	assert.Empty(t, next.Builds)
}

func TestResolve_aceCapture(t *testing.T) {
	ts := tableFixture(t, "14c,9d", "10h,4s", "13d,14h")

	// A declared high takes K+A(low)
	next, err := Resolve(ts, PlayerAction{
		Type:        ActionCapture,
		PlayerID:    1,
		CardID:      "14c",
		AceValue:    14,
		SelectedIDs: []string{"13d", "14h"},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, len(next.seat(1).Captured))

	// undeclared ace is rejected
	_, err = Resolve(ts, PlayerAction{
		Type:        ActionCapture,
		PlayerID:    1,
		CardID:      "14c",
		SelectedIDs: []string{"13d", "14h"},
	})
	assert.Equal(t, ErrInvalidAceChoice, err)
}

func TestResolve_repeatableOutput(t *testing.T) {
	// the same state and action must produce the same state, build ids included
	build := PlayerAction{
		Type:        ActionBuild,
		PlayerID:    1,
		CardID:      "5c",
		SelectedIDs: []string{"3c"},
		BuildTarget: 8,
	}

	ts := tableFixture(t, "5c,8d", "9h,4s", "3c,2h")
	first, err := Resolve(ts, build)
	require.NoError(t, err)
	second, err := Resolve(ts, build)
	require.NoError(t, err)

	assert.Equal(t, first.Builds[0].ID, second.Builds[0].ID)
	assert.Equal(t, first, second)

	// hard-build groups mint their ids the same way
	hard := PlayerAction{
		Type:        ActionBuild,
		PlayerID:    1,
		CardID:      "8c",
		SelectedIDs: []string{"3h", "5d"},
		BuildTarget: 8,
		HardBuild:   true,
	}

	ts = tableFixture(t, "8c,9d", "10h,4s", "3h,5d")
	first, err = Resolve(ts, hard)
	require.NoError(t, err)
	second, err = Resolve(ts, hard)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestResolve_conservationAcrossSequence(t *testing.T) {
	ts := tableFixture(t, "8c,2d,14s,5c", "9h,4s,3c,10d", "2c,3h,5d,6s")

	actions := []PlayerAction{
		{Type: ActionCapture, PlayerID: 1, CardID: "8c", SelectedIDs: []string{"2c", "3h", "5d", "6s"}},
		{Type: ActionDrop, PlayerID: 2, CardID: "9h"},
		{Type: ActionBuild, PlayerID: 1, CardID: "2d", SelectedIDs: []string{"9h"}, BuildTarget: 11},
		{Type: ActionDrop, PlayerID: 2, CardID: "4s"},
	}

	for _, action := range actions {
		next, err := Resolve(ts, action)
		require.NoError(t, err, "action %s by %d", action.Type, action.PlayerID)
		require.NoError(t, next.checkInvariants())
		ts = next
	}

	assert.Equal(t, 1, len(ts.Builds))
	assert.Equal(t, 11, ts.Builds[0].Value)
}

func TestTableState_checkInvariants(t *testing.T) {
	ts := tableFixture(t, "8c", "9h", "2c")
	assert.NoError(t, ts.checkInvariants())

	// duplicate a card across zones
	bad := ts.Clone()
	bad.Loose = append(bad.Loose, bad.seat(1).Hand[0])
	assert.Error(t, bad.checkInvariants())

	// lose a card entirely
	bad = ts.Clone()
	bad.Deck = bad.Deck[1:]
	assert.Error(t, bad.checkInvariants())

	// dangling obligation
	bad = ts.Clone()
	bad.setObligation(1, "no-such-build", 8)
	assert.Error(t, bad.checkInvariants())
}
