package setseize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"setandseize-server/pkg/deck"
)

func TestCanPartitionAll(t *testing.T) {
	assert.True(t, CanPartitionAll(deck.CardsFromString("2c,6s,3h,5d"), 8))

	// the 4 cannot be grouped
	assert.False(t, CanPartitionAll(deck.CardsFromString("2c,6s,3h,4d"), 8))

	assert.True(t, CanPartitionAll(deck.CardsFromString("8c"), 8))
	assert.False(t, CanPartitionAll(deck.CardsFromString("8c,9d"), 8))

	// empty pool partitions trivially
	assert.True(t, CanPartitionAll(nil, 8))

	assert.False(t, CanPartitionAll(deck.CardsFromString("8c"), 0))
}

func TestCanPartitionAll_aces(t *testing.T) {
	// ace low completes one group, ace high anchors another
	assert.True(t, CanPartitionAll(deck.CardsFromString("14s,13c,14h"), 14))

	// 2+A(1)=3 and... the other ace can't make 3
	assert.False(t, CanPartitionAll(deck.CardsFromString("2c,14s,14h"), 3))
}

func TestFindDisjointGroups(t *testing.T) {
	groups := FindDisjointGroups(deck.CardsFromString("8c,3h,5d"), 8, 2)
	require.NotNil(t, groups)
	assert.Equal(t, 2, len(groups))

	total := 0
	for _, g := range groups {
		total += len(g)
		assert.True(t, valuesCanSum(flexible(g), 8))
	}
	assert.Equal(t, 3, total)

	// a full partition exists, but only as a single group
	assert.Nil(t, FindDisjointGroups(deck.CardsFromString("3h,5d"), 8, 2))

	// no full partition at all
	assert.Nil(t, FindDisjointGroups(deck.CardsFromString("8c,3h,5d,4c"), 8, 2))

	// minGroups of 1 accepts the single-group partition
	groups = FindDisjointGroups(deck.CardsFromString("3h,5d"), 8, 1)
	require.NotNil(t, groups)
	assert.Equal(t, 1, len(groups))
}

func TestFindDisjointGroups_pairs(t *testing.T) {
	groups := FindDisjointGroups(deck.CardsFromString("8c,8d"), 8, 2)
	require.NotNil(t, groups)
	assert.Equal(t, 2, len(groups))
	assert.Equal(t, 1, len(groups[0]))
	assert.Equal(t, 1, len(groups[1]))
}
