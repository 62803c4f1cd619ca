package util

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetRandomName(t *testing.T) {
	random = rand.New(rand.NewSource(0)) // nolint:gosec

	name := GetRandomName()
	parts := strings.Split(name, " ")
	assert.Equal(t, 2, len(parts))
	assert.Contains(t, adjectives, parts[0])
	assert.Contains(t, nouns, parts[1])

	// seeded names are reproducible
	random = rand.New(rand.NewSource(0)) // nolint:gosec
	assert.Equal(t, name, GetRandomName())
}
