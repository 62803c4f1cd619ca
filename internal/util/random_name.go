package util

import (
	"fmt"
	"math/rand"
	"time"
)

var random = rand.New(rand.NewSource(time.Now().UnixNano())) // nolint:gosec

var adjectives = []string{
	"Bold", "Sly", "Quick", "Quiet", "Patient", "Reckless", "Lucky", "Cunning", "Greedy", "Steady",
	"Brave", "Sharp", "Crafty", "Daring", "Eager", "Fierce", "Gilded", "Hasty", "Keen", "Nimble",
	"Plucky", "Royal", "Shrewd", "Swift", "Wily", "Stubborn", "Velvet", "Wandering", "Midnight", "Golden",
}

var nouns = []string{
	"Gambit", "Wager", "Sweep", "Parlay", "Bluff", "Stakes", "Draw", "Deal", "Cut", "Shuffle",
	"Spade", "Diamond", "Club", "Heart", "Ace", "Deuce", "Ten", "Table", "Middle", "Pile",
	"Build", "Raise", "Seizure", "Haul", "Bounty", "Pot", "Hand", "Round", "Turn", "Trick",
}

// GetRandomName returns a random name by combining an adjective with a noun
func GetRandomName() string {
	adjectivesIndex := random.Intn(len(adjectives))
	nounsIndex := random.Intn(len(nouns))

	return fmt.Sprintf("%s %s", adjectives[adjectivesIndex], nouns[nounsIndex])
}
