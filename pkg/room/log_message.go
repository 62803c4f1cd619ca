package room

import (
	"setandseize-server/pkg/playable"
)

const logMessageLimit = 25

// addLogMessages appends game log messages and broadcasts them
// Note: this must only be called from within the run loop
func (d *Dealer) addLogMessages(messages []*playable.LogMessage) {
	m := append(d.logMessages, messages...)
	count := len(m)
	if count > logMessageLimit {
		m = m[count-logMessageLimit:]
	}

	d.logMessages = m

	for _, client := range d.Clients() {
		client.Send(&playable.Response{
			Key:  "logs",
			Data: messages,
		})
	}
}
