package realtime

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDrawChannel(t *testing.T) {
	assert.Equal(t, "raffle:abc-123:draw", DrawChannel("abc-123"))
}

func TestRaffleIDFromChannel(t *testing.T) {
	tests := []struct {
		name    string
		channel string
		wantID  string
		wantOK  bool
	}{
		{"valid channel", "raffle:abc-123:draw", "abc-123", true},
		{"round trip", DrawChannel("3f1f64f7"), "3f1f64f7", true},
		{"missing prefix", "abc-123:draw", "", false},
		{"missing suffix", "raffle:abc-123", "", false},
		{"empty id", "raffle::draw", "", false},
		{"unrelated channel", "stats:abc:draw", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := raffleIDFromChannel(tt.channel)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantID, id)
		})
	}
}
