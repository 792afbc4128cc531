package realtime

import "strings"

const drawChannelPattern = "raffle:*:draw"

// DrawChannel returns the pub/sub channel carrying draw events for a raffle.
func DrawChannel(raffleID string) string {
	return "raffle:" + raffleID + ":draw"
}

func raffleIDFromChannel(channel string) (string, bool) {
	if !strings.HasPrefix(channel, "raffle:") || !strings.HasSuffix(channel, ":draw") {
		return "", false
	}

	id := strings.TrimSuffix(strings.TrimPrefix(channel, "raffle:"), ":draw")
	if id == "" {
		return "", false
	}

	return id, true
}
