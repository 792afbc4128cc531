package domain

import "time"

type DrawEventType string

const (
	EventDrawStart      DrawEventType = "DRAW_START"
	EventWheelSeed      DrawEventType = "WHEEL_SEED"
	EventWinnerRevealed DrawEventType = "WINNER_REVEALED"
	EventRaffleEnded    DrawEventType = "RAFFLE_ENDED"
)

// DrawEvent is the payload published on a raffle's draw channel.
// The UI switches on Type and trusts the payload shape.
type DrawEvent struct {
	Type    DrawEventType `json:"type"`
	Payload any           `json:"payload"`
}

type DrawStartPayload struct {
	RaffleID  string    `json:"raffle_id"`
	PrizeID   string    `json:"prize_id"`
	PrizeName string    `json:"prize_name"`
	StartedAt time.Time `json:"started_at"`
}

// WheelEntry is one slice of the wheel. Entries are broadcast in draw
// order so every client renders the same wheel for the same seed.
type WheelEntry struct {
	ParticipantID string `json:"participant_id"`
	DisplayName   string `json:"display_name"`
	TicketCount   int    `json:"ticket_count"`
}

type WheelSeedPayload struct {
	RaffleID string       `json:"raffle_id"`
	PrizeID  string       `json:"prize_id"`
	Seed     int64        `json:"seed"`
	Entries  []WheelEntry `json:"entries"`
}

type WinnerRevealedPayload struct {
	RaffleID      string `json:"raffle_id"`
	PrizeID       string `json:"prize_id"`
	WinnerID      string `json:"winner_id"`
	ParticipantID string `json:"participant_id"`
	UserID        uint   `json:"user_id"`
	DisplayName   string `json:"display_name"`
}

type RaffleEndedPayload struct {
	RaffleID string    `json:"raffle_id"`
	EndedAt  time.Time `json:"ended_at"`
}
