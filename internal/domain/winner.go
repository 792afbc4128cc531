package domain

import "time"

type Winner struct {
	ID            string    `json:"id"`
	RaffleID      string    `json:"raffle_id"`
	PrizeID       string    `json:"prize_id"`
	PrizeName     string    `json:"prize_name"`
	ParticipantID string    `json:"participant_id"`
	UserID        uint      `json:"user_id"`
	DisplayName   string    `json:"display_name"`
	Seed          int64     `json:"seed"`
	DrawnAt       time.Time `json:"drawn_at"`
}

// MultiWinner is a user who has won more than once across raffles,
// surfaced for fairness visibility.
type MultiWinner struct {
	UserID   uint   `json:"user_id"`
	Name     string `json:"name"`
	WinCount int    `json:"win_count"`
}

type RaffleStats struct {
	RaffleID         string `json:"raffle_id"`
	ParticipantCount int64  `json:"participant_count"`
	TotalTickets     int64  `json:"total_tickets"`
	PrizeCount       int64  `json:"prize_count"`
	WinnersDrawn     int64  `json:"winners_drawn"`
}
