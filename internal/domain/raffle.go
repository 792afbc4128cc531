package domain

import "time"

type RaffleStatus string

const (
	RaffleStatusDraft  RaffleStatus = "draft"
	RaffleStatusActive RaffleStatus = "active"
	RaffleStatusEnded  RaffleStatus = "ended"
)

type Raffle struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Status    RaffleStatus `json:"status"`
	JoinCode  string       `json:"join_code,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

type Participant struct {
	ID          string    `json:"id"`
	RaffleID    string    `json:"raffle_id"`
	UserID      uint      `json:"user_id"`
	DisplayName string    `json:"display_name"`
	TicketCount int       `json:"ticket_count"`
	JoinedAt    time.Time `json:"joined_at"`
}

type Prize struct {
	ID         string    `json:"id"`
	RaffleID   string    `json:"raffle_id"`
	Name       string    `json:"name"`
	Quantity   int       `json:"quantity"`
	DrawnCount int       `json:"drawn_count"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
