package request

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreateRaffleRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     CreateRaffleRequest
		wantErr bool
	}{
		{"valid", CreateRaffleRequest{Name: "Summer Meetup Raffle"}, false},
		{"missing name", CreateRaffleRequest{}, true},
		{"name too short", CreateRaffleRequest{Name: "a"}, true},
		{"name too long", CreateRaffleRequest{Name: string(make([]byte, 101))}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestJoinRaffleRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     JoinRaffleRequest
		wantErr bool
	}{
		{"valid", JoinRaffleRequest{JoinCode: "q3kYx8PzN2mW", TicketCount: 1}, false},
		{"missing join code", JoinRaffleRequest{TicketCount: 1}, true},
		{"join code too short", JoinRaffleRequest{JoinCode: "q3kYx8", TicketCount: 1}, true},
		{"join code too long", JoinRaffleRequest{JoinCode: "q3kYx8PzN2mW7", TicketCount: 1}, true},
		{"missing ticket count", JoinRaffleRequest{JoinCode: "q3kYx8PzN2mW"}, true},
		{"negative ticket count", JoinRaffleRequest{JoinCode: "q3kYx8PzN2mW", TicketCount: -1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCreatePrizeRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     CreatePrizeRequest
		wantErr bool
	}{
		{"valid", CreatePrizeRequest{Name: "Conference Ticket", Quantity: 3}, false},
		{"missing name", CreatePrizeRequest{Quantity: 1}, true},
		{"missing quantity", CreatePrizeRequest{Name: "Sticker Pack"}, true},
		{"negative quantity", CreatePrizeRequest{Name: "Sticker Pack", Quantity: -2}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
