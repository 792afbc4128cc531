package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type CreateRaffleRequest struct {
	Name string `json:"name"`
}

func (req *CreateRaffleRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(2, 100)),
	)
}

type UpdateRaffleRequest struct {
	Name string `json:"name"`
}

func (req *UpdateRaffleRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(2, 100)),
	)
}

type JoinRaffleRequest struct {
	JoinCode    string `json:"join_code"`
	TicketCount int    `json:"ticket_count"`
}

func (req *JoinRaffleRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.JoinCode, validation.Required, validation.Length(12, 12)),
		validation.Field(&req.TicketCount, validation.Required, validation.Min(1)),
	)
}

type UpdateTicketsRequest struct {
	TicketCount int `json:"ticket_count"`
}

func (req *UpdateTicketsRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.TicketCount, validation.Required, validation.Min(1)),
	)
}

type CreatePrizeRequest struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

func (req *CreatePrizeRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.Quantity, validation.Required, validation.Min(1)),
	)
}

type UpdatePrizeRequest struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

func (req *UpdatePrizeRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.Quantity, validation.Required, validation.Min(1)),
	)
}
