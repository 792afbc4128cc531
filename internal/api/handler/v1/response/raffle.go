package response

// JoinCodeResponse carries what the admin dashboard needs to render the
// join QR code.
type JoinCodeResponse struct {
	RaffleID string `json:"raffle_id"`
	JoinCode string `json:"join_code"`
	JoinURL  string `json:"join_url"`
}
