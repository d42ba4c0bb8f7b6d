package dto

// PingResponse is returned by the health check
type PingResponse struct {
	Message string `json:"message" example:"pong"`
}

// DeletedResponse reports the key of a removed record
type DeletedResponse struct {
	Deleted string `json:"deleted" example:"c1"`
}

// TokenResponse carries a signed JWT
type TokenResponse struct {
	Token string `json:"token"`
}
