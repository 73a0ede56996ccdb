package dto

type UnlockRequest struct {
	Password string `json:"password" validate:"required"`
}

type UnlockResponse struct {
	Token     string `json:"token"`
	TokenType string `json:"token_type"`
	ExpiresIn int    `json:"expires_in"`
}
