package types

type RegisterRequest struct {
	Username string `json:"username"`
}

type LoginRequest struct {
	Username string `json:"username"`
	APIKey   string `json:"api_key"`
}
