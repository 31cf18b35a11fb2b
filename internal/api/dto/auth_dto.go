package dto

// LoginRequest payload for login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// TokenResponse returns an issued or reused bearer token.
type TokenResponse struct {
	Username string `json:"username"`
	Token    string `json:"token"`
}

// AuthenticationResponse echoes the caller's resolved identity.
type AuthenticationResponse struct {
	UserID      int64    `json:"user_id"`
	Username    string   `json:"username"`
	Roles       []string `json:"roles"`
	Permissions []string `json:"permissions"`
	Groups      []string `json:"groups"`
}
