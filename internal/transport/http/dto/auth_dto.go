package dto

type SignUpRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type SessionTokensResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	ExpiresInSec int64        `json:"expires_in_sec"`
	User         UserResponse `json:"user"`
}

type SignOutResponse struct {
	OK bool `json:"ok"`
}

type SessionResponse struct {
	User  UserResponse `json:"user"`
	Stale bool         `json:"stale"`
}
