package ports

import "context"

type RegisterInput struct {
	Username string
	Password string
	Name     string
}

type LoginInput struct {
	Username string
	Password string
}

// UserResult is the outward view of an account. Token fields are populated
// only by the operations that mint them; the password hash never appears.
type UserResult struct {
	Username     string `json:"username"`
	Name         string `json:"name"`
	AccessToken  string `json:"accessToken,omitempty"`
	RefreshToken string `json:"refreshToken,omitempty"`
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*UserResult, error)
	Login(ctx context.Context, in LoginInput) (*UserResult, error)
	RefreshAccessToken(ctx context.Context, refreshToken string) (*UserResult, error)
}
