package dto

import (
	"gooman/infras/jwt"
	profileModel "gooman/internal/domains/profile/model"
	userModel "gooman/internal/domains/user/model"
	"time"
)

const (
	MessageAlreadyRegistered  = "User already registered"
	MessageInvalidCredentials = "Invalid login credentials"
)

type RegisterRequest struct {
	Email    string `json:"email"     validate:"required,email,max=255"`
	Password string `json:"password"  validate:"required,min=6,max=72"`
	FullName string `json:"full_name" validate:"required,max=100"`
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password"     validate:"required,min=6,max=72,nefield=CurrentPassword"`
}

type UpdateLastLoginRequest struct {
	LastLogin time.Time `db:"last_login"`
}

type UpdatePasswordRequest struct {
	Password string `db:"password"`
}

// IdentityResponse is the signed-in user as seen by clients.
type IdentityResponse struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}

func (r *IdentityResponse) FromModel(user userModel.User, profile profileModel.Profile) {
	r.ID = user.ID
	r.Email = user.Email
	r.Role = user.Role

	if profile.FullName != nil {
		r.FullName = *profile.FullName
	}
}

type SessionResponse struct {
	AccessToken  string           `json:"access_token"`
	RefreshToken string           `json:"refresh_token"`
	TokenType    string           `json:"token_type"`
	ExpiresIn    int64            `json:"expires_in"`
	ExpiresAt    int64            `json:"expires_at"`
	User         IdentityResponse `json:"user"`
}

func (s *SessionResponse) FromTokenPair(tokenPair *jwt.TokenPair, user IdentityResponse) {
	s.AccessToken = tokenPair.AccessToken
	s.RefreshToken = tokenPair.RefreshToken
	s.TokenType = tokenPair.TokenType
	s.ExpiresIn = tokenPair.ExpiresIn
	s.ExpiresAt = tokenPair.ExpiresAt
	s.User = user
}
