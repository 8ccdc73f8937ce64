package usecase

import (
	"context"

	"trolley/internal/domain/entity"
)

// RegisterInput carries a storefront customer registration request.
type RegisterInput struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// RegisterOutput returns the created account without credential data.
type RegisterOutput struct {
	User *entity.User `json:"user"`
}

// LoginInput carries an email/password login request.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// TokenPair is the session material returned on login and refresh.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// LoginOutput returns the account and its fresh session tokens.
type LoginOutput struct {
	User   *entity.User `json:"user"`
	Tokens TokenPair    `json:"tokens"`
}

// RefreshInput carries a token refresh request.
type RefreshInput struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// LogoutInput carries the refresh token of the session being ended.
type LogoutInput struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// UserUsecase owns account registration and session lifecycle.
type UserUsecase interface {
	// Register creates a new client account with an email/password credential.
	Register(ctx context.Context, input *RegisterInput) (*RegisterOutput, error)

	// Login verifies the credential and issues an access/refresh token pair.
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)

	// Refresh rotates a valid refresh token into a new token pair.
	Refresh(ctx context.Context, input *RefreshInput) (*LoginOutput, error)

	// Logout revokes the session behind the given refresh token.
	Logout(ctx context.Context, input *LogoutInput) error
}
