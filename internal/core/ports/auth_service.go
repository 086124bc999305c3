package ports

import (
	"context"

	"github.com/pairchat/chat-service/internal/core/domain"
)

// RegisterInput carries a signup request from the transport layer.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// LoginInput carries a login request from the transport layer.
type LoginInput struct {
	Email    string
	Password string
}

// AuthResult is returned on successful signup or login.
type AuthResult struct {
	Token   string
	Account *domain.Account
	Session *domain.Session
}

// AuthService implements account lifecycle: signup with passcode assignment,
// login, logout, and profile updates.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, in LoginInput) (*AuthResult, error)
	// Logout flips the account offline and clears its session snapshot.
	// Cleanup is best effort; the first error is returned after both steps ran.
	Logout(ctx context.Context, userID string) error
	UpdateDisplayName(ctx context.Context, userID, name string) error
}
