package ports

import (
	"context"
	"time"

	"github.com/pairchat/chat-service/internal/core/domain"
)

// DirectoryRepository is the identity directory: account records keyed by id
// and the passcode-to-owner mapping. Backed by MongoDB in production.
type DirectoryRepository interface {
	// CreateAccount inserts a new account. Returns domain.ErrEmailInUse when
	// the email is already registered.
	CreateAccount(ctx context.Context, a *domain.Account) error
	FindAccountByEmail(ctx context.Context, email string) (*domain.Account, error)
	FindAccountByID(ctx context.Context, id string) (*domain.Account, error)
	UpdateDisplayName(ctx context.Context, id, name string) error

	// ReservePasscode atomically claims a passcode for its owner. Returns
	// domain.ErrPasscodeTaken when the code is already assigned; callers
	// regenerate and retry.
	ReservePasscode(ctx context.Context, e *domain.PasscodeEntry) error
	ReleasePasscode(ctx context.Context, code string) error
	// FindPasscode resolves a passcode to its owner. Returns
	// domain.ErrUnknownPasscode when no entry exists.
	FindPasscode(ctx context.Context, code string) (*domain.PasscodeEntry, error)

	// UpdatePresence overwrites the online flag and stamps last-seen on the
	// account record. Idempotent; last-write-wins.
	UpdatePresence(ctx context.Context, id string, online bool, at time.Time) error
	GetPresence(ctx context.Context, id string) (*domain.Presence, error)
}
