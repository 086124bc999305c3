package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/pairchat/chat-service/internal/core/domain"
	"github.com/pairchat/chat-service/internal/core/ports"
)

const minPasswordLength = 6

const (
	maxLoginFailures = 5
	loginLockWindow  = 15 * time.Minute
)

// AuthService implements signup, login, logout, and profile updates.
type AuthService struct {
	directory ports.DirectoryRepository
	sessions  ports.SessionStore
	presence  ports.PresenceService
	jwtSecret string
	tokenTTL  time.Duration
	log       zerolog.Logger

	mu       sync.Mutex
	failures map[string]*loginFailures
}

// loginFailures tracks consecutive failed logins for one email. The window
// restarts on each failure and the counter resets on success.
type loginFailures struct {
	count int
	since time.Time
}

func NewAuthService(
	directory ports.DirectoryRepository,
	sessions ports.SessionStore,
	presence ports.PresenceService,
	jwtSecret string,
	tokenTTL time.Duration,
	log zerolog.Logger,
) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		directory: directory,
		sessions:  sessions,
		presence:  presence,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		log:       log,
		failures:  make(map[string]*loginFailures),
	}
}

// Register creates an account, assigns a unique passcode, and opens a session.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error) {
	if in.Name == "" || in.Email == "" || in.Password == "" {
		return nil, domain.ErrMissingFields
	}
	if len(in.Password) < minPasswordLength {
		return nil, domain.ErrWeakPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	id := uuid.NewString()

	code, err := s.assignPasscode(ctx, id, in.Name)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	account := &domain.Account{
		ID:           id,
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: string(hash),
		Passcode:     code,
		CreatedAt:    now,
	}

	if err := s.directory.CreateAccount(ctx, account); err != nil {
		if relErr := s.directory.ReleasePasscode(ctx, code); relErr != nil {
			s.log.Warn().Err(relErr).Str("passcode", code).Msg("failed to release orphaned passcode")
		}
		return nil, err
	}

	// The initial online flip goes through the presence service so it is
	// published like every later transition.
	if err := s.presence.SetOnline(ctx, id, true); err != nil {
		s.log.Warn().Err(err).Str("user_id", id).Msg("failed to flip presence on signup")
	}
	account.IsOnline = true
	account.LastSeen = now

	s.log.Info().Str("user_id", id).Str("passcode", code).Msg("account created")

	return s.openSession(ctx, account)
}

// assignPasscode reserves a fresh passcode in the directory, regenerating on
// collision. The reserve is an atomic insert, so two concurrent signups can
// never claim the same code.
func (s *AuthService) assignPasscode(ctx context.Context, ownerID, ownerName string) (string, error) {
	for {
		code := domain.GeneratePasscode()
		err := s.directory.ReservePasscode(ctx, &domain.PasscodeEntry{
			Code:      code,
			OwnerID:   ownerID,
			OwnerName: ownerName,
		})
		if err == nil {
			return code, nil
		}
		if !errors.Is(err, domain.ErrPasscodeTaken) {
			return "", err
		}
		s.log.Debug().Str("passcode", code).Msg("passcode collision, regenerating")
	}
}

// Login verifies credentials, flips the account online, and opens a session.
func (s *AuthService) Login(ctx context.Context, in ports.LoginInput) (*ports.AuthResult, error) {
	if in.Email == "" || in.Password == "" {
		return nil, domain.ErrMissingFields
	}

	if s.locked(in.Email) {
		return nil, domain.ErrTooManyAttempts
	}

	account, err := s.directory.FindAccountByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(in.Password)) != nil {
		s.recordFailure(in.Email)
		return nil, domain.ErrWrongPassword
	}
	s.clearFailures(in.Email)

	if err := s.presence.SetOnline(ctx, account.ID, true); err != nil {
		s.log.Warn().Err(err).Str("user_id", account.ID).Msg("failed to flip presence on login")
	}
	account.IsOnline = true

	s.log.Info().Str("user_id", account.ID).Msg("login")

	return s.openSession(ctx, account)
}

func (s *AuthService) locked(email string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.failures[email]
	if !ok {
		return false
	}
	if time.Since(f.since) > loginLockWindow {
		delete(s.failures, email)
		return false
	}
	return f.count >= maxLoginFailures
}

func (s *AuthService) recordFailure(email string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.failures[email]
	if !ok || time.Since(f.since) > loginLockWindow {
		s.failures[email] = &loginFailures{count: 1, since: time.Now()}
		return
	}
	f.count++
	f.since = time.Now()
}

func (s *AuthService) clearFailures(email string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.failures, email)
}

func (s *AuthService) openSession(ctx context.Context, account *domain.Account) (*ports.AuthResult, error) {
	session := &domain.Session{
		UserID:    account.ID,
		UserName:  account.Name,
		Passcode:  account.Passcode,
		UpdatedAt: time.Now().UTC(),
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}

	token, err := s.generateToken(account)
	if err != nil {
		return nil, err
	}

	return &ports.AuthResult{Token: token, Account: account, Session: session}, nil
}

// Logout flips the account offline and clears its session snapshot. Both
// steps always run; the first error is returned.
func (s *AuthService) Logout(ctx context.Context, userID string) error {
	var first error
	if err := s.presence.SetOnline(ctx, userID, false); err != nil {
		first = err
	}
	if err := s.sessions.Clear(ctx, userID); err != nil && first == nil {
		first = err
	}
	s.log.Info().Str("user_id", userID).Msg("logout")
	return first
}

// UpdateDisplayName renames the account and refreshes the stored session.
func (s *AuthService) UpdateDisplayName(ctx context.Context, userID, name string) error {
	if name == "" {
		return domain.ErrMissingFields
	}
	if err := s.directory.UpdateDisplayName(ctx, userID, name); err != nil {
		return err
	}

	sess, err := s.sessions.Load(ctx, userID)
	if err != nil || sess == nil {
		return err
	}
	sess.UserName = name
	sess.UpdatedAt = time.Now().UTC()
	return s.sessions.Save(ctx, sess)
}

func (s *AuthService) generateToken(account *domain.Account) (string, error) {
	claims := jwt.MapClaims{
		"sub":      account.ID,
		"name":     account.Name,
		"passcode": account.Passcode,
		"exp":      time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
