package session

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/laundrydesk/laundrydesk/internal/model"
	"github.com/laundrydesk/laundrydesk/internal/notify"
	"github.com/laundrydesk/laundrydesk/internal/storage"
)

// Service holds the single current session and manages the credential
// mapping behind login/signup. There is exactly one session per running
// process; it is restored from the persisted snapshot at startup and
// replaced or cleared wholesale by the operations below.
//
// Lookups and comparisons intentionally use the plaintext credential record
// (see model.CredentialRecord); failed operations leave both the session and
// the stored mapping untouched.
type Service struct {
	storage  storage.Storage
	notifier notify.Notifier
	logger   *slog.Logger

	mu      sync.RWMutex
	current *model.Account
}

// New creates a new session Service. Call Restore before first use to pick
// up a persisted session snapshot.
func New(storage storage.Storage, notifier notify.Notifier, logger *slog.Logger) *Service {
	if notifier == nil {
		notifier = notify.Nop{}
	}
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return &Service{
		storage:  storage,
		notifier: notifier,
		logger:   logger,
	}
}

// Restore initializes the session from the persisted snapshot. An absent or
// unparseable snapshot (cleared by the storage layer) settles to anonymous.
func (s *Service) Restore(ctx context.Context) error {
	account, err := s.storage.LoadSession(ctx)
	if err != nil {
		return fmt.Errorf("restoring session: %w", err)
	}

	s.mu.Lock()
	s.current = account
	s.mu.Unlock()

	if account != nil {
		s.logger.Debug("session restored", slog.String("email", account.Email))
	}
	return nil
}

// Current returns the authenticated account, or nil when anonymous
func (s *Service) Current() *model.Account {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil
	}
	account := *s.current
	return &account
}

// IsAuthenticated reports whether a session is active
func (s *Service) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current != nil
}

// Login authenticates against the stored credential mapping. On failure the
// session state is unchanged.
func (s *Service) Login(ctx context.Context, email, password string) (*model.Account, error) {
	normalized := model.NormalizeEmail(email)

	creds, err := s.storage.LoadCredentials(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading credentials: %w", err)
	}

	record, ok := creds[normalized]
	if !ok {
		s.notifier.Notify(notify.LevelError, "No account found with this email")
		return nil, model.ErrAccountNotFound
	}
	if record.Password != password {
		s.notifier.Notify(notify.LevelError, "Incorrect password")
		return nil, model.ErrInvalidCredentials
	}

	if err := s.setCurrent(ctx, record.Account); err != nil {
		return nil, err
	}

	s.notifier.Notify(notify.LevelInfo, "Welcome back, "+record.Account.Name)
	account := record.Account
	return &account, nil
}

// Signup registers a new account under the normalized email and signs it in.
// A duplicate email rejects without mutating anything.
func (s *Service) Signup(ctx context.Context, email, password, name string) (*model.Account, error) {
	normalized := model.NormalizeEmail(email)

	creds, err := s.storage.LoadCredentials(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading credentials: %w", err)
	}

	if _, exists := creds[normalized]; exists {
		s.notifier.Notify(notify.LevelError, "An account with this email already exists")
		return nil, model.ErrDuplicateAccount
	}

	account := model.Account{
		ID:    model.AccountID(uuid.NewString()),
		Email: normalized,
		Name:  name,
	}

	creds[normalized] = model.CredentialRecord{
		Password: password,
		Account:  account,
	}
	if err := s.storage.SaveCredentials(ctx, creds); err != nil {
		return nil, fmt.Errorf("saving credentials: %w", err)
	}

	if err := s.setCurrent(ctx, account); err != nil {
		return nil, err
	}

	s.logger.Info("account created", slog.String("email", account.Email))
	s.notifier.Notify(notify.LevelInfo, "Welcome, "+account.Name)
	return &account, nil
}

// Logout clears the session and its persisted snapshot. It always succeeds
// and is a no-op when already anonymous.
func (s *Service) Logout(ctx context.Context) error {
	if err := s.storage.ClearSession(ctx); err != nil {
		return fmt.Errorf("clearing session: %w", err)
	}

	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()

	s.notifier.Notify(notify.LevelInfo, "Signed out")
	return nil
}

// UpdateProfile merges the provided fields into the current account and
// persists the result. When anonymous it silently does nothing. The stored
// credential record is only rewritten when one still exists under the
// session's email; otherwise the live session alone is updated.
func (s *Service) UpdateProfile(ctx context.Context, update model.ProfileUpdate) (*model.Account, error) {
	s.mu.RLock()
	current := s.current
	s.mu.RUnlock()

	if current == nil {
		return nil, nil
	}

	merged := update.Apply(*current)

	if err := s.setCurrent(ctx, merged); err != nil {
		return nil, err
	}

	creds, err := s.storage.LoadCredentials(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading credentials: %w", err)
	}
	if record, ok := creds[current.Email]; ok {
		record.Account = merged
		creds[current.Email] = record
		if err := s.storage.SaveCredentials(ctx, creds); err != nil {
			return nil, fmt.Errorf("saving credentials: %w", err)
		}
	}

	s.notifier.Notify(notify.LevelInfo, "Profile updated")
	account := merged
	return &account, nil
}

// setCurrent persists the snapshot and swaps the live session
func (s *Service) setCurrent(ctx context.Context, account model.Account) error {
	if err := s.storage.SaveSession(ctx, &account); err != nil {
		return fmt.Errorf("saving session: %w", err)
	}

	s.mu.Lock()
	s.current = &account
	s.mu.Unlock()
	return nil
}
