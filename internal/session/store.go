package session

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/aadi-anilkumar-2005/vehicle-rental-service/internal/models"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidInput       = errors.New("invalid signup input")
	ErrSessionActive      = errors.New("another identity is logged in")
)

// Identity is the authenticated-user view held by the session. The role is
// fixed at signup and never changes for the lifetime of the identity.
type Identity struct {
	ID          uint        `json:"id"`
	Name        string      `json:"name"`
	Email       string      `json:"email"`
	PhoneNumber string      `json:"phoneNumber"`
	Role        models.Role `json:"role"`
}

// NewUser carries the signup form fields.
type NewUser struct {
	Name        string
	Email       string
	Password    string
	PhoneNumber string
	Role        models.Role
}

// CredentialVerifier checks a login attempt against the account store.
type CredentialVerifier interface {
	VerifyCredentials(ctx context.Context, email, password string) (*Identity, error)
}

// UserRegistry creates new accounts.
type UserRegistry interface {
	CreateUser(ctx context.Context, nu NewUser) (*Identity, error)
}

// Store holds the single current identity for one running session. It is the
// only component allowed to own live identity state; everything else reads
// through Current.
type Store struct {
	mu       sync.RWMutex
	current  *Identity
	verifier CredentialVerifier
	registry UserRegistry
	timeout  time.Duration
}

// DefaultTimeout bounds collaborator calls so a slow credential check fails
// visibly instead of hanging the caller.
const DefaultTimeout = 5 * time.Second

func NewStore(verifier CredentialVerifier, registry UserRegistry) *Store {
	return &Store{
		verifier: verifier,
		registry: registry,
		timeout:  DefaultTimeout,
	}
}

// Login verifies credentials and installs the identity as current. Logging in
// while a different identity is active fails with ErrSessionActive; switching
// requires an explicit Logout first.
func (s *Store) Login(ctx context.Context, email, password string) (*Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current != nil && !strings.EqualFold(s.current.Email, email) {
		return nil, ErrSessionActive
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	ident, err := s.verifier.VerifyCredentials(ctx, email, password)
	if err != nil {
		return nil, err
	}

	cp := *ident
	s.current = &cp
	return ident, nil
}

// Signup creates the account and logs it in. On any failure the session is
// left exactly as it was.
func (s *Store) Signup(ctx context.Context, nu NewUser) (*Identity, error) {
	if err := validateNewUser(nu); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current != nil {
		return nil, ErrSessionActive
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	ident, err := s.registry.CreateUser(ctx, nu)
	if err != nil {
		return nil, err
	}

	cp := *ident
	s.current = &cp
	return ident, nil
}

// Logout clears the current identity. Calling it while already anonymous is a
// no-op.
func (s *Store) Logout() {
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()
}

// Current returns a copy of the current identity, or false when anonymous.
func (s *Store) Current() (*Identity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return nil, false
	}
	cp := *s.current
	return &cp, true
}

func validateNewUser(nu NewUser) error {
	if nu.Name == "" || nu.Password == "" {
		return ErrInvalidInput
	}
	if len(nu.Password) < 6 {
		return ErrInvalidInput
	}
	if !strings.Contains(nu.Email, "@") {
		return ErrInvalidInput
	}
	if !models.ValidRole(nu.Role) {
		return ErrInvalidInput
	}
	return nil
}
