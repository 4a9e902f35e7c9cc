package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/markitup/markitup-api/internal/logging"
	"github.com/markitup/markitup-api/internal/user"
)

var (
	ErrMissingFields      = errors.New("missing required fields")
	ErrMissingCredentials = errors.New("missing email or password")
	ErrEmailExists        = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrCreateFailed       = errors.New("failed to create user")
)

// Result is what a successful signup or login returns.
type Result struct {
	Token string
	User  user.PublicUser
}

// Service orchestrates signup, login and identity resolution. It holds no
// state between requests; all shared mutable state lives in the store.
type Service struct {
	store  UserStore
	hasher Hasher
	tokens TokenService
	logger *logging.Logger

	// dummyHash is verified against when a login targets an unknown email,
	// so both failure paths pay the same hashing cost.
	dummyHash string
}

func NewService(store UserStore, hasher Hasher, tokens TokenService, logger *logging.Logger) (*Service, error) {
	dummyHash, err := hasher.Hash("markitup-dummy-credential")
	if err != nil {
		return nil, fmt.Errorf("failed to prepare dummy hash: %w", err)
	}

	return &Service{
		store:     store,
		hasher:    hasher,
		tokens:    tokens,
		logger:    logger,
		dummyHash: dummyHash,
	}, nil
}

// Signup creates a new account and issues a token for it.
func (s *Service) Signup(ctx context.Context, name, email, password string) (*Result, error) {
	if name == "" || email == "" || password == "" {
		return nil, ErrMissingFields
	}

	_, err := s.store.GetByEmail(ctx, email)
	if err == nil {
		return nil, ErrEmailExists
	}
	if !errors.Is(err, user.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up email: %w", err)
	}

	passwordHash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	newUser, err := s.store.Create(ctx, name, email, passwordHash)
	if err != nil {
		// Two concurrent signups can both pass the lookup; the unique
		// index decides the winner.
		if errors.Is(err, user.ErrDuplicateEmail) {
			return nil, ErrEmailExists
		}
		if errors.Is(err, user.ErrNoIDAssigned) {
			return nil, ErrCreateFailed
		}
		return nil, fmt.Errorf("%w: %w", ErrCreateFailed, err)
	}

	token, err := s.tokens.Issue(newUser.CoreID())
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	s.logger.Info("user created", "user_id", newUser.CoreID().String())

	return &Result{Token: token, User: newUser.Public()}, nil
}

// Login verifies credentials and issues a token. An unknown email and a
// wrong password fail with the same error value so account existence is
// never disclosed.
func (s *Service) Login(ctx context.Context, email, password string) (*Result, error) {
	if email == "" || password == "" {
		return nil, ErrMissingCredentials
	}

	existing, err := s.store.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			// Burn the same hashing cost as the wrong-password path.
			s.hasher.Verify(s.dummyHash, password)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up email: %w", err)
	}

	if !s.hasher.Verify(existing.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(existing.CoreID())
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return &Result{Token: token, User: existing.Public()}, nil
}

// ResolveIdentity verifies a bearer token and returns the public view of
// the user it identifies.
func (s *Service) ResolveIdentity(ctx context.Context, token string) (*user.PublicUser, error) {
	userID, err := s.tokens.Verify(token)
	if err != nil {
		return nil, err
	}

	existing, err := s.store.GetByID(ctx, userID)
	if err != nil {
		// Valid token for an account that no longer exists.
		if errors.Is(err, user.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	pub := existing.Public()
	return &pub, nil
}
