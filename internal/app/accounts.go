package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"wayfinder/internal/domain"
)

type AccountService struct {
	users      domain.UserRepository
	sessions   domain.SessionStore
	sessionTTL time.Duration
}

func NewAccountService(u domain.UserRepository, s domain.SessionStore, ttl time.Duration) *AccountService {
	return &AccountService{users: u, sessions: s, sessionTTL: ttl}
}

// Register creates a user and opens a session. Duplicate email is
// domain.ErrConflict.
func (s *AccountService) Register(ctx context.Context, email, username, password string) (string, domain.Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	username = strings.TrimSpace(username)
	if email == "" || username == "" || password == "" {
		return "", domain.Session{}, fmt.Errorf("email, username and password required: %w", domain.ErrInvalidInput)
	}

	if _, err := s.users.GetUserByEmail(ctx, email); err == nil {
		return "", domain.Session{}, fmt.Errorf("email %s: %w", email, domain.ErrConflict)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return "", domain.Session{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", domain.Session{}, err
	}

	id, err := s.users.CreateUser(ctx, email, username, string(hash))
	if err != nil {
		return "", domain.Session{}, err
	}

	sess := domain.Session{UserID: id, Username: username}
	token, err := s.sessions.Create(ctx, sess, s.sessionTTL)
	if err != nil {
		return "", domain.Session{}, err
	}
	log.Info().Int64("user", id).Msg("user registered")
	return token, sess, nil
}

// Login verifies credentials and opens a session. Unknown email and wrong
// password are both domain.ErrUnauthorized so callers can't probe accounts.
func (s *AccountService) Login(ctx context.Context, email, password string) (string, domain.Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	u, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", domain.Session{}, domain.ErrUnauthorized
		}
		return "", domain.Session{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return "", domain.Session{}, domain.ErrUnauthorized
	}

	sess := domain.Session{UserID: u.ID, Username: u.Username}
	token, err := s.sessions.Create(ctx, sess, s.sessionTTL)
	if err != nil {
		return "", domain.Session{}, err
	}
	log.Info().Int64("user", u.ID).Msg("user logged in")
	return token, sess, nil
}

func (s *AccountService) Logout(ctx context.Context, token string) error {
	return s.sessions.Delete(ctx, token)
}

// Resolve maps a session token to the logged-in user.
func (s *AccountService) Resolve(ctx context.Context, token string) (domain.Session, bool, error) {
	if token == "" {
		return domain.Session{}, false, nil
	}
	return s.sessions.Get(ctx, token)
}
