// Package session holds the signed-in identity and keeps it in durable storage
// so it survives restarts.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
)

// Identity is a snapshot of the session fields; empty strings mean absent
type Identity struct {
	Token    string
	Username string
	UserID   string
}

// Store is the session state backed by Storage
type Store struct {
	storage Storage

	mu       sync.RWMutex
	token    string
	username string
	userID   string
}

// New loads the persisted session from storage. A stored token without a
// stored userId has its userId derived from the token claims when possible.
func New(ctx context.Context, storage Storage) (*Store, error) {
	s := &Store{storage: storage}

	var err error
	if s.token, _, err = storage.Get(ctx, KeyToken); err != nil {
		return nil, fmt.Errorf("failed to load session token: %w", err)
	}
	if s.username, _, err = storage.Get(ctx, KeyUsername); err != nil {
		return nil, fmt.Errorf("failed to load session username: %w", err)
	}
	if s.userID, _, err = storage.Get(ctx, KeyUserID); err != nil {
		return nil, fmt.Errorf("failed to load session user id: %w", err)
	}

	if s.userID == "" && s.token != "" {
		if id, err := UserIDFromToken(s.token); err == nil {
			s.userID = id
		}
	}

	return s, nil
}

// Login installs a new session and persists it. userId is derived from the
// token claims; a token that cannot be decoded leaves userId absent.
func (s *Store) Login(ctx context.Context, username, token string) error {
	userID, err := UserIDFromToken(token)
	if err != nil {
		log.Debug().Err(err).Msg("could not derive user id from token")
		userID = ""
	}

	s.mu.Lock()
	s.token = token
	s.username = username
	s.userID = userID
	s.mu.Unlock()

	if err := s.storage.Set(ctx, KeyToken, token); err != nil {
		return fmt.Errorf("failed to persist token: %w", err)
	}
	if err := s.storage.Set(ctx, KeyUsername, username); err != nil {
		return fmt.Errorf("failed to persist username: %w", err)
	}
	if userID != "" {
		err = s.storage.Set(ctx, KeyUserID, userID)
	} else {
		err = s.storage.Delete(ctx, KeyUserID)
	}
	if err != nil {
		return fmt.Errorf("failed to persist user id: %w", err)
	}

	log.Info().Str("username", username).Str("userId", userID).Msg("session started")
	return nil
}

// Logout clears the session in memory and in storage, including the
// remember-me preferences. Every key is attempted even if some fail.
func (s *Store) Logout(ctx context.Context) error {
	s.mu.Lock()
	s.token = ""
	s.username = ""
	s.userID = ""
	s.mu.Unlock()

	var errs []error
	for _, key := range []string{KeyToken, KeyUsername, KeyUserID, KeyRememberMe, KeyRememberedEmail} {
		if err := s.storage.Delete(ctx, key); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}

	log.Info().Msg("session cleared")
	return nil
}

// Token returns the bearer token, or "" when signed out.
// It satisfies the token provider interfaces of the api and cart packages.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Store) Username() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.username
}

func (s *Store) UserID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.userID
}

// Identity returns all session fields at once
func (s *Store) Identity() Identity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Identity{Token: s.token, Username: s.username, UserID: s.userID}
}

// Authenticated reports whether a token is present
func (s *Store) Authenticated() bool {
	return s.Token() != ""
}

// Remember stores email as the address to prefill at the next login
func (s *Store) Remember(ctx context.Context, email string) error {
	if err := s.storage.Set(ctx, KeyRememberMe, "true"); err != nil {
		return fmt.Errorf("failed to persist remember-me: %w", err)
	}
	if err := s.storage.Set(ctx, KeyRememberedEmail, email); err != nil {
		return fmt.Errorf("failed to persist remembered email: %w", err)
	}
	return nil
}

// Forget removes the remember-me preference
func (s *Store) Forget(ctx context.Context) error {
	return errors.Join(
		s.storage.Delete(ctx, KeyRememberMe),
		s.storage.Delete(ctx, KeyRememberedEmail),
	)
}

// RememberedEmail returns the remembered address, if remember-me is on
func (s *Store) RememberedEmail(ctx context.Context) (string, bool) {
	on, _, err := s.storage.Get(ctx, KeyRememberMe)
	if err != nil || on != "true" {
		return "", false
	}
	email, ok, err := s.storage.Get(ctx, KeyRememberedEmail)
	if err != nil || !ok {
		return "", false
	}
	return email, true
}
