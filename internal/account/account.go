// Package account implements sign-in and sign-up on top of the API client
// and the session store.
package account

import (
	"context"
	"errors"
	"net/http"
	"regexp"
	"strings"

	"github.com/erauner12/storefront/internal/api"
	"github.com/rs/zerolog/log"
)

// MinPasswordLength is the shortest password accepted at registration
const MinPasswordLength = 6

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Remote is the subset of the API client used for authentication
type Remote interface {
	Login(ctx context.Context, email, password string) (string, error)
	Register(ctx context.Context, in api.RegisterRequest) (string, error)
}

// Sessions is the subset of the session store the service writes to
type Sessions interface {
	Login(ctx context.Context, username, token string) error
	Remember(ctx context.Context, email string) error
	Forget(ctx context.Context) error
}

// LoginInput is what the user typed into the sign-in form
type LoginInput struct {
	Email      string
	Password   string
	RememberMe bool
}

// RegisterInput is what the user typed into the sign-up form
type RegisterInput struct {
	FirstName       string
	LastName        string
	Email           string
	Password        string
	ConfirmPassword string
}

// Service runs the account flows
type Service struct {
	remote   Remote
	sessions Sessions
}

func NewService(remote Remote, sessions Sessions) *Service {
	return &Service{remote: remote, sessions: sessions}
}

// NormalizeEmail trims and lower-cases an address
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidEmail reports whether email looks like an address
func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// Login validates the form, exchanges the credentials for a token and
// starts a session. The remember-me preference is stored or cleared to
// match in.RememberMe.
func (s *Service) Login(ctx context.Context, in LoginInput) error {
	email := NormalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return fail(MsgMissingCredentials, nil)
	}
	if !ValidEmail(email) {
		return fail(MsgInvalidEmail, nil)
	}

	token, err := s.remote.Login(ctx, email, in.Password)
	if err != nil {
		return loginError(err)
	}

	if err := s.sessions.Login(ctx, email, token); err != nil {
		return err
	}

	if in.RememberMe {
		err = s.sessions.Remember(ctx, email)
	} else {
		err = s.sessions.Forget(ctx)
	}
	if err != nil {
		log.Warn().Err(err).Msg("failed to update remember-me preference")
	}
	return nil
}

// Register validates the form, creates the account and signs the new user in
func (s *Service) Register(ctx context.Context, in RegisterInput) error {
	req := api.RegisterRequest{
		FirstName: strings.TrimSpace(in.FirstName),
		LastName:  strings.TrimSpace(in.LastName),
		Email:     NormalizeEmail(in.Email),
		Password:  in.Password,
	}

	if req.FirstName == "" || req.LastName == "" || req.Email == "" || req.Password == "" {
		return fail(MsgMissingFields, nil)
	}
	if len(req.Password) < MinPasswordLength {
		return fail(MsgPasswordTooShort, nil)
	}
	if req.Password != in.ConfirmPassword {
		return fail(MsgPasswordMismatch, nil)
	}

	token, err := s.remote.Register(ctx, req)
	if err != nil {
		return registerError(err)
	}

	return s.sessions.Login(ctx, req.Email, token)
}

func loginError(err error) *Error {
	if errors.Is(err, api.ErrMalformedResponse) {
		return fail(MsgInvalidResponse, err)
	}

	var statusErr *api.StatusError
	if !errors.As(err, &statusErr) {
		log.Error().Err(err).Msg("login request failed")
		return fail(MsgNetworkError, err)
	}

	switch statusErr.Status {
	case http.StatusUnauthorized:
		return fail(MsgInvalidLogin, err)
	case http.StatusNotFound:
		return fail(MsgUserNotFound, err)
	case http.StatusBadRequest:
		return fail(orDefault(statusErr.Message, MsgBadLoginRequest), err)
	case http.StatusInternalServerError:
		return fail(MsgServerError, err)
	default:
		return fail(orDefault(statusErr.Message, MsgLoginFailed), err)
	}
}

func registerError(err error) *Error {
	if errors.Is(err, api.ErrMalformedResponse) {
		return fail(MsgInvalidResponse, err)
	}

	var statusErr *api.StatusError
	if !errors.As(err, &statusErr) {
		log.Error().Err(err).Msg("register request failed")
		return fail(MsgNetworkError, err)
	}

	switch statusErr.Status {
	case http.StatusBadRequest:
		if strings.Contains(strings.ToLower(statusErr.Message), "already exists") {
			return fail(MsgEmailTaken, err)
		}
		return fail(orDefault(statusErr.Message, MsgBadRegistration), err)
	case http.StatusInternalServerError:
		return fail(MsgServerError, err)
	default:
		return fail(orDefault(statusErr.Message, MsgRegistrationFailed), err)
	}
}

func orDefault(message, fallback string) string {
	if message != "" {
		return message
	}
	return fallback
}
