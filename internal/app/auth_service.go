package app

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"atmosaether/internal/identity"
	"atmosaether/internal/model"
	"atmosaether/internal/repository"
)

var (
	ErrInvalidInput           = errors.New("invalid input")
	ErrUnauthenticated        = errors.New("no session token presented")
	ErrInvalidSession         = errors.New("session token not found")
	ErrSessionExpired         = errors.New("session expired")
	ErrUserNotFound           = errors.New("session user not found")
	ErrInvalidExternalSession = errors.New("invalid external session id")
)

// SessionTTL is fixed: the cookie max-age and the stored expiry must agree.
const SessionTTL = 7 * 24 * time.Hour

// SessionExchanger verifies an opaque external session id with the identity
// provider.
type SessionExchanger interface {
	Exchange(ctx context.Context, sessionID string) (*identity.Profile, error)
}

type AuthService struct {
	userRepo    *repository.UserRepository
	sessionRepo *repository.SessionRepository
	exchanger   SessionExchanger
}

type AuthResult struct {
	User      *model.User
	Token     string
	ExpiresAt time.Time
}

func NewAuthService(userRepo *repository.UserRepository, sessionRepo *repository.SessionRepository, exchanger SessionExchanger) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		exchanger:   exchanger,
	}
}

// ExchangeSession trades an external session id for a local session. The
// user is upserted by email: a fresh user_id is generated only on first
// contact and never reused afterwards.
func (s *AuthService) ExchangeSession(ctx context.Context, sessionID string) (*AuthResult, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return nil, ErrInvalidInput
	}

	profile, err := s.exchanger.Exchange(ctx, sessionID)
	if err != nil {
		if errors.Is(err, identity.ErrRejected) {
			return nil, ErrInvalidExternalSession
		}
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(profile.Email))
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		user = &model.User{
			UserID:  uuid.NewString(),
			Email:   email,
			Name:    profile.Name,
			Picture: profile.Picture,
		}
		if err := s.userRepo.Create(user); err != nil {
			return nil, err
		}
	} else {
		if err := s.userRepo.UpdateProfile(user.UserID, profile.Name, profile.Picture); err != nil {
			return nil, err
		}
		user.Name = profile.Name
		user.Picture = profile.Picture
	}

	now := time.Now().UTC()
	session := &model.Session{
		SessionToken: profile.SessionToken,
		UserID:       user.UserID,
		CreatedAt:    now,
		ExpiresAt:    now.Add(SessionTTL),
	}
	if err := s.sessionRepo.Create(session); err != nil {
		return nil, err
	}

	return &AuthResult{
		User:      user,
		Token:     profile.SessionToken,
		ExpiresAt: session.ExpiresAt,
	}, nil
}

// ResolveToken validates a session token and returns its user. Stored
// expiries are compared in UTC.
func (s *AuthService) ResolveToken(token string) (*model.User, error) {
	if strings.TrimSpace(token) == "" {
		return nil, ErrUnauthenticated
	}

	session, err := s.sessionRepo.GetByToken(token)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrInvalidSession
	}
	if time.Now().UTC().After(session.ExpiresAt.UTC()) {
		return nil, ErrSessionExpired
	}

	user, err := s.userRepo.GetByUserID(session.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		// Data-integrity anomaly: the session references a user that no
		// longer exists.
		return nil, ErrUserNotFound
	}
	return user, nil
}

// Logout deletes the session row. Callers authenticate first, so an
// already-invalid token never reaches this point.
func (s *AuthService) Logout(token string) error {
	if strings.TrimSpace(token) == "" {
		return ErrUnauthenticated
	}
	return s.sessionRepo.DeleteByToken(token)
}
