package app

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"healthlog/internal/domain"
)

var (
	// ErrInvalidCredentials indicates that the provided password or SSO identity was rejected.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrSessionNotFound indicates that the requested session does not exist.
	ErrSessionNotFound = errors.New("session not found")
	// ErrSessionExpired indicates that the session has expired.
	ErrSessionExpired = errors.New("session expired")
)

// DefaultSessionTTL is used when AuthConfig.SessionTTL is zero.
const DefaultSessionTTL = 24 * time.Hour

// AuthConfig describes how the owner may sign in. With neither a password
// hash nor an owner email, authentication is disabled.
type AuthConfig struct {
	PasswordHash string
	OwnerEmail   string
	SessionTTL   time.Duration
}

// AuthService gates the API behind the owner's password or SSO identity.
type AuthService struct {
	cfg      AuthConfig
	sessions domain.SessionRepository
	now      func() time.Time
}

// NewAuthService creates a new authentication service.
func NewAuthService(cfg AuthConfig, sessions domain.SessionRepository) *AuthService {
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = DefaultSessionTTL
	}
	return &AuthService{cfg: cfg, sessions: sessions, now: time.Now}
}

// Enabled reports whether any sign-in method is configured.
func (s *AuthService) Enabled() bool {
	return s.cfg.PasswordHash != "" || s.cfg.OwnerEmail != ""
}

// Login checks the owner password and creates a session.
func (s *AuthService) Login(ctx context.Context, password, userAgent string) (string, error) {
	if s.cfg.PasswordHash == "" {
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.cfg.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}
	return s.createSession(ctx, userAgent)
}

// LoginWithEmail creates a session for an identity already verified by the
// SSO provider. Only the configured owner email is accepted.
func (s *AuthService) LoginWithEmail(ctx context.Context, email, userAgent string) (string, error) {
	if s.cfg.OwnerEmail == "" || !ConstantTimeCompare(strings.ToLower(email), strings.ToLower(s.cfg.OwnerEmail)) {
		return "", ErrInvalidCredentials
	}
	return s.createSession(ctx, userAgent)
}

// Logout invalidates a session.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	return s.sessions.Delete(ctx, token)
}

// ValidateSession checks that a session token is valid and was issued to the
// same user agent.
func (s *AuthService) ValidateSession(ctx context.Context, token, userAgent string) error {
	session, err := s.sessions.GetByToken(ctx, token)
	if err != nil {
		return err
	}
	if session == nil {
		return ErrSessionNotFound
	}

	if s.now().After(session.ExpiresAt) {
		_ = s.sessions.Delete(ctx, token)
		return ErrSessionExpired
	}

	if session.UserAgent != userAgent {
		_ = s.sessions.Delete(ctx, token)
		return ErrSessionExpired
	}
	return nil
}

// PruneSessions removes expired sessions.
func (s *AuthService) PruneSessions(ctx context.Context) error {
	return s.sessions.DeleteExpired(ctx)
}

// SessionTTL is how long new sessions stay valid.
func (s *AuthService) SessionTTL() time.Duration {
	return s.cfg.SessionTTL
}

func (s *AuthService) createSession(ctx context.Context, userAgent string) (string, error) {
	token, err := generateToken()
	if err != nil {
		return "", err
	}
	now := s.now()
	err = s.sessions.Create(ctx, domain.Session{
		Token:     token,
		UserAgent: userAgent,
		ExpiresAt: now.Add(s.cfg.SessionTTL),
		CreatedAt: now,
	})
	if err != nil {
		return "", err
	}
	return token, nil
}

// HashPassword returns the bcrypt hash to put in OWNER_PASSWORD_HASH.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", &domain.ValidationError{Field: "password", Msg: "is required"}
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}

// ConstantTimeCompare performs a constant-time comparison of two strings.
func ConstantTimeCompare(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
