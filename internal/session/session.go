// ABOUTME: Operator session store: bearer token, expiry and identity claim
// ABOUTME: Restores from durable storage at startup and writes through on login/logout

package session

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Persisted keys
const (
	KeyToken   = "authToken"
	KeyExpire  = "authExpire"
	KeySubject = "googleId"
)

var (
	// ErrMalformedToken is returned by Login when the token cannot be decoded.
	ErrMalformedToken = errors.New("malformed token")
	// ErrExpiredToken is returned by Login when the token's exp is not in the future.
	ErrExpiredToken = errors.New("token already expired")
)

// Store holds the operator session. It is not safe for concurrent mutation;
// the console mutates it only from its event loop.
type Store struct {
	storage Storage
	now     func() time.Time

	token     string
	expiresAt int64
	subjectID string
	loggedIn  bool
}

// Option configures a Store
type Option func(*Store)

// WithClock overrides the time source used for expiry checks
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New creates a logged-out store over the given storage. Call Restore to
// pick up a persisted session.
func New(storage Storage, opts ...Option) *Store {
	s := &Store{storage: storage, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Restore reads the persisted session. A missing or partial record leaves
// the store logged out; an expired one is cleared from storage.
func (s *Store) Restore() error {
	s.token, s.expiresAt, s.loggedIn = "", 0, false

	subject, _, err := s.storage.Get(KeySubject)
	if err != nil {
		return fmt.Errorf("failed to read session: %w", err)
	}
	s.subjectID = subject

	token, hasToken, err := s.storage.Get(KeyToken)
	if err != nil {
		return fmt.Errorf("failed to read session: %w", err)
	}
	expire, hasExpire, err := s.storage.Get(KeyExpire)
	if err != nil {
		return fmt.Errorf("failed to read session: %w", err)
	}
	if !hasToken || token == "" || !hasExpire {
		return nil
	}

	expiresAt, err := strconv.ParseInt(expire, 10, 64)
	if err != nil || s.now().Unix() >= expiresAt {
		return s.clearAll()
	}

	s.token = token
	s.expiresAt = expiresAt
	s.loggedIn = true
	return nil
}

// Login decodes the token without verifying its signature, persists it and
// marks the session logged in. A token that does not decode, or whose exp is
// already past, leaves state and storage untouched.
func (s *Store) Login(token string) error {
	expiresAt, subject, err := decodeToken(token)
	if err != nil {
		return err
	}
	if s.now().Unix() >= expiresAt {
		return ErrExpiredToken
	}

	if err := s.storage.Set(KeyToken, token); err != nil {
		return fmt.Errorf("failed to persist session: %w", err)
	}
	if err := s.storage.Set(KeyExpire, strconv.FormatInt(expiresAt, 10)); err != nil {
		return fmt.Errorf("failed to persist session: %w", err)
	}
	if err := s.storage.Set(KeySubject, subject); err != nil {
		return fmt.Errorf("failed to persist session: %w", err)
	}

	s.token = token
	s.expiresAt = expiresAt
	s.subjectID = subject
	s.loggedIn = true
	return nil
}

// Logout clears the persisted token and expiry. The subject id is kept for
// display. Calling it while logged out is a no-op.
func (s *Store) Logout() error {
	s.token, s.expiresAt, s.loggedIn = "", 0, false

	if err := s.storage.Delete(KeyToken); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	if err := s.storage.Delete(KeyExpire); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

func (s *Store) clearAll() error {
	if err := s.Logout(); err != nil {
		return err
	}
	s.subjectID = ""
	if err := s.storage.Delete(KeySubject); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

// IsLoggedIn reports the in-memory session state
func (s *Store) IsLoggedIn() bool {
	return s.loggedIn
}

// SubjectID returns the identity-provider subject of the operator
func (s *Store) SubjectID() string {
	return s.subjectID
}

// Token returns the bearer token while logged in, or "" otherwise
func (s *Store) Token() string {
	if !s.loggedIn {
		return ""
	}
	return s.token
}

// ExpiresAt returns the expiry of the current token (zero time when logged out)
func (s *Store) ExpiresAt() time.Time {
	if !s.loggedIn {
		return time.Time{}
	}
	return time.Unix(s.expiresAt, 0)
}

// decodeToken extracts exp and the operator id from an unverified JWT.
// The signature was already checked by the identity provider that issued it.
func decodeToken(token string) (int64, string, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return 0, "", fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}

	var expiresAt int64
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		expiresAt = exp.Unix()
	}

	subject, _ := claims["googleId"].(string)
	if subject == "" {
		subject, _ = claims.GetSubject()
	}

	return expiresAt, subject, nil
}
