// ABOUTME: Tests for the operator session store
// ABOUTME: Covers restore expiry handling, login decoding and logout idempotence

package session

import (
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var fixedNow = time.Unix(1_700_000_000, 0)

func clock() time.Time { return fixedNow }

func makeToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return tok
}

func TestRestore_NoToken(t *testing.T) {
	s := New(NewMemoryStorage(), WithClock(clock))

	if err := s.Restore(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.IsLoggedIn() {
		t.Error("expected logged out with empty storage")
	}
}

func TestRestore_ValidToken(t *testing.T) {
	storage := NewMemoryStorage()
	storage.Values[KeyToken] = "tok"
	storage.Values[KeyExpire] = strconv.FormatInt(fixedNow.Unix()+3600, 10)
	storage.Values[KeySubject] = "google-123"

	s := New(storage, WithClock(clock))
	if err := s.Restore(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !s.IsLoggedIn() {
		t.Fatal("expected logged in with future expiry")
	}
	if s.SubjectID() != "google-123" {
		t.Errorf("expected subject google-123, got %s", s.SubjectID())
	}
	if s.Token() != "tok" {
		t.Errorf("expected token tok, got %s", s.Token())
	}
	if !s.ExpiresAt().Equal(fixedNow.Add(time.Hour)) {
		t.Errorf("unexpected expiry %s", s.ExpiresAt())
	}
}

func TestRestore_ExpiredClearsStorage(t *testing.T) {
	tests := []struct {
		name   string
		expire int64
	}{
		{"past", fixedNow.Unix() - 1},
		{"exactly now", fixedNow.Unix()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storage := NewMemoryStorage()
			storage.Values[KeyToken] = "tok"
			storage.Values[KeyExpire] = strconv.FormatInt(tt.expire, 10)
			storage.Values[KeySubject] = "google-123"

			s := New(storage, WithClock(clock))
			if err := s.Restore(); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if s.IsLoggedIn() {
				t.Error("expected logged out for expired session")
			}
			if len(storage.Values) != 0 {
				t.Errorf("expected all persisted fields cleared, got %v", storage.Values)
			}
			if s.Token() != "" {
				t.Error("expected empty token when logged out")
			}
		})
	}
}

func TestRestore_PartialState(t *testing.T) {
	storage := NewMemoryStorage()
	storage.Values[KeyToken] = "tok"

	s := New(storage, WithClock(clock))
	if err := s.Restore(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.IsLoggedIn() {
		t.Error("expected logged out when expiry is missing")
	}
}

func TestRestore_UnparsableExpiry(t *testing.T) {
	storage := NewMemoryStorage()
	storage.Values[KeyToken] = "tok"
	storage.Values[KeyExpire] = "soon"

	s := New(storage, WithClock(clock))
	if err := s.Restore(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.IsLoggedIn() {
		t.Error("expected logged out with unparsable expiry")
	}
	if _, ok := storage.Values[KeyToken]; ok {
		t.Error("expected token cleared")
	}
}

func TestLogin_Success(t *testing.T) {
	storage := NewMemoryStorage()
	s := New(storage, WithClock(clock))

	exp := fixedNow.Unix() + 600
	tok := makeToken(t, jwt.MapClaims{"exp": exp, "googleId": "google-42"})

	if err := s.Login(tok); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !s.IsLoggedIn() {
		t.Fatal("expected logged in after login")
	}
	if s.SubjectID() != "google-42" {
		t.Errorf("expected subject google-42, got %s", s.SubjectID())
	}
	if storage.Values[KeyToken] != tok {
		t.Error("expected token persisted")
	}
	if storage.Values[KeyExpire] != strconv.FormatInt(exp, 10) {
		t.Errorf("expected expiry persisted as seconds, got %s", storage.Values[KeyExpire])
	}
	if storage.Values[KeySubject] != "google-42" {
		t.Error("expected subject persisted")
	}

	// A fresh store over the same storage restores the session
	restored := New(storage, WithClock(clock))
	if err := restored.Restore(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !restored.IsLoggedIn() || restored.SubjectID() != "google-42" {
		t.Error("expected restored session to be logged in as google-42")
	}
}

func TestLogin_FallsBackToSubClaim(t *testing.T) {
	s := New(NewMemoryStorage(), WithClock(clock))
	tok := makeToken(t, jwt.MapClaims{"exp": fixedNow.Unix() + 600, "sub": "subject-7"})

	if err := s.Login(tok); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.SubjectID() != "subject-7" {
		t.Errorf("expected sub claim as subject, got %s", s.SubjectID())
	}
}

func TestLogin_MalformedTokenIsNoop(t *testing.T) {
	for _, tok := range []string{"", "not-a-jwt", "a.b.c", "eyJhbGciOiJIUzI1NiJ9.!!!.sig"} {
		t.Run(tok, func(t *testing.T) {
			storage := NewMemoryStorage()
			s := New(storage, WithClock(clock))

			err := s.Login(tok)
			if !errors.Is(err, ErrMalformedToken) {
				t.Errorf("expected ErrMalformedToken, got %v", err)
			}
			if s.IsLoggedIn() {
				t.Error("expected to stay logged out")
			}
			if storage.Writes != 0 {
				t.Errorf("expected no storage writes, got %d", storage.Writes)
			}
		})
	}
}

func TestLogin_ExpiredTokenIsNoop(t *testing.T) {
	storage := NewMemoryStorage()
	s := New(storage, WithClock(clock))
	tok := makeToken(t, jwt.MapClaims{"exp": fixedNow.Unix() - 10, "googleId": "g"})

	if err := s.Login(tok); !errors.Is(err, ErrExpiredToken) {
		t.Errorf("expected ErrExpiredToken, got %v", err)
	}
	if s.IsLoggedIn() || storage.Writes != 0 {
		t.Error("expected expired token to leave state and storage untouched")
	}
}

func TestLogout_KeepsSubject(t *testing.T) {
	storage := NewMemoryStorage()
	s := New(storage, WithClock(clock))
	if err := s.Login(makeToken(t, jwt.MapClaims{"exp": fixedNow.Unix() + 60, "googleId": "g-1"})); err != nil {
		t.Fatal(err)
	}

	if err := s.Logout(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.IsLoggedIn() {
		t.Error("expected logged out")
	}
	if _, ok := storage.Values[KeyToken]; ok {
		t.Error("expected token removed")
	}
	if _, ok := storage.Values[KeyExpire]; ok {
		t.Error("expected expiry removed")
	}
	if s.SubjectID() != "g-1" {
		t.Errorf("expected subject retained for display, got %q", s.SubjectID())
	}
}

func TestLogout_Idempotent(t *testing.T) {
	s := New(NewMemoryStorage(), WithClock(clock))

	for i := 0; i < 2; i++ {
		if err := s.Logout(); err != nil {
			t.Fatalf("logout %d: unexpected error: %v", i, err)
		}
	}
	if s.IsLoggedIn() {
		t.Error("expected logged out")
	}
}

func TestQueriesDoNotTouchStorage(t *testing.T) {
	storage := NewMemoryStorage()
	s := New(storage, WithClock(clock))
	if err := s.Login(makeToken(t, jwt.MapClaims{"exp": fixedNow.Unix() + 60, "googleId": "g"})); err != nil {
		t.Fatal(err)
	}
	writes := storage.Writes

	// Wipe storage underneath the store; queries still answer from memory
	storage.Values = map[string]string{}
	_ = s.IsLoggedIn()
	_ = s.SubjectID()
	_ = s.Token()

	if !s.IsLoggedIn() || s.SubjectID() != "g" {
		t.Error("expected queries to answer from in-memory state")
	}
	if storage.Writes != writes {
		t.Error("expected queries not to write storage")
	}
}
