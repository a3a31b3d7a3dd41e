package account

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

type stubAuthorizer struct {
	nextID int
}

func (s *stubAuthorizer) Hash(password string) string {
	return "hashed:" + password
}

func (s *stubAuthorizer) Authorize(a *Account, password string, dev Device) (*Authorization, error) {
	if a.PasswordHash != s.Hash(password) {
		return nil, ErrInvalidCredentials
	}
	s.nextID++
	now := time.Now().UTC()
	return &Authorization{
		ID:         fmt.Sprintf("auth-%d", s.nextID),
		Secret:     fmt.Sprintf("secret-%d", s.nextID),
		CreatedAt:  now,
		ValidUntil: now.Add(time.Hour),
		Device:     dev,
	}, nil
}

func TestNewPushesCreatedEvent(t *testing.T) {
	a := New("acc-1", "coach@example.com", "password123", &stubAuthorizer{})

	events := a.PopEvents()
	if len(events) != 1 {
		t.Fatalf("len(events) = %d, want 1", len(events))
	}
	if events[0].Type() != EventCreated {
		t.Errorf("event type = %q, want %q", events[0].Type(), EventCreated)
	}
	if a.PasswordHash != "hashed:password123" {
		t.Errorf("password hash = %q", a.PasswordHash)
	}
}

func TestAuthorize(t *testing.T) {
	authorizer := &stubAuthorizer{}
	a := New("acc-1", "coach@example.com", "password123", authorizer)
	a.PopEvents()

	auth, err := a.Authorize(authorizer, "password123", Device{Browser: "Firefox"})
	if err != nil {
		t.Fatalf("Authorize() error = %v", err)
	}

	if len(a.Authorizations) != 1 {
		t.Fatalf("len(Authorizations) = %d, want 1", len(a.Authorizations))
	}
	if got := a.AuthorizationByID(auth.ID); got != auth {
		t.Error("AuthorizationByID() did not return the new authorization")
	}
	if got := a.AuthorizationBySecret(auth.Secret); got != auth {
		t.Error("AuthorizationBySecret() did not return the new authorization")
	}

	events := a.PopEvents()
	if len(events) != 1 || events[0].Type() != EventLogin {
		t.Errorf("events = %v, want one login event", events)
	}
}

func TestAuthorizeWrongPassword(t *testing.T) {
	authorizer := &stubAuthorizer{}
	a := New("acc-1", "coach@example.com", "password123", authorizer)

	if _, err := a.Authorize(authorizer, "wrong", Device{}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Authorize() = %v, want ErrInvalidCredentials", err)
	}
	if len(a.Authorizations) != 0 {
		t.Error("failed login must not add an authorization")
	}
}

func TestLogout(t *testing.T) {
	authorizer := &stubAuthorizer{}
	a := New("acc-1", "coach@example.com", "password123", authorizer)
	auth, err := a.Authorize(authorizer, "password123", Device{})
	if err != nil {
		t.Fatalf("Authorize() error = %v", err)
	}
	a.PopEvents()

	if err := a.Logout(auth.ID); err != nil {
		t.Fatalf("Logout() error = %v", err)
	}
	if auth.LogoutAt == nil {
		t.Error("LogoutAt not set")
	}
	if auth.IsActive() {
		t.Error("authorization still active after logout")
	}

	events := a.PopEvents()
	if len(events) != 1 || events[0].Type() != EventLogout {
		t.Errorf("events = %v, want one logout event", events)
	}

	if err := a.Logout(auth.ID); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("second Logout() = %v, want ErrUnauthorized", err)
	}
}

func TestLogoutUnknownAuthorization(t *testing.T) {
	a := New("acc-1", "coach@example.com", "password123", &stubAuthorizer{})

	if err := a.Logout("missing"); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("Logout() = %v, want ErrUnauthorized", err)
	}
}
