package devicelink

import (
	"errors"
	"testing"
	"time"
)

func TestActivate(t *testing.T) {
	l := New("link-1", "athlete-1", "garmin", "secret-1")

	if l.IsActive() {
		t.Error("IsActive() = true before activation")
	}
	if err := l.Activate("secret-1"); err != nil {
		t.Fatalf("Activate() error = %v", err)
	}
	if !l.IsActive() {
		t.Error("IsActive() = false after activation")
	}
}

func TestActivateWrongSecret(t *testing.T) {
	l := New("link-1", "athlete-1", "garmin", "secret-1")

	if err := l.Activate("nope"); !errors.Is(err, ErrInvalidSecret) {
		t.Errorf("Activate() = %v, want ErrInvalidSecret", err)
	}
	if l.IsActive() {
		t.Error("link active after failed activation")
	}
}

func TestActivateExpired(t *testing.T) {
	l := New("link-1", "athlete-1", "garmin", "secret-1")
	l.ValidUntil = time.Now().Add(-time.Minute)

	if err := l.Activate("secret-1"); !errors.Is(err, ErrSecretExpired) {
		t.Errorf("Activate() = %v, want ErrSecretExpired", err)
	}
}

func TestActivateTwice(t *testing.T) {
	l := New("link-1", "athlete-1", "garmin", "secret-1")

	if err := l.Activate("secret-1"); err != nil {
		t.Fatalf("Activate() error = %v", err)
	}
	if err := l.Activate("secret-1"); !errors.Is(err, ErrAlreadyActivated) {
		t.Errorf("second Activate() = %v, want ErrAlreadyActivated", err)
	}
}

func TestRevoke(t *testing.T) {
	l := New("link-1", "athlete-1", "garmin", "secret-1")
	if err := l.Activate("secret-1"); err != nil {
		t.Fatalf("Activate() error = %v", err)
	}

	if err := l.Revoke(); err != nil {
		t.Fatalf("Revoke() error = %v", err)
	}
	if l.IsActive() {
		t.Error("IsActive() = true after revoke")
	}
	if err := l.Revoke(); !errors.Is(err, ErrLinkRevoked) {
		t.Errorf("second Revoke() = %v, want ErrLinkRevoked", err)
	}
}

func TestActivateRevoked(t *testing.T) {
	l := New("link-1", "athlete-1", "garmin", "secret-1")
	if err := l.Revoke(); err != nil {
		t.Fatalf("Revoke() error = %v", err)
	}

	if err := l.Activate("secret-1"); !errors.Is(err, ErrLinkRevoked) {
		t.Errorf("Activate() after revoke = %v, want ErrLinkRevoked", err)
	}
}
