package account

import (
	"errors"
	"fmt"
	"time"

	"github.com/ratmirov/go_coach_backend/internal/domain"
)

var (
	ErrAccountNotFound     = errors.New("account not found")
	ErrAccountExists       = errors.New("account already exists")
	ErrEmailDuplicate      = fmt.Errorf("account already exists: email is not unique")
	ErrAuthorizationExists = errors.New("authorization already exists")
	ErrInvalidCredentials  = errors.New("email or password is invalid")
	ErrUnauthorized        = errors.New("unauthorized")
)

const (
	EventCreated = "account.created"
	EventLogin   = "account.login"
	EventLogout  = "account.logout"
)

// Authorizer hashes passwords and issues authorizations for verified
// credentials. The concrete implementation lives in the application layer.
type Authorizer interface {
	Hash(password string) string
	Authorize(a *Account, password string, dev Device) (*Authorization, error)
}

// Device captures where a login came from, parsed from the user agent.
type Device struct {
	Browser   string `diff:"browser"`
	OS        string `diff:"os"`
	IPAddress string `diff:"ip_address"`
	Model     string `diff:"model"`
}

// Authorization is one refresh-token session bound to a device.
type Authorization struct {
	ID         string     `diff:"-"`
	Secret     string     `diff:"-"`
	CreatedAt  time.Time  `diff:"-"`
	ValidUntil time.Time  `diff:"valid_until"`
	LogoutAt   *time.Time `diff:"logout_at"`
	Device     Device     `diff:"-"`
}

func (a *Authorization) IsActive() bool {
	return time.Now().Before(a.ValidUntil) && a.LogoutAt == nil
}

type Account struct {
	domain.Aggregate `diff:"-"`
	AccountID        string           `diff:"-"`
	Email            string           `diff:"email"`
	PasswordHash     string           `diff:"password_hash"`
	CreatedAt        time.Time        `diff:"-"`
	UpdatedAt        time.Time        `diff:"updated_at"`
	Authorizations   []*Authorization `diff:"-"`
}

func New(accountID, email, password string, hasher Authorizer) *Account {
	now := time.Now().UTC()
	a := &Account{
		AccountID:    accountID,
		Email:        email,
		PasswordHash: hasher.Hash(password),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	a.PushEvent(CreatedEvent{
		At:        a.CreatedAt,
		AccountID: a.AccountID,
		Email:     a.Email,
	})
	return a
}

func (a *Account) AuthorizationByID(id string) *Authorization {
	for _, auth := range a.Authorizations {
		if auth.ID == id {
			return auth
		}
	}
	return nil
}

func (a *Account) AuthorizationBySecret(secret string) *Authorization {
	for _, auth := range a.Authorizations {
		if auth.Secret == secret {
			return auth
		}
	}
	return nil
}

func (a *Account) Authorize(authorizer Authorizer, password string, dev Device) (*Authorization, error) {
	auth, err := authorizer.Authorize(a, password, dev)
	if err != nil {
		return nil, err
	}

	a.Authorizations = append(a.Authorizations, auth)

	a.PushEvent(LoginEvent{
		At:        time.Now().UTC(),
		AccountID: a.AccountID,
		AuthID:    auth.ID,
		Device:    auth.Device,
	})

	return auth, nil
}

func (a *Account) Logout(authID string) error {
	auth := a.AuthorizationByID(authID)
	if auth == nil {
		return fmt.Errorf("%w: provided identifier not found", ErrUnauthorized)
	}
	if auth.LogoutAt != nil {
		return fmt.Errorf("%w: authorization already closed", ErrUnauthorized)
	}

	now := time.Now().UTC()
	auth.LogoutAt = &now

	a.PushEvent(LogoutEvent{
		At:        now,
		AccountID: a.AccountID,
		AuthID:    auth.ID,
	})

	return nil
}

type CreatedEvent struct {
	At        time.Time
	AccountID string
	Email     string
}

func (e CreatedEvent) Type() string           { return EventCreated }
func (e CreatedEvent) PublishedAt() time.Time { return e.At }

type LoginEvent struct {
	At        time.Time
	AccountID string
	AuthID    string
	Device    Device
}

func (e LoginEvent) Type() string           { return EventLogin }
func (e LoginEvent) PublishedAt() time.Time { return e.At }

type LogoutEvent struct {
	At        time.Time
	AccountID string
	AuthID    string
}

func (e LogoutEvent) Type() string           { return EventLogout }
func (e LogoutEvent) PublishedAt() time.Time { return e.At }
