package devicelink

import (
	"errors"
	"time"

	"github.com/ratmirov/go_coach_backend/internal/domain"
)

var (
	ErrLinkExists       = errors.New("device link already exists")
	ErrLinkNotFound     = errors.New("device link not found")
	ErrLinkRevoked      = errors.New("device link revoked")
	ErrSecretExpired    = errors.New("pairing secret expired")
	ErrInvalidSecret    = errors.New("invalid pairing secret")
	ErrAlreadyActivated = errors.New("device link already activated")
)

// PairingTTL is how long the pairing secret stays valid after creation.
const PairingTTL = 10 * time.Minute

type LinkID string

// Link pairs an athlete with an external device data source. A link is
// created pending with a short-lived secret, activated by presenting the
// secret, and can be revoked at any time. Sync batches are only accepted
// for athletes with an activated, unrevoked link.
type Link struct {
	domain.Aggregate `diff:"-"`
	LinkID           LinkID     `diff:"-"`
	AthleteID        string     `diff:"-"`
	Provider         string     `diff:"provider"`
	Secret           string     `diff:"-"`
	CreatedAt        time.Time  `diff:"-"`
	ValidUntil       time.Time  `diff:"valid_until"`
	ActivatedAt      *time.Time `diff:"activated_at"`
	RevokedAt        *time.Time `diff:"revoked_at"`
}

func New(linkID LinkID, athleteID, provider, secret string) *Link {
	now := time.Now().UTC()
	return &Link{
		LinkID:     linkID,
		AthleteID:  athleteID,
		Provider:   provider,
		Secret:     secret,
		CreatedAt:  now,
		ValidUntil: now.Add(PairingTTL),
	}
}

// Activate completes pairing by presenting the secret the device showed.
func (l *Link) Activate(secret string) error {
	if l.RevokedAt != nil {
		return ErrLinkRevoked
	}
	if l.ActivatedAt != nil {
		return ErrAlreadyActivated
	}
	if time.Now().After(l.ValidUntil) {
		return ErrSecretExpired
	}
	if l.Secret != secret {
		return ErrInvalidSecret
	}

	now := time.Now().UTC()
	l.ActivatedAt = &now
	return nil
}

func (l *Link) Revoke() error {
	if l.RevokedAt != nil {
		return ErrLinkRevoked
	}
	now := time.Now().UTC()
	l.RevokedAt = &now
	return nil
}

// IsActive reports whether the link may feed sync batches.
func (l *Link) IsActive() bool {
	return l.ActivatedAt != nil && l.RevokedAt == nil
}
