package accountapp

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/google/uuid"
	"github.com/ratmirov/go_coach_backend/internal/domain/account"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrAccessTokenInvalid = errors.New("invalid access token")
)

type Authorizer struct {
	Cost             int
	Secret           string
	AccessTokenTTL   time.Duration
	AuthorizationTTL time.Duration
}

func (a *Authorizer) Authorize(acc *account.Account, password string, dev account.Device) (*account.Authorization, error) {
	hashBytes, err := hex.DecodeString(acc.PasswordHash)
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword(hashBytes, []byte(password)); err != nil {
		return nil, account.ErrInvalidCredentials
	}

	now := time.Now().UTC()
	authorization := &account.Authorization{
		ID:         uuid.New().String(),
		Secret:     a.generateSecret(),
		CreatedAt:  now,
		ValidUntil: now.Add(a.AuthorizationTTL),
		LogoutAt:   nil,
		Device:     dev,
	}
	return authorization, nil
}

func (a *Authorizer) Hash(password string) string {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), a.Cost)
	if err != nil {
		panic(err)
	}
	return hex.EncodeToString(hash)
}

func (a *Authorizer) generateSecret() string {
	var bytes [16]byte
	if n, err := rand.Read(bytes[:]); n != len(bytes) || err != nil {
		panic("failed to generate secret")
	}

	return hex.EncodeToString(bytes[:])
}

func (a *Authorizer) GenerateAccessToken(acc *account.Account, auth *account.Authorization) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"jti": auth.ID,
		"sub": acc.AccountID,
		"exp": now.Add(a.AccessTokenTTL).Unix(),
		"iat": now.Unix(),
	})
	return token.SignedString([]byte(a.Secret))
}

type AccessTokenData struct {
	Authorization string
	AccountID     string
}

func (a *Authorizer) ValidateAccessToken(accessToken string) (*AccessTokenData, error) {
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(accessToken, &claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, ErrAccessTokenInvalid
		}
		return []byte(a.Secret), nil
	})

	if err != nil {
		return nil, ErrAccessTokenInvalid
	}

	jti, ok := claims["jti"].(string)
	if !ok {
		return nil, ErrAccessTokenInvalid
	}
	sub, ok := claims["sub"].(string)
	if !ok {
		return nil, ErrAccessTokenInvalid
	}

	return &AccessTokenData{
		Authorization: jti,
		AccountID:     sub,
	}, nil
}
