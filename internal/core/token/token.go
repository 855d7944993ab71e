// Package token signs and verifies the class-tagged JWTs backing the auth
// flow. Two classes exist: short-lived access tokens that authorize API
// calls, and longer-lived refresh tokens used solely to mint new access
// tokens. Each class is bound to its own secret and TTL, and verification
// rejects a token presented under the wrong class even when its signature
// and expiry are valid.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/contactdesk/contact-api/internal/core/domain"
)

// Class is the access/refresh tag embedded in every signed payload.
type Class string

const (
	ClassAccess  Class = "access"
	ClassRefresh Class = "refresh"
)

// ErrClassMismatch reports a structurally valid token whose embedded type
// does not match the class it was presented as.
var ErrClassMismatch = errors.New("token class mismatch")

// Claims is the payload baked into every signed token.
type Claims struct {
	UserID   string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Type     string `json:"type"`
	jwt.RegisteredClaims
}

// ClassConfig binds one token class to its signing secret and lifetime.
type ClassConfig struct {
	Secret string
	TTL    time.Duration
}

// Issuer signs and verifies HS256 tokens. Safe for concurrent use.
type Issuer struct {
	access  ClassConfig
	refresh ClassConfig
}

func NewIssuer(access, refresh ClassConfig) (*Issuer, error) {
	if access.Secret == "" || refresh.Secret == "" {
		return nil, errors.New("token: secret must not be empty")
	}
	if access.TTL <= 0 || refresh.TTL <= 0 {
		return nil, errors.New("token: TTL must be positive")
	}
	return &Issuer{access: access, refresh: refresh}, nil
}

// Issue signs a fresh token of the given class for user, embedding the
// class tag so Verify can reject cross-class replay.
func (i *Issuer) Issue(user *domain.User, class Class) (string, error) {
	cfg, err := i.classConfig(class)
	if err != nil {
		return "", err
	}

	now := time.Now()
	claims := Claims{
		UserID:   user.ID,
		Username: user.Username,
		Name:     user.Name,
		Type:     string(class),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(cfg.TTL)),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(cfg.Secret))
}

// Verify checks signature and expiry against the secret bound to class and
// returns the recovered claims. Malformed tokens, bad signatures, expired
// tokens, and tokens carrying a different class tag are all rejected.
func (i *Issuer) Verify(signed string, class Class) (*Claims, error) {
	cfg, err := i.classConfig(class)
	if err != nil {
		return nil, err
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(signed, claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(cfg.Secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse %s token: %w", class, err)
	}
	if !parsed.Valid {
		return nil, jwt.ErrTokenUnverifiable
	}
	if claims.Type != string(class) {
		return nil, ErrClassMismatch
	}
	return claims, nil
}

func (i *Issuer) classConfig(class Class) (ClassConfig, error) {
	switch class {
	case ClassAccess:
		return i.access, nil
	case ClassRefresh:
		return i.refresh, nil
	default:
		return ClassConfig{}, fmt.Errorf("unknown token class %q", class)
	}
}
