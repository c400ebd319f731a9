// Package jwtx issues and validates the paired access/refresh JWTs used by
// the account service. Both tokens carry the same claims but are signed with
// distinct HMAC secrets so that leaking one secret does not compromise the
// other.
package jwtx

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Default token lifetimes. Access tokens are short-lived; once issued they
// cannot be revoked before natural expiry (the only revocation list is the
// refresh-token store), so keep this small.
const (
	DefaultAccessTokenTTL  = 30 * time.Minute
	DefaultRefreshTokenTTL = 30 * 24 * time.Hour
)

// Claims are the signed claims shared by access and refresh tokens.
type Claims struct {
	jwt.RegisteredClaims

	UserID string `json:"userId"`
	Email  string `json:"email"`
}

// TokenPair is the access/refresh pair handed to the client. The refresh
// token is additionally persisted server-side for revocation.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Issuer signs and validates token pairs.
type Issuer struct {
	AccessSecret  []byte
	RefreshSecret []byte
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
}

// NewIssuer builds an Issuer with the default lifetimes.
func NewIssuer(accessSecret, refreshSecret string) *Issuer {
	return &Issuer{
		AccessSecret:  []byte(accessSecret),
		RefreshSecret: []byte(refreshSecret),
		AccessTTL:     DefaultAccessTokenTTL,
		RefreshTTL:    DefaultRefreshTokenTTL,
	}
}

// Issue signs a fresh access/refresh pair for the given identity.
func (i *Issuer) Issue(userID, email string) (TokenPair, error) {
	now := time.Now()

	access, err := i.sign(userID, email, i.AccessSecret, i.AccessTTL, now)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, err := i.sign(userID, email, i.RefreshSecret, i.RefreshTTL, now)
	if err != nil {
		return TokenPair{}, err
	}

	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// ValidateAccess verifies signature and expiry against the access secret.
// It returns nil on any failure; the caller maps nil to an unauthorized
// error.
func (i *Issuer) ValidateAccess(token string) *Claims {
	return validate(token, i.AccessSecret)
}

// ValidateRefresh is ValidateAccess against the refresh secret.
func (i *Issuer) ValidateRefresh(token string) *Claims {
	return validate(token, i.RefreshSecret)
}

func (i *Issuer) sign(userID, email string, secret []byte, ttl time.Duration, now time.Time) (string, error) {
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID: userID,
		Email:  email,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

func validate(token string, secret []byte) *Claims {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil
	}
	return claims
}
