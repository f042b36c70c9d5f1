package auth

import (
	"encoding/base64"
	"errors"
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token formats.
const (
	TokenLegacy = "legacy"
	TokenJWT    = "jwt"
)

var ErrInvalidToken = errors.New("invalid token")

// TokenIssuer mints session tokens and checks tokens it minted.
type TokenIssuer interface {
	Issue(u User, issuedAt, expiresAt time.Time) (string, error)
	Verify(token string, now time.Time) error
}

// NewTokenIssuer returns the issuer for format. The jwt format needs a
// non-empty secret.
func NewTokenIssuer(format string, secret []byte) (TokenIssuer, error) {
	switch strings.ToLower(format) {
	case "", TokenLegacy:
		return LegacyIssuer{}, nil
	case TokenJWT:
		if len(secret) == 0 {
			return nil, errors.New("jwt tokens need a secret key")
		}
		return JWTIssuer{Secret: secret}, nil
	default:
		return nil, fmt.Errorf("unknown token format %q", format)
	}
}

// LegacyIssuer produces base64("<unix ms>_<random float>"). The token only
// has to be opaque and distinct; it proves nothing.
type LegacyIssuer struct {
	// Rand returns a float in [0,1). Nil means math/rand/v2.
	Rand func() float64
}

func (l LegacyIssuer) Issue(_ User, issuedAt, _ time.Time) (string, error) {
	r := l.Rand
	if r == nil {
		r = rand.Float64
	}
	raw := strconv.FormatInt(issuedAt.UnixMilli(), 10) + "_" + strconv.FormatFloat(r(), 'f', -1, 64)
	return base64.StdEncoding.EncodeToString([]byte(raw)), nil
}

// Verify accepts any token. Legacy tokens are opaque; only the session
// expiry decides validity.
func (LegacyIssuer) Verify(string, time.Time) error {
	return nil
}

// Claims are the JWT claims of a session token.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"uid"`
	Email  string `json:"email,omitempty"`
}

// JWTIssuer signs HS256 tokens whose exp matches the session expiry.
type JWTIssuer struct {
	Secret []byte
}

func (j JWTIssuer) Issue(u User, issuedAt, expiresAt time.Time) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		UserID: u.ID,
		Email:  u.Email,
	})
	return token.SignedString(j.Secret)
}

func (j JWTIssuer) Verify(token string, now time.Time) error {
	_, err := j.Parse(token, now)
	return err
}

// Parse validates signature and expiry at now and returns the claims.
func (j JWTIssuer) Parse(token string, now time.Time) (*Claims, error) {
	claims := &Claims{}
	t, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return j.Secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if !t.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
