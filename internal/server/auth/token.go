// Package auth implements the token codec and the identity resolver.
//
// One codec serves all three principal kinds: a token carries its subject id
// and the kind it was issued against, and only decodes for that same kind.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/GTBioPortal/BioPortal-Backend/internal/common"
	"github.com/GTBioPortal/BioPortal-Backend/internal/server/models"
)

// TokenTTL is the fixed lifetime of issued tokens.
const TokenTTL = 2 * time.Hour

// Claims carries the registered claims plus the principal kind the token
// was issued against. Canonical schema: sub, iat, exp, kind.
type Claims struct {
	jwt.RegisteredClaims
	Kind string `json:"kind"`
}

// Codec signs and verifies principal tokens with a process-wide HS256 secret.
type Codec struct {
	secret []byte
	ttl    time.Duration
}

// NewCodec builds a Codec around the given signing secret.
func NewCodec(secret []byte) *Codec {
	return &Codec{secret: secret, ttl: TokenTTL}
}

// NewCodecWithTTL builds a Codec with a custom token lifetime.
func NewCodecWithTTL(secret []byte, ttl time.Duration) *Codec {
	return &Codec{secret: secret, ttl: ttl}
}

// Encode issues a signed token for subjectID valid from now until now+TTL.
func (c *Codec) Encode(subjectID string, kind models.PrincipalKind, now time.Time) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subjectID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
		Kind: string(kind),
	})

	return token.SignedString(c.secret)
}

// Decode verifies the token signature and claims and returns the subject id.
// A token with a valid signature whose expiry has passed yields
// common.ErrTokenExpired; every other failure (bad signature, malformed
// string, kind mismatch) yields common.ErrInvalidToken.
func (c *Codec) Decode(tokenString string, kind models.PrincipalKind, now time.Time) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (interface{}, error) { return c.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(func() time.Time { return now }),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", common.ErrTokenExpired
		}
		return "", common.ErrInvalidToken
	}

	if !token.Valid || claims.Kind != string(kind) || claims.Subject == "" {
		return "", common.ErrInvalidToken
	}

	return claims.Subject, nil
}
