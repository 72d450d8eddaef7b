package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/memoria/internal/common"
	"github.com/dmitrijs2005/memoria/internal/server/models"
	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenTTL is used when the codec is built with a non-positive ttl.
const DefaultTokenTTL = 30 * time.Minute

// Claims carries the registered claims of a session token. Subject is the
// user's normalised email.
type Claims struct {
	jwt.RegisteredClaims
}

// TokenCodec issues and verifies HS256 session tokens.
type TokenCodec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

type TokenCodecOption func(*TokenCodec)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) TokenCodecOption {
	return func(c *TokenCodec) { c.now = now }
}

func NewTokenCodec(secret []byte, ttl time.Duration, opts ...TokenCodecOption) *TokenCodec {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	c := &TokenCodec{
		secret: append([]byte(nil), secret...),
		ttl:    ttl,
		now:    time.Now,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *TokenCodec) TTL() time.Duration { return c.ttl }

func (c *TokenCodec) Issue(user *models.User) (string, error) {
	if user == nil || user.Email == "" {
		return "", fmt.Errorf("issue token: %w", common.ErrUnauthenticated)
	}

	now := c.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	})

	s, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return s, nil
}

var errMissingSubject = errors.New("missing subject")

// Verify checks signature, algorithm and expiry. Every failure wraps
// common.ErrInvalidToken.
func (c *TokenCodec) Verify(token string) (*Claims, error) {
	claims := &Claims{}

	_, err := jwt.ParseWithClaims(token, claims,
		func(t *jwt.Token) (any, error) { return c.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
		jwt.WithStrictDecoding(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrInvalidToken, err)
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: %w", common.ErrInvalidToken, errMissingSubject)
	}
	return claims, nil
}
