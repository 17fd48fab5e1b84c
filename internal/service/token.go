package service

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/smarterworkco/GPT-UI/internal/domain"
)

const tokenIssuer = "bizhub"

// TokenIssuer signs and verifies HS256 bearer tokens carrying a user id
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TokenIssuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue returns a signed token for userID
func (t *TokenIssuer) Issue(userID int64) (string, error) {
	now := t.now()
	claims := jwt.RegisteredClaims{
		Issuer:    tokenIssuer,
		Subject:   strconv.FormatInt(userID, 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", domain.NewDomainErrorWithCause(domain.ErrCodeInternalError, "failed to sign token", err)
	}
	return signed, nil
}

// Parse verifies token and returns the user id it carries
func (t *TokenIssuer) Parse(token string) (int64, error) {
	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(token, &claims,
		func(*jwt.Token) (any, error) { return t.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil {
		return 0, domain.NewDomainErrorWithCause(domain.ErrCodeUnauthorized, domain.ErrInvalidToken.Message, err)
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || userID <= 0 {
		return 0, domain.NewDomainErrorWithCause(domain.ErrCodeUnauthorized, domain.ErrInvalidToken.Message, errors.New("bad subject"))
	}
	return userID, nil
}

// TTL returns how long issued tokens stay valid
func (t *TokenIssuer) TTL() time.Duration {
	return t.ttl
}
