package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/shoppro/storefront/internal/domain/entity"
	errs "github.com/shoppro/storefront/internal/domain/error"
	authport "github.com/shoppro/storefront/internal/domain/port/auth"
	coreport "github.com/shoppro/storefront/internal/domain/port/core"
)

// jwtClaims is the wire shape of a session token
type jwtClaims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// JWTIssuer signs and verifies session tokens with an HMAC secret
type JWTIssuer struct {
	secret       []byte
	ttl          time.Duration
	timeProvider coreport.TimeProvider
}

func NewJWTIssuer(secret string, ttl time.Duration, timeProvider coreport.TimeProvider) *JWTIssuer {
	return &JWTIssuer{
		secret:       []byte(secret),
		ttl:          ttl,
		timeProvider: timeProvider,
	}
}

// Issue creates a signed token carrying the user's identity
func (i *JWTIssuer) Issue(user *entity.User) (string, error) {
	now := i.timeProvider.Now()
	claims := jwtClaims{
		Username: user.Username,
		Role:     string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprintf("%d", user.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, nil
}

// Verify parses a token and returns its claims.
// Any parse, signature, or expiry failure maps to ErrInvalidToken.
func (i *JWTIssuer) Verify(tokenString string) (*authport.Claims, error) {
	claims := &jwtClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return i.secret, nil
		},
		jwt.WithTimeFunc(i.timeProvider.Now),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil || !token.Valid {
		return nil, errs.ErrInvalidToken
	}

	var userID uint64
	if _, err := fmt.Sscanf(claims.Subject, "%d", &userID); err != nil || userID == 0 {
		return nil, errs.ErrInvalidToken
	}

	return &authport.Claims{
		UserID:   userID,
		Username: claims.Username,
		Role:     entity.Role(claims.Role),
	}, nil
}
