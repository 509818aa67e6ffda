package auth

import (
	"errors"
	"fmt"
	"time"

	"eventhub/internal/domain"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenExpiry is the lifetime of an issued token.
const DefaultTokenExpiry = 24 * time.Hour

type jwtClaims struct {
	jwt.RegisteredClaims
	UserID string `json:"userId"`
}

type jwtTokenService struct {
	secret []byte
	expiry time.Duration
	now    func() time.Time
}

// NewJWTService returns a TokenService that signs HS256 JWTs with the given secret.
// Tokens carry the user id and expire after expiry (DefaultTokenExpiry when zero).
func NewJWTService(secret string, expiry time.Duration) domain.TokenService {
	if expiry <= 0 {
		expiry = DefaultTokenExpiry
	}
	return &jwtTokenService{secret: []byte(secret), expiry: expiry, now: time.Now}
}

func (s *jwtTokenService) Issue(userID string) (string, error) {
	now := s.now()
	claims := jwtClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
		},
		UserID: userID,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

func (s *jwtTokenService) Verify(tokenString string) (string, error) {
	claims := &jwtClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	switch {
	case err == nil:
	case errors.Is(err, jwt.ErrTokenExpired):
		return "", domain.ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return "", domain.ErrInvalidSignature
	default:
		return "", fmt.Errorf("%w: %v", domain.ErrInvalidToken, err)
	}
	if claims.UserID == "" {
		return "", fmt.Errorf("%w: missing userId claim", domain.ErrInvalidToken)
	}
	return claims.UserID, nil
}
