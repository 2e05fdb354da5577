package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	// ErrInvalidToken covers malformed, tampered and wrongly-signed tokens.
	ErrInvalidToken = errors.New("auth: invalid token")
	// ErrExpiredToken is returned for structurally valid but expired tokens.
	ErrExpiredToken = errors.New("auth: token expired")
)

// Claims is the JWT payload. Authorities are joined with commas to keep the
// token compact; Parse splits them back out.
type Claims struct {
	jwt.RegisteredClaims
	Email       string `json:"email"`
	Authorities string `json:"authorities"`
}

// TokenIssuer signs and verifies HS256 tokens.
type TokenIssuer struct {
	secret     []byte
	expiration time.Duration
}

// NewTokenIssuer builds an issuer from a shared secret and token lifetime.
func NewTokenIssuer(secret string, expiration time.Duration) (*TokenIssuer, error) {
	if len(secret) < 32 {
		return nil, fmt.Errorf("auth: signing secret must be at least 32 bytes, got %d", len(secret))
	}
	if expiration <= 0 {
		return nil, fmt.Errorf("auth: token expiration must be positive")
	}
	return &TokenIssuer{secret: []byte(secret), expiration: expiration}, nil
}

// Expiration returns the configured token lifetime.
func (t *TokenIssuer) Expiration() time.Duration {
	return t.expiration
}

// Issue signs a token for the given user.
func (t *TokenIssuer) Issue(userID uuid.UUID, email string, authorities []string) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.expiration)),
		},
		Email:       email,
		Authorities: strings.Join(authorities, ","),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("auth: sign token: %w", err)
	}
	return signed, nil
}

// Parse verifies a token string and returns the principal it encodes.
func (t *TokenIssuer) Parse(tokenString string) (*Principal, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return t.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, ErrInvalidToken
	}

	var authorities []string
	if claims.Authorities != "" {
		authorities = strings.Split(claims.Authorities, ",")
	}

	return &Principal{
		UserID:      userID,
		Email:       claims.Email,
		Authorities: authorities,
	}, nil
}
