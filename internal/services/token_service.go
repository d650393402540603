package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/yukikurage/company-tracker-api/internal/constants"
)

var (
	ErrInvalidToken   = errors.New("invalid token")
	ErrWrongTokenKind = errors.New("wrong token kind")
)

// TokenKind tells Verify which kind of token the caller expects.
type TokenKind int

const (
	TokenSession TokenKind = iota
	TokenTemporary
)

// Claims is the payload carried by every token. Type is "temp" for
// temporary tokens and empty for session tokens.
type Claims struct {
	UserID uint64 `json:"id"`
	Type   string `json:"type,omitempty"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies HS256 bearer tokens.
type TokenService struct {
	secret []byte
	now    func() time.Time
}

// NewTokenService creates a new TokenService signing with secret.
func NewTokenService(secret string) *TokenService {
	return &TokenService{
		secret: []byte(secret),
		now:    time.Now,
	}
}

// IssueTemporary issues a short-lived token that only completes Telegram login.
func (s *TokenService) IssueTemporary(userID uint64) (string, error) {
	return s.issue(userID, constants.TokenTypeTemporary, constants.TemporaryTokenTTL)
}

// IssueSession issues a long-lived token for standing access.
func (s *TokenService) IssueSession(userID uint64) (string, error) {
	return s.issue(userID, "", constants.SessionTokenTTL)
}

func (s *TokenService) issue(userID uint64, tokenType string, ttl time.Duration) (string, error) {
	now := s.now()
	claims := Claims{
		UserID: userID,
		Type:   tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify checks the signature and expiry of raw and that it is of the
// expected kind.
func (s *TokenService) Verify(raw string, kind TokenKind) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now), jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid || claims.UserID == 0 {
		return nil, ErrInvalidToken
	}

	temporary := claims.Type == constants.TokenTypeTemporary
	switch kind {
	case TokenTemporary:
		if !temporary {
			return nil, ErrWrongTokenKind
		}
	default:
		if temporary {
			return nil, ErrWrongTokenKind
		}
	}

	return claims, nil
}
