package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// DefaultTokenTTL is how long an admin session token stays valid.
const DefaultTokenTTL = 7 * 24 * time.Hour

// Claims are the admin session claims embedded in a token.
type Claims struct {
	AdminID string `json:"adminId"`
	Email   string `json:"email"`
	Role    string `json:"role"`
	jwt.RegisteredClaims
}

// JWTService issues and verifies admin session tokens.
type JWTService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewJWTService creates a new JWT service with the given secret and validity window.
func NewJWTService(secret string, ttl time.Duration) *JWTService {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &JWTService{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// TTL is the validity window of issued tokens.
func (s *JWTService) TTL() time.Duration {
	return s.ttl
}

// Issue signs a token for the admin. The token ID is unique per token so that
// a single session can be revoked on logout.
func (s *JWTService) Issue(adminID uuid.UUID, email, role string) (string, *Claims, error) {
	if adminID == uuid.Nil {
		return "", nil, errors.New("admin id is required")
	}
	now := s.now()
	claims := &Claims{
		AdminID: adminID.String(),
		Email:   email,
		Role:    role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   adminID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", nil, err
	}
	return token, claims, nil
}

// Verify returns the embedded claims when the signature is valid and the token
// is unexpired. Every other outcome, malformed input included, is reported as
// ok == false.
func (s *JWTService) Verify(tokenString string) (claims *Claims, ok bool) {
	if tokenString == "" {
		return nil, false
	}
	defer func() {
		if recover() != nil {
			claims, ok = nil, false
		}
	}()

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !token.Valid {
		return nil, false
	}

	parsed, ok := token.Claims.(*Claims)
	if !ok || parsed.AdminID == "" {
		return nil, false
	}
	if _, err := uuid.Parse(parsed.AdminID); err != nil {
		return nil, false
	}
	return parsed, true
}

// Remaining returns how long the claims stay valid from now.
func (s *JWTService) Remaining(claims *Claims) time.Duration {
	if claims == nil || claims.ExpiresAt == nil {
		return 0
	}
	if d := claims.ExpiresAt.Time.Sub(s.now()); d > 0 {
		return d
	}
	return 0
}
