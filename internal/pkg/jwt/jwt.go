package jwt

import (
	"errors"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"tutorhub/internal/pkg/identity"
)

var (
	ErrInvalidToken  = errors.New("invalid token")
	ErrInvalidClaims = errors.New("invalid claims")
)

type Service struct {
	secret []byte
	ttl    time.Duration
}

// Claims mirror the identity issued by the auth collaborator.
type Claims struct {
	ProfileID string `json:"profile_id"`
	Role      string `json:"role"`
	Status    string `json:"status"`
	jwtlib.RegisteredClaims
}

func New(secret string, ttl time.Duration) *Service {
	return &Service{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

func (s *Service) GenerateToken(id identity.Identity) (string, error) {
	now := time.Now()
	claims := Claims{
		ProfileID: id.ProfileID.String(),
		Role:      string(id.Role),
		Status:    string(id.Status),
		RegisteredClaims: jwtlib.RegisteredClaims{
			Subject:   id.ProfileID.String(),
			ExpiresAt: jwtlib.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwtlib.NewNumericDate(now),
		},
	}

	token := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *Service) ValidateToken(tokenStr string) (*Claims, error) {
	token, err := jwtlib.ParseWithClaims(tokenStr, &Claims{}, func(t *jwtlib.Token) (any, error) {
		if _, ok := t.Method.(*jwtlib.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, ErrInvalidClaims
	}

	return claims, nil
}

// Identity converts validated claims into the caller identity.
func (c *Claims) Identity() (identity.Identity, error) {
	pid, err := uuid.Parse(c.ProfileID)
	if err != nil {
		return identity.Identity{}, ErrInvalidClaims
	}
	role := identity.ParseRole(c.Role)
	if !role.Valid() {
		return identity.Identity{}, ErrInvalidClaims
	}
	status := identity.Status(c.Status)
	if status == "" {
		status = identity.StatusActive
	}
	return identity.Identity{ProfileID: pid, Role: role, Status: status}, nil
}
