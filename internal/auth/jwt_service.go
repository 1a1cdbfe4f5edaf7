package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"lumenportal/internal/model"
)

// ErrInvalidToken is returned for every verification failure. Expired,
// malformed, wrong signature and wrong issuer are deliberately not
// distinguishable by callers.
var ErrInvalidToken = errors.New("invalid or expired token")

// Claims is the signed claim set carried by a session token. The JSON keys
// match the tokens issued by the original portal so sessions survive the
// migration.
type Claims struct {
	UserID uint       `json:"id"`
	Name   string     `json:"usuario"`
	Email  string     `json:"email"`
	Sector string     `json:"setor"`
	Role   model.Role `json:"role"`
	jwt.RegisteredClaims
}

// JWTService issues and verifies stateless session tokens. There is no
// revocation: validity is a pure function of the token bytes and the clock.
type JWTService struct {
	secret []byte
	method jwt.SigningMethod
	issuer string
	ttl    time.Duration
}

// NewJWTService creates a token codec. Only HMAC signing methods are accepted.
func NewJWTService(secret, algorithm, issuer string, ttl time.Duration) (*JWTService, error) {
	method := jwt.GetSigningMethod(algorithm)
	if method == nil {
		return nil, fmt.Errorf("unknown signing algorithm %q", algorithm)
	}
	if _, ok := method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("signing algorithm %q is not an HMAC method", algorithm)
	}
	return &JWTService{
		secret: []byte(secret),
		method: method,
		issuer: issuer,
		ttl:    ttl,
	}, nil
}

// TTL returns the configured token lifetime.
func (s *JWTService) TTL() time.Duration { return s.ttl }

// Generate signs a session token for the given user.
func (s *JWTService) Generate(user *model.User) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: user.ID,
		Name:   user.Name,
		Email:  user.Email,
		Sector: user.Sector,
		Role:   user.Role(),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(s.method, claims)
	return token.SignedString(s.secret)
}

// Decode verifies signature, signing method, issuer and the required exp/iat
// claims, returning the claim set on success and ErrInvalidToken on any
// verification failure.
func (s *JWTService) Decode(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.ExpiresAt == nil || claims.IssuedAt == nil {
		return nil, ErrInvalidToken
	}
	if claims.Issuer != s.issuer {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
