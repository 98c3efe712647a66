package session

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims is the payload of a storefront session token.
type Claims struct {
	jwt.RegisteredClaims
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

// RevocationList records token IDs retired before their expiry.
type RevocationList interface {
	IsRevoked(ctx context.Context, id string) (bool, error)
	Revoke(ctx context.Context, id string, expiresAt time.Time) error
}

// JWTValidator verifies HS256 session tokens.
type JWTValidator struct {
	secret  []byte
	issuer  string
	revoked RevocationList
}

type JWTOption func(*JWTValidator)

// WithIssuer requires tokens to carry the given iss claim.
func WithIssuer(issuer string) JWTOption {
	return func(v *JWTValidator) { v.issuer = issuer }
}

// WithRevocationList rejects tokens whose ID is on the list, and lets
// Terminate put them there.
func WithRevocationList(l RevocationList) JWTOption {
	return func(v *JWTValidator) { v.revoked = l }
}

func NewJWTValidator(secret []byte, opts ...JWTOption) *JWTValidator {
	v := &JWTValidator{secret: secret}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Issue signs a token for u that expires after ttl.
func (v *JWTValidator) Issue(u User, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    v.issuer,
			Subject:   u.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Name:  u.Name,
		Email: u.Email,
	})
	return token.SignedString(v.secret)
}

func (v *JWTValidator) parse(token string) (*Claims, error) {
	if token == "" {
		return nil, ErrNoSession
	}
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return v.secret, nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !parsed.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (v *JWTValidator) Validate(ctx context.Context, token string) (User, error) {
	claims, err := v.parse(token)
	if err != nil {
		return User{}, err
	}
	if v.revoked != nil && claims.ID != "" {
		revoked, err := v.revoked.IsRevoked(ctx, claims.ID)
		if err != nil {
			return User{}, fmt.Errorf("check revocation: %w", err)
		}
		if revoked {
			return User{}, ErrRevoked
		}
	}
	return User{ID: claims.Subject, Name: claims.Name, Email: claims.Email}, nil
}

// Terminate revokes the token until its expiry. Tokens without an ID, or a
// validator without a revocation list, have nothing to retire.
func (v *JWTValidator) Terminate(ctx context.Context, token string) error {
	claims, err := v.parse(token)
	if err != nil {
		return err
	}
	if v.revoked == nil || claims.ID == "" {
		return nil
	}
	if err := v.revoked.Revoke(ctx, claims.ID, claims.ExpiresAt.Time); err != nil {
		return fmt.Errorf("revoke %s: %w", claims.ID, err)
	}
	return nil
}
