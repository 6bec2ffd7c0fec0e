package identity

import (
	"context"

	"github.com/golang-jwt/jwt/v5"

	"github.com/drinktab/drinktab/internal/domain/model"
)

// Claims mirror the token payload issued by the identity provider.
type Claims struct {
	PreferredUsername string   `json:"preferred_username"`
	Groups            []string `json:"groups"`
	jwt.RegisteredClaims
}

// JWTResolver verifies HS256 tokens signed with the shared client secret.
type JWTResolver struct {
	secret []byte
}

// NewJWTResolver builds a resolver around the shared signing secret.
func NewJWTResolver(secret string) *JWTResolver {
	return &JWTResolver{secret: []byte(secret)}
}

// Resolve validates the token and extracts username and groups.
func (r *JWTResolver) Resolve(_ context.Context, token string) (*model.Principal, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return r.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}

	name := claims.PreferredUsername
	if name == "" {
		name = claims.Subject
	}
	if name == "" {
		return nil, ErrInvalidToken
	}

	return &model.Principal{Name: name, Groups: claims.Groups}, nil
}
