package identity

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/drinktab/drinktab/internal/adapter/idp"
	"github.com/drinktab/drinktab/internal/config"
	"github.com/drinktab/drinktab/internal/domain/model"
)

func signToken(t *testing.T, secret string, claims Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func TestJWTResolverResolvesPrincipal(t *testing.T) {
	resolver := NewJWTResolver("secret")
	token := signToken(t, "secret", Claims{
		PreferredUsername: "alice",
		Groups:            []string{"members"},
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "u-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	principal, err := resolver.Resolve(context.Background(), token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if principal.Name != "alice" {
		t.Fatalf("expected alice, got %q", principal.Name)
	}
	if len(principal.Groups) != 1 || principal.Groups[0] != "members" {
		t.Fatalf("unexpected groups %v", principal.Groups)
	}
}

func TestJWTResolverFallsBackToSubject(t *testing.T) {
	resolver := NewJWTResolver("secret")
	token := signToken(t, "secret", Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "bob"},
	})

	principal, err := resolver.Resolve(context.Background(), token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if principal.Name != "bob" {
		t.Fatalf("expected subject fallback, got %q", principal.Name)
	}
}

func TestJWTResolverRejectsBadTokens(t *testing.T) {
	resolver := NewJWTResolver("secret")

	cases := []struct {
		name  string
		token string
	}{
		{"garbage", "not-a-jwt"},
		{"wrong secret", signToken(t, "other-secret", Claims{PreferredUsername: "alice"})},
		{"expired", signToken(t, "secret", Claims{
			PreferredUsername: "alice",
			RegisteredClaims:  jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour))},
		})},
		{"anonymous", signToken(t, "secret", Claims{})},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := resolver.Resolve(context.Background(), tc.token); !errors.Is(err, ErrInvalidToken) {
				t.Fatalf("expected ErrInvalidToken, got %v", err)
			}
		})
	}
}

func TestJWTResolverRejectsUnsignedAlgorithm(t *testing.T) {
	resolver := NewJWTResolver("secret")
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{PreferredUsername: "alice"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	if _, err := resolver.Resolve(context.Background(), token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for alg=none, got %v", err)
	}
}

type resolverStub struct {
	principal *model.Principal
	err       error
	calls     int
}

func (s *resolverStub) Resolve(context.Context, string) (*model.Principal, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.principal, nil
}

func TestChainStopsAtFirstSuccess(t *testing.T) {
	first := &resolverStub{principal: &model.Principal{Name: "alice"}}
	second := &resolverStub{principal: &model.Principal{Name: "bob"}}

	principal, err := Chain{first, second}.Resolve(context.Background(), "tok")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if principal.Name != "alice" {
		t.Fatalf("expected first resolver to win, got %q", principal.Name)
	}
	if second.calls != 0 {
		t.Fatal("second resolver should not be consulted")
	}
}

func TestChainFallsThroughFailures(t *testing.T) {
	first := &resolverStub{err: ErrInvalidToken}
	second := &resolverStub{principal: &model.Principal{Name: "bob"}}

	principal, err := Chain{first, second}.Resolve(context.Background(), "tok")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if principal.Name != "bob" {
		t.Fatalf("expected fallback resolver, got %q", principal.Name)
	}
}

func TestChainExhaustedReturnsInvalidToken(t *testing.T) {
	first := &resolverStub{err: ErrInvalidToken}
	if _, err := (Chain{first}).Resolve(context.Background(), "tok"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestNewResolverFromConfig(t *testing.T) {
	resolver := newResolver(resolverParams{Config: &config.Config{JWTSecret: "secret"}})
	chain, ok := resolver.(Chain)
	if !ok {
		t.Fatalf("expected Chain, got %T", resolver)
	}
	if len(chain) != 1 {
		t.Fatalf("expected jwt-only chain, got %d entries", len(chain))
	}

	client, err := idp.NewClient("http://idp.local/userinfo", slog.New(slog.NewJSONHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	resolver = newResolver(resolverParams{Config: &config.Config{JWTSecret: "secret"}, IdP: client})
	chain, ok = resolver.(Chain)
	if !ok {
		t.Fatalf("expected Chain, got %T", resolver)
	}
	if len(chain) != 2 {
		t.Fatalf("expected userinfo fallback in chain, got %d entries", len(chain))
	}
}
