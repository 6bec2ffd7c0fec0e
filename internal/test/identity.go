package test

import (
	"context"

	"github.com/drinktab/drinktab/internal/domain/model"
	"github.com/drinktab/drinktab/internal/pkg/identity"
)

// ResolverStub resolves tokens into principals via function overrides.
type ResolverStub struct {
	ResolveFn func(context.Context, string) (*model.Principal, error)
	Principal *model.Principal
	Err       error
}

// Resolve either delegates to the override or returns the predefined result.
func (s ResolverStub) Resolve(ctx context.Context, token string) (*model.Principal, error) {
	if s.ResolveFn != nil {
		return s.ResolveFn(ctx, token)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Principal != nil {
		return s.Principal, nil
	}
	return &model.Principal{Name: "member", Groups: []string{"members"}}, nil
}

var _ identity.Resolver = ResolverStub{}
