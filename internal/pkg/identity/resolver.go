// Package identity resolves bearer credentials into principals. The
// login flow itself lives in the identity provider; this package only
// consumes its output.
package identity

import (
	"context"
	"errors"

	"github.com/drinktab/drinktab/internal/domain/model"
)

// ErrInvalidToken is returned when a credential cannot be resolved.
var ErrInvalidToken = errors.New("invalid auth token")

// Resolver turns a bearer credential into a Principal.
type Resolver interface {
	Resolve(ctx context.Context, token string) (*model.Principal, error)
}

// Chain tries each resolver in order and returns the first success.
type Chain []Resolver

// Resolve walks the chain; any resolver error moves on to the next entry.
func (c Chain) Resolve(ctx context.Context, token string) (*model.Principal, error) {
	for _, r := range c {
		if p, err := r.Resolve(ctx, token); err == nil {
			return p, nil
		}
	}
	return nil, ErrInvalidToken
}
