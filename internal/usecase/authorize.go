package usecase

import (
	domainErrors "github.com/drinktab/drinktab/internal/domain/errors"
	"github.com/drinktab/drinktab/internal/domain/model"
	"github.com/drinktab/drinktab/internal/pkg/authz"
)

// authorize translates a policy decision into the sentinel contract:
// a missing principal is Unauthorized, an insufficient one Forbidden.
func authorize(policy authz.Policy, actor *model.Principal, op authz.Operation) error {
	if actor == nil {
		return domainErrors.ErrUnauthorized
	}
	if !policy.Allows(actor, op) {
		return domainErrors.ErrForbidden
	}
	return nil
}
