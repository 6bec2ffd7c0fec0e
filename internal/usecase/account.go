package usecase

import (
	"context"
	"errors"

	"github.com/segmentio/ksuid"

	domainErrors "github.com/drinktab/drinktab/internal/domain/errors"
	"github.com/drinktab/drinktab/internal/domain/model"
	"github.com/drinktab/drinktab/internal/domain/repository"
	"github.com/drinktab/drinktab/internal/pkg/authz"
)

// AccountUseCase covers the member-facing account operations: the own
// postpaid record and the prepaid sub-accounts hanging off it.
type AccountUseCase struct {
	policy   authz.Policy
	postpaid repository.PostpaidRepository
	prepaid  repository.PrepaidRepository
	newKey   func() string
}

// NewAccountUseCase constructs AccountUseCase.
func NewAccountUseCase(policy authz.Policy, postpaid repository.PostpaidRepository, prepaid repository.PrepaidRepository) *AccountUseCase {
	return &AccountUseCase{
		policy:   policy,
		postpaid: postpaid,
		prepaid:  prepaid,
		newKey:   func() string { return ksuid.New().String() },
	}
}

// Profile returns the actor's postpaid record, creating a deactivated
// zero-balance record on first sight. Activation stays an admin act.
func (u *AccountUseCase) Profile(ctx context.Context, actor *model.Principal) (*model.PostpaidUser, error) {
	if actor == nil {
		return nil, domainErrors.ErrUnauthorized
	}
	return u.ensurePostpaid(ctx, actor.Name)
}

// MyPrepaidUsers lists the prepaid records owned by the actor, keys
// included: the owner hands the key to the point of sale.
func (u *AccountUseCase) MyPrepaidUsers(ctx context.Context, actor *model.Principal) ([]model.PrepaidUser, error) {
	if err := authorize(u.policy, actor, authz.OpViewOwnPrepaid); err != nil {
		return nil, err
	}
	owner, err := u.ensurePostpaid(ctx, actor.Name)
	if err != nil {
		return nil, err
	}
	return u.prepaid.ListByOwner(ctx, owner.ID)
}

// AddPrepaidUser creates a pre-funded sub-account owned by the actor,
// activated and carrying a freshly generated secret key.
func (u *AccountUseCase) AddPrepaidUser(ctx context.Context, actor *model.Principal, username string, startMoney int64) (*model.PrepaidUser, error) {
	if err := authorize(u.policy, actor, authz.OpAddPrepaid); err != nil {
		return nil, err
	}
	if startMoney < 0 {
		return nil, domainErrors.ErrInvalidAmount
	}
	owner, err := u.ensurePostpaid(ctx, actor.Name)
	if err != nil {
		return nil, err
	}
	return u.prepaid.Upsert(ctx, &model.PrepaidUser{
		Username:       username,
		UserKey:        u.newKey(),
		PostpaidUserID: owner.ID,
		Money:          startMoney,
		Activated:      true,
	})
}

// AddMoneyPrepaid adjusts a prepaid balance. Owners may fund their own
// sub-accounts; admins may adjust any. The amount may carry any sign.
func (u *AccountUseCase) AddMoneyPrepaid(ctx context.Context, actor *model.Principal, targetUsername string, amount int64) (*model.PrepaidUser, error) {
	if err := authorize(u.policy, actor, authz.OpTopUpPrepaid); err != nil {
		return nil, err
	}
	target, err := u.prepaid.Get(ctx, targetUsername)
	if err != nil {
		return nil, err
	}
	if !u.policy.IsAdmin(actor) {
		owner, err := u.postpaid.Get(ctx, actor.Name)
		if err != nil {
			if errors.Is(err, domainErrors.ErrNotFound) {
				return nil, domainErrors.ErrForbidden
			}
			return nil, err
		}
		if owner.ID != target.PostpaidUserID {
			return nil, domainErrors.ErrForbidden
		}
	}
	return u.prepaid.AddMoney(ctx, target.ID, amount)
}

func (u *AccountUseCase) ensurePostpaid(ctx context.Context, username string) (*model.PostpaidUser, error) {
	user, err := u.postpaid.Get(ctx, username)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, domainErrors.ErrNotFound) {
		return nil, err
	}
	user, err = u.postpaid.Upsert(ctx, &model.PostpaidUser{Username: username})
	if errors.Is(err, domainErrors.ErrConflict) {
		// lost the provisioning race, the record exists now
		return u.postpaid.Get(ctx, username)
	}
	return user, err
}
