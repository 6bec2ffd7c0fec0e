package usecase

import (
	"context"
	"time"

	domainErrors "github.com/drinktab/drinktab/internal/domain/errors"
	"github.com/drinktab/drinktab/internal/domain/model"
	"github.com/drinktab/drinktab/internal/domain/repository"
	"github.com/drinktab/drinktab/internal/pkg/authz"
)

// TargetSelector picks the record a point-of-sale operation applies to.
// A non-empty UserKey selects a prepaid record without any login;
// otherwise the target is the actor's own record of the given kind.
type TargetSelector struct {
	UserKey string
	Kind    model.UserKind
}

// DrinkReceipt reports the applied operation back to the counter.
type DrinkReceipt struct {
	Kind     model.UserKind
	Username string
	Money    int64
}

// DrinkUseCase handles the point-of-sale flow: buying drinks, undoing
// the last one and tagging it with a catalog type.
type DrinkUseCase struct {
	policy   authz.Policy
	postpaid repository.PostpaidRepository
	prepaid  repository.PrepaidRepository
	catalog  repository.DrinkTypeRepository
	window   time.Duration
	now      func() time.Time
}

// NewDrinkUseCase constructs DrinkUseCase. revertWindow bounds how long
// the last drink stays undoable and taggable.
func NewDrinkUseCase(policy authz.Policy, postpaid repository.PostpaidRepository, prepaid repository.PrepaidRepository, catalog repository.DrinkTypeRepository, revertWindow time.Duration) *DrinkUseCase {
	return &DrinkUseCase{
		policy:   policy,
		postpaid: postpaid,
		prepaid:  prepaid,
		catalog:  catalog,
		window:   revertWindow,
		now:      time.Now,
	}
}

// RecordDrink debits one drink from the target and stamps the purchase
// time. No floor applies: members run a tab and prepaid overdraft is
// tolerated at the counter rather than refusing the pour.
func (u *DrinkUseCase) RecordDrink(ctx context.Context, actor *model.Principal, target TargetSelector, price int64) (*DrinkReceipt, error) {
	if price < 0 {
		return nil, domainErrors.ErrInvalidAmount
	}
	resolved, err := u.resolve(ctx, actor, target)
	if err != nil {
		return nil, err
	}
	at := u.now()
	if resolved.kind == model.UserKindPrepaid {
		user, err := u.prepaid.RecordDrink(ctx, resolved.id, price, at)
		if err != nil {
			return nil, err
		}
		return prepaidReceipt(user), nil
	}
	user, err := u.postpaid.RecordDrink(ctx, resolved.username, price, at)
	if err != nil {
		return nil, err
	}
	return postpaidReceipt(user), nil
}

// RevertLastDrink undoes the most recent drink: the refund is credited
// and the last-drink mark cleared. Only drinks younger than the revert
// window qualify.
func (u *DrinkUseCase) RevertLastDrink(ctx context.Context, actor *model.Principal, target TargetSelector, refund int64) (*DrinkReceipt, error) {
	if refund < 0 {
		return nil, domainErrors.ErrInvalidAmount
	}
	resolved, err := u.resolve(ctx, actor, target)
	if err != nil {
		return nil, err
	}
	since := u.now().Add(-u.window)
	if resolved.kind == model.UserKindPrepaid {
		user, err := u.prepaid.RevertDrink(ctx, resolved.id, refund, since)
		if err != nil {
			return nil, err
		}
		return prepaidReceipt(user), nil
	}
	user, err := u.postpaid.RevertDrink(ctx, resolved.username, refund, since)
	if err != nil {
		return nil, err
	}
	return postpaidReceipt(user), nil
}

// TagLastDrink attributes the most recent drink to a catalog type,
// bumping its consumed counter and decrementing stock. The same revert
// window applies.
func (u *DrinkUseCase) TagLastDrink(ctx context.Context, actor *model.Principal, target TargetSelector, drinkTypeID int64) error {
	resolved, err := u.resolve(ctx, actor, target)
	if err != nil {
		return err
	}
	last := resolved.lastDrink
	if resolved.kind == model.UserKindPostpaid {
		user, err := u.postpaid.Get(ctx, resolved.username)
		if err != nil {
			return err
		}
		last = user.LastDrink
	}
	if last == nil || last.Before(u.now().Add(-u.window)) {
		return domainErrors.ErrNoRecentDrink
	}
	return u.catalog.MarkConsumed(ctx, drinkTypeID)
}

type resolvedTarget struct {
	kind     model.UserKind
	username string // postpaid target
	id       int64  // prepaid target

	// lastDrink carries the mark of a prepaid record fetched during
	// resolution; postpaid targets are read atomically later.
	lastDrink *time.Time
}

func (u *DrinkUseCase) resolve(ctx context.Context, actor *model.Principal, target TargetSelector) (*resolvedTarget, error) {
	if target.UserKey != "" {
		user, err := u.prepaid.GetByKey(ctx, target.UserKey)
		if err != nil {
			return nil, err
		}
		return &resolvedTarget{kind: model.UserKindPrepaid, id: user.ID, lastDrink: user.LastDrink}, nil
	}
	if err := authorize(u.policy, actor, authz.OpRecordDrink); err != nil {
		return nil, err
	}
	if target.Kind == model.UserKindPrepaid {
		user, err := u.prepaid.Get(ctx, actor.Name)
		if err != nil {
			return nil, err
		}
		return &resolvedTarget{kind: model.UserKindPrepaid, id: user.ID, lastDrink: user.LastDrink}, nil
	}
	return &resolvedTarget{kind: model.UserKindPostpaid, username: actor.Name}, nil
}

func postpaidReceipt(u *model.PostpaidUser) *DrinkReceipt {
	return &DrinkReceipt{Kind: model.UserKindPostpaid, Username: u.Username, Money: u.Money}
}

func prepaidReceipt(u *model.PrepaidUser) *DrinkReceipt {
	return &DrinkReceipt{Kind: model.UserKindPrepaid, Username: u.Username, Money: u.Money}
}
