package usecase

import (
	"context"

	"github.com/drinktab/drinktab/internal/domain/model"
	"github.com/drinktab/drinktab/internal/domain/repository"
	"github.com/drinktab/drinktab/internal/pkg/authz"
)

// AdminUseCase covers settlement and the administrative overrides.
type AdminUseCase struct {
	policy   authz.Policy
	postpaid repository.PostpaidRepository
	prepaid  repository.PrepaidRepository
}

// NewAdminUseCase constructs AdminUseCase.
func NewAdminUseCase(policy authz.Policy, postpaid repository.PostpaidRepository, prepaid repository.PrepaidRepository) *AdminUseCase {
	return &AdminUseCase{policy: policy, postpaid: postpaid, prepaid: prepaid}
}

// PayUp settles debt by moving money from the admin's own postpaid
// record to the target's as one atomic unit. Total money is conserved;
// paying yourself is a balance-neutral success.
func (u *AdminUseCase) PayUp(ctx context.Context, actor *model.Principal, targetUsername string, amount int64) error {
	if err := authorize(u.policy, actor, authz.OpPayUp); err != nil {
		return err
	}
	return u.postpaid.Transfer(ctx, actor.Name, targetUsername, amount)
}

// SetMoneyPostpaid overrides a postpaid balance with an absolute value
// and returns the updated record.
func (u *AdminUseCase) SetMoneyPostpaid(ctx context.Context, actor *model.Principal, targetUsername string, money int64) (*model.PostpaidUser, error) {
	if err := authorize(u.policy, actor, authz.OpSetMoney); err != nil {
		return nil, err
	}
	return u.postpaid.SetMoney(ctx, targetUsername, money)
}

// SetMoneyPrepaid overrides a prepaid balance with an absolute value
// and returns the updated record.
func (u *AdminUseCase) SetMoneyPrepaid(ctx context.Context, actor *model.Principal, targetUsername string, money int64) (*model.PrepaidUser, error) {
	if err := authorize(u.policy, actor, authz.OpSetMoney); err != nil {
		return nil, err
	}
	target, err := u.prepaid.Get(ctx, targetUsername)
	if err != nil {
		return nil, err
	}
	return u.prepaid.SetMoney(ctx, target.ID, money)
}

// ToggleActivated flips the activation gate of a postpaid or prepaid
// record and returns the new state. Deactivation blocks drinks only;
// balances stay visible and fundable.
func (u *AdminUseCase) ToggleActivated(ctx context.Context, actor *model.Principal, targetUsername string, kind model.UserKind) (bool, error) {
	if err := authorize(u.policy, actor, authz.OpToggleActivated); err != nil {
		return false, err
	}
	if kind == model.UserKindPrepaid {
		target, err := u.prepaid.Get(ctx, targetUsername)
		if err != nil {
			return false, err
		}
		return u.prepaid.ToggleActivated(ctx, target.ID)
	}
	return u.postpaid.ToggleActivated(ctx, targetUsername)
}

// DeletePrepaidUser removes a prepaid record; its key is retired and
// never handed out again.
func (u *AdminUseCase) DeletePrepaidUser(ctx context.Context, actor *model.Principal, targetUsername string) error {
	if err := authorize(u.policy, actor, authz.OpDeletePrepaid); err != nil {
		return err
	}
	return u.prepaid.Delete(ctx, targetUsername)
}

// PostpaidLedger returns the full postpaid collection.
func (u *AdminUseCase) PostpaidLedger(ctx context.Context, actor *model.Principal) ([]model.PostpaidUser, error) {
	if err := authorize(u.policy, actor, authz.OpViewLedgers); err != nil {
		return nil, err
	}
	return u.postpaid.List(ctx)
}

// PrepaidLedger returns the full prepaid collection, keys included.
func (u *AdminUseCase) PrepaidLedger(ctx context.Context, actor *model.Principal) ([]model.PrepaidUser, error) {
	if err := authorize(u.policy, actor, authz.OpViewLedgers); err != nil {
		return nil, err
	}
	return u.prepaid.List(ctx)
}

// LedgerTotals aggregates both ledgers. No actor: the stats handler
// gates access itself and the background reporter runs without one.
func (u *AdminUseCase) LedgerTotals(ctx context.Context) (*model.LedgerTotals, error) {
	postpaid, err := u.postpaid.List(ctx)
	if err != nil {
		return nil, err
	}
	prepaid, err := u.prepaid.List(ctx)
	if err != nil {
		return nil, err
	}
	totals := &model.LedgerTotals{
		PostpaidCount: len(postpaid),
		PrepaidCount:  len(prepaid),
	}
	for _, user := range postpaid {
		totals.PostpaidTotal += user.Money
		if user.Money < 0 {
			totals.PostpaidDebt -= user.Money
		}
	}
	for _, user := range prepaid {
		totals.PrepaidTotal += user.Money
	}
	return totals, nil
}
