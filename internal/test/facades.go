package test

import (
	"context"
	"sync"

	"github.com/drinktab/drinktab/internal/domain/model"
	"github.com/drinktab/drinktab/internal/usecase"
)

// LedgerFacadeStub provides controllable behaviour for every HTTP endpoint.
type LedgerFacadeStub struct {
	ProfileFn          func(context.Context, *model.Principal) (*model.PostpaidUser, error)
	MyPrepaidUsersFn   func(context.Context, *model.Principal) ([]model.PrepaidUser, error)
	AddPrepaidUserFn   func(context.Context, *model.Principal, string, int64) (*model.PrepaidUser, error)
	AddMoneyPrepaidFn  func(context.Context, *model.Principal, string, int64) (*model.PrepaidUser, error)
	BuyDrinkFn         func(context.Context, *model.Principal, usecase.TargetSelector) (*usecase.DrinkReceipt, error)
	RevertLastDrinkFn  func(context.Context, *model.Principal, usecase.TargetSelector) (*usecase.DrinkReceipt, error)
	TagLastDrinkFn     func(context.Context, *model.Principal, usecase.TargetSelector, int64) error
	PayUpFn            func(context.Context, *model.Principal, string, int64) error
	SetMoneyPostpaidFn func(context.Context, *model.Principal, string, int64) (*model.PostpaidUser, error)
	SetMoneyPrepaidFn  func(context.Context, *model.Principal, string, int64) (*model.PrepaidUser, error)
	ToggleActivatedFn  func(context.Context, *model.Principal, string, model.UserKind) (bool, error)
	DeletePrepaidFn    func(context.Context, *model.Principal, string) error
	PostpaidLedgerFn   func(context.Context, *model.Principal) ([]model.PostpaidUser, error)
	PrepaidLedgerFn    func(context.Context, *model.Principal) ([]model.PrepaidUser, error)
	LedgerTotalsFn     func(context.Context) (*model.LedgerTotals, error)
	DrinkTypesFn       func(context.Context, *model.Principal) ([]model.DrinkType, error)
	AddDrinkTypeFn     func(context.Context, *model.Principal, string, string, int64) (*model.DrinkType, error)
	SetDrinkQuantityFn func(context.Context, *model.Principal, int64, int64) (*model.DrinkType, error)
}

// Profile delegates to the provided function or returns a default account.
func (s LedgerFacadeStub) Profile(ctx context.Context, actor *model.Principal) (*model.PostpaidUser, error) {
	if s.ProfileFn != nil {
		return s.ProfileFn(ctx, actor)
	}
	name := "member"
	if actor != nil {
		name = actor.Name
	}
	return &model.PostpaidUser{ID: 1, Username: name, Activated: true}, nil
}

// MyPrepaidUsers returns preconfigured family members.
func (s LedgerFacadeStub) MyPrepaidUsers(ctx context.Context, actor *model.Principal) ([]model.PrepaidUser, error) {
	if s.MyPrepaidUsersFn != nil {
		return s.MyPrepaidUsersFn(ctx, actor)
	}
	return []model.PrepaidUser{{ID: 1, Username: "kid", UserKey: "key-1", Activated: true}}, nil
}

// AddPrepaidUser executes the configured handler or echoes the request.
func (s LedgerFacadeStub) AddPrepaidUser(ctx context.Context, actor *model.Principal, username string, startMoney int64) (*model.PrepaidUser, error) {
	if s.AddPrepaidUserFn != nil {
		return s.AddPrepaidUserFn(ctx, actor, username, startMoney)
	}
	return &model.PrepaidUser{ID: 1, Username: username, UserKey: "key-1", Money: startMoney, Activated: true}, nil
}

// AddMoneyPrepaid executes the configured handler or echoes the request.
func (s LedgerFacadeStub) AddMoneyPrepaid(ctx context.Context, actor *model.Principal, username string, amount int64) (*model.PrepaidUser, error) {
	if s.AddMoneyPrepaidFn != nil {
		return s.AddMoneyPrepaidFn(ctx, actor, username, amount)
	}
	return &model.PrepaidUser{ID: 1, Username: username, UserKey: "key-1", Money: amount, Activated: true}, nil
}

// BuyDrink delegates or returns a default receipt.
func (s LedgerFacadeStub) BuyDrink(ctx context.Context, actor *model.Principal, target usecase.TargetSelector) (*usecase.DrinkReceipt, error) {
	if s.BuyDrinkFn != nil {
		return s.BuyDrinkFn(ctx, actor, target)
	}
	return &usecase.DrinkReceipt{Kind: model.UserKindPostpaid, Username: "member", Money: -150}, nil
}

// RevertLastDrink delegates or returns a default receipt.
func (s LedgerFacadeStub) RevertLastDrink(ctx context.Context, actor *model.Principal, target usecase.TargetSelector) (*usecase.DrinkReceipt, error) {
	if s.RevertLastDrinkFn != nil {
		return s.RevertLastDrinkFn(ctx, actor, target)
	}
	return &usecase.DrinkReceipt{Kind: model.UserKindPostpaid, Username: "member", Money: 0}, nil
}

// TagLastDrink executes the configured handler.
func (s LedgerFacadeStub) TagLastDrink(ctx context.Context, actor *model.Principal, target usecase.TargetSelector, drinkTypeID int64) error {
	if s.TagLastDrinkFn != nil {
		return s.TagLastDrinkFn(ctx, actor, target, drinkTypeID)
	}
	return nil
}

// PayUp executes the configured handler.
func (s LedgerFacadeStub) PayUp(ctx context.Context, actor *model.Principal, username string, amount int64) error {
	if s.PayUpFn != nil {
		return s.PayUpFn(ctx, actor, username, amount)
	}
	return nil
}

// SetMoneyPostpaid delegates or echoes the new balance.
func (s LedgerFacadeStub) SetMoneyPostpaid(ctx context.Context, actor *model.Principal, username string, money int64) (*model.PostpaidUser, error) {
	if s.SetMoneyPostpaidFn != nil {
		return s.SetMoneyPostpaidFn(ctx, actor, username, money)
	}
	return &model.PostpaidUser{ID: 1, Username: username, Money: money, Activated: true}, nil
}

// SetMoneyPrepaid delegates or echoes the new balance.
func (s LedgerFacadeStub) SetMoneyPrepaid(ctx context.Context, actor *model.Principal, username string, money int64) (*model.PrepaidUser, error) {
	if s.SetMoneyPrepaidFn != nil {
		return s.SetMoneyPrepaidFn(ctx, actor, username, money)
	}
	return &model.PrepaidUser{ID: 1, Username: username, UserKey: "key-1", Money: money, Activated: true}, nil
}

// ToggleActivated delegates or reports the account as switched on.
func (s LedgerFacadeStub) ToggleActivated(ctx context.Context, actor *model.Principal, username string, kind model.UserKind) (bool, error) {
	if s.ToggleActivatedFn != nil {
		return s.ToggleActivatedFn(ctx, actor, username, kind)
	}
	return true, nil
}

// DeletePrepaidUser executes the configured handler.
func (s LedgerFacadeStub) DeletePrepaidUser(ctx context.Context, actor *model.Principal, username string) error {
	if s.DeletePrepaidFn != nil {
		return s.DeletePrepaidFn(ctx, actor, username)
	}
	return nil
}

// PostpaidLedger returns preconfigured accounts.
func (s LedgerFacadeStub) PostpaidLedger(ctx context.Context, actor *model.Principal) ([]model.PostpaidUser, error) {
	if s.PostpaidLedgerFn != nil {
		return s.PostpaidLedgerFn(ctx, actor)
	}
	return []model.PostpaidUser{{ID: 1, Username: "member", Activated: true}}, nil
}

// PrepaidLedger returns preconfigured accounts.
func (s LedgerFacadeStub) PrepaidLedger(ctx context.Context, actor *model.Principal) ([]model.PrepaidUser, error) {
	if s.PrepaidLedgerFn != nil {
		return s.PrepaidLedgerFn(ctx, actor)
	}
	return []model.PrepaidUser{{ID: 1, Username: "kid", UserKey: "key-1", Activated: true}}, nil
}

// LedgerTotals returns preconfigured totals.
func (s LedgerFacadeStub) LedgerTotals(ctx context.Context) (*model.LedgerTotals, error) {
	if s.LedgerTotalsFn != nil {
		return s.LedgerTotalsFn(ctx)
	}
	return &model.LedgerTotals{PostpaidCount: 1, PrepaidCount: 1}, nil
}

// DrinkTypes returns the preconfigured catalog.
func (s LedgerFacadeStub) DrinkTypes(ctx context.Context, actor *model.Principal) ([]model.DrinkType, error) {
	if s.DrinkTypesFn != nil {
		return s.DrinkTypesFn(ctx, actor)
	}
	return []model.DrinkType{{ID: 1, Name: "beer", Quantity: 24}}, nil
}

// AddDrinkType delegates or echoes the request.
func (s LedgerFacadeStub) AddDrinkType(ctx context.Context, actor *model.Principal, name, icon string, quantity int64) (*model.DrinkType, error) {
	if s.AddDrinkTypeFn != nil {
		return s.AddDrinkTypeFn(ctx, actor, name, icon, quantity)
	}
	return &model.DrinkType{ID: 1, Name: name, Icon: icon, Quantity: quantity}, nil
}

// SetDrinkTypeQuantity delegates or echoes the request.
func (s LedgerFacadeStub) SetDrinkTypeQuantity(ctx context.Context, actor *model.Principal, id, quantity int64) (*model.DrinkType, error) {
	if s.SetDrinkQuantityFn != nil {
		return s.SetDrinkQuantityFn(ctx, actor, id, quantity)
	}
	return &model.DrinkType{ID: id, Name: "beer", Quantity: quantity}, nil
}

// StatsSourceStub mimics reporter interactions with the ledger facade.
type StatsSourceStub struct {
	TotalsFn func(context.Context) (*model.LedgerTotals, error)
	Totals   *model.LedgerTotals
	Err      error

	mu    sync.Mutex
	calls int
}

// Lock exposes internal mutex for external synchronization.
func (s *StatsSourceStub) Lock() { s.mu.Lock() }

// Unlock releases previously acquired lock.
func (s *StatsSourceStub) Unlock() { s.mu.Unlock() }

// Calls reports how many times LedgerTotals was fetched.
func (s *StatsSourceStub) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// LedgerTotals returns the configured totals or a zero ledger.
func (s *StatsSourceStub) LedgerTotals(ctx context.Context) (*model.LedgerTotals, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()

	if s.TotalsFn != nil {
		return s.TotalsFn(ctx)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Totals != nil {
		return s.Totals, nil
	}
	return &model.LedgerTotals{}, nil
}

// StoreHealthStub reports the configured store health.
type StoreHealthStub struct {
	Err error
}

// HealthCheck returns the configured error.
func (s StoreHealthStub) HealthCheck(context.Context) error {
	return s.Err
}
