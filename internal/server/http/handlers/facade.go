package handlers

import (
	"context"

	"github.com/drinktab/drinktab/internal/domain/model"
	"github.com/drinktab/drinktab/internal/usecase"
)

// AccountFacade is the account surface handlers depend on.
type AccountFacade interface {
	Profile(ctx context.Context, actor *model.Principal) (*model.PostpaidUser, error)
	MyPrepaidUsers(ctx context.Context, actor *model.Principal) ([]model.PrepaidUser, error)
	AddPrepaidUser(ctx context.Context, actor *model.Principal, username string, startMoney int64) (*model.PrepaidUser, error)
	AddMoneyPrepaid(ctx context.Context, actor *model.Principal, username string, amount int64) (*model.PrepaidUser, error)
}

// DrinkFacade is the drink-flow surface handlers depend on. The drink
// price is configuration, not client input, so it does not appear here.
type DrinkFacade interface {
	BuyDrink(ctx context.Context, actor *model.Principal, target usecase.TargetSelector) (*usecase.DrinkReceipt, error)
	RevertLastDrink(ctx context.Context, actor *model.Principal, target usecase.TargetSelector) (*usecase.DrinkReceipt, error)
	TagLastDrink(ctx context.Context, actor *model.Principal, target usecase.TargetSelector, drinkTypeID int64) error
}

// AdminFacade is the settlement and bookkeeping surface handlers depend on.
type AdminFacade interface {
	PayUp(ctx context.Context, actor *model.Principal, username string, amount int64) error
	SetMoneyPostpaid(ctx context.Context, actor *model.Principal, username string, money int64) (*model.PostpaidUser, error)
	SetMoneyPrepaid(ctx context.Context, actor *model.Principal, username string, money int64) (*model.PrepaidUser, error)
	ToggleActivated(ctx context.Context, actor *model.Principal, username string, kind model.UserKind) (bool, error)
	DeletePrepaidUser(ctx context.Context, actor *model.Principal, username string) error
	PostpaidLedger(ctx context.Context, actor *model.Principal) ([]model.PostpaidUser, error)
	PrepaidLedger(ctx context.Context, actor *model.Principal) ([]model.PrepaidUser, error)
	LedgerTotals(ctx context.Context) (*model.LedgerTotals, error)
}

// CatalogFacade is the drink-type catalog surface handlers depend on.
type CatalogFacade interface {
	DrinkTypes(ctx context.Context, actor *model.Principal) ([]model.DrinkType, error)
	AddDrinkType(ctx context.Context, actor *model.Principal, name, icon string, quantity int64) (*model.DrinkType, error)
	SetDrinkTypeQuantity(ctx context.Context, actor *model.Principal, id, quantity int64) (*model.DrinkType, error)
}

// LedgerFacade aggregates every surface the router wires.
type LedgerFacade interface {
	AccountFacade
	DrinkFacade
	AdminFacade
	CatalogFacade
}
