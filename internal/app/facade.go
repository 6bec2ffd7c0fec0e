package app

import (
	"context"

	"github.com/drinktab/drinktab/internal/config"
	"github.com/drinktab/drinktab/internal/domain/model"
	"github.com/drinktab/drinktab/internal/usecase"
)

// LedgerFacade is the single application surface the HTTP layer and the
// background reporter talk to. It injects the configured drink price
// into the drink flow so clients never supply one.
type LedgerFacade struct {
	accounts  *usecase.AccountUseCase
	drinks    *usecase.DrinkUseCase
	admin     *usecase.AdminUseCase
	catalog   *usecase.CatalogUseCase
	drinkCost int64
}

func NewLedgerFacade(accounts *usecase.AccountUseCase, drinks *usecase.DrinkUseCase, admin *usecase.AdminUseCase, catalog *usecase.CatalogUseCase, cfg *config.Config) *LedgerFacade {
	return &LedgerFacade{
		accounts:  accounts,
		drinks:    drinks,
		admin:     admin,
		catalog:   catalog,
		drinkCost: cfg.DrinkCost,
	}
}

func (f *LedgerFacade) Profile(ctx context.Context, actor *model.Principal) (*model.PostpaidUser, error) {
	return f.accounts.Profile(ctx, actor)
}

func (f *LedgerFacade) MyPrepaidUsers(ctx context.Context, actor *model.Principal) ([]model.PrepaidUser, error) {
	return f.accounts.MyPrepaidUsers(ctx, actor)
}

func (f *LedgerFacade) AddPrepaidUser(ctx context.Context, actor *model.Principal, username string, startMoney int64) (*model.PrepaidUser, error) {
	return f.accounts.AddPrepaidUser(ctx, actor, username, startMoney)
}

func (f *LedgerFacade) AddMoneyPrepaid(ctx context.Context, actor *model.Principal, username string, amount int64) (*model.PrepaidUser, error) {
	return f.accounts.AddMoneyPrepaid(ctx, actor, username, amount)
}

func (f *LedgerFacade) BuyDrink(ctx context.Context, actor *model.Principal, target usecase.TargetSelector) (*usecase.DrinkReceipt, error) {
	return f.drinks.RecordDrink(ctx, actor, target, f.drinkCost)
}

func (f *LedgerFacade) RevertLastDrink(ctx context.Context, actor *model.Principal, target usecase.TargetSelector) (*usecase.DrinkReceipt, error) {
	return f.drinks.RevertLastDrink(ctx, actor, target, f.drinkCost)
}

func (f *LedgerFacade) TagLastDrink(ctx context.Context, actor *model.Principal, target usecase.TargetSelector, drinkTypeID int64) error {
	return f.drinks.TagLastDrink(ctx, actor, target, drinkTypeID)
}

func (f *LedgerFacade) PayUp(ctx context.Context, actor *model.Principal, username string, amount int64) error {
	return f.admin.PayUp(ctx, actor, username, amount)
}

func (f *LedgerFacade) SetMoneyPostpaid(ctx context.Context, actor *model.Principal, username string, money int64) (*model.PostpaidUser, error) {
	return f.admin.SetMoneyPostpaid(ctx, actor, username, money)
}

func (f *LedgerFacade) SetMoneyPrepaid(ctx context.Context, actor *model.Principal, username string, money int64) (*model.PrepaidUser, error) {
	return f.admin.SetMoneyPrepaid(ctx, actor, username, money)
}

func (f *LedgerFacade) ToggleActivated(ctx context.Context, actor *model.Principal, username string, kind model.UserKind) (bool, error) {
	return f.admin.ToggleActivated(ctx, actor, username, kind)
}

func (f *LedgerFacade) DeletePrepaidUser(ctx context.Context, actor *model.Principal, username string) error {
	return f.admin.DeletePrepaidUser(ctx, actor, username)
}

func (f *LedgerFacade) PostpaidLedger(ctx context.Context, actor *model.Principal) ([]model.PostpaidUser, error) {
	return f.admin.PostpaidLedger(ctx, actor)
}

func (f *LedgerFacade) PrepaidLedger(ctx context.Context, actor *model.Principal) ([]model.PrepaidUser, error) {
	return f.admin.PrepaidLedger(ctx, actor)
}

func (f *LedgerFacade) LedgerTotals(ctx context.Context) (*model.LedgerTotals, error) {
	return f.admin.LedgerTotals(ctx)
}

func (f *LedgerFacade) DrinkTypes(ctx context.Context, actor *model.Principal) ([]model.DrinkType, error) {
	return f.catalog.DrinkTypes(ctx, actor)
}

func (f *LedgerFacade) AddDrinkType(ctx context.Context, actor *model.Principal, name, icon string, quantity int64) (*model.DrinkType, error) {
	return f.catalog.AddDrinkType(ctx, actor, name, icon, quantity)
}

func (f *LedgerFacade) SetDrinkTypeQuantity(ctx context.Context, actor *model.Principal, id, quantity int64) (*model.DrinkType, error) {
	return f.catalog.SetDrinkTypeQuantity(ctx, actor, id, quantity)
}
