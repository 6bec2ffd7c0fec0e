package test

import (
	"context"
	"time"

	domainErrors "github.com/drinktab/drinktab/internal/domain/errors"
	"github.com/drinktab/drinktab/internal/domain/model"
	"github.com/drinktab/drinktab/internal/domain/repository"
)

// TransferCall captures one settlement invocation.
type TransferCall struct {
	From   string
	To     string
	Amount int64
}

// PostpaidRepositoryStub lets tests control postpaid ledger behaviour.
type PostpaidRepositoryStub struct {
	GetFn             func(context.Context, string) (*model.PostpaidUser, error)
	ListFn            func(context.Context) ([]model.PostpaidUser, error)
	UpsertFn          func(context.Context, *model.PostpaidUser) (*model.PostpaidUser, error)
	RecordDrinkFn     func(context.Context, string, int64, time.Time) (*model.PostpaidUser, error)
	RevertDrinkFn     func(context.Context, string, int64, time.Time) (*model.PostpaidUser, error)
	SetMoneyFn        func(context.Context, string, int64) (*model.PostpaidUser, error)
	ToggleActivatedFn func(context.Context, string) (bool, error)
	TransferFn        func(context.Context, string, string, int64) error

	Users     []model.PostpaidUser
	Transfers []TransferCall
}

// Get scans configured users or applies the override.
func (s *PostpaidRepositoryStub) Get(ctx context.Context, username string) (*model.PostpaidUser, error) {
	if s.GetFn != nil {
		return s.GetFn(ctx, username)
	}
	for _, u := range s.Users {
		if u.Username == username {
			user := u
			return &user, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// List returns configured users.
func (s *PostpaidRepositoryStub) List(ctx context.Context) ([]model.PostpaidUser, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx)
	}
	return s.Users, nil
}

// Upsert echoes the record back, assigning an ID on insert.
func (s *PostpaidRepositoryStub) Upsert(ctx context.Context, user *model.PostpaidUser) (*model.PostpaidUser, error) {
	if s.UpsertFn != nil {
		return s.UpsertFn(ctx, user)
	}
	stored := *user
	if stored.ID == 0 {
		stored.ID = 1
	}
	return &stored, nil
}

// RecordDrink returns a debited record unless overridden.
func (s *PostpaidRepositoryStub) RecordDrink(ctx context.Context, username string, price int64, at time.Time) (*model.PostpaidUser, error) {
	if s.RecordDrinkFn != nil {
		return s.RecordDrinkFn(ctx, username, price, at)
	}
	mark := at
	return &model.PostpaidUser{ID: 1, Username: username, Money: -price, Activated: true, LastDrink: &mark}, nil
}

// RevertDrink returns a refunded record unless overridden.
func (s *PostpaidRepositoryStub) RevertDrink(ctx context.Context, username string, refund int64, since time.Time) (*model.PostpaidUser, error) {
	if s.RevertDrinkFn != nil {
		return s.RevertDrinkFn(ctx, username, refund, since)
	}
	return &model.PostpaidUser{ID: 1, Username: username, Money: refund, Activated: true}, nil
}

// SetMoney echoes the updated record unless overridden.
func (s *PostpaidRepositoryStub) SetMoney(ctx context.Context, username string, money int64) (*model.PostpaidUser, error) {
	if s.SetMoneyFn != nil {
		return s.SetMoneyFn(ctx, username, money)
	}
	return &model.PostpaidUser{ID: 1, Username: username, Money: money, Activated: true}, nil
}

// ToggleActivated applies the override when provided.
func (s *PostpaidRepositoryStub) ToggleActivated(ctx context.Context, username string) (bool, error) {
	if s.ToggleActivatedFn != nil {
		return s.ToggleActivatedFn(ctx, username)
	}
	return true, nil
}

// Transfer records settlement invocations.
func (s *PostpaidRepositoryStub) Transfer(ctx context.Context, from, to string, amount int64) error {
	if s.TransferFn != nil {
		return s.TransferFn(ctx, from, to, amount)
	}
	s.Transfers = append(s.Transfers, TransferCall{From: from, To: to, Amount: amount})
	return nil
}

// PrepaidRepositoryStub lets tests control prepaid ledger behaviour.
type PrepaidRepositoryStub struct {
	GetFn             func(context.Context, string) (*model.PrepaidUser, error)
	GetByKeyFn        func(context.Context, string) (*model.PrepaidUser, error)
	ListFn            func(context.Context) ([]model.PrepaidUser, error)
	ListByOwnerFn     func(context.Context, int64) ([]model.PrepaidUser, error)
	UpsertFn          func(context.Context, *model.PrepaidUser) (*model.PrepaidUser, error)
	DeleteFn          func(context.Context, string) error
	RecordDrinkFn     func(context.Context, int64, int64, time.Time) (*model.PrepaidUser, error)
	RevertDrinkFn     func(context.Context, int64, int64, time.Time) (*model.PrepaidUser, error)
	AddMoneyFn        func(context.Context, int64, int64) (*model.PrepaidUser, error)
	SetMoneyFn        func(context.Context, int64, int64) (*model.PrepaidUser, error)
	ToggleActivatedFn func(context.Context, int64) (bool, error)

	Users   []model.PrepaidUser
	Deleted []string
}

// Get scans configured users or applies the override.
func (s *PrepaidRepositoryStub) Get(ctx context.Context, username string) (*model.PrepaidUser, error) {
	if s.GetFn != nil {
		return s.GetFn(ctx, username)
	}
	for _, u := range s.Users {
		if u.Username == username {
			user := u
			return &user, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// GetByKey scans configured users or applies the override.
func (s *PrepaidRepositoryStub) GetByKey(ctx context.Context, userKey string) (*model.PrepaidUser, error) {
	if s.GetByKeyFn != nil {
		return s.GetByKeyFn(ctx, userKey)
	}
	for _, u := range s.Users {
		if u.UserKey == userKey {
			user := u
			return &user, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// List returns configured users.
func (s *PrepaidRepositoryStub) List(ctx context.Context) ([]model.PrepaidUser, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx)
	}
	return s.Users, nil
}

// ListByOwner filters configured users by owner.
func (s *PrepaidRepositoryStub) ListByOwner(ctx context.Context, postpaidUserID int64) ([]model.PrepaidUser, error) {
	if s.ListByOwnerFn != nil {
		return s.ListByOwnerFn(ctx, postpaidUserID)
	}
	owned := make([]model.PrepaidUser, 0)
	for _, u := range s.Users {
		if u.PostpaidUserID == postpaidUserID {
			owned = append(owned, u)
		}
	}
	return owned, nil
}

// Upsert echoes the record back, assigning an ID on insert.
func (s *PrepaidRepositoryStub) Upsert(ctx context.Context, user *model.PrepaidUser) (*model.PrepaidUser, error) {
	if s.UpsertFn != nil {
		return s.UpsertFn(ctx, user)
	}
	stored := *user
	if stored.ID == 0 {
		stored.ID = 1
	}
	return &stored, nil
}

// Delete records deletions.
func (s *PrepaidRepositoryStub) Delete(ctx context.Context, username string) error {
	if s.DeleteFn != nil {
		return s.DeleteFn(ctx, username)
	}
	s.Deleted = append(s.Deleted, username)
	return nil
}

// RecordDrink returns a debited record unless overridden.
func (s *PrepaidRepositoryStub) RecordDrink(ctx context.Context, id int64, price int64, at time.Time) (*model.PrepaidUser, error) {
	if s.RecordDrinkFn != nil {
		return s.RecordDrinkFn(ctx, id, price, at)
	}
	mark := at
	return &model.PrepaidUser{ID: id, Money: -price, Activated: true, LastDrink: &mark}, nil
}

// RevertDrink returns a refunded record unless overridden.
func (s *PrepaidRepositoryStub) RevertDrink(ctx context.Context, id int64, refund int64, since time.Time) (*model.PrepaidUser, error) {
	if s.RevertDrinkFn != nil {
		return s.RevertDrinkFn(ctx, id, refund, since)
	}
	return &model.PrepaidUser{ID: id, Money: refund, Activated: true}, nil
}

// AddMoney returns an adjusted record unless overridden.
func (s *PrepaidRepositoryStub) AddMoney(ctx context.Context, id int64, amount int64) (*model.PrepaidUser, error) {
	if s.AddMoneyFn != nil {
		return s.AddMoneyFn(ctx, id, amount)
	}
	return &model.PrepaidUser{ID: id, Money: amount, Activated: true}, nil
}

// SetMoney echoes the updated record unless overridden.
func (s *PrepaidRepositoryStub) SetMoney(ctx context.Context, id int64, money int64) (*model.PrepaidUser, error) {
	if s.SetMoneyFn != nil {
		return s.SetMoneyFn(ctx, id, money)
	}
	return &model.PrepaidUser{ID: id, Money: money, Activated: true}, nil
}

// ToggleActivated applies the override when provided.
func (s *PrepaidRepositoryStub) ToggleActivated(ctx context.Context, id int64) (bool, error) {
	if s.ToggleActivatedFn != nil {
		return s.ToggleActivatedFn(ctx, id)
	}
	return true, nil
}

// DrinkTypeRepositoryStub lets tests control the catalog.
type DrinkTypeRepositoryStub struct {
	ListFn         func(context.Context) ([]model.DrinkType, error)
	CreateFn       func(context.Context, string, string, int64) (*model.DrinkType, error)
	SetQuantityFn  func(context.Context, int64, int64) (*model.DrinkType, error)
	MarkConsumedFn func(context.Context, int64) error

	Types       []model.DrinkType
	ConsumedIDs []int64
}

// List returns configured types.
func (s *DrinkTypeRepositoryStub) List(ctx context.Context) ([]model.DrinkType, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx)
	}
	return s.Types, nil
}

// Create echoes a new catalog entry back.
func (s *DrinkTypeRepositoryStub) Create(ctx context.Context, name, icon string, quantity int64) (*model.DrinkType, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, name, icon, quantity)
	}
	return &model.DrinkType{ID: 1, Name: name, Icon: icon, Quantity: quantity}, nil
}

// SetQuantity echoes the updated record unless overridden.
func (s *DrinkTypeRepositoryStub) SetQuantity(ctx context.Context, id, quantity int64) (*model.DrinkType, error) {
	if s.SetQuantityFn != nil {
		return s.SetQuantityFn(ctx, id, quantity)
	}
	return &model.DrinkType{ID: id, Name: "beer", Quantity: quantity}, nil
}

// MarkConsumed records tagged drinks.
func (s *DrinkTypeRepositoryStub) MarkConsumed(ctx context.Context, id int64) error {
	if s.MarkConsumedFn != nil {
		return s.MarkConsumedFn(ctx, id)
	}
	s.ConsumedIDs = append(s.ConsumedIDs, id)
	return nil
}

var _ repository.PostpaidRepository = (*PostpaidRepositoryStub)(nil)
var _ repository.PrepaidRepository = (*PrepaidRepositoryStub)(nil)
var _ repository.DrinkTypeRepository = (*DrinkTypeRepositoryStub)(nil)
