package repository

import (
	"context"
	"time"

	"github.com/drinktab/drinktab/internal/domain/model"
)

// PostpaidRepository describes persistence operations for postpaid users.
// Every mutator is atomic with respect to the records it touches: a
// concurrent reader sees the mutation fully applied or not at all.
type PostpaidRepository interface {
	Get(ctx context.Context, username string) (*model.PostpaidUser, error)
	List(ctx context.Context) ([]model.PostpaidUser, error)
	// Upsert inserts the record when ID is zero and the username is free,
	// or replaces the mutable fields (money, activation, last drink) of the
	// record whose id and username both match. Any identity mismatch fails
	// with ErrConflict.
	Upsert(ctx context.Context, user *model.PostpaidUser) (*model.PostpaidUser, error)
	// RecordDrink debits price and stamps the drink time in one unit.
	// Fails with ErrInactive when the user is deactivated; the balance may
	// go arbitrarily negative.
	RecordDrink(ctx context.Context, username string, price int64, at time.Time) (*model.PostpaidUser, error)
	// RevertDrink refunds the given amount and clears the last drink mark,
	// provided the last drink happened at or after since. Fails with
	// ErrNoRecentDrink otherwise.
	RevertDrink(ctx context.Context, username string, refund int64, since time.Time) (*model.PostpaidUser, error)
	SetMoney(ctx context.Context, username string, money int64) (*model.PostpaidUser, error)
	ToggleActivated(ctx context.Context, username string) (bool, error)
	// Transfer moves amount from one user to another as a single atomic
	// unit; either both balances change or neither does.
	Transfer(ctx context.Context, from, to string, amount int64) error
}
