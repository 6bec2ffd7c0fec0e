package repository

import (
	"context"
	"time"

	"github.com/drinktab/drinktab/internal/domain/model"
)

// PrepaidRepository describes persistence operations for prepaid users.
// Mutators address records by the store-assigned ID: usernames may be
// reused after deletion, IDs and user keys never are.
type PrepaidRepository interface {
	Get(ctx context.Context, username string) (*model.PrepaidUser, error)
	GetByKey(ctx context.Context, userKey string) (*model.PrepaidUser, error)
	List(ctx context.Context) ([]model.PrepaidUser, error)
	ListByOwner(ctx context.Context, postpaidUserID int64) ([]model.PrepaidUser, error)
	// Upsert inserts the record when ID is zero, or replaces the mutable
	// fields of the matching record. Identity here is id, username, user
	// key and owner; changing any of them, colliding with an existing
	// username or key, or reusing a retired key fails with ErrConflict.
	Upsert(ctx context.Context, user *model.PrepaidUser) (*model.PrepaidUser, error)
	// Delete removes the record and retires its user key for the lifetime
	// of the store.
	Delete(ctx context.Context, username string) error
	RecordDrink(ctx context.Context, id int64, price int64, at time.Time) (*model.PrepaidUser, error)
	RevertDrink(ctx context.Context, id int64, refund int64, since time.Time) (*model.PrepaidUser, error)
	AddMoney(ctx context.Context, id int64, amount int64) (*model.PrepaidUser, error)
	SetMoney(ctx context.Context, id int64, money int64) (*model.PrepaidUser, error)
	ToggleActivated(ctx context.Context, id int64) (bool, error)
}
