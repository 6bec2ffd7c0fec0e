package repository

import (
	"context"

	"github.com/drinktab/drinktab/internal/domain/model"
)

// DrinkTypeRepository manages the drink catalog.
type DrinkTypeRepository interface {
	List(ctx context.Context) ([]model.DrinkType, error)
	Create(ctx context.Context, name, icon string, quantity int64) (*model.DrinkType, error)
	SetQuantity(ctx context.Context, id int64, quantity int64) (*model.DrinkType, error)
	// MarkConsumed counts one drink against the type: consumed goes up,
	// stock goes down. Stock has no floor.
	MarkConsumed(ctx context.Context, id int64) error
}
