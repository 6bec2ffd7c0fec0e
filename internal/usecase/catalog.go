package usecase

import (
	"context"

	"github.com/drinktab/drinktab/internal/domain/model"
	"github.com/drinktab/drinktab/internal/domain/repository"
	"github.com/drinktab/drinktab/internal/pkg/authz"
)

// CatalogUseCase manages the drink-type catalog.
type CatalogUseCase struct {
	policy  authz.Policy
	catalog repository.DrinkTypeRepository
}

// NewCatalogUseCase constructs CatalogUseCase.
func NewCatalogUseCase(policy authz.Policy, catalog repository.DrinkTypeRepository) *CatalogUseCase {
	return &CatalogUseCase{policy: policy, catalog: catalog}
}

// DrinkTypes lists the catalog for any authenticated principal.
func (u *CatalogUseCase) DrinkTypes(ctx context.Context, actor *model.Principal) ([]model.DrinkType, error) {
	if err := authorize(u.policy, actor, authz.OpViewCatalog); err != nil {
		return nil, err
	}
	return u.catalog.List(ctx)
}

// AddDrinkType registers a new catalog entry.
func (u *CatalogUseCase) AddDrinkType(ctx context.Context, actor *model.Principal, name, icon string, quantity int64) (*model.DrinkType, error) {
	if err := authorize(u.policy, actor, authz.OpManageCatalog); err != nil {
		return nil, err
	}
	return u.catalog.Create(ctx, name, icon, quantity)
}

// SetDrinkTypeQuantity overrides the stock counter of a catalog entry and
// returns the updated record.
func (u *CatalogUseCase) SetDrinkTypeQuantity(ctx context.Context, actor *model.Principal, id, quantity int64) (*model.DrinkType, error) {
	if err := authorize(u.policy, actor, authz.OpManageCatalog); err != nil {
		return nil, err
	}
	return u.catalog.SetQuantity(ctx, id, quantity)
}
