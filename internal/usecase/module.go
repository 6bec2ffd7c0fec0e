package usecase

import (
	"go.uber.org/fx"

	"github.com/drinktab/drinktab/internal/config"
	"github.com/drinktab/drinktab/internal/domain/repository"
	"github.com/drinktab/drinktab/internal/pkg/authz"
)

// Module provides the transaction engine use cases to the fx container.
var Module = fx.Provide(
	NewAccountUseCase,
	NewAdminUseCase,
	NewCatalogUseCase,
	newDrinkUseCase,
)

type drinkParams struct {
	fx.In

	Policy   authz.Policy
	Postpaid repository.PostpaidRepository
	Prepaid  repository.PrepaidRepository
	Catalog  repository.DrinkTypeRepository
	Config   *config.Config
}

func newDrinkUseCase(p drinkParams) *DrinkUseCase {
	return NewDrinkUseCase(p.Policy, p.Postpaid, p.Prepaid, p.Catalog, p.Config.RevertWindow)
}
