package di

import (
	"go.uber.org/fx"

	"github.com/drinktab/drinktab/internal/adapter/idp"
	"github.com/drinktab/drinktab/internal/app"
	"github.com/drinktab/drinktab/internal/config"
	"github.com/drinktab/drinktab/internal/domain/repository"
	"github.com/drinktab/drinktab/internal/logger"
	"github.com/drinktab/drinktab/internal/pkg/authz"
	"github.com/drinktab/drinktab/internal/pkg/identity"
	"github.com/drinktab/drinktab/internal/server/http/handlers"
	"github.com/drinktab/drinktab/internal/server/http/router"
	"github.com/drinktab/drinktab/internal/storage"
	"github.com/drinktab/drinktab/internal/usecase"
	"github.com/drinktab/drinktab/internal/worker"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		idp.Module,
		identity.Module,
		authz.Module,
		storage.Module,
		usecase.Module,
		fx.Provide(func(f *app.LedgerFacade) handlers.LedgerFacade { return f }),
		fx.Provide(func(f *app.LedgerFacade) worker.StatsSource { return f }),
		fx.Provide(func(f repository.Factory) handlers.HealthChecker { return f }),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
