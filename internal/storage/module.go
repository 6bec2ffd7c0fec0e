package storage

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/drinktab/drinktab/internal/config"
	"github.com/drinktab/drinktab/internal/domain/repository"
	"github.com/drinktab/drinktab/internal/storage/memory"
	"github.com/drinktab/drinktab/internal/storage/postgres"
)

// Module wires the ledger store and repository adapters. A configured
// DATABASE_URI selects PostgreSQL; without one the service runs on the
// in-memory store.
var Module = fx.Options(
	fx.Provide(newFactory),
	fx.Provide(
		func(f repository.Factory) repository.PostpaidRepository { return f.Postpaid() },
		func(f repository.Factory) repository.PrepaidRepository { return f.Prepaid() },
		func(f repository.Factory) repository.DrinkTypeRepository { return f.DrinkTypes() },
	),
	fx.Invoke(registerLifecycle),
)

type factoryParams struct {
	fx.In

	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

var newPostgres = func(ctx context.Context, dsn string, logger *slog.Logger) (repository.Factory, error) {
	return postgres.New(ctx, dsn, logger)
}

func newFactory(p factoryParams) (repository.Factory, error) {
	if p.Config.DatabaseURI == "" {
		p.Logger.Warn("no database configured, ledger will not survive a restart")
		return memory.New(), nil
	}
	return newPostgres(p.Ctx, p.Config.DatabaseURI, p.Logger)
}

func registerLifecycle(lc fx.Lifecycle, factory repository.Factory) {
	closer, ok := factory.(interface{ Close() })
	if !ok {
		return
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			closer.Close()
			return nil
		},
	})
}
