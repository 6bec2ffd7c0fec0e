package identity

import (
	"go.uber.org/fx"

	"github.com/drinktab/drinktab/internal/adapter/idp"
	"github.com/drinktab/drinktab/internal/config"
)

// Module wires principal resolution for fx.
var Module = fx.Provide(newResolver)

type resolverParams struct {
	fx.In

	Config *config.Config
	IdP    *idp.Client
}

func newResolver(p resolverParams) Resolver {
	chain := Chain{NewJWTResolver(p.Config.JWTSecret)}
	if p.IdP != nil {
		chain = append(chain, p.IdP)
	}
	return chain
}
