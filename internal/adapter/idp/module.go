package idp

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/drinktab/drinktab/internal/config"
)

// Module exposes the userinfo client to the fx graph. The client is nil
// when no userinfo endpoint is configured.
var Module = fx.Provide(newClient)

type clientParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newClient(p clientParams) (*Client, error) {
	if p.Config.UserinfoURL == "" {
		return nil, nil
	}
	return NewClient(p.Config.UserinfoURL, p.Logger)
}
