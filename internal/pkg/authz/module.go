package authz

import (
	"go.uber.org/fx"

	"github.com/drinktab/drinktab/internal/config"
)

// Module provides the group policy via fx.
var Module = fx.Provide(newPolicy)

type policyParams struct {
	fx.In

	Config *config.Config
}

func newPolicy(p policyParams) Policy {
	return New(p.Config.MemberGroup, p.Config.AdminGroup)
}
