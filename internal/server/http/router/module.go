package router

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/rewardhub/rewardhub/internal/app"
	"github.com/rewardhub/rewardhub/internal/config"
	"github.com/rewardhub/rewardhub/internal/pkg/identity"
	"github.com/rewardhub/rewardhub/internal/pkg/rewards"
)

// Module registers HTTP router construction for the fx runtime.
var Module = fx.Provide(newRouter)

type routerParams struct {
	fx.In

	Facade   *app.RewardFacade
	Verifier *identity.Verifier
	Config   *config.Config
	Logger   *slog.Logger
}

func newRouter(p routerParams) *gin.Engine {
	signer := rewards.NewSigner(p.Config.RewardCallbackSecret)
	return Setup(p.Facade, p.Verifier, signer, p.Logger)
}
