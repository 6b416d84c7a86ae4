package di

import (
	"go.uber.org/fx"

	"github.com/rewardhub/rewardhub/internal/adapter/alert"
	"github.com/rewardhub/rewardhub/internal/app"
	"github.com/rewardhub/rewardhub/internal/config"
	"github.com/rewardhub/rewardhub/internal/logger"
	"github.com/rewardhub/rewardhub/internal/pkg/identity"
	"github.com/rewardhub/rewardhub/internal/server/http/router"
	"github.com/rewardhub/rewardhub/internal/storage/postgres"
	"github.com/rewardhub/rewardhub/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		identity.Module,
		postgres.Module,
		alert.Module,
		usecase.Module,
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
