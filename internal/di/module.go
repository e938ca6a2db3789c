package di

import (
	"go.uber.org/fx"

	"github.com/cartcloud/backend/internal/adapter/payment"
	"github.com/cartcloud/backend/internal/app"
	"github.com/cartcloud/backend/internal/config"
	"github.com/cartcloud/backend/internal/logger"
	"github.com/cartcloud/backend/internal/pkg/auth"
	"github.com/cartcloud/backend/internal/server/http/handlers"
	"github.com/cartcloud/backend/internal/server/http/router"
	"github.com/cartcloud/backend/internal/storage/postgres"
	"github.com/cartcloud/backend/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		payment.Module,
		usecase.Module,
		fx.Provide(func(f *app.MarketFacade) handlers.MarketFacade { return f }),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
