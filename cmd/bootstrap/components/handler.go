package components

import (
	"go.uber.org/fx"

	"pitchbook/internal/handler"
	"pitchbook/internal/handler/api"
	"pitchbook/internal/handler/middleware"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAuthHandler,
		api.NewPitchHandler,
		api.NewVoucherHandler,
		api.NewBookingHandler,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)
