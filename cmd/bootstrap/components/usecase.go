package components

import (
	"go.uber.org/fx"

	"pitchbook/internal/pkg/clock"
	"pitchbook/internal/pkg/config"
	"pitchbook/internal/usecase"
	"pitchbook/internal/usecase/commands"
	"pitchbook/internal/usecase/queries"
	"pitchbook/internal/usecase/shared"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewAuthCommandService,
		func(u shared.UnitOfWork, c clock.Clock, cfg config.Config) *commands.BookingCommandService {
			return commands.NewBookingCommandService(u, c, cfg.Booking.MaxAdvanceDays)
		},
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewPitchQueryService,
		queries.NewAvailabilityQueryService,
		queries.NewVoucherQueryService,
		queries.NewBookingQueryService,
		queries.NewUserQueryService,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)
