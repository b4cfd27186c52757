package components

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"

	"pitchbook/internal/infra/db"
	"pitchbook/internal/infra/readstore"
	"pitchbook/internal/infra/uow"
	"pitchbook/internal/infra/writerepo"
	"pitchbook/internal/notifier"
	"pitchbook/internal/usecase/queries"
	"pitchbook/internal/usecase/shared"
)

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		NewDBTX,
		fx.Annotate(
			uow.NewPostgresUnitOfWork,
			fx.As(new(shared.UnitOfWork)),
		),
		fx.Annotate(
			readstore.NewPitchReadStore,
			fx.As(new(queries.PitchReadStore)),
		),
		fx.Annotate(
			readstore.NewVoucherReadStore,
			fx.As(new(queries.VoucherReadStore)),
		),
		fx.Annotate(
			readstore.NewBookingReadStore,
			fx.As(new(queries.BookingReadStore)),
		),
		fx.Annotate(
			readstore.NewUserReadStore,
			fx.As(new(queries.UserReadStore)),
		),
		fx.Annotate(
			writerepo.NewNotificationRepository,
			fx.As(new(notifier.Queue)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}
