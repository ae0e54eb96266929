package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/care-scheduler/internal/audit"
	"github.com/BruksfildServices01/care-scheduler/internal/config"
	dbpkg "github.com/BruksfildServices01/care-scheduler/internal/db"
	"github.com/BruksfildServices01/care-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/care-scheduler/internal/domain/user"
	"github.com/BruksfildServices01/care-scheduler/internal/infra/repository"
)

type stores struct {
	appointments appointment.Repository
	users        user.Repository
	audit        audit.Store

	// migrate prepares the schema or indexes of the selected backend.
	migrate func(ctx context.Context) error
	close   func(ctx context.Context) error
}

func openStores(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*stores, error) {
	switch cfg.StoreDriver {
	case config.StoreMongo:
		client, db, err := dbpkg.NewMongo(ctx, cfg)
		if err != nil {
			return nil, err
		}
		log.Info().Str("database", cfg.MongoDatabase).Msg("connected to mongo")

		return &stores{
			appointments: repository.NewAppointmentMongoRepository(db),
			users:        repository.NewUserMongoRepository(db),
			audit:        repository.NewAuditMongoRepository(db),
			migrate: func(ctx context.Context) error {
				return dbpkg.EnsureIndexes(ctx, db)
			},
			close: client.Disconnect,
		}, nil

	case config.StorePostgres:
		db, err := dbpkg.NewDB(cfg)
		if err != nil {
			return nil, err
		}
		log.Info().Msg("connected to postgres")

		return &stores{
			appointments: repository.NewAppointmentGormRepository(db),
			users:        repository.NewUserGormRepository(db),
			audit:        repository.NewAuditGormRepository(db),
			migrate: func(context.Context) error {
				return dbpkg.Migrate(db)
			},
			close: func(context.Context) error {
				return dbpkg.Close(db)
			},
		}, nil

	case config.StoreMemory:
		log.Warn().Msg("using in-memory store; data is lost on exit")

		return &stores{
			appointments: repository.NewAppointmentMemoryRepository(),
			users:        repository.NewUserMemoryRepository(),
			audit:        repository.NewAuditMemoryRepository(),
			migrate:      func(context.Context) error { return nil },
			close:        func(context.Context) error { return nil },
		}, nil
	}

	return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
}
