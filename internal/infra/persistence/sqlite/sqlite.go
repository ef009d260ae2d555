// Package sqlite contains the concrete implementation of the persistence layer
// using GORM and an embedded sqlite database.
package sqlite

import (
	"context"
	"log/slog"

	"go.uber.org/fx"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"faceid/config"
	"faceid/internal/domain/lifecycle"
	"faceid/internal/errors"
	"faceid/internal/infra/persistence/model"
)

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// New opens the sqlite database at the configured path and migrates the
// schema. The file is the single durable store of the service; it must
// survive process restarts, so WAL journaling is enabled.
func New(params Params) (*gorm.DB, error) {
	dsn := params.Config.Database.Path + "?_journal_mode=WAL&_busy_timeout=5000"

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		// The duplicate-key translation below relies on driver errors
		// surfacing as gorm.ErrDuplicatedKey.
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, errors.Wrapf(err, "open sqlite database at %s", params.Config.Database.Path)
	}

	if err := db.AutoMigrate(&model.UserModel{}); err != nil {
		return nil, errors.Wrap(err, "migrate users table")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "get sqlite sql.DB")
	}

	// sqlite serializes writers; a single connection avoids SQLITE_BUSY
	// churn under concurrent registrations.
	sqlDB.SetMaxOpenConns(1)

	params.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			ctx, cancel := context.WithTimeout(startCtx, lifecycle.DefaultTimeout)
			defer cancel()

			if err := sqlDB.PingContext(ctx); err != nil {
				return errors.Wrap(err, "ping sqlite database")
			}

			params.Logger.Info("Opened user store", slog.String("path", params.Config.Database.Path))

			return nil
		},
		OnStop: func(_ context.Context) error {
			return sqlDB.Close()
		},
	})

	return db, nil
}
