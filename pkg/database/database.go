package database

import (
	"context"
	"time"

	"TubeFuss.com/cmd/model"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/pkg/errors"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	gormopentracing "gorm.io/plugin/opentracing"
)

type Options struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	Migrate         bool
}

var DefaultOptions = Options{
	MaxOpenConns:    100,
	MaxIdleConns:    10,
	ConnMaxLifetime: time.Hour,
	Migrate:         true,
}

// Open connects to MySQL, installs the tracing plugin and migrates the schema.
// The returned handle is the only store state; callers inject it into DAOs.
func Open(dsn string, opts Options) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		PrepareStmt:            true,
		SkipDefaultTransaction: true,
		TranslateError:         true,
		Logger:                 logger.Default.LogMode(logger.Warn),
		NowFunc: func() time.Time {
			return time.Now().Local()
		},
	})
	if err != nil {
		return nil, errors.Wrap(err, "open mysql failed")
	}
	if err = db.Use(gormopentracing.New()); err != nil {
		return nil, errors.Wrap(err, "install opentracing plugin failed")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(opts.MaxOpenConns)
	sqlDB.SetMaxIdleConns(opts.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(opts.ConnMaxLifetime)

	if opts.Migrate {
		if err = db.AutoMigrate(model.AllModels()...); err != nil {
			return nil, errors.Wrap(err, "auto migrate failed")
		}
	}
	hlog.Info("Connect MySQL Success")
	return db, nil
}

func Close(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func Ping(ctx context.Context, db *gorm.DB) error {
	if db == nil {
		return errors.New("database is not initialized")
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
