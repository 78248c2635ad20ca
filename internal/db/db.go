// Package db opens the gorm connection for the configured engine.
package db

import (
	"fmt"

	"github.com/glebarez/sqlite"
	"github.com/pkg/errors"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/finansync/finansync-api/internal/config"
	"github.com/finansync/finansync-api/internal/db/dsn"
	"github.com/finansync/finansync-api/internal/db/models"
)

// ErrUnknownEngine is returned for an unsupported DB.GormEngine.
var ErrUnknownEngine = errors.New("unknown gorm engine")

// Dialector returns the gorm dialector for cfg.GormEngine.
func Dialector(cfg *config.DB) (gorm.Dialector, error) {
	source := dsn.Create(cfg)

	switch cfg.GormEngine {
	case config.EngineMySQL, "":
		return mysql.Open(source), nil
	case config.EnginePostgres:
		return postgres.Open(source), nil
	case config.EngineSQLite:
		return sqlite.Open(source), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEngine, cfg.GormEngine)
	}
}

// Open connects to the configured database.
func Open(cfg *config.DB) (*gorm.DB, error) {
	dialector, err := Dialector(cfg)
	if err != nil {
		return nil, err
	}

	gormCfg := &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	}

	if cfg.Debug {
		gormCfg.Logger = gormlogger.Default.LogMode(gormlogger.Info)
	}

	db, err := gorm.Open(dialector, gormCfg)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to connect %s database", cfg.GormEngine)
	}

	if cfg.GormEngine == config.EngineSQLite {
		// sqlite serializes writers, a single connection avoids "database is locked"
		sqlDB, err := db.DB()
		if err != nil {
			return nil, errors.Wrap(err, "failed to get sql.DB")
		}

		sqlDB.SetMaxOpenConns(1)
	}

	return db, nil
}

// Migrate creates or updates the schema of every model.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models.All()...); err != nil {
		return errors.Wrap(err, "failed to migrate database")
	}

	return nil
}
