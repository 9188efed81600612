package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/d60-Lab/vidsync/internal/model"
)

// Options select the gorm driver. sqlite is the device-local default;
// postgres serves server deployments and benches.
type Options struct {
	Driver string // "sqlite" | "postgres"
	DSN    string
}

func Open(opts Options) (*gorm.DB, error) {
	cfg := &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)}
	switch opts.Driver {
	case "", "sqlite":
		dsn := opts.DSN
		if dsn == "" {
			dsn = "vidsync.db"
		}
		return gorm.Open(sqlite.Open(dsn), cfg)
	case "postgres":
		return gorm.Open(postgres.Open(opts.DSN), cfg)
	default:
		return nil, fmt.Errorf("database: unsupported driver %q", opts.Driver)
	}
}

// Migrate creates/updates the four entity tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Video{},
		&model.Category{},
		&model.User{},
		&model.WatchHistory{},
	)
}
