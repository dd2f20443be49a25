// Package storage provides GORM-backed repositories for the inspection
// domain. Fetch depth and deletion propagation are explicit in the
// repository method names: relation-resolving reads use GetWithX /
// preloading variants, and parent deletes cascade through the foreign
// key constraints declared on the models.
package storage

import (
	"fmt"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/thermowatch/go-thermal-backend/internal/domain"
)

type Options struct {
	Driver string // "sqlite" or "postgres"
	DSN    string
}

// Open connects to the configured database and migrates the schema.
func Open(opt Options) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch opt.Driver {
	case "sqlite":
		dialector = sqlite.Open(sqliteDSN(opt.DSN))
	case "postgres":
		dialector = postgres.Open(opt.DSN)
	default:
		return nil, fmt.Errorf("unsupported database driver: %q", opt.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("db connect: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

// sqliteDSN ensures foreign key enforcement on every pooled connection;
// SQLite does not enforce FKs (and therefore the cascades) by default.
func sqliteDSN(dsn string) string {
	if strings.Contains(dsn, "_foreign_keys") {
		return dsn
	}
	if strings.Contains(dsn, "?") {
		return dsn + "&_foreign_keys=on"
	}
	return dsn + "?_foreign_keys=on"
}

// Migrate creates or updates the schema for all entities.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&domain.Transformer{},
		&domain.Inspection{},
		&domain.Annotation{},
		&domain.AnnotationLog{},
		&domain.MaintenanceRecord{},
	)
	if err != nil {
		return fmt.Errorf("db migrate: %w", err)
	}
	return nil
}
