package bootstrap

import (
	"gorm.io/gorm"

	"github.com/thermowatch/go-thermal-backend/config"
	"github.com/thermowatch/go-thermal-backend/internal/storage"
)

// OpenDB connects to the configured database and runs schema migration.
func OpenDB(cfg config.DatabaseConfig) (*gorm.DB, error) {
	return storage.Open(storage.Options{
		Driver: cfg.Driver,
		DSN:    cfg.DSN,
	})
}
