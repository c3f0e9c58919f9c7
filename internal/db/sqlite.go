package db

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const sqliteDSNParams = "?_foreign_keys=on&_busy_timeout=5000"

// gormWriter routes gorm's slow-query and error output into zap.
type gormWriter struct {
	logger *zap.SugaredLogger
}

func (writer gormWriter) Printf(format string, args ...interface{}) {
	writer.logger.Warnf(format, args...)
}

// OpenSQLite opens (creating if needed) the database at dbPath and brings
// its schema up to date with the embedded migrations.
func OpenSQLite(dbPath string, logger *zap.Logger) (*gorm.DB, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	database, err := gorm.Open(sqlite.Open(dbPath+sqliteDSNParams), &gorm.Config{
		Logger: gormlogger.New(
			gormWriter{logger: logger.Named("gorm").Sugar()},
			gormlogger.Config{
				SlowThreshold:             time.Second,
				LogLevel:                  gormlogger.Warn,
				IgnoreRecordNotFoundError: true,
			},
		),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	applied, err := newMigrator(database, logger).apply()
	if err != nil {
		return nil, fmt.Errorf("apply embedded migrations: %w", err)
	}
	logger.Debug("database ready", zap.String("path", dbPath), zap.Int("migrations_applied", applied))

	return database, nil
}

// Close releases the underlying connection pool.
func Close(database *gorm.DB) error {
	sqlDB, err := database.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
