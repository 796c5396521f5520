package infra

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"tripplanner/internal/models/db_models"
)

func InitPostgresql(dsn string, logger *zap.Logger) (*gorm.DB, error) {
	connectionPool, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}

	if err := connectionPool.AutoMigrate(&db_models.Session{}); err != nil {
		return nil, fmt.Errorf("error migrating sessions table: %w", err)
	}

	logger.Info("PostgreSQL connection established")
	return connectionPool, nil
}

func ClosePostgresql(db *gorm.DB, logger *zap.Logger) {
	sqlDB, err := db.DB()
	if err != nil {
		logger.Error("Error getting database instance", zap.Error(err))
		return
	}

	if err := sqlDB.Close(); err != nil {
		logger.Error("Error closing database connection", zap.Error(err))
	} else {
		logger.Info("PostgreSQL database connection closed successfully")
	}
}
