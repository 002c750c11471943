package config

import (
	"fmt"

	"invoiceapi/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// GormConfig bật TranslateError để vi phạm unique index trả về gorm.ErrDuplicatedKey
func GormConfig() *gorm.Config {
	return &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
	}
}

func ConnectDB(cfg *Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), GormConfig())
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}
	return db, nil
}

// AutoMigrate tạo bảng còn thiếu từ model. Chỉ dùng cho dev và test, schema
// production do migration CLI quản lý.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(models.All()...)
}
