package services

import (
	"path/filepath"
	"testing"
	"time"

	"invoiceapi/dto"
	"invoiceapi/models"

	"github.com/glebarez/sqlite"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	if err := db.AutoMigrate(models.All()...); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func newTestUserService(t *testing.T, db *gorm.DB) *UserService {
	t.Helper()
	return NewUserService(UserServiceOptions{
		DB:       db,
		Tokens:   NewTokenService("test-secret", time.Hour),
		HashCost: bcrypt.MinCost,
	})
}

func registerInput(name, email, phone, password string) dto.RegisterInput {
	return dto.RegisterInput{
		Name:     dto.Ptr(name),
		Email:    dto.Ptr(email),
		Phone:    dto.Ptr(phone),
		Password: dto.Ptr(password),
	}
}

func loginInput(email, password string) dto.LoginInput {
	return dto.LoginInput{Email: dto.Ptr(email), Password: dto.Ptr(password)}
}
