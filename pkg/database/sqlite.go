package database

import (
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite" // регистрирует драйвер "sqlite"

	"github.com/yourusername/quiz-maker/internal/domain/entity"
)

// NewSQLiteDB открывает файл sqlite (или ":memory:") и создает схему через AutoMigrate
func NewSQLiteDB(path string, logLevel logger.LogLevel) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Dialector{DriverName: "sqlite", DSN: path}, &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	// sqlite не поддерживает параллельную запись, а ":memory:" живет в рамках одного соединения
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&entity.User{}, &entity.Quiz{}); err != nil {
		return nil, fmt.Errorf("failed to migrate sqlite schema: %w", err)
	}
	return db, nil
}
