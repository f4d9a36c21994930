package repo

import (
	"Drawer/internal/model"
	"fmt"
	"strings"

	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"
)

// InitDB открывает хранилище по DSN и применяет миграции.
// DSN вида postgres://... выбирает PostgreSQL, всё остальное считается путём/DSN SQLite (modernc).
func InitDB(dsn string) (*gorm.DB, error) {
	var dial gorm.Dialector
	embedded := false
	switch {
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		dial = postgres.Open(dsn)
	default:
		dial = gormsqlite.Dialector{DriverName: "sqlite", DSN: dsn}
		embedded = true
	}

	db, err := gorm.Open(dial, &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if embedded {
		// одно соединение: все операции с SQLite сериализуются
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}

	if err := Migrate(db); err != nil {
		return nil, fmt.Errorf("migrate database: %w", err)
	}
	return db, nil
}

// Migrate создаёт таблицы и индексы для всех моделей.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&model.ClipboardEntry{}, &model.Tag{}, &model.TagClipboard{})
}

// Close закрывает пул соединений.
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
