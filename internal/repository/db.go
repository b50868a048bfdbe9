package repository

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tyler-herwig/shopping-list/internal/models"
)

const (
	maxOpenConns    = 25              // Максимальное количество открытых соединений
	maxIdleConns    = 25              // Максимальное количество простаивающих соединений
	connMaxLifetime = 5 * time.Minute // Максимальное время жизни соединения
	connMaxIdleTime = 5 * time.Minute // Максимальное время простоя соединения
)

// NewPostgresDB создает подключение GORM к PostgreSQL и выполняет автомиграцию схемы.
func NewPostgresDB(dsn string) (*gorm.DB, error) {
	log.Printf("[Repo] Подключение к PostgreSQL...")

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
		// Нарушения уникальных индексов превращаются в gorm.ErrDuplicatedKey:
		// источником истины для ответа 409 служит индекс БД, а не предварительная проверка
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("ошибка подключения к БД: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("ошибка получения пула соединений: %w", err)
	}

	// Проверка соединения
	if err = sqlDB.Ping(); err != nil {
		// Закрываем соединение в случае ошибки пинга
		closeErr := sqlDB.Close()
		if closeErr != nil {
			log.Printf("[Repo] Ошибка закрытия соединения с БД после неудачного пинга: %v", closeErr)
		}
		return nil, fmt.Errorf("ошибка проверки соединения с БД (ping): %w", err)
	}

	// Настройка пула соединений
	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	// Автомиграция схемы: таблицы, индексы и ограничения объявлены тэгами моделей
	if err = db.AutoMigrate(&models.User{}, &models.List{}, &models.ListItem{}); err != nil {
		return nil, fmt.Errorf("ошибка автомиграции схемы: %w", err)
	}

	log.Println("[Repo] Подключение к PostgreSQL успешно установлено.")
	return db, nil
}
