package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"
)

const (
	// Порт по умолчанию для HTTP-сервера.
	defaultServerPort = "5001"
	// Время жизни токена по умолчанию.
	defaultTokenTTL = time.Hour
	// Origin SPA-клиента по умолчанию (dev-сервер Vite).
	defaultCORSOrigin = "http://localhost:5173"

	// Переменные окружения.
	envServerPort  = "SERVER_PORT"
	envDatabaseDSN = "DATABASE_DSN"
	envJWTSecret   = "JWT_SECRET" //nolint:gosec // Ложное срабатывание, это имя переменной окружения
	envTokenTTL    = "JWT_EXPIRES_IN"
	envCORSOrigin  = "CORS_ORIGIN"
)

// config хранит конфигурацию сервера.
type config struct {
	Port        string
	DatabaseDSN string
	JWTSecret   string
	TokenTTL    time.Duration
	CORSOrigin  string
}

// parseFlags разбирает флаги и переменные окружения, возвращает config или ошибку.
// Флаги имеют приоритет над переменными окружения.
func parseFlags() (*config, error) {
	cfg := &config{}

	// Определяем флаги
	flag.StringVar(&cfg.Port, "port", "",
		fmt.Sprintf("Порт для запуска HTTP-сервера (env: %s, default: %s)", envServerPort, defaultServerPort))
	flag.StringVar(&cfg.DatabaseDSN, "database-dsn", "",
		fmt.Sprintf("Строка подключения к базе данных (env: %s)", envDatabaseDSN))
	flag.StringVar(&cfg.JWTSecret, "jwt-secret", "",
		fmt.Sprintf("Секретный ключ подписи JWT токенов (env: %s)", envJWTSecret))
	flag.DurationVar(&cfg.TokenTTL, "token-ttl", 0,
		fmt.Sprintf("Время жизни JWT токена (env: %s, default: %s)", envTokenTTL, defaultTokenTTL))
	flag.StringVar(&cfg.CORSOrigin, "cors-origin", "",
		fmt.Sprintf("Разрешенный origin для CORS (env: %s, default: %s)", envCORSOrigin, defaultCORSOrigin))

	// Парсим флаги
	flag.Parse()

	// Применяем переменные окружения, если флаги не заданы
	if cfg.Port == "" {
		if value, ok := os.LookupEnv(envServerPort); ok {
			cfg.Port = value
		} else {
			cfg.Port = defaultServerPort
		}
	}
	if cfg.DatabaseDSN == "" {
		if value, ok := os.LookupEnv(envDatabaseDSN); ok {
			cfg.DatabaseDSN = value
		}
	}
	if cfg.JWTSecret == "" {
		if value, ok := os.LookupEnv(envJWTSecret); ok {
			cfg.JWTSecret = value
		}
	}
	if cfg.TokenTTL == 0 {
		if value, ok := os.LookupEnv(envTokenTTL); ok {
			ttl, err := time.ParseDuration(value)
			if err != nil {
				return nil, fmt.Errorf("неверное значение %s: %w", envTokenTTL, err)
			}
			cfg.TokenTTL = ttl
		} else {
			cfg.TokenTTL = defaultTokenTTL
		}
	}
	if cfg.CORSOrigin == "" {
		if value, ok := os.LookupEnv(envCORSOrigin); ok {
			cfg.CORSOrigin = value
		} else {
			cfg.CORSOrigin = defaultCORSOrigin
		}
	}

	// Проверяем обязательные параметры
	if cfg.DatabaseDSN == "" {
		return nil, errors.New("не указана строка подключения к БД (--database-dsn или " + envDatabaseDSN + ")")
	}
	if cfg.JWTSecret == "" {
		return nil, errors.New("не указан секретный ключ JWT (--jwt-secret или " + envJWTSecret + ")")
	}

	return cfg, nil
}
