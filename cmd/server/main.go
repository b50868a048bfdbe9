package main

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"github.com/tyler-herwig/shopping-list/internal/handlers"
	appmiddleware "github.com/tyler-herwig/shopping-list/internal/middleware"
	"github.com/tyler-herwig/shopping-list/internal/repository"
	"github.com/tyler-herwig/shopping-list/internal/services"
)

const (
	defaultReadTimeout  = 10 * time.Second
	defaultWriteTimeout = 10 * time.Second
	defaultIdleTimeout  = 30 * time.Second

	corsMaxAge = 300
)

// Структура для хранения инициализированных зависимостей.
type dependencies struct {
	db              *gorm.DB
	authHandler     *handlers.AuthHandler
	listHandler     *handlers.ListHandler
	listItemHandler *handlers.ListItemHandler
}

// main - точка входа. Вызывает run и обрабатывает ошибку.
func main() {
	if err := run(); err != nil {
		log.Printf("Ошибка выполнения сервера: %v", err)
		os.Exit(1)
	}
}

// run содержит основную логику запуска сервера и возвращает ошибку.
func run() error {
	log.Println("Запуск сервера списков покупок...")

	// Загружаем .env, если он есть; уже установленные переменные окружения имеют приоритет
	if err := godotenv.Load(); err == nil {
		log.Println("Загружен файл .env")
	}

	cfg, err := parseFlags()
	if err != nil {
		return fmt.Errorf("ошибка разбора конфигурации: %w", err)
	}

	// Инициализация зависимостей
	deps, err := setupDependencies(cfg)
	if err != nil {
		return fmt.Errorf("ошибка инициализации зависимостей: %w", err)
	}
	// Отложенное закрытие соединения с БД
	defer func() {
		sqlDB, dbErr := deps.db.DB()
		if dbErr != nil {
			return
		}
		if closeErr := sqlDB.Close(); closeErr != nil {
			log.Printf("Ошибка закрытия соединения с БД: %v", closeErr)
		}
	}()

	// Настройка роутера
	r := setupRouter(cfg, deps)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  defaultReadTimeout,
		WriteTimeout: defaultWriteTimeout,
		IdleTimeout:  defaultIdleTimeout,
	}

	log.Printf("Запуск HTTP-сервера на порту %s...", cfg.Port)

	if err = server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("ошибка запуска HTTP-сервера: %w", err)
	}
	return nil
}

// setupDependencies инициализирует и возвращает все необходимые зависимости сервера.
func setupDependencies(cfg *config) (*dependencies, error) {
	deps := &dependencies{}
	var err error

	// 1. Подключение к БД (вместе с автомиграцией схемы)
	deps.db, err = repository.NewPostgresDB(cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("ошибка инициализации БД: %w", err)
	}
	log.Println("Соединение с БД успешно установлено.")

	// 2. Создание репозиториев
	userRepo := repository.NewUserRepository(deps.db)
	listRepo := repository.NewListRepository(deps.db)
	listItemRepo := repository.NewListItemRepository(deps.db)

	// 3. Создание сервисов
	authService := services.NewAuthService(userRepo, cfg.JWTSecret, cfg.TokenTTL)
	listService := services.NewListService(listRepo)
	listItemService := services.NewListItemService(listItemRepo)

	// 4. Создание обработчиков
	deps.authHandler = handlers.NewAuthHandler(authService)
	deps.listHandler = handlers.NewListHandler(listService)
	deps.listItemHandler = handlers.NewListItemHandler(listItemService)

	return deps, nil
}

// setupRouter настраивает и возвращает роутер chi.
func setupRouter(cfg *config, deps *dependencies) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS для SPA-клиента
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.CORSOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           corsMaxAge,
	}))

	// --- Маршруты --- //
	r.Get("/ping", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("pong\n"))
	})

	r.Route("/api", func(r chi.Router) {
		// Публичные маршруты (регистрация, вход)
		r.Post("/user", deps.authHandler.Register)
		r.Post("/login", deps.authHandler.Login)

		// Приватные маршруты (требуют аутентификации)
		r.Group(func(r chi.Router) {
			// Применяем middleware аутентификации ко всей группе
			r.Use(appmiddleware.NewAuthenticator(cfg.JWTSecret))

			r.Get("/validate-token", deps.authHandler.ValidateToken)

			// Маршруты для работы со списками
			r.Route("/lists", func(r chi.Router) {
				r.Post("/", deps.listHandler.CreateList)
				r.Get("/", deps.listHandler.GetLists)
				r.Get("/count", deps.listHandler.GetListCount)
				r.Get("/{id}", deps.listHandler.GetListByID)
				r.Put("/{id}", deps.listHandler.UpdateList)
				r.Delete("/{id}", deps.listHandler.DeleteList)
			})

			// Маршруты для работы с позициями списков
			r.Route("/list-items", func(r chi.Router) {
				r.Post("/", deps.listItemHandler.CreateListItem)
				r.Get("/", deps.listItemHandler.GetListItems)
				r.Get("/{id}", deps.listItemHandler.GetListItemByID)
				r.Put("/{id}", deps.listItemHandler.UpdateListItem)
				r.Delete("/{id}", deps.listItemHandler.DeleteListItem)
			})
		})
	})
	return r
}
