package repository

import (
	"context"
	"errors"
	"fmt"
	"log"

	"gorm.io/gorm"

	"github.com/tyler-herwig/shopping-list/internal/models"
)

// UserRepository определяет методы для работы с данными пользователей в хранилище.
type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) (int64, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
}

// gormUserRepository реализует UserRepository поверх GORM.
type gormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository создает новый экземпляр репозитория пользователей.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &gormUserRepository{db: db}
}

// CreateUser создает нового пользователя в базе данных.
// Уникальность имени гарантирует индекс БД; его нарушение транслируется в ErrUsernameTaken.
// Возвращает ID созданного пользователя или ошибку.
func (r *gormUserRepository) CreateUser(ctx context.Context, user *models.User) (int64, error) {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			log.Printf("[UserRepo] Ошибка создания пользователя: имя пользователя '%s' уже занято", user.Username)
			return 0, ErrUsernameTaken
		}
		log.Printf("[UserRepo] Непредвиденная ошибка при создании пользователя '%s': %v", user.Username, err)
		return 0, fmt.Errorf("ошибка выполнения запроса на создание пользователя: %w", err)
	}

	log.Printf("[UserRepo] Пользователь '%s' успешно создан с ID %d", user.Username, user.ID)
	return user.ID, nil
}

// GetUserByUsername находит пользователя по его имени (точное совпадение с учетом регистра).
// Возвращает пользователя или ошибку, если пользователь не найден или произошла другая ошибка.
func (r *gormUserRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User

	err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("[UserRepo] Пользователь с именем '%s' не найден", username)
			return nil, ErrUserNotFound
		}
		log.Printf("[UserRepo] Ошибка при поиске пользователя '%s': %v", username, err)
		return nil, fmt.Errorf("ошибка выполнения запроса на получение пользователя: %w", err)
	}

	return &user, nil
}

// Кастомные ошибки репозитория.
var (
	ErrUserNotFound  = errors.New("пользователь не найден")
	ErrUsernameTaken = errors.New("имя пользователя уже занято")
)
