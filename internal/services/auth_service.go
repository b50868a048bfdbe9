package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/tyler-herwig/shopping-list/internal/models"
	"github.com/tyler-herwig/shopping-list/internal/repository"
)

// AuthService определяет интерфейс для сервиса аутентификации.
type AuthService interface {
	Register(ctx context.Context, req *models.RegisterRequest) error
	Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error)
}

// Структура для пользовательских данных в JWT (claims) - должна совпадать с той, что в middleware.
type jwtClaims struct {
	UserID   int64  `json:"userId"`
	UserName string `json:"userName"`
	jwt.RegisteredClaims
}

// Убедимся, что authService удовлетворяет интерфейсу AuthService.
var _ AuthService = (*authService)(nil)

type authService struct {
	userRepo  repository.UserRepository // Зависимость от репозитория пользователей
	jwtSecret string                    // Секретный ключ подписи токенов (из конфигурации)
	tokenTTL  time.Duration             // Время жизни токена (из конфигурации)
}

// NewAuthService создает новый экземпляр сервиса аутентификации.
func NewAuthService(userRepo repository.UserRepository, jwtSecret string, tokenTTL time.Duration) AuthService {
	return &authService{userRepo: userRepo, jwtSecret: jwtSecret, tokenTTL: tokenTTL}
}

// Register регистрирует нового пользователя.
// Пароль сохраняется только в виде bcrypt-хеша, полное имя складывается из имени и фамилии.
func (s *authService) Register(ctx context.Context, req *models.RegisterRequest) error {
	// Хешируем пароль
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("[AuthService] Ошибка хеширования пароля для '%s': %v", req.UserName, err)
		return errors.New("внутренняя ошибка сервера при хешировании пароля")
	}

	user := &models.User{
		Username:     req.UserName,
		PasswordHash: string(hashedPassword),
		FullName:     strings.TrimSpace(req.FirstName + " " + req.LastName),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
	}

	// Создаем пользователя через репозиторий
	_, err = s.userRepo.CreateUser(ctx, user)
	if err != nil {
		if errors.Is(err, repository.ErrUsernameTaken) {
			log.Printf("[AuthService] Попытка регистрации с занятым именем: %s", req.UserName)
			return ErrUsernameTaken // Возвращаем ошибку слоя сервиса
		}
		log.Printf("[AuthService] Непредвиденная ошибка репозитория при регистрации '%s': %v", req.UserName, err)
		return errors.New("внутренняя ошибка сервера при создании пользователя")
	}

	log.Printf("[AuthService] Пользователь '%s' успешно зарегистрирован", req.UserName)
	return nil
}

// Login аутентифицирует пользователя и возвращает профиль вместе с JWT токеном.
// Несуществующий пользователь и неверный пароль различаются:
// контракт API отвечает на них разными статусами (404 и 401).
func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	// Получаем пользователя по имени пользователя
	user, err := s.userRepo.GetUserByUsername(ctx, req.UserName)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			log.Printf("[AuthService] Попытка входа несуществующего пользователя: %s", req.UserName)
			return nil, ErrUserNotFound
		}
		log.Printf("[AuthService] Ошибка репозитория при поиске '%s': %v", req.UserName, err)
		return nil, errors.New("внутренняя ошибка сервера при поиске пользователя")
	}

	// Сравниваем предоставленный пароль с хешем из базы данных
	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password))
	if err != nil {
		log.Printf("[AuthService] Неверный пароль для пользователя: %s", req.UserName)
		return nil, ErrInvalidPassword
	}

	// Генерируем JWT токен
	token, err := s.generateJWT(user)
	if err != nil {
		log.Printf("[AuthService] Ошибка генерации JWT для '%s': %v", req.UserName, err)
		return nil, errors.New("внутренняя ошибка сервера при генерации токена")
	}

	log.Printf("[AuthService] Пользователь '%s' успешно аутентифицирован", req.UserName)
	return &models.LoginResponse{
		UserID:    user.ID,
		UserName:  user.Username,
		FullName:  user.FullName,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Token:     token,
	}, nil
}

// generateJWT создает и подписывает JWT токен для пользователя.
func (s *authService) generateJWT(user *models.User) (string, error) {
	// Создаем claims (полезную нагрузку)
	claims := jwtClaims{
		UserID:   user.ID,
		UserName: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.tokenTTL)), // Время истечения
			IssuedAt:  jwt.NewNumericDate(time.Now()),                 // Время выдачи
			NotBefore: jwt.NewNumericDate(time.Now()),                 // Время, с которого токен валиден
			Issuer:    "shopping-list-api",                            // Источник токена
		},
	}

	// Создаем токен с нашими claims и методом подписи HS256
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	// Подписываем токен секретным ключом
	signedToken, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", fmt.Errorf("ошибка подписи JWT: %w", err)
	}

	return signedToken, nil
}

// Кастомные ошибки сервиса.
var (
	ErrUserNotFound    = errors.New("пользователь не найден")
	ErrInvalidPassword = errors.New("неверный пароль")
	ErrUsernameTaken   = errors.New("имя пользователя уже занято")
)
