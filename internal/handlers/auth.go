package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/tyler-herwig/shopping-list/internal/models"
	"github.com/tyler-herwig/shopping-list/internal/services"
)

// AuthService определяет интерфейс для сервиса аутентификации.
// Это позволит нам легко подменять реализацию (например, для тестов).
type AuthService interface {
	Register(ctx context.Context, req *models.RegisterRequest) error
	Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error)
}

// AuthHandler обрабатывает HTTP-запросы, связанные с аутентификацией.
type AuthHandler struct {
	service AuthService // Зависимость от интерфейса, а не конкретной реализации
}

// NewAuthHandler создает новый экземпляр AuthHandler.
func NewAuthHandler(s AuthService) *AuthHandler {
	return &AuthHandler{service: s}
}

// Register обрабатывает запрос на регистрацию нового пользователя.
// POST /api/user
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	// Декодируем JSON из тела запроса
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("[AuthHandler] Ошибка декодирования запроса регистрации: %v", err)
		writeError(w, http.StatusBadRequest, "Неверный формат запроса")
		return
	}

	// Валидация входных данных (простая)
	if req.UserName == "" || req.Password == "" {
		log.Printf("[AuthHandler] Пустое имя пользователя или пароль при регистрации")
		writeError(w, http.StatusBadRequest, "Имя пользователя и пароль не могут быть пустыми")
		return
	}

	log.Printf("[AuthHandler] Попытка регистрации пользователя: %s", req.UserName)

	if err := h.service.Register(r.Context(), &req); err != nil {
		if errors.Is(err, services.ErrUsernameTaken) {
			writeError(w, http.StatusConflict, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "Внутренняя ошибка сервера")
		return
	}

	// Созданная запись клиенту не возвращается
	writeMessage(w, http.StatusCreated, "Пользователь успешно зарегистрирован")
	log.Printf("[AuthHandler] Успешная регистрация пользователя: %s", req.UserName)
}

// Login обрабатывает запрос на вход пользователя.
// POST /api/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	// Декодируем JSON из тела запроса
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("[AuthHandler] Ошибка декодирования запроса входа: %v", err)
		writeError(w, http.StatusBadRequest, "Неверный формат запроса")
		return
	}

	// Валидация входных данных (простая)
	if req.UserName == "" || req.Password == "" {
		log.Printf("[AuthHandler] Пустое имя пользователя или пароль при входе")
		writeError(w, http.StatusBadRequest, "Имя пользователя и пароль не могут быть пустыми")
		return
	}

	log.Printf("[AuthHandler] Попытка входа пользователя: %s", req.UserName)

	resp, err := h.service.Login(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			writeError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, services.ErrInvalidPassword):
			writeError(w, http.StatusUnauthorized, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "Внутренняя ошибка сервера")
		}
		return
	}

	writeJSON(w, http.StatusOK, resp)
	log.Printf("[AuthHandler] Успешный вход пользователя: %s", req.UserName)
}

// ValidateToken подтверждает валидность bearer-токена.
// Вся проверка выполняется в middleware аутентификации, сюда доходят
// только запросы с корректным токеном.
// GET /api/validate-token
func (h *AuthHandler) ValidateToken(w http.ResponseWriter, _ *http.Request) {
	writeMessage(w, http.StatusOK, "Токен действителен")
}
