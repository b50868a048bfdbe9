package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// Тип для ключа контекста.
type contextKey string

// Ключи для хранения данных пользователя в контексте.
const (
	UserIDKey   contextKey = "userID"
	UserNameKey contextKey = "userName"
)

// Структура для пользовательских данных в JWT (claims) - должна совпадать с той, что в services.
type jwtClaims struct {
	UserID   int64  `json:"userId"`
	UserName string `json:"userName"`
	jwt.RegisteredClaims
}

// NewAuthenticator возвращает middleware, проверяющий JWT токен аутентификации.
// Секретный ключ передается из конфигурации. Любой отсутствующий, неверно
// оформленный, неподписанный или истекший токен отклоняется со статусом 401
// до того, как запрос дойдет до обработчика.
func NewAuthenticator(jwtSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Получаем заголовок Authorization
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				log.Println("[AuthMiddleware] Заголовок Authorization отсутствует")
				unauthorized(w, "Требуется аутентификация")
				return
			}

			// Проверяем формат "Bearer token"
			headerParts := strings.Split(authHeader, " ")
			if len(headerParts) != 2 || strings.ToLower(headerParts[0]) != "bearer" {
				log.Printf("[AuthMiddleware] Неверный формат заголовка Authorization: %s", authHeader)
				unauthorized(w, "Неверный формат токена")
				return
			}

			tokenString := headerParts[1]

			// Парсим и валидируем токен
			claims := &jwtClaims{}
			token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
				// Убеждаемся, что метод подписи - HS256
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("неожиданный метод подписи: %v", token.Header["alg"])
				}
				// Возвращаем секретный ключ
				return []byte(jwtSecret), nil
			})

			if err != nil {
				log.Printf("[AuthMiddleware] Ошибка парсинга/валидации токена: %v", err)
				unauthorized(w, "Невалидный токен")
				return
			}

			// Проверяем валидность токена (включая время жизни)
			if !token.Valid {
				log.Println("[AuthMiddleware] Предоставлен невалидный токен (возможно, истек)")
				unauthorized(w, "Невалидный токен")
				return
			}

			// Добавляем данные пользователя в контекст запроса
			ctx := context.WithValue(r.Context(), UserIDKey, claims.UserID)
			ctx = context.WithValue(ctx, UserNameKey, claims.UserName)

			log.Printf("[AuthMiddleware] Пользователь %d успешно аутентифицирован", claims.UserID)

			// Передаем управление следующему обработчику с обновленным контекстом
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// unauthorized отправляет 401 в едином JSON-конверте ошибок API.
func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	if err := json.NewEncoder(w).Encode(map[string]string{"error": msg}); err != nil {
		log.Printf("[AuthMiddleware] Ошибка кодирования ответа: %v", err)
	}
}

// GetUserIDFromContext извлекает UserID из контекста запроса.
// Возвращает ID пользователя и true, если ID найден, иначе 0 и false.
func GetUserIDFromContext(ctx context.Context) (int64, bool) {
	if ctx == nil {
		return 0, false
	}
	userID, ok := ctx.Value(UserIDKey).(int64)
	return userID, ok
}

// GetUserNameFromContext извлекает имя пользователя из контекста запроса.
func GetUserNameFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	userName, ok := ctx.Value(UserNameKey).(string)
	return userName, ok
}
