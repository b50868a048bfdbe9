package middleware_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tyler-herwig/shopping-list/internal/middleware"
)

const testSecret = "test-secret"

// makeToken создает подписанный токен с заданным секретом и временем жизни.
func makeToken(t *testing.T, secret string, ttl time.Duration) string {
	t.Helper()

	claims := jwt.MapClaims{
		"userId":   int64(42),
		"userName": "testuser",
		"exp":      jwt.NewNumericDate(time.Now().Add(ttl)),
		"iat":      jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		"nbf":      jwt.NewNumericDate(time.Now().Add(-time.Minute)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestNewAuthenticator(t *testing.T) {
	// Обработчик, фиксирующий данные пользователя из контекста
	var gotUserID int64
	var gotUserName string
	var nextCalled bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nextCalled = true
		gotUserID, _ = middleware.GetUserIDFromContext(r.Context())
		gotUserName, _ = middleware.GetUserNameFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	handler := middleware.NewAuthenticator(testSecret)(next)

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
	}{
		{
			name:       "Валидный токен",
			authHeader: "Bearer " + makeToken(t, testSecret, time.Hour),
			wantStatus: http.StatusOK,
		},
		{
			name:       "Заголовок отсутствует",
			authHeader: "",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "Неверный формат заголовка",
			authHeader: "Token abc123",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "Токен подписан другим секретом",
			authHeader: "Bearer " + makeToken(t, "wrong-secret", time.Hour),
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "Истекший токен",
			authHeader: "Bearer " + makeToken(t, testSecret, -time.Hour),
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "Мусор вместо токена",
			authHeader: "Bearer not-a-jwt",
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nextCalled = false
			gotUserID, gotUserName = 0, ""

			req := httptest.NewRequest(http.MethodGet, "/api/lists", http.NoBody)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)

			if tt.wantStatus == http.StatusOK {
				assert.True(t, nextCalled)
				assert.Equal(t, int64(42), gotUserID)
				assert.Equal(t, "testuser", gotUserName)
			} else {
				assert.False(t, nextCalled)
				// Ошибка приходит в едином JSON-конверте
				var body map[string]string
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				assert.NotEmpty(t, body["error"])
			}
		})
	}
}

func TestGetUserIDFromContext(t *testing.T) {
	tests := []struct {
		name   string
		ctx    context.Context
		wantID int64
		wantOK bool
	}{
		{
			name:   "ID присутствует в контексте",
			ctx:    context.WithValue(context.Background(), middleware.UserIDKey, int64(42)),
			wantID: 42,
			wantOK: true,
		},
		{
			name:   "ID отсутствует в контексте",
			ctx:    context.Background(),
			wantID: 0,
			wantOK: false,
		},
		{
			name:   "Значение неверного типа",
			ctx:    context.WithValue(context.Background(), middleware.UserIDKey, "42"),
			wantID: 0,
			wantOK: false,
		},
		{
			name:   "Нулевой контекст",
			ctx:    nil,
			wantID: 0,
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := middleware.GetUserIDFromContext(tt.ctx)
			assert.Equal(t, tt.wantID, id)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}

func TestGetUserNameFromContext(t *testing.T) {
	t.Run("Имя присутствует в контексте", func(t *testing.T) {
		ctx := context.WithValue(context.Background(), middleware.UserNameKey, "testuser")
		name, ok := middleware.GetUserNameFromContext(ctx)
		assert.True(t, ok)
		assert.Equal(t, "testuser", name)
	})

	t.Run("Имя отсутствует в контексте", func(t *testing.T) {
		name, ok := middleware.GetUserNameFromContext(context.Background())
		assert.False(t, ok)
		assert.Empty(t, name)
	})
}
