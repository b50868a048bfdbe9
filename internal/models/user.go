package models

import "time"

// User представляет пользователя системы.
// Тэги `gorm` описывают схему таблицы, тэги `json` — (де)сериализацию JSON.
type User struct {
	ID           int64     `gorm:"primaryKey" json:"userId"`
	Username     string    `gorm:"size:100;uniqueIndex;not null" json:"userName"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"` // Не отправляем хеш пароля в JSON
	FullName     string    `gorm:"size:200" json:"fullName"`
	FirstName    string    `gorm:"size:100" json:"firstName"`
	LastName     string    `gorm:"size:100" json:"lastName"`
	CreatedAt    time.Time `json:"createdAt"`
}

// TableName задает явное имя таблицы.
func (User) TableName() string { return "users" }

// RegisterRequest представляет тело запроса на регистрацию.
type RegisterRequest struct {
	UserName  string `json:"userName"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// LoginRequest представляет тело запроса на вход.
type LoginRequest struct {
	UserName string `json:"userName"`
	Password string `json:"password"`
}

// LoginResponse представляет тело ответа при успешном входе.
type LoginResponse struct {
	UserID    int64  `json:"userId"`
	UserName  string `json:"userName"`
	FullName  string `json:"fullName"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Token     string `json:"token"`
}
