package models

import "time"

// List представляет именованный список покупок, принадлежащий одному пользователю.
// Уникальность имени обеспечивается составным индексом (user_id, name):
// один пользователь не может иметь два списка с одинаковым именем.
type List struct {
	ID          int64      `gorm:"primaryKey" json:"id"`
	Name        string     `gorm:"size:100;not null;uniqueIndex:idx_lists_user_name,priority:2" json:"name"`
	Description string     `gorm:"size:500" json:"description"`
	UserID      int64      `gorm:"not null;uniqueIndex:idx_lists_user_name,priority:1" json:"userId"`
	Completed   bool       `gorm:"not null;default:false" json:"completed"`
	CreatedAt   time.Time  `json:"createdAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty"` // Заполняется при завершении списка

	// Позиции списка; удаляются каскадно вместе со списком.
	Items []ListItem `gorm:"foreignKey:ListID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName задает явное имя таблицы.
func (List) TableName() string { return "lists" }

// CreateListRequest представляет тело запроса на создание списка.
type CreateListRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	UserID      int64  `json:"userId"`
}

// UpdateListRequest содержит разрешенные к обновлению поля списка.
// Указатели отличают «поле не передано» от пустого значения,
// неизвестные поля тела запроса игнорируются при декодировании.
type UpdateListRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Completed   *bool   `json:"completed"`
}

// ListWithCounts — список, дополненный счетчиками позиций для выдачи клиенту.
type ListWithCounts struct {
	List
	ListItemCount      int64 `json:"listItemCount"`
	PurchasedItemCount int64 `json:"purchasedItemCount"`
}

// ListFilter описывает параметры выборки списков пользователя.
type ListFilter struct {
	UserID    int64
	Completed *bool  // nil — без фильтра по статусу завершения
	Search    string // подстрока для поиска по имени или описанию (без учета регистра)
	Page      int
	Limit     int
}

// ListsPage — страница списков с метаданными пагинации.
type ListsPage struct {
	Lists       []ListWithCounts `json:"lists"`
	Total       int64            `json:"total"`
	TotalPages  int64            `json:"totalPages"`
	CurrentPage int              `json:"currentPage"`
}
