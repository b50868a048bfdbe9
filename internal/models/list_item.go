package models

// ListItem представляет покупаемую позицию, принадлежащую одному списку.
// Поле Purchased трехзначное: nil — решение не принято, false/true — явный статус.
type ListItem struct {
	ID          int64    `gorm:"primaryKey" json:"id"`
	ListID      int64    `gorm:"not null;index" json:"listId"`
	Name        string   `gorm:"size:255;not null" json:"name"`
	Description string   `gorm:"size:500" json:"description"`
	Category    string   `gorm:"size:100" json:"category"`
	Cost        *float64 `gorm:"type:numeric(9,2)" json:"cost"`
	Purchased   *bool    `json:"purchased"`
}

// TableName задает явное имя таблицы.
func (ListItem) TableName() string { return "list_items" }

// CreateListItemRequest представляет тело запроса на создание позиции.
type CreateListItemRequest struct {
	ListID      int64    `json:"listId"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Cost        *float64 `json:"cost"`
	Purchased   *bool    `json:"purchased"`
}

// UpdateListItemRequest содержит разрешенные к обновлению поля позиции.
type UpdateListItemRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Category    *string  `json:"category"`
	Cost        *float64 `json:"cost"`
	Purchased   *bool    `json:"purchased"`
}

// ListItemsBreakdown — позиции списка, разделенные по статусу покупки,
// с суммарной стоимостью всех позиций (NULL-стоимости считаются нулевыми).
type ListItemsBreakdown struct {
	Active    []ListItem `json:"active"`
	Completed []ListItem `json:"completed"`
	TotalCost float64    `json:"totalCost"`
}
