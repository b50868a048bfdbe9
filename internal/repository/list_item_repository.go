package repository

import (
	"context"
	"errors"
	"fmt"
	"log"

	"gorm.io/gorm"

	"github.com/tyler-herwig/shopping-list/internal/models"
)

// ListItemRepository определяет методы для работы с позициями списков в хранилище.
type ListItemRepository interface {
	CreateListItem(ctx context.Context, item *models.ListItem) error
	GetListItemsByListID(ctx context.Context, listID int64) (*models.ListItemsBreakdown, error)
	GetListItemByID(ctx context.Context, id int64) (*models.ListItem, error)
	UpdateListItem(ctx context.Context, item *models.ListItem) error
	DeleteListItem(ctx context.Context, id int64) error
}

// gormListItemRepository реализует ListItemRepository поверх GORM.
type gormListItemRepository struct {
	db *gorm.DB
}

// NewListItemRepository создает новый экземпляр репозитория позиций списков.
func NewListItemRepository(db *gorm.DB) ListItemRepository {
	return &gormListItemRepository{db: db}
}

// CreateListItem создает новую позицию списка.
// Существование списка не проверяется: на PostgreSQL ссылочную целостность
// обеспечивает внешний ключ.
func (r *gormListItemRepository) CreateListItem(ctx context.Context, item *models.ListItem) error {
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		log.Printf("[ListItemRepo] Ошибка создания позиции '%s' в списке %d: %v", item.Name, item.ListID, err)
		return fmt.Errorf("ошибка выполнения запроса на создание позиции: %w", err)
	}

	log.Printf("[ListItemRepo] Позиция '%s' успешно создана с ID %d", item.Name, item.ID)
	return nil
}

// GetListItemsByListID возвращает позиции списка, разделенные по статусу покупки,
// и суммарную стоимость всех позиций (NULL-стоимости считаются нулевыми).
// Купленными считаются позиции с purchased = true; остальные (false и NULL) — активные.
func (r *gormListItemRepository) GetListItemsByListID(
	ctx context.Context,
	listID int64,
) (*models.ListItemsBreakdown, error) {
	breakdown := &models.ListItemsBreakdown{
		Active:    make([]models.ListItem, 0),
		Completed: make([]models.ListItem, 0),
	}

	err := r.db.WithContext(ctx).
		Where("list_id = ? AND (purchased IS NULL OR purchased = ?)", listID, false).
		Find(&breakdown.Active).Error
	if err != nil {
		log.Printf("[ListItemRepo] Ошибка выборки активных позиций списка %d: %v", listID, err)
		return nil, fmt.Errorf("ошибка выполнения запроса на выборку позиций: %w", err)
	}

	err = r.db.WithContext(ctx).
		Where("list_id = ? AND purchased = ?", listID, true).
		Find(&breakdown.Completed).Error
	if err != nil {
		log.Printf("[ListItemRepo] Ошибка выборки купленных позиций списка %d: %v", listID, err)
		return nil, fmt.Errorf("ошибка выполнения запроса на выборку позиций: %w", err)
	}

	err = r.db.WithContext(ctx).Model(&models.ListItem{}).
		Where("list_id = ?", listID).
		Select("COALESCE(SUM(cost), 0)").
		Scan(&breakdown.TotalCost).Error
	if err != nil {
		log.Printf("[ListItemRepo] Ошибка подсчета стоимости позиций списка %d: %v", listID, err)
		return nil, fmt.Errorf("ошибка выполнения запроса на подсчет стоимости: %w", err)
	}

	log.Printf("[ListItemRepo] Список %d: %d активных, %d купленных позиций, сумма %.2f",
		listID, len(breakdown.Active), len(breakdown.Completed), breakdown.TotalCost)
	return breakdown, nil
}

// GetListItemByID находит позицию по ее идентификатору.
func (r *gormListItemRepository) GetListItemByID(ctx context.Context, id int64) (*models.ListItem, error) {
	var item models.ListItem

	err := r.db.WithContext(ctx).First(&item, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("[ListItemRepo] Позиция с ID %d не найдена", id)
			return nil, ErrListItemNotFound
		}
		log.Printf("[ListItemRepo] Ошибка при поиске позиции %d: %v", id, err)
		return nil, fmt.Errorf("ошибка выполнения запроса на получение позиции: %w", err)
	}

	return &item, nil
}

// UpdateListItem сохраняет все поля позиции.
func (r *gormListItemRepository) UpdateListItem(ctx context.Context, item *models.ListItem) error {
	if err := r.db.WithContext(ctx).Save(item).Error; err != nil {
		log.Printf("[ListItemRepo] Ошибка обновления позиции %d: %v", item.ID, err)
		return fmt.Errorf("ошибка выполнения запроса на обновление позиции: %w", err)
	}

	log.Printf("[ListItemRepo] Позиция %d успешно обновлена", item.ID)
	return nil
}

// DeleteListItem удаляет позицию по идентификатору.
func (r *gormListItemRepository) DeleteListItem(ctx context.Context, id int64) error {
	if err := r.db.WithContext(ctx).Delete(&models.ListItem{}, id).Error; err != nil {
		log.Printf("[ListItemRepo] Ошибка удаления позиции %d: %v", id, err)
		return fmt.Errorf("ошибка выполнения запроса на удаление позиции: %w", err)
	}

	log.Printf("[ListItemRepo] Позиция %d удалена", id)
	return nil
}

// Кастомная ошибка репозитория.
var (
	ErrListItemNotFound = errors.New("позиция списка не найдена")
)
