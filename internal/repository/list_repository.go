package repository

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tyler-herwig/shopping-list/internal/models"
)

// ListRepository определяет методы для работы со списками в хранилище.
type ListRepository interface {
	CreateList(ctx context.Context, list *models.List) error
	FindLists(ctx context.Context, filter models.ListFilter) ([]models.ListWithCounts, int64, error)
	GetListByID(ctx context.Context, id int64) (*models.List, error)
	CountLists(ctx context.Context, userID int64, completed *bool) (int64, error)
	UpdateList(ctx context.Context, list *models.List) error
	DeleteList(ctx context.Context, id int64) error
}

// gormListRepository реализует ListRepository поверх GORM.
type gormListRepository struct {
	db *gorm.DB
}

// NewListRepository создает новый экземпляр репозитория списков.
func NewListRepository(db *gorm.DB) ListRepository {
	return &gormListRepository{db: db}
}

// CreateList создает новый список.
// Нарушение составного индекса (user_id, name) транслируется в ErrListNameTaken.
func (r *gormListRepository) CreateList(ctx context.Context, list *models.List) error {
	if err := r.db.WithContext(ctx).Create(list).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			log.Printf("[ListRepo] Список с именем '%s' уже существует у пользователя %d", list.Name, list.UserID)
			return ErrListNameTaken
		}
		log.Printf("[ListRepo] Непредвиденная ошибка при создании списка '%s': %v", list.Name, err)
		return fmt.Errorf("ошибка выполнения запроса на создание списка: %w", err)
	}

	log.Printf("[ListRepo] Список '%s' успешно создан с ID %d", list.Name, list.ID)
	return nil
}

// FindLists возвращает страницу списков пользователя и общее число подходящих списков.
// Поиск — подстрока в имени или описании без учета регистра.
// Сортировка по дате создания, а при фильтре по завершенным — по дате завершения.
func (r *gormListRepository) FindLists(
	ctx context.Context,
	filter models.ListFilter,
) ([]models.ListWithCounts, int64, error) {
	var total int64
	if err := r.listsQuery(ctx, filter).Count(&total).Error; err != nil {
		log.Printf("[ListRepo] Ошибка подсчета списков пользователя %d: %v", filter.UserID, err)
		return nil, 0, fmt.Errorf("ошибка выполнения запроса на подсчет списков: %w", err)
	}

	order := "created_at DESC"
	if filter.Completed != nil && *filter.Completed {
		order = "completed_at DESC"
	}

	var lists []models.List
	err := r.listsQuery(ctx, filter).
		Order(order).
		Offset((filter.Page - 1) * filter.Limit).
		Limit(filter.Limit).
		Find(&lists).Error
	if err != nil {
		log.Printf("[ListRepo] Ошибка выборки списков пользователя %d: %v", filter.UserID, err)
		return nil, 0, fmt.Errorf("ошибка выполнения запроса на выборку списков: %w", err)
	}

	// Каждый список дополняется счетчиками позиций: два счетных запроса на список
	result := make([]models.ListWithCounts, 0, len(lists))
	for i := range lists {
		itemCount, purchasedCount, err := r.countListItems(ctx, lists[i].ID)
		if err != nil {
			return nil, 0, err
		}
		result = append(result, models.ListWithCounts{
			List:               lists[i],
			ListItemCount:      itemCount,
			PurchasedItemCount: purchasedCount,
		})
	}

	log.Printf("[ListRepo] Выбрано %d из %d списков пользователя %d", len(result), total, filter.UserID)
	return result, total, nil
}

// listsQuery строит запрос выборки списков по фильтру.
// Каждый вызов возвращает новую цепочку: финишеры GORM нельзя переиспользовать.
func (r *gormListRepository) listsQuery(ctx context.Context, filter models.ListFilter) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&models.List{}).Where("user_id = ?", filter.UserID)

	if filter.Completed != nil {
		query = query.Where("completed = ?", *filter.Completed)
	}
	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}

	return query
}

// countListItems возвращает общее число позиций списка и число купленных позиций.
func (r *gormListRepository) countListItems(ctx context.Context, listID int64) (int64, int64, error) {
	var itemCount int64
	err := r.db.WithContext(ctx).Model(&models.ListItem{}).
		Where("list_id = ?", listID).
		Count(&itemCount).Error
	if err != nil {
		log.Printf("[ListRepo] Ошибка подсчета позиций списка %d: %v", listID, err)
		return 0, 0, fmt.Errorf("ошибка выполнения запроса на подсчет позиций: %w", err)
	}

	var purchasedCount int64
	err = r.db.WithContext(ctx).Model(&models.ListItem{}).
		Where("list_id = ? AND purchased = ?", listID, true).
		Count(&purchasedCount).Error
	if err != nil {
		log.Printf("[ListRepo] Ошибка подсчета купленных позиций списка %d: %v", listID, err)
		return 0, 0, fmt.Errorf("ошибка выполнения запроса на подсчет купленных позиций: %w", err)
	}

	return itemCount, purchasedCount, nil
}

// GetListByID находит список по его идентификатору.
func (r *gormListRepository) GetListByID(ctx context.Context, id int64) (*models.List, error) {
	var list models.List

	err := r.db.WithContext(ctx).First(&list, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("[ListRepo] Список с ID %d не найден", id)
			return nil, ErrListNotFound
		}
		log.Printf("[ListRepo] Ошибка при поиске списка %d: %v", id, err)
		return nil, fmt.Errorf("ошибка выполнения запроса на получение списка: %w", err)
	}

	return &list, nil
}

// CountLists возвращает число списков пользователя, опционально только завершенных/незавершенных.
func (r *gormListRepository) CountLists(ctx context.Context, userID int64, completed *bool) (int64, error) {
	query := r.db.WithContext(ctx).Model(&models.List{}).Where("user_id = ?", userID)
	if completed != nil {
		query = query.Where("completed = ?", *completed)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		log.Printf("[ListRepo] Ошибка подсчета списков пользователя %d: %v", userID, err)
		return 0, fmt.Errorf("ошибка выполнения запроса на подсчет списков: %w", err)
	}

	return count, nil
}

// UpdateList сохраняет все поля списка.
// Переименование в занятое имя нарушает индекс и транслируется в ErrListNameTaken.
func (r *gormListRepository) UpdateList(ctx context.Context, list *models.List) error {
	if err := r.db.WithContext(ctx).Save(list).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			log.Printf("[ListRepo] Список с именем '%s' уже существует у пользователя %d", list.Name, list.UserID)
			return ErrListNameTaken
		}
		log.Printf("[ListRepo] Ошибка обновления списка %d: %v", list.ID, err)
		return fmt.Errorf("ошибка выполнения запроса на обновление списка: %w", err)
	}

	log.Printf("[ListRepo] Список %d успешно обновлен", list.ID)
	return nil
}

// DeleteList удаляет список вместе со всеми его позициями.
func (r *gormListRepository) DeleteList(ctx context.Context, id int64) error {
	// Select(clause.Associations) каскадно удаляет позиции списка
	err := r.db.WithContext(ctx).
		Select(clause.Associations).
		Delete(&models.List{ID: id}).Error
	if err != nil {
		log.Printf("[ListRepo] Ошибка удаления списка %d: %v", id, err)
		return fmt.Errorf("ошибка выполнения запроса на удаление списка: %w", err)
	}

	log.Printf("[ListRepo] Список %d удален вместе с позициями", id)
	return nil
}

// Кастомные ошибки репозитория.
var (
	ErrListNotFound  = errors.New("список не найден")
	ErrListNameTaken = errors.New("список с таким именем уже существует")
)
