package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"unicode/utf8"

	"github.com/tyler-herwig/shopping-list/internal/models"
	"github.com/tyler-herwig/shopping-list/internal/repository"
)

// Ограничения полей позиции списка.
const (
	maxItemNameLen        = 255
	maxItemDescriptionLen = 500
	maxItemCategoryLen    = 100
)

// ListItemService определяет интерфейс для сервиса позиций списков.
type ListItemService interface {
	CreateListItem(ctx context.Context, req *models.CreateListItemRequest) (*models.ListItem, error)
	GetListItems(ctx context.Context, listID int64) (*models.ListItemsBreakdown, error)
	GetListItemByID(ctx context.Context, id int64) (*models.ListItem, error)
	UpdateListItem(ctx context.Context, id int64, req *models.UpdateListItemRequest) (*models.ListItem, error)
	DeleteListItem(ctx context.Context, id int64) error
}

// Убедимся, что listItemService удовлетворяет интерфейсу ListItemService.
var _ ListItemService = (*listItemService)(nil)

type listItemService struct {
	itemRepo repository.ListItemRepository // Зависимость от репозитория позиций
}

// NewListItemService создает новый экземпляр сервиса позиций списков.
func NewListItemService(itemRepo repository.ListItemRepository) ListItemService {
	return &listItemService{itemRepo: itemRepo}
}

// CreateListItem создает новую позицию списка.
func (s *listItemService) CreateListItem(
	ctx context.Context,
	req *models.CreateListItemRequest,
) (*models.ListItem, error) {
	if err := validateListItemFields(req.Name, req.Description, req.Category); err != nil {
		return nil, err
	}

	item := &models.ListItem{
		ListID:      req.ListID,
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Cost:        req.Cost,
		Purchased:   req.Purchased,
	}

	if err := s.itemRepo.CreateListItem(ctx, item); err != nil {
		log.Printf("[ListItemService] Непредвиденная ошибка репозитория при создании позиции '%s': %v",
			req.Name, err)
		return nil, errors.New("внутренняя ошибка сервера при создании позиции")
	}

	return item, nil
}

// GetListItems возвращает позиции списка, разделенные по статусу покупки,
// вместе с суммарной стоимостью.
func (s *listItemService) GetListItems(ctx context.Context, listID int64) (*models.ListItemsBreakdown, error) {
	breakdown, err := s.itemRepo.GetListItemsByListID(ctx, listID)
	if err != nil {
		log.Printf("[ListItemService] Ошибка репозитория при выборке позиций списка %d: %v", listID, err)
		return nil, errors.New("внутренняя ошибка сервера при выборке позиций")
	}

	return breakdown, nil
}

// GetListItemByID возвращает позицию по ее идентификатору.
func (s *listItemService) GetListItemByID(ctx context.Context, id int64) (*models.ListItem, error) {
	item, err := s.itemRepo.GetListItemByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrListItemNotFound) {
			return nil, ErrListItemNotFound
		}
		log.Printf("[ListItemService] Ошибка репозитория при получении позиции %d: %v", id, err)
		return nil, errors.New("внутренняя ошибка сервера при получении позиции")
	}

	return item, nil
}

// UpdateListItem обновляет только разрешенные поля существующей позиции.
// Статус покупки трехзначный: из «не решено» можно перевести в false или true
// и переключать между ними; запрещенных переходов нет.
func (s *listItemService) UpdateListItem(
	ctx context.Context,
	id int64,
	req *models.UpdateListItemRequest,
) (*models.ListItem, error) {
	item, err := s.itemRepo.GetListItemByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrListItemNotFound) {
			return nil, ErrListItemNotFound
		}
		log.Printf("[ListItemService] Ошибка репозитория при получении позиции %d: %v", id, err)
		return nil, errors.New("внутренняя ошибка сервера при получении позиции")
	}

	if req.Name != nil {
		if err = validateListItemName(*req.Name); err != nil {
			return nil, err
		}
		item.Name = *req.Name
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if req.Category != nil {
		item.Category = *req.Category
	}
	if req.Cost != nil {
		item.Cost = req.Cost
	}
	if req.Purchased != nil {
		item.Purchased = req.Purchased
	}

	if err = s.itemRepo.UpdateListItem(ctx, item); err != nil {
		log.Printf("[ListItemService] Непредвиденная ошибка репозитория при обновлении позиции %d: %v", id, err)
		return nil, errors.New("внутренняя ошибка сервера при обновлении позиции")
	}

	return item, nil
}

// DeleteListItem удаляет позицию по идентификатору.
func (s *listItemService) DeleteListItem(ctx context.Context, id int64) error {
	// Сначала убеждаемся, что позиция существует: удаление несуществующей — 404
	if _, err := s.GetListItemByID(ctx, id); err != nil {
		return err
	}

	if err := s.itemRepo.DeleteListItem(ctx, id); err != nil {
		log.Printf("[ListItemService] Ошибка репозитория при удалении позиции %d: %v", id, err)
		return errors.New("внутренняя ошибка сервера при удалении позиции")
	}

	log.Printf("[ListItemService] Позиция %d удалена", id)
	return nil
}

// validateListItemName проверяет длину названия позиции.
func validateListItemName(name string) error {
	length := utf8.RuneCountInString(name)
	if length < 1 || length > maxItemNameLen {
		return fmt.Errorf("%w: название позиции должно содержать от 1 до %d символов", ErrValidation, maxItemNameLen)
	}
	return nil
}

// validateListItemFields проверяет текстовые поля позиции при создании.
func validateListItemFields(name, description, category string) error {
	if err := validateListItemName(name); err != nil {
		return err
	}
	if utf8.RuneCountInString(description) > maxItemDescriptionLen {
		return fmt.Errorf("%w: описание позиции не должно превышать %d символов",
			ErrValidation, maxItemDescriptionLen)
	}
	if utf8.RuneCountInString(category) > maxItemCategoryLen {
		return fmt.Errorf("%w: категория не должна превышать %d символов", ErrValidation, maxItemCategoryLen)
	}
	return nil
}

// Кастомная ошибка сервиса.
var (
	ErrListItemNotFound = errors.New("позиция списка не найдена")
)
