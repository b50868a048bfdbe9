package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"
	"unicode/utf8"

	"github.com/tyler-herwig/shopping-list/internal/models"
	"github.com/tyler-herwig/shopping-list/internal/repository"
)

// Ограничения полей списка.
const (
	maxListNameLen        = 100
	maxListDescriptionLen = 500

	defaultPage  = 1
	defaultLimit = 10
)

// ListService определяет интерфейс для сервиса списков.
type ListService interface {
	CreateList(ctx context.Context, req *models.CreateListRequest) (*models.List, error)
	GetLists(ctx context.Context, filter models.ListFilter) (*models.ListsPage, error)
	GetListByID(ctx context.Context, id int64) (*models.List, error)
	CountLists(ctx context.Context, userID int64, completed *bool) (int64, error)
	UpdateList(ctx context.Context, id int64, req *models.UpdateListRequest) (*models.List, error)
	DeleteList(ctx context.Context, id int64) error
}

// Убедимся, что listService удовлетворяет интерфейсу ListService.
var _ ListService = (*listService)(nil)

type listService struct {
	listRepo repository.ListRepository // Зависимость от репозитория списков
}

// NewListService создает новый экземпляр сервиса списков.
func NewListService(listRepo repository.ListRepository) ListService {
	return &listService{listRepo: listRepo}
}

// CreateList создает новый список с незавершенным статусом.
func (s *listService) CreateList(ctx context.Context, req *models.CreateListRequest) (*models.List, error) {
	if err := validateListName(req.Name); err != nil {
		return nil, err
	}
	if err := validateListDescription(req.Description); err != nil {
		return nil, err
	}

	list := &models.List{
		Name:        req.Name,
		Description: req.Description,
		UserID:      req.UserID,
		Completed:   false,
	}

	if err := s.listRepo.CreateList(ctx, list); err != nil {
		if errors.Is(err, repository.ErrListNameTaken) {
			log.Printf("[ListService] Попытка создания списка с занятым именем '%s' у пользователя %d",
				req.Name, req.UserID)
			return nil, ErrListNameTaken
		}
		log.Printf("[ListService] Непредвиденная ошибка репозитория при создании списка '%s': %v", req.Name, err)
		return nil, errors.New("внутренняя ошибка сервера при создании списка")
	}

	return list, nil
}

// GetLists возвращает страницу списков пользователя с метаданными пагинации.
func (s *listService) GetLists(ctx context.Context, filter models.ListFilter) (*models.ListsPage, error) {
	if filter.Page < 1 {
		filter.Page = defaultPage
	}
	if filter.Limit < 1 {
		filter.Limit = defaultLimit
	}

	lists, total, err := s.listRepo.FindLists(ctx, filter)
	if err != nil {
		log.Printf("[ListService] Ошибка репозитория при выборке списков пользователя %d: %v", filter.UserID, err)
		return nil, errors.New("внутренняя ошибка сервера при выборке списков")
	}

	// Округление вверх: неполная страница тоже считается страницей
	totalPages := (total + int64(filter.Limit) - 1) / int64(filter.Limit)

	return &models.ListsPage{
		Lists:       lists,
		Total:       total,
		TotalPages:  totalPages,
		CurrentPage: filter.Page,
	}, nil
}

// GetListByID возвращает список по его идентификатору.
func (s *listService) GetListByID(ctx context.Context, id int64) (*models.List, error) {
	list, err := s.listRepo.GetListByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrListNotFound) {
			return nil, ErrListNotFound
		}
		log.Printf("[ListService] Ошибка репозитория при получении списка %d: %v", id, err)
		return nil, errors.New("внутренняя ошибка сервера при получении списка")
	}

	return list, nil
}

// CountLists возвращает число списков пользователя.
func (s *listService) CountLists(ctx context.Context, userID int64, completed *bool) (int64, error) {
	count, err := s.listRepo.CountLists(ctx, userID, completed)
	if err != nil {
		log.Printf("[ListService] Ошибка репозитория при подсчете списков пользователя %d: %v", userID, err)
		return 0, errors.New("внутренняя ошибка сервера при подсчете списков")
	}

	return count, nil
}

// UpdateList обновляет только разрешенные поля существующего списка.
// Переход completed false→true ставит отметку времени завершения,
// обратный переход ее сбрасывает; остальные обновления отметку не трогают.
func (s *listService) UpdateList(
	ctx context.Context,
	id int64,
	req *models.UpdateListRequest,
) (*models.List, error) {
	list, err := s.listRepo.GetListByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrListNotFound) {
			return nil, ErrListNotFound
		}
		log.Printf("[ListService] Ошибка репозитория при получении списка %d: %v", id, err)
		return nil, errors.New("внутренняя ошибка сервера при получении списка")
	}

	if req.Name != nil {
		if err = validateListName(*req.Name); err != nil {
			return nil, err
		}
		list.Name = *req.Name
	}
	if req.Description != nil {
		if err = validateListDescription(*req.Description); err != nil {
			return nil, err
		}
		list.Description = *req.Description
	}
	if req.Completed != nil {
		switch {
		case *req.Completed && !list.Completed:
			now := time.Now()
			list.CompletedAt = &now
		case !*req.Completed && list.Completed:
			list.CompletedAt = nil
		}
		list.Completed = *req.Completed
	}

	if err = s.listRepo.UpdateList(ctx, list); err != nil {
		if errors.Is(err, repository.ErrListNameTaken) {
			log.Printf("[ListService] Попытка переименования списка %d в занятое имя '%s'", id, list.Name)
			return nil, ErrListNameTaken
		}
		log.Printf("[ListService] Непредвиденная ошибка репозитория при обновлении списка %d: %v", id, err)
		return nil, errors.New("внутренняя ошибка сервера при обновлении списка")
	}

	return list, nil
}

// DeleteList удаляет список вместе с его позициями.
func (s *listService) DeleteList(ctx context.Context, id int64) error {
	// Сначала убеждаемся, что список существует: удаление несуществующего — 404
	if _, err := s.GetListByID(ctx, id); err != nil {
		return err
	}

	if err := s.listRepo.DeleteList(ctx, id); err != nil {
		log.Printf("[ListService] Ошибка репозитория при удалении списка %d: %v", id, err)
		return errors.New("внутренняя ошибка сервера при удалении списка")
	}

	log.Printf("[ListService] Список %d удален", id)
	return nil
}

// validateListName проверяет длину имени списка.
func validateListName(name string) error {
	length := utf8.RuneCountInString(name)
	if length < 1 || length > maxListNameLen {
		return fmt.Errorf("%w: название должно содержать от 1 до %d символов", ErrValidation, maxListNameLen)
	}
	return nil
}

// validateListDescription проверяет длину описания списка.
func validateListDescription(description string) error {
	if utf8.RuneCountInString(description) > maxListDescriptionLen {
		return fmt.Errorf("%w: описание не должно превышать %d символов", ErrValidation, maxListDescriptionLen)
	}
	return nil
}

// Кастомные ошибки сервиса.
var (
	ErrListNotFound  = errors.New("список не найден")
	ErrListNameTaken = errors.New("список с таким именем уже существует")
	ErrValidation    = errors.New("некорректные данные")
)
