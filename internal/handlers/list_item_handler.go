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

// ListItemService определяет интерфейс для сервиса позиций списков.
type ListItemService interface {
	CreateListItem(ctx context.Context, req *models.CreateListItemRequest) (*models.ListItem, error)
	GetListItems(ctx context.Context, listID int64) (*models.ListItemsBreakdown, error)
	GetListItemByID(ctx context.Context, id int64) (*models.ListItem, error)
	UpdateListItem(ctx context.Context, id int64, req *models.UpdateListItemRequest) (*models.ListItem, error)
	DeleteListItem(ctx context.Context, id int64) error
}

// ListItemHandler обрабатывает HTTP-запросы, связанные с позициями списков.
type ListItemHandler struct {
	service ListItemService
}

// NewListItemHandler создает новый экземпляр ListItemHandler.
func NewListItemHandler(s ListItemService) *ListItemHandler {
	return &ListItemHandler{service: s}
}

// CreateListItem обрабатывает запрос на создание позиции списка.
// POST /api/list-items
func (h *ListItemHandler) CreateListItem(w http.ResponseWriter, r *http.Request) {
	var req models.CreateListItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("[ListItemHandler] Ошибка декодирования запроса создания позиции: %v", err)
		writeError(w, http.StatusBadRequest, "Неверный формат запроса")
		return
	}

	if req.Name == "" || req.ListID == 0 {
		log.Printf("[ListItemHandler] Отсутствует название позиции или идентификатор списка")
		writeError(w, http.StatusBadRequest, "Название позиции и идентификатор списка обязательны")
		return
	}

	item, err := h.service.CreateListItem(r.Context(), &req)
	if err != nil {
		if errors.Is(err, services.ErrValidation) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "Внутренняя ошибка сервера")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message":  "Позиция списка успешно создана",
		"listItem": item,
	})
	log.Printf("[ListItemHandler] Позиция %d создана в списке %d", item.ID, item.ListID)
}

// GetListItems обрабатывает запрос на выборку позиций списка.
// Позиции разделяются на активные и купленные, к ним прилагается суммарная стоимость.
// GET /api/list-items?listId=
func (h *ListItemHandler) GetListItems(w http.ResponseWriter, r *http.Request) {
	listID, ok := parseQueryInt64(w, r, "listId")
	if !ok {
		return
	}

	breakdown, err := h.service.GetListItems(r.Context(), listID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Внутренняя ошибка сервера")
		return
	}

	writeJSON(w, http.StatusOK, breakdown)
}

// GetListItemByID обрабатывает запрос на получение позиции по идентификатору.
// GET /api/list-items/{id}
func (h *ListItemHandler) GetListItemByID(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	item, err := h.service.GetListItemByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrListItemNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "Внутренняя ошибка сервера")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"listItem": item})
}

// UpdateListItem обрабатывает запрос на частичное обновление позиции.
// PUT /api/list-items/{id}
func (h *ListItemHandler) UpdateListItem(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	var req models.UpdateListItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("[ListItemHandler] Ошибка декодирования запроса обновления позиции %d: %v", id, err)
		writeError(w, http.StatusBadRequest, "Неверный формат запроса")
		return
	}

	item, err := h.service.UpdateListItem(r.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrListItemNotFound):
			writeError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, services.ErrValidation):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "Внутренняя ошибка сервера")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message":  "Позиция списка успешно обновлена",
		"listItem": item,
	})
	log.Printf("[ListItemHandler] Позиция %d обновлена", id)
}

// DeleteListItem обрабатывает запрос на удаление позиции.
// DELETE /api/list-items/{id}
func (h *ListItemHandler) DeleteListItem(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteListItem(r.Context(), id); err != nil {
		if errors.Is(err, services.ErrListItemNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "Внутренняя ошибка сервера")
		return
	}

	writeMessage(w, http.StatusOK, "Позиция списка успешно удалена")
	log.Printf("[ListItemHandler] Позиция %d удалена", id)
}
