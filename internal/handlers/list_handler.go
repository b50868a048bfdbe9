package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/tyler-herwig/shopping-list/internal/models"
	"github.com/tyler-herwig/shopping-list/internal/services"
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

// ListHandler обрабатывает HTTP-запросы, связанные со списками.
type ListHandler struct {
	service ListService
}

// NewListHandler создает новый экземпляр ListHandler.
func NewListHandler(s ListService) *ListHandler {
	return &ListHandler{service: s}
}

// CreateList обрабатывает запрос на создание списка.
// POST /api/lists
func (h *ListHandler) CreateList(w http.ResponseWriter, r *http.Request) {
	var req models.CreateListRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("[ListHandler] Ошибка декодирования запроса создания списка: %v", err)
		writeError(w, http.StatusBadRequest, "Неверный формат запроса")
		return
	}

	if req.Name == "" || req.UserID == 0 {
		log.Printf("[ListHandler] Отсутствует название списка или идентификатор пользователя")
		writeError(w, http.StatusBadRequest, "Название списка и идентификатор пользователя обязательны")
		return
	}

	list, err := h.service.CreateList(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrValidation):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, services.ErrListNameTaken):
			writeError(w, http.StatusConflict, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "Внутренняя ошибка сервера")
		}
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "Список успешно создан",
		"list":    list,
	})
	log.Printf("[ListHandler] Список %d создан для пользователя %d", list.ID, list.UserID)
}

// GetLists обрабатывает запрос на постраничную выборку списков пользователя.
// GET /api/lists?userId=&search=&completed=&page=&limit=
func (h *ListHandler) GetLists(w http.ResponseWriter, r *http.Request) {
	filter, ok := parseListFilter(w, r)
	if !ok {
		return
	}

	page, err := h.service.GetLists(r.Context(), filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Внутренняя ошибка сервера")
		return
	}

	writeJSON(w, http.StatusOK, page)
}

// GetListCount обрабатывает запрос на подсчет списков пользователя.
// GET /api/lists/count?userId=&completed=
func (h *ListHandler) GetListCount(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseQueryInt64(w, r, "userId")
	if !ok {
		return
	}
	completed, ok := parseQueryBool(w, r, "completed")
	if !ok {
		return
	}

	count, err := h.service.CountLists(r.Context(), userID, completed)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Внутренняя ошибка сервера")
		return
	}

	writeJSON(w, http.StatusOK, map[string]int64{"listCount": count})
}

// GetListByID обрабатывает запрос на получение списка по идентификатору.
// GET /api/lists/{id}
func (h *ListHandler) GetListByID(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	list, err := h.service.GetListByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrListNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "Внутренняя ошибка сервера")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"list": list})
}

// UpdateList обрабатывает запрос на частичное обновление списка.
// PUT /api/lists/{id}
func (h *ListHandler) UpdateList(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	var req models.UpdateListRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("[ListHandler] Ошибка декодирования запроса обновления списка %d: %v", id, err)
		writeError(w, http.StatusBadRequest, "Неверный формат запроса")
		return
	}

	list, err := h.service.UpdateList(r.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrListNotFound):
			writeError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, services.ErrValidation):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, services.ErrListNameTaken):
			writeError(w, http.StatusConflict, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "Внутренняя ошибка сервера")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Список успешно обновлен",
		"list":    list,
	})
	log.Printf("[ListHandler] Список %d обновлен", id)
}

// DeleteList обрабатывает запрос на удаление списка вместе с его позициями.
// DELETE /api/lists/{id}
func (h *ListHandler) DeleteList(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteList(r.Context(), id); err != nil {
		if errors.Is(err, services.ErrListNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "Внутренняя ошибка сервера")
		return
	}

	writeMessage(w, http.StatusOK, "Список успешно удален")
	log.Printf("[ListHandler] Список %d удален", id)
}

// parseListFilter разбирает параметры выборки списков из строки запроса.
// При ошибке отправляет 400 и возвращает ok=false.
func parseListFilter(w http.ResponseWriter, r *http.Request) (models.ListFilter, bool) {
	var filter models.ListFilter

	userID, ok := parseQueryInt64(w, r, "userId")
	if !ok {
		return filter, false
	}
	filter.UserID = userID
	filter.Search = r.URL.Query().Get("search")

	filter.Completed, ok = parseQueryBool(w, r, "completed")
	if !ok {
		return filter, false
	}

	filter.Page, ok = parseQueryIntOptional(w, r, "page")
	if !ok {
		return filter, false
	}
	filter.Limit, ok = parseQueryIntOptional(w, r, "limit")
	if !ok {
		return filter, false
	}

	return filter, true
}

// parseIDParam разбирает идентификатор из пути запроса.
func parseIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		log.Printf("[Handlers] Неверный идентификатор в пути запроса: %v", err)
		writeError(w, http.StatusBadRequest, "Неверный идентификатор")
		return 0, false
	}
	return id, true
}

// parseQueryInt64 разбирает обязательный числовой параметр строки запроса.
func parseQueryInt64(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	value, err := strconv.ParseInt(r.URL.Query().Get(name), 10, 64)
	if err != nil {
		log.Printf("[Handlers] Неверный или отсутствующий параметр %s: %v", name, err)
		writeError(w, http.StatusBadRequest, "Неверный или отсутствующий параметр "+name)
		return 0, false
	}
	return value, true
}

// parseQueryIntOptional разбирает необязательный числовой параметр; пустое значение дает 0.
func parseQueryIntOptional(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, true
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("[Handlers] Неверное значение параметра %s: %v", name, err)
		writeError(w, http.StatusBadRequest, "Неверное значение параметра "+name)
		return 0, false
	}
	return value, true
}

// parseQueryBool разбирает необязательный булев параметр; пустое значение дает nil.
func parseQueryBool(w http.ResponseWriter, r *http.Request, name string) (*bool, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, true
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		log.Printf("[Handlers] Неверное значение параметра %s: %v", name, err)
		writeError(w, http.StatusBadRequest, "Неверное значение параметра "+name)
		return nil, false
	}
	return &value, true
}
