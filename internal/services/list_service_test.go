package services_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/tyler-herwig/shopping-list/internal/models"
	"github.com/tyler-herwig/shopping-list/internal/repository"
	"github.com/tyler-herwig/shopping-list/internal/services"
)

// MockListRepository - мок репозитория списков.
type MockListRepository struct {
	mock.Mock
}

func (m *MockListRepository) CreateList(ctx context.Context, list *models.List) error {
	args := m.Called(ctx, list)
	return args.Error(0)
}

func (m *MockListRepository) FindLists(
	ctx context.Context,
	filter models.ListFilter,
) ([]models.ListWithCounts, int64, error) {
	args := m.Called(ctx, filter)
	lists, _ := args.Get(0).([]models.ListWithCounts)
	return lists, args.Get(1).(int64), args.Error(2)
}

func (m *MockListRepository) GetListByID(ctx context.Context, id int64) (*models.List, error) {
	args := m.Called(ctx, id)
	list, _ := args.Get(0).(*models.List)
	return list, args.Error(1)
}

func (m *MockListRepository) CountLists(ctx context.Context, userID int64, completed *bool) (int64, error) {
	args := m.Called(ctx, userID, completed)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockListRepository) UpdateList(ctx context.Context, list *models.List) error {
	args := m.Called(ctx, list)
	return args.Error(0)
}

func (m *MockListRepository) DeleteList(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestNewListService(t *testing.T) {
	service := services.NewListService(new(MockListRepository))
	assert.NotNil(t, service)
}

func TestCreateListService(t *testing.T) {
	ctx := context.Background()

	t.Run("Успешное создание", func(t *testing.T) {
		mockRepo := new(MockListRepository)
		service := services.NewListService(mockRepo)

		mockRepo.On("CreateList", ctx, mock.MatchedBy(func(list *models.List) bool {
			return list.Name == "Groceries" && list.UserID == 1 && !list.Completed
		})).Return(nil)

		list, err := service.CreateList(ctx, &models.CreateListRequest{Name: "Groceries", UserID: 1})
		require.NoError(t, err)
		assert.Equal(t, "Groceries", list.Name)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Слишком длинное имя", func(t *testing.T) {
		mockRepo := new(MockListRepository)
		service := services.NewListService(mockRepo)

		_, err := service.CreateList(ctx, &models.CreateListRequest{
			Name:   strings.Repeat("a", 101),
			UserID: 1,
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, services.ErrValidation)
		// Репозиторий не должен вызываться при ошибке валидации
		mockRepo.AssertNotCalled(t, "CreateList")
	})

	t.Run("Слишком длинное описание", func(t *testing.T) {
		mockRepo := new(MockListRepository)
		service := services.NewListService(mockRepo)

		_, err := service.CreateList(ctx, &models.CreateListRequest{
			Name:        "Groceries",
			Description: strings.Repeat("a", 501),
			UserID:      1,
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, services.ErrValidation)
		mockRepo.AssertNotCalled(t, "CreateList")
	})

	t.Run("Имя занято", func(t *testing.T) {
		mockRepo := new(MockListRepository)
		service := services.NewListService(mockRepo)

		mockRepo.On("CreateList", ctx, mock.AnythingOfType("*models.List")).
			Return(repository.ErrListNameTaken)

		_, err := service.CreateList(ctx, &models.CreateListRequest{Name: "Groceries", UserID: 1})
		require.Error(t, err)
		assert.ErrorIs(t, err, services.ErrListNameTaken)
		mockRepo.AssertExpectations(t)
	})
}

func TestGetLists(t *testing.T) {
	ctx := context.Background()

	t.Run("Метаданные пагинации", func(t *testing.T) {
		mockRepo := new(MockListRepository)
		service := services.NewListService(mockRepo)

		lists := []models.ListWithCounts{
			{List: models.List{ID: 1, Name: "Groceries", UserID: 1}},
		}
		filter := models.ListFilter{UserID: 1, Page: 2, Limit: 10}
		mockRepo.On("FindLists", ctx, filter).Return(lists, int64(15), nil)

		page, err := service.GetLists(ctx, filter)
		require.NoError(t, err)
		assert.EqualValues(t, 15, page.Total)
		assert.EqualValues(t, 2, page.TotalPages) // 15 при лимите 10 — это 2 страницы
		assert.Equal(t, 2, page.CurrentPage)
		assert.Len(t, page.Lists, 1)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Значения по умолчанию для страницы и лимита", func(t *testing.T) {
		mockRepo := new(MockListRepository)
		service := services.NewListService(mockRepo)

		expected := models.ListFilter{UserID: 1, Page: 1, Limit: 10}
		mockRepo.On("FindLists", ctx, expected).Return([]models.ListWithCounts{}, int64(0), nil)

		page, err := service.GetLists(ctx, models.ListFilter{UserID: 1})
		require.NoError(t, err)
		assert.Zero(t, page.Total)
		assert.Zero(t, page.TotalPages)
		assert.Equal(t, 1, page.CurrentPage)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Ошибка репозитория", func(t *testing.T) {
		mockRepo := new(MockListRepository)
		service := services.NewListService(mockRepo)

		mockRepo.On("FindLists", ctx, mock.AnythingOfType("models.ListFilter")).
			Return(nil, int64(0), errors.New("ошибка БД"))

		_, err := service.GetLists(ctx, models.ListFilter{UserID: 1, Page: 1, Limit: 10})
		require.Error(t, err)
		mockRepo.AssertExpectations(t)
	})
}

func TestGetListByIDService(t *testing.T) {
	ctx := context.Background()

	t.Run("Список найден", func(t *testing.T) {
		mockRepo := new(MockListRepository)
		service := services.NewListService(mockRepo)

		mockRepo.On("GetListByID", ctx, int64(1)).
			Return(&models.List{ID: 1, Name: "Groceries", UserID: 1}, nil)

		list, err := service.GetListByID(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, "Groceries", list.Name)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Список не найден", func(t *testing.T) {
		mockRepo := new(MockListRepository)
		service := services.NewListService(mockRepo)

		mockRepo.On("GetListByID", ctx, int64(999)).Return(nil, repository.ErrListNotFound)

		_, err := service.GetListByID(ctx, 999)
		require.Error(t, err)
		assert.ErrorIs(t, err, services.ErrListNotFound)
		mockRepo.AssertExpectations(t)
	})
}

func TestCountListsService(t *testing.T) {
	ctx := context.Background()

	t.Run("Успешный подсчет", func(t *testing.T) {
		mockRepo := new(MockListRepository)
		service := services.NewListService(mockRepo)

		mockRepo.On("CountLists", ctx, int64(1), (*bool)(nil)).Return(int64(3), nil)

		count, err := service.CountLists(ctx, 1, nil)
		require.NoError(t, err)
		assert.EqualValues(t, 3, count)
		mockRepo.AssertExpectations(t)
	})
}

func TestUpdateListService(t *testing.T) {
	ctx := context.Background()

	boolPtr := func(v bool) *bool { return &v }
	strPtr := func(v string) *string { return &v }

	t.Run("Завершение списка ставит отметку времени", func(t *testing.T) {
		mockRepo := new(MockListRepository)
		service := services.NewListService(mockRepo)

		mockRepo.On("GetListByID", ctx, int64(1)).
			Return(&models.List{ID: 1, Name: "Groceries", UserID: 1, Completed: false}, nil)
		mockRepo.On("UpdateList", ctx, mock.MatchedBy(func(list *models.List) bool {
			return list.Completed && list.CompletedAt != nil
		})).Return(nil)

		list, err := service.UpdateList(ctx, 1, &models.UpdateListRequest{Completed: boolPtr(true)})
		require.NoError(t, err)
		assert.True(t, list.Completed)
		require.NotNil(t, list.CompletedAt)
		assert.WithinDuration(t, time.Now(), *list.CompletedAt, time.Minute)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Возврат в работу сбрасывает отметку времени", func(t *testing.T) {
		mockRepo := new(MockListRepository)
		service := services.NewListService(mockRepo)

		completedAt := time.Now().Add(-time.Hour)
		mockRepo.On("GetListByID", ctx, int64(1)).
			Return(&models.List{ID: 1, Name: "Groceries", UserID: 1, Completed: true, CompletedAt: &completedAt}, nil)
		mockRepo.On("UpdateList", ctx, mock.MatchedBy(func(list *models.List) bool {
			return !list.Completed && list.CompletedAt == nil
		})).Return(nil)

		list, err := service.UpdateList(ctx, 1, &models.UpdateListRequest{Completed: boolPtr(false)})
		require.NoError(t, err)
		assert.False(t, list.Completed)
		assert.Nil(t, list.CompletedAt)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Повторное завершение не меняет отметку времени", func(t *testing.T) {
		mockRepo := new(MockListRepository)
		service := services.NewListService(mockRepo)

		completedAt := time.Now().Add(-time.Hour)
		mockRepo.On("GetListByID", ctx, int64(1)).
			Return(&models.List{ID: 1, Name: "Groceries", UserID: 1, Completed: true, CompletedAt: &completedAt}, nil)
		mockRepo.On("UpdateList", ctx, mock.AnythingOfType("*models.List")).Return(nil)

		list, err := service.UpdateList(ctx, 1, &models.UpdateListRequest{Completed: boolPtr(true)})
		require.NoError(t, err)
		require.NotNil(t, list.CompletedAt)
		assert.Equal(t, completedAt, *list.CompletedAt)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Частичное обновление не трогает остальные поля", func(t *testing.T) {
		mockRepo := new(MockListRepository)
		service := services.NewListService(mockRepo)

		mockRepo.On("GetListByID", ctx, int64(1)).
			Return(&models.List{ID: 1, Name: "Groceries", Description: "Weekly", UserID: 1}, nil)
		mockRepo.On("UpdateList", ctx, mock.AnythingOfType("*models.List")).Return(nil)

		list, err := service.UpdateList(ctx, 1, &models.UpdateListRequest{Name: strPtr("Renamed")})
		require.NoError(t, err)
		assert.Equal(t, "Renamed", list.Name)
		assert.Equal(t, "Weekly", list.Description)
		assert.False(t, list.Completed)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Невалидное новое имя", func(t *testing.T) {
		mockRepo := new(MockListRepository)
		service := services.NewListService(mockRepo)

		mockRepo.On("GetListByID", ctx, int64(1)).
			Return(&models.List{ID: 1, Name: "Groceries", UserID: 1}, nil)

		_, err := service.UpdateList(ctx, 1, &models.UpdateListRequest{Name: strPtr("")})
		require.Error(t, err)
		assert.ErrorIs(t, err, services.ErrValidation)
		mockRepo.AssertNotCalled(t, "UpdateList")
	})

	t.Run("Список не найден", func(t *testing.T) {
		mockRepo := new(MockListRepository)
		service := services.NewListService(mockRepo)

		mockRepo.On("GetListByID", ctx, int64(999)).Return(nil, repository.ErrListNotFound)

		_, err := service.UpdateList(ctx, 999, &models.UpdateListRequest{Name: strPtr("Renamed")})
		require.Error(t, err)
		assert.ErrorIs(t, err, services.ErrListNotFound)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Переименование в занятое имя", func(t *testing.T) {
		mockRepo := new(MockListRepository)
		service := services.NewListService(mockRepo)

		mockRepo.On("GetListByID", ctx, int64(1)).
			Return(&models.List{ID: 1, Name: "Hardware", UserID: 1}, nil)
		mockRepo.On("UpdateList", ctx, mock.AnythingOfType("*models.List")).
			Return(repository.ErrListNameTaken)

		_, err := service.UpdateList(ctx, 1, &models.UpdateListRequest{Name: strPtr("Groceries")})
		require.Error(t, err)
		assert.ErrorIs(t, err, services.ErrListNameTaken)
		mockRepo.AssertExpectations(t)
	})
}

func TestDeleteListService(t *testing.T) {
	ctx := context.Background()

	t.Run("Успешное удаление", func(t *testing.T) {
		mockRepo := new(MockListRepository)
		service := services.NewListService(mockRepo)

		mockRepo.On("GetListByID", ctx, int64(1)).
			Return(&models.List{ID: 1, Name: "Groceries", UserID: 1}, nil)
		mockRepo.On("DeleteList", ctx, int64(1)).Return(nil)

		require.NoError(t, service.DeleteList(ctx, 1))
		mockRepo.AssertExpectations(t)
	})

	t.Run("Список не найден", func(t *testing.T) {
		mockRepo := new(MockListRepository)
		service := services.NewListService(mockRepo)

		mockRepo.On("GetListByID", ctx, int64(999)).Return(nil, repository.ErrListNotFound)

		err := service.DeleteList(ctx, 999)
		require.Error(t, err)
		assert.ErrorIs(t, err, services.ErrListNotFound)
		mockRepo.AssertNotCalled(t, "DeleteList")
	})
}
