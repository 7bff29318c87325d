package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"eventures/pkg/cache"
)

func newTestService(repo *mockRepository) Service {
	return NewService(repo, cache.NewNoop(), 0)
}

func TestService_ListByKind(t *testing.T) {
	repo := new(mockRepository)
	svc := newTestService(repo)
	ctx := context.Background()

	repo.On("List", mock.Anything, KindFurniture, "").Return([]Item{
		{ID: uuid.New(), Kind: KindFurniture, Category: "Chairs", Name: "Chiavari", Price: decimal.NewFromInt(4)},
		{ID: uuid.New(), Kind: KindFurniture, Category: "Tables", Name: "Round table", Price: decimal.NewFromInt(15)},
	}, nil)

	listing, err := svc.ListByKind(ctx, KindFurniture, "")

	require.NoError(t, err)
	assert.Equal(t, 2, listing.TotalItems)
	require.Len(t, listing.Categories, 2)
	assert.Equal(t, "Chairs", listing.Categories[0].Category)
	repo.AssertExpectations(t)
}

func TestService_ListByKind_InvalidKind(t *testing.T) {
	repo := new(mockRepository)
	svc := newTestService(repo)

	_, err := svc.ListByKind(context.Background(), Kind("plates"), "")

	assert.ErrorIs(t, err, ErrInvalidKind)
	repo.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_Categories_EmptyIsNotNil(t *testing.T) {
	repo := new(mockRepository)
	svc := newTestService(repo)

	repo.On("Categories", mock.Anything, KindUtensil).Return(nil, nil)

	categories, err := svc.Categories(context.Background(), KindUtensil)

	require.NoError(t, err)
	assert.NotNil(t, categories)
	assert.Empty(t, categories)
}

func TestService_GetItem_NotFound(t *testing.T) {
	repo := new(mockRepository)
	svc := newTestService(repo)
	id := uuid.New()

	repo.On("GetByID", mock.Anything, id).Return(nil, ErrNotFound)

	_, err := svc.GetItem(context.Background(), id)

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_CreateItem(t *testing.T) {
	repo := new(mockRepository)
	svc := newTestService(repo)

	repo.On("Create", mock.Anything, mock.MatchedBy(func(item *Item) bool {
		return item.Kind == KindDecoration &&
			item.Name == "Balloon arch" &&
			item.Price.Equal(decimal.RequireFromString("49.99"))
	})).Return(nil)

	item, err := svc.CreateItem(context.Background(), KindDecoration, CreateItemRequest{
		Category: " Balloons ",
		Name:     "Balloon arch",
		Price:    "49.99",
	})

	require.NoError(t, err)
	assert.Equal(t, "Balloons", item.Category)
	repo.AssertExpectations(t)
}

func TestService_CreateItem_RejectsBadPrice(t *testing.T) {
	for _, price := range []string{"N/A", "-1", ""} {
		t.Run(price, func(t *testing.T) {
			repo := new(mockRepository)
			svc := newTestService(repo)

			_, err := svc.CreateItem(context.Background(), KindDecoration, CreateItemRequest{
				Category: "Balloons",
				Name:     "Arch",
				Price:    price,
			})

			assert.ErrorIs(t, err, ErrInvalidPrice)
			repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestService_UpdateItem_AppliesOnlyGivenFields(t *testing.T) {
	repo := new(mockRepository)
	svc := newTestService(repo)
	id := uuid.New()

	existing := &Item{ID: id, Kind: KindUtensil, Category: "Plates", Name: "Dinner plate", Price: decimal.NewFromInt(2)}
	repo.On("GetByID", mock.Anything, id).Return(existing, nil)
	repo.On("Update", mock.Anything, mock.AnythingOfType("*catalog.Item")).Return(nil)

	price := "2.75"
	item, err := svc.UpdateItem(context.Background(), id, UpdateItemRequest{Price: &price})

	require.NoError(t, err)
	assert.Equal(t, "Dinner plate", item.Name)
	assert.True(t, item.Price.Equal(decimal.RequireFromString("2.75")))
}

func TestService_DeleteCategory(t *testing.T) {
	repo := new(mockRepository)
	svc := newTestService(repo)

	repo.On("DeleteByCategory", mock.Anything, KindFurniture, "Sofas").Return(int64(3), nil)

	deleted, err := svc.DeleteCategory(context.Background(), KindFurniture, "Sofas")

	require.NoError(t, err)
	assert.Equal(t, int64(3), deleted)
}

func TestService_DeleteCategory_RepositoryError(t *testing.T) {
	repo := new(mockRepository)
	svc := newTestService(repo)

	repo.On("DeleteByCategory", mock.Anything, KindFurniture, "Sofas").Return(int64(0), errors.New("connection reset"))

	_, err := svc.DeleteCategory(context.Background(), KindFurniture, "Sofas")

	assert.ErrorContains(t, err, "connection reset")
}
