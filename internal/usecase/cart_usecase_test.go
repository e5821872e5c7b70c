package usecase

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

type CatalogRepoMock struct{ mock.Mock }

func (m *CatalogRepoMock) FindByID(ctx context.Context, itemID int64) (model.CatalogItem, error) {
	args := m.Called(ctx, itemID)
	it, _ := args.Get(0).(model.CatalogItem)
	return it, args.Error(1)
}

func (m *CatalogRepoMock) List(ctx context.Context, f repo.CatalogFilter) ([]model.CatalogItem, error) {
	args := m.Called(ctx, f)
	items, _ := args.Get(0).([]model.CatalogItem)
	return items, args.Error(1)
}

func (m *CatalogRepoMock) Categories(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	cats, _ := args.Get(0).([]string)
	return cats, args.Error(1)
}

func TestCartUsecase_AddToCart_Success(t *testing.T) {
	catalog := new(CatalogRepoMock)
	uc := NewCartUsecase(catalog)
	sess := newTestSession("Alice")

	catalog.On("FindByID", mock.Anything, int64(1)).Return(catalogItem(1, "Omelette", "12.75"), nil)

	out, err := uc.AddToCart(context.Background(), sess, 1)
	assert.NoError(t, err)
	assert.Len(t, out.Items, 1)
	assert.Equal(t, "12.75", out.Items[0].Price)
	assert.Equal(t, int64(1), out.TotalQuantity)
	assert.Equal(t, "12.75", out.Total)

	// 同じ商品は数量+1
	out, err = uc.AddToCart(context.Background(), sess, 1)
	assert.NoError(t, err)
	assert.Len(t, out.Items, 1)
	assert.Equal(t, int64(2), out.Items[0].Quantity)
	assert.Equal(t, "25.50", out.Items[0].Subtotal)
	assert.Equal(t, "25.50", out.Total)
}

func TestCartUsecase_AddToCart_InvalidID(t *testing.T) {
	uc := NewCartUsecase(new(CatalogRepoMock))
	sess := newTestSession("Alice")

	_, err := uc.AddToCart(context.Background(), sess, 0)
	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)
}

func TestCartUsecase_AddToCart_NotFound(t *testing.T) {
	catalog := new(CatalogRepoMock)
	uc := NewCartUsecase(catalog)
	sess := newTestSession("Alice")

	catalog.On("FindByID", mock.Anything, int64(99)).Return(model.CatalogItem{}, repo.ErrNotFound)

	_, err := uc.AddToCart(context.Background(), sess, 99)
	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Status)
	assert.Equal(t, "item not found", he.Message)
}

func TestCartUsecase_AdjustItem(t *testing.T) {
	catalog := new(CatalogRepoMock)
	uc := NewCartUsecase(catalog)
	sess := newTestSession("Alice")

	catalog.On("FindByID", mock.Anything, int64(1)).Return(catalogItem(1, "Omelette", "12.75"), nil)
	_, err := uc.AddToCart(context.Background(), sess, 1)
	assert.NoError(t, err)

	out := uc.AdjustItem(sess, 1, 2)
	assert.Equal(t, int64(3), out.TotalQuantity)

	// 0以下で明細削除
	out = uc.AdjustItem(sess, 1, -5)
	assert.Empty(t, out.Items)
	assert.Equal(t, "0.00", out.Total)

	// 無い明細は何もしないでそのまま返す
	out = uc.AdjustItem(sess, 42, 1)
	assert.Empty(t, out.Items)
}

func TestCartUsecase_RemoveItem(t *testing.T) {
	catalog := new(CatalogRepoMock)
	uc := NewCartUsecase(catalog)
	sess := newTestSession("Alice")

	catalog.On("FindByID", mock.Anything, int64(1)).Return(catalogItem(1, "Omelette", "12.75"), nil)
	catalog.On("FindByID", mock.Anything, int64(2)).Return(catalogItem(2, "Juice", "4.00"), nil)

	ctx := context.Background()
	_, _ = uc.AddToCart(ctx, sess, 1)
	_, _ = uc.AddToCart(ctx, sess, 2)

	out := uc.RemoveItem(sess, 1)
	assert.Len(t, out.Items, 1)
	assert.Equal(t, "Juice", out.Items[0].Name)
}

func TestCartUsecase_GetCart_Empty(t *testing.T) {
	uc := NewCartUsecase(new(CatalogRepoMock))
	sess := newTestSession("Alice")

	out := uc.GetCart(sess)
	assert.Empty(t, out.Items)
	assert.Equal(t, int64(0), out.TotalQuantity)
	assert.Equal(t, "0.00", out.Total)
}

func TestCatalogUsecase_List(t *testing.T) {
	catalog := new(CatalogRepoMock)
	uc := NewCatalogUsecase(catalog)

	items := []model.CatalogItem{catalogItem(1, "Omelette", "12.75")}
	catalog.On("List", mock.Anything, repo.CatalogFilter{Q: "ome", Category: "Breakfast"}).Return(items, nil)

	out, err := uc.List(context.Background(), ListItemsInput{Q: "ome", Category: "Breakfast"})
	assert.NoError(t, err)
	assert.Equal(t, 1, out.Total)
	assert.Equal(t, "Omelette", out.Items[0].Name)
	assert.Equal(t, "12.75", out.Items[0].Price)
}

func TestCatalogUsecase_Categories(t *testing.T) {
	catalog := new(CatalogRepoMock)
	uc := NewCatalogUsecase(catalog)

	catalog.On("Categories", mock.Anything).Return([]string{"Breakfast", "Drinks"}, nil)

	cats, err := uc.Categories(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, []string{"Breakfast", "Drinks"}, cats)
}
