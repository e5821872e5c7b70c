package usecase

import (
	"context"
	"net/http"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

// CatalogUsecase は品目一覧の業務ロジック。
type CatalogUsecase struct {
	catalog repo.CatalogRepository
}

func NewCatalogUsecase(catalog repo.CatalogRepository) *CatalogUsecase {
	return &CatalogUsecase{catalog: catalog}
}

type CatalogItemResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Unit     string `json:"unit"`
	Price    string `json:"price"`
}

type CatalogListResponse struct {
	Items []CatalogItemResponse `json:"items"`
	Total int                   `json:"total"`
}

type ListItemsInput struct {
	Q        string
	Category string
}

func (u *CatalogUsecase) List(ctx context.Context, in ListItemsInput) (CatalogListResponse, error) {
	items, err := u.catalog.List(ctx, repo.CatalogFilter{Q: in.Q, Category: in.Category})
	if err != nil {
		return CatalogListResponse{}, NewHTTPError(http.StatusInternalServerError, "catalog error")
	}

	out := make([]CatalogItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, toCatalogItemResponse(it))
	}
	return CatalogListResponse{Items: out, Total: len(out)}, nil
}

func (u *CatalogUsecase) Categories(ctx context.Context) ([]string, error) {
	cats, err := u.catalog.Categories(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "catalog error")
	}
	return cats, nil
}

func toCatalogItemResponse(it model.CatalogItem) CatalogItemResponse {
	return CatalogItemResponse{
		ID:       it.ID,
		Name:     it.Name,
		Category: it.Category,
		Unit:     it.Unit,
		Price:    it.Price.StringFixed(2),
	}
}
