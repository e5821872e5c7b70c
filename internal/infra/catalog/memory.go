package catalog

import (
	"context"
	"sort"
	"strings"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

// メモリ上のカタログ。読み込み後は不変なのでロックは持たない。
type MemoryRepository struct {
	items      []model.CatalogItem
	byID       map[int64]model.CatalogItem
	categories []string
}

func NewMemoryRepository(items []model.CatalogItem) *MemoryRepository {
	r := &MemoryRepository{byID: make(map[int64]model.CatalogItem, len(items))}
	seen := map[string]bool{}
	for _, it := range items {
		r.items = append(r.items, it)
		r.byID[it.ID] = it
		if !seen[it.Category] {
			seen[it.Category] = true
			r.categories = append(r.categories, it.Category)
		}
	}
	sort.Strings(r.categories)
	return r
}

func (r *MemoryRepository) FindByID(ctx context.Context, itemID int64) (model.CatalogItem, error) {
	it, ok := r.byID[itemID]
	if !ok {
		return model.CatalogItem{}, repo.ErrNotFound
	}
	return it, nil
}

func (r *MemoryRepository) List(ctx context.Context, f repo.CatalogFilter) ([]model.CatalogItem, error) {
	q := strings.ToLower(strings.TrimSpace(f.Q))
	out := make([]model.CatalogItem, 0, len(r.items))
	for _, it := range r.items {
		if f.Category != "" && it.Category != f.Category {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(it.Name), q) {
			continue
		}
		out = append(out, it)
	}
	return out, nil
}

func (r *MemoryRepository) Categories(ctx context.Context) ([]string, error) {
	return append([]string(nil), r.categories...), nil
}
