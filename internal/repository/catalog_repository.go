package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
)

var ErrNotFound = errors.New("not found")

// カタログ一覧の絞り込み条件。
type CatalogFilter struct {
	// 名前の部分一致（大文字小文字は区別しない）
	Q string
	// カテゴリ完全一致。空なら全カテゴリ
	Category string
}

type CatalogRepository interface {
	FindByID(ctx context.Context, itemID int64) (model.CatalogItem, error)
	// 読み込み順で返す
	List(ctx context.Context, f CatalogFilter) ([]model.CatalogItem, error)
	Categories(ctx context.Context) ([]string, error)
}
