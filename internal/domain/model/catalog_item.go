package model

import "github.com/shopspring/decimal"

// カタログの1品目。読み込み後は不変。
type CatalogItem struct {
	ID       int64           `json:"id"`
	Name     string          `json:"name"`
	Category string          `json:"category"`
	Unit     string          `json:"unit"`
	Price    decimal.Decimal `json:"price"`
}
