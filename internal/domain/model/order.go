package model

import "github.com/shopspring/decimal"

// 注文の1明細（確定時点のスナップショット）。
type OrderLine struct {
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	Unit      string          `json:"unit"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// 確定済みの注文。作成後は変更しない。
// Totalは全明細のLineTotalの合計と一致する。
type Order struct {
	Date     string          `json:"date"` // YYYY-MM-DD
	Time     string          `json:"time"` // HH:MM:SS
	UserName string          `json:"user_name"`
	Lines    []OrderLine     `json:"lines"`
	Total    decimal.Decimal `json:"total"`
}

// CSVに永続化された1行（1明細=1行）。
// 同一注文の行はDate/Time/UserName/OrderTotalを共有する。
// 数値列は永続化された文字列のまま持ち、集計側で変換する。
type OrderLogRecord struct {
	Date       string `json:"date"`
	Time       string `json:"time"`
	UserName   string `json:"user_name"`
	ItemName   string `json:"item_name"`
	Category   string `json:"category"`
	Unit       string `json:"unit"`
	Quantity   string `json:"quantity"`
	UnitPrice  string `json:"unit_price"`
	LineTotal  string `json:"item_total"`
	OrderTotal string `json:"order_total"`
}
