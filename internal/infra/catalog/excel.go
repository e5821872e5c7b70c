package catalog

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"app/internal/domain/model"
)

// 価格セルの最初の数値部分（"12.50 AED" → "12.50"）
var priceRe = regexp.MustCompile(`[0-9]+(?:\.[0-9]+)?`)

// 1行に3品目ぶん（名前・規格・価格）が詰まっている列オフセット
var tripleOffsets = []int{0, 4, 8}

// LoadWorkbook はカタログのワークブックを読み込む。
// シート名=カテゴリ。データは3行目（index 2）から。
// 名前が空のセルはスキップし、IDは走査順に1から振る。
func LoadWorkbook(path string) ([]model.CatalogItem, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	var items []model.CatalogItem
	var id int64 = 1

	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("read sheet %s: %w", sheet, err)
		}
		for i := 2; i < len(rows); i++ {
			row := rows[i]
			for _, off := range tripleOffsets {
				name := strings.TrimSpace(cell(row, off))
				if name == "" {
					continue
				}
				items = append(items, model.CatalogItem{
					ID:       id,
					Name:     name,
					Category: sheet,
					Unit:     strings.TrimSpace(cell(row, off+1)),
					Price:    parsePrice(cell(row, off+2)),
				})
				id++
			}
		}
	}
	return items, nil
}

func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return row[i]
}

// 数値が取れないセルは0円扱い。
func parsePrice(s string) decimal.Decimal {
	m := priceRe.FindString(s)
	if m == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(m)
	if err != nil {
		return decimal.Zero
	}
	return d
}
