package model

import "github.com/shopspring/decimal"

// カートの明細。
// 追加時点のスナップショット（名前・価格・単位・カテゴリ）を必ず保存する。
// 後からカタログを参照し直すことはしない。
type CartEntry struct {
	ItemID    int64           `json:"item_id"`
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	Unit      string          `json:"unit"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int64           `json:"quantity"`
}

// セッション専有のカート。明細は追加順を保持する。
// どの操作もエラーを返さない（現在の状態に対する全域関数）。
type Cart struct {
	entries []*CartEntry
	index   map[int64]*CartEntry
}

func NewCart() *Cart {
	return &Cart{index: make(map[int64]*CartEntry)}
}

// 同一商品は数量+1。無ければスナップショットを取って数量1で追加。
func (c *Cart) Add(item CatalogItem) {
	if e, ok := c.index[item.ID]; ok {
		e.Quantity++
		return
	}
	e := &CartEntry{
		ItemID:    item.ID,
		Name:      item.Name,
		Category:  item.Category,
		Unit:      item.Unit,
		UnitPrice: item.Price,
		Quantity:  1,
	}
	c.entries = append(c.entries, e)
	c.index[item.ID] = e
}

// 数量をdeltaだけ増減する。0以下になったら明細ごと削除（エラーにしない）。
// 明細が無ければ何もしない。
func (c *Cart) Adjust(itemID int64, delta int64) {
	e, ok := c.index[itemID]
	if !ok {
		return
	}
	e.Quantity += delta
	if e.Quantity <= 0 {
		c.Remove(itemID)
	}
}

// 無条件削除。明細が無ければ何もしない。
func (c *Cart) Remove(itemID int64) {
	if _, ok := c.index[itemID]; !ok {
		return
	}
	delete(c.index, itemID)
	for i, e := range c.entries {
		if e.ItemID == itemID {
			c.entries = append(c.entries[:i], c.entries[i+1:]...)
			break
		}
	}
}

// Σ(単価×数量)。途中で丸めない（表示時に2桁へ丸める）。
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, e := range c.entries {
		total = total.Add(e.UnitPrice.Mul(decimal.NewFromInt(e.Quantity)))
	}
	return total
}

func (c *Cart) IsEmpty() bool {
	return len(c.entries) == 0
}

// 数量の合計。
func (c *Cart) Count() int64 {
	var n int64
	for _, e := range c.entries {
		n += e.Quantity
	}
	return n
}

// 追加順の明細コピーを返す。
func (c *Cart) Entries() []CartEntry {
	out := make([]CartEntry, 0, len(c.entries))
	for _, e := range c.entries {
		out = append(out, *e)
	}
	return out
}

// 注文確定後に空へ戻す。
func (c *Cart) Clear() {
	c.entries = nil
	c.index = make(map[int64]*CartEntry)
}
