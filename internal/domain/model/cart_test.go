package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func item(id int64, name, price string) CatalogItem {
	return CatalogItem{
		ID:       id,
		Name:     name,
		Category: "Breakfast",
		Unit:     "plate",
		Price:    decimal.RequireFromString(price),
	}
}

func TestCart_Add_NewAndRepeat(t *testing.T) {
	c := NewCart()
	assert.True(t, c.IsEmpty())

	c.Add(item(1, "Omelette", "12.75"))
	c.Add(item(1, "Omelette", "12.75"))

	entries := c.Entries()
	assert.Len(t, entries, 1)
	assert.Equal(t, int64(2), entries[0].Quantity)
	assert.Equal(t, int64(2), c.Count())
	assert.False(t, c.IsEmpty())
}

func TestCart_Add_SnapshotKeepsPriceAtAddTime(t *testing.T) {
	c := NewCart()
	c.Add(item(1, "Omelette", "12.75"))

	// 同じIDで価格が変わっても最初のスナップショットが残る
	c.Add(item(1, "Omelette", "99.00"))

	entries := c.Entries()
	assert.Len(t, entries, 1)
	assert.Equal(t, "12.75", entries[0].UnitPrice.StringFixed(2))
	assert.Equal(t, "25.50", c.Total().StringFixed(2))
}

func TestCart_Entries_InsertionOrder(t *testing.T) {
	c := NewCart()
	c.Add(item(3, "Tea", "1.50"))
	c.Add(item(1, "Omelette", "12.75"))
	c.Add(item(2, "Juice", "4.00"))
	c.Add(item(3, "Tea", "1.50"))

	entries := c.Entries()
	assert.Len(t, entries, 3)
	assert.Equal(t, "Tea", entries[0].Name)
	assert.Equal(t, "Omelette", entries[1].Name)
	assert.Equal(t, "Juice", entries[2].Name)
}

func TestCart_Adjust(t *testing.T) {
	c := NewCart()
	c.Add(item(1, "Omelette", "12.75"))

	c.Adjust(1, 2)
	assert.Equal(t, int64(3), c.Count())

	// 0以下になったら明細ごと消える
	c.Adjust(1, -3)
	assert.True(t, c.IsEmpty())

	// 無い明細は何もしない
	c.Adjust(99, 5)
	assert.True(t, c.IsEmpty())
}

func TestCart_Remove(t *testing.T) {
	c := NewCart()
	c.Add(item(1, "Omelette", "12.75"))
	c.Add(item(2, "Juice", "4.00"))

	c.Remove(1)
	entries := c.Entries()
	assert.Len(t, entries, 1)
	assert.Equal(t, "Juice", entries[0].Name)

	c.Remove(99)
	assert.Len(t, c.Entries(), 1)
}

func TestCart_Total(t *testing.T) {
	c := NewCart()
	assert.Equal(t, "0.00", c.Total().StringFixed(2))

	c.Add(item(1, "Omelette", "12.75"))
	c.Add(item(1, "Omelette", "12.75"))
	c.Add(item(2, "Juice", "4.00"))
	assert.Equal(t, "29.50", c.Total().StringFixed(2))
}

func TestCart_Clear(t *testing.T) {
	c := NewCart()
	c.Add(item(1, "Omelette", "12.75"))

	c.Clear()
	assert.True(t, c.IsEmpty())
	assert.Equal(t, "0.00", c.Total().StringFixed(2))

	// clear後も普通に使える
	c.Add(item(2, "Juice", "4.00"))
	assert.Equal(t, int64(1), c.Count())
}
