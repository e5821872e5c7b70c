package usecase

import (
	"context"
	"errors"
	"net/http"

	"github.com/shopspring/decimal"

	repo "app/internal/repository"
	"app/internal/session"
)

// CartUsecase は /cart の業務ロジック。
// カート本体はセッションが持ち、ここではカタログ照会と応答の組み立てを行う。
type CartUsecase struct {
	catalog repo.CatalogRepository
}

func NewCartUsecase(catalog repo.CatalogRepository) *CartUsecase {
	return &CartUsecase{catalog: catalog}
}

type CartItemResponse struct {
	ItemID   int64  `json:"item_id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Unit     string `json:"unit"`
	Price    string `json:"price"`
	Quantity int64  `json:"quantity"`
	Subtotal string `json:"subtotal"`
}

type CartResponse struct {
	Items         []CartItemResponse `json:"items"`
	TotalQuantity int64              `json:"total_quantity"`
	Total         string             `json:"total"`
}

func (u *CartUsecase) GetCart(sess *session.Session) CartResponse {
	sess.Lock()
	defer sess.Unlock()

	return buildCartResponse(sess)
}

// カートに追加（同一商品は数量+1）。スナップショットは追加時点のカタログから取る。
func (u *CartUsecase) AddToCart(ctx context.Context, sess *session.Session, itemID int64) (CartResponse, error) {
	if itemID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid item_id")
	}

	item, err := u.catalog.FindByID(ctx, itemID)
	if errors.Is(err, repo.ErrNotFound) {
		return CartResponse{}, NewHTTPError(http.StatusNotFound, "item not found")
	}
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "catalog error")
	}

	sess.Lock()
	defer sess.Unlock()

	sess.Cart.Add(item)
	return buildCartResponse(sess), nil
}

// 数量をdeltaだけ増減。0以下で明細削除、明細が無ければ何もしない（どちらもエラーにしない）。
func (u *CartUsecase) AdjustItem(sess *session.Session, itemID int64, delta int64) CartResponse {
	sess.Lock()
	defer sess.Unlock()

	sess.Cart.Adjust(itemID, delta)
	return buildCartResponse(sess)
}

// 明細を無条件削除。無ければ何もしない。
func (u *CartUsecase) RemoveItem(sess *session.Session, itemID int64) CartResponse {
	sess.Lock()
	defer sess.Unlock()

	sess.Cart.Remove(itemID)
	return buildCartResponse(sess)
}

// 呼び出し側でセッションのロックを取っていること。
func buildCartResponse(sess *session.Session) CartResponse {
	entries := sess.Cart.Entries()
	items := make([]CartItemResponse, 0, len(entries))
	for _, e := range entries {
		items = append(items, CartItemResponse{
			ItemID:   e.ItemID,
			Name:     e.Name,
			Category: e.Category,
			Unit:     e.Unit,
			Price:    e.UnitPrice.StringFixed(2),
			Quantity: e.Quantity,
			Subtotal: e.UnitPrice.Mul(decimal.NewFromInt(e.Quantity)).StringFixed(2),
		})
	}

	return CartResponse{
		Items:         items,
		TotalQuantity: sess.Cart.Count(),
		Total:         sess.Cart.Total().StringFixed(2),
	}
}
