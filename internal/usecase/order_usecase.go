package usecase

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"app/internal/domain/model"
	repo "app/internal/repository"
	"app/internal/session"
)

// 空のカートで注文を確定しようとした。
var ErrEmptyOrder = errors.New("cart is empty")

// 注文時刻はUAE時間（UTC+4）固定。ホストのローカルタイムゾーンは使わない。
var orderZone = time.FixedZone("UTC+4", 4*60*60)

// 保存成功後の注文を受け取る通知先。
// 失敗しても注文の成否には影響しない前提で呼ばれる。
type Notifier interface {
	Enqueue(order model.Order)
}

type OrderUsecase struct {
	log      repo.OrderLogRepository
	notifier Notifier
	clock    Clock
}

func NewOrderUsecase(log repo.OrderLogRepository, notifier Notifier, clock Clock) *OrderUsecase {
	return &OrderUsecase{log: log, notifier: notifier, clock: clock}
}

// BuildOrder はカートから不変の注文を組み立てる。副作用なし。
// 明細の並びはカートの追加順をそのまま使う（ログの行順を再現可能にする）。
func BuildOrder(cart *model.Cart, userName string, now time.Time) (model.Order, error) {
	if cart.IsEmpty() {
		return model.Order{}, ErrEmptyOrder
	}

	t := now.In(orderZone)
	entries := cart.Entries()
	lines := make([]model.OrderLine, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, model.OrderLine{
			Name:      e.Name,
			Category:  e.Category,
			Unit:      e.Unit,
			Quantity:  e.Quantity,
			UnitPrice: e.UnitPrice,
			LineTotal: e.UnitPrice.Mul(decimal.NewFromInt(e.Quantity)),
		})
	}

	return model.Order{
		Date:     t.Format("2006-01-02"),
		Time:     t.Format("15:04:05"),
		UserName: userName,
		Lines:    lines,
		Total:    cart.Total(),
	}, nil
}

type OrderLineResponse struct {
	Name      string `json:"name"`
	Category  string `json:"category"`
	Unit      string `json:"unit"`
	Quantity  int64  `json:"quantity"`
	UnitPrice string `json:"unit_price"`
	LineTotal string `json:"line_total"`
}

type OrderResponse struct {
	Date     string              `json:"date"`
	Time     string              `json:"time"`
	UserName string              `json:"user_name"`
	Items    []OrderLineResponse `json:"items"`
	Total    string              `json:"total"`
}

// Complete は注文を確定する。ログ追記→通知→履歴→カートclearの順。
// ログ追記に失敗したらカートはそのまま残す（もう一度確定し直せる）。
// 通知は保存成功後のイベントで、失敗しても注文は成功扱い。
func (u *OrderUsecase) Complete(ctx context.Context, sess *session.Session) (OrderResponse, error) {
	sess.Lock()
	defer sess.Unlock()

	order, err := BuildOrder(sess.Cart, sess.UserName, u.clock.Now())
	if errors.Is(err, ErrEmptyOrder) {
		return OrderResponse{}, NewHTTPError(http.StatusBadRequest, "cart is empty")
	}
	if err != nil {
		return OrderResponse{}, NewHTTPError(http.StatusInternalServerError, "order error")
	}

	if err := u.log.Append(ctx, order); err != nil {
		return OrderResponse{}, NewHTTPError(http.StatusServiceUnavailable, "order log unavailable")
	}

	if u.notifier != nil {
		u.notifier.Enqueue(order)
	}

	sess.History = append(sess.History, order)
	sess.Cart.Clear()

	return toOrderResponse(order), nil
}

// このセッションで確定した注文を新しい順に返す。
func (u *OrderUsecase) ListHistory(sess *session.Session) []OrderResponse {
	sess.Lock()
	defer sess.Unlock()

	out := make([]OrderResponse, 0, len(sess.History))
	for i := len(sess.History) - 1; i >= 0; i-- {
		out = append(out, toOrderResponse(sess.History[i]))
	}
	return out
}

func toOrderResponse(o model.Order) OrderResponse {
	items := make([]OrderLineResponse, 0, len(o.Lines))
	for _, ln := range o.Lines {
		items = append(items, OrderLineResponse{
			Name:      ln.Name,
			Category:  ln.Category,
			Unit:      ln.Unit,
			Quantity:  ln.Quantity,
			UnitPrice: ln.UnitPrice.StringFixed(2),
			LineTotal: ln.LineTotal.StringFixed(2),
		})
	}

	return OrderResponse{
		Date:     o.Date,
		Time:     o.Time,
		UserName: o.UserName,
		Items:    items,
		Total:    o.Total.StringFixed(2),
	}
}
