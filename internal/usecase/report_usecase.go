package usecase

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"app/internal/domain/model"
	"app/internal/infra/orderlog"
	repo "app/internal/repository"
)

// 集計対象の数値列が壊れている。読み飛ばさずに表面化させる。
type ParseError struct {
	Row    int
	Column string
	Value  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("report parse error: row %d: %s %q is not a number", e.Row, e.Column, e.Value)
}

// ReportUsecase はマネージャ画面の集計・一覧・エクスポート。
type ReportUsecase struct {
	log   repo.OrderLogRepository
	clock Clock
}

func NewReportUsecase(log repo.OrderLogRepository, clock Clock) *ReportUsecase {
	return &ReportUsecase{log: log, clock: clock}
}

type UserSummary struct {
	UserName      string `json:"user_name"`
	TotalQuantity int64  `json:"total_quantity"`
	TotalSpent    string `json:"total_spent"`
}

type SummaryResponse struct {
	TotalUsers int `json:"total_users"`
	// 日付が入っている行数。複数明細の注文は明細ぶんだけ数える。
	TotalOrders int `json:"total_orders"`
	// 日付+時刻+ユーザー名で束ねた注文単位の数。
	DistinctOrders int           `json:"distinct_orders"`
	TotalAmount    string        `json:"total_amount"`
	SkippedRows    int           `json:"skipped_rows"`
	Users          []UserSummary `json:"users"`
}

func (u *ReportUsecase) Summary(ctx context.Context) (SummaryResponse, error) {
	records, skipped, err := u.log.ReadAll(ctx)
	if err != nil {
		return SummaryResponse{}, NewHTTPError(http.StatusServiceUnavailable, "order log unavailable")
	}

	s, err := Summarize(records)
	if err != nil {
		return SummaryResponse{}, NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	users, err := PerUser(records)
	if err != nil {
		return SummaryResponse{}, NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	s.SkippedRows = skipped
	s.Users = users
	return s, nil
}

// Summarize は全体サマリを計算する。空の入力はゼロ値で成功する。
func Summarize(records []model.OrderLogRecord) (SummaryResponse, error) {
	users := map[string]bool{}
	orders := map[string]bool{}
	totalOrders := 0
	total := decimal.Zero

	// Order Total列が全行空のときだけItem Totalの合計にフォールバックする
	hasOrderTotal := false
	for _, r := range records {
		if strings.TrimSpace(r.OrderTotal) != "" {
			hasOrderTotal = true
			break
		}
	}

	for i, r := range records {
		if name := strings.TrimSpace(r.UserName); name != "" {
			users[name] = true
		}
		if strings.TrimSpace(r.Date) != "" {
			totalOrders++
			orders[r.Date+"|"+r.Time+"|"+r.UserName] = true
		}

		if hasOrderTotal {
			v := strings.TrimSpace(r.OrderTotal)
			if v == "" {
				continue
			}
			d, err := decimal.NewFromString(v)
			if err != nil {
				return SummaryResponse{}, &ParseError{Row: i, Column: "Order Total (AED)", Value: r.OrderTotal}
			}
			total = total.Add(d)
		} else {
			d, err := decimal.NewFromString(strings.TrimSpace(r.LineTotal))
			if err != nil {
				return SummaryResponse{}, &ParseError{Row: i, Column: "Item Total (AED)", Value: r.LineTotal}
			}
			total = total.Add(d)
		}
	}

	return SummaryResponse{
		TotalUsers:     len(users),
		TotalOrders:    totalOrders,
		DistinctOrders: len(orders),
		TotalAmount:    total.StringFixed(2),
	}, nil
}

// PerUser はユーザー別の数量・金額を集計する。出てきた順に並べる。
func PerUser(records []model.OrderLogRecord) ([]UserSummary, error) {
	type acc struct {
		quantity int64
		spent    decimal.Decimal
	}
	byUser := map[string]*acc{}
	var order []string

	for i, r := range records {
		name := strings.TrimSpace(r.UserName)
		if name == "" {
			continue
		}

		qty, err := strconv.ParseInt(strings.TrimSpace(r.Quantity), 10, 64)
		if err != nil {
			return nil, &ParseError{Row: i, Column: "Quantity", Value: r.Quantity}
		}
		spent, err := decimal.NewFromString(strings.TrimSpace(r.LineTotal))
		if err != nil {
			return nil, &ParseError{Row: i, Column: "Item Total (AED)", Value: r.LineTotal}
		}

		a, ok := byUser[name]
		if !ok {
			a = &acc{spent: decimal.Zero}
			byUser[name] = a
			order = append(order, name)
		}
		a.quantity += qty
		a.spent = a.spent.Add(spent)
	}

	out := make([]UserSummary, 0, len(order))
	for _, name := range order {
		a := byUser[name]
		out = append(out, UserSummary{
			UserName:      name,
			TotalQuantity: a.quantity,
			TotalSpent:    a.spent.StringFixed(2),
		})
	}
	return out, nil
}

type OrdersResponse struct {
	Orders  []model.OrderLogRecord `json:"orders"`
	Total   int                    `json:"total"`
	Skipped int                    `json:"skipped"`
}

// ログの全行（スキップ済みを除く）とスキップ件数を返す。
func (u *ReportUsecase) ListAll(ctx context.Context) (OrdersResponse, error) {
	records, skipped, err := u.log.ReadAll(ctx)
	if err != nil {
		return OrdersResponse{}, NewHTTPError(http.StatusServiceUnavailable, "order log unavailable")
	}
	return OrdersResponse{Orders: records, Total: len(records), Skipped: skipped}, nil
}

// ExportCSV はログを同じ列順でCSVに再エンコードして返す。
// ファイル名は kitchen_orders_YYYYMMDD_HHMMSS.csv。
func (u *ReportUsecase) ExportCSV(ctx context.Context) ([]byte, string, error) {
	records, _, err := u.log.ReadAll(ctx)
	if err != nil {
		return nil, "", NewHTTPError(http.StatusServiceUnavailable, "order log unavailable")
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(orderlog.Header); err != nil {
		return nil, "", NewHTTPError(http.StatusInternalServerError, "export error")
	}
	for _, r := range records {
		row := []string{
			r.Date, r.Time, r.UserName, r.ItemName, r.Category,
			r.Unit, r.Quantity, r.UnitPrice, r.LineTotal, r.OrderTotal,
		}
		if err := w.Write(row); err != nil {
			return nil, "", NewHTTPError(http.StatusInternalServerError, "export error")
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, "", NewHTTPError(http.StatusInternalServerError, "export error")
	}

	name := fmt.Sprintf("kitchen_orders_%s.csv", u.clock.Now().In(orderZone).Format("20060102_150405"))
	return buf.Bytes(), name, nil
}
