package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"app/internal/domain/model"
)

// SheetsSink はApps ScriptのWebhookへ注文をJSONで転記する。
type SheetsSink struct {
	http *http.Client
	url  string
}

func NewSheetsSink(url string) *SheetsSink {
	return &SheetsSink{
		http: &http.Client{Timeout: 10 * time.Second},
		url:  url,
	}
}

func (s *SheetsSink) Name() string { return "sheets" }

type sheetsItem struct {
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Quantity int64   `json:"quantity"`
	Unit     string  `json:"unit"`
	Price    float64 `json:"price"`
	Total    float64 `json:"total"`
}

type sheetsPayload struct {
	Date     string       `json:"date"`
	UserName string       `json:"user_name"`
	Items    []sheetsItem `json:"items"`
	Total    float64      `json:"total"`
}

func (s *SheetsSink) Send(ctx context.Context, order model.Order) error {
	items := make([]sheetsItem, 0, len(order.Lines))
	for _, ln := range order.Lines {
		items = append(items, sheetsItem{
			Name:     ln.Name,
			Category: ln.Category,
			Quantity: ln.Quantity,
			Unit:     ln.Unit,
			Price:    ln.UnitPrice.InexactFloat64(),
			Total:    ln.LineTotal.InexactFloat64(),
		})
	}
	payload := sheetsPayload{
		Date:     order.Date + " " + order.Time,
		UserName: order.UserName,
		Items:    items,
		Total:    order.Total.InexactFloat64(),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := s.http.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return fmt.Errorf("sheets status %s", res.Status)
	}
	return nil
}
