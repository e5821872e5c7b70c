package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"app/internal/domain/model"
)

// TelegramSink はBot APIのsendMessageで注文を通知する。
type TelegramSink struct {
	http    *http.Client
	token   string
	chatID  string
	baseURL string
}

func NewTelegramSink(token, chatID string) *TelegramSink {
	return &TelegramSink{
		http:    &http.Client{Timeout: 10 * time.Second},
		token:   token,
		chatID:  chatID,
		baseURL: "https://api.telegram.org",
	}
}

func (s *TelegramSink) Name() string { return "telegram" }

func (s *TelegramSink) Send(ctx context.Context, order model.Order) error {
	payload := map[string]string{
		"chat_id":    s.chatID,
		"text":       telegramMessage(order),
		"parse_mode": "Markdown",
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", s.baseURL, s.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := s.http.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("telegram status %s", res.Status)
	}
	return nil
}

func telegramMessage(order model.Order) string {
	sep := strings.Repeat("=", 30)

	var b strings.Builder
	b.WriteString("🔔 *NEW ORDER RECEIVED*\n\n")
	fmt.Fprintf(&b, "📅 Date: %s\n", order.Date)
	fmt.Fprintf(&b, "⏰ Time: %s\n", order.Time)
	fmt.Fprintf(&b, "👤 User: %s\n", order.UserName)
	b.WriteString(sep + "\n\n")

	b.WriteString("*📦 Order Items:*\n")
	for _, ln := range order.Lines {
		fmt.Fprintf(&b, "• %s\n", ln.Name)
		fmt.Fprintf(&b, "  └ %d x %s AED = %s AED\n",
			ln.Quantity, ln.UnitPrice.StringFixed(2), ln.LineTotal.StringFixed(2))
	}

	b.WriteString("\n" + sep + "\n")
	fmt.Fprintf(&b, "💰 *TOTAL: %s AED*", order.Total.StringFixed(2))
	return b.String()
}
