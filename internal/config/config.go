package config

import (
	"fmt"
	"os"
	"strconv"
)

// Configはアプリ全体の設定
type Config struct {
	Port string // サーバーポート（8080）

	CatalogFile string // カタログのワークブック（.xlsx）
	OrdersDir   string // 注文ログの置き場所（all_orders.csvを作る）

	JWTSecret           string // JWT署名シークレット
	ManagerPassword     string // マネージャ共有パスワード（平文一致）
	ManagerPasswordHash string // bcryptハッシュ。設定されていれば平文より優先

	TelegramBotToken string // 空なら通知しない
	TelegramChatID   string
	SheetsWebhookURL string // 空なら転記しない

	NotifyTimeoutSec int // 通知1件あたりのタイムアウト（秒）

	GoEnv string // dev/prod
}

// Loadは環境変数
func Load() (Config, error) {
	cfg := Config{
		Port: os.Getenv("PORT"),

		CatalogFile: os.Getenv("CATALOG_FILE"),
		OrdersDir:   getenv("ORDERS_DIR", "orders"),

		JWTSecret:           os.Getenv("JWT_SECRET"),
		ManagerPassword:     os.Getenv("MANAGER_PASSWORD"),
		ManagerPasswordHash: os.Getenv("MANAGER_PASSWORD_HASH"),

		TelegramBotToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
		TelegramChatID:   os.Getenv("TELEGRAM_CHAT_ID"),
		SheetsWebhookURL: os.Getenv("SHEETS_WEBHOOK_URL"),

		GoEnv: getenv("GO_ENV", "dev"),
	}

	sec, err := atoiDefault("NOTIFY_TIMEOUT_SEC", 10)
	if err != nil {
		return Config{}, err
	}
	cfg.NotifyTimeoutSec = sec

	//必須チェック
	if cfg.Port == "" {
		return Config{}, fmt.Errorf("PORT is required")
	}
	if cfg.CatalogFile == "" {
		return Config{}, fmt.Errorf("CATALOG_FILE is required")
	}
	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.ManagerPassword == "" && cfg.ManagerPasswordHash == "" {
		return Config{}, fmt.Errorf("MANAGER_PASSWORD or MANAGER_PASSWORD_HASH is required")
	}

	return cfg, nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func atoiDefault(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be number: %w", key, err)
	}
	return i, nil
}
