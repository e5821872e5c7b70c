package main

import (
	"log"
	"time"

	"app/internal/config"
	"app/internal/handler"
	"app/internal/infra/catalog"
	"app/internal/infra/orderlog"
	"app/internal/notify"
	"app/internal/server"
	"app/internal/session"
	"app/internal/usecase"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

type uuidGenerator struct{}

func (g *uuidGenerator) NewID() string {
	return uuid.NewString()
}

type realClock struct{}

func (c *realClock) Now() time.Time {
	return time.Now()
}

type jwtIssuer struct {
	secret    []byte
	accessTTL time.Duration
}

func (i *jwtIssuer) Issue(sessionID string, userName string, role string, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(i.accessTTL)

	claims := jwt.MapClaims{
		"sid":  sessionID,
		"name": userName,
		"role": role,
		"iat":  now.Unix(),
		"exp":  expiresAt.Unix(),
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, err
	}

	return signed, expiresAt, nil
}

func main() {
	// .envがあれば読む
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	// カタログ読み込み（品目が無ければ起動しない）
	items, err := catalog.LoadWorkbook(cfg.CatalogFile)
	if err != nil {
		log.Fatalf("catalog: %v", err)
	}
	if len(items) == 0 {
		log.Fatalf("catalog: no items in %s", cfg.CatalogFile)
	}
	catalogRepo := catalog.NewMemoryRepository(items)
	log.Printf("catalog: %d items loaded from %s", len(items), cfg.CatalogFile)

	// 注文ログ（追記専用CSV）
	logStore := orderlog.NewCSVStore(cfg.OrdersDir)

	// 通知（設定があるSinkだけ有効化）
	var sinks []notify.Sink
	if cfg.TelegramBotToken != "" && cfg.TelegramChatID != "" {
		sinks = append(sinks, notify.NewTelegramSink(cfg.TelegramBotToken, cfg.TelegramChatID))
	}
	if cfg.SheetsWebhookURL != "" {
		sinks = append(sinks, notify.NewSheetsSink(cfg.SheetsWebhookURL))
	}
	dispatcher := notify.NewDispatcher(time.Duration(cfg.NotifyTimeoutSec)*time.Second, sinks...)
	defer dispatcher.Close()

	// usecaseに渡す部品
	clock := &realClock{}
	issuer := &jwtIssuer{secret: []byte(cfg.JWTSecret), accessTTL: 12 * time.Hour}
	sessions := session.NewStore(&uuidGenerator{})

	// Usecase生成
	authUC := usecase.NewAuthUsecase(sessions, issuer, clock, cfg.ManagerPassword, cfg.ManagerPasswordHash)
	catalogUC := usecase.NewCatalogUsecase(catalogRepo)
	cartUC := usecase.NewCartUsecase(catalogRepo)
	orderUC := usecase.NewOrderUsecase(logStore, dispatcher, clock)
	reportUC := usecase.NewReportUsecase(logStore, clock)

	// Handler生成
	hs := server.Handlers{
		Session: handler.NewSessionHandler(authUC, sessions),
		Catalog: handler.NewCatalogHandler(catalogUC),
		Cart:    handler.NewCartHandler(cartUC, sessions),
		Order:   handler.NewOrderHandler(orderUC, sessions),
		Manager: handler.NewManagerHandler(authUC, reportUC),
	}

	// Server起動
	addr := ":8080"
	if cfg.Port != "" {
		if cfg.Port[0] != ':' {
			addr = ":" + cfg.Port
		} else {
			addr = cfg.Port
		}
	}

	if err := server.Start(addr, cfg, hs); err != nil {
		log.Fatal(err)
	}
}
