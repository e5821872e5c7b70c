package repository

import (
	"context"

	"app/internal/domain/model"
)

// 確定注文の追記専用ログ。更新も削除もしない。
type OrderLogRepository interface {
	// 1注文ぶんの行をまとめて追記する。全行書くか、1行も書かないか。
	Append(ctx context.Context, order model.Order) error

	// 永続化済みの行を順序どおり返す。
	// Item Nameが空の行や壊れた行は読み飛ばし、その件数を2番目に返す。
	ReadAll(ctx context.Context) ([]model.OrderLogRecord, int, error)
}
