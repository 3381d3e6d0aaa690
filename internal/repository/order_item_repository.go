package repository

import (
	"context"

	"app/internal/domain/model"
)

type OrderItemRepository interface {
	// 明細を一括INSERT。1件でも入らなければエラー（部分成功なし）。
	// 呼び出し側はトランザクション全体を失敗扱いにする。
	CreateBulk(ctx context.Context, orderID int64, items []model.OrderItem) error

	// 注文の明細を取得
	ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error)

	// 明細＋現在の商品カタログをJOINで取得。
	// 明細のPriceは購入時スナップショットのまま。
	ListLinesByOrderID(ctx context.Context, orderID int64) ([]model.OrderLine, error)
}
