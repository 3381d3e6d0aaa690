package repository

import (
	"context"
)

type InventoryRepository interface {
	// 在庫の現在値を読む。商品が無ければ ErrNotFound。
	CurrentStock(ctx context.Context, productID int64) (int64, error)

	// 在庫が足りるときだけ減算（stock >= qty の行だけUPDATE）。
	// 足りない・商品が無い場合は false。分離レベルに依存せず
	// 「在庫が負にならない」をこの1文で保証する。
	DecrementIfAvailable(ctx context.Context, productID int64, qty int64) (bool, error)

	// 在庫戻し（注文キャンセルなど）
	IncrementStock(ctx context.Context, productID int64, qty int64) error

	// 在庫の現在値を設定（管理者の棚卸し）
	SetStock(ctx context.Context, productID int64, newStock int64) error
}
