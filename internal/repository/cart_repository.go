package repository

import (
	"context"

	"app/internal/domain/model"
)

type CartRepository interface {
	// ユーザーのカート行を商品JOIN済みで全件取得
	ListByUserID(ctx context.Context, userID int64) ([]model.CartLine, error)

	// 同一(user, product)は数量加算、無ければ新規作成
	Upsert(ctx context.Context, userID int64, productID int64, addQty int64) error

	// 数量を置き換える
	UpdateQuantity(ctx context.Context, userID int64, productID int64, qty int64) error

	// 1行削除
	Remove(ctx context.Context, userID int64, productID int64) error

	// ユーザーのカートを空にする。空のカートに対しても成功（冪等）。
	Clear(ctx context.Context, userID int64) error
}
