package repository

import (
	"context"

	"app/internal/domain/model"
)

type OrderRepository interface {
	FindByID(ctx context.Context, orderID int64) (model.Order, error)
	ListByUserID(ctx context.Context, userID int64) ([]model.Order, error)

	//管理者用の全件一覧
	ListAll(ctx context.Context) ([]model.Order, error)

	// 注文ヘッダを作成して採番されたIDを返す
	Create(ctx context.Context, order model.Order) (int64, error)

	// ステータスを無条件に書く。遷移の妥当性はこの層では見ない。
	UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error
}
