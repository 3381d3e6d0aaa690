package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
)

// 対象が見つからないを統一
var ErrNotFound = errors.New("not found")

// 一意制約違反（重複）
var ErrConflict = errors.New("conflict")

// 外部キー制約違反。メッセージの部分一致では判定せず、
// infra層がドライバのエラーコードからここへ変換する。
var ErrForeignKey = errors.New("foreign key violation")

type ProductRepository interface {
	FindByID(ctx context.Context, productID int64) (model.Product, error)
	ListAll(ctx context.Context) ([]model.Product, error)
	ListByCategory(ctx context.Context, categoryID int64) ([]model.Product, error)
	Create(ctx context.Context, p model.Product) (int64, error)
	Update(ctx context.Context, p model.Product) error
	Delete(ctx context.Context, productID int64) error
}
