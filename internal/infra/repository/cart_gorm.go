package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CartGormRepository struct {
	db *gorm.DB
}

// DI
func NewCartGormRepository(db *gorm.DB) *CartGormRepository {
	return &CartGormRepository{db: db}
}

// カート行を商品JOIN済みで全件取得。
// 行は常に商品の現在のカタログ値（名前・価格・在庫）を持って返る。
func (r *CartGormRepository) ListByUserID(ctx context.Context, userID int64) ([]model.CartLine, error) {
	type row struct {
		model.Product
		Quantity int64
	}

	var rows []row
	err := r.db.WithContext(ctx).
		Table("cart").
		Select("products.*, cart.quantity").
		Joins("join products on products.id = cart.product_id").
		Where("cart.user_id = ?", userID).
		Order("cart.product_id asc").
		Scan(&rows).Error
	if err != nil {
		return []model.CartLine{}, err
	}

	lines := make([]model.CartLine, 0, len(rows))
	for _, rw := range rows {
		lines = append(lines, model.CartLine{
			Product:  rw.Product,
			Quantity: rw.Quantity,
		})
	}
	return lines, nil
}

// 同一(user, product)は数量加算、無ければ新規作成。
// ON DUPLICATE KEY UPDATE quantity = quantity + ? 相当。
func (r *CartGormRepository) Upsert(ctx context.Context, userID int64, productID int64, addQty int64) error {
	if addQty <= 0 {
		return errors.New("invalid quantity")
	}

	item := model.CartItem{
		UserID:    userID,
		ProductID: productID,
		Quantity:  addQty,
	}

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"quantity": gorm.Expr("quantity + ?", addQty),
			}),
		}).
		Create(&item).Error
	if err != nil {
		return translateError(err)
	}
	return nil
}

// 数量を置き換える
func (r *CartGormRepository) UpdateQuantity(ctx context.Context, userID int64, productID int64, qty int64) error {
	res := r.db.WithContext(ctx).
		Model(&model.CartItem{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Update("quantity", qty)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 1行削除
func (r *CartGormRepository) Remove(ctx context.Context, userID int64, productID int64) error {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&model.CartItem{})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// ユーザーのカートを空にする。0行削除でも成功（冪等）。
func (r *CartGormRepository) Clear(ctx context.Context, userID int64) error {
	res := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&model.CartItem{})

	if res.Error != nil {
		return res.Error
	}
	return nil
}
