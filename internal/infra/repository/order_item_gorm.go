package repository

import (
	"context"

	"app/internal/domain/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderItemGormRepository struct {
	db *gorm.DB
}

func NewOrderItemGormRepository(db *gorm.DB) *OrderItemGormRepository {
	return &OrderItemGormRepository{db: db}
}

// 明細を一括INSERT。複数行を1文で入れるので部分成功はない。
func (r *OrderItemGormRepository) CreateBulk(ctx context.Context, orderID int64, items []model.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	for i := range items {
		items[i].OrderID = orderID
	}
	if err := r.db.WithContext(ctx).Create(&items).Error; err != nil {
		return translateError(err)
	}
	return nil
}

func (r *OrderItemGormRepository) ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error) {
	var items []model.OrderItem
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("product_id asc").
		Find(&items).Error
	if err != nil {
		return []model.OrderItem{}, err
	}
	return items, nil
}

// 明細＋現在の商品カタログをJOINで取得。
// priceは明細側（購入時スナップショット）を返す。
func (r *OrderItemGormRepository) ListLinesByOrderID(ctx context.Context, orderID int64) ([]model.OrderLine, error) {
	type row struct {
		model.Product
		Quantity  int64
		ItemPrice decimal.Decimal `gorm:"column:item_price"`
	}

	var rows []row
	err := r.db.WithContext(ctx).
		Table("order_items").
		Select("products.*, order_items.quantity, order_items.price AS item_price").
		Joins("join products on products.id = order_items.product_id").
		Where("order_items.order_id = ?", orderID).
		Order("order_items.product_id asc").
		Scan(&rows).Error
	if err != nil {
		return []model.OrderLine{}, err
	}

	lines := make([]model.OrderLine, 0, len(rows))
	for _, rw := range rows {
		lines = append(lines, model.OrderLine{
			Product:  rw.Product,
			Quantity: rw.Quantity,
			Price:    rw.ItemPrice,
		})
	}
	return lines, nil
}
