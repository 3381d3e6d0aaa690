package model

import (
	"github.com/shopspring/decimal"
)

// 注文明細。priceは購入時点の単価スナップショット。
// 商品側の価格が後で変わっても明細は変わらない。
type OrderItem struct {
	OrderID   int64           `gorm:"primaryKey;autoIncrement:false;column:order_id" json:"order_id"`
	ProductID int64           `gorm:"primaryKey;autoIncrement:false;column:product_id" json:"product_id"`
	Quantity  int64           `gorm:"not null" json:"quantity"`
	Price     decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
}

func (OrderItem) TableName() string { return "order_items" }

// 明細の小計
func (i OrderItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(i.Quantity))
}

// OrderLine は明細＋現在の商品カタログ（JOINで解決済み）。
// Priceは購入時スナップショット、Product.Priceは現在値なので別物。
type OrderLine struct {
	Product  Product
	Quantity int64
	Price    decimal.Decimal
}
