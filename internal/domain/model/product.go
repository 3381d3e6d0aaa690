package model

import (
	"github.com/shopspring/decimal"
)

type Product struct {
	ID         int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	Name       string          `gorm:"type:varchar(255);not null" json:"name"`
	Price      decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	CategoryID int64           `gorm:"not null;index" json:"category_id"`
	Stock      int64           `gorm:"not null" json:"stock"`
}

func (Product) TableName() string { return "products" }

// 在庫ありかどうか
func (p Product) IsInStock() bool {
	return p.Stock > 0
}
