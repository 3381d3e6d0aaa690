package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusDelivered OrderStatus = "DELIVERED"
	OrderStatusCanceled  OrderStatus = "CANCELED"
)

// ステータス文字列が既知の値か
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusDelivered, OrderStatusCanceled:
		return true
	}
	return false
}

type Order struct {
	ID        int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    int64           `gorm:"not null;index" json:"user_id"`
	OrderDate time.Time       `gorm:"column:order_date;not null;autoCreateTime" json:"order_date"`
	Total     decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total"`
	Status    OrderStatus     `gorm:"type:varchar(20);not null;index" json:"status"`
}

func (Order) TableName() string { return "orders" }
