package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestOrderStatusValid(t *testing.T) {
	assert.True(t, OrderStatusPending.Valid())
	assert.True(t, OrderStatusDelivered.Valid())
	assert.True(t, OrderStatusCanceled.Valid())

	assert.False(t, OrderStatus("SHIPPED").Valid())
	assert.False(t, OrderStatus("").Valid())
	assert.False(t, OrderStatus("pending").Valid())
}

func TestOrderItemSubtotal(t *testing.T) {
	item := OrderItem{ProductID: 7, Quantity: 3, Price: decimal.NewFromFloat(19.99)}
	assert.True(t, item.Subtotal().Equal(decimal.NewFromFloat(59.97)))
}

func TestProductIsInStock(t *testing.T) {
	assert.True(t, Product{Stock: 1}.IsInStock())
	assert.False(t, Product{Stock: 0}.IsInStock())
}

func TestUserIsAdmin(t *testing.T) {
	assert.True(t, User{Role: RoleAdmin}.IsAdmin())
	assert.False(t, User{Role: RoleUser}.IsAdmin())
}
