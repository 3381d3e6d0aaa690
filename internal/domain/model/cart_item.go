package model

// カートの1行。(user_id, product_id) で一意。
// 同一商品の追加は数量加算になる（行は増えない）。
type CartItem struct {
	UserID    int64 `gorm:"primaryKey;autoIncrement:false;column:user_id" json:"user_id"`
	ProductID int64 `gorm:"primaryKey;autoIncrement:false;column:product_id" json:"product_id"`
	Quantity  int64 `gorm:"not null" json:"quantity"`
}

func (CartItem) TableName() string { return "cart" }

// CartLine はカート行＋商品スナップショット（JOINで解決済み）。
// チェックアウトはこの形で受け取る。
type CartLine struct {
	Product  Product
	Quantity int64
}
