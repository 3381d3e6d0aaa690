package model

type Category struct {
	ID      int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Name    string `gorm:"type:varchar(255);not null;uniqueIndex" json:"name"`
	AdminID int64  `gorm:"not null" json:"admin_id"`
}

func (Category) TableName() string { return "categories" }
