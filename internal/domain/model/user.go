package model

type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

type User struct {
	ID           int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Username     string `gorm:"type:varchar(100);not null;uniqueIndex" json:"username"`
	PasswordHash string `gorm:"column:password_hash;not null" json:"-"`
	Email        string `gorm:"type:varchar(255);not null" json:"email"`
	Address      string `gorm:"type:varchar(255)" json:"address"`
	ProfilePic   string `gorm:"type:varchar(255)" json:"profile_pic"`
	Role         Role   `gorm:"type:varchar(20);not null;default:'USER'" json:"role"`
}

func (User) TableName() string { return "users" }

func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
