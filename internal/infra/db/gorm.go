package db

import (
	"fmt"
	"os"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// Connect はDBに接続して *gorm.DB を返す。
func Connect() (*gorm.DB, error) {
	// DATABASE_DSN があれば最優先で使う
	if dsn := os.Getenv("DATABASE_DSN"); dsn != "" {
		return gorm.Open(mysql.Open(dsn), &gorm.Config{})
	}

	host := getenv("MYSQL_HOST", "localhost")
	port := getenv("MYSQL_PORT", "3306")
	user := getenv("MYSQL_USER", "root")
	pass := getenv("MYSQL_PASSWORD", "root")
	name := getenv("MYSQL_DB", "app")

	dsn := fmt.Sprintf(
		"%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		user, pass, host, port, name,
	)

	return gorm.Open(mysql.Open(dsn), &gorm.Config{})
}

func getenv(key string, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}
