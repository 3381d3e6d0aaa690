package config

import (
	"fmt"
	"os"
	"strconv"
)

// Configはアプリ全体の設定
type Config struct {
	Port string // サーバーポート（8080）

	MySQLUser     string // DBユーザー
	MySQLPassword string // DBパスワード
	MySQLDB       string // DB名
	MySQLHost     string // DBホスト（localhost）
	MySQLPort     int    // DBポート（3306）

	JWTSecret string // JWT署名シークレット

	GoEnv string // dev/prod
}

// Loadは環境変数
func Load() (Config, error) {
	dbPort, err := mustAtoi("MYSQL_PORT")
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Port: os.Getenv("PORT"),

		MySQLUser:     os.Getenv("MYSQL_USER"),
		MySQLPassword: os.Getenv("MYSQL_PASSWORD"),
		MySQLDB:       os.Getenv("MYSQL_DB"),
		MySQLHost:     os.Getenv("MYSQL_HOST"),
		MySQLPort:     dbPort,

		JWTSecret: os.Getenv("JWT_SECRET"),

		GoEnv: os.Getenv("GO_ENV"),
	}

	//必須チェック
	if cfg.Port == "" {
		return Config{}, fmt.Errorf("PORT is required")
	}
	if cfg.MySQLUser == "" {
		return Config{}, fmt.Errorf("MYSQL_USER is required")
	}
	if cfg.MySQLPassword == "" {
		return Config{}, fmt.Errorf("MYSQL_PASSWORD is required")
	}
	if cfg.MySQLDB == "" {
		return Config{}, fmt.Errorf("MYSQL_DB is required")
	}
	if cfg.MySQLHost == "" {
		return Config{}, fmt.Errorf("MYSQL_HOST is required")
	}
	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.GoEnv == "" {
		return Config{}, fmt.Errorf("GO_ENV is required")
	}

	return cfg, nil
}

func mustAtoi(key string) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return 0, fmt.Errorf("%s is required", key)
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be number: %w", key, err)
	}
	return i, nil
}
