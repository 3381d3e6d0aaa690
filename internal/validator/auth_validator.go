package validator

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"app/internal/usecase"
)

var (
	// 入力が不正
	ErrInvalidInput = errors.New("invalid input")

	// パスワードが弱い
	ErrWeakPassword = errors.New("weak password")
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

type authValidator struct{}

// Usecaseは interface を依存注入
func NewAuthValidator() usecase.AuthValidator {
	return &authValidator{}
}

// サインアップの入力を検証
func (v *authValidator) ValidateRegister(ctx context.Context, username string, email string, password string) error {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	// 必須チェック
	if username == "" || email == "" || password == "" {
		return ErrInvalidInput
	}
	if len(username) < 3 || len(username) > 100 {
		return ErrInvalidInput
	}
	if !emailPattern.MatchString(email) {
		return ErrInvalidInput
	}
	if isWeakPassword(password) {
		return ErrWeakPassword
	}
	return nil
}

// ログインの入力を検証
func (v *authValidator) ValidateLogin(ctx context.Context, username string, password string) error {
	if strings.TrimSpace(username) == "" || password == "" {
		return ErrInvalidInput
	}
	return nil
}

// 8文字未満、英字のみ、数字のみは弱い
func isWeakPassword(password string) bool {
	if len(password) < 8 {
		return true
	}
	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case r >= '0' && r <= '9':
			hasDigit = true
		case (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
			hasLetter = true
		}
	}
	return !hasLetter || !hasDigit
}
