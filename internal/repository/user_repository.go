package repository

import (
	"context"

	"app/internal/domain/model"
)

// 保存・取得を約束
type UserRepository interface {
	//新規ユーザー作成。usernameの重複は ErrConflict。
	Create(ctx context.Context, user *model.User) error
	// IDからユーザーを1件取得する。
	FindByID(ctx context.Context, userID int64) (model.User, error)
	//ユーザー名から1件取得する（ログイン用）。
	FindByUsername(ctx context.Context, username string) (model.User, error)
	// プロフィール更新（email・住所・画像）
	Update(ctx context.Context, user model.User) error
}
