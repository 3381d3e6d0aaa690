package repository

import (
	"errors"

	repo "app/internal/repository"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

// MySQLのエラー番号
const (
	mysqlErrDuplicateEntry  = 1062
	mysqlErrRowIsReferenced = 1451
	mysqlErrNoReferencedRow = 1452
)

// ドライバのエラーをrepo層のセンチネルへ変換する。
// 文字列の部分一致では判定しない。
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return repo.ErrNotFound
	}

	var me *mysql.MySQLError
	if errors.As(err, &me) {
		switch me.Number {
		case mysqlErrDuplicateEntry:
			return repo.ErrConflict
		case mysqlErrRowIsReferenced, mysqlErrNoReferencedRow:
			return repo.ErrForeignKey
		}
	}
	return err
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
