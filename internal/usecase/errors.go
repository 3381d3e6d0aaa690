package usecase

import (
	"errors"
	"fmt"
)

// 注文トランザクションの失敗理由。ハンドラやテストが
// errors.Is で原因分岐できるようにセンチネルで定義する。
var (
	// 明細が空の注文は作らない
	ErrEmptyOrder = errors.New("empty order")

	// 数量が0以下、単価が負、同一商品の重複行など
	ErrInvalidLine = errors.New("invalid order line")

	// 呼び出し側のtotalが明細の合計と一致しない
	ErrTotalMismatch = errors.New("total mismatch")

	// 要求数量が在庫を超えている（商品が存在しない場合も含む）
	ErrInsufficientStock = errors.New("insufficient stock")

	// 注文ヘッダのINSERTが効かなかった
	ErrOrderInsertFailed = errors.New("order insert failed")

	// 明細の一括INSERTが失敗した
	ErrLineInsertFailed = errors.New("order line insert failed")

	// 在庫減算のUPDATEが失敗した
	ErrStockUpdateFailed = errors.New("stock update failed")
)

type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}
