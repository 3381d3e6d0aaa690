package usecase

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/shopspring/decimal"
)

// 注文確定のトランザクションを束ねる。
// 在庫検証・ヘッダ作成・明細作成・在庫減算・カートクリアを
// 1つのTxで行い、途中で失敗したら何も残さない。
type OrderUsecase struct {
	tx repo.TransactionManager
}

func NewOrderUsecase(tx repo.TransactionManager) *OrderUsecase {
	return &OrderUsecase{tx: tx}
}

// 注文1行の入力。UnitPriceは呼び出し時点の単価スナップショットで、
// この値がそのまま明細に入る（確定中に商品価格が変わっても追従しない）。
type OrderLineInput struct {
	ProductID int64
	Quantity  int64
	UnitPrice decimal.Decimal
}

type OrderItemOutput struct {
	ProductID int64           `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int64           `json:"quantity"`
}

type OrderOutput struct {
	ID        int64             `json:"id"`
	UserID    int64             `json:"user_id"`
	Status    string            `json:"status"`
	Total     decimal.Decimal   `json:"total"`
	OrderDate time.Time         `json:"order_date"`
	Items     []OrderItemOutput `json:"items"`
}

// PlaceOrder は注文を確定して採番されたIDを返す。
// totalは呼び出し側の申告値だが、ここで明細から再計算して
// 一致しなければ受け付けない。
func (u *OrderUsecase) PlaceOrder(ctx context.Context, userID int64, lines []OrderLineInput, total decimal.Decimal) (int64, error) {
	if userID <= 0 {
		return 0, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if err := validateLines(lines); err != nil {
		return 0, err
	}
	if !sumLines(lines).Equal(total) {
		return 0, ErrTotalMismatch
	}

	var orderID int64

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		id, err := placeOrderTx(ctx, r, userID, lines, total)
		if err != nil {
			return err
		}
		orderID = id
		return nil
	})
	if err != nil {
		return 0, err
	}
	return orderID, nil
}

// PlaceOrderFromCart はカートの中身から注文を組み立てて確定する。
// カート読み取りと注文確定を同じTxで行うので、確定中に
// カートが書き換わっても中途半端な注文にはならない。
func (u *OrderUsecase) PlaceOrderFromCart(ctx context.Context, userID int64) (int64, error) {
	if userID <= 0 {
		return 0, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	var orderID int64

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		cartLines, err := r.Cart().ListByUserID(ctx, userID)
		if err != nil {
			return fmt.Errorf("load cart: %w", err)
		}
		if len(cartLines) == 0 {
			return ErrEmptyOrder
		}

		// 現在のカタログ価格をスナップショットとして使う
		lines := make([]OrderLineInput, 0, len(cartLines))
		for _, cl := range cartLines {
			lines = append(lines, OrderLineInput{
				ProductID: cl.Product.ID,
				Quantity:  cl.Quantity,
				UnitPrice: cl.Product.Price,
			})
		}
		if err := validateLines(lines); err != nil {
			return err
		}

		id, err := placeOrderTx(ctx, r, userID, lines, sumLines(lines))
		if err != nil {
			return err
		}
		orderID = id
		return nil
	})
	if err != nil {
		return 0, err
	}
	return orderID, nil
}

// 注文確定の本体。必ずTxの中で呼ぶ。
func placeOrderTx(ctx context.Context, r repo.TxRepos, userID int64, lines []OrderLineInput, total decimal.Decimal) (int64, error) {
	// Step 1: 在庫の事前チェック（読み取りのみ）。
	// 商品が存在しない場合もここで在庫不足として弾く。
	for _, line := range lines {
		stock, err := r.Inventory().CurrentStock(ctx, line.ProductID)
		if err == repo.ErrNotFound {
			return 0, fmt.Errorf("%w: product %d not found", ErrInsufficientStock, line.ProductID)
		}
		if err != nil {
			return 0, fmt.Errorf("read stock: %w", err)
		}
		if stock < line.Quantity {
			return 0, fmt.Errorf("%w: product %d has %d, want %d", ErrInsufficientStock, line.ProductID, stock, line.Quantity)
		}
	}

	// Step 2: 注文ヘッダ作成（PENDING・現在時刻）
	orderID, err := r.Orders().Create(ctx, model.Order{
		UserID:    userID,
		OrderDate: time.Now(),
		Total:     total,
		Status:    model.OrderStatusPending,
	})
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrOrderInsertFailed, err)
	}
	if orderID <= 0 {
		return 0, ErrOrderInsertFailed
	}

	// Step 3: 明細の一括作成。単価は呼び出し側のスナップショット。
	items := make([]model.OrderItem, 0, len(lines))
	for _, line := range lines {
		items = append(items, model.OrderItem{
			OrderID:   orderID,
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			Price:     line.UnitPrice,
		})
	}
	if err := r.OrderItems().CreateBulk(ctx, orderID, items); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrLineInsertFailed, err)
	}

	// Step 4: 在庫減算。stock >= qty の行だけ更新されるので、
	// Step 1以降に他の注文が在庫を取っていたらここで0行更新になり
	// Tx全体が巻き戻る。在庫が負になることはない。
	for _, line := range lines {
		ok, err := r.Inventory().DecrementIfAvailable(ctx, line.ProductID, line.Quantity)
		if err != nil {
			return 0, fmt.Errorf("%w: %v", ErrStockUpdateFailed, err)
		}
		if !ok {
			return 0, fmt.Errorf("%w: product %d", ErrInsufficientStock, line.ProductID)
		}
	}

	// Step 5: カートクリアもTxの中。失敗したら注文ごと巻き戻す。
	if err := r.Cart().Clear(ctx, userID); err != nil {
		return 0, fmt.Errorf("clear cart: %w", err)
	}

	return orderID, nil
}

func validateLines(lines []OrderLineInput) error {
	if len(lines) == 0 {
		return ErrEmptyOrder
	}
	seen := make(map[int64]struct{}, len(lines))
	for _, line := range lines {
		if line.ProductID <= 0 {
			return fmt.Errorf("%w: product id %d", ErrInvalidLine, line.ProductID)
		}
		if line.Quantity <= 0 {
			return fmt.Errorf("%w: quantity %d for product %d", ErrInvalidLine, line.Quantity, line.ProductID)
		}
		if line.UnitPrice.IsNegative() {
			return fmt.Errorf("%w: negative price for product %d", ErrInvalidLine, line.ProductID)
		}
		if _, dup := seen[line.ProductID]; dup {
			return fmt.Errorf("%w: duplicate product %d", ErrInvalidLine, line.ProductID)
		}
		seen[line.ProductID] = struct{}{}
	}
	return nil
}

func sumLines(lines []OrderLineInput) decimal.Decimal {
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.UnitPrice.Mul(decimal.NewFromInt(line.Quantity)))
	}
	return total
}

// ListMyOrders は自分の注文履歴（明細つき）を返す。
func (u *OrderUsecase) ListMyOrders(ctx context.Context, userID int64) ([]OrderOutput, error) {
	if userID <= 0 {
		return []OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	var outs []OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, err := r.Orders().ListByUserID(ctx, userID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		outs = make([]OrderOutput, 0, len(orders))
		for _, o := range orders {
			lines, err := r.OrderItems().ListLinesByOrderID(ctx, o.ID)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			outs = append(outs, toOrderOutput(o, lines))
		}
		return nil
	})
	if err != nil {
		return []OrderOutput{}, err
	}
	return outs, nil
}

// GetMyOrderDetail は自分の注文1件を明細つきで返す。
func (u *OrderUsecase) GetMyOrderDetail(ctx context.Context, userID int64, orderID int64) (OrderOutput, error) {
	if userID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if o.UserID != userID {
			//他人の注文は「存在しない扱い」にする
			return NewHTTPError(http.StatusNotFound, "not found")
		}

		lines, err := r.OrderItems().ListLinesByOrderID(ctx, orderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = toOrderOutput(o, lines)
		return nil
	})
	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

func toOrderOutput(o model.Order, lines []model.OrderLine) OrderOutput {
	outItems := make([]OrderItemOutput, 0, len(lines))
	for _, l := range lines {
		outItems = append(outItems, OrderItemOutput{
			ProductID: l.Product.ID,
			Name:      l.Product.Name,
			Price:     l.Price,
			Quantity:  l.Quantity,
		})
	}

	return OrderOutput{
		ID:        o.ID,
		UserID:    o.UserID,
		Status:    string(o.Status),
		Total:     o.Total,
		OrderDate: o.OrderDate,
		Items:     outItems,
	}
}
