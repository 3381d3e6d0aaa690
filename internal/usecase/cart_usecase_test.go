package usecase

import (
	"context"
	"net/http"
	"sort"
	"testing"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// カートの「加算則」や冪等性は状態が絡むので、mockではなく
// インメモリ実装で確かめる。
type cartFake struct {
	products map[int64]model.Product
	qty      map[[2]int64]int64 // (userID, productID) -> quantity
}

func newCartFake(products ...model.Product) *cartFake {
	f := &cartFake{
		products: make(map[int64]model.Product),
		qty:      make(map[[2]int64]int64),
	}
	for _, p := range products {
		f.products[p.ID] = p
	}
	return f
}

func (f *cartFake) ListByUserID(_ context.Context, userID int64) ([]model.CartLine, error) {
	var lines []model.CartLine
	for key, q := range f.qty {
		if key[0] != userID {
			continue
		}
		lines = append(lines, model.CartLine{Product: f.products[key[1]], Quantity: q})
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i].Product.ID < lines[j].Product.ID })
	return lines, nil
}

func (f *cartFake) Upsert(_ context.Context, userID, productID, addQty int64) error {
	f.qty[[2]int64{userID, productID}] += addQty
	return nil
}

func (f *cartFake) UpdateQuantity(_ context.Context, userID, productID, qty int64) error {
	key := [2]int64{userID, productID}
	if _, ok := f.qty[key]; !ok {
		return repo.ErrNotFound
	}
	f.qty[key] = qty
	return nil
}

func (f *cartFake) Remove(_ context.Context, userID, productID int64) error {
	key := [2]int64{userID, productID}
	if _, ok := f.qty[key]; !ok {
		return repo.ErrNotFound
	}
	delete(f.qty, key)
	return nil
}

func (f *cartFake) Clear(_ context.Context, userID int64) error {
	for key := range f.qty {
		if key[0] == userID {
			delete(f.qty, key)
		}
	}
	return nil
}

func newCartUsecaseWithFake(products ...model.Product) (*CartUsecase, *cartFake) {
	fake := newCartFake(products...)
	pm := new(ProductRepoMock)
	for _, p := range products {
		pm.On("FindByID", mock.Anything, p.ID).Return(p, nil)
	}
	pm.On("FindByID", mock.Anything, mock.Anything).Return(model.Product{}, repo.ErrNotFound)
	return NewCartUsecase(fake, pm), fake
}

func widget() model.Product {
	return model.Product{ID: 7, Name: "widget", Price: decimal.NewFromFloat(19.99), Stock: 10}
}

// 同じ商品を2回入れると数量が足し合わされる
func TestAddToCartAccumulates(t *testing.T) {
	uc, _ := newCartUsecaseWithFake(widget())
	ctx := context.Background()

	_, err := uc.AddToCart(ctx, 1, AddCartInput{ProductID: 7, Quantity: 2})
	require.NoError(t, err)

	resp, err := uc.AddToCart(ctx, 1, AddCartInput{ProductID: 7, Quantity: 3})
	require.NoError(t, err)

	require.Len(t, resp.Items, 1)
	assert.Equal(t, int64(5), resp.Items[0].Quantity)
	// 合計は現在価格×数量
	assert.True(t, resp.Total.Equal(decimal.NewFromFloat(99.95)), "total = %s", resp.Total)
}

// 既存数量＋追加分が在庫を超えたら弾く
func TestAddToCartStockExceeded(t *testing.T) {
	uc, _ := newCartUsecaseWithFake(widget())
	ctx := context.Background()

	_, err := uc.AddToCart(ctx, 1, AddCartInput{ProductID: 7, Quantity: 8})
	require.NoError(t, err)

	_, err = uc.AddToCart(ctx, 1, AddCartInput{ProductID: 7, Quantity: 3})
	he, ok := AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)
}

func TestAddToCartValidation(t *testing.T) {
	uc, _ := newCartUsecaseWithFake(widget())
	ctx := context.Background()

	cases := []struct {
		name   string
		userID int64
		in     AddCartInput
		status int
	}{
		{"unauthorized", 0, AddCartInput{ProductID: 7, Quantity: 1}, http.StatusUnauthorized},
		{"bad product id", 1, AddCartInput{ProductID: 0, Quantity: 1}, http.StatusBadRequest},
		{"zero quantity", 1, AddCartInput{ProductID: 7, Quantity: 0}, http.StatusBadRequest},
		{"unknown product", 1, AddCartInput{ProductID: 99, Quantity: 1}, http.StatusBadRequest},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.AddToCart(ctx, tc.userID, tc.in)
			he, ok := AsHTTPError(err)
			require.True(t, ok)
			assert.Equal(t, tc.status, he.Status)
		})
	}
}

func TestUpdateCartItem(t *testing.T) {
	uc, _ := newCartUsecaseWithFake(widget())
	ctx := context.Background()

	_, err := uc.AddToCart(ctx, 1, AddCartInput{ProductID: 7, Quantity: 2})
	require.NoError(t, err)

	resp, err := uc.UpdateCartItem(ctx, 1, 7, UpdateCartItemInput{Quantity: 4})
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, int64(4), resp.Items[0].Quantity)

	// 在庫超え
	_, err = uc.UpdateCartItem(ctx, 1, 7, UpdateCartItemInput{Quantity: 11})
	he, ok := AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)

	// カートに無い行
	_, err = uc.UpdateCartItem(ctx, 2, 7, UpdateCartItemInput{Quantity: 1})
	he, ok = AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Status)
}

func TestRemoveCartItem(t *testing.T) {
	uc, _ := newCartUsecaseWithFake(widget())
	ctx := context.Background()

	_, err := uc.AddToCart(ctx, 1, AddCartInput{ProductID: 7, Quantity: 2})
	require.NoError(t, err)

	resp, err := uc.RemoveCartItem(ctx, 1, 7)
	require.NoError(t, err)
	assert.Empty(t, resp.Items)
	assert.True(t, resp.Total.IsZero())

	// 2回目は404
	_, err = uc.RemoveCartItem(ctx, 1, 7)
	he, ok := AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Status)
}

// Clearは空のカートに対しても成功する
func TestClearCartIdempotent(t *testing.T) {
	uc, _ := newCartUsecaseWithFake(widget())
	ctx := context.Background()

	_, err := uc.AddToCart(ctx, 1, AddCartInput{ProductID: 7, Quantity: 2})
	require.NoError(t, err)

	resp, err := uc.ClearCart(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, resp.Items)

	resp, err = uc.ClearCart(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, resp.Items)
}

// カートはユーザーごとに分かれている
func TestCartIsPerUser(t *testing.T) {
	uc, _ := newCartUsecaseWithFake(widget())
	ctx := context.Background()

	_, err := uc.AddToCart(ctx, 1, AddCartInput{ProductID: 7, Quantity: 2})
	require.NoError(t, err)

	resp, err := uc.GetCart(ctx, 2)
	require.NoError(t, err)
	assert.Empty(t, resp.Items)
}
