package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"app/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// usecaseのエラー→HTTPステータスの対応表
func TestWriteError(t *testing.T) {
	e := echo.New()

	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"empty order", usecase.ErrEmptyOrder, http.StatusBadRequest},
		{"invalid line", fmt.Errorf("%w: quantity 0", usecase.ErrInvalidLine), http.StatusBadRequest},
		{"total mismatch", usecase.ErrTotalMismatch, http.StatusBadRequest},
		{"insufficient stock", fmt.Errorf("%w: product 7", usecase.ErrInsufficientStock), http.StatusConflict},
		{"order insert failed", usecase.ErrOrderInsertFailed, http.StatusInternalServerError},
		{"line insert failed", usecase.ErrLineInsertFailed, http.StatusInternalServerError},
		{"stock update failed", usecase.ErrStockUpdateFailed, http.StatusInternalServerError},
		{"http error passthrough", usecase.NewHTTPError(http.StatusNotFound, "not found"), http.StatusNotFound},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/orders", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			require.NoError(t, writeError(c, tc.err))
			assert.Equal(t, tc.status, rec.Code)
		})
	}
}

// 想定外のエラーは内部の文言を外に出さない
func TestWriteErrorHidesInternalMessage(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/orders", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, writeError(c, errors.New("dial tcp 10.0.0.1:3306: connection refused")))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "10.0.0.1")
}
