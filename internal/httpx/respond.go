package httpx

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ariefcatur/go-shop-checkout.git/internal/shop"
)

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError memetakan taksonomi error domain ke status HTTP. Error setelah
// order persist selalu menyertakan order_id untuk rekonsiliasi.
func writeError(w http.ResponseWriter, err error) {
	var vErr *shop.ValidationError
	if errors.As(err, &vErr) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": vErr.Error()})
		return
	}

	var shortErr *shop.StockInsufficientError
	if errors.As(err, &shortErr) {
		writeJSON(w, http.StatusConflict, map[string]any{
			"error":      "insufficient stock",
			"shortfalls": shortErr.Shortfalls,
		})
		return
	}

	var adjErr *shop.StockAdjustmentError
	if errors.As(err, &adjErr) {
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"error":       "stock adjustment failed, order needs reconciliation",
			"order_id":    adjErr.OrderID,
			"product_ids": adjErr.ProductIDs,
		})
		return
	}

	var persErr *shop.PersistenceError
	if errors.As(err, &persErr) {
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"error":    "persistence failure",
			"order_id": persErr.OrderID,
		})
		return
	}

	switch {
	case errors.Is(err, shop.ErrProductNotFound),
		errors.Is(err, shop.ErrOrderNotFound),
		errors.Is(err, shop.ErrItemNotInCart):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.Is(err, shop.ErrPaymentVerificationFailed):
		writeJSON(w, http.StatusForbidden, map[string]string{"error": "payment verification failed"})
	case errors.Is(err, shop.ErrGatewayUnavailable):
		// retryable: belum ada state yang berubah
		writeJSON(w, http.StatusBadGateway, map[string]any{"error": err.Error(), "retryable": true})
	case errors.Is(err, shop.ErrOrderNotCancellable):
		writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
	default:
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
}
