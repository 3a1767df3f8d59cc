package shop

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrOrderNotFound   = errors.New("order not found")
	ErrItemNotInCart   = errors.New("item not in cart")

	// ErrPaymentVerificationFailed: signature callback tidak cocok.
	// Tidak ada state yang boleh berubah kalau error ini muncul.
	ErrPaymentVerificationFailed = errors.New("payment verification failed")

	// ErrGatewayUnavailable: timeout / gangguan ke payment gateway.
	// Retryable; stok & order belum tersentuh.
	ErrGatewayUnavailable = errors.New("payment gateway unavailable")

	ErrOrderNotCancellable = errors.New("order can no longer be cancelled")
)

type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation: %s: %s", e.Field, e.Msg)
}

type Shortfall struct {
	ProductID string `json:"product_id"`
	Available int    `json:"available"`
	Requested int    `json:"requested"`
}

// StockInsufficientError: daftar kekurangan per produk, supaya caller bisa
// koreksi qty, bukan retry buta.
type StockInsufficientError struct {
	Shortfalls []Shortfall
}

func (e *StockInsufficientError) Error() string {
	parts := make([]string, 0, len(e.Shortfalls))
	for _, s := range e.Shortfalls {
		parts = append(parts, fmt.Sprintf("%s: requested %d, available %d", s.ProductID, s.Requested, s.Available))
	}
	return "insufficient stock: " + strings.Join(parts, "; ")
}

// PersistenceError selalu bawa order id (kalau sudah sempat ke-assign)
// supaya bisa direkonsiliasi manual.
type PersistenceError struct {
	OrderID string
	Err     error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failure (order=%s): %v", e.OrderID, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// StockAdjustmentError: order sudah persist tapi penyesuaian stok gagal.
// Jangan pernah di-swallow jadi respons sukses.
type StockAdjustmentError struct {
	OrderID    string
	ProductIDs []string
	Err        error
}

func (e *StockAdjustmentError) Error() string {
	return fmt.Sprintf("stock adjustment failed (order=%s, products=%s): %v",
		e.OrderID, strings.Join(e.ProductIDs, ","), e.Err)
}

func (e *StockAdjustmentError) Unwrap() error { return e.Err }
