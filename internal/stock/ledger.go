package stock

import "github.com/ariefcatur/go-shop-checkout.git/internal/shop"

// Availability adalah hasil agregat checkAvailability: satu respons untuk
// semua item, bukan gagal di item pertama.
type Availability struct {
	OK         bool             `json:"ok"`
	Shortfalls []shop.Shortfall `json:"shortfalls,omitempty"`
}

// Adjustment: hasil satu operasi potong/kembalikan stok.
type Adjustment struct {
	ProductID string `json:"product_id"`
	Qty       int    `json:"qty"`
	Remaining int    `json:"remaining"`
}

// LowStockThreshold: di bawah ini ledger memancarkan sinyal stock.low.
const LowStockThreshold = 10
