package shop

import "time"

type Product struct {
	ID         string
	SKU        string
	Name       string
	Stock      int
	PriceCents int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// CartItem menyimpan harga saat item dimasukkan (price capture),
// bukan harga katalog terkini.
type CartItem struct {
	ProductID  string    `json:"product_id"`
	Qty        int       `json:"qty"`
	PriceCents int       `json:"price_cents"`
	AddedAt    time.Time `json:"added_at"`
}

// Cart: satu per user, persist lintas session. Clear mengosongkan Items,
// record cart-nya sendiri tidak dihapus.
type Cart struct {
	UserID string
	Items  map[string]CartItem // key = product_id, unik per produk
}

type CustomerDetails struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone,omitempty"`
	Address    string `json:"address"`
	City       string `json:"city,omitempty"`
	PostalCode string `json:"postal_code,omitempty"`
}

// OrderSummary dihitung sekali saat order dibuat; tidak pernah di-update.
type OrderSummary struct {
	SubtotalCents int `json:"subtotal_cents"`
	ShippingCents int `json:"shipping_cents"`
	TaxCents      int `json:"tax_cents"`
	TotalCents    int `json:"total_cents"`
	ItemCount     int `json:"item_count"`
}

type PaymentMethod string

const (
	MethodCash     PaymentMethod = "CASH"
	MethodTransfer PaymentMethod = "TRANSFER"
	MethodGateway  PaymentMethod = "GATEWAY"
)

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "PENDING"
	PaymentPaid     PaymentStatus = "PAID"
	PaymentFailed   PaymentStatus = "FAILED"
	PaymentRefunded PaymentStatus = "REFUNDED"
)

type PaymentDetails struct {
	Method PaymentMethod `json:"method"`
	// Reference: nomor referensi dari client (transfer) atau payment id gateway.
	Reference string        `json:"reference,omitempty"`
	PaymentID string        `json:"payment_id,omitempty"`
	Status    PaymentStatus `json:"status"`
}

// OrderItem adalah snapshot immutable: harga tidak ikut berubah kalau
// harga katalog berubah belakangan.
type OrderItem struct {
	ID         string
	OrderID    string
	ProductID  string
	Name       string
	Qty        int
	PriceCents int
}

type Order struct {
	ID         string
	ExternalID string
	UserID     string
	Items      []OrderItem
	Customer   CustomerDetails
	Summary    OrderSummary
	Payment    PaymentDetails
	Status     Status // lihat status.go
	// NeedsReconciliation: order sudah persist tapi stok belum berhasil
	// dipotong. Jangan pernah di-set diam-diam jadi false.
	NeedsReconciliation bool
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// ItemQty: pasangan produk+qty untuk operasi stok.
type ItemQty struct {
	ProductID string `json:"product_id"`
	Qty       int    `json:"qty"`
}
