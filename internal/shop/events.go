package shop

import (
	"encoding/json"
	"time"
)

const (
	EventOrderCreated   = "OrderCreated"
	EventOrderCancelled = "OrderCancelled"
	EventOrderReconcile = "OrderNeedsReconciliation"
	EventStockLow       = "StockLow"
	EventStockOut       = "StockOut"
)

type Envelope struct {
	EventID       string          `json:"event_id"`      // uuid
	EventType     string          `json:"event_type"`    // salah satu const di atas
	EventVersion  int             `json:"event_version"` // 1
	OccurredAt    time.Time       `json:"occurred_at"`   // RFC3339
	Producer      string          `json:"producer"`      // e.g., "checkout-api"
	TraceID       string          `json:"trace_id,omitempty"`
	CorrelationID string          `json:"correlation_id,omitempty"` // biasanya order_id
	Payload       json.RawMessage `json:"payload"`
}

// ---- Payload tipe per event ----

type OrderCreatedPayload struct {
	OrderID       string        `json:"order_id"`
	ExternalID    string        `json:"external_id"`
	UserID        string        `json:"user_id"`
	Email         string        `json:"email"`
	Method        PaymentMethod `json:"method"`
	PaymentStatus PaymentStatus `json:"payment_status"`
	TotalCents    int           `json:"total_cents"`
	ItemCount     int           `json:"item_count"`
}

type OrderCancelledPayload struct {
	OrderID string    `json:"order_id"`
	UserID  string    `json:"user_id"`
	Email   string    `json:"email"`
	Items   []ItemQty `json:"items"`
}

// OrderReconcilePayload: order persist tapi stok belum dipotong; konsumen
// (ops/notifier) harus menindaklanjuti, bukan di-drop.
type OrderReconcilePayload struct {
	OrderID    string   `json:"order_id"`
	ProductIDs []string `json:"product_ids"`
	Reason     string   `json:"reason"`
}

type StockLowPayload struct {
	ProductID string `json:"product_id"`
	Remaining int    `json:"remaining"`
}

type StockOutPayload struct {
	ProductID string `json:"product_id"`
}
