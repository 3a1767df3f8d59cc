package checkout

import (
	"context"

	"github.com/ariefcatur/go-shop-checkout.git/internal/shop"
	"github.com/ariefcatur/go-shop-checkout.git/internal/stock"
)

// StockLedger: satu-satunya pintu workflow ke stok.
type StockLedger interface {
	CheckAvailability(ctx context.Context, items []shop.ItemQty) (stock.Availability, error)
	Decrement(ctx context.Context, items []shop.ItemQty) ([]stock.Adjustment, error)
	Restore(ctx context.Context, items []shop.ItemQty) ([]stock.Adjustment, error)
}

type OrderStore interface {
	Create(ctx context.Context, o *shop.Order) error
	Get(ctx context.Context, orderID string) (*shop.Order, error)
	FindByExternalID(ctx context.Context, externalID string) (*shop.Order, error)
	SetStatus(ctx context.Context, orderID string, st shop.Status) error
	MarkReconciliation(ctx context.Context, orderID string) error
}

// CartClearer: clear cart setelah order sukses. Best-effort.
type CartClearer interface {
	Clear(ctx context.Context, userID string) error
}

// Events: kolaborator notifikasi/observability, fire-and-forget — gagal
// publish tidak pernah mempengaruhi hasil order.
type Events interface {
	OrderCreated(o *shop.Order)
	OrderCancelled(o *shop.Order)
	Reconcile(orderID string, productIDs []string, reason string)
}
