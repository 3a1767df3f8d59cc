package checkout

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/ariefcatur/go-shop-checkout.git/internal/shop"
	"github.com/google/uuid"
)

// Service mengorkestrasi saga checkout: validasi → cek stok → persist order
// → potong stok → clear cart. Tidak ada transaksi lintas resource; tiap step
// punya kompensasi eksplisit (restore untuk decrement) atau dinyatakan
// non-fatal (clear cart).
type Service struct {
	Orders OrderStore
	Stock  StockLedger
	Carts  CartClearer
	Events Events // boleh nil
}

type CreateOrderInput struct {
	UserID     string
	ExternalID string // idempotency key dari client, boleh kosong
	Items      []shop.OrderItem
	Customer   shop.CustomerDetails
	Summary    shop.OrderSummary
	Payment    shop.PaymentDetails
}

// CreateOrder menjalankan saga. existed=true artinya external_id sudah
// pernah dipakai dan order lama dikembalikan tanpa side effect baru.
//
// Urutan step disengaja: gagal sebelum persist = tanpa side effect; gagal
// setelah persist selalu dilaporkan bawa order id, tidak pernah di-swallow.
func (s *Service) CreateOrder(ctx context.Context, in CreateOrderInput) (o *shop.Order, existed bool, err error) {
	// 1) validasi — terminal tanpa side effect
	if err := validate(in); err != nil {
		return nil, false, err
	}

	// idempotency: DB adalah kebenaran (fast path redis ada di handler)
	if in.ExternalID != "" {
		if existing, err := s.Orders.FindByExternalID(ctx, in.ExternalID); err == nil {
			return existing, true, nil
		} else if !errors.Is(err, shop.ErrOrderNotFound) {
			return nil, false, err
		}
	}

	qtys := itemQtys(in.Items)

	// 2) cek ketersediaan — read-only, shortfall = gagal tanpa order
	avail, err := s.Stock.CheckAvailability(ctx, qtys)
	if err != nil {
		return nil, false, err
	}
	if !avail.OK {
		return nil, false, &shop.StockInsufficientError{Shortfalls: avail.Shortfalls}
	}

	// 3) persist order: status CONFIRMED, paymentStatus sudah diputuskan
	// channel adapter sebelum sampai sini
	now := time.Now().UTC()
	order := &shop.Order{
		ID:         uuid.NewString(),
		ExternalID: in.ExternalID,
		UserID:     in.UserID,
		Items:      in.Items,
		Customer:   in.Customer,
		Summary:    in.Summary,
		Payment:    in.Payment,
		Status:     shop.StatusConfirmed,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	for i := range order.Items {
		order.Items[i].ID = uuid.NewString()
		order.Items[i].OrderID = order.ID
	}
	if err := s.Orders.Create(ctx, order); err != nil {
		return nil, false, &shop.PersistenceError{OrderID: order.ID, Err: err}
	}

	// 4) potong stok. Order sudah persist — kalau gagal di sini, order
	// ditandai needs_reconciliation dan error dibawa naik dengan order id.
	if _, err := s.Stock.Decrement(ctx, qtys); err != nil {
		if markErr := s.Orders.MarkReconciliation(ctx, order.ID); markErr != nil {
			log.Printf("checkout: mark reconciliation failed order=%s: %v", order.ID, markErr)
		}
		order.NeedsReconciliation = true
		if s.Events != nil {
			s.Events.Reconcile(order.ID, productIDs(in.Items), err.Error())
		}
		return order, false, &shop.StockAdjustmentError{
			OrderID:    order.ID,
			ProductIDs: productIDs(in.Items),
			Err:        err,
		}
	}

	// 5) clear cart — best-effort, jangan gagalkan order
	if s.Carts != nil {
		if err := s.Carts.Clear(ctx, in.UserID); err != nil {
			log.Printf("checkout: cart clear failed user=%s order=%s: %v", in.UserID, order.ID, err)
		}
	}

	if s.Events != nil {
		s.Events.OrderCreated(order)
	}
	return order, false, nil
}

// CancelOrder: hanya selama belum shipped/delivered/cancelled. Restore stok
// bersifat eventually consistent: kalau restore gagal, pembatalan tetap
// berlaku dan error-nya dilaporkan supaya caller bisa retry restore.
func (s *Service) CancelOrder(ctx context.Context, orderID, userID string) (*shop.Order, error) {
	order, err := s.Orders.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		// jangan bocorkan keberadaan order milik user lain
		return nil, shop.ErrOrderNotFound
	}
	if !shop.CanCancel(order.Status) {
		return nil, fmt.Errorf("%w: status=%s", shop.ErrOrderNotCancellable, order.Status)
	}

	if err := s.Orders.SetStatus(ctx, order.ID, shop.StatusCancelled); err != nil {
		return nil, &shop.PersistenceError{OrderID: order.ID, Err: err}
	}
	order.Status = shop.StatusCancelled
	order.UpdatedAt = time.Now().UTC()

	if s.Events != nil {
		s.Events.OrderCancelled(order)
	}

	if _, err := s.Stock.Restore(ctx, itemQtys(order.Items)); err != nil {
		log.Printf("checkout: restore failed order=%s: %v", order.ID, err)
		return order, &shop.StockAdjustmentError{
			OrderID:    order.ID,
			ProductIDs: productIDs(order.Items),
			Err:        err,
		}
	}
	return order, nil
}

func (s *Service) GetOrder(ctx context.Context, orderID, userID string) (*shop.Order, error) {
	order, err := s.Orders.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, shop.ErrOrderNotFound
	}
	return order, nil
}

func validate(in CreateOrderInput) error {
	if in.UserID == "" {
		return &shop.ValidationError{Field: "user_id", Msg: "required"}
	}
	if len(in.Items) == 0 {
		return &shop.ValidationError{Field: "items", Msg: "order must contain at least one item"}
	}
	for _, it := range in.Items {
		if it.Qty < 1 {
			return &shop.ValidationError{Field: "items", Msg: "qty must be at least 1 for " + it.ProductID}
		}
	}
	if in.Customer.Name == "" {
		return &shop.ValidationError{Field: "customer.name", Msg: "required"}
	}
	if in.Customer.Email == "" {
		return &shop.ValidationError{Field: "customer.email", Msg: "required"}
	}
	if in.Customer.Address == "" {
		return &shop.ValidationError{Field: "customer.address", Msg: "required"}
	}
	if in.Payment.Method == "" {
		return &shop.ValidationError{Field: "payment.method", Msg: "required"}
	}
	return nil
}

func itemQtys(items []shop.OrderItem) []shop.ItemQty {
	out := make([]shop.ItemQty, 0, len(items))
	for _, it := range items {
		out = append(out, shop.ItemQty{ProductID: it.ProductID, Qty: it.Qty})
	}
	return out
}

func productIDs(items []shop.OrderItem) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.ProductID)
	}
	return out
}
