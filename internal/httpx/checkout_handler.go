package httpx

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/ariefcatur/go-shop-checkout.git/internal/cart"
	"github.com/ariefcatur/go-shop-checkout.git/internal/checkout"
	"github.com/ariefcatur/go-shop-checkout.git/internal/payment"
	"github.com/ariefcatur/go-shop-checkout.git/internal/redisx"
	"github.com/ariefcatur/go-shop-checkout.git/internal/shop"
	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
)

type CheckoutHandler struct {
	Checkout *checkout.Service
	Carts    *cart.Service
	Channels payment.Registry
	Redis    *redis.Client

	ShippingCents int
	TaxCents      int
}

func (h *CheckoutHandler) Register(r *chi.Mux) {
	r.Group(func(r chi.Router) {
		r.Use(RequireUser)
		r.Post("/checkout", h.createOrder)
		r.Post("/orders/{id}/cancel", h.cancelOrder)
		r.Get("/orders/{id}", h.getOrder)
	})
	// status-only, cached, tanpa detail — aman tanpa identitas
	r.Get("/orders/{id}/status", h.getOrderStatus)
}

type checkoutReq struct {
	ExternalID string               `json:"external_id"`
	Method     shop.PaymentMethod   `json:"method"`
	Reference  string               `json:"reference,omitempty"` // untuk TRANSFER
	Customer   shop.CustomerDetails `json:"customer"`
}

func (h *CheckoutHandler) createOrder(w http.ResponseWriter, r *http.Request) {
	var req checkoutReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	ch, ok := h.Channels[req.Method]
	if !ok {
		// GATEWAY masuk lewat callback endpoint, bukan checkout langsung
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unsupported payment method"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	userID := UserID(r)

	// settlement dulu; gagal di sini = tanpa order, tanpa mutasi stok
	details, err := ch.Confirm(ctx, payment.ConfirmRequest{UserID: userID, Reference: req.Reference})
	if err != nil {
		writeError(w, err)
		return
	}

	order, existed, err := h.placeOrder(ctx, userID, req.ExternalID, req.Customer, details)
	if err != nil {
		writeError(w, err)
		return
	}

	code := http.StatusCreated
	if existed {
		code = http.StatusOK
	}
	writeJSON(w, code, orderResponse(order, existed))
}

// placeOrder membangun item order dari cart (harga capture, bukan harga
// live, dan bukan dari client) lalu menjalankan saga. Dipakai juga oleh
// callback gateway.
func (h *CheckoutHandler) placeOrder(ctx context.Context, userID, externalID string,
	customer shop.CustomerDetails, details shop.PaymentDetails) (*shop.Order, bool, error) {

	// fast path idempotency via redis; DB tetap sumber kebenaran di service
	if externalID != "" && h.Redis != nil {
		idemKey := fmt.Sprintf(redisx.KeyIdemCheckout, externalID)
		if orderID, err := h.Redis.Get(ctx, idemKey).Result(); err == nil && orderID != "" {
			if order, err := h.Checkout.GetOrder(ctx, orderID, userID); err == nil {
				return order, true, nil
			}
		}
	}

	view, err := h.Carts.Get(ctx, userID)
	if err != nil {
		return nil, false, err
	}

	items := make([]shop.OrderItem, 0, len(view.Items))
	count := 0
	for _, it := range view.Items {
		items = append(items, shop.OrderItem{
			ProductID:  it.ProductID,
			Name:       it.Name,
			Qty:        it.Qty,
			PriceCents: it.PriceCents,
		})
		count += it.Qty
	}
	summary := shop.OrderSummary{
		SubtotalCents: view.TotalCents,
		ShippingCents: h.ShippingCents,
		TaxCents:      h.TaxCents,
		TotalCents:    view.TotalCents + h.ShippingCents + h.TaxCents,
		ItemCount:     count,
	}

	order, existed, err := h.Checkout.CreateOrder(ctx, checkout.CreateOrderInput{
		UserID:     userID,
		ExternalID: externalID,
		Items:      items,
		Customer:   customer,
		Summary:    summary,
		Payment:    details,
	})
	if err != nil {
		return order, existed, err
	}

	h.cacheOrder(ctx, externalID, order)
	return order, existed, nil
}

func (h *CheckoutHandler) cacheOrder(ctx context.Context, externalID string, order *shop.Order) {
	if h.Redis == nil {
		return
	}
	if externalID != "" {
		idemKey := fmt.Sprintf(redisx.KeyIdemCheckout, externalID)
		_ = h.Redis.Set(ctx, idemKey, order.ID, redisx.TTLIdempotency).Err()
	}
	h.cacheStatus(ctx, order)
}

func (h *CheckoutHandler) cacheStatus(ctx context.Context, order *shop.Order) {
	if h.Redis == nil {
		return
	}
	statusKey := fmt.Sprintf(redisx.KeyOrderStatus, order.ID)
	b, _ := json.Marshal(map[string]any{
		"status":         order.Status,
		"payment_status": order.Payment.Status,
	})
	_ = h.Redis.Set(ctx, statusKey, b, redisx.TTLStatusCache).Err()
}

func (h *CheckoutHandler) cancelOrder(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	order, err := h.Checkout.CancelOrder(ctx, chi.URLParam(r, "id"), UserID(r))
	if err != nil && order == nil {
		writeError(w, err)
		return
	}

	h.cacheStatus(ctx, order)

	resp := map[string]any{"order_id": order.ID, "status": order.Status}
	if err != nil {
		// pembatalan berlaku, tapi restore stok belum sukses — caller boleh retry
		resp["restore_pending"] = true
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *CheckoutHandler) getOrder(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	order, err := h.Checkout.GetOrder(ctx, chi.URLParam(r, "id"), UserID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, orderResponse(order, false))
}

func (h *CheckoutHandler) getOrderStatus(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "id")

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	// 1) coba cache
	if h.Redis != nil {
		key := fmt.Sprintf(redisx.KeyOrderStatus, orderID)
		if s, err := h.Redis.Get(ctx, key).Result(); err == nil && s != "" {
			writeJSON(w, http.StatusOK, json.RawMessage(s))
			return
		}
	}

	// 2) fallback DB
	order, err := h.Checkout.Orders.Get(ctx, orderID)
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
		return
	}
	h.cacheStatus(ctx, order)
	writeJSON(w, http.StatusOK, map[string]any{
		"status":         order.Status,
		"payment_status": order.Payment.Status,
	})
}

type orderItemResp struct {
	ProductID  string `json:"product_id"`
	Name       string `json:"name,omitempty"`
	Qty        int    `json:"qty"`
	PriceCents int    `json:"price_cents"`
}

type orderResp struct {
	OrderID             string               `json:"order_id"`
	ExternalID          string               `json:"external_id,omitempty"`
	Status              shop.Status          `json:"status"`
	Payment             shop.PaymentDetails  `json:"payment"`
	Customer            shop.CustomerDetails `json:"customer"`
	Summary             shop.OrderSummary    `json:"summary"`
	Items               []orderItemResp      `json:"items"`
	NeedsReconciliation bool                 `json:"needs_reconciliation,omitempty"`
	Idempotent          bool                 `json:"idempotent,omitempty"`
}

func orderResponse(o *shop.Order, existed bool) orderResp {
	items := make([]orderItemResp, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, orderItemResp{
			ProductID: it.ProductID, Name: it.Name, Qty: it.Qty, PriceCents: it.PriceCents,
		})
	}
	return orderResp{
		OrderID:             o.ID,
		ExternalID:          o.ExternalID,
		Status:              o.Status,
		Payment:             o.Payment,
		Customer:            o.Customer,
		Summary:             o.Summary,
		Items:               items,
		NeedsReconciliation: o.NeedsReconciliation,
		Idempotent:          existed,
	}
}
