package httpx

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/ariefcatur/go-shop-checkout.git/internal/payment"
	"github.com/ariefcatur/go-shop-checkout.git/internal/redisx"
	"github.com/ariefcatur/go-shop-checkout.git/internal/shop"
	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
)

// PaymentHandler menerima callback dari hosted gateway. Order untuk channel
// ini baru dibuat DI SINI, setelah signature lolos; callback yang gagal
// verifikasi tidak menyentuh state apa pun.
type PaymentHandler struct {
	Checkout *CheckoutHandler // reuse placeOrder (item dari cart + saga)
	Gateway  *payment.GatewayClient
	Redis    *redis.Client
	Service  string
}

func (h *PaymentHandler) Register(r *chi.Mux) {
	r.Post("/payments/gateway/callback", h.gatewayCallback)
}

type gatewayCallbackReq struct {
	OrderID   string `json:"order_id"` // referensi order dari sisi client (jadi external_id)
	PaymentID string `json:"payment_id"`
	Signature string `json:"signature"`
	Snapshot  struct {
		UserID   string               `json:"user_id"`
		Customer shop.CustomerDetails `json:"customer"`
	} `json:"order_snapshot"`
}

func (h *PaymentHandler) gatewayCallback(w http.ResponseWriter, r *http.Request) {
	var req gatewayCallbackReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	if req.OrderID == "" || req.PaymentID == "" || req.Signature == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing fields"})
		return
	}

	// 1) verifikasi signature dulu — sebelum sentuh apa pun
	if err := h.Gateway.VerifyCallback(req.OrderID, req.PaymentID, req.Signature); err != nil {
		writeError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	// 2) dedup replay callback per payment_id
	if h.Redis != nil {
		dkey := fmt.Sprintf(redisx.KeyDedup, h.Service, req.PaymentID)
		if exists, _ := redisx.Exists(ctx, h.Redis, dkey); exists {
			writeJSON(w, http.StatusOK, map[string]string{"status": "already_processed"})
			return
		}
	}

	// 3) ambil detail otoritatif dari gateway (timeout bounded; timeout =
	// retryable, belum ada state yang berubah)
	pay, err := h.Gateway.FetchPayment(ctx, req.PaymentID)
	if err != nil {
		writeError(w, err)
		return
	}

	// 4) jalankan createOrder; harga & total dari cart, amount gateway
	// harus cocok dengan total
	view, err := h.Checkout.Carts.Get(ctx, req.Snapshot.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	total := view.TotalCents + h.Checkout.ShippingCents + h.Checkout.TaxCents
	if pay.AmountCents != total {
		writeJSON(w, http.StatusConflict, map[string]any{
			"error":           "payment amount mismatch",
			"expected_cents":  total,
			"gateway_cents":   pay.AmountCents,
			"payment_id":      pay.PaymentID,
			"no_order_placed": true,
		})
		return
	}

	details := shop.PaymentDetails{
		Method:    shop.MethodGateway,
		Reference: pay.Method, // card/ewallet, untuk display
		PaymentID: pay.PaymentID,
		Status:    shop.PaymentPaid, // settlement sudah terverifikasi
	}
	order, existed, err := h.Checkout.placeOrder(ctx, req.Snapshot.UserID, req.OrderID, req.Snapshot.Customer, details)
	if err != nil {
		writeError(w, err)
		return
	}

	if h.Redis != nil {
		dkey := fmt.Sprintf(redisx.KeyDedup, h.Service, req.PaymentID)
		_, _ = redisx.SetNX(ctx, h.Redis, dkey, redisx.TTLDedup)
	}

	code := http.StatusCreated
	if existed {
		code = http.StatusOK
	}
	writeJSON(w, code, orderResponse(order, existed))
}

// ProductsHandler: listing katalog untuk storefront.
type ProductsHandler struct {
	Catalog interface {
		List(ctx context.Context) ([]shop.Product, error)
	}
}

func (h *ProductsHandler) Register(r *chi.Mux) {
	r.Get("/products", h.listProducts)
}

func (h *ProductsHandler) listProducts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	ps, err := h.Catalog.List(ctx)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, ps)
}
