package payment

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ariefcatur/go-shop-checkout.git/internal/shop"
)

func TestFetchPaymentDecodesGatewayResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/payments/pay-1" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"payment_id":"pay-1","amount_cents":8000,"method":"card","status":"captured"}`))
	}))
	defer srv.Close()

	c := NewGatewayClient(srv.URL, "secret", time.Second)
	p, err := c.FetchPayment(context.Background(), "pay-1")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if p.AmountCents != 8000 || p.Method != "card" {
		t.Errorf("unexpected payment: %+v", p)
	}
}

func TestFetchPaymentTimeoutIsRetryable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	c := NewGatewayClient(srv.URL, "secret", 20*time.Millisecond)
	_, err := c.FetchPayment(context.Background(), "pay-1")
	if !errors.Is(err, shop.ErrGatewayUnavailable) {
		t.Fatalf("expected ErrGatewayUnavailable on timeout, got %v", err)
	}
}

func TestFetchPaymentUnknownPayment(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewGatewayClient(srv.URL, "secret", time.Second)
	_, err := c.FetchPayment(context.Background(), "ghost")
	if !errors.Is(err, shop.ErrPaymentVerificationFailed) {
		t.Fatalf("expected ErrPaymentVerificationFailed, got %v", err)
	}
}

func TestVerifyCallback(t *testing.T) {
	c := NewGatewayClient("http://unused", "secret", time.Second)

	sig := Sign("secret", "order-1", "pay-1")
	if err := c.VerifyCallback("order-1", "pay-1", sig); err != nil {
		t.Fatalf("valid callback rejected: %v", err)
	}
	if err := c.VerifyCallback("order-1", "pay-1", "deadbeef"); !errors.Is(err, shop.ErrPaymentVerificationFailed) {
		t.Fatalf("expected ErrPaymentVerificationFailed, got %v", err)
	}
}
