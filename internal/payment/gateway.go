package payment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/ariefcatur/go-shop-checkout.git/internal/shop"
)

// GatewayPayment: detail otoritatif dari gateway setelah callback lolos
// verifikasi. Amount dari sini yang dipercaya, bukan dari client.
type GatewayPayment struct {
	PaymentID   string `json:"payment_id"`
	AmountCents int    `json:"amount_cents"`
	Method      string `json:"method"` // card / ewallet / dst, untuk display
	Status      string `json:"status"`
}

// GatewayClient bicara ke hosted payment gateway. Semua call pakai timeout
// bounded; timeout = error retryable, stok & order tidak disentuh.
type GatewayClient struct {
	BaseURL string
	Secret  string
	HTTP    *http.Client
}

func NewGatewayClient(baseURL, secret string, timeout time.Duration) *GatewayClient {
	return &GatewayClient{
		BaseURL: baseURL,
		Secret:  secret,
		HTTP:    &http.Client{Timeout: timeout},
	}
}

// VerifyCallback: recompute HMAC dan bandingkan constant-time.
func (c *GatewayClient) VerifyCallback(orderID, paymentID, signature string) error {
	if !Verify(c.Secret, orderID, paymentID, signature) {
		return shop.ErrPaymentVerificationFailed
	}
	return nil
}

// FetchPayment mengambil detail pembayaran otoritatif dari gateway.
func (c *GatewayClient) FetchPayment(ctx context.Context, paymentID string) (GatewayPayment, error) {
	u := fmt.Sprintf("%s/payments/%s", c.BaseURL, url.PathEscape(paymentID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return GatewayPayment{}, err
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		if isTimeout(err) {
			return GatewayPayment{}, fmt.Errorf("%w: %v", shop.ErrGatewayUnavailable, err)
		}
		return GatewayPayment{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return GatewayPayment{}, fmt.Errorf("%w: payment %s", shop.ErrPaymentVerificationFailed, paymentID)
	}
	if resp.StatusCode != http.StatusOK {
		return GatewayPayment{}, fmt.Errorf("%w: gateway returned %d", shop.ErrGatewayUnavailable, resp.StatusCode)
	}

	var p GatewayPayment
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		return GatewayPayment{}, fmt.Errorf("gateway: decode payment: %w", err)
	}
	return p, nil
}

func isTimeout(err error) bool {
	var ne interface{ Timeout() bool }
	if errors.As(err, &ne) && ne.Timeout() {
		return true
	}
	return errors.Is(err, context.DeadlineExceeded) || errors.Is(err, os.ErrDeadlineExceeded)
}
