package payment

import (
	"context"

	"github.com/ariefcatur/go-shop-checkout.git/internal/shop"
)

// ConfirmRequest: data settlement yang dibawa client saat checkout.
type ConfirmRequest struct {
	UserID    string
	Reference string // nomor referensi transfer (channel TRANSFER)
}

// Channel memutuskan kapan settlement dianggap final dan paymentStatus awal
// order. Dipanggil sebelum order dipersist; error di sini = tidak ada order,
// tidak ada mutasi stok.
type Channel interface {
	Method() shop.PaymentMethod
	Confirm(ctx context.Context, req ConfirmRequest) (shop.PaymentDetails, error)
}

type Registry map[shop.PaymentMethod]Channel

func NewRegistry(chs ...Channel) Registry {
	r := make(Registry, len(chs))
	for _, ch := range chs {
		r[ch.Method()] = ch
	}
	return r
}

// Cash (bayar di tempat): tanpa verifikasi eksternal. PENDING sampai barang
// diterima dan dibayar fisik.
type Cash struct{}

func (Cash) Method() shop.PaymentMethod { return shop.MethodCash }

func (Cash) Confirm(ctx context.Context, req ConfirmRequest) (shop.PaymentDetails, error) {
	return shop.PaymentDetails{Method: shop.MethodCash, Status: shop.PaymentPending}, nil
}

// Transfer: client meng-assert bahwa transfer bank/wallet sudah jalan.
// Sistem TIDAK punya cara verifikasi independen ke institusi finansial —
// batas trust ini disengaja dipertahankan apa adanya, jangan "diperbaiki"
// dengan verifikasi karangan.
type Transfer struct{}

func (Transfer) Method() shop.PaymentMethod { return shop.MethodTransfer }

func (Transfer) Confirm(ctx context.Context, req ConfirmRequest) (shop.PaymentDetails, error) {
	if req.Reference == "" {
		return shop.PaymentDetails{}, &shop.ValidationError{Field: "reference", Msg: "transfer reference is required"}
	}
	return shop.PaymentDetails{
		Method:    shop.MethodTransfer,
		Reference: req.Reference,
		Status:    shop.PaymentPaid, // dipercaya as-asserted
	}, nil
}
