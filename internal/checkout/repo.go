package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ariefcatur/go-shop-checkout.git/internal/shop"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repo: persistence order di Postgres. Order + items di-insert dalam satu
// transaksi; setelah itu items tidak pernah di-update (snapshot immutable).
type Repo struct{ DB *pgxpool.Pool }

func (r *Repo) Create(ctx context.Context, o *shop.Order) error {
	customer, err := json.Marshal(o.Customer)
	if err != nil {
		return err
	}

	tx, err := r.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx, `
		INSERT INTO orders(id, external_id, user_id, status,
			payment_method, payment_reference, payment_id, payment_status,
			customer, subtotal_cents, shipping_cents, tax_cents, total_cents, item_count,
			needs_reconciliation, created_at, updated_at)
		VALUES ($1,NULLIF($2,''),$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,false,$15,$16)`,
		o.ID, o.ExternalID, o.UserID, o.Status,
		o.Payment.Method, o.Payment.Reference, o.Payment.PaymentID, o.Payment.Status,
		customer, o.Summary.SubtotalCents, o.Summary.ShippingCents, o.Summary.TaxCents,
		o.Summary.TotalCents, o.Summary.ItemCount, o.CreatedAt, o.UpdatedAt)
	if err != nil {
		return err
	}

	for _, it := range o.Items {
		if _, err := tx.Exec(ctx, `
			INSERT INTO order_items(id, order_id, product_id, name, qty, price_cents)
			VALUES ($1,$2,$3,$4,$5,$6)`,
			it.ID, o.ID, it.ProductID, it.Name, it.Qty, it.PriceCents); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (r *Repo) Get(ctx context.Context, orderID string) (*shop.Order, error) {
	var o shop.Order
	var customer []byte
	err := r.DB.QueryRow(ctx, `
		SELECT id, COALESCE(external_id,''), user_id, status,
			payment_method, payment_reference, payment_id, payment_status,
			customer, subtotal_cents, shipping_cents, tax_cents, total_cents, item_count,
			needs_reconciliation, created_at, updated_at
		FROM orders WHERE id=$1`, orderID).Scan(
		&o.ID, &o.ExternalID, &o.UserID, &o.Status,
		&o.Payment.Method, &o.Payment.Reference, &o.Payment.PaymentID, &o.Payment.Status,
		&customer, &o.Summary.SubtotalCents, &o.Summary.ShippingCents, &o.Summary.TaxCents,
		&o.Summary.TotalCents, &o.Summary.ItemCount,
		&o.NeedsReconciliation, &o.CreatedAt, &o.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, shop.ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(customer, &o.Customer); err != nil {
		return nil, fmt.Errorf("order %s: decode customer: %w", orderID, err)
	}

	rows, err := r.DB.Query(ctx, `
		SELECT id, order_id, product_id, name, qty, price_cents
		FROM order_items WHERE order_id=$1 ORDER BY product_id`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var it shop.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.Name, &it.Qty, &it.PriceCents); err != nil {
			return nil, err
		}
		o.Items = append(o.Items, it)
	}
	return &o, rows.Err()
}

func (r *Repo) FindByExternalID(ctx context.Context, externalID string) (*shop.Order, error) {
	var id string
	err := r.DB.QueryRow(ctx, `SELECT id FROM orders WHERE external_id=$1`, externalID).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, shop.ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	return r.Get(ctx, id)
}

func (r *Repo) SetStatus(ctx context.Context, orderID string, st shop.Status) error {
	ct, err := r.DB.Exec(ctx, `UPDATE orders SET status=$2, updated_at=now() WHERE id=$1`, orderID, st)
	if err != nil {
		return err
	}
	if ct.RowsAffected() != 1 {
		return shop.ErrOrderNotFound
	}
	return nil
}

func (r *Repo) MarkReconciliation(ctx context.Context, orderID string) error {
	ct, err := r.DB.Exec(ctx, `UPDATE orders SET needs_reconciliation=true, updated_at=now() WHERE id=$1`, orderID)
	if err != nil {
		return err
	}
	if ct.RowsAffected() != 1 {
		return shop.ErrOrderNotFound
	}
	return nil
}
