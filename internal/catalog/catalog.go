package catalog

import (
	"context"
	"fmt"

	"github.com/ariefcatur/go-shop-checkout.git/internal/shop"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PG adalah akses read-only ke katalog produk. CRUD katalog bukan urusan
// modul ini; kita cuma baca harga/nama/stok untuk display dan validasi.
type PG struct{ DB *pgxpool.Pool }

func (c *PG) Products(ctx context.Context, ids []string) (map[string]shop.Product, error) {
	if len(ids) == 0 {
		return map[string]shop.Product{}, nil
	}

	args := make([]any, 0, len(ids))
	params := ""
	for i, id := range ids {
		if i > 0 {
			params += ","
		}
		params += fmt.Sprintf("$%d", i+1)
		args = append(args, id)
	}

	rows, err := c.DB.Query(ctx, `SELECT id, sku, name, stock, price_cents, created_at, updated_at
	                              FROM products WHERE id IN (`+params+`)`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]shop.Product, len(ids))
	for rows.Next() {
		var p shop.Product
		if err := rows.Scan(&p.ID, &p.SKU, &p.Name, &p.Stock, &p.PriceCents, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		out[p.ID] = p
	}
	return out, rows.Err()
}

func (c *PG) List(ctx context.Context) ([]shop.Product, error) {
	rows, err := c.DB.Query(ctx, `SELECT id, sku, name, stock, price_cents, created_at, updated_at
	                              FROM products ORDER BY sku`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []shop.Product
	for rows.Next() {
		var p shop.Product
		if err := rows.Scan(&p.ID, &p.SKU, &p.Name, &p.Stock, &p.PriceCents, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
