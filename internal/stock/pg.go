package stock

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/ariefcatur/go-shop-checkout.git/internal/shop"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PG adalah stock ledger di atas Postgres. Guard "potong kalau cukup" ada
// di satu statement UPDATE kondisional, bukan read-then-write di aplikasi —
// itu satu-satunya pagar terhadap oversell saat checkout bersamaan.
type PG struct {
	DB      *pgxpool.Pool
	Signals *Signaler
}

// CheckAvailability: read-only, tanpa side effect. Semua kekurangan
// dikumpulkan dalam satu respons.
func (l *PG) CheckAvailability(ctx context.Context, items []shop.ItemQty) (Availability, error) {
	if len(items) == 0 {
		return Availability{OK: true}, nil
	}

	args := make([]any, 0, len(items))
	params := ""
	for i, it := range items {
		if i > 0 {
			params += ","
		}
		params += fmt.Sprintf("$%d", i+1)
		args = append(args, it.ProductID)
	}

	rows, err := l.DB.Query(ctx, `SELECT id, stock FROM products WHERE id IN (`+params+`)`, args...)
	if err != nil {
		return Availability{}, err
	}
	defer rows.Close()

	stocks := map[string]int{}
	for rows.Next() {
		var id string
		var st int
		if err := rows.Scan(&id, &st); err != nil {
			return Availability{}, err
		}
		stocks[id] = st
	}
	if err := rows.Err(); err != nil {
		return Availability{}, err
	}

	var shortfalls []shop.Shortfall
	for _, it := range items {
		available, ok := stocks[it.ProductID]
		if !ok {
			return Availability{}, fmt.Errorf("%w: %s", shop.ErrProductNotFound, it.ProductID)
		}
		if it.Qty > available {
			shortfalls = append(shortfalls, shop.Shortfall{
				ProductID: it.ProductID, Available: available, Requested: it.Qty,
			})
		}
	}
	return Availability{OK: len(shortfalls) == 0, Shortfalls: shortfalls}, nil
}

// Decrement: per item satu UPDATE kondisional atomik. Kalau satu item gagal
// (kalah race dengan checkout lain), item-item yang sudah terlanjur dipotong
// di batch ini dikembalikan dulu, baru lapor gagal dengan item penyebabnya.
func (l *PG) Decrement(ctx context.Context, items []shop.ItemQty) ([]Adjustment, error) {
	done := make([]Adjustment, 0, len(items))

	for _, it := range items {
		var remaining int
		err := l.DB.QueryRow(ctx, `
			UPDATE products SET stock = stock - $2, updated_at = now()
			WHERE id = $1 AND stock >= $2
			RETURNING stock`, it.ProductID, it.Qty).Scan(&remaining)
		if err == nil {
			done = append(done, Adjustment{ProductID: it.ProductID, Qty: it.Qty, Remaining: remaining})
			l.Signals.StockChanged(it.ProductID, remaining)
			continue
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			l.compensate(ctx, done)
			return nil, err
		}

		// UPDATE tidak kena baris: produk hilang atau stok kurang.
		available, lookupErr := l.currentStock(ctx, it.ProductID)
		l.compensate(ctx, done)
		if lookupErr != nil {
			return nil, lookupErr
		}
		return nil, &shop.StockInsufficientError{Shortfalls: []shop.Shortfall{
			{ProductID: it.ProductID, Available: available, Requested: it.Qty},
		}}
	}
	return done, nil
}

// Restore: increment atomik simetris. Ledger tidak men-dedup panggilan
// restore; idempotency urusan caller.
func (l *PG) Restore(ctx context.Context, items []shop.ItemQty) ([]Adjustment, error) {
	out := make([]Adjustment, 0, len(items))
	var firstErr error

	for _, it := range items {
		var remaining int
		err := l.DB.QueryRow(ctx, `
			UPDATE products SET stock = stock + $2, updated_at = now()
			WHERE id = $1
			RETURNING stock`, it.ProductID, it.Qty).Scan(&remaining)
		if errors.Is(err, pgx.ErrNoRows) {
			err = fmt.Errorf("%w: %s", shop.ErrProductNotFound, it.ProductID)
		}
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue // tetap coba item berikutnya
		}
		out = append(out, Adjustment{ProductID: it.ProductID, Qty: it.Qty, Remaining: remaining})
	}
	return out, firstErr
}

func (l *PG) currentStock(ctx context.Context, productID string) (int, error) {
	var st int
	err := l.DB.QueryRow(ctx, `SELECT stock FROM products WHERE id = $1`, productID).Scan(&st)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, fmt.Errorf("%w: %s", shop.ErrProductNotFound, productID)
	}
	return st, err
}

// compensate mengembalikan potongan yang sudah jalan di batch yang sama.
// Best-effort: kalau kompensasi ikut gagal cuma bisa di-log, window ini
// yang dijemput proses rekonsiliasi.
func (l *PG) compensate(ctx context.Context, done []Adjustment) {
	for _, adj := range done {
		if _, err := l.DB.Exec(ctx, `UPDATE products SET stock = stock + $2, updated_at = now() WHERE id = $1`,
			adj.ProductID, adj.Qty); err != nil {
			log.Printf("stock: compensation failed product=%s qty=%d: %v", adj.ProductID, adj.Qty, err)
		}
	}
}
