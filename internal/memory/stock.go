// Package memory berisi implementasi in-memory dari store/ledger untuk
// test dan run lokal tanpa Postgres/Redis.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/ariefcatur/go-shop-checkout.git/internal/shop"
	"github.com/ariefcatur/go-shop-checkout.git/internal/stock"
)

// StockStore: ledger + katalog in-memory. Satu mutex untuk semua produk;
// semantiknya sama dengan UPDATE kondisional di Postgres: guard "potong
// kalau cukup" dan mutasinya atomik, tidak pernah read-then-write terpisah.
type StockStore struct {
	mu       sync.Mutex
	products map[string]shop.Product

	// OnSignal dipanggil sinkron saat stok turun di bawah ambang low-stock
	// (termasuk tepat 0). Untuk test/observasi lokal.
	OnSignal func(productID string, remaining int)
}

func NewStockStore() *StockStore {
	return &StockStore{products: map[string]shop.Product{}}
}

func (s *StockStore) Seed(p shop.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products[p.ID] = p
}

func (s *StockStore) Stock(productID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.products[productID].Stock
}

func (s *StockStore) CheckAvailability(ctx context.Context, items []shop.ItemQty) (stock.Availability, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var shortfalls []shop.Shortfall
	for _, it := range items {
		p, ok := s.products[it.ProductID]
		if !ok {
			return stock.Availability{}, fmt.Errorf("%w: %s", shop.ErrProductNotFound, it.ProductID)
		}
		if it.Qty > p.Stock {
			shortfalls = append(shortfalls, shop.Shortfall{
				ProductID: it.ProductID, Available: p.Stock, Requested: it.Qty,
			})
		}
	}
	return stock.Availability{OK: len(shortfalls) == 0, Shortfalls: shortfalls}, nil
}

func (s *StockStore) Decrement(ctx context.Context, items []shop.ItemQty) ([]stock.Adjustment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	done := make([]stock.Adjustment, 0, len(items))
	for _, it := range items {
		p, ok := s.products[it.ProductID]
		if !ok || p.Stock < it.Qty {
			// kompensasi: kembalikan yang sudah dipotong di batch ini
			for _, adj := range done {
				rb := s.products[adj.ProductID]
				rb.Stock += adj.Qty
				s.products[adj.ProductID] = rb
			}
			if !ok {
				return nil, fmt.Errorf("%w: %s", shop.ErrProductNotFound, it.ProductID)
			}
			return nil, &shop.StockInsufficientError{Shortfalls: []shop.Shortfall{
				{ProductID: it.ProductID, Available: p.Stock, Requested: it.Qty},
			}}
		}
		p.Stock -= it.Qty
		s.products[it.ProductID] = p
		done = append(done, stock.Adjustment{ProductID: it.ProductID, Qty: it.Qty, Remaining: p.Stock})
		if s.OnSignal != nil && p.Stock < stock.LowStockThreshold {
			s.OnSignal(it.ProductID, p.Stock)
		}
	}
	return done, nil
}

func (s *StockStore) Restore(ctx context.Context, items []shop.ItemQty) ([]stock.Adjustment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]stock.Adjustment, 0, len(items))
	for _, it := range items {
		p, ok := s.products[it.ProductID]
		if !ok {
			return out, fmt.Errorf("%w: %s", shop.ErrProductNotFound, it.ProductID)
		}
		p.Stock += it.Qty
		s.products[it.ProductID] = p
		out = append(out, stock.Adjustment{ProductID: it.ProductID, Qty: it.Qty, Remaining: p.Stock})
	}
	return out, nil
}

// Products: implementasi katalog untuk cart/display.
func (s *StockStore) Products(ctx context.Context, ids []string) (map[string]shop.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]shop.Product, len(ids))
	for _, id := range ids {
		if p, ok := s.products[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}
