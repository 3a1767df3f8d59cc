package memory

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/ariefcatur/go-shop-checkout.git/internal/shop"
)

func seeded(t *testing.T, stocks map[string]int) *StockStore {
	t.Helper()
	s := NewStockStore()
	for id, st := range stocks {
		s.Seed(shop.Product{ID: id, Name: "produk " + id, Stock: st, PriceCents: 1000})
	}
	return s
}

func TestDecrementSubtractsExactQuantities(t *testing.T) {
	s := seeded(t, map[string]int{"a": 5, "b": 2})

	adj, err := s.Decrement(context.Background(), []shop.ItemQty{
		{ProductID: "a", Qty: 3},
		{ProductID: "b", Qty: 1},
	})
	if err != nil {
		t.Fatalf("decrement: %v", err)
	}
	if len(adj) != 2 {
		t.Fatalf("expected 2 adjustments, got %d", len(adj))
	}
	if got := s.Stock("a"); got != 2 {
		t.Errorf("stock a = %d, want 2", got)
	}
	if got := s.Stock("b"); got != 1 {
		t.Errorf("stock b = %d, want 1", got)
	}
}

func TestRestoreAfterDecrementIsIdentity(t *testing.T) {
	s := seeded(t, map[string]int{"a": 7, "b": 4})
	items := []shop.ItemQty{{ProductID: "a", Qty: 5}, {ProductID: "b", Qty: 4}}

	if _, err := s.Decrement(context.Background(), items); err != nil {
		t.Fatalf("decrement: %v", err)
	}
	if _, err := s.Restore(context.Background(), items); err != nil {
		t.Fatalf("restore: %v", err)
	}
	if got := s.Stock("a"); got != 7 {
		t.Errorf("stock a = %d, want 7", got)
	}
	if got := s.Stock("b"); got != 4 {
		t.Errorf("stock b = %d, want 4", got)
	}
}

func TestDecrementCompensatesEarlierItemsOnFailure(t *testing.T) {
	s := seeded(t, map[string]int{"a": 5, "b": 1})

	_, err := s.Decrement(context.Background(), []shop.ItemQty{
		{ProductID: "a", Qty: 3},
		{ProductID: "b", Qty: 2}, // gagal: stok b cuma 1
	})
	var shortErr *shop.StockInsufficientError
	if !errors.As(err, &shortErr) {
		t.Fatalf("expected StockInsufficientError, got %v", err)
	}
	if len(shortErr.Shortfalls) != 1 || shortErr.Shortfalls[0].ProductID != "b" {
		t.Fatalf("unexpected shortfalls: %+v", shortErr.Shortfalls)
	}
	if shortErr.Shortfalls[0].Available != 1 || shortErr.Shortfalls[0].Requested != 2 {
		t.Errorf("shortfall = %+v, want available 1 requested 2", shortErr.Shortfalls[0])
	}
	// a harus dikembalikan ke 5
	if got := s.Stock("a"); got != 5 {
		t.Errorf("stock a = %d, want 5 (compensated)", got)
	}
	if got := s.Stock("b"); got != 1 {
		t.Errorf("stock b = %d, want 1 (untouched)", got)
	}
}

func TestDecrementUnknownProduct(t *testing.T) {
	s := seeded(t, map[string]int{"a": 5})
	_, err := s.Decrement(context.Background(), []shop.ItemQty{{ProductID: "ghost", Qty: 1}})
	if !errors.Is(err, shop.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

// Properti anti-oversell: N decrement paralel yang total permintaannya
// melebihi stok — yang sukses tidak pernah bikin stok negatif, dan jumlah
// qty yang sukses tepat dibatasi stok awal.
func TestConcurrentDecrementsNeverOversell(t *testing.T) {
	const initial = 50
	const attempts = 200
	const qtyPer = 3 // 200*3 = 600 >> 50

	s := seeded(t, map[string]int{"a": initial})

	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.Decrement(context.Background(), []shop.ItemQty{{ProductID: "a", Qty: qtyPer}})
			if err == nil {
				mu.Lock()
				succeeded += qtyPer
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	final := s.Stock("a")
	if final < 0 {
		t.Fatalf("stock went negative: %d", final)
	}
	if succeeded > initial {
		t.Fatalf("oversold: %d succeeded from initial %d", succeeded, initial)
	}
	if succeeded+final != initial {
		t.Errorf("accounting broken: succeeded %d + remaining %d != initial %d", succeeded, final, initial)
	}
	// 50/3 tidak bulat: sisa akhir harus < qtyPer
	if final >= qtyPer {
		t.Errorf("remaining %d should be below %d (otherwise an attempt should have succeeded)", final, qtyPer)
	}
}

func TestLowAndOutOfStockSignals(t *testing.T) {
	s := seeded(t, map[string]int{"a": 12, "b": 1})

	var got []int
	var gotOut bool
	s.OnSignal = func(productID string, remaining int) {
		got = append(got, remaining)
		if remaining == 0 {
			gotOut = true
		}
	}

	// 12 -> 11: masih di atas ambang, tanpa sinyal
	if _, err := s.Decrement(context.Background(), []shop.ItemQty{{ProductID: "a", Qty: 1}}); err != nil {
		t.Fatalf("decrement: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("no signal expected above threshold, got %v", got)
	}
	// 11 -> 8: sinyal low
	if _, err := s.Decrement(context.Background(), []shop.ItemQty{{ProductID: "a", Qty: 3}}); err != nil {
		t.Fatalf("decrement: %v", err)
	}
	// 1 -> 0: sinyal out
	if _, err := s.Decrement(context.Background(), []shop.ItemQty{{ProductID: "b", Qty: 1}}); err != nil {
		t.Fatalf("decrement: %v", err)
	}

	if len(got) != 2 || got[0] != 8 {
		t.Errorf("signals = %v, want [8 0]", got)
	}
	if !gotOut {
		t.Error("expected out-of-stock signal at exactly 0")
	}
}
