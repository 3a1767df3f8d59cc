package cart

import (
	"context"
	"errors"
	"testing"

	"github.com/ariefcatur/go-shop-checkout.git/internal/memory"
	"github.com/ariefcatur/go-shop-checkout.git/internal/shop"
)

func newService() (*Service, *memory.StockStore, *memory.CartStore) {
	stocks := memory.NewStockStore()
	carts := memory.NewCartStore()
	return &Service{Store: carts, Catalog: stocks}, stocks, carts
}

func TestAddMergesQuantityForSameProduct(t *testing.T) {
	ctx := context.Background()
	svc, stocks, _ := newService()
	stocks.Seed(shop.Product{ID: "a", Name: "Kaos", Stock: 10, PriceCents: 1000})

	if err := svc.Add(ctx, "u1", "a", 2); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := svc.Add(ctx, "u1", "a", 3); err != nil {
		t.Fatalf("add again: %v", err)
	}

	view, err := svc.Get(ctx, "u1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(view.Items) != 1 {
		t.Fatalf("expected 1 entry, got %d (must merge, not duplicate)", len(view.Items))
	}
	if view.Items[0].Qty != 5 {
		t.Errorf("qty = %d, want 5", view.Items[0].Qty)
	}
}

// Total dihitung dari harga capture saat add — perubahan harga katalog
// belakangan tidak boleh kebawa.
func TestTotalUsesCapturedPriceNotLivePrice(t *testing.T) {
	ctx := context.Background()
	svc, stocks, _ := newService()
	stocks.Seed(shop.Product{ID: "a", Name: "Kaos", Stock: 10, PriceCents: 1000})

	if err := svc.Add(ctx, "u1", "a", 2); err != nil {
		t.Fatalf("add: %v", err)
	}

	// harga katalog naik setelah add
	stocks.Seed(shop.Product{ID: "a", Name: "Kaos", Stock: 10, PriceCents: 9900})

	view, err := svc.Get(ctx, "u1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if view.TotalCents != 2000 {
		t.Errorf("total = %d, want 2000 (captured price)", view.TotalCents)
	}
	// display tetap pakai data produk live
	if view.Items[0].Name != "Kaos" || view.Items[0].Stock != 10 {
		t.Errorf("live product data missing from view: %+v", view.Items[0])
	}
}

func TestAddUnknownProduct(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newService()
	if err := svc.Add(ctx, "u1", "ghost", 1); !errors.Is(err, shop.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

func TestAddRejectsZeroQty(t *testing.T) {
	ctx := context.Background()
	svc, stocks, _ := newService()
	stocks.Seed(shop.Product{ID: "a", Stock: 10, PriceCents: 1000})

	var vErr *shop.ValidationError
	if err := svc.Add(ctx, "u1", "a", 0); !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestUpdateAndRemove(t *testing.T) {
	ctx := context.Background()
	svc, stocks, _ := newService()
	stocks.Seed(shop.Product{ID: "a", Stock: 10, PriceCents: 1000})
	stocks.Seed(shop.Product{ID: "b", Stock: 10, PriceCents: 2000})

	_ = svc.Add(ctx, "u1", "a", 1)
	_ = svc.Add(ctx, "u1", "b", 1)

	if err := svc.Update(ctx, "u1", "a", 4); err != nil {
		t.Fatalf("update: %v", err)
	}
	if err := svc.Remove(ctx, "u1", "b"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := svc.Update(ctx, "u1", "ghost", 2); !errors.Is(err, shop.ErrItemNotInCart) {
		t.Fatalf("expected ErrItemNotInCart, got %v", err)
	}

	view, _ := svc.Get(ctx, "u1")
	if len(view.Items) != 1 || view.Items[0].ProductID != "a" || view.Items[0].Qty != 4 {
		t.Errorf("unexpected cart: %+v", view.Items)
	}
}

func TestClearEmptiesButCartStaysUsable(t *testing.T) {
	ctx := context.Background()
	svc, stocks, _ := newService()
	stocks.Seed(shop.Product{ID: "a", Stock: 10, PriceCents: 1000})

	_ = svc.Add(ctx, "u1", "a", 2)
	if err := svc.Clear(ctx, "u1"); err != nil {
		t.Fatalf("clear: %v", err)
	}

	view, err := svc.Get(ctx, "u1")
	if err != nil {
		t.Fatalf("get after clear: %v", err)
	}
	if len(view.Items) != 0 || view.TotalCents != 0 {
		t.Errorf("cart not empty after clear: %+v", view)
	}

	// cart tetap bisa dipakai lagi
	if err := svc.Add(ctx, "u1", "a", 1); err != nil {
		t.Fatalf("add after clear: %v", err)
	}
}
