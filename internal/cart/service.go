package cart

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/ariefcatur/go-shop-checkout.git/internal/shop"
)

// Catalog: kolaborator katalog, read-only.
type Catalog interface {
	Products(ctx context.Context, ids []string) (map[string]shop.Product, error)
}

type Service struct {
	Store   Store
	Catalog Catalog
}

// ItemView: item cart + data produk live untuk display. Total tetap dihitung
// dari PriceCents yang dicapture saat add, bukan harga live.
type ItemView struct {
	shop.CartItem
	Name      string `json:"name"`
	Stock     int    `json:"stock"`
	Available bool   `json:"available"`
}

type View struct {
	UserID     string     `json:"user_id"`
	Items      []ItemView `json:"items"`
	TotalCents int        `json:"total_cents"`
}

func (s *Service) Get(ctx context.Context, userID string) (View, error) {
	items, err := s.Store.Items(ctx, userID)
	if err != nil {
		return View{}, err
	}

	ids := make([]string, 0, len(items))
	for pid := range items {
		ids = append(ids, pid)
	}
	sort.Strings(ids) // urutan stabil untuk respons

	products, err := s.Catalog.Products(ctx, ids)
	if err != nil {
		return View{}, err
	}

	v := View{UserID: userID, Items: make([]ItemView, 0, len(ids))}
	for _, pid := range ids {
		it := items[pid]
		iv := ItemView{CartItem: it}
		if p, ok := products[pid]; ok {
			iv.Name = p.Name
			iv.Stock = p.Stock
			iv.Available = p.Stock >= it.Qty
		}
		v.Items = append(v.Items, iv)
		v.TotalCents += it.PriceCents * it.Qty // harga capture, bukan harga live
	}
	return v, nil
}

// Add: produk yang sudah ada di cart di-merge qty-nya, bukan jadi entry
// baru. Harga dicapture dari katalog saat add pertama.
func (s *Service) Add(ctx context.Context, userID, productID string, qty int) error {
	if qty < 1 {
		return &shop.ValidationError{Field: "qty", Msg: "must be at least 1"}
	}

	products, err := s.Catalog.Products(ctx, []string{productID})
	if err != nil {
		return err
	}
	p, ok := products[productID]
	if !ok {
		return fmt.Errorf("%w: %s", shop.ErrProductNotFound, productID)
	}

	items, err := s.Store.Items(ctx, userID)
	if err != nil {
		return err
	}

	if existing, ok := items[productID]; ok {
		existing.Qty += qty // harga tetap harga capture lama
		return s.Store.Put(ctx, userID, existing)
	}
	return s.Store.Put(ctx, userID, shop.CartItem{
		ProductID:  productID,
		Qty:        qty,
		PriceCents: p.PriceCents,
		AddedAt:    time.Now().UTC(),
	})
}

func (s *Service) Update(ctx context.Context, userID, productID string, qty int) error {
	if qty < 1 {
		return &shop.ValidationError{Field: "qty", Msg: "must be at least 1"}
	}
	items, err := s.Store.Items(ctx, userID)
	if err != nil {
		return err
	}
	it, ok := items[productID]
	if !ok {
		return fmt.Errorf("%w: %s", shop.ErrItemNotInCart, productID)
	}
	it.Qty = qty
	return s.Store.Put(ctx, userID, it)
}

func (s *Service) Remove(ctx context.Context, userID, productID string) error {
	items, err := s.Store.Items(ctx, userID)
	if err != nil {
		return err
	}
	if _, ok := items[productID]; !ok {
		return fmt.Errorf("%w: %s", shop.ErrItemNotInCart, productID)
	}
	return s.Store.Remove(ctx, userID, productID)
}

func (s *Service) Clear(ctx context.Context, userID string) error {
	return s.Store.Clear(ctx, userID)
}
