package memory

import (
	"context"
	"sync"

	"github.com/ariefcatur/go-shop-checkout.git/internal/shop"
)

type CartStore struct {
	mu    sync.Mutex
	carts map[string]map[string]shop.CartItem

	// FailClear bikin Clear gagal — jalur "clear cart non-fatal".
	FailClear error
}

func NewCartStore() *CartStore {
	return &CartStore{carts: map[string]map[string]shop.CartItem{}}
}

func (s *CartStore) Items(ctx context.Context, userID string) (map[string]shop.CartItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]shop.CartItem, len(s.carts[userID]))
	for pid, it := range s.carts[userID] {
		out[pid] = it
	}
	return out, nil
}

func (s *CartStore) Put(ctx context.Context, userID string, item shop.CartItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.carts[userID] == nil {
		s.carts[userID] = map[string]shop.CartItem{}
	}
	s.carts[userID][item.ProductID] = item
	return nil
}

func (s *CartStore) Remove(ctx context.Context, userID, productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts[userID], productID)
	return nil
}

func (s *CartStore) Clear(ctx context.Context, userID string) error {
	if s.FailClear != nil {
		return s.FailClear
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.carts[userID] = map[string]shop.CartItem{}
	return nil
}
