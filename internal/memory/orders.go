package memory

import (
	"context"
	"sync"

	"github.com/ariefcatur/go-shop-checkout.git/internal/shop"
)

type OrderStore struct {
	mu     sync.RWMutex
	orders map[string]*shop.Order
	byExt  map[string]string // external_id -> order_id

	// FailCreate bikin Create gagal — untuk menguji jalur PersistenceError.
	FailCreate error
}

func NewOrderStore() *OrderStore {
	return &OrderStore{
		orders: map[string]*shop.Order{},
		byExt:  map[string]string{},
	}
}

func (s *OrderStore) Create(ctx context.Context, o *shop.Order) error {
	if s.FailCreate != nil {
		return s.FailCreate
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *o
	s.orders[o.ID] = &cp
	if o.ExternalID != "" {
		s.byExt[o.ExternalID] = o.ID
	}
	return nil
}

func (s *OrderStore) Get(ctx context.Context, orderID string) (*shop.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.orders[orderID]
	if !ok {
		return nil, shop.ErrOrderNotFound
	}
	cp := *o
	return &cp, nil
}

func (s *OrderStore) FindByExternalID(ctx context.Context, externalID string) (*shop.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byExt[externalID]
	if !ok {
		return nil, shop.ErrOrderNotFound
	}
	cp := *s.orders[id]
	return &cp, nil
}

func (s *OrderStore) SetStatus(ctx context.Context, orderID string, st shop.Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[orderID]
	if !ok {
		return shop.ErrOrderNotFound
	}
	o.Status = st
	return nil
}

func (s *OrderStore) MarkReconciliation(ctx context.Context, orderID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[orderID]
	if !ok {
		return shop.ErrOrderNotFound
	}
	o.NeedsReconciliation = true
	return nil
}
