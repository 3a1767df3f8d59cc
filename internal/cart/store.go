package cart

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ariefcatur/go-shop-checkout.git/internal/redisx"
	"github.com/ariefcatur/go-shop-checkout.git/internal/shop"
	"github.com/redis/go-redis/v9"
)

// Store: penyimpanan cart per user. Satu cart per user, persist lintas
// session; Clear mengosongkan isi, bukan menghapus identitas cart.
type Store interface {
	Items(ctx context.Context, userID string) (map[string]shop.CartItem, error)
	Put(ctx context.Context, userID string, item shop.CartItem) error
	Remove(ctx context.Context, userID, productID string) error
	Clear(ctx context.Context, userID string) error
}

// RedisStore: hash cart:{user_id}, field = product_id, value = CartItem JSON.
// Tanpa TTL — cart memang harus awet.
type RedisStore struct{ R *redis.Client }

func (s *RedisStore) key(userID string) string {
	return fmt.Sprintf(redisx.KeyCart, userID)
}

func (s *RedisStore) Items(ctx context.Context, userID string) (map[string]shop.CartItem, error) {
	raw, err := s.R.HGetAll(ctx, s.key(userID)).Result()
	if err != nil {
		return nil, err
	}
	out := make(map[string]shop.CartItem, len(raw))
	for pid, v := range raw {
		var it shop.CartItem
		if err := json.Unmarshal([]byte(v), &it); err != nil {
			return nil, fmt.Errorf("cart: decode item %s: %w", pid, err)
		}
		out[pid] = it
	}
	return out, nil
}

func (s *RedisStore) Put(ctx context.Context, userID string, item shop.CartItem) error {
	b, err := json.Marshal(item)
	if err != nil {
		return err
	}
	return s.R.HSet(ctx, s.key(userID), item.ProductID, b).Err()
}

func (s *RedisStore) Remove(ctx context.Context, userID, productID string) error {
	return s.R.HDel(ctx, s.key(userID), productID).Err()
}

func (s *RedisStore) Clear(ctx context.Context, userID string) error {
	return s.R.Del(ctx, s.key(userID)).Err()
}
