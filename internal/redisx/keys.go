package redisx

import "time"

const (
	// Idempotency checkout: idem:checkout:{external_id} -> order_id
	KeyIdemCheckout = "idem:checkout:%s"

	// Cache status order: order_status:{order_id} -> {"status": "...", "payment_status": "..."}
	KeyOrderStatus = "order_status:%s"

	// Dedup event/callback processing: dedup:{service}:{id}
	// (id = event_id, atau payment_id untuk callback gateway)
	KeyDedup = "dedup:%s:%s"

	// Cart per user: hash cart:{user_id}, field = product_id, value = CartItem JSON
	KeyCart = "cart:%s"
)

var (
	TTLIdempotency = 24 * time.Hour
	TTLStatusCache = 5 * time.Minute
	TTLDedup       = 48 * time.Hour
)
