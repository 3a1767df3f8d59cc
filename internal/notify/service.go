package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	kafkax "github.com/ariefcatur/go-shop-checkout.git/internal/kafka"
	"github.com/ariefcatur/go-shop-checkout.git/internal/redisx"
	"github.com/ariefcatur/go-shop-checkout.git/internal/shop"
	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"
)

// Service adalah kolaborator notifikasi: konsumsi event lifecycle order dan
// "kirim email" (di sini: log). Fire-and-forget dari sudut pandang checkout;
// kegagalan di sini tidak pernah mempengaruhi hasil order.
type Service struct {
	Redis       *redis.Client
	ServiceName string
}

// HandleOrderEvent dipasang sebagai handler consumer untuk semua topic order.
func (s *Service) HandleOrderEvent(ctx context.Context, m kafkago.Message) error {
	var env shop.Envelope
	if err := json.Unmarshal(m.Value, &env); err != nil {
		return err
	}

	// dedup via redis (pakai event_id); event ulang bukan error
	dkey := fmt.Sprintf(redisx.KeyDedup, "notify", env.EventID)
	if s.Redis != nil {
		fresh, err := redisx.SetNX(ctx, s.Redis, dkey, redisx.TTLDedup)
		if err == nil && !fresh {
			return nil
		}
	}

	switch env.EventType {
	case shop.EventOrderCreated:
		p, err := kafkax.UnwrapPayload[shop.OrderCreatedPayload](env.Payload)
		if err != nil {
			return err
		}
		log.Printf("notify: email order-confirmation to=%s order=%s method=%s total=%d",
			p.Email, p.OrderID, p.Method, p.TotalCents)

	case shop.EventOrderCancelled:
		p, err := kafkax.UnwrapPayload[shop.OrderCancelledPayload](env.Payload)
		if err != nil {
			return err
		}
		log.Printf("notify: email order-cancelled to=%s order=%s", p.Email, p.OrderID)

	case shop.EventOrderReconcile:
		p, err := kafkax.UnwrapPayload[shop.OrderReconcilePayload](env.Payload)
		if err != nil {
			return err
		}
		// ini bukan email customer — alert ke ops channel
		log.Printf("notify: ALERT reconcile-needed order=%s products=%v reason=%s",
			p.OrderID, p.ProductIDs, p.Reason)

	default:
		// topic stok dsb. — bukan urusan notifier
	}
	return nil
}
