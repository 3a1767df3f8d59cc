package checkout

import (
	"time"

	kafkax "github.com/ariefcatur/go-shop-checkout.git/internal/kafka"
	"github.com/ariefcatur/go-shop-checkout.git/internal/shop"
	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
)

// KafkaEvents publish event lifecycle order. Producer async (inbox channel),
// jadi semua method di sini non-blocking & fire-and-forget.
type KafkaEvents struct {
	Created   *kafkax.Producer // shop.order.created
	Cancelled *kafkax.Producer // shop.order.cancelled
	Reconc    *kafkax.Producer // shop.order.reconcile
	Service   string
}

func (e *KafkaEvents) OrderCreated(o *shop.Order) {
	e.publish(e.Created, shop.EventOrderCreated, o.ID, shop.OrderCreatedPayload{
		OrderID:       o.ID,
		ExternalID:    o.ExternalID,
		UserID:        o.UserID,
		Email:         o.Customer.Email,
		Method:        o.Payment.Method,
		PaymentStatus: o.Payment.Status,
		TotalCents:    o.Summary.TotalCents,
		ItemCount:     o.Summary.ItemCount,
	})
}

func (e *KafkaEvents) OrderCancelled(o *shop.Order) {
	items := make([]shop.ItemQty, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, shop.ItemQty{ProductID: it.ProductID, Qty: it.Qty})
	}
	e.publish(e.Cancelled, shop.EventOrderCancelled, o.ID, shop.OrderCancelledPayload{
		OrderID: o.ID,
		UserID:  o.UserID,
		Email:   o.Customer.Email,
		Items:   items,
	})
}

func (e *KafkaEvents) Reconcile(orderID string, productIDs []string, reason string) {
	e.publish(e.Reconc, shop.EventOrderReconcile, orderID, shop.OrderReconcilePayload{
		OrderID:    orderID,
		ProductIDs: productIDs,
		Reason:     reason,
	})
}

func (e *KafkaEvents) publish(p *kafkax.Producer, eventType, orderID string, payload any) {
	if p == nil {
		return
	}
	ev := shop.Envelope{
		EventID:       uuid.NewString(),
		EventType:     eventType,
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      e.Service,
		CorrelationID: orderID,
		Payload:       kafkax.MustMarshal(payload),
	}
	p.Publish(shop.PartitionKey(orderID), kafkax.MustMarshal(ev),
		kafkago.Header{Key: "x-event-type", Value: []byte(eventType)},
		kafkago.Header{Key: "x-event-version", Value: []byte("1")},
	)
}
