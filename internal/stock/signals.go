package stock

import (
	"time"

	kafkax "github.com/ariefcatur/go-shop-checkout.git/internal/kafka"
	"github.com/ariefcatur/go-shop-checkout.git/internal/shop"
	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
)

// Signaler publish sinyal stok (low / out) ke kolaborator observability.
// Fire-and-forget: gagal publish tidak boleh menggagalkan operasi stok.
type Signaler struct {
	ProducerLow *kafkax.Producer // publish shop.stock.low
	ProducerOut *kafkax.Producer // publish shop.stock.out
	ServiceName string
}

func (s *Signaler) StockChanged(productID string, remaining int) {
	if s == nil {
		return
	}
	switch {
	case remaining == 0:
		s.publish(s.ProducerOut, shop.EventStockOut, productID,
			shop.StockOutPayload{ProductID: productID})
	case remaining < LowStockThreshold:
		s.publish(s.ProducerLow, shop.EventStockLow, productID,
			shop.StockLowPayload{ProductID: productID, Remaining: remaining})
	}
}

func (s *Signaler) publish(p *kafkax.Producer, eventType, productID string, payload any) {
	if p == nil {
		return
	}
	ev := shop.Envelope{
		EventID:       uuid.NewString(),
		EventType:     eventType,
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      s.ServiceName,
		CorrelationID: productID,
		Payload:       kafkax.MustMarshal(payload),
	}
	p.Publish(shop.PartitionKey(productID), kafkax.MustMarshal(ev),
		kafkago.Header{Key: "x-event-type", Value: []byte(eventType)},
		kafkago.Header{Key: "x-event-version", Value: []byte("1")},
	)
}
