package shop

const (
	TopicOrderCreated   = "shop.order.created"
	TopicOrderCancelled = "shop.order.cancelled"
	TopicOrderReconcile = "shop.order.reconcile"
	TopicStockLow       = "shop.stock.low"
	TopicStockOut       = "shop.stock.out"
)

// Partition key = order_id (atau product_id untuk sinyal stok),
// supaya event untuk satu entitas maintain urutan.
func PartitionKey(id string) []byte { return []byte(id) }
