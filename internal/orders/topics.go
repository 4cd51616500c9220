package orders

const (
	TopicOrderCreated       = "laundry.order.created"
	TopicOrderStatusChanged = "laundry.order.status_changed"
)

// Partition key = order_id, so all events of one order keep their order.
func PartitionKey(orderID string) []byte { return []byte(orderID) }
