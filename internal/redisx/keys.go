package redisx

import "time"

const (
	// Admin session: session:admin:{token} -> username
	KeyAdminSession = "session:admin:%s"

	// Cache status order: order_status:{order_id} -> status string
	KeyOrderStatus = "order_status:%s"

	// Dedup event processing: dedup:{service}:{event_id}
	KeyDedup = "dedup:%s:%s"
)

var (
	TTLAdminSession = 12 * time.Hour
	TTLStatusCache  = 5 * time.Minute
	TTLDedup        = 48 * time.Hour
)
