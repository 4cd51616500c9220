package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"

	kafkax "laundry-orders/internal/kafka"
	"laundry-orders/internal/orders"
	"laundry-orders/internal/redisx"
)

// Service turns order lifecycle events into customer notifications.
// Delivery is just a structured log line for now; the dedup and decode
// path is what matters for at-least-once consumption.
type Service struct {
	Redis       *redis.Client
	ServiceName string
}

// HandleStatusChanged is the consumer handler for order.status_changed.
func (s *Service) HandleStatusChanged(ctx context.Context, m kafkago.Message) error {
	var env orders.Envelope
	if err := json.Unmarshal(m.Value, &env); err != nil {
		return err
	}
	if env.EventType != orders.EventOrderStatusChanged {
		return nil
	}

	// dedup by event_id so redeliveries do not re-notify
	dkey := fmt.Sprintf(redisx.KeyDedup, s.ServiceName, env.EventID)
	if exists, _ := redisx.Exists(ctx, s.Redis, dkey); exists {
		return nil
	}
	_ = s.Redis.Set(ctx, dkey, "1", redisx.TTLDedup).Err()

	p, err := kafkax.UnwrapPayload[orders.OrderStatusChangedPayload](env.Payload)
	if err != nil {
		return err
	}

	slog.Info("order status notification",
		"client", p.ClientID,
		"order", p.OrderID,
		"from", string(p.OldStatus),
		"to", string(p.NewStatus),
	)
	return nil
}
