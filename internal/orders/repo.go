package orders

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("order not found")

type Repo struct{ DB *pgxpool.Pool }

// Create inserts a new order with status Received and returns its id.
// Items are stored as a jsonb document, in the order the client sent.
func (r *Repo) Create(ctx context.Context, clientID string, items []Item, totalItems int) (string, error) {
	itemsJSON, err := json.Marshal(items)
	if err != nil {
		return "", err
	}
	orderID := uuid.NewString()
	_, err = r.DB.Exec(ctx, `
		INSERT INTO orders(id, client_id, items, total_items, status, created_at)
		VALUES ($1, $2, $3, $4, $5, now())
	`, orderID, clientID, itemsJSON, totalItems, string(StatusReceived))
	if err != nil {
		return "", err
	}
	return orderID, nil
}

// ListAll returns every order, newest first.
func (r *Repo) ListAll(ctx context.Context) ([]Order, error) {
	return r.list(ctx, `SELECT id, client_id, items, total_items, status, created_at
	                    FROM orders ORDER BY created_at DESC`)
}

// ListByClient returns one client's orders, newest first.
func (r *Repo) ListByClient(ctx context.Context, clientID string) ([]Order, error) {
	return r.list(ctx, `SELECT id, client_id, items, total_items, status, created_at
	                    FROM orders WHERE client_id=$1 ORDER BY created_at DESC`, clientID)
}

func (r *Repo) list(ctx context.Context, query string, args ...any) ([]Order, error) {
	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Order{}
	for rows.Next() {
		var o Order
		var itemsJSON []byte
		var status string
		if err := rows.Scan(&o.ID, &o.ClientID, &itemsJSON, &o.TotalItems, &status, &o.CreatedAt); err != nil {
			return nil, err
		}
		o.Status = Status(status)
		// tolerate bad item documents, same as losing them entirely
		if err := json.Unmarshal(itemsJSON, &o.Items); err != nil {
			o.Items = []Item{}
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

// Get returns a single order by id.
func (r *Repo) Get(ctx context.Context, orderID string) (Order, error) {
	list, err := r.list(ctx, `SELECT id, client_id, items, total_items, status, created_at
	                          FROM orders WHERE id=$1`, orderID)
	if err != nil {
		return Order{}, err
	}
	if len(list) == 0 {
		return Order{}, ErrNotFound
	}
	return list[0], nil
}

// UpdateStatus sets an order's status. ErrNotFound when no such order.
func (r *Repo) UpdateStatus(ctx context.Context, orderID string, status Status) error {
	tag, err := r.DB.Exec(ctx, `UPDATE orders SET status=$1 WHERE id=$2`, string(status), orderID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// GetStatus reads one order's current status.
func (r *Repo) GetStatus(ctx context.Context, orderID string) (Status, error) {
	var s string
	err := r.DB.QueryRow(ctx, `SELECT status FROM orders WHERE id=$1`, orderID).Scan(&s)
	if err != nil {
		return "", err
	}
	return Status(s), nil
}
