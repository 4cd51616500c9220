package orders

import "time"

// Item is one line of an order: a clothing item name and how many pieces.
type Item struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// Order is the wire shape shared by the API and the terminal apps.
type Order struct {
	ID         string    `json:"id"`
	ClientID   string    `json:"client_id"`
	CreatedAt  time.Time `json:"created_at"`
	Status     Status    `json:"status"`
	TotalItems int       `json:"total_items"`
	Items      []Item    `json:"items"`
}

// Client is a registered customer account. The password hash never
// leaves the server.
type Client struct {
	Username     string `json:"username"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
}
