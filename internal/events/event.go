package events

import "time"

// OrderConfirmedQueue is the durable queue carrying order confirmations.
const OrderConfirmedQueue = "order.confirmed"

// OrderConfirmedEvent is published after a checkout transaction commits.
type OrderConfirmedEvent struct {
	OrderID       uint      `json:"order_id"`
	UserID        uint      `json:"user_id"`
	CustomerName  string    `json:"customer_name"`
	CustomerPhone string    `json:"customer_phone"`
	TotalPrice    string    `json:"total_price"`
	ItemCount     int       `json:"item_count"`
	CreatedAt     time.Time `json:"created_at"`
}
