package entity

import "time"

// Sale is a denormalized reporting projection of an order. It mirrors the
// originating order's status but is never authoritative for stock.
type Sale struct {
	ID            string      `bson:"_id" json:"id"`
	OrderID       string      `bson:"order_id" json:"order_id"`
	SequenceID    string      `bson:"sequence_id" json:"sequence_id"`
	Channel       Channel     `bson:"channel" json:"channel"`
	Items         []OrderLine `bson:"items" json:"items"`
	Total         float64     `bson:"total" json:"total"`
	Status        OrderStatus `bson:"status" json:"status"`
	PaymentMethod string      `bson:"payment_method" json:"payment_method"`
	CreatedAt     time.Time   `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time   `bson:"updated_at" json:"updated_at"`
}
