package entity

import "time"

// Channel is the order origin: in-store POS or the customer mobile app.
// Both channels share one sequence-id numbering space.
type Channel string

const (
	ChannelPOS    Channel = "pos"
	ChannelMobile Channel = "mobile"
)

type OrderStatus string

const (
	StatusPending        OrderStatus = "pending"
	StatusAccepted       OrderStatus = "accepted"
	StatusPreparing      OrderStatus = "preparing"
	StatusReady          OrderStatus = "ready"
	StatusOutForDelivery OrderStatus = "out-for-delivery"
	StatusDelivered      OrderStatus = "delivered"
	StatusCancelled      OrderStatus = "cancelled"
)

// Statuses returns the status vocabulary of a channel, excluding cancelled.
func (c Channel) Statuses() []OrderStatus {
	if c == ChannelMobile {
		return []OrderStatus{StatusPending, StatusAccepted, StatusPreparing, StatusReady, StatusOutForDelivery, StatusDelivered}
	}
	return []OrderStatus{StatusPending, StatusPreparing, StatusReady}
}

// Knows reports whether status belongs to the channel's vocabulary.
func (c Channel) Knows(status OrderStatus) bool {
	if status == StatusCancelled {
		return true
	}
	for _, s := range c.Statuses() {
		if s == status {
			return true
		}
	}
	return false
}

// AddOnSelection is an add-on attached to an order line. Quantity is the
// add-on's own multiplier (defaults to 1), applied on top of the line quantity.
type AddOnSelection struct {
	MenuItemID string  `bson:"menu_item_id" json:"id"`
	Name       string  `bson:"name" json:"name,omitempty"`
	Quantity   int     `bson:"quantity" json:"quantity"`
	UnitPrice  float64 `bson:"unit_price" json:"unit_price,omitempty"`
}

// IngredientOverride removes some quantity of a declared ingredient from a line.
type IngredientOverride struct {
	IngredientName string `bson:"ingredient_name" json:"ingredient_name"`
	Quantity       int    `bson:"quantity" json:"quantity"`
}

type OrderLine struct {
	MenuItemID         string               `bson:"menu_item_id" json:"menu_item_id"`
	Name               string               `bson:"name" json:"name"`
	Quantity           int                  `bson:"quantity" json:"quantity"`
	UnitPrice          float64              `bson:"unit_price" json:"unit_price"`
	SelectedAddOns     []AddOnSelection     `bson:"selected_add_ons,omitempty" json:"selected_add_ons,omitempty"`
	RemovedIngredients []IngredientOverride `bson:"removed_ingredients,omitempty" json:"removed_ingredients,omitempty"`
}

// Order is one record shape for both channels; Channel tags the variant and
// selects the status vocabulary.
type Order struct {
	ID            string      `bson:"_id" json:"id"`
	SequenceNum   int         `bson:"sequence_num" json:"-"`
	SequenceID    string      `bson:"sequence_id" json:"sequence_id"`
	Channel       Channel     `bson:"channel" json:"channel"`
	Items         []OrderLine `bson:"items" json:"items"`
	PaymentMethod string      `bson:"payment_method" json:"payment_method"`
	ServiceType   string      `bson:"service_type" json:"service_type"`
	Notes         string      `bson:"notes,omitempty" json:"notes,omitempty"`
	Total         float64     `bson:"total" json:"total"`
	Status        OrderStatus `bson:"status" json:"status"`
	CustomerRef   string      `bson:"customer_ref,omitempty" json:"customer_ref,omitempty"`
	CreatedAt     time.Time   `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time   `bson:"updated_at" json:"updated_at"`
}
