package entity

import "time"

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// NotificationTTL bounds how long a notification document lives before the
// store purges it (TTL index on expires_at).
const NotificationTTL = 7 * 24 * time.Hour

// Notification is purely observational: it is produced as a side effect of
// stock-threshold crossings and order-status changes and is never required
// for correctness of the order workflow.
type Notification struct {
	ID               string    `bson:"_id" json:"id"`
	Category         string    `bson:"category" json:"category"`
	Title            string    `bson:"title" json:"title"`
	Message          string    `bson:"message" json:"message"`
	TargetRoles      []string  `bson:"target_roles" json:"target_roles"`
	Priority         Priority  `bson:"priority" json:"priority"`
	RelatedOrderID   string    `bson:"related_order_id,omitempty" json:"related_order_id,omitempty"`
	RelatedStockItem string    `bson:"related_stock_item,omitempty" json:"related_stock_item,omitempty"`
	ReadBy           []string  `bson:"read_by" json:"read_by"`
	CreatedAt        time.Time `bson:"created_at" json:"created_at"`
	ExpiresAt        time.Time `bson:"expires_at" json:"expires_at"`
}
