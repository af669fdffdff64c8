package entity

import "time"

// StockStatus is the classification of a stock item against the low-stock threshold.
type StockStatus string

const (
	StockInStock    StockStatus = "in_stock"
	StockLowStock   StockStatus = "low_stock"
	StockOutOfStock StockStatus = "out_of_stock"
)

// DefaultLowStockThreshold applies when no threshold has been configured.
const DefaultLowStockThreshold = 10

// StockItem is an inventory line. The name is the identity: menu ingredients
// reference stock items by name, not by surrogate id.
type StockItem struct {
	Name           string      `bson:"_id" json:"name"`
	Quantity       int         `bson:"quantity" json:"quantity"`
	Unit           string      `bson:"unit" json:"unit"`
	Status         StockStatus `bson:"status" json:"status"`
	StatusOverride bool        `bson:"status_override" json:"status_override"`
	LastRestocked  time.Time   `bson:"last_restocked" json:"last_restocked"`
	UpdatedAt      time.Time   `bson:"updated_at" json:"updated_at"`
}

// StockLine is one (stock item name, required amount) pair derived from an
// order line: the item's own base record, an ingredient, or an add-on.
type StockLine struct {
	Name   string `json:"name"`
	Amount int    `json:"amount"`
}
