package entity

import "time"

// CategoryAddOns is the reserved category for menu items that can be attached
// to another item as an add-on.
const CategoryAddOns = "add-ons"

// Ingredient declares how much of a stock item one unit of a menu item consumes.
type Ingredient struct {
	InventoryItem string `bson:"inventory_item" json:"inventory_item"`
	Quantity      int    `bson:"quantity" json:"quantity"`
}

type MenuItem struct {
	ID          string       `bson:"_id" json:"id"`
	Name        string       `bson:"name" json:"name"`
	Price       float64      `bson:"price" json:"price"`
	Category    string       `bson:"category" json:"category"`
	Description string       `bson:"description,omitempty" json:"description,omitempty"`
	ImageURL    string       `bson:"image_url,omitempty" json:"image_url,omitempty"`
	Ingredients []Ingredient `bson:"ingredients" json:"ingredients"`
	CreatedAt   time.Time    `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time    `bson:"updated_at" json:"updated_at"`
}

// IsAddOn reports whether the item belongs to the reserved add-on category.
func (m *MenuItem) IsAddOn() bool {
	return m.Category == CategoryAddOns
}

// DeclaredQuantity returns the per-unit quantity declared for an ingredient
// name, or 0 when the ingredient is not declared on the item.
func (m *MenuItem) DeclaredQuantity(ingredientName string) int {
	for _, ing := range m.Ingredients {
		if ing.InventoryItem == ingredientName {
			return ing.Quantity
		}
	}
	return 0
}
