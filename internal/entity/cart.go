package entity

// Cart is the inbound order shape shared by both channels.
type Cart struct {
	Items         []CartItem `json:"items"`
	PaymentMethod string     `json:"payment_method"`
	ServiceType   string     `json:"service_type"`
	Notes         string     `json:"notes,omitempty"`
	CustomerRef   string     `json:"customer_ref,omitempty"`
}

type CartItem struct {
	MenuItemID         string               `json:"menu_item_id"`
	Quantity           int                  `json:"quantity"`
	SelectedAddOns     []AddOnSelection     `json:"selected_add_ons,omitempty"`
	RemovedIngredients []IngredientOverride `json:"removed_ingredients,omitempty"`
}

// ServiceTypeDelivery triggers the flat delivery surcharge on the order total.
const ServiceTypeDelivery = "Delivery"

// DeliveryFee is the flat surcharge applied to delivery orders.
const DeliveryFee = 50.0
