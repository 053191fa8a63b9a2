package models

import "fmt"

// CartLine is one (item, quantity) pairing in a shopping cart.
// Quantity is always >= 1; a quantity reaching zero removes the line.
type CartLine struct {
	Item     MenuItem `json:"item"`
	Quantity int      `json:"quantity"`
}

// CartView is the cart state returned to clients, with derived totals
type CartView struct {
	CartID         string     `json:"cart_id"`
	Lines          []CartLine `json:"lines"`
	DeliveryMethod string     `json:"delivery_method"`
	Subtotal       float64    `json:"subtotal"`
	Tax            float64    `json:"tax"`
	DeliveryFee    float64    `json:"delivery_fee"`
	Total          float64    `json:"total"`
}

// AddItemRequest represents the request to add a menu item to a cart
type AddItemRequest struct {
	ItemID   string `json:"item_id"`
	Quantity int    `json:"quantity"`
}

// Validate checks the add-item request; a missing quantity defaults to 1
func (r *AddItemRequest) Validate() error {
	if r.ItemID == "" {
		return fmt.Errorf("item_id is required")
	}
	if r.Quantity == 0 {
		r.Quantity = 1
	}
	if r.Quantity < 1 {
		return fmt.Errorf("quantity must be at least 1")
	}
	return nil
}

// SetQuantityRequest represents the request to change a line's quantity.
// A quantity of zero or below removes the line.
type SetQuantityRequest struct {
	Quantity int `json:"quantity"`
}
