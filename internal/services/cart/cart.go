package cart

import (
	"math"
	"sync"

	"bellavista/internal/config"
	"bellavista/internal/models"
)

// Cart holds the authoritative list of cart lines for one session and derives
// totals from the pricing rules. It keeps at most one line per item id and a
// quantity below one removes the line, so negative quantities are never
// observable. Each cart belongs to one user, but the payment task completes
// on its own goroutine, so mutations are guarded.
type Cart struct {
	mu             sync.Mutex
	lines          []models.CartLine
	deliveryMethod models.DeliveryMethod
	pricing        config.PricingConfig
}

// New creates an empty cart with pickup as the initial delivery method
func New(pricing config.PricingConfig) *Cart {
	return &Cart{
		deliveryMethod: models.Pickup,
		pricing:        pricing,
	}
}

// AddItem merges qty into an existing line for the item or appends a new one
func (c *Cart) AddItem(item models.MenuItem, qty int) {
	if qty < 1 {
		qty = 1
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.lines {
		if c.lines[i].Item.ID == item.ID {
			c.lines[i].Quantity += qty
			return
		}
	}
	c.lines = append(c.lines, models.CartLine{Item: item, Quantity: qty})
}

// SetQuantity replaces a line's quantity; qty <= 0 removes the line
func (c *Cart) SetQuantity(itemID string, qty int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if qty <= 0 {
		c.remove(itemID)
		return
	}
	for i := range c.lines {
		if c.lines[i].Item.ID == itemID {
			c.lines[i].Quantity = qty
			return
		}
	}
}

// RemoveItem drops the line for the item if present
func (c *Cart) RemoveItem(itemID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.remove(itemID)
}

func (c *Cart) remove(itemID string) {
	for i := range c.lines {
		if c.lines[i].Item.ID == itemID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
	}
}

// Clear empties all lines
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = nil
}

// IsEmpty reports whether the cart has no lines
func (c *Cart) IsEmpty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.lines) == 0
}

// Lines returns a copy of the cart lines in insertion order
func (c *Cart) Lines() []models.CartLine {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]models.CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}

// SetDeliveryMethod selects pickup or delivery for fee calculation
func (c *Cart) SetDeliveryMethod(m models.DeliveryMethod) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.deliveryMethod = m
}

// DeliveryMethod returns the currently selected delivery method
func (c *Cart) DeliveryMethod() models.DeliveryMethod {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.deliveryMethod
}

// Subtotal is the sum of price * quantity over all lines, rounded to cents
func (c *Cart) Subtotal() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.subtotal()
}

// Tax is the subtotal times the configured tax rate, rounded to cents
func (c *Cart) Tax() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tax()
}

// DeliveryFee is the fixed fee when the delivery method is delivery, else 0
func (c *Cart) DeliveryFee() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.deliveryFee()
}

// Total is subtotal + tax + delivery fee, rounded to cents
func (c *Cart) Total() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.total()
}

func (c *Cart) subtotal() float64 {
	var total float64
	for _, line := range c.lines {
		total += line.Item.Price * float64(line.Quantity)
	}
	return roundCents(total)
}

func (c *Cart) tax() float64 {
	return roundCents(c.subtotal() * c.pricing.TaxRate)
}

func (c *Cart) deliveryFee() float64 {
	if c.deliveryMethod == models.Delivery {
		return c.pricing.DeliveryFee
	}
	return 0
}

func (c *Cart) total() float64 {
	return roundCents(c.subtotal() + c.tax() + c.deliveryFee())
}

// View builds the client-facing cart state with derived totals
func (c *Cart) View(cartID string) models.CartView {
	c.mu.Lock()
	defer c.mu.Unlock()

	lines := make([]models.CartLine, len(c.lines))
	copy(lines, c.lines)

	return models.CartView{
		CartID:         cartID,
		Lines:          lines,
		DeliveryMethod: string(c.deliveryMethod),
		Subtotal:       c.subtotal(),
		Tax:            c.tax(),
		DeliveryFee:    c.deliveryFee(),
		Total:          c.total(),
	}
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
