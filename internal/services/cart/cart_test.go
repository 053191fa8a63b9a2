package cart

import (
	"math"
	"math/rand"
	"testing"

	"bellavista/internal/config"
	"bellavista/internal/logger"
	"bellavista/internal/models"
)

var testPricing = config.PricingConfig{
	TaxRate:             0.10,
	DeliveryFee:         5.00,
	PaymentDelaySeconds: 2,
}

func item(id string, price float64) models.MenuItem {
	return models.MenuItem{ID: id, Name: "Item " + id, Price: price}
}

func TestAddItemMergesLines(t *testing.T) {
	c := New(testPricing)
	arancini := item("item1", 14.95)

	c.AddItem(arancini, 2)
	c.AddItem(arancini, 3)

	lines := c.Lines()
	if len(lines) != 1 {
		t.Fatalf("len(lines) = %d, want 1", len(lines))
	}
	if lines[0].Quantity != 5 {
		t.Errorf("quantity = %d, want 5", lines[0].Quantity)
	}
}

func TestSetQuantityZeroEqualsRemove(t *testing.T) {
	a := New(testPricing)
	b := New(testPricing)
	mezze := item("item2", 16.50)

	a.AddItem(mezze, 2)
	b.AddItem(mezze, 2)

	a.SetQuantity("item2", 0)
	b.RemoveItem("item2")

	if !a.IsEmpty() || !b.IsEmpty() {
		t.Errorf("SetQuantity(id, 0) and RemoveItem(id) should both empty the cart, got %d and %d lines",
			len(a.Lines()), len(b.Lines()))
	}
	if a.Subtotal() != b.Subtotal() {
		t.Errorf("subtotals differ: %v vs %v", a.Subtotal(), b.Subtotal())
	}
}

func TestSetQuantityNegativeRemoves(t *testing.T) {
	c := New(testPricing)
	c.AddItem(item("item1", 14.95), 1)

	c.SetQuantity("item1", -3)

	if !c.IsEmpty() {
		t.Errorf("negative quantity should remove the line, got %d lines", len(c.Lines()))
	}
}

func TestRemoveItemMissingIsNoop(t *testing.T) {
	c := New(testPricing)
	c.AddItem(item("item1", 14.95), 1)

	c.RemoveItem("no-such-item")

	if len(c.Lines()) != 1 {
		t.Errorf("len(lines) = %d, want 1", len(c.Lines()))
	}
}

func TestClear(t *testing.T) {
	c := New(testPricing)
	c.AddItem(item("item1", 14.95), 2)
	c.AddItem(item("item2", 16.50), 1)

	c.Clear()

	if !c.IsEmpty() {
		t.Errorf("cart should be empty after Clear")
	}
	if c.Subtotal() != 0 {
		t.Errorf("subtotal = %v, want 0", c.Subtotal())
	}
}

func TestTotals_PickupAndDelivery(t *testing.T) {
	c := New(testPricing)
	c.AddItem(item("item1", 14.95), 2)
	c.AddItem(item("item2", 16.50), 1)

	if got := c.Subtotal(); got != 46.40 {
		t.Errorf("subtotal = %v, want 46.40", got)
	}
	if got := c.Tax(); got != 4.64 {
		t.Errorf("tax = %v, want 4.64", got)
	}
	if got := c.Total(); got != 51.04 {
		t.Errorf("pickup total = %v, want 51.04", got)
	}

	c.SetDeliveryMethod(models.Delivery)
	if got := c.DeliveryFee(); got != 5.00 {
		t.Errorf("delivery fee = %v, want 5.00", got)
	}
	if got := c.Total(); got != 56.04 {
		t.Errorf("delivery total = %v, want 56.04", got)
	}

	c.SetDeliveryMethod(models.Pickup)
	if got := c.Total(); got != 51.04 {
		t.Errorf("total after switching back to pickup = %v, want 51.04", got)
	}
}

// TestSubtotalInvariant runs random operation sequences and checks that the
// subtotal always equals the sum of price*quantity over the resulting lines.
func TestSubtotalInvariant(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	catalog := []models.MenuItem{
		item("item1", 14.95),
		item("item2", 16.50),
		item("item3", 19.95),
		item("item4", 38.95),
		item("item5", 24.50),
	}

	for run := 0; run < 50; run++ {
		c := New(testPricing)

		for op := 0; op < 100; op++ {
			target := catalog[rng.Intn(len(catalog))]
			switch rng.Intn(4) {
			case 0:
				c.AddItem(target, 1+rng.Intn(5))
			case 1:
				c.SetQuantity(target.ID, rng.Intn(7)-1)
			case 2:
				c.RemoveItem(target.ID)
			case 3:
				c.AddItem(target, 1)
			}

			seen := make(map[string]bool)
			var want float64
			for _, line := range c.Lines() {
				if seen[line.Item.ID] {
					t.Fatalf("run %d op %d: duplicate line for item %s", run, op, line.Item.ID)
				}
				seen[line.Item.ID] = true
				if line.Quantity < 1 {
					t.Fatalf("run %d op %d: observable quantity %d < 1", run, op, line.Quantity)
				}
				want += line.Item.Price * float64(line.Quantity)
			}
			want = math.Round(want*100) / 100

			if got := c.Subtotal(); got != want {
				t.Fatalf("run %d op %d: subtotal = %v, want %v", run, op, got, want)
			}
		}
	}
}

func TestView(t *testing.T) {
	c := New(testPricing)
	c.AddItem(item("item1", 14.95), 2)

	view := c.View("cart-123")
	if view.CartID != "cart-123" {
		t.Errorf("cart_id = %q, want %q", view.CartID, "cart-123")
	}
	if view.DeliveryMethod != string(models.Pickup) {
		t.Errorf("delivery_method = %q, want %q", view.DeliveryMethod, models.Pickup)
	}
	if len(view.Lines) != 1 {
		t.Fatalf("len(lines) = %d, want 1", len(view.Lines))
	}
	if view.Subtotal != 29.90 {
		t.Errorf("subtotal = %v, want 29.90", view.Subtotal)
	}
}

func TestSessionsCreateGetRemove(t *testing.T) {
	cfg := &config.Config{Pricing: testPricing, Sessions: config.SessionsConfig{IdleTTLMinutes: 30}}
	sessions := NewSessions(cfg, logger.New("test"))

	var evicted []string
	sessions.SetEvictHandler(func(id string) { evicted = append(evicted, id) })

	s := sessions.Create()
	if s.ID == "" {
		t.Fatal("session id should not be empty")
	}

	got, ok := sessions.Get(s.ID)
	if !ok || got != s {
		t.Fatalf("Get(%q) = %v, %v; want original session", s.ID, got, ok)
	}

	sessions.Remove(s.ID)
	if _, ok := sessions.Get(s.ID); ok {
		t.Error("session still present after Remove")
	}
	if len(evicted) != 1 || evicted[0] != s.ID {
		t.Errorf("evict handler calls = %v, want [%s]", evicted, s.ID)
	}
}
