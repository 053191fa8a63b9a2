package checkout

import (
	"context"
	"sync"
	"testing"
	"time"

	"bellavista/internal/config"
	"bellavista/internal/logger"
	"bellavista/internal/models"
	"bellavista/internal/services/cart"
)

var testPricing = config.PricingConfig{
	TaxRate:     0.10,
	DeliveryFee: 5.00,
}

type fakePublisher struct {
	mu       sync.Mutex
	messages []interface{}
}

func (f *fakePublisher) PublishNotification(ctx context.Context, msg interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages = append(f.messages, msg)
	return nil
}

func (f *fakePublisher) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.messages)
}

func str(s string) *string { return &s }

func filledCart() *cart.Cart {
	c := cart.New(testPricing)
	c.AddItem(models.MenuItem{ID: "item1", Name: "Truffle Arancini", Price: 14.95}, 2)
	return c
}

func TestAdvanceFromEmptyCartBlocked(t *testing.T) {
	w := NewWizard(cart.New(testPricing))

	if err := w.Advance(nil); err == nil {
		t.Fatal("advancing with an empty cart should be blocked")
	}
	if got := w.View().Stage; got != StageCart {
		t.Errorf("stage = %q, want %q", got, StageCart)
	}
}

func TestDetailsGating(t *testing.T) {
	tests := []struct {
		name    string
		update  models.CheckoutFormUpdate
		blocked bool
	}{
		{
			name: "pickup with all contact fields",
			update: models.CheckoutFormUpdate{
				Name: str("Ada Lovelace"), Email: str("ada@example.com"), Phone: str("555-0100"),
			},
			blocked: false,
		},
		{
			name: "missing name",
			update: models.CheckoutFormUpdate{
				Email: str("ada@example.com"), Phone: str("555-0100"),
			},
			blocked: true,
		},
		{
			name: "missing email",
			update: models.CheckoutFormUpdate{
				Name: str("Ada Lovelace"), Phone: str("555-0100"),
			},
			blocked: true,
		},
		{
			name: "missing phone",
			update: models.CheckoutFormUpdate{
				Name: str("Ada Lovelace"), Email: str("ada@example.com"),
			},
			blocked: true,
		},
		{
			name: "delivery without address",
			update: models.CheckoutFormUpdate{
				Name: str("Ada Lovelace"), Email: str("ada@example.com"), Phone: str("555-0100"),
				DeliveryMethod: str("delivery"),
			},
			blocked: true,
		},
		{
			name: "delivery with address",
			update: models.CheckoutFormUpdate{
				Name: str("Ada Lovelace"), Email: str("ada@example.com"), Phone: str("555-0100"),
				DeliveryMethod: str("delivery"), Address: str("12 Rue de la Paix"),
			},
			blocked: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := NewWizard(filledCart())
			if err := w.Advance(nil); err != nil {
				t.Fatalf("cart -> details: %v", err)
			}
			if err := w.Update(tt.update); err != nil {
				t.Fatalf("Update: %v", err)
			}

			err := w.Advance(nil)
			if (err != nil) != tt.blocked {
				t.Errorf("Advance() error = %v, blocked %v", err, tt.blocked)
			}

			wantStage := StagePayment
			if tt.blocked {
				wantStage = StageDetails
			}
			if got := w.View().Stage; got != wantStage {
				t.Errorf("stage = %q, want %q", got, wantStage)
			}
		})
	}
}

func TestBackPreservesFields(t *testing.T) {
	w := NewWizard(filledCart())
	if err := w.Advance(nil); err != nil {
		t.Fatalf("cart -> details: %v", err)
	}
	if err := w.Update(models.CheckoutFormUpdate{
		Name: str("Ada Lovelace"), Email: str("ada@example.com"), Phone: str("555-0100"), Note: str("ring twice"),
	}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if err := w.Advance(nil); err != nil {
		t.Fatalf("details -> payment: %v", err)
	}

	if err := w.Back(); err != nil {
		t.Fatalf("payment -> details: %v", err)
	}
	if err := w.Back(); err != nil {
		t.Fatalf("details -> cart: %v", err)
	}
	if err := w.Back(); err == nil {
		t.Error("backing out of the first stage should fail")
	}

	form := w.View().Form
	if form.Name != "Ada Lovelace" || form.Email != "ada@example.com" || form.Phone != "555-0100" || form.Note != "ring twice" {
		t.Errorf("form fields lost on backward navigation: %+v", form)
	}
}

func TestPaymentGating(t *testing.T) {
	w := NewWizard(filledCart())
	advanceToPayment(t, w)

	if err := w.Advance(nil); err == nil {
		t.Fatal("submitting without a payment method should be blocked")
	}

	if err := w.Update(models.CheckoutFormUpdate{PaymentMethod: str("bitcoin")}); err == nil {
		t.Error("unknown payment method should be rejected")
	}
}

func TestSubmitClearsCartAndPublishes(t *testing.T) {
	pub := &fakePublisher{}
	p := NewProcessor(10*time.Millisecond, pub, logger.New("test"))

	c := filledCart()
	w := NewWizard(c)
	advanceToPayment(t, w)

	if err := w.Update(models.CheckoutFormUpdate{PaymentMethod: str("paystack")}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if err := w.Advance(p); err != nil {
		t.Fatalf("payment -> submitted: %v", err)
	}

	view := w.View()
	if !view.Processing {
		t.Fatal("wizard should report processing after submit")
	}

	waitFor(t, "stage submitted", func() bool { return w.View().Stage == StageSubmitted })
	waitFor(t, "notification published", func() bool { return pub.count() == 1 })

	if !c.IsEmpty() {
		t.Error("cart should be cleared after successful submission")
	}

	msg, ok := pub.messages[0].(models.OrderPlacedMessage)
	if !ok {
		t.Fatalf("published message has type %T", pub.messages[0])
	}
	if msg.Type != models.NotificationOrderPlaced {
		t.Errorf("message type = %q, want %q", msg.Type, models.NotificationOrderPlaced)
	}
	if msg.Subtotal != 29.90 {
		t.Errorf("message subtotal = %v, want 29.90", msg.Subtotal)
	}
	if w.View().OrderNumber == "" {
		t.Error("order number should be set after submission")
	}
}

func TestCancelDuringProcessingKeepsCart(t *testing.T) {
	pub := &fakePublisher{}
	p := NewProcessor(5*time.Second, pub, logger.New("test"))

	c := filledCart()
	w := NewWizard(c)
	advanceToPayment(t, w)

	if err := w.Update(models.CheckoutFormUpdate{PaymentMethod: str("card")}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if err := w.Advance(p); err != nil {
		t.Fatalf("submit: %v", err)
	}

	w.Cancel()

	view := w.View()
	if view.Stage != StageCart {
		t.Errorf("stage after cancel = %q, want %q", view.Stage, StageCart)
	}
	if view.Processing {
		t.Error("wizard should not report processing after cancel")
	}
	if c.IsEmpty() {
		t.Error("cart must be left intact when payment is cancelled mid-processing")
	}
	if pub.count() != 0 {
		t.Errorf("published messages = %d, want 0", pub.count())
	}
	if view.Form.Name != "" {
		t.Errorf("form should be reset on cancel, got name %q", view.Form.Name)
	}
}

func advanceToPayment(t *testing.T, w *Wizard) {
	t.Helper()
	if err := w.Advance(nil); err != nil {
		t.Fatalf("cart -> details: %v", err)
	}
	if err := w.Update(models.CheckoutFormUpdate{
		Name: str("Ada Lovelace"), Email: str("ada@example.com"), Phone: str("555-0100"),
	}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if err := w.Advance(nil); err != nil {
		t.Fatalf("details -> payment: %v", err)
	}
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}
