package checkout

import (
	"fmt"
	"sync"

	"bellavista/internal/models"
	"bellavista/internal/services/cart"
)

// Stage represents a step of the checkout wizard
type Stage string

const (
	StageCart      Stage = "cart"
	StageDetails   Stage = "details"
	StagePayment   Stage = "payment"
	StageSubmitted Stage = "submitted"
)

// View is the wizard state returned to clients
type View struct {
	Stage       Stage               `json:"stage"`
	Form        models.CheckoutForm `json:"form"`
	Processing  bool                `json:"processing"`
	OrderNumber string              `json:"order_number,omitempty"`
}

// Wizard drives one cart through the linear checkout flow:
// cart -> details -> payment -> submitted. Forward transitions are gated on
// field completeness, backward transitions always succeed and keep the
// entered values. The payment timer runs on its own goroutine, hence the
// lock.
type Wizard struct {
	mu          sync.Mutex
	cart        *cart.Cart
	stage       Stage
	form        models.CheckoutForm
	task        *Task
	orderNumber string
}

// NewWizard creates a wizard at the cart review stage
func NewWizard(c *cart.Cart) *Wizard {
	return &Wizard{
		cart:  c,
		stage: StageCart,
		form:  models.CheckoutForm{DeliveryMethod: models.Pickup},
	}
}

// View returns a snapshot of the wizard state
func (w *Wizard) View() View {
	w.mu.Lock()
	defer w.mu.Unlock()
	return View{
		Stage:       w.stage,
		Form:        w.form,
		Processing:  w.task != nil,
		OrderNumber: w.orderNumber,
	}
}

// Update applies a partial form edit without changing stage
func (w *Wizard) Update(u models.CheckoutFormUpdate) error {
	if err := u.Validate(); err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.task != nil {
		return fmt.Errorf("payment is processing")
	}
	if w.stage == StageSubmitted {
		return fmt.Errorf("checkout already submitted")
	}

	w.form = w.form.Apply(u)
	w.cart.SetDeliveryMethod(w.form.DeliveryMethod)
	return nil
}

// Advance moves the wizard one stage forward. From the payment stage it
// starts the simulated payment via the given processor instead of moving
// directly; the wizard reaches submitted when the task completes.
func (w *Wizard) Advance(p *Processor) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.task != nil {
		return fmt.Errorf("payment is processing")
	}

	switch w.stage {
	case StageCart:
		if w.cart.IsEmpty() {
			return fmt.Errorf("cart is empty")
		}
		w.stage = StageDetails
		return nil
	case StageDetails:
		if err := w.form.ValidateDetails(); err != nil {
			return err
		}
		w.stage = StagePayment
		return nil
	case StagePayment:
		if err := w.form.ValidatePayment(); err != nil {
			return err
		}
		w.task = p.start(w)
		return nil
	case StageSubmitted:
		return fmt.Errorf("checkout already submitted")
	default:
		return fmt.Errorf("unknown stage: %s", w.stage)
	}
}

// Back moves the wizard one stage backward, preserving entered values
func (w *Wizard) Back() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.task != nil {
		return fmt.Errorf("payment is processing")
	}

	switch w.stage {
	case StageDetails:
		w.stage = StageCart
	case StagePayment:
		w.stage = StageDetails
	case StageCart:
		return fmt.Errorf("already at the first stage")
	case StageSubmitted:
		return fmt.Errorf("checkout already submitted")
	}
	return nil
}

// Cancel aborts an in-flight payment task, if any, and resets the wizard to
// the cart stage with empty form fields. The cart lines are left intact
// unless the submission had already completed.
func (w *Wizard) Cancel() {
	w.mu.Lock()
	task := w.task
	w.task = nil
	w.stage = StageCart
	w.form = models.CheckoutForm{DeliveryMethod: models.Pickup}
	w.orderNumber = ""
	w.cart.SetDeliveryMethod(models.Pickup)
	w.mu.Unlock()

	if task != nil {
		task.cancel()
	}
}

// complete is invoked by the payment task when the simulated delay elapses.
// It reports false when the task had already been cancelled, in which case
// nothing changes.
func (w *Wizard) complete(t *Task, orderNumber string) (models.OrderPlacedMessage, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.task != t {
		return models.OrderPlacedMessage{}, false
	}

	msg := buildOrderMessage(w.form, w.cart, orderNumber)

	w.task = nil
	w.stage = StageSubmitted
	w.orderNumber = orderNumber
	w.cart.Clear()

	return msg, true
}

// abort is invoked by the payment task when it is cancelled mid-delay
func (w *Wizard) abort(t *Task) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.task == t {
		w.task = nil
	}
}
