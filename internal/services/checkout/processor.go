package checkout

import (
	"context"
	"time"

	"bellavista/internal/logger"
	"bellavista/internal/models"
	"bellavista/internal/services/cart"
)

// Publisher publishes notifications for completed checkouts
type Publisher interface {
	PublishNotification(ctx context.Context, msg interface{}) error
}

// Processor runs the simulated payment step: a fixed delay followed by
// clearing the cart and publishing the placed order. There is no failure
// path; the only alternative outcome is cancellation.
type Processor struct {
	delay     time.Duration
	publisher Publisher
	logger    *logger.Logger
}

// NewProcessor creates a payment processor
func NewProcessor(delay time.Duration, publisher Publisher, log *logger.Logger) *Processor {
	return &Processor{
		delay:     delay,
		publisher: publisher,
		logger:    log,
	}
}

// Task is one in-flight simulated payment. Cancelling it before the delay
// elapses leaves the cart and wizard untouched.
type Task struct {
	ctx      context.Context
	cancelFn context.CancelFunc
	done     chan struct{}
}

func (t *Task) cancel() {
	t.cancelFn()
	<-t.done
}

// Done exposes completion for callers that need to wait (tests, shutdown)
func (t *Task) Done() <-chan struct{} {
	return t.done
}

// start launches the payment task for the wizard. Called by the wizard with
// its lock held, so it must not call back into locked wizard methods
// synchronously.
func (p *Processor) start(w *Wizard) *Task {
	ctx, cancel := context.WithCancel(context.Background())
	t := &Task{
		ctx:      ctx,
		cancelFn: cancel,
		done:     make(chan struct{}),
	}

	requestID := logger.GenerateRequestID()
	p.logger.Info("payment_processing", "Simulated payment started", requestID, map[string]interface{}{
		"delay_ms": p.delay.Milliseconds(),
	})

	go p.run(t, w, requestID)
	return t
}

func (p *Processor) run(t *Task, w *Wizard, requestID string) {
	defer close(t.done)

	timer := time.NewTimer(p.delay)
	defer timer.Stop()

	select {
	case <-t.ctx.Done():
		w.abort(t)
		p.logger.Info("payment_cancelled", "Simulated payment cancelled before completion", requestID, nil)
		return
	case <-timer.C:
	}

	orderNumber := models.GenerateOrderNumber(time.Now())
	msg, ok := w.complete(t, orderNumber)
	if !ok {
		// Cancelled in the window between timer fire and completion
		p.logger.Info("payment_cancelled", "Simulated payment cancelled before completion", requestID, nil)
		return
	}

	p.logger.Info("order_placed", "Checkout completed", requestID, map[string]interface{}{
		"order_number": orderNumber,
		"total":        msg.Total,
	})

	publishCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := p.publisher.PublishNotification(publishCtx, msg); err != nil {
		p.logger.Error("notification_publish_failed", "Failed to publish order notification", requestID, err, map[string]interface{}{
			"order_number": orderNumber,
		})
	}
}

// buildOrderMessage snapshots the form and cart into the notification payload
func buildOrderMessage(form models.CheckoutForm, c *cart.Cart, orderNumber string) models.OrderPlacedMessage {
	lines := c.Lines()
	items := make([]models.OrderLine, 0, len(lines))
	for _, line := range lines {
		items = append(items, models.OrderLine{
			ItemID:   line.Item.ID,
			Name:     line.Item.Name,
			Quantity: line.Quantity,
			Price:    line.Item.Price,
		})
	}

	return models.OrderPlacedMessage{
		Type:           models.NotificationOrderPlaced,
		OrderNumber:    orderNumber,
		CustomerName:   form.Name,
		CustomerEmail:  form.Email,
		CustomerPhone:  form.Phone,
		DeliveryMethod: string(form.DeliveryMethod),
		Address:        form.Address,
		PaymentMethod:  string(form.PaymentMethod),
		Note:           form.Note,
		Items:          items,
		Subtotal:       c.Subtotal(),
		Tax:            c.Tax(),
		DeliveryFee:    c.DeliveryFee(),
		Total:          c.Total(),
		PlacedAt:       time.Now().UTC(),
	}
}
