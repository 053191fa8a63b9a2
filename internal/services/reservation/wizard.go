package reservation

import (
	"context"
	"fmt"
	"sync"
	"time"

	"bellavista/internal/logger"
	"bellavista/internal/models"
)

// Stage represents a step of the reservation wizard
type Stage string

const (
	StageSelectDateTime Stage = "select_datetime"
	StageContactInfo    Stage = "contact_info"
	StageConfirmed      Stage = "confirmed"
)

// Publisher publishes notifications for confirmed reservations
type Publisher interface {
	PublishNotification(ctx context.Context, msg interface{}) error
}

// View is the wizard state returned to clients. Confirmed views echo the
// entered date, time and guests back unchanged.
type View struct {
	ReservationID string                 `json:"reservation_id"`
	Stage         Stage                  `json:"stage"`
	Form          models.ReservationForm `json:"form"`
	Number        string                 `json:"reservation_number,omitempty"`
}

// Wizard drives the two-step reservation flow:
// select_datetime -> contact_info -> confirmed. Confirmed is terminal for the
// wizard instance; closing discards all reservation state.
type Wizard struct {
	mu     sync.Mutex
	id     string
	stage  Stage
	form   models.ReservationForm
	number string
}

// NewWizard creates a wizard at the date/time selection stage with a
// default party size of two.
func NewWizard(id string) *Wizard {
	return &Wizard{
		id:    id,
		stage: StageSelectDateTime,
		form:  models.ReservationForm{Guests: 2},
	}
}

// View returns a snapshot of the wizard state
func (w *Wizard) View() View {
	w.mu.Lock()
	defer w.mu.Unlock()
	return View{
		ReservationID: w.id,
		Stage:         w.stage,
		Form:          w.form,
		Number:        w.number,
	}
}

// Update applies a partial form edit without changing stage
func (w *Wizard) Update(u models.ReservationFormUpdate) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stage == StageConfirmed {
		return fmt.Errorf("reservation already confirmed")
	}
	w.form = w.form.Apply(u)
	return nil
}

// Advance moves the wizard one stage forward, gated on field completeness.
// Reaching confirmed publishes the reservation notification.
func (w *Wizard) Advance(ctx context.Context, publisher Publisher, log *logger.Logger) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	switch w.stage {
	case StageSelectDateTime:
		if err := w.form.ValidateDateTime(); err != nil {
			return err
		}
		w.stage = StageContactInfo
		return nil
	case StageContactInfo:
		if err := w.form.ValidateContact(); err != nil {
			return err
		}
		w.stage = StageConfirmed
		w.number = models.GenerateReservationNumber(time.Now())
		w.publish(ctx, publisher, log)
		return nil
	case StageConfirmed:
		return fmt.Errorf("reservation already confirmed")
	default:
		return fmt.Errorf("unknown stage: %s", w.stage)
	}
}

// Back moves the wizard one stage backward, preserving entered values
func (w *Wizard) Back() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	switch w.stage {
	case StageContactInfo:
		w.stage = StageSelectDateTime
		return nil
	case StageSelectDateTime:
		return fmt.Errorf("already at the first stage")
	case StageConfirmed:
		return fmt.Errorf("reservation already confirmed")
	default:
		return fmt.Errorf("unknown stage: %s", w.stage)
	}
}

func (w *Wizard) publish(ctx context.Context, publisher Publisher, log *logger.Logger) {
	msg := models.ReservationConfirmedMessage{
		Type:            models.NotificationReservationConfirmed,
		ReservationID:   w.id,
		Name:            w.form.Name,
		Email:           w.form.Email,
		Phone:           w.form.Phone,
		Date:            w.form.Date,
		Time:            w.form.Time,
		Guests:          w.form.Guests,
		Occasion:        w.form.Occasion,
		SpecialRequests: w.form.SpecialRequests,
		ConfirmedAt:     time.Now().UTC(),
	}

	if err := publisher.PublishNotification(ctx, msg); err != nil {
		log.Error("notification_publish_failed", "Failed to publish reservation notification", "", err, map[string]interface{}{
			"reservation_id": w.id,
		})
	}
}
