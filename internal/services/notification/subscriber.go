package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"bellavista/internal/logger"
	"bellavista/internal/messaging"
	"bellavista/internal/models"
)

// Subscriber consumes order and reservation notifications and prints
// human-readable confirmations. The storefront itself keeps nothing after a
// submission; this is where submissions become visible to staff.
type Subscriber struct {
	consumer *messaging.Consumer
	logger   *logger.Logger
}

// NewSubscriber creates a new notification subscriber
func NewSubscriber(consumer *messaging.Consumer, log *logger.Logger) *Subscriber {
	return &Subscriber{
		consumer: consumer,
		logger:   log,
	}
}

// Start starts consuming notifications until the context ends
func (s *Subscriber) Start(ctx context.Context) error {
	requestID := logger.GenerateRequestID()
	s.logger.Info("service_started", "Notification subscriber started", requestID, nil)

	err := s.consumer.StartConsuming(ctx, s.handleNotification)
	if err != nil && err != context.Canceled {
		return err
	}
	return nil
}

// handleNotification processes a single notification message
func (s *Subscriber) handleNotification(ctx context.Context, body []byte) error {
	requestID := logger.GenerateRequestID()

	var envelope models.NotificationEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		s.logger.Error("message_parsing_failed", "Failed to parse notification envelope", requestID, err, nil)
		return fmt.Errorf("failed to parse notification: %w", err)
	}

	switch envelope.Type {
	case models.NotificationOrderPlaced:
		return s.handleOrderPlaced(requestID, body)
	case models.NotificationReservationConfirmed:
		return s.handleReservationConfirmed(requestID, body)
	default:
		s.logger.Error("unknown_notification", "Unknown notification type", requestID, nil, map[string]interface{}{
			"type": envelope.Type,
		})
		// Drop unknown messages instead of requeueing them forever
		return nil
	}
}

func (s *Subscriber) handleOrderPlaced(requestID string, body []byte) error {
	var msg models.OrderPlacedMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		return fmt.Errorf("failed to parse order notification: %w", err)
	}

	var items []string
	for _, item := range msg.Items {
		items = append(items, fmt.Sprintf("%dx %s", item.Quantity, item.Name))
	}

	s.logger.Info("order_notification", fmt.Sprintf(
		"Order %s placed by %s (%s, %s): %s, total $%.2f",
		msg.OrderNumber, msg.CustomerName, msg.DeliveryMethod, msg.PaymentMethod,
		strings.Join(items, ", "), msg.Total,
	), requestID, map[string]interface{}{
		"order_number": msg.OrderNumber,
		"total":        msg.Total,
	})
	return nil
}

func (s *Subscriber) handleReservationConfirmed(requestID string, body []byte) error {
	var msg models.ReservationConfirmedMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		return fmt.Errorf("failed to parse reservation notification: %w", err)
	}

	s.logger.Info("reservation_notification", fmt.Sprintf(
		"Reservation for %s on %s at %s, party of %d",
		msg.Name, msg.Date, msg.Time, msg.Guests,
	), requestID, map[string]interface{}{
		"reservation_id": msg.ReservationID,
		"date":           msg.Date,
		"time":           msg.Time,
		"guests":         msg.Guests,
	})
	return nil
}
